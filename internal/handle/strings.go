package handle

import "sync"

// Strings tracks the addresses of strings handed to the caller that have not
// been released yet.
type Strings struct {
	mu   sync.Mutex
	live map[uintptr]struct{}
}

// NewStrings returns an empty tracker.
func NewStrings() *Strings {
	return &Strings{live: make(map[uintptr]struct{})}
}

// Track records p as handed out.
func (s *Strings) Track(p uintptr) {
	if p == 0 {
		return
	}
	s.mu.Lock()
	s.live[p] = struct{}{}
	s.mu.Unlock()
}

// Release forgets p and reports whether it was live. A false result means p
// was never handed out or was already released, and must not be freed.
func (s *Strings) Release(p uintptr) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live[p]; !ok {
		return false
	}
	delete(s.live, p)
	return true
}

// Len returns the number of strings not yet released.
func (s *Strings) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
