// Package handle keeps the generator states handed out across the C boundary.
//
// A caller on the other side of the boundary only ever sees an integer
// Handle. The state behind it stays in a process-owned Table, and each call
// that needs the state checks it out, which removes it from the table for the
// duration of the call, and checks it back in afterwards. A second call on the
// same handle while the first is still running gets ErrBusy instead of a
// shared, aliased state.
package handle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/CTAG07/markovgen/pkg/markov"
)

var (
	// ErrUnknownHandle is returned for handles that were never issued or were destroyed.
	ErrUnknownHandle = errors.New("handle: unknown handle")
	// ErrBusy is returned when a handle's state is already checked out.
	ErrBusy = errors.New("handle: state is in use")
)

// Handle identifies a live state. The zero Handle is never issued.
type Handle uint64

// slot is a table entry. A nil state means the state is checked out.
type slot struct {
	state *markov.State
}

// Table maps handles to the states they own.
type Table struct {
	mu    sync.Mutex
	next  Handle
	slots map[Handle]*slot
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{slots: make(map[Handle]*slot)}
}

// Register takes ownership of state and returns its new handle.
func (t *Table) Register(state *markov.State) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.slots[t.next] = &slot{state: state}
	return t.next
}

// Checkout hands exclusive ownership of the state behind h to the caller,
// who must return it with Checkin.
func (t *Table) Checkout(h Handle) (*markov.State, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[h]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	if s.state == nil {
		return nil, fmt.Errorf("%w: %d", ErrBusy, h)
	}
	state := s.state
	s.state = nil
	return state, nil
}

// Checkin gives a checked-out state back to the table. If h was destroyed
// while the state was out, the state is dropped.
func (t *Table) Checkin(h Handle, state *markov.State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s, ok := t.slots[h]; ok {
		s.state = state
	}
}

// Generate checks out the state behind h, generates one sentence and checks
// the state back in.
func (t *Table) Generate(ctx context.Context, h Handle) (string, error) {
	state, err := t.Checkout(h)
	if err != nil {
		return "", err
	}
	defer t.Checkin(h, state)
	return state.Sentence(ctx)
}

// Destroy forgets h. A state that is currently checked out is dropped when
// it is checked back in.
func (t *Table) Destroy(h Handle) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.slots[h]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	delete(t.slots, h)
	return nil
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}
