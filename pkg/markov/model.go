package markov

// Transition is a single successor of a predecessor atom together with the
// number of times it was observed.
type Transition struct {
	Next  Atom
	Count int
}

// Table holds every observed successor of one predecessor atom. Entries keep
// the order in which they were first seen so that a seeded walk over the
// table is reproducible.
type Table struct {
	entries []Transition
	index   map[Atom]int
	total   int
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{index: make(map[Atom]int)}
}

// Add increments the count of next by n. Non-positive n is ignored.
func (t *Table) Add(next Atom, n int) {
	if n <= 0 {
		return
	}
	if i, ok := t.index[next]; ok {
		t.entries[i].Count += n
	} else {
		t.index[next] = len(t.entries)
		t.entries = append(t.entries, Transition{Next: next, Count: n})
	}
	t.total += n
}

// Count returns the number of times next was observed, or 0.
func (t *Table) Count(next Atom) int {
	if i, ok := t.index[next]; ok {
		return t.entries[i].Count
	}
	return 0
}

// Len returns the number of distinct successors.
func (t *Table) Len() int {
	return len(t.entries)
}

// Total returns the sum of all counts in the table.
func (t *Table) Total() int {
	return t.total
}

// Entries returns the transitions in first-seen order. The slice is shared
// with the table and must not be modified.
func (t *Table) Entries() []Transition {
	return t.entries
}

// hasWord reports whether any successor in the table is a word.
func (t *Table) hasWord() bool {
	for _, e := range t.entries {
		if e.Next.IsWord() {
			return true
		}
	}
	return false
}

// retain keeps only the transitions for which keep returns true and returns
// the number removed.
func (t *Table) retain(keep func(Transition) bool) int {
	kept := t.entries[:0]
	removed := 0
	t.total = 0
	clear(t.index)
	for _, e := range t.entries {
		if !keep(e) {
			removed++
			continue
		}
		t.index[e.Next] = len(kept)
		kept = append(kept, e)
		t.total += e.Count
	}
	clear(t.entries[len(kept):])
	t.entries = kept
	return removed
}

// Model is the frequency model: a mapping from every predecessor atom seen in
// the corpus to its transition table. A Model is built by a Builder and is
// treated as read-only while generating.
type Model struct {
	keys   []Atom
	tables map[Atom]*Table
}

// NewModel returns an empty Model.
func NewModel() *Model {
	return &Model{tables: make(map[Atom]*Table)}
}

// Observe records one occurrence of the transition prev -> next.
func (m *Model) Observe(prev, next Atom) {
	t, ok := m.tables[prev]
	if !ok {
		t = NewTable()
		m.tables[prev] = t
		m.keys = append(m.keys, prev)
	}
	t.Add(next, 1)
}

// Table returns the transition table for prev, or nil if prev was never seen
// as a predecessor.
func (m *Model) Table(prev Atom) *Table {
	return m.tables[prev]
}

// Keys returns every predecessor atom in first-seen order. The slice is shared
// with the model and must not be modified.
func (m *Model) Keys() []Atom {
	return m.keys
}

// Len returns the number of predecessor atoms.
func (m *Model) Len() int {
	return len(m.keys)
}

// Counts returns a plain nested map copy of the model, keyed the same way as
// the model itself. It is mostly useful for comparisons in tests and tools.
func (m *Model) Counts() map[Atom]map[Atom]int {
	out := make(map[Atom]map[Atom]int, len(m.keys))
	for _, k := range m.keys {
		t := m.tables[k]
		row := make(map[Atom]int, t.Len())
		for _, e := range t.entries {
			row[e.Next] = e.Count
		}
		out[k] = row
	}
	return out
}
