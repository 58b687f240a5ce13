// Package counter implements the word table shared by the counting workers.
//
// Table guards a single map with one mutex: every IncrementOrInsert holds the
// lock for the whole lookup-then-mutate step, so two workers can never insert
// the same word twice or lose an increment. Sharded spreads the same contract
// over several independently locked stripes to reduce contention when many
// workers run at once.
package counter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/badele/wordfreq/internal/types"
)

var (
	_ types.Counter = (*Table)(nil)
	_ types.Counter = (*Sharded)(nil)
)

const (
	KindMutex   = "mutex"
	KindSharded = "sharded"
)

// New returns the counter implementation registered under kind.
func New(kind string) (types.Counter, error) {
	switch kind {
	case "", KindMutex:
		return NewTable(), nil
	case KindSharded:
		return NewSharded(DefaultStripes), nil
	default:
		return nil, fmt.Errorf("unknown counter kind: %s", kind)
	}
}

/////////////////////////////////////////////////////////////////////////////
// TABLE
/////////////////////////////////////////////////////////////////////////////

type Table struct {
	mu      sync.Mutex
	entries map[string]*types.WordEntry
	total   uint64
}

func NewTable() *Table {
	return &Table{entries: make(map[string]*types.WordEntry)}
}

func (t *Table) IncrementOrInsert(word string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[word]; ok {
		e.Count++
	} else {
		// words are slices of their line; clone so the table does not pin it
		w := strings.Clone(word)
		t.entries[w] = &types.WordEntry{Word: w, Count: 1}
	}
	t.total++
}

func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.entries)
}

func (t *Table) Lookup(word string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e, ok := t.entries[word]; ok {
		return e.Count, true
	}
	return 0, false
}

// Entries returns an unordered copy of the table.
func (t *Table) Entries() []types.WordEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]types.WordEntry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	return out
}

func (t *Table) Total() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.total
}
