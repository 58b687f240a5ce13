package counter

import (
	"hash/fnv"

	"github.com/badele/wordfreq/internal/types"
)

const DefaultStripes = 32

// Sharded routes each word to one of a fixed number of Tables by FNV-1a hash.
// A given word always lands on the same stripe, so the per-stripe lock gives
// the same no-lost-update guarantee as Table.
type Sharded struct {
	stripes []*Table
	mask    uint32
}

// NewSharded rounds n up to the next power of two.
func NewSharded(n int) *Sharded {
	size := 1
	for size < n {
		size <<= 1
	}

	s := &Sharded{
		stripes: make([]*Table, size),
		mask:    uint32(size - 1),
	}
	for i := range s.stripes {
		s.stripes[i] = NewTable()
	}
	return s
}

func (s *Sharded) stripe(word string) *Table {
	h := fnv.New32a()
	h.Write([]byte(word))
	return s.stripes[h.Sum32()&s.mask]
}

func (s *Sharded) Stripes() int {
	return len(s.stripes)
}

func (s *Sharded) IncrementOrInsert(word string) {
	s.stripe(word).IncrementOrInsert(word)
}

func (s *Sharded) Lookup(word string) (uint64, bool) {
	return s.stripe(word).Lookup(word)
}

func (s *Sharded) Len() int {
	n := 0
	for _, t := range s.stripes {
		n += t.Len()
	}
	return n
}

func (s *Sharded) Entries() []types.WordEntry {
	out := make([]types.WordEntry, 0, s.Len())
	for _, t := range s.stripes {
		out = append(out, t.Entries()...)
	}
	return out
}

func (s *Sharded) Total() uint64 {
	var total uint64
	for _, t := range s.stripes {
		total += t.Total()
	}
	return total
}
