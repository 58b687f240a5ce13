package exporter

import (
	"cmp"
	"slices"

	"github.com/badele/wordfreq/internal/types"
)

// Sort orders entries by descending count, then by ascending word (byte
// order). It sorts in place, stably, and returns entries.
func Sort(entries []types.WordEntry) []types.WordEntry {
	slices.SortStableFunc(entries, func(a, b types.WordEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Word, b.Word)
	})
	return entries
}

// Render snapshots a counter whose workers have all returned and sorts it.
func Render(counter types.Counter) []types.WordEntry {
	return Sort(counter.Entries())
}

// Top keeps the first n entries; n <= 0 keeps them all.
func Top(entries []types.WordEntry, n int) []types.WordEntry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	return entries[:n]
}

// Total is the grand total of all counts.
func Total(entries []types.WordEntry) uint64 {
	var sum uint64
	for _, e := range entries {
		sum += e.Count
	}
	return sum
}

// Separator returns the tab run placed between a word and its count so that
// counts roughly line up on 8 column tab stops.
func Separator(word string) string {
	switch {
	case len(word) >= 16:
		return "\t"
	case len(word) >= 8:
		return "\t\t"
	default:
		return "\t\t\t"
	}
}
