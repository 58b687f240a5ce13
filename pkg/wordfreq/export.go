package wordfreq

import (
	"io"

	"github.com/badele/wordfreq/internal/exporter"
)

// Sort orders entries by descending count, ties by ascending word.
func Sort(entries []WordEntry) []WordEntry {
	return exporter.Sort(entries)
}

// Render returns the sorted entries of a counter whose workers are done.
func Render(c Counter) []WordEntry {
	return exporter.Render(c)
}

// Separator returns the whitespace placed between a word and its count in
// the text report.
func Separator(word string) string {
	return exporter.Separator(word)
}

// Total returns the grand total of all counts.
func Total(entries []WordEntry) uint64 {
	return exporter.Total(entries)
}

// Top keeps the n most frequent entries of a sorted slice; n <= 0 keeps all.
func Top(entries []WordEntry, n int) []WordEntry {
	return exporter.Top(entries, n)
}

// ExportText writes the "<word><tabs><count>" report.
func ExportText(entries []WordEntry, w io.Writer) error {
	return exporter.ExportText(entries, w)
}

// ExportTable writes the report as a boxed table.
func ExportTable(entries []WordEntry, w io.Writer) error {
	return exporter.ExportTable(entries, w)
}

// ExportJSON writes the report and its run statistics as indented JSON.
func ExportJSON(entries []WordEntry, stats RunStats, w io.Writer) error {
	return exporter.ExportJSON(entries, stats, w)
}

// ExportSummary writes the totals, runtime and peak memory of a run.
func ExportSummary(stats RunStats, w io.Writer) error {
	return exporter.ExportSummary(stats, w)
}
