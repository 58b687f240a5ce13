package exporter

import (
	"bufio"
	"fmt"
	"io"

	"github.com/badele/wordfreq/internal/types"
)

// ExportSummary prints the run side channel: totals, runtime and memory.
func ExportSummary(stats types.RunStats, writer io.Writer) error {
	w := bufio.NewWriter(writer)

	fmt.Fprintln(w, "=== Word Count Summary ===")
	fmt.Fprintf(w, "  %-20s: %s\n", "Run", stats.RunID)
	fmt.Fprintf(w, "  %-20s: %s\n", "Source", stats.Source)
	fmt.Fprintf(w, "  %-20s: %d\n", "Workers", stats.Workers)
	fmt.Fprintf(w, "  %-20s: %d\n", "Lines", stats.Lines)
	fmt.Fprintf(w, "  %-20s: %d\n", "Distinct words", stats.DistinctWords)
	fmt.Fprintf(w, "  %-20s: %d\n", "Total words", stats.TotalWords)
	fmt.Fprintf(w, "  %-20s: %d ms\n", "Runtime", stats.Elapsed.Milliseconds())

	if stats.PeakMemoryKB > 0 {
		fmt.Fprintf(w, "  %-20s: %d KB\n", "Peak memory", stats.PeakMemoryKB)
	} else {
		fmt.Fprintf(w, "  %-20s: %s\n", "Peak memory", "n/a")
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing summary: %w", err)
	}
	return nil
}
