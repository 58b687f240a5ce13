package exporter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/badele/wordfreq/internal/types"
)

const tableWordWidth = 32

// ExportTable draws the entries as a boxed table with rank, word, count and
// share of the grand total. Words are padded by display width, so accented
// words keep the columns aligned.
func ExportTable(entries []types.WordEntry, writer io.Writer) error {
	w := bufio.NewWriter(writer)
	total := Total(entries)
	hr := func(l, m, r string) string {
		return l + strings.Repeat("─", 9) + m + strings.Repeat("─", tableWordWidth+2) + m +
			strings.Repeat("─", 12) + m + strings.Repeat("─", 9) + r
	}

	fmt.Fprintln(w, hr("┌", "┬", "┐"))
	fmt.Fprintf(w, "│ %-7s │ %s │ %10s │ %7s │\n", "Rank", pad("Word", tableWordWidth), "Count", "Share")
	fmt.Fprintln(w, hr("├", "┼", "┤"))

	for i, e := range entries {
		share := 0.0
		if total > 0 {
			share = float64(e.Count) / float64(total) * 100
		}
		fmt.Fprintf(w, "│ %-7d │ %s │ %10d │ %6.2f%% │\n",
			i+1, pad(truncate(e.Word, tableWordWidth), tableWordWidth), e.Count, share)
	}

	fmt.Fprintln(w, hr("└", "┴", "┘"))

	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing table: %w", err)
	}
	return nil
}

// pad right-fills s with spaces up to width display columns.
func pad(s string, width int) string {
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate cuts s to at most maxWidth display columns, marking the cut with
// an ellipsis.
func truncate(s string, maxWidth int) string {
	if uniseg.StringWidth(s) <= maxWidth {
		return s
	}

	var sb strings.Builder
	width := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if width+w > maxWidth-1 {
			break
		}
		sb.WriteString(cluster)
		width += w
	}
	sb.WriteString("…")
	return sb.String()
}
