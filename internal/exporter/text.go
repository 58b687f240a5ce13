package exporter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/badele/wordfreq/internal/types"
)

// ExportText writes one "<word><tabs><count>" line per entry, in order.
func ExportText(entries []types.WordEntry, writer io.Writer) error {
	w := bufio.NewWriter(writer)

	for _, e := range entries {
		w.WriteString(e.Word)
		w.WriteString(Separator(e.Word))
		w.WriteString(strconv.FormatUint(e.Count, 10))
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("error writing report: %w", err)
	}
	return nil
}
