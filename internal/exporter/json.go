package exporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/badele/wordfreq/internal/types"
)

type ReportJSONOutput struct {
	Run   types.RunStats    `json:"run"`
	Words []types.WordEntry `json:"words"`
}

func ExportJSON(entries []types.WordEntry, stats types.RunStats, writer io.Writer) error {
	if entries == nil {
		entries = []types.WordEntry{}
	}
	output := ReportJSONOutput{
		Run:   stats,
		Words: entries,
	}

	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(output); err != nil {
		return fmt.Errorf("JSON serialization error: %w", err)
	}
	return nil
}
