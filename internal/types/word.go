package types

import (
	"errors"
	"fmt"
	"time"
)

var ErrBufferFrozen = errors.New("line buffer is frozen")

/////////////////////////////////////////////////////////////////////////////
// LINE BUFFER
/////////////////////////////////////////////////////////////////////////////

// LineBuffer holds normalized lines in input order. It is appended to while
// reading and frozen before counting starts; a frozen buffer is safe for
// concurrent reads.
type LineBuffer struct {
	lines  []string
	frozen bool
}

func NewLineBuffer(capacity int) *LineBuffer {
	if capacity < 0 {
		capacity = 0
	}
	return &LineBuffer{lines: make([]string, 0, capacity)}
}

// NewFrozenLineBuffer wraps already normalized lines.
func NewFrozenLineBuffer(lines []string) *LineBuffer {
	return &LineBuffer{lines: lines, frozen: true}
}

func (b *LineBuffer) Append(line string) error {
	if b.frozen {
		return ErrBufferFrozen
	}
	b.lines = append(b.lines, line)
	return nil
}

func (b *LineBuffer) Freeze() {
	b.frozen = true
}

func (b *LineBuffer) Frozen() bool {
	return b.frozen
}

func (b *LineBuffer) Len() int {
	return len(b.lines)
}

func (b *LineBuffer) At(i int) string {
	return b.lines[i]
}

// Slice returns the lines covered by r without copying.
func (b *LineBuffer) Slice(r Range) []string {
	return b.lines[r.Start:r.End]
}

/////////////////////////////////////////////////////////////////////////////
// RANGE
/////////////////////////////////////////////////////////////////////////////

// Range is the half-open interval [Start, End) of line indexes.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

/////////////////////////////////////////////////////////////////////////////
// WORD ENTRY
/////////////////////////////////////////////////////////////////////////////

type WordEntry struct {
	Word  string `json:"word"`
	Count uint64 `json:"count"`
}

func (e WordEntry) String() string {
	return fmt.Sprintf("%s=%d", e.Word, e.Count)
}

/////////////////////////////////////////////////////////////////////////////
// RUN STATS
/////////////////////////////////////////////////////////////////////////////

type RunStats struct {
	RunID         string        `json:"run_id"`
	Source        string        `json:"source"`
	Workers       int           `json:"workers"`
	Lines         int           `json:"lines"`
	DistinctWords int           `json:"distinct_words"`
	TotalWords    uint64        `json:"total_words"`
	Elapsed       time.Duration `json:"elapsed_ns"`
	PeakMemoryKB  int64         `json:"peak_memory_kb,omitempty"`
}
