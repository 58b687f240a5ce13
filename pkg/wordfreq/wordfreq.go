// Package wordfreq provides a public API for counting word frequencies with
// concurrent workers.
//
// This package provides functions to:
//   - Normalize and tokenize lines with the ASCII word boundary rules
//   - Count a document with a fixed pool of workers sharing one word table
//   - Sort the result deterministically and export it (text, table, JSON)
//
// Example usage:
//
//	import "github.com/badele/wordfreq/pkg/wordfreq"
//
//	f, _ := os.Open("lyrics.txt")
//	res, _ := wordfreq.CountReader(ctx, f, wordfreq.Options{Workers: 4})
//	_ = wordfreq.ExportText(res.Entries, os.Stdout)
package wordfreq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/badele/wordfreq/internal/counter"
	"github.com/badele/wordfreq/internal/exporter"
	"github.com/badele/wordfreq/internal/importer/lines"
	"github.com/badele/wordfreq/internal/logger"
	"github.com/badele/wordfreq/internal/processor"
	"github.com/badele/wordfreq/internal/sysinfo"
	"github.com/badele/wordfreq/internal/tokenizer"
	"github.com/badele/wordfreq/internal/types"
)

// Type aliases for public API
type (
	// WordEntry is one distinct word and its number of occurrences
	WordEntry = types.WordEntry

	// LineBuffer holds the normalized input lines
	LineBuffer = types.LineBuffer

	// Range is a half-open interval of line indexes handled by one worker
	Range = types.Range

	// RunStats describes one counting run
	RunStats = types.RunStats

	// Counter is the interface of the shared word table
	Counter = types.Counter

	// WordTokenizer splits one normalized line into words
	WordTokenizer = tokenizer.WordTokenizer

	// Pool runs the counting workers
	Pool = processor.Pool
)

// Counter kinds
const (
	CounterMutex   = counter.KindMutex
	CounterSharded = counter.KindSharded
)

// Errors
var (
	ErrInvalidWorkers      = processor.ErrInvalidWorkers
	ErrWorkerPanic         = processor.ErrWorkerPanic
	ErrUnsupportedEncoding = lines.ErrUnsupportedEncoding
	ErrBufferFrozen        = types.ErrBufferFrozen
)

// Options configures a counting run. The zero value counts with one worker,
// the mutex counter, UTF-8 input and no logging.
type Options struct {
	// Workers is the number of concurrent workers; 0 uses GOMAXPROCS.
	Workers  int
	Counter  string
	Encoding string
	Source   string
	// RunID identifies the run in logs and reports; empty draws a new one.
	RunID  string
	Logger *slog.Logger
	// Start is when the run began, for callers that read the input
	// themselves. Zero means the call's own start.
	Start time.Time
}

// Result is the sorted outcome of a run.
type Result struct {
	Entries []WordEntry
	Stats   RunStats
}

// Normalize lowercases the ASCII letters of line.
func Normalize(line string) string {
	return tokenizer.Normalize(line)
}

// Tokenize splits a normalized line into words.
func Tokenize(line string) []string {
	return tokenizer.Tokenize(line)
}

// NewCounter creates a counter of the given kind ("mutex" or "sharded").
func NewCounter(kind string) (Counter, error) {
	return counter.New(kind)
}

// NewPool creates a worker pool.
func NewPool(workers int, log *slog.Logger) *Pool {
	return processor.NewPool(workers, log)
}

// Partition splits total lines into contiguous ranges, one per worker.
func Partition(total, workers int) ([]Range, error) {
	return processor.Partition(total, workers)
}

// ReadLines reads and normalizes a document into a frozen LineBuffer.
func ReadLines(r io.Reader, sourceEncoding string) (*LineBuffer, error) {
	return lines.Read(r, sourceEncoding)
}

// CountReader reads r and counts its words.
func CountReader(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	start := time.Now()
	log := opts.logger()

	log.Info("begin reading input", "source", opts.Source)
	buf, err := lines.Read(r, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", opts.Source, err)
	}
	log.Info("finished reading input", "lines", buf.Len())

	return count(ctx, buf, opts, start)
}

// CountLines normalizes raw lines and counts their words.
func CountLines(ctx context.Context, raw []string, opts Options) (*Result, error) {
	start := time.Now()

	normalized := make([]string, len(raw))
	for i, line := range raw {
		normalized[i] = tokenizer.Normalize(line)
	}

	return count(ctx, types.NewFrozenLineBuffer(normalized), opts, start)
}

// CountBuffer counts the words of an already frozen buffer.
func CountBuffer(ctx context.Context, buf *LineBuffer, opts Options) (*Result, error) {
	return count(ctx, buf, opts, time.Now())
}

func count(ctx context.Context, buf *LineBuffer, opts Options, start time.Time) (*Result, error) {
	log := opts.logger()
	if !opts.Start.IsZero() {
		start = opts.Start
	}

	workers, err := processor.ResolveWorkers(opts.Workers)
	if err != nil {
		return nil, err
	}

	table, err := counter.New(opts.Counter)
	if err != nil {
		return nil, err
	}

	kind := opts.Counter
	if kind == "" {
		kind = CounterMutex
	}

	log.Info("begin counting words", "workers", workers, "counter", kind)
	if err := processor.NewPool(workers, log).Run(ctx, buf, table); err != nil {
		return nil, fmt.Errorf("counting words: %w", err)
	}
	log.Info("finished counting words", "distinct", table.Len(), "total", table.Total())

	log.Info("begin sorting results")
	entries := exporter.Render(table)
	log.Info("finished sorting results")

	id := opts.RunID
	if id == "" {
		id = NewRunID()
	}

	stats := RunStats{
		RunID:         id,
		Source:        opts.Source,
		Workers:       workers,
		Lines:         buf.Len(),
		DistinctWords: len(entries),
		TotalWords:    exporter.Total(entries),
		Elapsed:       time.Since(start),
	}
	if kb, err := sysinfo.PeakMemoryKB(); err == nil {
		stats.PeakMemoryKB = kb
	} else {
		log.Debug("peak memory unavailable", "error", err)
	}

	return &Result{Entries: entries, Stats: stats}, nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logger.Discard()
	}
	return o.Logger
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a logger tagging every record with a new run id, and the id.
func WithRunID(log *slog.Logger) (*slog.Logger, string) {
	id := NewRunID()
	if log == nil {
		log = logger.Discard()
	}
	return log.With("run_id", id), id
}
