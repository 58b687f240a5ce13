// Package cli holds the wordfreq command line: flag definitions parsed with
// kong and the run that wires reading, counting and reporting together.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/badele/wordfreq/internal/exporter"
	"github.com/badele/wordfreq/internal/importer/lines"
	"github.com/badele/wordfreq/internal/logger"
	"github.com/badele/wordfreq/internal/types"
	"github.com/badele/wordfreq/pkg/wordfreq"
)

var BuildVersion = "dev"

var ErrNotATerminal = errors.New("not a terminal")

type CLI struct {
	Input  string `arg:"" optional:"" default:"lyrics.txt" help:"Text file to count, '-' reads stdin."`
	Output string `short:"o" default:"output_lyrics.txt" help:"Report file, '-' writes to stdout."`
	Format string `short:"f" enum:"text,table,json" default:"text" help:"Report format (${enum})."`

	Workers  int    `short:"w" default:"1" env:"WORDFREQ_WORKERS" help:"Number of counting workers, 0 uses every CPU."`
	Counter  string `enum:"mutex,sharded" default:"mutex" env:"WORDFREQ_COUNTER" help:"Word table locking (${enum})."`
	Encoding string `short:"e" enum:"utf8,cp437,cp850,iso-8859-1" default:"utf8" help:"Input encoding (${enum})."`
	Top      int    `short:"n" default:"0" help:"Only report the N most frequent words, 0 reports all."`

	AllowMissing bool   `help:"Count an empty document when the input file does not exist."`
	View         bool   `short:"v" help:"Browse the report in an interactive terminal view."`
	Quiet        bool   `short:"q" help:"Do not print the run summary."`
	LogLevel     string `enum:"debug,info,warn,error" default:"info" env:"WORDFREQ_LOG_LEVEL" help:"Log level (${enum})."`

	Config  kong.ConfigFlag  `short:"c" help:"Load options from a JSON file."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

// Options returns the kong options used to build the parser.
func Options() []kong.Option {
	return []kong.Option{
		kong.Name("wordfreq"),
		kong.Description("Count word frequencies with concurrent workers and write a sorted report."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "~/.config/wordfreq.json"),
		kong.Vars{"version": BuildVersion},
	}
}

// Streams are the process streams used by a run.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run reads the input, counts it and writes the report. A report that cannot
// be written is logged and returned, but the summary is still printed.
func (c *CLI) Run(ctx context.Context, streams Streams) error {
	start := time.Now()
	log, runID := wordfreq.WithRunID(logger.New(c.LogLevel, streams.Err))

	if c.View && !isTerminal(streams.Out) {
		return fmt.Errorf("--view: stdout is %w", ErrNotATerminal)
	}

	buf, err := c.readInput(streams, log)
	if err != nil {
		return err
	}

	res, err := wordfreq.CountBuffer(ctx, buf, wordfreq.Options{
		Workers: c.Workers,
		Counter: c.Counter,
		Source:  c.Input,
		RunID:   runID,
		Logger:  log,
		Start:   start,
	})
	if err != nil {
		return err
	}
	entries := exporter.Top(res.Entries, c.Top)

	if c.View {
		return exporter.View(entries)
	}

	writeErr := c.writeReport(entries, res.Stats, streams, log)
	if writeErr != nil {
		log.Error("report not written", "output", c.Output, "error", writeErr)
	}

	if !c.Quiet {
		// keep stdout clean when the report itself goes there
		summary := streams.Out
		if c.Output == "-" {
			summary = streams.Err
		}
		if err := exporter.ExportSummary(res.Stats, summary); err != nil {
			log.Warn("summary not written", "error", err)
		}
	}

	return writeErr
}

func (c *CLI) readInput(streams Streams, log *slog.Logger) (*types.LineBuffer, error) {
	log.Info("begin reading input", "source", c.Input, "encoding", c.Encoding)

	var (
		buf *types.LineBuffer
		err error
	)
	if c.Input == "-" {
		if isTerminal(streams.In) {
			return nil, fmt.Errorf("stdin is %w, pipe a document or name a file", ErrNotATerminal)
		}
		buf, err = lines.Read(streams.In, c.Encoding)
	} else {
		buf, err = lines.ReadFile(c.Input, c.Encoding)
	}

	if err != nil {
		if c.AllowMissing && errors.Is(err, fs.ErrNotExist) {
			log.Warn("input missing, counting an empty document", "source", c.Input)
			buf = types.NewLineBuffer(0)
			buf.Freeze()
			return buf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", c.Input, err)
	}

	log.Info("finished reading input", "lines", buf.Len())
	return buf, nil
}

func (c *CLI) writeReport(entries []types.WordEntry, stats types.RunStats, streams Streams, log *slog.Logger) (err error) {
	log.Info("begin generating report", "output", c.Output, "format", c.Format)

	w := streams.Out
	if c.Output != "-" {
		f, cerr := os.Create(c.Output)
		if cerr != nil {
			return fmt.Errorf("creating report: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil && cerr != nil {
				err = fmt.Errorf("closing report: %w", cerr)
			}
		}()
		w = f
	}

	switch c.Format {
	case "table":
		err = exporter.ExportTable(entries, w)
	case "json":
		err = exporter.ExportJSON(entries, stats, w)
	default:
		err = exporter.ExportText(entries, w)
	}
	if err != nil {
		return err
	}

	log.Info("finished generating report", "output", c.Output, "words", len(entries))
	return nil
}
