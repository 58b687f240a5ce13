package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/badele/wordfreq/internal/tokenizer"
	"github.com/badele/wordfreq/internal/types"
)

var ErrWorkerPanic = errors.New("worker panicked")

///////////////////////////////////////////////////////////////////////////////
// Worker Pool
///////////////////////////////////////////////////////////////////////////////

// Pool counts the words of a frozen LineBuffer with a fixed number of
// workers, each owning one contiguous range of lines. NewTokenizer builds the
// per-line tokenizer; nil selects tokenizer.NewWordTokenizer.
type Pool struct {
	Workers      int
	Logger       *slog.Logger
	NewTokenizer func(line string) types.Tokenizer
}

func NewPool(workers int, logger *slog.Logger) *Pool {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pool{Workers: workers, Logger: logger}
}

// Run blocks until every worker has finished. The first failing worker
// cancels the others, which stop at their next line; all failures are
// returned joined. A cancelled ctx aborts the run with ctx.Err().
func (p *Pool) Run(ctx context.Context, lines *types.LineBuffer, counter types.Counter) error {
	if !lines.Frozen() {
		return errors.New("line buffer must be frozen before counting")
	}

	workers, err := ResolveWorkers(p.Workers)
	if err != nil {
		return err
	}

	// a worker per line at most, extra ones would only get empty ranges
	if limit := max(1, lines.Len()); workers > limit {
		p.Logger.Debug("worker count capped", "requested", workers, "workers", limit)
		workers = limit
	}

	ranges, err := Partition(lines.Len(), workers)
	if err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		failures []error
	)

	g, gctx := errgroup.WithContext(ctx)
	wctx, cancel := context.WithCancelCause(gctx)
	defer cancel(nil)

	for id, r := range ranges {
		g.Go(func() (err error) {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("%w: worker %d on lines %s: %v", ErrWorkerPanic, id, r, rec)
				}
				if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
					mu.Lock()
					failures = append(failures, err)
					mu.Unlock()
					cancel(err)
					p.Logger.Error("worker failed", "worker", id, "lines", r.String(), "error", err)
				}
			}()

			return p.work(wctx, id, lines.Slice(r), r, counter)
		})
	}

	waitErr := g.Wait()

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return waitErr
}

func (p *Pool) work(ctx context.Context, id int, lines []string, r types.Range, counter types.Counter) error {
	p.Logger.Debug("worker started", "worker", id, "lines", r.String())

	words := 0
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			p.Logger.Debug("worker cancelled", "worker", id, "words", words)
			return err
		}

		p.lineTokenizer(line).Each(func(word string) {
			counter.IncrementOrInsert(word)
			words++
		})
	}

	p.Logger.Debug("worker finished", "worker", id, "words", words)
	return nil
}

func (p *Pool) lineTokenizer(line string) types.Tokenizer {
	if p.NewTokenizer != nil {
		return p.NewTokenizer(line)
	}
	return tokenizer.NewWordTokenizer(line)
}

// CountLines runs a pool of workers over lines.
func CountLines(ctx context.Context, lines *types.LineBuffer, workers int, counter types.Counter) error {
	return NewPool(workers, nil).Run(ctx, lines, counter)
}
