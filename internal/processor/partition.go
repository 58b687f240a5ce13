package processor

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/badele/wordfreq/internal/types"
)

var ErrInvalidWorkers = errors.New("worker count must be positive")

// Partition splits [0,total) into workers contiguous ranges of total/workers
// lines. The remainder goes to the last range. With more workers than lines
// the leading ranges are empty and the last one takes everything.
func Partition(total, workers int) ([]types.Range, error) {
	if workers < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	if total < 0 {
		total = 0
	}

	limit := total / workers
	ranges := make([]types.Range, workers)
	for i := range ranges {
		ranges[i] = types.Range{Start: i * limit, End: (i + 1) * limit}
	}
	ranges[workers-1].End = total

	return ranges, nil
}

// ResolveWorkers maps the configured worker count to the one actually used:
// 0 selects runtime.GOMAXPROCS.
func ResolveWorkers(n int) (int, error) {
	switch {
	case n == 0:
		return runtime.GOMAXPROCS(0), nil
	case n < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidWorkers, n)
	}
	return n, nil
}
