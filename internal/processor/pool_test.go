package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/badele/wordfreq/internal/counter"
	"github.com/badele/wordfreq/internal/tokenizer"
	"github.com/badele/wordfreq/internal/types"
)

func buffer(raw ...string) *types.LineBuffer {
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = tokenizer.Normalize(l)
	}
	return types.NewFrozenLineBuffer(lines)
}

func asMap(c types.Counter) map[string]uint64 {
	m := make(map[string]uint64)
	for _, e := range c.Entries() {
		m[e.Word] = e.Count
	}
	return m
}

func TestPartition(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		workers  int
		expected []types.Range
	}{
		{"Single worker", 5, 1, []types.Range{{Start: 0, End: 5}}},
		{"Even split", 6, 3, []types.Range{{Start: 0, End: 2}, {Start: 2, End: 4}, {Start: 4, End: 6}}},
		{"Remainder on last", 7, 3, []types.Range{{Start: 0, End: 2}, {Start: 2, End: 4}, {Start: 4, End: 7}}},
		{"More workers than lines", 2, 4, []types.Range{{Start: 0, End: 0}, {Start: 0, End: 0}, {Start: 0, End: 0}, {Start: 0, End: 2}}},
		{"Empty buffer", 0, 2, []types.Range{{Start: 0, End: 0}, {Start: 0, End: 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Partition(tt.total, tt.workers)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPartitionCoversEveryLine(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for workers := 1; workers <= 12; workers++ {
			ranges, err := Partition(total, workers)
			require.NoError(t, err)
			require.Len(t, ranges, workers)

			next := 0
			covered := 0
			for _, r := range ranges {
				if r.Len() == 0 {
					continue
				}
				assert.Equal(t, next, r.Start, "total=%d workers=%d", total, workers)
				next = r.End
				covered += r.Len()
			}
			assert.Equal(t, total, covered, "total=%d workers=%d", total, workers)
		}
	}
}

func TestPartitionInvalidWorkers(t *testing.T) {
	_, err := Partition(10, 0)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestResolveWorkers(t *testing.T) {
	n, err := ResolveWorkers(0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 1)

	n, err = ResolveWorkers(4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = ResolveWorkers(-1)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestRunEndToEnd(t *testing.T) {
	lines := buffer("Hello world!", "HELLO, World.")
	c := counter.NewTable()

	require.NoError(t, CountLines(context.Background(), lines, 2, c))

	assert.Equal(t, map[string]uint64{"hello": 2, "world": 2}, asMap(c))
	assert.Equal(t, uint64(4), c.Total())
}

func TestRunRequiresFrozenBuffer(t *testing.T) {
	lines := types.NewLineBuffer(1)
	require.NoError(t, lines.Append("a"))

	err := CountLines(context.Background(), lines, 1, counter.NewTable())
	assert.Error(t, err)
}

func TestRunIsIndependentOfWorkerCount(t *testing.T) {
	t.Parallel()

	raw := []string{
		"They're here, the co-workers said.",
		"",
		"It's 9 o'clock; end- of story",
		"\"Quoted\" words? Yes\\no",
		"Hello hello HELLO",
		"rock'n'roll never-ending 42 times",
		"café naïve café",
	}
	lines := buffer(raw...)

	var reference uint64
	for _, l := range raw {
		reference += uint64(len(tokenizer.Tokenize(tokenizer.Normalize(l))))
	}

	single := counter.NewTable()
	require.NoError(t, CountLines(context.Background(), lines, 1, single))
	want := asMap(single)
	assert.Equal(t, reference, single.Total())

	for workers := 1; workers <= lines.Len()+2; workers++ {
		for _, kind := range []string{counter.KindMutex, counter.KindSharded} {
			t.Run(fmt.Sprintf("%s/%d", kind, workers), func(t *testing.T) {
				c, err := counter.New(kind)
				require.NoError(t, err)

				require.NoError(t, CountLines(context.Background(), lines, workers, c))
				assert.Equal(t, want, asMap(c))
				assert.Equal(t, reference, c.Total())
			})
		}
	}
}

func TestRunNoLostUpdates(t *testing.T) {
	t.Parallel()

	raw := make([]string, 1000)
	for i := range raw {
		raw[i] = strings.Repeat("same ", 10)
	}
	lines := buffer(raw...)

	for _, workers := range []int{2, 4, 16} {
		c := counter.NewTable()
		require.NoError(t, CountLines(context.Background(), lines, workers, c))

		n, ok := c.Lookup("same")
		require.True(t, ok)
		assert.Equal(t, uint64(10000), n, "workers=%d", workers)
	}
}

// explodingCounter panics on a chosen word. Every other word waits on gate,
// so sibling workers stay parked until the pool has reported the failure.
type explodingCounter struct {
	*counter.Table
	trigger string
	gate    chan struct{}
	calls   atomic.Int64
}

func (c *explodingCounter) IncrementOrInsert(word string) {
	c.calls.Add(1)
	if word == c.trigger {
		panic("boom")
	}
	<-c.gate
	c.Table.IncrementOrInsert(word)
}

// gateHandler opens gate on the first "worker failed" record.
type gateHandler struct {
	gate chan struct{}
	once *sync.Once
}

func (h gateHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h gateHandler) Handle(_ context.Context, rec slog.Record) error {
	if rec.Message == "worker failed" {
		h.once.Do(func() { close(h.gate) })
	}
	return nil
}

func (h gateHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h gateHandler) WithGroup(string) slog.Handler      { return h }

func TestRunFailFast(t *testing.T) {
	raw := make([]string, 400)
	for i := range raw {
		raw[i] = "filler words here"
	}
	raw[0] = "bad"
	lines := buffer(raw...)

	gate := make(chan struct{})
	c := &explodingCounter{Table: counter.NewTable(), trigger: "bad", gate: gate}
	pool := NewPool(4, slog.New(gateHandler{gate: gate, once: &sync.Once{}}))

	err := pool.Run(context.Background(), lines, c)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWorkerPanic)
	assert.Contains(t, err.Error(), "worker 0")
	// the trigger plus at most the line each of the 3 siblings was parked in
	assert.LessOrEqual(t, c.calls.Load(), int64(1+3*3))
	assert.LessOrEqual(t, c.Total(), uint64(3*3))
}

func TestRunCapsWorkersToLines(t *testing.T) {
	lines := buffer("hello world", "hello")
	c := counter.NewTable()

	done := make(chan error, 1)
	go func() { done <- CountLines(context.Background(), lines, 50_000_000, c) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not finish with a huge worker count")
	}

	assert.Equal(t, map[string]uint64{"hello": 2, "world": 1}, asMap(c))
	assert.Equal(t, uint64(3), c.Total())
}

func TestRunEmptyBufferManyWorkers(t *testing.T) {
	c := counter.NewTable()
	require.NoError(t, CountLines(context.Background(), buffer(), 1_000_000, c))
	assert.Equal(t, 0, c.Len())
}

// fieldsTokenizer splits on whitespace only.
type fieldsTokenizer struct{ line string }

func (f fieldsTokenizer) Tokenize() []string { return strings.Fields(f.line) }

func (f fieldsTokenizer) Each(emit func(word string)) {
	for _, w := range strings.Fields(f.line) {
		emit(w)
	}
}

func TestRunCustomTokenizer(t *testing.T) {
	lines := buffer("it's, me", "it's")
	c := counter.NewTable()

	pool := NewPool(2, nil)
	pool.NewTokenizer = func(line string) types.Tokenizer { return fieldsTokenizer{line} }

	require.NoError(t, pool.Run(context.Background(), lines, c))
	assert.Equal(t, map[string]uint64{"it's,": 1, "me": 1, "it's": 1}, asMap(c))
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := CountLines(ctx, buffer("a b c", "d e f"), 2, counter.NewTable())
	assert.ErrorIs(t, err, context.Canceled)
}
