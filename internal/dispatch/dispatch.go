// Package dispatch splits a batch of work into contiguous ranges, runs one
// goroutine per range and joins the results back in range order.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// MaxWorkers caps the default worker count on large hosts.
const MaxWorkers = 64

// ErrNegativeTotal is returned when a batch asks for fewer than zero items.
var ErrNegativeTotal = errors.New("negative total")

// Range is the half-open index interval [Start, End) owned by one worker.
type Range struct {
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// RangeFunc produces exactly r.Len() items for a range.
type RangeFunc[T any] func(ctx context.Context, r Range) ([]T, error)

// Split partitions total items into workers contiguous ranges of
// total/workers items each. The last range absorbs the remainder, so when
// total < workers every range but the last is empty. total must be >= 0.
func Split(total, workers int) []Range {
	if workers < 1 {
		workers = 1
	}

	chunk := total / workers
	ranges := make([]Range, workers)
	for i := range ranges {
		ranges[i] = Range{Start: i * chunk, End: (i + 1) * chunk}
	}
	ranges[workers-1].End = total
	return ranges
}

// DefaultWorkers returns GOMAXPROCS clamped to [1, MaxWorkers].
func DefaultWorkers() int {
	return min(max(runtime.GOMAXPROCS(0), 1), MaxWorkers)
}

// Dispatcher runs range functions over a fixed number of workers.
type Dispatcher struct {
	workers int
	logger  *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithWorkers sets the worker count. Values below 1 select DefaultWorkers.
func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n < 1 {
			n = DefaultWorkers()
		}
		d.workers = n
	}
}

// WithLogger sets the logger for batch events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		workers: DefaultWorkers(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Workers returns the number of ranges a batch is split into.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Collect splits total items across the dispatcher's workers, runs fn for
// every range concurrently and concatenates the results in range order,
// regardless of completion order. If any range fails the whole batch fails
// and no partial result is returned.
func Collect[T any](ctx context.Context, d *Dispatcher, total int, fn RangeFunc[T]) ([]T, error) {
	if total < 0 {
		return nil, fmt.Errorf("collect %d items: %w", total, ErrNegativeTotal)
	}

	ranges := Split(total, d.workers)
	results := make([][]T, len(ranges))
	started := time.Now()

	d.logger.Debug("batch started", "total", total, "workers", len(ranges))

	g, gctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			items, err := fn(gctx, r)
			if err != nil {
				return fmt.Errorf("range %d [%d, %d): %w", i, r.Start, r.End, err)
			}
			if len(items) != r.Len() {
				return fmt.Errorf("range %d [%d, %d): produced %d items, want %d", i, r.Start, r.End, len(items), r.Len())
			}
			results[i] = items
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		d.logger.Error("batch failed", "total", total, "err", err)
		return nil, err
	}

	out := make([]T, 0, total)
	for _, items := range results {
		out = append(out, items...)
	}

	d.logger.Debug("batch finished", "total", total, "elapsed", time.Since(started))
	return out, nil
}
