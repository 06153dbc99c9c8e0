// Package batch provides parallel expansion of partial entities over a
// bounded worker pool.
//
// Expanding a partial entity costs one API request, so expanding a
// whole match history or search result sequentially is slow and
// expanding it unboundedly burns through the daily request quota. The
// pool caps in-flight requests while keeping results in input order.
package batch

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/DevilXD/HiRezAPI/pkg/logging"
)

// Expander is implemented by partial entities that can be upgraded to
// their full form with one request.
type Expander[F any] interface {
	Expand(ctx context.Context) (F, error)
}

// Result is the outcome of expanding one input item. Results keep the
// input order: Index is the item's position in the input slice.
type Result[F any] struct {
	Index int
	Value F
	Err   error
}

// Config holds worker pool configuration.
type Config struct {
	// MaxWorkers is the maximum number of parallel expansions.
	MaxWorkers int

	// Timeout per expansion. Zero means no per-item timeout.
	Timeout time.Duration
}

// DefaultConfig returns a configuration suited to the API's session
// request limits.
func DefaultConfig() Config {
	return Config{
		MaxWorkers: 5,
		Timeout:    30 * time.Second,
	}
}

// ExpandAll runs expand over all items on a bounded pool and returns
// one Result per item, in input order. Failures are per-item: one
// failed expansion does not stop the others. Cancelling the context
// fails the remaining items with the context's error.
func ExpandAll[T, F any](ctx context.Context, cfg Config, items []T, expand func(context.Context, T) (F, error)) ([]Result[F], error) {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultConfig().MaxWorkers
	}
	logger := logging.NewLogger("batch")

	results := make([]Result[F], len(items))
	if len(items) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(cfg.MaxWorkers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	start := time.Now()
	done := make(chan int, len(items))

	for i := range items {
		i := i
		results[i].Index = i

		submitErr := pool.Submit(func() {
			defer func() { done <- i }()

			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}

			itemCtx := ctx
			if cfg.Timeout > 0 {
				var cancel context.CancelFunc
				itemCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
				defer cancel()
			}

			results[i].Value, results[i].Err = expand(itemCtx, items[i])
		})
		if submitErr != nil {
			results[i].Err = submitErr
			done <- i
		}
	}

	failed := 0
	for range items {
		i := <-done
		if results[i].Err != nil {
			failed++
			logger.Warn().
				Err(results[i].Err).
				Int("index", i).
				Msg("Expansion failed")
		}
	}

	logger.Debug().
		Int("items", len(items)).
		Int("failed", failed).
		Int("workers", cfg.MaxWorkers).
		Dur("duration", time.Since(start)).
		Msg("Batch expansion complete")

	return results, nil
}

// Expand is ExpandAll for slices of expandable entities.
func Expand[E Expander[F], F any](ctx context.Context, cfg Config, entities []E) ([]Result[F], error) {
	return ExpandAll(ctx, cfg, entities, func(ctx context.Context, e E) (F, error) {
		return e.Expand(ctx)
	})
}
