package batch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Worker limits.
const (
	DefaultWorkers = 4
	MaxWorkers     = 64
)

// Processor errors.
var (
	ErrInvalidWorkers = errors.New("workers must be between 1 and 64")
	ErrNilCallback    = errors.New("batch callback cannot be nil")
)

// ItemCallback processes the item at index. A returned error cancels the
// remaining work.
type ItemCallback[T, R any] func(ctx context.Context, index int, item T) (R, error)

// ProgressCallback is invoked after each item completes.
type ProgressCallback func(snapshot ProgressSnapshot)

// Processor runs a callback over a slice on a bounded number of goroutines.
type Processor[T, R any] struct {
	workers    int
	onProgress ProgressCallback
}

// NewProcessor returns a processor running at most workers callbacks at once.
func NewProcessor[T, R any](workers int) (*Processor[T, R], error) {
	if workers < 1 || workers > MaxWorkers {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, workers)
	}
	return &Processor[T, R]{workers: workers}, nil
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T, R]) WithProgressCallback(callback ProgressCallback) *Processor[T, R] {
	p.onProgress = callback
	return p
}

// Workers returns the concurrency limit.
func (p *Processor[T, R]) Workers() int { return p.workers }

// Process calls callback for every item and returns the results in item
// order. The first callback error cancels the context passed to the others
// and is returned wrapped with its index.
func (p *Processor[T, R]) Process(ctx context.Context, items []T, callback ItemCallback[T, R]) ([]R, error) {
	if callback == nil {
		return nil, ErrNilCallback
	}

	results := make([]R, len(items))
	progress := NewProgress(len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, item := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := callback(gctx, i, item)
			if err != nil {
				return fmt.Errorf("item %d failed: %w", i, err)
			}
			results[i] = r
			progress.AddProcessed(1)
			if p.onProgress != nil {
				p.onProgress(progress.Snapshot())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
