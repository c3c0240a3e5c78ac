// Package workerpool provides bounded fan-out helpers.
package workerpool

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result is the settled outcome of processing one item.
type Result[R any] struct {
	Value R
	Err   error
}

// Settle runs process for every item with at most workerCount calls in flight and waits
// for all of them. Outcomes are stored at the index of their item; a failing item never
// cancels its siblings. A non-positive workerCount runs every item at once.
func Settle[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) (R, error),
) []Result[R] {
	results := make([]Result[R], len(items))
	if len(items) == 0 {
		return results
	}
	if workerCount <= 0 {
		workerCount = len(items)
	}

	var g errgroup.Group
	g.SetLimit(workerCount)
	for i, item := range items {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					results[i] = Result[R]{Err: fmt.Errorf("panic: %v", r)}
				}
			}()
			value, err := process(ctx, item)
			results[i] = Result[R]{Value: value, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Failed counts results carrying an error.
func Failed[R any](results []Result[R]) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
