package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ProcessAll submits one task per element of items, in order, then waits
// for every result. It returns a slice of results aligned with items and
// the first error encountered, if any. A task error does not stop the
// other tasks: every submitted task runs, the ctx passed to fn is cancelled
// once the first error has been collected, and a failed item's result is
// the zero value. If Submit fails (the pool is closed), ProcessAll returns
// that error at once with every result at the zero value.
//
// ProcessAll is pure sugar over Submit/Future: it introduces no new pool
// semantics, only a convenient way to fan a slice out across the existing
// core and fan the futures back in.
func ProcessAll[T, R any](ctx context.Context, p *Pool, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	futures := make([]futureHandle[R], len(items))

	for i, item := range items {
		item := item
		future, err := Submit(p, func() (R, error) {
			return fn(ctx, item)
		})
		if err != nil {
			return results, err
		}
		futures[i] = futureHandle[R]{future: future}
	}

	for i := range futures {
		i := i
		g.Go(func() error {
			v, err := futures[i].future.Get()
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// futureHandle exists only so ProcessAll can build a slice of futures
// whose element type carries R without repeating the generic parameter on
// every reference.
type futureHandle[R any] struct {
	future interface {
		Get() (R, error)
	}
}

// ProcessStream submits one task per item received on in, and streams
// results out on the returned channel as they complete (not necessarily in
// submission order). The returned channel is closed once in is closed and
// every submitted task has completed. The caller must drain results until
// it is closed, or cancel ctx, to avoid leaking the goroutine driving it.
func ProcessStream[T, R any](ctx context.Context, p *Pool, in <-chan T, fn func(context.Context, T) (R, error)) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var g errgroup.Group
		for {
			select {
			case item, ok := <-in:
				if !ok {
					g.Wait()
					return
				}
				future, err := Submit(p, func() (R, error) {
					return fn(ctx, item)
				})
				if err != nil {
					continue
				}
				g.Go(func() error {
					v, err := future.Get()
					if err != nil {
						return nil
					}
					select {
					case out <- v:
					case <-ctx.Done():
					}
					return nil
				})
			case <-ctx.Done():
				g.Wait()
				return
			}
		}
	}()

	return out
}
