package pool

import (
	"context"
	"time"

	"github.com/arvindr21/stealpool/internal/backoff"
	"github.com/arvindr21/stealpool/task"
)

// SubmitWithRetry submits f and, if it returns a non-nil error, resubmits
// it up to maxAttempts-1 additional times, waiting strategy.NextDelay
// between attempts. The returned Future resolves with the first
// successful result or the last attempt's error. A panic recovered by the
// task layer counts as a failed attempt like any other error.
//
// This is an opt-in convenience layer on top of Submit; the core
// Submit/Future path never retries anything on its own.
func SubmitWithRetry[R any](ctx context.Context, p *Pool, maxAttempts int, strategy backoff.Strategy, f func() (R, error)) *task.Future[R] {
	t, future := task.New(func() (R, error) {
		var val R
		var err error

		for attempt := 0; attempt < maxAttempts; attempt++ {
			if attempt > 0 {
				select {
				case <-time.After(strategy.NextDelay(attempt - 1)):
				case <-ctx.Done():
					return val, ctx.Err()
				}
			}

			inner, submitErr := Submit(p, f)
			if submitErr != nil {
				return val, submitErr
			}

			val, err = inner.Get()
			if err == nil {
				return val, nil
			}
		}
		return val, err
	})

	go t.Invoke()
	return future
}
