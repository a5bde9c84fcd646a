package resilience

import (
	"context"
	"time"

	"github.com/jzx17/goresilience/pkg/types"
)

// WithTimeout wraps fn so that it fails with types.ErrOperationTimeout when
// it does not complete within timeout. Expiry is an ordinary failure: the
// retry predicate and the breaker see it like any other operation error, so
// a timed-out attempt is only retried if the predicate allows it.
//
// The wrapped function keeps running in its goroutine after expiry; its
// eventual result is discarded. Operations should honor ctx to stop early.
func WithTimeout[T any](fn ExecuteFunc[T], timeout time.Duration, opts ...TimeoutOption) ExecuteFunc[T] {
	options := &timeoutOptions{clock: types.NewRealClock()}
	for _, opt := range opts {
		opt(options)
	}

	return func(ctx context.Context) (T, error) {
		var zero T

		resultChan := make(chan types.Result[T], 1)
		go func() {
			value, err := fn(ctx)
			resultChan <- types.Result[T]{Value: value, Error: err}
		}()

		timer := options.clock.NewTimer(timeout)
		defer timer.Stop()

		select {
		case result := <-resultChan:
			return result.Value, result.Error
		case <-timer.C():
			return zero, types.ErrOperationTimeout
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// TimeoutOption is a configuration option for WithTimeout
type TimeoutOption func(*timeoutOptions)

type timeoutOptions struct {
	clock types.Clock
}

// WithTimeoutClock sets the clock used for the expiry timer
func WithTimeoutClock(clock types.Clock) TimeoutOption {
	return func(o *timeoutOptions) {
		o.clock = clock
	}
}
