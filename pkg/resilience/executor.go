// Package resilience composes retry and circuit breaking
package resilience

import (
	"context"

	"github.com/jzx17/goresilience/pkg/breaker"
	"github.com/jzx17/goresilience/pkg/retry"
	"github.com/jzx17/goresilience/pkg/types"
)

// ExecuteFunc is the function type to protect
type ExecuteFunc[T any] func(ctx context.Context) (T, error)

// ResilientExecutor runs operations through a circuit breaker that gates a
// retry sequence. The breaker wraps the entire retry sequence as a single
// unit of work: one window outcome per top-level call, and no attempts at
// all while the breaker is OPEN.
type ResilientExecutor struct {
	retryExecutor  *retry.RetryExecutor
	circuitBreaker *breaker.CircuitBreaker
}

// New composes a retry executor with a circuit breaker. Both are long-lived;
// in particular the breaker must be shared per guarded dependency, never
// constructed per call.
func New(retryExecutor *retry.RetryExecutor, circuitBreaker *breaker.CircuitBreaker) *ResilientExecutor {
	return &ResilientExecutor{
		retryExecutor:  retryExecutor,
		circuitBreaker: circuitBreaker,
	}
}

// NewFromConfigs builds the composed executor from declarative configs
func NewFromConfigs(retryConfig retry.Config, breakerConfig breaker.Config, opts ...Option) (*ResilientExecutor, error) {
	options := applyOptions(opts)

	policy, err := retry.NewPolicy(retryConfig)
	if err != nil {
		return nil, err
	}

	retryOpts := options.retryOptions
	if options.clock != nil {
		retryOpts = append(retryOpts, retry.WithClock(options.clock))
	}
	retryExecutor := retry.NewRetryExecutor(policy, retryOpts...)

	breakerOpts := options.breakerOptions
	if options.clock != nil {
		breakerOpts = append(breakerOpts, breaker.WithClock(options.clock))
	}
	circuitBreaker, err := breaker.New(breakerConfig, breakerOpts...)
	if err != nil {
		return nil, err
	}

	return New(retryExecutor, circuitBreaker), nil
}

// Execute runs fn with retries inside one breaker attempt. If the breaker is
// OPEN the retry loop never starts and an *breaker.OpenError is returned;
// otherwise the breaker records a single outcome once the retry sequence has
// finished - success if any attempt succeeded, failure only after all
// attempts were exhausted. An operation that fails twice and then succeeds
// therefore contributes one success to the window, not three outcomes.
func Execute[T any](re *ResilientExecutor, ctx context.Context, fn ExecuteFunc[T]) (T, error) {
	return breaker.Execute(re.circuitBreaker, ctx, func(ctx context.Context) (T, error) {
		return retry.Execute(re.retryExecutor, ctx, retry.ExecuteFunc[T](fn))
	})
}

// ExecuteAsync runs Execute asynchronously
func ExecuteAsync[T any](re *ResilientExecutor, ctx context.Context, fn ExecuteFunc[T]) <-chan types.Result[T] {
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		clock := types.ClockFromContext(ctx)
		start := clock.Now()
		value, err := Execute(re, ctx, fn)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: clock.Since(start),
		}
	}()

	return resultChan
}

// Breaker exposes the underlying circuit breaker for status polling
func (re *ResilientExecutor) Breaker() *breaker.CircuitBreaker {
	return re.circuitBreaker
}

// RetryStats returns the retry statistics snapshot
func (re *ResilientExecutor) RetryStats() retry.RetryStats {
	return re.retryExecutor.GetStats()
}

// Option is a configuration option for the composed executor
type Option func(*executorOptions)

type executorOptions struct {
	clock          types.Clock
	retryOptions   []retry.ExecutorOption
	breakerOptions []breaker.Option
}

func applyOptions(opts []Option) *executorOptions {
	options := &executorOptions{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithClock sets the clock for both the retry executor and the breaker
func WithClock(clock types.Clock) Option {
	return func(o *executorOptions) {
		o.clock = clock
	}
}

// WithRetryOptions forwards options to the retry executor
func WithRetryOptions(opts ...retry.ExecutorOption) Option {
	return func(o *executorOptions) {
		o.retryOptions = append(o.retryOptions, opts...)
	}
}

// WithBreakerOptions forwards options to the circuit breaker
func WithBreakerOptions(opts ...breaker.Option) Option {
	return func(o *executorOptions) {
		o.breakerOptions = append(o.breakerOptions, opts...)
	}
}
