// Package retry provides retry executor implementation
package retry

import (
	"context"
	"sync"
	"time"

	"github.com/jzx17/goresilience/pkg/types"
)

// RetryExecutor implements retry execution logic
type RetryExecutor struct {
	policy       RetryPolicy
	eventHandler EventHandler
	stats        RetryStats
	clock        types.Clock
}

// ExecuteFunc is the function type to retry
type ExecuteFunc[T any] func(ctx context.Context) (T, error)

// RetryStats contains retry statistics
type RetryStats struct {
	TotalAttempts   int64         // total attempt count
	TotalRetries    int64         // operations that needed more than one attempt
	TotalSuccesses  int64         // total success count
	TotalFailures   int64         // total failure count
	AverageAttempts float64       // average attempt count per operation
	LastRetryTime   time.Time     // last retry time
	TotalRetryDelay time.Duration // total retry delay time
	mu              sync.RWMutex
}

// EventHandler handles retry events
type EventHandler interface {
	OnRetryAttempt(ctx context.Context, attempt int, err error)
	OnRetrySuccess(ctx context.Context, attempt int, duration time.Duration)
	OnRetryFailure(ctx context.Context, attempt int, err error)
	OnMaxAttemptsReached(ctx context.Context, attempt int, err error)
}

// NewRetryExecutor creates a retry executor
func NewRetryExecutor(policy RetryPolicy, opts ...ExecutorOption) *RetryExecutor {
	executor := &RetryExecutor{
		policy: policy,
		stats:  RetryStats{},
		clock:  types.NewRealClock(),
	}

	for _, opt := range opts {
		opt(executor)
	}

	return executor
}

// Execute executes a function with retry logic. The operation is invoked at
// most policy.MaxAttempts() times; on success the result is returned
// immediately, and once attempts are exhausted (or the error is deemed
// non-retryable) the last operation error is returned unchanged.
func Execute[T any](r *RetryExecutor, ctx context.Context, fn ExecuteFunc[T]) (T, error) {
	return ExecuteWithName(r, ctx, "default", fn)
}

// ExecuteWithName executes a function with retry logic (with name for events)
func ExecuteWithName[T any](r *RetryExecutor, ctx context.Context, name string, fn ExecuteFunc[T]) (T, error) {
	var zero T
	attempt := 0

	r.policy.Reset()

	for {
		attempt++

		r.updateStats(func(stats *RetryStats) {
			stats.TotalAttempts++
		})

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if r.eventHandler != nil && attempt > 1 {
			r.eventHandler.OnRetryAttempt(ctx, attempt, nil)
		}

		executeStart := r.clock.Now()
		result, err := fn(ctx)
		executeDuration := r.clock.Since(executeStart)

		if err == nil {
			r.updateStats(func(stats *RetryStats) {
				stats.TotalSuccesses++
				if attempt > 1 {
					stats.TotalRetries++
				}
				stats.updateAverageAttempts()
			})

			// attempt > 1 means the operation recovered after retrying
			if r.eventHandler != nil && attempt > 1 {
				r.eventHandler.OnRetrySuccess(ctx, attempt, executeDuration)
			}

			return result, nil
		}

		if !r.policy.ShouldRetry(err, attempt) {
			r.updateStats(func(stats *RetryStats) {
				stats.TotalFailures++
				if attempt > 1 {
					stats.TotalRetries++
				}
				stats.updateAverageAttempts()
			})

			if r.eventHandler != nil {
				// exhaustion is the stop reason only when the error itself
				// was still retryable; a non-retryable verdict wins even on
				// the final attempt
				if attempt >= r.policy.MaxAttempts() && r.policy.ShouldRetry(err, attempt-1) {
					r.eventHandler.OnMaxAttemptsReached(ctx, attempt, err)
				} else {
					r.eventHandler.OnRetryFailure(ctx, attempt, err)
				}
			}

			// the last operation error surfaces unchanged
			return zero, err
		}

		delay := r.policy.NextDelay(attempt)

		r.updateStats(func(stats *RetryStats) {
			stats.LastRetryTime = r.clock.Now()
			stats.TotalRetryDelay += delay
		})

		if delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-r.clock.After(delay):
			}
		}
	}
}

// ExecuteAsync executes a function with retry asynchronously
func ExecuteAsync[T any](r *RetryExecutor, ctx context.Context, fn ExecuteFunc[T]) <-chan types.Result[T] {
	return ExecuteAsyncWithName(r, ctx, "default", fn)
}

// ExecuteAsyncWithName executes a function with retry asynchronously (with name)
func ExecuteAsyncWithName[T any](r *RetryExecutor, ctx context.Context, name string, fn ExecuteFunc[T]) <-chan types.Result[T] {
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		start := r.clock.Now()
		value, err := ExecuteWithName(r, ctx, name, fn)
		duration := r.clock.Since(start)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: duration,
		}
	}()

	return resultChan
}

// GetStats gets retry statistics
func (r *RetryExecutor) GetStats() RetryStats {
	r.stats.mu.RLock()
	defer r.stats.mu.RUnlock()
	return RetryStats{
		TotalAttempts:   r.stats.TotalAttempts,
		TotalRetries:    r.stats.TotalRetries,
		TotalSuccesses:  r.stats.TotalSuccesses,
		TotalFailures:   r.stats.TotalFailures,
		AverageAttempts: r.stats.AverageAttempts,
		LastRetryTime:   r.stats.LastRetryTime,
		TotalRetryDelay: r.stats.TotalRetryDelay,
		// don't copy mutex
	}
}

// ResetStats resets statistics
func (r *RetryExecutor) ResetStats() {
	r.stats.mu.Lock()
	defer r.stats.mu.Unlock()

	r.stats.TotalAttempts = 0
	r.stats.TotalRetries = 0
	r.stats.TotalSuccesses = 0
	r.stats.TotalFailures = 0
	r.stats.AverageAttempts = 0
	r.stats.LastRetryTime = time.Time{}
	r.stats.TotalRetryDelay = 0
}

// updateStats updates statistics (thread-safe)
func (r *RetryExecutor) updateStats(fn func(*RetryStats)) {
	r.stats.mu.Lock()
	defer r.stats.mu.Unlock()
	fn(&r.stats)
}

// updateAverageAttempts updates average attempt count
func (s *RetryStats) updateAverageAttempts() {
	totalOperations := s.TotalSuccesses + s.TotalFailures
	if totalOperations > 0 {
		s.AverageAttempts = float64(s.TotalAttempts) / float64(totalOperations)
	}
}

// ExecutorOption is a configuration option for retry executor
type ExecutorOption func(*RetryExecutor)

// WithEventHandler sets the event handler
func WithEventHandler(handler EventHandler) ExecutorOption {
	return func(r *RetryExecutor) {
		r.eventHandler = handler
	}
}

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) ExecutorOption {
	return func(r *RetryExecutor) {
		r.clock = clock
	}
}

// DefaultEventHandler is the default event handler implementation
type DefaultEventHandler struct {
	logger Logger
}

// Logger interface for logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// NewDefaultEventHandler creates a default event handler
func NewDefaultEventHandler(logger Logger) *DefaultEventHandler {
	return &DefaultEventHandler{logger: logger}
}

// OnRetryAttempt handles retry attempt events
func (h *DefaultEventHandler) OnRetryAttempt(ctx context.Context, attempt int, err error) {
	if h.logger != nil {
		h.logger.Debugf("Retry attempt %d starting", attempt)
	}
}

// OnRetrySuccess handles retry success events
func (h *DefaultEventHandler) OnRetrySuccess(ctx context.Context, attempt int, duration time.Duration) {
	if h.logger != nil {
		h.logger.Infof("Retry succeeded on attempt %d after %v", attempt, duration)
	}
}

// OnRetryFailure handles retry failure events
func (h *DefaultEventHandler) OnRetryFailure(ctx context.Context, attempt int, err error) {
	if h.logger != nil {
		h.logger.Warnf("Retry attempt %d failed: %v", attempt, err)
	}
}

// OnMaxAttemptsReached handles max attempts reached events
func (h *DefaultEventHandler) OnMaxAttemptsReached(ctx context.Context, attempt int, err error) {
	if h.logger != nil {
		h.logger.Errorf("Max retry attempts (%d) reached, final error: %v", attempt, err)
	}
}
