// Package breaker provides the circuit breaker state machine
package breaker

import (
	"context"
	"sync"
	"time"

	"github.com/jzx17/goresilience/pkg/types"
)

// State is the circuit breaker state
type State int32

const (
	// StateClosed admits every call
	StateClosed State = iota

	// StateOpen rejects every call until Timeout has elapsed
	StateOpen

	// StateHalfOpen admits up to HalfOpenMaxCalls probes
	StateHalfOpen
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ExecuteFunc is the function type guarded by the breaker
type ExecuteFunc[T any] func(ctx context.Context) (T, error)

// StateChangeHandler is notified after every state transition
type StateChangeHandler func(name string, from, to State)

// CircuitBreaker guards an operation with a CLOSED/OPEN/HALF_OPEN state
// machine driven by a sliding window of recent outcomes. A breaker instance
// is long-lived and shared by every caller of the operation it guards; all
// state is owned by the breaker and mutated under a single mutex so that
// threshold checks and transitions are atomic.
type CircuitBreaker struct {
	config Config
	clock  types.Clock

	onStateChange StateChangeHandler

	mu                sync.Mutex
	state             State
	window            *slidingWindow
	metrics           Metrics
	lastFailure       time.Time // OPEN-state reference clock
	halfOpenCalls     int       // probes admitted in the current HALF_OPEN period
	halfOpenSuccesses int
}

// New creates a circuit breaker in the CLOSED state
func New(config Config, opts ...Option) (*CircuitBreaker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	b := &CircuitBreaker{
		config: config,
		clock:  types.NewRealClock(),
		state:  StateClosed,
		window: newSlidingWindow(config.SlidingWindowSize),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// Option is a configuration option for the circuit breaker
type Option func(*CircuitBreaker)

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) Option {
	return func(b *CircuitBreaker) {
		b.clock = clock
	}
}

// WithStateChangeHandler sets a callback invoked after state transitions.
// The callback runs outside the breaker lock and may call back into the
// breaker.
func WithStateChangeHandler(handler StateChangeHandler) Option {
	return func(b *CircuitBreaker) {
		b.onStateChange = handler
	}
}

// Execute runs fn under the breaker. If the call is rejected, fn is never
// invoked and an *OpenError is returned; otherwise fn's result and error
// pass through unchanged after the outcome is recorded.
func Execute[T any](b *CircuitBreaker, ctx context.Context, fn ExecuteFunc[T]) (T, error) {
	var zero T

	if err := b.admit(); err != nil {
		return zero, err
	}

	result, err := fn(ctx)
	b.record(err == nil)

	return result, err
}

// Call is the non-generic form of Execute for error-only operations
func (b *CircuitBreaker) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	_, err := Execute(b, ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// admit decides whether a call may proceed. The HALF_OPEN probe counter is
// incremented here, at admission time, so concurrent probes cannot all pass
// the cap check before any of them completes.
func (b *CircuitBreaker) admit() error {
	b.mu.Lock()

	var notify func()

	switch b.state {
	case StateClosed:
		// always admitted

	case StateOpen:
		if b.clock.Now().Sub(b.lastFailure) < b.config.Timeout {
			err := b.rejectionLocked()
			b.mu.Unlock()
			return err
		}
		// the triggering call is the first probe
		notify = b.transitionLocked(StateHalfOpen)
		b.halfOpenCalls = 1

	case StateHalfOpen:
		if b.halfOpenCalls >= b.config.HalfOpenMaxCalls {
			err := b.rejectionLocked()
			b.mu.Unlock()
			return err
		}
		b.halfOpenCalls++
	}

	b.mu.Unlock()
	if notify != nil {
		notify()
	}
	return nil
}

// record applies one admitted call's outcome to window, metrics, and state
func (b *CircuitBreaker) record(success bool) {
	b.mu.Lock()

	var notify func()
	now := b.clock.Now()

	b.window.push(success)
	b.metrics.TotalRequests++

	if success {
		b.metrics.SuccessfulRequests++
		b.metrics.LastSuccessTime = now

		if b.state == StateHalfOpen {
			b.halfOpenSuccesses++
			if b.halfOpenSuccesses >= b.config.SuccessThreshold {
				notify = b.transitionLocked(StateClosed)
				b.window.reset()
			}
		}
	} else {
		b.metrics.FailedRequests++
		b.metrics.LastFailureTime = now
		b.lastFailure = now

		switch b.state {
		case StateClosed:
			if b.window.failureCount() >= b.config.FailureThreshold {
				notify = b.transitionLocked(StateOpen)
			}
		case StateHalfOpen:
			// any half-open failure reopens immediately
			notify = b.transitionLocked(StateOpen)
		}
	}

	b.mu.Unlock()
	if notify != nil {
		notify()
	}
}

// transitionLocked switches state and returns the pending notification.
// Callers must hold b.mu and invoke the returned func after unlocking.
func (b *CircuitBreaker) transitionLocked(to State) func() {
	from := b.state
	if from == to {
		return nil
	}

	b.state = to
	b.metrics.StateTransitions++

	switch to {
	case StateOpen:
		b.metrics.OpenStateCount++
	case StateHalfOpen:
		b.metrics.HalfOpenStateCount++
		b.halfOpenCalls = 0
		b.halfOpenSuccesses = 0
	case StateClosed:
		b.halfOpenCalls = 0
		b.halfOpenSuccesses = 0
	}

	if b.onStateChange == nil {
		return nil
	}

	name := b.config.Name
	handler := b.onStateChange
	return func() { handler(name, from, to) }
}

// rejectionLocked builds the rejection error for the current state
func (b *CircuitBreaker) rejectionLocked() *OpenError {
	return &OpenError{
		Name:        b.config.Name,
		State:       b.state,
		FailureRate: b.metrics.FailureRate(),
	}
}

// Name returns the breaker name
func (b *CircuitBreaker) Name() string {
	return b.config.Name
}

// State returns the current state
func (b *CircuitBreaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Metrics returns a snapshot of the breaker metrics
func (b *CircuitBreaker) Metrics() Metrics {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.metrics
}

// Reset forces the breaker back to CLOSED, clearing the window and half-open
// counters so admission behaves as freshly constructed. Cumulative metrics
// are preserved; Reset is a recovery escape hatch, not a metrics clear.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()

	notify := b.transitionLocked(StateClosed)
	b.window.reset()
	b.halfOpenCalls = 0
	b.halfOpenSuccesses = 0
	b.lastFailure = time.Time{}

	b.mu.Unlock()
	if notify != nil {
		notify()
	}
}
