// Package retry provides retry mechanism strategies and implementations
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jzx17/goresilience/pkg/types"
)

// RetryPolicy defines the retry strategy interface
type RetryPolicy interface {
	// ShouldRetry determines whether to retry after the given attempt
	ShouldRetry(err error, attempt int) bool

	// NextDelay returns the delay before the next attempt. attempt is the
	// 1-based number of the attempt that just failed.
	NextDelay(attempt int) time.Duration

	// MaxAttempts returns the maximum number of attempts (not retries)
	MaxAttempts() int

	// Reset resets the policy state (for stateful policies)
	Reset()
}

// RetryCondition is a function that determines retry conditions
type RetryCondition func(error) bool

// Config describes a retry policy declaratively. NewPolicy turns it into an
// ExponentialBackoffRetry.
type Config struct {
	// MaxAttempts bounds the total number of invocations, first call included
	MaxAttempts int

	// InitialDelay is the delay after the first failed attempt
	InitialDelay time.Duration

	// MaxDelay caps the computed backoff delay
	MaxDelay time.Duration

	// ExponentialBase is the backoff growth factor (default 2)
	ExponentialBase float64

	// Jitter enables the dampening jitter multiplier in [0.5, 1.0)
	Jitter bool

	// IsRetryable decides whether an error is worth retrying.
	// Defaults to DefaultRetryCondition.
	IsRetryable RetryCondition
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     3,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        30 * time.Second,
		ExponentialBase: 2.0,
		Jitter:          true,
	}
}

// Validate checks configuration invariants
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: MaxAttempts must be >= 1, got %d", types.ErrInvalidConfig, c.MaxAttempts)
	}
	if c.InitialDelay < 0 {
		return fmt.Errorf("%w: InitialDelay must be >= 0, got %v", types.ErrInvalidConfig, c.InitialDelay)
	}
	if c.MaxDelay < c.InitialDelay {
		return fmt.Errorf("%w: MaxDelay %v is below InitialDelay %v", types.ErrInvalidConfig, c.MaxDelay, c.InitialDelay)
	}
	if c.ExponentialBase != 0 && c.ExponentialBase <= 1 {
		return fmt.Errorf("%w: ExponentialBase must be > 1, got %v", types.ErrInvalidConfig, c.ExponentialBase)
	}
	return nil
}

// NewPolicy creates an exponential backoff policy from a Config
func NewPolicy(cfg Config) (*ExponentialBackoffRetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := cfg.ExponentialBase
	if base == 0 {
		base = 2.0
	}

	opts := []BackoffOption{
		WithMultiplier(base),
		WithMaxDelay(cfg.MaxDelay),
	}

	policy := NewExponentialBackoffRetry(cfg.MaxAttempts, cfg.InitialDelay, opts...)
	if cfg.Jitter {
		policy.jitter = DampenedJitter
	}
	if cfg.IsRetryable != nil {
		policy.retryCondition = cfg.IsRetryable
	}

	return policy, nil
}

// BaseRetryPolicy provides common retry functionality
type BaseRetryPolicy struct {
	maxAttempts    int
	retryCondition RetryCondition
	jitter         JitterFunc
	mu             sync.RWMutex
}

// NewBaseRetryPolicy creates a base retry policy
func NewBaseRetryPolicy(maxAttempts int, opts ...PolicyOption) *BaseRetryPolicy {
	policy := &BaseRetryPolicy{
		maxAttempts:    maxAttempts,
		retryCondition: DefaultRetryCondition,
	}

	for _, opt := range opts {
		opt(policy)
	}

	return policy
}

// ShouldRetry determines whether to retry
func (p *BaseRetryPolicy) ShouldRetry(err error, attempt int) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if attempt >= p.maxAttempts {
		return false
	}

	return p.retryCondition(err)
}

// MaxAttempts returns the maximum number of attempts
func (p *BaseRetryPolicy) MaxAttempts() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.maxAttempts
}

// Reset resets the policy state
func (p *BaseRetryPolicy) Reset() {
	// base policy is stateless, no reset needed
}

// applyJitter applies the configured jitter to a delay
func (p *BaseRetryPolicy) applyJitter(delay time.Duration) time.Duration {
	if p.jitter == nil {
		return delay
	}
	return p.jitter(delay)
}

// FixedDelayRetry implements fixed delay retry strategy
type FixedDelayRetry struct {
	*BaseRetryPolicy
	delay time.Duration
}

// NewFixedDelayRetry creates a fixed delay retry policy
func NewFixedDelayRetry(maxAttempts int, delay time.Duration, opts ...PolicyOption) *FixedDelayRetry {
	return &FixedDelayRetry{
		BaseRetryPolicy: NewBaseRetryPolicy(maxAttempts, opts...),
		delay:           delay,
	}
}

// NextDelay returns the delay before the next attempt
func (p *FixedDelayRetry) NextDelay(attempt int) time.Duration {
	return p.applyJitter(p.delay)
}

// ExponentialBackoffRetry implements exponential backoff retry strategy.
// The delay after failed attempt k (1-based) is
// min(initialDelay * multiplier^(k-1), maxDelay), optionally jittered.
type ExponentialBackoffRetry struct {
	*BaseRetryPolicy
	initialDelay time.Duration
	multiplier   float64
	maxDelay     time.Duration
}

// NewExponentialBackoffRetry creates an exponential backoff retry policy
func NewExponentialBackoffRetry(maxAttempts int, initialDelay time.Duration, opts ...BackoffOption) *ExponentialBackoffRetry {
	policy := &ExponentialBackoffRetry{
		BaseRetryPolicy: NewBaseRetryPolicy(maxAttempts),
		initialDelay:    initialDelay,
		multiplier:      2.0,
		maxDelay:        30 * time.Second,
	}

	for _, opt := range opts {
		opt.apply(policy)
	}

	return policy
}

// NextDelay returns the delay before the next attempt
func (p *ExponentialBackoffRetry) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := time.Duration(float64(p.initialDelay) * math.Pow(p.multiplier, float64(attempt-1)))
	if delay > p.maxDelay {
		delay = p.maxDelay
	}
	return p.applyJitter(delay)
}

// CustomRetry implements custom retry strategy
type CustomRetry struct {
	*BaseRetryPolicy
	delayFunc DelayFunc
}

// DelayFunc is a custom delay calculation function
type DelayFunc func(attempt int) time.Duration

// NewCustomRetry creates a custom retry policy
func NewCustomRetry(maxAttempts int, delayFunc DelayFunc, opts ...PolicyOption) *CustomRetry {
	return &CustomRetry{
		BaseRetryPolicy: NewBaseRetryPolicy(maxAttempts, opts...),
		delayFunc:       delayFunc,
	}
}

// NextDelay returns the delay before the next attempt
func (p *CustomRetry) NextDelay(attempt int) time.Duration {
	return p.applyJitter(p.delayFunc(attempt))
}

// PolicyOption is a configuration option for retry policies
type PolicyOption func(*BaseRetryPolicy)

// WithRetryCondition sets the retry condition
func WithRetryCondition(condition RetryCondition) PolicyOption {
	return func(p *BaseRetryPolicy) {
		p.retryCondition = condition
	}
}

// WithJitter sets the jitter function applied to computed delays
func WithJitter(jitter JitterFunc) PolicyOption {
	return func(p *BaseRetryPolicy) {
		p.jitter = jitter
	}
}

// BackoffOption is a configuration option for backoff-based policies
type BackoffOption interface {
	apply(*ExponentialBackoffRetry)
}

type backoffOption struct {
	multiplier *float64
	maxDelay   *time.Duration
}

func (o *backoffOption) apply(policy *ExponentialBackoffRetry) {
	if o.multiplier != nil {
		policy.multiplier = *o.multiplier
	}
	if o.maxDelay != nil {
		policy.maxDelay = *o.maxDelay
	}
}

// WithMultiplier sets the multiplier for exponential backoff
func WithMultiplier(multiplier float64) BackoffOption {
	return &backoffOption{multiplier: &multiplier}
}

// WithMaxDelay sets the maximum delay time
func WithMaxDelay(maxDelay time.Duration) BackoffOption {
	return &backoffOption{maxDelay: &maxDelay}
}

// DefaultRetryCondition is the default retry condition
func DefaultRetryCondition(err error) bool {
	if err == nil {
		return false
	}

	// context-related errors are never retried
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	// explicit retryability wins
	var retryableErr *types.RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	switch {
	case errors.Is(err, types.ErrOperationTimeout), errors.Is(err, types.ErrUnavailable):
		return true
	default:
		return false
	}
}

// TimeoutOrTemporary reports whether err advertises itself as a timeout or
// temporary condition through the Timeout()/Temporary() interfaces that net
// errors implement. Useful as a retry condition for network-facing
// operations.
func TimeoutOrTemporary(err error) bool {
	if err == nil {
		return false
	}

	var timeoutErr interface{ Timeout() bool }
	if errors.As(err, &timeoutErr) && timeoutErr.Timeout() {
		return true
	}

	var tempErr interface{ Temporary() bool }
	if errors.As(err, &tempErr) && tempErr.Temporary() {
		return true
	}

	return false
}

// AlwaysRetry retries every error
func AlwaysRetry(err error) bool {
	return err != nil
}

// NeverRetry degrades the executor to a single-attempt call
func NeverRetry(err error) bool {
	return false
}
