// Package retry provides backoff algorithm implementations
package retry

import (
	"math"
	"math/rand"
	"time"
)

// BackoffStrategy defines the backoff strategy interface
type BackoffStrategy interface {
	// NextDelay calculates the delay for the next retry
	NextDelay(attempt int) time.Duration

	// Reset resets the backoff state
	Reset()
}

// FixedBackoff implements fixed backoff strategy
type FixedBackoff struct {
	delay  time.Duration
	jitter JitterFunc
}

// NewFixedBackoff creates a fixed backoff strategy
func NewFixedBackoff(delay time.Duration, opts ...BackoffStrategyOption) *FixedBackoff {
	b := &FixedBackoff{
		delay: delay,
	}

	for _, opt := range opts {
		opt.applyToFixed(b)
	}

	return b
}

// NextDelay calculates the delay for the next retry
func (b *FixedBackoff) NextDelay(attempt int) time.Duration {
	delay := b.delay
	if b.jitter != nil {
		delay = b.jitter(delay)
	}
	return delay
}

// Reset resets the backoff state
func (b *FixedBackoff) Reset() {
	// fixed backoff is stateless, no reset needed
}

// ExponentialBackoff implements exponential backoff strategy
type ExponentialBackoff struct {
	initialDelay time.Duration
	multiplier   float64
	maxDelay     time.Duration
	jitter       JitterFunc
}

// NewExponentialBackoff creates an exponential backoff strategy
func NewExponentialBackoff(initialDelay time.Duration, opts ...BackoffStrategyOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: initialDelay,
		multiplier:   2.0,
		maxDelay:     30 * time.Second,
	}

	for _, opt := range opts {
		opt.applyToExponential(b)
	}

	return b
}

// NextDelay calculates the delay for the next retry
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	delay := time.Duration(float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt-1)))

	if delay > b.maxDelay {
		delay = b.maxDelay
	}

	if b.jitter != nil {
		delay = b.jitter(delay)
	}

	return delay
}

// Reset resets the backoff state
func (b *ExponentialBackoff) Reset() {
	// exponential backoff is stateless, no reset needed
}

// LinearBackoff implements linear backoff strategy
type LinearBackoff struct {
	initialDelay time.Duration
	increment    time.Duration
	maxDelay     time.Duration
	jitter       JitterFunc
}

// NewLinearBackoff creates a linear backoff strategy
func NewLinearBackoff(initialDelay, increment time.Duration, opts ...BackoffStrategyOption) *LinearBackoff {
	b := &LinearBackoff{
		initialDelay: initialDelay,
		increment:    increment,
		maxDelay:     30 * time.Second,
	}

	for _, opt := range opts {
		opt.applyToLinear(b)
	}

	return b
}

// NextDelay calculates the delay for the next retry
func (b *LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	delay := b.initialDelay + time.Duration(attempt-1)*b.increment

	if delay > b.maxDelay {
		delay = b.maxDelay
	}

	if b.jitter != nil {
		delay = b.jitter(delay)
	}

	return delay
}

// Reset resets the backoff state
func (b *LinearBackoff) Reset() {
	// linear backoff is stateless, no reset needed
}

// JitterFunc jitter function type
type JitterFunc func(time.Duration) time.Duration

// DampenedJitter scales the delay by a uniform random factor in [0.5, 1.0).
// It only ever shortens the nominal delay, never lengthens it, so the
// unjittered backoff curve stays the worst case.
func DampenedJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	return time.Duration(float64(delay) * (0.5 + rand.Float64()*0.5))
}

// FullJitter full jitter function - random within [0, delay) range
func FullJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(delay)))
}

// EqualJitter equal jitter function - delay/2 + random(0, delay/2)
func EqualJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	if half <= 0 {
		// sub-2ns delays have no room to jitter
		return delay
	}
	return half + time.Duration(rand.Int63n(int64(half)))
}

// BackoffStrategyOption backoff strategy configuration option
type BackoffStrategyOption interface {
	applyToFixed(*FixedBackoff)
	applyToExponential(*ExponentialBackoff)
	applyToLinear(*LinearBackoff)
}

type backoffStrategyOption struct {
	multiplier *float64
	maxDelay   *time.Duration
	jitter     JitterFunc
}

func (o *backoffStrategyOption) applyToFixed(b *FixedBackoff) {
	if o.jitter != nil {
		b.jitter = o.jitter
	}
}

func (o *backoffStrategyOption) applyToExponential(b *ExponentialBackoff) {
	if o.multiplier != nil {
		b.multiplier = *o.multiplier
	}
	if o.maxDelay != nil {
		b.maxDelay = *o.maxDelay
	}
	if o.jitter != nil {
		b.jitter = o.jitter
	}
}

func (o *backoffStrategyOption) applyToLinear(b *LinearBackoff) {
	if o.maxDelay != nil {
		b.maxDelay = *o.maxDelay
	}
	if o.jitter != nil {
		b.jitter = o.jitter
	}
}

// WithBackoffMultiplier sets backoff multiplier (exponential backoff only)
func WithBackoffMultiplier(multiplier float64) BackoffStrategyOption {
	return &backoffStrategyOption{multiplier: &multiplier}
}

// WithBackoffMaxDelay sets maximum delay time
func WithBackoffMaxDelay(maxDelay time.Duration) BackoffStrategyOption {
	return &backoffStrategyOption{maxDelay: &maxDelay}
}

// WithBackoffJitter sets jitter function
func WithBackoffJitter(jitter JitterFunc) BackoffStrategyOption {
	return &backoffStrategyOption{jitter: jitter}
}
