// Package breaker provides circuit breaker configuration
package breaker

import (
	"fmt"
	"time"

	"github.com/jzx17/goresilience/pkg/types"
)

// Config configures a CircuitBreaker
type Config struct {
	// Name identifies the breaker in errors and metrics attribution
	Name string

	// FailureThreshold is the number of failures in the sliding window that
	// trips the breaker from CLOSED to OPEN
	FailureThreshold int

	// Timeout is how long the breaker stays OPEN before admitting a probe
	Timeout time.Duration

	// HalfOpenMaxCalls caps the number of probes admitted while HALF_OPEN
	HalfOpenMaxCalls int

	// SuccessThreshold is the number of successful probes in HALF_OPEN
	// required to close the breaker
	SuccessThreshold int

	// SlidingWindowSize is the capacity of the recent-outcome window
	SlidingWindowSize int
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig(name string) Config {
	return Config{
		Name:              name,
		FailureThreshold:  5,
		Timeout:           30 * time.Second,
		HalfOpenMaxCalls:  3,
		SuccessThreshold:  2,
		SlidingWindowSize: 10,
	}
}

// Validate checks configuration invariants
func (c Config) Validate() error {
	if c.FailureThreshold < 1 {
		return fmt.Errorf("%w: FailureThreshold must be >= 1, got %d", types.ErrInvalidConfig, c.FailureThreshold)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: Timeout must be > 0, got %v", types.ErrInvalidConfig, c.Timeout)
	}
	if c.HalfOpenMaxCalls < 1 {
		return fmt.Errorf("%w: HalfOpenMaxCalls must be >= 1, got %d", types.ErrInvalidConfig, c.HalfOpenMaxCalls)
	}
	if c.SuccessThreshold < 1 {
		return fmt.Errorf("%w: SuccessThreshold must be >= 1, got %d", types.ErrInvalidConfig, c.SuccessThreshold)
	}
	if c.SlidingWindowSize < 1 {
		return fmt.Errorf("%w: SlidingWindowSize must be >= 1, got %d", types.ErrInvalidConfig, c.SlidingWindowSize)
	}
	return nil
}
