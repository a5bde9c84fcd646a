package breaker

import (
	"errors"
	"fmt"
)

// OpenError is returned when a call is rejected without invoking the
// protected operation, either because the breaker is OPEN or because the
// HALF_OPEN probe budget is exhausted. It is always distinguishable from the
// operation's own errors so callers can fall back immediately.
type OpenError struct {
	// Name is the breaker that rejected the call
	Name string

	// State is the breaker state at rejection time
	State State

	// FailureRate is the breaker failure rate at rejection time
	FailureRate float64
}

// Error implements the error interface
func (e *OpenError) Error() string {
	if e.State == StateHalfOpen {
		return fmt.Sprintf("circuit breaker %q is half-open and has no probe budget left (failure rate %.2f)", e.Name, e.FailureRate)
	}
	return fmt.Sprintf("circuit breaker %q is open (failure rate %.2f)", e.Name, e.FailureRate)
}

// IsOpenError checks whether err is a breaker rejection
func IsOpenError(err error) bool {
	var openErr *OpenError
	return errors.As(err, &openErr)
}
