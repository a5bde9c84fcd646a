// Package types defines error types
package types

import (
	"errors"
	"time"
)

// Predefined errors
var (
	// ErrOperationTimeout indicates the protected operation exceeded its deadline
	ErrOperationTimeout = errors.New("operation timeout")

	// ErrUnavailable indicates a dependency is temporarily unavailable
	ErrUnavailable = errors.New("dependency unavailable")

	// ErrInvalidConfig indicates an invalid configuration value
	ErrInvalidConfig = errors.New("invalid configuration")
)

// RetryableError represents an error with explicit retryability information.
// Operations can wrap their failures in RetryableError to steer the retry
// predicate without the predicate knowing the concrete error type.
type RetryableError struct {
	// Err is the underlying error
	Err error

	// Retryable indicates whether the error is retryable
	Retryable bool

	// RetryAfter is the suggested retry delay
	RetryAfter time.Duration
}

// Error implements the error interface
func (e *RetryableError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError wraps err as retryable
func NewRetryableError(err error) *RetryableError {
	return &RetryableError{Err: err, Retryable: true}
}

// NewPermanentError wraps err as non-retryable
func NewPermanentError(err error) *RetryableError {
	return &RetryableError{Err: err, Retryable: false}
}

// IsRetryable checks if an error is explicitly marked retryable
func IsRetryable(err error) bool {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}
	return false
}

// GetRetryDelay returns the suggested retry delay
func GetRetryDelay(err error) time.Duration {
	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.RetryAfter
	}
	return 0
}
