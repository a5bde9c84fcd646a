// Package breaker provides a circuit breaker guarding calls to an operation
// based on a sliding window of recent outcomes.
//
// State machine:
//
//   - CLOSED: every call is admitted. When the number of failures in the
//     sliding window reaches FailureThreshold the breaker opens.
//   - OPEN: every call is rejected with *OpenError without invoking the
//     operation. Once Timeout has elapsed since the last recorded failure,
//     the next call is admitted as a probe and the breaker becomes HALF_OPEN.
//   - HALF_OPEN: up to HalfOpenMaxCalls probes are admitted; further calls
//     are rejected. SuccessThreshold successful probes close the breaker and
//     clear the window; a single failed probe reopens it.
//
// The breaker cycles through these states for the lifetime of the instance;
// there is no terminal state. Create one breaker per guarded dependency and
// share it across callers - a per-call breaker has a meaningless window.
//
// Rejected calls never touch the window or the metrics counters, so
// TotalRequests always equals SuccessfulRequests plus FailedRequests.
//
// Basic usage:
//
//	cb, err := breaker.New(breaker.Config{
//		Name:              "billing-api",
//		FailureThreshold:  5,
//		Timeout:           30 * time.Second,
//		HalfOpenMaxCalls:  3,
//		SuccessThreshold:  2,
//		SlidingWindowSize: 10,
//	})
//	if err != nil {
//		return err
//	}
//
//	result, err := breaker.Execute(cb, ctx, func(ctx context.Context) (*Invoice, error) {
//		return client.FetchInvoice(ctx, id)
//	})
//	if breaker.IsOpenError(err) {
//		return cachedInvoice(id), nil
//	}
//
// Observability:
//
// Metrics() returns a snapshot (request counts, state entry counts, last
// success/failure times, derived rates) for callers to poll or log on their
// own cadence. WithStateChangeHandler registers a transition callback.
//
// Thread safety:
//
// A CircuitBreaker is safe for concurrent use. Admission checks, outcome
// recording, and state transitions are applied atomically under an internal
// mutex; the protected operation itself runs outside the lock.
package breaker
