// Package retry provides a retry executor with bounded, jittered exponential
// backoff and pluggable retry policies.
//
// Key Features:
//
// 1. Multiple retry policies:
//   - FixedDelayRetry: Fixed delay between attempts
//   - ExponentialBackoffRetry: Exponential backoff with delay cap
//   - CustomRetry: Caller-supplied delay function
//
// 2. Standalone backoff algorithms:
//   - FixedBackoff: Fixed delay
//   - ExponentialBackoff: Exponential backoff
//   - LinearBackoff: Linear backoff
//
// 3. Jitter support:
//   - DampenedJitter: Uniform multiplier in [0.5, 1.0) (default for Config)
//   - FullJitter: Random within [0, delay)
//   - EqualJitter: delay/2 plus random half
//
// 4. Retry executor:
//   - Synchronous and asynchronous execution
//   - Context cancellation honored before attempts and during backoff
//   - Retry statistics and event notification
//   - Injectable clock for deterministic tests
//
// Attempt accounting: MaxAttempts bounds the total number of invocations of
// the operation, the first call included. A policy whose condition rejects an
// error returns it immediately without further delay, and exhausting all
// attempts surfaces the last operation error unchanged.
//
// Basic usage example:
//
//	policy, err := retry.NewPolicy(retry.Config{
//		MaxAttempts:     5,
//		InitialDelay:    100 * time.Millisecond,
//		MaxDelay:        10 * time.Second,
//		ExponentialBase: 2,
//		Jitter:          true,
//	})
//	if err != nil {
//		return err
//	}
//
//	executor := retry.NewRetryExecutor(policy)
//
//	result, err := retry.Execute(executor, ctx, func(ctx context.Context) (string, error) {
//		return doSomething()
//	})
//
// Custom retry conditions:
//
//	policy := retry.NewFixedDelayRetry(3, 100*time.Millisecond,
//		retry.WithRetryCondition(func(err error) bool {
//			return isTemporaryError(err)
//		}))
//
// Event handling:
//
//	handler := retry.NewDefaultEventHandler(logger)
//	executor := retry.NewRetryExecutor(policy,
//		retry.WithEventHandler(handler))
//
// Thread safety:
//
// All public types and methods are thread-safe and can be safely used in
// concurrent environments.
package retry
