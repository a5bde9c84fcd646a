// Package resilience composes the retry executor and the circuit breaker
// into one protected execution path, plus an optional timeout wrapper.
//
// Composition order:
//
// The circuit breaker wraps the entire retry sequence as a single unit of
// work, equivalent to breaker.Execute(ctx, retry sequence). This has two
// consequences callers rely on:
//
//   - The breaker window records one outcome per top-level call: success if
//     the retried sequence eventually succeeded, failure only after all
//     attempts were exhausted. A call that recovers on its fifth attempt is
//     one success, not five outcomes.
//   - While the breaker is OPEN the retry loop never starts, so a rejected
//     call costs no attempts and no backoff delay.
//
// The trade-off is deliberate: sequence-level recording keeps the breaker
// from flapping on individually flaky attempts, at the cost of not being
// able to fail fast partway through a long retry sequence. The alternative
// composition (retry around breaker, one window outcome per attempt) changes
// failure semantics and is intentionally not what this package implements.
//
// Basic usage:
//
//	re, err := resilience.NewFromConfigs(
//		retry.Config{MaxAttempts: 3, InitialDelay: 100 * time.Millisecond,
//			MaxDelay: 5 * time.Second, Jitter: true},
//		breaker.DefaultConfig("payments"),
//	)
//	if err != nil {
//		return err
//	}
//
//	invoice, err := resilience.Execute(re, ctx, func(ctx context.Context) (*Invoice, error) {
//		return client.FetchInvoice(ctx, id)
//	})
//
// Timeout wrapper:
//
//	op := resilience.WithTimeout(fetchInvoice, 2*time.Second)
//	invoice, err := resilience.Execute(re, ctx, op)
//
// A timed-out attempt surfaces as types.ErrOperationTimeout, visible to both
// the retry predicate and the breaker's failure recording.
package resilience
