// Package resilience bounds how much work runs at once.
//
// A Bulkhead hands out a fixed number of slots. Work that cannot get a slot,
// immediately or within MaxWait, is rejected with a retryable SERVICE_BUSY
// error instead of queueing without limit:
//
//	b := resilience.NewBulkhead(resilience.BulkheadConfig{Name: "evaluations", MaxConcurrent: 8})
//	err := b.Execute(ctx, func(ctx context.Context) error {
//	    _, err := evaluator.Evaluate(ctx, q)
//	    return err
//	})
package resilience
