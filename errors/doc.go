// Package errors provides the structured error type shared by every
// infiniter package.
//
// Each failure carries a machine-readable ErrorCode so callers can branch on
// the kind of failure without string matching:
//
//	vals, err := seq.Collect(ctx, seq.Count(0, 1))
//	if errors.HasCode(err, errors.ErrCodeInfiniteIterator) {
//	    // bound the sequence with seq.Take first
//	}
//
// The recommended HTTP status travels with the error so the server can render
// it without a second mapping table.
package errors
