package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Sequence errors
const (
	// ErrCodeInfiniteIterator indicates a terminal operation was called on a
	// sequence that is not provably finite.
	ErrCodeInfiniteIterator ErrorCode = "INFINITE_ITERATOR"
	// ErrCodeEmptySource indicates a source that must yield at least one
	// element was empty.
	ErrCodeEmptySource ErrorCode = "EMPTY_SOURCE"
	// ErrCodeDivisionByZero indicates a zero divisor was met while evaluating
	// a division operator.
	ErrCodeDivisionByZero ErrorCode = "DIVISION_BY_ZERO"
	// ErrCodeNumericOverflow indicates a value left the range of its numeric
	// type (an infinity or NaN in floating point).
	ErrCodeNumericOverflow ErrorCode = "NUMERIC_OVERFLOW"
	// ErrCodeSequenceConsumed indicates a sequence handle was used after it
	// was handed to a combinator or terminal operation.
	ErrCodeSequenceConsumed ErrorCode = "SEQUENCE_CONSUMED"
	// ErrCodeInvalidArgument indicates a constructor argument is out of range.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Request errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeTimeout indicates the evaluation was cancelled or timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeRateLimited indicates the caller exceeded the request rate.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeServiceBusy indicates every evaluation slot was taken.
	ErrCodeServiceBusy ErrorCode = "SERVICE_BUSY"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:     true,
	ErrCodeRateLimited: true,
	ErrCodeServiceBusy: true,
	ErrCodeInternal:    false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Sequence errors are deterministic and never retryable.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
