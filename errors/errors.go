package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError with the same code, so that
// stderrors.Is works against the code-only sentinels below.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Message == ""
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// Sentinels for use with stderrors.Is. They match any AppError with the same code.
var (
	ErrInfiniteIterator = &AppError{Code: ErrCodeInfiniteIterator}
	ErrEmptySource      = &AppError{Code: ErrCodeEmptySource}
	ErrDivisionByZero   = &AppError{Code: ErrCodeDivisionByZero}
	ErrNumericOverflow  = &AppError{Code: ErrCodeNumericOverflow}
	ErrSequenceConsumed = &AppError{Code: ErrCodeSequenceConsumed}
	ErrInvalidArgument  = &AppError{Code: ErrCodeInvalidArgument}
)

// HasCode reports whether err wraps an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// --- Sequence error constructors ---

// InfiniteIterator creates an AppError for a terminal operation refused on a
// sequence whose finiteness is not Finite.
func InfiniteIterator(operation, finiteness string) *AppError {
	return &AppError{
		Code: ErrCodeInfiniteIterator,
		Message: fmt.Sprintf("cannot call %s on a sequence of %s length; bound it with Take or TakeWhile first",
			operation, finiteness),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"operation": operation, "finiteness": finiteness},
	}
}

// EmptySource creates an AppError for an operation that needs at least one element.
func EmptySource(operation string) *AppError {
	return &AppError{
		Code: ErrCodeEmptySource, Message: fmt.Sprintf("%s requires a non-empty source", operation),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"operation": operation},
	}
}

// DivisionByZero creates an AppError for a zero divisor met at element index.
func DivisionByZero(index int) *AppError {
	return &AppError{
		Code: ErrCodeDivisionByZero, Message: fmt.Sprintf("division by zero at element %d", index),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"index": index},
	}
}

// NumericOverflow creates an AppError for a value at element index that is
// not a finite number.
func NumericOverflow(index int, value float64) *AppError {
	return &AppError{
		Code: ErrCodeNumericOverflow, Message: fmt.Sprintf("value at element %d is out of range (%v)", index, value),
		HTTPStatus: http.StatusUnprocessableEntity, Retryable: false,
		Details: map[string]any{"index": index, "value": fmt.Sprint(value)},
	}
}

// SequenceConsumed creates an AppError for reuse of a consumed sequence handle.
func SequenceConsumed(operation string) *AppError {
	return &AppError{
		Code: ErrCodeSequenceConsumed, Message: fmt.Sprintf("%s: sequence has already been consumed", operation),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"operation": operation},
	}
}

// InvalidArgument creates an AppError for an out-of-range constructor argument.
func InvalidArgument(name, reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid argument %s: %s", name, reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"argument": name},
	}
}

// --- Request error constructors ---

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Retryable: false, Details: details,
	}
}

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Timeout creates a new AppError for an evaluation stopped by its context.
func Timeout(operation string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The evaluation took too long. Please try again with a smaller bound.",
		HTTPStatus: http.StatusGatewayTimeout, Retryable: true,
		Details: map[string]any{"operation": operation}, Cause: cause,
	}
}

// RateLimited creates a new AppError for a caller over its request budget.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please slow down.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// ServiceBusy creates a new AppError for work rejected by a full concurrency limit.
func ServiceBusy(resource string) *AppError {
	return &AppError{
		Code: ErrCodeServiceBusy, Message: "The service is busy. Please try again shortly.",
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"resource": resource},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
