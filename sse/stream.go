package sse

import (
	"context"
	"errors"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/seq"
)

// Stream writes s to w until it is exhausted, a pull fails or ctx is done,
// and returns the number of values sent. s is consumed and released.
//
// A failed pull is reported to the client as an error event and also
// returned, as is a value that cannot be encoded. Cancellation sends nothing
// further and returns the context error.
func Stream[T any](ctx context.Context, w *Writer, name string, s *seq.Sequence[T]) (int, error) {
	if err := w.Send(EventStart, StartEvent{Generator: name, Finiteness: s.Finiteness()}); err != nil {
		_ = s.Close()
		return 0, err
	}

	count := 0
	for v, err := range seq.All(ctx, s) {
		if err != nil {
			if ctx.Err() != nil {
				return count, ctx.Err()
			}
			body := ErrorEvent{ErrorResponse: apperrors.Wrap(err).ToResponse(), Count: count}
			if sendErr := w.Send(EventError, body); sendErr != nil {
				return count, sendErr
			}
			return count, err
		}
		if ctx.Err() != nil {
			return count, ctx.Err()
		}
		if err := w.Send(EventValue, ValueEvent[T]{Index: count, Value: v}); err != nil {
			var encErr *EncodingError
			if errors.As(err, &encErr) {
				// the value was not written, so the client can still be told why
				body := ErrorEvent{ErrorResponse: apperrors.Wrap(err).ToResponse(), Count: count}
				if sendErr := w.Send(EventError, body); sendErr != nil {
					return count, sendErr
				}
			}
			return count, err
		}
		count++
	}
	if err := w.Send(EventDone, DoneEvent{Count: count}); err != nil {
		return count, err
	}
	return count, nil
}
