package seq

import (
	"context"

	"github.com/kbukum/infiniter/logger"
)

// Observer receives callbacks as values flow through an Observe node.
type Observer[T any] interface {
	// OnNext is called for each value before it is passed downstream.
	OnNext(ctx context.Context, index int, v T)
	// OnError is called once if a pull fails.
	OnError(ctx context.Context, index int, err error)
	// OnDone is called once when upstream is exhausted.
	OnDone(ctx context.Context, count int)
}

// Observe passes values through unchanged, reporting them to obs. Finiteness
// is that of s. Abandoning the sequence before exhaustion reports nothing
// further.
func Observe[T any](s *Sequence[T], obs Observer[T]) *Sequence[T] {
	f := Propagate(KindObserve, s.finiteness)
	return newSequence[T](&observeIter[T]{source: s.handoff("Observe"), obs: obs}, f)
}

// Tap calls fn as a side-effect for each value, then passes the value through
// unchanged. An error from fn ends the sequence.
func Tap[T any](s *Sequence[T], fn func(context.Context, T) error) *Sequence[T] {
	f := Propagate(KindObserve, s.finiteness)
	return newSequence[T](&tapIter[T]{source: s.handoff("Tap"), fn: fn}, f)
}

// Trace logs every pull of s at debug level under the given name, plus one
// line at exhaustion or failure.
func Trace[T any](s *Sequence[T], log *logger.Logger, name string) *Sequence[T] {
	return Observe(s, &traceObserver[T]{
		log: log.WithFields(logger.Fields(
			logger.FieldSequence, name,
			logger.FieldFiniteness, s.finiteness.String(),
		)),
	})
}

type observeIter[T any] struct {
	source Iterator[T]
	obs    Observer[T]
	count  int
	done   bool
}

func (it *observeIter[T]) Next(ctx context.Context) (T, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if it.done {
		return val, ok, err
	}
	switch {
	case err != nil:
		it.done = true
		it.obs.OnError(ctx, it.count, err)
	case !ok:
		it.done = true
		it.obs.OnDone(ctx, it.count)
	default:
		it.obs.OnNext(ctx, it.count, val)
		it.count++
	}
	return val, ok, err
}

func (it *observeIter[T]) Close() error { return it.source.Close() }

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(context.Context, T) error
}

func (it *tapIter[T]) Next(ctx context.Context) (T, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return val, ok, err
	}
	if err := it.fn(ctx, val); err != nil {
		var zero T
		return zero, false, err
	}
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }

type traceObserver[T any] struct {
	log *logger.Logger
}

func (o *traceObserver[T]) OnNext(_ context.Context, index int, v T) {
	o.log.Debug("sequence pull", logger.Fields(logger.FieldIndex, index, logger.FieldValue, v))
}

func (o *traceObserver[T]) OnError(_ context.Context, index int, err error) {
	o.log.WithError(err).Warn("sequence failed", logger.Fields(logger.FieldPulls, index))
}

func (o *traceObserver[T]) OnDone(_ context.Context, count int) {
	o.log.Debug("sequence exhausted", logger.Fields(logger.FieldPulls, count))
}
