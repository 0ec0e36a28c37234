package seq

import (
	"context"

	apperrors "github.com/kbukum/infiniter/errors"
)

// Sequence is a lazy, single-pass stream of values with a finiteness tag
// fixed at construction.
//
// Once a Sequence reports exhaustion or an error, every later pull reports
// exhaustion. Handing a Sequence to a combinator or terminal operation
// transfers ownership; the old handle then fails with SEQUENCE_CONSUMED.
type Sequence[T any] struct {
	iter       Iterator[T]
	finiteness Finiteness
	consumed   bool
	done       bool
}

func newSequence[T any](it Iterator[T], f Finiteness) *Sequence[T] {
	return &Sequence[T]{iter: it, finiteness: f}
}

// Finiteness returns the tag computed when the sequence was built.
func (s *Sequence[T]) Finiteness() Finiteness { return s.finiteness }

// Consumed reports whether ownership of s has been transferred.
func (s *Sequence[T]) Consumed() bool { return s.consumed }

// Next pulls the next element. It returns (zero, false, nil) once the
// sequence is exhausted.
func (s *Sequence[T]) Next(ctx context.Context) (T, bool, error) {
	if s.consumed {
		var zero T
		return zero, false, apperrors.SequenceConsumed("Next")
	}
	return s.pull(ctx)
}

// Close releases the iterator chain. Closing a consumed handle is a no-op;
// its new owner is responsible for the chain.
func (s *Sequence[T]) Close() error {
	if s.consumed {
		return nil
	}
	s.done = true
	return s.iter.Close()
}

func (s *Sequence[T]) pull(ctx context.Context) (T, bool, error) {
	var zero T
	if s.done {
		return zero, false, nil
	}
	v, ok, err := s.iter.Next(ctx)
	if err != nil || !ok {
		s.done = true
		return zero, false, err
	}
	return v, true, nil
}

// handoff transfers ownership of s to the caller, marking s consumed. A
// handle that was already consumed yields an iterator that fails every pull.
func (s *Sequence[T]) handoff(op string) Iterator[T] {
	if s.consumed {
		return &errIter[T]{err: apperrors.SequenceConsumed(op)}
	}
	s.consumed = true
	return &ownedIter[T]{seq: s}
}

// ownedIter pulls through the sequence it took over, keeping the
// exhaustion latch in one place.
type ownedIter[T any] struct {
	seq *Sequence[T]
}

func (it *ownedIter[T]) Next(ctx context.Context) (T, bool, error) {
	return it.seq.pull(ctx)
}

func (it *ownedIter[T]) Close() error {
	it.seq.done = true
	return it.seq.iter.Close()
}

// --- Chaining helpers for type-preserving combinators ---

// Filter is shorthand for Filter(s, pred).
func (s *Sequence[T]) Filter(pred func(T) bool) *Sequence[T] { return Filter(s, pred) }

// Take is shorthand for Take(s, n).
func (s *Sequence[T]) Take(n int) *Sequence[T] { return Take(s, n) }

// TakeWhile is shorthand for TakeWhile(s, pred).
func (s *Sequence[T]) TakeWhile(pred func(T) bool) *Sequence[T] { return TakeWhile(s, pred) }

// Skip is shorthand for Skip(s, n).
func (s *Sequence[T]) Skip(n int) *Sequence[T] { return Skip(s, n) }

// Chain is shorthand for Chain(s, rest...).
func (s *Sequence[T]) Chain(rest ...*Sequence[T]) *Sequence[T] { return Chain(s, rest...) }

// Collect is shorthand for Collect(ctx, s).
func (s *Sequence[T]) Collect(ctx context.Context) ([]T, error) { return Collect(ctx, s) }
