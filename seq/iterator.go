package seq

import (
	"context"
	"iter"
)

// Iterator provides pull-based sequential access to a stream of values.
// It is the source-adapter boundary: anything that can hand out one element
// at a time can back a Sequence.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Lengther is an optional known-length hint. Iterators passed to From that
// implement it produce Finite sequences.
type Lengther interface {
	Len() int
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Len() int     { return len(it.items) - it.index }
func (it *sliceIter[T]) Close() error { return nil }

type funcIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *funcIter[T]) Next(_ context.Context) (T, bool, error) {
	v, ok := it.next()
	return v, ok, nil
}

func (it *funcIter[T]) Close() error {
	if it.stop != nil {
		it.stop()
	}
	return nil
}

func pullSeq[T any](s iter.Seq[T]) *funcIter[T] {
	next, stop := iter.Pull(s)
	return &funcIter[T]{next: next, stop: stop}
}

// errIter fails every pull with err. It stands in for a consumed handle.
type errIter[T any] struct {
	err error
}

func (it *errIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it *errIter[T]) Close() error { return nil }
