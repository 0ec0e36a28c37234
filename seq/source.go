package seq

import "iter"

// FromSlice creates a Finite sequence over items. The slice is not copied.
func FromSlice[T any](items []T) *Sequence[T] {
	return newSequence[T](&sliceIter[T]{items: items}, Finite)
}

// Of creates a Finite sequence over the given values.
func Of[T any](values ...T) *Sequence[T] {
	return FromSlice(values)
}

// Empty creates a Finite sequence with no elements.
func Empty[T any]() *Sequence[T] {
	return FromSlice[T](nil)
}

// From wraps an external iterator. The sequence is Finite when the iterator
// implements Lengther, and Unknown otherwise.
func From[T any](it Iterator[T]) *Sequence[T] {
	if _, ok := it.(Lengther); ok {
		return newSequence(it, Finite)
	}
	return newSequence(it, Unknown)
}

// FromSeq wraps a range-over-func sequence. Its length cannot be known, so
// the result is Unknown.
func FromSeq[T any](s iter.Seq[T]) *Sequence[T] {
	return newSequence[T](pullSeq(s), Unknown)
}

// FromFunc wraps a pull function returning (value, true) or (_, false) when
// exhausted. The result is Unknown.
func FromFunc[T any](next func() (T, bool)) *Sequence[T] {
	return newSequence[T](&funcIter[T]{next: next}, Unknown)
}
