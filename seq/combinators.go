package seq

import "context"

// Indexed pairs an element with its position, as produced by Enumerate.
type Indexed[T any] struct {
	Index int `json:"index"`
	Value T   `json:"value"`
}

// Pair holds one element from each side of a Zip.
type Pair[A, B any] struct {
	First  A `json:"first"`
	Second B `json:"second"`
}

// Map transforms each value using fn.
func Map[T, U any](s *Sequence[T], fn func(T) U) *Sequence[U] {
	f := Propagate(KindMap, s.finiteness)
	return newSequence[U](&mapIter[T, U]{source: s.handoff("Map"), fn: fn}, f)
}

// TryMap transforms each value using fn. An error from fn ends the sequence
// and is returned by the pull that produced it; values yielded before it
// remain valid.
func TryMap[T, U any](s *Sequence[T], fn func(context.Context, T) (U, error)) *Sequence[U] {
	f := Propagate(KindMap, s.finiteness)
	return newSequence[U](&tryMapIter[T, U]{source: s.handoff("TryMap"), fn: fn}, f)
}

// Filter keeps only values that satisfy pred.
func Filter[T any](s *Sequence[T], pred func(T) bool) *Sequence[T] {
	f := Propagate(KindFilter, s.finiteness)
	return newSequence[T](&filterIter[T]{source: s.handoff("Filter"), fn: pred}, f)
}

// FilterMap transforms each value with fn and keeps the results reported
// with ok == true.
func FilterMap[T, U any](s *Sequence[T], fn func(T) (U, bool)) *Sequence[U] {
	f := Propagate(KindFilterMap, s.finiteness)
	return newSequence[U](&filterMapIter[T, U]{source: s.handoff("FilterMap"), fn: fn}, f)
}

// Enumerate pairs each value with a counter starting at start.
func Enumerate[T any](s *Sequence[T], start int) *Sequence[Indexed[T]] {
	f := Propagate(KindEnumerate, s.finiteness)
	return newSequence[Indexed[T]](&enumerateIter[T]{source: s.handoff("Enumerate"), index: start}, f)
}

// Zip pairs values from a and b and stops as soon as either side is
// exhausted. b is not pulled once a is exhausted.
func Zip[A, B any](a *Sequence[A], b *Sequence[B]) *Sequence[Pair[A, B]] {
	f := Propagate(KindZip, a.finiteness, b.finiteness)
	return newSequence[Pair[A, B]](&zipIter[A, B]{left: a.handoff("Zip"), right: b.handoff("Zip")}, f)
}

// Take yields at most n values. Upstream is not pulled again once n values
// have been produced. The result is always Finite.
func Take[T any](s *Sequence[T], n int) *Sequence[T] {
	f := Propagate(KindTake, s.finiteness)
	return newSequence[T](&takeIter[T]{source: s.handoff("Take"), remaining: n}, f)
}

// TakeWhile yields values while pred holds. The first value failing pred is
// discarded and the sequence ends for good. The result is always Finite.
func TakeWhile[T any](s *Sequence[T], pred func(T) bool) *Sequence[T] {
	f := Propagate(KindTakeWhile, s.finiteness)
	return newSequence[T](&takeWhileIter[T]{source: s.handoff("TakeWhile"), fn: pred}, f)
}

// Skip discards the first n values.
func Skip[T any](s *Sequence[T], n int) *Sequence[T] {
	f := Propagate(KindSkip, s.finiteness)
	return newSequence[T](&skipIter[T]{source: s.handoff("Skip"), remaining: n}, f)
}

// Chain yields all values of first, then of each of rest in order.
func Chain[T any](first *Sequence[T], rest ...*Sequence[T]) *Sequence[T] {
	all := append([]*Sequence[T]{first}, rest...)
	tags := make([]Finiteness, len(all))
	iters := make([]Iterator[T], len(all))
	for i, s := range all {
		tags[i] = s.finiteness
		iters[i] = s.handoff("Chain")
	}
	return newSequence[T](&concatIter[T]{iters: iters}, Propagate(KindChain, tags...))
}

// --- Iterator implementations ---

type mapIter[T, U any] struct {
	source Iterator[T]
	fn     func(T) U
}

func (it *mapIter[T, U]) Next(ctx context.Context) (U, bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		var zero U
		return zero, false, err
	}
	return it.fn(val), true, nil
}

func (it *mapIter[T, U]) Close() error { return it.source.Close() }

type tryMapIter[T, U any] struct {
	source Iterator[T]
	fn     func(context.Context, T) (U, error)
}

func (it *tryMapIter[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return zero, false, err
	}
	out, err := it.fn(ctx, val)
	if err != nil {
		return zero, false, err
	}
	return out, true, nil
}

func (it *tryMapIter[T, U]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, err
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type filterMapIter[T, U any] struct {
	source Iterator[T]
	fn     func(T) (U, bool)
}

func (it *filterMapIter[T, U]) Next(ctx context.Context) (U, bool, error) {
	var zero U
	for {
		val, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		if out, keep := it.fn(val); keep {
			return out, true, nil
		}
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}
	}
}

func (it *filterMapIter[T, U]) Close() error { return it.source.Close() }

type enumerateIter[T any] struct {
	source Iterator[T]
	index  int
}

func (it *enumerateIter[T]) Next(ctx context.Context) (Indexed[T], bool, error) {
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		return Indexed[T]{}, false, err
	}
	out := Indexed[T]{Index: it.index, Value: val}
	it.index++
	return out, true, nil
}

func (it *enumerateIter[T]) Close() error { return it.source.Close() }

type zipIter[A, B any] struct {
	left  Iterator[A]
	right Iterator[B]
}

func (it *zipIter[A, B]) Next(ctx context.Context) (Pair[A, B], bool, error) {
	a, ok, err := it.left.Next(ctx)
	if err != nil || !ok {
		return Pair[A, B]{}, false, err
	}
	b, ok, err := it.right.Next(ctx)
	if err != nil || !ok {
		return Pair[A, B]{}, false, err
	}
	return Pair[A, B]{First: a, Second: b}, true, nil
}

func (it *zipIter[A, B]) Close() error {
	errL := it.left.Close()
	errR := it.right.Close()
	if errL != nil {
		return errL
	}
	return errR
}

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.remaining <= 0 {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.remaining = 0
		return zero, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
	done   bool
}

func (it *takeWhileIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next(ctx)
	if err != nil || !ok {
		it.done = true
		return zero, false, err
	}
	if !it.fn(val) {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type skipIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *skipIter[T]) Next(ctx context.Context) (T, bool, error) {
	for it.remaining > 0 {
		_, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			var zero T
			it.remaining = 0
			return zero, false, err
		}
		it.remaining--
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, false, err
		}
	}
	return it.source.Next(ctx)
}

func (it *skipIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	iters []Iterator[T]
	index int
}

func (it *concatIter[T]) Next(ctx context.Context) (T, bool, error) {
	for it.index < len(it.iters) {
		val, ok, err := it.iters[it.index].Next(ctx)
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	var firstErr error
	for _, iter := range it.iters {
		if err := iter.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
