package seq

import (
	"context"

	"golang.org/x/exp/constraints"

	apperrors "github.com/kbukum/infiniter/errors"
)

// Number is the element constraint for arithmetic generators and operators.
type Number interface {
	constraints.Integer | constraints.Float
}

// --- Constructors ---

// Range yields start, start+1, ... while below stop.
func Range[T constraints.Integer](start, stop T) *Sequence[T] {
	return newSequence[T](&rangeIter[T]{cur: start, stop: stop, step: 1}, Finite)
}

// RangeStep yields start, start+step, ... stopping before stop. A negative
// step counts down. A zero step is rejected.
func RangeStep[T constraints.Integer](start, stop, step T) (*Sequence[T], error) {
	if step == 0 {
		return nil, apperrors.InvalidArgument("step", "must not be zero")
	}
	return newSequence[T](&rangeIter[T]{cur: start, stop: stop, step: step}, Finite), nil
}

// Count yields start, start+step, ... forever.
func Count[T Number](start, step T) *Sequence[T] {
	return newSequence[T](&countIter[T]{cur: start, step: step}, Infinite)
}

// Cycle repeats the elements of source forever. The first element is pulled
// immediately so an empty source fails with EMPTY_SOURCE here rather than on
// the first pull. Elements of a Finite or Unknown source are buffered during
// the first pass; an Infinite source is passed through unbuffered since it
// never wraps around.
func Cycle[T any](ctx context.Context, source *Sequence[T]) (*Sequence[T], error) {
	buffer := source.finiteness != Infinite
	it := source.handoff("Cycle")

	head, ok, err := it.Next(ctx)
	if err != nil {
		_ = it.Close()
		return nil, err
	}
	if !ok {
		_ = it.Close()
		return nil, apperrors.EmptySource("Cycle")
	}

	c := &cycleIter[T]{source: it, head: head, hasHead: true, buffer: buffer}
	if buffer {
		c.saved = append(c.saved, head)
	}
	return newSequence[T](c, Infinite), nil
}

// CycleSlice repeats items forever. Empty input fails with EMPTY_SOURCE.
func CycleSlice[T any](items []T) (*Sequence[T], error) {
	if len(items) == 0 {
		return nil, apperrors.EmptySource("CycleSlice")
	}
	saved := make([]T, len(items))
	copy(saved, items)
	return newSequence[T](&cycleIter[T]{saved: saved}, Infinite), nil
}

// Repeat yields value forever.
func Repeat[T any](value T) *Sequence[T] {
	return newSequence[T](&repeatIter[T]{value: value, remaining: -1}, Infinite)
}

// RepeatN yields value times times. A negative count yields nothing.
func RepeatN[T any](value T, times int) *Sequence[T] {
	if times < 0 {
		times = 0
	}
	return newSequence[T](&repeatIter[T]{value: value, remaining: times}, Finite)
}

// Fibonacci yields a, b, a+b, ... using a two-value window.
func Fibonacci[T Number](a, b T) *Sequence[T] {
	return newSequence[T](&fibonacciIter[T]{a: a, b: b}, Infinite)
}

// Primes yields 2, 3, 5, 7, ... by trial division against every prime found
// so far. The list of found primes grows with the output: memory is linear in
// the number of primes produced.
func Primes() *Sequence[int] {
	return newSequence[int](&primesIter{}, Infinite)
}

// TriangleNumbers yields the partial sums 1, 3, 6, 10, ...
func TriangleNumbers() *Sequence[int] {
	return newSequence[int](&triangleIter{}, Infinite)
}

// Square yields start², (start+1)², ...
func Square[T Number](start T) *Sequence[T] {
	return Map(Count(start, 1), func(v T) T { return v * v })
}

// --- Iterator implementations ---

type rangeIter[T constraints.Integer] struct {
	cur, stop, step T
	done            bool
}

func (it *rangeIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	v := it.cur
	if (it.step > 0 && v >= it.stop) || (it.step < 0 && v <= it.stop) {
		it.done = true
		return zero, false, nil
	}
	// stop on wrap-around instead of yielding garbage near the type's bounds
	next := v + it.step
	if (it.step > 0 && next < v) || (it.step < 0 && next > v) {
		it.done = true
	} else {
		it.cur = next
	}
	return v, true, nil
}

func (it *rangeIter[T]) Close() error { return nil }

type countIter[T Number] struct {
	cur, step T
}

func (it *countIter[T]) Next(_ context.Context) (T, bool, error) {
	v := it.cur
	it.cur += it.step
	return v, true, nil
}

func (it *countIter[T]) Close() error { return nil }

type cycleIter[T any] struct {
	source  Iterator[T] // nil once the first pass is over
	head    T
	hasHead bool
	buffer  bool
	saved   []T
	pos     int
}

func (it *cycleIter[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.hasHead {
		it.hasHead = false
		return it.head, true, nil
	}
	if it.source != nil {
		v, ok, err := it.source.Next(ctx)
		if err != nil {
			return zero, false, err
		}
		if ok {
			if it.buffer {
				it.saved = append(it.saved, v)
			}
			return v, true, nil
		}
		_ = it.source.Close()
		it.source = nil
	}
	if len(it.saved) == 0 {
		return zero, false, nil
	}
	v := it.saved[it.pos]
	it.pos = (it.pos + 1) % len(it.saved)
	return v, true, nil
}

func (it *cycleIter[T]) Close() error {
	if it.source != nil {
		return it.source.Close()
	}
	return nil
}

type repeatIter[T any] struct {
	value     T
	remaining int // -1 repeats forever
}

func (it *repeatIter[T]) Next(_ context.Context) (T, bool, error) {
	if it.remaining == 0 {
		var zero T
		return zero, false, nil
	}
	if it.remaining > 0 {
		it.remaining--
	}
	return it.value, true, nil
}

func (it *repeatIter[T]) Close() error { return nil }

type fibonacciIter[T Number] struct {
	a, b T
}

func (it *fibonacciIter[T]) Next(_ context.Context) (T, bool, error) {
	v := it.a
	it.a, it.b = it.b, it.a+it.b
	return v, true, nil
}

func (it *fibonacciIter[T]) Close() error { return nil }

type primesIter struct {
	found     []int
	candidate int
}

func (it *primesIter) Next(_ context.Context) (int, bool, error) {
	if len(it.found) == 0 {
		it.found = append(it.found, 2)
		it.candidate = 3
		return 2, true, nil
	}
	for {
		n := it.candidate
		it.candidate += 2
		if it.isPrime(n) {
			it.found = append(it.found, n)
			return n, true, nil
		}
	}
}

func (it *primesIter) isPrime(n int) bool {
	for _, p := range it.found {
		if p*p > n {
			break
		}
		if n%p == 0 {
			return false
		}
	}
	return true
}

func (it *primesIter) Close() error { return nil }

type triangleIter struct {
	n, total int
}

func (it *triangleIter) Next(_ context.Context) (int, bool, error) {
	it.n++
	it.total += it.n
	return it.total, true, nil
}

func (it *triangleIter) Close() error { return nil }
