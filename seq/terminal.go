package seq

import (
	"cmp"
	"context"
	"iter"
	"slices"

	apperrors "github.com/kbukum/infiniter/errors"
)

// requireFinite checks the tag before anything is pulled. A rejected call
// leaves s untouched and still usable.
func requireFinite[T any](s *Sequence[T], op string) (Iterator[T], error) {
	if s.consumed {
		return nil, apperrors.SequenceConsumed(op)
	}
	if !s.finiteness.Collectible() {
		return nil, apperrors.InfiniteIterator(op, s.finiteness.String())
	}
	return s.handoff(op), nil
}

func drain[T any](ctx context.Context, it Iterator[T], fn func(T)) error {
	for {
		val, ok, err := it.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		fn(val)
	}
}

// --- Guarded terminals ---

// Collect drains s and returns its values in production order. s must be
// Finite; otherwise INFINITE_ITERATOR is returned before any pull. If a pull
// fails, the values produced before it are returned with the error.
func Collect[T any](ctx context.Context, s *Sequence[T]) ([]T, error) {
	it, err := requireFinite(s, "Collect")
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var result []T
	err = drain(ctx, it, func(v T) { result = append(result, v) })
	return result, err
}

// Sort drains s and returns a Finite sequence over its values in ascending
// order, or descending when reverse is set.
func Sort[T cmp.Ordered](ctx context.Context, s *Sequence[T], reverse bool) (*Sequence[T], error) {
	return sortStable(ctx, s, "Sort", cmp.Compare[T], reverse)
}

// SortFunc is like Sort with a caller-supplied comparison.
func SortFunc[T any](ctx context.Context, s *Sequence[T], compare func(a, b T) int, reverse bool) (*Sequence[T], error) {
	return sortStable(ctx, s, "SortFunc", compare, reverse)
}

// SortBy is like Sort, ordering elements by key(v).
func SortBy[T any, K cmp.Ordered](ctx context.Context, s *Sequence[T], key func(T) K, reverse bool) (*Sequence[T], error) {
	return sortStable(ctx, s, "SortBy", func(a, b T) int { return cmp.Compare(key(a), key(b)) }, reverse)
}

// sortStable keeps equal elements in emission order in both directions:
// reverse inverts the comparison rather than the sorted output.
func sortStable[T any](ctx context.Context, s *Sequence[T], op string, compare func(a, b T) int, reverse bool) (*Sequence[T], error) {
	it, err := requireFinite(s, op)
	if err != nil {
		return nil, err
	}
	defer it.Close()
	var values []T
	if err := drain(ctx, it, func(v T) { values = append(values, v) }); err != nil {
		return nil, err
	}
	if reverse {
		slices.SortStableFunc(values, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(values, compare)
	}
	return FromSlice(values), nil
}

// Sum adds up the values of a Finite sequence.
func Sum[T Number](ctx context.Context, s *Sequence[T]) (T, error) {
	var total T
	it, err := requireFinite(s, "Sum")
	if err != nil {
		return total, err
	}
	defer it.Close()
	err = drain(ctx, it, func(v T) { total += v })
	return total, err
}

// Len drains a Finite sequence and returns the number of values it produced.
func Len[T any](ctx context.Context, s *Sequence[T]) (int, error) {
	it, err := requireFinite(s, "Len")
	if err != nil {
		return 0, err
	}
	defer it.Close()
	n := 0
	err = drain(ctx, it, func(T) { n++ })
	return n, err
}

// Reduce folds the values of a Finite sequence into a single result.
func Reduce[T, R any](ctx context.Context, s *Sequence[T], init R, fn func(R, T) R) (R, error) {
	acc := init
	it, err := requireFinite(s, "Reduce")
	if err != nil {
		return acc, err
	}
	defer it.Close()
	err = drain(ctx, it, func(v T) { acc = fn(acc, v) })
	return acc, err
}

// --- Unguarded consumption ---
//
// These run on any sequence. The caller decides when to stop.

// All returns a range-over-func view of s. Iteration stops at exhaustion,
// after yielding the first error, or when the loop body breaks.
//
//	for v, err := range seq.All(ctx, seq.Primes()) {
//	    if err != nil || v > 100 {
//	        break
//	    }
//	}
func All[T any](ctx context.Context, s *Sequence[T]) iter.Seq2[T, error] {
	it := s.handoff("All")
	return func(yield func(T, error) bool) {
		defer it.Close()
		for {
			val, ok, err := it.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok {
				return
			}
			if !yield(val, nil) {
				return
			}
		}
	}
}

// ForEach pulls values and calls fn for each until s is exhausted or fn
// returns an error.
func ForEach[T any](ctx context.Context, s *Sequence[T], fn func(T) error) error {
	it := s.handoff("ForEach")
	defer it.Close()
	for {
		val, ok, err := it.Next(ctx)
		if err != nil || !ok {
			return err
		}
		if err := fn(val); err != nil {
			return err
		}
	}
}

// First pulls a single value from s and releases it.
func First[T any](ctx context.Context, s *Sequence[T]) (T, bool, error) {
	it := s.handoff("First")
	defer it.Close()
	return it.Next(ctx)
}
