package seq_test

import (
	"context"

	"github.com/kbukum/infiniter/seq"
)

// countingIter yields 0, 1, 2, ... up to limit (forever when limit < 0) and
// records how many times it was pulled.
type countingIter struct {
	limit  int
	pulls  int
	closed bool
}

func (it *countingIter) Next(_ context.Context) (int, bool, error) {
	if it.limit >= 0 && it.pulls >= it.limit {
		return 0, false, nil
	}
	v := it.pulls
	it.pulls++
	return v, true, nil
}

func (it *countingIter) Close() error {
	it.closed = true
	return nil
}

// sizedIter is a countingIter with a known length.
type sizedIter struct {
	countingIter
}

func (it *sizedIter) Len() int { return it.limit - it.pulls }

// countedInfinite returns an Infinite sequence 0, 1, 2, ... and a pointer to
// its pull counter.
func countedInfinite() (*seq.Sequence[int], *int) {
	pulls := new(int)
	s := seq.Map(seq.Count(0, 1), func(v int) int {
		*pulls++
		return v
	})
	return s, pulls
}

func collect[T any](s *seq.Sequence[T]) ([]T, error) {
	return seq.Collect(context.Background(), s)
}
