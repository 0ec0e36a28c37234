package seq_test

import (
	"context"
	"fmt"

	"github.com/kbukum/infiniter/seq"
)

func Example() {
	ctx := context.Background()

	evens := seq.Filter(seq.Count(0, 1), func(v int) bool { return v%2 == 0 })
	out, err := seq.Collect(ctx, seq.Take(seq.Add(evens, seq.Scalar(1)), 5))
	fmt.Println(out, err)
	// Output: [1 3 5 7 9] <nil>
}

func ExampleCollect_infinite() {
	_, err := seq.Collect(context.Background(), seq.Primes())
	fmt.Println(err)
	// Output: INFINITE_ITERATOR: cannot call Collect on a sequence of infinite length; bound it with Take or TakeWhile first
}

func ExampleZip() {
	pairs, _ := seq.Collect(context.Background(), seq.Zip(seq.Of("a", "b", "c"), seq.Fibonacci(1, 1)))
	fmt.Println(pairs)
	// Output: [{a 1} {b 1} {c 2}]
}

func ExampleSort() {
	ctx := context.Background()
	sorted, _ := seq.Sort(ctx, seq.Take(seq.Mul(seq.Primes(), seq.Scalar(-1)), 4), false)
	out, _ := seq.Collect(ctx, sorted)
	fmt.Println(out)
	// Output: [-7 -5 -3 -2]
}

func ExampleAll() {
	for v, err := range seq.All(context.Background(), seq.TriangleNumbers()) {
		if err != nil || v > 20 {
			break
		}
		fmt.Print(v, " ")
	}
	fmt.Println()
	// Output: 1 3 6 10 15
}
