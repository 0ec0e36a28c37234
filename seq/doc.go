// Package seq provides lazy, pull-based sequences whose finiteness is tracked
// at construction time.
//
// Every Sequence carries a Finiteness tag (Finite, Infinite or Unknown) that
// combinators derive from their operands. Terminal operations that must
// materialize a sequence (Collect, Sort, Sum, Len, Reduce) refuse to run
// unless the tag is Finite, so
//
//	seq.Collect(ctx, seq.Primes())
//
// fails immediately with an INFINITE_ITERATOR error instead of looping
// forever, while
//
//	seq.Collect(ctx, seq.Take(seq.Primes(), 5)) // [2 3 5 7 11]
//
// terminates. Take and TakeWhile always produce Finite sequences; Zip is
// Finite as soon as one side is.
//
// # Generators
//
//   - Range, RangeStep: stop-exclusive arithmetic progressions (Finite)
//   - Count: unbounded arithmetic progression
//   - Cycle, CycleSlice: repeat a source forever
//   - Repeat, RepeatN: a constant value
//   - Fibonacci, Primes, TriangleNumbers, Square: mathematical sequences
//   - FromSlice, Of, From, FromSeq, FromFunc: source adapters
//
// # Combinators
//
// Map, TryMap, Filter, FilterMap, Enumerate, Zip, Take, TakeWhile, Skip,
// Chain, Tap, Observe and Trace. Each combinator consumes its input: the
// handle passed in must not be used again, and doing so yields a
// SEQUENCE_CONSUMED error.
//
// # Operators
//
// Apply dispatches an arithmetic Op against an Operand, which is either a
// Scalar (broadcast with Map) or the Elements of another sequence (paired with
// Zip). Add, Sub, Mul and Div are shorthands:
//
//	sums := seq.Add(seq.Of(1, 2, 3), seq.Elements(seq.Of(10, 20, 30)))
//	vals, _ := seq.Collect(ctx, sums) // [11 22 33]
//
// Division by zero is reported lazily, at the pull that meets the divisor.
//
// Sequences are single-pass and not safe for concurrent use.
package seq
