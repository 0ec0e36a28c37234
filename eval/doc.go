// Package eval turns a declarative Query into a seq pipeline and collects it.
//
// A Registry maps generator names to builders. DefaultRegistry registers the
// built-in generators (range, count, cycle, repeat, fibonacci, primes,
// triangle, square). The Evaluator applies filter, operator, skip and take in
// that order, then collects. Infinite sources must be bounded by the query's
// take or by Config.DefaultTake, otherwise evaluation fails with
// INFINITE_ITERATOR before anything is pulled.
//
//	ev := eval.NewEvaluator(eval.DefaultRegistry(), cfg, log)
//	res, err := ev.Evaluate(ctx, eval.Query{Generator: "primes", Take: new(5)})
package eval
