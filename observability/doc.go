// Package observability provides OpenTelemetry tracing and metrics for
// sequence evaluation.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("infiniter"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanEvaluate)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("infiniter"))
//	defer mp.Shutdown(ctx)
//
//	sm, err := observability.NewSequenceMetrics(observability.Meter("infiniter"))
//	s = observability.Instrument(s, sm, "primes")
//
// Instrument counts pulls, failures and exhaustion of a sequence without
// changing its values or its finiteness.
package observability
