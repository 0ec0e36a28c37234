package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/seq"
)

// newTestMeter returns a meter backed by a manual reader.
func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return reader, mp
}

// counterTotals sums an int64 counter's data points keyed by the value of attr.
func counterTotals(t *testing.T, reader *sdkmetric.ManualReader, name string, attr attribute.Key) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	totals := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value(attr)
				totals[v.AsString()] += dp.Value
			}
		}
	}
	return totals
}

func useSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func TestDefaultConfigs(t *testing.T) {
	tc := DefaultTracerConfig("infiniter")
	if tc.ServiceName != "infiniter" || tc.Endpoint != "localhost:4318" || tc.SampleRate != 1.0 || !tc.Insecure {
		t.Errorf("unexpected tracer defaults: %+v", tc)
	}
	mc := DefaultMeterConfig("infiniter")
	if mc.ServiceName != "infiniter" || mc.Interval != 15*time.Second {
		t.Errorf("unexpected meter defaults: %+v", mc)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{Tracing: TracerConfig{Endpoint: "collector:4318"}}
	cfg.ApplyDefaults("infiniter", "1.2.3", "staging")

	if cfg.Metrics.ServiceName != "infiniter" || cfg.Tracing.ServiceName != "infiniter" {
		t.Errorf("service name not propagated: %+v", cfg)
	}
	if cfg.Metrics.ServiceVersion != "1.2.3" || cfg.Tracing.Environment != "staging" {
		t.Errorf("service identity not propagated: %+v", cfg)
	}
	if cfg.Tracing.Endpoint != "collector:4318" {
		t.Errorf("explicit endpoint overwritten: %q", cfg.Tracing.Endpoint)
	}
	if cfg.Metrics.Endpoint != "localhost:4318" || cfg.Metrics.Interval != 15*time.Second {
		t.Errorf("meter defaults missing: %+v", cfg.Metrics)
	}
	if cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("expected default sample rate, got %v", cfg.Tracing.SampleRate)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"disabled sections are not checked", Config{}, false},
		{"valid metrics", Config{Metrics: MeterConfig{Enabled: true, Endpoint: "x:1", Interval: time.Second}}, false},
		{"metrics without endpoint", Config{Metrics: MeterConfig{Enabled: true, Interval: time.Second}}, true},
		{"metrics interval too short", Config{Metrics: MeterConfig{Enabled: true, Endpoint: "x:1", Interval: time.Millisecond}}, true},
		{"tracing sample rate out of range", Config{Tracing: TracerConfig{Enabled: true, Endpoint: "x:1", SampleRate: 1.5}}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("infiniter", "1.0.0", "test")
	if err != nil {
		t.Fatalf("newResource: %v", err)
	}
	got := map[attribute.Key]string{}
	for _, kv := range res.Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}
	if got[AttrServiceName] != "infiniter" || got[AttrServiceVersion] != "1.0.0" || got[AttrEnvironment] != "test" {
		t.Errorf("unexpected resource attributes: %v", got)
	}
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{2.0, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{0.5, sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.5)).Description()},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("samplerFor(%v) = %q, want %q", tc.rate, got, tc.want)
		}
	}
}

func TestNewMetricsNoop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordEvaluationStart(ctx)
	metrics.RecordEvaluationEnd(ctx, "primes", "ok", 5, 10*time.Millisecond)
	metrics.RecordError(ctx, "INFINITE_ITERATOR", "eval")
}

func TestMetricsRecorded(t *testing.T) {
	reader, mp := newTestMeter(t)
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	metrics.RecordEvaluationStart(ctx)
	metrics.RecordEvaluationEnd(ctx, "primes", "ok", 5, time.Millisecond)
	metrics.RecordEvaluationStart(ctx)
	metrics.RecordEvaluationEnd(ctx, "count", "INFINITE_ITERATOR", 0, time.Millisecond)

	byGenerator := counterTotals(t, reader, "evaluation.total", AttrGenerator)
	if byGenerator["primes"] != 1 || byGenerator["count"] != 1 {
		t.Errorf("unexpected evaluation.total: %v", byGenerator)
	}
	active := counterTotals(t, reader, "evaluation.active", AttrGenerator)
	if active[""] != 0 {
		t.Errorf("expected no active evaluations, got %v", active)
	}
}

func TestInstrument(t *testing.T) {
	reader, mp := newTestMeter(t)
	sm, err := NewSequenceMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewSequenceMetrics: %v", err)
	}
	ctx := context.Background()

	s := Instrument(seq.Take(seq.Primes(), 4), sm, "primes")
	if s.Finiteness() != seq.Finite {
		t.Errorf("expected finiteness preserved, got %s", s.Finiteness())
	}
	values, err := seq.Collect(ctx, s)
	if err != nil || len(values) != 4 {
		t.Fatalf("Collect = %v, %v", values, err)
	}

	inf := Instrument(seq.Count(0, 1), sm, "count")
	if inf.Finiteness() != seq.Infinite {
		t.Errorf("expected infinite preserved, got %s", inf.Finiteness())
	}

	bad := Instrument(seq.Div(seq.Of(1, 2), seq.Scalar(0)), sm, "div")
	if _, err := seq.Collect(ctx, bad); !errors.Is(err, apperrors.ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}

	pulls := counterTotals(t, reader, "sequence.pulls", AttrSequence)
	if pulls["primes"] != 4 {
		t.Errorf("expected 4 pulls, got %v", pulls)
	}
	exhausted := counterTotals(t, reader, "sequence.exhausted", AttrSequence)
	if exhausted["primes"] != 1 {
		t.Errorf("expected one exhaustion, got %v", exhausted)
	}
	failures := counterTotals(t, reader, "sequence.errors", AttrErrorCode)
	if failures["DIVISION_BY_ZERO"] != 1 {
		t.Errorf("expected one DIVISION_BY_ZERO failure, got %v", failures)
	}
}

func TestInstrumentNilMetrics(t *testing.T) {
	s := seq.Of(1)
	if Instrument(s, nil, "x") != s {
		t.Error("expected sequence returned unchanged")
	}
}

func TestOperationContext(t *testing.T) {
	sr := useSpanRecorder(t)
	reader, mp := newTestMeter(t)
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	oc := NewOperationContext("infiniter", "evaluate", "primes", "req-1", metrics)
	ctx, span := oc.Start(context.Background(), SpanEvaluate)
	if OperationContextFromContext(ctx) != oc {
		t.Fatal("expected operation context stored in ctx")
	}
	oc.End(ctx, span, 0, apperrors.InfiniteIterator("Collect", "infinite"))

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	attrs := map[attribute.Key]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value.Emit()
	}
	if attrs[AttrGenerator] != "primes" || attrs[AttrRequestID] != "req-1" {
		t.Errorf("missing identity attributes: %v", attrs)
	}
	if attrs[AttrStatus] != "INFINITE_ITERATOR" {
		t.Errorf("expected error code as status, got %q", attrs[AttrStatus])
	}

	errs := counterTotals(t, reader, "error.total", AttrErrorCode)
	if errs["INFINITE_ITERATOR"] != 1 {
		t.Errorf("expected error recorded, got %v", errs)
	}
}

func TestOperationContextNilMetrics(t *testing.T) {
	oc := NewOperationContext("infiniter", "evaluate", "count", "", nil)
	ctx, span := oc.Start(context.Background(), SpanEvaluate)
	oc.End(ctx, span, 3, nil)
	if oc.Duration() < 0 {
		t.Error("expected non-negative duration")
	}
	if OperationContextFromContext(context.Background()) != nil {
		t.Error("expected nil without stored context")
	}
}

func TestSpanHelpers(t *testing.T) {
	sr := useSpanRecorder(t)

	ctx, span := StartSpan(context.Background(), "attrs")
	SetSpanAttribute(ctx, "string", "value")
	SetSpanAttribute(ctx, "int", 42)
	SetSpanAttribute(ctx, "int64", int64(100))
	SetSpanAttribute(ctx, "float", 3.14)
	SetSpanAttribute(ctx, "bool", true)
	SetSpanAttribute(ctx, "slice", []string{"a", "b"})
	SetSpanAttribute(ctx, "stringer", seq.Infinite)
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	ended := sr.Ended()
	if len(ended) != 1 {
		t.Fatalf("expected one span, got %d", len(ended))
	}
	if n := len(ended[0].Attributes()); n != 7 {
		t.Errorf("expected 7 attributes, got %d", n)
	}
	if ended[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", ended[0].Status())
	}

	// no recording span: must not panic
	SetSpanAttribute(context.Background(), "key", "value")
	SetSpanError(context.Background(), errors.New("no span"))
}

type staticChecker Health

func (c staticChecker) CheckHealth(context.Context) Health { return Health(c) }

func TestServiceHealth(t *testing.T) {
	sh := Check(context.Background(), "infiniter", "1.0.0",
		staticChecker{Name: "registry", Status: HealthStatusUp},
	)
	if sh.Status != HealthStatusUp || len(sh.Components) != 1 {
		t.Errorf("unexpected health: %+v", sh)
	}

	sh.AddComponent(Health{Name: "exporter", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDegraded {
		t.Errorf("expected degraded, got %s", sh.Status)
	}
	sh.AddComponent(Health{Name: "store", Status: HealthStatusDown})
	sh.AddComponent(Health{Name: "other", Status: HealthStatusDegraded})
	if sh.Status != HealthStatusDown {
		t.Errorf("expected down not overridden by degraded, got %s", sh.Status)
	}
}
