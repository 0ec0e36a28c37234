package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/kbukum/infiniter/errors"
	"github.com/kbukum/infiniter/seq"
)

// SequenceMetrics counts pulls through instrumented sequences.
type SequenceMetrics struct {
	pulls     metric.Int64Counter
	errors    metric.Int64Counter
	exhausted metric.Int64Counter
}

// NewSequenceMetrics creates the sequence.* instruments on meter.
func NewSequenceMetrics(meter metric.Meter) (*SequenceMetrics, error) {
	pulls, err := meter.Int64Counter("sequence.pulls",
		metric.WithDescription("Values produced by instrumented sequences"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.pulls counter: %w", err)
	}
	errs, err := meter.Int64Counter("sequence.errors",
		metric.WithDescription("Pulls that failed, by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.errors counter: %w", err)
	}
	exhausted, err := meter.Int64Counter("sequence.exhausted",
		metric.WithDescription("Instrumented sequences drained to the end"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating sequence.exhausted counter: %w", err)
	}
	return &SequenceMetrics{pulls: pulls, errors: errs, exhausted: exhausted}, nil
}

// Instrument returns s unchanged in values and finiteness, recording every
// pull under the given sequence name. A nil m returns s as is.
func Instrument[T any](s *seq.Sequence[T], m *SequenceMetrics, name string) *seq.Sequence[T] {
	if m == nil {
		return s
	}
	return seq.Observe(s, &metricsObserver[T]{
		m:     m,
		attrs: metric.WithAttributes(attribute.String(AttrSequence, name)),
		name:  name,
	})
}

type metricsObserver[T any] struct {
	m     *SequenceMetrics
	attrs metric.MeasurementOption
	name  string
}

func (o *metricsObserver[T]) OnNext(ctx context.Context, _ int, _ T) {
	o.m.pulls.Add(ctx, 1, o.attrs)
}

func (o *metricsObserver[T]) OnError(ctx context.Context, _ int, err error) {
	code := string(apperrors.ErrCodeInternal)
	if appErr, ok := apperrors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	o.m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrSequence, o.name),
		attribute.String(AttrErrorCode, code),
	))
}

func (o *metricsObserver[T]) OnDone(ctx context.Context, _ int) {
	o.m.exhausted.Add(ctx, 1, o.attrs)
}
