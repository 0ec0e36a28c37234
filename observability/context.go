package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/infiniter/errors"
)

// OperationContext tracks one evaluation across its span and metrics.
type OperationContext struct {
	ServiceName   string
	OperationName string
	Generator     string
	RequestID     string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext creates a new operation context.
// If metrics is nil, metric recording is skipped.
func NewOperationContext(serviceName, operationName, generator, requestID string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		Generator:     generator,
		RequestID:     requestID,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

type operationContextKey struct{}

// WithOperationContext stores an OperationContext in the context.
func WithOperationContext(ctx context.Context, oc *OperationContext) context.Context {
	return context.WithValue(ctx, operationContextKey{}, oc)
}

// OperationContextFromContext retrieves the OperationContext from context, or nil.
func OperationContextFromContext(ctx context.Context) *OperationContext {
	if oc, ok := ctx.Value(operationContextKey{}).(*OperationContext); ok {
		return oc
	}
	return nil
}

// Start opens a span for the operation, stores oc in the returned context and
// records the evaluation start metric.
func (oc *OperationContext) Start(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrGenerator, oc.Generator),
	)
	if oc.RequestID != "" {
		span.SetAttributes(attribute.String(AttrRequestID, oc.RequestID))
	}
	if oc.Metrics != nil {
		oc.Metrics.RecordEvaluationStart(ctx)
	}
	return WithOperationContext(ctx, oc), span
}

// End closes the span and records the outcome. A nil err counts as "ok";
// otherwise the status is the error code.
func (oc *OperationContext) End(ctx context.Context, span trace.Span, values int, err error) {
	duration := time.Since(oc.StartTime)
	status := "ok"

	if err != nil {
		status = string(apperrors.Wrap(err).Code)
		span.RecordError(err)
		span.SetAttributes(
			attribute.String(AttrErrorCode, status),
			attribute.String(AttrErrorMessage, err.Error()),
		)
		if oc.Metrics != nil {
			oc.Metrics.RecordError(ctx, status, oc.OperationName)
		}
	}

	span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int(AttrValues, values),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordEvaluationEnd(ctx, oc.Generator, status, values, duration)
	}
}

// Duration returns the elapsed time since operation start.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
