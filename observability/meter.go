package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/infiniter/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// Enabled turns on metric export.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (development, staging, production).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows plain HTTP connections.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns defaults for local development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it as
// the global provider. The returned provider should be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the evaluation-level instruments recorded per request.
type Metrics struct {
	evaluationTotal    metric.Int64Counter
	evaluationDuration metric.Float64Histogram
	evaluationActive   metric.Int64UpDownCounter
	evaluationValues   metric.Int64Histogram
	errorTotal         metric.Int64Counter
}

// NewMetrics creates evaluation instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	evaluationTotal, err := meter.Int64Counter("evaluation.total",
		metric.WithDescription("Total number of sequence evaluations"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluation.total counter: %w", err)
	}

	evaluationDuration, err := meter.Float64Histogram("evaluation.duration",
		metric.WithDescription("Duration of sequence evaluations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluation.duration histogram: %w", err)
	}

	evaluationActive, err := meter.Int64UpDownCounter("evaluation.active",
		metric.WithDescription("Number of evaluations in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluation.active gauge: %w", err)
	}

	evaluationValues, err := meter.Int64Histogram("evaluation.values",
		metric.WithDescription("Number of values returned per evaluation"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating evaluation.values histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Total evaluation errors by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &Metrics{
		evaluationTotal:    evaluationTotal,
		evaluationDuration: evaluationDuration,
		evaluationActive:   evaluationActive,
		evaluationValues:   evaluationValues,
		errorTotal:         errorTotal,
	}, nil
}

// RecordEvaluationStart increments the in-progress count.
func (m *Metrics) RecordEvaluationStart(ctx context.Context) {
	m.evaluationActive.Add(ctx, 1)
}

// RecordEvaluationEnd decrements the in-progress count and records the
// finished evaluation.
func (m *Metrics) RecordEvaluationEnd(ctx context.Context, generator, status string, values int, duration time.Duration) {
	gen := attribute.String(AttrGenerator, generator)
	m.evaluationActive.Add(ctx, -1)
	m.evaluationTotal.Add(ctx, 1, metric.WithAttributes(gen, attribute.String(AttrStatus, status)))
	m.evaluationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(gen))
	if values > 0 {
		m.evaluationValues.Record(ctx, int64(values), metric.WithAttributes(gen))
	}
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, code, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, code),
		attribute.String("component", component),
	))
}
