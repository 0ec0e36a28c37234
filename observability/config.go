package observability

import (
	"fmt"
	"time"
)

// Config groups the metrics and tracing settings of a service.
type Config struct {
	Metrics MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
	Tracing TracerConfig `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults fills unset fields of both sections. Service identity is
// taken from the caller so it is configured in one place.
func (c *Config) ApplyDefaults(serviceName, serviceVersion, environment string) {
	m := DefaultMeterConfig(serviceName)
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = serviceName
	}
	if c.Metrics.ServiceVersion == "" {
		c.Metrics.ServiceVersion = orDefault(serviceVersion, m.ServiceVersion)
	}
	if c.Metrics.Environment == "" {
		c.Metrics.Environment = orDefault(environment, m.Environment)
	}
	if c.Metrics.Endpoint == "" {
		c.Metrics.Endpoint = m.Endpoint
	}
	if c.Metrics.Interval == 0 {
		c.Metrics.Interval = m.Interval
	}

	tr := DefaultTracerConfig(serviceName)
	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = serviceName
	}
	if c.Tracing.ServiceVersion == "" {
		c.Tracing.ServiceVersion = orDefault(serviceVersion, tr.ServiceVersion)
	}
	if c.Tracing.Environment == "" {
		c.Tracing.Environment = orDefault(environment, tr.Environment)
	}
	if c.Tracing.Endpoint == "" {
		c.Tracing.Endpoint = tr.Endpoint
	}
	// zero is indistinguishable from unset; disable tracing to sample nothing
	if c.Tracing.SampleRate == 0 {
		c.Tracing.SampleRate = tr.SampleRate
	}
}

// Validate checks the enabled sections.
func (c *Config) Validate() error {
	if c.Metrics.Enabled {
		if c.Metrics.Endpoint == "" {
			return fmt.Errorf("observability.metrics.endpoint is required when metrics are enabled")
		}
		if c.Metrics.Interval < time.Second {
			return fmt.Errorf("observability.metrics.interval must be at least 1s (got: %s)", c.Metrics.Interval)
		}
	}
	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			return fmt.Errorf("observability.tracing.endpoint is required when tracing is enabled")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
			return fmt.Errorf("observability.tracing.sample_rate must be between 0 and 1 (got: %v)", c.Tracing.SampleRate)
		}
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
