package server

import (
	"fmt"

	"github.com/kbukum/infiniter/resilience"
	"github.com/kbukum/infiniter/server/middleware"
)

// Config holds HTTP server configuration.
type Config struct {
	Host           string                     `yaml:"host" mapstructure:"host"`
	Port           int                        `yaml:"port" mapstructure:"port"`
	ReadTimeout    int                        `yaml:"read_timeout" mapstructure:"read_timeout"`       // seconds
	WriteTimeout   int                        `yaml:"write_timeout" mapstructure:"write_timeout"`     // seconds
	IdleTimeout    int                        `yaml:"idle_timeout" mapstructure:"idle_timeout"`       // seconds
	RequestTimeout int                        `yaml:"request_timeout" mapstructure:"request_timeout"` // seconds, per evaluation
	CORS           middleware.CORSConfig      `yaml:"cors" mapstructure:"cors"`
	RateLimit      middleware.RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	// Concurrency caps evaluations running at once; zero MaxConcurrent is unlimited.
	Concurrency resilience.BulkheadConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 15
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 10
	}
	if c.Concurrency.Name == "" {
		c.Concurrency.Name = "evaluations"
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Accept", middleware.HeaderRequestID}
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	if c.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative (got: %d)", c.ReadTimeout)
	}
	if c.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative (got: %d)", c.WriteTimeout)
	}
	if c.IdleTimeout < 0 {
		return fmt.Errorf("server.idle_timeout must be non-negative (got: %d)", c.IdleTimeout)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("server.request_timeout must be non-negative (got: %d)", c.RequestTimeout)
	}
	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("server.rate_limit.requests_per_minute must be non-negative (got: %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.Concurrency.MaxConcurrent < 0 || c.Concurrency.MaxWait < 0 {
		return fmt.Errorf("server.concurrency limits must be non-negative (got: %d, %s)", c.Concurrency.MaxConcurrent, c.Concurrency.MaxWait)
	}
	return nil
}
