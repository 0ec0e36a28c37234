package commands

import (
	"fmt"

	"github.com/kbukum/infiniter/config"
	"github.com/kbukum/infiniter/eval"
	"github.com/kbukum/infiniter/observability"
	"github.com/kbukum/infiniter/server"
	"github.com/kbukum/infiniter/version"
)

// ServiceName names the binary, its config files and its telemetry.
const ServiceName = "infiniter"

// EnvPrefix lets INFINITER_SERVER_PORT style variables override config keys.
const EnvPrefix = "INFINITER"

// AppConfig is the configuration of every infiniter command.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Eval          eval.Config          `yaml:"eval" mapstructure:"eval"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills the service identity from the build and then every
// section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.GetVersionInfo().Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Eval.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults(c.Name, c.Version, c.Environment)
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Eval.Validate(); err != nil {
		return fmt.Errorf("config.eval: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// loadConfig reads config files and the environment, then applies flag
// overrides. Defaults and validation are left to bootstrap.NewApp.
func loadConfig(opts *rootOptions) (*AppConfig, error) {
	cfg := &AppConfig{}
	loaderOpts := []config.LoaderOption{config.WithEnvPrefix(EnvPrefix)}
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}
	if err := config.LoadConfig(ServiceName, cfg, loaderOpts...); err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	return cfg, nil
}
