// Package config loads service configuration from a YAML file, an optional
// .env file and the process environment.
//
// Files are resolved from standard locations relative to the working
// directory (./cmd/<service>/config.yml, ./config/config.yml, ./config.yml)
// unless given explicitly. Environment variables override file values:
// EVAL_DEFAULT_TAKE sets eval.default_take, and with WithEnvPrefix("INFINITER")
// so does INFINITER_EVAL_DEFAULT_TAKE.
//
// # Usage
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Eval eval.Config     `yaml:"eval" mapstructure:"eval"`
//	}
//
//	var cfg Config
//	err := config.LoadConfig("infiniter", &cfg, config.WithEnvPrefix("INFINITER"))
package config
