package bootstrap

import (
	"github.com/kbukum/infiniter/config"
)

// Config is the constraint on application configuration types. Structs that
// embed config.ServiceConfig get GetServiceConfig through promotion and
// override ApplyDefaults and Validate to cover their own sections.
//
//	type AppConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Eval eval.Config `yaml:"eval" mapstructure:"eval"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
