package eval

import "github.com/kbukum/infiniter/validation"

// Config bounds evaluations.
type Config struct {
	// DefaultTake bounds sequences that are not finite when the query has no
	// take. Zero disables it, so unbounded queries fail with INFINITE_ITERATOR.
	DefaultTake int `yaml:"default_take" mapstructure:"default_take" json:"default_take" validate:"gte=0"`
	// MaxTake is the largest result an evaluation may return. A Config used
	// without ApplyDefaults and left at zero has no limit.
	MaxTake int `yaml:"max_take" mapstructure:"max_take" json:"max_take" validate:"gte=0"`
	// MaxSkip is the largest skip a query may ask for. Skipped values are
	// still pulled, so the bound keeps a single request from scanning without
	// end. Zero has no limit.
	MaxSkip int `yaml:"max_skip" mapstructure:"max_skip" json:"max_skip" validate:"gte=0"`
	// Trace logs every pull at debug level.
	Trace bool `yaml:"trace" mapstructure:"trace" json:"trace"`
}

// ApplyDefaults sets MaxTake and MaxSkip when unset.
func (c *Config) ApplyDefaults() {
	if c.MaxTake == 0 {
		c.MaxTake = 10000
	}
	if c.MaxSkip == 0 {
		c.MaxSkip = 1_000_000
	}
}

// Validate checks the limits against each other.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return validation.New().
		Custom(c.MaxTake == 0 || c.DefaultTake <= c.MaxTake, "default_take", "must not exceed max_take").
		Validate()
}
