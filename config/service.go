package config

import (
	"fmt"

	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/validation"
)

var environments = []string{"development", "staging", "production"}

// ServiceConfig contains the fields every pktchain process needs.
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name"`
	Environment string        `yaml:"environment" mapstructure:"environment"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults fills unset fields.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "pktchain"
	}
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the service fields.
func (c *ServiceConfig) Validate() error {
	v := validation.New().
		Required("name", c.Name).
		OneOf("environment", c.Environment, environments)
	if err := c.Logging.Validate(); err != nil {
		v.AddError("logging", err.Error())
	}
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// String summarises the service identity for logs.
func (c *ServiceConfig) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Environment)
}
