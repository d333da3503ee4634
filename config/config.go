package config

import (
	"fmt"

	"github.com/skillsenselab/httpkit/httperr"
	"github.com/skillsenselab/httpkit/logger"
)

// ErrorHandling configures the error translation middleware.
type ErrorHandling struct {
	// FallbackMessage is the client-safe message for catch-all 500s.
	FallbackMessage string `yaml:"fallback_message" mapstructure:"fallback_message"`
}

// ApplyDefaults applies default values to error handling configuration.
func (c *ErrorHandling) ApplyDefaults() {
	if c.FallbackMessage == "" {
		c.FallbackMessage = httperr.DefaultFallbackMessage
	}
}

// Config is the top-level httpkit configuration.
type Config struct {
	Service string        `yaml:"service" mapstructure:"service"`
	Errors  ErrorHandling `yaml:"errors" mapstructure:"errors"`
	Logging logger.Config `yaml:"logging" mapstructure:"logging"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.Errors.ApplyDefaults()
	c.Logging.ApplyDefaults()
}

// Validate validates every section.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	return nil
}
