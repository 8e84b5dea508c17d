package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEngine(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.Python == "" {
		return errors.New("engine.python must be set")
	}
	// Model names are forwarded to the engine verbatim, so anything non-empty
	// is accepted here and rejected by the engine if unknown.
	if c.Engine.ModelSize == "" {
		return errors.New("engine.model_size must be set")
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled {
		if c.Cache.Path == "" {
			return errors.New("cache.path must be set when cache.enabled is true")
		}
		if c.Cache.MaxEntries <= 0 {
			return errors.New("cache.max_entries must be positive when cache.enabled is true")
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
