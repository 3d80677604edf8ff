package config

import (
	"fmt"

	"github.com/arena-sim/arena-robots/internal/common"
	"github.com/arena-sim/arena-robots/internal/logger"
)

const (
	defaultRoot        = "."
	defaultLogLevel    = "info"
	defaultConcurrency = 4
)

// Config represents the complete configuration of the robots tool.
type Config struct {
	// Root is the asset root holding robots/ and config/setup/
	Root string `yaml:"root" json:"root" toml:"root"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Validation contains catalog validation settings
	Validation ValidationConfig `yaml:"validation" json:"validation" toml:"validation"`
}

// ValidationConfig configures catalog validation.
type ValidationConfig struct {
	// Concurrency is the maximum number of files validated in parallel
	Concurrency int `yaml:"concurrency" json:"concurrency" toml:"concurrency"`
}

// ApplyDefaults sets default values for optional validation fields.
func (v *ValidationConfig) ApplyDefaults() {
	if v.Concurrency == 0 {
		v.Concurrency = defaultConcurrency
	}
}

// Validate checks if the validation configuration is valid.
func (v *ValidationConfig) Validate() error {
	if v.Concurrency < 1 {
		return fmt.Errorf("validation.concurrency: must be at least 1")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - robot-provider: model params and control loading
	//   - setup-provider: setup file loading
	//   - validation: catalog validation
	//   - cli: command line front end
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = defaultLogLevel
	}
	// Development defaults to false (zero value)
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	// Validate default level
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		// Check if component is valid
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		// Check if level is valid
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return defaultLogLevel
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return l.GetDefaultLevel()
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil || l.DefaultLevel == "" {
		return defaultLogLevel
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Logging: &LoggingConfig{}}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	if c.Root == "" {
		c.Root = defaultRoot
	}

	// Apply logging defaults
	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	c.Validation.ApplyDefaults()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	return c.Validation.Validate()
}
