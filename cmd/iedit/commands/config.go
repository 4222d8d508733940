package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/scl-tools/iedit-go/pkg/synth"
)

// Configuration defaults.
const (
	DefaultLogLevel = "info"
	DefaultOutput   = "text"
)

// Config holds the settings shared by all commands.
type Config struct {
	LogLevel     string `mapstructure:"log-level"`
	Journal      string `mapstructure:"journal"`
	State        string `mapstructure:"state"`
	Manufacturer string `mapstructure:"manufacturer"`
	Output       string `mapstructure:"output"`
}

// LoadConfig unmarshals the viper settings and applies defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Manufacturer == "" {
		c.Manufacturer = synth.DefaultManufacturer
	}
	c.Output = strings.ToLower(c.Output)
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Output {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid output format %q (want text or yaml)", c.Output)
	}
	return nil
}

// Level parses the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
