// Package config provides configuration loading from YAML or TOML files.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osa030/trackbind/internal/domain/options"
	"github.com/osa030/trackbind/internal/domain/track"
)

// Config represents the application configuration.
type Config struct {
	Profile  string                  `yaml:"profile" toml:"profile" default:"android" validate:"required"`
	Log      LogConfig               `yaml:"log" toml:"log"`
	Dispatch DispatchConfig          `yaml:"dispatch" toml:"dispatch"`
	Player   options.PlayerOptions   `yaml:"player" toml:"player" validate:"-"`
	Metadata options.MetadataOptions `yaml:"metadata" toml:"metadata" validate:"-"`
	Tracks   []track.Track           `yaml:"tracks" toml:"tracks" validate:"-"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" default:"info" validate:"oneof=debug info warn warning error"`
	Output string `yaml:"output" toml:"output" default:"stderr"` // "stdout", "stderr" or a file path
}

// DispatchConfig represents event delivery configuration.
type DispatchConfig struct {
	ListenerTimeoutMs int `yaml:"listener_timeout_ms" toml:"listener_timeout_ms" default:"500" validate:"gte=1,lte=60000"`
}

// ListenerTimeout returns the listener timeout as a duration.
func (d DispatchConfig) ListenerTimeout() time.Duration {
	return time.Duration(d.ListenerTimeoutMs) * time.Millisecond
}

// Load loads configuration from a file. The format follows the extension:
// .toml for TOML, anything else is read as YAML.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("TRACKBIND_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := os.Getenv("TRACKBIND_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TRACKBIND_LOG_OUTPUT"); v != "" {
		c.Log.Output = v
	}
}

// Validate validates the configuration. Player and metadata options are not
// validated here; their ranges are advisory.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}

	for i, t := range c.Tracks {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "tracks[%d]", i)
		}
	}
	return nil
}
