// Package config provides configuration loading and management for nexwatch.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/nexwatch/nexwatch/internal/errors"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the
	// working directory.
	DefaultConfigPath = ".nexwatch/config.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "NEXWATCH"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working directory.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := NewConfig()

	// A missing config file is fine as long as the environment provides the
	// required values; 'nexwatch init' creates one.
	if _, err := os.Stat(path); err == nil {
		l.v.SetConfigFile(path)

		if err := l.v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "failed to read config file").
				WithDetails("path", path)
		}

		if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "failed to parse config file").
				WithDetails("path", path)
		}
	}

	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .nexwatch/config.yaml in the
// specified directory.
func (l *Loader) LoadConfigFromDir(dir string) (*Config, error) {
	return l.LoadConfig(filepath.Join(dir, DefaultConfigPath))
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// Nexus settings
	if v := os.Getenv(EnvPrefix + "_NEXUS_API_KEY"); v != "" {
		cfg.Nexus.APIKey = v
	}
	if v := os.Getenv(EnvPrefix + "_NEXUS_GAME"); v != "" {
		cfg.Nexus.Game = v
	}
	if v := os.Getenv(EnvPrefix + "_NEXUS_PERIOD"); v != "" {
		cfg.Nexus.Period = Period(v)
	}

	// Telegram settings
	if v := os.Getenv(EnvPrefix + "_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv(EnvPrefix + "_TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv(EnvPrefix + "_TELEGRAM_TOPIC_ID"); v != "" {
		cfg.Telegram.TopicID = v
	}

	// Watch settings
	if v := os.Getenv(EnvPrefix + "_WATCH_HIDE_ADULT"); v != "" {
		cfg.Watch.HideAdult = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "_WATCH_LOOP"); v != "" {
		cfg.Watch.Loop = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "_WATCH_ADDITIONS_FREQUENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.AdditionsFrequency = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_WATCH_UPDATES_FREQUENCY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Watch.UpdatesFrequency = d
		}
	}

	// State settings
	if v := os.Getenv(EnvPrefix + "_STATE_DIR"); v != "" {
		cfg.State.Dir = v
	}

	// Log settings
	if v := os.Getenv(EnvPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "_LOG_CONSOLE"); v != "" {
		cfg.Log.Console = parseBool(v)
	}
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
