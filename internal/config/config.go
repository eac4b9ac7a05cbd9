// Package config provides configuration data structures for nexwatch.
package config

import (
	"time"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// Config represents the complete nexwatch configuration loaded from
// .nexwatch/config.yaml.
type Config struct {
	Nexus    NexusConfig    `yaml:"nexus"    json:"nexus"`
	Telegram TelegramConfig `yaml:"telegram" json:"telegram"`
	Watch    WatchConfig    `yaml:"watch"    json:"watch"`
	State    StateConfig    `yaml:"state"    json:"state"`
	Log      LogConfig      `yaml:"log"      json:"log"`
}

// Period is the time window used by the Nexus Mods updated-mods endpoint.
type Period string

const (
	// PeriodDay covers the last day.
	PeriodDay Period = "1d"
	// PeriodWeek covers the last week.
	PeriodWeek Period = "1w"
	// PeriodMonth covers the last month.
	PeriodMonth Period = "1m"
)

// Valid reports whether the period is one the API accepts.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return true
	}
	return false
}

// NexusConfig configures access to the Nexus Mods API.
type NexusConfig struct {
	// APIKey is the personal API key from nexusmods.com.
	APIKey string `yaml:"api_key" json:"api_key"`
	// Game is the game domain name, e.g. "starfield".
	Game string `yaml:"game" json:"game"`
	// Period is the window for the updated-mods feed (default: 1w).
	Period Period `yaml:"period" json:"period"`
	// CacheTTL is how long API responses are cached in memory (default: 5m).
	CacheTTL time.Duration `yaml:"cache_ttl" json:"cache_ttl"`
}

// TelegramConfig configures Telegram notification delivery.
// Leave Token empty to disable notifications.
type TelegramConfig struct {
	// Token is the bot token from @BotFather.
	Token string `yaml:"token" json:"token"`
	// ChatID is the target chat ID.
	ChatID string `yaml:"chat_id" json:"chat_id"`
	// TopicID is the optional group topic (message thread) ID.
	TopicID string `yaml:"topic_id" json:"topic_id"`
}

// Enabled reports whether Telegram delivery is configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != ""
}

// WatchConfig configures the watch loops.
type WatchConfig struct {
	// HideAdult skips mods flagged as adult content (default: false).
	HideAdult bool `yaml:"hide_adult" json:"hide_adult"`
	// Loop keeps checking at the configured frequency (default: true).
	Loop bool `yaml:"loop" json:"loop"`
	// AdditionsFrequency is the delay between addition checks (default: 5m).
	AdditionsFrequency time.Duration `yaml:"additions_frequency" json:"additions_frequency"`
	// UpdatesFrequency is the delay between update checks (default: 1h).
	UpdatesFrequency time.Duration `yaml:"updates_frequency" json:"updates_frequency"`
}

// StateConfig configures on-disk state storage.
type StateConfig struct {
	// Dir is the directory for state files (default: .nexwatch).
	Dir string `yaml:"dir" json:"dir"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info).
	Level string `yaml:"level" json:"level"`
	// Console mirrors logs to stderr in addition to the log file.
	Console bool `yaml:"console" json:"console"`
	// JSON switches the log file to JSON format.
	JSON bool `yaml:"json" json:"json"`
}

// Default values.
const (
	// DefaultPeriod is the default updated-mods window.
	DefaultPeriod = PeriodWeek
	// DefaultCacheTTL is the default API response cache TTL.
	DefaultCacheTTL = 5 * time.Minute
	// DefaultAdditionsFrequency is the default delay between addition checks.
	DefaultAdditionsFrequency = 5 * time.Minute
	// DefaultUpdatesFrequency is the default delay between update checks.
	DefaultUpdatesFrequency = time.Hour
	// DefaultStateDir is the default state directory.
	DefaultStateDir = ".nexwatch"
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"
)

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	cfg.Watch.Loop = true
	return cfg
}

// ApplyDefaults fills in default values for any unset fields.
func (c *Config) ApplyDefaults() {
	if c.Nexus.Period == "" {
		c.Nexus.Period = DefaultPeriod
	}
	if c.Nexus.CacheTTL == 0 {
		c.Nexus.CacheTTL = DefaultCacheTTL
	}
	if c.Watch.AdditionsFrequency == 0 {
		c.Watch.AdditionsFrequency = DefaultAdditionsFrequency
	}
	if c.Watch.UpdatesFrequency == 0 {
		c.Watch.UpdatesFrequency = DefaultUpdatesFrequency
	}
	if c.State.Dir == "" {
		c.State.Dir = DefaultStateDir
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks the configuration for missing or invalid values.
func (c *Config) Validate() error {
	if c.Nexus.APIKey == "" {
		return errors.ConfigMissing("nexus.api_key")
	}
	if c.Nexus.Game == "" {
		return errors.ConfigMissing("nexus.game")
	}
	if !c.Nexus.Period.Valid() {
		return errors.ConfigInvalid("nexus.period", string(c.Nexus.Period), "must be 1d, 1w or 1m")
	}
	if c.Watch.AdditionsFrequency < 0 {
		return errors.ConfigInvalid("watch.additions_frequency", c.Watch.AdditionsFrequency.String(), "must not be negative")
	}
	if c.Watch.UpdatesFrequency < 0 {
		return errors.ConfigInvalid("watch.updates_frequency", c.Watch.UpdatesFrequency.String(), "must not be negative")
	}
	if c.Telegram.Enabled() && c.Telegram.ChatID == "" {
		return errors.ConfigMissing("telegram.chat_id")
	}
	return nil
}
