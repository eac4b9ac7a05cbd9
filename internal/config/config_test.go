package config

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/nexwatch/nexwatch/internal/errors"
)

func validConfig() *Config {
	cfg := NewConfig()
	cfg.Nexus.APIKey = "key"
	cfg.Nexus.Game = "starfield"
	return cfg
}

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Nexus.Period != PeriodWeek {
		t.Errorf("Period = %q, want %q", cfg.Nexus.Period, PeriodWeek)
	}
	if cfg.Nexus.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.Nexus.CacheTTL)
	}
	if cfg.Watch.AdditionsFrequency != 5*time.Minute {
		t.Errorf("AdditionsFrequency = %v, want 5m", cfg.Watch.AdditionsFrequency)
	}
	if cfg.Watch.UpdatesFrequency != time.Hour {
		t.Errorf("UpdatesFrequency = %v, want 1h", cfg.Watch.UpdatesFrequency)
	}
	if !cfg.Watch.Loop {
		t.Error("Loop = false, want true")
	}
	if cfg.State.Dir != ".nexwatch" {
		t.Errorf("State.Dir = %q, want .nexwatch", cfg.State.Dir)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestPeriodValid(t *testing.T) {
	tests := []struct {
		period Period
		want   bool
	}{
		{PeriodDay, true},
		{PeriodWeek, true},
		{PeriodMonth, true},
		{Period("2w"), false},
		{Period(""), false},
	}

	for _, tt := range tests {
		if got := tt.period.Valid(); got != tt.want {
			t.Errorf("Period(%q).Valid() = %t, want %t", tt.period, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Nexus.APIKey = "" },
			wantErr: errors.ErrConfig,
		},
		{
			name:    "missing game",
			mutate:  func(c *Config) { c.Nexus.Game = "" },
			wantErr: errors.ErrConfig,
		},
		{
			name:    "bad period",
			mutate:  func(c *Config) { c.Nexus.Period = "2w" },
			wantErr: errors.ErrConfig,
		},
		{
			name:    "negative additions frequency",
			mutate:  func(c *Config) { c.Watch.AdditionsFrequency = -time.Second },
			wantErr: errors.ErrConfig,
		},
		{
			name:    "negative updates frequency",
			mutate:  func(c *Config) { c.Watch.UpdatesFrequency = -time.Second },
			wantErr: errors.ErrConfig,
		},
		{
			name: "telegram token without chat id",
			mutate: func(c *Config) {
				c.Telegram.Token = "bot-token"
				c.Telegram.ChatID = ""
			},
			wantErr: errors.ErrConfig,
		},
		{
			name: "telegram fully configured",
			mutate: func(c *Config) {
				c.Telegram.Token = "bot-token"
				c.Telegram.ChatID = "-100123"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !stderrors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTelegramEnabled(t *testing.T) {
	if (TelegramConfig{}).Enabled() {
		t.Error("Enabled() = true for empty config, want false")
	}
	if !(TelegramConfig{Token: "x"}).Enabled() {
		t.Error("Enabled() = false with token set, want true")
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Nexus.Period = PeriodDay
	cfg.Watch.UpdatesFrequency = 2 * time.Hour
	cfg.ApplyDefaults()

	if cfg.Nexus.Period != PeriodDay {
		t.Errorf("Period = %q, want explicit 1d kept", cfg.Nexus.Period)
	}
	if cfg.Watch.UpdatesFrequency != 2*time.Hour {
		t.Errorf("UpdatesFrequency = %v, want explicit 2h kept", cfg.Watch.UpdatesFrequency)
	}
	if cfg.Watch.AdditionsFrequency != DefaultAdditionsFrequency {
		t.Errorf("AdditionsFrequency = %v, want default filled", cfg.Watch.AdditionsFrequency)
	}
}
