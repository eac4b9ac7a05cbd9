// Package cmd provides the CLI commands for nexwatch.
// This file wires configuration, logging and the watcher dependencies for
// the watch commands.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/internal/config"
	"github.com/nexwatch/nexwatch/internal/logging"
	"github.com/nexwatch/nexwatch/internal/nexus"
	"github.com/nexwatch/nexwatch/internal/state"
	"github.com/nexwatch/nexwatch/internal/telegram"
	"github.com/nexwatch/nexwatch/internal/tui"
	"github.com/nexwatch/nexwatch/internal/watch"
)

// addWatchFlags registers the flags shared by the additions and updates
// commands. Flags override the corresponding config file values.
func addWatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("api-key", "k", "", "Nexus Mods API key (overrides config)")
	cmd.Flags().StringP("game", "g", "", "Game domain name, e.g. 'starfield' (overrides config)")
	cmd.Flags().StringP("chat-id", "c", "", "Telegram chat ID (overrides config)")
	cmd.Flags().StringP("tg-token", "t", "", "Telegram bot token (overrides config)")
	cmd.Flags().StringP("topic-id", "o", "", "Telegram group topic ID (overrides config)")
	cmd.Flags().BoolP("hide-adult-content", "a", false, "Skip mods flagged as adult content")
	cmd.Flags().BoolP("no-loop", "l", false, "Run a single check and exit")
	cmd.Flags().DurationP("frequency", "f", 0, "Delay between checks (overrides config)")
	cmd.Flags().Bool("tui", false, "Show the live dashboard instead of plain output")
}

// loadWatchConfig loads the configuration and applies flag overrides.
// frequency applies to the additions or updates interval depending on which
// command is running.
func loadWatchConfig(cmd *cobra.Command, updates bool) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg := config.NewConfig()
	loaded, err := config.NewLoader().LoadConfig(path)
	if err == nil {
		cfg = loaded
	} else if !flagOverridesComplete(cmd) {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("api-key"); v != "" {
		cfg.Nexus.APIKey = v
	}
	if v, _ := cmd.Flags().GetString("game"); v != "" {
		cfg.Nexus.Game = v
	}
	if v, _ := cmd.Flags().GetString("tg-token"); v != "" {
		cfg.Telegram.Token = v
	}
	if v, _ := cmd.Flags().GetString("chat-id"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v, _ := cmd.Flags().GetString("topic-id"); v != "" {
		cfg.Telegram.TopicID = v
	}
	if v, _ := cmd.Flags().GetBool("hide-adult-content"); v {
		cfg.Watch.HideAdult = true
	}
	if v, _ := cmd.Flags().GetBool("no-loop"); v {
		cfg.Watch.Loop = false
	}
	// Only the updates command registers --period.
	if f := cmd.Flags().Lookup("period"); f != nil && f.Value.String() != "" {
		cfg.Nexus.Period = config.Period(f.Value.String())
	}
	if d, _ := cmd.Flags().GetDuration("frequency"); d > 0 {
		if updates {
			cfg.Watch.UpdatesFrequency = d
		} else {
			cfg.Watch.AdditionsFrequency = d
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// flagOverridesComplete reports whether the flags alone provide the required
// configuration, letting the command run without a config file.
func flagOverridesComplete(cmd *cobra.Command) bool {
	key, _ := cmd.Flags().GetString("api-key")
	game, _ := cmd.Flags().GetString("game")
	return key != "" && game != ""
}

// initLogging initializes the global logger from the config.
func initLogging(cfg *config.Config) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.LogDir = cfg.State.Dir + "/logs"
	logCfg.Console = cfg.Log.Console
	logCfg.JSONFormat = cfg.Log.JSON
	return logging.InitGlobal(logCfg)
}

// newWatcher builds a Watcher from the config.
func newWatcher(cfg *config.Config) *watch.Watcher {
	client := nexus.NewClient(cfg.Nexus.APIKey, cfg.Nexus.CacheTTL)
	client.UserAgent = "nexwatch/" + Version

	var notifier watch.Notifier
	if cfg.Telegram.Enabled() {
		notifier = telegram.NewClient(cfg.Telegram.Token)
	}

	seen := state.NewSeenStoreInDir(cfg.State.Dir)
	track := state.NewTrackCacheInDir(cfg.State.Dir)

	return watch.NewWatcher(client, notifier, seen, track, cfg)
}

// runWatch runs a watcher in console or TUI mode until it finishes or the
// process receives an interrupt.
func runWatch(cmd *cobra.Command, cfg *config.Config, mode tui.Mode) error {
	if err := initLogging(cfg); err != nil {
		return err
	}
	defer logging.CloseGlobal()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := newWatcher(cfg)

	useTUI, _ := cmd.Flags().GetBool("tui")
	if useTUI {
		return tui.Run(ctx, w, mode, cfg.Nexus.Game)
	}

	reporter := watch.NewConsoleReporter(&watch.ConsoleConfig{
		Writer:  cmd.OutOrStdout(),
		Verbose: cfg.Log.Level == "debug",
	})
	w.SetOptions(&watch.Options{
		OnEvent:     reporter.HandleEvent,
		TableWriter: cmd.OutOrStdout(),
	})

	err := runMode(ctx, w, mode)
	reporter.PrintSummary()

	// Ctrl+C is a normal way to stop a watch loop.
	if err != nil && ctx.Err() != nil {
		cmd.Println("Interrupted, state saved.")
		return nil
	}
	return err
}

func runMode(ctx context.Context, w *watch.Watcher, mode tui.Mode) error {
	if mode == tui.ModeUpdates {
		return w.RunUpdates(ctx)
	}
	return w.RunAdditions(ctx)
}
