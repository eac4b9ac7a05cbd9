package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nexwatch/nexwatch/internal/config"
	"github.com/nexwatch/nexwatch/internal/errors"
)

// initCmd creates a starter config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file with default values",
	Long: `Init writes a starter config file to .nexwatch/config.yaml (or the path
given with --config). Fill in your Nexus Mods API key and game domain,
and optionally a Telegram bot token and chat ID.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}
	force, _ := cmd.Flags().GetBool("force")

	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithSuggestion(errors.ErrConfig,
			fmt.Sprintf("config file already exists: %s", path),
			"Use --force to overwrite it")
	}

	// Durations are written as strings ("5m", "1h") so the file stays
	// hand-editable; yaml.Marshal on time.Duration would emit nanoseconds.
	defaults := config.NewConfig()
	doc := map[string]any{
		"nexus": map[string]any{
			"api_key":   "YOUR_NEXUS_API_KEY",
			"game":      "starfield",
			"period":    string(defaults.Nexus.Period),
			"cache_ttl": defaults.Nexus.CacheTTL.String(),
		},
		"telegram": map[string]any{
			"token":    "",
			"chat_id":  "",
			"topic_id": "",
		},
		"watch": map[string]any{
			"hide_adult":          defaults.Watch.HideAdult,
			"loop":                defaults.Watch.Loop,
			"additions_frequency": defaults.Watch.AdditionsFrequency.String(),
			"updates_frequency":   defaults.Watch.UpdatesFrequency.String(),
		},
		"state": map[string]any{
			"dir": defaults.State.Dir,
		},
		"log": map[string]any{
			"level":   defaults.Log.Level,
			"console": defaults.Log.Console,
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to encode config")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to create config directory").
			WithDetails("path", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(err, errors.ErrConfig, "failed to write config file").
			WithDetails("path", path)
	}

	cmd.Printf("Created %s\n", path)
	cmd.Println("Edit it to set your Nexus Mods API key and game domain.")
	return nil
}

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
