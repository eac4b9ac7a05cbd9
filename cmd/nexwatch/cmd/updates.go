package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/internal/tui"
)

// updatesCmd watches tracked mods for new versions.
var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Watch tracked mods for new versions",
	Long: `Updates polls the updated-mods feed and compares it against your
tracked mods. When a tracked mod publishes a new version, the new
changelog entries are reported and optionally sent to Telegram.

The first run primes a local version cache from the API, so updates are
only reported from the second check onward.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadWatchConfig(cmd, true)
		if err != nil {
			return err
		}
		return runWatch(cmd, cfg, tui.ModeUpdates)
	},
}

func init() {
	addWatchFlags(updatesCmd)
	updatesCmd.Flags().StringP("period", "p", "", "Updated-mods window: 1d, 1w or 1m (overrides config)")

	rootCmd.AddCommand(updatesCmd)
}
