package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/internal/tui"
)

// additionsCmd watches for newly added mods.
var additionsCmd = &cobra.Command{
	Use:   "additions",
	Short: "Watch for newly added mods",
	Long: `Additions polls the latest-added feed for the configured game, prints
newly discovered mods as a table, and optionally notifies a Telegram
chat. Mods already seen are remembered in the state directory so each
mod is reported once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadWatchConfig(cmd, false)
		if err != nil {
			return err
		}
		return runWatch(cmd, cfg, tui.ModeAdditions)
	},
}

func init() {
	addWatchFlags(additionsCmd)
	rootCmd.AddCommand(additionsCmd)
}
