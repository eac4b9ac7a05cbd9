// Package cmd provides the CLI commands for nexwatch.
package cmd

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/internal/errors"
)

// Version information - set via ldflags at build time in main.go.
// These are exported so main.go can set them before Execute().
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "nexwatch",
	Short: "Nexwatch - Nexus Mods watcher",
	Long: `Nexwatch watches Nexus Mods for newly added mods and for updates to
your tracked mods, prints results as terminal tables, and can push
notifications to a Telegram chat (group topics supported).

It needs a personal Nexus Mods API key and a game domain name
(e.g. "starfield"). Run 'nexwatch init' to create a config file.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
	rootCmd.SetVersionTemplate("nexwatch {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		var werr *errors.WatchError
		if stderrors.As(err, &werr) {
			fmt.Fprintln(os.Stderr, werr.Format())
		}
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default .nexwatch/config.yaml)")
}
