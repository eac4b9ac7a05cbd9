package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/nexwatch/nexwatch/internal/version"
)

// versionCmd shows build information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.NewInfo(Version, Commit, Date)
	cmd.Println(info.FullString())

	check, _ := cmd.Flags().GetBool("check")
	if !check {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	release, err := version.NewChecker().CheckForUpdate(ctx, Version)
	if err != nil {
		cmd.Printf("\nUpdate check failed: %v\n", err)
		return nil
	}
	if release == nil {
		cmd.Println("\nYou are on the latest version.")
		return nil
	}

	cmd.Printf("\nNew version available: %s\n", release.TagName)
	cmd.Printf("  %s\n", release.HTMLURL)
	return nil
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
