package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/progress_curve/pkg/updater"
	"github.com/Dicklesworthstone/progress_curve/pkg/version"
)

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.Printf("Version: %s\n", version.Version)
		cmd.Printf("Commit:  %s\n", version.Commit)
		cmd.Printf("Built:   %s\n", version.Date)
		cmd.Printf("Runtime: %s\n", version.Runtime())

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), updater.DefaultTimeout)
		defer cancel()
		tag, url, err := updater.CheckForUpdates(ctx)
		if err != nil {
			cmd.Printf("Update check failed: %v\n", err)
			return nil
		}
		if tag == "" {
			cmd.Println("Up to date")
			return nil
		}
		cmd.Printf("New version available: %s\n%s\n", tag, url)
		return nil
	},
}
