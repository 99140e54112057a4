package main

import (
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/progress_curve/pkg/loader"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert a dataset between jsonl, json, yaml, csv and sqlite.",
	Example: `  pcurve convert projects.csv projects.yaml
  pcurve convert projects.jsonl portfolio.db --to sqlite`,
	Args:    cobra.ExactArgs(2),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		var to loader.Format
		if s, _ := cmd.Flags().GetString("to"); s != "" {
			f, err := loader.ParseFormat(s)
			if err != nil {
				return err
			}
			to = f
		}

		projects, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		if err := loader.SaveProjects(args[1], to, projects); err != nil {
			return err
		}
		if !cfg.Quiet {
			cmd.Printf("Converted %d projects to %s\n", len(projects), args[1])
		}
		return nil
	},
}
