package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/progress_curve/pkg/loader"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

var validateCmd = &cobra.Command{
	Use:     "validate [dataset]",
	Short:   "Check a dataset and list every problem found.",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := datasetPath(args)
		if path == "" {
			return errors.New("no dataset found, pass a path or --dataset")
		}
		out := cmd.OutOrStdout()

		projects, err := loadDataset(path)
		var verr *loader.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(out, "%s: %d problem(s)\n", path, len(verr.Problems))
			for _, p := range verr.Problems {
				fmt.Fprintf(out, "  %s\n", p)
			}
			return fmt.Errorf("%s is not a valid dataset", path)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s: %d projects OK\n", path, len(projects))
		if cfg.Quiet {
			return nil
		}
		counts := make(map[model.Category]int)
		for _, p := range projects {
			counts[p.Category]++
		}
		cats := make([]string, 0, len(counts))
		for c := range counts {
			cats = append(cats, string(c))
		}
		sort.Strings(cats)
		for _, c := range cats {
			fmt.Fprintf(out, "  %-22s %d\n", c, counts[model.Category(c)])
		}
		return nil
	},
}
