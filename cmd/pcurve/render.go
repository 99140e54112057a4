package main

import (
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [dataset]",
	Short: "Render the chart to an SVG or PNG file.",
	Example: `  pcurve render projects.yaml -o chart.png -w 800
  pcurve render --format all --hover "Microsoft 365"`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := loadDataset(datasetPath(args))
		if err != nil {
			return err
		}
		return writeSnapshot(cmd, render.SnapshotOptions{
			Path:     cfg.Output,
			Format:   cfg.Format,
			Projects: projects,
			Width:    cfg.Width,
			Hover:    cfg.Hover,
		})
	},
}

func writeSnapshot(cmd *cobra.Command, opts render.SnapshotOptions) error {
	if opts.Hover != "" {
		if _, ok := model.NewPortfolio(opts.Projects).Find(opts.Hover); !ok {
			logger.Warn("hovered project not in dataset, no tooltip drawn", "project", opts.Hover)
		}
	}
	written, err := render.SaveSnapshot(opts)
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		for _, path := range written {
			cmd.Printf("Wrote %s\n", path)
		}
	}
	return nil
}
