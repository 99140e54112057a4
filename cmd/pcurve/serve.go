package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/progress_curve/pkg/export"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

var serveCmd = &cobra.Command{
	Use:     "serve [dataset]",
	Short:   "Serve a live, responsive preview of the chart.",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := datasetPath(args)
		projects, err := loadDataset(path)
		if err != nil {
			return err
		}

		previewCfg := export.PreviewConfig{
			Dataset:     path,
			Port:        cfg.Port,
			OpenBrowser: cfg.OpenBrowser,
			Quiet:       cfg.Quiet,
		}
		server, err := export.NewPreviewServerWithConfig(previewCfg, projects)
		if err != nil {
			return err
		}
		server.SetLogger(logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		g, ctx := errgroup.WithContext(ctx)

		if cfg.Watch && path != "" {
			w, err := newDatasetWatcher(path)
			if err != nil {
				return err
			}
			defer w.Close()
			g.Go(func() error {
				return watchDataset(ctx, w, path, func(projects []model.Project, err error) {
					if err != nil {
						logger.Warn("reload failed, keeping previous data", "path", path, "error", err)
						return
					}
					server.SetProjects(projects)
					logger.Info("dataset reloaded", "path", path, "projects", len(projects))
				})
			})
		}

		g.Go(func() error {
			return export.RunPreview(ctx, server, previewCfg)
		})
		return g.Wait()
	},
}
