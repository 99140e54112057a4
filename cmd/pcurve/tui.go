package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/ui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui [dataset]",
	Short:   "Explore the chart in the terminal.",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("tui needs an interactive terminal, use render or serve instead")
		}

		path := datasetPath(args)
		projects, err := loadDataset(path)
		if err != nil {
			return err
		}

		logFile, _ := cmd.Flags().GetString("log-file")
		tuiLog, closeLog, err := openTUILogger(logFile)
		if err != nil {
			return err
		}
		defer closeLog()
		// stderr would tear the alternate screen.
		logger = tuiLog

		opts := ui.Options{
			SnapshotDir: filepath.Dir(cfg.Output),
			Debounce:    cfg.Debounce,
			Logger:      tuiLog,
		}
		if path != "" {
			opts.Reload = func() ([]model.Project, error) { return loadDataset(path) }
		}

		ctx := cmd.Context()
		p := tea.NewProgram(ui.NewModel(projects, opts),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		if cfg.Watch && path != "" {
			w, err := newDatasetWatcher(path)
			if err != nil {
				return err
			}
			defer w.Close()
			go func() {
				_ = watchDataset(ctx, w, path, func(projects []model.Project, err error) {
					p.Send(ui.ProjectsMsg{Projects: projects, Err: err})
				})
			}()
		}

		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("terminal view: %w", err)
		}
		return nil
	},
}

func openTUILogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return cfg.NewLogger(f), func() { _ = f.Close() }, nil
}
