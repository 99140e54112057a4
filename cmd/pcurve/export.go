package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Dicklesworthstone/progress_curve/pkg/config"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/render"
)

var exportCmd = &cobra.Command{
	Use:     "export [dataset]",
	Short:   "Export a chart snapshot, optionally asking for the settings.",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(cmd *cobra.Command, args []string) error {
		projects, err := loadDataset(datasetPath(args))
		if err != nil {
			return err
		}
		opts := render.SnapshotOptions{
			Path:     cfg.Output,
			Format:   cfg.Format,
			Projects: projects,
			Width:    cfg.Width,
			Hover:    cfg.Hover,
		}

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("interactive export needs a terminal")
			}
			ok, err := askSnapshotOptions(&opts)
			if err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				return err
			}
			if !ok {
				cmd.Println("Export cancelled")
				return nil
			}
		}
		return writeSnapshot(cmd, opts)
	},
}

// askSnapshotOptions edits opts in place. It reports false when the user
// declines the final confirmation.
func askSnapshotOptions(opts *render.SnapshotOptions) (bool, error) {
	format := opts.Format
	if format == "" {
		format = render.FormatSVG
	}
	width := strconv.FormatFloat(opts.Width, 'f', -1, 64)
	hover := opts.Hover
	confirmed := true

	hoverOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, name := range projectNames(opts.Projects) {
		hoverOptions = append(hoverOptions, huh.NewOption(name, name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output file").
				Value(&opts.Path).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("output file is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Format").
				Options(huh.NewOptions(render.FormatSVG, render.FormatPNG, render.FormatAll)...).
				Value(&format),
			huh.NewInput().
				Title("Width in pixels").
				Value(&width).
				Validate(validateWidth),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Show tooltip for").
				Options(hoverOptions...).
				Value(&hover),
			huh.NewConfirm().
				Title("Write the snapshot?").
				Affirmative("Export").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}

	w, _ := strconv.ParseFloat(strings.TrimSpace(width), 64)
	opts.Format = format
	opts.Width = w
	opts.Hover = hover
	return confirmed, nil
}

func validateWidth(s string) error {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errors.New("width must be a number")
	}
	if w <= 0 || w > config.MaxWidth {
		return fmt.Errorf("width must be between 1 and %.0f", config.MaxWidth)
	}
	return nil
}

func projectNames(projects []model.Project) []string {
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return names
}
