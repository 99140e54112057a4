package render

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// Snapshot formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	// FormatAll writes an .svg and a .png next to each other.
	FormatAll = "all"
)

// SnapshotOptions configures SaveSnapshot.
type SnapshotOptions struct {
	Path     string
	Format   string // svg, png or all; empty picks from the extension
	Projects []model.Project
	Width    float64
	Hover    string
}

// DefaultSnapshotWidth is used when SnapshotOptions.Width is zero.
const DefaultSnapshotWidth = 1200.0

// SnapshotScene lays out projects at width and composes the scene with an
// optional hovered project.
func SnapshotScene(projects []model.Project, width float64, hover string) layout.Scene {
	if width <= 0 {
		width = DefaultSnapshotWidth
	}
	f := layout.ComputeFrame(projects, width, layout.TierForWidth(width))
	return layout.Compose(&f, hover)
}

// SaveSnapshot renders the chart to a file. It returns the paths written.
func SaveSnapshot(opts SnapshotOptions) ([]string, error) {
	if opts.Path == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}
	format := strings.ToLower(opts.Format)
	if format == "" {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(opts.Path), "."))
		if ext == FormatPNG || ext == FormatSVG {
			format = ext
		} else {
			format = FormatSVG
		}
	}

	scene := SnapshotScene(opts.Projects, opts.Width, opts.Hover)

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	switch format {
	case FormatPNG:
		return []string{opts.Path}, writeFile(opts.Path, scene, RenderPNG)
	case FormatSVG:
		return []string{opts.Path}, writeFile(opts.Path, scene, RenderSVG)
	case FormatAll:
		base := strings.TrimSuffix(opts.Path, filepath.Ext(opts.Path))
		paths := []string{base + ".svg", base + ".png"}
		var g errgroup.Group
		g.Go(func() error { return writeFile(paths[0], scene, RenderSVG) })
		g.Go(func() error { return writeFile(paths[1], scene, RenderPNG) })
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return paths, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func writeFile(path string, s layout.Scene, render func(w io.Writer, s layout.Scene) error) error {
	var buf bytes.Buffer
	if err := render(&buf, s); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
