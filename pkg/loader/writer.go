package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"gopkg.in/yaml.v3"
)

// Encode writes projects in a stream format.
func Encode(w io.Writer, format Format, projects []model.Project) error {
	switch format {
	case FormatJSONL:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		for _, p := range projects {
			if err := enc.Encode(p); err != nil {
				return err
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if projects == nil {
			projects = []model.Project{}
		}
		return enc.Encode(projects)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(document{Projects: projects}); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return WriteCSV(w, projects)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// SaveProjects writes projects to path in the given format. An empty format
// is detected from the extension.
func SaveProjects(path string, format Format, projects []model.Project) error {
	if format == "" {
		var err error
		if format, err = DetectFormat(path); err != nil {
			return err
		}
	}
	if format == FormatSQLite {
		return SaveSQLite(context.Background(), path, projects)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(file, format, projects); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}
