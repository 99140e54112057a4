// Package loader reads and writes project portfolios in the supported
// dataset formats.
package loader

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"gopkg.in/yaml.v3"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatJSONL  Format = "jsonl"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSONL, FormatJSON, FormatYAML, FormatCSV, FormatSQLite}

// ErrUnsupportedFormat is returned for unknown extensions or format names.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

var extensions = map[string]Format{
	".jsonl":   FormatJSONL,
	".ndjson":  FormatJSONL,
	".json":    FormatJSON,
	".yaml":    FormatYAML,
	".yml":     FormatYAML,
	".csv":     FormatCSV,
	".db":      FormatSQLite,
	".sqlite":  FormatSQLite,
	".sqlite3": FormatSQLite,
}

// DatasetNames are the file names FindDataset looks for, in order.
var DatasetNames = []string{
	"projects.jsonl",
	"projects.json",
	"projects.yaml",
	"projects.yml",
	"projects.csv",
	"projects.db",
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// ParseFormat accepts a format name or a file extension with or without the dot.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	if !strings.HasPrefix(s, ".") {
		s = "." + s
	}
	if f, ok := extensions[s]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FindDataset looks for a dataset in dir and dir/.pcurve.
func FindDataset(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current working directory: %w", err)
		}
	}
	for _, base := range []string{dir, filepath.Join(dir, ".pcurve")} {
		for _, name := range DatasetNames {
			path := filepath.Join(base, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("no project dataset found in %s", dir)
}

// LoadProjects reads the dataset at path. An empty path yields the built-in
// portfolio.
func LoadProjects(path string) ([]model.Project, error) {
	if path == "" {
		return model.DefaultProjects(), nil
	}
	return LoadProjectsFromFile(path)
}

// LoadProjectsFromFile reads and validates a dataset, choosing the decoder
// from the file extension.
func LoadProjectsFromFile(path string) ([]model.Project, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return LoadProjectsAs(path, format)
}

// LoadProjectsAs reads and validates a dataset in an explicit format,
// ignoring the file extension.
func LoadProjectsAs(path string, format Format) ([]model.Project, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("no project dataset found at %s", path)
	}
	if format == FormatSQLite {
		return LoadSQLite(context.Background(), path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	projects, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return projects, nil
}

// Decode reads and validates projects in a stream format. SQLite is file
// based and goes through LoadSQLite instead.
func Decode(r io.Reader, format Format) ([]model.Project, error) {
	switch format {
	case FormatJSONL:
		return decodeJSONL(r)
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	case FormatCSV:
		return ReadCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func decodeJSONL(r io.Reader) ([]model.Project, error) {
	var projects []model.Project
	var rows []int
	var problems []string

	scanner := bufio.NewScanner(r)
	// Notes can be long; allow lines up to 1MB.
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p model.Project
		if err := json.Unmarshal(line, &p); err != nil {
			problems = append(problems, fmt.Sprintf("Row %d: invalid JSON: %v", lineNum, err))
			continue
		}
		projects = append(projects, p)
		rows = append(rows, lineNum)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}

	problems = append(problems, validate(projects, func(i int) int { return rows[i] })...)
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return projects, nil
}

// document is the wrapped form of JSON and YAML datasets.
type document struct {
	Projects []model.Project `json:"projects" yaml:"projects"`
}

func decodeJSON(r io.Reader) ([]model.Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading dataset: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	var projects []model.Project
	if trimmed[0] == '{' {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON dataset: %w", err)
		}
		projects = doc.Projects
	} else if err := json.Unmarshal(trimmed, &projects); err != nil {
		return nil, fmt.Errorf("invalid JSON dataset: %w", err)
	}
	return checked(projects)
}

func decodeYAML(r io.Reader) ([]model.Project, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid YAML dataset: %w", err)
	}

	var projects []model.Project
	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == yaml.MappingNode {
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("invalid YAML dataset: %w", err)
		}
		projects = doc.Projects
	} else if err := root.Decode(&projects); err != nil {
		return nil, fmt.Errorf("invalid YAML dataset: %w", err)
	}
	return checked(projects)
}

// checked validates projects numbered from 1 in document order.
func checked(projects []model.Project) ([]model.Project, error) {
	if problems := validate(projects, func(i int) int { return i + 1 }); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return projects, nil
}
