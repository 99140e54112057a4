package loader

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// ValidationError collects every problem found in a dataset.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid dataset: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid dataset: %d problems:\n  %s", len(e.Problems), strings.Join(e.Problems, "\n  "))
}

// Validate checks projects and reports problems numbered from 1.
func Validate(projects []model.Project) error {
	_, err := checked(projects)
	return err
}

// validate returns one message per violation, prefixed with the row number
// reported by row.
func validate(projects []model.Project, row func(i int) int) []string {
	var problems []string
	seen := make(map[string]bool, len(projects))
	for i := range projects {
		n := row(i)
		problems = append(problems, validateRow(projects[i], n)...)

		name := strings.TrimSpace(projects[i].Name)
		if name == "" {
			continue
		}
		if seen[name] {
			problems = append(problems, fmt.Sprintf("Row %d: Duplicate project name %q", n, name))
		}
		seen[name] = true
	}
	return problems
}

func validateRow(p model.Project, n int) []string {
	var problems []string
	add := func(msg string) {
		problems = append(problems, fmt.Sprintf("Row %d: %s", n, msg))
	}

	if strings.TrimSpace(p.Name) == "" {
		add("Project Name is required")
	}
	if math.IsNaN(p.Position) || p.Position < 0 || p.Position > 1 {
		add("Position must be a number between 0.0 and 1.0")
	}
	if !p.Category.IsValid() {
		add("Category must be one of: " + join(model.Categories))
	}
	if !p.Risk.IsValid() {
		add("Risk must be one of: " + join(model.Levels))
	}
	if !p.Complexity.IsValid() {
		add("Complexity must be one of: " + join(model.Levels))
	}
	if !p.Timeline.IsValid() {
		add("Timeline must be one of: " + join(model.Timelines))
	}
	return problems
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
