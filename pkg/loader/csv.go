package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// CSVHeader is the column layout of CSV datasets.
var CSVHeader = []string{"Project Name", "Position", "Category", "Risk", "Complexity", "Timeline", "Notes"}

// ReadCSV parses a CSV dataset with a header row. Columns are matched by
// name; missing cells read as empty. Rows are reported as spreadsheet rows,
// so the first data row is Row 2.
func ReadCSV(r io.Reader) ([]model.Project, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	var projects []model.Project
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: %w", err)
		}
		cell := func(name string) string {
			if i, ok := columns[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}
		projects = append(projects, model.Project{
			Name:       cell("Project Name"),
			Position:   parsePosition(cell("Position")),
			Category:   model.Category(cell("Category")),
			Risk:       model.Level(cell("Risk")),
			Complexity: model.Level(cell("Complexity")),
			Timeline:   model.Timeline(cell("Timeline")),
			Notes:      cell("Notes"),
		})
	}

	if problems := validate(projects, func(i int) int { return i + 2 }); len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return projects, nil
}

// parsePosition returns NaN for anything that is not a number, which fails
// validation.
func parsePosition(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// WriteCSV writes projects with CSVHeader.
func WriteCSV(w io.Writer, projects []model.Project) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, p := range projects {
		rec := []string{
			p.Name,
			strconv.FormatFloat(p.Position, 'f', -1, 64),
			string(p.Category),
			string(p.Risk),
			string(p.Complexity),
			string(p.Timeline),
			p.Notes,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
