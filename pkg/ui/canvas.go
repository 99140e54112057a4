package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// ink identifies how a canvas cell is styled.
type ink int

const (
	inkNone ink = iota
	inkGrid
	inkAxis
	inkCurve
	inkLabel
	inkLegend
	inkMarker
	inkHover
)

type cell struct {
	r        rune
	ink      ink
	category model.Category
	// cont marks the trailing half of a wide rune.
	cont bool
}

// Canvas is a character grid rasterization of a scene.
type Canvas struct {
	cols, rows int
	sx, sy     float64
	cells      [][]cell
}

// curveSamplesPerCol controls how densely the curve is traced.
const curveSamplesPerCol = 3

func newCanvas(cols, rows int) *Canvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	c := &Canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for i := range c.cells {
		c.cells[i] = make([]cell, cols)
	}
	return c
}

// DrawScene rasterizes s into a cols × rows grid.
func DrawScene(s layout.Scene, cols, rows int) *Canvas {
	c := newCanvas(cols, rows)
	vp := s.Viewport
	if vp.Width > 0 && vp.Height > 0 {
		c.sx = float64(c.cols) / vp.Width
		c.sy = float64(c.rows) / vp.Height
	}

	if s.Placeholder || c.sx == 0 {
		msg := "Measuring…"
		c.text((c.cols-runewidth.StringWidth(msg))/2, c.rows/2, msg, inkAxis, "")
		return c
	}

	for _, g := range s.Grid {
		x1, row, _ := c.toCell(g.X1, g.Y)
		x2, _, _ := c.toCell(g.X2, g.Y)
		for x := x1; x <= x2; x++ {
			c.set(x, row, '┄', inkGrid, "")
		}
	}

	c.drawCurve(s.Geometry.Path)

	for _, xc := range s.XCaptions {
		col, row, _ := c.toCell(xc.X, xc.Y)
		c.text(col-runewidth.StringWidth(xc.Text)/2, row, xc.Text, inkAxis, "")
	}
	c.drawYCaption(s)

	for _, l := range s.Labels {
		c.drawLabel(l)
	}

	hovered := ""
	if s.Tooltip != nil {
		hovered = s.Tooltip.Project.Name
	}
	for _, m := range s.Markers {
		col, row, ok := c.toCell(m.X, m.Y)
		if !ok {
			continue
		}
		k := inkMarker
		if m.Project.Name == hovered {
			k = inkHover
		}
		c.text(col, row, m.Symbol, k, m.Project.Category)
	}

	if s.LegendTitle.Text != "" {
		col, row, _ := c.toCell(s.LegendTitle.X, s.LegendTitle.Y)
		c.text(col, row, s.LegendTitle.Text, inkAxis, "")
	}
	for _, item := range s.Legend {
		col, row, _ := c.toCell(item.X, item.Y)
		c.text(col, row, item.Symbol+" "+item.Label, inkLegend, "")
	}
	return c
}

// toCell maps a scene point to a cell; ok is false outside the grid.
func (c *Canvas) toCell(x, y float64) (col, row int, ok bool) {
	col = int(math.Floor(x * c.sx))
	row = int(math.Floor(y * c.sy))
	ok = col >= 0 && col < c.cols && row >= 0 && row < c.rows
	return col, row, ok
}

// ToScene maps a cell back to the scene point at its centre.
func (c *Canvas) ToScene(col, row int) (x, y float64, ok bool) {
	if c.sx == 0 || c.sy == 0 {
		return 0, 0, false
	}
	return (float64(col) + 0.5) / c.sx, (float64(row) + 0.5) / c.sy, true
}

func (c *Canvas) drawCurve(path layout.PathSpec) {
	arc := layout.NewArcTable(path)
	n := c.cols * curveSamplesPerCol
	for i := 0; i <= n; i++ {
		p := arc.PointAt(float64(i) / float64(n))
		if col, row, ok := c.toCell(p.X, p.Y); ok {
			c.set(col, row, '•', inkCurve, "")
		}
	}
}

func (c *Canvas) drawYCaption(s layout.Scene) {
	// The caption is rotated -90°: its anchor is (-centreY, centreX).
	runes := []rune(s.YCaption.Text)
	col, mid, _ := c.toCell(s.YCaption.Y, -s.YCaption.X)
	top := mid - len(runes)/2
	for i, r := range runes {
		c.set(col, top+len(runes)-1-i, r, inkAxis, "")
	}
}

func (c *Canvas) drawLabel(l layout.LabelPlacement) {
	col, row, _ := c.toCell(l.X, l.Y)
	top := row - (len(l.Lines)-1)/2
	for i, line := range l.Lines {
		w := runewidth.StringWidth(line)
		start := col
		switch l.Anchor {
		case layout.AnchorMiddle:
			start = col - w/2
		case layout.AnchorEnd:
			start = col - w
		}
		c.text(start, top+i, line, inkLabel, "")
	}
}

func (c *Canvas) set(col, row int, r rune, k ink, cat model.Category) {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	c.cells[row][col] = cell{r: r, ink: k, category: cat}
}

// text writes s from col, clipping at the edges. Wide runes take two cells.
func (c *Canvas) text(col, row int, s string, k ink, cat model.Category) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && col+1 >= c.cols {
			return
		}
		c.set(col, row, r, k, cat)
		if w == 2 {
			if col+1 >= 0 && col+1 < c.cols && row >= 0 && row < c.rows {
				c.cells[row][col+1] = cell{ink: k, category: cat, cont: true}
			}
		}
		col += w
	}
}

// Size returns the grid dimensions.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Rune returns the rune at a cell, or ' ' for blank and out of range cells.
func (c *Canvas) Rune(col, row int) rune {
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return ' '
	}
	cl := c.cells[row][col]
	if cl.r == 0 {
		return ' '
	}
	return cl.r
}

// Plain returns the grid without styling, one line per row.
func (c *Canvas) Plain() string {
	lines := make([]string, c.rows)
	for i, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			switch {
			case cl.cont:
			case cl.r == 0:
				b.WriteByte(' ')
			default:
				b.WriteRune(cl.r)
			}
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(lines, "\n")
}

// Render returns the grid styled with t. Runs of equally styled cells are
// rendered together.
func (c *Canvas) Render(t Theme) string {
	styles := map[ink]lipgloss.Style{
		inkNone:   t.Renderer.NewStyle(),
		inkGrid:   t.Renderer.NewStyle().Foreground(t.Grid),
		inkAxis:   t.Renderer.NewStyle().Foreground(t.Muted),
		inkCurve:  t.Renderer.NewStyle().Foreground(t.Curve),
		inkLabel:  t.Renderer.NewStyle().Foreground(t.Subtext),
		inkLegend: t.Renderer.NewStyle().Foreground(t.Secondary),
	}
	styleFor := func(cl cell) lipgloss.Style {
		switch cl.ink {
		case inkMarker:
			return t.Renderer.NewStyle().Foreground(t.CategoryColor(cl.category)).Bold(true)
		case inkHover:
			return t.Renderer.NewStyle().Foreground(t.CategoryColor(cl.category)).Background(t.Highlight).Bold(true)
		}
		return styles[cl.ink]
	}

	lines := make([]string, c.rows)
	for i, row := range c.cells {
		var b, run strings.Builder
		var cur cell
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(styleFor(cur).Render(run.String()))
				run.Reset()
			}
		}
		for j, cl := range row {
			if cl.cont {
				continue
			}
			if j == 0 || cl.ink != cur.ink || cl.category != cur.category {
				flush()
				cur = cl
			}
			if cl.r == 0 {
				run.WriteByte(' ')
			} else {
				run.WriteRune(cl.r)
			}
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}
