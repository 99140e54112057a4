package ui

import (
	"math"

	"github.com/Dicklesworthstone/progress_curve/pkg/view"
)

// Nominal cell size used to convert terminal columns into chart pixels.
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)

// ColumnsToPixels converts a column count into a chart width.
func ColumnsToPixels(cols int) float64 {
	if cols < 0 {
		cols = 0
	}
	return float64(cols) * CellWidthPx
}

// RowsForHeight returns how many terminal rows a chart of height px needs.
func RowsForHeight(px float64) int {
	return int(math.Round(px / CellHeightPx))
}

// TermHost exposes the terminal width as a chart host.
type TermHost struct {
	*view.StaticHost
	cols int
}

// NewTermHost returns a host for a terminal cols wide.
func NewTermHost(cols int) *TermHost {
	return &TermHost{StaticHost: view.NewStaticHost(ColumnsToPixels(cols)), cols: cols}
}

// ResizeCols reports a new terminal width to observers.
func (h *TermHost) ResizeCols(cols int) {
	h.cols = cols
	h.Resize(ColumnsToPixels(cols))
}

// Cols returns the last reported column count.
func (h *TermHost) Cols() int {
	return h.cols
}
