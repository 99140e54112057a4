package layout

import "github.com/Dicklesworthstone/progress_curve/pkg/model"

// LegendEntry is a marker glyph with its caption.
type LegendEntry struct {
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// LegendItem is a legend entry placed on the surface.
type LegendItem struct {
	LegendEntry
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Legend grid constants.
const (
	LegendRowHeight = 35.0

	// LegendOffset is the distance from the bottom margin line to the first row.
	LegendOffset = 80.0

	// LegendTitleOffset places the "Next plateau:" caption above the grid.
	LegendTitleOffset = 60.0

	// LegendTitle is the caption drawn above the legend grid.
	LegendTitle = "Next plateau:"
)

type legendGrid struct {
	columns int
	// divisor splits the plot width into column spacing.
	divisor float64
}

var legendGrids = map[Tier]legendGrid{
	TierBase: {columns: 2, divisor: 2.2},
	TierSM:   {columns: 2, divisor: 2},
	TierLG:   {columns: 5, divisor: 5.5},
}

// LegendColumns returns the number of legend columns for a tier.
func LegendColumns(t Tier) int {
	return legendGridFor(t).columns
}

func legendGridFor(t Tier) legendGrid {
	if g, ok := legendGrids[t]; ok {
		return g
	}
	return legendGrids[TierBase]
}

// TimelineLegend returns one entry per timeline in legend order.
func TimelineLegend() []LegendEntry {
	out := make([]LegendEntry, len(model.Timelines))
	for i, tl := range model.Timelines {
		out[i] = LegendEntry{Symbol: tl.Marker(), Label: string(tl)}
	}
	return out
}

// LayoutLegend arranges entries row-major in a grid anchored below the plot.
func LayoutLegend(entries []LegendEntry, tier Tier, g Geometry) []LegendItem {
	grid := legendGridFor(tier)
	spacingX := g.PlotWidth / grid.divisor
	startY := g.BottomLine() + LegendOffset

	out := make([]LegendItem, len(entries))
	for i, e := range entries {
		col := i % grid.columns
		row := i / grid.columns
		out[i] = LegendItem{
			LegendEntry: e,
			X:           g.Margin.Left + float64(col)*spacingX,
			Y:           startY + float64(row)*LegendRowHeight,
		}
	}
	return out
}
