package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineLegend(t *testing.T) {
	entries := TimelineLegend()
	require.Len(t, entries, 5)
	assert.Equal(t, LegendEntry{Symbol: "○", Label: "next month"}, entries[0])
	assert.Equal(t, LegendEntry{Symbol: "⊗", Label: "on hold"}, entries[4])
}

func TestLayoutLegendLG(t *testing.T) {
	g := BuildGeometry(TierLG, Viewport{Width: 1200, Height: 720})
	items := LayoutLegend(TimelineLegend(), TierLG, g)
	require.Len(t, items, 5)

	spacing := g.PlotWidth / 5.5
	for i, it := range items {
		assert.InDelta(t, g.BottomLine()+LegendOffset, it.Y, 1e-9)
		assert.InDelta(t, g.Margin.Left+float64(i)*spacing, it.X, 1e-9)
	}
}

func TestLayoutLegendBaseWraps(t *testing.T) {
	g := BuildGeometry(TierBase, ViewportForWidth(400))
	items := LayoutLegend(TimelineLegend(), TierBase, g)
	require.Len(t, items, 5)

	start := g.BottomLine() + LegendOffset
	rows := []float64{0, 0, 1, 1, 2}
	for i, it := range items {
		assert.InDelta(t, start+rows[i]*LegendRowHeight, it.Y, 1e-9, "entry %d", i)
	}
	assert.InDelta(t, g.Margin.Left, items[2].X, 1e-9)
	assert.InDelta(t, g.Margin.Left+g.PlotWidth/2.2, items[3].X, 1e-9)
}

func TestLegendColumns(t *testing.T) {
	assert.Equal(t, 2, LegendColumns(TierBase))
	assert.Equal(t, 2, LegendColumns(TierSM))
	assert.Equal(t, 5, LegendColumns(TierLG))
	assert.Equal(t, 2, LegendColumns("xl"))
}
