package layout

import (
	"testing"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestPositionTooltip(t *testing.T) {
	vp := Viewport{Width: 1200, Height: 720}
	m := MarginFor(TierLG)

	tests := []struct {
		name  string
		point r2.Vec
		want  r2.Vec
	}{
		{"centred above the point", r2.Vec{X: 600, Y: 300}, r2.Vec{X: 440, Y: 190}},
		{"clamped to the right margin", r2.Vec{X: 1150, Y: 300}, r2.Vec{X: 840, Y: 190}},
		{"clamped to the left margin", r2.Vec{X: 70, Y: 300}, r2.Vec{X: 60, Y: 190}},
		{"clamped to the top margin", r2.Vec{X: 600, Y: 50}, r2.Vec{X: 440, Y: 40}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PositionTooltip(tc.point, TierLG, vp, m)
			assert.InDelta(t, tc.want.X, got.X, 1e-9)
			assert.InDelta(t, tc.want.Y, got.Y, 1e-9)
		})
	}
}

func TestPositionTooltipStaysInsideSideMargins(t *testing.T) {
	for _, w := range []float64{600, 800, 1000, 1400} {
		tier := TierForWidth(w)
		vp := ViewportForWidth(w)
		m := MarginFor(tier)
		s := TooltipStyleFor(tier)
		for x := m.Left; x <= vp.Width-m.Right; x += 25 {
			pos := PositionTooltip(r2.Vec{X: x, Y: vp.Height / 2}, tier, vp, m)
			assert.GreaterOrEqual(t, pos.X, m.Left)
			assert.LessOrEqual(t, pos.X+s.Width, vp.Width-m.Right+1e-9)
			assert.GreaterOrEqual(t, pos.Y, m.Top)
		}
	}
}

func TestBuildTooltipContent(t *testing.T) {
	p := model.Project{
		Name:       "Regulatory Engagement / Assessment",
		Position:   0.35,
		Category:   model.CategoryUnplanned,
		Risk:       model.LevelHigh,
		Complexity: model.LevelLow,
		Timeline:   model.TimelineNextMonth,
	}

	lg := BuildTooltipContent(p, TierLG)
	assert.Equal(t, []string{"Regulatory Engagement /", "Assessment"}, lg.Title)
	assert.Equal(t, "RISK: H / COMPLEXITY: L", lg.Meta)
	assert.NotEmpty(t, lg.Category)

	base := BuildTooltipContent(p, TierBase)
	assert.GreaterOrEqual(t, len(base.Title), len(lg.Title))
}

func TestBuildTooltip(t *testing.T) {
	g := BuildGeometry(TierSM, ViewportForWidth(800))
	pt := SampledPoint{Vec: r2.Vec{X: 400, Y: 200}, Project: project("Microsoft 365", 0.4)}

	tt := BuildTooltip(pt, g)
	assert.Equal(t, "Microsoft 365", tt.Project.Name)
	assert.Equal(t, pt.Vec, tt.Anchor)
	assert.Equal(t, TooltipStyleFor(TierSM), tt.Style)
	assert.Equal(t, PositionTooltip(pt.Vec, TierSM, g.Viewport, g.Margin), tt.Position)
}

func TestTooltipStyleForUnknownTier(t *testing.T) {
	assert.Equal(t, TooltipStyleFor(TierBase), TooltipStyleFor("xl"))
}
