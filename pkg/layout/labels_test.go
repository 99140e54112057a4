package layout

import (
	"strings"
	"testing"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func scenarioFrame(t *testing.T, projects []model.Project, tier Tier, vp Viewport) (Geometry, []SampledPoint) {
	t.Helper()
	g := BuildGeometry(tier, vp)
	return g, Sample(g.Path, projects)
}

func TestLayoutLabelsScenarioLG(t *testing.T) {
	g, pts := scenarioFrame(t, scenarioProjects(), TierLG, Viewport{Width: 1200, Height: 720})
	bounds := g.PlotBounds()

	placements := LayoutLabels(pts, TierLG, bounds)
	require.Len(t, placements, 10)

	for _, p := range pts {
		pl, ok := placements[p.Project.Name]
		require.True(t, ok, p.Project.Name)
		assert.Equal(t, StrategyCandidate, pl.Strategy, p.Project.Name)
		assert.True(t, fitsInside(pl.Box, bounds), "%s outside plot: %+v", p.Project.Name, pl.Box)
		assert.Equal(t, p.Vec, pl.LeaderEnd)
		assert.Equal(t, 12.0, pl.FontSize)
	}
	assertNoOverlaps(t, PlaceLabels(pts, TierLG, bounds))
}

func assertNoOverlaps(t *testing.T, list []LabelPlacement) {
	t.Helper()
	for i := range list {
		for j := i + 1; j < len(list); j++ {
			// Forced placements ignore collisions by definition.
			if list[i].Strategy == StrategyForced || list[j].Strategy == StrategyForced {
				continue
			}
			assert.False(t, Overlaps(list[i].Box, list[j].Box, 0),
				"%s overlaps %s", list[i].Name, list[j].Name)
		}
	}
}

func TestLayoutLabelsNoOverlapAcrossSizes(t *testing.T) {
	for _, w := range []float64{1920, 1200, 1000, 800, 600} {
		tier := TierForWidth(w)
		g, pts := scenarioFrame(t, scenarioProjects(), tier, ViewportForWidth(w))
		list := PlaceLabels(pts, tier, g.PlotBounds())
		require.Len(t, list, 10)
		for _, pl := range list {
			if pl.Strategy == StrategyForced {
				continue
			}
			for _, other := range list {
				if other.Name == pl.Name || other.Strategy == StrategyForced {
					continue
				}
				assert.False(t, Overlaps(pl.Box, other.Box, 0), "width %v: %s overlaps %s", w, pl.Name, other.Name)
			}
		}
	}
}

func TestLayoutLabelsIdempotent(t *testing.T) {
	g, pts := scenarioFrame(t, scenarioProjects(), TierSM, ViewportForWidth(800))
	first := LayoutLabels(pts, TierSM, g.PlotBounds())
	second := LayoutLabels(pts, TierSM, g.PlotBounds())
	assert.Equal(t, first, second)
}

func TestLayoutLabelsIgnoresInputOrder(t *testing.T) {
	g, pts := scenarioFrame(t, scenarioProjects(), TierLG, Viewport{Width: 1200, Height: 720})
	reversed := make([]SampledPoint, len(pts))
	for i := range pts {
		reversed[len(pts)-1-i] = pts[i]
	}
	assert.Equal(t,
		LayoutLabels(pts, TierLG, g.PlotBounds()),
		LayoutLabels(reversed, TierLG, g.PlotBounds()))
}

func TestLayoutLabelsDuplicatePositions(t *testing.T) {
	projects := []model.Project{project("Alpha", 0.5), project("Beta", 0.5)}
	g, pts := scenarioFrame(t, projects, TierLG, Viewport{Width: 1200, Height: 720})
	require.Equal(t, pts[0].Vec, pts[1].Vec)

	placements := LayoutLabels(pts, TierLG, g.PlotBounds())
	require.Len(t, placements, 2)

	a, b := placements["Alpha"], placements["Beta"]
	assert.NotEqual(t, r2.Vec{X: a.X, Y: a.Y}, r2.Vec{X: b.X, Y: b.Y})
	// Equal positions keep input order: Alpha takes the first choice.
	assert.Equal(t, 0, a.Angle)
	assert.False(t, a.ShowLeader)
	assert.Equal(t, 45, b.Angle)
	assert.True(t, b.ShowLeader)
}

func TestLayoutLabelsPriorityByCurveRegion(t *testing.T) {
	tests := []struct {
		position float64
		angle    int
		anchor   Anchor
	}{
		{0.1, 180, AnchorEnd},  // rising slope: left side
		{0.4, 45, AnchorStart}, // early peak: up and to the right
		{0.8, 0, AnchorStart},  // plateau: straight right
	}
	for _, tc := range tests {
		g, pts := scenarioFrame(t, []model.Project{project("Project X", tc.position)}, TierLG, Viewport{Width: 1200, Height: 720})
		pl := LayoutLabels(pts, TierLG, g.PlotBounds())["Project X"]
		assert.Equal(t, StrategyCandidate, pl.Strategy)
		assert.Equal(t, tc.angle, pl.Angle, "position %v", tc.position)
		assert.Equal(t, tc.anchor, pl.Anchor, "position %v", tc.position)
	}
}

func TestCandidateOrderRegions(t *testing.T) {
	assert.Equal(t, 180, candidateOrder(0)[0])
	assert.Equal(t, 180, candidateOrder(0.329)[0])
	assert.Equal(t, []int{45, 135}, candidateOrder(0.33)[:2])
	assert.Equal(t, []int{45, 135}, candidateOrder(0.449)[:2])
	assert.Equal(t, 0, candidateOrder(0.45)[0])
	for _, pos := range []float64{0, 0.4, 0.9} {
		assert.ElementsMatch(t, []int{0, 45, 90, 135, 180, 225, 270, 315}, candidateOrder(pos))
	}
}

func TestLayoutLabelsCrowdedFallsBack(t *testing.T) {
	// A narrow base-tier plot cannot fit ten labels; every project must
	// still get a placement.
	projects := scenarioProjects()
	g, pts := scenarioFrame(t, projects, TierBase, ViewportForWidth(320))
	list := PlaceLabels(pts, TierBase, g.PlotBounds())
	require.Len(t, list, len(projects))

	style := LabelStyleFor(TierBase)
	forced := 0
	for i, pl := range list {
		assert.Equal(t, projects[i].Name, pl.Name)
		assert.NotEmpty(t, pl.Lines)
		if pl.Strategy == StrategyForced {
			forced++
			assert.InDelta(t, pts[i].X+3*style.LeaderLength, pl.X, 1e-9)
			assert.Equal(t, pts[i].Y, pl.Y)
			assert.Equal(t, AnchorStart, pl.Anchor)
			assert.True(t, pl.ShowLeader)
		}
	}
	assert.Greater(t, forced, 0)
	assertNoOverlaps(t, list)
}

func TestLayoutLabelsEmpty(t *testing.T) {
	assert.Empty(t, PlaceLabels(nil, TierLG, r2.Box{}))
	assert.Empty(t, LayoutLabels(nil, TierLG, r2.Box{}))
}

func TestOverlaps(t *testing.T) {
	a := r2.Box{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 10, Y: 10}}
	touching := r2.Box{Min: r2.Vec{X: 10, Y: 0}, Max: r2.Vec{X: 20, Y: 10}}
	apart := r2.Box{Min: r2.Vec{X: 11.5, Y: 0}, Max: r2.Vec{X: 20, Y: 10}}

	assert.False(t, Overlaps(a, touching, 0))
	assert.True(t, Overlaps(a, touching, CollisionBuffer))
	assert.False(t, Overlaps(a, apart, CollisionBuffer))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{"Regulatory Engagement / Assessment"}, WrapText("Regulatory Engagement / Assessment", MaxLabelChars))
	assert.Equal(t, []string{""}, WrapText("   ", MaxLabelChars))

	long := "Enterprise Identity and Access Management Modernisation Program"
	lines := WrapText(long, MaxLabelChars)
	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.LessOrEqual(t, TextWidth(l), MaxLabelChars)
	}
	assert.Equal(t, long, strings.Join(lines, " "))

	word := strings.Repeat("x", 50)
	assert.Equal(t, []string{"short", word, "tail"}, WrapText("short "+word+" tail", MaxLabelChars))
}

func TestEstimateLabel(t *testing.T) {
	box := EstimateLabel("abc", 10)
	assert.InDelta(t, 19.5, box.Width, 1e-9)
	assert.InDelta(t, 12.0, box.Height, 1e-9)

	wide := EstimateLabel("数据", 10)
	assert.InDelta(t, 26.0, wide.Width, 1e-9)
}

func TestPlaceOneFallbackStages(t *testing.T) {
	style := LabelStyleFor(TierLG) // leader 30, padding 4
	text := TextBox{Lines: []string{"Project"}, Width: 60, Height: 12}
	pt := SampledPoint{Vec: r2.Vec{X: 500, Y: 300}, Project: model.Project{Name: "Project", Position: 0.5}}

	wide := r2.Box{Min: r2.Vec{X: 0, Y: 0}, Max: r2.Vec{X: 1000, Y: 600}}
	// Too small for any radial candidate's box.
	tight := r2.Box{Min: r2.Vec{X: 490, Y: 290}, Max: r2.Vec{X: 510, Y: 310}}
	// Covers every radial and horizontal candidate but leaves room above
	// and below.
	band := r2.Box{Min: r2.Vec{X: 380, Y: 270}, Max: r2.Vec{X: 700, Y: 330}}
	above := r2.Box{Min: r2.Vec{X: 380, Y: 200}, Max: r2.Vec{X: 700, Y: 250}}

	tests := []struct {
		name     string
		bounds   r2.Box
		placed   []r2.Box
		strategy Strategy
		x, y     float64
		angle    int
	}{
		{
			name:     "horizontal ignores bounds",
			bounds:   tight,
			strategy: StrategyHorizontal,
			x:        545, y: 300,
		},
		{
			name:     "horizontal steps past a blocked 1.5x",
			bounds:   tight,
			placed:   []r2.Box{{Min: r2.Vec{X: 530, Y: 280}, Max: r2.Vec{X: 550, Y: 320}}},
			strategy: StrategyHorizontal,
			x:        560, y: 300,
		},
		{
			name:     "vertical tries 2x above first",
			bounds:   wide,
			placed:   []r2.Box{band},
			strategy: StrategyVertical,
			x:        500, y: 234, angle: 90,
		},
		{
			name:     "vertical falls to 2x below",
			bounds:   wide,
			placed:   []r2.Box{band, above},
			strategy: StrategyVertical,
			x:        500, y: 366, angle: 270,
		},
		{
			name:     "vertical respects bounds",
			bounds:   r2.Box{Min: r2.Vec{X: 0, Y: 240}, Max: r2.Vec{X: 1000, Y: 600}},
			placed:   []r2.Box{band},
			strategy: StrategyVertical,
			x:        500, y: 366, angle: 270,
		},
		{
			name:     "forced when everything collides",
			bounds:   wide,
			placed:   []r2.Box{wide},
			strategy: StrategyForced,
			x:        590, y: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pl := placeOne(pt, text, style, tt.bounds, tt.placed)
			assert.Equal(t, tt.strategy, pl.Strategy)
			assert.InDelta(t, tt.x, pl.X, 1e-9)
			assert.InDelta(t, tt.y, pl.Y, 1e-9)
			assert.Equal(t, tt.angle, pl.Angle)
			assert.True(t, pl.ShowLeader)
			if tt.strategy != StrategyForced {
				assert.False(t, collides(pl.Box, tt.placed), "fallback overlaps a placed box: %+v", pl.Box)
			}
			if tt.strategy == StrategyVertical {
				assert.True(t, fitsInside(pl.Box, tt.bounds), "vertical fallback outside bounds: %+v", pl.Box)
				assert.Equal(t, AnchorMiddle, pl.Anchor)
			}
		})
	}
}

func TestLayoutLabelsCollapsesDuplicateNames(t *testing.T) {
	g := BuildGeometry(TierLG, Viewport{Width: 1200, Height: 720})
	projects := []model.Project{
		{Name: "A", Position: 0.2},
		{Name: "A", Position: 0.6},
		{Name: "B", Position: 0.4},
	}
	pts := Sample(g.Path, projects)

	list := PlaceLabels(pts, TierLG, g.PlotBounds())
	byName := LayoutLabels(pts, TierLG, g.PlotBounds())
	require.Len(t, list, 3)
	assert.Len(t, byName, 2)
	assert.Equal(t, list[1], byName["A"])
}
