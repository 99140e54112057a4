package layout

import (
	"fmt"
	"testing"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func project(name string, pos float64) model.Project {
	return model.Project{
		Name:       name,
		Position:   pos,
		Category:   model.CategoryIS,
		Risk:       model.LevelMedium,
		Complexity: model.LevelMedium,
		Timeline:   model.TimelineNextQuarter,
	}
}

func scenarioProjects() []model.Project {
	positions := []float64{0.15, 0.25, 0.32, 0.4, 0.55, 0.75, 0.85, 0.45, 0.35, 0.65}
	names := []string{
		"Leadership",
		"Cyber Transformation",
		"LOB Support Model",
		"Microsoft 365",
		"Cloud Operating Model",
		"New Data Center",
		"Issue Management Program",
		"Sector / Government Engagements",
		"Regulatory Engagement / Assessment",
		"Vulnerability Management",
	}
	out := make([]model.Project, len(names))
	for i := range names {
		out[i] = project(names[i], positions[i])
	}
	return out
}

func TestSampleEndpointsAreExact(t *testing.T) {
	for _, tier := range Tiers {
		g := BuildGeometry(tier, ViewportForWidth(900))
		pts := Sample(g.Path, []model.Project{
			project("start", 0),
			project("end", 1),
			project("below", -0.5),
			project("above", 2),
		})
		require.Len(t, pts, 4)
		assert.Equal(t, g.Path.Start, pts[0].Vec, "tier %s", tier)
		assert.Equal(t, g.Path.EndPoint(), pts[1].Vec, "tier %s", tier)
		assert.Equal(t, g.Path.Start, pts[2].Vec, "tier %s", tier)
		assert.Equal(t, g.Path.EndPoint(), pts[3].Vec, "tier %s", tier)
	}
}

func TestSampleKeepsInputOrder(t *testing.T) {
	g := BuildGeometry(TierLG, Viewport{Width: 1200, Height: 720})
	projects := scenarioProjects()
	pts := Sample(g.Path, projects)
	require.Len(t, pts, len(projects))
	for i := range projects {
		assert.Equal(t, projects[i].Name, pts[i].Project.Name)
	}
}

func TestSampleScenarioDistinctPoints(t *testing.T) {
	g := BuildGeometry(TierLG, Viewport{Width: 1200, Height: 720})
	pts := Sample(g.Path, scenarioProjects())

	seen := map[string]bool{}
	for _, p := range pts {
		key := fmt.Sprintf("%.6f,%.6f", p.X, p.Y)
		assert.False(t, seen[key], "duplicate point for %s", p.Project.Name)
		seen[key] = true
	}
	assert.Len(t, seen, 10)
}

func TestSampleTiesShareAPoint(t *testing.T) {
	g := BuildGeometry(TierSM, ViewportForWidth(800))
	pts := Sample(g.Path, []model.Project{project("a", 0.5), project("b", 0.5)})
	require.Len(t, pts, 2)
	assert.Equal(t, pts[0].Vec, pts[1].Vec)
}

func TestSampleEmpty(t *testing.T) {
	g := BuildGeometry(TierSM, ViewportForWidth(800))
	assert.Empty(t, Sample(g.Path, nil))
}

func TestSampleMovesRightwardAlongCurve(t *testing.T) {
	// Every segment has increasing control x, so x grows with arc length.
	g := BuildGeometry(TierLG, Viewport{Width: 1200, Height: 720})
	var projects []model.Project
	for i := 0; i <= 20; i++ {
		projects = append(projects, project(fmt.Sprint(i), float64(i)/20))
	}
	pts := Sample(g.Path, projects)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X, "step %d", i)
	}
}

func TestArcTableLength(t *testing.T) {
	g := BuildGeometry(TierLG, Viewport{Width: 1200, Height: 720})
	table := NewArcTable(g.Path)
	chord := r2.Norm(r2.Sub(g.Path.EndPoint(), g.Path.Start))
	assert.Greater(t, table.Length(), chord)

	// A straight path has an exact length.
	line := PathSpec{
		Start: r2.Vec{X: 0, Y: 0},
		Segments: []CubicSegment{{
			Control1: r2.Vec{X: 10, Y: 0},
			Control2: r2.Vec{X: 20, Y: 0},
			End:      r2.Vec{X: 30, Y: 0},
		}},
	}
	lt := NewArcTable(line)
	assert.InDelta(t, 30.0, lt.Length(), 1e-9)
	assert.InDelta(t, 15.0, lt.PointAt(0.5).X, 1e-9)
}

func TestArcTableZeroLength(t *testing.T) {
	table := NewArcTable(PathSpec{Start: r2.Vec{X: 5, Y: 5}})
	assert.Equal(t, 0.0, table.Length())
	assert.Equal(t, r2.Vec{X: 5, Y: 5}, table.PointAt(0.7))
}
