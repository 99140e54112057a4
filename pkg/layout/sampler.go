package layout

import (
	"math"
	"sort"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// StepsPerSegment is how many chords approximate each cubic segment when
// measuring arc length.
const StepsPerSegment = 64

// SampledPoint is a project resolved to a pixel position on the curve.
type SampledPoint struct {
	r2.Vec
	Project model.Project `json:"project"`
}

// ArcTable is a polyline approximation of a path with cumulative lengths,
// used to find the point at a given arc length.
type ArcTable struct {
	points []r2.Vec
	cum    []float64
}

// NewArcTable flattens the path. Segment anchors are kept exactly so the
// ends of the table coincide with the ends of the path.
func NewArcTable(path PathSpec) *ArcTable {
	n := 1 + len(path.Segments)*StepsPerSegment
	points := make([]r2.Vec, 0, n)
	points = append(points, path.Start)

	p0 := path.Start
	for _, seg := range path.Segments {
		for i := 1; i < StepsPerSegment; i++ {
			points = append(points, cubicAt(p0, seg, float64(i)/StepsPerSegment))
		}
		points = append(points, seg.End)
		p0 = seg.End
	}

	lengths := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		lengths[i] = r2.Norm(r2.Sub(points[i], points[i-1]))
	}
	cum := floats.CumSum(make([]float64, len(lengths)), lengths)

	return &ArcTable{points: points, cum: cum}
}

// Length is the total arc length of the path.
func (a *ArcTable) Length() float64 {
	return a.cum[len(a.cum)-1]
}

// PointAt returns the point at fraction t of the total arc length. t is
// clamped to [0,1]; the ends return the exact path anchors.
func (a *ArcTable) PointAt(t float64) r2.Vec {
	last := len(a.points) - 1
	if math.IsNaN(t) || t <= 0 || a.Length() == 0 {
		return a.points[0]
	}
	if t >= 1 {
		return a.points[last]
	}

	target := t * a.Length()
	// First index whose cumulative length reaches the target.
	i := sort.SearchFloat64s(a.cum, target)
	if i <= 0 {
		return a.points[0]
	}
	if i > last {
		return a.points[last]
	}
	span := a.cum[i] - a.cum[i-1]
	if span == 0 {
		return a.points[i]
	}
	f := (target - a.cum[i-1]) / span
	return r2.Add(a.points[i-1], r2.Scale(f, r2.Sub(a.points[i], a.points[i-1])))
}

// Sample places every project on the path by arc length. Output order
// matches input order; projects sharing a position share a point.
func Sample(path PathSpec, projects []model.Project) []SampledPoint {
	if len(projects) == 0 {
		return nil
	}
	table := NewArcTable(path)
	out := make([]SampledPoint, len(projects))
	for i, p := range projects {
		out[i] = SampledPoint{Vec: table.PointAt(p.Position), Project: p}
	}
	return out
}
