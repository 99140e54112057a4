package layout

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Margin is the space reserved around the plot rectangle.
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// The bottom margin is large because axis captions and the legend live there.
var margins = map[Tier]Margin{
	TierBase: {Top: 20, Right: 20, Bottom: 180, Left: 40},
	TierSM:   {Top: 30, Right: 30, Bottom: 160, Left: 50},
	TierLG:   {Top: 40, Right: 40, Bottom: 140, Left: 60},
}

// MarginFor returns the margins of a tier, falling back to the base tier.
func MarginFor(t Tier) Margin {
	if m, ok := margins[t]; ok {
		return m
	}
	return margins[TierBase]
}

// MinPlotSize is the smallest plot dimension ever produced. Tiny viewports
// render degenerate but valid geometry instead of negative sizes.
const MinPlotSize = 1.0

// CubicSegment is one cubic Bézier piece; its start is the previous end.
type CubicSegment struct {
	Control1 r2.Vec `json:"c1"`
	Control2 r2.Vec `json:"c2"`
	End      r2.Vec `json:"end"`
}

// PathSpec is a continuous path made of cubic segments.
type PathSpec struct {
	Start    r2.Vec         `json:"start"`
	Segments []CubicSegment `json:"segments"`
}

// EndPoint returns the last anchor of the path.
func (p PathSpec) EndPoint() r2.Vec {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].End
}

// SVG returns the path in SVG path-data syntax.
func (p PathSpec) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %.2f,%.2f", p.Start.X, p.Start.Y)
	for _, s := range p.Segments {
		fmt.Fprintf(&b, " C %.2f,%.2f %.2f,%.2f %.2f,%.2f",
			s.Control1.X, s.Control1.Y,
			s.Control2.X, s.Control2.Y,
			s.End.X, s.End.Y)
	}
	return b.String()
}

// cubicAt evaluates a segment starting at p0 for t in [0,1].
func cubicAt(p0 r2.Vec, s CubicSegment, t float64) r2.Vec {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return r2.Vec{
		X: a*p0.X + b*s.Control1.X + c*s.Control2.X + d*s.End.X,
		Y: a*p0.Y + b*s.Control1.Y + c*s.Control2.Y + d*s.End.Y,
	}
}

// curveShape is the hype-cycle silhouette as fractions of the plot: a quick
// rise to the early peak, a trough around the middle and a gentle climb to
// the right edge. Rows are control1, control2, end.
var (
	curveStart = [2]float64{0, 0.9}
	curveShape = [][3][2]float64{
		{{0.15, 0.85}, {0.2, 0.4}, {0.23, 0.2}},
		{{0.25, 0.1}, {0.27, 0.05}, {0.3, 0.05}},
		{{0.35, 0.05}, {0.4, 0.15}, {0.5, 0.7}},
		{{0.55, 0.9}, {0.65, 0.85}, {0.75, 0.8}},
		{{0.85, 0.75}, {0.92, 0.73}, {1, 0.7}},
	}
)

// Geometry is the resolved plot area and curve for one tier and viewport.
type Geometry struct {
	Tier       Tier     `json:"tier"`
	Viewport   Viewport `json:"viewport"`
	Margin     Margin   `json:"margin"`
	PlotWidth  float64  `json:"plot_width"`
	PlotHeight float64  `json:"plot_height"`
	Path       PathSpec `json:"path"`
}

// BuildGeometry resolves margins, plot size and the curve for a viewport.
func BuildGeometry(tier Tier, vp Viewport) Geometry {
	m := MarginFor(tier)
	if !tier.IsValid() {
		tier = TierBase
	}
	g := Geometry{
		Tier:       tier,
		Viewport:   vp,
		Margin:     m,
		PlotWidth:  clampPlot(vp.Width - m.Left - m.Right),
		PlotHeight: clampPlot(vp.Height - m.Top - m.Bottom),
	}

	g.Path.Start = g.plotPoint(curveStart)
	g.Path.Segments = make([]CubicSegment, 0, len(curveShape))
	for _, row := range curveShape {
		g.Path.Segments = append(g.Path.Segments, CubicSegment{
			Control1: g.plotPoint(row[0]),
			Control2: g.plotPoint(row[1]),
			End:      g.plotPoint(row[2]),
		})
	}
	return g
}

func clampPlot(v float64) float64 {
	if math.IsNaN(v) || v < MinPlotSize {
		return MinPlotSize
	}
	return v
}

func (g Geometry) plotPoint(f [2]float64) r2.Vec {
	return r2.Vec{
		X: g.Margin.Left + g.PlotWidth*f[0],
		Y: g.Margin.Top + g.PlotHeight*f[1],
	}
}

// PlotBounds returns the margin-bounded plot rectangle.
func (g Geometry) PlotBounds() r2.Box {
	return r2.Box{
		Min: r2.Vec{X: g.Margin.Left, Y: g.Margin.Top},
		Max: r2.Vec{X: g.Margin.Left + g.PlotWidth, Y: g.Margin.Top + g.PlotHeight},
	}
}

// BottomLine is the y coordinate of the bottom margin line.
func (g Geometry) BottomLine() float64 {
	return g.Viewport.Height - g.Margin.Bottom
}
