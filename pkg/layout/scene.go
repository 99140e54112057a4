package layout

import (
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// Frame is the result of one layout pass: everything that depends on the
// container width and the data, but not on hover.
type Frame struct {
	Tier     Tier             `json:"tier"`
	Width    float64          `json:"width"`
	Geometry Geometry         `json:"geometry"`
	Points   []SampledPoint   `json:"points"`
	Labels   []LabelPlacement `json:"labels"`
}

// ComputeFrame runs geometry, sampling and label layout for one width.
func ComputeFrame(projects []model.Project, width float64, tier Tier) Frame {
	g := BuildGeometry(tier, ViewportForWidth(width))
	points := Sample(g.Path, projects)
	return Frame{
		Tier:     g.Tier,
		Width:    width,
		Geometry: g,
		Points:   points,
		Labels:   PlaceLabels(points, g.Tier, g.PlotBounds()),
	}
}

// Point returns the sampled point of the named project.
func (f *Frame) Point(name string) (SampledPoint, bool) {
	for _, p := range f.Points {
		if p.Project.Name == name {
			return p, true
		}
	}
	return SampledPoint{}, false
}

// Forced returns the labels that fell through to the forced placement.
func (f *Frame) Forced() []LabelPlacement {
	var out []LabelPlacement
	for _, l := range f.Labels {
		if l.Strategy == StrategyForced {
			out = append(out, l)
		}
	}
	return out
}

// TextSizes are the tier-dependent font sizes of the scene.
type TextSizes struct {
	Marker       float64 `json:"marker"`
	Axis         float64 `json:"axis"`
	Legend       float64 `json:"legend"`
	LegendMarker float64 `json:"legend_marker"`
}

var textSizes = map[Tier]TextSizes{
	TierBase: {Marker: 16, Axis: 10, Legend: 11, LegendMarker: 16},
	TierSM:   {Marker: 30, Axis: 11, Legend: 12, LegendMarker: 25},
	TierLG:   {Marker: 42, Axis: 12, Legend: 14, LegendMarker: 25},
}

// TextSizesFor returns the font sizes of a tier.
func TextSizesFor(t Tier) TextSizes {
	if s, ok := textSizes[t]; ok {
		return s
	}
	return textSizes[TierBase]
}

// GridLine is a dashed horizontal reference line.
type GridLine struct {
	Percent int     `json:"percent"`
	X1      float64 `json:"x1"`
	X2      float64 `json:"x2"`
	Y       float64 `json:"y"`
}

// Caption is a positioned piece of text. Rotate is in degrees.
type Caption struct {
	Text   string  `json:"text"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Rotate float64 `json:"rotate,omitempty"`
}

// Marker is the glyph drawn at a project's point.
type Marker struct {
	Symbol  string        `json:"symbol"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	Project model.Project `json:"project"`
}

// Axis captions.
const YAxisCaption = "Expectations / Visibility"

// XAxisCaptions run left to right under the plot.
var XAxisCaptions = []string{"Novel", "Top of Mind", `"Evolving"`, "Momentum", "Maturity"}

// Scene offsets below the bottom margin line.
const xCaptionOffset = 30.0

// Scene is everything a renderer needs to draw one frame.
type Scene struct {
	Placeholder bool             `json:"placeholder"`
	Tier        Tier             `json:"tier"`
	Viewport    Viewport         `json:"viewport"`
	Geometry    Geometry         `json:"geometry"`
	Sizes       TextSizes        `json:"sizes"`
	Grid        []GridLine       `json:"grid"`
	YCaption    Caption          `json:"y_caption"`
	XCaptions   []Caption        `json:"x_captions"`
	PathData    string           `json:"path"`
	Markers     []Marker         `json:"markers"`
	Labels      []LabelPlacement `json:"labels"`
	LegendTitle Caption          `json:"legend_title"`
	Legend      []LegendItem     `json:"legend"`
	Tooltip     *Tooltip         `json:"tooltip,omitempty"`
}

// PlaceholderScene is drawn before the container has been measured.
func PlaceholderScene() Scene {
	return Scene{Placeholder: true, Tier: TierBase, Viewport: DefaultViewport}
}

// Compose assembles a scene from a frame. hovered names the project whose
// tooltip is shown; an empty or unknown name shows none. A nil frame yields
// the placeholder scene.
func Compose(f *Frame, hovered string) Scene {
	if f == nil {
		return PlaceholderScene()
	}
	g := f.Geometry
	s := Scene{
		Tier:      g.Tier,
		Viewport:  g.Viewport,
		Geometry:  g,
		Sizes:     TextSizesFor(g.Tier),
		Grid:      gridLines(g),
		YCaption:  Caption{Text: YAxisCaption, X: -(g.Margin.Top + g.PlotHeight/2), Y: g.Margin.Left / 2, Rotate: -90},
		XCaptions: xCaptions(g),
		PathData:  g.Path.SVG(),
		Labels:    f.Labels,
		LegendTitle: Caption{
			Text: LegendTitle,
			X:    g.Margin.Left,
			Y:    g.BottomLine() + LegendTitleOffset,
		},
		Legend: LayoutLegend(TimelineLegend(), g.Tier, g),
	}

	// Reverse order so earlier projects end up on top.
	s.Markers = make([]Marker, 0, len(f.Points))
	for i := len(f.Points) - 1; i >= 0; i-- {
		p := f.Points[i]
		s.Markers = append(s.Markers, Marker{
			Symbol:  p.Project.Timeline.Marker(),
			X:       p.X,
			Y:       p.Y,
			Project: p.Project,
		})
	}

	if hovered != "" {
		if pt, ok := f.Point(hovered); ok {
			tt := BuildTooltip(pt, g)
			s.Tooltip = &tt
		}
	}
	return s
}

func gridLines(g Geometry) []GridLine {
	lines := make([]GridLine, 0, 6)
	for pct := 0; pct <= 100; pct += 20 {
		lines = append(lines, GridLine{
			Percent: pct,
			X1:      g.Margin.Left,
			X2:      g.Margin.Left + g.PlotWidth,
			Y:       g.Margin.Top + g.PlotHeight*float64(100-pct)/100,
		})
	}
	return lines
}

func xCaptions(g Geometry) []Caption {
	out := make([]Caption, len(XAxisCaptions))
	steps := float64(len(XAxisCaptions) - 1)
	for i, text := range XAxisCaptions {
		out[i] = Caption{
			Text: text,
			X:    g.Margin.Left + g.PlotWidth*float64(i)/steps,
			Y:    g.BottomLine() + xCaptionOffset,
		}
	}
	return out
}

// HitTest returns the marker nearest to p within radius, for pointer hosts.
func (s Scene) HitTest(p r2.Vec, radius float64) (Marker, bool) {
	best := -1
	bestDist := radius
	for i, m := range s.Markers {
		d := r2.Norm(r2.Sub(p, r2.Vec{X: m.X, Y: m.Y}))
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return Marker{}, false
	}
	return s.Markers[best], true
}
