package layout

import (
	"fmt"
	"math"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// TooltipStyle holds the tier-dependent tooltip box constants.
type TooltipStyle struct {
	Width        float64
	Height       float64
	Padding      float64
	TitleSize    float64
	CategorySize float64
	MetaSize     float64
	Offset       r2.Vec
}

var tooltipStyles = map[Tier]TooltipStyle{
	TierBase: {Width: 200, Height: 80, Padding: 10, TitleSize: 12, CategorySize: 11, MetaSize: 10, Offset: r2.Vec{X: 0, Y: -20}},
	TierSM:   {Width: 260, Height: 90, Padding: 12, TitleSize: 13, CategorySize: 12, MetaSize: 11, Offset: r2.Vec{X: 0, Y: -15}},
	TierLG:   {Width: 320, Height: 100, Padding: 15, TitleSize: 15, CategorySize: 13, MetaSize: 12, Offset: r2.Vec{X: 0, Y: -10}},
}

// TooltipStyleFor returns the tooltip constants of a tier.
func TooltipStyleFor(t Tier) TooltipStyle {
	if s, ok := tooltipStyles[t]; ok {
		return s
	}
	return tooltipStyles[TierBase]
}

// PositionTooltip returns the top-left corner of the tooltip box for a point.
// The box is centred over the point and lifted above it, then clamped so it
// stays between the side margins and never rises above the top margin.
func PositionTooltip(point r2.Vec, tier Tier, vp Viewport, margin Margin) r2.Vec {
	s := TooltipStyleFor(tier)
	x := point.X + s.Offset.X - s.Width/2
	y := point.Y + s.Offset.Y - s.Height

	x = math.Min(math.Max(x, margin.Left), vp.Width-margin.Right-s.Width)
	y = math.Max(y, margin.Top)
	return r2.Vec{X: x, Y: y}
}

// TooltipContent is the text shown inside a tooltip.
type TooltipContent struct {
	Title    []string `json:"title"`
	Category []string `json:"category"`
	Meta     string   `json:"meta"`
}

// BuildTooltipContent wraps the project text to the tooltip width of a tier.
func BuildTooltipContent(p model.Project, tier Tier) TooltipContent {
	s := TooltipStyleFor(tier)
	inner := s.Width - 2*s.Padding
	return TooltipContent{
		Title:    WrapText(p.Name, charsPerLine(inner, s.TitleSize)),
		Category: WrapText(string(p.Category), charsPerLine(inner, s.CategorySize)),
		Meta:     fmt.Sprintf("RISK: %s / COMPLEXITY: %s", p.Risk, p.Complexity),
	}
}

func charsPerLine(width, fontSize float64) int {
	if fontSize <= 0 {
		return 1
	}
	return int(math.Floor(width / (fontSize * TooltipCharWidth)))
}

// Tooltip is a positioned tooltip for the hovered project.
type Tooltip struct {
	Project  model.Project  `json:"project"`
	Position r2.Vec         `json:"position"`
	Anchor   r2.Vec         `json:"anchor"`
	Style    TooltipStyle   `json:"style"`
	Content  TooltipContent `json:"content"`
}

// BuildTooltip positions and fills the tooltip for a sampled point.
func BuildTooltip(pt SampledPoint, g Geometry) Tooltip {
	return Tooltip{
		Project:  pt.Project,
		Position: PositionTooltip(pt.Vec, g.Tier, g.Viewport, g.Margin),
		Anchor:   pt.Vec,
		Style:    TooltipStyleFor(g.Tier),
		Content:  BuildTooltipContent(pt.Project, g.Tier),
	}
}
