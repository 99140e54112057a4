package layout

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r2"
)

// Anchor is the horizontal text anchor of a label, as in SVG text-anchor.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Strategy records which stage of the search produced a placement.
type Strategy string

const (
	// StrategyCandidate is one of the eight radial candidates.
	StrategyCandidate Strategy = "candidate"
	// StrategyHorizontal is a far-right fallback, collision checked only.
	StrategyHorizontal Strategy = "horizontal"
	// StrategyVertical is an above/below stacking fallback.
	StrategyVertical Strategy = "vertical"
	// StrategyForced is the last resort; it may overlap other labels.
	StrategyForced Strategy = "forced"
)

// LabelPlacement is where a project's label is drawn.
//
// X is the text anchor position and Y the vertical centre of the text block.
// Box is the padded rectangle used for collision tests.
type LabelPlacement struct {
	Name       string   `json:"name"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Anchor     Anchor   `json:"anchor"`
	ShowLeader bool     `json:"show_leader"`
	LeaderEnd  r2.Vec   `json:"leader_end"`
	Lines      []string `json:"lines"`
	FontSize   float64  `json:"font_size"`
	Box        r2.Box   `json:"box"`
	Angle      int      `json:"angle"`
	Strategy   Strategy `json:"strategy"`
}

// LabelStyle holds the tier-dependent label constants.
type LabelStyle struct {
	FontSize     float64
	LeaderLength float64
	Padding      float64
}

var labelStyles = map[Tier]LabelStyle{
	TierBase: {FontSize: 10, LeaderLength: 20, Padding: 4},
	TierSM:   {FontSize: 11, LeaderLength: 25, Padding: 4},
	TierLG:   {FontSize: 12, LeaderLength: 30, Padding: 4},
}

// LabelStyleFor returns the label constants of a tier.
func LabelStyleFor(t Tier) LabelStyle {
	if s, ok := labelStyles[t]; ok {
		return s
	}
	return labelStyles[TierBase]
}

// CollisionBuffer is the extra gap, in pixels, required between boxes.
const CollisionBuffer = 1.0

// Curve regions that decide which side of a point is searched first.
const (
	earlyRegionEnd = 0.33
	peakRegionEnd  = 0.45
)

// Candidate angles in degrees, counter-clockwise from "directly right".
var (
	// Rising slope: keep labels off the incoming curve by trying the left.
	earlyOrder = []int{180, 135, 225, 90, 270, 45, 315, 0}
	// Early peak: the curve falls away on both sides, go up first.
	peakOrder = []int{45, 135, 90, 0, 180, 315, 225, 270}
	// Trough and plateau: the right side is the open space.
	lateOrder = []int{0, 45, 315, 90, 270, 135, 225, 180}
)

// candidateOrder returns the candidate angles for a curve position.
func candidateOrder(position float64) []int {
	switch {
	case position < earlyRegionEnd:
		return earlyOrder
	case position < peakRegionEnd:
		return peakOrder
	default:
		return lateOrder
	}
}

// Fallback distances as multiples of the leader length.
var (
	horizontalFallbacks = []float64{1.5, 2, 2.5, 3}
	verticalFallbacks   = []float64{-2, 2, -3, 3} // negative is above
)

const forcedDistance = 3.0

// PlaceLabels computes one placement per point, aligned with the input
// slice. Points are processed by ascending curve position (ties keep input
// order) so the result never depends on how the caller ordered the data.
func PlaceLabels(points []SampledPoint, tier Tier, bounds r2.Box) []LabelPlacement {
	if len(points) == 0 {
		return nil
	}
	style := LabelStyleFor(tier)

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].Project.Position < points[order[b]].Project.Position
	})

	out := make([]LabelPlacement, len(points))
	placed := make([]r2.Box, 0, len(points))
	for _, idx := range order {
		pt := points[idx]
		text := EstimateLabel(pt.Project.Name, style.FontSize)
		pl := placeOne(pt, text, style, bounds, placed)
		placed = append(placed, pl.Box)
		out[idx] = pl
	}
	return out
}

// LayoutLabels is PlaceLabels keyed by project name. Projects sharing a name
// collapse into one entry, the later one winning, so the map can be shorter
// than points. Loaded datasets reject duplicate names; callers that may see
// them should use PlaceLabels.
func LayoutLabels(points []SampledPoint, tier Tier, bounds r2.Box) map[string]LabelPlacement {
	list := PlaceLabels(points, tier, bounds)
	out := make(map[string]LabelPlacement, len(list))
	for _, pl := range list {
		out[pl.Name] = pl
	}
	return out
}

func placeOne(pt SampledPoint, text TextBox, style LabelStyle, bounds r2.Box, placed []r2.Box) LabelPlacement {
	r := style.LeaderLength

	for _, angle := range candidateOrder(pt.Project.Position) {
		pl := radialCandidate(pt, text, style, angle, r)
		if fitsInside(pl.Box, bounds) && !collides(pl.Box, placed) {
			return pl
		}
	}

	for _, f := range horizontalFallbacks {
		pl := horizontalCandidate(pt, text, style, f*r, StrategyHorizontal)
		if !collides(pl.Box, placed) {
			return pl
		}
	}

	for _, f := range verticalFallbacks {
		pl := verticalCandidate(pt, text, style, f*r)
		if fitsInside(pl.Box, bounds) && !collides(pl.Box, placed) {
			return pl
		}
	}

	return horizontalCandidate(pt, text, style, forcedDistance*r, StrategyForced)
}

// radialCandidate offsets the label by r along angle. The text box is pushed
// away from the point on whichever axes the direction has a component.
func radialCandidate(pt SampledPoint, text TextBox, style LabelStyle, angle int, r float64) LabelPlacement {
	rad := float64(angle) * math.Pi / 180
	dx := math.Cos(rad)
	dy := -math.Sin(rad)
	// Snap tiny trig residue so 90/270 are exactly vertical.
	if math.Abs(dx) < 1e-9 {
		dx = 0
	}
	if math.Abs(dy) < 1e-9 {
		dy = 0
	}

	x := pt.X + r*dx
	y := pt.Y + r*dy
	anchor := AnchorMiddle
	switch {
	case dx > 0:
		anchor = AnchorStart
	case dx < 0:
		anchor = AnchorEnd
	}
	switch {
	case dy < 0:
		y -= text.Height / 2
	case dy > 0:
		y += text.Height / 2
	}

	pl := newPlacement(pt, text, style, x, y, anchor)
	pl.Angle = angle
	pl.Strategy = StrategyCandidate
	pl.ShowLeader = angle != 0
	return pl
}

func horizontalCandidate(pt SampledPoint, text TextBox, style LabelStyle, d float64, s Strategy) LabelPlacement {
	pl := newPlacement(pt, text, style, pt.X+d, pt.Y, AnchorStart)
	pl.Strategy = s
	pl.ShowLeader = true
	return pl
}

// verticalCandidate stacks the label above (d < 0) or below (d > 0) the point.
func verticalCandidate(pt SampledPoint, text TextBox, style LabelStyle, d float64) LabelPlacement {
	y := pt.Y + d + math.Copysign(text.Height/2, d)
	pl := newPlacement(pt, text, style, pt.X, y, AnchorMiddle)
	pl.Angle = 270
	if d < 0 {
		pl.Angle = 90
	}
	pl.Strategy = StrategyVertical
	pl.ShowLeader = true
	return pl
}

func newPlacement(pt SampledPoint, text TextBox, style LabelStyle, x, y float64, anchor Anchor) LabelPlacement {
	var left float64
	switch anchor {
	case AnchorStart:
		left = x
	case AnchorEnd:
		left = x - text.Width
	default:
		left = x - text.Width/2
	}
	top := y - text.Height/2
	box := r2.Box{
		Min: r2.Vec{X: left - style.Padding, Y: top - style.Padding},
		Max: r2.Vec{X: left + text.Width + style.Padding, Y: top + text.Height + style.Padding},
	}
	return LabelPlacement{
		Name:      pt.Project.Name,
		X:         x,
		Y:         y,
		Anchor:    anchor,
		LeaderEnd: pt.Vec,
		Lines:     text.Lines,
		FontSize:  style.FontSize,
		Box:       box,
	}
}

// Overlaps reports whether two boxes intersect once the buffer is added.
func Overlaps(a, b r2.Box, buffer float64) bool {
	return a.Min.X < b.Max.X+buffer &&
		b.Min.X < a.Max.X+buffer &&
		a.Min.Y < b.Max.Y+buffer &&
		b.Min.Y < a.Max.Y+buffer
}

func collides(box r2.Box, placed []r2.Box) bool {
	for _, p := range placed {
		if Overlaps(box, p, CollisionBuffer) {
			return true
		}
	}
	return false
}

func fitsInside(box, bounds r2.Box) bool {
	return box.Min.X >= bounds.Min.X &&
		box.Min.Y >= bounds.Min.Y &&
		box.Max.X <= bounds.Max.X &&
		box.Max.Y <= bounds.Max.Y
}
