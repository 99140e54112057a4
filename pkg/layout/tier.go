// Package layout implements the responsive geometry of the progress curve:
// breakpoint tiers, the curve path, arc-length sampling, label placement,
// tooltip positioning, the legend grid and the composed scene.
//
// Everything in this package is a pure function of its inputs. Callers own
// any state that must survive between layout passes (previous tier and width).
package layout

import "math"

// Tier is a responsive display mode.
type Tier string

const (
	TierBase Tier = "base"
	TierSM   Tier = "sm"
	TierLG   Tier = "lg"
)

// Tiers lists every tier from narrowest to widest.
var Tiers = []Tier{TierBase, TierSM, TierLG}

// IsValid returns true if the tier is a recognized value
func (t Tier) IsValid() bool {
	switch t {
	case TierBase, TierSM, TierLG:
		return true
	}
	return false
}

// Band is the inclusive width range a tier may keep under hysteresis.
// Neighbouring bands overlap on purpose.
type Band struct {
	Min float64
	Max float64
}

// Contains reports whether width lies inside the band, bounds included.
func (b Band) Contains(width float64) bool {
	return width >= b.Min && width <= b.Max
}

var bands = map[Tier]Band{
	TierBase: {Min: 0, Max: 700},
	TierSM:   {Min: 600, Max: 1100},
	TierLG:   {Min: 1000, Max: math.Inf(1)},
}

// BandFor returns the hysteresis band of a tier.
func BandFor(t Tier) (Band, bool) {
	b, ok := bands[t]
	return b, ok
}

// Width thresholds used when hysteresis does not apply.
const (
	// SMMinWidth is the narrowest width that selects the sm tier.
	SMMinWidth = 600

	// LGMinWidth is the narrowest width that selects the lg tier.
	LGMinWidth = 1000

	// HysteresisWidth is the width delta below which a tier is kept while the
	// new width still falls in its band.
	HysteresisWidth = 50
)

// TierForWidth picks a tier from plain thresholds, ignoring history.
func TierForWidth(width float64) Tier {
	switch {
	case width < SMMinWidth:
		return TierBase
	case width < LGMinWidth:
		return TierSM
	default:
		return TierLG
	}
}

// ResolveTier maps a measured width to a tier. The previous tier is kept when
// the width moved by less than HysteresisWidth and still lies inside the
// previous tier's band; otherwise plain thresholds decide. An empty or unknown
// previous tier disables hysteresis.
func ResolveTier(width float64, previous Tier, previousWidth float64) Tier {
	if band, ok := bands[previous]; ok {
		if math.Abs(width-previousWidth) < HysteresisWidth && band.Contains(width) {
			return previous
		}
	}
	return TierForWidth(width)
}

// Viewport is the pixel size of the drawing surface.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewport is used before the host container has been measured.
var DefaultViewport = Viewport{Width: 1200, Height: 800}

// Aspect ratios (height / width) for narrow and regular containers.
const (
	NarrowAspect  = 0.8
	RegularAspect = 0.6
)

// ViewportForWidth derives the surface size from a measured container width.
// Narrow containers get a taller aspect so the curve stays legible.
func ViewportForWidth(width float64) Viewport {
	if width < 0 || math.IsNaN(width) {
		width = 0
	}
	aspect := RegularAspect
	if width < SMMinWidth {
		aspect = NarrowAspect
	}
	return Viewport{
		Width:  math.Round(width),
		Height: math.Round(width * aspect),
	}
}
