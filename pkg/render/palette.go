// Package render draws composed scenes as SVG and PNG.
package render

import (
	"fmt"
	"image/color"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// Light theme matching the chart's dashboard look.
var (
	bgSurface   = color.RGBA{0xff, 0xff, 0xff, 0xff}
	gridColor   = color.RGBA{0xe5, 0xe7, 0xeb, 0xff}
	curveColor  = color.RGBA{0x1f, 0x29, 0x37, 0xff}
	axisText    = color.RGBA{0x6b, 0x72, 0x80, 0xff}
	labelText   = color.RGBA{0x11, 0x18, 0x27, 0xff}
	leaderColor = color.RGBA{0x9c, 0xa3, 0xaf, 0xff}
	haloColor   = color.RGBA{0xff, 0xff, 0xff, 0xff}

	tooltipBg     = color.RGBA{0xff, 0xff, 0xff, 0xf2}
	tooltipBorder = color.RGBA{0xd1, 0xd5, 0xdb, 0xff}
	tooltipMeta   = color.RGBA{0x4b, 0x55, 0x63, 0xff}
)

// tokenColors resolves category color tokens.
var tokenColors = map[model.ColorToken]color.RGBA{
	model.TokenDestructive: {0xdc, 0x26, 0x26, 0xff},
	model.TokenPrimary:     {0x25, 0x63, 0xeb, 0xff},
	model.TokenSecondary:   {0x0d, 0x94, 0x88, 0xff},
	model.TokenMuted:       {0x6b, 0x72, 0x80, 0xff},
}

// CategoryColor returns the marker color of a category.
func CategoryColor(c model.Category) color.RGBA {
	if col, ok := tokenColors[c.ColorToken()]; ok {
		return col
	}
	return tokenColors[model.TokenMuted]
}

func cssRGBA(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
