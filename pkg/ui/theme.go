package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/progress_curve/pkg/model"
	"github.com/Dicklesworthstone/progress_curve/pkg/render"
)

// Theme holds the adaptive colors and renderer shared by every view.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Curve     lipgloss.AdaptiveColor
	Grid      lipgloss.AdaptiveColor

	// GlamourStyle is the glamour standard style used for the help screen.
	GlamourStyle string
}

// DefaultTheme builds the theme for a renderer. A nil renderer uses the
// default lipgloss renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	style := "dark"
	if !r.HasDarkBackground() {
		style = "light"
	}
	return Theme{
		Renderer:     r,
		Primary:      lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: string(ColorPrimary)},
		Secondary:    lipgloss.AdaptiveColor{Light: "#4B5563", Dark: string(ColorSecondary)},
		Subtext:      lipgloss.AdaptiveColor{Light: "#374151", Dark: string(ColorSubtext)},
		Muted:        lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: string(ColorMuted)},
		Border:       lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: string(ColorBgHighlight)},
		Highlight:    lipgloss.AdaptiveColor{Light: "#FDE68A", Dark: string(ColorBgHighlight)},
		Curve:        lipgloss.AdaptiveColor{Light: "#1F2937", Dark: string(ColorText)},
		Grid:         lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: string(ColorBgSubtle)},
		GlamourStyle: style,
	}
}

// CategoryColor maps a category to the same hue the image renderers use.
func (t Theme) CategoryColor(c model.Category) lipgloss.AdaptiveColor {
	rgba := render.CategoryColor(c)
	hex := fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
	return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
}
