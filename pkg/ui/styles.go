package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Dicklesworthstone/progress_curve/pkg/layout"
	"github.com/Dicklesworthstone/progress_curve/pkg/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired with extended semantic colors
// ══════════════════════════════════════════════════════════════════════════════

var (
	// Base colors
	ColorBgSubtle    = lipgloss.Color("#363949")
	ColorBgHighlight = lipgloss.Color("#44475A")
	ColorText        = lipgloss.Color("#F8F8F2")
	ColorSubtext     = lipgloss.Color("#BFBFBF")
	ColorMuted       = lipgloss.Color("#6272A4")

	// Primary accent colors
	ColorPrimary   = lipgloss.Color("#BD93F9")
	ColorSecondary = lipgloss.Color("#6272A4")
	ColorInfo      = lipgloss.Color("#8BE9FD")
	ColorSuccess   = lipgloss.Color("#50FA7B")
	ColorWarning   = lipgloss.Color("#FFB86C")
	ColorDanger    = lipgloss.Color("#FF5555")

	// Level colors
	ColorLevelHigh   = lipgloss.Color("#FF5555")
	ColorLevelMedium = lipgloss.Color("#F1FA8C")
	ColorLevelLow    = lipgloss.Color("#50FA7B")

	// Level background colors
	ColorLevelHighBg   = lipgloss.Color("#3D1A1A")
	ColorLevelMediumBg = lipgloss.Color("#3D3D1A")
	ColorLevelLowBg    = lipgloss.Color("#1A3D2A")
)

// ══════════════════════════════════════════════════════════════════════════════
// PANEL STYLES
// ══════════════════════════════════════════════════════════════════════════════

// PanelStyle returns the bordered panel style for a theme.
func PanelStyle(t Theme) lipgloss.Style {
	return t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
}

// FocusedPanelStyle is PanelStyle with the accent border.
func FocusedPanelStyle(t Theme) lipgloss.Style {
	return PanelStyle(t).BorderForeground(t.Primary)
}

// ══════════════════════════════════════════════════════════════════════════════
// BADGE RENDERING
// ══════════════════════════════════════════════════════════════════════════════

// RenderLevelBadge returns a styled risk or complexity badge.
func RenderLevelBadge(t Theme, l model.Level) string {
	var fg, bg lipgloss.Color
	switch l {
	case model.LevelHigh:
		fg, bg = ColorLevelHigh, ColorLevelHighBg
	case model.LevelMedium:
		fg, bg = ColorLevelMedium, ColorLevelMediumBg
	case model.LevelLow:
		fg, bg = ColorLevelLow, ColorLevelLowBg
	default:
		fg, bg = ColorMuted, ColorBgSubtle
	}
	label := string(l)
	if label == "" {
		label = "?"
	}
	return t.Renderer.NewStyle().
		Foreground(fg).
		Background(bg).
		Bold(true).
		Render(" " + label + " ")
}

// RenderCategoryBadge returns the category name in its marker color.
func RenderCategoryBadge(t Theme, c model.Category) string {
	return t.Renderer.NewStyle().
		Foreground(t.CategoryColor(c)).
		Bold(true).
		Render(string(c))
}

// RenderTierBadge returns the current breakpoint tier.
func RenderTierBadge(t Theme, tier layout.Tier) string {
	var fg lipgloss.Color
	switch tier {
	case layout.TierLG:
		fg = ColorSuccess
	case layout.TierSM:
		fg = ColorInfo
	default:
		fg = ColorWarning
	}
	return t.Renderer.NewStyle().
		Foreground(fg).
		Background(ColorBgSubtle).
		Render(" " + strings.ToUpper(string(tier)) + " ")
}

// ══════════════════════════════════════════════════════════════════════════════
// METRIC VISUALIZATION
// ══════════════════════════════════════════════════════════════════════════════

// RenderPositionBar renders a mini horizontal bar for a curve position in [0,1].
func RenderPositionBar(value float64, width int, t Theme) string {
	if width <= 0 {
		return ""
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}

	// Color by curve region: early peak, trough, climb.
	var barColor lipgloss.Color
	if value >= 0.75 {
		barColor = ColorSuccess
	} else if value >= 0.5 {
		barColor = ColorInfo
	} else if value >= 0.25 {
		barColor = ColorWarning
	} else {
		barColor = ColorDanger
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return t.Renderer.NewStyle().Foreground(barColor).Render(bar)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIVIDERS AND SEPARATORS
// ══════════════════════════════════════════════════════════════════════════════

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}
