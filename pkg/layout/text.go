package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Text metrics used for box estimates. Glyph widths are approximated from the
// font size because layout runs without access to real font metrics.
const (
	// LabelCharWidth is the average glyph width of label text, in font sizes.
	LabelCharWidth = 0.65

	// TooltipCharWidth is the average glyph width used when wrapping tooltips.
	TooltipCharWidth = 0.6

	// LineHeight is the line advance, in font sizes.
	LineHeight = 1.2

	// MaxLabelChars is the display-column budget of one label line.
	MaxLabelChars = 40
)

// TextWidth returns the display width of s in columns. Wide (East Asian)
// runes count double.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WrapText breaks text at word boundaries so no line exceeds limit columns.
// A single word wider than the limit is kept whole on its own line. Empty
// input yields one empty line so every label has a height.
func WrapText(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	if limit < 1 {
		limit = 1
	}

	var lines []string
	current := words[0]
	for _, w := range words[1:] {
		if TextWidth(current)+1+TextWidth(w) <= limit {
			current += " " + w
			continue
		}
		lines = append(lines, current)
		current = w
	}
	return append(lines, current)
}

// TextBox is the estimated rendered size of a block of lines.
type TextBox struct {
	Lines  []string
	Width  float64
	Height float64
}

// EstimateLabel wraps a label and estimates its rendered size.
func EstimateLabel(text string, fontSize float64) TextBox {
	lines := WrapText(text, MaxLabelChars)
	longest := 0
	for _, l := range lines {
		if w := TextWidth(l); w > longest {
			longest = w
		}
	}
	return TextBox{
		Lines:  lines,
		Width:  float64(longest) * fontSize * LabelCharWidth,
		Height: float64(len(lines)) * fontSize * LineHeight,
	}
}
