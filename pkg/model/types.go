package model

import (
	"fmt"
	"math"
	"strings"
)

// Project is a single portfolio entry placed on the progress curve.
type Project struct {
	Name       string   `json:"name" yaml:"name"`
	Position   float64  `json:"position" yaml:"position"`
	Category   Category `json:"category" yaml:"category"`
	Risk       Level    `json:"risk" yaml:"risk"`
	Complexity Level    `json:"complexity" yaml:"complexity"`
	Timeline   Timeline `json:"timeline" yaml:"timeline"`
	Notes      string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks if the project data is logically valid
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if math.IsNaN(p.Position) || p.Position < 0 || p.Position > 1 {
		return fmt.Errorf("position must be between 0.0 and 1.0, got %v", p.Position)
	}
	if !p.Category.IsValid() {
		return fmt.Errorf("invalid category: %s", p.Category)
	}
	if !p.Risk.IsValid() {
		return fmt.Errorf("invalid risk: %s", p.Risk)
	}
	if !p.Complexity.IsValid() {
		return fmt.Errorf("invalid complexity: %s", p.Complexity)
	}
	if !p.Timeline.IsValid() {
		return fmt.Errorf("invalid timeline: %s", p.Timeline)
	}
	return nil
}

// Category groups projects by the kind of work they represent
type Category string

const (
	CategoryUnplanned  Category = "Unplanned Work"
	CategoryIS         Category = "IS Projects"
	CategoryITBusiness Category = "IT/Business Projects"
	CategoryBAU        Category = "Business-as-Usual"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryUnplanned, CategoryIS, CategoryITBusiness, CategoryBAU}

// IsValid returns true if the category is a recognized value
func (c Category) IsValid() bool {
	switch c {
	case CategoryUnplanned, CategoryIS, CategoryITBusiness, CategoryBAU:
		return true
	}
	return false
}

// Level is a low/medium/high rating used for risk and complexity
type Level string

const (
	LevelLow    Level = "L"
	LevelMedium Level = "M"
	LevelHigh   Level = "H"
)

// Levels lists every level from lowest to highest.
var Levels = []Level{LevelLow, LevelMedium, LevelHigh}

// IsValid returns true if the level is a recognized value
func (l Level) IsValid() bool {
	switch l {
	case LevelLow, LevelMedium, LevelHigh:
		return true
	}
	return false
}

// Timeline is when a project is expected to reach its next plateau
type Timeline string

const (
	TimelineNextMonth   Timeline = "next month"
	TimelineNextQuarter Timeline = "next quarter"
	TimelineNextHalf    Timeline = "next half"
	TimelineNextYear    Timeline = "next year"
	TimelineOnHold      Timeline = "on hold"
)

// Timelines lists every timeline in legend order.
var Timelines = []Timeline{
	TimelineNextMonth,
	TimelineNextQuarter,
	TimelineNextHalf,
	TimelineNextYear,
	TimelineOnHold,
}

// IsValid returns true if the timeline is a recognized value
func (t Timeline) IsValid() bool {
	switch t {
	case TimelineNextMonth, TimelineNextQuarter, TimelineNextHalf, TimelineNextYear, TimelineOnHold:
		return true
	}
	return false
}

// Marker returns the single-glyph symbol drawn for the timeline.
func (t Timeline) Marker() string {
	switch t {
	case TimelineNextMonth:
		return "○"
	case TimelineNextQuarter:
		return "●"
	case TimelineNextHalf:
		return "△"
	case TimelineNextYear:
		return "▲"
	case TimelineOnHold:
		return "⊗"
	default:
		return "•"
	}
}

// ColorToken is a theme-level color name resolved by each renderer.
type ColorToken string

const (
	TokenDestructive ColorToken = "destructive"
	TokenPrimary     ColorToken = "primary"
	TokenSecondary   ColorToken = "secondary"
	TokenMuted       ColorToken = "muted"
)

// ColorToken returns the display color token for the category. Unknown
// categories are muted.
func (c Category) ColorToken() ColorToken {
	switch c {
	case CategoryUnplanned:
		return TokenDestructive
	case CategoryIS:
		return TokenPrimary
	case CategoryITBusiness:
		return TokenSecondary
	default:
		return TokenMuted
	}
}
