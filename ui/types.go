// Package ui provides a descriptor-driven UI layer for the gallery viewer.
// Panels, sliders and overlays are declared as data next to the demo they
// describe and drawn by a shared Renderer.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar over Range
	WidgetCenteredBar                   // Bar growing from zero, for signed values
	WidgetColorSwatch                   // Color preview square
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float64
	Max float64
}

// DefaultRange returns a [0, 1] range.
func DefaultRange() FieldRange {
	return FieldRange{Min: 0, Max: 1}
}

// CenteredRange returns a [-1, +1] range.
func CenteredRange() FieldRange {
	return FieldRange{Min: -1, Max: 1}
}

// Normalize maps v into [0, 1] over the range.
func (r FieldRange) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		return 0
	}
	n := (v - r.Min) / (r.Max - r.Min)
	return max(0, min(n, 1))
}

// FieldDescriptor defines how to display a single value.
type FieldDescriptor struct {
	Label       string
	Widget      WidgetType
	Format      string // Printf format for text (e.g., "%.2f")
	Range       FieldRange
	Color       rl.Color
	Visible     func() bool     // nil = always visible
	Getter      func() float64  // numeric fields
	TextGetter  func() string   // text fields
	ColorGetter func() rl.Color // color swatches
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	Title   string
	Fields  []FieldDescriptor
	Visible func() bool
}

// Height returns the vertical space the section takes when drawn with theme.
func (s SectionDescriptor) Height(theme Theme) int32 {
	if s.Visible != nil && !s.Visible() {
		return 0
	}
	h := int32(4)
	if s.Title != "" {
		h += theme.LineHeight
	}
	for _, f := range s.Fields {
		if f.Visible != nil && !f.Visible() {
			continue
		}
		switch f.Widget {
		case WidgetBar, WidgetCenteredBar:
			h += theme.LineHeight + 2
		case WidgetSpacer:
			h += 6
		default:
			h += theme.LineHeight
		}
	}
	return h
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:         rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:     rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:   rl.Yellow,
		LabelColor:      rl.LightGray,
		ValueColor:      rl.LightGray,
		BarBg:           rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      90,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}
