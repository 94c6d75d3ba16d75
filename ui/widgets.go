package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// barWidth is the bar length left after the label column and value text.
func (r *Renderer) barWidth(width int32) int32 {
	return max(width-r.Theme.LabelWidth-50, 10)
}

// barFill returns how many of width pixels a value fills over rng.
func barFill(value float64, rng FieldRange, width int32) int32 {
	return int32(float64(width) * rng.Normalize(value))
}

// centeredFill returns the signed fill of a bar centered at 0: the offset from
// the center (negative for values below 0) and the fill width, out of half
// pixels on each side.
func centeredFill(value float64, rng FieldRange, half int32) (offset, width int32) {
	extent := math.Max(math.Abs(rng.Min), math.Abs(rng.Max))
	if extent == 0 {
		return 0, 0
	}
	width = int32(float64(half) * math.Min(math.Abs(value)/extent, 1))
	if value < 0 {
		return -width, width
	}
	return 0, width
}

// drawBarFrame draws the label and empty track, returning the track origin.
func (r *Renderer) drawBarFrame(x, y int32, label string, w int32) int32 {
	barX := x + r.Theme.LabelWidth
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(barX, y+2, w, r.Theme.BarHeight, r.Theme.BarBg)
	return barX
}

// DrawBar draws a progress bar for value over rng.
func (r *Renderer) DrawBar(x, y int32, label string, value float64, rng FieldRange, format string, width int32) int32 {
	w := r.barWidth(width)
	barX := r.drawBarFrame(x, y, label, w)
	rl.DrawRectangle(barX, y+2, barFill(value, rng, w), r.Theme.BarHeight, r.Theme.BarFill)

	if format == "" {
		format = "%.2f"
	}
	rl.DrawText(fmt.Sprintf(format, value), barX+w+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawCenteredBar draws a bar centered at 0 for values in a signed range.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value float64, rng FieldRange, width int32) int32 {
	w := r.barWidth(width)
	barX := r.drawBarFrame(x, y, label, w)

	centerX := barX + w/2
	rl.DrawLine(centerX, y+2, centerX, y+2+r.Theme.BarHeight, r.Theme.PanelBorder)

	offset, fill := centeredFill(value, rng, w/2)
	c := r.Theme.BarFillPositive
	if value < 0 {
		c = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(centerX+offset, y+2, fill, r.Theme.BarHeight, c)

	rl.DrawText(fmt.Sprintf("%+.2f", value), barX+w+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight + 2
}

// DrawColorSwatch draws a color swatch.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, 12, 12, color)
	return y + r.Theme.LineHeight
}

// DrawField renders a field based on its descriptor.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, width int32) int32 {
	value := 0.0
	if fd.Getter != nil {
		value = fd.Getter()
	}

	switch fd.Widget {
	case WidgetText:
		var text string
		if fd.TextGetter != nil {
			text = fd.TextGetter()
		} else if fd.Getter != nil {
			text = fmt.Sprintf(fd.Format, value)
		}
		return r.DrawLabelValue(x, y, fd.Label, text)

	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, value, fd.Range, fd.Format, width)

	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, value, fd.Range, width)

	case WidgetColorSwatch:
		color := fd.Color
		if fd.ColorGetter != nil {
			color = fd.ColorGetter()
		}
		return r.DrawColorSwatch(x, y, fd.Label, color)

	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)

	case WidgetSpacer:
		return y + 6
	}

	return y
}

// DrawSection renders a section with header and fields.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, width int32) int32 {
	if sd.Visible != nil && !sd.Visible() {
		return y
	}

	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}

	for _, fd := range sd.Fields {
		if fd.Visible != nil && !fd.Visible() {
			continue
		}
		y = r.DrawField(x, y, fd, width)
	}

	return y + 4
}

// DrawSections draws sections inside one panel and returns the panel's bottom edge.
func (r *Renderer) DrawSections(x, y, width int32, sections []SectionDescriptor) int32 {
	pad := r.Theme.Padding
	h := pad * 2
	for _, s := range sections {
		h += s.Height(r.Theme)
	}
	r.DrawPanel(x, y, width, h)

	cy := y + pad
	for _, s := range sections {
		cy = r.DrawSection(x+pad, cy, s, width-pad*2)
	}
	return y + h
}
