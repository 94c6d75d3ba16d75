package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsPanel renders the overlay toggles for the active demo.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the overlays of the given categories and returns the bottom edge.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, categories ...string) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	var descs []OverlayDescriptor
	for _, cat := range categories {
		descs = append(descs, overlays.ByCategory(cat)...)
	}
	if len(descs) == 0 {
		return c.y
	}
	panelHeight := int32(len(descs)+1)*lineHeight + padding*2 + 4

	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, desc := range descs {
		c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
		y += lineHeight
	}

	return c.y + panelHeight
}

// drawToggle draws a single overlay toggle line.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

// SliderDescriptor binds one tunable value to a slider.
type SliderDescriptor struct {
	Label  string
	Min    float64
	Max    float64
	Step   float64 // 0 = continuous
	Format string
	Get    func() float64
	Set    func(float64)
}

// Snap clamps v to the slider's range and rounds it to Step.
func (s SliderDescriptor) Snap(v float64) float64 {
	v = max(s.Min, min(v, s.Max))
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		v = min(v, s.Max)
	}
	return v
}

// ButtonDescriptor is a push button drawn under the sliders.
type ButtonDescriptor struct {
	Label   string
	OnClick func()
}

// SliderPanel lays out raygui sliders and buttons in a column.
type SliderPanel struct {
	renderer *Renderer
	Title    string
	x, y     int32
	width    int32
}

// NewSliderPanel creates a slider panel.
func NewSliderPanel(title string, x, y, width int32) *SliderPanel {
	return &SliderPanel{renderer: NewRenderer(), Title: title, x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *SliderPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Height returns the panel height for the given controls.
func (p *SliderPanel) Height(sliders int, buttons int) int32 {
	pad := p.renderer.Theme.Padding
	return pad*2 + 24 + int32(sliders)*38 + int32((buttons+1)/2)*34
}

// Draw renders the panel. It returns true when any slider moved; the new
// value has already been passed to that slider's Set.
func (p *SliderPanel) Draw(sliders []SliderDescriptor, buttons []ButtonDescriptor) bool {
	r := p.renderer
	pad := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, p.Height(len(sliders), len(buttons)))

	x := float32(p.x + pad)
	y := float32(p.y + pad)
	w := float32(p.width - pad*2)

	rl.DrawText(p.Title, int32(x), int32(y), 16, rl.White)
	y += 24

	changed := false
	for _, s := range sliders {
		format := s.Format
		if format == "" {
			format = "%.2f"
		}
		cur := s.Get()
		rl.DrawText(fmt.Sprintf("%s: "+format, s.Label, cur), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14

		v := gui.SliderBar(
			rl.Rectangle{X: x, Y: y, Width: w, Height: 16},
			"", "",
			float32(cur), float32(s.Min), float32(s.Max),
		)
		if nv := s.Snap(float64(v)); nv != cur && float32(nv) != float32(cur) {
			s.Set(nv)
			changed = true
		}
		y += 24
	}

	half := (w - 6) / 2
	for i, b := range buttons {
		bx := x
		if i%2 == 1 {
			bx += half + 6
		}
		if gui.Button(rl.Rectangle{X: bx, Y: y, Width: half, Height: 26}, b.Label) && b.OnClick != nil {
			b.OnClick()
		}
		if i%2 == 1 {
			y += 34
		}
	}

	return changed
}
