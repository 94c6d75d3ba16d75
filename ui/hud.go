package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Demo       string
	Tick       int
	Speed      int
	FPS        int32
	Paused     bool
	MetricName string
	Metric     float64
	Status     string // demo-specific line, empty to skip
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Lines returns the HUD text, one entry per line, top to bottom.
func (d HUDData) Lines() []string {
	lines := []string{
		fmt.Sprintf("Demo: %s | %s: %.3f", d.Demo, d.MetricName, d.Metric),
		fmt.Sprintf("Tick: %s | Speed: %dx | FPS: %d", humanize.Comma(int64(d.Tick)), d.Speed, d.FPS),
	}
	if d.Status != "" {
		lines = append(lines, d.Status)
	}
	return lines
}

// Draw renders the HUD at the top-left of the screen.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	y := int32(35)
	for _, line := range data.Lines() {
		rl.DrawText(line, 10, y, 16, rl.LightGray)
		y += 20
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	} else {
		rl.DrawText("Running", 10, y, 16, rl.Green)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase timing panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s p90 %s (%.0f/s)",
		stats.AvgTick.Round(time.Microsecond), stats.P90Tick.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.Phases {
		avg, pct := stats.Phase(phase)
		rl.DrawText(fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct), x, y, 12, phaseColor(pct))
		y += 14
	}
}

// phaseColor flags phases that dominate the tick.
func phaseColor(pct float64) rl.Color {
	switch {
	case pct > 50:
		return rl.Red
	case pct > 25:
		return rl.Orange
	}
	return rl.LightGray
}
