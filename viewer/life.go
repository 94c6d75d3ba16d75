package viewer

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/life"
	"github.com/pthm-cable/menagerie/ui"
)

var (
	lifeAlive = rl.Color{R: 120, G: 220, B: 140, A: 255}
	lifeDead  = rl.Color{R: 24, G: 28, B: 34, A: 255}
	lifeLines = rl.Color{R: 40, G: 46, B: 54, A: 255}
)

// lifeView draws the board. Left click toggles a cell, right click stamps
// the selected pattern.
type lifeView struct {
	demo      *gallery.LifeDemo
	scenarios []string
	patterns  []string
	scenario  int // index into scenarios, -1 for a random soup
	pattern   int
}

func newLifeView(d *gallery.LifeDemo) *lifeView {
	v := &lifeView{
		demo:      d,
		scenarios: life.ScenarioKeys(),
		patterns:  slices.Sorted(maps.Keys(life.Patterns)),
		scenario:  -1,
	}
	if key := d.Simulation().Settings().Scenario; key != "" {
		v.scenario = slices.Index(v.scenarios, key)
	}
	v.pattern = max(slices.Index(v.patterns, "glider"), 0)
	return v
}

func (v *lifeView) World() (float64, float64, bool) {
	g := v.demo.Simulation().Grid()
	return float64(g.Cols()), float64(g.Rows()), false
}

func (v *lifeView) Draw(vw *Viewer) {
	cam := vw.Camera()
	g := v.demo.Simulation().Grid()

	rl.DrawRectangleRec(worldRect(cam, 0, 0, float64(g.Cols()), float64(g.Rows())), lifeDead)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if !g.Alive(r, c) {
				continue
			}
			p := geom.Vec{X: float64(c) + 0.5, Y: float64(r) + 0.5}
			if !cam.IsVisible(p, 1) {
				continue
			}
			rl.DrawRectangleRec(worldRect(cam, float64(c), float64(r), 1, 1), lifeAlive)
		}
	}

	if vw.Overlays().IsEnabled(ui.OverlayGridLines) && cam.Zoom >= 4 {
		for c := 0; c <= g.Cols(); c++ {
			a := toVector2(cam.WorldToScreen(geom.Vec{X: float64(c)}))
			b := toVector2(cam.WorldToScreen(geom.Vec{X: float64(c), Y: float64(g.Rows())}))
			rl.DrawLineV(a, b, lifeLines)
		}
		for r := 0; r <= g.Rows(); r++ {
			a := toVector2(cam.WorldToScreen(geom.Vec{Y: float64(r)}))
			b := toVector2(cam.WorldToScreen(geom.Vec{X: float64(g.Cols()), Y: float64(r)}))
			rl.DrawLineV(a, b, lifeLines)
		}
	}
	drawWorldBorder(cam)
}

func (v *lifeView) HandleInput(vw *Viewer, mouse geom.Vec, ok bool) {
	sim := v.demo.Simulation()

	if ok && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if err := sim.Toggle(int(mouse.Y), int(mouse.X)); err != nil {
			slog.Debug("toggle ignored", "error", err)
		}
	}
	if ok && rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		sim.Place(life.Patterns[v.patterns[v.pattern]], int(mouse.Y), int(mouse.X))
	}

	if rl.IsKeyPressed(rl.KeyC) {
		v.clear(vw)
	}
	if rl.IsKeyPressed(rl.KeyX) {
		v.load(vw, -1)
	}
	if rl.IsKeyPressed(rl.KeyZ) {
		v.pattern = (v.pattern + 1) % len(v.patterns)
	}
	for i := range v.scenarios {
		if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
			v.load(vw, i)
		}
	}
}

// load resets onto scenario i, or a random soup when i is negative.
func (v *lifeView) load(vw *Viewer, i int) {
	sim := v.demo.Simulation()
	s := sim.Settings()
	s.Scenario = ""
	if i >= 0 {
		s.Scenario = v.scenarios[i]
	}
	sim.SetSettings(s)
	v.scenario = i
	vw.Runner().Reset()
}

func (v *lifeView) clear(vw *Viewer) {
	v.demo.Simulation().Clear()
	vw.Runner().ResetTelemetry()
}

func (v *lifeView) Sliders(*Viewer) []ui.SliderDescriptor {
	sim := v.demo.Simulation()
	update := func(f func(*life.Settings)) {
		s := sim.Settings()
		f(&s)
		sim.SetSettings(s)
	}
	return []ui.SliderDescriptor{
		{
			Label: "Random density", Min: 0, Max: 1, Step: 0.05,
			Get: func() float64 { return sim.Settings().RandomDensity },
			Set: func(x float64) { update(func(s *life.Settings) { s.RandomDensity = x }) },
		},
		{
			Label: "Random region", Min: 1, Max: float64(min(sim.Settings().Rows, sim.Settings().Cols)), Step: 1, Format: "%.0f",
			Get: func() float64 { return float64(sim.Settings().RandomRegion) },
			Set: func(x float64) { update(func(s *life.Settings) { s.RandomRegion = int(x) }) },
		},
	}
}

func (v *lifeView) Buttons(vw *Viewer) []ui.ButtonDescriptor {
	return []ui.ButtonDescriptor{
		{Label: "Randomize", OnClick: func() { v.load(vw, -1) }},
		{Label: "Clear", OnClick: func() { v.clear(vw) }},
		{Label: "Next scenario", OnClick: func() { v.load(vw, (v.scenario+1)%len(v.scenarios)) }},
		{Label: "Next pattern", OnClick: func() { v.pattern = (v.pattern + 1) % len(v.patterns) }},
	}
}

func (v *lifeView) Stats() []ui.SectionDescriptor {
	sim := v.demo.Simulation()
	cells := func() float64 {
		g := sim.Grid()
		return float64(g.Rows() * g.Cols())
	}
	return []ui.SectionDescriptor{{
		Title: "Board",
		Fields: []ui.FieldDescriptor{
			{Label: "Generation", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(sim.Generation()) }},
			{Label: "Population", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(sim.Grid().CountLive()) }},
			{Label: "Density", Widget: ui.WidgetBar, Range: ui.DefaultRange(), Getter: func() float64 {
				return float64(sim.Grid().CountLive()) / cells()
			}},
			{Label: "Trend", Widget: ui.WidgetCenteredBar, Range: ui.CenteredRange(), Getter: func() float64 {
				return populationTrend(sim.History())
			}},
		},
	}}
}

// populationTrend is the relative population change across the history, in [-1, 1].
func populationTrend(h []life.PopulationPoint) float64 {
	if len(h) < 2 {
		return 0
	}
	first, last := float64(h[0].Population), float64(h[len(h)-1].Population)
	if first == 0 {
		if last > 0 {
			return 1
		}
		return 0
	}
	return geom.Clamp((last-first)/first, -1, 1)
}

func (v *lifeView) Status() string {
	name := "random soup"
	if v.scenario >= 0 {
		name = life.Scenarios[v.scenarios[v.scenario]].Name
	}
	return fmt.Sprintf("Scenario: %s | Pattern: %s (Z) | 1-%d scenarios, X random, C clear",
		name, v.patterns[v.pattern], len(v.scenarios))
}

func (v *lifeView) Unload() {}
