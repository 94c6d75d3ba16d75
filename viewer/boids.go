package viewer

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/boids"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/ui"
)

var (
	boidColor     = rl.Color{R: 140, G: 200, B: 255, A: 255}
	predatorColor = rl.Color{R: 240, G: 90, B: 80, A: 255}
	rangeColor    = rl.Color{R: 140, G: 200, B: 255, A: 40}
)

var mouseModes = []boids.MouseMode{boids.MouseNone, boids.MouseAttract, boids.MouseRepel}

// boidsView draws the flock on a wrapping canvas. The pointer feeds the
// attract and repel modes while it is over the world.
type boidsView struct {
	demo    *gallery.BoidsDemo
	presets []string
	preset  int
	rng     *rand.Rand // headings for clicked-in boids
}

func newBoidsView(d *gallery.BoidsDemo) *boidsView {
	return &boidsView{demo: d, presets: boids.PresetKeys(), preset: -1, rng: rand.New(rand.NewSource(1))}
}

func (v *boidsView) World() (float64, float64, bool) {
	s := v.demo.Flock().Settings()
	return s.Width, s.Height, true
}

func (v *boidsView) Draw(vw *Viewer) {
	cam := vw.Camera()
	flock := v.demo.Flock()
	s := flock.Settings()

	ghosts := vw.Overlays().IsEnabled(ui.OverlayGhosts)
	showRange := vw.Overlays().IsEnabled(ui.OverlayVisualRange)
	size := float32(math.Max(3, 4*cam.Zoom))

	for _, a := range flock.Agents() {
		if !cam.IsVisible(a.Pos, 8) {
			continue
		}
		c := boidColor
		if a.Predator {
			c = predatorColor
		}
		heading := float32(math.Atan2(a.Vel.Y, a.Vel.X))

		screen := []geom.Vec{cam.WorldToScreen(a.Pos)}
		if ghosts {
			screen = append(screen, cam.GhostPositions(a.Pos, 8)...)
		}
		for _, p := range screen {
			if showRange && !a.Predator {
				rl.DrawCircleLines(int32(p.X), int32(p.Y), float32(s.VisualRange*cam.Zoom), rangeColor)
			}
			drawOrientedTriangle(toVector2(p), heading, size, c)
		}
	}

	if s.MouseMode != boids.MouseNone {
		m := rl.GetMousePosition()
		if cam.InViewport(geom.Vec{X: float64(m.X), Y: float64(m.Y)}) {
			rl.DrawCircleLines(int32(m.X), int32(m.Y), float32(s.MouseRadius*cam.Zoom), rl.Fade(rl.White, 0.3))
		}
	}
}

func (v *boidsView) HandleInput(vw *Viewer, mouse geom.Vec, ok bool) {
	flock := v.demo.Flock()
	if ok {
		flock.SetPointer(mouse)
	} else {
		flock.ClearPointer()
	}

	if rl.IsKeyPressed(rl.KeyS) {
		flock.Scatter()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		v.cycleMouseMode()
	}
	if rl.IsKeyPressed(rl.KeyK) {
		v.nextPreset(vw)
	}
	if ok && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		s := flock.Settings()
		angle := v.rng.Float64() * 2 * math.Pi
		flock.Spawn(mouse, geom.Scale(s.MaxSpeed/2, geom.FromAngle(angle)), rl.IsKeyDown(rl.KeyLeftShift))
	}
}

func (v *boidsView) cycleMouseMode() {
	flock := v.demo.Flock()
	s := flock.Settings()
	for i, m := range mouseModes {
		if m == s.MouseMode {
			s.MouseMode = mouseModes[(i+1)%len(mouseModes)]
			break
		}
	}
	flock.SetSettings(s)
}

func (v *boidsView) nextPreset(vw *Viewer) {
	v.preset = (v.preset + 1) % len(v.presets)
	flock := v.demo.Flock()
	s, err := boids.ApplyPreset(flock.Settings(), v.presets[v.preset])
	if err != nil {
		slog.Error("failed to apply preset", "error", err)
		return
	}
	flock.SetSettings(s)
	vw.Runner().Reset()
}

func (v *boidsView) Sliders(*Viewer) []ui.SliderDescriptor {
	flock := v.demo.Flock()
	update := func(f func(*boids.Settings)) {
		s := flock.Settings()
		f(&s)
		flock.SetSettings(s)
	}
	return []ui.SliderDescriptor{
		{
			Label: "Alignment", Min: 0, Max: 2,
			Get: func() float64 { return flock.Settings().AlignmentForce },
			Set: func(x float64) { update(func(s *boids.Settings) { s.AlignmentForce = x }) },
		},
		{
			Label: "Cohesion", Min: 0, Max: 2,
			Get: func() float64 { return flock.Settings().CohesionForce },
			Set: func(x float64) { update(func(s *boids.Settings) { s.CohesionForce = x }) },
		},
		{
			Label: "Separation", Min: 0, Max: 2,
			Get: func() float64 { return flock.Settings().SeparationForce },
			Set: func(x float64) { update(func(s *boids.Settings) { s.SeparationForce = x }) },
		},
		{
			Label: "Visual range", Min: 20, Max: 100, Step: 1, Format: "%.0f",
			Get: func() float64 { return flock.Settings().VisualRange },
			Set: func(x float64) { update(func(s *boids.Settings) { s.VisualRange = x }) },
		},
		{
			Label: "Max speed", Min: 1, Max: 10, Step: 0.1, Format: "%.1f",
			Get: func() float64 { return flock.Settings().MaxSpeed },
			Set: func(x float64) { update(func(s *boids.Settings) { s.MaxSpeed = x }) },
		},
		{
			Label: "Boids (on reset)", Min: 0, Max: 200, Step: 1, Format: "%.0f",
			Get: func() float64 { return float64(flock.Settings().NumBoids) },
			Set: func(x float64) { update(func(s *boids.Settings) { s.NumBoids = int(x) }) },
		},
		{
			Label: "Predators (on reset)", Min: 0, Max: 10, Step: 1, Format: "%.0f",
			Get: func() float64 { return float64(flock.Settings().NumPredators) },
			Set: func(x float64) { update(func(s *boids.Settings) { s.NumPredators = int(x) }) },
		},
	}
}

func (v *boidsView) Buttons(vw *Viewer) []ui.ButtonDescriptor {
	return []ui.ButtonDescriptor{
		{Label: "Scatter", OnClick: v.demo.Flock().Scatter},
		{Label: "Mouse: " + string(v.demo.Flock().Settings().MouseMode), OnClick: v.cycleMouseMode},
		{Label: "Next preset", OnClick: func() { v.nextPreset(vw) }},
		{Label: "Respawn", OnClick: vw.Runner().Reset},
	}
}

func (v *boidsView) Stats() []ui.SectionDescriptor {
	flock := v.demo.Flock()
	return []ui.SectionDescriptor{{
		Title: "Flock",
		Fields: []ui.FieldDescriptor{
			{Label: "Boids", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(flock.LastStats().Boids) }},
			{Label: "Predators", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(flock.LastStats().Predators) }},
			{Label: "Groups", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(flock.LastStats().Groups) }},
			{Label: "Avg speed", Widget: ui.WidgetBar, Range: ui.FieldRange{Max: flock.Settings().MaxSpeed}, Getter: func() float64 { return flock.LastStats().AverageSpeed }},
			{Label: "Alignment", Widget: ui.WidgetBar, Range: ui.DefaultRange(), Getter: func() float64 { return flock.LastStats().Alignment }},
		},
	}}
}

func (v *boidsView) Status() string {
	preset := "custom"
	if v.preset >= 0 {
		preset = boids.Presets[v.presets[v.preset]].Name
	}
	return fmt.Sprintf("Preset: %s | Mouse: %s (M) | S scatter, K preset, click spawn, shift+click predator",
		preset, v.demo.Flock().Settings().MouseMode)
}

func (v *boidsView) Unload() {}
