// Package viewer is the raylib window over a gallery.Runner: it draws the
// active demo, routes mouse and keyboard edits into it and exposes its
// tunables as sliders.
package viewer

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/camera"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/ui"
)

// Layout
const (
	panelWidth = 260
	panelGap   = 8
)

const controlsHelp = "Space pause | N step | R reset | ,/. speed | =/- zoom | arrows pan | Home recenter | Tab panels"

// Options configures the window.
type Options struct {
	Title     string
	Width     int32
	Height    int32
	TargetFPS int32
	MaxTicks  int // 0 = until the window closes
}

// demoView draws one kind of demo and turns input into edits on it.
type demoView interface {
	// World returns the world extent and whether its edges wrap.
	World() (w, h float64, wrap bool)
	Draw(v *Viewer)
	// HandleInput runs after the common keys; mouse is in world coordinates
	// and ok is false when the pointer is outside the world.
	HandleInput(v *Viewer, mouse geom.Vec, ok bool)
	Sliders(v *Viewer) []ui.SliderDescriptor
	Buttons(v *Viewer) []ui.ButtonDescriptor
	Stats() []ui.SectionDescriptor
	Status() string
	Unload()
}

// Viewer owns the window state for one runner.
type Viewer struct {
	runner *gallery.Runner
	opts   Options

	view     demoView
	camera   *camera.Camera
	overlays *ui.OverlayRegistry
	renderer *ui.Renderer
	hud      *ui.HUD
	perf     *ui.PerfPanel
	controls *ui.ControlsPanel
	sliders  *ui.SliderPanel

	screenW, screenH int32
	showPanels       bool
}

// Run opens the window and drives runner until the window closes or
// MaxTicks is reached. The caller keeps ownership of runner.
func Run(runner *gallery.Runner, opts Options) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(opts.TargetFPS)

	v, err := newViewer(runner, opts)
	if err != nil {
		return err
	}
	defer v.view.Unload()

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()

		if opts.MaxTicks > 0 && runner.Tick() >= opts.MaxTicks {
			slog.Info("max ticks reached", "tick", runner.Tick())
			break
		}
	}
	return nil
}

func newViewer(runner *gallery.Runner, opts Options) (*Viewer, error) {
	v := &Viewer{
		runner:     runner,
		opts:       opts,
		overlays:   ui.NewOverlayRegistry(),
		renderer:   ui.NewRenderer(),
		hud:        ui.NewHUD(),
		perf:       ui.NewPerfPanel(0, 0),
		controls:   ui.NewControlsPanel(0, 0, panelWidth),
		sliders:    ui.NewSliderPanel(runner.Demo().Name(), 0, 0, panelWidth),
		screenW:    opts.Width,
		screenH:    opts.Height,
		showPanels: true,
	}

	switch d := runner.Demo().(type) {
	case *gallery.ArtDemo:
		v.view = newArtView(d)
	case *gallery.LifeDemo:
		v.view = newLifeView(d)
	case *gallery.BoidsDemo:
		v.view = newBoidsView(d)
	case *gallery.AntsDemo:
		v.view = newAntsView(d)
	default:
		return nil, fmt.Errorf("%w: no view for %q", gallery.ErrUnknownDemo, runner.Demo().Name())
	}

	w, h, wrap := v.view.World()
	v.camera = camera.New(0, 0, float64(v.viewportW()), float64(v.screenH), w, h, wrap)
	v.layout()
	return v, nil
}

// viewportW is the screen width left of the side panels.
func (v *Viewer) viewportW() int32 {
	if !v.showPanels {
		return v.screenW
	}
	return max(v.screenW-panelWidth-panelGap*2, 100)
}

func (v *Viewer) layout() {
	x := v.screenW - panelWidth - panelGap
	v.sliders.SetPosition(x, panelGap)
	v.camera.Resize(float64(v.viewportW()), float64(v.screenH))
}

// Camera returns the world camera.
func (v *Viewer) Camera() *camera.Camera { return v.camera }

// Overlays returns the overlay registry.
func (v *Viewer) Overlays() *ui.OverlayRegistry { return v.overlays }

// Runner returns the driven runner.
func (v *Viewer) Runner() *gallery.Runner { return v.runner }

func (v *Viewer) update() {
	v.handleResize()
	v.handleInput()
	v.runner.Update()
	v.runner.RecordFrame()
}

func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == v.screenW && h == v.screenH {
		return
	}
	v.screenW, v.screenH = w, h
	v.layout()
}

func (v *Viewer) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		v.runner.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyN) && v.runner.Paused() {
		v.runner.StepOnce()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.runner.Reset()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		v.showPanels = !v.showPanels
		v.layout()
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		v.runner.SetStepsPerUpdate(v.runner.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.runner.SetStepsPerUpdate(v.runner.StepsPerUpdate() + 1)
	}

	categories := []string{demoCategory(v.runner.Demo().Name()), ui.CategoryGlobal}
	for _, key := range v.overlays.Keys(categories...) {
		if rl.IsKeyPressed(key) {
			v.overlays.HandleKeyPress(key, categories...)
		}
	}

	v.handleCameraInput()

	m := rl.GetMousePosition()
	mouse, ok := v.camera.ScreenToWorld(geom.Vec{X: float64(m.X), Y: float64(m.Y)})
	v.view.HandleInput(v, mouse, ok)
}

// handleCameraInput processes camera pan/zoom controls.
func (v *Viewer) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := 8.0 / v.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		v.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		v.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		v.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		v.camera.Pan(0, -panSpeed)
	}

	m := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && v.camera.InViewport(geom.Vec{X: float64(m.X), Y: float64(m.Y)}) {
		v.camera.ZoomBy(1 + float64(wheel)*0.1)
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		v.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		v.camera.ZoomBy(0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
}

func (v *Viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 18, A: 255})

	v.view.Draw(v)

	demo := v.runner.Demo()
	v.hud.Draw(ui.HUDData{
		Title:      v.opts.Title,
		Demo:       demo.Name(),
		Tick:       v.runner.Tick(),
		Speed:      v.runner.StepsPerUpdate(),
		FPS:        rl.GetFPS(),
		Paused:     v.runner.Paused(),
		MetricName: demo.MetricName(),
		Metric:     demo.Metric(),
		Status:     v.view.Status(),
	})
	v.hud.DrawControls(v.screenH, controlsHelp)

	if v.showPanels {
		v.drawPanels()
	}

	rl.EndDrawing()
}

func (v *Viewer) drawPanels() {
	x := v.screenW - panelWidth - panelGap

	sliders := append([]ui.SliderDescriptor{v.speedSlider()}, v.view.Sliders(v)...)
	buttons := v.view.Buttons(v)
	v.sliders.Draw(sliders, buttons)
	y := panelGap + v.sliders.Height(len(sliders), len(buttons)) + panelGap

	y = v.renderer.DrawSections(x, y, panelWidth, v.view.Stats()) + panelGap

	v.controls.SetPosition(x, y)
	y = v.controls.Draw(v.overlays, demoCategory(v.runner.Demo().Name()), ui.CategoryGlobal) + panelGap

	if v.overlays.IsEnabled(ui.OverlayPerf) {
		v.perf.SetPosition(x, y)
		v.perf.Draw(v.runner.PerfStats())
	}
}

func (v *Viewer) speedSlider() ui.SliderDescriptor {
	return ui.SliderDescriptor{
		Label:  "Steps/frame",
		Min:    1,
		Max:    100,
		Step:   1,
		Format: "%.0f",
		Get:    func() float64 { return float64(v.runner.StepsPerUpdate()) },
		Set:    func(x float64) { v.runner.SetStepsPerUpdate(int(x)) },
	}
}

// demoCategory maps a demo name onto its overlay category.
func demoCategory(name string) string {
	switch name {
	case gallery.DemoArt:
		return ui.CategoryArt
	case gallery.DemoLife:
		return ui.CategoryLife
	case gallery.DemoBoids:
		return ui.CategoryBoids
	case gallery.DemoAnts:
		return ui.CategoryAnts
	}
	return ui.CategoryGlobal
}
