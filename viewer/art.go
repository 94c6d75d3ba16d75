package viewer

import (
	"fmt"
	"image/color"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/art"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
	"github.com/pthm-cable/menagerie/ui"
)

// artView shows the evolving image beside its target. Slider edits go to a
// pending copy of the settings and take effect on Apply, which restarts
// evolution.
type artView struct {
	demo    *gallery.ArtDemo
	pending art.Settings
	dirty   bool

	snap    art.Snapshot
	canvas  rl.Texture2D
	target  rl.Texture2D
	pixels  []color.RGBA
	loaded  bool
	targetW int
	targetH int
}

func newArtView(d *gallery.ArtDemo) *artView {
	v := &artView{demo: d, pending: d.Generator().Settings()}

	tgt := pixel.FromImage(d.Target())
	img := rl.NewImageFromImage(tgt)
	v.target = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	v.targetW, v.targetH = tgt.Bounds().Dx(), tgt.Bounds().Dy()
	return v
}

func (v *artView) World() (float64, float64, bool) {
	return float64(v.targetW), float64(v.targetH), false
}

// refresh pulls the latest snapshot into the canvas texture.
func (v *artView) refresh() {
	v.snap = v.demo.Generator().Snapshot()
	if v.snap.Image == nil {
		return
	}
	b := v.snap.Image.Bounds()
	if !v.loaded || int(v.canvas.Width) != b.Dx() || int(v.canvas.Height) != b.Dy() {
		if v.loaded {
			rl.UnloadTexture(v.canvas)
		}
		img := rl.NewImageFromImage(v.snap.Image)
		v.canvas = rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		v.loaded = true
		return
	}
	v.pixels = rgbaPixels(v.pixels, v.snap.Image)
	rl.UpdateTexture(v.canvas, v.pixels)
}

func (v *artView) Draw(vw *Viewer) {
	v.refresh()
	if !v.loaded {
		return
	}

	cam := vw.Camera()
	area := rl.Rectangle{
		X:      float32(cam.OriginX) + 10,
		Y:      float32(cam.OriginY) + 110,
		Width:  float32(cam.ViewportW) - 20,
		Height: float32(cam.ViewportH) - 150,
	}

	showTarget := vw.Overlays().IsEnabled(ui.OverlayTarget)
	if showTarget {
		area.Width = area.Width/2 - 5
	}

	dst := fitRect(area, int(v.canvas.Width), int(v.canvas.Height))
	src := rl.Rectangle{Width: float32(v.canvas.Width), Height: float32(v.canvas.Height)}
	rl.DrawTexturePro(v.canvas, src, dst, rl.Vector2{}, 0, rl.White)

	if showTarget {
		area.X += area.Width + 10
		tdst := fitRect(area, v.targetW, v.targetH)
		tsrc := rl.Rectangle{Width: float32(v.targetW), Height: float32(v.targetH)}
		rl.DrawTexturePro(v.target, tsrc, tdst, rl.Vector2{}, 0, rl.White)
		rl.DrawText("target", int32(tdst.X), int32(tdst.Y+tdst.Height)+4, 12, rl.Gray)
	}
	rl.DrawText(string(v.snap.Style), int32(dst.X), int32(dst.Y+dst.Height)+4, 12, rl.Gray)
}

func (v *artView) HandleInput(vw *Viewer, _ geom.Vec, _ bool) {
	if rl.IsKeyPressed(rl.KeyEnter) && v.dirty {
		v.apply(vw)
	}
}

func (v *artView) apply(vw *Viewer) {
	if err := v.demo.Apply(v.pending); err != nil {
		slog.Error("failed to apply art settings", "error", err)
		return
	}
	v.pending = v.demo.Generator().Settings()
	v.dirty = false
	vw.Runner().Reset()
}

func (v *artView) Sliders(*Viewer) []ui.SliderDescriptor {
	style := v.demo.Generator().Style()
	lo, hi := art.CountRange(style)
	set := func(f func(float64)) func(float64) {
		return func(x float64) {
			f(x)
			v.pending = v.pending.Clamp(style)
			v.dirty = true
		}
	}
	return []ui.SliderDescriptor{
		{
			Label: "Primitives", Min: float64(lo), Max: float64(hi), Step: 1, Format: "%.0f",
			Get: func() float64 { return float64(v.pending.NumShapes) },
			Set: set(func(x float64) { v.pending.NumShapes = int(x) }),
		},
		{
			Label: "Min size", Min: 1, Max: 100, Step: 1, Format: "%.0f",
			Get: func() float64 { return v.pending.MinSize },
			Set: set(func(x float64) { v.pending.MinSize = x }),
		},
		{
			Label: "Max size", Min: 1, Max: 200, Step: 1, Format: "%.0f",
			Get: func() float64 { return v.pending.MaxSize },
			Set: set(func(x float64) { v.pending.MaxSize = x }),
		},
		{
			Label: "Mutation rate", Min: 0.01, Max: 0.5,
			Get: func() float64 { return v.pending.MutationRate },
			Set: set(func(x float64) { v.pending.MutationRate = x }),
		},
	}
}

func (v *artView) Buttons(vw *Viewer) []ui.ButtonDescriptor {
	label := "Apply"
	if v.dirty {
		label = "Apply *"
	}
	return []ui.ButtonDescriptor{
		{Label: label, OnClick: func() { v.apply(vw) }},
		{Label: "Defaults", OnClick: func() {
			style := v.demo.Generator().Style()
			v.pending = art.DefaultSettings(style).Clamp(style)
			v.dirty = true
		}},
	}
}

func (v *artView) Stats() []ui.SectionDescriptor {
	return []ui.SectionDescriptor{{
		Title: "Evolution",
		Fields: []ui.FieldDescriptor{
			{Label: "Generation", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(v.snap.Generation) }},
			{Label: "Accepted", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(v.snap.Accepted) }},
			{Label: "Primitives", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(len(v.snap.Primitives)) }},
			{Label: "Fitness", Widget: ui.WidgetBar, Range: ui.DefaultRange(), Format: "%.4f", Getter: func() float64 { return v.snap.BestFitness }},
		},
	}}
}

func (v *artView) Status() string {
	s := fmt.Sprintf("Style: %s", v.demo.Generator().Style())
	if v.dirty {
		s += " | settings changed, Enter to apply"
	}
	return s
}

func (v *artView) Unload() {
	if v.loaded {
		rl.UnloadTexture(v.canvas)
	}
	rl.UnloadTexture(v.target)
}
