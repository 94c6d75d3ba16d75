package viewer

import (
	"image"
	"image/color"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/life"
	"github.com/pthm-cable/menagerie/ui"
)

func TestFitRect(t *testing.T) {
	area := rl.Rectangle{X: 10, Y: 20, Width: 400, Height: 200}

	tests := []struct {
		name string
		w, h int
		want rl.Rectangle
	}{
		{"wide fits width", 800, 200, rl.Rectangle{X: 10, Y: 70, Width: 400, Height: 100}},
		{"tall fits height", 100, 100, rl.Rectangle{X: 110, Y: 20, Width: 200, Height: 200}},
		{"empty image", 0, 10, rl.Rectangle{X: 10, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fitRect(area, tt.w, tt.h); got != tt.want {
				t.Errorf("fitRect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBAPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})

	px := rgbaPixels(nil, img)
	if len(px) != 4 {
		t.Fatalf("len = %d, want 4", len(px))
	}
	if px[1] != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) || px[2] != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("pixels out of order: %v", px)
	}

	// A large enough buffer is reused
	buf := make([]color.RGBA, 0, 16)
	if out := rgbaPixels(buf, img); &out[0] != &buf[:1][0] {
		t.Error("expected buffer reuse")
	}

	// Sub-images start at their own bounds
	sub := img.SubImage(image.Rect(1, 0, 2, 1)).(*image.RGBA)
	if got := rgbaPixels(nil, sub); len(got) != 1 || got[0].R != 10 {
		t.Errorf("sub-image pixels = %v", got)
	}
}

func TestPheromoneColor(t *testing.T) {
	if c := pheromoneColor(0, 0, 2); c.A != 0 {
		t.Errorf("no pheromone should be transparent, got %v", c)
	}
	if c := pheromoneColor(1, 1, 0); c.A != 0 {
		t.Errorf("zero limit should be transparent, got %v", c)
	}

	home := pheromoneColor(2, 0, 2)
	if home.B != 255 || home.R != 0 || home.A != 200 {
		t.Errorf("saturated home = %v", home)
	}
	food := pheromoneColor(0, 5, 2)
	if food.R != 255 || food.B != 0 {
		t.Errorf("food over limit = %v", food)
	}
}

func TestPopulationTrend(t *testing.T) {
	pts := func(pops ...int) []life.PopulationPoint {
		out := make([]life.PopulationPoint, len(pops))
		for i, p := range pops {
			out[i] = life.PopulationPoint{Generation: i, Population: p}
		}
		return out
	}

	tests := []struct {
		name string
		h    []life.PopulationPoint
		want float64
	}{
		{"too short", pts(5), 0},
		{"halved", pts(100, 80, 50), -0.5},
		{"capped growth", pts(10, 100), 1},
		{"from empty", pts(0, 3), 1},
		{"stays empty", pts(0, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := populationTrend(tt.h); got != tt.want {
				t.Errorf("populationTrend = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSuggestion(t *testing.T) {
	e := ants.Efficiency{Suggestions: []string{
		"Weak trails. Do something.",
		"Paths are very long. Try adjusting ant parameters.",
	}}

	if got := suggestion(e, 0); got != "Weak trails" {
		t.Errorf("suggestion 0 = %q", got)
	}
	if got := suggestion(e, 1); got != "Paths are very long" {
		t.Errorf("suggestion 1 = %q", got)
	}
	if got := suggestion(e, 2); got != "" {
		t.Errorf("missing suggestion = %q", got)
	}

	long := ants.Efficiency{Suggestions: []string{"Many ants are idle and wandering around the nest"}}
	if got := suggestion(long, 0); len(got) != 24 {
		t.Errorf("long suggestion %q has length %d, want 24", got, len(got))
	}
}

func TestDemoCategory(t *testing.T) {
	for name, want := range map[string]string{
		gallery.DemoArt:   ui.CategoryArt,
		gallery.DemoLife:  ui.CategoryLife,
		gallery.DemoBoids: ui.CategoryBoids,
		gallery.DemoAnts:  ui.CategoryAnts,
		"unknown":         ui.CategoryGlobal,
	} {
		if got := demoCategory(name); got != want {
			t.Errorf("demoCategory(%q) = %q, want %q", name, got, want)
		}
	}
}
