package ui

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestSliderSnap(t *testing.T) {
	tests := []struct {
		name string
		s    SliderDescriptor
		in   float64
		want float64
	}{
		{"continuous inside", SliderDescriptor{Min: 0, Max: 2}, 1.234, 1.234},
		{"clamp low", SliderDescriptor{Min: 0.1, Max: 2}, -3, 0.1},
		{"clamp high", SliderDescriptor{Min: 0, Max: 2}, 5, 2},
		{"integer step", SliderDescriptor{Min: 10, Max: 200, Step: 1}, 57.6, 58},
		{"coarse step", SliderDescriptor{Min: 0, Max: 1, Step: 0.25}, 0.3, 0.25},
		{"step never exceeds max", SliderDescriptor{Min: 0, Max: 1, Step: 0.3}, 1, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.Snap(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Snap(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldRangeNormalize(t *testing.T) {
	r := FieldRange{Min: 10, Max: 20}
	if got := r.Normalize(15); got != 0.5 {
		t.Errorf("Normalize(15) = %v, want 0.5", got)
	}
	if got := r.Normalize(50); got != 1 {
		t.Errorf("Normalize(50) = %v, want 1", got)
	}
	if got := (FieldRange{}).Normalize(3); got != 0 {
		t.Errorf("empty range Normalize = %v, want 0", got)
	}
}

func TestSectionHeight(t *testing.T) {
	theme := DefaultTheme()
	hidden := false

	s := SectionDescriptor{
		Title: "Stats",
		Fields: []FieldDescriptor{
			{Label: "a", Widget: WidgetText},
			{Label: "b", Widget: WidgetBar},
			{Label: "c", Widget: WidgetText, Visible: func() bool { return hidden }},
			{Widget: WidgetSpacer},
		},
	}
	want := 4 + theme.LineHeight + theme.LineHeight + (theme.LineHeight + 2) + 6
	if got := s.Height(theme); got != want {
		t.Errorf("Height = %d, want %d", got, want)
	}

	s.Visible = func() bool { return false }
	if got := s.Height(theme); got != 0 {
		t.Errorf("hidden section Height = %d, want 0", got)
	}
}

func TestOverlayDefaults(t *testing.T) {
	reg := NewOverlayRegistry()

	if !reg.IsEnabled(OverlayPheromones) {
		t.Error("pheromones should start enabled")
	}
	if reg.IsEnabled(OverlayPaths) {
		t.Error("paths should start disabled")
	}
	if got := len(reg.ByCategory(CategoryAnts)); got != 2 {
		t.Errorf("ants overlays = %d, want 2", got)
	}
}

func TestOverlayToggleExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "a", Category: "x"})
	reg.Register(OverlayDescriptor{ID: "b", Category: "x", Exclusive: []OverlayID{"a"}})

	if !reg.Toggle("a") {
		t.Fatal("toggle a should enable it")
	}
	reg.Toggle("b")
	if reg.IsEnabled("a") {
		t.Error("enabling b should disable a")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay should report false")
	}
}

func TestOverlayKeyPressScopedToCategory(t *testing.T) {
	reg := NewOverlayRegistry()

	// P belongs to ants; pressing it while viewing life does nothing
	if _, _, ok := reg.HandleKeyPress(rl.KeyP, CategoryLife, CategoryGlobal); ok {
		t.Error("P should not toggle outside the ants demo")
	}

	id, state, ok := reg.HandleKeyPress(rl.KeyP, CategoryAnts)
	if !ok || id != OverlayPheromones || state {
		t.Errorf("HandleKeyPress = (%v, %v, %v), want (pheromones, false, true)", id, state, ok)
	}

	keys := reg.Keys(CategoryBoids)
	if len(keys) != 2 {
		t.Errorf("boids keys = %v, want 2", keys)
	}
}

func TestBarFill(t *testing.T) {
	tests := []struct {
		value float64
		want  int32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 50},
		{1, 100},
		{2, 100},
	}
	for _, tt := range tests {
		if got := barFill(tt.value, DefaultRange(), 100); got != tt.want {
			t.Errorf("barFill(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestCenteredFill(t *testing.T) {
	tests := []struct {
		name         string
		value        float64
		rng          FieldRange
		offset, fill int32
	}{
		{"zero", 0, CenteredRange(), 0, 0},
		{"positive half", 0.5, CenteredRange(), 0, 25},
		{"negative full", -1, CenteredRange(), -50, 50},
		{"clipped", 3, CenteredRange(), 0, 50},
		{"empty range", 1, FieldRange{}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, fill := centeredFill(tt.value, tt.rng, 50)
			if offset != tt.offset || fill != tt.fill {
				t.Errorf("centeredFill = (%d, %d), want (%d, %d)", offset, fill, tt.offset, tt.fill)
			}
		})
	}
}

func TestHUDLines(t *testing.T) {
	d := HUDData{Demo: "life", Tick: 12345, Speed: 2, FPS: 60, MetricName: "population", Metric: 42}
	lines := d.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2 without status", len(lines))
	}
	if lines[1] != "Tick: 12,345 | Speed: 2x | FPS: 60" {
		t.Errorf("tick line = %q", lines[1])
	}

	d.Status = "click to toggle"
	if got := d.Lines(); len(got) != 3 || got[2] != "click to toggle" {
		t.Errorf("status line missing: %v", got)
	}
}
