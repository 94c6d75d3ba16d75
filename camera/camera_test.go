package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/menagerie/geom"
)

func near(a, b geom.Vec) bool {
	return math.Abs(a.X-b.X) < 0.01 && math.Abs(a.Y-b.Y) < 0.01
}

func TestNewFitsWorld(t *testing.T) {
	// 100x100 grid into a 600x400 viewport: limited by height
	cam := New(0, 0, 600, 400, 100, 100, false)

	if cam.Zoom != 4 || cam.MinZoom != 4 {
		t.Errorf("zoom = %v (min %v), want 4", cam.Zoom, cam.MinZoom)
	}
	if cam.Center != (geom.Vec{X: 50, Y: 50}) {
		t.Errorf("center = %v, want (50,50)", cam.Center)
	}

	// World corners land inside the viewport, centered horizontally
	tl := cam.WorldToScreen(geom.Vec{})
	if !near(tl, geom.Vec{X: 100, Y: 0}) {
		t.Errorf("top-left maps to %v, want (100,0)", tl)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(20, 10, 800, 600, 800, 600, true)

	for _, s := range []geom.Vec{{X: 420, Y: 310}, {X: 120, Y: 110}, {X: 800, Y: 590}} {
		w, ok := cam.ScreenToWorld(s)
		if !ok {
			t.Fatalf("ScreenToWorld(%v) outside", s)
		}
		if back := cam.WorldToScreen(w); !near(back, s) {
			t.Errorf("roundtrip failed: %v -> %v -> %v", s, w, back)
		}
	}
}

func TestScreenToWorldBounds(t *testing.T) {
	cam := New(0, 0, 600, 400, 100, 100, false)

	tests := []struct {
		name   string
		screen geom.Vec
		ok     bool
	}{
		{"inside world", geom.Vec{X: 300, Y: 200}, true},
		{"letterbox margin", geom.Vec{X: 50, Y: 200}, false},
		{"outside viewport", geom.Vec{X: 700, Y: 200}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := cam.ScreenToWorld(tt.screen); ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
		})
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(0, 0, 800, 600, 800, 600, true)
	cam.SetZoom(2)
	cam.Center = geom.Vec{X: 50, Y: 300}

	// Entity at the far right of the world is closer going left
	s := cam.WorldToScreen(geom.Vec{X: 780, Y: 300})
	if s.X >= 400 {
		t.Errorf("expected entity left of screen center, got x=%v", s.X)
	}
}

func TestPan(t *testing.T) {
	wrapped := New(0, 0, 800, 600, 800, 600, true)
	wrapped.Center.X = 100
	wrapped.Pan(-200, 0)
	if wrapped.Center.X != 700 {
		t.Errorf("wrapped pan X = %v, want 700", wrapped.Center.X)
	}

	bounded := New(0, 0, 800, 600, 100, 100, false)
	bounded.Pan(-10000, 0)
	if bounded.Center.X != 0 {
		t.Errorf("bounded pan X = %v, want 0", bounded.Center.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(0, 0, 800, 600, 1600, 800, false)

	// MinZoom = min(800/1600, 600/800) = 0.5
	if math.Abs(cam.MinZoom-0.5) > 1e-9 {
		t.Errorf("MinZoom = %v, want 0.5", cam.MinZoom)
	}

	cam.SetZoom(0.1)
	if cam.Zoom != 0.5 {
		t.Errorf("zoom clamped to %v, want 0.5", cam.Zoom)
	}
	cam.ZoomBy(100)
	if cam.Zoom != 4 {
		t.Errorf("zoom clamped to %v, want 4", cam.Zoom)
	}
}

func TestGhostPositions(t *testing.T) {
	cam := New(0, 0, 800, 600, 800, 600, true)

	if g := cam.GhostPositions(geom.Vec{X: 400, Y: 300}, 5); len(g) != 0 {
		t.Errorf("center has ghosts %v", g)
	}

	// Center is (400,300); a point just right of it is at dx=+398
	g := cam.GhostPositions(geom.Vec{X: 798, Y: 300}, 5)
	if len(g) != 1 || math.Abs(g[0].X-(-2)) > 0.01 {
		t.Errorf("edge ghost = %v, want x=-2", g)
	}

	corner := cam.GhostPositions(geom.Vec{X: 798, Y: 598}, 5)
	if len(corner) != 3 {
		t.Errorf("corner ghosts = %d, want 3", len(corner))
	}

	bounded := New(0, 0, 800, 600, 800, 600, false)
	if g := bounded.GhostPositions(geom.Vec{X: 798, Y: 300}, 5); g != nil {
		t.Error("bounded world should not ghost")
	}
}

func TestReset(t *testing.T) {
	cam := New(0, 0, 800, 600, 800, 600, true)
	cam.Center = geom.Vec{X: 10, Y: 10}
	cam.SetZoom(3)

	cam.Reset()
	if cam.Center != (geom.Vec{X: 400, Y: 300}) || cam.Zoom != 1 {
		t.Errorf("after reset center=%v zoom=%v", cam.Center, cam.Zoom)
	}
}
