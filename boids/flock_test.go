package boids

import (
	"math"
	"testing"

	"github.com/pthm-cable/menagerie/geom"
)

func idleSettings() Settings {
	s := DefaultSettings()
	s.NumBoids = 0
	s.NumPredators = 0
	s.AlignmentForce = 0
	s.CohesionForce = 0
	s.SeparationForce = 0
	s.PredatorForce = 0
	s.MouseForce = 0
	return s
}

func finite(v geom.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func TestIdleFlockMovesStraight(t *testing.T) {
	f := NewFlock(idleSettings(), 1)
	f.Spawn(geom.Vec{X: 100, Y: 100}, geom.Vec{X: 1, Y: 0.5}, false)
	f.Spawn(geom.Vec{X: 120, Y: 110}, geom.Vec{X: -0.5, Y: 2}, false)

	for i := 0; i < 10; i++ {
		f.Step()
	}

	want := map[geom.Vec]geom.Vec{
		{X: 1, Y: 0.5}:  {X: 110, Y: 105},
		{X: -0.5, Y: 2}: {X: 115, Y: 130},
	}
	for _, a := range f.Agents() {
		pos, ok := want[a.Vel]
		if !ok {
			t.Fatalf("velocity changed to %v", a.Vel)
		}
		if geom.Distance(a.Pos, pos) > 1e-9 {
			t.Errorf("position %v, want %v", a.Pos, pos)
		}
	}
}

func TestWrapAtCanvasEdge(t *testing.T) {
	f := NewFlock(idleSettings(), 1)
	f.Spawn(geom.Vec{X: 798, Y: 598}, geom.Vec{X: 2, Y: 2}, false)
	f.Step()

	a := f.Agents()[0]
	if a.Pos.X != 0 || a.Pos.Y != 0 {
		t.Errorf("expected wrap to (0,0), got %v", a.Pos)
	}

	f.Step()
	if a := f.Agents()[0]; a.Pos.X != 2 || a.Pos.Y != 2 {
		t.Errorf("expected (2,2) after wrap, got %v", a.Pos)
	}
}

func TestEmptyFlockStats(t *testing.T) {
	f := NewFlock(idleSettings(), 1)
	st := f.Stats()
	if st.AverageSpeed != 0 || st.Alignment != 0 || st.Groups != 0 || st.Boids != 0 {
		t.Errorf("expected zero stats, got %+v", st)
	}
	f.Step()
	if len(f.History()) != 1 {
		t.Errorf("expected one history entry, got %d", len(f.History()))
	}
}

func TestCoincidentBoidsStayFinite(t *testing.T) {
	s := DefaultSettings()
	s.NumBoids = 0
	f := NewFlock(s, 1)
	f.Spawn(geom.Vec{X: 300, Y: 300}, geom.Vec{}, false)
	f.Spawn(geom.Vec{X: 300, Y: 300}, geom.Vec{}, false)
	f.Spawn(geom.Vec{X: 300, Y: 300}, geom.Vec{}, true)

	for i := 0; i < 5; i++ {
		f.Step()
	}
	for _, a := range f.Agents() {
		if !finite(a.Pos) || !finite(a.Vel) || !finite(a.Acc) {
			t.Fatalf("non-finite agent %+v", a)
		}
	}
	if st := f.Stats(); math.IsNaN(st.Alignment) || math.IsNaN(st.AverageSpeed) {
		t.Errorf("NaN stats %+v", st)
	}
}

func TestSpeedLimit(t *testing.T) {
	s := DefaultSettings()
	s.NumPredators = 2
	f := NewFlock(s, 7)
	for i := 0; i < 50; i++ {
		f.Step()
	}
	for _, a := range f.Agents() {
		if geom.Magnitude(a.Vel) > a.MaxSpeed+1e-9 {
			t.Fatalf("speed %f exceeds %f", geom.Magnitude(a.Vel), a.MaxSpeed)
		}
	}
}

func TestGroupsAndAlignment(t *testing.T) {
	f := NewFlock(idleSettings(), 1)
	v := geom.Vec{X: 1}
	for _, p := range []geom.Vec{{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 120, Y: 100}, {X: 500, Y: 400}, {X: 510, Y: 400}} {
		f.Spawn(p, v, false)
	}
	f.Spawn(geom.Vec{X: 300, Y: 300}, geom.Vec{X: -1}, true)

	st := f.Stats()
	if st.Groups != 2 {
		t.Errorf("groups = %d, want 2", st.Groups)
	}
	if st.Boids != 5 || st.Predators != 1 {
		t.Errorf("counts = %d/%d, want 5/1", st.Boids, st.Predators)
	}
	if math.Abs(st.Alignment-1) > 1e-9 {
		t.Errorf("alignment = %f, want 1", st.Alignment)
	}
	if math.Abs(st.AverageSpeed-1) > 1e-9 {
		t.Errorf("avg speed = %f, want 1", st.AverageSpeed)
	}
}

func TestPredatorChaseAndFlee(t *testing.T) {
	s := idleSettings()
	s.PredatorForce = 1
	f := NewFlock(s, 1)
	f.Spawn(geom.Vec{X: 100, Y: 100}, geom.Vec{}, true)
	f.Spawn(geom.Vec{X: 130, Y: 100}, geom.Vec{}, false)
	f.Step()

	for _, a := range f.Agents() {
		if a.Predator && a.Vel.X <= 0 {
			t.Errorf("predator should chase right, vel %v", a.Vel)
		}
		if !a.Predator && a.Vel.X <= 0 {
			t.Errorf("boid should flee right, vel %v", a.Vel)
		}
	}
}

func TestChaseWithoutPreyIsZero(t *testing.T) {
	a := Agent{Pos: geom.Vec{X: 10, Y: 10}, MaxSpeed: 4, MaxForce: 0.2, Predator: true}
	if got := Chase(a, []Agent{a}, nil, 75); got != (geom.Vec{}) {
		t.Errorf("expected zero force, got %v", got)
	}
}

func TestPointerModes(t *testing.T) {
	tests := []struct {
		mode MouseMode
		sign float64
	}{
		{MouseAttract, 1},
		{MouseRepel, -1},
		{MouseNone, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s := idleSettings()
			s.MouseMode = tt.mode
			s.MouseForce = 1
			f := NewFlock(s, 1)
			f.Spawn(geom.Vec{X: 100, Y: 100}, geom.Vec{}, false)
			f.SetPointer(geom.Vec{X: 150, Y: 100})
			f.Step()

			vx := f.Agents()[0].Vel.X
			switch {
			case tt.sign > 0 && vx <= 0, tt.sign < 0 && vx >= 0, tt.sign == 0 && vx != 0:
				t.Errorf("mode %s: vel.x = %f", tt.mode, vx)
			}
		})
	}
}

func TestScatterBounded(t *testing.T) {
	s := DefaultSettings()
	f := NewFlock(s, 3)
	f.Scatter()
	limit := s.MaxSpeed * s.ScatterFactor * math.Sqrt2
	for _, a := range f.Agents() {
		if geom.Magnitude(a.Vel) > limit+1e-9 {
			t.Fatalf("scatter speed %f above %f", geom.Magnitude(a.Vel), limit)
		}
	}
}

func TestPresets(t *testing.T) {
	for _, key := range PresetKeys() {
		s, err := ApplyPreset(DefaultSettings(), key)
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		if s.NumBoids != 100 {
			t.Errorf("%s: NumBoids = %d", key, s.NumBoids)
		}
	}
	s, _ := ApplyPreset(DefaultSettings(), "tight")
	if s.CohesionForce != 1.5 || s.SeparationRange != 20 {
		t.Errorf("tight preset not applied: %+v", s)
	}
	if _, err := ApplyPreset(DefaultSettings(), "swarm"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestSettingsClamp(t *testing.T) {
	s := Settings{AlignmentForce: 5, VisualRange: 1, NumBoids: 1000, MaxSpeed: -1, MouseMode: "chase"}.Clamp()
	if s.AlignmentForce != 2 || s.VisualRange != 20 || s.NumBoids != 200 || s.MaxSpeed != 1 || s.MouseMode != MouseNone {
		t.Errorf("unexpected clamp result %+v", s)
	}
}
