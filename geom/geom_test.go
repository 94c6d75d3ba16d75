package geom

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec
		mag  float64
		want Vec
	}{
		{"zero vector stays zero", Vec{}, 5, Vec{}},
		{"axis aligned", Vec{X: 3}, 2, Vec{X: 2}},
		{"3-4-5", Vec{X: 3, Y: 4}, 10, Vec{X: 6, Y: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.v, tt.mag)
			if math.IsNaN(got.X) || math.IsNaN(got.Y) {
				t.Fatalf("Normalize(%v, %v) produced NaN", tt.v, tt.mag)
			}
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Normalize(%v, %v) = %v, want %v", tt.v, tt.mag, got, tt.want)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	short := Vec{X: 0.1, Y: 0.1}
	if got := Limit(short, 1); got != short {
		t.Errorf("Limit should not change a short vector, got %v", got)
	}

	long := Limit(Vec{X: 30, Y: 40}, 5)
	if math.Abs(Magnitude(long)-5) > 1e-9 {
		t.Errorf("Limit magnitude = %v, want 5", Magnitude(long))
	}
	if math.Abs(long.X/long.Y-0.75) > 1e-9 {
		t.Errorf("Limit changed direction: %v", long)
	}

	if got := Limit(Vec{X: 1, Y: 1}, 0); got != (Vec{}) {
		t.Errorf("Limit with max 0 = %v, want zero", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		x, size, want float64
	}{
		{0, 100, 0},
		{100, 100, 0},
		{101.5, 100, 1.5},
		{-1, 100, 99},
		{-200, 100, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.x, tt.size); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap(%v, %v) = %v, want %v", tt.x, tt.size, got, tt.want)
		}
	}
}

func TestWrapAngle(t *testing.T) {
	for _, a := range []float64{-10, -math.Pi - 0.1, 0, 3, math.Pi + 0.1, 25} {
		got := WrapAngle(a)
		if got < -math.Pi || got > math.Pi {
			t.Errorf("WrapAngle(%v) = %v, outside [-pi, pi]", a, got)
		}
		if math.Abs(math.Sin(got)-math.Sin(a)) > 1e-9 || math.Abs(math.Cos(got)-math.Cos(a)) > 1e-9 {
			t.Errorf("WrapAngle(%v) = %v changed direction", a, got)
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	for _, h := range []float64{-0.5, 0, 7, -13} {
		got := NormalizeHeading(h)
		if got < 0 || got >= 2*math.Pi {
			t.Errorf("NormalizeHeading(%v) = %v, outside [0, 2pi)", h, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(math.NaN(), 1, 2) != 1 {
		t.Error("NaN should clamp to lower bound")
	}
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Error("Clamp returned wrong value")
	}
	if ClampInt(12, 0, 10) != 10 || ClampInt(-1, 0, 10) != 0 {
		t.Error("ClampInt returned wrong value")
	}
}
