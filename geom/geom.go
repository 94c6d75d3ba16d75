// Package geom provides the 2D vector and scalar helpers shared by the agent engines.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector.
type Vec = r2.Vec

// Add returns a + b.
func Add(a, b Vec) Vec { return r2.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Vec) Vec { return r2.Sub(a, b) }

// Scale returns f * v.
func Scale(f float64, v Vec) Vec { return r2.Scale(f, v) }

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec) float64 {
	return r2.Norm(r2.Sub(b, a))
}

// DistanceSq returns the squared distance between two points.
func DistanceSq(a, b Vec) float64 {
	return r2.Norm2(r2.Sub(b, a))
}

// Magnitude returns the length of v.
func Magnitude(v Vec) float64 {
	return r2.Norm(v)
}

// Normalize scales v to the given magnitude. A zero vector stays zero.
func Normalize(v Vec, magnitude float64) Vec {
	n := r2.Norm(v)
	if n == 0 || math.IsNaN(n) {
		return Vec{}
	}
	return r2.Scale(magnitude/n, v)
}

// Unit returns v scaled to length 1, or the zero vector.
func Unit(v Vec) Vec {
	return Normalize(v, 1)
}

// Limit clamps the magnitude of v to max while preserving direction.
func Limit(v Vec, max float64) Vec {
	if max <= 0 {
		return Vec{}
	}
	lenSq := r2.Norm2(v)
	if lenSq <= max*max {
		return v
	}
	return r2.Scale(max/math.Sqrt(lenSq), v)
}

// FromAngle returns the unit vector pointing along angle (radians).
func FromAngle(angle float64) Vec {
	return Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Bearing returns the angle of the vector from a to b.
func Bearing(a, b Vec) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Angle normalization

// WrapAngle wraps an angle to [-Pi, Pi].
func WrapAngle(angle float64) float64 {
	if math.IsInf(angle, 0) || math.IsNaN(angle) {
		return 0
	}
	angle = math.Mod(angle, 2*math.Pi)
	if angle > math.Pi {
		angle -= 2 * math.Pi
	} else if angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// NormalizeHeading wraps a heading to [0, 2*Pi).
func NormalizeHeading(h float64) float64 {
	const twoPi = 2 * math.Pi
	if math.IsInf(h, 0) || math.IsNaN(h) {
		return 0
	}
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	if h >= twoPi {
		h -= twoPi
	}
	return h
}

// Clamp functions for common value ranges

// Clamp clamps v to [lo, hi]. NaN clamps to lo.
func Clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// ClampInt clamps v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap returns the positive modulo of x by size (Go's math.Mod can return negative).
func Wrap(x, size float64) float64 {
	if size <= 0 {
		return 0
	}
	x = math.Mod(x, size)
	if x < 0 {
		x += size
	}
	// math.Mod(-tiny, size)+size can round up to size.
	if x >= size {
		x = 0
	}
	return x
}
