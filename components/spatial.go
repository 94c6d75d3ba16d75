package components

import "github.com/pthm-cable/menagerie/geom"

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity per tick.
type Velocity struct {
	X, Y float64
}

// Acceleration holds the steering force applied on the last tick.
type Acceleration struct {
	X, Y float64
}

func (p Position) Vec() geom.Vec     { return geom.Vec{X: p.X, Y: p.Y} }
func (v Velocity) Vec() geom.Vec     { return geom.Vec{X: v.X, Y: v.Y} }
func (a Acceleration) Vec() geom.Vec { return geom.Vec{X: a.X, Y: a.Y} }

func PositionOf(v geom.Vec) Position         { return Position{X: v.X, Y: v.Y} }
func VelocityOf(v geom.Vec) Velocity         { return Velocity{X: v.X, Y: v.Y} }
func AccelerationOf(v geom.Vec) Acceleration { return Acceleration{X: v.X, Y: v.Y} }
