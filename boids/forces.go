package boids

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/geom"
)

// Agent is a read-only copy of one boid taken at the start of a tick.
type Agent struct {
	Entity   ecs.Entity
	Pos      geom.Vec
	Vel      geom.Vec
	Acc      geom.Vec
	MaxSpeed float64
	MaxForce float64
	Predator bool
}

// steer turns a desired direction into a bounded steering force.
func steer(desired geom.Vec, a Agent) geom.Vec {
	if desired == (geom.Vec{}) {
		return geom.Vec{}
	}
	force := geom.Sub(geom.Normalize(desired, a.MaxSpeed), a.Vel)
	return geom.Limit(force, a.MaxForce)
}

// Alignment steers toward the mean velocity of flockmates.
func Alignment(a Agent, agents []Agent, neighbors []int) geom.Vec {
	var sum geom.Vec
	n := 0
	for _, i := range neighbors {
		if agents[i].Predator {
			continue
		}
		sum = geom.Add(sum, agents[i].Vel)
		n++
	}
	if n == 0 {
		return geom.Vec{}
	}
	return steer(geom.Scale(1/float64(n), sum), a)
}

// Cohesion steers toward the centroid of flockmates.
func Cohesion(a Agent, agents []Agent, neighbors []int) geom.Vec {
	var sum geom.Vec
	n := 0
	for _, i := range neighbors {
		if agents[i].Predator {
			continue
		}
		sum = geom.Add(sum, agents[i].Pos)
		n++
	}
	if n == 0 {
		return geom.Vec{}
	}
	return steer(geom.Sub(geom.Scale(1/float64(n), sum), a.Pos), a)
}

// Separation steers away from flockmates closer than rng, closer ones pushing harder.
func Separation(a Agent, agents []Agent, neighbors []int, rng float64) geom.Vec {
	var sum geom.Vec
	n := 0
	for _, i := range neighbors {
		o := agents[i]
		if o.Predator {
			continue
		}
		d := geom.Distance(a.Pos, o.Pos)
		if d >= rng {
			continue
		}
		sum = geom.Add(sum, geom.Normalize(geom.Sub(a.Pos, o.Pos), 1/math.Max(d, 0.1)))
		n++
	}
	if n == 0 {
		return geom.Vec{}
	}
	return steer(geom.Scale(1/float64(n), sum), a)
}

// Flee steers away from predators closer than rng.
func Flee(a Agent, agents []Agent, neighbors []int, rng float64) geom.Vec {
	var sum geom.Vec
	for _, i := range neighbors {
		o := agents[i]
		if !o.Predator {
			continue
		}
		d := geom.Distance(a.Pos, o.Pos)
		if d >= rng {
			continue
		}
		sum = geom.Add(sum, geom.Normalize(geom.Sub(a.Pos, o.Pos), 1/math.Max(d, 0.1)))
	}
	return steer(sum, a)
}

// Chase seeks the nearest regular boid closer than rng, or returns zero.
func Chase(a Agent, agents []Agent, neighbors []int, rng float64) geom.Vec {
	best := -1
	bestD := rng
	for _, i := range neighbors {
		o := agents[i]
		if o.Predator {
			continue
		}
		if d := geom.Distance(a.Pos, o.Pos); d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return geom.Vec{}
	}
	return steer(geom.Sub(agents[best].Pos, a.Pos), a)
}

// Pointer pulls toward or pushes away from p, fading linearly to zero at radius.
func Pointer(a Agent, p geom.Vec, mode MouseMode, radius float64) geom.Vec {
	d := geom.Distance(a.Pos, p)
	if mode == MouseNone || d >= radius {
		return geom.Vec{}
	}
	dir := geom.Sub(p, a.Pos)
	if mode == MouseRepel {
		dir = geom.Sub(a.Pos, p)
	}
	return geom.Normalize(dir, a.MaxForce*(1-d/radius))
}

// forces sums every steering contribution for agent idx.
func (f *Flock) forces(idx int, neighbors []int) geom.Vec {
	s := f.settings
	a := f.agents[idx]
	reach := s.VisualRange * s.PredatorRangeFactor

	if a.Predator {
		return geom.Scale(s.PredatorForce, Chase(a, f.agents, neighbors, reach))
	}

	visible := f.within(neighbors, a.Pos, s.VisualRange)
	total := geom.Scale(s.AlignmentForce, Alignment(a, f.agents, visible))
	total = geom.Add(total, geom.Scale(s.CohesionForce, Cohesion(a, f.agents, visible)))
	total = geom.Add(total, geom.Scale(s.SeparationForce, Separation(a, f.agents, neighbors, s.SeparationRange)))
	total = geom.Add(total, geom.Scale(s.PredatorForce, Flee(a, f.agents, neighbors, reach)))
	if f.hasPointer {
		total = geom.Add(total, geom.Scale(s.MouseForce, Pointer(a, f.pointer, s.MouseMode, s.MouseRadius)))
	}
	return total
}
