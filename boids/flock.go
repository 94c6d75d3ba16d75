// Package boids implements a Reynolds flock with optional predators and a
// pointer attractor on a toroidal canvas. Agents are ark ECS entities.
package boids

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/telemetry"
)

// Flock owns the ECS world holding every boid.
type Flock struct {
	settings Settings
	rng      *rand.Rand

	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Acceleration, components.Boid]
	filter *ecs.Filter4[components.Position, components.Velocity, components.Acceleration, components.Boid]

	grid      *SpatialGrid
	agents    []Agent
	neighbors []int
	visible   []int

	pointer    geom.Vec
	hasPointer bool

	tick    int
	history *telemetry.History[Stats]
}

// NewFlock creates a flock and spawns the configured population.
func NewFlock(s Settings, seed int64) *Flock {
	f := &Flock{rng: rand.New(rand.NewSource(seed))}
	f.settings = s.Clamp()
	f.history = telemetry.NewHistory[Stats](f.settings.HistorySize)
	f.Reset()
	return f
}

// Settings returns the clamped settings in force.
func (f *Flock) Settings() Settings { return f.settings }

// SetSettings applies new settings. Population changes take effect on the next Reset.
func (f *Flock) SetSettings(s Settings) {
	f.settings = s.Clamp()
	f.grid = NewSpatialGrid(f.settings.Width, f.settings.Height, f.settings.VisualRange)
}

// Reset replaces the world with a fresh random population.
func (f *Flock) Reset() {
	f.Clear()
	s := f.settings
	for i := 0; i < s.NumBoids; i++ {
		f.spawnRandom(false)
	}
	for i := 0; i < s.NumPredators; i++ {
		f.spawnRandom(true)
	}
	f.history.Clear()
}

// Clear removes every boid.
func (f *Flock) Clear() {
	f.world = ecs.NewWorld()
	f.mapper = ecs.NewMap4[components.Position, components.Velocity, components.Acceleration, components.Boid](f.world)
	f.filter = ecs.NewFilter4[components.Position, components.Velocity, components.Acceleration, components.Boid](f.world)
	f.grid = NewSpatialGrid(f.settings.Width, f.settings.Height, f.settings.VisualRange)
	f.tick = 0
}

// Scatter gives every boid a random velocity of up to ScatterFactor times its top speed.
func (f *Flock) Scatter() {
	query := f.filter.Query()
	for query.Next() {
		_, vel, _, b := query.Get()
		limit := b.MaxSpeed * f.settings.ScatterFactor
		*vel = components.Velocity{
			X: (f.rng.Float64()*2 - 1) * limit,
			Y: (f.rng.Float64()*2 - 1) * limit,
		}
	}
}

func (f *Flock) spawnRandom(predator bool) ecs.Entity {
	s := f.settings
	speed := s.MaxSpeed
	if predator {
		speed *= s.PredatorBoost
	}
	pos := geom.Vec{X: f.rng.Float64() * s.Width, Y: f.rng.Float64() * s.Height}
	vel := geom.Vec{X: (f.rng.Float64()*2 - 1) * speed, Y: (f.rng.Float64()*2 - 1) * speed}
	return f.Spawn(pos, vel, predator)
}

// Spawn adds one boid. Predators get PredatorBoost times the speed and force limits.
func (f *Flock) Spawn(pos, vel geom.Vec, predator bool) ecs.Entity {
	s := f.settings
	b := components.Boid{MaxSpeed: s.MaxSpeed, MaxForce: s.MaxForce, IsPredator: predator}
	if predator {
		b.MaxSpeed *= s.PredatorBoost
		b.MaxForce *= s.PredatorBoost
	}
	p := components.PositionOf(pos)
	v := components.VelocityOf(vel)
	a := components.Acceleration{}
	return f.mapper.NewEntity(&p, &v, &a, &b)
}

// SetPointer places the pointer used by the attract and repel modes.
func (f *Flock) SetPointer(p geom.Vec) {
	f.pointer = p
	f.hasPointer = true
}

// ClearPointer removes the pointer.
func (f *Flock) ClearPointer() { f.hasPointer = false }

// Len returns the number of boids, predators included.
func (f *Flock) Len() int {
	n := 0
	query := f.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Tick returns the number of steps since the last reset.
func (f *Flock) Tick() int { return f.tick }

// snapshot copies every boid into f.agents and rebuilds the spatial grid.
func (f *Flock) snapshot() {
	f.agents = f.agents[:0]
	f.grid.Clear()
	query := f.filter.Query()
	for query.Next() {
		pos, vel, acc, b := query.Get()
		a := Agent{
			Entity:   query.Entity(),
			Pos:      pos.Vec(),
			Vel:      vel.Vec(),
			Acc:      acc.Vec(),
			MaxSpeed: b.MaxSpeed,
			MaxForce: b.MaxForce,
			Predator: b.IsPredator,
		}
		f.grid.Insert(len(f.agents), a.Pos)
		f.agents = append(f.agents, a)
	}
}

// within filters idx down to agents strictly closer than r to p.
func (f *Flock) within(idx []int, p geom.Vec, r float64) []int {
	f.visible = f.visible[:0]
	for _, i := range idx {
		if geom.DistanceSq(p, f.agents[i].Pos) < r*r {
			f.visible = append(f.visible, i)
		}
	}
	return f.visible
}

// Step advances the flock one tick. Forces are computed against the state at
// the start of the tick, then applied to every boid at once.
func (f *Flock) Step() {
	s := f.settings
	f.snapshot()

	reach := max(s.VisualRange*s.PredatorRangeFactor, s.SeparationRange)
	for i := range f.agents {
		f.neighbors = f.grid.QueryRadiusInto(f.neighbors[:0], f.agents[i].Pos, reach, i, f.agents)
		f.agents[i].Acc = f.forces(i, f.neighbors)
	}

	for _, a := range f.agents {
		pos, vel, acc, _ := f.mapper.Get(a.Entity)
		v := geom.Limit(geom.Add(a.Vel, a.Acc), a.MaxSpeed)
		p := geom.Add(a.Pos, v)
		*vel = components.VelocityOf(v)
		*acc = components.AccelerationOf(a.Acc)
		*pos = components.Position{X: geom.Wrap(p.X, s.Width), Y: geom.Wrap(p.Y, s.Height)}
	}

	f.tick++
	f.history.Push(f.Stats())
}

// Agents returns a copy of every boid's current state.
func (f *Flock) Agents() []Agent {
	f.snapshot()
	out := make([]Agent, len(f.agents))
	copy(out, f.agents)
	return out
}

// LastStats returns the stats recorded by the latest Step.
func (f *Flock) LastStats() Stats {
	s, _ := f.history.Last()
	return s
}

// History returns the per-tick stats recorded since the last reset, oldest first.
func (f *Flock) History() []Stats { return f.history.Items() }
