// Package ants simulates a foraging ant colony over a two-channel pheromone
// grid. Ants are ark ECS entities; the grid is a flat slice of cells.
package ants

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/telemetry"
)

// Ant is a read-only copy of one forager.
type Ant struct {
	Entity  ecs.Entity
	ID      int
	Pos     geom.Vec
	Heading float64
	HasFood bool
	Trips   int
	Path    []geom.Vec
}

type deposit struct {
	cell CellPos
	home bool
	at   geom.Vec
}

// Colony owns the grid and the ECS world holding every ant.
type Colony struct {
	settings Settings
	rng      *rand.Rand
	grid     *Grid

	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Forager]
	filter *ecs.Filter2[components.Position, components.Forager]

	deposits   []deposit
	tick       int
	deliveries int
	history    *telemetry.History[Stats]
}

// NewColony creates a colony with an empty grid and the configured ants at the nest.
func NewColony(s Settings, seed int64) *Colony {
	c := &Colony{rng: rand.New(rand.NewSource(seed))}
	c.settings = s.Clamp()
	c.history = telemetry.NewHistory[Stats](c.settings.HistorySize)
	c.Reset()
	return c
}

// Settings returns the clamped settings in force.
func (c *Colony) Settings() Settings { return c.settings }

// SetSettings applies new behavior settings. Grid size and ant count take effect on Reset.
func (c *Colony) SetSettings(s Settings) { c.settings = s.Clamp() }

// Reset rebuilds the grid and respawns every ant at the nest.
func (c *Colony) Reset() {
	c.grid = NewGrid(c.settings.GridSize)
	c.ClearAnts()
	for i := 0; i < c.settings.NumAnts; i++ {
		c.Spawn(c.grid.Nest(), c.rng.Float64()*2*math.Pi, false)
	}
	c.tick = 0
	c.deliveries = 0
	c.history.Clear()
}

// ClearAnts removes every ant, leaving the grid untouched.
func (c *Colony) ClearAnts() {
	c.world = ecs.NewWorld()
	c.mapper = ecs.NewMap2[components.Position, components.Forager](c.world)
	c.filter = ecs.NewFilter2[components.Position, components.Forager](c.world)
}

// Spawn adds one ant.
func (c *Colony) Spawn(pos geom.Vec, heading float64, hasFood bool) ecs.Entity {
	p := components.PositionOf(pos)
	f := components.Forager{
		ID:      c.Len(),
		HasFood: hasFood,
		Heading: geom.NormalizeHeading(heading),
		Path:    []components.Position{p},
	}
	return c.mapper.NewEntity(&p, &f)
}

// Len returns the number of ants.
func (c *Colony) Len() int {
	n := 0
	query := c.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Tick returns the number of steps since the last reset.
func (c *Colony) Tick() int { return c.tick }

// Deliveries returns the food units brought to the nest since the last reset.
func (c *Colony) Deliveries() int { return c.deliveries }

// Grid returns a copy of the pheromone grid.
func (c *Colony) Grid() *Grid { return c.grid.Clone() }

// Step advances the colony one tick. Every ant senses the grid as it stood at
// the start of the tick; deposits land afterwards, then the whole grid evaporates.
func (c *Colony) Step() {
	c.deposits = c.deposits[:0]

	query := c.filter.Query()
	for query.Next() {
		pos, f := query.Get()
		c.updateAnt(pos, f)
	}

	for _, d := range c.deposits {
		c.grid.Deposit(d.cell.X, d.cell.Y, d.home, c.depositAmount(d.at, d.home), c.settings.PheromoneCap)
	}
	c.grid.Evaporate(c.settings.Evaporation)

	c.tick++
	c.history.Push(c.Stats())
}

// Ants returns a copy of every ant's current state.
func (c *Colony) Ants() []Ant {
	var out []Ant
	query := c.filter.Query()
	for query.Next() {
		pos, f := query.Get()
		path := make([]geom.Vec, len(f.Path))
		for i, p := range f.Path {
			path[i] = p.Vec()
		}
		out = append(out, Ant{
			Entity:  query.Entity(),
			ID:      f.ID,
			Pos:     pos.Vec(),
			Heading: f.Heading,
			HasFood: f.HasFood,
			Trips:   f.Trips,
			Path:    path,
		})
	}
	return out
}

// LastStats returns the stats recorded by the latest Step.
func (c *Colony) LastStats() Stats {
	s, _ := c.history.Last()
	return s
}

// History returns the per-tick stats recorded since the last reset, oldest first.
func (c *Colony) History() []Stats { return c.history.Items() }
