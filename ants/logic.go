package ants

import (
	"math"

	"github.com/pthm-cable/menagerie/components"
	"github.com/pthm-cable/menagerie/geom"
)

// Sensor is one of the three forward-facing readings an ant takes each tick.
type Sensor struct {
	Angle     float64 // offset from the ant's heading
	Pheromone float64
	Obstacle  bool
}

// sense reads left, center and right sensors at SensorDistance ahead. Ants
// carrying food follow home pheromone, others follow food pheromone.
func (c *Colony) sense(pos geom.Vec, heading float64, hasFood bool) [3]Sensor {
	s := c.settings
	nearNest := geom.Distance(pos, c.grid.Nest()) < s.SensorDistance*s.NearNestFactor
	falloff := 1 / (1 + (s.SensorDistance/s.SensorFalloff)*(s.SensorDistance/s.SensorFalloff))

	var out [3]Sensor
	for i, off := range [3]float64{-s.SensorAngle, 0, s.SensorAngle} {
		at := geom.Add(pos, geom.Scale(s.SensorDistance, geom.FromAngle(heading+off)))
		_, cell := c.grid.CellAt(at)
		out[i] = Sensor{Angle: off, Obstacle: cell.Obstacle}
		if cell.Obstacle {
			continue
		}
		var level float64
		switch {
		case hasFood && !nearNest:
			level = cell.Home
		case !hasFood:
			level = cell.Food
		}
		out[i].Pheromone = level * falloff
	}
	return out
}

// steer picks the next heading from the sensor readings.
func (c *Colony) steer(pos geom.Vec, heading float64, hasFood bool, sensors [3]Sensor) float64 {
	s := c.settings

	strongest := 0.0
	blocked := false
	for _, r := range sensors {
		strongest = math.Max(strongest, r.Pheromone)
		blocked = blocked || r.Obstacle
	}

	norm := strongest
	if norm == 0 {
		norm = 1
	}
	var trail float64
	for _, r := range sensors {
		trail += r.Angle * (r.Pheromone / norm) * s.PheromoneStrength
	}

	randomScale := 1.0
	if strongest > 0.5 || hasFood {
		randomScale = 0.1
	}
	wander := (c.rng.Float64() - 0.5) * math.Pi * 0.5 * randomScale

	switch {
	case hasFood:
		home := geom.WrapAngle(geom.Bearing(pos, c.grid.Nest())-heading) * s.HomeBias
		heading += home*0.5 + trail*0.3 + wander*0.2
	case strongest > 0.2:
		heading += trail*0.6 + wander*0.4
	default:
		heading += trail*0.3 + wander*0.7
	}
	if blocked {
		heading += math.Pi
	}
	return geom.NormalizeHeading(heading)
}

// move advances AntSpeed along heading, staying put if the target is blocked or off-grid.
func (c *Colony) move(pos geom.Vec, heading float64) geom.Vec {
	next := geom.Add(pos, geom.Scale(c.settings.AntSpeed, geom.FromAngle(heading)))
	if _, cell := c.grid.CellAt(next); cell.Obstacle {
		return pos
	}
	return next
}

// arrive flips the carrying state when an ant reaches the nest with food or
// finds food while searching. It reports whether a delivery happened.
func (c *Colony) arrive(pos geom.Vec, f *components.Forager) bool {
	at, cell := c.grid.CellAt(pos)
	switch {
	case f.HasFood && cell.Nest:
		f.HasFood = false
		f.Trips++
		return true
	case !f.HasFood && cell.HasFood():
		f.HasFood = true
		c.grid.cell(at.X, at.Y).FoodLeft--
	}
	return false
}

func (c *Colony) updateAnt(pos *components.Position, f *components.Forager) {
	p := pos.Vec()
	sensors := c.sense(p, f.Heading, f.HasFood)
	f.Heading = c.steer(p, f.Heading, f.HasFood, sensors)
	next := c.move(p, f.Heading)

	if c.arrive(next, f) {
		c.deliveries++
	}

	last := f.Path[len(f.Path)-1].Vec()
	if geom.Distance(next, last) > c.settings.PathStep {
		f.Path = append(f.Path, components.PositionOf(next))
		if len(f.Path) > c.settings.PathLength {
			f.Path = f.Path[len(f.Path)-c.settings.PathLength:]
		}
	}
	*pos = components.PositionOf(next)

	cell, _ := c.grid.CellAt(next)
	c.deposits = append(c.deposits, deposit{cell: cell, home: f.HasFood, at: next})
}

// depositAmount scales PheromoneStrength up with distance from the nest.
func (c *Colony) depositAmount(at geom.Vec, home bool) float64 {
	s := c.settings
	amount := s.PheromoneStrength * math.Min(1, geom.Distance(at, c.grid.Nest())/s.DepositRamp)
	if home {
		amount *= s.HomeDepositBoost
	}
	return amount
}
