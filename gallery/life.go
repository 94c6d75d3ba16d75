package gallery

import (
	"github.com/pthm-cable/menagerie/life"
	"github.com/pthm-cable/menagerie/telemetry"
)

// LifeDemo runs Conway's Game of Life.
type LifeDemo struct {
	sim    *life.Simulation
	births int
}

// NewLifeDemo builds the simulation and seeds it.
func NewLifeDemo(s life.Settings, seed int64) *LifeDemo {
	d := &LifeDemo{sim: life.NewSimulation(s, seed)}
	d.Reset()
	return d
}

func (d *LifeDemo) Name() string { return DemoLife }

func (d *LifeDemo) Step() {
	prev := d.sim.Grid()
	next := d.sim.Step()
	for r := 0; r < next.Rows(); r++ {
		for c := 0; c < next.Cols(); c++ {
			if next.Alive(r, c) && !prev.Alive(r, c) {
				d.births++
			}
		}
	}
}

func (d *LifeDemo) Tick() int { return d.sim.Generation() }

// Reset loads the configured scenario, or a random soup when none is set.
func (d *LifeDemo) Reset() {
	if d.sim.Settings().Scenario != "" {
		d.sim.Reset()
	} else {
		d.sim.Randomize()
	}
	d.births = 0
}

func (d *LifeDemo) MetricName() string { return "population" }
func (d *LifeDemo) Metric() float64    { return float64(d.sim.Grid().CountLive()) }

func (d *LifeDemo) DrainEvents() int {
	n := d.births
	d.births = 0
	return n
}

func (d *LifeDemo) WriteSample(om *telemetry.OutputManager) error {
	h := d.sim.History()
	if len(h) == 0 {
		return nil
	}
	return telemetry.WriteSample(om, h[len(h)-1])
}

// Simulation exposes the wrapped simulation for drawing and editing.
func (d *LifeDemo) Simulation() *life.Simulation { return d.sim }
