package gallery

import (
	"github.com/pthm-cable/menagerie/boids"
	"github.com/pthm-cable/menagerie/telemetry"
)

// BoidsDemo runs the flocking simulation.
type BoidsDemo struct {
	flock *boids.Flock
	// regroupings counts ticks on which the number of groups changed
	regroupings int
	lastGroups  int
}

// NewBoidsDemo builds a flock with the configured population.
func NewBoidsDemo(s boids.Settings, seed int64) *BoidsDemo {
	d := &BoidsDemo{flock: boids.NewFlock(s, seed)}
	d.lastGroups = d.flock.Stats().Groups
	return d
}

func (d *BoidsDemo) Name() string { return DemoBoids }

func (d *BoidsDemo) Step() {
	d.flock.Step()
	if g := d.flock.LastStats().Groups; g != d.lastGroups {
		d.regroupings++
		d.lastGroups = g
	}
}

func (d *BoidsDemo) Tick() int { return d.flock.Tick() }

func (d *BoidsDemo) Reset() {
	d.flock.Reset()
	d.regroupings = 0
	d.lastGroups = d.flock.Stats().Groups
}

func (d *BoidsDemo) MetricName() string { return "alignment" }
func (d *BoidsDemo) Metric() float64    { return d.flock.LastStats().Alignment }

func (d *BoidsDemo) DrainEvents() int {
	n := d.regroupings
	d.regroupings = 0
	return n
}

func (d *BoidsDemo) WriteSample(om *telemetry.OutputManager) error {
	return telemetry.WriteSample(om, d.flock.LastStats())
}

// Flock exposes the wrapped flock for drawing and pointer input.
func (d *BoidsDemo) Flock() *boids.Flock { return d.flock }
