package gallery

import (
	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/telemetry"
)

// AntsDemo runs the ant colony.
type AntsDemo struct {
	colony *ants.Colony
	rocks  config.RocksConfig
	piles  []config.FoodPile
	seed   int64

	delivered int // deliveries already reported as events
}

// NewAntsDemo builds a colony, scattering rocks when enabled.
func NewAntsDemo(c config.AntsConfig, seed int64) *AntsDemo {
	d := &AntsDemo{
		colony: ants.NewColony(c.Settings, seed),
		rocks:  c.Rocks,
		piles:  c.FoodPiles,
		seed:   seed,
	}
	d.Reset()
	return d
}

func (d *AntsDemo) Name() string { return DemoAnts }
func (d *AntsDemo) Step()        { d.colony.Step() }
func (d *AntsDemo) Tick() int    { return d.colony.Tick() }

func (d *AntsDemo) Reset() {
	d.colony.Reset()
	if d.rocks.Enabled {
		d.colony.ScatterRocks(d.rocks.RockField(d.seed))
	}
	for _, p := range d.piles {
		d.colony.PlaceFoodPile(p.X, p.Y, p.Radius)
	}
	d.delivered = 0
}

func (d *AntsDemo) MetricName() string { return "food_carriers" }
func (d *AntsDemo) Metric() float64    { return float64(d.colony.LastStats().FoodCarriers) }

func (d *AntsDemo) DrainEvents() int {
	total := d.colony.Deliveries()
	n := total - d.delivered
	d.delivered = total
	return n
}

func (d *AntsDemo) WriteSample(om *telemetry.OutputManager) error {
	return telemetry.WriteSample(om, d.colony.LastStats())
}

// Colony exposes the wrapped colony for drawing and editing.
func (d *AntsDemo) Colony() *ants.Colony { return d.colony }

// Efficiency rates the colony's latest stats.
func (d *AntsDemo) Efficiency() ants.Efficiency {
	return ants.EvaluateEfficiency(d.colony.LastStats())
}
