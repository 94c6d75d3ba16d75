package gallery

import (
	"fmt"
	"image"

	"github.com/pthm-cable/menagerie/art"
	"github.com/pthm-cable/menagerie/telemetry"
)

// ArtSample is one row of art progress.
type ArtSample struct {
	Generation int     `csv:"generation"`
	Accepted   int     `csv:"accepted"`
	Fitness    float64 `csv:"fitness"`
}

// ArtDemo runs one genetic art generator.
type ArtDemo struct {
	gen      art.Generator
	target   image.Image
	last     art.Result
	accepted int
	improved int
}

// NewArtDemo builds a generator for style over target.
func NewArtDemo(style art.Style, target image.Image, s art.Settings, seed int64) (*ArtDemo, error) {
	gen, err := art.New(style, target, s, seed)
	if err != nil {
		return nil, fmt.Errorf("building %s generator: %w", style, err)
	}
	return &ArtDemo{gen: gen, target: target}, nil
}

func (d *ArtDemo) Name() string { return DemoArt }

func (d *ArtDemo) Step() {
	d.last = d.gen.Evolve()
	if d.last.Improved {
		d.accepted++
		d.improved++
	}
}

func (d *ArtDemo) Tick() int { return d.last.Generation }

func (d *ArtDemo) Reset() {
	d.gen.Reset()
	d.last = art.Result{}
	d.accepted = 0
	d.improved = 0
}

func (d *ArtDemo) MetricName() string { return "fitness" }
func (d *ArtDemo) Metric() float64    { return d.last.Fitness }

func (d *ArtDemo) DrainEvents() int {
	n := d.improved
	d.improved = 0
	return n
}

func (d *ArtDemo) WriteSample(om *telemetry.OutputManager) error {
	return telemetry.WriteSample(om, ArtSample{
		Generation: d.last.Generation,
		Accepted:   d.accepted,
		Fitness:    d.last.Fitness,
	})
}

// Generator exposes the wrapped generator.
func (d *ArtDemo) Generator() art.Generator { return d.gen }

// Target returns the image being approximated.
func (d *ArtDemo) Target() image.Image { return d.target }

// Apply swaps in new settings for the current style and restarts evolution.
func (d *ArtDemo) Apply(s art.Settings) error {
	if err := d.gen.Reinitialize(d.target, s); err != nil {
		return err
	}
	d.last = art.Result{}
	d.accepted = 0
	d.improved = 0
	return nil
}

// Image returns a copy of the current best image.
func (d *ArtDemo) Image() *image.RGBA { return d.gen.Snapshot().Image }
