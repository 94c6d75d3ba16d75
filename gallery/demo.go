// Package gallery drives the demos frame by frame and routes their metrics
// into telemetry.
package gallery

import (
	"errors"
	"fmt"
	"image"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/telemetry"
)

// ErrUnknownDemo is returned by New for an unrecognised demo name.
var ErrUnknownDemo = errors.New("gallery: unknown demo")

// ErrNoTarget is returned when the art demo is built without a target image.
var ErrNoTarget = errors.New("gallery: art demo needs a target image")

// Demo names.
const (
	DemoArt   = "art"
	DemoLife  = "life"
	DemoBoids = "boids"
	DemoAnts  = "ants"
)

// Names lists every demo in menu order.
var Names = []string{DemoArt, DemoLife, DemoBoids, DemoAnts}

// Demo is one engine wrapped for the driver.
type Demo interface {
	Name() string
	// Step advances the engine by one tick (or one evolve call).
	Step()
	// Tick counts steps since the last reset.
	Tick() int
	Reset()

	// MetricName and Metric describe the primary value tracked by telemetry.
	MetricName() string
	Metric() float64
	// DrainEvents returns the discrete events since the previous call.
	DrainEvents() int

	// WriteSample appends the engine's own stats row to the run output.
	WriteSample(om *telemetry.OutputManager) error
}

// New builds the named demo from cfg. target is only used by the art demo.
func New(name string, cfg *config.Config, target image.Image, seed int64) (Demo, error) {
	switch name {
	case DemoArt:
		if target == nil {
			return nil, ErrNoTarget
		}
		style := cfg.Derived.ArtStyle
		return NewArtDemo(style, target, cfg.Art.For(style), seed)
	case DemoLife:
		return NewLifeDemo(cfg.Life, seed), nil
	case DemoBoids:
		return NewBoidsDemo(cfg.Boids, seed), nil
	case DemoAnts:
		return NewAntsDemo(cfg.Ants, seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
}
