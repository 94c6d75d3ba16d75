// Package art evolves a population of drawing primitives toward a target
// image by strict-elitist hill climbing. Four styles share one engine.
package art

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"github.com/pthm-cable/menagerie/pixel"
)

// ErrUnknownStyle is returned by New for a style tag it does not recognise.
var ErrUnknownStyle = errors.New("art: unknown style")

// Result reports the outcome of one Evolve call.
type Result struct {
	Fitness    float64 // best fitness so far
	Generation int
	Improved   bool
}

// Snapshot is a copy of a generator's current best state.
type Snapshot struct {
	Style       Style
	Generation  int
	Accepted    int
	BestFitness float64
	Image       *image.RGBA
	Primitives  []Primitive
}

// Generator is the common surface of all art styles.
type Generator interface {
	Style() Style
	Settings() Settings
	Evolve() Result
	Reset()
	Reinitialize(target image.Image, settings Settings) error
	Snapshot() Snapshot
}

// New builds a generator for style, seeded deterministically from seed.
// Settings are clamped to the style's valid ranges.
func New(style Style, target image.Image, settings Settings, seed int64) (Generator, error) {
	switch style {
	case StyleGeometric:
		return newRunner(style, target, settings, seed, newGeometric)
	case StylePointillism:
		return newRunner(style, target, settings, seed, newPointillism)
	case StyleMosaic:
		return newRunner(style, target, settings, seed, newMosaic)
	case StyleStainedGlass:
		return newRunner(style, target, settings, seed, newStainedGlass)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
}

// ParseStyle maps a tag to a Style.
func ParseStyle(tag string) (Style, error) {
	for _, s := range Styles {
		if string(s) == tag {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, tag)
}

type runner[P any] struct {
	style    Style
	settings Settings
	build    func(*image.RGBA, Settings) variant[P]
	engine   *Engine[P]
	state    State[P]
	rng      *rand.Rand
}

func newRunner[P any](style Style, target image.Image, settings Settings, seed int64, build func(*image.RGBA, Settings) variant[P]) (Generator, error) {
	r := &runner[P]{style: style, build: build, rng: rand.New(rand.NewSource(seed))}
	if err := r.Reinitialize(target, settings); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *runner[P]) Style() Style       { return r.style }
func (r *runner[P]) Settings() Settings { return r.settings }

func (r *runner[P]) Evolve() Result {
	prev := r.state.Accepted
	r.state = r.engine.Evolve(r.state, r.rng)
	return Result{
		Fitness:    r.state.BestFitness,
		Generation: r.state.Generation,
		Improved:   r.state.Accepted > prev,
	}
}

// Reset reseeds the population against the current target.
func (r *runner[P]) Reset() {
	r.state = r.engine.Init(r.rng)
}

// Reinitialize swaps the target and settings, then resets.
func (r *runner[P]) Reinitialize(target image.Image, settings Settings) error {
	if target == nil {
		return fmt.Errorf("art: nil target: %w", pixel.ErrEmpty)
	}
	b := target.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("art: target %dx%d: %w", b.Dx(), b.Dy(), pixel.ErrEmpty)
	}
	rgba := pixel.FromImage(target)
	r.settings = settings.Clamp(r.style)
	r.engine = newEngine(r.build(rgba, r.settings), rgba, r.settings.MutationRate)
	r.Reset()
	return nil
}

func (r *runner[P]) Snapshot() Snapshot {
	return Snapshot{
		Style:       r.style,
		Generation:  r.state.Generation,
		Accepted:    r.state.Accepted,
		BestFitness: r.state.BestFitness,
		Image:       pixel.Clone(r.state.Image),
		Primitives:  r.engine.Primitives(r.state.Population),
	}
}
