package art

import (
	"image"
	"math/rand"

	"github.com/pthm-cable/menagerie/pixel"
)

// variant supplies the style-specific pieces of the hill climber.
type variant[P any] interface {
	seed(rng *rand.Rand) []P
	mutate(p P, rng *rand.Rand) P
	render(dst *image.RGBA, pop []P)
	wrap(p P) Primitive
}

// State is one immutable step of a generator. Evolve never modifies a State
// it is handed; accepted candidates arrive as a fresh Population and Image.
type State[P any] struct {
	Population  []P
	Image       *image.RGBA // render of Population
	BestFitness float64     // best fitness accepted so far, 0 before any acceptance
	Generation  int
	Accepted    int
}

// Engine runs strict-elitist hill climbing for one style against one target.
type Engine[P any] struct {
	v       variant[P]
	target  *image.RGBA
	rate    float64
	scratch *image.RGBA
}

func newEngine[P any](v variant[P], target *image.RGBA, rate float64) *Engine[P] {
	return &Engine[P]{v: v, target: target, rate: rate}
}

// Init seeds a population and renders it. BestFitness starts at 0 so the first
// scored candidate is always accepted.
func (e *Engine[P]) Init(rng *rand.Rand) State[P] {
	pop := e.v.seed(rng)
	img := pixel.New(e.target.Rect.Dx(), e.target.Rect.Dy())
	e.v.render(img, pop)
	return State[P]{Population: pop, Image: img}
}

// Evolve mutates a copy of the population, renders and scores it, and returns
// the candidate if it beats BestFitness. Otherwise it returns s with only the
// generation counter advanced.
func (e *Engine[P]) Evolve(s State[P], rng *rand.Rand) State[P] {
	candidate := make([]P, len(s.Population))
	for i, p := range s.Population {
		if rng.Float64() < e.rate {
			candidate[i] = e.v.mutate(p, rng)
		} else {
			candidate[i] = p
		}
	}

	if e.scratch == nil {
		e.scratch = pixel.New(e.target.Rect.Dx(), e.target.Rect.Dy())
	}
	e.v.render(e.scratch, candidate)
	fitness := pixel.MustFitness(e.scratch, e.target)

	next := s
	next.Generation++
	if fitness > s.BestFitness {
		next.Population = candidate
		next.Image = e.scratch
		next.BestFitness = fitness
		next.Accepted++
		e.scratch = nil
	}
	return next
}

// Primitives boxes a population into the closed Primitive set.
func (e *Engine[P]) Primitives(pop []P) []Primitive {
	out := make([]Primitive, len(pop))
	for i, p := range pop {
		out[i] = e.v.wrap(p)
	}
	return out
}
