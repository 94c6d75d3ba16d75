package art

import (
	"image"
	"math/rand"
	"sort"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
)

type pointillism struct {
	target *image.RGBA
	s      Settings
	w, h   float64
}

func newPointillism(target *image.RGBA, s Settings) variant[Dot] {
	return &pointillism{target: target, s: s, w: float64(target.Rect.Dx()), h: float64(target.Rect.Dy())}
}

func (p *pointillism) seed(rng *rand.Rand) []Dot {
	dots := make([]Dot, p.s.NumShapes)
	for i := range dots {
		c := geom.Vec{X: rng.Float64() * p.w, Y: rng.Float64() * p.h}
		dots[i] = Dot{
			Center: c,
			Radius: uniform(rng, p.s.MinSize, p.s.MaxSize),
			Color:  pixel.SampleAt(p.target, c.X, c.Y),
		}
	}
	return dots
}

func (p *pointillism) mutate(d Dot, rng *rand.Rand) Dot {
	d.Center.X = geom.Clamp(d.Center.X+(rng.Float64()-0.5)*p.s.PositionJitter*p.w, 0, p.w)
	d.Center.Y = geom.Clamp(d.Center.Y+(rng.Float64()-0.5)*p.s.PositionJitter*p.h, 0, p.h)
	d.Radius = geom.Clamp(d.Radius*uniform(rng, 0.8, 1.2), p.s.MinSize, p.s.MaxSize)
	if rng.Float64() < p.s.ResampleChance {
		d.Color = pixel.SampleAt(p.target, d.Center.X, d.Center.Y)
	} else {
		d.Color = jitterColor(d.Color, p.s.ColorJitter, rng)
	}
	return d
}

func (p *pointillism) render(dst *image.RGBA, pop []Dot) {
	pixel.Fill(dst, p.s.background())
	order := make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return pop[order[a]].Radius > pop[order[b]].Radius })

	dc := gg.NewContextForRGBA(dst)
	for _, i := range order {
		d := pop[i]
		dc.SetRGBA(float64(d.Color.R)/255, float64(d.Color.G)/255, float64(d.Color.B)/255, p.s.FillAlpha)
		dc.DrawCircle(d.Center.X, d.Center.Y, d.Radius)
		dc.Fill()
	}
}

func (p *pointillism) wrap(d Dot) Primitive { return d }
