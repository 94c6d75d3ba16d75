package art

import (
	"image"
	"math"
	"math/rand"
	"sort"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
)

type geometric struct {
	target *image.RGBA
	s      Settings
	w, h   float64
}

func newGeometric(target *image.RGBA, s Settings) variant[Shape] {
	return &geometric{target: target, s: s, w: float64(target.Rect.Dx()), h: float64(target.Rect.Dy())}
}

// seed lays shapes out on a jittered grid so the first render covers the canvas.
func (g *geometric) seed(rng *rand.Rand) []Shape {
	n := g.s.NumShapes
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))
	cellW, cellH := g.w/float64(cols), g.h/float64(rows)

	shapes := make([]Shape, n)
	for i := range shapes {
		cx := (float64(i%cols) + rng.Float64()) * cellW
		cy := (float64(i/cols) + rng.Float64()) * cellH
		kind := g.s.ShapeKinds[rng.Intn(len(g.s.ShapeKinds))]
		shapes[i] = Shape{
			Kind:     kind,
			Center:   geom.Vec{X: cx, Y: cy},
			Size:     uniform(rng, g.s.MinSize, g.s.MaxSize),
			Color:    pixel.SampleAt(g.target, cx, cy),
			Opacity:  uniform(rng, g.s.OpacityMin, g.s.OpacityMax),
			Rotation: rng.Float64() * 2 * math.Pi,
			Aspect:   uniform(rng, 0.5, 1),
		}
	}
	return shapes
}

// mutate changes exactly one property of the shape.
func (g *geometric) mutate(sh Shape, rng *rand.Rand) Shape {
	prop := rng.Intn(5)
	if prop == 4 && sh.Kind == KindCircle {
		prop = 0
	}
	switch prop {
	case 0:
		sh.Center.X = geom.Clamp(sh.Center.X+(rng.Float64()-0.5)*g.s.PositionJitter*g.w, 0, g.w)
		sh.Center.Y = geom.Clamp(sh.Center.Y+(rng.Float64()-0.5)*g.s.PositionJitter*g.h, 0, g.h)
	case 1:
		sh.Size = geom.Clamp(sh.Size*uniform(rng, 0.8, 1.2), g.s.MinSize, g.s.MaxSize)
	case 2:
		if rng.Float64() < g.s.ResampleChance {
			sh.Color = pixel.SampleAt(g.target, sh.Center.X, sh.Center.Y)
		} else {
			sh.Color = jitterChannel(sh.Color, g.s.ColorJitter, rng)
		}
	case 3:
		sh.Opacity = geom.Clamp(sh.Opacity+(rng.Float64()-0.5)*0.2, g.s.OpacityMin, g.s.OpacityMax)
	case 4:
		sh.Rotation = geom.NormalizeHeading(sh.Rotation + (rng.Float64()-0.5)*math.Pi/4)
	}
	return sh
}

// render paints shapes largest first over the background.
func (g *geometric) render(dst *image.RGBA, pop []Shape) {
	pixel.Fill(dst, g.s.background())
	order := make([]int, len(pop))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return pop[order[a]].Size > pop[order[b]].Size })

	dc := gg.NewContextForRGBA(dst)
	for _, i := range order {
		sh := pop[i]
		x, y := sh.Center.X, sh.Center.Y
		dc.SetRGBA(float64(sh.Color.R)/255, float64(sh.Color.G)/255, float64(sh.Color.B)/255, sh.Opacity)
		switch sh.Kind {
		case KindCircle:
			dc.DrawCircle(x, y, sh.Size)
		case KindTriangle:
			dc.Push()
			dc.RotateAbout(sh.Rotation, x, y)
			h := sh.Size * math.Sqrt(3) / 2
			dc.MoveTo(x, y-h/2)
			dc.LineTo(x-sh.Size/2, y+h/2)
			dc.LineTo(x+sh.Size/2, y+h/2)
			dc.ClosePath()
			dc.Pop()
		case KindRectangle:
			dc.Push()
			dc.RotateAbout(sh.Rotation, x, y)
			w, h := sh.Size, sh.Size*sh.Aspect
			dc.DrawRectangle(x-w/2, y-h/2, w, h)
			dc.Pop()
		}
		dc.Fill()
	}
}

func (g *geometric) wrap(sh Shape) Primitive { return sh }
