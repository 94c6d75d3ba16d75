package art

import (
	"image"
	"math"
	"math/rand"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
)

type stainedGlass struct {
	target *image.RGBA
	s      Settings
	w, h   float64
}

func newStainedGlass(target *image.RGBA, s Settings) variant[Panel] {
	return &stainedGlass{target: target, s: s, w: float64(target.Rect.Dx()), h: float64(target.Rect.Dy())}
}

func (g *stainedGlass) seed(rng *rand.Rand) []Panel {
	panels := make([]Panel, g.s.NumShapes)
	for i := range panels {
		c := geom.Vec{X: rng.Float64() * g.w, Y: rng.Float64() * g.h}
		panels[i] = Panel{
			Centroid: c,
			Points:   g.polygon(c, rng),
			Color:    pixel.AverageAround(g.target, c.X, c.Y, 2),
		}
	}
	return panels
}

// polygon builds a 5 to 7 vertex irregular polygon around c.
func (g *stainedGlass) polygon(c geom.Vec, rng *rand.Rand) []geom.Vec {
	n := 5 + rng.Intn(3)
	radius := uniform(rng, g.s.MinSize, g.s.MaxSize)
	pts := make([]geom.Vec, n)
	for i := range pts {
		angle := float64(i) / float64(n) * 2 * math.Pi
		r := radius * uniform(rng, 0.5, 1)
		pts[i] = geom.Vec{X: c.X + math.Cos(angle)*r, Y: c.Y + math.Sin(angle)*r}
	}
	return pts
}

func (g *stainedGlass) mutate(p Panel, rng *rand.Rand) Panel {
	old := p.Centroid
	p.Centroid.X = geom.Clamp(p.Centroid.X+(rng.Float64()-0.5)*g.s.PositionJitter*g.w, 0, g.w)
	p.Centroid.Y = geom.Clamp(p.Centroid.Y+(rng.Float64()-0.5)*g.s.PositionJitter*g.h, 0, g.h)
	shift := geom.Vec{X: p.Centroid.X - old.X, Y: p.Centroid.Y - old.Y}

	if rng.Float64() < g.s.RegenChance {
		p.Points = g.polygon(p.Centroid, rng)
	} else {
		pts := make([]geom.Vec, len(p.Points))
		for i, pt := range p.Points {
			pt.X += shift.X + (rng.Float64()-0.5)*2*g.s.PointJitter
			pt.Y += shift.Y + (rng.Float64()-0.5)*2*g.s.PointJitter
			pts[i] = g.keepRadius(p.Centroid, pt)
		}
		p.Points = pts
	}

	if rng.Float64() < g.s.ResampleChance {
		p.Color = pixel.AverageAround(g.target, p.Centroid.X, p.Centroid.Y, 2)
	}
	return p
}

// keepRadius pulls pt back into [MinSize/2, MaxSize] of the centroid.
func (g *stainedGlass) keepRadius(c, pt geom.Vec) geom.Vec {
	d := geom.Distance(c, pt)
	lo, hi := g.s.MinSize*0.5, g.s.MaxSize
	if d >= lo && d <= hi {
		return pt
	}
	dir := geom.Vec{X: pt.X - c.X, Y: pt.Y - c.Y}
	if d == 0 {
		dir = geom.Vec{X: 1}
	}
	r := geom.Clamp(d, lo, hi)
	off := geom.Normalize(dir, r)
	return geom.Vec{X: c.X + off.X, Y: c.Y + off.Y}
}

func (g *stainedGlass) render(dst *image.RGBA, pop []Panel) {
	pixel.Fill(dst, g.s.background())
	border := g.s.border()
	dc := gg.NewContextForRGBA(dst)
	dc.SetLineWidth(g.s.BorderWidth)
	for _, p := range pop {
		if len(p.Points) < 3 {
			continue
		}
		dc.MoveTo(p.Points[0].X, p.Points[0].Y)
		for _, pt := range p.Points[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
		dc.SetRGBA(float64(p.Color.R)/255, float64(p.Color.G)/255, float64(p.Color.B)/255, g.s.FillAlpha)
		if g.s.BorderWidth > 0 {
			dc.FillPreserve()
			dc.SetColor(border)
			dc.Stroke()
		} else {
			dc.Fill()
		}
	}
}

func (g *stainedGlass) wrap(p Panel) Primitive { return p }
