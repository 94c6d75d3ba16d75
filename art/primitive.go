package art

import (
	"image/color"
	"math/rand"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
)

// Primitive is one drawable unit of a population. Implemented by Shape, Dot, Tile and Panel.
type Primitive interface {
	primitive()
}

// Shape is a circle, triangle or rectangle for the geometric style.
type Shape struct {
	Kind     ShapeKind
	Center   geom.Vec
	Size     float64
	Color    color.RGBA
	Opacity  float64
	Rotation float64 // radians, unused for circles
	Aspect   float64 // rectangle height/width
}

// Dot is a single pointillist dab.
type Dot struct {
	Center geom.Vec
	Radius float64
	Color  color.RGBA
}

// Tile is one mosaic cell.
type Tile struct {
	Min    geom.Vec
	Width  float64
	Height float64
	Color  color.RGBA
}

// Panel is one stained glass polygon.
type Panel struct {
	Points   []geom.Vec
	Centroid geom.Vec
	Color    color.RGBA
}

func (Shape) primitive() {}
func (Dot) primitive()   {}
func (Tile) primitive()  {}
func (Panel) primitive() {}

// jitterColor nudges each channel by up to ±amount.
func jitterColor(c color.RGBA, amount float64, rng *rand.Rand) color.RGBA {
	return color.RGBA{
		R: pixel.ClampChannel(float64(c.R) + (rng.Float64()-0.5)*2*amount),
		G: pixel.ClampChannel(float64(c.G) + (rng.Float64()-0.5)*2*amount),
		B: pixel.ClampChannel(float64(c.B) + (rng.Float64()-0.5)*2*amount),
		A: 255,
	}
}

// jitterChannel nudges one random channel by up to ±amount.
func jitterChannel(c color.RGBA, amount float64, rng *rand.Rand) color.RGBA {
	delta := (rng.Float64() - 0.5) * 2 * amount
	switch rng.Intn(3) {
	case 0:
		c.R = pixel.ClampChannel(float64(c.R) + delta)
	case 1:
		c.G = pixel.ClampChannel(float64(c.G) + delta)
	default:
		c.B = pixel.ClampChannel(float64(c.B) + delta)
	}
	c.A = 255
	return c
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
