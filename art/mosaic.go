package art

import (
	"image"
	"math"
	"math/rand"

	"github.com/fogleman/gg"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
)

type mosaic struct {
	target *image.RGBA
	s      Settings
	w, h   float64
}

func newMosaic(target *image.RGBA, s Settings) variant[Tile] {
	return &mosaic{target: target, s: s, w: float64(target.Rect.Dx()), h: float64(target.Rect.Dy())}
}

// GridSize returns the tile columns and rows used to cover a width x height
// canvas with roughly n tiles, following the canvas aspect ratio.
func GridSize(n, width, height int) (cols, rows int) {
	if n < 1 || width < 1 || height < 1 {
		return 1, 1
	}
	aspect := float64(width) / float64(height)
	if aspect >= 1 {
		cols = int(math.Ceil(math.Sqrt(float64(n) * aspect)))
		rows = int(math.Ceil(float64(cols) / aspect))
	} else {
		rows = int(math.Ceil(math.Sqrt(float64(n) / aspect)))
		cols = int(math.Ceil(float64(rows) * aspect))
	}
	return max(cols, 1), max(rows, 1)
}

// seed covers the canvas with a full grid; the tile count rounds up to cols*rows.
func (m *mosaic) seed(_ *rand.Rand) []Tile {
	cols, rows := GridSize(m.s.NumShapes, m.target.Rect.Dx(), m.target.Rect.Dy())
	tw, th := m.w/float64(cols), m.h/float64(rows)

	tiles := make([]Tile, 0, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			origin := geom.Vec{X: float64(x) * tw, Y: float64(y) * th}
			tiles = append(tiles, Tile{
				Min:    origin,
				Width:  tw,
				Height: th,
				Color:  pixel.AverageBlock(m.target, origin.X, origin.Y, tw, th),
			})
		}
	}
	return tiles
}

// mutate only recolors; the grid geometry is fixed.
func (m *mosaic) mutate(t Tile, rng *rand.Rand) Tile {
	t.Color = jitterColor(t.Color, m.s.ColorJitter, rng)
	if rng.Float64() < m.s.ResampleChance {
		t.Color = pixel.AverageBlock(m.target, t.Min.X, t.Min.Y, t.Width, t.Height)
	}
	return t
}

// render draws each tile inset by one pixel so the background reads as grout.
func (m *mosaic) render(dst *image.RGBA, pop []Tile) {
	pixel.Fill(dst, m.s.background())
	dc := gg.NewContextForRGBA(dst)
	for _, t := range pop {
		if t.Width <= 2 || t.Height <= 2 {
			continue
		}
		dc.SetColor(t.Color)
		dc.DrawRectangle(t.Min.X+1, t.Min.Y+1, t.Width-2, t.Height-2)
		dc.Fill()
	}
}

func (m *mosaic) wrap(t Tile) Primitive { return t }
