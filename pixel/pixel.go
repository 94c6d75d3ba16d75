// Package pixel holds the RGBA buffer helpers and the perceptual comparator
// used to score rendered art against its target image.
package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrSizeMismatch is returned when two buffers that must be compared differ in size.
	ErrSizeMismatch = errors.New("pixel: buffer size mismatch")
	// ErrEmpty is returned for zero-area buffers.
	ErrEmpty = errors.New("pixel: empty buffer")
)

// Luma weights applied to per-channel absolute differences.
const (
	WeightR = 0.299
	WeightG = 0.587
	WeightB = 0.114
)

// New allocates a zeroed (transparent black) buffer.
func New(width, height int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// FromImage converts any decoded image into an RGBA buffer anchored at (0,0).
func FromImage(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy())
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// Clone returns a tightly packed copy of src anchored at (0,0).
func Clone(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := New(b.Dx(), b.Dy())
	rowLen := b.Dx() * 4
	for y := 0; y < b.Dy(); y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], src.Pix[si:si+rowLen])
	}
	return dst
}

// CheckSameSize fails fast when a and b cannot be compared pixel for pixel.
func CheckSameSize(a, b *image.RGBA) error {
	if a == nil || b == nil {
		return ErrEmpty
	}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() == 0 || ab.Dy() == 0 {
		return ErrEmpty
	}
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}
	return nil
}

// Fitness scores how closely current matches target, in [0, 1].
// Each pixel contributes the luma-weighted absolute RGB difference normalized by 255;
// the result is 1 minus the mean over all pixels. Alpha is ignored.
func Fitness(current, target *image.RGBA) (float64, error) {
	if err := CheckSameSize(current, target); err != nil {
		return 0, err
	}

	cb, tb := current.Bounds(), target.Bounds()
	w, h := cb.Dx(), cb.Dy()

	var total float64
	for y := 0; y < h; y++ {
		ci := current.PixOffset(cb.Min.X, cb.Min.Y+y)
		ti := target.PixOffset(tb.Min.X, tb.Min.Y+y)
		var row float64
		for x := 0; x < w; x++ {
			dr := absDiff(current.Pix[ci], target.Pix[ti])
			dg := absDiff(current.Pix[ci+1], target.Pix[ti+1])
			db := absDiff(current.Pix[ci+2], target.Pix[ti+2])
			row += WeightR*dr + WeightG*dg + WeightB*db
			ci += 4
			ti += 4
		}
		total += row
	}

	avg := total / 255 / float64(w*h)
	return clamp01(1 - avg), nil
}

// MustFitness is Fitness for callers that have already validated the buffer sizes.
func MustFitness(current, target *image.RGBA) float64 {
	f, err := Fitness(current, target)
	if err != nil {
		panic(err)
	}
	return f
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Sampling

// SampleAt returns the color at the pixel containing (x, y), clamped to the buffer.
func SampleAt(img *image.RGBA, x, y float64) color.RGBA {
	b := img.Bounds()
	px := clampInt(int(math.Floor(x)), 0, b.Dx()-1)
	py := clampInt(int(math.Floor(y)), 0, b.Dy()-1)
	i := img.PixOffset(b.Min.X+px, b.Min.Y+py)
	return color.RGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: 255}
}

// AverageBlock averages a coarse lattice of samples (about 4x4) over the
// rectangle at (x, y) with size w x h. The result is opaque.
func AverageBlock(img *image.RGBA, x, y, w, h float64) color.RGBA {
	stepX := math.Max(1, math.Floor(w/4))
	stepY := math.Max(1, math.Floor(h/4))

	var r, g, bl, n float64
	for i := 0.0; i < w; i += stepX {
		for j := 0.0; j < h; j += stepY {
			c := SampleAt(img, x+i, y+j)
			r += float64(c.R)
			g += float64(c.G)
			bl += float64(c.B)
			n++
		}
	}
	if n == 0 {
		return SampleAt(img, x, y)
	}
	return color.RGBA{R: round8(r / n), G: round8(g / n), B: round8(bl / n), A: 255}
}

// AverageAround averages the (2*radius+1)^2 pixel neighborhood centered on (cx, cy).
func AverageAround(img *image.RGBA, cx, cy float64, radius int) color.RGBA {
	var r, g, bl, n float64
	for i := -radius; i <= radius; i++ {
		for j := -radius; j <= radius; j++ {
			c := SampleAt(img, math.Round(cx)+float64(i), math.Round(cy)+float64(j))
			r += float64(c.R)
			g += float64(c.G)
			bl += float64(c.B)
			n++
		}
	}
	return color.RGBA{R: round8(r / n), G: round8(g / n), B: round8(bl / n), A: 255}
}

// Fill paints every pixel of img with c.
func Fill(img *image.RGBA, c color.RGBA) {
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("pixel: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("pixel: invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// ClampChannel rounds and clamps a channel value to [0, 255].
func ClampChannel(v float64) uint8 {
	return round8(v)
}

func round8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
