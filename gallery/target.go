package gallery

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/fogleman/gg"

	"github.com/pthm-cable/menagerie/pixel"
)

// LoadTarget opens an image and scales it to fit within maxW x maxH,
// preserving its aspect ratio. Images already inside the box are kept as is.
func LoadTarget(path string, maxW, maxH int) (image.Image, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening target %s: %w", path, err)
	}
	return FitTarget(img, maxW, maxH), nil
}

// FitTarget scales img down to fit within maxW x maxH.
func FitTarget(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return img
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return transform.Resize(img, nw, nh, transform.Lanczos)
}

// SampleTarget paints a simple landscape used when no target image is given.
func SampleTarget(w, h int) image.Image {
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)

	sky := gg.NewLinearGradient(0, 0, 0, fh*0.65)
	sky.AddColorStop(0, hexColor("#1d3b6f"))
	sky.AddColorStop(1, hexColor("#f4a261"))
	dc.SetFillStyle(sky)
	dc.DrawRectangle(0, 0, fw, fh)
	dc.Fill()

	dc.SetHexColor("#ffd166")
	dc.DrawCircle(fw*0.7, fh*0.45, math.Min(fw, fh)*0.12)
	dc.Fill()

	dc.SetHexColor("#2a9d8f")
	dc.MoveTo(0, fh)
	dc.LineTo(0, fh*0.7)
	dc.QuadraticTo(fw*0.3, fh*0.45, fw*0.6, fh*0.72)
	dc.QuadraticTo(fw*0.8, fh*0.82, fw, fh*0.6)
	dc.LineTo(fw, fh)
	dc.ClosePath()
	dc.Fill()

	dc.SetHexColor("#264653")
	dc.DrawRectangle(0, fh*0.88, fw, fh*0.12)
	dc.Fill()

	return dc.Image()
}

// SaveImage writes img as PNG.
func SaveImage(path string, img image.Image) error {
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func hexColor(s string) color.Color {
	c, _ := pixel.ParseHex(s)
	return c
}
