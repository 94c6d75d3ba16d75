package viewer

import (
	"image"
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/camera"
	"github.com/pthm-cable/menagerie/geom"
)

func toVector2(p geom.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

// worldRect returns the screen rectangle of the world-space cell at (x, y).
func worldRect(cam *camera.Camera, x, y, w, h float64) rl.Rectangle {
	s := cam.WorldToScreen(geom.Vec{X: x, Y: y})
	return rl.Rectangle{
		X:      float32(s.X),
		Y:      float32(s.Y),
		Width:  float32(w * cam.Zoom),
		Height: float32(h * cam.Zoom),
	}
}

// fitRect letterboxes a w x h image into the area, preserving aspect ratio.
func fitRect(area rl.Rectangle, w, h int) rl.Rectangle {
	if w <= 0 || h <= 0 {
		return rl.Rectangle{X: area.X, Y: area.Y}
	}
	scale := math.Min(float64(area.Width)/float64(w), float64(area.Height)/float64(h))
	dw := float32(float64(w) * scale)
	dh := float32(float64(h) * scale)
	return rl.Rectangle{
		X:      area.X + (area.Width-dw)/2,
		Y:      area.Y + (area.Height-dh)/2,
		Width:  dw,
		Height: dh,
	}
}

// rgbaPixels copies img into dst as row-major colors, reusing dst when it is large enough.
func rgbaPixels(dst []color.RGBA, img *image.RGBA) []color.RGBA {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if cap(dst) < n {
		dst = make([]color.RGBA, n)
	}
	dst = dst[:n]
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			p := row[x*4 : x*4+4]
			dst[i] = color.RGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
			i++
		}
	}
	return dst
}

// pheromoneColor blends home (blue) and food (red) pheromone into one tint.
// Levels are normalised by limit; the zero value is fully transparent.
func pheromoneColor(home, food, limit float64) rl.Color {
	if limit <= 0 {
		return rl.Color{}
	}
	h := geom.Clamp01(home / limit)
	f := geom.Clamp01(food / limit)
	a := math.Max(h, f)
	if a == 0 {
		return rl.Color{}
	}
	return rl.Color{
		R: uint8(255 * f),
		G: uint8(60 * math.Min(h, f)),
		B: uint8(255 * h),
		A: uint8(40 + 160*a),
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(p rl.Vector2, heading, radius float32, c rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: p.X + cos*radius*1.5, Y: p.Y + sin*radius*1.5}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{X: p.X + float32(math.Cos(backAngle))*radius, Y: p.Y + float32(math.Sin(backAngle))*radius}

	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{X: p.X + float32(math.Cos(backAngle))*radius, Y: p.Y + float32(math.Sin(backAngle))*radius}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(front, backRight, backLeft, c)
}

// drawWorldBorder outlines the world on screen.
func drawWorldBorder(cam *camera.Camera) {
	r := worldRect(cam, 0, 0, cam.WorldW, cam.WorldH)
	rl.DrawRectangleLinesEx(r, 1, rl.Color{R: 60, G: 70, B: 80, A: 255})
}
