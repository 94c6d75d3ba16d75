package pixel

import (
	"errors"
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := New(w, h)
	Fill(img, c)
	return img
}

func TestFitnessIdentical(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	img := New(16, 9)
	rng.Read(img.Pix)

	f, err := Fitness(img, Clone(img))
	if err != nil {
		t.Fatalf("Fitness: %v", err)
	}
	if f != 1 {
		t.Errorf("Fitness(X, X) = %v, want 1", f)
	}
}

func TestFitnessBounds(t *testing.T) {
	black := solid(4, 4, color.RGBA{A: 255})
	white := solid(4, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	f, err := Fitness(black, white)
	if err != nil {
		t.Fatalf("Fitness: %v", err)
	}
	if math.Abs(f) > 1e-9 {
		t.Errorf("Fitness(black, white) = %v, want 0", f)
	}

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		a, b := New(5, 5), New(5, 5)
		rng.Read(a.Pix)
		rng.Read(b.Pix)
		f, _ := Fitness(a, b)
		if f < 0 || f > 1 {
			t.Fatalf("Fitness out of [0,1]: %v", f)
		}
		g, _ := Fitness(b, a)
		if math.Abs(f-g) > 1e-12 {
			t.Errorf("Fitness not symmetric: %v vs %v", f, g)
		}
	}
}

func TestFitnessMonotonic(t *testing.T) {
	target := solid(8, 8, color.RGBA{R: 100, G: 100, B: 100, A: 255})
	prev := 2.0
	for d := uint8(0); d <= 150; d += 10 {
		cur := solid(8, 8, color.RGBA{R: 100 + d, G: 100 - d/2, B: 100 + d, A: 255})
		f, err := Fitness(cur, target)
		if err != nil {
			t.Fatalf("Fitness: %v", err)
		}
		if f >= prev {
			t.Fatalf("fitness did not decrease at delta %d: %v >= %v", d, f, prev)
		}
		prev = f
	}
}

func TestFitnessLumaWeights(t *testing.T) {
	target := solid(2, 2, color.RGBA{A: 255})
	red := solid(2, 2, color.RGBA{R: 255, A: 255})
	green := solid(2, 2, color.RGBA{G: 255, A: 255})

	fr, _ := Fitness(red, target)
	fg, _ := Fitness(green, target)
	if math.Abs(fr-(1-WeightR)) > 1e-9 {
		t.Errorf("red fitness = %v, want %v", fr, 1-WeightR)
	}
	if math.Abs(fg-(1-WeightG)) > 1e-9 {
		t.Errorf("green fitness = %v, want %v", fg, 1-WeightG)
	}
}

func TestFitnessIgnoresAlpha(t *testing.T) {
	a := solid(3, 3, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	b := solid(3, 3, color.RGBA{R: 10, G: 20, B: 30, A: 0})
	if f, _ := Fitness(a, b); f != 1 {
		t.Errorf("alpha should be ignored, fitness = %v", f)
	}
}

func TestFitnessSizeMismatch(t *testing.T) {
	_, err := Fitness(New(4, 4), New(4, 5))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
	_, err = Fitness(New(0, 0), New(0, 0))
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestFitnessSubImage(t *testing.T) {
	big := solid(10, 10, color.RGBA{R: 200, A: 255})
	sub := big.SubImage(image.Rect(2, 2, 6, 6)).(*image.RGBA)
	target := solid(4, 4, color.RGBA{R: 200, A: 255})
	if f, err := Fitness(sub, target); err != nil || f != 1 {
		t.Errorf("Fitness(sub, target) = %v, %v", f, err)
	}
}

func TestAverageBlock(t *testing.T) {
	img := New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				img.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{B: 100, A: 255})
			}
		}
	}
	left := AverageBlock(img, 0, 0, 4, 8)
	if left.R != 200 || left.B != 0 {
		t.Errorf("left block = %+v", left)
	}
	whole := AverageBlock(img, 0, 0, 8, 8)
	if whole.R != 100 || whole.B != 50 {
		t.Errorf("whole block = %+v, want R=100 B=50", whole)
	}
}

func TestSampleAtClamps(t *testing.T) {
	img := solid(3, 3, color.RGBA{G: 9, A: 255})
	img.SetRGBA(2, 2, color.RGBA{R: 1, A: 255})
	if c := SampleAt(img, 50, 50); c.R != 1 {
		t.Errorf("SampleAt should clamp to the last pixel, got %+v", c)
	}
	if c := SampleAt(img, -4, -4); c.G != 9 {
		t.Errorf("SampleAt should clamp to the first pixel, got %+v", c)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#1a1a1a")
	if err != nil || c != (color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 255}) {
		t.Errorf("ParseHex(#1a1a1a) = %+v, %v", c, err)
	}
	c, err = ParseHex("#333")
	if err != nil || c.R != 0x33 {
		t.Errorf("ParseHex(#333) = %+v, %v", c, err)
	}
	if _, err := ParseHex("nope"); err == nil {
		t.Error("expected error for invalid color")
	}
}
