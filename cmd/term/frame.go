package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/life"
)

// glyph is one terminal cell.
type glyph struct {
	r     rune
	style tcell.Style
}

// frame is a rows x cols block of glyphs, row-major.
type frame struct {
	w, h   int
	glyphs []glyph
}

func newFrame(w, h int) *frame {
	f := &frame{w: max(w, 0), h: max(h, 0)}
	f.glyphs = make([]glyph, f.w*f.h)
	for i := range f.glyphs {
		f.glyphs[i] = glyph{r: ' ', style: tcell.StyleDefault}
	}
	return f
}

func (f *frame) set(x, y int, g glyph) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	f.glyphs[y*f.w+x] = g
}

func (f *frame) at(x, y int) glyph { return f.glyphs[y*f.w+x] }

// blockSize is the number of grid cells folded into one terminal cell so a
// cols x rows grid fits a w x h view.
func blockSize(cols, rows, w, h int) int {
	if w <= 0 || h <= 0 {
		return 1
	}
	return max(1, (cols+w-1)/w, (rows+h-1)/h)
}

var (
	styleLive     = tcell.StyleDefault.Foreground(tcell.ColorLightGreen)
	styleNest     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleFood     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleRock     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleAnt      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleCarrying = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
)

// renderLife draws a life grid into a w x h frame, one block per terminal cell.
// A block shows as live when any of its cells is alive.
func renderLife(g life.Grid, w, h int) *frame {
	f := newFrame(w, h)
	b := blockSize(g.Cols(), g.Rows(), w, h)
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			if g.Alive(r, c) {
				f.set(c/b, r/b, glyph{r: '█', style: styleLive})
			}
		}
	}
	return f
}

// pheromoneStyle shades the background by pheromone: home blue, food green.
func pheromoneStyle(home, food, limit float64) tcell.Style {
	if limit <= 0 {
		return tcell.StyleDefault
	}
	hb := int32(math.Min(home/limit, 1) * 200)
	fg := int32(math.Min(food/limit, 1) * 200)
	if hb == 0 && fg == 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Background(tcell.NewRGBColor(0, fg, hb))
}

// renderAnts draws the colony grid and ants into a w x h frame. Within a
// block the strongest feature wins: ant, then nest, rock, food, pheromone.
func renderAnts(g *ants.Grid, colony []ants.Ant, pheromoneCap float64, w, h int) *frame {
	f := newFrame(w, h)
	n := g.Size()
	b := blockSize(n, n, w, h)

	type block struct {
		home, food float64
		nest, rock bool
		hasFood    bool
		cells      int
	}
	bw, bh := (n+b-1)/b, (n+b-1)/b
	blocks := make([]block, bw*bh)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := g.At(x, y)
			bl := &blocks[(y/b)*bw+x/b]
			bl.home += c.Home
			bl.food += c.Food
			bl.nest = bl.nest || c.Nest
			bl.rock = bl.rock || c.Obstacle
			bl.hasFood = bl.hasFood || c.HasFood()
			bl.cells++
		}
	}

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			bl := blocks[by*bw+bx]
			switch {
			case bl.nest:
				f.set(bx, by, glyph{r: 'N', style: styleNest})
			case bl.rock:
				f.set(bx, by, glyph{r: '#', style: styleRock})
			case bl.hasFood:
				f.set(bx, by, glyph{r: '*', style: styleFood})
			case bl.cells > 0:
				cells := float64(bl.cells)
				f.set(bx, by, glyph{r: ' ', style: pheromoneStyle(bl.home/cells, bl.food/cells, pheromoneCap)})
			}
		}
	}

	for _, a := range colony {
		x, y := int(a.Pos.X)/b, int(a.Pos.Y)/b
		if x < 0 || y < 0 || x >= f.w || y >= f.h || f.at(x, y).r == 'N' {
			continue
		}
		_, bgColor, _ := f.at(x, y).style.Decompose()
		if a.HasFood {
			f.set(x, y, glyph{r: 'o', style: styleCarrying.Background(bgColor)})
		} else if f.at(x, y).r != 'o' {
			f.set(x, y, glyph{r: '.', style: styleAnt.Background(bgColor)})
		}
	}
	return f
}

// draw copies the frame onto the screen at the top-left corner.
func draw(s tcell.Screen, f *frame) {
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			g := f.at(x, y)
			s.SetContent(x, y, g.r, nil, g.style)
		}
	}
}

// drawText writes a single line, clipped to the screen width.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	for _, r := range text {
		if x >= w {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
