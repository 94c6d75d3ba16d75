// Package life implements Conway's Game of Life on a bounded, non-wrapping grid.
package life

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrOutOfRange is returned when a cell coordinate lies outside the grid.
var ErrOutOfRange = errors.New("life: cell out of range")

// Grid is a fixed rows x cols field of cells. Operations never modify the
// receiver; they return a new Grid.
type Grid struct {
	rows, cols int
	cells      []bool
}

// NewGrid returns an all-dead grid. Non-positive sizes yield an empty grid.
func NewGrid(rows, cols int) Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Grid{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

func (g Grid) Rows() int { return g.rows }
func (g Grid) Cols() int { return g.cols }

func (g Grid) inside(r, c int) bool {
	return r >= 0 && r < g.rows && c >= 0 && c < g.cols
}

// Alive reports whether (r, c) is live. Cells outside the grid are dead.
func (g Grid) Alive(r, c int) bool {
	if !g.inside(r, c) {
		return false
	}
	return g.cells[r*g.cols+c]
}

func (g Grid) clone() Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return Grid{rows: g.rows, cols: g.cols, cells: cells}
}

// Equal reports whether both grids have the same shape and cells.
func (g Grid) Equal(o Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// Neighbors counts the live cells in the Moore neighborhood of (r, c).
func (g Grid) Neighbors(r, c int) int {
	n := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if (dr != 0 || dc != 0) && g.Alive(r+dr, c+dc) {
				n++
			}
		}
	}
	return n
}

// Step applies B3/S23 to every cell simultaneously.
func (g Grid) Step() Grid {
	next := NewGrid(g.rows, g.cols)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			n := g.Neighbors(r, c)
			alive := g.cells[r*g.cols+c]
			next.cells[r*g.cols+c] = n == 3 || (alive && n == 2)
		}
	}
	return next
}

// Toggle flips one cell.
func (g Grid) Toggle(r, c int) (Grid, error) {
	if !g.inside(r, c) {
		return g, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, r, c, g.rows, g.cols)
	}
	next := g.clone()
	next.cells[r*g.cols+c] = !next.cells[r*g.cols+c]
	return next, nil
}

// Set returns a copy with (r, c) set to alive. Out-of-range is ignored.
func (g Grid) Set(r, c int, alive bool) Grid {
	next := g.clone()
	if next.inside(r, c) {
		next.cells[r*g.cols+c] = alive
	}
	return next
}

// PlacePattern stamps p with its top-left corner at (row, col). Pattern
// cells overwrite the grid; anything falling outside is clipped.
func (g Grid) PlacePattern(p Pattern, row, col int) Grid {
	next := g.clone()
	for i, line := range p.Cells {
		for j, v := range line {
			r, c := row+i, col+j
			if next.inside(r, c) {
				next.cells[r*g.cols+c] = v == 1
			}
		}
	}
	return next
}

// CountLive returns the number of live cells.
func (g Grid) CountLive() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Randomize returns an empty grid with a centered size x size region seeded
// at the given live probability.
func (g Grid) Randomize(size int, density float64, rng *rand.Rand) Grid {
	next := NewGrid(g.rows, g.cols)
	r0 := (g.rows - size) / 2
	c0 := (g.cols - size) / 2
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if next.inside(r0+i, c0+j) {
				next.cells[(r0+i)*g.cols+c0+j] = rng.Float64() < density
			}
		}
	}
	return next
}

// String renders the grid with # for live and . for dead cells.
func (g Grid) String() string {
	b := make([]byte, 0, (g.cols+1)*g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
