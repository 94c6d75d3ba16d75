package ants

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/menagerie/geom"
)

var (
	// ErrOutOfRange is returned when an edit targets a cell outside the grid.
	ErrOutOfRange = errors.New("ants: cell out of range")
	// ErrNestCell is returned when an edit targets the nest.
	ErrNestCell = errors.New("ants: nest cell cannot be edited")
)

// Cell is one square of the pheromone field.
type Cell struct {
	Home     float64 // home pheromone, laid by ants carrying food
	Food     float64 // food pheromone, laid by searching ants
	Obstacle bool
	Nest     bool
	FoodLeft int // units of food remaining, 0 when the cell has none
}

// HasFood reports whether the cell still holds food.
func (c Cell) HasFood() bool { return c.FoodLeft > 0 }

// Grid is a square pheromone field with a single nest cell at its center.
type Grid struct {
	size  int
	cells []Cell
}

// NewGrid creates a size x size grid with the nest at (size/2, size/2).
func NewGrid(size int) *Grid {
	g := &Grid{size: size, cells: make([]Cell, size*size)}
	n := g.NestCell()
	g.cells[n.Y*size+n.X].Nest = true
	return g
}

// Size returns the side length in cells.
func (g *Grid) Size() int { return g.size }

// CellPos is an integer cell coordinate.
type CellPos struct{ X, Y int }

// NestCell returns the nest cell coordinate.
func (g *Grid) NestCell() CellPos { return CellPos{X: g.size / 2, Y: g.size / 2} }

// Nest returns the nest position in continuous coordinates.
func (g *Grid) Nest() geom.Vec {
	return geom.Vec{X: float64(g.size) / 2, Y: float64(g.size) / 2}
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size
}

// At returns the cell at (x, y). Cells outside the grid read as obstacles.
func (g *Grid) At(x, y int) Cell {
	if !g.inside(x, y) {
		return Cell{Obstacle: true}
	}
	return g.cells[y*g.size+x]
}

// CellAt returns the cell under a continuous position.
func (g *Grid) CellAt(p geom.Vec) (CellPos, Cell) {
	c := CellPos{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
	return c, g.At(c.X, c.Y)
}

func (g *Grid) cell(x, y int) *Cell {
	return &g.cells[y*g.size+x]
}

func (g *Grid) editable(x, y int) error {
	if !g.inside(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, x, y, g.size, g.size)
	}
	if g.cells[y*g.size+x].Nest {
		return ErrNestCell
	}
	return nil
}

// Deposit adds pheromone to a cell, capped at limit.
func (g *Grid) Deposit(x, y int, home bool, amount, limit float64) {
	if !g.inside(x, y) {
		return
	}
	c := g.cell(x, y)
	if c.Obstacle {
		return
	}
	if home {
		c.Home = math.Min(limit, c.Home+amount)
	} else {
		c.Food = math.Min(limit, c.Food+amount)
	}
}

// evaporationFloor is the level below which pheromone snaps to zero.
const evaporationFloor = 1e-9

// Evaporate decays both channels of every cell by (1 - rate).
func (g *Grid) Evaporate(rate float64) {
	keep := 1 - geom.Clamp01(rate)
	for i := range g.cells {
		c := &g.cells[i]
		c.Home = decay(c.Home, keep)
		c.Food = decay(c.Food, keep)
	}
}

func decay(v, keep float64) float64 {
	v *= keep
	if v < evaporationFloor {
		return 0
	}
	return v
}

// TotalPheromone sums both channels over the grid.
func (g *Grid) TotalPheromone() float64 {
	var sum float64
	for _, c := range g.cells {
		sum += c.Home + c.Food
	}
	return sum
}

// FoodCells counts cells that still hold food.
func (g *Grid) FoodCells() int {
	n := 0
	for _, c := range g.cells {
		if c.HasFood() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{size: g.size, cells: cells}
}
