package ants

import (
	"github.com/aquilax/go-perlin"

	"github.com/pthm-cable/menagerie/geom"
)

// PlaceFood stocks a cell with FoodAmount units. Obstacles are left alone.
func (c *Colony) PlaceFood(x, y int) error {
	if err := c.grid.editable(x, y); err != nil {
		return err
	}
	cell := c.grid.cell(x, y)
	if cell.Obstacle {
		return nil
	}
	cell.FoodLeft = c.settings.FoodAmount
	return nil
}

// PlaceFoodPile stocks every open, editable cell within radius of (cx, cy)
// and returns how many cells received food.
func (c *Colony) PlaceFoodPile(cx, cy, radius int) int {
	placed := 0
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > radius*radius || c.grid.editable(x, y) != nil {
				continue
			}
			if cell := c.grid.cell(x, y); !cell.Obstacle {
				cell.FoodLeft = c.settings.FoodAmount
				placed++
			}
		}
	}
	return placed
}

// ToggleObstacle flips a cell between open and blocked. A cell that becomes
// an obstacle loses its food and both pheromone channels.
func (c *Colony) ToggleObstacle(x, y int) error {
	if err := c.grid.editable(x, y); err != nil {
		return err
	}
	cell := c.grid.cell(x, y)
	cell.Obstacle = !cell.Obstacle
	if cell.Obstacle {
		cell.FoodLeft = 0
		cell.Home = 0
		cell.Food = 0
	}
	return nil
}

// Clear removes all food, obstacles and pheromone. The nest and ants stay.
func (c *Colony) Clear() {
	for i := range c.grid.cells {
		nest := c.grid.cells[i].Nest
		c.grid.cells[i] = Cell{Nest: nest}
	}
}

// RockField configures ScatterRocks.
type RockField struct {
	Scale     float64 // cells per noise period
	Threshold float64 // noise level above which a cell becomes rock
	Clearing  float64 // radius around the nest kept open
	Seed      int64
}

// DefaultRockField returns a sparse boulder layout.
func DefaultRockField(seed int64) RockField {
	return RockField{Scale: 18, Threshold: 0.25, Clearing: 8, Seed: seed}
}

// ScatterRocks turns open cells into obstacles wherever Perlin noise exceeds
// the threshold. Food and nest cells are skipped. It returns the number placed.
func (c *Colony) ScatterRocks(rf RockField) int {
	noise := perlin.NewPerlin(2, 2, 3, rf.Seed)
	scale := geom.Clamp(rf.Scale, 1, 1000)
	nest := c.grid.Nest()

	placed := 0
	for y := 0; y < c.grid.size; y++ {
		for x := 0; x < c.grid.size; x++ {
			cell := c.grid.cell(x, y)
			if cell.Nest || cell.Obstacle || cell.HasFood() {
				continue
			}
			center := geom.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if geom.Distance(center, nest) < rf.Clearing {
				continue
			}
			if noise.Noise2D(float64(x)/scale, float64(y)/scale) > rf.Threshold {
				cell.Obstacle = true
				cell.Home, cell.Food = 0, 0
				placed++
			}
		}
	}
	return placed
}
