package boids

import "github.com/pthm-cable/menagerie/geom"

// SpatialGrid buckets agent indices by cell for radius queries.
// Queries use plain Euclidean distance and do not wrap across edges.
type SpatialGrid struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a grid covering width x height.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}
	return &SpatialGrid{cellSize: cellSize, cols: cols, rows: rows, cells: cells}
}

// Clear removes all entries.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds index i at position p.
func (g *SpatialGrid) Insert(i int, p geom.Vec) {
	idx := g.cellIndex(p)
	g.cells[idx] = append(g.cells[idx], i)
}

// QueryRadiusInto appends the indices of every agent strictly closer than
// radius to p, skipping exclude. Reuse dst across calls.
func (g *SpatialGrid) QueryRadiusInto(dst []int, p geom.Vec, radius float64, exclude int, agents []Agent) []int {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol := int(p.X / g.cellSize)
	centerRow := int(p.Y / g.cellSize)
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}
			for _, i := range g.cells[row*g.cols+col] {
				if i == exclude {
					continue
				}
				if geom.DistanceSq(p, agents[i].Pos) < radiusSq {
					dst = append(dst, i)
				}
			}
		}
	}
	return dst
}

func (g *SpatialGrid) cellIndex(p geom.Vec) int {
	col := geom.ClampInt(int(p.X/g.cellSize), 0, g.cols-1)
	row := geom.ClampInt(int(p.Y/g.cellSize), 0, g.rows-1)
	return row*g.cols + col
}
