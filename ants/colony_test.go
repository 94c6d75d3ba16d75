package ants

import (
	"errors"
	"math"
	"testing"

	"github.com/pthm-cable/menagerie/geom"
)

func emptyColony(t *testing.T) *Colony {
	t.Helper()
	c := NewColony(DefaultSettings(), 1)
	c.ClearAnts()
	return c
}

func TestEvaporationStrictlyDecreases(t *testing.T) {
	c := emptyColony(t)
	c.grid.Deposit(10, 10, true, 1.5, 2)
	c.grid.Deposit(10, 10, false, 0.4, 2)

	prevHome, prevFood := 1.5, 0.4
	for i := 0; i < 200; i++ {
		c.Step()
		cell := c.grid.At(10, 10)
		if cell.Home < 0 || cell.Food < 0 {
			t.Fatalf("tick %d: negative pheromone %+v", i, cell)
		}
		if cell.Home >= prevHome || cell.Food >= prevFood {
			t.Fatalf("tick %d: pheromone did not decrease (%f->%f, %f->%f)", i, prevHome, cell.Home, prevFood, cell.Food)
		}
		prevHome, prevFood = cell.Home, cell.Food
	}
	want := 1.5 * math.Pow(1-0.005, 200)
	if math.Abs(prevHome-want) > 1e-9 {
		t.Errorf("home after 200 ticks = %f, want %f", prevHome, want)
	}
}

func TestEvaporationFloorsAtZero(t *testing.T) {
	g := NewGrid(20)
	g.Deposit(3, 3, false, 1e-8, 2)
	for i := 0; i < 2000; i++ {
		g.Evaporate(0.1)
	}
	if v := g.At(3, 3).Food; v != 0 {
		t.Errorf("expected pheromone to reach 0, got %g", v)
	}
}

func TestDepositCapped(t *testing.T) {
	g := NewGrid(20)
	for i := 0; i < 10; i++ {
		g.Deposit(1, 1, true, 0.7, 2)
	}
	if v := g.At(1, 1).Home; v != 2 {
		t.Errorf("home = %f, want cap 2", v)
	}
}

func TestDropFoodAtNestSameTick(t *testing.T) {
	c := emptyColony(t)
	c.Spawn(geom.Vec{X: 50.5, Y: 51.6}, -math.Pi/2, true)
	c.Step()

	a := c.Ants()[0]
	if a.HasFood {
		t.Fatalf("ant at %v still carries food", a.Pos)
	}
	if c.Deliveries() != 1 || a.Trips != 1 {
		t.Errorf("deliveries = %d trips = %d, want 1", c.Deliveries(), a.Trips)
	}
}

func TestPickUpFood(t *testing.T) {
	c := emptyColony(t)
	for y := 48; y <= 52; y++ {
		if err := c.PlaceFood(60, y); err != nil {
			t.Fatal(err)
		}
	}
	c.Spawn(geom.Vec{X: 59.5, Y: 50.5}, 0, false)
	c.Step()

	if a := c.Ants()[0]; !a.HasFood {
		t.Fatalf("ant at %v did not pick up food", a.Pos)
	}
	total := 0
	for y := 48; y <= 52; y++ {
		total += c.grid.At(60, y).FoodLeft
	}
	if total != 5*100-1 {
		t.Errorf("food left = %d, want %d", total, 5*100-1)
	}
}

func TestObstacleClearsFoodAndPheromone(t *testing.T) {
	c := emptyColony(t)
	if err := c.PlaceFood(20, 20); err != nil {
		t.Fatal(err)
	}
	c.grid.Deposit(20, 20, true, 1, 2)
	c.grid.Deposit(20, 20, false, 1, 2)

	if err := c.ToggleObstacle(20, 20); err != nil {
		t.Fatal(err)
	}
	cell := c.grid.At(20, 20)
	if !cell.Obstacle || cell.HasFood() || cell.Home != 0 || cell.Food != 0 {
		t.Errorf("unexpected cell after obstacle placement: %+v", cell)
	}

	if err := c.ToggleObstacle(20, 20); err != nil {
		t.Fatal(err)
	}
	if c.grid.At(20, 20).Obstacle {
		t.Error("second toggle should clear the obstacle")
	}
}

func TestEditErrors(t *testing.T) {
	c := emptyColony(t)
	n := c.grid.NestCell()
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"food on nest", c.PlaceFood(n.X, n.Y), ErrNestCell},
		{"obstacle on nest", c.ToggleObstacle(n.X, n.Y), ErrNestCell},
		{"food off grid", c.PlaceFood(-1, 5), ErrOutOfRange},
		{"obstacle off grid", c.ToggleObstacle(5, 100), ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("got %v, want %v", tt.err, tt.want)
			}
		})
	}
}

func TestOffGridReadsAsObstacle(t *testing.T) {
	c := emptyColony(t)
	for _, s := range c.sense(geom.Vec{X: 1, Y: 50}, math.Pi, false) {
		if !s.Obstacle || s.Pheromone != 0 {
			t.Errorf("sensor %+v should read as obstacle", s)
		}
	}
	start := geom.Vec{X: 0.5, Y: 50.5}
	if got := c.move(start, math.Pi); got != start {
		t.Errorf("move off grid went to %v", got)
	}
}

func TestMoveBlockedByObstacle(t *testing.T) {
	c := emptyColony(t)
	if err := c.ToggleObstacle(31, 30); err != nil {
		t.Fatal(err)
	}
	start := geom.Vec{X: 30.5, Y: 30.5}
	if got := c.move(start, 0); got != start {
		t.Errorf("ant walked into rock at %v", got)
	}
}

func TestSensorFollowsState(t *testing.T) {
	c := emptyColony(t)
	// Center sensor 20 cells east of (20.5, 20.5).
	c.grid.Deposit(40, 20, true, 1, 2)
	c.grid.Deposit(40, 20, false, 2, 2)

	searching := c.sense(geom.Vec{X: 20.5, Y: 20.5}, 0, false)
	carrying := c.sense(geom.Vec{X: 20.5, Y: 20.5}, 0, true)
	if searching[1].Pheromone <= carrying[1].Pheromone {
		t.Errorf("searching ant should read food pheromone: %f vs %f", searching[1].Pheromone, carrying[1].Pheromone)
	}
	if carrying[1].Pheromone <= 0 {
		t.Error("carrying ant should read home pheromone away from the nest")
	}

	// Within SensorDistance*NearNestFactor of the nest, home pheromone is ignored.
	n := c.grid.Nest()
	c.grid.Deposit(int(n.X)+20, int(n.Y), true, 1, 2)
	if r := c.sense(geom.Vec{X: n.X + 0.5, Y: n.Y + 0.5}, 0, true); r[1].Pheromone != 0 {
		t.Errorf("near-nest home reading = %f, want 0", r[1].Pheromone)
	}
}

func TestClearKeepsNest(t *testing.T) {
	c := NewColony(DefaultSettings(), 2)
	_ = c.PlaceFood(10, 10)
	_ = c.ToggleObstacle(11, 10)
	for i := 0; i < 10; i++ {
		c.Step()
	}
	c.Clear()
	g := c.Grid()
	n := g.NestCell()
	if !g.At(n.X, n.Y).Nest {
		t.Fatal("nest removed by Clear")
	}
	if g.TotalPheromone() != 0 || g.FoodCells() != 0 || g.At(11, 10).Obstacle {
		t.Error("Clear left food, rock or pheromone behind")
	}
	if c.Len() != 50 {
		t.Errorf("Clear should keep ants, have %d", c.Len())
	}
}

func TestColonyRunsWithoutEscaping(t *testing.T) {
	c := NewColony(DefaultSettings(), 3)
	c.ScatterRocks(DefaultRockField(3))
	_ = c.PlaceFood(70, 70)
	for i := 0; i < 300; i++ {
		c.Step()
	}
	size := float64(c.Settings().GridSize)
	for _, a := range c.Ants() {
		if a.Pos.X < 0 || a.Pos.X >= size || a.Pos.Y < 0 || a.Pos.Y >= size {
			t.Fatalf("ant %d escaped to %v", a.ID, a.Pos)
		}
		if _, cell := c.grid.CellAt(a.Pos); cell.Obstacle {
			t.Fatalf("ant %d inside rock at %v", a.ID, a.Pos)
		}
		if len(a.Path) > c.Settings().PathLength {
			t.Fatalf("path length %d", len(a.Path))
		}
	}
	if len(c.History()) != 50 {
		t.Errorf("history length %d, want 50", len(c.History()))
	}
}

func TestScatterRocksKeepsClearing(t *testing.T) {
	c := emptyColony(t)
	rf := DefaultRockField(9)
	rf.Threshold = -1 // every eligible cell
	placed := c.ScatterRocks(rf)
	if placed == 0 {
		t.Fatal("expected rocks")
	}
	n := c.grid.Nest()
	for y := 0; y < c.grid.Size(); y++ {
		for x := 0; x < c.grid.Size(); x++ {
			center := geom.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if c.grid.At(x, y).Obstacle && geom.Distance(center, n) < rf.Clearing {
				t.Fatalf("rock at (%d,%d) inside the nest clearing", x, y)
			}
		}
	}
}

func TestEvaluateEfficiency(t *testing.T) {
	tests := []struct {
		name  string
		st    Stats
		score float64
		hints int
	}{
		{"thriving", Stats{FoodCarriers: 5, ActiveAnts: 40, AveragePathLength: 20, TotalPheromone: 80}, 1.0, 0},
		{"long paths", Stats{FoodCarriers: 1, ActiveAnts: 40, AveragePathLength: 40, TotalPheromone: 80}, 0.8, 1},
		{"idle", Stats{FoodCarriers: 10, ActiveAnts: 5, AveragePathLength: 60, TotalPheromone: 10}, 0.3, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := EvaluateEfficiency(tt.st)
			if math.Abs(e.Score-tt.score) > 1e-9 {
				t.Errorf("score = %f, want %f", e.Score, tt.score)
			}
			if len(e.Suggestions) != tt.hints {
				t.Errorf("suggestions = %v, want %d", e.Suggestions, tt.hints)
			}
		})
	}
}

func TestSuggestParameters(t *testing.T) {
	s, changed := SuggestParameters(Stats{AveragePathLength: 45, TotalPheromone: 10, FoodCarriers: 3, ActiveAnts: 1}, DefaultSettings())
	if s.PheromoneStrength != 1.5 || s.Evaporation != 0.01 || s.AntSpeed != 1.5 {
		t.Errorf("unexpected suggestion %+v", s)
	}
	if len(changed) != 3 {
		t.Errorf("changed = %v", changed)
	}

	_, changed = SuggestParameters(Stats{AveragePathLength: 25, TotalPheromone: 60, ActiveAnts: 10}, DefaultSettings())
	if len(changed) != 0 {
		t.Errorf("expected no changes, got %v", changed)
	}
}

func TestPlaceFoodPile(t *testing.T) {
	c := emptyColony(t)
	_ = c.ToggleObstacle(10, 11)
	nest := c.Grid().NestCell()

	tests := []struct {
		name       string
		x, y, r    int
		wantPlaced int
	}{
		{"disc around a rock", 10, 10, 2, 12},
		{"skips the nest", nest.X, nest.Y, 1, 4},
		{"clipped at the corner", 0, 0, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.PlaceFoodPile(tt.x, tt.y, tt.r); got != tt.wantPlaced {
				t.Errorf("PlaceFoodPile(%d,%d,%d) = %d, want %d", tt.x, tt.y, tt.r, got, tt.wantPlaced)
			}
		})
	}

	if c.Grid().At(10, 11).HasFood() {
		t.Error("food placed on a rock")
	}
}
