package life

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBlinkerOscillates(t *testing.T) {
	g := NewGrid(5, 5).PlacePattern(Blinker, 2, 1)
	vertical := NewGrid(5, 5).Set(1, 2, true).Set(2, 2, true).Set(3, 2, true)

	next := g.Step()
	if !next.Equal(vertical) {
		t.Fatalf("generation 1:\n%s\nwant\n%s", next, vertical)
	}
	if back := next.Step(); !back.Equal(g) {
		t.Fatalf("generation 2:\n%s\nwant\n%s", back, g)
	}
}

func TestStillLifesAreStable(t *testing.T) {
	tests := []struct {
		name string
		p    Pattern
	}{
		{"block", Block},
		{"beehive", Beehive},
		{"loaf", Loaf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGrid(8, 8).PlacePattern(tt.p, 2, 2)
			if next := g.Step(); !next.Equal(g) {
				t.Errorf("not stable:\n%s", next)
			}
		})
	}
}

func TestDeadGridStaysDead(t *testing.T) {
	g := NewGrid(10, 10)
	for i := 0; i < 5; i++ {
		g = g.Step()
		if n := g.CountLive(); n != 0 {
			t.Fatalf("step %d: %d live cells", i, n)
		}
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	g := NewGrid(6, 6).PlacePattern(Glider, 1, 1)
	before := g.String()
	g.Step()
	if g.String() != before {
		t.Error("Step modified its receiver")
	}
}

func TestNoWraparound(t *testing.T) {
	// A blinker on the top edge loses the cells that would land off-grid.
	g := NewGrid(4, 4).PlacePattern(Blinker, 0, 0)
	next := g.Step()
	if next.CountLive() != 2 {
		t.Errorf("expected 2 live cells, got %d:\n%s", next.CountLive(), next)
	}
	if next.Alive(3, 1) {
		t.Error("cell wrapped to the bottom row")
	}
}

func TestPlacePatternClips(t *testing.T) {
	g := NewGrid(5, 5).PlacePattern(Block, 4, 4)
	if g.CountLive() != 1 || !g.Alive(4, 4) {
		t.Errorf("expected single clipped cell:\n%s", g)
	}
	g = NewGrid(5, 5).PlacePattern(Glider, -1, -1)
	if g.CountLive() != 3 {
		t.Errorf("negative offset: expected 3 cells, got %d", g.CountLive())
	}
}

func TestToggle(t *testing.T) {
	g := NewGrid(3, 3)
	next, err := g.Toggle(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !next.Alive(1, 2) || g.Alive(1, 2) {
		t.Error("toggle should flip the copy only")
	}

	_, err = g.Toggle(3, 0)
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}

func TestGliderPopulationConstant(t *testing.T) {
	g := NewGrid(20, 20).PlacePattern(Glider, 1, 1)
	for i := 0; i < 12; i++ {
		g = g.Step()
		if g.CountLive() != 5 {
			t.Fatalf("generation %d: population %d", i+1, g.CountLive())
		}
	}
}

func TestRandomizeStaysInCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := NewGrid(100, 100).Randomize(40, 0.3, rng)
	for r := 0; r < 100; r++ {
		for c := 0; c < 100; c++ {
			if g.Alive(r, c) && (r < 30 || r >= 70 || c < 30 || c >= 70) {
				t.Fatalf("live cell outside center at (%d,%d)", r, c)
			}
		}
	}
	if n := g.CountLive(); n < 300 || n > 660 {
		t.Errorf("unexpected population %d for density 0.3", n)
	}
}

func TestScenariosLoad(t *testing.T) {
	for _, key := range ScenarioKeys() {
		t.Run(key, func(t *testing.T) {
			sc, err := LookupScenario(key)
			if err != nil {
				t.Fatal(err)
			}
			if sc.Load(100, 100).CountLive() == 0 {
				t.Error("scenario produced an empty board")
			}
		})
	}
	if _, err := LookupScenario("nope"); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestPulsarPeriodThree(t *testing.T) {
	g := NewGrid(17, 17).PlacePattern(Pulsar, 2, 2)
	if g.Step().Equal(g) {
		t.Fatal("pulsar should not be still")
	}
	if !g.Step().Step().Step().Equal(g) {
		t.Error("pulsar should return after three generations")
	}
}

func TestSimulationHistoryBounded(t *testing.T) {
	s := DefaultSettings()
	s.Rows, s.Cols = 20, 20
	s.HistorySize = 10
	sim := NewSimulation(s, 1)
	sim.Place(Glider, 1, 1)
	for i := 0; i < 25; i++ {
		sim.Step()
	}
	h := sim.History()
	if len(h) != 10 {
		t.Fatalf("history length %d, want 10", len(h))
	}
	if h[len(h)-1].Generation != 25 || h[0].Generation != 16 {
		t.Errorf("history spans %d..%d, want 16..25", h[0].Generation, h[len(h)-1].Generation)
	}

	sim.Clear()
	if sim.Generation() != 0 || len(sim.History()) != 1 {
		t.Errorf("clear should reset generation and history")
	}
}
