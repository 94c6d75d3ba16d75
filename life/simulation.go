package life

import (
	"math/rand"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/telemetry"
)

// Settings configures a Simulation.
type Settings struct {
	Rows          int     `yaml:"rows"`
	Cols          int     `yaml:"cols"`
	RandomRegion  int     `yaml:"random_region"`  // side of the centered square Randomize fills
	RandomDensity float64 `yaml:"random_density"` // live probability inside that square
	HistorySize   int     `yaml:"history_size"`
	Scenario      string  `yaml:"scenario"` // loaded on Reset when set
}

// DefaultSettings returns a 100x100 board with a 40x40 random seed region.
func DefaultSettings() Settings {
	return Settings{
		Rows:          100,
		Cols:          100,
		RandomRegion:  40,
		RandomDensity: 0.3,
		HistorySize:   telemetry.DefaultHistorySize,
	}
}

// Clamp forces every field into range.
func (s Settings) Clamp() Settings {
	s.Rows = geom.ClampInt(s.Rows, 3, 1000)
	s.Cols = geom.ClampInt(s.Cols, 3, 1000)
	s.RandomRegion = geom.ClampInt(s.RandomRegion, 1, min(s.Rows, s.Cols))
	s.RandomDensity = geom.Clamp01(s.RandomDensity)
	s.HistorySize = geom.ClampInt(s.HistorySize, 1, 10000)
	if _, ok := Scenarios[s.Scenario]; !ok {
		s.Scenario = ""
	}
	return s
}

// PopulationPoint is one entry of the population history.
type PopulationPoint struct {
	Generation int `csv:"generation"`
	Population int `csv:"population"`
}

// Simulation owns a grid, its generation counter and a bounded population history.
type Simulation struct {
	settings   Settings
	grid       Grid
	generation int
	history    *telemetry.History[PopulationPoint]
	rng        *rand.Rand
}

// NewSimulation builds a simulation and applies Reset.
func NewSimulation(s Settings, seed int64) *Simulation {
	s = s.Clamp()
	sim := &Simulation{
		settings: s,
		history:  telemetry.NewHistory[PopulationPoint](s.HistorySize),
		rng:      rand.New(rand.NewSource(seed)),
	}
	sim.Reset()
	return sim
}

func (s *Simulation) Settings() Settings { return s.settings }
func (s *Simulation) Grid() Grid         { return s.grid }
func (s *Simulation) Generation() int    { return s.generation }

// History returns the recorded population points, oldest first.
func (s *Simulation) History() []PopulationPoint { return s.history.Items() }

// Step advances one generation and returns the new grid.
func (s *Simulation) Step() Grid {
	s.grid = s.grid.Step()
	s.generation++
	s.record()
	return s.grid
}

// Toggle flips one cell of the current grid.
func (s *Simulation) Toggle(r, c int) error {
	g, err := s.grid.Toggle(r, c)
	if err != nil {
		return err
	}
	s.grid = g
	return nil
}

// SetSettings applies new settings. Board size changes take effect on the next Reset.
func (s *Simulation) SetSettings(st Settings) { s.settings = st.Clamp() }

// Place stamps a pattern onto the current grid.
func (s *Simulation) Place(p Pattern, row, col int) {
	s.grid = s.grid.PlacePattern(p, row, col)
}

// Reset loads the configured scenario, or a cleared board when none is set.
func (s *Simulation) Reset() {
	if sc, ok := Scenarios[s.settings.Scenario]; ok {
		s.setGrid(sc.Load(s.settings.Rows, s.settings.Cols))
		return
	}
	s.Clear()
}

// Clear kills every cell.
func (s *Simulation) Clear() {
	s.setGrid(NewGrid(s.settings.Rows, s.settings.Cols))
}

// Randomize seeds the centered region.
func (s *Simulation) Randomize() {
	s.setGrid(NewGrid(s.settings.Rows, s.settings.Cols).Randomize(s.settings.RandomRegion, s.settings.RandomDensity, s.rng))
}

// LoadScenario clears the board and applies the named scenario.
func (s *Simulation) LoadScenario(key string) error {
	sc, err := LookupScenario(key)
	if err != nil {
		return err
	}
	s.setGrid(sc.Load(s.settings.Rows, s.settings.Cols))
	return nil
}

func (s *Simulation) setGrid(g Grid) {
	s.grid = g
	s.generation = 0
	s.history.Clear()
	s.record()
}

func (s *Simulation) record() {
	s.history.Push(PopulationPoint{Generation: s.generation, Population: s.grid.CountLive()})
}
