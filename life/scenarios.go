package life

import (
	"fmt"
	"sort"
)

// Placement puts a pattern with its top-left corner at (Row, Col).
type Placement struct {
	Pattern Pattern
	Row     int
	Col     int
}

// Scenario is a named arrangement loaded onto a cleared grid.
type Scenario struct {
	Name        string
	Description string
	Placements  []Placement
}

// Scenarios indexes the built-in arrangements by key.
var Scenarios = map[string]Scenario{
	"gliderGun": {
		Name:        "Gosper Glider Gun",
		Description: "Creates an infinite stream of gliders",
		Placements:  []Placement{{GosperGun, 20, 20}},
	},
	"pulsarGarden": {
		Name:        "Pulsar Garden",
		Description: "Multiple pulsars interacting",
		Placements:  []Placement{{Pulsar, 10, 10}, {Pulsar, 30, 10}, {Pulsar, 20, 30}},
	},
	"spaceshipFleet": {
		Name:        "Spaceship Fleet",
		Description: "Different types of spaceships in formation",
		Placements:  []Placement{{LWSS, 10, 10}, {LWSS, 20, 15}, {Glider, 30, 20}, {Glider, 40, 25}},
	},
	"oscillatorMix": {
		Name:        "Oscillator Mix",
		Description: "Various oscillating patterns",
		Placements:  []Placement{{Blinker, 10, 10}, {Pentadecathlon, 20, 20}, {Pulsar, 40, 10}},
	},
	"collisionCourse": {
		Name:        "Collision Course",
		Description: "Multiple patterns set to collide",
		Placements:  []Placement{{Glider, 10, 10}, {LWSS, 30, 30}, {Loafer, 20, 20}, {Block, 25, 25}},
	},
	"stableStructures": {
		Name:        "Stable Structures",
		Description: "Collection of stable patterns",
		Placements:  []Placement{{Block, 10, 10}, {Beehive, 20, 10}, {Loaf, 30, 10}, {Block, 40, 10}},
	},
}

// ScenarioKeys returns the scenario keys in sorted order.
func ScenarioKeys() []string {
	keys := make([]string, 0, len(Scenarios))
	for k := range Scenarios {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load clears a rows x cols grid and applies every placement.
func (s Scenario) Load(rows, cols int) Grid {
	g := NewGrid(rows, cols)
	for _, p := range s.Placements {
		g = g.PlacePattern(p.Pattern, p.Row, p.Col)
	}
	return g
}

// LookupScenario finds a scenario by key.
func LookupScenario(key string) (Scenario, error) {
	s, ok := Scenarios[key]
	if !ok {
		return Scenario{}, fmt.Errorf("life: unknown scenario %q", key)
	}
	return s, nil
}
