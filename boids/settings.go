package boids

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/menagerie/geom"
)

// MouseMode selects how the pointer influences the flock.
type MouseMode string

const (
	MouseNone    MouseMode = "none"
	MouseAttract MouseMode = "attract"
	MouseRepel   MouseMode = "repel"
)

// Settings configures a Flock.
type Settings struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	AlignmentForce  float64 `yaml:"alignment_force"`
	CohesionForce   float64 `yaml:"cohesion_force"`
	SeparationForce float64 `yaml:"separation_force"`
	VisualRange     float64 `yaml:"visual_range"`
	SeparationRange float64 `yaml:"separation_range"`
	NumBoids        int     `yaml:"num_boids"`
	MaxSpeed        float64 `yaml:"max_speed"`
	MaxForce        float64 `yaml:"max_force"`

	MouseMode   MouseMode `yaml:"mouse_mode"`
	MouseForce  float64   `yaml:"mouse_force"`
	MouseRadius float64   `yaml:"mouse_radius"`

	NumPredators        int     `yaml:"num_predators"`
	PredatorForce       float64 `yaml:"predator_force"`
	PredatorBoost       float64 `yaml:"predator_boost"`        // speed and force multiplier for predators
	PredatorRangeFactor float64 `yaml:"predator_range_factor"` // multiple of VisualRange for chase and flee

	GroupRadius   float64 `yaml:"group_radius"`
	ScatterFactor float64 `yaml:"scatter_factor"` // multiple of MaxSpeed for Scatter velocities
	HistorySize   int     `yaml:"history_size"`
}

// DefaultSettings returns the balanced default flock on an 800x600 canvas.
func DefaultSettings() Settings {
	return Settings{
		Width:               800,
		Height:              600,
		AlignmentForce:      1,
		CohesionForce:       1,
		SeparationForce:     1.2,
		VisualRange:         50,
		SeparationRange:     25,
		NumBoids:            50,
		MaxSpeed:            4,
		MaxForce:            0.2,
		MouseMode:           MouseNone,
		MouseForce:          1,
		MouseRadius:         100,
		PredatorForce:       1,
		PredatorBoost:       1.2,
		PredatorRangeFactor: 1.5,
		GroupRadius:         50,
		ScatterFactor:       2,
		HistorySize:         50,
	}
}

// Clamp forces every field into its documented range.
func (s Settings) Clamp() Settings {
	s.Width = geom.Clamp(s.Width, 100, 4096)
	s.Height = geom.Clamp(s.Height, 100, 4096)
	s.AlignmentForce = geom.Clamp(s.AlignmentForce, 0, 2)
	s.CohesionForce = geom.Clamp(s.CohesionForce, 0, 2)
	s.SeparationForce = geom.Clamp(s.SeparationForce, 0, 2)
	s.VisualRange = geom.Clamp(s.VisualRange, 20, 100)
	s.SeparationRange = geom.Clamp(s.SeparationRange, 10, 50)
	s.NumBoids = geom.ClampInt(s.NumBoids, 0, 200)
	s.MaxSpeed = geom.Clamp(s.MaxSpeed, 1, 10)
	s.MaxForce = geom.Clamp(s.MaxForce, 0.1, 1)
	switch s.MouseMode {
	case MouseAttract, MouseRepel:
	default:
		s.MouseMode = MouseNone
	}
	s.MouseForce = geom.Clamp(s.MouseForce, 0, 2)
	s.MouseRadius = geom.Clamp(s.MouseRadius, 10, 300)
	s.NumPredators = geom.ClampInt(s.NumPredators, 0, 10)
	s.PredatorForce = geom.Clamp(s.PredatorForce, 0, 2)
	s.PredatorBoost = geom.Clamp(s.PredatorBoost, 1, 3)
	s.PredatorRangeFactor = geom.Clamp(s.PredatorRangeFactor, 1, 3)
	s.GroupRadius = geom.Clamp(s.GroupRadius, 10, 200)
	s.ScatterFactor = geom.Clamp(s.ScatterFactor, 1, 5)
	s.HistorySize = geom.ClampInt(s.HistorySize, 1, 10000)
	return s
}

// Preset is a named set of flocking parameters.
type Preset struct {
	Name        string
	Description string
	Apply       func(Settings) Settings
}

// Presets indexes the built-in flock tunings by key.
var Presets = map[string]Preset{
	"default": {
		Name:        "Default Flock",
		Description: "Balanced flocking behavior",
		Apply: func(s Settings) Settings {
			s.AlignmentForce, s.CohesionForce, s.SeparationForce = 1, 1, 1.2
			s.VisualRange, s.SeparationRange = 50, 25
			s.NumBoids, s.MaxSpeed, s.MaxForce = 100, 4, 0.2
			return s
		},
	},
	"tight": {
		Name:        "Tight Formation",
		Description: "Boids stay close together",
		Apply: func(s Settings) Settings {
			s.AlignmentForce, s.CohesionForce, s.SeparationForce = 1.5, 1.5, 0.8
			s.VisualRange, s.SeparationRange = 60, 20
			s.NumBoids, s.MaxSpeed, s.MaxForce = 100, 3, 0.2
			return s
		},
	},
	"scattered": {
		Name:        "Scattered Groups",
		Description: "Boids form multiple small groups",
		Apply: func(s Settings) Settings {
			s.AlignmentForce, s.CohesionForce, s.SeparationForce = 0.8, 0.8, 1.5
			s.VisualRange, s.SeparationRange = 40, 30
			s.NumBoids, s.MaxSpeed, s.MaxForce = 100, 5, 0.3
			return s
		},
	},
}

// PresetKeys returns the preset keys in sorted order.
func PresetKeys() []string {
	keys := make([]string, 0, len(Presets))
	for k := range Presets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyPreset overlays the named preset onto s.
func ApplyPreset(s Settings, key string) (Settings, error) {
	p, ok := Presets[key]
	if !ok {
		return s, fmt.Errorf("boids: unknown preset %q", key)
	}
	return p.Apply(s).Clamp(), nil
}
