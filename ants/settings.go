package ants

import (
	"math"

	"github.com/pthm-cable/menagerie/geom"
)

// Settings configures a Colony.
type Settings struct {
	GridSize          int     `yaml:"grid_size"`
	NumAnts           int     `yaml:"num_ants"`
	PheromoneStrength float64 `yaml:"pheromone_strength"`
	Evaporation       float64 `yaml:"evaporation"`
	AntSpeed          float64 `yaml:"ant_speed"`
	SensorDistance    float64 `yaml:"sensor_distance"`
	SensorAngle       float64 `yaml:"sensor_angle"` // radians
	FoodAmount        int     `yaml:"food_amount"`  // units placed per food cell

	PheromoneCap     float64 `yaml:"pheromone_cap"`
	SensorFalloff    float64 `yaml:"sensor_falloff"`     // distance at which a reading halves
	HomeBias         float64 `yaml:"home_bias"`          // turn fraction toward the nest when carrying food
	NearNestFactor   float64 `yaml:"near_nest_factor"`   // home pheromone ignored within SensorDistance*factor of the nest
	DepositRamp      float64 `yaml:"deposit_ramp"`       // distance from the nest at which deposits reach full strength
	HomeDepositBoost float64 `yaml:"home_deposit_boost"` // multiplier for home pheromone deposits
	PathLength       int     `yaml:"path_length"`
	PathStep         float64 `yaml:"path_step"` // minimum travel before a path point is recorded
	ActiveRadius     float64 `yaml:"active_radius"`
	HistorySize      int     `yaml:"history_size"`
}

// DefaultSettings returns the default 100x100 colony of 50 ants.
func DefaultSettings() Settings {
	return Settings{
		GridSize:          100,
		NumAnts:           50,
		PheromoneStrength: 1,
		Evaporation:       0.005,
		AntSpeed:          1,
		SensorDistance:    20,
		SensorAngle:       math.Pi / 4,
		FoodAmount:        100,
		PheromoneCap:      2,
		SensorFalloff:     20,
		HomeBias:          0.5,
		NearNestFactor:    0.5,
		DepositRamp:       20,
		HomeDepositBoost:  1.5,
		PathLength:        20,
		PathStep:          1,
		ActiveRadius:      2,
		HistorySize:       50,
	}
}

// Clamp forces every field into its documented range.
func (s Settings) Clamp() Settings {
	s.GridSize = geom.ClampInt(s.GridSize, 20, 500)
	s.NumAnts = geom.ClampInt(s.NumAnts, 10, 200)
	s.PheromoneStrength = geom.Clamp(s.PheromoneStrength, 0.1, 2)
	s.Evaporation = geom.Clamp(s.Evaporation, 0.001, 0.1)
	s.AntSpeed = geom.Clamp(s.AntSpeed, 0.5, 2)
	s.SensorDistance = geom.Clamp(s.SensorDistance, 10, 50)
	s.SensorAngle = geom.Clamp(s.SensorAngle, math.Pi/12, math.Pi/2)
	s.FoodAmount = geom.ClampInt(s.FoodAmount, 1, 10000)
	s.PheromoneCap = geom.Clamp(s.PheromoneCap, 0.1, 10)
	s.SensorFalloff = geom.Clamp(s.SensorFalloff, 1, 100)
	s.HomeBias = geom.Clamp01(s.HomeBias)
	s.NearNestFactor = geom.Clamp(s.NearNestFactor, 0, 2)
	s.DepositRamp = geom.Clamp(s.DepositRamp, 1, 100)
	s.HomeDepositBoost = geom.Clamp(s.HomeDepositBoost, 0.1, 5)
	s.PathLength = geom.ClampInt(s.PathLength, 2, 500)
	s.PathStep = geom.Clamp(s.PathStep, 0, 10)
	s.ActiveRadius = geom.Clamp(s.ActiveRadius, 0, 20)
	s.HistorySize = geom.ClampInt(s.HistorySize, 1, 10000)
	return s
}
