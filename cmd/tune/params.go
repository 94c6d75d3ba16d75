package main

import (
	"math"

	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/geom"
)

// ParamSpec defines a single optimizable colony parameter.
type ParamSpec struct {
	Name string  // yaml key under ants:
	Min  float64 // Lower bound
	Max  float64 // Upper bound
	Get  func(ants.Settings) float64
	Set  func(*ants.Settings, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of colony parameters. Bounds
// follow the ranges ants.Settings.Clamp enforces.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "pheromone_strength", Min: 0.1, Max: 2,
				Get: func(s ants.Settings) float64 { return s.PheromoneStrength },
				Set: func(s *ants.Settings, v float64) { s.PheromoneStrength = v }},
			{Name: "evaporation", Min: 0.001, Max: 0.1,
				Get: func(s ants.Settings) float64 { return s.Evaporation },
				Set: func(s *ants.Settings, v float64) { s.Evaporation = v }},
			{Name: "ant_speed", Min: 0.5, Max: 2,
				Get: func(s ants.Settings) float64 { return s.AntSpeed },
				Set: func(s *ants.Settings, v float64) { s.AntSpeed = v }},
			{Name: "sensor_distance", Min: 10, Max: 50,
				Get: func(s ants.Settings) float64 { return s.SensorDistance },
				Set: func(s *ants.Settings, v float64) { s.SensorDistance = v }},
			{Name: "sensor_angle", Min: math.Pi / 12, Max: math.Pi / 2,
				Get: func(s ants.Settings) float64 { return s.SensorAngle },
				Set: func(s *ants.Settings, v float64) { s.SensorAngle = v }},
			{Name: "sensor_falloff", Min: 1, Max: 100,
				Get: func(s ants.Settings) float64 { return s.SensorFalloff },
				Set: func(s *ants.Settings, v float64) { s.SensorFalloff = v }},
			{Name: "home_bias", Min: 0, Max: 1,
				Get: func(s ants.Settings) float64 { return s.HomeBias },
				Set: func(s *ants.Settings, v float64) { s.HomeBias = v }},
			{Name: "deposit_ramp", Min: 1, Max: 100,
				Get: func(s ants.Settings) float64 { return s.DepositRamp },
				Set: func(s *ants.Settings, v float64) { s.DepositRamp = v }},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Extract reads the current parameter values from s.
func (pv *ParamVector) Extract(s ants.Settings) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Get(s)
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = geom.Clamp(v[i], spec.Min, spec.Max)
	}
	return clamped
}

// Apply returns s with the clamped values written into it.
func (pv *ParamVector) Apply(s ants.Settings, values []float64) ants.Settings {
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].Set(&s, v)
	}
	return s.Clamp()
}
