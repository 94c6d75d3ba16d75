package ants

import (
	"log/slog"

	"github.com/pthm-cable/menagerie/geom"
)

// Stats summarises the colony at one tick.
type Stats struct {
	Tick              int     `csv:"tick"`
	FoodCarriers      int     `csv:"food_carriers"`
	ActiveAnts        int     `csv:"active_ants"` // farther than ActiveRadius from the nest
	AveragePathLength float64 `csv:"avg_path_length"`
	TotalPheromone    float64 `csv:"total_pheromone"`
	Deliveries        int     `csv:"deliveries"`
	FoodCells         int     `csv:"food_cells"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Int("food_carriers", s.FoodCarriers),
		slog.Int("active_ants", s.ActiveAnts),
		slog.Float64("avg_path_length", s.AveragePathLength),
		slog.Float64("total_pheromone", s.TotalPheromone),
		slog.Int("deliveries", s.Deliveries),
		slog.Int("food_cells", s.FoodCells),
	)
}

// Stats computes the current colony statistics.
func (c *Colony) Stats() Stats {
	st := Stats{
		Tick:           c.tick,
		TotalPheromone: c.grid.TotalPheromone(),
		Deliveries:     c.deliveries,
		FoodCells:      c.grid.FoodCells(),
	}
	nest := c.grid.Nest()

	var pathSum float64
	paths := 0
	query := c.filter.Query()
	for query.Next() {
		pos, f := query.Get()
		if f.HasFood {
			st.FoodCarriers++
		}
		if geom.Distance(pos.Vec(), nest) > c.settings.ActiveRadius {
			st.ActiveAnts++
		}
		if len(f.Path) > 1 {
			for i := 1; i < len(f.Path); i++ {
				pathSum += geom.Distance(f.Path[i-1].Vec(), f.Path[i].Vec())
			}
			paths++
		}
	}
	if paths > 0 {
		st.AveragePathLength = pathSum / float64(paths)
	}
	return st
}

// Efficiency grades how well the colony is foraging.
type Efficiency struct {
	Score       float64 // 0 to 1
	Suggestions []string
}

// maxSuggestions caps how many hints EvaluateEfficiency returns.
const maxSuggestions = 2

// EvaluateEfficiency scores foraging from carriers, path length and trail strength.
func EvaluateEfficiency(st Stats) Efficiency {
	var e Efficiency
	if st.FoodCarriers > 0 {
		e.Score += 0.3
	}

	switch {
	case st.AveragePathLength < 30:
		e.Score += 0.4
	case st.AveragePathLength < 50:
		e.Score += 0.2
		e.Suggestions = append(e.Suggestions, "Paths are somewhat long. Consider increasing pheromone strength.")
	default:
		e.Suggestions = append(e.Suggestions, "Paths are very long. Try adjusting ant parameters to optimize routes.")
	}

	if st.TotalPheromone > 50 {
		e.Score += 0.3
	} else {
		e.Suggestions = append(e.Suggestions, "Weak pheromone trails. Consider reducing evaporation rate.")
	}

	if st.ActiveAnts < st.FoodCarriers*2 {
		e.Suggestions = append(e.Suggestions, "Many ants are idle. Try increasing the number of active foragers.")
	}

	if len(e.Suggestions) > maxSuggestions {
		e.Suggestions = e.Suggestions[:maxSuggestions]
	}
	return e
}

// SuggestParameters returns s with tuning adjustments for the observed stats,
// plus the yaml names of the fields it changed.
func SuggestParameters(st Stats, s Settings) (Settings, []string) {
	var changed []string

	switch {
	case st.AveragePathLength > 40 && st.TotalPheromone < 30:
		s.PheromoneStrength = 1.5
		changed = append(changed, "pheromone_strength")
	case st.AveragePathLength < 20 && st.TotalPheromone > 100:
		s.PheromoneStrength = 0.8
		changed = append(changed, "pheromone_strength")
	}

	switch {
	case st.TotalPheromone > 150:
		s.Evaporation = 0.05
		changed = append(changed, "evaporation")
	case st.TotalPheromone < 20:
		s.Evaporation = 0.01
		changed = append(changed, "evaporation")
	}

	if st.ActiveAnts < st.FoodCarriers {
		s.AntSpeed = 1.5
		changed = append(changed, "ant_speed")
	}
	return s.Clamp(), changed
}
