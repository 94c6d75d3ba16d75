package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/telemetry"
)

// FitnessEvaluator runs headless colonies and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	ticks       int
	seeds       []int64
	base        config.AntsConfig
	windowTicks int

	mu             sync.Mutex
	bestFitness    float64
	lastDeliveries float64 // mean deliveries from the most recent Evaluate call
	lastQuality    float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, base config.AntsConfig, windowTicks int) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		seeds:       seeds,
		base:        base,
		windowTicks: max(windowTicks, 1),
		bestFitness: math.Inf(1),
	}
}

// Last returns the mean deliveries and quality from the most recent evaluation.
func (fe *FitnessEvaluator) Last() (deliveries, quality float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastDeliveries, fe.lastQuality
}

// runResult holds the results from a single colony run.
type runResult struct {
	deliveries  int
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for raw parameter values (lower = better).
// Fitness is negative deliveries, boosted by up to 20% for steady foraging.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.base
	cfg.Settings = fe.params.Apply(cfg.Settings, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runColony(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalDeliveries, totalQuality float64
	for _, r := range results {
		q := computeQuality(r.windowStats)
		totalFitness += computeFitness(r.deliveries, q)
		totalDeliveries += float64(r.deliveries)
		totalQuality += q
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	fe.bestFitness = math.Min(fe.bestFitness, avgFitness)
	fe.lastDeliveries = totalDeliveries / n
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runColony executes a single headless colony run for the configured ticks.
func (fe *FitnessEvaluator) runColony(cfg config.AntsConfig, seed int64) runResult {
	var result runResult

	demo := gallery.NewAntsDemo(cfg, seed)
	runner, err := gallery.NewRunner(demo, gallery.Options{
		StepsPerUpdate:      1,
		WindowTicks:         fe.windowTicks,
		BookmarkHistorySize: 20,
		PerfCollectorWindow: 120,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		// Without an output directory NewRunner has nothing to fail on.
		panic(err)
	}
	defer runner.Close()

	for runner.Tick() < fe.ticks {
		runner.Update()
	}
	result.deliveries = demo.Colony().Deliveries()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(deliveries × (1.0 + 0.2 × quality))
func computeFitness(deliveries int, quality float64) float64 {
	return -(float64(deliveries) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability = 0.5
	qualityWeightActivity  = 0.5

	qualityWarmupWindows = 3 // skip first N windows while trails form
)

// computeQuality scores foraging steadiness ∈ [0, 1] from window stats: a
// stable number of food carriers and deliveries in most windows.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	means := make([]float64, 0, len(valid))
	active := 0
	for _, w := range valid {
		means = append(means, w.Mean)
		if w.Events > 0 {
			active++
		}
	}

	stability := 0.0
	if c := cv(means); len(means) >= 2 && !math.IsNaN(c) {
		stability = math.Exp(-c * c)
	}
	activity := float64(active) / float64(len(valid))

	return clamp01(qualityWeightStability*stability + qualityWeightActivity*activity)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	s := telemetry.Summarize(values)
	if s.Mean == 0 {
		return 0
	}
	return s.Std / s.Mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Max(0, math.Min(x, 1))
}
