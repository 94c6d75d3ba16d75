// Package telemetry provides windowed statistics, milestone bookmarks, perf
// timing and CSV/plot output for the gallery demos.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics of one demo metric over a window of ticks.
type WindowStats struct {
	Demo            string `csv:"demo"`
	Metric          string `csv:"metric"`
	WindowStartTick int    `csv:"-"`
	WindowEndTick   int    `csv:"window_end"`

	// Value at window end
	Last float64 `csv:"last"`

	// Distribution of per-tick samples in the window
	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"`
	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`

	// Discrete events counted during the window (accepted mutations, deliveries, births)
	Events int `csv:"events"`
}

// Summary is the distribution of a set of samples.
type Summary struct {
	Mean, Std     float64
	Min, Max      float64
	P10, P50, P90 float64
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Summarize computes mean, population standard deviation, range and percentiles.
// An empty input yields the zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean: mean,
		Std:  std,
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("demo", s.Demo),
		slog.String("metric", s.Metric),
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Float64("last", s.Last),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Int("events", s.Events),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
