// Package main searches ant colony parameters with Nelder-Mead, maximizing
// food deliveries over a fixed set of seeds.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/gallery"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// evalSeeds returns the fixed seeds every evaluation runs against.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

// tuneOptions configures one search.
type tuneOptions struct {
	Ticks       int
	Seeds       int
	MaxEvals    int
	SimplexSize float64
	WindowTicks int
}

// tuneResult is the best point found.
type tuneResult struct {
	Params  []float64 // clamped raw values
	Fitness float64
	Evals   int
}

// tune runs the search against base, writing one CSV row per evaluation to
// logOut and a progress line per evaluation to progress.
func tune(base *config.Config, params *ParamVector, opts tuneOptions, logOut, progress io.Writer) (tuneResult, error) {
	evaluator := NewFitnessEvaluator(params, opts.Ticks, evalSeeds(opts.Seeds), base.Ants, opts.WindowTicks)

	logWriter := csv.NewWriter(logOut)
	defer logWriter.Flush()

	header := []string{"eval", "fitness", "deliveries", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := logWriter.Write(header); err != nil {
		return tuneResult{}, fmt.Errorf("writing log header: %w", err)
	}

	best := tuneResult{Fitness: 1e9}
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Nelder-Mead works in normalized space and may step outside [0,1].
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			best.Evals++

			if fitness < best.Fitness {
				best.Fitness = fitness
				best.Params = clamped
			}

			deliveries, quality := evaluator.Last()
			row := []string{
				strconv.Itoa(best.Evals),
				fmt.Sprintf("%.6f", fitness),
				fmt.Sprintf("%.2f", deliveries),
				fmt.Sprintf("%.4f", quality),
			}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(best.Evals)
			remaining := time.Duration(max(opts.MaxEvals-best.Evals, 0)) * avgPerEval

			fmt.Fprintf(progress, "Eval %d/%d: deliveries=%s quality=%.2f (best=%.1f) | elapsed: %s, ETA: %s\n",
				best.Evals, opts.MaxEvals, humanize.CommafWithDigits(deliveries, 1), quality, -best.Fitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: opts.MaxEvals,
		Concurrent:      0, // seeds already run in parallel
	}
	method := &optimize.NelderMead{SimplexSize: opts.SimplexSize}

	initX := params.Normalize(params.Extract(base.Ants.Settings))
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil && best.Params == nil {
		return best, fmt.Errorf("optimization failed: %w", err)
	}
	if err != nil {
		fmt.Fprintf(progress, "optimization ended: %v\n", err)
	}
	if best.Params == nil && result != nil {
		best.Params = params.Clamp(params.Denormalize(result.X))
	}
	return best, logWriter.Error()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	ticks := flag.Int("ticks", 3000, "Simulation ticks per run")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	simplex := flag.Float64("simplex", 0.2, "Initial simplex size in normalized parameter space")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()
	params := NewParamVector()

	logPath := filepath.Join(*outputDir, "tune_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	fmt.Printf("Starting Nelder-Mead search with %d parameters, max_evals=%d\n", params.Dim(), *maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", *seeds, *ticks)

	startTime := time.Now()
	best, err := tune(baseCfg, params, tuneOptions{
		Ticks:       *ticks,
		Seeds:       *seeds,
		MaxEvals:    *maxEvals,
		SimplexSize: *simplex,
		WindowTicks: baseCfg.Telemetry.WindowTicks,
	}, logFile, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nSearch complete after %d evaluations in %s\n", best.Evals, formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %.1f\n", best.Fitness)

	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, best.Params[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	bestCfg.Ants.Settings = params.Apply(bestCfg.Ants.Settings, best.Params)
	bestCfg.Gallery.Demo = gallery.DemoAnts

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
	} else {
		fmt.Printf("\nBest config saved to: %s\n", configOutPath)
	}
}
