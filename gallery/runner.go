package gallery

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/menagerie/telemetry"
)

// Options configures a Runner.
type Options struct {
	LogStats            bool
	OutputDir           string // empty disables CSV output
	StepsPerUpdate      int    // engine ticks per Update call
	WindowTicks         int
	BookmarkHistorySize int
	PerfCollectorWindow int
	Plot                bool                   // write metric.png on Close
	Config              telemetry.ConfigWriter // saved into the run directory when set

	// StatsCallback receives every flushed window.
	StatsCallback func(telemetry.WindowStats)
}

// Runner steps a demo and routes its metrics into telemetry.
type Runner struct {
	demo   Demo
	opts   Options
	paused bool

	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager

	// Window means since start, for the end-of-run plot
	means []float64
	lasts []float64
}

// NewRunner wraps demo. The output directory, if any, is created immediately.
func NewRunner(demo Demo, opts Options) (*Runner, error) {
	if opts.StepsPerUpdate < 1 {
		opts.StepsPerUpdate = 1
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if opts.Config != nil {
		if err := om.WriteConfig(opts.Config); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config: %w", err)
		}
	}

	r := &Runner{
		demo:             demo,
		opts:             opts,
		collector:        telemetry.NewCollector(demo.Name(), demo.MetricName(), opts.WindowTicks),
		perfCollector:    telemetry.NewPerfCollector(opts.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(opts.BookmarkHistorySize),
		outputManager:    om,
	}
	if om != nil {
		slog.Info("writing run output", "demo", demo.Name(), "dir", om.Dir(), "run_id", om.RunID())
	}
	return r, nil
}

// Demo returns the wrapped demo.
func (r *Runner) Demo() Demo { return r.demo }

// Tick returns the demo's tick counter.
func (r *Runner) Tick() int { return r.demo.Tick() }

// Paused reports whether Update is a no-op.
func (r *Runner) Paused() bool { return r.paused }

// SetPaused starts or stops stepping.
func (r *Runner) SetPaused(p bool) { r.paused = p }

// TogglePause flips the paused state.
func (r *Runner) TogglePause() { r.paused = !r.paused }

// StepsPerUpdate returns the current speed multiplier.
func (r *Runner) StepsPerUpdate() int { return r.opts.StepsPerUpdate }

// SetStepsPerUpdate changes the speed multiplier, clamped to [1, 100].
func (r *Runner) SetStepsPerUpdate(n int) {
	r.opts.StepsPerUpdate = max(1, min(n, 100))
}

// Update runs StepsPerUpdate ticks unless paused.
func (r *Runner) Update() {
	if r.paused {
		return
	}
	for i := 0; i < r.opts.StepsPerUpdate; i++ {
		r.step()
	}
}

// StepOnce runs a single tick regardless of the paused state.
func (r *Runner) StepOnce() { r.step() }

func (r *Runner) step() {
	r.perfCollector.StartTick()

	r.perfCollector.StartPhase(telemetry.PhaseStep)
	r.demo.Step()

	r.perfCollector.StartPhase(telemetry.PhaseStats)
	r.collector.Record(r.demo.Metric())
	r.collector.RecordEvents(r.demo.DrainEvents())

	r.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	r.flushTelemetry()

	r.perfCollector.EndTick()
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (r *Runner) flushTelemetry() {
	tick := r.demo.Tick()
	if !r.collector.ShouldFlush(tick) {
		return
	}

	stats := r.collector.Flush(tick)
	perfStats := r.perfCollector.Stats()
	r.means = append(r.means, stats.Mean)
	r.lasts = append(r.lasts, stats.Last)

	if r.opts.StatsCallback != nil {
		r.opts.StatsCallback(stats)
	}

	if r.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if r.outputManager != nil {
		if err := r.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := r.outputManager.WritePerf(perfStats, r.demo.Name(), tick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
		if err := r.demo.WriteSample(r.outputManager); err != nil {
			slog.Error("failed to write sample", "error", err)
		}
	}

	for _, bm := range r.bookmarkDetector.Check(stats) {
		if r.opts.LogStats {
			bm.LogBookmark()
		}
		if err := r.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// Reset restarts the demo and all windowed telemetry.
func (r *Runner) Reset() {
	r.demo.Reset()
	r.ResetTelemetry()
	slog.Info("demo reset", "demo", r.demo.Name())
}

// ResetTelemetry restarts windowed telemetry at the demo's current tick.
// Call it after editing the demo directly in a way that rewinds its tick.
func (r *Runner) ResetTelemetry() {
	r.demo.DrainEvents()
	r.collector.Reset(r.demo.Tick())
	r.bookmarkDetector.Reset()
}

// RecordFrame records frame timing for graphics mode.
func (r *Runner) RecordFrame() { r.perfCollector.RecordFrame() }

// PerfStats returns timing over the perf window.
func (r *Runner) PerfStats() telemetry.PerfStats { return r.perfCollector.Stats() }

// Output returns the run's output manager, nil when output is disabled.
func (r *Runner) Output() *telemetry.OutputManager { return r.outputManager }

// Close writes the metric plot when enabled and closes all output files.
func (r *Runner) Close() error {
	if r.opts.Plot && r.outputManager != nil && len(r.means) > 0 {
		name := r.demo.MetricName()
		err := telemetry.PlotSeries(r.outputManager.Path("metric.png"),
			r.demo.Name(), "window", name,
			telemetry.Series{Name: name + " mean", Values: r.means},
			telemetry.Series{Name: name + " last", Values: r.lasts},
		)
		if err != nil {
			slog.Error("failed to write plot", "error", err)
		}
	}
	return r.outputManager.Close()
}
