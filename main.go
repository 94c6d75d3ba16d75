package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/menagerie/art"
	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/viewer"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	demo := flag.String("demo", "", "Demo to run: art, life, boids, ants (empty = use config)")
	style := flag.String("style", "", "Art style: geometric, pointillism, mosaic, stained-glass (empty = use config)")
	imagePath := flag.String("image", "", "Target image for the art demo (empty = use config, then a built-in sample)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, plots and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Demo ticks per update call (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := applyFlags(cfg, *demo, *style, *imagePath, *seed, *stepsPerUpdate); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, *headless, *logStats, *outputDir, *maxTicks); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with non-empty CLI flags.
func applyFlags(cfg *config.Config, demo, style, imagePath string, seed int64, steps int) error {
	if demo != "" {
		cfg.Gallery.Demo = demo
	}
	if style != "" {
		s, err := art.ParseStyle(style)
		if err != nil {
			return err
		}
		cfg.Art.Style = style
		cfg.Derived.ArtStyle = s
	}
	if imagePath != "" {
		cfg.Art.Image = imagePath
	}
	if seed != 0 {
		cfg.Gallery.Seed = seed
	}
	if cfg.Gallery.Seed == 0 {
		cfg.Gallery.Seed = time.Now().UnixNano()
	}
	if steps > 0 {
		cfg.Gallery.StepsPerUpdate = steps
	}
	return nil
}

func run(cfg *config.Config, headless, logStats bool, outputDir string, maxTicks int) error {
	var target image.Image
	if cfg.Gallery.Demo == gallery.DemoArt {
		t, err := loadTarget(cfg)
		if err != nil {
			return err
		}
		target = t
	}

	demo, err := gallery.New(cfg.Gallery.Demo, cfg, target, cfg.Gallery.Seed)
	if err != nil {
		return err
	}

	runner, err := gallery.NewRunner(demo, gallery.Options{
		LogStats:            logStats,
		OutputDir:           outputDir,
		StepsPerUpdate:      cfg.Gallery.StepsPerUpdate,
		WindowTicks:         cfg.Telemetry.WindowTicks,
		BookmarkHistorySize: cfg.Telemetry.BookmarkHistorySize,
		PerfCollectorWindow: cfg.Telemetry.PerfCollectorWindow,
		Plot:                cfg.Telemetry.Plot,
		Config:              cfg,
	})
	if err != nil {
		return err
	}
	defer finish(runner)

	slog.Info("starting demo",
		"demo", demo.Name(),
		"seed", cfg.Gallery.Seed,
		"headless", headless,
		"max_ticks", maxTicks,
		"steps_per_update", cfg.Gallery.StepsPerUpdate,
	)

	if !headless {
		return viewer.Run(runner, viewer.Options{
			Title:     "Menagerie",
			Width:     int32(cfg.Screen.Width),
			Height:    int32(cfg.Screen.Height),
			TargetFPS: int32(cfg.Screen.TargetFPS),
			MaxTicks:  maxTicks,
		})
	}

	// Headless mode - pure CPU simulation, no raylib needed
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	lastReport := start
	for ctx.Err() == nil {
		runner.Update()

		if maxTicks > 0 && runner.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", runner.Tick())
			break
		}
		if time.Since(lastReport) >= 5*time.Second {
			lastReport = time.Now()
			reportProgress(runner, start)
		}
	}
	reportProgress(runner, start)
	return nil
}

// loadTarget resolves the art target: the configured image fitted to the
// canvas, or the built-in sample at canvas size.
func loadTarget(cfg *config.Config) (image.Image, error) {
	if cfg.Art.Image == "" {
		slog.Info("no target image given, using built-in sample")
		return gallery.SampleTarget(cfg.Art.Width, cfg.Art.Height), nil
	}
	return gallery.LoadTarget(cfg.Art.Image, cfg.Art.Width, cfg.Art.Height)
}

func reportProgress(runner *gallery.Runner, start time.Time) {
	elapsed := time.Since(start)
	tick := runner.Tick()
	rate := 0.0
	if elapsed > 0 {
		rate = float64(tick) / elapsed.Seconds()
	}
	demo := runner.Demo()
	slog.Info("progress",
		"demo", demo.Name(),
		"tick", humanize.Comma(int64(tick)),
		"ticks_per_sec", humanize.CommafWithDigits(rate, 1),
		demo.MetricName(), fmt.Sprintf("%.4f", demo.Metric()),
		"elapsed", elapsed.Round(time.Second).String(),
	)
}

// finish saves the final art image next to the run output and closes the runner.
func finish(runner *gallery.Runner) {
	if ad, ok := runner.Demo().(*gallery.ArtDemo); ok && runner.Output() != nil {
		path := runner.Output().Path("art.png")
		if err := gallery.SaveImage(path, ad.Image()); err != nil {
			slog.Error("failed to save art image", "error", err)
		} else {
			slog.Info("saved art image", "path", path)
		}
	}
	if err := runner.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
