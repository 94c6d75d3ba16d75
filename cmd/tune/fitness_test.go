package main

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/menagerie/telemetry"
)

func TestComputeFitness(t *testing.T) {
	tests := []struct {
		name       string
		deliveries int
		quality    float64
		want       float64
	}{
		{"none", 0, 1, 0},
		{"no quality", 10, 0, -10},
		{"full quality", 10, 1, -12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeFitness(tt.deliveries, tt.quality); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("computeFitness = %v, want %v", got, tt.want)
			}
		})
	}
}

func windows(means []float64, events []int) []telemetry.WindowStats {
	ws := make([]telemetry.WindowStats, len(means))
	for i := range means {
		ws[i] = telemetry.WindowStats{Mean: means[i], Events: events[i]}
	}
	return ws
}

func TestComputeQuality(t *testing.T) {
	steady := windows(
		[]float64{0, 0, 0, 20, 20, 20, 20},
		[]int{0, 0, 0, 3, 3, 3, 3},
	)
	if q := computeQuality(steady); math.Abs(q-1) > 1e-9 {
		t.Errorf("steady colony quality = %v, want 1", q)
	}

	idle := windows(
		[]float64{0, 0, 0, 0, 0, 0},
		[]int{0, 0, 0, 0, 0, 0},
	)
	if q := computeQuality(idle); q != 0.5 {
		t.Errorf("idle colony quality = %v, want 0.5 (stable, inactive)", q)
	}

	erratic := windows(
		[]float64{0, 0, 0, 1, 40, 1, 40},
		[]int{0, 0, 0, 1, 0, 1, 0},
	)
	if q := computeQuality(erratic); q >= 0.5 {
		t.Errorf("erratic colony quality = %v, want < 0.5", q)
	}

	if q := computeQuality(steady[:qualityWarmupWindows]); q != 0 {
		t.Errorf("warmup-only quality = %v, want 0", q)
	}
}

func TestCV(t *testing.T) {
	if got := cv(nil); got != 0 {
		t.Errorf("cv(nil) = %v", got)
	}
	if got := cv([]float64{5, 5, 5}); got != 0 {
		t.Errorf("cv(constant) = %v", got)
	}
	if got := cv([]float64{1, 3}); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("cv([1 3]) = %v, want 0.5", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 200, []int64{1, 2}, cfg.Ants, 20)

	x := pv.Extract(cfg.Ants.Settings)
	a := fe.Evaluate(x)
	b := fe.Evaluate(x)
	if a != b {
		t.Errorf("same params and seeds gave %v then %v", a, b)
	}
	if a > 0 {
		t.Errorf("fitness = %v, want <= 0", a)
	}

	deliveries, quality := fe.Last()
	if deliveries < 0 || quality < 0 || quality > 1 {
		t.Errorf("Last() = %v, %v", deliveries, quality)
	}
}

func TestTuneWritesLog(t *testing.T) {
	cfg := loadDefaults(t)
	pv := NewParamVector()

	var logBuf bytes.Buffer
	best, err := tune(cfg, pv, tuneOptions{
		Ticks:       50,
		Seeds:       1,
		MaxEvals:    3,
		SimplexSize: 0.2,
		WindowTicks: 10,
	}, &logBuf, io.Discard)
	if err != nil {
		t.Fatalf("tune: %v", err)
	}
	if best.Evals == 0 {
		t.Fatal("no evaluations ran")
	}
	if len(best.Params) != pv.Dim() {
		t.Fatalf("best params len = %d, want %d", len(best.Params), pv.Dim())
	}

	rows, err := csv.NewReader(&logBuf).ReadAll()
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(rows) != best.Evals+1 {
		t.Errorf("log rows = %d, want header + %d", len(rows), best.Evals)
	}
	if got, want := len(rows[0]), 4+pv.Dim(); got != want {
		t.Errorf("header columns = %d, want %d", got, want)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00s"},
		{90 * time.Second, "1m30s"},
		{3*time.Hour + 5*time.Minute + 7*time.Second, "3h05m07s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
