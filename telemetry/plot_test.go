package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPlotSeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitness.png")

	best := Series{Name: "best", Values: []float64{0.1, 0.4, 0.6, 0.7}}
	empty := Series{Name: "empty"}
	if err := PlotSeries(path, "Fitness", "generation", "fitness", best, empty); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
