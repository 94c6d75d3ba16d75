package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/art"
	"github.com/pthm-cable/menagerie/boids"
	"github.com/pthm-cable/menagerie/life"
)

func TestDefaultsMatchEngineDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(cfg.Life, life.DefaultSettings()) {
		t.Errorf("life defaults drifted:\n got %+v\nwant %+v", cfg.Life, life.DefaultSettings())
	}
	if !reflect.DeepEqual(cfg.Boids, boids.DefaultSettings()) {
		t.Errorf("boids defaults drifted:\n got %+v\nwant %+v", cfg.Boids, boids.DefaultSettings())
	}
	if !reflect.DeepEqual(cfg.Ants.Settings, ants.DefaultSettings()) {
		t.Errorf("ants defaults drifted:\n got %+v\nwant %+v", cfg.Ants.Settings, ants.DefaultSettings())
	}
	for _, style := range art.Styles {
		got := cfg.Art.For(style)
		want := art.DefaultSettings(style).Clamp(style)
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s defaults drifted:\n got %+v\nwant %+v", style, got, want)
		}
	}
	if cfg.Derived.ArtStyle != art.StyleGeometric {
		t.Errorf("ArtStyle = %q, want geometric", cfg.Derived.ArtStyle)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user.yaml")
	user := []byte(`
life:
  rows: 30
boids:
  num_boids: 5000
art:
  style: mosaic
`)
	if err := os.WriteFile(path, user, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Life.Rows != 30 {
		t.Errorf("life.rows = %d, want 30", cfg.Life.Rows)
	}
	if cfg.Life.Cols != 100 {
		t.Errorf("life.cols = %d, want default 100", cfg.Life.Cols)
	}
	if cfg.Boids.NumBoids != 200 {
		t.Errorf("boids.num_boids = %d, want clamped 200", cfg.Boids.NumBoids)
	}
	if cfg.Derived.ArtStyle != art.StyleMosaic {
		t.Errorf("ArtStyle = %q, want mosaic", cfg.Derived.ArtStyle)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("art:\n  style: watercolor\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"unknown style", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Ants.NumAnts = 77
	cfg.Ants.Rocks.Enabled = true

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if back.Ants.NumAnts != 77 || !back.Ants.Rocks.Enabled {
		t.Errorf("round trip lost ants settings: %+v", back.Ants)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() { global = saved }()

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
