package main

import (
	"errors"
	"testing"

	"github.com/pthm-cable/menagerie/art"
	"github.com/pthm-cable/menagerie/config"
)

func TestApplyFlags(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	if err := applyFlags(cfg, "ants", "mosaic", "in.png", 42, 7); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if cfg.Gallery.Demo != "ants" || cfg.Art.Image != "in.png" {
		t.Errorf("demo/image not applied: %+v %+v", cfg.Gallery, cfg.Art.Image)
	}
	if cfg.Derived.ArtStyle != art.StyleMosaic {
		t.Errorf("style = %q, want mosaic", cfg.Derived.ArtStyle)
	}
	if cfg.Gallery.Seed != 42 || cfg.Gallery.StepsPerUpdate != 7 {
		t.Errorf("seed/steps = %d/%d, want 42/7", cfg.Gallery.Seed, cfg.Gallery.StepsPerUpdate)
	}
}

func TestApplyFlagsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	demo := cfg.Gallery.Demo

	if err := applyFlags(cfg, "", "", "", 0, 0); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if cfg.Gallery.Demo != demo {
		t.Errorf("demo changed to %q", cfg.Gallery.Demo)
	}
	if cfg.Gallery.Seed == 0 {
		t.Error("expected a time-based seed")
	}
}

func TestApplyFlagsBadStyle(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := applyFlags(cfg, "", "watercolor", "", 0, 0); !errors.Is(err, art.ErrUnknownStyle) {
		t.Errorf("err = %v, want ErrUnknownStyle", err)
	}
}
