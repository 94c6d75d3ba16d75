// Package config provides configuration loading and access for the gallery.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/art"
	"github.com/pthm-cable/menagerie/boids"
	"github.com/pthm-cable/menagerie/life"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all gallery configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Gallery   GalleryConfig   `yaml:"gallery"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Life      life.Settings   `yaml:"life"`
	Boids     boids.Settings  `yaml:"boids"`
	Ants      AntsConfig      `yaml:"ants"`
	Art       ArtConfig       `yaml:"art"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GalleryConfig holds driver settings shared by every demo.
type GalleryConfig struct {
	Demo           string `yaml:"demo"`
	StepsPerUpdate int    `yaml:"steps_per_update"` // engine ticks per rendered frame
	Seed           int64  `yaml:"seed"`             // 0 = time-based
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks         int  `yaml:"window_ticks"`
	BookmarkHistorySize int  `yaml:"bookmark_history_size"`
	PerfCollectorWindow int  `yaml:"perf_collector_window"`
	Plot                bool `yaml:"plot"` // write a metric plot when a run ends
}

// AntsConfig extends the colony settings with the optional rock field.
type AntsConfig struct {
	ants.Settings `yaml:",inline"`
	Rocks         RocksConfig `yaml:"rocks"`
	FoodPiles     []FoodPile  `yaml:"food_piles"`
}

// FoodPile is a disc of food cells placed on reset.
type FoodPile struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Radius int `yaml:"radius"`
}

// RocksConfig controls noise-generated obstacles placed on reset.
type RocksConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Scale     float64 `yaml:"scale"`
	Threshold float64 `yaml:"threshold"`
	Clearing  float64 `yaml:"clearing"`
}

// RockField converts the section into colony parameters.
func (r RocksConfig) RockField(seed int64) ants.RockField {
	return ants.RockField{Scale: r.Scale, Threshold: r.Threshold, Clearing: r.Clearing, Seed: seed}
}

// ArtConfig holds one settings block per art style.
type ArtConfig struct {
	Style        string       `yaml:"style"`
	Image        string       `yaml:"image"`
	Width        int          `yaml:"width"` // target is resized to fit this canvas
	Height       int          `yaml:"height"`
	Geometric    art.Settings `yaml:"geometric"`
	Pointillism  art.Settings `yaml:"pointillism"`
	Mosaic       art.Settings `yaml:"mosaic"`
	StainedGlass art.Settings `yaml:"stained_glass"`
}

// For returns the settings block for style, or the style defaults if unknown.
func (a ArtConfig) For(style art.Style) art.Settings {
	switch style {
	case art.StyleGeometric:
		return a.Geometric
	case art.StylePointillism:
		return a.Pointillism
	case art.StyleMosaic:
		return a.Mosaic
	case art.StyleStainedGlass:
		return a.StainedGlass
	}
	return art.DefaultSettings(style)
}

// DerivedConfig holds values computed from other config values.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
	ArtStyle  art.Style
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived fills defaults that depend on other sections and clamps
// every engine's settings into range.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Boids canvas defaults to screen size if not specified
	if c.Boids.Width == 0 {
		c.Boids.Width = float64(c.Screen.Width)
	}
	if c.Boids.Height == 0 {
		c.Boids.Height = float64(c.Screen.Height)
	}
	if c.Art.Width == 0 {
		c.Art.Width = c.Screen.Width
	}
	if c.Art.Height == 0 {
		c.Art.Height = c.Screen.Height
	}

	if c.Gallery.StepsPerUpdate < 1 {
		c.Gallery.StepsPerUpdate = 1
	}
	if c.Telemetry.WindowTicks < 1 {
		c.Telemetry.WindowTicks = 1
	}

	style, err := art.ParseStyle(c.Art.Style)
	if err != nil {
		return fmt.Errorf("art.style: %w", err)
	}
	c.Derived.ArtStyle = style

	c.Life = c.Life.Clamp()
	c.Boids = c.Boids.Clamp()
	c.Ants.Settings = c.Ants.Settings.Clamp()
	c.Art.Geometric = c.Art.Geometric.Clamp(art.StyleGeometric)
	c.Art.Pointillism = c.Art.Pointillism.Clamp(art.StylePointillism)
	c.Art.Mosaic = c.Art.Mosaic.Clamp(art.StyleMosaic)
	c.Art.StainedGlass = c.Art.StainedGlass.Clamp(art.StyleStainedGlass)
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
