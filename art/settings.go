package art

import (
	"image/color"

	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/pixel"
)

// Style selects one of the art generator variants.
type Style string

const (
	StyleGeometric    Style = "geometric"
	StylePointillism  Style = "pointillism"
	StyleMosaic       Style = "mosaic"
	StyleStainedGlass Style = "stained-glass"
)

// Styles lists every supported style in display order.
var Styles = []Style{StyleGeometric, StylePointillism, StyleMosaic, StyleStainedGlass}

// ShapeKind is the outline drawn for a geometric Shape.
type ShapeKind string

const (
	KindCircle    ShapeKind = "circle"
	KindTriangle  ShapeKind = "triangle"
	KindRectangle ShapeKind = "rectangle"
)

// Settings configures a generator. Fields a style does not use are ignored.
type Settings struct {
	NumShapes      int         `yaml:"num_shapes"`
	MinSize        float64     `yaml:"min_size"`
	MaxSize        float64     `yaml:"max_size"`
	MutationRate   float64     `yaml:"mutation_rate"`
	ShapeKinds     []ShapeKind `yaml:"shape_kinds,omitempty"`
	ResampleChance float64     `yaml:"resample_chance"` // chance a color mutation resamples the target
	RegenChance    float64     `yaml:"regen_chance"`    // stained glass: chance to regrow the polygon
	PositionJitter float64     `yaml:"position_jitter"` // fraction of canvas extent
	PointJitter    float64     `yaml:"point_jitter"`    // stained glass vertex jitter in pixels
	ColorJitter    float64     `yaml:"color_jitter"`    // max per-channel delta
	OpacityMin     float64     `yaml:"opacity_min"`
	OpacityMax     float64     `yaml:"opacity_max"`
	FillAlpha      float64     `yaml:"fill_alpha"` // dots and glass panels
	BorderWidth    float64     `yaml:"border_width"`
	BorderColor    string      `yaml:"border_color"`
	Background     string      `yaml:"background"` // empty = transparent
}

// countRange holds the allowed primitive counts per style.
var countRange = map[Style][2]int{
	StyleGeometric:    {50, 1000},
	StylePointillism:  {50, 10000},
	StyleMosaic:       {50, 5000},
	StyleStainedGlass: {50, 10000},
}

// CountRange returns the allowed primitive counts for style.
func CountRange(style Style) (lo, hi int) {
	r, ok := countRange[style]
	if !ok {
		r = countRange[StyleGeometric]
	}
	return r[0], r[1]
}

// DefaultSettings returns the tuned defaults for a style.
func DefaultSettings(style Style) Settings {
	base := Settings{
		MutationRate:   0.1,
		PositionJitter: 0.2,
		ColorJitter:    10,
		OpacityMin:     0.1,
		OpacityMax:     0.9,
		FillAlpha:      1,
		BorderColor:    "#1a1a1a",
	}

	switch style {
	case StylePointillism:
		base.NumShapes = 1000
		base.MinSize = 2
		base.MaxSize = 10
		base.ResampleChance = 0.3
		base.FillAlpha = 0.5
	case StyleMosaic:
		base.NumShapes = 200
		base.MinSize = 20
		base.MaxSize = 100
		base.ResampleChance = 0.1
		base.ColorJitter = 15
		base.Background = "#333333"
	case StyleStainedGlass:
		base.NumShapes = 100
		base.MinSize = 20
		base.MaxSize = 100
		base.ResampleChance = 0.2
		base.RegenChance = 0.3
		base.PointJitter = 5
		base.FillAlpha = 0.9
		base.BorderWidth = 2
		base.Background = "#000000"
	default:
		base.NumShapes = 500
		base.MinSize = 10
		base.MaxSize = 50
		base.ShapeKinds = []ShapeKind{KindCircle, KindRectangle, KindTriangle}
		base.ResampleChance = 0.1
		base.Background = "#ffffff"
	}
	return base
}

// Clamp returns a copy of s with every field forced into its valid range for style.
func (s Settings) Clamp(style Style) Settings {
	lo, hi := CountRange(style)
	s.NumShapes = geom.ClampInt(s.NumShapes, lo, hi)
	s.MinSize = geom.Clamp(s.MinSize, 1, 100)
	s.MaxSize = geom.Clamp(s.MaxSize, s.MinSize, 200)
	s.MutationRate = geom.Clamp(s.MutationRate, 0.01, 0.5)
	s.ResampleChance = geom.Clamp01(s.ResampleChance)
	s.RegenChance = geom.Clamp01(s.RegenChance)
	s.PositionJitter = geom.Clamp01(s.PositionJitter)
	s.PointJitter = geom.Clamp(s.PointJitter, 0, 50)
	s.ColorJitter = geom.Clamp(s.ColorJitter, 0, 128)
	s.OpacityMin = geom.Clamp(s.OpacityMin, 0.05, 1)
	s.OpacityMax = geom.Clamp(s.OpacityMax, s.OpacityMin, 1)
	s.FillAlpha = geom.Clamp(s.FillAlpha, 0.05, 1)
	s.BorderWidth = geom.Clamp(s.BorderWidth, 0, 10)

	kinds := s.ShapeKinds[:0:0]
	for _, k := range s.ShapeKinds {
		switch k {
		case KindCircle, KindTriangle, KindRectangle:
			kinds = append(kinds, k)
		}
	}
	if len(kinds) == 0 {
		kinds = []ShapeKind{KindCircle, KindRectangle, KindTriangle}
	}
	s.ShapeKinds = kinds

	if _, err := pixel.ParseHex(s.BorderColor); err != nil {
		s.BorderColor = "#1a1a1a"
	}
	if s.Background != "" {
		if _, err := pixel.ParseHex(s.Background); err != nil {
			s.Background = ""
		}
	}
	return s
}

// background resolves the Background hex, transparent when unset.
func (s Settings) background() color.RGBA {
	if s.Background == "" {
		return color.RGBA{}
	}
	c, _ := pixel.ParseHex(s.Background)
	return c
}

func (s Settings) border() color.RGBA {
	c, _ := pixel.ParseHex(s.BorderColor)
	return c
}
