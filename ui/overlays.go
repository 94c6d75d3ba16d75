package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayPheromones  OverlayID = "pheromones"
	OverlayPaths       OverlayID = "paths"
	OverlayVisualRange OverlayID = "visual_range"
	OverlayGhosts      OverlayID = "ghosts"
	OverlayGridLines   OverlayID = "grid_lines"
	OverlayTarget      OverlayID = "target"
	OverlayPerf        OverlayID = "perf"
)

// Categories group overlays by the demo they apply to.
const (
	CategoryArt    = "art"
	CategoryLife   = "life"
	CategoryBoids  = "boids"
	CategoryAnts   = "ants"
	CategoryGlobal = "global"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // 0 = no key
	KeyLabel    string // e.g. "P"
	Category    string
	Default     bool        // enabled on registration
	Exclusive   []OverlayID // disabled when this one is enabled
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the gallery's overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:          OverlayTarget,
		Name:        "Target Image",
		Description: "Show the target next to the evolving image",
		Key:         rl.KeyO,
		KeyLabel:    "O",
		Category:    CategoryArt,
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayGridLines,
		Name:        "Grid Lines",
		Description: "Outline every cell of the board",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    CategoryLife,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayVisualRange,
		Name:        "Visual Range",
		Description: "Circle the neighbourhood of every boid",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    CategoryBoids,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayGhosts,
		Name:        "Edge Ghosts",
		Description: "Draw boids straddling an edge on both sides",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    CategoryBoids,
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPheromones,
		Name:        "Pheromones",
		Description: "Tint cells by home and food pheromone",
		Key:         rl.KeyP,
		KeyLabel:    "P",
		Category:    CategoryAnts,
		Default:     true,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPaths,
		Name:        "Ant Paths",
		Description: "Trace each ant's recent path",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    CategoryAnts,
	})

	r.Register(OverlayDescriptor{
		ID:          OverlayPerf,
		Name:        "Performance",
		Description: "Show per-phase tick timing",
		Key:         rl.KeyF3,
		KeyLabel:    "F3",
		Category:    CategoryGlobal,
	})
}

// Register adds an overlay to the registry.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and handles exclusivity.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	newState := !r.enabled[id]
	r.SetEnabled(id, newState)
	return newState
}

// SetEnabled explicitly sets an overlay's state.
func (r *OverlayRegistry) SetEnabled(id OverlayID, enabled bool) {
	desc, ok := r.byID[id]
	if !ok {
		return
	}

	r.enabled[id] = enabled

	if enabled {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// Get returns an overlay descriptor by ID.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	desc, ok := r.byID[id]
	return desc, ok
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// HandleKeyPress toggles the overlay bound to key, searching only the given
// categories. Returns the overlay ID, its new state and whether a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32, categories ...string) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key != key || !slices.Contains(categories, desc.Category) {
			continue
		}
		newState := r.Toggle(desc.ID)
		return desc.ID, newState, true
	}
	return "", false, false
}

// Keys returns every bound key in the given categories.
func (r *OverlayRegistry) Keys(categories ...string) []int32 {
	var keys []int32
	for _, desc := range r.descriptors {
		if desc.Key != 0 && slices.Contains(categories, desc.Category) {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}
