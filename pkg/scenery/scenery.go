// Package scenery lays out the scrolling roadside at session start: dashed
// lane markers on the dividers and rows of bushes and trees on both verges.
package scenery

import (
	"fmt"

	"github.com/golangdaddy/taxidash/pkg/mathutil"
	"github.com/golangdaddy/taxidash/pkg/road"
	"github.com/golangdaddy/taxidash/pkg/scroll"
)

// Size is the unscaled footprint of a sprite variant
type Size struct {
	W, H float64
}

// Unscaled sprite sizes, indexed by variant
var (
	TreeSizes = []Size{{120, 180}, {110, 200}, {130, 170}, {100, 210}}
	BushSizes = []Size{{90, 70}, {80, 60}}
)

// Config controls the scenery layout
type Config struct {
	MarkerWidth  float64 `json:"marker_width"`
	MarkerHeight float64 `json:"marker_height"`
	MarkerPitch  float64 `json:"marker_pitch"` // Dash plus gap
	MarkerCount  int     `json:"marker_count"` // Dashes per divider

	VergeOffset float64 `json:"verge_offset"` // Vegetation column distance from the road edge
	RowSpacing  float64 `json:"row_spacing"`
	BushChance  float64 `json:"bush_chance"`
	TreeChance  float64 `json:"tree_chance"`
	MinScale    float64 `json:"min_scale"`
	MaxScale    float64 `json:"max_scale"`

	Vegetation scroll.Policy `json:"vegetation"`
}

// DefaultConfig returns the tuned roadside layout
func DefaultConfig() Config {
	return Config{
		MarkerWidth:  6,
		MarkerHeight: 40,
		MarkerPitch:  100,
		MarkerCount:  8,

		VergeOffset: 150,
		RowSpacing:  250,
		BushChance:  7.0 / 11,
		TreeChance:  6.0 / 11,
		MinScale:    0.4,
		MaxScale:    0.5,

		Vegetation: scroll.Policy{
			SpawnBound:       -200,
			DespawnBound:     800,
			Jitter:           20,
			HorizontalJitter: 30,
		},
	}
}

// Validate reports the first layout problem found
func (c Config) Validate() error {
	switch {
	case c.MarkerHeight <= 0 || c.MarkerPitch < c.MarkerHeight:
		return fmt.Errorf("need 0 < marker_height (%v) <= marker_pitch (%v)", c.MarkerHeight, c.MarkerPitch)
	case c.MarkerCount < 1:
		return fmt.Errorf("marker_count %d must be at least 1", c.MarkerCount)
	case c.RowSpacing <= 0:
		return fmt.Errorf("row_spacing %v must be positive", c.RowSpacing)
	case c.BushChance < 0 || c.BushChance > 1 || c.TreeChance < 0 || c.TreeChance > 1:
		return fmt.Errorf("bush_chance and tree_chance must be in [0, 1]")
	case c.MinScale <= 0 || c.MaxScale < c.MinScale:
		return fmt.Errorf("need 0 < min_scale (%v) <= max_scale (%v)", c.MinScale, c.MaxScale)
	}
	if err := c.Vegetation.Validate(); err != nil {
		return fmt.Errorf("vegetation: %w", err)
	}
	return nil
}

// MarkerPolicy wraps markers by exactly one column length so the dashes stay
// evenly spaced forever
func (c Config) MarkerPolicy() scroll.Policy {
	spawn := -c.MarkerHeight
	return scroll.Policy{
		SpawnBound:   spawn,
		DespawnBound: spawn + float64(c.MarkerCount)*c.MarkerPitch,
		KeepPhase:    true,
	}
}

// Layout is the initial set of scrolling elements
type Layout struct {
	Markers []scroll.Element
	Bushes  []scroll.Element
	Trees   []scroll.Element
}

// Generate builds the initial layout. Vegetation rows are scattered from the
// spawn line down to the despawn line so the roadside is full on the first
// frame.
func Generate(geo road.Geometry, cfg Config, rng *mathutil.Rand) Layout {
	var l Layout

	policy := cfg.MarkerPolicy()
	for _, x := range geo.DividerXs() {
		for i := 0; i < cfg.MarkerCount; i++ {
			l.Markers = append(l.Markers, scroll.Element{
				X:      x,
				BaseX:  x,
				Y:      policy.SpawnBound + float64(i)*cfg.MarkerPitch,
				Kind:   scroll.KindMarker,
				Scale:  1,
				Height: cfg.MarkerHeight,
			})
		}
	}

	left, right := geo.Verges(cfg.VergeOffset)
	for _, baseX := range []float64{left, right} {
		for y := cfg.Vegetation.SpawnBound; y < cfg.Vegetation.DespawnBound; y += cfg.RowSpacing {
			x := baseX + rng.Jitter(cfg.Vegetation.HorizontalJitter)

			if rng.Chance(cfg.BushChance) {
				l.Bushes = append(l.Bushes, plant(scroll.KindBush, BushSizes, x, baseX, y, cfg, rng))
			}
			if rng.Chance(cfg.TreeChance) {
				l.Trees = append(l.Trees, plant(scroll.KindTree, TreeSizes, x, baseX, y, cfg, rng))
			}
		}
	}
	scroll.ResortDepth(l.Trees, scroll.DefaultDepthSpacing)

	return l
}

func plant(kind scroll.Kind, sizes []Size, x, baseX, y float64, cfg Config, rng *mathutil.Rand) scroll.Element {
	variant := rng.Pick(len(sizes))
	scale := rng.FloatBetween(cfg.MinScale, cfg.MaxScale)
	return scroll.Element{
		X:       x,
		Y:       y,
		BaseX:   baseX,
		Kind:    kind,
		Variant: variant,
		Scale:   scale,
		Height:  sizes[variant].H * scale,
	}
}
