// Package config holds the tunables for a driving session and reads and
// writes them as JSON.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/golangdaddy/taxidash/pkg/road"
	"github.com/golangdaddy/taxidash/pkg/scenery"
	"github.com/golangdaddy/taxidash/pkg/traffic"
	"github.com/golangdaddy/taxidash/pkg/vehicle"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is everything a session needs to run
type Config struct {
	Seed           int64   `json:"seed"` // 0 picks a seed at startup
	TicksPerSecond int     `json:"ticks_per_second"`
	ScreenHeight   float64 `json:"screen_height"`

	Road    road.Geometry  `json:"road"`
	Vehicle vehicle.Config `json:"vehicle"`
	Traffic traffic.Config `json:"traffic"`
	Scenery scenery.Config `json:"scenery"`
}

// Default returns the tuned configuration
func Default() Config {
	return Config{
		TicksPerSecond: 60,
		ScreenHeight:   600,
		Road:           road.DefaultGeometry(),
		Vehicle:        vehicle.DefaultConfig(),
		Traffic:        traffic.DefaultConfig(),
		Scenery:        scenery.DefaultConfig(),
	}
}

// Load reads a JSON config file. Fields missing from the file keep their
// default values.
func Load(filename string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to a JSON file
func (c Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Validate checks every section and wraps the first failure in ErrInvalid
func (c Config) Validate() error {
	if c.TicksPerSecond < 1 {
		return fmt.Errorf("%w: ticks_per_second %d must be at least 1", ErrInvalid, c.TicksPerSecond)
	}
	if c.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen_height %v must be positive", ErrInvalid, c.ScreenHeight)
	}
	if c.Road.RoadWidth <= 0 || c.Road.RoadWidth > c.Road.ScreenWidth {
		return fmt.Errorf("%w: road_width %v must fit the screen width %v", ErrInvalid, c.Road.RoadWidth, c.Road.ScreenWidth)
	}
	if c.Road.CarWidth < 0 || c.Road.CarWidth >= c.Road.RoadWidth {
		return fmt.Errorf("%w: car_width %v must be narrower than the road", ErrInvalid, c.Road.CarWidth)
	}

	sections := []struct {
		name string
		err  error
	}{
		{"vehicle", c.Vehicle.Validate()},
		{"traffic", c.Traffic.Validate()},
		{"scenery", c.Scenery.Validate()},
	}
	for _, s := range sections {
		if s.err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalid, s.name, s.err)
		}
	}
	if c.Traffic.DespawnBelow < c.ScreenHeight {
		return fmt.Errorf("%w: traffic despawn_below %v is inside the screen", ErrInvalid, c.Traffic.DespawnBelow)
	}
	return nil
}
