package traffic

import "fmt"

// Config tunes traffic spawning and following behaviour
type Config struct {
	DetectionDistance float64 `json:"detection_distance"` // How far ahead an agent looks for cars in its lane
	SafeDistance      float64 `json:"safe_distance"`      // Gap below which an agent brakes behind the car ahead
	FollowFactor      float64 `json:"follow_factor"`      // Fraction of the lead car's speed a blocked agent is held to
	SpeedBlend        float64 `json:"speed_blend"`        // Per-tick easing toward the desired speed

	MinSpeed float64 `json:"min_speed"` // Desired speed range for new agents
	MaxSpeed float64 `json:"max_speed"`
	Variants int     `json:"variants"` // Number of cosmetic body variants

	SpawnPosition      float64 `json:"spawn_position"`       // Screen Y where new agents appear, above the viewport
	SpawnIntervalTicks int     `json:"spawn_interval_ticks"` // Ticks between spawn attempts
	SpawnClearance     float64 `json:"spawn_clearance"`      // Minimum gap to another agent at the spawn line; 0 disables the check
	DespawnBelow       float64 `json:"despawn_below"`        // Agents below this screen Y are removed
	DespawnAhead       float64 `json:"despawn_ahead"`        // Agents above this screen Y are removed
}

// DefaultConfig returns the tuned traffic behaviour
func DefaultConfig() Config {
	return Config{
		DetectionDistance: 200,
		SafeDistance:      120,
		FollowFactor:      0.9,
		SpeedBlend:        0.1,

		MinSpeed: 3,
		MaxSpeed: 7,
		Variants: 4,

		SpawnPosition:      -200,
		SpawnIntervalTicks: 120, // 2s at 60 ticks per second
		SpawnClearance:     120,
		DespawnBelow:       800,
		DespawnAhead:       -1200,
	}
}

// Validate reports the first configuration problem found
func (c Config) Validate() error {
	switch {
	case c.SafeDistance <= 0 || c.DetectionDistance < c.SafeDistance:
		return fmt.Errorf("need 0 < safe_distance (%v) <= detection_distance (%v)", c.SafeDistance, c.DetectionDistance)
	case c.FollowFactor <= 0 || c.FollowFactor > 1:
		return fmt.Errorf("follow_factor %v must be in (0, 1]", c.FollowFactor)
	case c.SpeedBlend <= 0 || c.SpeedBlend > 1:
		return fmt.Errorf("speed_blend %v must be in (0, 1]", c.SpeedBlend)
	case c.MinSpeed < 0 || c.MaxSpeed < c.MinSpeed:
		return fmt.Errorf("need 0 <= min_speed (%v) <= max_speed (%v)", c.MinSpeed, c.MaxSpeed)
	case c.Variants < 1:
		return fmt.Errorf("variants %d must be at least 1", c.Variants)
	case c.SpawnIntervalTicks < 1:
		return fmt.Errorf("spawn_interval_ticks %d must be at least 1", c.SpawnIntervalTicks)
	case c.SpawnClearance < 0:
		return fmt.Errorf("spawn_clearance %v must not be negative", c.SpawnClearance)
	case c.DespawnAhead >= c.SpawnPosition || c.DespawnBelow <= c.SpawnPosition:
		return fmt.Errorf("spawn_position %v must lie between despawn_ahead %v and despawn_below %v",
			c.SpawnPosition, c.DespawnAhead, c.DespawnBelow)
	}
	return nil
}
