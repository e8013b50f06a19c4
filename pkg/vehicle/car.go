package vehicle

import (
	"errors"
	"fmt"
)

// Config is the immutable handling sheet of the player's car.
// All speeds are in pixels per tick, all steering values in radians-ish units
// matching the rendered rotation.
type Config struct {
	Acceleration       float64 `json:"acceleration"`        // Speed change per tick while accelerating or braking
	DecelerationFactor float64 `json:"deceleration_factor"` // Coasting multiplier applied with no pedal input
	StopThreshold      float64 `json:"stop_threshold"`      // Coasting speeds below this snap to zero
	MaxSpeed           float64 `json:"max_speed"`
	MinSpeed           float64 `json:"min_speed"` // Negative: top reverse speed

	SteeringAcceleration   float64 `json:"steering_acceleration"`    // How quickly steering builds up
	SteeringDecay          float64 `json:"steering_decay"`           // Multiplier applied to the steering rate every tick
	BaseMaxSteering        float64 `json:"base_max_steering"`        // Maximum steering at standstill
	MinMaxSteering         float64 `json:"min_max_steering"`         // Maximum steering at top speed
	AutoStraightenSpeed    float64 `json:"auto_straighten_speed"`    // Pull back toward centre with no steering input
	StraightenDeadzone     float64 `json:"straighten_deadzone"`      // Steering below this snaps to straight
	RestStraightenFraction float64 `json:"rest_straighten_fraction"` // Lower bound on the speed fraction used for straightening

	MovingThreshold    float64 `json:"moving_threshold"`     // Pose only updates above this speed
	RotationBlend      float64 `json:"rotation_blend"`       // Easing factor toward the target rotation
	LateralGain        float64 `json:"lateral_gain"`         // Lateral pixels per unit of steering*speed
	MaxTilt            float64 `json:"max_tilt"`             // Tilt per unit of steering
	BaseScale          float64 `json:"base_scale"`           // Sprite scale with no tilt
	TiltScaleGain      float64 `json:"tilt_scale_gain"`      // How much tilt stretches the sprite vertically
	TurnSpeedReduction float64 `json:"turn_speed_reduction"` // Speed multiplier in sharp turns, 1.0 disables it

	LateralMin float64 `json:"lateral_min"` // Lateral clamp, ignored unless LateralMax > LateralMin
	LateralMax float64 `json:"lateral_max"`
}

// DefaultConfig returns the taxi's handling
func DefaultConfig() Config {
	return Config{
		Acceleration:       0.1,
		DecelerationFactor: 0.99,
		StopThreshold:      0.1,
		MaxSpeed:           9,
		MinSpeed:           -2,

		SteeringAcceleration:   0.005,
		SteeringDecay:          0.6,
		BaseMaxSteering:        0.45,
		MinMaxSteering:         0.16,
		AutoStraightenSpeed:    0.003,
		StraightenDeadzone:     0.005,
		RestStraightenFraction: 0.1,

		MovingThreshold:    0.1,
		RotationBlend:      0.2,
		LateralGain:        2,
		MaxTilt:            0.3,
		BaseScale:          0.7,
		TiltScaleGain:      0.3,
		TurnSpeedReduction: 1.0,
	}
}

// ErrZeroMaxSpeed is returned when MaxSpeed would be used as a divisor
var ErrZeroMaxSpeed = errors.New("max speed must be positive")

// Validate reports the first configuration problem found
func (c Config) Validate() error {
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed %v: %w", c.MaxSpeed, ErrZeroMaxSpeed)
	}
	if c.MinSpeed > 0 {
		return fmt.Errorf("min_speed %v must not be positive", c.MinSpeed)
	}
	if c.Acceleration <= 0 {
		return fmt.Errorf("acceleration %v must be positive", c.Acceleration)
	}
	if c.MinMaxSteering <= 0 || c.MinMaxSteering > c.BaseMaxSteering {
		return fmt.Errorf("steering limits must satisfy 0 < min_max_steering (%v) <= base_max_steering (%v)",
			c.MinMaxSteering, c.BaseMaxSteering)
	}
	if c.StraightenDeadzone < 0 {
		return fmt.Errorf("straighten_deadzone %v must not be negative", c.StraightenDeadzone)
	}
	for _, f := range []struct {
		name   string
		v      float64
		lo, hi float64
		openLo bool
	}{
		{"deceleration_factor", c.DecelerationFactor, 0, 1, true},
		{"steering_decay", c.SteeringDecay, 0, 1, false},
		{"rotation_blend", c.RotationBlend, 0, 1, false},
		{"turn_speed_reduction", c.TurnSpeedReduction, 0, 1, true},
		{"rest_straighten_fraction", c.RestStraightenFraction, 0, 1, false},
	} {
		if f.v > f.hi || f.v < f.lo || (f.openLo && f.v == f.lo) {
			return fmt.Errorf("%s %v out of range", f.name, f.v)
		}
	}
	return nil
}

// bounded reports whether the lateral clamp is configured
func (c Config) bounded() bool {
	return c.LateralMax > c.LateralMin
}
