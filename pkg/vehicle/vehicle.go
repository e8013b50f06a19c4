package vehicle

// Intent is the per-tick input snapshot supplied by the input collaborator
type Intent struct {
	Accelerate bool
	Brake      bool
	SteerLeft  bool
	SteerRight bool
}

// Pose is the derived display state of the player's car
type Pose struct {
	X        float64 // Screen X of the car centre (lateral position)
	Rotation float64 // Rendered rotation in radians, eased toward the target
	Tilt     float64 // Visual body roll derived from the steering angle
	ScaleX   float64 // Horizontal sprite scale
	ScaleY   float64 // Vertical sprite scale, stretched by tilt
}

// State is the player's mutable vehicle state. It is created once per session
// and updated in place by Model.Step every tick.
type State struct {
	Speed         float64 // Signed speed in pixels per tick, also the world scroll velocity
	SteeringAngle float64 // Current steering amount, bounded by MaxSteering(Speed)
	SteeringRate  float64 // Rate of change of SteeringAngle
	Distance      float64 // Total distance scrolled in pixels (negative when reversing)
	Pose          Pose
}

// NewState creates a stationary, straight vehicle at lateral position x
func NewState(x float64, cfg Config) *State {
	return &State{
		Pose: Pose{
			X:      x,
			ScaleX: cfg.BaseScale,
			ScaleY: cfg.BaseScale,
		},
	}
}
