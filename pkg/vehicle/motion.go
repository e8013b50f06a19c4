package vehicle

import (
	"math"

	"github.com/golangdaddy/taxidash/pkg/mathutil"
)

// Step advances st by one tick under the given input and returns the new
// speed, which is the scroll velocity for everything else on screen.
//
// |st.SteeringAngle| <= MaxSteering(st.Speed) holds when Step returns.
func (m *Model) Step(st *State, in Intent) float64 {
	m.updateSpeed(st, in)

	limit := m.MaxSteering(st.Speed)
	m.updateSteering(st, in, limit)

	if math.Abs(st.Speed) > m.cfg.MovingThreshold {
		m.updatePose(st)

		// Sharp turns scrub speed. A smaller speed only widens the steering
		// limit, so the bound above still holds.
		if math.Abs(st.SteeringAngle) > limit/2 {
			st.Speed *= m.cfg.TurnSpeedReduction
		}
	}

	st.Distance += st.Speed
	return st.Speed
}

// updateSpeed handles accelerate/brake/coast and clamps to the speed range
func (m *Model) updateSpeed(st *State, in Intent) {
	switch {
	case in.Accelerate:
		st.Speed += m.cfg.Acceleration
	case in.Brake:
		st.Speed -= m.cfg.Acceleration
	default:
		st.Speed *= m.cfg.DecelerationFactor
		if math.Abs(st.Speed) < m.cfg.StopThreshold {
			st.Speed = 0
		}
	}
	st.Speed = mathutil.Clamp(st.Speed, m.cfg.MinSpeed, m.cfg.MaxSpeed)
}

// updateSteering is two-stage: input (or auto-straightening) drives the
// steering rate, and the rate is integrated into the steering angle.
func (m *Model) updateSteering(st *State, in Intent, limit float64) {
	frac := m.SpeedFraction(st.Speed)

	switch {
	case in.SteerLeft:
		st.SteeringRate -= m.cfg.SteeringAcceleration * frac
	case in.SteerRight:
		st.SteeringRate += m.cfg.SteeringAcceleration * frac
	default:
		if math.Abs(st.SteeringAngle) <= m.cfg.StraightenDeadzone {
			st.SteeringAngle = 0
			st.SteeringRate = 0
		} else {
			pull := math.Max(frac, m.cfg.RestStraightenFraction)
			st.SteeringRate -= mathutil.Sign(st.SteeringAngle) * m.cfg.AutoStraightenSpeed * pull
		}
	}

	st.SteeringRate *= m.cfg.SteeringDecay
	st.SteeringRate = mathutil.Clamp(st.SteeringRate, -limit, limit)
	st.SteeringAngle = mathutil.Clamp(st.SteeringAngle+st.SteeringRate, -limit, limit)
}

// updatePose eases the rendered rotation, drifts the car sideways and derives
// the tilt scale
func (m *Model) updatePose(st *State) {
	p := &st.Pose

	target := st.SteeringAngle * (st.Speed / m.cfg.MaxSpeed)
	p.Rotation = mathutil.Lerp(p.Rotation, target, m.cfg.RotationBlend)

	p.X += st.SteeringAngle * math.Abs(st.Speed) * m.cfg.LateralGain
	if m.cfg.bounded() {
		p.X = mathutil.Clamp(p.X, m.cfg.LateralMin, m.cfg.LateralMax)
	}

	p.Tilt = st.SteeringAngle * m.cfg.MaxTilt
	p.ScaleX = m.cfg.BaseScale
	p.ScaleY = m.cfg.BaseScale + math.Abs(p.Tilt*m.cfg.TiltScaleGain)
}
