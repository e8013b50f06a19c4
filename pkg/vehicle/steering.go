package vehicle

import (
	"github.com/golangdaddy/taxidash/pkg/mathutil"
)

// Model applies a fixed Config to a State. It holds no per-tick data, so one
// Model can drive any number of States.
type Model struct {
	cfg Config
}

// NewModel validates cfg and returns a Model for it
func NewModel(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Model{cfg: cfg}, nil
}

// Config returns the model's configuration
func (m *Model) Config() Config {
	return m.cfg
}

// MaxSteering returns the steering limit at the given speed. Steering
// authority shrinks linearly from BaseMaxSteering at standstill to
// MinMaxSteering at MaxSpeed.
func (m *Model) MaxSteering(speed float64) float64 {
	return mathutil.Lerp(m.cfg.BaseMaxSteering, m.cfg.MinMaxSteering, mathutil.Fraction(speed, m.cfg.MaxSpeed))
}

// SpeedFraction returns |speed|/MaxSpeed in [0, 1]
func (m *Model) SpeedFraction(speed float64) float64 {
	return mathutil.Fraction(speed, m.cfg.MaxSpeed)
}
