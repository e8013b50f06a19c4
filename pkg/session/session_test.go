package session

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/golangdaddy/taxidash/pkg/config"
	"github.com/golangdaddy/taxidash/pkg/mathutil"
	"github.com/golangdaddy/taxidash/pkg/vehicle"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, mutate func(*config.Config)) *Session {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 42
	if mutate != nil {
		mutate(&cfg)
	}
	logger := log.New()
	logger.SetOutput(io.Discard)
	s, err := New(cfg, logger)
	require.NoError(t, err)
	return s
}

var (
	idle     = vehicle.Intent{}
	throttle = vehicle.Intent{Accelerate: true}
)

func TestNewRejectsInvalidConfig(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cfg.Vehicle.MaxSpeed = 0

	_, err := New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorIs(t, err, vehicle.ErrZeroMaxSpeed)
}

func TestInitialFrame(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, nil)

	f := s.Frame()
	assert.Zero(t, f.Tick)
	assert.Equal(t, 400.0, f.Pose.X, "car starts in the middle of the road")
	assert.Zero(t, f.Speed)
	assert.Empty(t, f.Agents)
	assert.Len(t, f.Markers, 2*s.Config().Scenery.MarkerCount)
	assert.InDelta(t, s.Config().Vehicle.BaseMaxSteering, f.MaxSteering, 1e-12)
}

func TestIntentDrivesCar(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, nil)

	f := s.Tick(throttle)
	assert.Equal(t, uint64(1), f.Tick)
	assert.InDelta(t, 0.1, f.Speed, 1e-12)
	assert.InDelta(t, 0.1, f.Distance, 1e-12)
	assert.InDelta(t, 0.1/9, f.SpeedFraction, 1e-12)
}

func TestSpawnTimerIsLogical(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, func(c *config.Config) { c.Traffic.SpawnClearance = 0 })
	interval := s.Config().Traffic.SpawnIntervalTicks

	for i := 0; i < interval-1; i++ {
		s.Tick(idle)
	}
	assert.Zero(t, s.Stats().Spawned)

	f := s.Tick(idle)
	assert.Equal(t, 1, s.Stats().Spawned)
	require.Len(t, f.Agents, 1)
	assert.Contains(t, []float64{300, 400, 500}, f.Agents[0].X)

	for i := 0; i < 4*interval; i++ {
		s.Tick(idle)
	}
	assert.Equal(t, 5, s.Stats().Spawned)
	assert.Equal(t, 5*time.Duration(interval)*time.Second/60, s.Elapsed())
}

func TestSessionIsDeterministic(t *testing.T) {
	t.Parallel()

	a := newTestSession(t, nil)
	b := newTestSession(t, nil)
	rng := mathutil.NewRand(5)

	for i := 0; i < 3000; i++ {
		in := vehicle.Intent{
			Accelerate: rng.Chance(0.6),
			Brake:      rng.Chance(0.1),
			SteerLeft:  rng.Chance(0.2),
			SteerRight: rng.Chance(0.2),
		}
		fa := a.Tick(in)
		fb := b.Tick(in)
		require.Equal(t, fa, fb, "tick %d", i)
	}
	assert.Equal(t, a.Stats(), b.Stats())
}

func TestLongDriveKeepsInvariants(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, nil)
	cfg := s.Config()
	minX, maxX := cfg.Road.PlayerBounds()

	var f Frame
	for i := 0; i < 4000; i++ {
		in := throttle
		if (i/300)%2 == 0 {
			in.SteerRight = true
		} else {
			in.SteerLeft = true
		}
		f = s.Tick(in)

		require.LessOrEqual(t, math.Abs(f.SteeringAngle), f.MaxSteering+1e-12)
		require.GreaterOrEqual(t, f.Pose.X, minX)
		require.LessOrEqual(t, f.Pose.X, maxX)

		for j := 1; j < len(f.Trees); j++ {
			require.Less(t, f.Trees[j-1].Depth, f.Trees[j].Depth, "trees are back to front")
			require.LessOrEqual(t, f.Trees[j-1].Root(), f.Trees[j].Root())
		}
		for _, a := range f.Agents {
			require.LessOrEqual(t, a.Position, cfg.Traffic.DespawnBelow)
			require.GreaterOrEqual(t, a.Position, cfg.Traffic.DespawnAhead)
		}
	}

	st := s.Stats()
	assert.Positive(t, st.Spawned)
	assert.Positive(t, st.Recycled)
	assert.Equal(t, st.Spawned-st.Despawned, len(f.Agents))
}

func TestMarkersStayEvenlySpaced(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, nil)
	policy := s.Config().Scenery.MarkerPolicy()
	cycle := policy.DespawnBound - policy.SpawnBound
	pitch := s.Config().Scenery.MarkerPitch

	var f Frame
	for i := 0; i < 2000; i++ {
		in := throttle
		if i > 1500 {
			in = vehicle.Intent{Brake: true}
		}
		f = s.Tick(in)
	}

	columns := map[float64][]float64{}
	for _, m := range f.Markers {
		columns[m.X] = append(columns[m.X], m.Y)
	}
	require.Len(t, columns, 2)
	for x, ys := range columns {
		for i := 1; i < len(ys); i++ {
			d := math.Mod(ys[i]-ys[0]+cycle, cycle)
			assert.InDelta(t, float64(i)*pitch, d, 1e-6, "column %v marker %d", x, i)
		}
	}
}

func TestComesToRest(t *testing.T) {
	t.Parallel()
	s := newTestSession(t, nil)

	for i := 0; i < 200; i++ {
		s.Tick(vehicle.Intent{Accelerate: true, SteerLeft: true})
	}
	var f Frame
	for i := 0; i < 3000; i++ {
		f = s.Tick(idle)
	}
	assert.Zero(t, f.Speed)
	assert.Zero(t, f.SteeringAngle)
}
