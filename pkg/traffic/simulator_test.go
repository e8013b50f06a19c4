package traffic

import (
	"io"
	"testing"

	"github.com/golangdaddy/taxidash/pkg/mathutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSimulator(t *testing.T, seed int64, mutate func(*Config)) *Simulator {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	logger := log.New()
	logger.SetOutput(io.Discard)
	s, err := NewSimulator(cfg, mathutil.NewRand(seed), logger)
	require.NoError(t, err)
	return s
}

func find(t *testing.T, s *Simulator, id int64) Agent {
	t.Helper()
	for _, a := range s.Agents() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("agent %d not found", id)
	return Agent{}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"safe beyond detection", func(c *Config) { c.SafeDistance = 300 }},
		{"zero follow factor", func(c *Config) { c.FollowFactor = 0 }},
		{"blend above one", func(c *Config) { c.SpeedBlend = 1.5 }},
		{"speed range inverted", func(c *Config) { c.MinSpeed = 8 }},
		{"no variants", func(c *Config) { c.Variants = 0 }},
		{"zero interval", func(c *Config) { c.SpawnIntervalTicks = 0 }},
		{"spawn below despawn line", func(c *Config) { c.SpawnPosition = 900 }},
	}

	require.NoError(t, DefaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFollowingClampsToLeadSpeed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		leadDesired float64
	}{
		{"lead cruising", 3},
		{"lead accelerating this tick", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSimulator(t, 1, nil)
			s.Add(Agent{Lane: LaneCenter, Position: 0, Speed: 3, DesiredSpeed: tt.leadDesired})
			follower := s.Add(Agent{Lane: LaneCenter, Position: 100, DesiredSpeed: 7})

			s.Advance(0)
			assert.LessOrEqual(t, find(t, s, follower).Speed, 3*0.9+1e-12)
		})
	}
}

func TestFollowingNeverSpeedsUp(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	s.Add(Agent{Lane: LaneRight, Position: 0, Speed: 6, DesiredSpeed: 6})
	follower := s.Add(Agent{Lane: LaneRight, Position: 50, Speed: 2, DesiredSpeed: 7})

	s.Advance(0)
	assert.Equal(t, 2.0, find(t, s, follower).Speed, "already slower than 90% of the lead")
}

func TestOtherLanesAreIgnored(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	s.Add(Agent{Lane: LaneLeft, Position: 0, Speed: 1, DesiredSpeed: 1})
	id := s.Add(Agent{Lane: LaneCenter, Position: 50, Speed: 5, DesiredSpeed: 5})

	s.Advance(0)
	assert.Equal(t, 5.0, find(t, s, id).Speed)
}

func TestFreeFlowConverges(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	id := s.Add(Agent{Lane: LaneLeft, Position: 300, Speed: 3, DesiredSpeed: 7})

	prev := 3.0
	for i := 0; i < 100; i++ {
		s.Advance(7)
		got := find(t, s, id).Speed
		assert.Greater(t, got, prev, "eases up every tick")
		assert.LessOrEqual(t, got, 7.0)
		prev = got
	}
	assert.InDelta(t, 7.0, prev, 1e-3)
}

func TestBetweenSafeAndDetectionEasesToDesired(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	s.Add(Agent{Lane: LaneCenter, Position: 0, Speed: 3, DesiredSpeed: 3})
	id := s.Add(Agent{Lane: LaneCenter, Position: 150, Speed: 5, DesiredSpeed: 7})

	s.Advance(0)
	assert.InDelta(t, 5.2, find(t, s, id).Speed, 1e-12)
}

func TestPositionIsRelativeToPlayer(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	same := s.Add(Agent{Lane: LaneLeft, Position: 300, DesiredSpeed: 5})
	slower := s.Add(Agent{Lane: LaneRight, Position: 300, DesiredSpeed: 3})

	s.Advance(5)
	assert.Equal(t, 300.0, find(t, s, same).Position, "same speed as the player holds its screen position")
	assert.Equal(t, 302.0, find(t, s, slower).Position, "slower traffic drifts down the screen")
}

func TestEqualSpeedConvoyHoldsGaps(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)
	cfg := s.Config()

	front := s.Add(Agent{Lane: LaneCenter, Position: 0, DesiredSpeed: 5})
	middle := s.Add(Agent{Lane: LaneCenter, Position: 150, DesiredSpeed: 5})
	back := s.Add(Agent{Lane: LaneCenter, Position: 400, DesiredSpeed: 5})

	for i := 0; i < 200; i++ {
		s.Advance(0)
		gap := find(t, s, middle).Position - find(t, s, front).Position
		require.GreaterOrEqual(t, gap, cfg.SafeDistance)
		assert.InDelta(t, 150.0, gap, 1e-9)
		assert.InDelta(t, 250.0, find(t, s, back).Position-find(t, s, middle).Position, 1e-9)
	}
}

func TestFasterFollowerHoldsGap(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)
	cfg := s.Config()

	lead := s.Add(Agent{Lane: LaneCenter, Position: 0, DesiredSpeed: 5})
	follower := s.Add(Agent{Lane: LaneCenter, Position: 150, DesiredSpeed: 7})

	// The follower can close by at most one tick of speed difference before
	// it brakes.
	floor := cfg.SafeDistance - (7 - 5) - 1e-6
	for i := 0; i < 1000; i++ {
		s.Advance(5)
		gap := find(t, s, follower).Position - find(t, s, lead).Position
		require.Greater(t, gap, floor, "tick %d", i)
	}
}

func TestEquidistantLeadersDoNotPanic(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	s.Add(Agent{Lane: LaneLeft, Position: 0, Speed: 4, DesiredSpeed: 4})
	s.Add(Agent{Lane: LaneLeft, Position: 0, Speed: 6, DesiredSpeed: 6})
	id := s.Add(Agent{Lane: LaneLeft, Position: 60, DesiredSpeed: 7})

	require.NotPanics(t, func() { s.Advance(0) })
	got := find(t, s, id).Speed
	assert.True(t, got == 4*0.9 || got == 6*0.9, "follows one of the two, got %v", got)
}

func TestDespawn(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	below := s.Add(Agent{Lane: LaneLeft, Position: 799, Speed: 1, DesiredSpeed: 1})
	keepA := s.Add(Agent{Lane: LaneCenter, Position: 0, DesiredSpeed: 5})
	ahead := s.Add(Agent{Lane: LaneRight, Position: -1199, DesiredSpeed: 9})
	keepB := s.Add(Agent{Lane: LaneLeft, Position: 300, DesiredSpeed: 5})

	removed := s.Advance(5)
	assert.Equal(t, 2, removed)

	var ids []int64
	for _, a := range s.Agents() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []int64{keepA, keepB}, ids, "survivors keep their order")
	assert.NotContains(t, ids, below)
	assert.NotContains(t, ids, ahead)
}

func TestDespawnEveryAgent(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 1, nil)

	for i := 0; i < 5; i++ {
		s.Add(Agent{Lane: Lane(i % LaneCount), Position: 790 - float64(i), Speed: 1, DesiredSpeed: 1})
	}
	assert.Equal(t, 5, s.Advance(20))
	assert.Empty(t, s.Agents())
}

func TestSpawnTick(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 42, func(c *Config) { c.SpawnClearance = 0 })
	cfg := s.Config()

	lanes := map[Lane]bool{}
	for i := 0; i < 60; i++ {
		a, ok := s.SpawnTick()
		require.True(t, ok)
		assert.Equal(t, cfg.SpawnPosition, a.Position)
		assert.GreaterOrEqual(t, a.DesiredSpeed, cfg.MinSpeed)
		assert.LessOrEqual(t, a.DesiredSpeed, cfg.MaxSpeed)
		assert.Equal(t, a.DesiredSpeed, a.Speed)
		assert.GreaterOrEqual(t, a.Variant, 0)
		assert.Less(t, a.Variant, cfg.Variants)
		lanes[a.Lane] = true
	}
	assert.Len(t, s.Agents(), 60)
	assert.Len(t, lanes, LaneCount)
}

func TestSpawnIsDeterministic(t *testing.T) {
	t.Parallel()

	a := newTestSimulator(t, 7, nil)
	b := newTestSimulator(t, 7, nil)
	for i := 0; i < 300; i++ {
		if i%40 == 0 {
			a.SpawnTick()
			b.SpawnTick()
		}
		a.Advance(4)
		b.Advance(4)
	}
	assert.Equal(t, a.Agents(), b.Agents())
}

func TestSpawnClearance(t *testing.T) {
	t.Parallel()
	s := newTestSimulator(t, 3, nil)

	seen := map[Lane]bool{}
	for i := 0; i < LaneCount; i++ {
		a, ok := s.SpawnTick()
		require.True(t, ok)
		assert.False(t, seen[a.Lane], "lane %v reused while blocked", a.Lane)
		seen[a.Lane] = true
	}

	_, ok := s.SpawnTick()
	assert.False(t, ok, "every lane is blocked at the spawn line")
	assert.Len(t, s.Agents(), LaneCount)
}

func TestLaneString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "left", LaneLeft.String())
	assert.Equal(t, "center", LaneCenter.String())
	assert.Equal(t, "right", LaneRight.String())
	assert.Equal(t, "lane(7)", Lane(7).String())
}
