package traffic

import (
	"github.com/golangdaddy/taxidash/pkg/mathutil"
	log "github.com/sirupsen/logrus"
)

// Simulator owns the traffic collection for one session
type Simulator struct {
	cfg    Config
	rng    *mathutil.Rand
	logger log.FieldLogger

	agents []Agent
	speeds []float64 // next-tick speeds, reused between Advance calls
	nextID int64
}

// NewSimulator creates an empty road. rng supplies every random draw made
// by SpawnTick.
func NewSimulator(cfg Config, rng *mathutil.Rand, logger log.FieldLogger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Simulator{
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		agents: make([]Agent, 0, 16),
		nextID: 1,
	}, nil
}

// Config returns the simulator's configuration
func (s *Simulator) Config() Config {
	return s.cfg
}

// Agents returns the live agents. The slice is owned by the simulator and is
// only valid until the next call that mutates it.
func (s *Simulator) Agents() []Agent {
	return s.agents
}

// Add places an agent on the road and returns its ID.
// A zero Speed starts the agent at its desired speed.
func (s *Simulator) Add(a Agent) int64 {
	a.ID = s.nextID
	s.nextID++
	if a.Speed == 0 {
		a.Speed = a.DesiredSpeed
	}
	s.agents = append(s.agents, a)
	return a.ID
}

// SpawnTick creates one agent at the spawn line with a random lane, desired
// speed and variant. When SpawnClearance is set and the chosen lane is
// occupied at the spawn line, the other lanes are tried in turn; if every lane
// is blocked nothing is spawned and false is returned.
func (s *Simulator) SpawnTick() (Agent, bool) {
	first := s.rng.IntBetween(0, LaneCount-1)
	desired := s.rng.FloatBetween(s.cfg.MinSpeed, s.cfg.MaxSpeed)
	variant := s.rng.Pick(s.cfg.Variants)

	for i := 0; i < LaneCount; i++ {
		lane := Lane((first + i) % LaneCount)
		if !s.laneClear(lane) {
			continue
		}
		a := Agent{
			Lane:         lane,
			Position:     s.cfg.SpawnPosition,
			DesiredSpeed: desired,
			Speed:        desired,
			Variant:      variant,
		}
		a.ID = s.Add(a)
		s.logger.WithFields(log.Fields{
			"id":      a.ID,
			"lane":    a.Lane,
			"speed":   a.DesiredSpeed,
			"variant": a.Variant,
		}).Debug("Spawned traffic")
		return a, true
	}

	s.logger.Debug("Spawn skipped, every lane blocked")
	return Agent{}, false
}

// laneClear reports whether lane has room at the spawn line
func (s *Simulator) laneClear(lane Lane) bool {
	if s.cfg.SpawnClearance <= 0 {
		return true
	}
	for _, a := range s.agents {
		if a.Lane != lane {
			continue
		}
		gap := a.Position - s.cfg.SpawnPosition
		if gap < 0 {
			gap = -gap
		}
		if gap < s.cfg.SpawnClearance {
			return false
		}
	}
	return true
}

// Advance runs one tick of traffic. Each agent looks for the nearest car
// ahead in its lane: inside SafeDistance it is held to FollowFactor of that
// car's speed, otherwise it eases toward its desired speed. Agents then move
// relative to the player, who scrolls at egoSpeed, and any agent past a
// despawn line is removed. It returns the number of agents removed.
func (s *Simulator) Advance(egoSpeed float64) int {
	// Every decision reads last tick's positions and speeds, so the outcome
	// doesn't depend on slice order.
	s.speeds = s.speeds[:0]
	for i, a := range s.agents {
		lead, gap := s.nearestAhead(i)
		if lead >= 0 && gap < s.cfg.SafeDistance {
			s.speeds = append(s.speeds, min(a.Speed, s.agents[lead].Speed*s.cfg.FollowFactor))
		} else {
			s.speeds = append(s.speeds, mathutil.Lerp(a.Speed, a.DesiredSpeed, s.cfg.SpeedBlend))
		}
	}

	for i := range s.agents {
		a := &s.agents[i]
		a.Speed = s.speeds[i]
		a.Position += -(a.Speed - egoSpeed)
	}

	// Compact in place, keeping order
	kept := s.agents[:0]
	removed := 0
	for _, a := range s.agents {
		if a.Position > s.cfg.DespawnBelow || a.Position < s.cfg.DespawnAhead {
			removed++
			s.logger.WithFields(log.Fields{
				"id":       a.ID,
				"lane":     a.Lane,
				"position": a.Position,
			}).Debug("Despawned traffic")
			continue
		}
		kept = append(kept, a)
	}
	s.agents = kept

	return removed
}

// nearestAhead returns the index of the closest agent ahead of agent i in the
// same lane within DetectionDistance, and the gap to it. It returns -1 when
// the lane ahead is clear. Ties keep the first agent found.
func (s *Simulator) nearestAhead(i int) (int, float64) {
	me := s.agents[i]
	best, bestGap := -1, 0.0
	for j, other := range s.agents {
		if j == i || other.Lane != me.Lane || other.Position >= me.Position {
			continue
		}
		gap := me.Position - other.Position
		if gap >= s.cfg.DetectionDistance {
			continue
		}
		if best < 0 || gap < bestGap {
			best, bestGap = j, gap
		}
	}
	return best, bestGap
}
