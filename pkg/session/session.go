// Package session runs the driving simulation one tick at a time. A Session
// owns the player's car, the traffic and the scrolling roadside, and turns
// each input snapshot into a Frame for the renderer.
package session

import (
	"cmp"
	"slices"
	"time"

	"github.com/golangdaddy/taxidash/pkg/config"
	"github.com/golangdaddy/taxidash/pkg/mathutil"
	"github.com/golangdaddy/taxidash/pkg/scenery"
	"github.com/golangdaddy/taxidash/pkg/scroll"
	"github.com/golangdaddy/taxidash/pkg/traffic"
	"github.com/golangdaddy/taxidash/pkg/vehicle"
	log "github.com/sirupsen/logrus"
)

// Session is a single run of the simulation. It is not safe for concurrent use.
type Session struct {
	cfg    config.Config
	logger log.FieldLogger

	model    *vehicle.Model
	car      *vehicle.State
	traffic  *traffic.Simulator
	recycler *scroll.Recycler

	markers      []scroll.Element
	bushes       []scroll.Element
	trees        []scroll.Element
	markerPolicy scroll.Policy

	ticks      uint64
	sinceSpawn int
	stats      Stats
	frame      Frame
}

// Stats counts what happened over the life of a session
type Stats struct {
	Ticks     uint64
	Distance  float64 // Pixels scrolled, net of reversing
	Spawned   int
	Skipped   int // Spawn attempts dropped because every lane was blocked
	Despawned int
	Recycled  int
}

// New validates cfg and lays out a fresh road. The car starts stationary in
// the middle of the road. When cfg.Vehicle has no lateral clamp, the road's
// player bounds are used.
func New(cfg config.Config, logger log.FieldLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	vcfg := cfg.Vehicle
	if vcfg.LateralMax <= vcfg.LateralMin {
		vcfg.LateralMin, vcfg.LateralMax = cfg.Road.PlayerBounds()
	}
	model, err := vehicle.NewModel(vcfg)
	if err != nil {
		return nil, err
	}

	// Separate streams so the traffic sequence doesn't depend on how often
	// the roadside recycles
	sim, err := traffic.NewSimulator(cfg.Traffic, mathutil.NewRand(cfg.Seed), logger.WithField("component", "traffic"))
	if err != nil {
		return nil, err
	}
	sceneryRand := mathutil.NewRand(cfg.Seed + 1)
	layout := scenery.Generate(cfg.Road, cfg.Scenery, sceneryRand)

	s := &Session{
		cfg:          cfg,
		logger:       logger,
		model:        model,
		car:          vehicle.NewState(cfg.Road.Center(), vcfg),
		traffic:      sim,
		recycler:     scroll.NewRecycler(sceneryRand, logger.WithField("component", "scenery")),
		markers:      layout.Markers,
		bushes:       layout.Bushes,
		trees:        layout.Trees,
		markerPolicy: cfg.Scenery.MarkerPolicy(),
	}

	logger.WithFields(log.Fields{
		"seed":    cfg.Seed,
		"tps":     cfg.TicksPerSecond,
		"markers": len(s.markers),
		"bushes":  len(s.bushes),
		"trees":   len(s.trees),
	}).Info("Session started")

	return s, nil
}

// Config returns the session's configuration
func (s *Session) Config() config.Config {
	return s.cfg
}

// Model returns the vehicle model driving the player's car
func (s *Session) Model() *vehicle.Model {
	return s.model
}

// Stats returns the running totals
func (s *Session) Stats() Stats {
	st := s.stats
	st.Ticks = s.ticks
	st.Distance = s.car.Distance
	return st
}

// Elapsed returns the simulated time, derived from the tick count
func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.ticks) * time.Second / time.Duration(s.cfg.TicksPerSecond)
}

// Tick advances the simulation by one step. The car moves first and its speed
// becomes the scroll velocity for traffic and the roadside. The returned
// Frame is reused and only valid until the next call to Tick.
func (s *Session) Tick(in vehicle.Intent) Frame {
	s.ticks++

	velocity := s.model.Step(s.car, in)

	s.stats.Despawned += s.traffic.Advance(velocity)

	s.sinceSpawn++
	if s.sinceSpawn >= s.cfg.Traffic.SpawnIntervalTicks {
		s.sinceSpawn = 0
		if _, ok := s.traffic.SpawnTick(); ok {
			s.stats.Spawned++
		} else {
			s.stats.Skipped++
		}
	}

	scroll.Advance(s.markers, velocity)
	scroll.Advance(s.bushes, velocity)
	scroll.Advance(s.trees, velocity)
	s.stats.Recycled += s.recycler.Recycle(s.markers, s.markerPolicy)
	s.stats.Recycled += s.recycler.Recycle(s.bushes, s.cfg.Scenery.Vegetation)
	s.stats.Recycled += s.recycler.Recycle(s.trees, s.cfg.Scenery.Vegetation)

	return s.snapshot()
}

// Frame returns the snapshot of the latest tick without advancing
func (s *Session) Frame() Frame {
	return s.snapshot()
}

func (s *Session) snapshot() Frame {
	f := &s.frame
	f.Tick = s.ticks
	f.Speed = s.car.Speed
	f.SpeedFraction = s.model.SpeedFraction(s.car.Speed)
	f.SteeringAngle = s.car.SteeringAngle
	f.MaxSteering = s.model.MaxSteering(s.car.Speed)
	f.Pose = s.car.Pose
	f.Distance = s.car.Distance

	f.Agents = f.Agents[:0]
	for _, a := range s.traffic.Agents() {
		f.Agents = append(f.Agents, AgentView{
			Agent: a,
			X:     s.cfg.Road.LaneCenterX(int(a.Lane)),
		})
	}

	f.Markers = append(f.Markers[:0], s.markers...)
	f.Bushes = append(f.Bushes[:0], s.bushes...)
	f.Trees = append(f.Trees[:0], s.trees...)
	slices.SortStableFunc(f.Trees, func(a, b scroll.Element) int {
		return cmp.Compare(a.Depth, b.Depth)
	})

	return *f
}
