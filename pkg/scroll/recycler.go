package scroll

import (
	"fmt"
	"math"
	"slices"

	"github.com/golangdaddy/taxidash/pkg/mathutil"
	log "github.com/sirupsen/logrus"
)

// DefaultDepthSpacing separates consecutive depth keys
const DefaultDepthSpacing = 100

// Policy describes where a group of elements wraps around
type Policy struct {
	SpawnBound       float64 `json:"spawn_bound"`       // Screen Y elements re-enter at, above the viewport
	DespawnBound     float64 `json:"despawn_bound"`     // Screen Y past which elements are recycled
	Jitter           float64 `json:"jitter"`            // Vertical randomisation around SpawnBound
	HorizontalJitter float64 `json:"horizontal_jitter"` // Horizontal randomisation around BaseX

	// KeepPhase wraps by the cycle length instead of resetting to SpawnBound,
	// carrying any overshoot so evenly spaced elements stay evenly spaced. It
	// also wraps elements that scroll back above SpawnBound while reversing.
	// Jitter is ignored.
	KeepPhase bool `json:"keep_phase"`
}

// Validate checks the bounds are ordered
func (p Policy) Validate() error {
	if p.DespawnBound <= p.SpawnBound {
		return fmt.Errorf("despawn_bound %v must be below spawn_bound %v", p.DespawnBound, p.SpawnBound)
	}
	if p.Jitter < 0 || p.HorizontalJitter < 0 {
		return fmt.Errorf("jitter must not be negative")
	}
	return nil
}

// Advance moves every element down the screen by velocity
func Advance(elements []Element, velocity float64) {
	for i := range elements {
		elements[i].Y += velocity
	}
}

// Recycler moves elements that have scrolled off back to the spawn line
type Recycler struct {
	rng          *mathutil.Rand
	depthSpacing float64
	logger       log.FieldLogger
}

// NewRecycler creates a Recycler drawing jitter from rng
func NewRecycler(rng *mathutil.Rand, logger log.FieldLogger) *Recycler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Recycler{
		rng:          rng,
		depthSpacing: DefaultDepthSpacing,
		logger:       logger,
	}
}

// Recycle repositions every element past the policy's despawn bound and
// returns how many moved. If any depth-ordered element moved, the depth keys
// of the whole group are recomputed.
func (r *Recycler) Recycle(elements []Element, p Policy) int {
	moved := 0
	resort := false

	for i := range elements {
		e := &elements[i]
		if p.KeepPhase {
			if r.wrap(e, p) {
				moved++
			}
			continue
		}
		if e.Y <= p.DespawnBound {
			continue
		}

		e.Y = p.SpawnBound + r.rng.Jitter(p.Jitter)
		e.X = e.BaseX + r.rng.Jitter(p.HorizontalJitter)
		moved++
		if e.Kind.DepthOrdered() {
			resort = true
		}
		r.logger.WithFields(log.Fields{
			"kind": e.Kind,
			"x":    e.X,
			"y":    e.Y,
		}).Trace("Recycled element")
	}

	if resort {
		ResortDepth(elements, r.depthSpacing)
	}
	return moved
}

// wrap shifts e by whole cycles until it lies within the policy bounds
func (r *Recycler) wrap(e *Element, p Policy) bool {
	cycle := p.DespawnBound - p.SpawnBound
	if cycle <= 0 {
		return false
	}
	if e.Y >= p.SpawnBound && e.Y <= p.DespawnBound {
		return false
	}
	offset := math.Mod(e.Y-p.SpawnBound, cycle)
	if offset < 0 {
		offset += cycle
	}
	if math.IsNaN(offset) {
		offset = 0
	}
	e.Y = p.SpawnBound + offset
	return true
}

// ResortDepth orders the depth-ordered elements by root position and assigns
// each a depth key of its rank times spacing. Other elements are untouched.
func ResortDepth(elements []Element, spacing float64) {
	idx := make([]int, 0, len(elements))
	for i := range elements {
		if elements[i].Kind.DepthOrdered() {
			idx = append(idx, i)
		}
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		ra, rb := elements[a].Root(), elements[b].Root()
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	})

	for rank, i := range idx {
		elements[i].Depth = float64(rank) * spacing
	}
}
