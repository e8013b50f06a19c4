package mathutil

import "math/rand"

// Rand is the only source of randomness in the simulation. Everything that
// draws random values takes one, so a fixed seed replays a session exactly.
type Rand struct {
	rng *rand.Rand
}

// NewRand creates a generator seeded with seed.
func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// IntBetween returns a uniform integer in [lo, hi], inclusive on both ends.
func (r *Rand) IntBetween(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// FloatBetween returns a uniform float in [lo, hi).
func (r *Rand) FloatBetween(lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.rng.Float64()*(hi-lo)
}

// Jitter returns a uniform float in [-amount, amount].
func (r *Rand) Jitter(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	return r.FloatBetween(-amount, amount)
}

// Chance reports true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Pick returns a uniform index in [0, n). n must be positive.
func (r *Rand) Pick(n int) int {
	return r.rng.Intn(n)
}
