package mathutil

import "math"

// Lerp returns a + (b-a)*t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]. NaN is mapped to lo so callers never carry it
// into the next tick.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Fraction returns |v|/max clamped to [0, 1]. A non-positive max yields 0.
func Fraction(v, max float64) float64 {
	if max <= 0 {
		return 0
	}
	return Clamp(math.Abs(v)/max, 0, 1)
}
