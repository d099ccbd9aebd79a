package vmath

import "math"

// Epsilon is the tolerance used for position comparisons
const Epsilon = 1e-9

// --- Range mapping ---

// Wrap maps v into [lo, hi) with modular arithmetic
// Negative values wrap from the top, matching a repeating timeline
func Wrap(lo, hi, v float64) float64 {
	span := hi - lo
	if span <= 0 {
		return lo
	}
	r := math.Mod(v-lo, span)
	if r < 0 {
		r += span
	}
	// Guards float residue that lands exactly on hi
	if r >= span {
		r = 0
	}
	return lo + r
}

// WrapInt maps v into [0, n)
func WrapInt(n, v int) int {
	if n <= 0 {
		return 0
	}
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}

// Clamp limits v to [lo, hi]
func Clamp(lo, hi, v float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Snap rounds v to the nearest multiple of step
func Snap(step, v float64) float64 {
	if step <= 0 {
		return v
	}
	return math.Round(v/step) * step
}

// --- Interpolation ---

// Lerp performs linear interpolation between a and b, t in [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the Hermite step between edge0 and edge1
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 == edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp(0, 1, (x-edge0)/(edge1-edge0))
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x, always in [0, 1)
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// NearlyEqual compares with Epsilon scaled by magnitude
func NearlyEqual(a, b float64) bool {
	d := math.Abs(a - b)
	if d <= Epsilon {
		return true
	}
	return d <= Epsilon*math.Max(math.Abs(a), math.Abs(b))
}
