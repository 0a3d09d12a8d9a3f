package math

import "math"

// Abs returns the absolute value of x.
func Abs(x float32) float32 {
	return float32(math.Abs(float64(x)))
}

// Sqrt returns the square root of x.
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lerp linearly interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*Clamp(t, 0, 1)
}

// Repeat wraps x into [0, length).
func Repeat(x, length float32) float32 {
	if length <= 0 {
		return 0
	}
	r := float32(math.Mod(float64(x), float64(length)))
	if r < 0 {
		r += length
	}
	if r >= length {
		r = 0
	}
	return r
}
