// Package curve samples the closed-form curves used to draw slack cable.
// Every function fills a caller-owned buffer and reports false when the
// requested curve has no real solution.
package curve

import (
	gomath "math"

	"github.com/Faultbox/tether/pkg/math"
)

// maxShape caps the catenary shape parameter h/(2a) so cosh stays finite.
const maxShape = 300

// Catenary fills buf with points of the catenary of the given arc length
// hanging from p1 to p2, with gravity along -Y. Points are evenly spaced in
// X; buf[0] is p1 and buf[len(buf)-1] is p2.
func Catenary(p1, p2 math.Vec2, length float32, buf []math.Vec2) bool {
	n := len(buf)
	if n < 2 {
		return false
	}
	dx := float64(p2.X - p1.X)
	dy := float64(p2.Y - p1.Y)
	h := gomath.Abs(dx)
	l := float64(length)
	if h < 1e-6 || l*l <= dx*dx+dy*dy {
		return false
	}

	// 2a*sinh(h/2a) = sqrt(L^2 - dy^2). Solve sinh(z)/z = ratio for z = h/2a.
	ratio := gomath.Sqrt(l*l-dy*dy) / h
	z, ok := solveSinhRatio(ratio)
	if !ok {
		return false
	}
	a := h / (2 * z)
	x0 := h/2 - a*gomath.Atanh(dy/l)
	c := -a * gomath.Cosh(x0/a)

	sign := 1.0
	if dx < 0 {
		sign = -1
	}
	for i := 0; i < n; i++ {
		x := h * float64(i) / float64(n-1)
		y := a*gomath.Cosh((x-x0)/a) + c
		buf[i] = math.Vec2{X: p1.X + float32(sign*x), Y: p1.Y + float32(y)}
	}
	buf[0] = p1
	buf[n-1] = p2
	return true
}

// solveSinhRatio solves sinh(z) = ratio*z for z > 0, ratio > 1.
func solveSinhRatio(ratio float64) (float64, bool) {
	if ratio <= 1 {
		return 0, false
	}
	f := func(z float64) float64 { return gomath.Sinh(z) - ratio*z }

	// Bracket the root, then bisect with Newton acceleration.
	lo, hi := 1e-9, 1.0
	for f(hi) < 0 {
		lo = hi
		hi *= 2
		if hi > maxShape {
			return 0, false
		}
	}
	z := gomath.Sqrt(6 * (ratio - 1)) // small-z series estimate
	if z <= lo || z >= hi {
		z = (lo + hi) / 2
	}
	for i := 0; i < 64; i++ {
		fz := f(z)
		if gomath.Abs(fz) < 1e-12 {
			break
		}
		if fz < 0 {
			lo = z
		} else {
			hi = z
		}
		next := z - fz/(gomath.Cosh(z)-ratio)
		if next <= lo || next >= hi || gomath.IsNaN(next) {
			next = (lo + hi) / 2
		}
		z = next
	}
	return z, true
}
