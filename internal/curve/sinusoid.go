package curve

import (
	gomath "math"

	"github.com/Faultbox/tether/pkg/math"
)

// Sinusoid fills buf with a sine wave of the given number of full periods
// running from origin to origin+span, with the amplitude chosen so that the
// sampled polyline is length long.
func Sinusoid(origin, span math.Vec3, length float32, frequency uint, buf []math.Vec3) bool {
	n := len(buf)
	d := span.Length()
	if n < 2 || frequency == 0 || d < 1e-6 || length <= d {
		return false
	}

	dir := span.Scale(1 / d)
	side := math.Up.Cross(dir)
	if side.LengthSq() < 1e-6 {
		side = math.Vec3{X: 1}.Cross(dir)
	}
	side = side.Normalize()

	fill := func(amplitude float64) {
		for i := 0; i < n; i++ {
			t := float64(i) / float64(n-1)
			wave := amplitude * gomath.Sin(2*gomath.Pi*float64(frequency)*t)
			buf[i] = origin.Add(span.Scale(float32(t))).Add(side.Scale(float32(wave)))
		}
	}
	polyline := func() float64 {
		var sum float64
		for i := 1; i < n; i++ {
			sum += float64(buf[i].Distance(buf[i-1]))
		}
		return sum
	}

	// Polyline length grows monotonically with amplitude.
	lo, hi := 0.0, float64(length)
	fill(hi)
	if polyline() < float64(length) {
		return false
	}
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		fill(mid)
		if polyline() < float64(length) {
			lo = mid
		} else {
			hi = mid
		}
	}
	fill((lo + hi) / 2)
	return true
}
