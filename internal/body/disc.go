package body

import (
	gomath "math"

	"github.com/Faultbox/tether/pkg/math"
)

// discStops is the number of sample stops per full turn of a disc.
const discStops = 32

// Disc is a circular cross-section centred on the body origin.
type Disc struct {
	Radius float32
}

// Perimeter returns the circumference.
func (d Disc) Perimeter() float32 {
	return 2 * gomath.Pi * d.Radius
}

// Param returns the arc length from the +X axis to the projection of p.
func (d Disc) Param(p math.Vec2) float32 {
	if p.LengthSq() == 0 {
		return 0
	}
	return math.Repeat(p.Angle()*d.Radius, d.Perimeter())
}

// PointAt returns the rim point at arc length s.
func (d Disc) PointAt(s float32) math.Vec2 {
	if d.Radius <= 0 {
		return math.Vec2{}
	}
	return math.FromAngle(s / d.Radius).Scale(d.Radius)
}

// Tangent returns the tangent point on the rim seen from p. Points on or
// inside the rim map to their radial projection.
func (d Disc) Tangent(p math.Vec2, orientation bool) math.Vec2 {
	dist := p.Length()
	if dist <= d.Radius+1e-6 {
		if dist == 0 {
			return math.Vec2{X: d.Radius}
		}
		return p.Scale(d.Radius / dist)
	}
	alpha := float32(gomath.Acos(float64(d.Radius / dist)))
	phi := p.Angle()
	if orientation {
		phi -= alpha
	} else {
		phi += alpha
	}
	return math.FromAngle(phi).Scale(d.Radius)
}

// NextStop steps uniformly around the rim.
func (d Disc) NextStop(s0, walked, dir float32) float32 {
	step := d.Perimeter() / discStops
	if step <= 0 {
		return walked
	}
	next := float32(gomath.Floor(float64(walked/step))+1) * step
	if next <= walked {
		next += step
	}
	return next
}

// IntersectRay clips the line against the circle.
func (d Disc) IntersectRay(o, dir math.Vec2) (float32, float32, bool) {
	r2 := d.Radius * d.Radius
	a := dir.LengthSq()
	if a < 1e-12 {
		if o.LengthSq() <= r2 {
			return -gomath.MaxFloat32, gomath.MaxFloat32, true
		}
		return 0, 0, false
	}
	b := o.Dot(dir)
	c := o.LengthSq() - r2
	disc := b*b - a*c
	if disc < 0 {
		return 0, 0, false
	}
	sq := math.Sqrt(disc)
	return (-b - sq) / a, (-b + sq) / a, true
}

// Extents returns the bounding square.
func (d Disc) Extents() (math.Vec2, math.Vec2) {
	return math.Vec2{X: -d.Radius, Y: -d.Radius}, math.Vec2{X: d.Radius, Y: d.Radius}
}

// Convex reports true.
func (d Disc) Convex() bool {
	return true
}
