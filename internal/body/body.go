// Package body implements the cable bodies: rigid bodies with a flat cable
// plane (local XY, normal along local +Z) and a cross-section shape that
// answers the perimeter queries the cable solver needs.
package body

import (
	gomath "math"

	"github.com/Faultbox/tether/internal/physics"
	"github.com/Faultbox/tether/pkg/math"
)

// DefaultThickness is the default half-depth of a body along its plane normal.
const DefaultThickness = 0.1

// maxSamplesPerCall bounds AppendSamples for pathological spool lengths.
const maxSamplesPerCall = 4096

// SampleSink receives surface samples. cable.SampledCable implements it.
type SampleSink interface {
	AppendSample(p math.Vec3, accumulateLength bool)
	ReverseLastSamples(count int)
}

// Shape is a 2-D cross-section in cable-plane coordinates. Arc-length
// parameters run counter-clockwise along the boundary, starting at an
// arbitrary shape-defined reference.
type Shape interface {
	Perimeter() float32
	// Param returns the arc-length parameter of the boundary point closest to p.
	Param(p math.Vec2) float32
	// PointAt returns the boundary point at parameter s (wrapped).
	PointAt(s float32) math.Vec2
	// Tangent returns the tangent point seen from p. orientation false picks
	// the point where a counter-clockwise wrap starts.
	Tangent(p math.Vec2, orientation bool) math.Vec2
	// NextStop returns the walked distance of the first sample stop beyond
	// walked, walking from s0 in direction dir (+1 or -1).
	NextStop(s0, walked, dir float32) float32
	// IntersectRay clips the 2-D line o+t*d against the shape.
	IntersectRay(o, d math.Vec2) (tEnter, tExit float32, ok bool)
	Extents() (lo, hi math.Vec2)
	Convex() bool
}

// Body is a rigid body carrying a cable cross-section.
type Body struct {
	*physics.RigidBody

	Name      string
	Shape     Shape
	Thickness float32
}

// New binds a shape to a rigid body.
func New(name string, rb *physics.RigidBody, shape Shape) *Body {
	return &Body{
		RigidBody: rb,
		Name:      name,
		Shape:     shape,
		Thickness: DefaultThickness,
	}
}

// String returns the body name.
func (b *Body) String() string {
	return b.Name
}

// WorldToCablePlane projects a world point onto the cable plane.
func (b *Body) WorldToCablePlane(p math.Vec3) math.Vec2 {
	l := b.InverseTransformPoint(p)
	return math.Vec2{X: l.X, Y: l.Y}
}

// CablePlaneToWorld lifts a cable-plane point into world space.
func (b *Body) CablePlaneToWorld(p math.Vec2) math.Vec3 {
	return b.TransformPoint(math.Vec3{X: p.X, Y: p.Y})
}

// CablePlaneNormal returns the world-space plane normal.
func (b *Body) CablePlaneNormal() math.Vec3 {
	return b.TransformDirection(math.Vec3{Z: 1})
}

// Perimeter returns the cross-section perimeter.
func (b *Body) Perimeter() float32 {
	return b.Shape.Perimeter()
}

// Convex reports whether the cross-section is convex and can be wrapped by
// a newly split cable segment.
func (b *Body) Convex() bool {
	return b.Shape.Convex()
}

// direction maps an orientation to the sign of arc-length travel.
func direction(orientation bool) float32 {
	if orientation {
		return -1
	}
	return 1
}

// SurfaceDistance returns the signed arc length from a to b, positive when b
// lies ahead of a in the wrap direction. The result is the shortest one, in
// (-P/2, P/2].
func (b *Body) SurfaceDistance(from, to math.Vec2, orientation bool) float32 {
	p := b.Shape.Perimeter()
	if p <= 0 {
		return 0
	}
	d := (b.Shape.Param(to) - b.Shape.Param(from)) * direction(orientation)
	d = math.Repeat(d, p)
	if d > p/2 {
		d -= p
	}
	return d
}

// WrapDistance returns the arc length travelled from a to b in the wrap
// direction, in [0, P).
func (b *Body) WrapDistance(from, to math.Vec2, orientation bool) float32 {
	p := b.Shape.Perimeter()
	if p <= 0 {
		return 0
	}
	d := (b.Shape.Param(to) - b.Shape.Param(from)) * direction(orientation)
	return math.Repeat(d, p)
}

// SurfacePointAtDistance walks distance along the surface from a plane point
// in the wrap direction and returns the world-space result.
func (b *Body) SurfacePointAtDistance(from math.Vec2, distance float32, orientation bool) math.Vec3 {
	s := b.Shape.Param(from) + distance*direction(orientation)
	return b.CablePlaneToWorld(b.Shape.PointAt(s))
}

// WorldSpaceTangent returns the world-space tangent point seen from p.
func (b *Body) WorldSpaceTangent(p math.Vec3, orientation bool) math.Vec3 {
	return b.CablePlaneToWorld(b.Shape.Tangent(b.WorldToCablePlane(p), orientation))
}

// HullPoint returns a point on the silhouette, used to seed tangent searches.
func (b *Body) HullPoint() math.Vec3 {
	return b.CablePlaneToWorld(b.Shape.PointAt(0))
}

// AppendSamples emits surface samples starting at origin and walking
// distance along the surface. The walk follows the wrap direction, or runs
// against it when reverse is set, in which case the emitted samples are
// flipped afterwards so they end at origin. Each sample is pushed along
// -normal by spoolSeparation times the cable still wound beyond it.
func (b *Body) AppendSamples(dst SampleSink, origin math.Vec2, distance, spoolSeparation float32, reverse, orientation bool) {
	dir := direction(orientation)
	if reverse {
		dir = -dir
	}
	if distance < 0 {
		distance = 0
	}

	s0 := b.Shape.Param(origin)
	normal := b.CablePlaneNormal()
	count := 0
	emit := func(walked float32) {
		p := b.CablePlaneToWorld(b.Shape.PointAt(s0 + dir*walked))
		p = p.Sub(normal.Scale((distance - walked) * spoolSeparation))
		dst.AppendSample(p, !reverse)
		count++
	}

	emit(0)
	if b.Shape.Perimeter() > 0 && distance > 0 {
		walked := float32(0)
		for count < maxSamplesPerCall {
			walked = b.Shape.NextStop(s0, walked, dir)
			if walked >= distance {
				break
			}
			emit(walked)
		}
		emit(distance)
	}

	if reverse {
		dst.ReverseLastSamples(count)
	}
}

// ApplyFreezing applies the rigid body's freezing rules in the cable plane.
func (b *Body) ApplyFreezing() {
	b.Freeze(b.CablePlaneNormal())
}

// Bounds returns the world-space bounding box of the extruded cross-section.
func (b *Body) Bounds() physics.AABB {
	lo, hi := b.Shape.Extents()
	box := physics.NewAABB(b.TransformPoint(math.Vec3{X: lo.X, Y: lo.Y, Z: -b.Thickness}),
		b.TransformPoint(math.Vec3{X: hi.X, Y: hi.Y, Z: b.Thickness}))
	for _, c := range [...]math.Vec3{
		{X: lo.X, Y: lo.Y, Z: b.Thickness},
		{X: lo.X, Y: hi.Y, Z: -b.Thickness},
		{X: lo.X, Y: hi.Y, Z: b.Thickness},
		{X: hi.X, Y: lo.Y, Z: -b.Thickness},
		{X: hi.X, Y: lo.Y, Z: b.Thickness},
		{X: hi.X, Y: hi.Y, Z: -b.Thickness},
	} {
		box = box.Extend(b.TransformPoint(c))
	}
	return box
}

// IntersectRay intersects r with the cross-section extruded by Thickness
// along the plane normal.
func (b *Body) IntersectRay(r physics.Ray) (float32, bool) {
	o := b.InverseTransformPoint(r.Origin)
	d := b.InverseTransformDirection(r.Direction)

	tzMin, tzMax := float32(-gomath.MaxFloat32), float32(gomath.MaxFloat32)
	if math.Abs(d.Z) < 1e-9 {
		if math.Abs(o.Z) > b.Thickness {
			return 0, false
		}
	} else {
		t1 := (-b.Thickness - o.Z) / d.Z
		t2 := (b.Thickness - o.Z) / d.Z
		tzMin, tzMax = min(t1, t2), max(t1, t2)
	}

	t0, t1, ok := b.Shape.IntersectRay(math.Vec2{X: o.X, Y: o.Y}, math.Vec2{X: d.X, Y: d.Y})
	if !ok {
		return 0, false
	}
	enter := max(t0, tzMin)
	exit := min(t1, tzMax)
	if enter > exit || enter < physics.RayEpsilon {
		return 0, false
	}
	return enter, true
}
