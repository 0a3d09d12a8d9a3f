package cable

import (
	"github.com/Faultbox/tether/internal/body"
	"github.com/Faultbox/tether/internal/physics"
	"github.com/Faultbox/tether/pkg/math"
)

// Body is the query surface a cable needs from the bodies it touches. Cable
// plane points are 2-D coordinates in the body's cable plane; orientation
// false means the cable wraps the body counter-clockwise.
type Body interface {
	Position() math.Vec3
	TransformPoint(local math.Vec3) math.Vec3
	InverseTransformPoint(world math.Vec3) math.Vec3

	WorldToCablePlane(p math.Vec3) math.Vec2
	CablePlaneNormal() math.Vec3
	// SurfaceDistance is the shortest signed arc length from one plane point
	// to another, positive along the wrap direction.
	SurfaceDistance(from, to math.Vec2, orientation bool) float32
	// WrapDistance is the arc length travelled along the wrap direction.
	WrapDistance(from, to math.Vec2, orientation bool) float32
	SurfacePointAtDistance(from math.Vec2, distance float32, orientation bool) math.Vec3
	WorldSpaceTangent(p math.Vec3, orientation bool) math.Vec3
	HullPoint() math.Vec3
	AppendSamples(dst body.SampleSink, origin math.Vec2, distance, spoolSeparation float32, reverse, orientation bool)
	Convex() bool

	VelocityAt(p math.Vec3) math.Vec3
	ApplyImpulse(impulse, point math.Vec3)
	InverseMass() float32
	InverseInertia() float32
	ApplyFreezing()
}

// Raycaster finds the first collider along a segment. physics.World
// implements it.
type Raycaster interface {
	Raycast(origin, direction math.Vec3, maxDistance float32) (physics.Hit, bool)
}

var (
	_ Body      = (*body.Body)(nil)
	_ Raycaster = (*physics.World)(nil)
)
