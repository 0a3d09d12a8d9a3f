package body

import "github.com/Faultbox/tether/pkg/math"

// Point is a zero-size cross-section. Cables attach to it but never wrap it.
type Point struct{}

func (Point) Perimeter() float32 { return 0 }

func (Point) Param(math.Vec2) float32 { return 0 }

func (Point) PointAt(float32) math.Vec2 { return math.Vec2{} }

func (Point) Tangent(math.Vec2, bool) math.Vec2 { return math.Vec2{} }

func (Point) NextStop(_, walked, _ float32) float32 { return walked }

func (Point) Extents() (math.Vec2, math.Vec2) { return math.Vec2{}, math.Vec2{} }

func (Point) Convex() bool { return false }

func (Point) IntersectRay(math.Vec2, math.Vec2) (float32, float32, bool) {
	return 0, 0, false
}
