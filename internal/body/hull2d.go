package body

import "github.com/Faultbox/tether/pkg/math"

// Plane selects the plane a mesh is sliced with.
type Plane uint8

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
	PlaneCustom
)

// duplicateDistanceSq is the squared distance under which slice points are merged.
const duplicateDistanceSq = 1e-4

// orientation returns 0 for collinear p, q, r, 1 for clockwise and -1 for
// counter-clockwise turns.
func orientation(p, q, r math.Vec2) int {
	val := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	if val == 0 {
		return 0
	}
	if val > 0 {
		return 1
	}
	return -1
}

// ConvexHull returns the convex hull of points in counter-clockwise order,
// using Jarvis' gift wrapping.
func ConvexHull(points []math.Vec2) []math.Vec2 {
	if len(points) <= 3 {
		hull := append([]math.Vec2(nil), points...)
		if signedArea(hull) < 0 {
			for i, j := 0, len(hull)-1; i < j; i, j = i+1, j-1 {
				hull[i], hull[j] = hull[j], hull[i]
			}
		}
		return hull
	}

	// Start at the lowest of the leftmost points, always a hull corner.
	l := 0
	for i, p := range points {
		if p.X < points[l].X || p.X == points[l].X && p.Y < points[l].Y {
			l = i
		}
	}

	var hull []math.Vec2
	p := l
	for {
		hull = append(hull, points[p])

		// Find the most counter-clockwise point; on ties keep the farthest.
		q := (p + 1) % len(points)
		for i := range points {
			switch o := orientation(points[p], points[i], points[q]); {
			case o < 0:
				q = i
			case o == 0 && points[p].Sub(points[i]).LengthSq() > points[p].Sub(points[q]).LengthSq():
				q = i
			}
		}

		p = q
		if p == l || len(hull) > len(points) {
			break
		}
	}
	return hull
}

func signedArea(points []math.Vec2) float32 {
	var a float32
	for i, p := range points {
		a += p.Cross(points[(i+1)%len(points)])
	}
	return a / 2
}

// SliceMesh intersects every triangle edge of a mesh with a plane through
// the mesh origin and returns the intersection points in plane coordinates,
// with near-duplicates removed. normal is only used for PlaneCustom.
func SliceMesh(vertices []math.Vec3, triangles []int, plane Plane, normal math.Vec3) []math.Vec2 {
	var toPlane math.Quat
	switch plane {
	case PlaneXY:
		normal = math.Vec3{Z: 1}
	case PlaneXZ:
		normal = math.Vec3{Y: 1}
	case PlaneYZ:
		normal = math.Vec3{X: 1}
	default:
		normal = normal.Normalize()
		toPlane = math.QuatFromTo(normal, math.Vec3{Z: 1})
	}

	project := func(p math.Vec3) math.Vec2 {
		switch plane {
		case PlaneXY:
			return math.Vec2{X: p.X, Y: p.Y}
		case PlaneXZ:
			return math.Vec2{X: p.X, Y: p.Z}
		case PlaneYZ:
			return math.Vec2{X: p.Y, Y: p.Z}
		}
		q := toPlane.Rotate(p)
		return math.Vec2{X: q.X, Y: q.Y}
	}

	var out []math.Vec2
	add := func(a, b math.Vec3) {
		if p, ok := linePlaneIntersect(a, b, normal); ok {
			out = appendUnique(out, project(p))
		}
	}
	for i := 0; i+2 < len(triangles); i += 3 {
		a, b, c := vertices[triangles[i]], vertices[triangles[i+1]], vertices[triangles[i+2]]
		add(a, b)
		add(a, c)
		add(c, b)
	}
	return out
}

func linePlaneIntersect(p1, p2, normal math.Vec3) (math.Vec3, bool) {
	u := p2.Sub(p1)
	dot := normal.Dot(u)
	if math.Abs(dot) <= 1e-6 {
		return math.Vec3{}, false
	}
	s := -normal.Dot(p1) / dot
	if s < 0 || s > 1 {
		return math.Vec3{}, false
	}
	return p1.Add(u.Scale(s)), true
}

func appendUnique(points []math.Vec2, p math.Vec2) []math.Vec2 {
	for _, q := range points {
		if p.Sub(q).LengthSq() < duplicateDistanceSq {
			return points
		}
	}
	return append(points, p)
}

// NewHullFromMesh slices a mesh and wraps the slice in a hull.
func NewHullFromMesh(vertices []math.Vec3, triangles []int, plane Plane, normal math.Vec3) *Hull {
	return NewHull(SliceMesh(vertices, triangles, plane, normal))
}
