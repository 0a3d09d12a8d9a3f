package body

import (
	gomath "math"
	"sort"

	"github.com/Faultbox/tether/pkg/math"
)

// Hull is a convex polygonal cross-section with counter-clockwise vertices.
// Arc-length parameter 0 is the first vertex.
type Hull struct {
	points    []math.Vec2
	cum       []float32 // cum[i] is the arc length at points[i]
	perimeter float32
	lo, hi    math.Vec2
}

// NewHull builds the convex hull of the given points.
func NewHull(points []math.Vec2) *Hull {
	h := &Hull{points: ConvexHull(points)}
	h.updatePerimeterAndBounds()
	return h
}

func (h *Hull) updatePerimeterAndBounds() {
	h.cum = make([]float32, len(h.points))
	h.perimeter = 0
	if len(h.points) == 0 {
		return
	}
	h.lo, h.hi = h.points[0], h.points[0]
	for i, p := range h.points {
		h.cum[i] = h.perimeter
		h.perimeter += p.Distance(h.points[(i+1)%len(h.points)])

		h.lo = math.Vec2{X: min(h.lo.X, p.X), Y: min(h.lo.Y, p.Y)}
		h.hi = math.Vec2{X: max(h.hi.X, p.X), Y: max(h.hi.Y, p.Y)}
	}
}

// Points returns the hull vertices in counter-clockwise order.
func (h *Hull) Points() []math.Vec2 {
	return h.points
}

// Perimeter returns the hull perimeter.
func (h *Hull) Perimeter() float32 {
	return h.perimeter
}

// Param returns the arc length of the boundary point closest to p.
func (h *Hull) Param(p math.Vec2) float32 {
	n := len(h.points)
	if n < 2 {
		return 0
	}
	best := float32(gomath.MaxFloat32)
	param := float32(0)
	for i := 0; i < n; i++ {
		a, b := h.points[i], h.points[(i+1)%n]
		e := b.Sub(a)
		l2 := e.LengthSq()
		t := float32(0)
		if l2 > 0 {
			t = math.Clamp(p.Sub(a).Dot(e)/l2, 0, 1)
		}
		if d := p.Sub(a.Add(e.Scale(t))).LengthSq(); d < best {
			best = d
			param = h.cum[i] + t*math.Sqrt(l2)
		}
	}
	return math.Repeat(param, h.perimeter)
}

// PointAt returns the boundary point at arc length s.
func (h *Hull) PointAt(s float32) math.Vec2 {
	n := len(h.points)
	if n == 0 {
		return math.Vec2{}
	}
	if n == 1 || h.perimeter <= 0 {
		return h.points[0]
	}
	s = math.Repeat(s, h.perimeter)
	i := sort.Search(n, func(i int) bool { return h.cum[i] > s }) - 1
	if i < 0 {
		i = 0
	}
	a, b := h.points[i], h.points[(i+1)%n]
	l := a.Distance(b)
	if l == 0 {
		return a
	}
	return a.Lerp(b, (s-h.cum[i])/l)
}

// contains reports whether p is inside or on the hull.
func (h *Hull) contains(p math.Vec2) bool {
	n := len(h.points)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		a, b := h.points[i], h.points[(i+1)%n]
		if b.Sub(a).Cross(p.Sub(a)) < 0 {
			return false
		}
	}
	return true
}

// Tangent returns the extreme vertex seen from p. With orientation false
// every other vertex lies to the left of the ray from p through it.
func (h *Hull) Tangent(p math.Vec2, orientation bool) math.Vec2 {
	if len(h.points) == 0 {
		return math.Vec2{}
	}
	if h.contains(p) {
		return h.PointAt(h.Param(p))
	}
	c := h.points[0]
	for _, w := range h.points[1:] {
		cr := c.Sub(p).Cross(w.Sub(p))
		switch {
		case !orientation && cr < 0, orientation && cr > 0:
			c = w
		case cr == 0 && w.Sub(p).LengthSq() < c.Sub(p).LengthSq():
			// Collinear: the nearer vertex is where the segment touches.
			c = w
		}
	}
	return c
}

// NextStop stops at every vertex crossed by the walk.
func (h *Hull) NextStop(s0, walked, dir float32) float32 {
	const eps = 1e-5
	next := float32(gomath.MaxFloat32)
	for _, c := range h.cum {
		// Walked distance at which vertex c is first reached.
		delta := math.Repeat(dir*(c-s0), h.perimeter)
		if delta <= walked+eps {
			k := float32(gomath.Floor(float64((walked+eps-delta)/h.perimeter))) + 1
			delta += k * h.perimeter
		}
		next = min(next, delta)
	}
	return next
}

// IntersectRay clips the line against every edge half-plane (Cyrus-Beck).
func (h *Hull) IntersectRay(o, d math.Vec2) (float32, float32, bool) {
	n := len(h.points)
	if n < 3 {
		return 0, 0, false
	}
	tEnter := float32(-gomath.MaxFloat32)
	tExit := float32(gomath.MaxFloat32)
	for i := 0; i < n; i++ {
		a, b := h.points[i], h.points[(i+1)%n]
		e := b.Sub(a)
		normal := math.Vec2{X: e.Y, Y: -e.X} // outward for CCW order
		num := normal.Dot(a.Sub(o))
		den := normal.Dot(d)
		if den == 0 {
			if num < 0 {
				return 0, 0, false
			}
			continue
		}
		t := num / den
		if den < 0 {
			tEnter = max(tEnter, t)
		} else {
			tExit = min(tExit, t)
		}
		if tEnter > tExit {
			return 0, 0, false
		}
	}
	return tEnter, tExit, true
}

// Extents returns the hull bounds.
func (h *Hull) Extents() (math.Vec2, math.Vec2) {
	return h.lo, h.hi
}

// Convex reports true.
func (h *Hull) Convex() bool {
	return true
}
