package physics

import "github.com/Faultbox/tether/pkg/math"

// RayEpsilon is the minimum entry distance of a ray hit. Rays that start
// inside or on the surface of a collider do not hit it.
const RayEpsilon = 1e-4

// Collider is anything the world can cast rays against.
type Collider interface {
	// Bounds returns the world-space bounding box.
	Bounds() AABB
	// IntersectRay returns the entry distance of r into the collider. It
	// reports false when r starts inside the collider or misses it.
	IntersectRay(r Ray) (float32, bool)
}

// Hit is the result of a ray cast.
type Hit struct {
	Point    math.Vec3
	Distance float32
	Collider Collider
}

// World owns the integration order of a set of rigid bodies and the list of
// colliders used for ray queries. Bodies and colliders are borrowed.
type World struct {
	Gravity math.Vec3

	bodies    []*RigidBody
	colliders []Collider
}

// NewWorld creates an empty world.
func NewWorld(gravity math.Vec3) *World {
	return &World{Gravity: gravity}
}

// AddBody registers a body for integration.
func (w *World) AddBody(b *RigidBody) {
	w.bodies = append(w.bodies, b)
}

// AddCollider registers a collider for ray queries.
func (w *World) AddCollider(c Collider) {
	w.colliders = append(w.colliders, c)
}

// Bodies returns the registered bodies.
func (w *World) Bodies() []*RigidBody {
	return w.bodies
}

// Step advances the world by dt split into substeps. solve runs once per
// substep between velocity and position integration.
func (w *World) Step(dt float32, substeps int, solve func(h float32)) {
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float32(substeps)
	for i := 0; i < substeps; i++ {
		for _, b := range w.bodies {
			b.IntegrateVelocity(w.Gravity, h)
		}
		if solve != nil {
			solve(h)
		}
		for _, b := range w.bodies {
			b.IntegratePosition(h)
		}
	}
}

// Raycast returns the closest collider hit along direction from origin, no
// farther than maxDistance.
func (w *World) Raycast(origin, direction math.Vec3, maxDistance float32) (Hit, bool) {
	if direction.LengthSq() == 0 || maxDistance <= 0 {
		return Hit{}, false
	}
	ray := NewRay(origin, direction)

	var best Hit
	found := false
	for _, c := range w.colliders {
		// Broad phase
		if t, ok := ray.IntersectAABB(c.Bounds()); !ok || t > maxDistance {
			continue
		}
		t, ok := c.IntersectRay(ray)
		if !ok || t < RayEpsilon || t > maxDistance {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Point: ray.At(t), Distance: t, Collider: c}
			found = true
		}
	}
	return best, found
}
