package physics

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/tether/pkg/math"
)

func near(a, b float32) bool {
	return math.Abs(a-b) < 1e-4
}

func nearVec(a, b math.Vec3) bool {
	return a.Distance(b) < 1e-4
}

// box is a collider that is exactly its bounding box.
type box struct {
	AABB
}

func (b box) Bounds() AABB {
	return b.AABB
}

func (b box) IntersectRay(r Ray) (float32, bool) {
	o := r.Origin
	if o.X >= b.Min.X && o.X <= b.Max.X && o.Y >= b.Min.Y && o.Y <= b.Max.Y && o.Z >= b.Min.Z && o.Z <= b.Max.Z {
		return 0, false
	}
	return r.IntersectAABB(b.AABB)
}

func unitBox(x float32) box {
	return box{NewAABB(math.Vec3{X: x - 0.5, Y: -0.5, Z: -0.5}, math.Vec3{X: x + 0.5, Y: 0.5, Z: 0.5})}
}

func TestRayIntersectAABB(t *testing.T) {
	b := NewAABB(math.Vec3{X: -1, Y: -1, Z: -1}, math.Vec3{X: 1, Y: 1, Z: 1})

	tests := []struct {
		name   string
		origin math.Vec3
		dir    math.Vec3
		hit    bool
		want   float32
	}{
		{"hit from outside", math.Vec3{X: -5}, math.Vec3{X: 1}, true, 4},
		{"start inside", math.Vec3{}, math.Vec3{X: 1}, true, 1},
		{"miss", math.Vec3{X: -5, Y: 3}, math.Vec3{X: 1}, false, 0},
		{"pointing away", math.Vec3{X: -5}, math.Vec3{X: -1}, false, 0},
		{"parallel outside slab", math.Vec3{X: -5, Y: 2}, math.Vec3{X: 1}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewRay(tt.origin, tt.dir).IntersectAABB(b)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if ok && !near(got, tt.want) {
				t.Errorf("t = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBExtend(t *testing.T) {
	b := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{})
	if b.Min != (math.Vec3{}) || b.Max != (math.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("NewAABB corners not ordered: %v", b)
	}
	b = b.Extend(math.Vec3{X: -2, Y: 3})
	if b.Min.X != -2 || b.Max.Y != 3 {
		t.Errorf("Extend() = %v, want min X -2, max Y 3", b)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := NewTransform(math.Vec3{X: 1, Y: 2, Z: 3}, math.QuatFromAxisAngle(math.Vec3{Z: 1}, gomath.Pi/2))

	local := math.Vec3{X: 1}
	world := tr.TransformPoint(local)
	if want := (math.Vec3{X: 1, Y: 3, Z: 3}); !nearVec(world, want) {
		t.Errorf("TransformPoint() = %v, want %v", world, want)
	}
	if back := tr.InverseTransformPoint(world); !nearVec(back, local) {
		t.Errorf("InverseTransformPoint() = %v, want %v", back, local)
	}
	if d := tr.TransformDirection(math.Vec3{X: 1}); !nearVec(d, math.Vec3{Y: 1}) {
		t.Errorf("TransformDirection() = %v, want (0,1,0)", d)
	}
	if d := tr.InverseTransformDirection(math.Vec3{Y: 1}); !nearVec(d, math.Vec3{X: 1}) {
		t.Errorf("InverseTransformDirection() = %v, want (1,0,0)", d)
	}

	tr.SetPosition(math.Vec3{})
	if got := tr.TransformPoint(local); !nearVec(got, math.Vec3{Y: 1}) {
		t.Errorf("TransformPoint() after SetPosition = %v, want (0,1,0)", got)
	}
}

func TestRigidBodyImpulse(t *testing.T) {
	b := NewRigidBody(math.Vec3{}, math.QuatIdentity(), 2, 0.5)
	b.ApplyImpulse(math.Vec3{Y: 1}, math.Vec3{X: 1})

	if v := b.Velocity(); !nearVec(v, math.Vec3{Y: 0.5}) {
		t.Errorf("Velocity() = %v, want (0,0.5,0)", v)
	}
	// r x J = (1,0,0) x (0,1,0) = (0,0,1), scaled by 1/inertia.
	if w := b.AngularVelocity(); !nearVec(w, math.Vec3{Z: 2}) {
		t.Errorf("AngularVelocity() = %v, want (0,0,2)", w)
	}
	if v := b.VelocityAt(math.Vec3{X: 1}); !nearVec(v, math.Vec3{Y: 2.5}) {
		t.Errorf("VelocityAt() = %v, want (0,2.5,0)", v)
	}
}

func TestRigidBodyTypes(t *testing.T) {
	s := NewStaticBody(math.Vec3{}, math.QuatIdentity())
	k := NewKinematicBody(math.Vec3{}, math.QuatIdentity())

	for _, b := range []*RigidBody{s, k} {
		if b.InverseMass() != 0 || b.InverseInertia() != 0 {
			t.Errorf("type %d: inverse mass %v, inertia %v, want 0", b.Type(), b.InverseMass(), b.InverseInertia())
		}
		b.ApplyImpulse(math.Vec3{X: 1}, math.Vec3{})
	}
	if s.Velocity() != (math.Vec3{}) || k.Velocity() != (math.Vec3{}) {
		t.Error("impulse moved a non-dynamic body")
	}

	s.SetVelocity(math.Vec3{X: 1})
	if s.Velocity() != (math.Vec3{}) {
		t.Error("static body accepted a velocity")
	}
	k.SetVelocity(math.Vec3{X: 1})
	k.IntegratePosition(0.5)
	if p := k.Position(); !nearVec(p, math.Vec3{X: 0.5}) {
		t.Errorf("kinematic Position() = %v, want (0.5,0,0)", p)
	}
}

func TestRigidBodyFreeze(t *testing.T) {
	b := NewRigidBody(math.Vec3{}, math.QuatIdentity(), 1, 1)
	b.Freezing.Planar = true
	b.SetVelocity(math.Vec3{X: 1, Z: 2})
	b.SetAngularVelocity(math.Vec3{X: 3, Z: 4})
	b.Freeze(math.Vec3{Z: 1})

	if v := b.Velocity(); !nearVec(v, math.Vec3{X: 1}) {
		t.Errorf("Velocity() = %v, want (1,0,0)", v)
	}
	if w := b.AngularVelocity(); !nearVec(w, math.Vec3{Z: 4}) {
		t.Errorf("AngularVelocity() = %v, want (0,0,4)", w)
	}

	b.Freezing.SleepSpeed = 5
	b.Freeze(math.Vec3{Z: 1})
	if b.Velocity() != (math.Vec3{}) || b.AngularVelocity() != (math.Vec3{}) {
		t.Error("slow body did not sleep")
	}
}

func TestWorldStep(t *testing.T) {
	w := NewWorld(math.Vec3{Y: -10})
	b := NewRigidBody(math.Vec3{}, math.QuatIdentity(), 1, 1)
	w.AddBody(b)
	w.AddBody(NewStaticBody(math.Vec3{X: 5}, math.QuatIdentity()))

	calls := 0
	w.Step(0.1, 4, func(h float32) {
		calls++
		if !near(h, 0.025) {
			t.Errorf("substep = %v, want 0.025", h)
		}
	})
	if calls != 4 {
		t.Errorf("solve called %d times, want 4", calls)
	}
	if v := b.Velocity(); !near(v.Y, -1) {
		t.Errorf("velocity Y = %v, want -1", v.Y)
	}
	// Semi-implicit Euler: sum of 0.025 * (-0.25, -0.5, -0.75, -1).
	if p := b.Position(); !near(p.Y, -0.0625) {
		t.Errorf("position Y = %v, want -0.0625", p.Y)
	}
	if p := w.Bodies()[1].Position(); p != (math.Vec3{X: 5}) {
		t.Errorf("static body moved to %v", p)
	}
}

func TestWorldRaycast(t *testing.T) {
	w := NewWorld(math.Vec3{})
	farBox := unitBox(6)
	nearBox := unitBox(3)
	w.AddCollider(farBox)
	w.AddCollider(nearBox)

	hit, ok := w.Raycast(math.Vec3{}, math.Vec3{X: 2}, 10)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Collider != Collider(nearBox) {
		t.Errorf("hit collider %v, want the closest box", hit.Collider)
	}
	if !near(hit.Distance, 2.5) || !nearVec(hit.Point, math.Vec3{X: 2.5}) {
		t.Errorf("hit = %+v, want distance 2.5", hit)
	}

	if _, ok := w.Raycast(math.Vec3{}, math.Vec3{X: 1}, 2); ok {
		t.Error("hit beyond max distance")
	}
	if _, ok := w.Raycast(math.Vec3{}, math.Vec3{}, 10); ok {
		t.Error("hit with zero direction")
	}
	// Rays starting inside a collider ignore it.
	hit, ok = w.Raycast(math.Vec3{X: 3}, math.Vec3{X: 1}, 10)
	if !ok || hit.Collider != Collider(farBox) {
		t.Errorf("ray from inside hit %+v, want the far box", hit)
	}
}
