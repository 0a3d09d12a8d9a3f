package physics

import "github.com/Faultbox/tether/pkg/math"

// BodyType for bodies; Dynamic, Kinematic or Static
type BodyType uint8

const (
	Dynamic BodyType = iota
	Kinematic
	Static
)

// Freezing describes when a body stops responding to correction.
type Freezing struct {
	// Planar keeps the body moving inside its cable plane: linear velocity
	// along the plane normal and angular velocity off the normal are removed.
	Planar bool
	// SleepSpeed zeroes both velocities once they fall below it.
	SleepSpeed float32
}

// RigidBody is a point mass with isotropic rotational inertia.
type RigidBody struct {
	Transform

	bodyType   BodyType
	invMass    float32
	invInertia float32

	velocity        math.Vec3
	angularVelocity math.Vec3

	LinearDamping  float32
	AngularDamping float32
	Freezing       Freezing
}

// NewRigidBody creates a dynamic body. A non-positive mass or inertia makes
// the corresponding degree of freedom immovable.
func NewRigidBody(position math.Vec3, rotation math.Quat, mass, inertia float32) *RigidBody {
	b := &RigidBody{
		Transform: NewTransform(position, rotation),
		bodyType:  Dynamic,
	}
	if mass > 0 {
		b.invMass = 1 / mass
	}
	if inertia > 0 {
		b.invInertia = 1 / inertia
	}
	return b
}

// NewStaticBody creates a body that never moves.
func NewStaticBody(position math.Vec3, rotation math.Quat) *RigidBody {
	return &RigidBody{
		Transform: NewTransform(position, rotation),
		bodyType:  Static,
	}
}

// NewKinematicBody creates a body driven only by its assigned velocities.
func NewKinematicBody(position math.Vec3, rotation math.Quat) *RigidBody {
	return &RigidBody{
		Transform: NewTransform(position, rotation),
		bodyType:  Kinematic,
	}
}

// Type returns the body type.
func (b *RigidBody) Type() BodyType {
	return b.bodyType
}

// InverseMass returns 1/mass, zero for non-dynamic bodies.
func (b *RigidBody) InverseMass() float32 {
	if b.bodyType != Dynamic {
		return 0
	}
	return b.invMass
}

// InverseInertia returns 1/inertia, zero for non-dynamic bodies.
func (b *RigidBody) InverseInertia() float32 {
	if b.bodyType != Dynamic {
		return 0
	}
	return b.invInertia
}

// Velocity returns the linear velocity.
func (b *RigidBody) Velocity() math.Vec3 {
	return b.velocity
}

// SetVelocity sets the linear velocity.
func (b *RigidBody) SetVelocity(v math.Vec3) {
	if b.bodyType == Static {
		return
	}
	b.velocity = v
}

// AngularVelocity returns the angular velocity in world space.
func (b *RigidBody) AngularVelocity() math.Vec3 {
	return b.angularVelocity
}

// SetAngularVelocity sets the angular velocity in world space.
func (b *RigidBody) SetAngularVelocity(w math.Vec3) {
	if b.bodyType == Static {
		return
	}
	b.angularVelocity = w
}

// VelocityAt returns the velocity of a world point rigidly attached to the body.
func (b *RigidBody) VelocityAt(point math.Vec3) math.Vec3 {
	r := point.Sub(b.Position())
	return b.velocity.Add(b.angularVelocity.Cross(r))
}

// ApplyImpulse applies a world-space impulse at a world-space point.
func (b *RigidBody) ApplyImpulse(impulse, point math.Vec3) {
	if b.bodyType != Dynamic {
		return
	}
	r := point.Sub(b.Position())
	b.velocity = b.velocity.Add(impulse.Scale(b.invMass))
	b.angularVelocity = b.angularVelocity.Add(r.Cross(impulse).Scale(b.invInertia))
}

// IntegrateVelocity applies gravity and damping over dt.
func (b *RigidBody) IntegrateVelocity(gravity math.Vec3, dt float32) {
	if b.bodyType != Dynamic {
		return
	}
	if b.invMass > 0 {
		b.velocity = b.velocity.Add(gravity.Scale(dt))
	}
	b.velocity = b.velocity.Scale(1 / (1 + dt*b.LinearDamping))
	b.angularVelocity = b.angularVelocity.Scale(1 / (1 + dt*b.AngularDamping))
}

// IntegratePosition advances the pose by the current velocities over dt.
func (b *RigidBody) IntegratePosition(dt float32) {
	if b.bodyType == Static {
		return
	}
	pos := b.Position().Add(b.velocity.Scale(dt))
	rot := b.Rotation()
	if b.angularVelocity.LengthSq() > 0 {
		rot = rot.Integrate(b.angularVelocity, dt)
	}
	b.SetPose(pos, rot)
}

// Freeze applies the body's freezing rules. planeNormal is the world-space
// normal of the plane the body is kept in when Freezing.Planar is set.
func (b *RigidBody) Freeze(planeNormal math.Vec3) {
	if b.bodyType != Dynamic {
		return
	}
	if b.Freezing.Planar {
		n := planeNormal.Normalize()
		b.velocity = b.velocity.Sub(n.Scale(b.velocity.Dot(n)))
		b.angularVelocity = n.Scale(b.angularVelocity.Dot(n))
	}
	if s := b.Freezing.SleepSpeed; s > 0 {
		if b.velocity.LengthSq() < s*s && b.angularVelocity.LengthSq() < s*s {
			b.velocity = math.Vec3{}
			b.angularVelocity = math.Vec3{}
		}
	}
}
