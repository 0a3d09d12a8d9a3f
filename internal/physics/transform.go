// Package physics provides the minimal rigid-body layer the cable solver
// talks to: transforms, velocity/impulse bookkeeping, integration and ray
// queries against registered colliders.
package physics

import "github.com/Faultbox/tether/pkg/math"

// Transform is a rigid position + rotation with cached local-to-world and
// world-to-local matrices.
type Transform struct {
	position math.Vec3
	rotation math.Quat

	localToWorld math.Mat4
	worldToLocal math.Mat4
}

// NewTransform creates a transform at position with the given rotation.
func NewTransform(position math.Vec3, rotation math.Quat) Transform {
	t := Transform{position: position, rotation: rotation.Normalize()}
	t.update()
	return t
}

func (t *Transform) update() {
	t.localToWorld = math.TRS(t.position, t.rotation)
	t.worldToLocal = t.localToWorld.InverseRigid()
}

// Position returns the world-space origin.
func (t *Transform) Position() math.Vec3 {
	return t.position
}

// Rotation returns the world-space orientation.
func (t *Transform) Rotation() math.Quat {
	return t.rotation
}

// SetPosition moves the transform.
func (t *Transform) SetPosition(p math.Vec3) {
	t.position = p
	t.update()
}

// SetRotation reorients the transform.
func (t *Transform) SetRotation(q math.Quat) {
	t.rotation = q.Normalize()
	t.update()
}

// SetPose sets position and rotation at once.
func (t *Transform) SetPose(p math.Vec3, q math.Quat) {
	t.position = p
	t.rotation = q.Normalize()
	t.update()
}

// TransformPoint maps a local point to world space.
func (t *Transform) TransformPoint(local math.Vec3) math.Vec3 {
	return t.localToWorld.TransformPoint(local)
}

// InverseTransformPoint maps a world point to local space.
func (t *Transform) InverseTransformPoint(world math.Vec3) math.Vec3 {
	return t.worldToLocal.TransformPoint(world)
}

// TransformDirection rotates a local direction into world space.
func (t *Transform) TransformDirection(local math.Vec3) math.Vec3 {
	return t.localToWorld.TransformDirection(local)
}

// InverseTransformDirection rotates a world direction into local space.
func (t *Transform) InverseTransformDirection(world math.Vec3) math.Vec3 {
	return t.worldToLocal.TransformDirection(world)
}
