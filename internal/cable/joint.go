package cable

import "github.com/Faultbox/tether/pkg/math"

// minJointLength is the length below which a joint has no usable direction.
const minJointLength = 1e-6

// Joint is a one-sided distance constraint between two bodies. It keeps the
// attachment points at most RestLength apart and never pushes them apart.
type Joint struct {
	Body1, Body2     Body
	Offset1, Offset2 math.Vec3
	RestLength       float32

	// impulse accumulates the (non-positive) impulses applied since the
	// last Initialize.
	impulse float32
}

// NewJoint creates a joint between two body-local points.
func NewJoint(body1, body2 Body, offset1, offset2 math.Vec3, restLength float32) *Joint {
	return &Joint{
		Body1:      body1,
		Body2:      body2,
		Offset1:    offset1,
		Offset2:    offset2,
		RestLength: restLength,
	}
}

// WorldSpaceAttachment1 returns the world-space attachment on Body1.
func (j *Joint) WorldSpaceAttachment1() math.Vec3 {
	return j.Body1.TransformPoint(j.Offset1)
}

// WorldSpaceAttachment2 returns the world-space attachment on Body2.
func (j *Joint) WorldSpaceAttachment2() math.Vec3 {
	return j.Body2.TransformPoint(j.Offset2)
}

// Length returns the current distance between the attachments.
func (j *Joint) Length() float32 {
	return j.WorldSpaceAttachment1().Distance(j.WorldSpaceAttachment2())
}

// Taut reports whether the joint is at or beyond its rest length.
func (j *Joint) Taut() bool {
	return j.Length() >= j.RestLength
}

// Initialize resets the solver state after attachments moved.
func (j *Joint) Initialize() {
	j.impulse = 0
}

// Solve applies one velocity correction over a substep of length dt. bias
// is the fraction of positional error corrected per substep.
//
// A slack joint lets the bodies separate until they reach RestLength and
// then stops their relative motion. It does not know how fast RestLength
// grows, so a load hanging from a spawning attachment falls in short steps
// and per-step forces peak well above its weight. Forces averaged over
// several steps match the load.
func (j *Joint) Solve(dt, bias float32) {
	if dt <= 0 {
		return
	}
	p1 := j.WorldSpaceAttachment1()
	p2 := j.WorldSpaceAttachment2()
	d := p2.Sub(p1)
	length := d.Length()
	if length < minJointLength {
		return
	}
	n := d.Scale(1 / length)

	r1 := p1.Sub(j.Body1.Position())
	r2 := p2.Sub(j.Body2.Position())
	rn1 := r1.Cross(n).LengthSq()
	rn2 := r2.Cross(n).LengthSq()
	k := j.Body1.InverseMass() + j.Body2.InverseMass() +
		j.Body1.InverseInertia()*rn1 + j.Body2.InverseInertia()*rn2
	if k <= 0 {
		return
	}

	c := length - j.RestLength
	vrel := n.Dot(j.Body2.VelocityAt(p2).Sub(j.Body1.VelocityAt(p1)))
	if c < 0 {
		// Slack: allow closing in on the rest length within this substep.
		vrel += c / dt
	} else {
		vrel += bias * c / dt
	}

	lambda := min(0, -vrel/k)
	if lambda == 0 {
		return
	}
	j.impulse += lambda
	j.Body1.ApplyImpulse(n.Scale(-lambda), p1)
	j.Body2.ApplyImpulse(n.Scale(lambda), p2)
}

// ImpulseMagnitude returns the impulse applied since the last Initialize.
func (j *Joint) ImpulseMagnitude() float32 {
	return -j.impulse
}

// Force converts the accumulated impulse into a force over a step of dt.
func (j *Joint) Force(dt float32) float32 {
	if dt <= 0 {
		return 0
	}
	return j.ImpulseMagnitude() / dt
}
