package cable

import (
	"github.com/Faultbox/tether/internal/curve"
	"github.com/Faultbox/tether/pkg/math"
)

// Sampled returns the polyline built by the last Sample call.
func (c *Cable) Sampled() *SampledCable {
	return &c.sampled
}

// Sample rebuilds the cable polyline from the current topology. It runs
// once per frame. Slack joints are drawn as catenaries, or as sinusoids when
// they are close to vertical.
func (c *Cable) Sample() *SampledCable {
	c.sampled.Clear()
	if c.joints == nil {
		return &c.sampled
	}

	closed := c.Closed()
	for i := range c.links {
		l := &c.links[i]
		if l.Body == nil {
			continue
		}
		if i != 0 || !closed || l.Type == Attachment || l.Type == Pinhole {
			c.sampleLink(l, c.prevJoint(i, closed), c.nextJoint(i, closed))
		}
		if i < len(c.joints) && c.joints[i] != nil {
			c.sampleJoint(c.joints[i])
		}
	}

	if closed {
		c.sampled.Close()
	}
	return &c.sampled
}

func (c *Cable) sampleLink(l *Link, prev, next *Joint) {
	var entry, exit math.Vec2
	if prev != nil {
		entry = l.Body.WorldToCablePlane(prev.WorldSpaceAttachment2())
	}
	if next != nil {
		exit = l.Body.WorldToCablePlane(next.WorldSpaceAttachment1())
	}

	switch {
	case l.Type == Hybrid && l.hybridRolling:
		if prev != nil {
			l.Body.AppendSamples(&c.sampled, entry, l.StoredCable, l.SpoolSeparation, false, l.Orientation)
		} else if next != nil {
			l.Body.AppendSamples(&c.sampled, exit, l.StoredCable, l.SpoolSeparation, true, l.Orientation)
		}
	case l.Type == Rolling:
		if prev != nil && next != nil {
			d := l.Body.WrapDistance(entry, exit, l.Orientation)
			l.Body.AppendSamples(&c.sampled, entry, d, 0, false, l.Orientation)
		}
	default:
		if prev != nil {
			c.sampled.AppendSample(l.Body.TransformPoint(l.InAnchor), true)
		}
		if prev != nil && next != nil && entry != exit {
			c.sampled.NewSegment()
		}
		if next != nil {
			c.sampled.AppendSample(l.Body.TransformPoint(l.OutAnchor), true)
		}
	}
}

// sampleJoint appends the interior points of a slack joint. Taut joints add
// nothing: the straight line is already implied by the link samples.
func (c *Cable) sampleJoint(j *Joint) {
	length := j.Length()
	if length >= j.RestLength || c.LoosenessScale <= 0 {
		return
	}
	p1 := j.WorldSpaceAttachment1()
	span := j.WorldSpaceAttachment2().Sub(p1)
	sampledLength := math.Lerp(length, min(j.RestLength, length+c.MaxLooseCable), c.LoosenessScale)

	horizontal := span.Horizontal()
	if h := horizontal.Length(); h > c.VerticalThreshold {
		dir := horizontal.Scale(1 / h)
		buf := c.catenaryBuffer[:]
		if !curve.Catenary(math.Vec2{}, math.Vec2{X: h, Y: span.Y}, sampledLength, buf) {
			return
		}
		for _, p := range buf[1 : len(buf)-1] {
			c.sampled.AppendSample(p1.Add(dir.Scale(p.X)).Add(math.Up.Scale(p.Y)), true)
		}
		return
	}

	buf := c.sinusoidBuffer[:]
	if !curve.Sinusoid(p1, span, sampledLength, c.VerticalCurlyness, buf) {
		return
	}
	for _, p := range buf[1 : len(buf)-1] {
		c.sampled.AppendSample(p, true)
	}
}
