package cable

import (
	"go.uber.org/zap"

	"github.com/Faultbox/tether/internal/logger"
	"github.com/Faultbox/tether/pkg/math"
)

// UpdateCable re-derives the cable path after bodies moved. It runs once
// per fixed step, before the constraint substeps.
func (c *Cable) UpdateCable() {
	if c.joints == nil {
		return
	}
	c.updateJoints()
	c.updateHybridLinks()
	c.initializeJoints()
	c.updatePinholes()
	if c.DynamicSplitMerge {
		c.splitMerge()
	}
}

// updateJoints moves every joint to the current common tangents. Cable that
// slides around a link body moves between the joint and the link's stored
// cable so the total is unchanged, except for cable fed by attachments.
func (c *Cable) updateJoints() {
	for i, j := range c.joints {
		if j == nil {
			continue
		}
		l1, l2 := &c.links[i], &c.links[i+1]
		t1, t2 := c.tangents(l1, l2, false)

		cur1 := j.Body1.WorldToCablePlane(j.WorldSpaceAttachment1())
		cur2 := j.Body2.WorldToCablePlane(j.WorldSpaceAttachment2())
		s1 := j.Body1.SurfaceDistance(cur1, j.Body1.WorldToCablePlane(t1), l1.Orientation)
		s2 := j.Body2.SurfaceDistance(cur2, j.Body2.WorldToCablePlane(t2), l2.Orientation)

		if l1.Type == Attachment {
			s1 -= l1.CableSpawnSpeed
			c.restLength += l1.CableSpawnSpeed
		}
		if l2.Type == Attachment {
			s2 += l2.CableSpawnSpeed
			c.restLength += l2.CableSpawnSpeed
		}

		l1.StoredCable += s1
		l2.StoredCable -= s2
		j.RestLength += s2 - s1

		t1 = spoolOffset(l1, t1)
		t2 = spoolOffset(l2, t2)
		j.Offset1 = j.Body1.InverseTransformPoint(t1)
		j.Offset2 = j.Body2.InverseTransformPoint(t2)
	}
}

func (c *Cable) updateHybridLinks() {
	n := len(c.links)
	if n < 2 {
		return
	}
	if l := &c.links[0]; l.Body != nil && l.Type == Hybrid && c.joints[0] != nil {
		c.updateHybridLink(0, false, c.joints[0].WorldSpaceAttachment2())
	}
	if l := &c.links[n-1]; l.Body != nil && l.Type == Hybrid && c.joints[n-2] != nil {
		c.updateHybridLink(n-1, true, c.joints[n-2].WorldSpaceAttachment1())
	}
}

// updateHybridLink switches a hybrid link between its modes. A rolling spool
// that ran empty becomes anchored. An anchored spool starts rolling once the
// cable direction, seen from the far attachment, leaves the visible side of
// the anchor; the wrap follows the side the cable moved to.
func (c *Cable) updateHybridLink(i int, cableGoesIn bool, attachment math.Vec3) {
	l := &c.links[i]
	if l.hybridRolling {
		if l.StoredCable <= 0 {
			l.hybridRolling = false
			logger.Debug("hybrid link anchored",
				zap.Int("link", i),
				zap.Float32("stored", l.StoredCable))
			c.updateJoints()
		}
		return
	}

	anchor := l.OutAnchor
	if cableGoesIn {
		anchor = l.InAnchor
	}
	t := l.Body.WorldToCablePlane(l.Body.TransformPoint(anchor))
	tplus := l.Body.WorldToCablePlane(l.Body.WorldSpaceTangent(attachment, false))
	tminus := l.Body.WorldToCablePlane(l.Body.WorldSpaceTangent(attachment, true))
	d1 := l.Body.SurfaceDistance(tplus, t, false)
	d2 := l.Body.SurfaceDistance(tminus, t, false)

	if d1 > 0 || d2 < 0 {
		l.hybridRolling = true
		if math.Abs(d1) < math.Abs(d2) {
			l.Orientation = !cableGoesIn
		} else {
			l.Orientation = cableGoesIn
		}
		logger.Debug("hybrid link rolling",
			zap.Int("link", i),
			zap.Bool("orientation", l.Orientation))
	}
}

func (c *Cable) initializeJoints() {
	for _, j := range c.joints {
		if j != nil {
			j.Initialize()
		}
	}
}

// updatePinholes lets cable slide through frictionless rings: rest length
// moves from the slack side of a pinhole to the side pulled past its rest
// length. The pair sum is unchanged.
func (c *Cable) updatePinholes() {
	for i := 1; i < len(c.links)-1; i++ {
		if c.links[i].Type != Pinhole {
			continue
		}
		j1, j2 := c.joints[i-1], c.joints[i]
		if j1 == nil || j2 == nil {
			continue
		}
		// Both sides are measured against the rest lengths from before
		// this pinhole moved any cable.
		rest1, rest2 := j1.RestLength, j2.RestLength
		if d := j1.Length() - rest1; d > 0 {
			j1.RestLength += d
			j2.RestLength -= d
		}
		if d := j2.Length() - rest2; d > 0 {
			j2.RestLength += d
			j1.RestLength -= d
		}
	}
}
