package cable

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/tether/internal/logger"
	"github.com/Faultbox/tether/pkg/math"
)

// splitMargin keeps split points away from the joint ends.
const splitMargin = 0.1

type split struct {
	joint int
	body  Body
	point math.Vec3
}

// splitMerge merges consumed rolling links and then splits segments that
// pass through convex bodies. Candidates are collected before any topology
// change and applied back to front so collected indices stay valid.
func (c *Cable) splitMerge() {
	c.merges = c.merges[:0]
	for i := 1; i < len(c.links)-1; i++ {
		if c.canMerge(i) {
			c.merges = append(c.merges, i)
		}
	}
	for k := len(c.merges) - 1; k >= 0; k-- {
		c.merge(c.merges[k])
	}

	if c.raycaster == nil {
		return
	}
	c.splits = c.splits[:0]
	for i, j := range c.joints {
		if j == nil {
			continue
		}
		if s, ok := c.findSplit(i, j); ok {
			c.splits = append(c.splits, s)
		}
	}
	for k := len(c.splits) - 1; k >= 0; k-- {
		c.split(c.splits[k])
	}
}

func (c *Cable) canMerge(i int) bool {
	l := &c.links[i]
	return l.Type == Rolling && l.Body != nil && l.StoredCable < 0 &&
		c.joints[i-1] != nil && c.joints[i] != nil
}

// merge removes rolling link i. The joint before it absorbs the joint after
// it and is re-anchored between the neighbours.
func (c *Cable) merge(i int) {
	prev, next := c.joints[i-1], c.joints[i]
	prev.RestLength += next.RestLength
	prev.Body2 = next.Body2

	t1, t2 := c.tangents(&c.links[i-1], &c.links[i+1], false)
	prev.Offset1 = prev.Body1.InverseTransformPoint(t1)
	prev.Offset2 = prev.Body2.InverseTransformPoint(t2)
	prev.Initialize()

	logger.Debug("cable merge",
		zap.Int("link", i),
		zap.Float32("stored", c.links[i].StoredCable),
		zap.Float32("rest", prev.RestLength))

	c.links = slices.Delete(c.links, i, i+1)
	c.joints = slices.Delete(c.joints, i, i+1)
}

func (c *Cable) findSplit(i int, j *Joint) (split, bool) {
	p1 := j.WorldSpaceAttachment1()
	p2 := j.WorldSpaceAttachment2()
	length := p1.Distance(p2)
	if length <= 2*splitMargin {
		return split{}, false
	}
	hit, ok := c.raycaster.Raycast(p1, p2.Sub(p1), length)
	if !ok || hit.Distance <= splitMargin || hit.Distance >= length-splitMargin {
		return split{}, false
	}
	b, ok := hit.Collider.(Body)
	if !ok || !b.Convex() || b == j.Body1 || b == j.Body2 {
		return split{}, false
	}
	return split{joint: i, body: b, point: hit.Point}, true
}

// split inserts a rolling link on the hit body after joint s.joint. The
// cable wraps the body on the side the segment passed it. The old rest
// length is shared between the two joints in proportion to their lengths.
func (c *Cable) split(s split) {
	i := s.joint
	cur := c.joints[i]
	rest := cur.RestLength

	p1 := cur.WorldSpaceAttachment1()
	p2 := cur.WorldSpaceAttachment2()
	side := s.body.CablePlaneNormal().Cross(p2.Sub(p1))

	link := Link{
		Body:        s.body,
		Type:        Rolling,
		Orientation: s.point.Sub(s.body.Position()).Dot(side) > 0,
	}
	next := NewJoint(s.body, cur.Body2, math.Vec3{}, math.Vec3{}, 0)
	cur.Body2 = s.body

	t1, t2 := c.tangents(&c.links[i], &link, false)
	cur.Offset1 = cur.Body1.InverseTransformPoint(spoolOffset(&c.links[i], t1))
	cur.Offset2 = cur.Body2.InverseTransformPoint(t2)

	t1, t2 = c.tangents(&link, &c.links[i+1], false)
	next.Offset1 = next.Body1.InverseTransformPoint(t1)
	next.Offset2 = next.Body2.InverseTransformPoint(spoolOffset(&c.links[i+1], t2))

	cur.Initialize()
	next.Initialize()

	l1, l2 := cur.Length(), next.Length()
	if total := l1 + l2; total > 0 {
		tension := rest / total
		cur.RestLength = l1 * tension
		next.RestLength = rest - cur.RestLength
	} else {
		cur.RestLength = rest / 2
		next.RestLength = rest - cur.RestLength
	}

	logger.Debug("cable split",
		zap.Int("joint", i),
		zap.Stringer("body", bodyName{s.body}),
		zap.Bool("orientation", link.Orientation),
		zap.Float32("rest1", cur.RestLength),
		zap.Float32("rest2", next.RestLength))

	c.joints = slices.Insert(c.joints, i+1, next)
	c.links = slices.Insert(c.links, i+1, link)
}

// bodyName prints a body by name when it has one.
type bodyName struct{ b Body }

func (n bodyName) String() string {
	if s, ok := n.b.(fmt.Stringer); ok {
		return s.String()
	}
	return "body"
}
