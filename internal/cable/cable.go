// Package cable implements the cable topology and constraint solver: an
// ordered chain of links bound to bodies, the joints between consecutive
// links, and the polyline sampled from them once per frame.
//
// A Cable is not safe for concurrent use. All calls happen on the
// simulation goroutine.
package cable

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/tether/internal/logger"
	"github.com/Faultbox/tether/pkg/math"
)

// minVerticalThreshold is the smallest horizontal span that selects the
// catenary over the sinusoid.
const minVerticalThreshold = 1e-4

// Settings controls topology updates and sampling.
type Settings struct {
	// DynamicSplitMerge enables runtime split and merge of cable segments.
	DynamicSplitMerge bool
	// LoosenessScale in [0, 1] scales the displayed slack. Zero disables it.
	LoosenessScale float32
	// MaxLooseCable caps the slack displayed per joint.
	MaxLooseCable float32
	// VerticalThreshold is the horizontal span below which slack is drawn
	// as a sinusoid instead of a catenary.
	VerticalThreshold float32
	// VerticalCurlyness is the sinusoid frequency.
	VerticalCurlyness uint
	// MaxTangentIterations caps each common tangent search.
	MaxTangentIterations int
}

// DefaultSettings returns the default cable settings.
func DefaultSettings() Settings {
	return Settings{
		DynamicSplitMerge:    false,
		LoosenessScale:       1,
		MaxLooseCable:        1,
		VerticalThreshold:    0.25,
		VerticalCurlyness:    1,
		MaxTangentIterations: DefaultMaxTangentIterations,
	}
}

// Cable owns an ordered list of links and the joints between them.
type Cable struct {
	Settings

	links      []Link
	joints     []*Joint
	restLength float32
	raycaster  Raycaster

	sampled        SampledCable
	catenaryBuffer [16]math.Vec2
	sinusoidBuffer [24]math.Vec3

	merges []int
	splits []split
}

// New creates a cable over a copy of links. Call Setup before use.
func New(links []Link, settings Settings) *Cable {
	return &Cable{
		Settings: settings,
		links:    slices.Clone(links),
	}
}

// SetRaycaster sets the ray query used to split segments.
func (c *Cable) SetRaycaster(r Raycaster) {
	c.raycaster = r
}

// SetLinks replaces the link list. Call Setup afterwards.
func (c *Cable) SetLinks(links []Link) {
	c.links = slices.Clone(links)
}

// LinkCount returns the number of links.
func (c *Cable) LinkCount() int {
	return len(c.links)
}

// Link returns a copy of link i.
func (c *Cable) Link(i int) Link {
	return c.links[i]
}

// Links returns a copy of the link list.
func (c *Cable) Links() []Link {
	return slices.Clone(c.links)
}

// UpdateLink mutates link i in place.
func (c *Cable) UpdateLink(i int, fn func(l *Link)) {
	fn(&c.links[i])
}

// Joints returns the joint slots. A nil slot is a hole between two links
// that do not both have a body. The slice must not be modified.
func (c *Cable) Joints() []*Joint {
	return c.joints
}

// RestLength returns the total rest length of the cable, including cable
// stored on links.
func (c *Cable) RestLength() float32 {
	return c.restLength
}

// Closed reports whether the cable starts and ends on the same body.
func (c *Cable) Closed() bool {
	if len(c.links) == 0 {
		return false
	}
	first := c.links[0].Body
	return first != nil && first == c.links[len(c.links)-1].Body
}

// Setup derives hybrid modes, joints and rest lengths from the links.
func (c *Cable) Setup() {
	c.VerticalThreshold = max(minVerticalThreshold, c.VerticalThreshold)
	if c.MaxTangentIterations < 1 {
		c.MaxTangentIterations = DefaultMaxTangentIterations
	}
	c.initializeLinks()
	c.generateJoints()
	c.calculateRestLength()
}

func (c *Cable) initializeLinks() {
	for i := range c.links {
		l := &c.links[i]
		l.hybridRolling = l.Type == Hybrid && l.StoredCable > 0
	}
}

func (c *Cable) generateJoints() {
	c.joints = nil
	if len(c.links) == 0 {
		return
	}
	c.joints = make([]*Joint, len(c.links)-1)
	for i := range c.joints {
		l1, l2 := &c.links[i], &c.links[i+1]
		if l1.Body == nil || l2.Body == nil {
			continue
		}
		t1, t2 := c.tangents(l1, l2, true)
		t1 = spoolOffset(l1, t1)
		t2 = spoolOffset(l2, t2)
		c.joints[i] = NewJoint(l1.Body, l2.Body,
			l1.Body.InverseTransformPoint(t1),
			l2.Body.InverseTransformPoint(t2),
			t2.Sub(t1).Length()+l1.Slack)
	}
}

// spoolOffset pushes a hybrid attachment along -normal by the depth of the
// cable wound on the spool.
func spoolOffset(l *Link, p math.Vec3) math.Vec3 {
	if l.Type != Hybrid {
		return p
	}
	return p.Sub(l.Body.CablePlaneNormal().Scale(l.StoredCable * l.SpoolSeparation))
}

func (c *Cable) calculateRestLength() {
	c.restLength = 0
	if c.joints == nil {
		return
	}
	closed := c.Closed()
	for i := range c.links {
		l := &c.links[i]
		if l.Body == nil {
			continue
		}
		prev := c.prevJoint(i, closed)
		next := c.nextJoint(i, closed)

		switch {
		case prev != nil && next != nil && !(i == 0 && closed):
			entry := l.Body.WorldToCablePlane(prev.WorldSpaceAttachment2())
			exit := l.Body.WorldToCablePlane(next.WorldSpaceAttachment1())
			l.StoredCable = math.Abs(l.Body.SurfaceDistance(entry, exit, l.Orientation))
			c.restLength += l.StoredCable
		case l.Type == Hybrid:
			c.restLength += l.StoredCable
			if next != nil {
				exit := l.Body.WorldToCablePlane(next.WorldSpaceAttachment1())
				anchor := l.Body.SurfacePointAtDistance(exit, l.StoredCable, !l.Orientation)
				l.OutAnchor = l.Body.InverseTransformPoint(anchor)
			} else if prev != nil {
				entry := l.Body.WorldToCablePlane(prev.WorldSpaceAttachment2())
				anchor := l.Body.SurfacePointAtDistance(entry, l.StoredCable, l.Orientation)
				l.InAnchor = l.Body.InverseTransformPoint(anchor)
			}
		}

		if i < len(c.joints) && c.joints[i] != nil {
			c.restLength += c.joints[i].RestLength
		}
	}
}

// prevJoint returns the joint arriving at link i. For closed cables the
// first link wraps around to the last joint.
func (c *Cable) prevJoint(i int, closed bool) *Joint {
	if i > 0 && i-1 < len(c.joints) {
		return c.joints[i-1]
	}
	if closed && len(c.joints) > 0 {
		return c.joints[len(c.joints)-1]
	}
	return nil
}

// nextJoint returns the joint leaving link i. For closed cables the last
// link wraps around to the first joint.
func (c *Cable) nextJoint(i int, closed bool) *Joint {
	if i < len(c.joints) {
		return c.joints[i]
	}
	if closed && len(c.joints) > 0 {
		return c.joints[0]
	}
	return nil
}

// tangents runs the common tangent search between two links.
func (c *Cable) tangents(l1, l2 *Link, initHybrid bool) (math.Vec3, math.Vec3) {
	res := FindCommonTangents(l1, l2, c.MaxTangentIterations, initHybrid)
	if !res.Converged {
		logger.Debug("tangent search hit iteration cap",
			zap.Int("iterations", res.Iterations),
			zap.Stringer("type1", l1.Type),
			zap.Stringer("type2", l2.Type))
	}
	return res.Point1, res.Point2
}

// Solve applies one constraint pass over a substep of length dt and then
// the freezing rules of every link body.
func (c *Cable) Solve(dt, bias float32) {
	for _, j := range c.joints {
		if j != nil {
			j.Solve(dt, bias)
		}
	}
	for i := range c.links {
		if c.links[i].Body != nil {
			c.links[i].Body.ApplyFreezing()
		}
	}
}

// Segment is a joint drawn as a straight world-space line.
type Segment struct {
	From, To math.Vec3
	Taut     bool
}

// Segments returns the straight segments of all present joints.
func (c *Cable) Segments() []Segment {
	segs := make([]Segment, 0, len(c.joints))
	for _, j := range c.joints {
		if j == nil {
			continue
		}
		segs = append(segs, Segment{
			From: j.WorldSpaceAttachment1(),
			To:   j.WorldSpaceAttachment2(),
			Taut: j.Taut(),
		})
	}
	return segs
}

// Stretch returns the sampled length over the rest length. Values above 1
// mean the cable is stretched.
func (c *Cable) Stretch() float32 {
	if c.restLength <= 0 {
		return 0
	}
	return c.sampled.Length() / c.restLength
}

// MaxForce returns the largest joint force over a step of dt.
func (c *Cable) MaxForce(dt float32) float32 {
	var f float32
	for _, j := range c.joints {
		if j != nil {
			f = max(f, j.Force(dt))
		}
	}
	return f
}
