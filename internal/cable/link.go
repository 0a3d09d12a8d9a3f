package cable

import "github.com/Faultbox/tether/pkg/math"

// LinkType selects how a link holds the cable.
type LinkType uint8

const (
	// Attachment is a fixed anchor. The cable starts or ends here and may
	// be fed from it at CableSpawnSpeed.
	Attachment LinkType = iota
	// Rolling is a pure tangent contact, legal only mid-cable.
	Rolling
	// Pinhole is a frictionless ring, legal only mid-cable.
	Pinhole
	// Hybrid is a spool that acts as an anchor when empty and rolls while it
	// stores cable. Legal only as the first or last link.
	Hybrid
)

var linkTypeNames = [...]string{"attachment", "rolling", "pinhole", "hybrid"}

// String returns the lowercase type name.
func (t LinkType) String() string {
	if int(t) < len(linkTypeNames) {
		return linkTypeNames[t]
	}
	return "unknown"
}

// Link is one element of the cable path.
type Link struct {
	Body        Body
	Type        LinkType
	Orientation bool
	// Slack is extra rest length added to the joint after this link.
	Slack float32

	// StoredCable is the cable wound on or threaded through this link.
	StoredCable float32
	// SpoolSeparation offsets the cable along -normal per unit of stored cable.
	SpoolSeparation float32
	// CableSpawnSpeed is the length an Attachment feeds into the cable per update.
	CableSpawnSpeed float32

	// InAnchor and OutAnchor are body-local anchor points.
	InAnchor  math.Vec3
	OutAnchor math.Vec3

	hybridRolling bool
}

// HybridRolling reports whether a Hybrid link currently rolls.
func (l Link) HybridRolling() bool {
	return l.hybridRolling
}

// anchored reports whether the link holds the cable at a fixed anchor point.
// During topology setup hybrid links are treated as rolling.
func (l *Link) anchored(initHybrid bool) bool {
	switch l.Type {
	case Attachment, Pinhole:
		return true
	case Hybrid:
		return !l.hybridRolling && !initHybrid
	}
	return false
}
