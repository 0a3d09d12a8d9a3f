package cable

import (
	"slices"
	"testing"

	"github.com/Faultbox/tether/internal/body"
	"github.com/Faultbox/tether/internal/physics"
	"github.com/Faultbox/tether/pkg/math"
)

// obstacleCable spans a straight cable over a unit disc at the origin.
func obstacleCable() (*Cable, *body.Body) {
	world := physics.NewWorld(math.Vec3{})
	disc := staticDisc("disc", 0, 0, 1)
	world.AddCollider(disc)

	s := DefaultSettings()
	s.DynamicSplitMerge = true
	c := New([]Link{
		{Body: staticPoint("a", -5, 0.5), Type: Attachment},
		{Body: staticPoint("b", 5, 0.5), Type: Attachment},
	}, s)
	c.SetRaycaster(world)
	c.Setup()
	return c, disc
}

func TestSplitConservesRestLength(t *testing.T) {
	c, _ := obstacleCable()
	before := c.Joints()[0].RestLength

	c.UpdateCable()

	want := []LinkType{Attachment, Rolling, Attachment}
	if got := linkTypes(c); !slices.Equal(got, want) {
		t.Fatalf("link types = %v, want %v", got, want)
	}
	if got := jointRestSum(c); !near(got, before, 1e-5) {
		t.Errorf("rest sum = %v, want %v", got, before)
	}
	if !c.Link(1).Orientation {
		t.Error("cable passes above the disc, Orientation = false, want true")
	}

	j := c.Joints()
	if j[0].Body2 != j[1].Body1 {
		t.Error("split joints do not share the new body")
	}
	r0 := j[0].RestLength / j[0].Length()
	r1 := j[1].RestLength / j[1].Length()
	if !near(r0, r1, 1e-4) {
		t.Errorf("tension ratios = %v and %v, want equal", r0, r1)
	}
	// Both new joints end on the disc rim.
	for i, p := range []math.Vec3{j[0].WorldSpaceAttachment2(), j[1].WorldSpaceAttachment1()} {
		if r := p.Length(); !near(r, 1, 1e-4) {
			t.Errorf("attachment %d radius = %v, want 1", i, r)
		}
		if p.Y <= 0 {
			t.Errorf("attachment %d = %v, want above the disc centre", i, p)
		}
	}

	// A second update finds nothing left to split.
	c.UpdateCable()
	if got := c.LinkCount(); got != 3 {
		t.Errorf("LinkCount() = %d, want 3", got)
	}
}

func TestSplitRequiresRaycaster(t *testing.T) {
	c, _ := obstacleCable()
	c.SetRaycaster(nil)
	c.UpdateCable()
	if got := c.LinkCount(); got != 2 {
		t.Errorf("LinkCount() = %d, want 2", got)
	}
}

func TestSplitDisabled(t *testing.T) {
	c, _ := obstacleCable()
	c.DynamicSplitMerge = false
	c.UpdateCable()
	if got := c.LinkCount(); got != 2 {
		t.Errorf("LinkCount() = %d, want 2", got)
	}
}

// boxMesh is a 2x2x2 cube centred on the origin.
func boxMesh() ([]math.Vec3, []int) {
	vertices := []math.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	triangles := []int{
		0, 2, 1, 0, 3, 2,
		4, 5, 6, 4, 6, 7,
		0, 1, 5, 0, 5, 4,
		1, 2, 6, 1, 6, 5,
		2, 3, 7, 2, 7, 6,
		3, 0, 4, 3, 4, 7,
	}
	return vertices, triangles
}

func TestSplitOverHull(t *testing.T) {
	vertices, triangles := boxMesh()
	hull := body.NewHullFromMesh(vertices, triangles, body.PlaneXY, math.Vec3{})
	box := body.New("box", physics.NewStaticBody(math.Vec3{}, math.QuatIdentity()), hull)
	world := physics.NewWorld(math.Vec3{})
	world.AddCollider(box)

	s := DefaultSettings()
	s.DynamicSplitMerge = true
	c := New([]Link{
		{Body: staticPoint("a", -5, 0.5), Type: Attachment},
		{Body: staticPoint("b", 5, 0.5), Type: Attachment},
	}, s)
	c.SetRaycaster(world)
	c.Setup()
	before := c.RestLength()

	c.UpdateCable()

	want := []LinkType{Attachment, Rolling, Attachment}
	if got := linkTypes(c); !slices.Equal(got, want) {
		t.Fatalf("link types = %v, want %v", got, want)
	}
	if c.Link(1).Body != Body(box) {
		t.Error("rolling link is not bound to the box")
	}
	if got := jointRestSum(c); !near(got, before, 1e-5) {
		t.Errorf("rest sum = %v, want %v", got, before)
	}

	// The cable leaves the box at its two top corners.
	j := c.Joints()
	if p := j[0].WorldSpaceAttachment2(); !nearVec(p, vec(-1, 1), 1e-4) {
		t.Errorf("first joint ends at %v, want (-1,1)", p)
	}
	if p := j[1].WorldSpaceAttachment1(); !nearVec(p, vec(1, 1), 1e-4) {
		t.Errorf("second joint starts at %v, want (1,1)", p)
	}

	c.UpdateCable()
	if got := c.LinkCount(); got != 3 {
		t.Errorf("LinkCount() = %d, want 3", got)
	}
}

func TestSplitIgnoresNonConvex(t *testing.T) {
	world := physics.NewWorld(math.Vec3{})
	world.AddCollider(staticPoint("pin", 0, 0))

	s := DefaultSettings()
	s.DynamicSplitMerge = true
	c := New([]Link{
		{Body: staticPoint("a", -5, 0), Type: Attachment},
		{Body: staticPoint("b", 5, 0), Type: Attachment},
	}, s)
	c.SetRaycaster(world)
	c.Setup()
	c.UpdateCable()
	if got := c.LinkCount(); got != 2 {
		t.Errorf("LinkCount() = %d, want 2", got)
	}
}

func TestMergeConservesRestLength(t *testing.T) {
	c, disc := obstacleCable()
	c.UpdateCable()
	if c.LinkCount() != 3 {
		t.Fatalf("LinkCount() = %d, want 3", c.LinkCount())
	}

	// Drop the disc well below the cable so the wrap unwinds.
	disc.SetPosition(vec(0, -5))

	c.updateJoints()
	if stored := c.Link(1).StoredCable; stored >= 0 {
		t.Fatalf("StoredCable = %v, want negative", stored)
	}
	before := jointRestSum(c)
	c.splitMerge()

	want := []LinkType{Attachment, Attachment}
	if got := linkTypes(c); !slices.Equal(got, want) {
		t.Fatalf("link types = %v, want %v", got, want)
	}
	if got := jointRestSum(c); !near(got, before, 1e-5) {
		t.Errorf("rest sum = %v, want %v", got, before)
	}
	j := c.Joints()[0]
	if !nearVec(j.WorldSpaceAttachment1(), vec(-5, 0.5), 1e-6) || !nearVec(j.WorldSpaceAttachment2(), vec(5, 0.5), 1e-6) {
		t.Errorf("merged joint = %v -> %v, want the two anchors", j.WorldSpaceAttachment1(), j.WorldSpaceAttachment2())
	}
}

func TestMergeKeepsEndLinks(t *testing.T) {
	c := New([]Link{
		{Body: staticDisc("a", 0, 0, 1), Type: Rolling},
		{Body: staticPoint("b", 5, 0), Type: Attachment},
	}, Settings{DynamicSplitMerge: true})
	c.Setup()
	c.UpdateLink(0, func(l *Link) { l.StoredCable = -1 })
	c.UpdateCable()
	if got := c.LinkCount(); got != 2 {
		t.Errorf("LinkCount() = %d, want 2", got)
	}
}
