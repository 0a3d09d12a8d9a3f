package cable

import (
	"testing"

	"github.com/Faultbox/tether/pkg/math"
)

func TestFindCommonTangentsDiscs(t *testing.T) {
	a := staticDisc("a", 0, 0, 1)
	b := staticDisc("b", 10, 0, 1)

	tests := []struct {
		name   string
		o1, o2 bool
		want1  math.Vec3
		want2  math.Vec3
	}{
		{"outer below", false, false, vec(0, -1), vec(10, -1)},
		{"outer above", true, true, vec(0, 1), vec(10, 1)},
		{"crossed", true, false, vec(0.2, 0.9798), vec(9.8, -0.9798)},
		{"crossed mirrored", false, true, vec(0.2, -0.9798), vec(9.8, 0.9798)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l1 := &Link{Body: a, Type: Rolling, Orientation: tt.o1}
			l2 := &Link{Body: b, Type: Rolling, Orientation: tt.o2}
			res := FindCommonTangents(l1, l2, 50, false)
			if !res.Converged {
				t.Fatalf("not converged after %d iterations", res.Iterations)
			}
			if !nearVec(res.Point1, tt.want1, 1e-3) {
				t.Errorf("Point1 = %v, want %v", res.Point1, tt.want1)
			}
			if !nearVec(res.Point2, tt.want2, 1e-3) {
				t.Errorf("Point2 = %v, want %v", res.Point2, tt.want2)
			}
			// The segment is perpendicular to both radii.
			dir := res.Point2.Sub(res.Point1).Normalize()
			if d := dir.Dot(res.Point1.Sub(a.Position())); math.Abs(d) > 1e-3 {
				t.Errorf("segment not tangent to a: dot = %v", d)
			}
			if d := dir.Dot(res.Point2.Sub(b.Position())); math.Abs(d) > 1e-3 {
				t.Errorf("segment not tangent to b: dot = %v", d)
			}
		})
	}
}

func TestFindCommonTangentsAnchor(t *testing.T) {
	anchor := staticPoint("anchor", -5, 0)
	disc := staticDisc("disc", 0, 0, 1)

	l1 := &Link{Body: anchor, Type: Attachment}
	l2 := &Link{Body: disc, Type: Rolling}
	res := FindCommonTangents(l1, l2, 50, false)
	if !res.Converged {
		t.Fatalf("not converged after %d iterations", res.Iterations)
	}
	if res.Point1 != anchor.Position() {
		t.Errorf("Point1 = %v, want anchor %v", res.Point1, anchor.Position())
	}
	if r := res.Point2.Length(); !near(r, 1, 1e-5) {
		t.Errorf("|Point2| = %v, want 1", r)
	}
	// Arrival point for a counter-clockwise wrap lies below the disc.
	if res.Point2.Y >= 0 {
		t.Errorf("Point2 = %v, want Y < 0", res.Point2)
	}
	if got := res.Point2.Sub(res.Point1).Length(); !near(got, math.Sqrt(24), 1e-4) {
		t.Errorf("tangent length = %v, want %v", got, math.Sqrt(24))
	}
}

func TestFindCommonTangentsHybridInit(t *testing.T) {
	spool := staticDisc("spool", 0, 0, 1)
	hook := staticPoint("hook", 0, -5)

	l1 := &Link{Body: spool, Type: Hybrid, OutAnchor: vec(1, 0)}
	l2 := &Link{Body: hook, Type: Attachment}

	anchored := FindCommonTangents(l1, l2, 50, false)
	if !nearVec(anchored.Point1, vec(1, 0), 1e-6) {
		t.Errorf("anchored Point1 = %v, want (1,0)", anchored.Point1)
	}
	rolling := FindCommonTangents(l1, l2, 50, true)
	if !near(rolling.Point1.Length(), 1, 1e-5) || nearVec(rolling.Point1, vec(1, 0), 1e-3) {
		t.Errorf("rolling Point1 = %v, want a tangent point", rolling.Point1)
	}
}

func TestFindCommonTangentsIterationCap(t *testing.T) {
	l1 := &Link{Body: staticDisc("a", 0, 0, 1), Type: Rolling}
	l2 := &Link{Body: staticDisc("b", 3, 0, 1), Type: Rolling}

	res := FindCommonTangents(l1, l2, 1, false)
	if res.Converged {
		t.Error("Converged = true, want false")
	}
	if res.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", res.Iterations)
	}
}
