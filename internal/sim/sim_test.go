package sim

import (
	"errors"
	gomath "math"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/Faultbox/tether/internal/config"
	"github.com/Faultbox/tether/pkg/math"
)

func build(t *testing.T, name string) *Simulation {
	t.Helper()
	sc, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", name, err)
	}
	return sc.Build(config.Default())
}

func finite(v math.Vec3) bool {
	for _, x := range [...]float32{v.X, v.Y, v.Z} {
		if gomath.IsNaN(float64(x)) || gomath.IsInf(float64(x), 0) {
			return false
		}
	}
	return true
}

// checkReport fails with a unified diff when a multi-line report differs.
func checkReport(t *testing.T, want, got string) {
	t.Helper()
	if got == want {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "Expected",
		ToFile:   "Current",
		Context:  1,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	t.Fatalf("report mismatch:\n%s", text)
}

func TestLookup(t *testing.T) {
	for _, sc := range Scenes() {
		got, err := Lookup(sc.Name)
		if err != nil {
			t.Errorf("Lookup(%q): %v", sc.Name, err)
		}
		if got.Name != sc.Name {
			t.Errorf("Lookup(%q).Name = %q", sc.Name, got.Name)
		}
	}

	_, err := Lookup("nope")
	if !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Lookup(nope) error = %v, want ErrUnknownScene", err)
	}
}

func TestScenesRun(t *testing.T) {
	for _, sc := range Scenes() {
		t.Run(sc.Name, func(t *testing.T) {
			s := sc.Build(config.Default())
			s.Run(20, nil)

			if s.Steps() != 20 {
				t.Errorf("Steps() = %d, want 20", s.Steps())
			}
			for _, b := range s.Bodies() {
				if !finite(b.Position()) || !finite(b.Velocity()) {
					t.Errorf("body %s diverged: pos %v vel %v", b.Name, b.Position(), b.Velocity())
				}
			}
			for i, c := range s.Cables() {
				st := s.Stats(i)
				if len(st.Forces) != len(c.Joints()) {
					t.Errorf("len(Forces) = %d, want %d", len(st.Forces), len(c.Joints()))
				}
				if c.Sampled().PointCount() < 2 {
					t.Errorf("cable %d sampled %d points, want at least 2", i, c.Sampled().PointCount())
				}
			}
		})
	}
}

func TestObstacleSplitsAndMerges(t *testing.T) {
	s := build(t, "obstacle")

	var got strings.Builder
	record := func() {
		got.WriteString(s.Topology())
	}
	record()
	s.Run(100, nil)
	record()
	s.Run(200, nil)
	record()

	want := `cable 0: attachment(left) attachment(right)
cable 0: attachment(left) rolling(disc) attachment(right)
cable 0: attachment(left) attachment(right)
`
	checkReport(t, want, got.String())
}

func TestPinholeKeepsLength(t *testing.T) {
	s := build(t, "pinhole")
	c := s.Cables()[0]
	sum := func() float32 {
		var total float32
		for _, j := range c.Joints() {
			total += j.RestLength
		}
		return total
	}
	before := sum()
	load := s.Body("load").Position().Y

	s.Run(50, nil)

	if got := sum(); math.Abs(got-before) > 1e-3 {
		t.Errorf("rest sum = %v, want %v", got, before)
	}
	if got := s.Body("load").Position().Y; got <= load {
		t.Errorf("load Y = %v, want above %v", got, load)
	}
}

func TestWinchFeedsCable(t *testing.T) {
	s := build(t, "winch")
	c := s.Cables()[0]
	rest := c.RestLength()
	y := s.Body("load").Position().Y

	// The load drops in short free falls and is caught by the cable, so
	// single-step forces swing between zero and several times its weight.
	// Averaged over the run the cable carries the weight.
	var sum, peak float32
	s.Run(100, func(s *Simulation) {
		if s.Steps() > 50 {
			f := s.Stats(0).MaxForce
			sum += f
			peak = max(peak, f)
		}
	})

	if got, want := c.RestLength(), rest+100*winchSpeed; math.Abs(got-want) > 1e-3 {
		t.Errorf("RestLength() = %v, want %v", got, want)
	}
	if got := s.Body("load").Position().Y; got >= y {
		t.Errorf("load Y = %v, want below %v", got, y)
	}
	weight := 3 * s.cfg.Gravity
	if peak < weight {
		t.Errorf("peak force = %v, want at least the load weight %v", peak, weight)
	}
	if mean := sum / 50; math.Abs(mean-weight) > 0.3*weight {
		t.Errorf("mean force = %v, want about %v", mean, weight)
	}
}

func TestCraneUnwinds(t *testing.T) {
	s := build(t, "crane")
	c := s.Cables()[0]
	stored := c.Link(0).StoredCable

	s.Run(50, nil)

	l := c.Link(0)
	if !l.HybridRolling() {
		t.Error("spool should still roll")
	}
	if l.StoredCable >= stored {
		t.Errorf("StoredCable = %v, want below %v", l.StoredCable, stored)
	}
}

func TestLoopIsClosed(t *testing.T) {
	s := build(t, "loop")
	s.Run(10, nil)

	want := "cable 0: rolling(left) rolling(block) rolling(right) rolling(left) (closed)\n"
	checkReport(t, want, s.Topology())

	segs := s.Cables()[0].Sampled().Segments()
	first := segs[0][0]
	last := segs[len(segs)-1]
	if got := last[len(last)-1]; got != first {
		t.Errorf("last sample = %v, want first sample %v", got, first)
	}
}

func TestStatsString(t *testing.T) {
	st := Stats{Step: 3, Links: 2, RestLength: 1.5, Stretch: 1, MaxForce: 12.25}
	want := "step    3  links 2  rest   1.500  stretch 1.000  max force    12.25"
	if got := st.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
