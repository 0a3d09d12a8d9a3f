package sim

import (
	"fmt"
	"strings"

	"github.com/Faultbox/tether/internal/cable"
)

// Stats summarises one cable after a step.
type Stats struct {
	Step       int
	Links      int
	RestLength float32
	Stretch    float32
	MaxForce   float32
	// Forces holds the force of every joint slot. Holes report zero.
	Forces []float32
}

// Stats returns the state of cable i.
func (s *Simulation) Stats(i int) Stats {
	c := s.cables[i]
	dt := s.Dt()
	st := Stats{
		Step:       s.step,
		Links:      c.LinkCount(),
		RestLength: c.RestLength(),
		Stretch:    c.Stretch(),
		MaxForce:   c.MaxForce(dt),
	}
	for _, j := range c.Joints() {
		var f float32
		if j != nil {
			f = j.Force(dt)
		}
		st.Forces = append(st.Forces, f)
	}
	return st
}

// String formats the stats as a single line.
func (st Stats) String() string {
	return fmt.Sprintf("step %4d  links %d  rest %7.3f  stretch %5.3f  max force %8.2f",
		st.Step, st.Links, st.RestLength, st.Stretch, st.MaxForce)
}

// Topology describes every cable as one line of links.
func (s *Simulation) Topology() string {
	var b strings.Builder
	for i, c := range s.cables {
		fmt.Fprintf(&b, "cable %d:", i)
		for k := 0; k < c.LinkCount(); k++ {
			b.WriteByte(' ')
			b.WriteString(describeLink(c.Link(k)))
		}
		if c.Closed() {
			b.WriteString(" (closed)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func describeLink(l cable.Link) string {
	if l.Body == nil {
		return l.Type.String() + "(-)"
	}
	return fmt.Sprintf("%s(%v)", l.Type, l.Body)
}
