package cable

import "github.com/Faultbox/tether/pkg/math"

// tangentTolerance is the squared movement below which a tangent estimate
// is considered converged.
const tangentTolerance = 1e-6

// DefaultMaxTangentIterations bounds the tangent fixed-point search.
const DefaultMaxTangentIterations = 64

// TangentResult is the outcome of a common tangent search.
type TangentResult struct {
	Point1, Point2 math.Vec3
	Iterations     int
	Converged      bool
}

// FindCommonTangents finds where the cable leaves link1 and arrives at link2.
// Anchored links contribute their anchor; rolling links contribute the
// tangent point seen from the other estimate. Both estimates are refined
// alternately until neither moves. When maxIterations is reached the last
// estimate is returned with Converged false. initHybrid treats hybrid links
// as rolling.
func FindCommonTangents(link1, link2 *Link, maxIterations int, initHybrid bool) TangentResult {
	if maxIterations < 1 {
		maxIterations = 1
	}
	t1 := link1.Body.HullPoint()
	t2 := link2.Body.HullPoint()

	res := TangentResult{}
	for res.Iterations < maxIterations {
		res.Iterations++
		prev1, prev2 := t1, t2

		if link2.anchored(initHybrid) {
			t2 = link2.Body.TransformPoint(link2.InAnchor)
		} else {
			t2 = link2.Body.WorldSpaceTangent(t1, link2.Orientation)
		}
		if link1.anchored(initHybrid) {
			t1 = link1.Body.TransformPoint(link1.OutAnchor)
		} else {
			t1 = link1.Body.WorldSpaceTangent(t2, !link1.Orientation)
		}

		if prev1.DistanceSq(t1) < tangentTolerance && prev2.DistanceSq(t2) < tangentTolerance {
			res.Converged = true
			break
		}
	}
	res.Point1, res.Point2 = t1, t2
	return res
}
