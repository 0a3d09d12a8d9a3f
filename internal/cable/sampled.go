package cable

import "github.com/Faultbox/tether/pkg/math"

// SampledCable is the polyline reconstructed from a cable. Segments are
// pooled: Clear keeps their storage for the next frame.
type SampledCable struct {
	segments     [][]math.Vec3
	segmentCount int
	length       float32
}

// Segments returns the active segments. The slices are reused by the next
// Clear and must not be retained.
func (s *SampledCable) Segments() [][]math.Vec3 {
	return s.segments[:s.segmentCount]
}

// SegmentCount returns the number of active segments.
func (s *SampledCable) SegmentCount() int {
	return s.segmentCount
}

// Capacity returns the number of pooled segments.
func (s *SampledCable) Capacity() int {
	return len(s.segments)
}

// Length returns the accumulated polyline length.
func (s *SampledCable) Length() float32 {
	return s.length
}

// PointCount returns the number of samples over all active segments.
func (s *SampledCable) PointCount() int {
	n := 0
	for _, seg := range s.Segments() {
		n += len(seg)
	}
	return n
}

// Clear empties the cable but keeps its storage.
func (s *SampledCable) Clear() {
	for i := range s.segments {
		s.segments[i] = s.segments[i][:0]
	}
	s.segmentCount = 0
	s.length = 0
}

// NewSegment starts a new segment, reusing a pooled one if available.
func (s *SampledCable) NewSegment() {
	s.segmentCount++
	if s.segmentCount > len(s.segments) {
		s.segments = append(s.segments, make([]math.Vec3, 0, 32))
	}
	s.segments[s.segmentCount-1] = s.segments[s.segmentCount-1][:0]
}

// AppendSample appends p to the current segment. With accumulateLength the
// distance from the previous sample is added to Length.
func (s *SampledCable) AppendSample(p math.Vec3, accumulateLength bool) {
	if s.segmentCount == 0 {
		s.NewSegment()
	}
	if accumulateLength {
		if last, ok := s.lastSample(); ok {
			s.length += last.Distance(p)
		}
	}
	seg := &s.segments[s.segmentCount-1]
	*seg = append(*seg, p)
}

// ReverseLastSamples reverses the last count samples of the current segment
// and adds their length. Unlike a count of the reversed span alone, the
// step from the sample before them is added too, even when that sample
// closes an earlier segment, so Length stays the full polyline length.
// It pairs with samples appended without accumulating length.
func (s *SampledCable) ReverseLastSamples(count int) {
	if s.segmentCount == 0 {
		return
	}
	seg := s.segments[s.segmentCount-1]
	if count <= 0 || count > len(seg) {
		return
	}
	start := len(seg) - count
	tail := seg[start:]
	for i, j := 0, len(tail)-1; i < j; i, j = i+1, j-1 {
		tail[i], tail[j] = tail[j], tail[i]
	}

	if before, ok := s.sampleBefore(start); ok {
		s.length += before.Distance(tail[0])
	}
	for i := 1; i < len(tail); i++ {
		s.length += tail[i-1].Distance(tail[i])
	}
}

// Close appends the first sample to the last segment, closing the loop.
func (s *SampledCable) Close() {
	if s.segmentCount == 0 || len(s.segments[0]) == 0 {
		return
	}
	s.AppendSample(s.segments[0][0], true)
}

func (s *SampledCable) lastSample() (math.Vec3, bool) {
	for i := s.segmentCount - 1; i >= 0; i-- {
		if seg := s.segments[i]; len(seg) > 0 {
			return seg[len(seg)-1], true
		}
	}
	return math.Vec3{}, false
}

// sampleBefore returns the sample preceding index start of the current
// segment, looking into earlier segments when needed.
func (s *SampledCable) sampleBefore(start int) (math.Vec3, bool) {
	if start > 0 {
		return s.segments[s.segmentCount-1][start-1], true
	}
	for i := s.segmentCount - 2; i >= 0; i-- {
		if seg := s.segments[i]; len(seg) > 0 {
			return seg[len(seg)-1], true
		}
	}
	return math.Vec3{}, false
}
