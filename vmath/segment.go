package vmath

// DegenerateSegmentSq is the squared-length floor below which a segment
// is treated as a single point, avoiding division by near-zero
const DegenerateSegmentSq = 1e-6

// ProjectToSegment returns the closest point on segment a→b to p and the
// normalized parameter t of that point along the segment
// t is clamped to [0,1] (segment, not infinite line)
// Degenerate segments project everything onto a with t=0
func ProjectToSegment(p, a, b Vec2) (Vec2, float64) {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq < DegenerateSegmentSq {
		return a, 0
	}
	t := Clamp01(p.Sub(a).Dot(ab) / lenSq)
	return a.Add(ab.Scale(t)), t
}
