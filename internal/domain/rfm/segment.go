package rfm

// Segment is a mutually-exclusive behavioral label from a closed set.
type Segment string

// The closed segment set. SegmentLowValue is the fallthrough default.
const (
	SegmentChampions          Segment = "Champions"
	SegmentLoyalCustomers     Segment = "Loyal Customers"
	SegmentPotentialLoyalists Segment = "Potential Loyalists"
	SegmentAtRisk             Segment = "At Risk"
	SegmentLost               Segment = "Lost"
	SegmentLowValue           Segment = "Low-Value"
)

// Segments lists every label the classifier can produce.
func Segments() []Segment {
	return []Segment{
		SegmentChampions,
		SegmentLoyalCustomers,
		SegmentPotentialLoyalists,
		SegmentAtRisk,
		SegmentLost,
		SegmentLowValue,
	}
}

// rule pairs a predicate over (r, f) scores with the segment it assigns.
type rule struct {
	matches func(r, f int) bool
	segment Segment
}

// rules builds the ordered rule list for a k-bin score scale. The
// thresholds reproduce the 1..5 rule set exactly at k=5 and scale
// proportionally for other k.
func rules(k int) []rule {
	hiR := ceilFrac(4, 5, k)    // r >= 4 at k=5
	upperR := ceilFrac(3, 5, k) // r >= 3 at k=5
	midR := ceilFrac(2, 5, k)   // r >= 2 at k=5
	loyalF := ceilFrac(3, 5, k) // f >= 3 at k=5
	riskF := ceilFrac(4, 5, k)  // f >= 4 at k=5
	lostF := ceilFrac(2, 5, k)  // f < 2 at k=5

	return []rule{
		{func(r, _ int) bool { return r >= hiR }, SegmentChampions},
		{func(r, f int) bool { return r >= midR && r < hiR && f >= loyalF }, SegmentLoyalCustomers},
		{func(r, f int) bool { return r >= upperR && f < loyalF }, SegmentPotentialLoyalists},
		{func(r, f int) bool { return r < midR && f >= riskF }, SegmentAtRisk},
		{func(r, f int) bool { return r < midR && f < lostF }, SegmentLost},
	}
}

// Classify assigns a segment from (rScore, fScore) on a 1..k scale.
// Rules are evaluated strictly top-to-bottom and the first match wins;
// later rules re-test ranges earlier rules have already consumed, so the
// order is load-bearing. Anything unmatched is Low-Value. The monetary
// score is deliberately not an input: the rule set decides on recency and
// frequency alone, and MScore is carried in the output for downstream
// consumers only.
func Classify(rScore, fScore, k int) Segment {
	for _, rl := range rules(k) {
		if rl.matches(rScore, fScore) {
			return rl.segment
		}
	}
	return SegmentLowValue
}

// ceilFrac returns ceil(num*k/den), the 1..k scale point matching
// num on the canonical 1..5 scale.
func ceilFrac(num, den, k int) int {
	return (num*k + den - 1) / den
}
