package rfm_test

import (
	"fmt"
	"testing"

	"github.com/hzlparlak/Crm-Analytics/internal/domain/rfm"
	. "github.com/smartystreets/goconvey/convey"
)

// expectedAt5 re-states the 1..5 rule table independently of the
// implementation so the enumeration below catches ordering mistakes.
func expectedAt5(r, f int) rfm.Segment {
	switch {
	case r >= 4:
		return rfm.SegmentChampions
	case r >= 2 && r < 4 && f >= 3:
		return rfm.SegmentLoyalCustomers
	case r >= 3 && f < 3:
		return rfm.SegmentPotentialLoyalists
	case r < 2 && f >= 4:
		return rfm.SegmentAtRisk
	case r < 2 && f < 2:
		return rfm.SegmentLost
	default:
		return rfm.SegmentLowValue
	}
}

func TestClassify(t *testing.T) {
	Convey("Given the 1..5 score scale", t, func() {
		known := map[rfm.Segment]bool{}
		for _, s := range rfm.Segments() {
			known[s] = true
		}

		Convey("When enumerating all 25 (r, f) pairs", func() {
			Convey("Then every pair maps to exactly one defined segment", func() {
				for r := 1; r <= 5; r++ {
					for f := 1; f <= 5; f++ {
						got := rfm.Classify(r, f, 5)
						So(known[got], ShouldBeTrue)
						So(got, ShouldEqual, expectedAt5(r, f))
					}
				}
			})
		})

		Convey("When checking representative pairs", func() {
			cases := []struct {
				r, f int
				want rfm.Segment
			}{
				{5, 1, rfm.SegmentChampions},
				{4, 5, rfm.SegmentChampions},
				{3, 3, rfm.SegmentLoyalCustomers},
				{2, 5, rfm.SegmentLoyalCustomers},
				{3, 2, rfm.SegmentPotentialLoyalists},
				{3, 1, rfm.SegmentPotentialLoyalists},
				{1, 4, rfm.SegmentAtRisk},
				{1, 5, rfm.SegmentAtRisk},
				{1, 1, rfm.SegmentLost},
				{1, 2, rfm.SegmentLowValue},
				{1, 3, rfm.SegmentLowValue},
				{2, 1, rfm.SegmentLowValue},
				{2, 2, rfm.SegmentLowValue},
			}
			for _, tc := range cases {
				Convey(fmt.Sprintf("Then (r=%d, f=%d) is %s", tc.r, tc.f, tc.want), func() {
					So(rfm.Classify(tc.r, tc.f, 5), ShouldEqual, tc.want)
				})
			}
		})

		Convey("When an earlier rule overlaps a later one", func() {
			Convey("Then the first match wins", func() {
				// r=4 also satisfies the Potential Loyalists range (r >= 3,
				// f < 3) but Champions claimed it first.
				So(rfm.Classify(4, 1, 5), ShouldEqual, rfm.SegmentChampions)
				// r=1, f=5 satisfies At Risk before anything else can see it.
				So(rfm.Classify(1, 5, 5), ShouldEqual, rfm.SegmentAtRisk)
			})
		})
	})

	Convey("Given a reduced 1..3 score scale", t, func() {
		Convey("When enumerating all 9 (r, f) pairs", func() {
			known := map[rfm.Segment]bool{}
			for _, s := range rfm.Segments() {
				known[s] = true
			}

			Convey("Then every pair still maps to a defined segment", func() {
				for r := 1; r <= 3; r++ {
					for f := 1; f <= 3; f++ {
						So(known[rfm.Classify(r, f, 3)], ShouldBeTrue)
					}
				}
			})

			Convey("Then the extremes keep their meaning", func() {
				So(rfm.Classify(3, 3, 3), ShouldEqual, rfm.SegmentChampions)
				So(rfm.Classify(1, 1, 3), ShouldEqual, rfm.SegmentLost)
			})
		})
	})
}
