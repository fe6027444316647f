package rfm

import "sort"

// Quantile binning uses equal-population cuts: edges sit at the i/k
// quantiles of the observed values (linear interpolation between order
// statistics). Degenerate distributions collapse duplicate edges, so a
// metric with fewer than k distinct quantile boundaries gets a reduced
// effective bin count rather than an error. Equal values always land in
// the same bin and no value is ever left unscored.

// quantileEdges returns the deduplicated bin boundaries for k bins over
// values. The result has at most k+1 entries; a constant series collapses
// to a single entry.
func quantileEdges(values []float64, k int) []float64 {
	if len(values) == 0 || k < 1 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	edges := make([]float64, 0, k+1)
	for i := 0; i <= k; i++ {
		q := quantile(sorted, float64(i)/float64(k))
		if len(edges) == 0 || q != edges[len(edges)-1] {
			edges = append(edges, q)
		}
	}
	return edges
}

// quantile computes the q-th quantile of sorted values by linear
// interpolation between adjacent order statistics.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// binCount returns the effective number of bins described by edges,
// never less than one.
func binCount(edges []float64) int {
	if len(edges) < 2 {
		return 1
	}
	return len(edges) - 1
}

// assignBin maps v to its 1-based ascending bin. Bins are right-closed,
// with the lowest bin also closed on the left, matching quantile-cut
// semantics. Values beyond the last edge land in the highest bin.
func assignBin(v float64, edges []float64) int {
	if len(edges) < 2 {
		return 1
	}
	for i := 1; i < len(edges)-1; i++ {
		if v <= edges[i] {
			return i
		}
	}
	return len(edges) - 1
}
