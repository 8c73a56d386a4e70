package solver

import (
	"math"
	"sort"
)

// projectSimplex returns the Euclidean projection of v onto the unit
// simplex {w : w ≥ 0, Σw = 1}, computed by the sort-and-threshold method:
// find the largest k such that the top-k entries stay positive after
// shifting by a common threshold, then clip everything else to zero.
func projectSimplex(v []float64) []float64 {
	n := len(v)
	sorted := append([]float64(nil), v...)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	cumulative := 0.0
	theta := 0.0
	for i := 0; i < n; i++ {
		cumulative += sorted[i]
		t := (cumulative - 1) / float64(i+1)
		if sorted[i]-t > 0 {
			theta = t
		}
	}

	w := make([]float64, n)
	for i := range v {
		w[i] = math.Max(v[i]-theta, 0)
	}
	return w
}
