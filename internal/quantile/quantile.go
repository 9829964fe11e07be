// Package quantile computes quantile points over numeric data with a single
// sort per call. The treatment and binning stages both need the 0th and 100th
// percentiles and many cut points at once, which is why this sits beside the
// general-purpose helpers in github.com/montanaflynn/stats rather than on top
// of stats.Percentile (one full pass per quantile, bounds limited to (0,100]).
package quantile

import (
	"math"
	"sort"

	"scorecard/domain/core"
)

// Points returns the quantile values at the given fractions, each in [0,1],
// using linear interpolation between order statistics. NaN entries are
// excluded before computing; an input with no finite values is degenerate.
// The input slice is not modified.
func Points(values []float64, fractions []float64) ([]float64, error) {
	for _, f := range fractions {
		if f < 0 || f > 1 || math.IsNaN(f) {
			return nil, core.NewInvalidQuantileError(f)
		}
	}

	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return nil, core.ErrAllMissing
	}
	sort.Float64s(clean)

	out := make([]float64, len(fractions))
	for i, f := range fractions {
		out[i] = interpolate(clean, f)
	}
	return out, nil
}

// Point returns a single quantile value.
func Point(values []float64, fraction float64) (float64, error) {
	pts, err := Points(values, []float64{fraction})
	if err != nil {
		return math.NaN(), err
	}
	return pts[0], nil
}

// interpolate evaluates one quantile over sorted data.
func interpolate(sorted []float64, f float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	h := f * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}
