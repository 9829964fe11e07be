// Package binning cuts a numeric column into k ordered bins. The quantile
// strategy places k+1 cut points at equal quantile steps from the 0th to the
// 100th percentile; coincident cut points (skewed or heavily discrete data)
// are collapsed, so the result may carry fewer than k bins.
package binning

import (
	"fmt"
	"math"

	"scorecard/domain/core"
	"scorecard/internal/quantile"
)

// Strategy selects how cut points are chosen.
type Strategy string

const (
	// StrategyQuantile is the only strategy in scope; the tag exists so the
	// binner's contract has an explicit extension point.
	StrategyQuantile Strategy = "quantile"
)

// LevelMissing is the dedicated label for rows whose value is missing at
// assignment time.
const LevelMissing = "missing"

// Binning holds the ordered, non-overlapping cut points of a fitted binner
// and the labels of the resulting intervals.
type Binning struct {
	cuts   []float64
	levels []string
}

// New fits a binner on the given values. The cut points are deterministic:
// identical input and k always produce identical cuts.
func New(values []float64, k int, strategy Strategy) (*Binning, error) {
	if k < 2 {
		return nil, core.ErrTooFewBins
	}
	if strategy != StrategyQuantile {
		return nil, fmt.Errorf("%w: unknown strategy %q", core.ErrInputShape, strategy)
	}

	fractions := make([]float64, k+1)
	for i := 0; i <= k; i++ {
		fractions[i] = float64(i) / float64(k)
	}
	raw, err := quantile.Points(values, fractions)
	if err != nil {
		return nil, err
	}

	// Collapse duplicate adjacent cut points rather than crashing on them.
	cuts := raw[:1]
	for _, c := range raw[1:] {
		if c > cuts[len(cuts)-1] {
			cuts = append(cuts, c)
		}
	}
	if len(cuts) < 2 {
		// Every quantile coincides: the column is constant.
		return nil, fmt.Errorf("%w: constant column cannot be binned", core.ErrDegenerateInput)
	}

	b := &Binning{cuts: cuts}
	for i := 0; i < len(cuts)-1; i++ {
		b.levels = append(b.levels, b.label(i))
	}
	return b, nil
}

// Bin is the one-shot form: fit on values and assign each value a label.
func Bin(values []float64, k int, strategy Strategy) ([]string, *Binning, error) {
	b, err := New(values, k, strategy)
	if err != nil {
		return nil, nil, err
	}
	labels := b.Assign(values)
	return labels, b, nil
}

// Levels returns the interval labels in ascending interval order.
func (b *Binning) Levels() []string {
	out := make([]string, len(b.levels))
	copy(out, b.levels)
	return out
}

// Cuts returns the deduplicated ascending cut points.
func (b *Binning) Cuts() []float64 {
	out := make([]float64, len(b.cuts))
	copy(out, b.cuts)
	return out
}

// Assign maps each value to the half-open interval [cut[i], cut[i+1]) it
// falls in; the final interval is closed on both ends so the maximum is
// included. Values outside the fitted range clamp to the first or last bin,
// and missing values map to LevelMissing.
func (b *Binning) Assign(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = LevelMissing
			continue
		}
		out[i] = b.levels[b.index(v)]
	}
	return out
}

// Midpoints returns the midpoint of each interval, useful for re-binning
// checks and for plotting bucket positions.
func (b *Binning) Midpoints() []float64 {
	out := make([]float64, len(b.levels))
	for i := range b.levels {
		out[i] = (b.cuts[i] + b.cuts[i+1]) / 2
	}
	return out
}

func (b *Binning) index(v float64) int {
	if v <= b.cuts[0] {
		return 0
	}
	last := len(b.cuts) - 2
	for i := 0; i < last; i++ {
		if v < b.cuts[i+1] {
			return i
		}
	}
	return last
}

func (b *Binning) label(i int) string {
	if i == len(b.cuts)-2 {
		return fmt.Sprintf("[%g, %g]", b.cuts[i], b.cuts[i+1])
	}
	return fmt.Sprintf("[%g, %g)", b.cuts[i], b.cuts[i+1])
}
