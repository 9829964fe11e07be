// Package woe holds the value types produced by univariate predictiveness
// analysis: per-level Weight-of-Evidence statistics, variable-level
// Information Value summaries, and rank-diagnostic buckets.
package woe

// LevelStats holds the scoring record for a single level of a discrete or
// binned variable. PctGood and PctBad are the unsmoothed shares of all goods
// and all bads falling into the level; WOE and IV are computed from smoothed
// shares whenever either raw count is zero, in which case Smoothed is set.
type LevelStats struct {
	Label   string  `json:"label"`
	Good    int     `json:"good"`
	Bad     int     `json:"bad"`
	Total   int     `json:"total"`
	PctGood float64 `json:"pct_good"`
	PctBad  float64 `json:"pct_bad"`
	WOE     float64 `json:"woe"`
	IV      float64 `json:"iv"`

	// Smoothed marks levels where the zero-count smoothing rule fired.
	Smoothed bool `json:"smoothed,omitempty"`
}

// VariableReport aggregates level statistics into a single Information Value
// and Efficiency score for one (variable, target) pair. Levels are kept in
// the variable's natural/ordinal order so WOE monotonicity can be inspected.
type VariableReport struct {
	Variable   string       `json:"variable"`
	Levels     []LevelStats `json:"levels"`
	IV         float64      `json:"iv"`
	Efficiency float64      `json:"efficiency"`
	Goods      int          `json:"goods"`
	Bads       int          `json:"bads"`
	Smoothing  float64      `json:"smoothing"`
}

// LowSignal reports whether the variable's IV falls below the given
// low-predictiveness threshold. The collapse/drop decision stays with the
// caller; this is only the flag that informs it.
func (r *VariableReport) LowSignal(threshold float64) bool {
	return r.IV < threshold
}

// RankBucket summarizes one equal-population slice of observations ordered by
// a continuous predictor.
type RankBucket struct {
	AvgValue float64 `json:"avg_value"`
	BadRate  float64 `json:"bad_rate"`
	Count    int     `json:"count"`
}

// RankDiagnostic is the output of the continuous-variable rank diagnostic:
// bucket-level bad-rate trend plus a concordance-based separation measure
// scaled to [-100, 100].
type RankDiagnostic struct {
	Variable   string       `json:"variable"`
	Buckets    []RankBucket `json:"buckets"`
	Separation float64      `json:"separation"`
}
