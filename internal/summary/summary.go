// Package summary produces per-column descriptive statistics for an
// observation table: counts, missing rate, cardinality, quantile summary,
// skewness and a rough normality check. It is reporting only; nothing here
// mutates the table.
package summary

import (
	"math"

	"scorecard/domain/core"
	"scorecard/domain/tabular"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ColumnSummary describes one numeric column.
type ColumnSummary struct {
	Name        string       `json:"name"`
	Role        tabular.Role `json:"role"`
	Count       int          `json:"count"`
	Missing     int          `json:"missing"`
	MissingRate float64      `json:"missing_rate"`
	Cardinality int          `json:"cardinality"`

	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`

	IsNormal bool    `json:"is_normal"`
	NormalP  float64 `json:"normal_p"`
}

// Summarize profiles every numeric column of the table in field order.
// Non-numeric columns are skipped; the caller reads their cardinality and
// missing counts off the field descriptors directly.
func Summarize(tbl *tabular.Table) ([]ColumnSummary, error) {
	var out []ColumnSummary
	for _, f := range tbl.Fields() {
		values, err := tbl.Numeric(f.Name)
		if err != nil {
			if core.IsNotFoundError(err) {
				continue // label column
			}
			return nil, err
		}
		cs, err := Column(f.Name, values)
		if err != nil {
			return nil, err
		}
		cs.Role = f.Role
		out = append(out, *cs)
	}
	return out, nil
}

// Column profiles a single numeric sequence. Missing entries (NaN) count
// toward the missing rate and are excluded from every statistic.
func Column(name string, values []float64) (*ColumnSummary, error) {
	clean := make([]float64, 0, len(values))
	distinct := make(map[float64]struct{})
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
		distinct[v] = struct{}{}
	}
	if len(clean) == 0 {
		return nil, core.NewAllMissingError(name)
	}

	cs := &ColumnSummary{
		Name:        name,
		Count:       len(values),
		Missing:     len(values) - len(clean),
		MissingRate: float64(len(values)-len(clean)) / float64(len(values)),
		Cardinality: len(distinct),
	}

	cs.Mean, _ = stats.Mean(clean)
	cs.StdDev, _ = stats.StandardDeviation(clean)
	cs.Min, _ = stats.Min(clean)
	cs.Max, _ = stats.Max(clean)
	cs.Median, _ = stats.Median(clean)
	if len(clean) >= 4 {
		cs.Q25, _ = stats.Percentile(clean, 25)
		cs.Q75, _ = stats.Percentile(clean, 75)
	} else {
		cs.Q25, cs.Q75 = cs.Min, cs.Max
	}

	cs.Skewness = skewness(clean, cs.Mean, cs.StdDev)
	cs.IsNormal, cs.NormalP = normality(clean, cs.Mean, cs.StdDev, cs.Skewness)
	return cs, nil
}

// skewness is the adjusted Fisher-Pearson coefficient.
func skewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumCubed += d * d * d
	}
	return sumCubed / n * math.Sqrt(n*(n-1)) / (n - 2)
}

// normality is a Jarque-Bera-style check combining skewness and excess
// kurtosis into a chi-square statistic with 2 degrees of freedom. Coarse, but
// enough to flag columns that need treatment before modeling.
func normality(data []float64, mean, stdDev, skew float64) (bool, float64) {
	if len(data) < 8 || stdDev == 0 {
		return false, 1.0
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sumFourth += d * d * d * d
	}
	excess := sumFourth/n - 3

	jb := n / 6 * (skew*skew + excess*excess/4)
	chi2 := distuv.ChiSquared{K: 2}
	p := 1 - chi2.CDF(jb)
	return p > 0.05, p
}
