// Package ranks implements the continuous-variable rank diagnostic:
// equal-population buckets over a predictor ordered ascending, with the bad
// rate per bucket and a concordance-based separation measure. It needs no
// fitted model; the separation comes straight from the ranks.
package ranks

import (
	"sort"

	"scorecard/domain/core"
	domainwoe "scorecard/domain/woe"
)

// Diagnose sorts rows by value ascending, slices them into numRanks
// equal-population buckets (the last bucket absorbs the integer-division
// remainder), and reports mean value, bad rate and count per bucket together
// with a Gini-like separation scalar in [-100, 100].
func Diagnose(variable string, values []float64, target []int, numRanks int) (*domainwoe.RankDiagnostic, error) {
	if len(values) != len(target) {
		return nil, core.NewLengthMismatchError(variable, len(values), len(target))
	}
	if numRanks < 1 || numRanks > len(values) {
		return nil, core.ErrDegenerateInput
	}
	for i, t := range target {
		if t != 0 && t != 1 {
			return nil, core.NewTargetDomainError(float64(t), i)
		}
	}

	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	// Tie-break on the original row index to keep the slicing deterministic.
	sort.Slice(idx, func(a, b int) bool {
		if values[idx[a]] != values[idx[b]] {
			return values[idx[a]] < values[idx[b]]
		}
		return idx[a] < idx[b]
	})

	diag := &domainwoe.RankDiagnostic{Variable: variable}
	size := len(values) / numRanks
	for r := 0; r < numRanks; r++ {
		lo := r * size
		hi := lo + size
		if r == numRanks-1 {
			hi = len(values)
		}

		sum := 0.0
		bad := 0
		for _, i := range idx[lo:hi] {
			sum += values[i]
			bad += target[i]
		}
		n := hi - lo
		diag.Buckets = append(diag.Buckets, domainwoe.RankBucket{
			AvgValue: sum / float64(n),
			BadRate:  float64(bad) / float64(n),
			Count:    n,
		})
	}

	sep, err := Separation(values, target)
	if err != nil {
		return nil, err
	}
	diag.Separation = sep
	return diag, nil
}

// Separation computes the rank concordance between a continuous predictor and
// the binary target, scaled to [-100, 100]. It is the Gini coefficient of the
// Mann-Whitney statistic over (good, bad) pairs, with ties carried at half
// weight through midranks, so no model fit is required.
func Separation(values []float64, target []int) (float64, error) {
	if len(values) != len(target) {
		return 0, core.NewLengthMismatchError("separation", len(values), len(target))
	}

	goods, bads := 0, 0
	for i, t := range target {
		switch t {
		case 0:
			goods++
		case 1:
			bads++
		default:
			return 0, core.NewTargetDomainError(float64(t), i)
		}
	}
	if goods == 0 || bads == 0 {
		return 0, core.ErrNoVariation
	}

	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	// Rank-sum of the bad class using midranks for tied values.
	rankSumBad := 0.0
	i := 0
	for i < len(idx) {
		j := i
		for j < len(idx) && values[idx[j]] == values[idx[i]] {
			j++
		}
		midrank := float64(i+j+1) / 2 // ranks are 1-based
		for k := i; k < j; k++ {
			if target[idx[k]] == 1 {
				rankSumBad += midrank
			}
		}
		i = j
	}

	nb := float64(bads)
	ng := float64(goods)
	auc := (rankSumBad - nb*(nb+1)/2) / (nb * ng)
	return (2*auc - 1) * 100, nil
}
