// Package metrics computes discrimination metrics (AUROC, KS, Gini) for a
// score column against the binary target. The score can come from any fitted
// model; only the score/target pairs enter here.
package metrics

import (
	"sort"

	"scorecard/domain/core"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Discrimination summarizes how well a score separates goods from bads.
type Discrimination struct {
	AUROC float64 `json:"auroc"`
	KS    float64 `json:"ks"`
	Gini  float64 `json:"gini"`
}

// Evaluate computes AUROC via the ROC curve, KS as the maximum gap between
// the cumulative bad and good distributions, and Gini as 2*AUROC-1. Higher
// scores are expected to indicate higher bad likelihood.
func Evaluate(scores []float64, target []int) (Discrimination, error) {
	var d Discrimination
	if len(scores) != len(target) {
		return d, core.NewLengthMismatchError("scores", len(scores), len(target))
	}

	goods, bads := 0, 0
	classes := make([]bool, len(target))
	for i, t := range target {
		switch t {
		case 0:
			goods++
		case 1:
			bads++
			classes[i] = true
		default:
			return d, core.NewTargetDomainError(float64(t), i)
		}
	}
	if goods == 0 || bads == 0 {
		return d, core.ErrNoVariation
	}

	// stat.ROC needs the scores in ascending order with classes aligned.
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return scores[idx[a]] < scores[idx[b]] })

	y := make([]float64, len(scores))
	cls := make([]bool, len(scores))
	for i, j := range idx {
		y[i] = scores[j]
		cls[i] = classes[j]
	}

	tpr, fpr, _ := stat.ROC(nil, y, cls, nil)

	ks := 0.0
	for i := range tpr {
		if gap := tpr[i] - fpr[i]; gap > ks {
			ks = gap
		} else if -gap > ks {
			ks = -gap
		}
	}

	d.AUROC = integrate.Trapezoidal(fpr, tpr)
	d.KS = ks
	d.Gini = 2*d.AUROC - 1
	return d, nil
}
