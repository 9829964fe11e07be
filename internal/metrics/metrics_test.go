package metrics

import (
	"testing"

	"scorecard/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePerfectScore(t *testing.T) {
	scores := []float64{0.1, 0.2, 0.3, 0.7, 0.8, 0.9}
	target := []int{0, 0, 0, 1, 1, 1}

	d, err := Evaluate(scores, target)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, d.AUROC, 1e-9)
	assert.InDelta(t, 1.0, d.KS, 1e-9)
	assert.InDelta(t, 1.0, d.Gini, 1e-9)
}

func TestEvaluateUninformativeScore(t *testing.T) {
	// Goods and bads interleave evenly; the score carries no signal.
	scores := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	target := []int{0, 1, 0, 1, 0, 1, 0, 1}

	d, err := Evaluate(scores, target)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, d.AUROC, 0.15)
	assert.InDelta(t, 0.0, d.Gini, 0.3)
}

func TestEvaluateInvertedScore(t *testing.T) {
	scores := []float64{0.9, 0.8, 0.7, 0.3, 0.2, 0.1}
	target := []int{0, 0, 0, 1, 1, 1}

	d, err := Evaluate(scores, target)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, d.AUROC, 1e-9)
	assert.InDelta(t, -1.0, d.Gini, 1e-9)
}

func TestEvaluateErrors(t *testing.T) {
	_, err := Evaluate([]float64{1, 2}, []int{0})
	require.Error(t, err)
	assert.True(t, core.IsInputShapeError(err))

	_, err = Evaluate([]float64{1, 2}, []int{0, 3})
	require.Error(t, err)
	assert.True(t, core.IsInputShapeError(err))

	_, err = Evaluate([]float64{1, 2}, []int{1, 1})
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))
}
