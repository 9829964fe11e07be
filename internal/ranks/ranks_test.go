package ranks

import (
	"testing"

	"scorecard/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnoseBuckets(t *testing.T) {
	values := []float64{10, 1, 8, 3, 6, 5, 4, 7, 2, 9}
	target := []int{1, 0, 1, 0, 0, 0, 0, 1, 0, 1}

	diag, err := Diagnose("score", values, target, 3)
	require.NoError(t, err)

	// 10 rows into 3 ranks: 3, 3, 4 (last absorbs the remainder).
	require.Len(t, diag.Buckets, 3)
	assert.Equal(t, 3, diag.Buckets[0].Count)
	assert.Equal(t, 3, diag.Buckets[1].Count)
	assert.Equal(t, 4, diag.Buckets[2].Count)

	// Sorted ascending: the first bucket holds values 1..3.
	assert.InDelta(t, 2.0, diag.Buckets[0].AvgValue, 1e-9)
	assert.Equal(t, 0.0, diag.Buckets[0].BadRate)
	// All four bads sit in the top four values.
	assert.InDelta(t, 1.0, diag.Buckets[2].BadRate, 1e-9)
	assert.InDelta(t, 100.0, diag.Separation, 1e-9)
}

func TestSeparationPerfectRanking(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	target := []int{0, 0, 0, 1, 1, 1}

	sep, err := Separation(values, target)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, sep, 1e-9)
}

func TestSeparationInvertedRanking(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	target := []int{1, 1, 1, 0, 0, 0}

	sep, err := Separation(values, target)
	require.NoError(t, err)
	assert.InDelta(t, -100.0, sep, 1e-9)
}

func TestSeparationConstantPredictor(t *testing.T) {
	values := []float64{5, 5, 5, 5}
	target := []int{0, 1, 0, 1}

	sep, err := Separation(values, target)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, sep, 1e-9)
}

func TestDiagnoseDeterministicUnderTies(t *testing.T) {
	values := []float64{1, 1, 1, 2, 2, 2}
	target := []int{0, 1, 0, 1, 0, 1}

	a, err := Diagnose("x", values, target, 2)
	require.NoError(t, err)
	b, err := Diagnose("x", values, target, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDiagnoseErrors(t *testing.T) {
	_, err := Diagnose("x", []float64{1, 2}, []int{0}, 1)
	require.Error(t, err)
	assert.True(t, core.IsInputShapeError(err))

	_, err = Diagnose("x", []float64{1, 2}, []int{0, 1}, 3)
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))

	_, err = Diagnose("x", []float64{1, 2}, []int{0, 5}, 1)
	require.Error(t, err)
	assert.True(t, core.IsInputShapeError(err))

	_, err = Separation([]float64{1, 2}, []int{0, 0})
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))

	_, err = Separation([]float64{1, 2, 3}, []int{0, 1, 5})
	require.Error(t, err)
	assert.True(t, core.IsInputShapeError(err))
}
