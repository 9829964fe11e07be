package binning

import (
	"math"
	"testing"

	"scorecard/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestBinQuartersOfHundred(t *testing.T) {
	values := sequence(100)

	labels, b, err := Bin(values, 4, StrategyQuantile)
	require.NoError(t, err)
	require.Len(t, b.Levels(), 4)

	counts := map[string]int{}
	for _, l := range labels {
		counts[l]++
	}
	for _, level := range b.Levels() {
		assert.Equal(t, 25, counts[level], "level %s", level)
	}

	cuts := b.Cuts()
	for i := 1; i < len(cuts); i++ {
		assert.Greater(t, cuts[i], cuts[i-1])
	}
}

func TestBinDeterminism(t *testing.T) {
	values := []float64{9, 1, 4, 7, 2, 8, 3, 6, 5, 10}

	a, _, err := Bin(values, 3, StrategyQuantile)
	require.NoError(t, err)
	b, _, err := Bin(values, 3, StrategyQuantile)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBinCollapsesDuplicateCuts(t *testing.T) {
	// Heavily tied data: most quantile cuts coincide at zero.
	values := []float64{0, 0, 0, 0, 0, 0, 0, 0, 5, 10}

	labels, b, err := Bin(values, 4, StrategyQuantile)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(b.Levels()), 4)
	for _, l := range labels {
		assert.NotEmpty(t, l)
	}
}

func TestBinMidpointsReassignIdentically(t *testing.T) {
	values := sequence(100)

	_, b, err := Bin(values, 4, StrategyQuantile)
	require.NoError(t, err)

	got := b.Assign(b.Midpoints())
	assert.Equal(t, b.Levels(), got)
}

func TestAssignHandlesMissingAndOutOfRange(t *testing.T) {
	_, b, err := Bin(sequence(10), 2, StrategyQuantile)
	require.NoError(t, err)

	labels := b.Assign([]float64{math.NaN(), -100, 100})
	levels := b.Levels()
	assert.Equal(t, LevelMissing, labels[0])
	assert.Equal(t, levels[0], labels[1])
	assert.Equal(t, levels[len(levels)-1], labels[2])
}

func TestBinMaximumIsIncluded(t *testing.T) {
	values := sequence(10)

	labels, b, err := Bin(values, 2, StrategyQuantile)
	require.NoError(t, err)
	levels := b.Levels()
	assert.Equal(t, levels[len(levels)-1], labels[len(labels)-1])
}

func TestBinErrors(t *testing.T) {
	_, _, err := Bin(sequence(10), 1, StrategyQuantile)
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))

	_, _, err = Bin(sequence(10), 4, Strategy("width"))
	require.Error(t, err)
	assert.True(t, core.IsInputShapeError(err))

	_, _, err = Bin([]float64{7, 7, 7, 7}, 2, StrategyQuantile)
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))

	_, _, err = Bin([]float64{math.NaN()}, 2, StrategyQuantile)
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))
}
