package summary

import (
	"math"
	"testing"

	"scorecard/domain/core"
	"scorecard/domain/tabular"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnBasics(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, math.NaN(), math.NaN()}

	cs, err := Column("balance", values)
	require.NoError(t, err)

	assert.Equal(t, 12, cs.Count)
	assert.Equal(t, 2, cs.Missing)
	assert.InDelta(t, 2.0/12.0, cs.MissingRate, 1e-9)
	assert.Equal(t, 10, cs.Cardinality)
	assert.InDelta(t, 5.5, cs.Mean, 1e-9)
	assert.InDelta(t, 5.5, cs.Median, 1e-9)
	assert.Equal(t, 1.0, cs.Min)
	assert.Equal(t, 10.0, cs.Max)
	assert.InDelta(t, 0.0, cs.Skewness, 0.01)
}

func TestColumnAllMissing(t *testing.T) {
	_, err := Column("empty", []float64{math.NaN(), math.NaN()})
	require.Error(t, err)
	assert.True(t, core.IsDegenerateInputError(err))
}

func TestColumnSkewedData(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 2, 3, 50}

	cs, err := Column("skewed", values)
	require.NoError(t, err)
	assert.Greater(t, cs.Skewness, 1.0)
	assert.False(t, cs.IsNormal)
}

func TestSummarizeWalksNumericColumns(t *testing.T) {
	tbl := tabular.NewTable("t")
	require.NoError(t, tbl.AddNumeric("a", tabular.RoleContinuous, []float64{1, 2, 3, 4}))
	require.NoError(t, tbl.AddLabels("c", tabular.RoleCategorical, []string{"x", "y", "x", "y"}))
	require.NoError(t, tbl.AddNumeric("bad", tabular.RoleTarget, []float64{0, 1, 0, 1}))

	summaries, err := Summarize(tbl)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	assert.Equal(t, "a", summaries[0].Name)
	assert.Equal(t, tabular.RoleContinuous, summaries[0].Role)
	assert.Equal(t, "bad", summaries[1].Name)
}
