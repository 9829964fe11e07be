package testkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministicUnderSeed(t *testing.T) {
	cfg := DefaultLoanConfig()
	cfg.RowCount = 200

	a, err := NewLoanGenerator(cfg).Generate()
	require.NoError(t, err)
	b, err := NewLoanGenerator(cfg).Generate()
	require.NoError(t, err)

	colA, err := a.Numeric("dti")
	require.NoError(t, err)
	colB, err := b.Numeric("dti")
	require.NoError(t, err)
	assert.Equal(t, colA, colB)
}

func TestGenerateShape(t *testing.T) {
	cfg := DefaultLoanConfig()
	cfg.RowCount = 500

	tbl, err := NewLoanGenerator(cfg).Generate()
	require.NoError(t, err)

	assert.Equal(t, 500, tbl.Rows())
	require.Len(t, tbl.Fields(), 7)

	target, err := tbl.Target("bad")
	require.NoError(t, err)

	bads := 0
	for _, v := range target {
		bads += v
	}
	rate := float64(bads) / float64(len(target))
	assert.Greater(t, rate, 0.02)
	assert.Less(t, rate, 0.60)
}

func TestGenerateInjectsMissing(t *testing.T) {
	cfg := DefaultLoanConfig()
	cfg.RowCount = 1000
	cfg.MissingRate = 0.10

	tbl, err := NewLoanGenerator(cfg).Generate()
	require.NoError(t, err)

	income, err := tbl.Numeric("income")
	require.NoError(t, err)

	missing := 0
	for _, v := range income {
		if math.IsNaN(v) {
			missing++
		}
	}
	assert.Greater(t, missing, 0)
	assert.Less(t, missing, 300)
}
