package store

import (
	"context"
	"testing"
	"time"

	"scorecard/domain/core"
	domainwoe "scorecard/domain/woe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *RunStore {
	t.Helper()
	s, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:          core.NewRunID(),
		Dataset:     "portfolio.csv",
		Target:      "bad",
		IVThreshold: 0.02,
		StartedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.SaveRun(ctx, run))

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.Dataset, got.Dataset)
	assert.Equal(t, run.Target, got.Target)
	assert.InDelta(t, run.IVThreshold, got.IVThreshold, 1e-9)
}

func TestGetRunNotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRun(context.Background(), core.NewRunID())
	require.Error(t, err)
	assert.True(t, core.IsNotFoundError(err))
}

func TestReportsRoundTripOrderedByIV(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID := core.NewRunID()
	require.NoError(t, s.SaveRun(ctx, Run{
		ID: runID, Dataset: "d", Target: "bad", IVThreshold: 0.02, StartedAt: time.Now(),
	}))

	reports := []*domainwoe.VariableReport{
		{
			Variable:   "age",
			IV:         0.05,
			Efficiency: 0.04,
			Goods:      80,
			Bads:       20,
			Levels: []domainwoe.LevelStats{
				{Label: "[20, 40)", Good: 50, Bad: 5, Total: 55, PctGood: 0.625, PctBad: 0.25, WOE: 0.916, IV: 0.344},
				{Label: "[40, 60]", Good: 30, Bad: 15, Total: 45, PctGood: 0.375, PctBad: 0.75, WOE: -0.693, IV: 0.260},
			},
		},
		{Variable: "dti", IV: 0.31, Efficiency: 0.18, Goods: 80, Bads: 20},
	}
	require.NoError(t, s.SaveReports(ctx, runID, reports))

	got, err := s.ReportsByRun(ctx, runID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "dti", got[0].Variable)
	assert.Equal(t, "age", got[1].Variable)

	require.Len(t, got[1].Levels, 2)
	assert.Equal(t, "[20, 40)", got[1].Levels[0].Label)
	assert.Equal(t, 50, got[1].Levels[0].Good)
	assert.InDelta(t, 0.916, got[1].Levels[0].WOE, 1e-9)
}

func TestListRunsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := Run{ID: core.NewRunID(), Dataset: "a", Target: "bad", StartedAt: time.Now().Add(-time.Hour)}
	newer := Run{ID: core.NewRunID(), Dataset: "b", Target: "bad", StartedAt: time.Now()}
	require.NoError(t, s.SaveRun(ctx, older))
	require.NoError(t, s.SaveRun(ctx, newer))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)

	limited, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
