// Package pipeline composes the univariate stages into a full sweep over an
// observation table: treat each continuous predictor, bin it, score the bins,
// and run the rank diagnostic; score naturally discrete and categorical
// predictors directly. Each stage is a pure function over column data; the
// pipeline is the only place that writes derived columns back to the table.
package pipeline

import (
	"fmt"
	"sort"
	"time"

	"scorecard/domain/core"
	"scorecard/domain/tabular"
	domainwoe "scorecard/domain/woe"
	"scorecard/internal"
	"scorecard/internal/binning"
	"scorecard/internal/config"
	"scorecard/internal/ranks"
	"scorecard/internal/summary"
	"scorecard/internal/treatment"
	"scorecard/internal/woe"
)

// Result carries everything one sweep produced. Reports are sorted by IV
// descending; Diagnostics are keyed by variable name.
type Result struct {
	RunID       core.RunID                           `json:"run_id"`
	Dataset     string                               `json:"dataset"`
	Target      string                               `json:"target"`
	StartedAt   time.Time                            `json:"started_at"`
	Summaries   []summary.ColumnSummary              `json:"summaries"`
	Reports     []*domainwoe.VariableReport          `json:"reports"`
	Diagnostics map[string]*domainwoe.RankDiagnostic `json:"diagnostics"`
	IVThreshold float64                              `json:"iv_threshold"`
}

// Sweep runs the full treatment/binning/scoring pass over every non-target
// field of the table and halts on the first error; silently skipping a
// variable would corrupt the downstream variable-selection decision.
func Sweep(tbl *tabular.Table, cfg *config.Config) (*Result, error) {
	logger := internal.DefaultLogger

	target, err := tbl.Target(cfg.Data.Target)
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", cfg.Data.Target, err)
	}

	summaries, err := summary.Summarize(tbl)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       core.NewRunID(),
		Dataset:     tbl.Name,
		Target:      cfg.Data.Target,
		StartedAt:   time.Now(),
		Summaries:   summaries,
		Diagnostics: make(map[string]*domainwoe.RankDiagnostic),
		IVThreshold: cfg.Scoring.IVThreshold,
	}

	for _, field := range tbl.Fields() {
		if field.Name == cfg.Data.Target || field.Role == tabular.RoleTarget || field.Role == tabular.RoleDerived {
			continue
		}

		var report *domainwoe.VariableReport
		switch field.Role {
		case tabular.RoleContinuous:
			report, err = sweepContinuous(tbl, field, target, cfg, result)
		case tabular.RoleDiscrete, tabular.RoleCategorical:
			report, err = sweepDiscrete(tbl, field, target, cfg)
		default:
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", field.Name, err)
		}

		logger.Info("[Pipeline] %s: IV=%.4f efficiency=%.4f levels=%d",
			field.Name, report.IV, report.Efficiency, len(report.Levels))
		result.Reports = append(result.Reports, report)
	}

	sort.SliceStable(result.Reports, func(i, j int) bool {
		return result.Reports[i].IV > result.Reports[j].IV
	})
	return result, nil
}

// sweepContinuous treats, bins, scores and rank-diagnoses one continuous
// field, writing the treated and binned columns back as derived columns.
func sweepContinuous(tbl *tabular.Table, field tabular.Field, target []int, cfg *config.Config, result *Result) (*domainwoe.VariableReport, error) {
	raw, err := tbl.Numeric(field.Name)
	if err != nil {
		return nil, err
	}

	impute, err := treatment.Median(raw)
	if err != nil {
		return nil, err
	}
	treated, err := treatment.Treat(raw, cfg.Treatment.QLow, cfg.Treatment.QHigh, impute)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddNumeric(field.Name+"_trt", tabular.RoleDerived, treated); err != nil {
		return nil, err
	}

	labels, binner, err := binning.Bin(treated, cfg.Scoring.Bins, binning.StrategyQuantile)
	if err != nil {
		return nil, err
	}
	if err := tbl.AddLabels(field.Name+"_bin", tabular.RoleDerived, labels); err != nil {
		return nil, err
	}

	report, err := woe.Score(field.Name, labels, target, woe.Config{
		Smoothing: cfg.Scoring.Smoothing,
		Order:     binner.Levels(),
	})
	if err != nil {
		return nil, err
	}

	numRanks := cfg.Scoring.RankBuckets
	if numRanks > len(treated) {
		numRanks = len(treated)
	}
	diag, err := ranks.Diagnose(field.Name, treated, target, numRanks)
	if err != nil {
		return nil, err
	}
	result.Diagnostics[field.Name] = diag

	return report, nil
}

// sweepDiscrete scores a naturally discrete or categorical field as-is.
// Discrete-numeric columns carry an explicit numeric-order level list;
// categorical columns fall back to the scorer's lexicographic default.
func sweepDiscrete(tbl *tabular.Table, field tabular.Field, target []int, cfg *config.Config) (*domainwoe.VariableReport, error) {
	var order []string
	labels, err := tbl.Labels(field.Name)
	if err != nil {
		if !core.IsNotFoundError(err) {
			return nil, err
		}
		labels, order, err = discreteLabels(tbl, field.Name)
		if err != nil {
			return nil, err
		}
	}

	for i, lvl := range labels {
		if lvl == "" {
			labels[i] = binning.LevelMissing
		}
	}

	return woe.Score(field.Name, labels, target, woe.Config{
		Smoothing: cfg.Scoring.Smoothing,
		Order:     order,
	})
}

// discreteLabels renders a discrete-numeric column into value labels and
// returns the level list sorted by the underlying numeric value, so negative
// values rank correctly. A missing level, when present, sorts last.
func discreteLabels(tbl *tabular.Table, name string) ([]string, []string, error) {
	values, err := tbl.Numeric(name)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]string, len(values))
	distinct := make(map[float64]string)
	sawMissing := false
	for i, v := range values {
		if v != v { // NaN
			labels[i] = binning.LevelMissing
			sawMissing = true
			continue
		}
		lbl, ok := distinct[v]
		if !ok {
			lbl = fmt.Sprintf("%g", v)
			distinct[v] = lbl
		}
		labels[i] = lbl
	}

	keys := make([]float64, 0, len(distinct))
	for v := range distinct {
		keys = append(keys, v)
	}
	sort.Float64s(keys)

	order := make([]string, 0, len(keys)+1)
	for _, v := range keys {
		order = append(order, distinct[v])
	}
	if sawMissing {
		order = append(order, binning.LevelMissing)
	}
	return labels, order, nil
}
