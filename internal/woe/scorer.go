// Package woe implements the discrete/binned-variable scorer: per-level
// good/bad tabulation, distribution shares, Weight-of-Evidence, and the
// variable-level Information Value and Efficiency aggregates.
package woe

import (
	"math"
	"sort"

	"scorecard/domain/core"
	domainwoe "scorecard/domain/woe"
)

// DefaultSmoothing is the number of events added to both counts of a level
// when either count is zero, keeping WOE finite. The constant is part of the
// scorer's contract; callers override it through Config, never ad hoc.
const DefaultSmoothing = 0.5

// DefaultIVThreshold is the conventional low-predictiveness cutoff: variables
// scoring below it are candidates for collapsing levels or dropping.
const DefaultIVThreshold = 0.02

// Config controls one scoring call.
type Config struct {
	// Smoothing is the additive zero-count smoothing in events. Zero selects
	// DefaultSmoothing; negative values are rejected.
	Smoothing float64

	// Order fixes the level ordering of the output. When nil the distinct
	// levels are sorted lexicographically, which suits naturally discrete
	// variables; binned columns should pass the binner's level order.
	Order []string
}

// Score tabulates a discrete predictor against a binary target and returns
// the per-level statistics plus the variable's IV and Efficiency.
//
// Reported shares and Efficiency use the raw counts; WOE and the IV
// contribution of a level switch to smoothed shares when the level has zero
// goods or zero bads. IV is therefore always finite and non-negative.
func Score(variable string, levels []string, target []int, cfg Config) (*domainwoe.VariableReport, error) {
	if len(levels) != len(target) {
		return nil, core.NewLengthMismatchError(variable, len(levels), len(target))
	}
	if cfg.Smoothing < 0 {
		return nil, core.NewNumericDomainError("negative smoothing")
	}
	smoothing := cfg.Smoothing
	if smoothing == 0 {
		smoothing = DefaultSmoothing
	}

	type counts struct{ good, bad int }
	byLevel := make(map[string]*counts)
	goods, bads := 0, 0
	for i, lvl := range levels {
		c, ok := byLevel[lvl]
		if !ok {
			c = &counts{}
			byLevel[lvl] = c
		}
		switch target[i] {
		case 0:
			c.good++
			goods++
		case 1:
			c.bad++
			bads++
		default:
			return nil, core.NewTargetDomainError(float64(target[i]), i)
		}
	}
	if goods == 0 || bads == 0 {
		return nil, core.ErrNoVariation
	}

	order := cfg.Order
	if order == nil {
		order = make([]string, 0, len(byLevel))
		for lvl := range byLevel {
			order = append(order, lvl)
		}
		sort.Strings(order)
	} else {
		// Every observed level must appear in the caller's order; dropping its
		// rows would break the share sums and understate IV.
		listed := make(map[string]struct{}, len(order))
		for _, lvl := range order {
			listed[lvl] = struct{}{}
		}
		for lvl := range byLevel {
			if _, ok := listed[lvl]; !ok {
				return nil, core.NewUnlistedLevelError(variable, lvl)
			}
		}
	}

	report := &domainwoe.VariableReport{
		Variable:  variable,
		Goods:     goods,
		Bads:      bads,
		Smoothing: smoothing,
	}
	maxGap := 0.0
	for _, lvl := range order {
		c, ok := byLevel[lvl]
		if !ok {
			// An ordered level absent from the data contributes nothing.
			continue
		}

		pctGood := float64(c.good) / float64(goods)
		pctBad := float64(c.bad) / float64(bads)

		// Smoothed shares feed WOE and IV so the log-ratio stays finite.
		woeGood, woeBad := pctGood, pctBad
		smoothed := c.good == 0 || c.bad == 0
		if smoothed {
			woeGood = (float64(c.good) + smoothing) / float64(goods)
			woeBad = (float64(c.bad) + smoothing) / float64(bads)
		}
		if woeGood == 0 || woeBad == 0 {
			return nil, core.NewNumericDomainError("zero share after smoothing")
		}

		levelWOE := math.Log(woeGood / woeBad)
		levelIV := (woeGood - woeBad) * levelWOE

		report.Levels = append(report.Levels, domainwoe.LevelStats{
			Label:    lvl,
			Good:     c.good,
			Bad:      c.bad,
			Total:    c.good + c.bad,
			PctGood:  pctGood,
			PctBad:   pctBad,
			WOE:      levelWOE,
			IV:       levelIV,
			Smoothed: smoothed,
		})
		report.IV += levelIV
		if gap := math.Abs(pctGood - pctBad); gap > maxGap {
			maxGap = gap
		}
	}
	report.Efficiency = maxGap / 2
	return report, nil
}
