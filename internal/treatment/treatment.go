// Package treatment implements the cap/floor/impute step: numeric values are
// bounded to caller-chosen quantiles of the non-missing data and missing
// entries are replaced with a caller-supplied fallback.
package treatment

import (
	"math"

	"scorecard/domain/core"
	"scorecard/internal/quantile"

	"github.com/montanaflynn/stats"
)

// Treat caps values above the qHigh quantile, floors values below the qLow
// quantile, and replaces missing (NaN) entries with imputeValue. Quantiles
// are computed over the non-missing values only; the imputed fallback is not
// part of that computation and is not itself capped or floored.
//
// The returned slice has the same length as the input, contains no NaN, and
// every originally non-missing value lies within [Q(qLow), Q(qHigh)].
func Treat(values []float64, qLow, qHigh float64, imputeValue float64) ([]float64, error) {
	if qLow < 0 || qHigh > 1 || qLow >= qHigh {
		return nil, core.NewInvalidQuantileError(qLow)
	}
	if math.IsNaN(imputeValue) {
		return nil, core.NewNumericDomainError("impute value is NaN")
	}

	bounds, err := quantile.Points(values, []float64{qLow, qHigh})
	if err != nil {
		return nil, err
	}
	floor, ceiling := bounds[0], bounds[1]

	out := make([]float64, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = imputeValue
		case v < floor:
			out[i] = floor
		case v > ceiling:
			out[i] = ceiling
		default:
			out[i] = v
		}
	}
	return out, nil
}

// Median returns the median of the non-missing values, the conventional
// impute fallback for continuous predictors.
func Median(values []float64) (float64, error) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	if len(clean) == 0 {
		return math.NaN(), core.ErrAllMissing
	}
	return stats.Median(clean)
}
