package prettytab

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Aggregator reduces an ordered series of numeric values to a scalar.
// Summary calls extract a column (or row) of the table into a series and
// hand it to the aggregator; non-numeric and missing cells are dropped
// before the call, NaN values are passed through.
//
// Configurable aggregations (trimmed means, weighted sums) are ordinary
// closures over this signature.
type Aggregator func(values []float64) float64

// Sum returns the sum of the series. NaN values propagate.
func Sum(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return floats.Sum(values)
}

// Mean returns the arithmetic mean of the series. NaN values propagate.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.Mean(values, nil)
}

// Median returns the midpoint median of the series: the middle value, or
// the mean of the two middle values for an even count. A series containing
// NaN has no defined order and yields NaN.
//
// Computed directly rather than through stat.Quantile, whose cumulant kinds
// interpolate the empirical CDF and disagree with the conventional midpoint
// median on even-length series.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Max returns the largest value of the series. NaN values propagate.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	return floats.Max(values)
}

// Min returns the smallest value of the series. NaN values propagate.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	for _, v := range values {
		if math.IsNaN(v) {
			return math.NaN()
		}
	}
	return floats.Min(values)
}
