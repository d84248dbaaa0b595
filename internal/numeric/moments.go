package numeric

import (
	"github.com/montanaflynn/stats"

	"seisrec/domain/core"
)

// Moment helpers fix the population (biased) convention everywhere so
// metric values do not depend on which backend computed them.

// Mean returns the arithmetic mean of x.
func Mean(x []float64) (float64, error) {
	m, err := stats.Mean(x)
	if err != nil {
		return 0, core.NewDataError("mean of empty input")
	}
	return m, nil
}

// Variance returns the population variance of x.
func Variance(x []float64) (float64, error) {
	v, err := stats.PopulationVariance(x)
	if err != nil {
		return 0, core.NewDataError("variance of empty input")
	}
	return v, nil
}

// Covariance returns the population covariance of x and y.
func Covariance(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, core.NewDimensionError("covariance input", 1, len(x), 1, len(y))
	}
	c, err := stats.CovariancePopulation(x, y)
	if err != nil {
		return 0, core.NewDataError("covariance of empty input")
	}
	return c, nil
}

// Median returns the median of x.
func Median(x []float64) (float64, error) {
	m, err := stats.Median(x)
	if err != nil {
		return 0, core.NewDataError("median of empty input")
	}
	return m, nil
}
