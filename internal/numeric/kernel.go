// Package numeric is the shared numerical kernel: soft-thresholding,
// SVD, 1D FFT and basic statistics used by every solver and metric.
// All operations are deterministic for fixed inputs; stabilized
// denominators use core.Epsilon so results are reproducible across
// backends to fixed tolerances.
package numeric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"seisrec/domain/core"
)

// SoftThreshold applies sign(x)*max(|x|-tau, 0) elementwise. tau = 0
// is the identity; a negative tau is a configuration error.
func SoftThreshold(x []float64, tau float64) ([]float64, error) {
	if tau < 0 {
		return nil, core.NewConfigError("threshold", "must be >= 0")
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = softThresholdValue(v, tau)
	}
	return out, nil
}

func softThresholdValue(x, tau float64) float64 {
	switch {
	case x > tau:
		return x - tau
	case x < -tau:
		return x + tau
	default:
		return 0
	}
}

// FrobeniusNorm returns the Frobenius norm of a.
func FrobeniusNorm(a *mat.Dense) float64 {
	return mat.Norm(a, 2)
}

// VecNorm returns the Euclidean norm of x.
func VecNorm(x []float64) float64 {
	return floats.Norm(x, 2)
}

// RelativeChangeDense computes the shared convergence ratio
// ||next-prev||_F / (||prev||_F + Epsilon).
func RelativeChangeDense(next, prev *mat.Dense) float64 {
	r, c := prev.Dims()
	diff := mat.NewDense(r, c, nil)
	diff.Sub(next, prev)
	return FrobeniusNorm(diff) / (FrobeniusNorm(prev) + core.Epsilon)
}

// RelativeChangeVec computes ||next-prev||_2 / (||prev||_2 + Epsilon).
func RelativeChangeVec(next, prev []float64) float64 {
	diff := make([]float64, len(prev))
	for i := range prev {
		diff[i] = next[i] - prev[i]
	}
	return VecNorm(diff) / (VecNorm(prev) + core.Epsilon)
}

// MaxAbs returns max(|x_i|), 0 for empty input.
func MaxAbs(x []float64) float64 {
	maxv := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > maxv {
			maxv = a
		}
	}
	return maxv
}

// DenseFromRows copies a rectangular row-major [][]float64 into a
// gonum Dense matrix.
func DenseFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, core.ErrEmptyDataset
	}
	nc := len(rows[0])
	a := mat.NewDense(len(rows), nc, nil)
	for i, row := range rows {
		if len(row) != nc {
			return nil, core.NewDataError("ragged rows")
		}
		a.SetRow(i, row)
	}
	return a, nil
}

// RowsFromDense copies a Dense matrix back into row-major slices.
func RowsFromDense(a *mat.Dense) [][]float64 {
	r, c := a.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		copy(rows[i], a.RawRowView(i))
	}
	return rows
}
