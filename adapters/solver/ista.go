// Package solver implements the recovery algorithms behind the
// pipeline model stage: ISTA matrix completion, FISTA sparse recovery
// and Wiener spectral denoising. All three share the numeric kernel
// so thresholds, norms and convergence ratios are computed one way.
package solver

import (
	"gonum.org/v1/gonum/mat"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
	"seisrec/internal"
	"seisrec/internal/numeric"
)

// MatrixCompletion fills unobserved entries of a partially sampled
// matrix by iterative singular value thresholding (ISTA on the
// nuclear-norm relaxation). The masked-projection gradient has
// spectral norm at most one, so the step size is fixed at L = 1.
type MatrixCompletion struct {
	lambda  float64
	maxIter int
	tol     float64
	log     *internal.Logger
}

// NewMatrixCompletion validates the solver parameters up front so a
// bad configuration fails before any data is touched.
func NewMatrixCompletion(lambda float64, maxIter int, tol float64) (*MatrixCompletion, error) {
	if lambda < 0 {
		return nil, core.NewConfigError("lambda", "must be >= 0")
	}
	if maxIter < 1 {
		return nil, core.NewConfigError("max_iter", "must be >= 1")
	}
	if tol <= 0 {
		return nil, core.NewConfigError("tol", "must be > 0")
	}
	return &MatrixCompletion{
		lambda:  lambda,
		maxIter: maxIter,
		tol:     tol,
		log:     internal.DefaultLogger,
	}, nil
}

// Complete recovers the full matrix from the entries marked observed
// in mask. Unobserved entries of observed are ignored. Hitting the
// iteration cap is not an error: the last iterate is returned and the
// convergence info records Converged=false.
func (s *MatrixCompletion) Complete(observed *mat.Dense, mask *dataset.ObservationMask) (*mat.Dense, *pipeline.ConvergenceInfo, error) {
	rows, cols := observed.Dims()
	if mask.Rows() != rows || mask.Cols() != cols {
		return nil, nil, core.NewDimensionError("mask", mask.Rows(), mask.Cols(), rows, cols)
	}

	// Start from the observed entries, zero where missing.
	x := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if mask.Observed(i, j) {
				x.Set(i, j, observed.At(i, j))
			}
		}
	}

	const lipschitz = 1.0
	tau := s.lambda / lipschitz

	info := &pipeline.ConvergenceInfo{}
	z := mat.NewDense(rows, cols, nil)
	for iter := 0; iter < s.maxIter; iter++ {
		// Gradient step restricted to observed entries:
		// Z = X - mask .* (X - observed) / L.
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				v := x.At(i, j)
				if mask.Observed(i, j) {
					v -= (x.At(i, j) - observed.At(i, j)) / lipschitz
				}
				z.Set(i, j, v)
			}
		}

		u, sv, v, err := numeric.SVD(z)
		if err != nil {
			return nil, nil, err
		}
		shrunk, err := numeric.SoftThreshold(sv, tau)
		if err != nil {
			return nil, nil, err
		}
		xNew := scaledOuter(u, shrunk, v)

		info.Iterations = iter + 1
		info.RelChange = numeric.RelativeChangeDense(xNew, x)
		x = xNew
		if info.RelChange < s.tol {
			info.Converged = true
			break
		}
	}

	if !info.Converged {
		s.log.Warn("matrix completion stopped at iteration cap %d (rel change %.3e, tol %.3e)",
			s.maxIter, info.RelChange, s.tol)
	}
	return x, info, nil
}

// scaledOuter reassembles U * diag(s) * V^T from a thin SVD.
func scaledOuter(u *mat.Dense, s []float64, v *mat.Dense) *mat.Dense {
	ur, k := u.Dims()
	vr, _ := v.Dims()

	us := mat.NewDense(ur, k, nil)
	for j := 0; j < k; j++ {
		for i := 0; i < ur; i++ {
			us.Set(i, j, u.At(i, j)*s[j])
		}
	}
	out := mat.NewDense(ur, vr, nil)
	out.Mul(us, v.T())
	return out
}
