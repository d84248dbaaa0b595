package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"seisrec/domain/core"
	"seisrec/domain/pipeline"
	"seisrec/internal"
	"seisrec/internal/numeric"
)

// CompressiveSensing solves the l1-regularized least squares problem
//
//	min_x 0.5*||A*x - y||^2 + lambda*||x||_1
//
// with FISTA. The momentum sequence t_{k+1} = (1+sqrt(1+4t_k^2))/2 is
// what separates it from plain ISTA and is always applied.
type CompressiveSensing struct {
	lambda  float64
	maxIter int
	tol     float64
	log     *internal.Logger
}

// NewCompressiveSensing validates the solver parameters.
func NewCompressiveSensing(lambda float64, maxIter int, tol float64) (*CompressiveSensing, error) {
	if lambda < 0 {
		return nil, core.NewConfigError("lambda", "must be >= 0")
	}
	if maxIter < 1 {
		return nil, core.NewConfigError("max_iter", "must be >= 1")
	}
	if tol <= 0 {
		return nil, core.NewConfigError("tol", "must be > 0")
	}
	return &CompressiveSensing{
		lambda:  lambda,
		maxIter: maxIter,
		tol:     tol,
		log:     internal.DefaultLogger,
	}, nil
}

// Recover estimates the sparse vector x from measurements y = A*x.
// The step size is 1/L with L the squared largest singular value of
// A, computed once before the loop.
func (s *CompressiveSensing) Recover(y []float64, a *mat.Dense) ([]float64, *pipeline.ConvergenceInfo, error) {
	m, n := a.Dims()
	if len(y) != m {
		return nil, nil, core.NewDimensionError("measurements", len(y), 1, m, 1)
	}

	sigma, err := numeric.MaxSingularValue(a)
	if err != nil {
		return nil, nil, err
	}
	lipschitz := sigma * sigma
	if lipschitz == 0 {
		// Zero operator: keep the update defined, the result stays 0.
		lipschitz = core.Epsilon
	}

	yVec := mat.NewVecDense(m, nil)
	for i, v := range y {
		yVec.SetVec(i, v)
	}

	grad := func(z []float64) []float64 {
		zVec := mat.NewVecDense(n, nil)
		for i, v := range z {
			zVec.SetVec(i, v)
		}
		r := mat.NewVecDense(m, nil)
		r.MulVec(a, zVec)
		r.SubVec(r, yVec)
		g := mat.NewVecDense(n, nil)
		g.MulVec(a.T(), r)
		return g.RawVector().Data
	}

	x, info, err := s.iterate(n, lipschitz, grad)
	if err != nil {
		return nil, nil, err
	}
	if !info.Converged {
		s.log.Warn("compressive sensing stopped at iteration cap %d (rel change %.3e, tol %.3e)",
			s.maxIter, info.RelChange, s.tol)
	}
	return x, info, nil
}

// RecoverIdentity runs the same iteration with an implicit identity
// measurement matrix, the denoising mode used when whole traces are
// observed directly. L = 1 and the gradient collapses to z - y, so no
// matrix is ever materialized.
func (s *CompressiveSensing) RecoverIdentity(y []float64) ([]float64, *pipeline.ConvergenceInfo, error) {
	if len(y) == 0 {
		return nil, nil, core.NewDataError("empty signal")
	}
	grad := func(z []float64) []float64 {
		g := make([]float64, len(z))
		for i := range z {
			g[i] = z[i] - y[i]
		}
		return g
	}
	x, info, err := s.iterate(len(y), 1.0, grad)
	if err != nil {
		return nil, nil, err
	}
	return x, info, nil
}

// iterate is the shared FISTA loop: gradient step on the momentum
// point z, soft threshold, then the momentum extrapolation.
func (s *CompressiveSensing) iterate(n int, lipschitz float64, grad func([]float64) []float64) ([]float64, *pipeline.ConvergenceInfo, error) {
	tau := s.lambda / lipschitz

	x := make([]float64, n)
	z := make([]float64, n)
	t := 1.0

	info := &pipeline.ConvergenceInfo{}
	u := make([]float64, n)
	for iter := 0; iter < s.maxIter; iter++ {
		g := grad(z)
		for i := range u {
			u[i] = z[i] - g[i]/lipschitz
		}
		xNew, err := numeric.SoftThreshold(u, tau)
		if err != nil {
			return nil, nil, err
		}

		info.Iterations = iter + 1
		info.RelChange = numeric.RelativeChangeVec(xNew, x)
		if info.RelChange < s.tol {
			x = xNew
			info.Converged = true
			break
		}

		tNew := (1 + math.Sqrt(1+4*t*t)) / 2
		for i := range z {
			z[i] = xNew[i] + ((t-1)/tNew)*(xNew[i]-x[i])
		}
		x = xNew
		t = tNew
	}
	return x, info, nil
}
