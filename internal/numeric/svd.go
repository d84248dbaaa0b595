package numeric

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrSVDFailed reports that the factorization did not converge.
var ErrSVDFailed = errors.New("numeric: svd factorization did not converge")

// SVD computes the thin singular value decomposition A = U diag(S) Vᵀ.
// Singular values are non-negative and sorted descending.
func SVD(a *mat.Dense) (u *mat.Dense, s []float64, v *mat.Dense, err error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, nil, nil, ErrSVDFailed
	}
	s = svd.Values(nil)
	u = &mat.Dense{}
	v = &mat.Dense{}
	svd.UTo(u)
	svd.VTo(v)
	return u, s, v, nil
}

// SingularValues computes only the singular values of a, descending.
func SingularValues(a *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDNone); !ok {
		return nil, ErrSVDFailed
	}
	return svd.Values(nil), nil
}

// MaxSingularValue returns the spectral norm of a.
func MaxSingularValue(a *mat.Dense) (float64, error) {
	s, err := SingularValues(a)
	if err != nil {
		return 0, err
	}
	if len(s) == 0 {
		return 0, nil
	}
	return s[0], nil
}
