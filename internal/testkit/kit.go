// Package testkit provides deterministic fixtures for solver and
// pipeline tests. Every generator takes an explicit seed so failures
// reproduce exactly.
package testkit

import (
	"math"
	"math/rand"
)

// SeededRand returns a deterministic generator for a named fixture.
func SeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// LowRankMatrix builds rows x cols = U * V^T with U (rows x rank) and
// V (cols x rank) drawn from a standard normal, the standard fixture
// for completion tests.
func LowRankMatrix(rows, cols, rank int, seed int64) [][]float64 {
	rng := SeededRand(seed)

	u := make([][]float64, rows)
	for i := range u {
		u[i] = make([]float64, rank)
		for j := range u[i] {
			u[i][j] = rng.NormFloat64()
		}
	}
	v := make([][]float64, cols)
	for i := range v {
		v[i] = make([]float64, rank)
		for j := range v[i] {
			v[i][j] = rng.NormFloat64()
		}
	}

	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			var sum float64
			for k := 0; k < rank; k++ {
				sum += u[i][k] * v[j][k]
			}
			m[i][j] = sum
		}
	}
	return m
}

// GaussianMatrix fills rows x cols with standard normal entries, used
// as a compressive sensing measurement operator.
func GaussianMatrix(rows, cols int, seed int64) [][]float64 {
	rng := SeededRand(seed)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
		for j := range m[i] {
			m[i][j] = rng.NormFloat64()
		}
	}
	return m
}

// SparseSignal returns a length-n vector with nnz entries well above
// typical shrinkage thresholds: magnitudes in [1, 2) with random sign.
func SparseSignal(n, nnz int, seed int64) []float64 {
	rng := SeededRand(seed)
	x := make([]float64, n)
	placed := 0
	for placed < nnz {
		idx := rng.Intn(n)
		if x[idx] != 0 {
			continue
		}
		v := 1 + rng.Float64()
		if rng.Intn(2) == 1 {
			v = -v
		}
		x[idx] = v
		placed++
	}
	return x
}

// Sinusoid samples sin(2*pi*freq*t) at spacing dt.
func Sinusoid(n int, freq, dt float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return x
}

// AddGaussianNoise returns x plus N(0, sigma^2) samples; x is not
// modified.
func AddGaussianNoise(x []float64, sigma float64, seed int64) []float64 {
	rng := SeededRand(seed)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + sigma*rng.NormFloat64()
	}
	return out
}

// MSE is the mean squared error between two equally long slices,
// handy for quick quality checks in tests.
func MSE(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum / float64(len(a))
}
