package solver

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"seisrec/domain/core"
	"seisrec/internal/numeric"
	"seisrec/internal/testkit"
)

// measure computes y = A*x for row-major A.
func measure(a [][]float64, x []float64) []float64 {
	y := make([]float64, len(a))
	for i, row := range a {
		var sum float64
		for j, v := range row {
			sum += v * x[j]
		}
		y[i] = sum
	}
	return y
}

// TestNewCompressiveSensingValidation tests parameter validation
func TestNewCompressiveSensingValidation(t *testing.T) {
	tests := []struct {
		name     string
		lambda   float64
		maxIter  int
		tol      float64
		hasError bool
	}{
		{"valid", 0.1, 100, 1e-6, false},
		{"zero lambda allowed", 0, 100, 1e-6, false},
		{"negative lambda", -1, 100, 1e-6, true},
		{"zero max iterations", 0.1, 0, 1e-6, true},
		{"negative tolerance", 0.1, 100, -1, true},
	}

	for _, test := range tests {
		_, err := NewCompressiveSensing(test.lambda, test.maxIter, test.tol)
		if test.hasError && err == nil {
			t.Errorf("%s: expected error, got none", test.name)
		}
		if !test.hasError && err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
		}
	}
}

// TestCompressiveSensingRecoversSparseSignal tests recovery of a
// 3-sparse length-50 signal from 30 Gaussian measurements
func TestCompressiveSensingRecoversSparseSignal(t *testing.T) {
	const (
		n   = 50
		m   = 30
		nnz = 3
	)
	truth := testkit.SparseSignal(n, nnz, 42)
	rows := testkit.GaussianMatrix(m, n, 43)
	a, err := numeric.DenseFromRows(rows)
	if err != nil {
		t.Fatalf("Failed to build measurement matrix: %v", err)
	}
	y := testkit.AddGaussianNoise(measure(rows, truth), 0.05, 44)

	solver, err := NewCompressiveSensing(0.1, 100, 1e-6)
	if err != nil {
		t.Fatalf("Failed to build solver: %v", err)
	}
	x, info, err := solver.Recover(y, a)
	if err != nil {
		t.Fatalf("Recover failed: %v", err)
	}
	if len(x) != n {
		t.Fatalf("Expected solution of length %d, got %d", n, len(x))
	}

	significant := 0
	for _, v := range x {
		if math.Abs(v) > 0.1 {
			significant++
		}
	}
	if significant > 10 {
		t.Errorf("Expected at most 10 significant entries, got %d", significant)
	}

	// The true support must carry most of the energy.
	for i, v := range truth {
		if v != 0 && math.Abs(x[i]) < 0.1 {
			t.Errorf("Expected entry %d on the support to stay significant, got %.4f", i, x[i])
		}
	}
	t.Logf("Recovered sparse signal with %d significant entries after %d iterations (converged=%v)",
		significant, info.Iterations, info.Converged)
}

// TestCompressiveSensingDeterministic tests that repeated runs on the
// same inputs agree exactly
func TestCompressiveSensingDeterministic(t *testing.T) {
	truth := testkit.SparseSignal(40, 4, 9)
	rows := testkit.GaussianMatrix(25, 40, 10)
	y := measure(rows, truth)

	run := func() []float64 {
		a, err := numeric.DenseFromRows(rows)
		if err != nil {
			t.Fatalf("Failed to build measurement matrix: %v", err)
		}
		solver, err := NewCompressiveSensing(0.1, 60, 1e-6)
		if err != nil {
			t.Fatalf("Failed to build solver: %v", err)
		}
		x, _, err := solver.Recover(y, a)
		if err != nil {
			t.Fatalf("Recover failed: %v", err)
		}
		return x
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Expected identical results, entry %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestCompressiveSensingMeasurementMismatch tests rejection of a
// measurement vector whose length differs from the operator rows
func TestCompressiveSensingMeasurementMismatch(t *testing.T) {
	a := mat.NewDense(10, 20, nil)
	y := make([]float64, 9)

	solver, err := NewCompressiveSensing(0.1, 10, 1e-6)
	if err != nil {
		t.Fatalf("Failed to build solver: %v", err)
	}
	_, _, err = solver.Recover(y, a)
	if err == nil {
		t.Fatal("Expected error for mismatched measurements, got none")
	}
	if !core.IsInvalidData(err) {
		t.Errorf("Expected invalid data error, got %v", err)
	}
}

// TestCompressiveSensingIdentityMode tests the implicit-identity
// denoising path: the iteration's fixed point is the soft threshold
// of the input
func TestCompressiveSensingIdentityMode(t *testing.T) {
	y := []float64{1.5, -0.05, 0.3, -2.0, 0.08, 0.0}
	const lambda = 0.1

	solver, err := NewCompressiveSensing(lambda, 50, 1e-9)
	if err != nil {
		t.Fatalf("Failed to build solver: %v", err)
	}
	x, info, err := solver.RecoverIdentity(y)
	if err != nil {
		t.Fatalf("RecoverIdentity failed: %v", err)
	}
	if !info.Converged {
		t.Error("Expected convergence in identity mode")
	}

	want, err := numeric.SoftThreshold(y, lambda)
	if err != nil {
		t.Fatalf("SoftThreshold failed: %v", err)
	}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-8 {
			t.Errorf("Expected entry %d = %.6f, got %.6f", i, want[i], x[i])
		}
	}
}

// TestCompressiveSensingZeroSignal tests that a zero input converges
// immediately to zero
func TestCompressiveSensingZeroSignal(t *testing.T) {
	y := make([]float64, 16)

	solver, err := NewCompressiveSensing(0.1, 50, 1e-6)
	if err != nil {
		t.Fatalf("Failed to build solver: %v", err)
	}
	x, info, err := solver.RecoverIdentity(y)
	if err != nil {
		t.Fatalf("RecoverIdentity failed: %v", err)
	}
	if !info.Converged || info.Iterations != 1 {
		t.Errorf("Expected immediate convergence, got %d iterations (converged=%v)",
			info.Iterations, info.Converged)
	}
	for i, v := range x {
		if v != 0 {
			t.Errorf("Expected zero output, got %v at %d", v, i)
		}
	}
}

// TestCompressiveSensingEmptySignal tests rejection of an empty trace
func TestCompressiveSensingEmptySignal(t *testing.T) {
	solver, err := NewCompressiveSensing(0.1, 10, 1e-6)
	if err != nil {
		t.Fatalf("Failed to build solver: %v", err)
	}
	_, _, err = solver.RecoverIdentity(nil)
	if err == nil {
		t.Fatal("Expected error for empty signal, got none")
	}
	if !core.IsInvalidData(err) {
		t.Errorf("Expected invalid data error, got %v", err)
	}
}
