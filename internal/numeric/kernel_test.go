package numeric

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"seisrec/domain/core"
)

func TestSoftThreshold(t *testing.T) {
	x := []float64{3, -3, 0.5, -0.5, 0, 1}
	got, err := SoftThreshold(x, 1)
	if err != nil {
		t.Fatalf("SoftThreshold failed: %v", err)
	}
	want := []float64{2, -2, 0, 0, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if x[0] != 3 {
		t.Error("input slice must not be mutated")
	}
}

func TestSoftThresholdZeroTauIsIdentity(t *testing.T) {
	x := []float64{1.5, -2.25, 0, 1e-12}
	got, err := SoftThreshold(x, 0)
	if err != nil {
		t.Fatalf("SoftThreshold failed: %v", err)
	}
	for i := range x {
		if got[i] != x[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], x[i])
		}
	}
}

func TestSoftThresholdRejectsNegativeTau(t *testing.T) {
	_, err := SoftThreshold([]float64{1}, -0.1)
	if err == nil {
		t.Fatal("Expected error for negative threshold, got none")
	}
	if !core.IsInvalidConfig(err) {
		t.Errorf("Expected invalid config error, got %v", err)
	}
}

func TestRelativeChangeDense(t *testing.T) {
	prev := mat.NewDense(2, 2, []float64{1, 1, 1, 1})
	next := mat.NewDense(2, 2, []float64{1.1, 1.1, 1.1, 1.1})

	got := RelativeChangeDense(next, prev)
	// ||diff||_F = 0.2, ||prev||_F = 2.
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("Expected relative change 0.1, got %v", got)
	}

	if rc := RelativeChangeDense(prev, prev); rc != 0 {
		t.Errorf("Expected zero change for identical matrices, got %v", rc)
	}
}

func TestRelativeChangeDenseZeroPrev(t *testing.T) {
	prev := mat.NewDense(2, 2, nil)
	next := mat.NewDense(2, 2, []float64{1, 0, 0, 0})

	got := RelativeChangeDense(next, prev)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("Expected finite ratio against zero matrix, got %v", got)
	}
	t.Logf("ratio against zero matrix: %g", got)
}

func TestRelativeChangeVec(t *testing.T) {
	prev := []float64{3, 4}
	next := []float64{3, 4.5}

	got := RelativeChangeVec(next, prev)
	if math.Abs(got-0.1) > 1e-9 {
		t.Errorf("Expected relative change 0.1, got %v", got)
	}
}

func TestMaxAbs(t *testing.T) {
	if got := MaxAbs(nil); got != 0 {
		t.Errorf("Expected 0 for empty input, got %v", got)
	}
	if got := MaxAbs([]float64{1, -5, 3}); got != 5 {
		t.Errorf("Expected 5, got %v", got)
	}
}

func TestDenseFromRowsRoundTrip(t *testing.T) {
	rows := [][]float64{{1, 2, 3}, {4, 5, 6}}
	a, err := DenseFromRows(rows)
	if err != nil {
		t.Fatalf("DenseFromRows failed: %v", err)
	}
	r, c := a.Dims()
	if r != 2 || c != 3 {
		t.Fatalf("Expected 2x3, got %dx%d", r, c)
	}

	back := RowsFromDense(a)
	for i := range rows {
		for j := range rows[i] {
			if back[i][j] != rows[i][j] {
				t.Errorf("(%d,%d): got %v, want %v", i, j, back[i][j], rows[i][j])
			}
		}
	}

	// The copies must be independent of the matrix.
	back[0][0] = 99
	if a.At(0, 0) != 1 {
		t.Error("RowsFromDense must copy, not alias")
	}
}

func TestDenseFromRowsRejectsBadShapes(t *testing.T) {
	if _, err := DenseFromRows(nil); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("Expected empty dataset error, got %v", err)
	}
	if _, err := DenseFromRows([][]float64{{}}); !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("Expected empty dataset error for empty row, got %v", err)
	}
	_, err := DenseFromRows([][]float64{{1, 2}, {3}})
	if err == nil {
		t.Fatal("Expected error for ragged rows, got none")
	}
	if !core.IsInvalidData(err) {
		t.Errorf("Expected invalid data error, got %v", err)
	}
}

func TestNorms(t *testing.T) {
	if got := VecNorm([]float64{3, 4}); math.Abs(got-5) > 1e-12 {
		t.Errorf("Expected vector norm 5, got %v", got)
	}
	a := mat.NewDense(2, 2, []float64{1, 2, 2, 4})
	if got := FrobeniusNorm(a); math.Abs(got-5) > 1e-12 {
		t.Errorf("Expected Frobenius norm 5, got %v", got)
	}
}
