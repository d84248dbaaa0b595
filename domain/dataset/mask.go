package dataset

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"seisrec/domain/core"
)

// ObservationMask marks which entries of a traces matrix are observed
// (true) versus missing (false). It is consumed only by matrix
// completion; other models ignore it. Masks are constructed per call
// and never mutated after construction.
type ObservationMask struct {
	cells [][]bool
}

// NewMask creates an all-false (nothing observed) mask.
func NewMask(rows, cols int) (*ObservationMask, error) {
	if rows < 1 || cols < 1 {
		return nil, core.NewDataError(fmt.Sprintf("mask shape %dx%d", rows, cols))
	}
	cells := make([][]bool, rows)
	for i := range cells {
		cells[i] = make([]bool, cols)
	}
	return &ObservationMask{cells: cells}, nil
}

// FullMask creates an all-true (fully observed) mask. Running matrix
// completion under a full mask degenerates to plain denoising.
func FullMask(rows, cols int) (*ObservationMask, error) {
	m, err := NewMask(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.cells {
		for j := range m.cells[i] {
			m.cells[i][j] = true
		}
	}
	return m, nil
}

// RandomMask creates a mask where each entry is observed with the
// given density, drawn row-major from a stream seeded with seed, so
// the same arguments always produce the same mask.
func RandomMask(rows, cols int, density float64, seed int64) (*ObservationMask, error) {
	if density < 0 || density > 1 {
		return nil, core.NewConfigError("density", "must be in [0, 1]")
	}
	m, err := NewMask(rows, cols)
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(seed))
	for i := range m.cells {
		for j := range m.cells[i] {
			m.cells[i][j] = rng.Float64() < density
		}
	}
	return m, nil
}

// MaskFromRows copies a rectangular bool matrix into a mask.
func MaskFromRows(cells [][]bool) (*ObservationMask, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, core.NewDataError("empty mask")
	}
	cols := len(cells[0])
	copied := make([][]bool, len(cells))
	for i, row := range cells {
		if len(row) != cols {
			return nil, core.NewDataError(
				fmt.Sprintf("ragged mask: row %d has %d cols, want %d", i, len(row), cols))
		}
		copied[i] = make([]bool, cols)
		copy(copied[i], row)
	}
	return &ObservationMask{cells: copied}, nil
}

// Rows returns the number of mask rows.
func (m *ObservationMask) Rows() int {
	return len(m.cells)
}

// Cols returns the number of mask columns.
func (m *ObservationMask) Cols() int {
	return len(m.cells[0])
}

// Observed reports whether entry (i, j) is observed.
func (m *ObservationMask) Observed(i, j int) bool {
	return m.cells[i][j]
}

// Count returns the number of observed entries.
func (m *ObservationMask) Count() int {
	n := 0
	for i := range m.cells {
		for _, v := range m.cells[i] {
			if v {
				n++
			}
		}
	}
	return n
}

// Matches reports whether the mask shape equals the dataset shape.
func (m *ObservationMask) Matches(d *SeismicDataset) bool {
	return m.Rows() == d.NumTraces() && m.Cols() == d.NumSamples()
}

// Fingerprint returns a content hash over the mask shape and cells.
func (m *ObservationMask) Fingerprint() core.DataHash {
	buf := make([]byte, 0, 16+m.Rows()*m.Cols())
	var word [8]byte
	binary.LittleEndian.PutUint64(word[:], uint64(m.Rows()))
	buf = append(buf, word[:]...)
	binary.LittleEndian.PutUint64(word[:], uint64(m.Cols()))
	buf = append(buf, word[:]...)
	for i := range m.cells {
		for _, v := range m.cells[i] {
			if v {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		}
	}
	return core.NewDataHash(buf)
}
