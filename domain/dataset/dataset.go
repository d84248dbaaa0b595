// Package dataset holds the seismic data value types: the immutable
// SeismicDataset, observation masks for matrix completion, and the
// deterministic synthetic trace generator used for fixtures.
package dataset

import (
	"encoding/binary"
	"fmt"
	"math"

	"seisrec/domain/core"
)

// SeismicDataset is the primary value type: a dense
// traces-by-samples amplitude matrix with its sampling interval and
// optional per-trace coordinates. Instances are immutable; every
// transform returns a new dataset and no method mutates the receiver.
type SeismicDataset struct {
	traces   [][]float64
	dt       float64
	coords   [][]float64
	metadata map[string]string
}

// New constructs a dataset from a 2D amplitude array and sampling
// interval dt (seconds). The input is deep-copied; the caller keeps
// ownership of traces.
func New(traces [][]float64, dt float64) (*SeismicDataset, error) {
	if dt <= 0 {
		return nil, core.NewConfigError("dt", "must be > 0")
	}
	if len(traces) == 0 || len(traces[0]) == 0 {
		return nil, core.ErrEmptyDataset
	}
	nSamples := len(traces[0])
	copied := make([][]float64, len(traces))
	for i, row := range traces {
		if len(row) != nSamples {
			return nil, core.NewDataError(
				fmt.Sprintf("ragged traces: row %d has %d samples, want %d", i, len(row), nSamples))
		}
		copied[i] = make([]float64, nSamples)
		copy(copied[i], row)
	}
	return &SeismicDataset{traces: copied, dt: dt}, nil
}

// NumTraces returns the number of trace rows.
func (d *SeismicDataset) NumTraces() int {
	return len(d.traces)
}

// NumSamples returns the number of time samples per trace.
func (d *SeismicDataset) NumSamples() int {
	return len(d.traces[0])
}

// Dt returns the sampling interval in seconds.
func (d *SeismicDataset) Dt() float64 {
	return d.dt
}

// Duration returns the time span (n_samples-1)*dt covered by each
// trace: sample k sits at time k*dt, so the last sample is at
// Duration, not beyond it.
func (d *SeismicDataset) Duration() float64 {
	return float64(d.NumSamples()-1) * d.dt
}

// Trace returns a copy of trace i.
func (d *SeismicDataset) Trace(i int) []float64 {
	out := make([]float64, len(d.traces[i]))
	copy(out, d.traces[i])
	return out
}

// Traces returns a deep copy of the amplitude matrix.
func (d *SeismicDataset) Traces() [][]float64 {
	return copyRows(d.traces)
}

// Coords returns a deep copy of the per-trace coordinates, or nil.
func (d *SeismicDataset) Coords() [][]float64 {
	if d.coords == nil {
		return nil
	}
	return copyRows(d.coords)
}

// Metadata returns a copy of the descriptive metadata map.
func (d *SeismicDataset) Metadata() map[string]string {
	out := make(map[string]string, len(d.metadata))
	for k, v := range d.metadata {
		out[k] = v
	}
	return out
}

// WithCoords derives a dataset carrying per-trace coordinates. The
// row count must match the number of traces.
func (d *SeismicDataset) WithCoords(coords [][]float64) (*SeismicDataset, error) {
	if len(coords) != d.NumTraces() {
		return nil, core.NewDataError(
			fmt.Sprintf("coords rows %d do not match %d traces", len(coords), d.NumTraces()))
	}
	next := d.clone()
	next.coords = copyRows(coords)
	return next, nil
}

// WithMetadata derives a dataset with one metadata entry added or
// replaced.
func (d *SeismicDataset) WithMetadata(key, value string) *SeismicDataset {
	next := d.clone()
	if next.metadata == nil {
		next.metadata = make(map[string]string, 1)
	}
	next.metadata[key] = value
	return next
}

// WithTraces derives a dataset with a replacement amplitude matrix,
// keeping dt and metadata. Coordinates are kept only while the trace
// count still matches.
func (d *SeismicDataset) WithTraces(traces [][]float64) (*SeismicDataset, error) {
	next, err := New(traces, d.dt)
	if err != nil {
		return nil, err
	}
	next.metadata = d.Metadata()
	if d.coords != nil && len(d.coords) == next.NumTraces() {
		next.coords = copyRows(d.coords)
	}
	return next, nil
}

// Fingerprint returns a content hash over shape, sampling interval
// and every amplitude bit. Equal fingerprints mean numerically
// identical datasets, which run manifests rely on for replay checks.
func (d *SeismicDataset) Fingerprint() core.DataHash {
	buf := make([]byte, 0, 8*(3+d.NumTraces()*d.NumSamples()))
	var word [8]byte
	put := func(bits uint64) {
		binary.LittleEndian.PutUint64(word[:], bits)
		buf = append(buf, word[:]...)
	}
	put(uint64(d.NumTraces()))
	put(uint64(d.NumSamples()))
	put(math.Float64bits(d.dt))
	for _, row := range d.traces {
		for _, v := range row {
			put(math.Float64bits(v))
		}
	}
	return core.NewDataHash(buf)
}

func (d *SeismicDataset) clone() *SeismicDataset {
	next := &SeismicDataset{
		traces: copyRows(d.traces),
		dt:     d.dt,
	}
	if d.coords != nil {
		next.coords = copyRows(d.coords)
	}
	if d.metadata != nil {
		next.metadata = d.Metadata()
	}
	return next
}

func copyRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}
