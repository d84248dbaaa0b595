package dataset

import (
	"encoding/json"
	"fmt"
	"math"

	"seisrec/domain/core"
)

// NormMethod selects the amplitude normalization applied by Normalize.
type NormMethod int

const (
	// NormMinMax scales by the global maximum absolute amplitude so
	// values land in [-1, 1].
	NormMinMax NormMethod = iota
	// NormZScore subtracts the global mean and divides by the global
	// standard deviation.
	NormZScore
)

// String returns the serialized method name.
func (m NormMethod) String() string {
	switch m {
	case NormMinMax:
		return "minmax"
	case NormZScore:
		return "zscore"
	default:
		return fmt.Sprintf("NormMethod(%d)", int(m))
	}
}

// ParseNormMethod maps a serialized method name to its NormMethod.
func ParseNormMethod(s string) (NormMethod, error) {
	switch s {
	case "minmax":
		return NormMinMax, nil
	case "zscore":
		return NormZScore, nil
	default:
		return 0, core.NewConfigError("normalize method", fmt.Sprintf("%q not recognized", s))
	}
}

// MarshalJSON encodes the method as its serialized name.
func (m NormMethod) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a serialized method name.
func (m *NormMethod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseNormMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Normalize returns a dataset with globally normalized amplitudes.
// Both methods stabilize the divisor with Epsilon, so an all-zero
// dataset normalizes to all zeros instead of failing.
func (d *SeismicDataset) Normalize(method NormMethod) (*SeismicDataset, error) {
	next := d.clone()
	switch method {
	case NormMinMax:
		maxAbs := 0.0
		for _, row := range next.traces {
			for _, v := range row {
				if a := math.Abs(v); a > maxAbs {
					maxAbs = a
				}
			}
		}
		scale := 1.0 / (maxAbs + core.Epsilon)
		for _, row := range next.traces {
			for j := range row {
				row[j] *= scale
			}
		}
	case NormZScore:
		mean, std := globalMoments(next.traces)
		scale := 1.0 / (std + core.Epsilon)
		for _, row := range next.traces {
			for j := range row {
				row[j] = (row[j] - mean) * scale
			}
		}
	default:
		return nil, core.NewConfigError("normalize method", fmt.Sprintf("%d not recognized", int(method)))
	}
	return next, nil
}

// RemoveDCOffset returns a dataset with each trace's mean subtracted.
func (d *SeismicDataset) RemoveDCOffset() *SeismicDataset {
	next := d.clone()
	for _, row := range next.traces {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		mean := sum / float64(len(row))
		for j := range row {
			row[j] -= mean
		}
	}
	return next
}

// Clip returns a dataset with amplitudes clamped to [min, max].
func (d *SeismicDataset) Clip(min, max float64) (*SeismicDataset, error) {
	if min >= max {
		return nil, core.NewConfigError("clip range", fmt.Sprintf("min %g must be < max %g", min, max))
	}
	next := d.clone()
	for _, row := range next.traces {
		for j, v := range row {
			if v < min {
				row[j] = min
			} else if v > max {
				row[j] = max
			}
		}
	}
	return next, nil
}

// TimeWindow returns a dataset keeping only the samples whose time
// k*dt falls inside [t0, t1]. The trace count is unchanged; the
// sample count shrinks to the window.
func (d *SeismicDataset) TimeWindow(t0, t1 float64) (*SeismicDataset, error) {
	if t0 < 0 {
		return nil, core.NewConfigError("t0", "must be >= 0")
	}
	if t1 <= t0 {
		return nil, core.NewConfigError("time window", fmt.Sprintf("t1 %g must be > t0 %g", t1, t0))
	}
	first := int(math.Ceil(t0/d.dt - 1e-12))
	last := int(math.Floor(t1/d.dt + 1e-12))
	if last >= d.NumSamples() {
		last = d.NumSamples() - 1
	}
	if first > last {
		return nil, core.NewDataError(fmt.Sprintf("time window [%g, %g] contains no samples", t0, t1))
	}
	windowed := make([][]float64, d.NumTraces())
	for i, row := range d.traces {
		windowed[i] = make([]float64, last-first+1)
		copy(windowed[i], row[first:last+1])
	}
	next := &SeismicDataset{traces: windowed, dt: d.dt, metadata: d.Metadata()}
	if d.coords != nil {
		next.coords = copyRows(d.coords)
	}
	return next, nil
}

// Subset returns a dataset keeping trace rows [from, to).
func (d *SeismicDataset) Subset(from, to int) (*SeismicDataset, error) {
	if from < 0 || to > d.NumTraces() || from >= to {
		return nil, core.NewDataError(
			fmt.Sprintf("subset [%d, %d) out of range for %d traces", from, to, d.NumTraces()))
	}
	next := &SeismicDataset{
		traces:   copyRows(d.traces[from:to]),
		dt:       d.dt,
		metadata: d.Metadata(),
	}
	if d.coords != nil {
		next.coords = copyRows(d.coords[from:to])
	}
	return next, nil
}

// globalMoments computes the mean and population standard deviation
// over every sample in the matrix.
func globalMoments(rows [][]float64) (mean, std float64) {
	n := 0
	sum := 0.0
	for _, row := range rows {
		for _, v := range row {
			sum += v
			n++
		}
	}
	mean = sum / float64(n)
	ss := 0.0
	for _, row := range rows {
		for _, v := range row {
			dv := v - mean
			ss += dv * dv
		}
	}
	std = math.Sqrt(ss / float64(n))
	return mean, std
}
