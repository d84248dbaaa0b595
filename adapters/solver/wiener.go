package solver

import (
	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/internal/numeric"
)

// Wiener attenuates noise in the frequency domain. The filter gain at
// each bin is Ps/(Ps+Pn) with the signal power Ps estimated by
// spectral subtraction; Epsilon stabilizes the ratio so an all-zero
// trace passes through as all zeros.
type Wiener struct {
	noiseVar *float64
}

// NewWiener builds a denoiser. noiseVar is the per-bin noise power;
// nil means estimate it from the upper half of the power spectrum,
// where seismic energy is usually absent.
func NewWiener(noiseVar *float64) (*Wiener, error) {
	if noiseVar != nil && *noiseVar < 0 {
		return nil, core.NewConfigError("noise_var", "must be >= 0")
	}
	return &Wiener{noiseVar: noiseVar}, nil
}

// Denoise filters a single trace and returns a new slice of the same
// length.
func (w *Wiener) Denoise(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, core.NewDataError("empty signal")
	}

	spectrum := numeric.FFT(signal)
	py := numeric.PowerSpectrum(spectrum)

	var pn float64
	if w.noiseVar != nil {
		pn = *w.noiseVar
	} else {
		est, err := numeric.Median(py[len(py)/2:])
		if err != nil {
			return nil, err
		}
		pn = est
	}

	filtered := make([]complex128, len(spectrum))
	for k, bin := range spectrum {
		ps := py[k] - pn
		if ps < 0 {
			ps = 0
		}
		gain := (ps + core.Epsilon) / (ps + pn + core.Epsilon)
		filtered[k] = bin * complex(gain, 0)
	}
	return numeric.IFFTReal(filtered), nil
}

// DenoiseDataset filters every trace independently.
func (w *Wiener) DenoiseDataset(ds *dataset.SeismicDataset) (*dataset.SeismicDataset, error) {
	out := make([][]float64, ds.NumTraces())
	for i := 0; i < ds.NumTraces(); i++ {
		clean, err := w.Denoise(ds.Trace(i))
		if err != nil {
			return nil, err
		}
		out[i] = clean
	}
	return ds.WithTraces(out)
}
