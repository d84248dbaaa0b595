package numeric

import (
	"seisrec/domain/core"
)

// Bandpass keeps spectral components with frequency magnitude inside
// [low, high] Hz and zeroes the rest. The mask is applied symmetrically
// around the Nyquist bin, so real input stays real after the inverse
// transform (zero-phase filtering).
func Bandpass(x []float64, dt, low, high float64) ([]float64, error) {
	if dt <= 0 {
		return nil, core.NewConfigError("dt", "must be > 0")
	}
	if low < 0 || high <= low {
		return nil, core.NewConfigError("band", "requires 0 <= low < high")
	}
	if len(x) == 0 {
		return nil, core.NewDataError("empty signal")
	}

	spectrum := FFT(x)
	n := len(spectrum)
	df := 1 / (float64(n) * dt)
	for k := range spectrum {
		f := float64(k) * df
		if k > n/2 {
			f = float64(n-k) * df
		}
		if f < low || f > high {
			spectrum[k] = 0
		}
	}
	return IFFTReal(spectrum), nil
}
