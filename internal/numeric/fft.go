package numeric

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of a real signal.
func FFT(x []float64) []complex128 {
	return fft.FFTReal(x)
}

// IFFT computes the inverse discrete Fourier transform.
func IFFT(x []complex128) []complex128 {
	return fft.IFFT(x)
}

// IFFTReal computes the inverse transform and keeps only real parts,
// the usual final step when filtering a real signal in the frequency
// domain.
func IFFTReal(x []complex128) []float64 {
	y := fft.IFFT(x)
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = real(v)
	}
	return out
}

// PowerSpectrum computes the periodogram P[k] = |Y[k]|^2 / N from a
// spectrum Y of length N.
func PowerSpectrum(spectrum []complex128) []float64 {
	n := float64(len(spectrum))
	p := make([]float64, len(spectrum))
	for i, v := range spectrum {
		m := cmplx.Abs(v)
		p[i] = m * m / n
	}
	return p
}
