package metrics

import (
	"math"

	"seisrec/domain/core"
	"seisrec/internal/numeric"
)

// PSNR is the peak signal-to-noise ratio in decibels, with the peak
// taken from the reference amplitude range.
type PSNR struct{}

func NewPSNR() *PSNR { return &PSNR{} }

func (p *PSNR) Name() string { return "psnr" }

func (p *PSNR) Description() string {
	return "Peak signal-to-noise ratio of the estimate in dB; higher is better"
}

func (p *PSNR) Score(reference, estimate []float64) float64 {
	peak := numeric.MaxAbs(reference)
	mse := meanSquaredError(reference, estimate)
	return 10 * math.Log10(peak*peak/(mse+core.Epsilon))
}
