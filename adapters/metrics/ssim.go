package metrics

import (
	"seisrec/internal/numeric"
)

// Stability constants from the standard SSIM formulation.
const (
	ssimC1 = 0.01 * 0.01
	ssimC2 = 0.03 * 0.03
)

// SSIM is a global-statistics structural similarity index: one score
// from the overall means, variances and covariance rather than the
// windowed image-processing form. The two are not interchangeable;
// this variant trades locality for a single reproducible number.
type SSIM struct{}

func NewSSIM() *SSIM { return &SSIM{} }

func (s *SSIM) Name() string { return "ssim" }

func (s *SSIM) Description() string {
	return "Global structural similarity between estimate and reference; 1 is identical"
}

func (s *SSIM) Score(reference, estimate []float64) float64 {
	muX, _ := numeric.Mean(reference)
	muY, _ := numeric.Mean(estimate)
	varX, _ := numeric.Variance(reference)
	varY, _ := numeric.Variance(estimate)
	cov, _ := numeric.Covariance(reference, estimate)

	num := (2*muX*muY + ssimC1) * (2*cov + ssimC2)
	den := (muX*muX + muY*muY + ssimC1) * (varX + varY + ssimC2)
	return num / den
}
