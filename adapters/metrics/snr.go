package metrics

import (
	"math"

	"seisrec/domain/core"
	"seisrec/internal/numeric"
)

// SNR measures signal-to-noise ratio in decibels: the power of the
// reference over the power of the residual.
type SNR struct{}

func NewSNR() *SNR { return &SNR{} }

func (s *SNR) Name() string { return "snr" }

func (s *SNR) Description() string {
	return "Signal-to-noise ratio of the estimate in dB; higher is better"
}

func (s *SNR) Score(reference, estimate []float64) float64 {
	squared := make([]float64, len(reference))
	for i, v := range reference {
		squared[i] = v * v
	}
	signalPower, _ := numeric.Mean(squared)
	noisePower := meanSquaredError(reference, estimate)
	return 10 * math.Log10(signalPower/(noisePower+core.Epsilon))
}
