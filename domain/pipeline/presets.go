package pipeline

import (
	"fmt"
	"strings"

	"seisrec/domain/core"
)

// Preset names recognized by FromPreset.
const (
	PresetMatrixCompletion = "matrix_completion"
	PresetWiener           = "wiener"
	PresetFISTA            = "fista"
)

// PresetNames returns the valid preset names in a fixed order.
func PresetNames() []string {
	return []string{PresetMatrixCompletion, PresetWiener, PresetFISTA}
}

// FromPreset returns one of the hard-coded pipeline configurations.
// Presets never change input shape: trace count and sample count are
// preserved through every step.
func FromPreset(name string) (*PipelineConfig, error) {
	switch name {
	case PresetMatrixCompletion:
		return &PipelineConfig{
			Name:       PresetMatrixCompletion,
			Preprocess: []PreprocessStep{RemoveDCStep{}},
			Model:      MatrixCompletionModel{Lambda: 0.1, MaxIter: 100, Tol: 1e-6},
		}, nil
	case PresetWiener:
		return &PipelineConfig{
			Name:       PresetWiener,
			Preprocess: []PreprocessStep{RemoveDCStep{}},
			Model:      WienerModel{},
		}, nil
	case PresetFISTA:
		return &PipelineConfig{
			Name:       PresetFISTA,
			Preprocess: []PreprocessStep{RemoveDCStep{}},
			Model:      CompressiveSensingModel{Lambda: 0.1, MaxIter: 100, Tol: 1e-6},
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %s)",
			core.ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
	}
}
