// Package pipeline defines the closed pipeline configuration model:
// tagged step and model variants, their JSON encoding, hard-coded
// presets, and the report value types produced by runs. Dispatch over
// variants is by type switch, never by string comparison, so an
// unhandled variant is a compile-visible default branch rather than a
// silent fallthrough.
package pipeline

import (
	"fmt"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
)

// PreprocessStep is the closed set of preprocessing transforms.
type PreprocessStep interface {
	preprocessStep()
	StepName() string
}

// PostprocessStep is the closed set of postprocessing transforms.
type PostprocessStep interface {
	postprocessStep()
	StepName() string
}

// ModelSpec is the closed set of model selections; a config carries
// exactly one.
type ModelSpec interface {
	modelSpec()
	ModelName() string
}

// NormalizeStep rescales amplitudes globally. Valid in both the
// preprocessing and postprocessing lists.
type NormalizeStep struct {
	Method dataset.NormMethod `json:"method"`
}

func (NormalizeStep) preprocessStep()  {}
func (NormalizeStep) postprocessStep() {}

// StepName returns the serialized step tag.
func (NormalizeStep) StepName() string { return "normalize" }

// BandpassStep keeps only frequency content inside [Low, High] Hz.
type BandpassStep struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (BandpassStep) preprocessStep() {}

// StepName returns the serialized step tag.
func (BandpassStep) StepName() string { return "bandpass" }

// TimeWindowStep crops traces to the samples inside [T0, T1] seconds.
type TimeWindowStep struct {
	T0 float64 `json:"t0"`
	T1 float64 `json:"t1"`
}

func (TimeWindowStep) preprocessStep() {}

// StepName returns the serialized step tag.
func (TimeWindowStep) StepName() string { return "time_window" }

// RemoveDCStep subtracts the per-trace mean.
type RemoveDCStep struct{}

func (RemoveDCStep) preprocessStep() {}

// StepName returns the serialized step tag.
func (RemoveDCStep) StepName() string { return "remove_dc_offset" }

// ClipStep clamps amplitudes to [Min, Max].
type ClipStep struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (ClipStep) postprocessStep() {}

// StepName returns the serialized step tag.
func (ClipStep) StepName() string { return "clip" }

// DenoiseStep runs a Wiener pass with an estimated noise floor.
type DenoiseStep struct{}

func (DenoiseStep) postprocessStep() {}

// StepName returns the serialized step tag.
func (DenoiseStep) StepName() string { return "denoise" }

// MatrixCompletionModel selects nuclear-norm matrix completion (ISTA).
type MatrixCompletionModel struct {
	Lambda  float64 `json:"lambda"`
	MaxIter int     `json:"max_iter"`
	Tol     float64 `json:"tol"`
}

func (MatrixCompletionModel) modelSpec() {}

// ModelName returns the serialized model tag.
func (MatrixCompletionModel) ModelName() string { return "matrix_completion" }

// CompressiveSensingModel selects L1 sparse recovery (FISTA), applied
// per trace with an implicit identity measurement matrix when used as
// a denoiser.
type CompressiveSensingModel struct {
	Lambda  float64 `json:"lambda"`
	MaxIter int     `json:"max_iter"`
	Tol     float64 `json:"tol"`
}

func (CompressiveSensingModel) modelSpec() {}

// ModelName returns the serialized model tag.
func (CompressiveSensingModel) ModelName() string { return "compressive_sensing" }

// WienerModel selects frequency-domain Wiener denoising. A nil
// NoiseVar means the noise floor is estimated per trace.
type WienerModel struct {
	NoiseVar *float64 `json:"noise_var,omitempty"`
}

func (WienerModel) modelSpec() {}

// ModelName returns the serialized model tag.
func (WienerModel) ModelName() string { return "wiener" }

// PipelineConfig describes one recovery pipeline: ordered
// preprocessing, exactly one model, ordered postprocessing. Configs
// are immutable once built and validated.
type PipelineConfig struct {
	Name        string
	Preprocess  []PreprocessStep
	Model       ModelSpec
	Postprocess []PostprocessStep
}

// Validate checks every variant's parameters. It runs at pipeline
// construction so invalid configs never reach a solver.
func (c *PipelineConfig) Validate() error {
	if c.Model == nil {
		return core.NewConfigError("model", "is required")
	}
	switch m := c.Model.(type) {
	case MatrixCompletionModel:
		if err := validateSolverParams(m.Lambda, m.MaxIter, m.Tol); err != nil {
			return err
		}
	case CompressiveSensingModel:
		if err := validateSolverParams(m.Lambda, m.MaxIter, m.Tol); err != nil {
			return err
		}
	case WienerModel:
		if m.NoiseVar != nil && *m.NoiseVar < 0 {
			return core.NewConfigError("noise_var", "must be >= 0")
		}
	default:
		return fmt.Errorf("%w: %T", core.ErrUnknownModel, c.Model)
	}
	for _, s := range c.Preprocess {
		if err := validatePreprocess(s); err != nil {
			return err
		}
	}
	for _, s := range c.Postprocess {
		if err := validatePostprocess(s); err != nil {
			return err
		}
	}
	return nil
}

func validateSolverParams(lambda float64, maxIter int, tol float64) error {
	if lambda < 0 {
		return core.NewConfigError("lambda", "must be >= 0")
	}
	if maxIter < 1 {
		return core.NewConfigError("max_iter", "must be >= 1")
	}
	if tol <= 0 {
		return core.NewConfigError("tol", "must be > 0")
	}
	return nil
}

func validatePreprocess(s PreprocessStep) error {
	switch st := s.(type) {
	case NormalizeStep:
		if st.Method != dataset.NormMinMax && st.Method != dataset.NormZScore {
			return core.NewConfigError("normalize method", "not recognized")
		}
	case BandpassStep:
		if st.Low < 0 || st.High <= st.Low {
			return core.NewConfigError("bandpass", fmt.Sprintf("requires 0 <= low < high, got [%g, %g]", st.Low, st.High))
		}
	case TimeWindowStep:
		if st.T0 < 0 || st.T1 <= st.T0 {
			return core.NewConfigError("time_window", fmt.Sprintf("requires 0 <= t0 < t1, got [%g, %g]", st.T0, st.T1))
		}
	case RemoveDCStep:
		// No parameters.
	default:
		return fmt.Errorf("%w: %T", core.ErrUnknownStep, s)
	}
	return nil
}

func validatePostprocess(s PostprocessStep) error {
	switch st := s.(type) {
	case NormalizeStep:
		if st.Method != dataset.NormMinMax && st.Method != dataset.NormZScore {
			return core.NewConfigError("normalize method", "not recognized")
		}
	case ClipStep:
		if st.Min >= st.Max {
			return core.NewConfigError("clip range", fmt.Sprintf("min %g must be < max %g", st.Min, st.Max))
		}
	case DenoiseStep:
		// No parameters.
	default:
		return fmt.Errorf("%w: %T", core.ErrUnknownStep, s)
	}
	return nil
}
