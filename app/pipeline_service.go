// Package app assembles validated configs into runnable recovery
// pipelines and provides the benchmark service consumed by cmd/bench.
package app

import (
	"fmt"
	"strconv"
	"time"

	"seisrec/adapters/metrics"
	"seisrec/adapters/solver"
	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
	"seisrec/internal"
	"seisrec/internal/numeric"
	"seisrec/ports"
)

// Pipeline executes one validated recovery config: preprocessing steps
// in order, exactly one model, postprocessing steps in order.
type Pipeline struct {
	name       string
	config     *pipeline.PipelineConfig
	configHash core.ConfigHash
	model      ports.Model
	evaluator  ports.Evaluator
	log        *internal.Logger
}

// NewPipeline validates the config and resolves its model up front, so
// a pipeline that constructs successfully cannot fail on dispatch.
func NewPipeline(cfg *pipeline.PipelineConfig) (*Pipeline, error) {
	if cfg == nil {
		return nil, core.NewConfigError("config", "is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	model, err := solver.ModelFromSpec(cfg.Model)
	if err != nil {
		return nil, err
	}
	configHash, err := cfg.Hash()
	if err != nil {
		return nil, err
	}
	name := cfg.Name
	if name == "" {
		name = model.Name()
	}
	return &Pipeline{
		name:       name,
		config:     cfg,
		configHash: configHash,
		model:      model,
		evaluator:  metrics.NewEngine(),
		log:        internal.DefaultLogger,
	}, nil
}

// FromPreset builds a pipeline from one of the named built-in configs.
func FromPreset(name string) (*Pipeline, error) {
	cfg, err := pipeline.FromPreset(name)
	if err != nil {
		return nil, err
	}
	return NewPipeline(cfg)
}

// Name returns the pipeline name, falling back to the model name when
// the config did not set one.
func (p *Pipeline) Name() string { return p.name }

// Run pushes a dataset through the three stages. The mask describes
// observed entries of the model input, so it must match the dataset
// shape after preprocessing; nil means fully observed. The input
// dataset is never modified.
func (p *Pipeline) Run(ds *dataset.SeismicDataset, mask *dataset.ObservationMask) (*dataset.SeismicDataset, *pipeline.ConvergenceInfo, error) {
	if ds == nil {
		return nil, nil, core.NewDataError("nil dataset")
	}

	cur := ds
	var err error
	for _, step := range p.config.Preprocess {
		if cur, err = applyPreprocess(cur, step); err != nil {
			return nil, nil, fmt.Errorf("preprocess %s: %w", step.StepName(), err)
		}
	}

	out, info, err := p.model.Apply(cur, mask)
	if err != nil {
		return nil, nil, fmt.Errorf("model %s: %w", p.model.Name(), err)
	}
	if info != nil {
		out = out.WithMetadata("solver.converged", strconv.FormatBool(info.Converged)).
			WithMetadata("solver.iterations", strconv.Itoa(info.Iterations))
	}

	for _, step := range p.config.Postprocess {
		if out, err = applyPostprocess(out, step); err != nil {
			return nil, nil, fmt.Errorf("postprocess %s: %w", step.StepName(), err)
		}
	}
	return out, info, nil
}

// RunAndEvaluate runs the pipeline and, when a reference is given,
// scores the output against it with the named metrics. The report's
// manifest fingerprints the config, input data and mask, so archived
// reports can be checked for replayability.
func (p *Pipeline) RunAndEvaluate(ds *dataset.SeismicDataset, mask *dataset.ObservationMask, reference *dataset.SeismicDataset, metricNames []string) (*pipeline.RunReport, error) {
	if ds == nil {
		return nil, core.NewDataError("nil dataset")
	}
	var maskHash core.DataHash
	if mask != nil {
		maskHash = mask.Fingerprint()
	}
	manifest := pipeline.NewRunManifest(p.name, p.configHash, ds.Fingerprint(), maskHash)

	start := time.Now()
	out, info, err := p.Run(ds, mask)
	if err != nil {
		return nil, err
	}
	report := &pipeline.RunReport{
		Manifest:    manifest,
		Convergence: info,
		Elapsed:     time.Since(start),
		Output:      out,
	}
	if reference != nil && len(metricNames) > 0 {
		scores, err := p.evaluator.Evaluate(reference, out, metricNames)
		if err != nil {
			return nil, err
		}
		report.Metrics = scores
	}
	return report, nil
}

func applyPreprocess(ds *dataset.SeismicDataset, step pipeline.PreprocessStep) (*dataset.SeismicDataset, error) {
	switch s := step.(type) {
	case pipeline.NormalizeStep:
		return ds.Normalize(s.Method)
	case pipeline.BandpassStep:
		return bandpassDataset(ds, s.Low, s.High)
	case pipeline.TimeWindowStep:
		return ds.TimeWindow(s.T0, s.T1)
	case pipeline.RemoveDCStep:
		return ds.RemoveDCOffset(), nil
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownStep, step)
	}
}

func applyPostprocess(ds *dataset.SeismicDataset, step pipeline.PostprocessStep) (*dataset.SeismicDataset, error) {
	switch s := step.(type) {
	case pipeline.NormalizeStep:
		return ds.Normalize(s.Method)
	case pipeline.ClipStep:
		return ds.Clip(s.Min, s.Max)
	case pipeline.DenoiseStep:
		w, err := solver.NewWiener(nil)
		if err != nil {
			return nil, err
		}
		return w.DenoiseDataset(ds)
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownStep, step)
	}
}

func bandpassDataset(ds *dataset.SeismicDataset, low, high float64) (*dataset.SeismicDataset, error) {
	out := make([][]float64, ds.NumTraces())
	for i := 0; i < ds.NumTraces(); i++ {
		filtered, err := numeric.Bandpass(ds.Trace(i), ds.Dt(), low, high)
		if err != nil {
			return nil, err
		}
		out[i] = filtered
	}
	return ds.WithTraces(out)
}
