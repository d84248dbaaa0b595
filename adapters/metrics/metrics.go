// Package metrics scores recovered datasets against a reference. Each
// quality metric is a small self-contained scorer; the engine owns the
// registry, validates shapes once, and dispatches by name.
package metrics

import (
	"fmt"
	"strings"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
)

// QualityMetric scores an estimate against a reference. Inputs are
// flattened sample slices of equal, non-zero length; validation
// happens in the engine before any scorer runs.
type QualityMetric interface {
	Name() string
	Description() string
	Score(reference, estimate []float64) float64
}

// Engine evaluates named metrics over datasets.
type Engine struct {
	metrics []QualityMetric
	byName  map[string]QualityMetric
}

// NewEngine registers the four built-in metrics.
func NewEngine() *Engine {
	e := &Engine{byName: make(map[string]QualityMetric)}
	for _, m := range []QualityMetric{
		NewSNR(),
		NewMSE(),
		NewPSNR(),
		NewSSIM(),
	} {
		e.metrics = append(e.metrics, m)
		e.byName[m.Name()] = m
	}
	return e
}

// Names returns the registered metric names in registration order.
func (e *Engine) Names() []string {
	names := make([]string, len(e.metrics))
	for i, m := range e.metrics {
		names[i] = m.Name()
	}
	return names
}

// Evaluate computes exactly the requested metrics. All names are
// resolved before any value is computed, so an unknown name never
// yields a partial report.
func (e *Engine) Evaluate(reference, estimate *dataset.SeismicDataset, names []string) (*pipeline.MetricReport, error) {
	if len(names) == 0 {
		return nil, core.NewConfigError("metrics", "at least one metric name is required")
	}
	if reference.NumTraces() != estimate.NumTraces() || reference.NumSamples() != estimate.NumSamples() {
		return nil, core.NewDimensionError("estimate",
			estimate.NumTraces(), estimate.NumSamples(),
			reference.NumTraces(), reference.NumSamples())
	}

	selected := make([]QualityMetric, 0, len(names))
	for _, name := range names {
		m, ok := e.byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q (valid: %s)",
				core.ErrUnknownMetric, name, strings.Join(e.Names(), ", "))
		}
		selected = append(selected, m)
	}

	ref := flatten(reference)
	est := flatten(estimate)
	report := &pipeline.MetricReport{Values: make(map[string]float64, len(selected))}
	for _, m := range selected {
		report.Values[m.Name()] = m.Score(ref, est)
	}
	return report, nil
}

// EvaluateAll computes every registered metric.
func (e *Engine) EvaluateAll(reference, estimate *dataset.SeismicDataset) (*pipeline.MetricReport, error) {
	return e.Evaluate(reference, estimate, e.Names())
}

func flatten(ds *dataset.SeismicDataset) []float64 {
	out := make([]float64, 0, ds.NumTraces()*ds.NumSamples())
	for i := 0; i < ds.NumTraces(); i++ {
		out = append(out, ds.Trace(i)...)
	}
	return out
}

// meanSquaredError is shared by the error-based metrics so they all
// agree on the residual.
func meanSquaredError(reference, estimate []float64) float64 {
	var sum float64
	for i := range reference {
		d := reference[i] - estimate[i]
		sum += d * d
	}
	return sum / float64(len(reference))
}
