package pipeline

import (
	"sort"
	"time"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
)

// ConvergenceInfo reports how a solver run ended. Non-convergence is
// not an error: the solver returns its best iterate and this record
// is the only signal, so callers wanting a hard failure check
// Converged themselves.
type ConvergenceInfo struct {
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	RelChange  float64 `json:"rel_change"`
}

// MetricReport maps metric names to finite values. Reports are
// all-or-nothing: an evaluator either fills every requested metric or
// returns an error before any value is produced.
type MetricReport struct {
	Values map[string]float64 `json:"values"`
}

// Get returns the named metric value.
func (r *MetricReport) Get(name string) (float64, bool) {
	v, ok := r.Values[name]
	return v, ok
}

// Names returns the metric names in sorted order.
func (r *MetricReport) Names() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunReport is the result of one evaluated pipeline run.
type RunReport struct {
	Manifest    *RunManifest            `json:"manifest"`
	Metrics     *MetricReport           `json:"metrics,omitempty"`
	Convergence *ConvergenceInfo        `json:"convergence,omitempty"`
	Elapsed     time.Duration           `json:"elapsed_ns"`
	Output      *dataset.SeismicDataset `json:"-"`
}

// RunID returns the manifest's run identifier.
func (r *RunReport) RunID() core.RunID {
	if r.Manifest == nil {
		return ""
	}
	return r.Manifest.RunID
}

// Pipeline returns the manifest's pipeline name.
func (r *RunReport) Pipeline() string {
	if r.Manifest == nil {
		return ""
	}
	return r.Manifest.Pipeline
}

// BenchmarkRow aggregates one metric across the repeated runs of one
// pipeline.
type BenchmarkRow struct {
	Pipeline string  `json:"pipeline"`
	Metric   string  `json:"metric"`
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Runs     int     `json:"runs"`
}

// BenchmarkSummary is the serializable artifact of a benchmark suite.
// It carries the synthetic data options and mask density it was run
// with, so a summary alone is enough to reproduce the sweep.
type BenchmarkSummary struct {
	Version     string                   `json:"version"`
	CreatedAt   core.Timestamp           `json:"created_at"`
	Data        dataset.SyntheticOptions `json:"data"`
	MaskDensity float64                  `json:"mask_density"`
	Rows        []BenchmarkRow           `json:"rows"`
	Reports     []RunReport              `json:"runs"`
}

// RowsFor returns the summary rows of one pipeline, in stored order.
func (s *BenchmarkSummary) RowsFor(pipeline string) []BenchmarkRow {
	var out []BenchmarkRow
	for _, row := range s.Rows {
		if row.Pipeline == pipeline {
			out = append(out, row)
		}
	}
	return out
}

// Pipelines returns the distinct pipeline names in row order.
func (s *BenchmarkSummary) Pipelines() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range s.Rows {
		if !seen[row.Pipeline] {
			seen[row.Pipeline] = true
			out = append(out, row.Pipeline)
		}
	}
	return out
}
