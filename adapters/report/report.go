// Package report persists benchmark summaries. Three sinks share one
// tabular layout: an xlsx workbook for inspection, a flat CSV of the
// aggregate rows for diffing, and a JSON document for machine
// consumption.
package report

import (
	"fmt"
	"sort"
	"strings"

	"seisrec/domain/pipeline"
	"seisrec/internal/errors"
	"seisrec/ports"
)

// Format names accepted by ForFormat.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ForFormat returns the sink and file extension for a format name.
// includeRuns controls whether per-run detail is written alongside
// the aggregate rows; the CSV sink carries aggregates only and
// ignores it.
func ForFormat(format string, includeRuns bool) (ports.ReportSink, string, error) {
	switch strings.ToLower(format) {
	case FormatXLSX:
		return NewExcelWriter(includeRuns), ".xlsx", nil
	case FormatCSV:
		return NewCSVWriter(), ".csv", nil
	case FormatJSON:
		return NewJSONWriter(includeRuns), ".json", nil
	default:
		return nil, "", errors.ConfigInvalid(fmt.Sprintf("unknown report format %q (valid: xlsx, csv, json)", format))
	}
}

var summaryHeaders = []string{"pipeline", "metric", "mean", "std", "min", "max", "runs"}

func summaryRows(summary *pipeline.BenchmarkSummary) [][]interface{} {
	rows := make([][]interface{}, 0, len(summary.Rows))
	for _, row := range summary.Rows {
		rows = append(rows, []interface{}{
			row.Pipeline, row.Metric, row.Mean, row.Std, row.Min, row.Max, row.Runs,
		})
	}
	return rows
}

// suiteRows pins the options that generated the summary, so a reader
// of any sink can reproduce the sweep.
func suiteRows(summary *pipeline.BenchmarkSummary) [][]interface{} {
	return [][]interface{}{
		{"version", summary.Version},
		{"created_at", summary.CreatedAt.String()},
		{"n_traces", summary.Data.NumTraces},
		{"n_samples", summary.Data.NumSamples},
		{"dt", summary.Data.Dt},
		{"noise_level", summary.Data.NoiseLevel},
		{"wavelet_freq", summary.Data.WaveletFreq},
		{"seed", summary.Data.Seed},
		{"mask_density", summary.MaskDensity},
	}
}

// metricColumns returns the union of metric names across runs, sorted
// so the run table layout is stable.
func metricColumns(summary *pipeline.BenchmarkSummary) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range summary.Reports {
		if r.Metrics == nil {
			continue
		}
		for _, name := range r.Metrics.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

func runGrid(summary *pipeline.BenchmarkSummary) ([]string, [][]interface{}) {
	metrics := metricColumns(summary)
	headers := append([]string{
		"run_id", "pipeline", "fingerprint", "elapsed_ms",
		"converged", "iterations", "rel_change",
	}, metrics...)

	rows := make([][]interface{}, 0, len(summary.Reports))
	for i := range summary.Reports {
		r := &summary.Reports[i]
		row := []interface{}{
			r.RunID().String(),
			r.Pipeline(),
			runFingerprint(r),
			float64(r.Elapsed.Nanoseconds()) / 1e6,
		}
		if r.Convergence != nil {
			row = append(row, r.Convergence.Converged, r.Convergence.Iterations, r.Convergence.RelChange)
		} else {
			row = append(row, "", "", "")
		}
		for _, name := range metrics {
			if r.Metrics != nil {
				if v, ok := r.Metrics.Get(name); ok {
					row = append(row, v)
					continue
				}
			}
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return headers, rows
}

func runFingerprint(r *pipeline.RunReport) string {
	if r.Manifest == nil {
		return ""
	}
	return r.Manifest.Fingerprint.String()
}
