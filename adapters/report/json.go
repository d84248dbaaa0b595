package report

import (
	"encoding/json"
	"os"

	"seisrec/domain/pipeline"
	"seisrec/internal/errors"
	"seisrec/ports"
)

// JSONWriter marshals the whole summary document. With includeRuns
// unset the per-run reports are stripped and only the aggregate rows
// and suite options are kept.
type JSONWriter struct {
	includeRuns bool
}

var _ ports.ReportSink = (*JSONWriter)(nil)

// NewJSONWriter creates a JSON report sink.
func NewJSONWriter(includeRuns bool) *JSONWriter {
	return &JSONWriter{includeRuns: includeRuns}
}

// WriteSummary writes the summary to path, replacing any existing
// file.
func (w *JSONWriter) WriteSummary(path string, summary *pipeline.BenchmarkSummary) error {
	out := *summary
	if !w.includeRuns {
		out.Reports = nil
	}
	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return errors.ReportError(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.ReportError(path, err)
	}
	return nil
}
