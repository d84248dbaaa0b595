package ports

import "seisrec/domain/pipeline"

// ReportSink persists a benchmark summary to some output format.
type ReportSink interface {
	// WriteSummary writes the summary to path, creating or replacing
	// the file.
	WriteSummary(path string, summary *pipeline.BenchmarkSummary) error
}
