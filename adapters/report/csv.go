package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"seisrec/domain/pipeline"
	"seisrec/internal/errors"
	"seisrec/ports"
)

// CSVWriter writes the aggregate rows as one flat CSV table. Per-run
// detail does not fit a single table and is left to the other sinks.
type CSVWriter struct{}

var _ ports.ReportSink = (*CSVWriter)(nil)

// NewCSVWriter creates a CSV report sink.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

// WriteSummary writes the summary rows to path, replacing any
// existing file.
func (w *CSVWriter) WriteSummary(path string, summary *pipeline.BenchmarkSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.ReportError(path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(summaryHeaders); err != nil {
		return errors.ReportError(path, err)
	}
	for _, row := range summary.Rows {
		record := []string{
			row.Pipeline,
			row.Metric,
			fToStr(row.Mean),
			fToStr(row.Std),
			fToStr(row.Min),
			fToStr(row.Max),
			strconv.Itoa(row.Runs),
		}
		if err := cw.Write(record); err != nil {
			return errors.ReportError(path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.ReportError(path, err)
	}
	return nil
}

func fToStr(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
