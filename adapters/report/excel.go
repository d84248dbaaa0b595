package report

import (
	"github.com/xuri/excelize/v2"

	"seisrec/domain/pipeline"
	"seisrec/internal/errors"
	"seisrec/ports"
)

// ExcelWriter writes a benchmark summary workbook: a Summary sheet of
// aggregate rows, a Suite sheet pinning the generating options and,
// when includeRuns is set, a Runs sheet with one row per pipeline run.
type ExcelWriter struct {
	includeRuns bool
}

var _ ports.ReportSink = (*ExcelWriter)(nil)

// NewExcelWriter creates an xlsx report sink.
func NewExcelWriter(includeRuns bool) *ExcelWriter {
	return &ExcelWriter{includeRuns: includeRuns}
}

// WriteSummary writes the workbook to path, replacing any existing
// file.
func (w *ExcelWriter) WriteSummary(path string, summary *pipeline.BenchmarkSummary) error {
	f := excelize.NewFile()

	// A fresh workbook opens on Sheet1; rename it so the aggregate
	// view is the first thing a reader sees.
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return errors.ReportError(path, err)
	}
	if err := writeGrid(f, "Summary", summaryHeaders, summaryRows(summary)); err != nil {
		return errors.ReportError(path, err)
	}

	if _, err := f.NewSheet("Suite"); err != nil {
		return errors.ReportError(path, err)
	}
	if err := writeGrid(f, "Suite", []string{"key", "value"}, suiteRows(summary)); err != nil {
		return errors.ReportError(path, err)
	}

	if w.includeRuns && len(summary.Reports) > 0 {
		if _, err := f.NewSheet("Runs"); err != nil {
			return errors.ReportError(path, err)
		}
		headers, rows := runGrid(summary)
		if err := writeGrid(f, "Runs", headers, rows); err != nil {
			return errors.ReportError(path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ReportError(path, err)
	}
	return nil
}

// writeGrid writes a header row followed by data rows starting at A1.
func writeGrid(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
