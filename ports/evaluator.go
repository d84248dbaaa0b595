package ports

import (
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
)

// Evaluator scores an estimate against a reference dataset.
type Evaluator interface {
	// Evaluate computes exactly the named metrics. Both datasets must
	// have identical shape. An unknown metric name fails the whole
	// call; no partial report is returned.
	Evaluate(reference, estimate *dataset.SeismicDataset, names []string) (*pipeline.MetricReport, error)
}
