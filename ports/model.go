package ports

import (
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
)

// Model is the pipeline's model stage: one recovery algorithm applied
// to a whole dataset.
type Model interface {
	// Name identifies the model in logs and run reports.
	Name() string

	// Apply runs the model and returns a new dataset of the same
	// shape. The mask is consulted only by matrix completion (nil
	// means fully observed); other models ignore it. Convergence info
	// is nil for non-iterative models.
	Apply(ds *dataset.SeismicDataset, mask *dataset.ObservationMask) (*dataset.SeismicDataset, *pipeline.ConvergenceInfo, error)
}
