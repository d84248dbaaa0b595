package solver

import (
	"fmt"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
	"seisrec/internal"
	"seisrec/internal/numeric"
	"seisrec/ports"
)

// ModelFromSpec builds the model stage for a validated config. The
// switch is exhaustive over the closed set of model specs; a variant
// added without a case here fails loudly instead of being skipped.
func ModelFromSpec(spec pipeline.ModelSpec) (ports.Model, error) {
	switch ms := spec.(type) {
	case pipeline.MatrixCompletionModel:
		s, err := NewMatrixCompletion(ms.Lambda, ms.MaxIter, ms.Tol)
		if err != nil {
			return nil, err
		}
		return &matrixCompletionModel{solver: s}, nil
	case pipeline.CompressiveSensingModel:
		s, err := NewCompressiveSensing(ms.Lambda, ms.MaxIter, ms.Tol)
		if err != nil {
			return nil, err
		}
		return &compressiveSensingModel{solver: s, log: internal.DefaultLogger}, nil
	case pipeline.WienerModel:
		w, err := NewWiener(ms.NoiseVar)
		if err != nil {
			return nil, err
		}
		return &wienerModel{denoiser: w}, nil
	default:
		return nil, fmt.Errorf("%w: %T", core.ErrUnknownModel, spec)
	}
}

// matrixCompletionModel runs ISTA over the whole trace matrix. A nil
// mask means every sample is observed, which degenerates to low-rank
// denoising of the full section.
type matrixCompletionModel struct {
	solver *MatrixCompletion
}

func (m *matrixCompletionModel) Name() string { return "matrix_completion" }

func (m *matrixCompletionModel) Apply(ds *dataset.SeismicDataset, mask *dataset.ObservationMask) (*dataset.SeismicDataset, *pipeline.ConvergenceInfo, error) {
	observed, err := numeric.DenseFromRows(ds.Traces())
	if err != nil {
		return nil, nil, err
	}
	if mask == nil {
		mask, err = dataset.FullMask(ds.NumTraces(), ds.NumSamples())
		if err != nil {
			return nil, nil, err
		}
	} else if !mask.Matches(ds) {
		return nil, nil, core.NewDimensionError("mask", mask.Rows(), mask.Cols(), ds.NumTraces(), ds.NumSamples())
	}

	recovered, info, err := m.solver.Complete(observed, mask)
	if err != nil {
		return nil, nil, err
	}
	out, err := ds.WithTraces(numeric.RowsFromDense(recovered))
	if err != nil {
		return nil, nil, err
	}
	return out, info, nil
}

// compressiveSensingModel denoises trace by trace with an implicit
// identity measurement matrix. The reported convergence info is the
// worst case across traces.
type compressiveSensingModel struct {
	solver *CompressiveSensing
	log    *internal.Logger
}

func (m *compressiveSensingModel) Name() string { return "compressive_sensing" }

func (m *compressiveSensingModel) Apply(ds *dataset.SeismicDataset, _ *dataset.ObservationMask) (*dataset.SeismicDataset, *pipeline.ConvergenceInfo, error) {
	out := make([][]float64, ds.NumTraces())
	agg := &pipeline.ConvergenceInfo{Converged: true}
	stalled := 0
	for i := 0; i < ds.NumTraces(); i++ {
		x, info, err := m.solver.RecoverIdentity(ds.Trace(i))
		if err != nil {
			return nil, nil, err
		}
		out[i] = x
		if info.Iterations > agg.Iterations {
			agg.Iterations = info.Iterations
		}
		if info.RelChange > agg.RelChange {
			agg.RelChange = info.RelChange
		}
		if !info.Converged {
			agg.Converged = false
			stalled++
		}
	}
	if stalled > 0 {
		m.log.Warn("compressive sensing stopped at iteration cap on %d of %d traces", stalled, ds.NumTraces())
	}
	result, err := ds.WithTraces(out)
	if err != nil {
		return nil, nil, err
	}
	return result, agg, nil
}

// wienerModel wraps the spectral denoiser. It is not iterative, so it
// reports no convergence info.
type wienerModel struct {
	denoiser *Wiener
}

func (m *wienerModel) Name() string { return "wiener" }

func (m *wienerModel) Apply(ds *dataset.SeismicDataset, _ *dataset.ObservationMask) (*dataset.SeismicDataset, *pipeline.ConvergenceInfo, error) {
	out, err := m.denoiser.DenoiseDataset(ds)
	if err != nil {
		return nil, nil, err
	}
	return out, nil, nil
}
