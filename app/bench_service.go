package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/semaphore"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
	"seisrec/internal"
)

// BenchmarkSpec describes one benchmark sweep: which presets to run,
// how many repeats per preset, the synthetic data to run them on and
// the metrics to score.
type BenchmarkSpec struct {
	Presets     []string
	Repeats     int
	Data        dataset.SyntheticOptions
	MaskDensity float64
	Metrics     []string
	Parallel    int
}

// DefaultBenchmarkSpec runs every preset three times on the default
// synthetic section with a 60% observation mask.
func DefaultBenchmarkSpec() BenchmarkSpec {
	return BenchmarkSpec{
		Presets:     pipeline.PresetNames(),
		Repeats:     3,
		Data:        dataset.DefaultSyntheticOptions(),
		MaskDensity: 0.6,
		Metrics:     []string{"snr", "mse", "psnr", "ssim"},
		Parallel:    1,
	}
}

// BenchmarkService sweeps recovery presets over seeded synthetic data
// and aggregates metric statistics across repeats. Presets fan out to
// goroutines bounded by a weighted semaphore; repeats within a preset
// stay sequential so seeds advance predictably.
type BenchmarkService struct {
	log *internal.Logger
}

// NewBenchmarkService creates a benchmark service.
func NewBenchmarkService() *BenchmarkService {
	return &BenchmarkService{log: internal.DefaultLogger}
}

type presetResult struct {
	name    string
	reports []pipeline.RunReport
	err     error
}

// Run executes the sweep and returns the aggregated summary. Repeat i
// uses Data.Seed+i, so a spec reproduces its summary exactly.
func (s *BenchmarkService) Run(ctx context.Context, spec BenchmarkSpec) (*pipeline.BenchmarkSummary, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	parallel := spec.Parallel
	if parallel < 1 {
		parallel = 1
	}

	s.log.Info("benchmark: %d presets x %d repeats on %dx%d synthetic section (parallel=%d)",
		len(spec.Presets), spec.Repeats, spec.Data.NumTraces, spec.Data.NumSamples, parallel)

	sem := semaphore.NewWeighted(int64(parallel))
	results := make(chan presetResult, len(spec.Presets))
	var wg sync.WaitGroup
	for _, preset := range spec.Presets {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results <- presetResult{name: name, err: fmt.Errorf("failed to acquire semaphore: %w", err)}
				return
			}
			defer sem.Release(1)
			reports, err := s.runPreset(name, spec)
			results <- presetResult{name: name, reports: reports, err: err}
		}(preset)
	}
	wg.Wait()
	close(results)

	byPreset := make(map[string]presetResult, len(spec.Presets))
	for res := range results {
		byPreset[res.name] = res
	}

	summary := &pipeline.BenchmarkSummary{
		Version:     core.Version,
		CreatedAt:   core.Now(),
		Data:        spec.Data,
		MaskDensity: spec.MaskDensity,
	}
	// Assemble in spec order so the summary layout is stable.
	for _, preset := range spec.Presets {
		res := byPreset[preset]
		if res.err != nil {
			return nil, fmt.Errorf("preset %s: %w", preset, res.err)
		}
		summary.Reports = append(summary.Reports, res.reports...)
		summary.Rows = append(summary.Rows, summarizePreset(preset, res.reports)...)
	}
	return summary, nil
}

func (s *BenchmarkService) runPreset(name string, spec BenchmarkSpec) ([]pipeline.RunReport, error) {
	p, err := FromPreset(name)
	if err != nil {
		return nil, err
	}

	reports := make([]pipeline.RunReport, 0, spec.Repeats)
	for i := 0; i < spec.Repeats; i++ {
		opts := spec.Data
		opts.Seed = spec.Data.Seed + int64(i)

		clean, noisy, err := dataset.GenerateSyntheticPair(opts)
		if err != nil {
			return nil, err
		}

		// Only matrix completion consults the mask; passing it to the
		// other presets is harmless.
		var mask *dataset.ObservationMask
		if spec.MaskDensity < 1 {
			mask, err = dataset.RandomMask(noisy.NumTraces(), noisy.NumSamples(), spec.MaskDensity, core.DeriveSeed(opts.Seed, "mask"))
			if err != nil {
				return nil, err
			}
		}

		report, err := p.RunAndEvaluate(noisy, mask, clean, spec.Metrics)
		if err != nil {
			return nil, err
		}
		s.log.Debug("benchmark %s repeat %d/%d: run %s in %s", name, i+1, spec.Repeats, report.RunID(), report.Elapsed)
		reports = append(reports, *report)
	}
	s.log.Info("benchmark %s: %d repeats done", name, spec.Repeats)
	return reports, nil
}

// summarizePreset reduces the repeat reports of one preset to one row
// per metric plus a wall-clock row.
func summarizePreset(preset string, reports []pipeline.RunReport) []pipeline.BenchmarkRow {
	var rows []pipeline.BenchmarkRow
	if len(reports) == 0 {
		return rows
	}

	for _, metric := range reports[0].Metrics.Names() {
		values := make([]float64, 0, len(reports))
		for _, r := range reports {
			if v, ok := r.Metrics.Get(metric); ok {
				values = append(values, v)
			}
		}
		rows = append(rows, reduceRow(preset, metric, values))
	}

	elapsed := make([]float64, len(reports))
	for i, r := range reports {
		elapsed[i] = float64(r.Elapsed.Nanoseconds()) / 1e6
	}
	rows = append(rows, reduceRow(preset, "elapsed_ms", elapsed))
	return rows
}

func reduceRow(preset, metric string, values []float64) pipeline.BenchmarkRow {
	mean, _ := stats.Mean(values)
	std, _ := stats.StandardDeviationPopulation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	return pipeline.BenchmarkRow{
		Pipeline: preset,
		Metric:   metric,
		Mean:     mean,
		Std:      std,
		Min:      min,
		Max:      max,
		Runs:     len(values),
	}
}

func validateSpec(spec BenchmarkSpec) error {
	if len(spec.Presets) == 0 {
		return core.NewConfigError("presets", "at least one preset is required")
	}
	if spec.Repeats < 1 {
		return core.NewConfigError("repeats", "must be >= 1")
	}
	if len(spec.Metrics) == 0 {
		return core.NewConfigError("metrics", "at least one metric name is required")
	}
	if spec.MaskDensity <= 0 || spec.MaskDensity > 1 {
		return core.NewConfigError("mask_density", "must be in (0, 1]")
	}
	return nil
}
