package app

import (
	"context"
	"reflect"
	"testing"

	"seisrec/domain/core"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
)

func smallBenchSpec() BenchmarkSpec {
	return BenchmarkSpec{
		Presets: pipeline.PresetNames(),
		Repeats: 2,
		Data: dataset.SyntheticOptions{
			NumTraces:   8,
			NumSamples:  128,
			Dt:          0.004,
			NoiseLevel:  0.2,
			Seed:        7,
			WaveletFreq: 30,
		},
		MaskDensity: 0.6,
		Metrics:     []string{"snr", "mse"},
		Parallel:    1,
	}
}

// metricRows drops the wall-clock rows, which are the only
// nondeterministic part of a summary.
func metricRows(summary *pipeline.BenchmarkSummary) []pipeline.BenchmarkRow {
	var rows []pipeline.BenchmarkRow
	for _, row := range summary.Rows {
		if row.Metric != "elapsed_ms" {
			rows = append(rows, row)
		}
	}
	return rows
}

// TestBenchmarkService_RowCoverage tests that the summary has one row
// per preset per metric plus a timing row, and one report per run
func TestBenchmarkService_RowCoverage(t *testing.T) {
	spec := smallBenchSpec()

	summary, err := NewBenchmarkService().Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantRows := len(spec.Presets) * (len(spec.Metrics) + 1)
	if len(summary.Rows) != wantRows {
		t.Errorf("Expected %d rows, got %d", wantRows, len(summary.Rows))
	}
	if len(summary.Reports) != len(spec.Presets)*spec.Repeats {
		t.Errorf("Expected %d reports, got %d", len(spec.Presets)*spec.Repeats, len(summary.Reports))
	}

	for _, preset := range spec.Presets {
		rows := summary.RowsFor(preset)
		if len(rows) != len(spec.Metrics)+1 {
			t.Errorf("Expected %d rows for %s, got %d", len(spec.Metrics)+1, preset, len(rows))
			continue
		}
		seen := make(map[string]bool)
		for _, row := range rows {
			seen[row.Metric] = true
			if row.Runs != spec.Repeats {
				t.Errorf("%s/%s: expected %d runs, got %d", preset, row.Metric, spec.Repeats, row.Runs)
			}
			if row.Min > row.Mean || row.Mean > row.Max {
				t.Errorf("%s/%s: expected min <= mean <= max, got %v <= %v <= %v",
					preset, row.Metric, row.Min, row.Mean, row.Max)
			}
		}
		for _, metric := range append([]string{"elapsed_ms"}, spec.Metrics...) {
			if !seen[metric] {
				t.Errorf("Expected a %s row for %s", metric, preset)
			}
		}
	}

	if summary.Version != core.Version {
		t.Errorf("Expected version %q, got %q", core.Version, summary.Version)
	}
	if summary.CreatedAt.IsZero() {
		t.Error("Expected a creation timestamp")
	}
	if summary.MaskDensity != spec.MaskDensity {
		t.Errorf("Expected mask density %v, got %v", spec.MaskDensity, summary.MaskDensity)
	}
}

// TestBenchmarkService_Deterministic tests that a fixed seed pins the
// metric rows exactly across invocations
func TestBenchmarkService_Deterministic(t *testing.T) {
	spec := smallBenchSpec()
	svc := NewBenchmarkService()

	first, err := svc.Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	second, err := svc.Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !reflect.DeepEqual(metricRows(first), metricRows(second)) {
		t.Error("Expected identical metric rows for identical specs")
	}
}

// TestBenchmarkService_ParallelMatchesSerial tests that fanning
// presets out over goroutines does not change any metric value
func TestBenchmarkService_ParallelMatchesSerial(t *testing.T) {
	serialSpec := smallBenchSpec()
	parallelSpec := smallBenchSpec()
	parallelSpec.Parallel = 4

	serial, err := NewBenchmarkService().Run(context.Background(), serialSpec)
	if err != nil {
		t.Fatalf("Serial run failed: %v", err)
	}
	parallel, err := NewBenchmarkService().Run(context.Background(), parallelSpec)
	if err != nil {
		t.Fatalf("Parallel run failed: %v", err)
	}

	if !reflect.DeepEqual(metricRows(serial), metricRows(parallel)) {
		t.Error("Expected parallel execution to reproduce serial results")
	}
}

func TestBenchmarkService_RepeatSeedsAdvance(t *testing.T) {
	spec := smallBenchSpec()
	spec.Presets = []string{pipeline.PresetWiener}

	summary, err := NewBenchmarkService().Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(summary.Reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(summary.Reports))
	}
	if summary.Reports[0].Manifest.DataHash == summary.Reports[1].Manifest.DataHash {
		t.Error("Expected repeats to draw different synthetic sections")
	}
}

func TestBenchmarkService_SpecValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*BenchmarkSpec)
	}{
		{"no presets", func(s *BenchmarkSpec) { s.Presets = nil }},
		{"zero repeats", func(s *BenchmarkSpec) { s.Repeats = 0 }},
		{"no metrics", func(s *BenchmarkSpec) { s.Metrics = nil }},
		{"zero mask density", func(s *BenchmarkSpec) { s.MaskDensity = 0 }},
		{"mask density above one", func(s *BenchmarkSpec) { s.MaskDensity = 1.5 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec := smallBenchSpec()
			tc.mutate(&spec)
			_, err := NewBenchmarkService().Run(context.Background(), spec)
			if err == nil {
				t.Fatal("Expected error, got none")
			}
			if !core.IsInvalidConfig(err) {
				t.Errorf("Expected invalid config error, got %v", err)
			}
		})
	}
}

func TestBenchmarkService_UnknownPreset(t *testing.T) {
	spec := smallBenchSpec()
	spec.Presets = []string{"lowrank_magic"}

	_, err := NewBenchmarkService().Run(context.Background(), spec)
	if err == nil {
		t.Fatal("Expected error for unknown preset, got none")
	}
}

func TestBenchmarkService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBenchmarkService().Run(ctx, smallBenchSpec())
	if err == nil {
		t.Fatal("Expected error for cancelled context, got none")
	}
}

func TestDefaultBenchmarkSpec(t *testing.T) {
	spec := DefaultBenchmarkSpec()

	if !reflect.DeepEqual(spec.Presets, pipeline.PresetNames()) {
		t.Errorf("Expected all presets, got %v", spec.Presets)
	}
	if spec.Repeats != 3 || spec.Parallel != 1 {
		t.Errorf("Expected 3 repeats on 1 worker, got %d/%d", spec.Repeats, spec.Parallel)
	}
	if len(spec.Metrics) != 4 {
		t.Errorf("Expected 4 metrics, got %v", spec.Metrics)
	}
}
