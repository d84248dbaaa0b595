package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"seisrec/adapters/report"
	"seisrec/app"
	"seisrec/domain/dataset"
	"seisrec/domain/pipeline"
	"seisrec/internal"
	"seisrec/internal/config"
	"seisrec/ports"
)

type namedSink struct {
	sink ports.ReportSink
	ext  string
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Resolve sinks before the sweep so a bad format fails fast
	// instead of after minutes of solver time.
	sinks := make([]namedSink, 0, len(cfg.Report.Formats))
	for _, format := range cfg.Report.Formats {
		sink, ext, err := report.ForFormat(format, cfg.Report.IncludeRuns)
		if err != nil {
			log.Fatalf("Failed to resolve report format: %v", err)
		}
		sinks = append(sinks, namedSink{sink: sink, ext: ext})
	}

	summary, err := app.NewBenchmarkService().Run(context.Background(), specFromConfig(cfg))
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	logger := internal.DefaultLogger
	stamp := summary.CreatedAt.Time().Format("2006-01-02_15-04-05")
	for _, ns := range sinks {
		path := filepath.Join(cfg.Report.OutputDir, fmt.Sprintf("benchmark_%s%s", stamp, ns.ext))
		if err := ns.sink.WriteSummary(path, summary); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		logger.Info("report written: %s", path)
	}

	logSummary(logger, summary)
}

func specFromConfig(cfg *config.Config) app.BenchmarkSpec {
	presets := cfg.Bench.Presets
	if len(presets) == 0 {
		presets = pipeline.PresetNames()
	}
	return app.BenchmarkSpec{
		Presets: presets,
		Repeats: cfg.Bench.Repeats,
		Data: dataset.SyntheticOptions{
			NumTraces:   cfg.Bench.Traces,
			NumSamples:  cfg.Bench.Samples,
			Dt:          cfg.Bench.Dt,
			NoiseLevel:  cfg.Bench.NoiseLevel,
			Seed:        cfg.Bench.Seed,
			WaveletFreq: cfg.Bench.WaveletFreq,
		},
		MaskDensity: cfg.Bench.MaskDensity,
		Metrics:     cfg.Bench.Metrics,
		Parallel:    cfg.Bench.Parallel,
	}
}

func logSummary(logger *internal.Logger, summary *pipeline.BenchmarkSummary) {
	for _, name := range summary.Pipelines() {
		for _, row := range summary.RowsFor(name) {
			logger.Info("%-18s %-10s mean=%.4f std=%.4f min=%.4f max=%.4f (n=%d)",
				row.Pipeline, row.Metric, row.Mean, row.Std, row.Min, row.Max, row.Runs)
		}
	}
}
