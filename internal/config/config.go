package config

import (
	"os"
	"strconv"
	"strings"

	"seisrec/internal/errors"
)

// Config represents the complete benchmark runner configuration
type Config struct {
	Bench  BenchConfig
	Report ReportConfig
}

// BenchConfig holds the benchmark sweep settings. An empty Presets
// list means "all registered presets"; the resolution happens in the
// command so this package stays free of domain imports.
type BenchConfig struct {
	Presets     []string
	Repeats     int
	Traces      int
	Samples     int
	Dt          float64
	NoiseLevel  float64
	WaveletFreq float64
	Seed        int64
	MaskDensity float64
	Metrics     []string
	Parallel    int
}

// ReportConfig holds report output settings
type ReportConfig struct {
	OutputDir   string
	Formats     []string
	IncludeRuns bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Bench:  loadBenchConfig(),
		Report: loadReportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadBenchConfig() BenchConfig {
	return BenchConfig{
		Presets:     getEnvListOrDefault("BENCH_PRESETS", nil),
		Repeats:     getEnvIntOrDefault("BENCH_REPEATS", 3),
		Traces:      getEnvIntOrDefault("BENCH_TRACES", 32),
		Samples:     getEnvIntOrDefault("BENCH_SAMPLES", 512),
		Dt:          getEnvFloatOrDefault("BENCH_DT", 0.004),
		NoiseLevel:  getEnvFloatOrDefault("BENCH_NOISE", 0.1),
		WaveletFreq: getEnvFloatOrDefault("BENCH_WAVELET_FREQ", 30),
		Seed:        getEnvInt64OrDefault("BENCH_SEED", 42),
		MaskDensity: getEnvFloatOrDefault("BENCH_MASK_DENSITY", 0.6),
		Metrics:     getEnvListOrDefault("BENCH_METRICS", []string{"snr", "mse", "psnr", "ssim"}),
		Parallel:    getEnvIntOrDefault("BENCH_PARALLEL", 1),
	}
}

func loadReportConfig() ReportConfig {
	return ReportConfig{
		OutputDir:   getEnvOrDefault("BENCH_OUTPUT_DIR", "./reports"),
		Formats:     getEnvListOrDefault("BENCH_FORMATS", []string{"xlsx", "csv", "json"}),
		IncludeRuns: getEnvBoolOrDefault("BENCH_INCLUDE_RUNS", true),
	}
}

func validateConfig(config *Config) error {
	if config.Bench.Repeats < 1 {
		return errors.ConfigInvalid("BENCH_REPEATS must be >= 1")
	}
	if config.Bench.Traces < 1 {
		return errors.ConfigInvalid("BENCH_TRACES must be >= 1")
	}
	if config.Bench.Samples < 1 {
		return errors.ConfigInvalid("BENCH_SAMPLES must be >= 1")
	}
	if config.Bench.Dt <= 0 {
		return errors.ConfigInvalid("BENCH_DT must be > 0")
	}
	if config.Bench.NoiseLevel < 0 {
		return errors.ConfigInvalid("BENCH_NOISE must be >= 0")
	}
	if config.Bench.WaveletFreq <= 0 {
		return errors.ConfigInvalid("BENCH_WAVELET_FREQ must be > 0")
	}
	if config.Bench.MaskDensity <= 0 || config.Bench.MaskDensity > 1 {
		return errors.ConfigInvalid("BENCH_MASK_DENSITY must be in (0, 1]")
	}
	if len(config.Bench.Metrics) == 0 {
		return errors.ConfigInvalid("BENCH_METRICS cannot be empty")
	}
	if config.Bench.Parallel < 1 {
		return errors.ConfigInvalid("BENCH_PARALLEL must be >= 1")
	}
	if config.Report.OutputDir == "" {
		return errors.ConfigInvalid("BENCH_OUTPUT_DIR cannot be empty")
	}
	if len(config.Report.Formats) == 0 {
		return errors.ConfigInvalid("BENCH_FORMATS cannot be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvListOrDefault splits a comma-separated variable, dropping
// empty entries.
func getEnvListOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
