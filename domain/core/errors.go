package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors: raised at construction or dispatch time,
	// before any computation runs.
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrUnknownPreset = fmt.Errorf("%w: unknown preset", ErrInvalidConfig)
	ErrUnknownModel  = fmt.Errorf("%w: unknown model type", ErrInvalidConfig)
	ErrUnknownMetric = fmt.Errorf("%w: unknown metric", ErrInvalidConfig)
	ErrUnknownStep   = fmt.Errorf("%w: unknown pipeline step", ErrInvalidConfig)

	// Data errors: raised before any computation begins.
	ErrInvalidData       = errors.New("invalid data")
	ErrEmptyDataset      = fmt.Errorf("%w: empty dataset", ErrInvalidData)
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidData)
)

// Error constructors with context
func NewConfigError(param string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, param, reason)
}

func NewDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, reason)
}

func NewDimensionError(what string, gotRows, gotCols, wantRows, wantCols int) error {
	return fmt.Errorf("%w: %s is %dx%d, want %dx%d",
		ErrDimensionMismatch, what, gotRows, gotCols, wantRows, wantCols)
}

// Error checking helpers
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

func IsInvalidData(err error) bool {
	return errors.Is(err, ErrInvalidData)
}
