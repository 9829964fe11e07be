package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors: misaligned columns or a target outside {0,1}.
	ErrInputShape     = errors.New("input shape violation")
	ErrLengthMismatch = fmt.Errorf("%w: length mismatch", ErrInputShape)
	ErrTargetDomain   = fmt.Errorf("%w: target outside {0,1}", ErrInputShape)

	// Degenerate input errors: inputs on which the requested statistic is undefined.
	ErrDegenerateInput = errors.New("degenerate input")
	ErrAllMissing      = fmt.Errorf("%w: all values missing", ErrDegenerateInput)
	ErrNoVariation     = fmt.Errorf("%w: target has no variation", ErrDegenerateInput)
	ErrTooFewBins      = fmt.Errorf("%w: fewer than 2 bins requested", ErrDegenerateInput)

	// Numeric domain errors: should be unreachable when smoothing is applied.
	ErrNumericDomain = errors.New("numeric domain violation")

	// Lookup errors
	ErrNotFound         = errors.New("resource not found")
	ErrRunNotFound      = fmt.Errorf("%w: run", ErrNotFound)
	ErrVariableNotFound = fmt.Errorf("%w: variable", ErrNotFound)
)

// Error constructors with context
func NewLengthMismatchError(what string, got, want int) error {
	return fmt.Errorf("%w: %s has %d values, expected %d", ErrLengthMismatch, what, got, want)
}

func NewTargetDomainError(value float64, row int) error {
	return fmt.Errorf("%w: value %v at row %d", ErrTargetDomain, value, row)
}

func NewAllMissingError(variable string) error {
	return fmt.Errorf("%w: variable %s", ErrAllMissing, variable)
}

func NewInvalidQuantileError(q float64) error {
	return fmt.Errorf("%w: quantile fraction %v outside [0,1]", ErrInputShape, q)
}

func NewUnlistedLevelError(variable, level string) error {
	return fmt.Errorf("%w: level %q of %s missing from configured order", ErrInputShape, level, variable)
}

func NewNumericDomainError(detail string) error {
	return fmt.Errorf("%w: %s", ErrNumericDomain, detail)
}

// Error checking helpers
func IsInputShapeError(err error) bool {
	return errors.Is(err, ErrInputShape)
}

func IsDegenerateInputError(err error) bool {
	return errors.Is(err, ErrDegenerateInput)
}

func IsNumericDomainError(err error) bool {
	return errors.Is(err, ErrNumericDomain)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
