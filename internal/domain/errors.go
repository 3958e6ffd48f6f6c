package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDataset signals a bad or missing dataset source.
	ErrDataset = errors.New("dataset error")
	// ErrValidation signals a bad parameter or algorithm tag.
	ErrValidation = errors.New("validation error")
	// ErrFit signals that an algorithm cannot run on the given matrix shape.
	ErrFit = errors.New("fit error")
	// ErrEvaluation signals that quality metrics are undefined for a labeling.
	ErrEvaluation = errors.New("evaluation error")
	// ErrAssembly signals an internal invariant violation while building a result.
	ErrAssembly = errors.New("assembly error")
)

// StageError carries the human-readable cause of a pipeline failure.
// It unwraps to one of the sentinels above, so callers match with errors.Is.
type StageError struct {
	kind  error
	cause string
}

func (e *StageError) Error() string { return e.cause }

func (e *StageError) Unwrap() error { return e.kind }

// Kind returns the sentinel this error belongs to.
func (e *StageError) Kind() error { return e.kind }

func newStageError(kind error, format string, args ...any) error {
	return &StageError{kind: kind, cause: fmt.Sprintf(format, args...)}
}

// NewDatasetError creates an ErrDataset failure.
func NewDatasetError(format string, args ...any) error {
	return newStageError(ErrDataset, format, args...)
}

// NewValidationError creates an ErrValidation failure.
func NewValidationError(format string, args ...any) error {
	return newStageError(ErrValidation, format, args...)
}

// NewFitError creates an ErrFit failure.
func NewFitError(format string, args ...any) error {
	return newStageError(ErrFit, format, args...)
}

// NewEvaluationError creates an ErrEvaluation failure.
func NewEvaluationError(format string, args ...any) error {
	return newStageError(ErrEvaluation, format, args...)
}

// NewAssemblyError creates an ErrAssembly failure.
func NewAssemblyError(format string, args ...any) error {
	return newStageError(ErrAssembly, format, args...)
}

// IsCallerError reports whether err was caused by caller input
// (a bad dataset source or bad parameters) rather than a system fault.
func IsCallerError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrDataset)
}

// ErrorKind returns a short label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrDataset):
		return "dataset"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrFit):
		return "fit"
	case errors.Is(err, ErrEvaluation):
		return "evaluation"
	case errors.Is(err, ErrAssembly):
		return "assembly"
	default:
		return "internal"
	}
}
