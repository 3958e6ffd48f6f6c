package clusterlab

import "github.com/kailas-cloud/clusterlab/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDataset    = domain.ErrDataset
	ErrValidation = domain.ErrValidation
	ErrFit        = domain.ErrFit
	ErrEvaluation = domain.ErrEvaluation
	ErrAssembly   = domain.ErrAssembly
)
