package clustering

import (
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/cluster"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
	"github.com/kailas-cloud/clusterlab/internal/metrics"
)

// InstrumentedAlgorithm wraps a cluster.Algorithm with fit timing and logging.
// Run-level metrics (runs, errors, silhouette) are recorded by Service.
type InstrumentedAlgorithm struct {
	inner  cluster.Algorithm
	logger *zap.Logger
}

// NewInstrumentedAlgorithm wraps an algorithm with observability.
func NewInstrumentedAlgorithm(inner cluster.Algorithm, logger *zap.Logger) *InstrumentedAlgorithm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstrumentedAlgorithm{inner: inner, logger: logger}
}

// Name returns the wrapped algorithm's tag.
func (a *InstrumentedAlgorithm) Name() algorithm.Algorithm { return a.inner.Name() }

// FitPredict delegates to the inner algorithm and records the fit duration.
func (a *InstrumentedAlgorithm) FitPredict(x mat.Matrix) (cluster.Fit, error) {
	start := time.Now()
	fit, err := a.inner.FitPredict(x)
	duration := time.Since(start)

	var rows, cols int
	if x != nil {
		rows, cols = x.Dims()
	}

	if err != nil {
		a.logger.Debug("Fit failed",
			zap.String("algorithm", string(a.Name())),
			zap.Int("rows", rows),
			zap.Int("cols", cols),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return cluster.Fit{}, err //nolint:wrapcheck // stage errors carry their own cause
	}

	metrics.FitDuration.WithLabelValues(string(a.Name())).Observe(duration.Seconds())
	a.logger.Debug("Fit completed",
		zap.String("algorithm", string(a.Name())),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Duration("duration", duration),
	)
	return fit, nil
}
