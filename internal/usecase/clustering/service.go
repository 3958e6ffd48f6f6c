// Package clustering runs the clustering pipeline: load, validate,
// standardize, fit, evaluate and assemble.
package clustering

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterlab/internal/cluster"
	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
	"github.com/kailas-cloud/clusterlab/internal/domain/params"
	"github.com/kailas-cloud/clusterlab/internal/domain/request"
	"github.com/kailas-cloud/clusterlab/internal/domain/result"
	"github.com/kailas-cloud/clusterlab/internal/logger"
	"github.com/kailas-cloud/clusterlab/internal/metrics"
	"github.com/kailas-cloud/clusterlab/internal/preprocess"
	"github.com/kailas-cloud/clusterlab/internal/quality"
)

// Service runs clustering requests end to end.
type Service struct {
	datasets       DatasetProvider
	logger         *zap.Logger
	computeMetrics bool
	instrumented   bool
	newAlgorithm   func(algorithm.Config) (cluster.Algorithm, error)
	now            func() time.Time
}

// New creates a clustering service. Quality metrics are computed by default.
func New(datasets DatasetProvider, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		datasets:       datasets,
		logger:         logger,
		computeMetrics: true,
		newAlgorithm:   cluster.New,
		now:            time.Now,
	}
}

// WithMetrics toggles quality-metric computation. Disabled runs return a
// result without a QualityReport.
func (s *Service) WithMetrics(enabled bool) *Service {
	s.computeMetrics = enabled
	return s
}

// WithInstrumentation records prometheus run metrics and wraps every
// algorithm with fit timing. Metrics must be registered by the caller.
func (s *Service) WithInstrumentation() *Service {
	s.instrumented = true
	build := s.newAlgorithm
	s.newAlgorithm = func(cfg algorithm.Config) (cluster.Algorithm, error) {
		a, err := build(cfg)
		if err != nil {
			return nil, err
		}
		return NewInstrumentedAlgorithm(a, s.logger), nil
	}
	return s
}

// Datasets lists the built-in catalog.
func (s *Service) Datasets() []domds.Info {
	return s.datasets.Catalog()
}

// Perform runs one request through the pipeline. Any stage failure aborts
// the run; the returned error unwraps to one of the domain sentinels.
func (s *Service) Perform(ctx context.Context, req request.Request) (result.ClusterResult, error) {
	log := logger.FromContextOr(ctx, s.logger).With(zap.String("algorithm", req.Algorithm()))

	res, err := s.perform(ctx, req)
	if s.instrumented {
		s.recordRun(req, res, err)
	}
	if err != nil {
		fields := []zap.Field{zap.String("kind", domain.ErrorKind(err)), zap.Error(err)}
		if domain.IsCallerError(err) {
			log.Warn("Clustering request rejected", fields...)
		} else {
			log.Error("Clustering request failed", fields...)
		}
		return result.ClusterResult{}, err
	}

	fields := []zap.Field{
		zap.Int("samples", len(res.Labels)),
		zap.Int("features", len(res.FeatureNames)),
		zap.Duration("fit_duration", res.Elapsed),
	}
	if res.Quality != nil {
		fields = append(fields,
			zap.Float64("db_index", res.Quality.DaviesBouldin),
			zap.Float64("silhouette", res.Quality.Silhouette),
		)
	}
	log.Info("Clustering completed", fields...)
	return res, nil
}

func (s *Service) perform(ctx context.Context, req request.Request) (result.ClusterResult, error) {
	ds, err := s.datasets.Load(ctx, req.Source())
	if err != nil {
		return result.ClusterResult{}, err
	}

	cfg, err := params.Parse(req.Algorithm(), req.Params())
	if err != nil {
		return result.ClusterResult{}, err
	}

	x := ds.Matrix()
	if req.Standardize() {
		x = preprocess.Standardize(x)
	}

	algo, err := s.newAlgorithm(cfg)
	if err != nil {
		return result.ClusterResult{}, err
	}

	start := s.now()
	fit, err := algo.FitPredict(x)
	elapsed := s.now().Sub(start)
	if err != nil {
		return result.ClusterResult{}, err
	}

	var report *result.QualityReport
	if s.computeMetrics {
		q, err := quality.Evaluate(x, fit.Labels)
		if err != nil {
			return result.ClusterResult{}, err
		}
		report = &q
	}

	return result.Assemble(cfg.Algorithm(), x, fit.Labels, ds.FeatureNames(), fit.Centers, report, elapsed)
}

// recordRun updates run, error and silhouette metrics.
func (s *Service) recordRun(req request.Request, res result.ClusterResult, err error) {
	algo := algorithm.Algorithm(req.Algorithm())
	if !algo.IsValid() {
		algo = "unknown"
	}
	if err != nil {
		metrics.ClusterRunsTotal.WithLabelValues(string(algo), "error").Inc()
		metrics.ClusterErrorsTotal.WithLabelValues(domain.ErrorKind(err)).Inc()
		return
	}
	metrics.ClusterRunsTotal.WithLabelValues(string(algo), "ok").Inc()
	if res.Quality != nil {
		metrics.SilhouetteScore.WithLabelValues(string(algo)).Observe(res.Quality.Silhouette)
	}
}
