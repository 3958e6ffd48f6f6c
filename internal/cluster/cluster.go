// Package cluster selects and runs a clustering algorithm for a validated
// configuration.
package cluster

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/cluster/gmm"
	"github.com/kailas-cloud/clusterlab/internal/cluster/kmeans"
	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

// Fit is the outcome of one clustering run.
// Centers is nil for algorithms without centroids.
type Fit struct {
	Labels  []int
	Centers *mat.Dense
}

// Algorithm partitions the rows of a matrix.
type Algorithm interface {
	Name() algorithm.Algorithm
	FitPredict(x mat.Matrix) (Fit, error)
}

// New returns the algorithm for cfg.
func New(cfg algorithm.Config) (Algorithm, error) {
	switch c := cfg.(type) {
	case algorithm.KMeansConfig:
		return &kmeansAlgorithm{cfg: c}, nil
	case algorithm.GMMConfig:
		return &gmmAlgorithm{cfg: c}, nil
	case nil:
		return nil, domain.NewFitError("algorithm configuration is required")
	default:
		return nil, domain.NewFitError("unsupported algorithm: %s", cfg.Algorithm())
	}
}

// checkShape rejects inputs no algorithm can fit.
func checkShape(x mat.Matrix, k int) error {
	if x == nil {
		return domain.NewFitError("no data to cluster")
	}
	r, c := x.Dims()
	if c < 1 {
		return domain.NewFitError("data has no features")
	}
	if r < k {
		return domain.NewFitError("n_samples=%d should be >= n_clusters=%d", r, k)
	}
	return nil
}

type kmeansAlgorithm struct {
	cfg algorithm.KMeansConfig
}

func (a *kmeansAlgorithm) Name() algorithm.Algorithm { return algorithm.KMeans }

func (a *kmeansAlgorithm) FitPredict(x mat.Matrix) (Fit, error) {
	if err := checkShape(x, a.cfg.K); err != nil {
		return Fit{}, err
	}
	m, err := kmeans.New(a.cfg).Fit(x)
	if err != nil {
		return Fit{}, domain.NewFitError("kmeans: %v", err)
	}
	return Fit{Labels: m.Labels, Centers: m.Centers}, nil
}

type gmmAlgorithm struct {
	cfg algorithm.GMMConfig
}

func (a *gmmAlgorithm) Name() algorithm.Algorithm { return algorithm.GMM }

func (a *gmmAlgorithm) FitPredict(x mat.Matrix) (Fit, error) {
	if err := checkShape(x, a.cfg.K); err != nil {
		return Fit{}, err
	}
	m, err := gmm.New(a.cfg).Fit(x)
	if err != nil {
		return Fit{}, domain.NewFitError("gmm: %v", err)
	}
	return Fit{Labels: m.Labels}, nil
}

