// Package gmm fits Gaussian mixture models by expectation-maximization.
package gmm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"

	"github.com/kailas-cloud/clusterlab/internal/cluster/kmeans"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

const (
	// tol is the convergence threshold on the per-sample lower bound.
	tol = 1e-3
	// regCovar is added to covariance diagonals to keep them positive definite.
	regCovar = 1e-6
	// initMaxIter bounds the k-means run that seeds responsibilities.
	initMaxIter = 300
	// nkFloor keeps component weights strictly positive.
	nkFloor = 10 * 2.220446049250313e-16
)

var (
	// ErrTooFewSamples is returned when there are fewer rows than components.
	ErrTooFewSamples = errors.New("fewer samples than components")
	// ErrIllDefinedCovariance is returned when a component covariance is not positive definite.
	ErrIllDefinedCovariance = errors.New(
		"some components have an ill-defined empirical covariance; try fewer components or standardized data")
)

// Model is a fitted mixture.
type Model struct {
	Labels      []int
	Weights     []float64
	Means       *mat.Dense
	Covariances []*mat.SymDense
	LowerBound  float64
	Iterations  int
	Converged   bool
}

// GMM fits Gaussian mixtures.
type GMM struct {
	k       int
	cov     algorithm.CovarianceType
	maxIter int
	seed    int64
}

// New creates a mixture fitter from a validated configuration.
func New(cfg algorithm.GMMConfig) *GMM {
	return &GMM{
		k:       cfg.K,
		cov:     cfg.CovarianceType,
		maxIter: cfg.MaxIter,
		seed:    cfg.Seed,
	}
}

// params is one EM state.
type params struct {
	weights []float64
	means   [][]float64
	covs    []*mat.SymDense
}

// Fit runs EM until the lower bound moves less than tol or maxIter is reached,
// then labels each row with its most probable component.
func (g *GMM) Fit(x mat.Matrix) (Model, error) {
	n, d := x.Dims()
	if n < g.k {
		return Model{}, ErrTooFewSamples
	}
	rows := make([][]float64, n)
	for i := range n {
		rows[i] = mat.Row(nil, i, x)
	}

	resp, err := g.initialResponsibilities(x)
	if err != nil {
		return Model{}, err
	}
	p := g.mStep(rows, resp, d)

	logResp := newGrid(n, g.k)
	lower := math.Inf(-1)
	converged := false
	iter := 0
	for iter < g.maxIter {
		iter++
		prev := lower
		lower, err = eStep(rows, p, logResp)
		if err != nil {
			return Model{}, err
		}
		for i := range resp {
			for c := range resp[i] {
				resp[i][c] = math.Exp(logResp[i][c])
			}
		}
		p = g.mStep(rows, resp, d)
		if math.Abs(lower-prev) < tol {
			converged = true
			break
		}
	}

	// Final E-step so labels agree with the returned parameters.
	if _, err := eStep(rows, p, logResp); err != nil {
		return Model{}, err
	}
	labels := make([]int, n)
	for i := range logResp {
		labels[i] = floats.MaxIdx(logResp[i])
	}

	means := mat.NewDense(g.k, d, nil)
	for c, mu := range p.means {
		means.SetRow(c, mu)
	}
	return Model{
		Labels:      labels,
		Weights:     p.weights,
		Means:       means,
		Covariances: p.covs,
		LowerBound:  lower,
		Iterations:  iter,
		Converged:   converged,
	}, nil
}

// initialResponsibilities one-hot encodes a k-means partition.
func (g *GMM) initialResponsibilities(x mat.Matrix) ([][]float64, error) {
	km, err := kmeans.New(algorithm.KMeansConfig{
		K:       g.k,
		Init:    algorithm.InitKMeansPlusPlus,
		MaxIter: initMaxIter,
		Seed:    g.seed,
	}).Fit(x)
	if err != nil {
		return nil, err
	}
	n, _ := x.Dims()
	resp := newGrid(n, g.k)
	for i, l := range km.Labels {
		resp[i][l] = 1
	}
	return resp, nil
}

// mStep estimates weights, means and covariances from responsibilities.
func (g *GMM) mStep(rows, resp [][]float64, d int) params {
	n := len(rows)
	nk := make([]float64, g.k)
	for i := range resp {
		floats.Add(nk, resp[i])
	}
	floats.AddConst(nkFloor, nk)

	means := make([][]float64, g.k)
	for c := range g.k {
		mu := make([]float64, d)
		for i, r := range rows {
			floats.AddScaled(mu, resp[i][c], r)
		}
		floats.Scale(1/nk[c], mu)
		means[c] = mu
	}

	var covs []*mat.SymDense
	switch g.cov {
	case algorithm.CovTied:
		covs = tiedCovariance(rows, nk, means, g.k)
	case algorithm.CovDiag:
		covs = diagCovariances(rows, resp, nk, means, false)
	case algorithm.CovSpherical:
		covs = diagCovariances(rows, resp, nk, means, true)
	default:
		covs = fullCovariances(rows, resp, nk, means)
	}

	weights := make([]float64, g.k)
	copy(weights, nk)
	floats.Scale(1/float64(n), weights)
	return params{weights: weights, means: means, covs: covs}
}

// eStep fills logResp with normalized log responsibilities and returns the
// mean log-likelihood per sample.
func eStep(rows [][]float64, p params, logResp [][]float64) (float64, error) {
	k := len(p.weights)
	comps := make([]*distmv.Normal, k)
	for c := range k {
		nrm, ok := distmv.NewNormal(p.means[c], p.covs[c], nil)
		if !ok {
			return 0, ErrIllDefinedCovariance
		}
		comps[c] = nrm
	}

	var total float64
	for i, r := range rows {
		lr := logResp[i]
		for c := range k {
			lr[c] = math.Log(p.weights[c]) + comps[c].LogProb(r)
		}
		norm := floats.LogSumExp(lr)
		floats.AddConst(-norm, lr)
		total += norm
	}
	return total / float64(len(rows)), nil
}

func newGrid(n, k int) [][]float64 {
	g := make([][]float64, n)
	for i := range g {
		g[i] = make([]float64, k)
	}
	return g
}
