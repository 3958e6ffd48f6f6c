package clusterlab

import (
	"context"
	"fmt"
	"time"

	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
	"github.com/kailas-cloud/clusterlab/internal/domain/params"
	"github.com/kailas-cloud/clusterlab/internal/domain/request"
	"github.com/kailas-cloud/clusterlab/internal/domain/result"
	datasetrepo "github.com/kailas-cloud/clusterlab/internal/repository/dataset"
	clusteringuc "github.com/kailas-cloud/clusterlab/internal/usecase/clustering"
	healthuc "github.com/kailas-cloud/clusterlab/internal/usecase/health"
)

// Internal interfaces, swapped out in tests.
type clusteringUseCase interface {
	Perform(ctx context.Context, req request.Request) (result.ClusterResult, error)
	Datasets() []domds.Info
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the clusterlab SDK entry point. It is safe for concurrent use.
type Client struct {
	clustering clusteringUseCase
	health     healthUseCase
	obs        *observer
}

// New creates a Client backed by the built-in dataset catalog.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		maxUploadRows:  datasetrepo.DefaultMaxUploadRows,
		computeMetrics: true,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	datasets, err := datasetrepo.New()
	if err != nil {
		return nil, fmt.Errorf("clusterlab: %w", err)
	}
	datasets.WithMaxUploadRows(cfg.maxUploadRows)

	return &Client{
		clustering: clusteringuc.New(datasets, nil).WithMetrics(cfg.computeMetrics),
		health:     healthuc.New(datasets),
		obs:        obs,
	}, nil
}

// Cluster runs one request through the pipeline. Errors match one of the
// exported sentinels with errors.Is.
func (c *Client) Cluster(ctx context.Context, req Request) (res *Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("cluster", start, err, "algorithm", string(req.Algorithm)) }()

	out, err := c.clustering.Perform(ctx, request.New(
		req.Dataset, req.UploadedData, string(req.Algorithm), params.Params(req.Params), req.Standardize,
	))
	if err != nil {
		return nil, fmt.Errorf("cluster: %w", err)
	}
	return resultFromDomain(&out), nil
}

// Datasets lists the built-in datasets.
func (c *Client) Datasets(_ context.Context) []DatasetInfo {
	start := time.Now()
	defer c.obs.observe("datasets", start, nil)

	infos := c.clustering.Datasets()
	out := make([]DatasetInfo, len(infos))
	for i, info := range infos {
		out[i] = DatasetInfo{
			Name:         info.Name,
			Title:        info.Title,
			Description:  info.Description,
			Samples:      info.Samples,
			FeatureNames: info.FeatureNames,
		}
	}
	return out
}

func resultFromDomain(r *result.ClusterResult) *Result {
	res := &Result{
		Algorithm:      Algorithm(r.Algorithm),
		Data:           r.Rows(),
		Labels:         r.Labels,
		FeatureNames:   r.FeatureNames,
		ClusterCenters: r.CenterRows(),
		RunTime:        r.Elapsed,
	}
	if r.Quality != nil {
		db, sil := r.Quality.DaviesBouldin, r.Quality.Silhouette
		res.DBIndex = &db
		res.Silhouette = &sil
	}
	return res
}
