package clusterlab

import (
	"context"

	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
	"github.com/kailas-cloud/clusterlab/internal/domain/request"
	"github.com/kailas-cloud/clusterlab/internal/domain/result"
	healthuc "github.com/kailas-cloud/clusterlab/internal/usecase/health"
)

// --- clusteringUseCase mock ---

type mockClusteringUC struct {
	performFn func(ctx context.Context, req request.Request) (result.ClusterResult, error)
	datasets  []domds.Info
}

func (m *mockClusteringUC) Perform(ctx context.Context, req request.Request) (result.ClusterResult, error) {
	return m.performFn(ctx, req)
}

func (m *mockClusteringUC) Datasets() []domds.Info { return m.datasets }

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
