package clustering

import (
	"context"

	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
)

// DatasetProvider resolves a dataset source into a feature matrix.
type DatasetProvider interface {
	Load(ctx context.Context, src domds.Source) (domds.Dataset, error)
	Catalog() []domds.Info
}
