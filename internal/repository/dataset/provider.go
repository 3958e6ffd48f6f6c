package dataset

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
)

// DefaultMaxUploadRows caps the number of uploaded records.
const DefaultMaxUploadRows = 100_000

// Provider resolves dataset sources into feature matrices.
// The built-in catalog is parsed once in New and is read-only afterwards,
// so a Provider is safe for concurrent use.
type Provider struct {
	catalog       map[string]catalogEntry
	order         []string
	maxUploadRows int
}

// New creates a provider and parses the built-in catalog.
func New() (*Provider, error) {
	entries, order, err := loadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load dataset catalog: %w", err)
	}
	return &Provider{
		catalog:       entries,
		order:         order,
		maxUploadRows: DefaultMaxUploadRows,
	}, nil
}

// WithMaxUploadRows sets the uploaded record cap. Non-positive values keep the default.
func (p *Provider) WithMaxUploadRows(n int) *Provider {
	if n > 0 {
		p.maxUploadRows = n
	}
	return p
}

// Load resolves src into a dataset. Failures are ErrDataset.
func (p *Provider) Load(_ context.Context, src domds.Source) (domds.Dataset, error) {
	if src.IsUploaded() {
		return p.loadUploaded(src.Uploaded)
	}
	if src.Name == "" {
		return domds.Dataset{}, domain.NewDatasetError("dataset is required")
	}

	e, ok := p.catalog[src.Name]
	if !ok {
		return domds.Dataset{}, domain.NewDatasetError("unsupported dataset: %s", src.Name)
	}

	// Copy so the shared catalog matrix can never be mutated by a caller.
	ds, err := domds.New(e.info.Name, mat.DenseCopyOf(e.matrix), e.info.FeatureNames)
	if err != nil {
		return domds.Dataset{}, domain.NewDatasetError("failed to load dataset %s: %v", src.Name, err)
	}
	return ds, nil
}

func (p *Provider) loadUploaded(raw []byte) (domds.Dataset, error) {
	if len(raw) == 0 {
		return domds.Dataset{}, domain.NewDatasetError("no uploaded data provided")
	}
	m, names, err := decodeRecords(raw, p.maxUploadRows)
	if err != nil {
		return domds.Dataset{}, domain.NewDatasetError("failed to process uploaded dataset: %v", err)
	}
	ds, err := domds.New(domds.UploadedName, m, names)
	if err != nil {
		return domds.Dataset{}, domain.NewDatasetError("failed to process uploaded dataset: %v", err)
	}
	return ds, nil
}

// Catalog lists the built-in datasets in display order.
func (p *Provider) Catalog() []domds.Info {
	out := make([]domds.Info, 0, len(p.order))
	for _, name := range p.order {
		info := p.catalog[name].info
		names := make([]string, len(info.FeatureNames))
		copy(names, info.FeatureNames)
		info.FeatureNames = names
		out = append(out, info)
	}
	return out
}

// Ping reports whether the catalog is loaded.
func (p *Provider) Ping(_ context.Context) error {
	if len(p.catalog) == 0 {
		return errors.New("dataset catalog is empty")
	}
	return nil
}
