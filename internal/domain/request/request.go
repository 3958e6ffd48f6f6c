package request

import (
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
	"github.com/kailas-cloud/clusterlab/internal/domain/dataset"
	"github.com/kailas-cloud/clusterlab/internal/domain/params"
)

// Request is a clustering call with defaults applied.
// Parameter values are validated later by the pipeline, not here.
type Request struct {
	source      dataset.Source
	algorithm   string
	params      params.Params
	standardize bool
}

// New normalizes a clustering call.
// Defaults: algorithm=kmeans, params={}, standardize=true.
func New(datasetName string, uploaded []byte, algo string, p params.Params, standardize *bool) Request {
	if algo == "" {
		algo = string(algorithm.DefaultAlgorithm)
	}
	if p == nil {
		p = params.Params{}
	}
	std := true
	if standardize != nil {
		std = *standardize
	}
	return Request{
		source:      dataset.Source{Name: datasetName, Uploaded: uploaded},
		algorithm:   algo,
		params:      p,
		standardize: std,
	}
}

// Source returns the dataset descriptor.
func (r Request) Source() dataset.Source { return r.source }

// Algorithm returns the raw algorithm tag.
func (r Request) Algorithm() string { return r.algorithm }

// Params returns the raw parameter map.
func (r Request) Params() params.Params { return r.params }

// Standardize reports whether columns are standardized before fitting.
func (r Request) Standardize() bool { return r.standardize }
