package clusterlab

import (
	"time"

	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

// Algorithm selects the clustering family.
type Algorithm string

// Supported algorithms.
const (
	KMeans = Algorithm(algorithm.KMeans)
	GMM    = Algorithm(algorithm.GMM)
)

// Params maps parameter names (n_clusters, max_iter, random_state, init,
// covariance_type) to values. Integer parameters must be Go integers.
type Params map[string]any

// Request describes one clustering run.
type Request struct {
	// Dataset names a built-in dataset, or "uploaded".
	Dataset string
	// UploadedData is a JSON array of records. It is used when Dataset is
	// empty or "uploaded".
	UploadedData []byte
	// Algorithm defaults to KMeans.
	Algorithm Algorithm
	Params    Params
	// Standardize defaults to true when nil.
	Standardize *bool
}

// Result is a successful clustering run.
type Result struct {
	Algorithm    Algorithm
	Data         [][]float64
	Labels       []int
	FeatureNames []string
	// ClusterCenters is nil for GMM.
	ClusterCenters [][]float64
	// DBIndex and Silhouette are nil when quality metrics are disabled.
	DBIndex    *float64
	Silhouette *float64
	RunTime    time.Duration
}

// DatasetInfo describes a built-in dataset.
type DatasetInfo struct {
	Name         string
	Title        string
	Description  string
	Samples      int
	FeatureNames []string
}

// Bool returns a pointer to b, for Request.Standardize.
func Bool(b bool) *bool { return &b }
