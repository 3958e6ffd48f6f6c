package result

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	"github.com/kailas-cloud/clusterlab/internal/domain/algorithm"
)

// QualityReport holds unsupervised clustering scores.
type QualityReport struct {
	// DaviesBouldin is the compactness/separation ratio (lower is better).
	DaviesBouldin float64
	// Silhouette is the mean silhouette coefficient in [-1, 1] (higher is better).
	Silhouette float64
}

// ClusterResult is the single externally visible artifact of a clustering run.
type ClusterResult struct {
	Algorithm    algorithm.Algorithm
	Data         *mat.Dense
	Labels       []int
	FeatureNames []string
	// Centers is nil for algorithms without centroids.
	Centers *mat.Dense
	// Quality is nil when metrics computation is disabled.
	Quality *QualityReport
	Elapsed time.Duration
}

// Rows returns Data as nested slices.
func (r *ClusterResult) Rows() [][]float64 {
	return toRows(r.Data)
}

// CenterRows returns Centers as nested slices, or nil when absent.
func (r *ClusterResult) CenterRows() [][]float64 {
	if r.Centers == nil {
		return nil
	}
	return toRows(r.Centers)
}

// Assemble composes a ClusterResult after checking shape invariants.
// Any mismatch indicates a defect upstream and yields ErrAssembly.
func Assemble(
	algo algorithm.Algorithm,
	data *mat.Dense,
	labels []int,
	names []string,
	centers *mat.Dense,
	quality *QualityReport,
	elapsed time.Duration,
) (ClusterResult, error) {
	if data == nil {
		return ClusterResult{}, domain.NewAssemblyError("missing feature matrix")
	}
	n, d := data.Dims()
	if d != len(names) {
		return ClusterResult{}, domain.NewAssemblyError(
			"feature matrix has %d columns but %d feature names", d, len(names))
	}
	if n != len(labels) {
		return ClusterResult{}, domain.NewAssemblyError(
			"feature matrix has %d rows but %d labels", n, len(labels))
	}
	if centers != nil {
		if _, cd := centers.Dims(); cd != d {
			return ClusterResult{}, domain.NewAssemblyError(
				"cluster centers have %d columns, expected %d", cd, d)
		}
	}

	ls := make([]int, len(labels))
	copy(ls, labels)
	ns := make([]string, len(names))
	copy(ns, names)

	return ClusterResult{
		Algorithm:    algo,
		Data:         data,
		Labels:       ls,
		FeatureNames: ns,
		Centers:      centers,
		Quality:      quality,
		Elapsed:      elapsed,
	}, nil
}

func toRows(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range r {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
