package metrics

import "github.com/prometheus/client_golang/prometheus"

// Clustering Prometheus metrics.
var (
	FitDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clusterlab",
			Name:      "fit_duration_seconds",
			Help:      "Time spent fitting a clustering algorithm",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"algorithm"},
	)

	ClusterRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clusterlab",
			Name:      "cluster_runs_total",
			Help:      "Total number of clustering pipeline runs",
		},
		[]string{"algorithm", "status"}, // "ok" / "error"
	)

	ClusterErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "clusterlab",
			Name:      "cluster_errors_total",
			Help:      "Clustering pipeline failures by stage",
		},
		[]string{"kind"},
	)

	SilhouetteScore = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "clusterlab",
			Name:      "silhouette_score",
			Help:      "Mean silhouette coefficient of successful runs",
			Buckets:   prometheus.LinearBuckets(-1, 0.2, 11),
		},
		[]string{"algorithm"},
	)
)

var clusteringMetricsRegistered bool

// RegisterClusteringMetrics registers clustering metrics with the default
// registry. Must be called once from main.
func RegisterClusteringMetrics() {
	if clusteringMetricsRegistered {
		return
	}
	prometheus.MustRegister(FitDuration)
	prometheus.MustRegister(ClusterRunsTotal)
	prometheus.MustRegister(ClusterErrorsTotal)
	prometheus.MustRegister(SilhouetteScore)
	clusteringMetricsRegistered = true
}
