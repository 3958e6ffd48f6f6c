package clusterlab

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	maxUploadRows  int
	computeMetrics bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithMaxUploadRows caps the number of uploaded records.
// Default: 100000.
func WithMaxUploadRows(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxUploadRows = n
	})
}

// WithQualityMetrics toggles Davies-Bouldin and silhouette scoring.
// Default: enabled.
func WithQualityMetrics(enabled bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.computeMetrics = enabled
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
