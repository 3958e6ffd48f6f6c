package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterlab/internal/config"
	logpkg "github.com/kailas-cloud/clusterlab/internal/logger"
	"github.com/kailas-cloud/clusterlab/internal/metrics"
	datasetrepo "github.com/kailas-cloud/clusterlab/internal/repository/dataset"
	chiTransport "github.com/kailas-cloud/clusterlab/internal/transport/chi"
	clusteringuc "github.com/kailas-cloud/clusterlab/internal/usecase/clustering"
	healthuc "github.com/kailas-cloud/clusterlab/internal/usecase/health"
	"github.com/kailas-cloud/clusterlab/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting clusterlab API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("compute_metrics", cfg.Clustering.MetricsEnabled()),
		zap.Int("max_upload_rows", cfg.Clustering.MaxUploadRows),
	)

	// Register clustering metrics explicitly (no init())
	metrics.RegisterClusteringMetrics()

	// The built-in catalog is parsed once and shared read-only across requests.
	datasets, err := datasetrepo.New()
	if err != nil {
		logger.Fatal("Failed to load dataset catalog", zap.Error(err))
	}
	datasets.WithMaxUploadRows(cfg.Clustering.MaxUploadRows)
	logger.Info("Dataset catalog loaded", zap.Int("datasets", len(datasets.Catalog())))

	clusteringSvc := clusteringuc.New(datasets, logger).
		WithMetrics(cfg.Clustering.MetricsEnabled()).
		WithInstrumentation()
	healthSvc := healthuc.New(datasets)

	server := chiTransport.NewServer(clusteringSvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)
	handler := chiTransport.NewRouter(server, logger, cfg.CORS.AllowedOrigins, metrics.Middleware())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}
