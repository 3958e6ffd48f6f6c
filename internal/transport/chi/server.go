package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/clusterlab/internal/domain"
	domds "github.com/kailas-cloud/clusterlab/internal/domain/dataset"
	"github.com/kailas-cloud/clusterlab/internal/domain/params"
	"github.com/kailas-cloud/clusterlab/internal/domain/request"
	"github.com/kailas-cloud/clusterlab/internal/domain/result"
	"github.com/kailas-cloud/clusterlab/internal/logger"
	healthuc "github.com/kailas-cloud/clusterlab/internal/usecase/health"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 16 << 20

// ClusteringService runs clustering requests.
type ClusteringService interface {
	Perform(ctx context.Context, req request.Request) (result.ClusterResult, error)
	Datasets() []domds.Info
}

// HealthChecker reports component readiness.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the clustering HTTP API.
type Server struct {
	clustering    ClusteringService
	health        HealthChecker
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(clustering ClusteringService, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		clustering:   clustering,
		health:       health,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest),
	}
	return s
}

// WithMaxBodyBytes overrides the request body limit.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/cluster", s.Cluster)
	r.Get("/api/datasets", s.ListDatasets)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// clusterRequest is the body of POST /api/cluster.
type clusterRequest struct {
	Dataset      string          `json:"dataset"`
	UploadedData json.RawMessage `json:"uploadedData"`
	Algorithm    string          `json:"algorithm"`
	Params       map[string]any  `json:"params"`
	Standardize  *bool           `json:"standardize"`
}

// clusterResponse is a successful clustering run. ClusterCenters, DBIndex
// and Silhouette encode as null when absent.
type clusterResponse struct {
	Success        bool        `json:"success"`
	Data           [][]float64 `json:"data"`
	Labels         []int       `json:"labels"`
	FeatureNames   []string    `json:"feature_names"`
	ClusterCenters [][]float64 `json:"cluster_centers"`
	DBIndex        *float64    `json:"db_index"`
	Silhouette     *float64    `json:"silhouette"`
	RunTime        float64     `json:"run_time"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type datasetInfo struct {
	Name         string   `json:"name"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Samples      int      `json:"samples"`
	FeatureNames []string `json:"feature_names"`
}

type datasetsResponse struct {
	Success  bool          `json:"success"`
	Datasets []datasetInfo `json:"datasets"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// Cluster handles POST /api/cluster.
func (s *Server) Cluster(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeClusterRequest(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	res, err := s.clustering.Perform(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, clusterResultToResponse(&res))
}

func (s *Server) decodeClusterRequest(w http.ResponseWriter, r *http.Request) (request.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var body clusterRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return request.Request{}, err //nolint:wrapcheck // reported verbatim to the client
	}

	var uploaded []byte
	if len(body.UploadedData) > 0 && string(body.UploadedData) != "null" {
		uploaded = body.UploadedData
	}
	return request.New(body.Dataset, uploaded, body.Algorithm, params.Params(body.Params), body.Standardize), nil
}

// ListDatasets handles GET /api/datasets.
func (s *Server) ListDatasets(w http.ResponseWriter, _ *http.Request) {
	infos := s.clustering.Datasets()
	items := make([]datasetInfo, len(infos))
	for i, info := range infos {
		items[i] = datasetInfo{
			Name:         info.Name,
			Title:        info.Title,
			Description:  info.Description,
			Samples:      info.Samples,
			FeatureNames: info.FeatureNames,
		}
	}
	writeJSON(w, http.StatusOK, datasetsResponse{Success: true, Datasets: items})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:  string(report.Status),
		Version: report.Version,
		Checks:  checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, err.Error())
		return true
	}
}

// handleDomainError maps pipeline errors to statuses. Unmatched errors,
// dataset errors included, are server errors carrying their cause.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	logger.FromContextOr(r.Context(), s.logger).Debug("request failed",
		zap.String("kind", domain.ErrorKind(err)), zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func clusterResultToResponse(res *result.ClusterResult) clusterResponse {
	resp := clusterResponse{
		Success:        true,
		Data:           res.Rows(),
		Labels:         res.Labels,
		FeatureNames:   res.FeatureNames,
		ClusterCenters: res.CenterRows(),
		RunTime:        res.Elapsed.Seconds(),
	}
	if res.Quality != nil {
		db, sil := res.Quality.DaviesBouldin, res.Quality.Silhouette
		resp.DBIndex = &db
		resp.Silhouette = &sil
	}
	return resp
}
