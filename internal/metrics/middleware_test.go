package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/cluster", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/api/datasets", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/fail", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	return r
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	r := newRouter()

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/cluster", "200"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest("POST", "/api/cluster", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/cluster", "200"))
	if after-before != 1 {
		t.Errorf("expected requests_total to grow by 1, got %f", after-before)
	}
	if testutil.CollectAndCount(httpRequestDuration) == 0 {
		t.Error("expected http_request_duration_seconds to have observations")
	}
}

func TestMiddleware_StatusCodes(t *testing.T) {
	r := newRouter()

	tests := []struct {
		method string
		path   string
		label  string
		status string
	}{
		{"GET", "/api/datasets", "/api/datasets", "200"},
		{"GET", "/fail", "/fail", "400"},
		{"GET", "/missing", "unknown", "404"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, http.NoBody))

			val := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(tc.method, tc.label, tc.status))
			if val < 1 {
				t.Errorf("expected requests_total{path=%q,status=%q} >= 1, got %f", tc.label, tc.status, val)
			}
		})
	}
}

func TestMiddleware_ResponseSizeAndInFlight(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware())
	var during float64
	r.Get("/api/datasets", func(w http.ResponseWriter, _ *http.Request) {
		during = testutil.ToFloat64(httpInFlight)
		_, _ = w.Write([]byte("0123456789"))
	})

	before := testutil.ToFloat64(httpInFlight)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/datasets", http.NoBody))

	if during != before+1 {
		t.Errorf("expected in-flight %v during request, got %v", before+1, during)
	}
	if after := testutil.ToFloat64(httpInFlight); after != before {
		t.Errorf("expected in-flight back to %v, got %v", before, after)
	}
	if n := testutil.CollectAndCount(httpResponseBytes); n == 0 {
		t.Error("expected response_size_bytes observations")
	}
}

func TestResponseRecorder_FirstStatusWins(t *testing.T) {
	rr := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: rr, status: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)
	rec.WriteHeader(http.StatusInternalServerError)
	_, _ = rec.Write([]byte("abc"))

	if rec.status != http.StatusTeapot || rr.Code != http.StatusTeapot {
		t.Errorf("expected 418, got recorder=%d underlying=%d", rec.status, rr.Code)
	}
	if rec.bytes != 3 {
		t.Errorf("expected 3 bytes, got %d", rec.bytes)
	}
}

func TestNormalizePath_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/anything", http.NoBody)
	if got := normalizePath(req); got != "unknown" {
		t.Errorf("normalizePath() = %q, want %q", got, "unknown")
	}
}

func TestRegisterClusteringMetrics_Idempotent(t *testing.T) {
	RegisterClusteringMetrics()
	RegisterClusteringMetrics()

	ClusterRunsTotal.WithLabelValues("kmeans", "ok").Inc()
	if v := testutil.ToFloat64(ClusterRunsTotal.WithLabelValues("kmeans", "ok")); v < 1 {
		t.Errorf("expected cluster_runs_total >= 1, got %f", v)
	}
}
