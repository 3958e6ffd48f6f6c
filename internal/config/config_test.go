package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := Config{HTTP: HTTPConfig{Port: port}}
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_LogLevel(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		t.Run("level="+level, func(t *testing.T) {
			cfg := Config{HTTP: HTTPConfig{Port: 8080}, Logging: LoggingConfig{Level: level}}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for level %q: %v", level, err)
			}
		})
	}

	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Logging: LoggingConfig{Level: "verbose"}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown level")
	}
	expected := `logging.level must be one of debug, info, warn, error, got "verbose"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_EmptyOrigin(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8080},
		CORS: CORSConfig{AllowedOrigins: []string{"http://localhost:3000", " "}},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty origin")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("expected WriteTimeoutSec=120, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.HTTP.MaxBodyBytes != 16<<20 {
		t.Errorf("expected MaxBodyBytes=16MiB, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "*" {
		t.Errorf("expected AllowedOrigins=[*], got %v", cfg.CORS.AllowedOrigins)
	}
	if !cfg.Clustering.MetricsEnabled() {
		t.Error("expected metrics enabled by default")
	}
	if cfg.Clustering.MaxUploadRows != 100_000 {
		t.Errorf("expected MaxUploadRows=100000, got %d", cfg.Clustering.MaxUploadRows)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	disabled := false
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5, MaxBodyBytes: 1024},
		CORS:       CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Clustering: ClusteringConfig{ComputeMetrics: &disabled, MaxUploadRows: 500},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.MaxBodyBytes != 1024 {
		t.Errorf("expected MaxBodyBytes=1024, got %d", cfg.HTTP.MaxBodyBytes)
	}
	if cfg.CORS.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("unexpected origins %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.Clustering.MetricsEnabled() {
		t.Error("expected metrics to stay disabled")
	}
	if cfg.Clustering.MaxUploadRows != 500 {
		t.Errorf("expected MaxUploadRows=500, got %d", cfg.Clustering.MaxUploadRows)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("CLUSTERLAB_TEST_PORT", "9090")

	tests := []struct {
		in   string
		want string
	}{
		{"port: ${CLUSTERLAB_TEST_PORT}", "port: 9090"},
		{"port: ${CLUSTERLAB_TEST_PORT:-5000}", "port: 9090"},
		{"port: ${CLUSTERLAB_TEST_UNSET:-5000}", "port: 5000"},
		{"port: ${CLUSTERLAB_TEST_UNSET}", "port: "},
	}

	for _, tc := range tests {
		if got := expandEnvVars(tc.in); got != tc.want {
			t.Errorf("expandEnvVars(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLoad_Local(t *testing.T) {
	t.Setenv("PORT", "5055")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 5055 {
		t.Errorf("expected port 5055, got %d", cfg.HTTP.Port)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %q", cfg.Logging.Level)
	}
	if !cfg.Clustering.MetricsEnabled() {
		t.Error("expected metrics enabled")
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 0},
		Logging: LoggingConfig{Level: "trace"},
		CORS:    CORSConfig{AllowedOrigins: []string{""}},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"http.port", "logging.level", "cors.allowed_origins[0]"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestLoad_ConfigDir(t *testing.T) {
	dir := t.TempDir()
	yaml := "http:\n  port: ${CLUSTERLAB_TEST_PORT:-7070}\nclustering:\n  compute_metrics: false\n"
	if err := os.WriteFile(filepath.Join(dir, "ci.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load("ci")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 7070 {
		t.Errorf("expected port 7070, got %d", cfg.HTTP.Port)
	}
	if cfg.Clustering.MetricsEnabled() {
		t.Error("expected metrics disabled")
	}
	if cfg.Clustering.MaxUploadRows != 100_000 {
		t.Errorf("expected default MaxUploadRows, got %d", cfg.Clustering.MaxUploadRows)
	}
}

func TestLoad_MissingEnv(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("expected prod, got %q", got)
	}
}
