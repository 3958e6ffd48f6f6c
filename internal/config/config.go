package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the clusterlab server configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	CORS       CORSConfig       `yaml:"cors"`
	Logging    LoggingConfig    `yaml:"logging"`
	Clustering ClusteringConfig `yaml:"clustering"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int   `yaml:"port"`
	ReadTimeoutSec  int   `yaml:"read_timeout_sec"`
	WriteTimeoutSec int   `yaml:"write_timeout_sec"`
	ShutdownSec     int   `yaml:"shutdown_timeout_sec"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes"`
}

// CORSConfig holds cross-origin settings for the browser front-end.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ClusteringConfig holds pipeline settings.
type ClusteringConfig struct {
	ComputeMetrics *bool `yaml:"compute_metrics"` // default: true
	MaxUploadRows  int   `yaml:"max_upload_rows"`
}

// MetricsEnabled reports whether quality scores are computed.
func (c ClusteringConfig) MetricsEnabled() bool {
	return c.ComputeMetrics == nil || *c.ComputeMetrics
}

// Load reads config/<env>.yaml, expands ${VAR} and ${VAR:-default}
// references, applies defaults and validates the result.
func Load(env string) (Config, error) {
	path := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

const (
	defaultMaxBodyBytes  = 16 << 20
	defaultMaxUploadRows = 100_000
)

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 120
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		c.HTTP.MaxBodyBytes = defaultMaxBodyBytes
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if c.Clustering.ComputeMetrics == nil {
		enabled := true
		c.Clustering.ComputeMetrics = &enabled
	}
	if c.Clustering.MaxUploadRows <= 0 {
		c.Clustering.MaxUploadRows = defaultMaxUploadRows
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level))
	}
	for i, o := range c.CORS.AllowedOrigins {
		if strings.TrimSpace(o) == "" {
			errs = append(errs, fmt.Errorf("cors.allowed_origins[%d] is empty", i))
		}
	}
	return errors.Join(errs...)
}

var logLevels = []string{"", "debug", "info", "warn", "error"}

// findConfigPath returns the first existing <env>.yaml among
// $CONFIG_DIR, ./config and the repository's config directory.
func findConfigPath(env string) string {
	name := env + ".yaml"

	var dirs []string
	if d := os.Getenv("CONFIG_DIR"); d != "" {
		dirs = append(dirs, d)
	}
	dirs = append(dirs, "config")
	if _, src, _, ok := runtime.Caller(0); ok {
		dirs = append(dirs, filepath.Join(filepath.Dir(src), "..", "..", "config"))
	}

	for _, d := range dirs {
		p := filepath.Join(d, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join("config", name)
}

// expandEnvVars substitutes ${VAR} and ${VAR:-default}. An unset or empty
// VAR without a default expands to "".
func expandEnvVars(s string) string {
	return os.Expand(s, func(expr string) string {
		name, def, hasDef := strings.Cut(expr, ":-")
		if v := os.Getenv(name); v != "" || !hasDef {
			return v
		}
		return def
	})
}
