package health

import (
	"context"

	"github.com/kailas-cloud/clusterlab/internal/version"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status  Status
	Version string
	Checks  map[string]CheckResult
}

type namedCheck struct {
	name   string
	pinger Pinger
}

// Service coordinates health checks.
type Service struct {
	checks []namedCheck
}

// New creates a Service that checks the dataset catalog.
func New(datasets Pinger) *Service {
	return &Service{checks: []namedCheck{{name: "datasets", pinger: datasets}}}
}

// WithCheck adds a named component check.
func (s *Service) WithCheck(name string, p Pinger) *Service {
	if p != nil {
		s.checks = append(s.checks, namedCheck{name: name, pinger: p})
	}
	return s
}

// Check runs all component checks. The status is Healthy when every check
// passes, Unhealthy when all fail, and Degraded otherwise.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	failed := 0
	for _, c := range s.checks {
		if err := c.pinger.Ping(ctx); err != nil {
			checks[c.name] = CheckError
			failed++
		} else {
			checks[c.name] = CheckOK
		}
	}

	status := Healthy
	switch {
	case failed == 0:
	case failed == len(s.checks):
		status = Unhealthy
	default:
		status = Degraded
	}

	return Report{Status: status, Version: version.Version, Checks: checks}
}
