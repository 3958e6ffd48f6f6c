package clusterlab

import "context"

// HealthStatus represents the aggregated readiness of the client.
type HealthStatus struct {
	Status  string            // "ok", "degraded", "error"
	Version string            // build version
	Checks  map[string]string // component → "ok"/"error"
}

// Health checks the dataset catalog.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.health.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status:  string(report.Status),
		Version: report.Version,
		Checks:  checks,
	}
}
