// Package version carries the clusterlab build stamp.
// Values are set with -ldflags "-X .../internal/version.Version=...".
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
