// Package build holds build-time metadata stamped in by the release pipeline.
package build

// These values are replaced at link time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
