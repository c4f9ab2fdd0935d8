// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/ThomasStivers/labeller/pkg/buildinfo.Version=2017.10 \
//	    -X github.com/ThomasStivers/labeller/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/ThomasStivers/labeller/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the release version, year and month.
	// Set via ldflags: -X github.com/ThomasStivers/labeller/pkg/buildinfo.Version=...
	Version = "2017.10"

	// Commit is the git commit SHA.
	// Set via ldflags: -X github.com/ThomasStivers/labeller/pkg/buildinfo.Commit=...
	Commit = "none"

	// Date is the build timestamp.
	// Set via ldflags: -X github.com/ThomasStivers/labeller/pkg/buildinfo.Date=...
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
