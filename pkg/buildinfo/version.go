// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/tichlinh-png/trace-worksheet/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/tichlinh-png/trace-worksheet/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/tichlinh-png/trace-worksheet/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/tracesheet
package buildinfo

import "fmt"

// Name is the program name used in version output and HTTP headers.
const Name = "tracesheet"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
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

// Generator identifies this build in exported files and the Server header,
// e.g. "tracesheet/v1.2.3".
func Generator() string {
	return Name + "/" + Version
}
