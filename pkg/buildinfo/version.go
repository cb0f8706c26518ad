// Package buildinfo holds version information injected at build time:
//
//	go build -ldflags "-X github.com/matzehuels/sandboxer/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/sandboxer/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/sandboxer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/sandboxer
package buildinfo

import "fmt"

var (
	Version = "dev"     // Semantic version, e.g. "v1.2.3"
	Commit  = "none"    // Git commit SHA
	Date    = "unknown" // Build timestamp
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// Server returns the value of the Server response header.
func Server() string {
	return "sandboxer/" + Version
}
