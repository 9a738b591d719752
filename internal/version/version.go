// Package version carries build metadata for goosint.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "1.0"     // Written to session_info.tool_version
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("goosint %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
