package buildinfo

import "time"

// Set via -ldflags at build time
var (
	Version    string // release tag, empty for dev builds
	BuildTime  string // when the binary was compiled
	CommitTime string // last git commit time (last code edit)
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)

// Short returns the version for display, falling back to the commit
// hash and then to "dev".
func Short() string {
	if Version != "" {
		return Version
	}
	if CommitHash != "" {
		return CommitHash
	}
	return "dev"
}
