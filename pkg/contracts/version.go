package contracts

import (
	"fmt"
	"runtime"
)

// Version of nbastats. Also reported as the OTel service version.
const Version = "0.3.0"

// Set with -ldflags "-X nbastats/pkg/contracts.GitCommit=..."
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// GetVersionString returns "nbastats v<Version>"
func GetVersionString() string {
	return fmt.Sprintf("nbastats v%s", Version)
}

// GetFullVersionString appends build and platform details, as printed by -version
func GetFullVersionString() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s %s/%s)",
		GetVersionString(), GitCommit, BuildTime,
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
