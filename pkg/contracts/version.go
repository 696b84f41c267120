// Package contracts holds the shared types exchanged between the
// service layers: the reconciliation domain model and build metadata.
package contracts

import (
	"fmt"
	"runtime"
)

// Build metadata, overridden at build time with -ldflags.
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// VersionInfo is the detailed build description exposed by the health
// endpoint and the CLI -version flag.
type VersionInfo struct {
	Version      string `json:"version"`
	BuildTime    string `json:"build_time"`
	GitCommit    string `json:"git_commit"`
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Architecture string `json:"architecture"`
}

// GetVersionInfo returns the build description for this binary.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:      Version,
		BuildTime:    BuildTime,
		GitCommit:    GitCommit,
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}
}

// GetFullVersionString returns a single-line version banner.
func GetFullVersionString() string {
	info := GetVersionInfo()
	return fmt.Sprintf("dgrh v%s (built: %s, commit: %s, go: %s, os: %s/%s)",
		info.Version, info.BuildTime, info.GitCommit,
		info.GoVersion, info.OS, info.Architecture)
}
