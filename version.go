/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package blobstream

// Release metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/suparena/blobstream.GitCommit=$(git rev-parse HEAD)" ./cmd/blobstream
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// VersionInfo is what `blobstream -version` prints.
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
}

// GetVersionInfo snapshots the link-time variables.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
	}
}
