// ============================================================================
// throwables - Scarpet Exception Taxonomy
// ============================================================================
//
// Package:     version
// Description: Build and schema version information
// Author:      Mike Stoffels
// Created:     2026-10-14
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Set at build time via -ldflags "-X github.com/msto63/throwables/pkg/core/version.Version=..."
var (
	Version   = "0.1.0"
	GitCommit = "development"
	BuildDate = "unknown"
)

// DeclarationSchema is the newest declaration file schema this build reads.
// Files without a schema field are treated as schema 1.
const DeclarationSchema = 1

// Info describes the running build
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String formats the info the way the version command prints it
func (i Info) String() string {
	return fmt.Sprintf("throwables v%s\n  Git Commit: %s\n  Build Date: %s\n  Go Version: %s\n  OS/Arch:    %s\n",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// SupportsSchema reports whether a declaration file schema can be read
func SupportsSchema(schema int) bool {
	return schema >= 1 && schema <= DeclarationSchema
}
