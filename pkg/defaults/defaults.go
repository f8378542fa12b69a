/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Environment variables.
const (
	// EnvStandardsPath overrides the metadata standards location.
	EnvStandardsPath = "GRIDCERT_STANDARDS_PATH"
	// EnvReleaseYear sets the ${year} placeholder of standard entries.
	EnvReleaseYear = "GRIDCERT_RELEASE_YEAR"
	// EnvLogLevel sets the log level (debug, info, warn, error).
	EnvLogLevel = "LOG_LEVEL"
)

const (
	// StandardsDir is the directory holding the metadata standards, relative
	// to the installation prefix.
	StandardsDir = "share"

	// SummaryFormat is the default format of machine-readable summaries.
	SummaryFormat = "yaml"

	// LogLevel is the default log level.
	LogLevel = "info"
)

// StandardsPath returns the standards location: EnvStandardsPath when set,
// otherwise <exe dir>/../share.
func StandardsPath() string {
	if p := os.Getenv(EnvStandardsPath); p != "" {
		return p
	}
	exe, err := os.Executable()
	if err != nil {
		return StandardsDir
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), StandardsDir)
}

// ReleaseYear returns EnvReleaseYear when it holds a year, else the current
// year.
func ReleaseYear() int {
	if y, err := strconv.Atoi(os.Getenv(EnvReleaseYear)); err == nil && y > 0 {
		return y
	}
	return time.Now().Year()
}
