// Package defaults provides centralized configuration constants for gridcert.
//
// This package defines the environment variables, file locations and default
// values used across the codebase. Centralizing these values keeps the CLI,
// the configuration file and the library entry points consistent.
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/gridcert/pkg/defaults"
//
//	dir := defaults.StandardsPath()
//
// # Resolution Order
//
// Values are resolved once at startup and threaded explicitly through the
// components that need them:
//
//   - CLI flags
//   - configuration file (--config)
//   - environment variables (GRIDCERT_STANDARDS_PATH, GRIDCERT_RELEASE_YEAR, LOG_LEVEL)
//   - built-in defaults
package defaults
