/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package logging installs the process-wide slog handler.
//
// Logs always go to stderr by default so they never mix with the
// validation report on stdout. Terminals get colored tint output, other
// destinations plain text, and --log-json switches to JSON lines:
//
//	logging.SetDefaultStructuredLogger("gridcert", version,
//	    logging.WithDebug(cmd.Bool("debug")),
//	    logging.WithJSON(cmd.Bool("log-json")))
package logging

import (
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/NVIDIA/gridcert/pkg/defaults"
)

type settings struct {
	level    slog.Level
	json     bool
	output   io.Writer
	terminal *bool
}

// Option configures the installed handler.
type Option func(*settings)

// WithDebug forces debug level when enabled.
func WithDebug(debug bool) Option {
	return func(s *settings) {
		if debug {
			s.level = slog.LevelDebug
		}
	}
}

// WithLevel sets the level by name (debug, info, warn, error).
func WithLevel(name string) Option {
	return func(s *settings) {
		s.level = ParseLevel(name)
	}
}

// WithJSON selects JSON output.
func WithJSON(enabled bool) Option {
	return func(s *settings) {
		s.json = enabled
	}
}

// WithOutput replaces stderr.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithTerminal overrides terminal detection.
func WithTerminal(terminal bool) Option {
	return func(s *settings) {
		s.terminal = &terminal
	}
}

// ParseLevel maps a level name to a slog level. Unknown names are info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler builds a handler. The level defaults to LOG_LEVEL.
func NewHandler(opts ...Option) slog.Handler {
	s := &settings{
		level:  ParseLevel(envOr(defaults.EnvLogLevel, defaults.LogLevel)),
		output: os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.json {
		return slog.NewJSONHandler(s.output, &slog.HandlerOptions{Level: s.level})
	}
	if s.isTerminal() {
		return tint.NewHandler(s.output, &tint.Options{
			Level:      s.level,
			NoColor:    runtime.GOOS == "windows",
			AddSource:  s.level <= slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		})
	}
	return slog.NewTextHandler(s.output, &slog.HandlerOptions{Level: s.level})
}

// SetDefaultStructuredLogger installs a handler as the slog default, tagged
// with the program name and version, and returns the logger.
func SetDefaultStructuredLogger(name, version string, opts ...Option) *slog.Logger {
	logger := slog.New(NewHandler(opts...))
	if name != "" {
		logger = logger.With("name", name)
	}
	if version != "" {
		logger = logger.With("version", version)
	}
	slog.SetDefault(logger)
	return logger
}

func (s *settings) isTerminal() bool {
	if s.terminal != nil {
		return *s.terminal
	}
	f, ok := s.output.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
