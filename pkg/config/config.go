/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gridcert/pkg/batch"
	"github.com/NVIDIA/gridcert/pkg/defaults"
	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/serializer"
)

// Config is the resolved configuration of a run.
type Config struct {
	standardsPath   string
	standardVersion string
	reference       string
	ignore          []string
	coordinates     bool
	lazy            bool
	missing         string
	releaseYear     int
	summaryFormat   string
}

// Option is a functional option for Config.
type Option func(*Config)

// WithStandardsPath sets the metadata standards directory or file.
func WithStandardsPath(p string) Option {
	return func(c *Config) {
		if p != "" {
			c.standardsPath = p
		}
	}
}

// WithStandardVersion selects a standard version within a directory.
func WithStandardVersion(v string) Option {
	return func(c *Config) {
		c.standardVersion = v
	}
}

// WithReference switches to reference mode.
func WithReference(p string) Option {
	return func(c *Config) {
		c.reference = p
	}
}

// WithIgnore appends ignore list entries.
func WithIgnore(entries ...string) Option {
	return func(c *Config) {
		c.ignore = append(c.ignore, entries...)
	}
}

// WithCoordinates enables the coordinate checks.
func WithCoordinates(enabled bool) Option {
	return func(c *Config) {
		c.coordinates = enabled
	}
}

// WithLazy demotes tolerance errors to warnings.
func WithLazy(lazy bool) Option {
	return func(c *Config) {
		c.lazy = lazy
	}
}

// WithMissing enables missing-file detection for a cadence class.
func WithMissing(class string) Option {
	return func(c *Config) {
		c.missing = class
	}
}

// WithReleaseYear sets the ${year} placeholder.
func WithReleaseYear(year int) Option {
	return func(c *Config) {
		if year > 0 {
			c.releaseYear = year
		}
	}
}

// WithSummaryFormat sets the format of machine-readable summaries.
func WithSummaryFormat(f string) Option {
	return func(c *Config) {
		if f != "" {
			c.summaryFormat = f
		}
	}
}

// NewConfig returns the defaults with opts applied.
func NewConfig(opts ...Option) *Config {
	c := &Config{
		standardsPath: defaults.StandardsPath(),
		releaseYear:   defaults.ReleaseYear(),
		summaryFormat: defaults.SummaryFormat,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Config) StandardsPath() string   { return c.standardsPath }
func (c *Config) StandardVersion() string { return c.standardVersion }
func (c *Config) Reference() string       { return c.reference }
func (c *Config) Ignore() []string        { return slices.Clone(c.ignore) }
func (c *Config) Coordinates() bool       { return c.coordinates }
func (c *Config) Lazy() bool              { return c.lazy }
func (c *Config) Missing() string         { return c.missing }
func (c *Config) ReleaseYear() int        { return c.releaseYear }
func (c *Config) SummaryFormat() string   { return c.summaryFormat }

// ReferenceMode reports whether files are compared with a reference file.
func (c *Config) ReferenceMode() bool { return c.reference != "" }

// Validate checks option consistency.
func (c *Config) Validate() error {
	if c.reference != "" && c.standardVersion != "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "a reference file and a standard version are mutually exclusive")
	}
	if c.reference == "" && c.standardsPath == "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest, "a metadata standards location is required")
	}
	if c.missing != "" && !batch.ValidClass(c.missing) {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest, "invalid missing-file class",
			map[string]any{"missing": c.missing, "valid": batch.MissingClasses})
	}
	if serializer.Format(c.summaryFormat).IsUnknown() {
		return cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest, "unknown summary format",
			map[string]any{"format": c.summaryFormat, "valid": serializer.SupportedFormats()})
	}
	return nil
}

// File is the on-disk form of a configuration.
type File struct {
	StandardsPath   string   `yaml:"standardsPath,omitempty"`
	StandardVersion string   `yaml:"standardVersion,omitempty"`
	Reference       string   `yaml:"reference,omitempty"`
	Ignore          []string `yaml:"ignore,omitempty"`
	Coordinates     bool     `yaml:"coordinates,omitempty"`
	Lazy            bool     `yaml:"lazy,omitempty"`
	Missing         string   `yaml:"missing,omitempty"`
	ReleaseYear     int      `yaml:"releaseYear,omitempty"`
	SummaryFormat   string   `yaml:"summaryFormat,omitempty"`
}

// LoadFile reads a YAML configuration file. Unknown keys are rejected.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := cnserrors.ErrCodeUnavailable
		if os.IsNotExist(err) {
			code = cnserrors.ErrCodeNotFound
		}
		return nil, cnserrors.WrapWithContext(code, "failed to read config file", err, map[string]any{"path": path})
	}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat, "failed to parse config file", err, map[string]any{"path": path})
	}
	return &f, nil
}

// Options returns the settings of f as options.
func (f *File) Options() []Option {
	if f == nil {
		return nil
	}
	return []Option{
		WithStandardsPath(f.StandardsPath),
		WithStandardVersion(f.StandardVersion),
		WithReference(f.Reference),
		WithIgnore(f.Ignore...),
		WithCoordinates(f.Coordinates),
		WithLazy(f.Lazy),
		WithMissing(f.Missing),
		WithReleaseYear(f.ReleaseYear),
		WithSummaryFormat(f.SummaryFormat),
	}
}
