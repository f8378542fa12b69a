/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/ignore"
	"github.com/NVIDIA/gridcert/pkg/report"
	"github.com/NVIDIA/gridcert/pkg/standard"
	"github.com/NVIDIA/gridcert/pkg/validator/attribute"
	"github.com/NVIDIA/gridcert/pkg/validator/reference"
	"github.com/NVIDIA/gridcert/pkg/validator/structure"
)

const (
	// APIVersion is the API version for validation summaries.
	APIVersion = "gridcert.nvidia.com/v1alpha1"

	// Kind is the kind for validation summaries.
	Kind = "ValidationSummary"

	// FileSection reports problems with the file itself.
	FileSection = "file"
	// StandardSection names the metadata standard check in reports.
	StandardSection = "metadata standard"
	// CoordinatesSection names the coordinate checks in reports.
	CoordinatesSection = "coordinates"

	suffix = ".nc"
)

// Validator certifies files in standard or reference mode.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string

	catalog     *standard.Catalog
	vocab       attribute.Vocabularies
	reference   dataset.Dataset
	ignore      *ignore.List
	coordinates bool
	lazy        bool
	year        int
	open        dataset.Opener
	out         io.Writer
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// WithCatalog selects standard mode with the given catalog.
func WithCatalog(c *standard.Catalog) Option {
	return func(v *Validator) {
		v.catalog = c
	}
}

// WithVocabularies sets the keyword vocabulary source of standard mode.
func WithVocabularies(vocab attribute.Vocabularies) Option {
	return func(v *Validator) {
		v.vocab = vocab
	}
}

// WithReference selects reference mode. The caller owns ref and closes it
// after the last file.
func WithReference(ref dataset.Dataset) Option {
	return func(v *Validator) {
		v.reference = ref
	}
}

// WithIgnore sets the attribute ignore list.
func WithIgnore(l *ignore.List) Option {
	return func(v *Validator) {
		v.ignore = l
	}
}

// WithCoordinates enables the coordinate checks.
func WithCoordinates(enabled bool) Option {
	return func(v *Validator) {
		v.coordinates = enabled
	}
}

// WithLazy demotes tolerance errors to warnings.
func WithLazy(lazy bool) Option {
	return func(v *Validator) {
		v.lazy = lazy
	}
}

// WithReleaseYear sets the value of the ${year} placeholder. Zero uses the
// current year.
func WithReleaseYear(year int) Option {
	return func(v *Validator) {
		v.year = year
	}
}

// WithOpener replaces the dataset backend.
func WithOpener(open dataset.Opener) Option {
	return func(v *Validator) {
		if open != nil {
			v.open = open
		}
	}
}

// WithWriter sets the destination of the text reports. Default is io.Discard.
func WithWriter(w io.Writer) Option {
	return func(v *Validator) {
		v.out = w
	}
}

// New creates a new Validator. Exactly one of WithCatalog and WithReference
// must be given.
func New(opts ...Option) (*Validator, error) {
	v := &Validator{open: dataset.Open, out: io.Discard}
	for _, opt := range opts {
		opt(v)
	}
	switch {
	case v.catalog == nil && v.reference == nil:
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "either a metadata standard or a reference file is required")
	case v.catalog != nil && v.reference != nil:
		return nil, cnserrors.New(cnserrors.ErrCodeInvalidRequest, "metadata standard and reference file are mutually exclusive")
	}
	if v.year == 0 {
		v.year = time.Now().Year()
	}
	return v, nil
}

// ValidateFile validates the file at path. Problems with the file are
// recorded in the returned report; the error is reserved for cancellation.
func (v *Validator) ValidateFile(ctx context.Context, path string) (*report.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "validation canceled", err)
	}
	start := time.Now()
	r := report.New(filepath.Base(path), report.WithWriter(v.out), report.WithLazy(v.lazy))
	defer func() {
		validationDuration.Observe(time.Since(start).Seconds())
		observe(r.Passed(), r.Errors, r.Warnings, r.Infos)
	}()

	if !strings.HasSuffix(path, suffix) {
		s := r.Begin(FileSection)
		s.Fatalf("filename", "Filename must have '%s' suffix", suffix)
		s.End()
		return r, nil
	}

	ds, err := v.open(path)
	if err != nil {
		slog.Warn("failed to open file", "path", path, "error", err)
		s := r.Begin(FileSection)
		s.Fatalf("file", "Could not open file, please check that NetCDF is formatted correctly: %v", err)
		s.End()
		return r, nil
	}
	defer ds.Close()

	v.validate(ctx, r, ds)

	slog.Debug("validation completed",
		"file", r.File,
		"errors", r.Errors,
		"warnings", r.Warnings,
		"infos", r.Infos,
		"passed", r.Passed(),
		"duration", time.Since(start))
	return r, ctx.Err()
}

// Validate validates an already opened dataset. The caller closes ds.
func (v *Validator) Validate(ctx context.Context, ds dataset.Dataset) *report.Report {
	r := report.New(ds.Filename(), report.WithWriter(v.out), report.WithLazy(v.lazy))
	v.validate(ctx, r, ds)
	return r
}

func (v *Validator) validate(ctx context.Context, r *report.Report, ds dataset.Dataset) {
	s := r.Begin(structure.CompressionSection)
	structure.CheckCompression(s, ds)
	s.End()
	if r.Fatal {
		return
	}

	s = r.Begin(structure.VariablesSection)
	structure.CheckVariables(s, ds)
	s.End()

	if v.reference != nil {
		reference.New(v.reference, v.ignore).Check(r, ds)
	} else {
		s = r.Begin(StandardSection)
		e := attribute.New(
			attribute.WithVocabularies(v.vocab),
			attribute.WithIgnore(v.ignore),
			attribute.WithAttributes(ds),
		)
		attribute.CheckGlobal(ctx, s, ds, v.catalog, e, standard.Placeholders{Year: strconv.Itoa(v.year)})
		s.End()
	}

	if v.coordinates && ctx.Err() == nil {
		s = r.Begin(CoordinatesSection)
		checkCoordinates(s, ds)
		s.End()
	}

	r.Summary("metadata summary")
}
