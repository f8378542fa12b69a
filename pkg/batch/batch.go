/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/header"
	"github.com/NVIDIA/gridcert/pkg/report"
)

const (
	// Kind is the kind of batch summaries.
	Kind header.Kind = "ValidationSummary"

	ruleWidth = 80
)

// FileValidator validates one file.
type FileValidator interface {
	ValidateFile(ctx context.Context, path string) (*report.Report, error)
}

// FileResult is the verdict of one file.
type FileResult struct {
	report.Counts `json:",inline" yaml:",inline"`

	Path       string   `json:"path" yaml:"path"`
	Passed     bool     `json:"passed" yaml:"passed"`
	Fatal      bool     `json:"fatal,omitempty" yaml:"fatal,omitempty"`
	ErrorNames []string `json:"errorNames,omitempty" yaml:"errorNames,omitempty"`
}

// Summary is the result of a batch run.
type Summary struct {
	header.Header `json:",inline" yaml:",inline"`

	Total  int `json:"total" yaml:"total"`
	Passed int `json:"passed" yaml:"passed"`
	Failed int `json:"failed" yaml:"failed"`
	// Missing is nil when missing-file detection is off.
	Missing  []time.Time   `json:"missing,omitempty" yaml:"missing,omitempty"`
	Files    []FileResult  `json:"files" yaml:"files"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	detect   bool
}

// Runner validates files in sequence.
type Runner struct {
	validator FileValidator
	missing   string
	version   string
	out       io.Writer
}

// Option configures a Runner.
type Option func(*Runner)

// WithMissing enables missing-file detection for a cadence class.
func WithMissing(class string) Option {
	return func(r *Runner) {
		r.missing = class
	}
}

// WithWriter sets the destination of the progress and summary text.
func WithWriter(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithVersion sets the tool version recorded in the summary header.
func WithVersion(version string) Option {
	return func(r *Runner) {
		r.version = version
	}
}

// New returns a runner around v.
func New(v FileValidator, opts ...Option) *Runner {
	r := &Runner{validator: v, out: io.Discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run validates paths in the given order. A canceled context stops the run
// before the next file and returns the partial summary with the error.
func (r *Runner) Run(ctx context.Context, paths []string) (*Summary, error) {
	start := time.Now()
	sum := &Summary{Total: len(paths)}
	sum.Init(Kind, "", r.version)

	var det *Detector
	if r.missing != "" && len(paths) > 1 {
		d, ok, err := NewDetector(r.missing, paths[0])
		if err != nil {
			return nil, err
		}
		if ok {
			det, sum.detect = d, true
			sum.Missing = []time.Time{}
		}
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			sum.Duration = time.Since(start)
			return sum, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "batch canceled", err)
		}

		if det != nil {
			missing, ok := det.Next(path)
			if !ok {
				slog.Warn("file name carries no time stamp, skipping missing-file detection", "path", path)
			}
			for _, t := range missing {
				r.banner(fmt.Sprintf("Missing File for %s", t.Format(time.RFC3339)))
			}
			sum.Missing = append(sum.Missing, missing...)
		}

		r.banner(fmt.Sprintf("Checking File %d/%d", i+1, len(paths)))
		fmt.Fprintf(r.out, "'%s'\n", path)

		rep, err := r.validator.ValidateFile(ctx, path)
		if err != nil {
			sum.Duration = time.Since(start)
			return sum, err
		}
		res := FileResult{
			Path:       path,
			Passed:     rep.Passed(),
			Counts:     rep.Counts,
			Fatal:      rep.Fatal,
			ErrorNames: rep.ErrorNames,
		}
		sum.Files = append(sum.Files, res)
		marker := report.MarkerOK
		if res.Passed {
			sum.Passed++
		} else {
			sum.Failed++
			marker = report.MarkerFailed
		}
		rule := strings.Repeat("-", ruleWidth)
		fmt.Fprintf(r.out, "\n%s\n%s <<< result for %s\n%s\n", rule, marker, path, rule)
	}

	sum.Duration = time.Since(start)
	r.banner("Overall Summary")
	fmt.Fprintf(r.out, "Out of %d, %d FAILED\n", sum.Total, sum.Failed)
	if sum.detect {
		fmt.Fprintf(r.out, "%d files MISSING\n", len(sum.Missing))
	}

	slog.Info("batch completed",
		"files", sum.Total,
		"failed", sum.Failed,
		"missing", len(sum.Missing),
		"duration", sum.Duration)
	return sum, nil
}

func (r *Runner) banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintf(r.out, "\n%s\n%s\n%s\n", rule, title, rule)
}
