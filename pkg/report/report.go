/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package report accumulates the diagnostics of one file validation.
//
// A Report owns the per-file counters and the names attributed to each
// severity. Checks write through Sections, which print the text report with
// the fixed status markers and track their own pass/fail state. Counters
// are never shared between files.
package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Text markers of the per-file report.
const (
	MarkerError   = "## ERROR ##"
	MarkerWarning = "## WARNING ##"
	MarkerInfo    = "## INFORMATION ##"
	MarkerOK      = "## OK ##"
	MarkerFailed  = "## FAILED ##"
)

const ruleWidth = 80

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "info"
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Marker returns the text marker of the severity.
func (s Severity) Marker() string {
	switch s {
	case SeverityWarning:
		return MarkerWarning
	case SeverityError:
		return MarkerError
	}
	return MarkerInfo
}

// Diagnostic is one finding.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Section  string   `json:"section" yaml:"section"`
	Subject  string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// Counts holds the counters of a report or section.
type Counts struct {
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Infos    int `json:"infos" yaml:"infos"`
}

func (c *Counts) add(s Severity) {
	switch s {
	case SeverityError:
		c.Errors++
	case SeverityWarning:
		c.Warnings++
	default:
		c.Infos++
	}
}

// Report is the result of validating one file.
type Report struct {
	File   string `json:"file" yaml:"file"`
	Counts `json:",inline" yaml:",inline"`
	// Fatal is set when a structural precondition aborted the remaining
	// checks.
	Fatal        bool         `json:"fatal,omitempty" yaml:"fatal,omitempty"`
	ErrorNames   []string     `json:"errorNames,omitempty" yaml:"errorNames,omitempty"`
	WarningNames []string     `json:"warningNames,omitempty" yaml:"warningNames,omitempty"`
	InfoNames    []string     `json:"infoNames,omitempty" yaml:"infoNames,omitempty"`
	Sections     []Outcome    `json:"sections,omitempty" yaml:"sections,omitempty"`
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	w    io.Writer
	lazy bool
}

// Outcome is the verdict of a top-level section.
type Outcome struct {
	Name   string `json:"name" yaml:"name"`
	Passed bool   `json:"passed" yaml:"passed"`
	Counts `json:",inline" yaml:",inline"`
}

// Option configures a Report.
type Option func(*Report)

// WithWriter sets the destination of the text report. Default is io.Discard.
func WithWriter(w io.Writer) Option {
	return func(r *Report) {
		if w != nil {
			r.w = w
		}
	}
}

// WithLazy demotes tolerance diagnostics to warnings.
func WithLazy(lazy bool) Option {
	return func(r *Report) {
		r.lazy = lazy
	}
}

// New returns an empty report for file.
func New(file string, opts ...Option) *Report {
	r := &Report{File: file, w: io.Discard}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Lazy reports whether tolerance diagnostics are demoted.
func (r *Report) Lazy() bool { return r.lazy }

// Passed reports whether the file has no errors.
func (r *Report) Passed() bool {
	return r.Errors == 0 && !r.Fatal
}

// Printf writes a plain line to the text report.
func (r *Report) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Banner writes a ruled headline.
func (r *Report) Banner(title string) {
	rule := strings.Repeat("=", ruleWidth)
	r.Printf("\n%s\n%s\n%s", rule, title, rule)
}

// Begin opens a top-level section and prints its headline.
func (r *Report) Begin(name string) *Section {
	r.Banner(">>> checking " + name)
	return &Section{report: r, name: name}
}

// Summary prints the counters and attributed names.
func (r *Report) Summary(title string) {
	r.Banner(title)
	r.Printf("ERRORs given: %d", r.Errors)
	if r.Errors > 0 {
		r.Printf("  in attributes: %s", quoteList(r.ErrorNames))
	}
	r.Printf("WARNINGS given: %d", r.Warnings)
	if r.Warnings > 0 {
		r.Printf("  in attributes: %s", quoteList(r.WarningNames))
	}
	r.Printf("INFORMATION messages: %d", r.Infos)
	if r.Infos > 0 {
		r.Printf("  in attributes: %s", quoteList(r.InfoNames))
	}
}

// Count returns the diagnostics of the given severity whose section starts
// with prefix.
func (r *Report) Count(s Severity, section string) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == s && strings.HasPrefix(d.Section, section) {
			n++
		}
	}
	return n
}

func (r *Report) record(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	r.add(d.Severity)
	if d.Subject == "" {
		return
	}
	switch d.Severity {
	case SeverityError:
		r.ErrorNames = appendUnique(r.ErrorNames, d.Subject)
	case SeverityWarning:
		r.WarningNames = appendUnique(r.WarningNames, d.Subject)
	default:
		r.InfoNames = appendUnique(r.InfoNames, d.Subject)
	}
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

func quoteList(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "'" + n + "'"
	}
	return "[" + strings.Join(q, ", ") + "]"
}
