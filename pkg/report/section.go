/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"fmt"
	"strings"
)

// Section is a named group of checks. Diagnostics recorded in a subsection
// also fail its parents.
type Section struct {
	report *Report
	parent *Section
	name   string
	depth  int
	counts Counts
	failed bool
	ended  bool
}

// Name returns the slash-joined section path.
func (s *Section) Name() string {
	if s.parent == nil {
		return s.name
	}
	return s.parent.Name() + "/" + s.name
}

// Report returns the owning report.
func (s *Section) Report() *Report { return s.report }

// Sub opens a nested section and prints its name.
func (s *Section) Sub(name string) *Section {
	c := &Section{report: s.report, parent: s, name: name, depth: s.depth + 1}
	s.report.Printf("\n%s%s", s.indent(), name)
	return c
}

// Printf writes an indented plain line.
func (s *Section) Printf(format string, args ...any) {
	s.report.Printf(s.indent()+format, args...)
}

// Errorf records an error attributed to subject.
func (s *Section) Errorf(subject, format string, args ...any) {
	s.emit(SeverityError, subject, fmt.Sprintf(format, args...))
}

// Warnf records a warning attributed to subject.
func (s *Section) Warnf(subject, format string, args ...any) {
	s.emit(SeverityWarning, subject, fmt.Sprintf(format, args...))
}

// Infof records an advisory attributed to subject.
func (s *Section) Infof(subject, format string, args ...any) {
	s.emit(SeverityInfo, subject, fmt.Sprintf(format, args...))
}

// Tolerancef records an error, or a warning when the report is lazy. The
// message is kept in both cases.
func (s *Section) Tolerancef(subject, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if !s.report.lazy {
		s.emit(SeverityError, subject, msg)
		return
	}
	s.emit(SeverityWarning, subject, msg+" (ignored in lazy mode)")
}

// Fatalf records an error and marks the report fatal.
func (s *Section) Fatalf(subject, format string, args ...any) {
	s.Errorf(subject, format, args...)
	s.report.Fatal = true
}

// Fail marks the section failed without a diagnostic.
func (s *Section) Fail() {
	for p := s; p != nil; p = p.parent {
		p.failed = true
	}
}

// Failed reports whether any error was recorded in the section or below.
func (s *Section) Failed() bool { return s.failed }

// Counts returns the counters of the section and its subsections.
func (s *Section) Counts() Counts { return s.counts }

// End prints the OK/FAILED marker of the section. Top-level sections are
// added to the report outcomes. End is idempotent.
func (s *Section) End() bool {
	if s.ended {
		return !s.failed
	}
	s.ended = true
	marker := MarkerOK
	if s.failed {
		marker = MarkerFailed
	}
	s.report.Printf("\n%s%s <<< %s", s.indent(), marker, s.name)
	if s.parent == nil {
		s.report.Sections = append(s.report.Sections, Outcome{Name: s.name, Passed: !s.failed, Counts: s.counts})
	}
	return !s.failed
}

func (s *Section) emit(sev Severity, subject, msg string) {
	for p := s; p != nil; p = p.parent {
		p.counts.add(sev)
		if sev == SeverityError {
			p.failed = true
		}
	}
	s.report.record(Diagnostic{Severity: sev, Section: s.Name(), Subject: subject, Message: msg})
	s.report.Printf("%s%s %s", s.indent(), sev.Marker(), msg)
}

func (s *Section) indent() string {
	return strings.Repeat("    ", s.depth)
}
