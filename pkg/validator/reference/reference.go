/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package reference compares a candidate dataset with a trusted reference
// file.
//
// Every attribute, variable and group of the reference must exist in the
// candidate with an equal value; anything only the candidate has is new.
// Attributes on the ignore list may change, appear or disappear, which is
// reported as information.
package reference

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/ignore"
	"github.com/NVIDIA/gridcert/pkg/report"
)

const (
	// AttributesSection names the attribute comparison in reports.
	AttributesSection = "reference attributes"
	// VariablesSection names the variable comparison in reports.
	VariablesSection = "reference variables"

	filenameAttribute = "filename"
	maxDepth          = 64
)

// Comparator compares candidates with one reference dataset.
type Comparator struct {
	ref    dataset.Dataset
	ignore *ignore.List
	swath  bool
}

// New returns a comparator for ref. Attributes matched by ignored may differ.
func New(ref dataset.Dataset, ignored *ignore.List) *Comparator {
	return &Comparator{ref: ref, ignore: ignored, swath: dataset.IsSwath(ref)}
}

// Check writes the attribute and the variable comparison of cand to r and
// reports whether both passed.
func (c *Comparator) Check(r *report.Report, cand dataset.Dataset) bool {
	s := r.Begin(AttributesSection)
	c.groupAttributes(s, cand, c.ref, cand.Filename(), 0)
	ok := s.End()

	s = r.Begin(VariablesSection)
	c.groupVariables(s, cand, c.ref, 0)
	ok = s.End() && ok

	slog.Debug("reference comparison complete", "file", cand.Filename(), "reference", c.ref.Filename(), "passed", ok)
	return ok
}

// scope resolves the ignore policy and the report name of an attribute.
type scope struct {
	// variable is empty for group attributes.
	variable string
	prefix   string
}

func (sc scope) full(name string) string {
	if sc.prefix == "" || sc.prefix == "/" {
		return name
	}
	return sc.prefix + "@" + name
}

func (c *Comparator) ignored(sc scope, name string) bool {
	if sc.variable == "" {
		return c.ignore.Global(name)
	}
	return c.ignore.Variable(sc.variable, name)
}

func (c *Comparator) groupAttributes(s *report.Section, cand, ref dataset.Group, file string, depth int) {
	c.attributes(s, cand, ref, scope{prefix: ref.Path()}, file, depth == 0)
	if depth >= maxDepth {
		return
	}
	eachGroup(s, cand, ref, func(cg, rg dataset.Group) {
		sub := s.Sub(rg.Path())
		c.groupAttributes(sub, cg, rg, file, depth+1)
	})
}

func (c *Comparator) groupVariables(s *report.Section, cand, ref dataset.Group, depth int) {
	for _, rv := range ref.Variables() {
		cv, ok := cand.Variable(rv.Name())
		if !ok {
			s.Errorf(rv.Path(), "missing variable :: '%s'", rv.Path())
			continue
		}
		c.variable(s, cv, rv)
	}
	for _, cv := range cand.Variables() {
		if _, ok := ref.Variable(cv.Name()); !ok {
			s.Errorf(cv.Path(), "new variable '%s'", cv.Path())
		}
	}
	if depth >= maxDepth {
		return
	}
	for _, rg := range ref.Groups() {
		if cg, ok := cand.Group(rg.Name()); ok {
			c.groupVariables(s, cg, rg, depth+1)
		}
	}
}

// eachGroup pairs the subgroups of cand and ref and reports unpaired ones.
func eachGroup(s *report.Section, cand, ref dataset.Group, fn func(cg, rg dataset.Group)) {
	for _, rg := range ref.Groups() {
		cg, ok := cand.Group(rg.Name())
		if !ok {
			s.Errorf(rg.Path(), "missing group '%s'", rg.Path())
			continue
		}
		fn(cg, rg)
	}
	for _, cg := range cand.Groups() {
		if _, ok := ref.Group(cg.Name()); !ok {
			s.Errorf(cg.Path(), "new group '%s'", cg.Path())
		}
	}
}

func (c *Comparator) variable(s *report.Section, cv, rv dataset.Variable) {
	name := rv.Path()
	if cv.Type() != rv.Type() {
		s.Errorf(name, "type of variable '%s' differs from reference.", name)
		s.Printf("## ref='%s', file='%s'", rv.Type(), cv.Type())
	}
	if !c.swath && !slices.Equal(cv.Shape(), rv.Shape()) {
		s.Errorf(name, "shape of variable '%s' differs from reference.", name)
		s.Printf("## ref='%v', file='%v'", rv.Shape(), cv.Shape())
	}
	c.attributes(s, cv, rv, scope{variable: rv.Name(), prefix: name}, "", false)
}

// attributes compares one attribute set. file is the candidate base name the
// filename attribute must carry; it applies only when checkFilename is set.
func (c *Comparator) attributes(s *report.Section, cand, ref dataset.Attributes, sc scope, file string, checkFilename bool) {
	seen := make(map[string]bool)
	for _, name := range ref.Names() {
		full := sc.full(name)
		got, ok := cand.Get(name)
		if !ok {
			if c.ignored(sc, name) {
				s.Infof(full, "ignored missing attribute :: '%s'", full)
			} else {
				s.Errorf(full, "Missing attribute :: '%s'", full)
			}
			continue
		}
		seen[name] = true

		if checkFilename && name == filenameAttribute {
			if text, isText := got.Text(); !isText || text != file {
				s.Errorf(full, "incorrect file name :: '%s'", got.String())
			}
			continue
		}
		if c.ignored(sc, name) {
			s.Infof(full, "changing attribute %s :: '%s'", full, got.String())
			continue
		}
		want, _ := ref.Get(name)
		if !want.Equal(got) {
			s.Errorf(full, "attribute '%s' differs", full)
			s.Printf("    %s :: expecting '%s', found '%s'", full, describe(want), describe(got))
		}
	}

	for _, name := range cand.Names() {
		if seen[name] {
			continue
		}
		full := sc.full(name)
		got, _ := cand.Get(name)
		if c.ignored(sc, name) {
			s.Infof(full, "changing new attribute %s :: '%s'", full, got.String())
		} else {
			s.Errorf(full, "New attribute %s :: '%s'", full, got.String())
		}
	}
}

// describe renders a value with its type code so type-only differences are
// visible.
func describe(v dataset.Value) string {
	return fmt.Sprintf("%s (%s)", v.String(), v.TypeCode())
}
