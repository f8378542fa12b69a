/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"path"
	"slices"
	"strings"
)

// AllVariables returns every variable of the tree, root first, groups in
// declaration order.
func AllVariables(root Group) []Variable {
	var out []Variable
	var walk func(g Group, depth int)
	walk = func(g Group, depth int) {
		out = append(out, g.Variables()...)
		if depth >= maxDepth {
			return
		}
		for _, c := range g.Groups() {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return out
}

// FindByName returns all variables with the given base name.
func FindByName(root Group, name string) []Variable {
	var out []Variable
	for _, v := range AllVariables(root) {
		if v.Name() == name {
			out = append(out, v)
		}
	}
	return out
}

// FindByStandardName returns all variables whose standard_name equals name.
func FindByStandardName(root Group, name string) []Variable {
	var out []Variable
	for _, v := range AllVariables(root) {
		if s, ok := Text(v, "standard_name"); ok && s == name {
			out = append(out, v)
		}
	}
	return out
}

// FindCoordinates returns the coordinate variables with the standard name, or
// failing that the variables named by one of the short names. byStandardName
// is false when the fallback was used.
func FindCoordinates(root Group, standardName string, shortNames ...string) (vars []Variable, byStandardName bool) {
	if vars = FindByStandardName(root, standardName); len(vars) > 0 {
		return vars, true
	}
	for _, n := range shortNames {
		vars = append(vars, FindByName(root, n)...)
	}
	return vars, false
}

// MatchTimeAxis returns the time axis that lives in v's group or the nearest
// ancestor group.
func MatchTimeAxis(v Variable, axes []Variable) (Variable, bool) {
	var g Group = v.Group()
	for range maxDepth {
		for _, a := range axes {
			if a.Group().Path() == g.Path() {
				return a, true
			}
		}
		parent, ok := g.Parent()
		if !ok {
			break
		}
		g = parent
	}
	return nil, false
}

// MatchDimension returns the coordinate among axes that is named like the
// dimension and visible from v's group.
func MatchDimension(v Variable, dim string, axes []Variable) (Variable, bool) {
	var g Group = v.Group()
	for range maxDepth {
		for _, a := range axes {
			if a.Name() == dim && a.Group().Path() == g.Path() {
				return a, true
			}
		}
		parent, ok := g.Parent()
		if !ok {
			break
		}
		g = parent
	}
	return nil, false
}

// Sibling returns the variable called name in v's group.
func Sibling(v Variable, name string) (Variable, bool) {
	return v.Group().Variable(name)
}

// Lookup resolves an absolute or root-relative variable path.
func Lookup(root Group, p string) (Variable, bool) {
	p = path.Clean("/" + p)
	dir, name := path.Split(p)
	var g Group = root
	for _, part := range splitPath(dir) {
		c, ok := g.Group(part)
		if !ok {
			return nil, false
		}
		g = c
	}
	return g.Variable(name)
}

func splitPath(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// IsSwath reports whether the dataset declares track-organized data.
func IsSwath(a Attributes) bool {
	s, ok := Text(a, "cdm_data_type")
	return ok && s == "swath"
}

// HasDimension reports whether v is dimensioned by dim.
func HasDimension(v Variable, dim string) bool {
	return slices.Contains(v.Dimensions(), dim)
}
