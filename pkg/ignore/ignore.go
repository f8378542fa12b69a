// Package ignore holds the attribute ignore list of a validation run.
//
// Entries are comma separated. A plain entry ignores a global (root or group)
// attribute; "var@attr" ignores attr on variable var only, and "@attr"
// ignores attr on every variable. Both sides support wildcards:
//   - "prefix*" matches names starting with "prefix"
//   - "*suffix" matches names ending with "suffix"
//   - "*contains*" matches names containing "contains"
//   - "exact" matches names exactly
package ignore

import (
	"slices"
	"strings"
)

// ReferenceDefaults are the global attributes a candidate may change
// relative to its reference file.
var ReferenceDefaults = []string{
	"date_created",
	"time_coverage_start",
	"time_coverage_end",
	"filename",
	"date_modified",
	"history",
}

type scoped struct {
	variable string
	attr     string
}

// List is a parsed ignore list. The zero value ignores nothing.
type List struct {
	global []string
	scoped []scoped
}

// Parse builds a list from comma-separated entries.
func Parse(entries string) *List {
	l := &List{}
	l.Add(strings.Split(entries, ",")...)
	return l
}

// New builds a list from individual entries.
func New(entries ...string) *List {
	l := &List{}
	l.Add(entries...)
	return l
}

// Add appends entries. Blank entries are skipped.
func (l *List) Add(entries ...string) {
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if v, a, ok := strings.Cut(e, "@"); ok {
			l.scoped = append(l.scoped, scoped{variable: v, attr: a})
			continue
		}
		l.global = append(l.global, e)
	}
}

// Global reports whether a root or group attribute is ignored.
func (l *List) Global(attr string) bool {
	if l == nil {
		return false
	}
	return slices.ContainsFunc(l.global, func(p string) bool { return matchesPattern(attr, p) })
}

// Variable reports whether attr of the named variable is ignored.
func (l *List) Variable(variable, attr string) bool {
	if l == nil {
		return false
	}
	for _, s := range l.scoped {
		if (s.variable == "" || matchesPattern(variable, s.variable)) && matchesPattern(attr, s.attr) {
			return true
		}
	}
	return false
}

// Entries returns the list in its textual form.
func (l *List) Entries() []string {
	if l == nil {
		return nil
	}
	out := slices.Clone(l.global)
	for _, s := range l.scoped {
		out = append(out, s.variable+"@"+s.attr)
	}
	return out
}

// Len returns the number of entries.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.global) + len(l.scoped)
}

// matchesPattern checks if a name matches a wildcard pattern.
func matchesPattern(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	// *infix* - contains match
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(name, strings.Trim(pattern, "*"))
	}

	// *suffix - ends with match
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(name, strings.TrimPrefix(pattern, "*"))
	}

	// prefix* - starts with match
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}

	return false
}
