/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package standard

import (
	"regexp"
	"strings"
)

// Required is the presence policy of an entry.
type Required string

const (
	RequiredYes  Required = "yes"
	RequiredNo   Required = "no"
	RequiredNone Required = "none"
)

// Join is the aggregation policy over the tokens of a list value.
type Join string

const (
	JoinOr  Join = "or"
	JoinAnd Join = "and"
)

// RuleTypeKeyword marks rules whose hits are resolved through a keyword
// vocabulary.
const RuleTypeKeyword = "keyword"

// Rule is a content or regex rule.
type Rule struct {
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	// Warn turns a regex match into a warning instead of a hit.
	Warn string `json:"warn,omitempty" yaml:"warn,omitempty"`

	re *regexp.Regexp
}

// Pattern returns the compiled expression of a regex rule.
func (r Rule) Pattern() *regexp.Regexp { return r.re }

// IsKeyword reports whether hits of the rule need keyword resolution.
func (r Rule) IsKeyword() bool { return r.Type == RuleTypeKeyword }

// Entry is the rule set of one attribute id.
type Entry struct {
	ID       string   `json:"id" yaml:"id"`
	Type     string   `json:"type" yaml:"type"`
	Required Required `json:"required" yaml:"required"`
	Evaluate bool     `json:"evaluate,omitempty" yaml:"evaluate,omitempty"`
	List     string   `json:"list,omitempty" yaml:"list,omitempty"`
	Join     Join     `json:"join" yaml:"join"`
	Content  []Rule   `json:"content,omitempty" yaml:"content,omitempty"`
	Regex    []Rule   `json:"regex,omitempty" yaml:"regex,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// RuleCount is the number of declared content, regex and keyword rules.
func (e *Entry) RuleCount() int {
	return len(e.Content) + len(e.Regex) + len(e.Keywords)
}

// KeywordsOnly reports whether the entry declares keyword references and no
// other rules.
func (e *Entry) KeywordsOnly() bool {
	return len(e.Keywords) > 0 && len(e.Content) == 0 && len(e.Regex) == 0
}

// Placeholders carries the values substituted into entries with
// evaluate=yes.
type Placeholders struct {
	// References replaces ${references}; empty leaves it untouched.
	References string
	// Year replaces ${year}.
	Year string
}

// Evaluated returns the entry with placeholders substituted in its content
// rules. Entries without evaluate=yes are returned unchanged. The receiver
// is never modified.
func (e *Entry) Evaluated(p Placeholders) *Entry {
	if !e.Evaluate {
		return e
	}
	c := *e
	c.Content = make([]Rule, len(e.Content))
	for i, r := range e.Content {
		if p.References != "" {
			r.Value = strings.ReplaceAll(r.Value, "${references}", p.References)
		}
		if p.Year != "" {
			r.Value = strings.ReplaceAll(r.Value, "${year}", p.Year)
		}
		c.Content[i] = r
	}
	return &c
}

// Catalog is a loaded metadata standard.
type Catalog struct {
	Version      string   `json:"version" yaml:"version"`
	LastModified string   `json:"lastModified,omitempty" yaml:"lastModified,omitempty"`
	Include      string   `json:"include,omitempty" yaml:"include,omitempty"`
	Source       string   `json:"source,omitempty" yaml:"source,omitempty"`
	Entries      []*Entry `json:"entries" yaml:"entries"`

	index map[string]int
}

// Entry returns the entry for an attribute id.
func (c *Catalog) Entry(id string) (*Entry, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.Entries[i], true
}

// IDs returns the entry ids in declaration order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		ids[i] = e.ID
	}
	return ids
}

// Len returns the number of entries.
func (c *Catalog) Len() int { return len(c.Entries) }

// put adds or replaces an entry.
func (c *Catalog) put(e *Entry) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[e.ID]; ok {
		c.Entries[i] = e
		return
	}
	c.index[e.ID] = len(c.Entries)
	c.Entries = append(c.Entries, e)
}

// merge returns a catalog with the entries of base overridden by c.
func (c *Catalog) merge(base *Catalog) *Catalog {
	out := &Catalog{
		Version:      c.Version,
		LastModified: c.LastModified,
		Include:      c.Include,
		Source:       c.Source,
	}
	for _, e := range base.Entries {
		out.put(e)
	}
	for _, e := range c.Entries {
		out.put(e)
	}
	return out
}
