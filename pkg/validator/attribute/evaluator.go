/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package attribute

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/ignore"
	"github.com/NVIDIA/gridcert/pkg/report"
	"github.com/NVIDIA/gridcert/pkg/standard"
	"github.com/NVIDIA/gridcert/pkg/vocabulary"
)

// Level is the severity of a finding. LevelNote is a plain report line.
type Level int

const (
	LevelNote Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// Finding is one line of an attribute verdict.
type Finding struct {
	Level   Level
	Message string
}

// Result is the verdict on one attribute.
type Result struct {
	Name     string
	Findings []Finding
}

func (r *Result) add(l Level, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Level: l, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) count(l Level) int {
	n := 0
	for _, f := range r.Findings {
		if f.Level == l {
			n++
		}
	}
	return n
}

// Errors returns the number of error findings.
func (r *Result) Errors() int { return r.count(LevelError) }

// Warnings returns the number of warning findings.
func (r *Result) Warnings() int { return r.count(LevelWarning) }

// Infos returns the number of info findings.
func (r *Result) Infos() int { return r.count(LevelInfo) }

// Passed reports whether the attribute has no errors.
func (r *Result) Passed() bool { return r.Errors() == 0 }

// Apply writes the findings to a report section, attributed to the
// attribute name.
func (r *Result) Apply(s *report.Section) {
	for _, f := range r.Findings {
		switch f.Level {
		case LevelError:
			s.Errorf(r.Name, "%s", f.Message)
		case LevelWarning:
			s.Warnf(r.Name, "%s", f.Message)
		case LevelInfo:
			s.Infof(r.Name, "%s", f.Message)
		default:
			s.Printf("%s", f.Message)
		}
	}
}

// Vocabularies provides keyword vocabularies by file name.
type Vocabularies interface {
	Get(ctx context.Context, name string) (*vocabulary.Vocabulary, error)
}

// Evaluator judges attributes of one dataset.
type Evaluator struct {
	vocabularies Vocabularies
	ignore       *ignore.List
	attrs        dataset.Attributes
}

// Option is a functional option for configuring Evaluator instances.
type Option func(*Evaluator)

// WithVocabularies sets the keyword vocabulary source.
func WithVocabularies(v Vocabularies) Option {
	return func(e *Evaluator) {
		e.vocabularies = v
	}
}

// WithIgnore sets the ignore list for missing required attributes.
func WithIgnore(l *ignore.List) Option {
	return func(e *Evaluator) {
		e.ignore = l
	}
}

// WithAttributes sets the dataset attributes used to expand vocabulary file
// name placeholders.
func WithAttributes(a dataset.Attributes) Option {
	return func(e *Evaluator) {
		e.attrs = a
	}
}

// New creates a new Evaluator with the provided options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate judges one attribute. value is nil when the attribute is absent.
func (e *Evaluator) Evaluate(ctx context.Context, name string, value *dataset.Value, entry *standard.Entry) *Result {
	res := &Result{Name: name}

	if value == nil {
		if entry.Required == standard.RequiredYes {
			if e.ignore.Global(name) {
				res.add(LevelInfo, "Ignoring missing required attribute '%s'", name)
			} else {
				res.add(LevelError, "Missing required attribute '%s'", name)
			}
		}
		return res
	}

	if entry.Required == standard.RequiredNone {
		res.add(LevelError, "Found improper attribute '%s'", name)
		return res
	}

	actual := value.TypeCode()
	if !strings.Contains(actual, entry.Type) {
		res.add(LevelError, "Incorrect attribute data type, expecting: %s, found: %s", entry.Type, actual)
	}

	text, isText := value.Text()
	if !isText {
		res.add(LevelNote, "%s", value.String())
		return res
	}
	if text == "" {
		if entry.Required == standard.RequiredYes {
			res.add(LevelError, "empty required attribute")
		} else {
			res.add(LevelInfo, "empty attribute")
		}
		return res
	}

	tokens, err := splitTokens(text, entry.List)
	if err != nil {
		res.add(LevelError, "%v", err)
		return res
	}
	e.evaluateTokens(ctx, res, tokens, entry)
	return res
}

// hits counts rule matches per rule index over all tokens.
type hits struct {
	content []int
	regex   []int
	keyword int
}

func (h *hits) total() int {
	n := h.keyword
	for _, c := range h.content {
		n += c
	}
	for _, c := range h.regex {
		n += c
	}
	return n
}

func (e *Evaluator) evaluateTokens(ctx context.Context, res *Result, tokens []string, entry *standard.Entry) {
	h := &hits{content: make([]int, len(entry.Content)), regex: make([]int, len(entry.Regex))}
	multi := len(tokens) > 1

	var vocab *vocabulary.Vocabulary
	vocabFailed := false
	if len(entry.Keywords) > 0 {
		vocab, vocabFailed = e.vocabulary(ctx, res, entry)
	}

	for _, raw := range tokens {
		tok := strings.Trim(strings.TrimSpace(raw), `"`)
		if tok != raw {
			res.add(LevelWarning, "white spaces or quotes detected")
		}
		res.add(LevelNote, "%s", tok)

		keywordHit := false
		if len(entry.Content) > 0 {
			idx := -1
			for i, r := range entry.Content {
				if r.Value == tok {
					idx = i
					keywordHit = keywordHit || r.IsKeyword()
				}
			}
			if idx >= 0 {
				h.content[idx]++
			} else if multi {
				res.add(LevelWarning, "incorrect attribute content :: '%s'%s", tok, hint(tok, entry))
			}
		}

		if len(entry.Regex) > 0 {
			idx := -1
			for i, r := range entry.Regex {
				if r.Pattern() == nil || !r.Pattern().MatchString(tok) {
					continue
				}
				if r.Warn != "" {
					res.add(LevelWarning, "%s", r.Warn)
					continue
				}
				idx = i
				keywordHit = keywordHit || r.IsKeyword()
			}
			if idx >= 0 {
				h.regex[idx]++
			} else if multi {
				res.add(LevelWarning, "incorrect attribute content :: '%s'", tok)
			}
		}

		if vocab != nil && (keywordHit || entry.KeywordsOnly()) {
			if resolveKeyword(res, vocab, tok) {
				h.keyword++
			}
		}
	}

	if vocabFailed {
		return
	}
	aggregate(res, tokens, entry, h)
}

// aggregate turns the hit counts into the verdict of the attribute.
func aggregate(res *Result, tokens []string, entry *standard.Entry, h *hits) {
	if entry.Join == standard.JoinAnd && len(entry.Content) >= 2 {
		for i, r := range entry.Content {
			if h.content[i] == 0 {
				res.add(LevelError, "missing required specific attribute content :: '%s'", r.Value)
			}
		}
		return
	}

	if h.total() > 0 || res.Errors() > 0 {
		return
	}
	if len(tokens) == 1 {
		tok := strings.Trim(strings.TrimSpace(tokens[0]), `"`)
		msg := fmt.Sprintf("incorrect attribute content :: '%s'", tok)
		if len(entry.Content) == 1 {
			msg += fmt.Sprintf(", expecting: '%s'", entry.Content[0].Value)
		} else {
			msg += hint(tok, entry)
		}
		res.add(LevelError, "%s", msg)
		return
	}
	res.add(LevelError, "missing a correct value for attribute '%s'", res.Name)
}

func (e *Evaluator) vocabulary(ctx context.Context, res *Result, entry *standard.Entry) (*vocabulary.Vocabulary, bool) {
	if e.vocabularies == nil {
		res.add(LevelError, "no keyword vocabulary available, test incomplete")
		return nil, true
	}
	file := entry.Keywords[0]
	if e.attrs != nil {
		file = vocabulary.ExpandName(file, func(attr string) (string, bool) { return dataset.Text(e.attrs, attr) })
	}
	v, err := e.vocabularies.Get(ctx, file)
	if err != nil {
		slog.Debug("keyword vocabulary unavailable", "file", file, "error", err)
		res.add(LevelError, "keyword vocabulary '%s' unavailable, test incomplete: %v", file, err)
		return nil, true
	}
	return v, false
}

// resolveKeyword requires exactly one vocabulary entry for the token.
func resolveKeyword(res *Result, v *vocabulary.Vocabulary, tok string) bool {
	m := v.Resolve(tok)
	if len(m.Candidates) == 0 {
		levels := strings.Split(tok, ">")
		res.add(LevelError, "Keyword not found in list :: '%s'", strings.TrimSpace(levels[len(levels)-1]))
		return false
	}
	if len(m.Hits) != 1 {
		res.add(LevelError, "keyword classification incorrect, expecting one of:\n## %s", strings.Join(m.Candidates, "\n## "))
		return false
	}
	res.add(LevelNote, "decoded as '%s'", m.Hits[0])
	return true
}

// splitTokens splits a list value CSV-style on sep. Fields keep their
// surrounding whitespace so the caller can report it.
func splitTokens(value, sep string) ([]string, error) {
	if sep == "" {
		return []string{value}, nil
	}
	comma, size := utf8.DecodeRuneInString(sep)
	if size != len(sep) || comma == '"' || comma == '\r' || comma == '\n' || comma == utf8.RuneError {
		return strings.Split(value, sep), nil
	}
	r := csv.NewReader(strings.NewReader(value))
	r.Comma = comma
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot split list value: %w", err)
	}
	return row, nil
}
