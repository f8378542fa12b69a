/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package vocabulary

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// PathSeparator joins hierarchy levels of a keyword path.
const PathSeparator = " > "

var (
	versionRow   = regexp.MustCompile(`Keyword Version: *([0-9]+(?:\.[0-9]+)*)`)
	levelSplit   = regexp.MustCompile(` *> *`)
	namePattern  = regexp.MustCompile(`\$\{([a-z_]*)_version\}`)
	versionValue = regexp.MustCompile(`Version +([0-9.]*)$`)

	fold = cases.Fold()
)

// Entry is one keyword row.
type Entry struct {
	UUID string `json:"uuid" yaml:"uuid"`
	// Fields holds the hierarchy values aligned to Vocabulary.Columns.
	Fields []string `json:"fields" yaml:"fields"`
}

// Vocabulary is a parsed keyword table.
type Vocabulary struct {
	Name    string   `json:"name" yaml:"name"`
	Version string   `json:"version,omitempty" yaml:"version,omitempty"`
	Columns []string `json:"columns" yaml:"columns"`
	Entries []Entry  `json:"entries" yaml:"entries"`

	byUUID map[string]int
}

// Load reads the vocabulary file at path.
func Load(path string) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "failed to open keyword vocabulary", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	v, err := Parse(f, path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat, "failed to parse keyword vocabulary", err,
			map[string]any{"path": path})
	}
	return v, nil
}

// Parse reads a vocabulary table.
func Parse(r io.Reader, name string) (*Vocabulary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	v := &Vocabulary{Name: name, byUUID: make(map[string]int)}
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid CSV: %w", err)
		}

		switch {
		case v.Version == "" && v.Columns == nil && hasVersion(row):
			v.Version = versionRow.FindStringSubmatch(strings.Join(row, ","))[1]
		case v.Columns == nil && slices.Contains(row, "UUID"):
			v.Columns = trimAll(row[:len(row)-1])
		case v.Columns != nil:
			if len(row) != len(v.Columns)+1 {
				skipped++
				continue
			}
			id := strings.Trim(strings.TrimSpace(row[len(row)-1]), `"`)
			if _, err := uuid.Parse(id); err != nil {
				skipped++
				continue
			}
			v.put(Entry{UUID: id, Fields: trimAll(row[:len(row)-1])})
		}
	}
	if v.Columns == nil {
		return nil, fmt.Errorf("no header row with a UUID column")
	}
	if skipped > 0 {
		slog.Debug("skipped vocabulary rows", "name", name, "rows", skipped)
	}
	return v, nil
}

func hasVersion(row []string) bool {
	for _, c := range row {
		if versionRow.MatchString(c) {
			return true
		}
	}
	return false
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func (v *Vocabulary) put(e Entry) {
	if i, ok := v.byUUID[e.UUID]; ok {
		v.Entries[i] = e
		return
	}
	v.byUUID[e.UUID] = len(v.Entries)
	v.Entries = append(v.Entries, e)
}

// ByUUID returns the entry with the given UUID.
func (v *Vocabulary) ByUUID(id string) (Entry, bool) {
	i, ok := v.byUUID[id]
	if !ok {
		return Entry{}, false
	}
	return v.Entries[i], true
}

// Field returns the value of a named column.
func (v *Vocabulary) Field(e Entry, column string) (string, bool) {
	i := slices.Index(v.Columns, column)
	if i < 0 || i >= len(e.Fields) {
		return "", false
	}
	return e.Fields[i], true
}

// Path joins the non-empty hierarchy fields of e.
func (v *Vocabulary) Path(e Entry) string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, PathSeparator)
}

// searchColumns are the hierarchy levels a keyword name is looked up in.
var searchColumns = []string{
	"Long_Name", "Short_Name", "Series_Entity",
	"Variable_Level_1", "Variable_Level_2", "Variable_Level_3",
}

// Find returns the entries a single keyword name refers to, compared
// case-insensitively. Each entry is returned at most once.
func (v *Vocabulary) Find(keyword string) []Entry {
	want := fold.String(strings.TrimSpace(keyword))
	var out []Entry
	for _, e := range v.Entries {
		if v.matches(e, want) {
			out = append(out, e)
		}
	}
	return out
}

func (v *Vocabulary) matches(e Entry, want string) bool {
	if fold.String(e.UUID) == want {
		return true
	}
	for _, col := range searchColumns {
		if f, ok := v.Field(e, col); ok && fold.String(f) == want {
			return true
		}
	}
	if _, ok := v.Field(e, "Short_Name"); ok {
		if f, ok := v.Field(e, "Sub_Category"); ok && fold.String(f) == want {
			return true
		}
	}
	if level1, ok := v.Field(e, "Variable_Level_1"); ok && level1 == "" {
		if f, ok := v.Field(e, "Term"); ok && fold.String(f) == want {
			return true
		}
	}
	return false
}

// Match is the resolution of a keyword path token.
type Match struct {
	// Candidates are the paths of all entries named by the last level.
	Candidates []string
	// Hits are the candidates the full token matches.
	Hits []string
}

// Resolve looks up a token such as "ATMOSPHERE > CLOUDS". The last level
// selects the candidates; a multi-level token must match the end of a
// candidate path, a single-level token any part of it.
func (v *Vocabulary) Resolve(token string) Match {
	levels := levelSplit.Split(strings.TrimSpace(token), -1)
	joined := strings.Join(levels, PathSeparator)

	var m Match
	for _, e := range v.Find(levels[len(levels)-1]) {
		p := v.Path(e)
		m.Candidates = append(m.Candidates, p)
		if (len(levels) == 1 && strings.Contains(p, joined)) || (len(levels) > 1 && strings.HasSuffix(p, joined)) {
			m.Hits = append(m.Hits, p)
		}
	}
	return m
}

// ExpandName substitutes a ${<name>_version} placeholder in a vocabulary
// file name with the version declared by the <name> attribute, which reads
// like "NASA/GCMD Science Keywords, Version 8.6". The name is returned
// unchanged when either part is missing.
func ExpandName(file string, lookup func(attr string) (string, bool)) string {
	m := namePattern.FindStringSubmatch(file)
	if m == nil {
		return file
	}
	declared, ok := lookup(m[1])
	if !ok {
		return file
	}
	vm := versionValue.FindStringSubmatch(declared)
	if vm == nil {
		return file
	}
	return strings.ReplaceAll(file, m[0], vm[1])
}
