/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package standard

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// Load reads the catalog at path and merges its include. The format is
// chosen by extension: .yaml and .yml are YAML, anything else is XML.
func Load(path string) (*Catalog, error) {
	c, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	if c.Include == "" {
		return c, nil
	}

	incPath := resolveInclude(path, c.Include)
	slog.Info("including metadata standard", "path", incPath)
	inc, err := loadFile(incPath)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest, "failed to load included standard", err,
			map[string]any{"include": c.Include, "from": path})
	}
	if inc.Include != "" {
		slog.Warn("nested include ignored", "include", inc.Include, "from", incPath)
	}
	return c.merge(inc), nil
}

func loadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "failed to open metadata standard", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	var c *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		c, err = ParseYAML(f)
	default:
		c, err = ParseXML(f)
	}
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat, "failed to parse metadata standard", err,
			map[string]any{"path": path})
	}
	c.Source = path
	slog.Debug("loaded metadata standard", "path", path, "version", c.Version, "entries", c.Len())
	return c, nil
}

// resolveInclude looks for the include next to the including catalog first.
func resolveInclude(from, include string) string {
	if filepath.IsAbs(include) {
		return include
	}
	local := filepath.Join(filepath.Dir(from), include)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return include
}

type xmlRule struct {
	Value string `xml:",chardata"`
	Type  string `xml:"type,attr"`
	Warn  string `xml:"warn,attr"`
}

type xmlEntry struct {
	ID       string    `xml:"id,attr"`
	Type     string    `xml:"type,attr"`
	Required string    `xml:"required,attr"`
	Evaluate string    `xml:"evaluate,attr"`
	List     string    `xml:"list,attr"`
	Join     string    `xml:"join,attr"`
	Content  []xmlRule `xml:"content"`
	Regex    []xmlRule `xml:"regex"`
	Keywords []string  `xml:"keywords"`
}

// ParseXML reads an XML catalog. Entries and metadata elements are picked up
// at any depth.
func ParseXML(r io.Reader) (*Catalog, error) {
	dec := xml.NewDecoder(r)
	c := &Catalog{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid XML: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "entry":
			var xe xmlEntry
			if err := dec.DecodeElement(&xe, &start); err != nil {
				return nil, fmt.Errorf("invalid entry: %w", err)
			}
			e, err := fromXML(xe)
			if err != nil {
				return nil, err
			}
			if _, dup := c.Entry(e.ID); dup {
				slog.Warn("duplicate standard entry, last one wins", "id", e.ID)
			}
			c.put(e)
		case "version_number", "last_modified", "include":
			var s string
			if err := dec.DecodeElement(&s, &start); err != nil {
				return nil, fmt.Errorf("invalid %s: %w", start.Name.Local, err)
			}
			s = normalizeSpace(s)
			switch start.Name.Local {
			case "version_number":
				c.Version = s
			case "last_modified":
				c.LastModified = s
			default:
				c.Include = s
			}
		}
	}
	return c, nil
}

func fromXML(xe xmlEntry) (*Entry, error) {
	e := &Entry{
		ID:       normalizeSpace(xe.ID),
		Type:     normalizeSpace(xe.Type),
		Required: Required(normalizeSpace(xe.Required)),
		List:     normalizeSpace(xe.List),
		Join:     Join(strings.TrimSpace(xe.Join)),
	}
	switch ev := normalizeSpace(xe.Evaluate); ev {
	case "", "no":
	case "yes":
		e.Evaluate = true
	default:
		return nil, fmt.Errorf("entry %q: invalid evaluate %q", e.ID, ev)
	}
	for _, r := range xe.Content {
		e.Content = append(e.Content, Rule{Value: strings.TrimSpace(r.Value), Type: strings.TrimSpace(r.Type)})
	}
	for _, r := range xe.Regex {
		e.Regex = append(e.Regex, Rule{
			Value: strings.TrimSpace(r.Value),
			Type:  strings.TrimSpace(r.Type),
			Warn:  strings.TrimSpace(r.Warn),
		})
	}
	for _, k := range xe.Keywords {
		e.Keywords = append(e.Keywords, strings.TrimSpace(k))
	}
	if err := normalize(e); err != nil {
		return nil, err
	}
	return e, nil
}

type yamlDoc struct {
	Version      string   `yaml:"version"`
	LastModified string   `yaml:"lastModified"`
	Include      string   `yaml:"include"`
	Entries      []*Entry `yaml:"entries"`
}

// ParseYAML reads a YAML catalog.
func ParseYAML(r io.Reader) (*Catalog, error) {
	var doc yamlDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	c := &Catalog{Version: doc.Version, LastModified: doc.LastModified, Include: doc.Include}
	for _, e := range doc.Entries {
		if e == nil {
			continue
		}
		if err := normalize(e); err != nil {
			return nil, err
		}
		c.put(e)
	}
	return c, nil
}

// normalize applies defaults, validates the policies and compiles regex
// rules.
func normalize(e *Entry) error {
	if e.ID == "" {
		return fmt.Errorf("entry without id")
	}
	if e.Type == "" {
		e.Type = "s"
	}
	if e.Required == "" {
		e.Required = RequiredNo
	}
	switch e.Required {
	case RequiredYes, RequiredNo, RequiredNone:
	default:
		return fmt.Errorf("entry %q: required must be yes, no or none, got %q", e.ID, e.Required)
	}
	e.Join = Join(strings.ToLower(string(e.Join)))
	if e.Join == "" {
		e.Join = JoinOr
	}
	if e.Join != JoinOr && e.Join != JoinAnd {
		return fmt.Errorf("entry %q: join must be and or or, got %q", e.ID, e.Join)
	}
	for i := range e.Content {
		if e.Content[i].Type == "" {
			e.Content[i].Type = "string"
		}
	}
	for i := range e.Regex {
		if e.Regex[i].Type == "" {
			e.Regex[i].Type = "string"
		}
		re, err := regexp.Compile(e.Regex[i].Value)
		if err != nil {
			return fmt.Errorf("entry %q: invalid regex %q: %w", e.ID, e.Regex[i].Value, err)
		}
		e.Regex[i].re = re
	}
	return nil
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
