/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package serializer writes summaries, decoded file names and catalog
// overviews as JSON, YAML or a flattened two column table.
package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// Format is an output encoding.
type Format string

const (
	// FormatJSON writes indented JSON.
	FormatJSON Format = "json"
	// FormatYAML writes YAML.
	FormatYAML Format = "yaml"
	// FormatTable writes a FIELD/VALUE table with flattened keys.
	FormatTable Format = "table"
)

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns the supported format names.
func SupportedFormats() []string {
	return []string{string(FormatJSON), string(FormatYAML), string(FormatTable)}
}

// Serializer encodes a value to its destination.
type Serializer interface {
	Serialize(ctx context.Context, data any) error
}

// Closer releases the destination of a Serializer.
type Closer interface {
	Close() error
}

// Writer is a Serializer over an io.Writer.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
	once   sync.Once
}

// NewWriter returns a Writer encoding to output. Unknown formats fall back
// to JSON and a nil output means stdout.
func NewWriter(format Format, output io.Writer) *Writer {
	if format.IsUnknown() {
		format = FormatJSON
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{format: format, output: output}
}

// NewStdoutWriter returns a Writer encoding to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a Writer for path, or for stdout when path
// is blank or StdoutURI.
func NewFileWriterOrStdout(format Format, path string) (Serializer, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == StdoutURI {
		return NewStdoutWriter(format), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "failed to create output file", err,
			map[string]any{"path": path})
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize encodes data in the writer's format.
func (w *Writer) Serialize(ctx context.Context, data any) error {
	if err := ctx.Err(); err != nil {
		return cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "serialization canceled", err)
	}
	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.output)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to serialize to yaml", err)
		}
		if err := enc.Close(); err != nil {
			return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to serialize to yaml", err)
		}
	case FormatTable:
		if err := writeTable(w.output, data); err != nil {
			return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to serialize to table", err)
		}
	default:
		enc := json.NewEncoder(w.output)
		enc.SetIndent("", "  ")
		if err := enc.Encode(data); err != nil {
			return cnserrors.Wrap(cnserrors.ErrCodeInternal, "failed to serialize to json", err)
		}
	}
	return nil
}

// Close closes a file destination. It is safe to call more than once.
func (w *Writer) Close() error {
	var err error
	w.once.Do(func() {
		if w.closer != nil {
			err = w.closer.Close()
		}
	})
	return err
}

type row struct {
	key, value string
}

func writeTable(out io.Writer, data any) error {
	rows := flatten("", reflect.ValueOf(data), nil)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	if len(rows) == 0 {
		fmt.Fprintln(tw, "<empty>\t")
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.key, r.value)
	}
	return tw.Flush()
}

// flatten walks v into dotted and indexed keys.
func flatten(prefix string, v reflect.Value, rows []row) []row {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return append(rows, row{prefix, "<nil>"})
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return append(rows, row{prefix, "<nil>"})
	}

	if s, ok := stringer(v); ok {
		return append(rows, row{prefix, s})
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if f.Anonymous && v.Field(i).Kind() == reflect.Struct {
				rows = flatten(prefix, v.Field(i), rows)
				continue
			}
			rows = flatten(join(prefix, f.Name), v.Field(i), rows)
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			rows = flatten(join(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return append(rows, row{prefix, fmt.Sprintf("%x", v.Bytes())})
		}
		for i := 0; i < v.Len(); i++ {
			rows = flatten(fmt.Sprintf("%s[%d]", prefix, i), v.Index(i), rows)
		}
	default:
		rows = append(rows, row{prefix, fmt.Sprint(v.Interface())})
	}
	return rows
}

// stringer renders values that carry their own text form, such as times.
func stringer(v reflect.Value) (string, bool) {
	if !v.CanInterface() {
		return "", false
	}
	switch s := v.Interface().(type) {
	case fmt.Stringer:
		return s.String(), true
	case error:
		return s.Error(), true
	}
	return "", false
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
