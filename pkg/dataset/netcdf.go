/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"sync"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// maxDepth bounds upward and downward group walks.
const maxDepth = 64

// Open opens a netCDF classic or netCDF-4 file read-only.
func Open(path string) (Dataset, error) {
	format, err := SniffFormat(path)
	if err != nil {
		return nil, err
	}
	root, err := netcdf.Open(path)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat, "failed to open netCDF file", err,
			map[string]any{"path": path})
	}
	slog.Debug("opened dataset", "path", path, "format", format)
	top := newNCGroup(root, "/", nil)
	top.kind = format
	return &ncDataset{
		ncGroup:  top,
		root:     root,
		filename: filepath.Base(path),
		format:   format,
	}, nil
}

type ncDataset struct {
	*ncGroup
	root     api.Group
	filename string
	format   Format
	once     sync.Once
}

func (d *ncDataset) Filename() string { return d.filename }
func (d *ncDataset) Format() Format   { return d.format }

func (d *ncDataset) Close() error {
	d.once.Do(func() { d.root.Close() })
	return nil
}

type ncGroup struct {
	g      api.Group
	name   string
	parent *ncGroup
	attrs  *attrMap
	kind   Format

	loadOnce  sync.Once
	groups    []*ncGroup
	variables []*ncVariable
}

func newNCGroup(g api.Group, name string, parent *ncGroup) *ncGroup {
	ng := &ncGroup{g: g, name: name, parent: parent, attrs: convertAttributes(g.Attributes())}
	if parent != nil {
		ng.kind = parent.kind
	}
	return ng
}

func (g *ncGroup) load() {
	g.loadOnce.Do(func() {
		for _, name := range g.g.ListVariables() {
			g.variables = append(g.variables, &ncVariable{name: name, group: g})
		}
		if g.depth() >= maxDepth {
			return
		}
		for _, name := range g.g.ListSubgroups() {
			sub, err := g.g.GetGroup(name)
			if err != nil {
				slog.Warn("skipping unreadable group", "group", joinPath(g.Path(), name), "error", err)
				continue
			}
			g.groups = append(g.groups, newNCGroup(sub, name, g))
		}
	})
}

func (g *ncGroup) depth() int {
	n := 0
	for p := g.parent; p != nil && n < maxDepth; p = p.parent {
		n++
	}
	return n
}

func (g *ncGroup) Has(name string) bool          { return g.attrs.Has(name) }
func (g *ncGroup) Get(name string) (Value, bool) { return g.attrs.Get(name) }
func (g *ncGroup) Names() []string               { return g.attrs.Names() }
func (g *ncGroup) Name() string                  { return g.name }

func (g *ncGroup) Path() string {
	if g.parent == nil {
		return "/"
	}
	return joinPath(g.parent.Path(), g.name)
}

func (g *ncGroup) Parent() (Group, bool) {
	if g.parent == nil {
		return nil, false
	}
	return g.parent, true
}

func (g *ncGroup) Groups() []Group {
	g.load()
	out := make([]Group, len(g.groups))
	for i, c := range g.groups {
		out[i] = c
	}
	return out
}

func (g *ncGroup) Group(name string) (Group, bool) {
	g.load()
	for _, c := range g.groups {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

func (g *ncGroup) Variables() []Variable {
	g.load()
	out := make([]Variable, len(g.variables))
	for i, v := range g.variables {
		out[i] = v
	}
	return out
}

func (g *ncGroup) Variable(name string) (Variable, bool) {
	g.load()
	for _, v := range g.variables {
		if v.name == name {
			return v, true
		}
	}
	return nil, false
}

// dimension resolves a dimension length in this group or an ancestor.
func (g *ncGroup) dimension(name string) (int, bool) {
	for p, n := g, 0; p != nil && n < maxDepth; p, n = p.parent, n+1 {
		if size, ok := p.g.GetDimension(name); ok {
			return int(size), true
		}
	}
	return 0, false
}

type ncVariable struct {
	name  string
	group *ncGroup

	headerOnce sync.Once
	getter     api.VarGetter
	attrs      *attrMap
	dims       []string
	headerErr  error

	dataOnce sync.Once
	data     *Array
	dataErr  error
}

func (v *ncVariable) header() {
	v.headerOnce.Do(func() {
		getter, err := v.group.g.GetVarGetter(v.name)
		if err != nil {
			v.headerErr = fmt.Errorf("failed to read variable %s: %w", v.Path(), err)
			v.attrs = &attrMap{}
			return
		}
		v.getter = getter
		v.attrs = convertAttributes(getter.Attributes())
		v.dims = getter.Dimensions()
	})
}

func (v *ncVariable) Has(name string) bool {
	v.header()
	return v.attrs.Has(name)
}

func (v *ncVariable) Get(name string) (Value, bool) {
	v.header()
	return v.attrs.Get(name)
}

func (v *ncVariable) Names() []string {
	v.header()
	return v.attrs.Names()
}

func (v *ncVariable) Name() string { return v.name }
func (v *ncVariable) Path() string { return joinPath(v.group.Path(), v.name) }
func (v *ncVariable) Group() Group { return v.group }

func (v *ncVariable) Dimensions() []string {
	v.header()
	return append([]string(nil), v.dims...)
}

func (v *ncVariable) Shape() []int {
	v.header()
	shape := make([]int, 0, len(v.dims))
	for _, d := range v.dims {
		size, ok := v.group.dimension(d)
		if !ok {
			if a, err := v.Data(); err == nil {
				return append([]int(nil), a.Shape...)
			}
			return nil
		}
		shape = append(shape, size)
	}
	return shape
}

func (v *ncVariable) Type() Type {
	a, err := v.Data()
	if err != nil {
		return Unknown
	}
	return a.Type
}

// Compression is known only for the classic formats, which cannot carry
// filters. The native reader does not expose the HDF5 filter pipeline.
func (v *ncVariable) Compression() (Compression, bool) {
	return Compression{}, !v.group.kind.Hierarchical()
}

func (v *ncVariable) Data() (*Array, error) {
	v.dataOnce.Do(func() {
		v.header()
		if v.headerErr != nil {
			v.dataErr = v.headerErr
			return
		}
		raw, err := v.getter.Values()
		if err != nil {
			v.dataErr = fmt.Errorf("failed to read data of %s: %w", v.Path(), err)
			return
		}
		a, err := flatten(raw)
		if err != nil {
			v.dataErr = fmt.Errorf("variable %s: %w", v.Path(), err)
			return
		}
		applyFill(a, v)
		v.data = a
	})
	return v.data, v.dataErr
}

func convertAttributes(m api.AttributeMap) *attrMap {
	out := &attrMap{}
	if m == nil {
		return out
	}
	for _, k := range m.Keys() {
		raw, ok := m.Get(k)
		if !ok {
			continue
		}
		val, err := convertValue(raw)
		if err != nil {
			slog.Debug("skipping attribute", "name", k, "error", err)
			continue
		}
		out.set(k, val)
	}
	return out
}

// convertValue assigns the tagged variant of a decoded attribute.
func convertValue(raw any) (Value, error) {
	a, err := flatten(raw)
	if err != nil {
		return Value{}, err
	}
	if a.Type == String {
		if len(a.Strings) == 0 {
			return StringValue(""), nil
		}
		return StringArrayValue(a.Strings), nil
	}
	if a.Type.IsInteger() && len(a.Ints) == len(a.Values) {
		return IntegerArrayValue(a.Type, a.Ints), nil
	}
	return ArrayValue(a.Type, a.Values), nil
}

var kindTypes = map[reflect.Kind]Type{
	reflect.Int8:    Int8,
	reflect.Uint8:   UInt8,
	reflect.Int16:   Int16,
	reflect.Uint16:  UInt16,
	reflect.Int32:   Int32,
	reflect.Uint32:  UInt32,
	reflect.Int64:   Int64,
	reflect.Uint64:  UInt64,
	reflect.Int:     Int64,
	reflect.Float32: Float32,
	reflect.Float64: Float64,
	reflect.String:  String,
}

// flatten walks nested slices of the reader into a row-major Array.
func flatten(raw any) (*Array, error) {
	a := &Array{Type: Unknown}
	rv := reflect.ValueOf(raw)
	if !rv.IsValid() {
		return nil, fmt.Errorf("no value")
	}

	shape := []int{}
	for probe := rv; probe.Kind() == reflect.Slice || probe.Kind() == reflect.Array; {
		shape = append(shape, probe.Len())
		if probe.Len() == 0 {
			break
		}
		probe = probe.Index(0)
	}
	a.Shape = shape

	et := rv.Type()
	for et.Kind() == reflect.Slice || et.Kind() == reflect.Array {
		et = et.Elem()
	}
	if t, ok := kindTypes[et.Kind()]; ok {
		a.Type = t
	}

	var walk func(v reflect.Value) error
	walk = func(v reflect.Value) error {
		if v.Kind() == reflect.Interface {
			v = v.Elem()
		}
		switch v.Kind() {
		case reflect.Slice, reflect.Array:
			for i := 0; i < v.Len(); i++ {
				if err := walk(v.Index(i)); err != nil {
					return err
				}
			}
			return nil
		}
		t, ok := kindTypes[v.Kind()]
		if !ok {
			return fmt.Errorf("unsupported element kind %s", v.Kind())
		}
		if a.Type == Unknown {
			a.Type = t
		}
		switch {
		case t == String:
			a.Strings = append(a.Strings, v.String())
		case t.IsFloat():
			a.Values = append(a.Values, v.Float())
		case v.CanInt():
			a.Values = append(a.Values, float64(v.Int()))
			a.Ints = append(a.Ints, v.Int())
		default:
			a.Values = append(a.Values, float64(v.Uint()))
			a.Ints = append(a.Ints, int64(v.Uint()))
		}
		return nil
	}
	if err := walk(rv); err != nil {
		return nil, err
	}
	return a, nil
}
