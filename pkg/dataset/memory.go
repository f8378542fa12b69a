/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"fmt"
	"slices"
)

// attrMap is an insertion-ordered attribute bag.
type attrMap struct {
	names  []string
	values map[string]Value
}

func (m *attrMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

func (m *attrMap) Get(name string) (Value, bool) {
	v, ok := m.values[name]
	return v, ok
}

func (m *attrMap) Names() []string {
	return slices.Clone(m.names)
}

func (m *attrMap) set(name string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

func (m *attrMap) delete(name string) {
	if _, ok := m.values[name]; !ok {
		return
	}
	delete(m.values, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
}

func (m *attrMap) clone() attrMap {
	c := attrMap{names: slices.Clone(m.names), values: make(map[string]Value, len(m.values))}
	for k, v := range m.values {
		c.values[k] = v
	}
	return c
}

// Memory is an in-memory dataset.
type Memory struct {
	*MemGroup
	filename string
	format   Format
	closed   bool
}

// NewMemory returns an empty netCDF-4 dataset with the given base name.
func NewMemory(filename string) *Memory {
	return &Memory{
		MemGroup: &MemGroup{name: "/"},
		filename: filename,
		format:   FormatNetCDF4,
	}
}

func (m *Memory) Filename() string { return m.filename }
func (m *Memory) Format() Format   { return m.format }

// SetFormat overrides the container format.
func (m *Memory) SetFormat(f Format) *Memory {
	m.format = f
	return m
}

// Close marks the dataset closed. Closing twice is an error.
func (m *Memory) Close() error {
	if m.closed {
		return fmt.Errorf("dataset %s already closed", m.filename)
	}
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Memory) Closed() bool { return m.closed }

// Clone returns a deep copy under a new base name.
func (m *Memory) Clone(filename string) *Memory {
	return &Memory{
		MemGroup: m.MemGroup.clone(nil),
		filename: filename,
		format:   m.format,
	}
}

// MemGroup is a group of a Memory dataset.
type MemGroup struct {
	attrMap
	name      string
	parent    *MemGroup
	groups    []*MemGroup
	variables []*MemVariable
}

func (g *MemGroup) Name() string { return g.name }

func (g *MemGroup) Path() string {
	if g.parent == nil {
		return "/"
	}
	return joinPath(g.parent.Path(), g.name)
}

func (g *MemGroup) Parent() (Group, bool) {
	if g.parent == nil {
		return nil, false
	}
	return g.parent, true
}

func (g *MemGroup) Groups() []Group {
	out := make([]Group, len(g.groups))
	for i, c := range g.groups {
		out[i] = c
	}
	return out
}

func (g *MemGroup) Group(name string) (Group, bool) {
	for _, c := range g.groups {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

func (g *MemGroup) Variables() []Variable {
	out := make([]Variable, len(g.variables))
	for i, v := range g.variables {
		out[i] = v
	}
	return out
}

func (g *MemGroup) Variable(name string) (Variable, bool) {
	if v := g.Var(name); v != nil {
		return v, true
	}
	return nil, false
}

// Var returns the concrete variable, or nil.
func (g *MemGroup) Var(name string) *MemVariable {
	for _, v := range g.variables {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Sub returns the concrete child group, or nil.
func (g *MemGroup) Sub(name string) *MemGroup {
	for _, c := range g.groups {
		if c.name == name {
			return c
		}
	}
	return nil
}

// SetAttr sets an attribute and returns the group for chaining.
func (g *MemGroup) SetAttr(name string, v Value) *MemGroup {
	g.set(name, v)
	return g
}

// SetText sets a string attribute.
func (g *MemGroup) SetText(name, s string) *MemGroup {
	return g.SetAttr(name, StringValue(s))
}

// DeleteAttr removes an attribute.
func (g *MemGroup) DeleteAttr(name string) *MemGroup {
	g.delete(name)
	return g
}

// AddGroup appends a child group.
func (g *MemGroup) AddGroup(name string) *MemGroup {
	c := &MemGroup{name: name, parent: g}
	g.groups = append(g.groups, c)
	return c
}

// RemoveGroup drops a child group.
func (g *MemGroup) RemoveGroup(name string) {
	g.groups = slices.DeleteFunc(g.groups, func(c *MemGroup) bool { return c.name == name })
}

// AddVariable appends a variable. Shape defaults to the number of values
// along a single dimension.
func (g *MemGroup) AddVariable(name string, t Type, dims []string, shape []int, values []float64) *MemVariable {
	if shape == nil && len(dims) > 0 {
		shape = []int{len(values)}
	}
	v := &MemVariable{
		name:   name,
		group:  g,
		typ:    t,
		dims:   slices.Clone(dims),
		shape:  slices.Clone(shape),
		values: slices.Clone(values),
	}
	g.variables = append(g.variables, v)
	return v
}

// RemoveVariable drops a variable.
func (g *MemGroup) RemoveVariable(name string) {
	g.variables = slices.DeleteFunc(g.variables, func(v *MemVariable) bool { return v.name == name })
}

func (g *MemGroup) clone(parent *MemGroup) *MemGroup {
	c := &MemGroup{attrMap: g.attrMap.clone(), name: g.name, parent: parent}
	for _, v := range g.variables {
		cv := *v
		cv.attrMap = v.attrMap.clone()
		cv.group = c
		cv.dims = slices.Clone(v.dims)
		cv.shape = slices.Clone(v.shape)
		cv.values = slices.Clone(v.values)
		cv.strs = slices.Clone(v.strs)
		c.variables = append(c.variables, &cv)
	}
	for _, sub := range g.groups {
		c.groups = append(c.groups, sub.clone(c))
	}
	return c
}

// MemVariable is a variable of a Memory dataset.
type MemVariable struct {
	attrMap
	name        string
	group       *MemGroup
	typ         Type
	dims        []string
	shape       []int
	values      []float64
	strs        []string
	compression *Compression
}

func (v *MemVariable) Name() string         { return v.name }
func (v *MemVariable) Path() string         { return joinPath(v.group.Path(), v.name) }
func (v *MemVariable) Group() Group         { return v.group }
func (v *MemVariable) Type() Type           { return v.typ }
func (v *MemVariable) Dimensions() []string { return slices.Clone(v.dims) }
func (v *MemVariable) Shape() []int         { return slices.Clone(v.shape) }

func (v *MemVariable) Compression() (Compression, bool) {
	if v.compression == nil {
		return Compression{}, false
	}
	return *v.compression, true
}

func (v *MemVariable) Data() (*Array, error) {
	a := &Array{
		Type:    v.typ,
		Shape:   slices.Clone(v.shape),
		Values:  slices.Clone(v.values),
		Strings: slices.Clone(v.strs),
	}
	applyFill(a, v)
	return a, nil
}

// SetAttr sets an attribute and returns the variable for chaining.
func (v *MemVariable) SetAttr(name string, val Value) *MemVariable {
	v.set(name, val)
	return v
}

// SetText sets a string attribute.
func (v *MemVariable) SetText(name, s string) *MemVariable {
	return v.SetAttr(name, StringValue(s))
}

// DeleteAttr removes an attribute.
func (v *MemVariable) DeleteAttr(name string) *MemVariable {
	v.delete(name)
	return v
}

// SetCompression declares the filter settings.
func (v *MemVariable) SetCompression(c Compression) *MemVariable {
	v.compression = &c
	return v
}

// SetValues replaces the data.
func (v *MemVariable) SetValues(values []float64) *MemVariable {
	v.values = slices.Clone(values)
	return v
}

// SetType replaces the element type.
func (v *MemVariable) SetType(t Type) *MemVariable {
	v.typ = t
	return v
}

// SetShape replaces the shape.
func (v *MemVariable) SetShape(shape ...int) *MemVariable {
	v.shape = shape
	return v
}
