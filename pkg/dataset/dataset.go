/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"math"
	"path"
)

// Attributes is the attribute bag of a group or variable.
type Attributes interface {
	Has(name string) bool
	Get(name string) (Value, bool)
	// Names returns the attribute names in declaration order.
	Names() []string
}

// Group is a node of the dataset tree.
type Group interface {
	Attributes
	Name() string
	// Path is the absolute group path, "/" for the root.
	Path() string
	Parent() (Group, bool)
	Groups() []Group
	Group(name string) (Group, bool)
	Variables() []Variable
	Variable(name string) (Variable, bool)
}

// Variable is a named array in a group.
type Variable interface {
	Attributes
	Name() string
	// Path is the absolute variable path.
	Path() string
	Group() Group
	Type() Type
	Dimensions() []string
	Shape() []int
	// Compression reports the filter settings, or false when the backend
	// cannot tell.
	Compression() (Compression, bool)
	Data() (*Array, error)
}

// Dataset is an open data file.
type Dataset interface {
	Group
	// Filename is the base name of the file.
	Filename() string
	Format() Format
	Close() error
}

// Opener opens a dataset by path.
type Opener func(path string) (Dataset, error)

// Array is the flattened data of a variable in row-major order.
type Array struct {
	Type    Type
	Shape   []int
	Values  []float64
	Strings []string
	// Ints holds the exact elements of integer data, unsigned ones as their
	// bit pattern. Values carries the same elements as float64; Ints is nil
	// when the backend holds only Values.
	Ints []int64
	// Mask marks fill values. Nil when nothing is masked.
	Mask []bool
}

// Len returns the number of elements.
func (a *Array) Len() int {
	if a.Type == String {
		return len(a.Strings)
	}
	return len(a.Values)
}

// Masked reports whether element i is a fill value.
func (a *Array) Masked(i int) bool {
	return a.Mask != nil && i < len(a.Mask) && a.Mask[i]
}

// MaskedCount returns the number of fill values.
func (a *Array) MaskedCount() int {
	n := 0
	for _, m := range a.Mask {
		if m {
			n++
		}
	}
	return n
}

// applyFill masks elements equal to _FillValue or missing_value.
func applyFill(a *Array, attrs Attributes) {
	var fills []float64
	for _, name := range []string{"_FillValue", "missing_value"} {
		if v, ok := attrs.Get(name); ok {
			fills = append(fills, v.Floats()...)
		}
	}
	if len(fills) == 0 || a.Type == String {
		return
	}
	var mask []bool
	for i, x := range a.Values {
		for _, f := range fills {
			if x == f || (math.IsNaN(x) && math.IsNaN(f)) {
				if mask == nil {
					mask = make([]bool, len(a.Values))
				}
				mask[i] = true
				break
			}
		}
	}
	a.Mask = mask
}

// Text returns a string attribute.
func Text(a Attributes, name string) (string, bool) {
	v, ok := a.Get(name)
	if !ok {
		return "", false
	}
	return v.Text()
}

// joinPath joins a group path and a child name.
func joinPath(parent, name string) string {
	return path.Join(parent, name)
}
