/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the variant tag of a Value.
type Kind uint8

const (
	KindString Kind = iota
	KindFloat32
	KindFloat64
	KindInteger
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Value is an attribute value. Single-element numeric attributes are scalars;
// longer ones are arrays of their element type.
type Value struct {
	kind Kind
	typ  Type
	str  string
	strs []string
	nums []float64
	// ints holds the exact elements of integer values; unsigned elements
	// keep their bit pattern.
	ints []int64
}

// StringValue returns a text value.
func StringValue(s string) Value {
	return Value{kind: KindString, typ: String, str: s}
}

// Float32Value returns a 32-bit float value.
func Float32Value(f float32) Value {
	return Value{kind: KindFloat32, typ: Float32, nums: []float64{float64(f)}}
}

// Float64Value returns a 64-bit float value.
func Float64Value(f float64) Value {
	return Value{kind: KindFloat64, typ: Float64, nums: []float64{f}}
}

// IntegerValue returns an integer value of type t.
func IntegerValue(t Type, v int64) Value {
	if !t.IsInteger() {
		t = Int64
	}
	return Value{kind: KindInteger, typ: t, nums: []float64{toFloat(t, v)}, ints: []int64{v}}
}

// UnsignedValue returns an unsigned integer value of type t.
func UnsignedValue(t Type, v uint64) Value {
	if !t.IsUnsigned() {
		t = UInt64
	}
	return IntegerValue(t, int64(v))
}

// ArrayValue returns a numeric value of element type t. A single element
// collapses to the scalar variant. Integer elements outside the float64
// mantissa should go through IntegerArrayValue.
func ArrayValue(t Type, nums []float64) Value {
	if t.IsInteger() {
		ints := make([]int64, len(nums))
		for i, n := range nums {
			if t.IsUnsigned() {
				ints[i] = int64(uint64(n))
			} else {
				ints[i] = int64(n)
			}
		}
		return IntegerArrayValue(t, ints)
	}
	if len(nums) == 1 {
		switch t {
		case Float32:
			return Float32Value(float32(nums[0]))
		case Float64:
			return Float64Value(nums[0])
		}
	}
	return Value{kind: KindArray, typ: t, nums: append([]float64(nil), nums...)}
}

// IntegerArrayValue returns an integer value of element type t from exact
// elements. Unsigned elements are passed as their bit pattern. A single
// element collapses to the scalar variant.
func IntegerArrayValue(t Type, ints []int64) Value {
	if !t.IsInteger() {
		t = Int64
	}
	if len(ints) == 1 {
		return IntegerValue(t, ints[0])
	}
	var nums []float64
	for _, n := range ints {
		nums = append(nums, toFloat(t, n))
	}
	return Value{kind: KindArray, typ: t, nums: nums, ints: append([]int64(nil), ints...)}
}

func toFloat(t Type, n int64) float64 {
	if t.IsUnsigned() {
		return float64(uint64(n))
	}
	return float64(n)
}

// StringArrayValue returns a multi-string value. A single element collapses
// to a string.
func StringArrayValue(strs []string) Value {
	if len(strs) == 1 {
		return StringValue(strs[0])
	}
	return Value{kind: KindArray, typ: String, strs: append([]string(nil), strs...)}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Type returns the element type.
func (v Value) Type() Type { return v.typ }

// TypeCode returns the element type code (s, f32, f64, i8 ... u64).
func (v Value) TypeCode() string { return v.typ.Code() }

// Text returns the string of a KindString value.
func (v Value) Text() (string, bool) {
	return v.str, v.kind == KindString
}

// Float returns the number of a scalar numeric value.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat32, KindFloat64, KindInteger:
		return v.nums[0], true
	}
	return 0, false
}

// Int returns the exact number of a scalar integer value. Unsigned values
// are returned as their bit pattern.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInteger {
		return 0, false
	}
	return v.ints[0], true
}

// Floats returns the numbers of a numeric value, scalar or array.
func (v Value) Floats() []float64 {
	return v.nums
}

// Strings returns the strings of a text value, scalar or array.
func (v Value) Strings() []string {
	if v.kind == KindString {
		return []string{v.str}
	}
	return v.strs
}

// Len returns the number of elements.
func (v Value) Len() int {
	switch {
	case v.kind == KindString:
		return 1
	case v.typ == String:
		return len(v.strs)
	}
	return len(v.nums)
}

// Equal compares two values element by element. NaN equals NaN; any other
// difference, including the element type, is a mismatch.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.typ != o.typ || v.str != o.str {
		return false
	}
	if len(v.strs) != len(o.strs) || len(v.nums) != len(o.nums) || len(v.ints) != len(o.ints) {
		return false
	}
	for i := range v.strs {
		if v.strs[i] != o.strs[i] {
			return false
		}
	}
	if v.ints != nil {
		for i := range v.ints {
			if v.ints[i] != o.ints[i] {
				return false
			}
		}
		return true
	}
	for i := range v.nums {
		a, b := v.nums[i], o.nums[i]
		if math.IsNaN(a) && math.IsNaN(b) {
			continue
		}
		if a != b {
			return false
		}
	}
	return true
}

// String renders the value for reports.
func (v Value) String() string {
	switch {
	case v.kind == KindString:
		return v.str
	case v.typ == String:
		return "[" + strings.Join(v.strs, " ") + "]"
	case v.kind == KindArray:
		parts := make([]string, len(v.nums))
		for i := range v.nums {
			parts[i] = v.element(i)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case len(v.nums) == 1:
		return v.element(0)
	}
	return fmt.Sprintf("<%s>", v.kind)
}

func (v Value) element(i int) string {
	switch {
	case v.ints != nil && v.typ.IsUnsigned():
		return strconv.FormatUint(uint64(v.ints[i]), 10)
	case v.ints != nil:
		return strconv.FormatInt(v.ints[i], 10)
	}
	return formatNumber(v.typ, v.nums[i])
}

func formatNumber(t Type, n float64) string {
	switch {
	case t.IsInteger():
		return strconv.FormatInt(int64(n), 10)
	case t == Float32:
		return strconv.FormatFloat(n, 'g', -1, 32)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
