/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

// Type is the element type of a variable or attribute.
type Type uint8

const (
	Unknown Type = iota
	String
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
)

var typeCodes = map[Type]string{
	Unknown: "?",
	String:  "s",
	Int8:    "i8",
	UInt8:   "u8",
	Int16:   "i16",
	UInt16:  "u16",
	Int32:   "i32",
	UInt32:  "u32",
	Int64:   "i64",
	UInt64:  "u64",
	Float32: "f32",
	Float64: "f64",
}

var typeNames = map[Type]string{
	Unknown: "unknown",
	String:  "string",
	Int8:    "int8",
	UInt8:   "uint8",
	Int16:   "int16",
	UInt16:  "uint16",
	Int32:   "int32",
	UInt32:  "uint32",
	Int64:   "int64",
	UInt64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

// Code returns the short type code used by metadata standards
// (s, f32, f64, i8 ... u64).
func (t Type) Code() string {
	if c, ok := typeCodes[t]; ok {
		return c
	}
	return typeCodes[Unknown]
}

// String returns the type name.
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return typeNames[Unknown]
}

// IsInteger reports whether t is a signed or unsigned integer type.
func (t Type) IsInteger() bool {
	return t >= Int8 && t <= UInt64
}

// IsUnsigned reports whether t is an unsigned integer type.
func (t Type) IsUnsigned() bool {
	switch t {
	case UInt8, UInt16, UInt32, UInt64:
		return true
	}
	return false
}

// IsFloat reports whether t is a floating-point type.
func (t Type) IsFloat() bool {
	return t == Float32 || t == Float64
}

// Format is the container format of a data file.
type Format string

const (
	FormatUnknown        Format = "UNKNOWN"
	FormatClassic        Format = "NETCDF3_CLASSIC"
	Format64BitOffset    Format = "NETCDF3_64BIT_OFFSET"
	Format64BitData      Format = "NETCDF3_64BIT_DATA"
	FormatNetCDF4        Format = "NETCDF4"
	FormatNetCDF4Classic Format = "NETCDF4_CLASSIC"
)

// Hierarchical reports whether the format is the chunked HDF5-based container
// that supports per-variable filters.
func (f Format) Hierarchical() bool {
	return f == FormatNetCDF4 || f == FormatNetCDF4Classic
}

// Compression is the filter configuration of a variable.
type Compression struct {
	// Deflate is set when the zlib filter is enabled.
	Deflate bool
	// Level is the deflate level (0-9).
	Level   int
	Shuffle bool
}
