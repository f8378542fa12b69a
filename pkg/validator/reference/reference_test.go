/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package reference

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/ignore"
	"github.com/NVIDIA/gridcert/pkg/report"
)

const file = "CFCmm20200101000000219AVPOS01GL.nc"

func reference() *dataset.Memory {
	ds := dataset.NewMemory(file)
	ds.SetText("title", "CM SAF Cloud Fraction")
	ds.SetText("filename", file)
	ds.SetText("date_created", "2024-01-01T00:00:00Z")
	ds.SetAttr("version", dataset.Float32Value(3))
	ds.AddVariable("time", dataset.Float64, []string{"time"}, nil, []float64{0}).
		SetText("units", "days since 1970-01-01")

	data := ds.AddGroup("data")
	data.SetText("comment", "cloud products")
	data.AddVariable("cfc", dataset.Int16, []string{"time", "lat", "lon"}, []int{1, 4, 4}, nil).
		SetText("units", "%").
		SetAttr("valid_range", dataset.ArrayValue(dataset.Float32, []float64{0, math.NaN()}))
	return ds
}

func compare(ref, cand *dataset.Memory, extra ...string) *report.Report {
	l := ignore.New(ignore.ReferenceDefaults...)
	l.Add(extra...)
	r := report.New(cand.Filename())
	New(ref, l).Check(r, cand)
	return r
}

func TestIdentical(t *testing.T) {
	ref := reference()
	r := compare(ref, ref.Clone(file))
	assert.Equal(t, 0, r.Errors, "%+v", r.Diagnostics)
	assert.True(t, r.Passed())
	assert.Len(t, r.Sections, 2)
}

func TestDifferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *dataset.Memory)
		extra  []string
		errors []string
		infos  int
	}{
		{"missing attribute", func(c *dataset.Memory) { c.DeleteAttr("title") }, nil, []string{"title"}, 1},
		{"changed number", func(c *dataset.Memory) { c.SetAttr("version", dataset.Float32Value(3.1)) }, nil, []string{"version"}, 1},
		{"changed type", func(c *dataset.Memory) { c.SetAttr("version", dataset.Float64Value(3)) }, nil, []string{"version"}, 1},
		{"new attribute", func(c *dataset.Memory) { c.SetText("summary", "x") }, nil, []string{"summary"}, 1},
		{"ignored change", func(c *dataset.Memory) { c.SetText("date_created", "2025-01-01T00:00:00Z") }, nil, nil, 1},
		{"user ignored new attribute", func(c *dataset.Memory) { c.SetText("summary", "x") }, []string{"sum*"}, nil, 2},
		{"ignored missing attribute", func(c *dataset.Memory) { c.DeleteAttr("date_created") }, nil, nil, 1},
		{"group attribute", func(c *dataset.Memory) { c.Sub("data").SetText("comment", "other") }, nil, []string{"/data@comment"}, 1},
		{"variable attribute", func(c *dataset.Memory) { c.Sub("data").Var("cfc").SetText("units", "1") }, nil, []string{"/data/cfc@units"}, 1},
		{"scoped ignore", func(c *dataset.Memory) { c.Sub("data").Var("cfc").SetText("units", "1") }, []string{"cfc@units"}, nil, 2},
		{"wildcard variable ignore", func(c *dataset.Memory) { c.Sub("data").Var("cfc").SetText("units", "1") }, []string{"@units"}, nil, 3},
		{"array with different element", func(c *dataset.Memory) {
			c.Sub("data").Var("cfc").SetAttr("valid_range", dataset.ArrayValue(dataset.Float32, []float64{0, 100}))
		}, nil, []string{"/data/cfc@valid_range"}, 1},
		{"variable type", func(c *dataset.Memory) { c.Sub("data").Var("cfc").SetType(dataset.Int32) }, nil, []string{"/data/cfc"}, 1},
		{"variable shape", func(c *dataset.Memory) { c.Sub("data").Var("cfc").SetShape(1, 4, 5) }, nil, []string{"/data/cfc"}, 1},
		{"missing variable", func(c *dataset.Memory) { c.RemoveVariable("time") }, nil, []string{"/time"}, 1},
		{"new variable", func(c *dataset.Memory) { c.AddVariable("lat", dataset.Float32, []string{"lat"}, nil, []float64{1}) }, nil, []string{"/lat"}, 1},
		{"missing group", func(c *dataset.Memory) { c.RemoveGroup("data") }, nil, []string{"/data"}, 1},
		{"new group", func(c *dataset.Memory) { c.AddGroup("extra") }, nil, []string{"/extra"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := reference().Clone(file)
			tt.mutate(cand)
			r := compare(reference(), cand, tt.extra...)
			assert.Equal(t, len(tt.errors), r.Errors, "%+v", r.Diagnostics)
			assert.Equal(t, tt.errors, r.ErrorNames)
			assert.Equal(t, tt.infos, r.Infos, "%+v", r.Diagnostics)
		})
	}
}

func TestExactIntegers(t *testing.T) {
	tests := []struct {
		name   string
		ref    dataset.Value
		cand   dataset.Value
		errors []string
	}{
		{"int64 beyond float64 mantissa", dataset.IntegerValue(dataset.Int64, 1<<53), dataset.IntegerValue(dataset.Int64, 1<<53+1), []string{"orbit_id"}},
		{"uint64 near maximum", dataset.UnsignedValue(dataset.UInt64, math.MaxUint64), dataset.UnsignedValue(dataset.UInt64, math.MaxUint64-1), []string{"orbit_id"}},
		{"int64 array element", dataset.IntegerArrayValue(dataset.Int64, []int64{1, 1<<62 + 1}), dataset.IntegerArrayValue(dataset.Int64, []int64{1, 1 << 62}), []string{"orbit_id"}},
		{"equal int64", dataset.IntegerValue(dataset.Int64, 1<<53+1), dataset.IntegerValue(dataset.Int64, 1<<53+1), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := reference()
			ref.SetAttr("orbit_id", tt.ref)
			cand := ref.Clone(file)
			cand.SetAttr("orbit_id", tt.cand)
			r := compare(ref, cand)
			assert.Equal(t, len(tt.errors), r.Errors, "%+v", r.Diagnostics)
			assert.Equal(t, tt.errors, r.ErrorNames)
		})
	}
}

func TestFilename(t *testing.T) {
	ref := reference()
	r := compare(ref, ref.Clone("CFCmm20200201000000219AVPOS01GL.nc"))
	assert.Equal(t, 1, r.Errors, "%+v", r.Diagnostics)
	assert.Equal(t, []string{"filename"}, r.ErrorNames)
}

func TestSwathSkipsShape(t *testing.T) {
	ref := reference()
	ref.SetText("cdm_data_type", "swath")
	cand := ref.Clone(file)
	cand.Sub("data").Var("cfc").SetShape(1, 8, 8)
	r := compare(ref, cand)
	assert.Equal(t, 0, r.Errors, "%+v", r.Diagnostics)
}
