/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDataset() *Memory {
	ds := NewMemory("test.nc")
	ds.SetText("title", "test").SetText("cdm_data_type", "grid")
	ds.AddVariable("time", Float64, []string{"time"}, nil, []float64{0, 1}).
		SetText("standard_name", "time")
	data := ds.AddGroup("data")
	data.AddVariable("lat", Float32, []string{"lat"}, nil, []float64{-0.5, 0.5}).
		SetText("units", "degrees_north")
	sub := data.AddGroup("sub")
	sub.AddVariable("cfc", Int16, []string{"time", "lat"}, []int{2, 2}, []float64{1, -1, 2, -1}).
		SetAttr("_FillValue", IntegerValue(Int16, -1))
	return ds
}

func TestMemoryTree(t *testing.T) {
	ds := newTestDataset()

	assert.Equal(t, "/", ds.Path())
	assert.Equal(t, []string{"title", "cdm_data_type"}, ds.Names())

	data, ok := ds.Group("data")
	require.True(t, ok)
	assert.Equal(t, "/data", data.Path())

	parent, ok := data.Parent()
	require.True(t, ok)
	assert.Equal(t, "/", parent.Path())

	_, ok = ds.Parent()
	assert.False(t, ok)

	v, ok := Lookup(ds, "/data/sub/cfc")
	require.True(t, ok)
	assert.Equal(t, "/data/sub/cfc", v.Path())
	assert.Equal(t, []int{2, 2}, v.Shape())

	_, ok = Lookup(ds, "data/missing")
	assert.False(t, ok)
}

func TestMemoryDataMask(t *testing.T) {
	ds := newTestDataset()
	v, ok := Lookup(ds, "data/sub/cfc")
	require.True(t, ok)

	a, err := v.Data()
	require.NoError(t, err)
	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 2, a.MaskedCount())
	assert.True(t, a.Masked(1))
	assert.False(t, a.Masked(0))
}

func TestMemoryClone(t *testing.T) {
	ds := newTestDataset()
	c := ds.Clone("copy.nc")
	c.DeleteAttr("title")
	c.Sub("data").Var("lat").SetText("units", "degrees")

	assert.True(t, ds.Has("title"))
	assert.False(t, c.Has("title"))

	orig, _ := Lookup(ds, "data/lat")
	units, _ := Text(orig, "units")
	assert.Equal(t, "degrees_north", units)
	assert.Equal(t, "copy.nc", c.Filename())
}

func TestMemoryClose(t *testing.T) {
	ds := NewMemory("x.nc")
	require.NoError(t, ds.Close())
	assert.True(t, ds.Closed())
	assert.Error(t, ds.Close())
}
