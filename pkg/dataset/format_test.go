/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name string
		head []byte
		want Format
	}{
		{"hdf5", []byte("\x89HDF\r\n\x1a\n"), FormatNetCDF4},
		{"classic", []byte("CDF\x01\x00\x00\x00\x00"), FormatClassic},
		{"64-bit offset", []byte("CDF\x02\x00\x00\x00\x00"), Format64BitOffset},
		{"cdf5", []byte("CDF\x05"), Format64BitData},
		{"text", []byte("hello world"), FormatUnknown},
		{"short", []byte("CD"), FormatUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatOf(tt.head))
		})
	}
	assert.True(t, FormatNetCDF4.Hierarchical())
	assert.False(t, FormatClassic.Hierarchical())
}

func TestSniffFormat(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.nc")
	require.NoError(t, os.WriteFile(p, []byte("CDF\x01rest"), 0o600))

	f, err := SniffFormat(p)
	require.NoError(t, err)
	assert.Equal(t, FormatClassic, f)

	_, err = SniffFormat(filepath.Join(dir, "missing.nc"))
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))
}

func TestFlatten(t *testing.T) {
	a, err := flatten([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, Float32, a.Type)
	assert.Equal(t, []int{2, 3}, a.Shape)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Values)

	a, err = flatten(int16(4))
	require.NoError(t, err)
	assert.Equal(t, Int16, a.Type)
	assert.Empty(t, a.Shape)

	a, err = flatten([]float64{})
	require.NoError(t, err)
	assert.Equal(t, Float64, a.Type)

	_, err = flatten([]bool{true})
	assert.Error(t, err)
}

func TestConvertValue(t *testing.T) {
	v, err := convertValue("CM SAF")
	require.NoError(t, err)
	assert.Equal(t, KindString, v.Kind())

	v, err = convertValue([]float32{0.05})
	require.NoError(t, err)
	assert.Equal(t, KindFloat32, v.Kind())

	v, err = convertValue([]int8{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, KindArray, v.Kind())
	assert.Equal(t, "i8", v.TypeCode())
}
