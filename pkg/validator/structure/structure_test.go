/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package structure

import (
	"path/filepath"
	"testing"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/batchatco/go-native-netcdf/netcdf/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/report"
)

var deflated = dataset.Compression{Deflate: true, Level: 5, Shuffle: true}

// gridded returns a well-formed monthly grid file.
func gridded() *dataset.Memory {
	ds := dataset.NewMemory("CFCmm20200101000000219AVPOS01GL.nc")
	ds.SetText("variable_id", "cfc,record_status")
	ds.AddVariable("time", dataset.Float64, []string{"time"}, nil, []float64{0}).
		SetText("long_name", "time").
		SetText("standard_name", "time").
		SetText("units", "days since 1970-01-01").
		SetText("bounds", "time_bnds")
	ds.AddVariable("time_bnds", dataset.Float64, []string{"time", "bnds"}, []int{1, 2}, []float64{0, 31})
	ds.AddVariable("lat", dataset.Float32, []string{"lat"}, nil, []float64{-0.5, 0.5}).
		SetText("long_name", "latitude").
		SetText("standard_name", "latitude").
		SetText("units", "degrees_north")
	ds.AddVariable("lon", dataset.Float32, []string{"lon"}, nil, []float64{-0.5, 0.5}).
		SetText("long_name", "longitude").
		SetText("standard_name", "longitude").
		SetText("units", "degrees_east")
	ds.AddVariable("crs", dataset.Int32, nil, nil, nil).
		SetText("grid_mapping_name", "latitude_longitude")
	ds.AddVariable("cfc", dataset.Int16, []string{"time", "lat", "lon"}, []int{1, 2, 2}, []float64{1, 2, 3, 4}).
		SetText("long_name", "cloud fraction").
		SetText("standard_name", "cloud_area_fraction").
		SetText("units", "%").
		SetText("grid_mapping", "crs").
		SetCompression(deflated)
	ds.AddVariable(StatusVariable, dataset.UInt8, []string{"time"}, nil, []float64{0}).
		SetAttr("flag_values", dataset.ArrayValue(dataset.UInt8, []float64{0, 1})).
		SetText("flag_meanings", "valid invalid")
	return ds
}

func run(check func(*report.Section, dataset.Dataset), ds dataset.Dataset) *report.Report {
	r := report.New(ds.Filename())
	s := r.Begin("structure")
	check(s, ds)
	s.End()
	return r
}

func TestCompression(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(ds *dataset.Memory)
		errors   int
		warnings int
		fatal    bool
	}{
		{"deflated", func(*dataset.Memory) {}, 0, 0, false},
		{"level zero", func(ds *dataset.Memory) {
			ds.Var("cfc").SetCompression(dataset.Compression{Deflate: true})
		}, 1, 0, false},
		{"not deflated", func(ds *dataset.Memory) {
			ds.Var("cfc").SetCompression(dataset.Compression{Shuffle: true})
		}, 1, 0, false},
		{"unknown filters", func(ds *dataset.Memory) {
			ds.AddVariable("cth", dataset.Int16, []string{"time", "lat", "lon"}, []int{1, 2, 2}, nil)
		}, 1, 0, false},
		{"classic format", func(ds *dataset.Memory) { ds.SetFormat(dataset.FormatClassic) }, 1, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := gridded()
			tt.mutate(ds)
			r := run(CheckCompression, ds)
			assert.Equal(t, tt.errors, r.Errors, "%+v", r.Diagnostics)
			assert.Equal(t, tt.warnings, r.Warnings, "%+v", r.Diagnostics)
			assert.Equal(t, tt.fatal, r.Fatal)
		})
	}
}

// writeUncompressed writes a netCDF file of the given kind holding an
// unfiltered three-dimensional cfc variable.
func writeUncompressed(t *testing.T, kind netcdf.FileKind) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CFCmm20200101000000219AVPOS01GL.nc")
	w, err := netcdf.OpenWriter(path, kind)
	require.NoError(t, err)
	attrs, err := util.NewOrderedMap([]string{"long_name"}, map[string]any{"long_name": "cloud fraction"})
	require.NoError(t, err)
	require.NoError(t, w.AddVar("cfc", api.Variable{
		Values:     [][][]int16{{{1, 2}, {3, 4}}},
		Dimensions: []string{"time", "lat", "lon"},
		Attributes: attrs,
	}))
	require.NoError(t, w.Close())
	return path
}

func TestCompressionOpenedFile(t *testing.T) {
	t.Run("netcdf4 without filters", func(t *testing.T) {
		ds, err := dataset.Open(writeUncompressed(t, netcdf.KindHDF5))
		require.NoError(t, err)
		defer ds.Close()

		r := run(CheckCompression, ds)
		assert.Equal(t, 1, r.Errors, "%+v", r.Diagnostics)
		assert.Equal(t, []string{"/cfc"}, r.ErrorNames)
		assert.Zero(t, r.Warnings)
		assert.False(t, r.Fatal)
	})

	t.Run("classic", func(t *testing.T) {
		ds, err := dataset.Open(writeUncompressed(t, netcdf.KindCDF))
		require.NoError(t, err)
		defer ds.Close()

		r := run(CheckCompression, ds)
		assert.True(t, r.Fatal)
		assert.Equal(t, []string{"format"}, r.ErrorNames)
	})
}

func TestVariables(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(ds *dataset.Memory)
		errors   []string
		warnings []string
	}{
		{"well formed", func(*dataset.Memory) {}, nil, nil},
		{"missing record status", func(ds *dataset.Memory) {
			ds.RemoveVariable(StatusVariable)
			ds.SetText("variable_id", "cfc")
		}, []string{StatusVariable}, nil},
		{"swath without record status", func(ds *dataset.Memory) {
			ds.RemoveVariable(StatusVariable)
			ds.SetText("variable_id", "cfc")
			ds.SetText("cdm_data_type", "swath")
		}, nil, nil},
		{"record status type", func(ds *dataset.Memory) { ds.Var(StatusVariable).SetType(dataset.Float32) }, []string{"/record_status"}, nil},
		{"missing long name", func(ds *dataset.Memory) { ds.Var("cfc").DeleteAttr("long_name") }, []string{"/cfc"}, nil},
		{"missing units", func(ds *dataset.Memory) { ds.Var("cfc").DeleteAttr("units") }, nil, []string{"/cfc"}},
		{"missing grid mapping", func(ds *dataset.Memory) { ds.Var("cfc").DeleteAttr("grid_mapping") }, nil, []string{"/cfc"}},
		{"flag mismatch", func(ds *dataset.Memory) {
			ds.AddVariable("qa", dataset.UInt8, []string{"time"}, nil, []float64{0}).
				SetText("long_name", "quality").
				SetText("standard_name", "status_flag").
				SetText("units", "1").
				SetText("grid_mapping", "crs").
				SetAttr("flag_values", dataset.ArrayValue(dataset.UInt8, []float64{0, 1, 2})).
				SetText("flag_meanings", "good bad")
		}, []string{"/qa"}, nil},
		{"grid without time", func(ds *dataset.Memory) {
			ds.AddVariable("lsm", dataset.UInt8, []string{"lat", "lon"}, []int{2, 2}, nil).
				SetText("long_name", "land sea mask").
				SetText("standard_name", "land_binary_mask").
				SetText("units", "1").
				SetText("grid_mapping", "crs")
		}, []string{"/lsm"}, nil},
		{"roster", func(ds *dataset.Memory) { ds.SetText("variable_id", "cfc,cth") }, []string{"variable_id"}, nil},
		{"climatology bounds", func(ds *dataset.Memory) {
			ds.Var("time").DeleteAttr("bounds")
			ds.Var("time").SetText("climatology", "time_bnds")
		}, nil, nil},
		{"unreferenced bounds", func(ds *dataset.Memory) { ds.Var("time").DeleteAttr("bounds") }, []string{"/time_bnds"}, []string{"/time_bnds"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := gridded()
			tt.mutate(ds)
			r := run(CheckVariables, ds)
			assert.Equal(t, tt.errors, r.ErrorNames, "%+v", r.Diagnostics)
			assert.Equal(t, tt.warnings, r.WarningNames, "%+v", r.Diagnostics)
		})
	}
}

func TestAxisAttributes(t *testing.T) {
	// Axes need no grid_mapping; bounds variables need nothing.
	r := run(CheckVariables, gridded())
	assert.Zero(t, r.Warnings, "%+v", r.Diagnostics)
	assert.NotContains(t, r.WarningNames, "/time_bnds")
	assert.NotContains(t, r.WarningNames, "/lat")
}
