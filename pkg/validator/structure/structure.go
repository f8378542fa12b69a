/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package structure checks the container format, compression and variable
// layout of a dataset.
package structure

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/report"
)

const (
	// CompressionSection names the compression check in reports.
	CompressionSection = "compression"
	// VariablesSection names the variable layout check in reports.
	VariablesSection = "variables"

	// StatusVariable is the per-record status variable of gridded data.
	StatusVariable = "record_status"

	// minCompressedRank is the rank from which variables must be compressed.
	minCompressedRank = 3
)

var (
	statusTypes = []dataset.Type{dataset.UInt8, dataset.Int8, dataset.Int16, dataset.Int32}

	mandatory   = []string{"long_name"}
	recommended = []string{"units", "standard_name", "grid_mapping"}
	// axisExempt attributes are not expected on coordinate axes.
	axisExempt = []string{"grid_mapping"}
	skipped    = []string{StatusVariable, "latlon_grid"}
)

// CheckCompression verifies that ds is a netCDF-4 file and that every
// variable of rank three or more is deflated. A wrong format is fatal.
func CheckCompression(s *report.Section, ds dataset.Dataset) {
	if !ds.Format().Hierarchical() {
		s.Fatalf("format", "file data type is not netcdf4: '%s'", ds.Format())
		return
	}
	for _, v := range dataset.AllVariables(ds) {
		if len(v.Shape()) < minCompressedRank {
			continue
		}
		// Unreadable filter settings count as uncompressed.
		c, known := v.Compression()
		if known && c.Deflate && c.Level > 0 {
			s.Printf("%-15s level=%d", v.Path(), c.Level)
			continue
		}
		if !known {
			slog.Debug("filter settings unavailable", "variable", v.Path())
		}
		s.Errorf(v.Path(), "Variable %s is not compressed.", v.Path())
	}
}

// CheckVariables verifies the record status variable, the mandatory and
// recommended variable attributes, flag definitions, the dimensions of
// gridded variables and the variable_id roster.
func CheckVariables(s *report.Section, ds dataset.Dataset) {
	checkStatus(s, ds)

	lon, _ := dataset.FindCoordinates(ds, "longitude", "lon", "longitude")
	lat, _ := dataset.FindCoordinates(ds, "latitude", "lat", "latitude")
	tim, _ := dataset.FindCoordinates(ds, "time", "time")
	axes := slices.Concat(lon, lat, tim)

	for _, v := range dataset.AllVariables(ds) {
		if slices.Contains(skipped, v.Name()) || v.Has("grid_mapping_name") {
			continue
		}
		s.Printf("%s", v.Path())
		checkDimensions(s, v, lon, lat, tim)
		checkAttributes(s, v, isAxis(v, axes))
		checkFlags(s, v)
	}

	checkRoster(s, ds)
}

func checkStatus(s *report.Section, ds dataset.Dataset) {
	vars := dataset.FindByName(ds, StatusVariable)
	if len(vars) == 0 {
		if !dataset.IsSwath(ds) {
			s.Errorf(StatusVariable, "missing mandatory variable '%s'", StatusVariable)
		}
		return
	}
	for _, v := range vars {
		if !slices.Contains(statusTypes, v.Type()) {
			s.Errorf(v.Path(), "incorrect data type of '%s' :: '%s'", v.Path(), v.Type())
		}
	}
}

// checkDimensions flags variables on the lat/lon grid without a time
// dimension.
func checkDimensions(s *report.Section, v dataset.Variable, lon, lat, tim []dataset.Variable) {
	var hasLon, hasLat, hasTime bool
	for _, dim := range v.Dimensions() {
		if _, ok := dataset.MatchDimension(v, dim, lon); ok {
			hasLon = true
		}
		if _, ok := dataset.MatchDimension(v, dim, lat); ok {
			hasLat = true
		}
		if _, ok := dataset.MatchDimension(v, dim, tim); ok {
			hasTime = true
		}
	}
	if hasLon && hasLat && !hasTime {
		s.Errorf(v.Path(), "%s :: missing time dimension", v.Path())
	}
}

func checkAttributes(s *report.Section, v dataset.Variable, axis bool) {
	if isBounds(v) {
		return
	}
	for _, name := range slices.Concat(mandatory, recommended) {
		if v.Has(name) || (axis && slices.Contains(axisExempt, name)) {
			continue
		}
		if slices.Contains(mandatory, name) {
			s.Errorf(v.Path(), "%s :: missing mandatory attribute '%s'", v.Path(), name)
		} else {
			s.Warnf(v.Path(), "%s :: missing recommended attribute '%s'", v.Path(), name)
		}
	}
}

func checkFlags(s *report.Section, v dataset.Variable) {
	values, ok := v.Get("flag_values")
	if !ok {
		return
	}
	meanings, ok := dataset.Text(v, "flag_meanings")
	if !ok {
		return
	}
	if values.Len() != len(strings.Fields(meanings)) {
		s.Errorf(v.Path(), "%s :: mismatch between flag_values and flag_meanings", v.Path())
	}
}

// checkRoster verifies that every variable named in variable_id exists.
func checkRoster(s *report.Section, ds dataset.Dataset) {
	roster, ok := dataset.Text(ds, "variable_id")
	if !ok {
		return
	}
	s.Printf("\nvariable_id :: '%s'", roster)
	for _, name := range strings.Split(roster, ",") {
		name = strings.TrimSpace(name)
		if _, ok := dataset.Lookup(ds, name); !ok {
			s.Errorf("variable_id", "missing variable '%s'", name)
			continue
		}
		s.Printf("    %s '%s'", report.MarkerOK, name)
	}
}

// boundsAttributes name a cell bounds variable of the same group.
var boundsAttributes = []string{"bounds", "climatology"}

// isBounds reports whether a variable of v's group names v as its bounds or
// climatology bounds.
func isBounds(v dataset.Variable) bool {
	for _, o := range v.Group().Variables() {
		for _, key := range boundsAttributes {
			if b, ok := dataset.Text(o, key); ok && b == v.Name() {
				return true
			}
		}
	}
	return false
}

func isAxis(v dataset.Variable, axes []dataset.Variable) bool {
	return slices.ContainsFunc(axes, func(a dataset.Variable) bool { return a.Path() == v.Path() })
}
