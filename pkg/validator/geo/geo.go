/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package geo validates latitude and longitude coordinate axes.
package geo

import (
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"slices"
	"strconv"

	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/report"
)

// maxListed bounds the mismatching samples printed in a report.
const maxListed = 10

var resolutionPattern = regexp.MustCompile(`^([0-9.]+) +(degree).*$`)

// Kind describes one horizontal axis.
type Kind struct {
	Short string
	Long  string
	// Axis is the expected value of the axis attribute.
	Axis  string
	Left  string
	Right string
}

var (
	Latitude  = Kind{Short: "lat", Long: "latitude", Axis: "Y", Left: "lower", Right: "upper"}
	Longitude = Kind{Short: "lon", Long: "longitude", Axis: "X", Left: "left", Right: "right"}
)

// Axis is a decoded coordinate axis, in ascending order.
type Axis struct {
	Values     []float64
	Descending bool
	// Bounds are (min, max) pairs aligned with Values.
	Bounds        [][2]float64
	Resolution    float64
	HasResolution bool
}

// Check validates the coordinate variable v of kind k. timeAxis may be nil;
// fileRes is the grid spacing decoded from the file name, if any.
func Check(s *report.Section, root dataset.Attributes, v dataset.Variable, timeAxis dataset.Variable, k Kind, fileRes float64, hasFileRes bool) *Axis {
	name := v.Path()

	if a, ok := dataset.Text(v, "axis"); !ok {
		s.Errorf(name, "missing mandatory attribute 'axis'")
	} else if a != k.Axis {
		s.Errorf(name, "invalid value attribute 'axis=%s'", a)
	}
	if timeAxis != nil && dataset.HasDimension(v, timeAxis.Name()) {
		s.Errorf(name, "%s not fixed, depends on '%s'", k.Long, timeAxis.Name())
		return nil
	}

	data, err := v.Data()
	if err != nil {
		s.Errorf(name, "cannot read %s: %v", k.Long, err)
		return nil
	}
	if len(data.Values) == 0 {
		s.Errorf(name, "empty %s coordinate", k.Long)
		return nil
	}
	if len(v.Dimensions()) > 1 {
		s.Printf("%s is not a rectilinear axis, mesh not checked", k.Long)
		return nil
	}

	ax := &Axis{Values: slices.Clone(data.Values)}
	mask := slices.Clone(data.Mask)
	if n := len(ax.Values); n > 1 && ax.Values[0] > ax.Values[n-1] {
		ax.Descending = true
		slices.Reverse(ax.Values)
		slices.Reverse(mask)
	}
	lo, hi := extent(ax.Values, mask)

	minAttr, hasMin := extentAttribute(s, root, fmt.Sprintf("geospatial_%s_min", k.Short), lo, func(a, c float64) bool { return a > c })
	maxAttr, hasMax := extentAttribute(s, root, fmt.Sprintf("geospatial_%s_max", k.Short), hi, func(a, c float64) bool { return a < c })

	ax.Resolution, ax.HasResolution = resolution(s, root, k, fileRes, hasFileRes)
	if ax.HasResolution {
		checkMesh(s, name, ax, mask, k, data.Type)
	}

	if checkBounds(s, v, ax, k) {
		n := len(ax.Bounds)
		if hasMin && !approxEqual(minAttr, ax.Bounds[0][0], data.Type) {
			s.Errorf(name, "mismatch between %smost %s bound '%v' and geospatial_%s_min '%v'", k.Left, k.Long, ax.Bounds[0][0], k.Short, minAttr)
		}
		if hasMax && !approxEqual(maxAttr, ax.Bounds[n-1][1], data.Type) {
			s.Errorf(name, "mismatch between %smost %s bound '%v' and geospatial_%s_max '%v'", k.Right, k.Long, ax.Bounds[n-1][1], k.Short, maxAttr)
		}
	}

	if ax.HasResolution {
		s.Printf("[%v -> %v by %v]", lo, hi, ax.Resolution)
	} else {
		s.Printf("[%v -> %v]", lo, hi)
	}
	slog.Debug("coordinate checked", "axis", name, "samples", len(ax.Values), "resolution", ax.Resolution)
	return ax
}

func extent(values []float64, mask []bool) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i, x := range values {
		if i < len(mask) && mask[i] {
			continue
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}

// extentAttribute reads a geospatial_*_min/max attribute and reports it
// when violated(attr, coordinate extent) holds.
func extentAttribute(s *report.Section, root dataset.Attributes, name string, coord float64, violated func(a, c float64) bool) (float64, bool) {
	v, ok := root.Get(name)
	if !ok {
		return 0, false
	}
	a, ok := v.Float()
	if !ok {
		s.Errorf(name, "%s: unexpected data format", name)
		return 0, false
	}
	if violated(a, coord) {
		s.Errorf(name, "%s mismatch: %v <-> %v", name, a, coord)
	}
	return a, true
}

// resolution selects the grid spacing from the geospatial_*_resolution
// attribute or the file name. Both must agree when both are present.
func resolution(s *report.Section, root dataset.Attributes, k Kind, fileRes float64, hasFileRes bool) (float64, bool) {
	name := fmt.Sprintf("geospatial_%s_resolution", k.Short)
	var attrRes float64
	hasAttr := false
	if v, ok := root.Get(name); ok {
		text, isText := v.Text()
		if !isText {
			s.Errorf(name, "%s :: must be a text type", name)
		} else if m := resolutionPattern.FindStringSubmatch(text); m != nil {
			if f, err := strconv.ParseFloat(m[1], 64); err == nil {
				attrRes, hasAttr = f, true
			}
		}
	}

	switch {
	case hasAttr && hasFileRes:
		if math.Abs(attrRes-fileRes) > 1/meshScale/2 {
			s.Errorf(name, "grid definition from file name '%v' <--> and attributes '%v'", fileRes, attrRes)
		}
		return attrRes, true
	case hasAttr:
		return attrRes, true
	case hasFileRes:
		return fileRes, true
	}
	return 0, false
}

func checkMesh(s *report.Section, name string, ax *Axis, mask []bool, k Kind, t dataset.Type) {
	if slices.Contains(mask, true) {
		s.Errorf(name, "%s contains missing data", k.Long)
		return
	}
	if idx := MeshMismatches(ax.Values, ax.Resolution, t); len(idx) > 0 {
		want := Mesh(ax.Values[0], ax.Resolution, len(ax.Values))
		s.Tolerancef(name, "%s differs from a %v degree mesh at %d locations", k.Long, ax.Resolution, len(idx))
		for _, i := range idx[:min(len(idx), maxListed)] {
			s.Printf("  [%d] found: %v expecting: %v", i, ax.Values[i], want[i])
		}
	}
	for _, x := range ax.Values {
		if math.Abs(x) < Spacing(x, t) {
			s.Errorf(name, "%s=0 is not allowed as %s center value.", k.Short, k.Long)
			break
		}
	}
}

// checkBounds decodes the bounds of v into ax and validates them. It returns
// false when no usable bounds exist.
func checkBounds(s *report.Section, v dataset.Variable, ax *Axis, k Kind) bool {
	name := v.Path()
	ref, ok := dataset.Text(v, "bounds")
	if !ok {
		s.Errorf(name, "missing bounds for %s coordinate", k.Long)
		return false
	}
	bv, ok := dataset.Sibling(v, ref)
	if !ok {
		s.Errorf(name, "Missing configured bounds variable '%s'.", ref)
		return false
	}
	n := len(ax.Values)
	shape := bv.Shape()
	data, err := bv.Data()
	if len(shape) != 2 || shape[0] != n || shape[1] != 2 || err != nil || len(data.Values) != 2*n {
		s.Errorf(name, "%s bounds must have shape (%d,2), but found: %v", k.Long, n, shape)
		return false
	}

	ax.Bounds = make([][2]float64, n)
	for i := range n {
		a, b := data.Values[2*i], data.Values[2*i+1]
		ax.Bounds[i] = [2]float64{math.Min(a, b), math.Max(a, b)}
	}
	if ax.Descending {
		slices.Reverse(ax.Bounds)
	}
	s.Printf("[%v -> %v] %s bounds", ax.Bounds[0][0], ax.Bounds[n-1][0], k.Left)
	s.Printf("[%v -> %v] %s bounds", ax.Bounds[0][1], ax.Bounds[n-1][1], k.Right)

	for i, x := range ax.Values {
		if ax.Bounds[i][0] > x || ax.Bounds[i][1] < x {
			s.Errorf(name, "%s values not within bounds", k.Long)
			break
		}
	}

	var gaps, overlaps int
	for i := 1; i < n; i++ {
		switch delta := ax.Bounds[i][0] - ax.Bounds[i-1][1]; {
		case delta > 0:
			gaps++
		case delta < 0:
			overlaps++
		}
	}
	if gaps > 0 {
		s.Errorf(name, "gaps in %s bounds at %d locations", k.Long, gaps)
	}
	if overlaps > 0 {
		s.Errorf(name, "%s bounds overlap at %d locations", k.Long, overlaps)
	}
	return true
}

// approxEqual compares an extent attribute with a bound within the spacing
// of the storage type.
func approxEqual(a, b float64, t dataset.Type) bool {
	return math.Abs(a-b) <= Tolerance(a, b, t)
}
