/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package geo

import (
	"math"

	"github.com/NVIDIA/gridcert/pkg/dataset"
)

// meshScale is the fixed-point scale of the mesh arithmetic.
const meshScale = 1e4

// Mesh returns the expected coordinates of an ascending axis of n samples
// spaced by res and anchored at first. The anchor and the step are snapped
// to the fixed-point scale so the mesh does not drift.
func Mesh(first, res float64, n int) []float64 {
	anchor := int64(math.Round(first * meshScale))
	step := int64(math.Round(res * meshScale))
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(anchor+int64(i)*step) / meshScale
	}
	return out
}

// MeshMismatches returns the indices where values deviate from the expected
// mesh by more than the floating-point spacing of either value. t is the
// element type values were stored in.
func MeshMismatches(values []float64, res float64, t dataset.Type) []int {
	if len(values) == 0 {
		return nil
	}
	var out []int
	for i, want := range Mesh(values[0], res, len(values)) {
		if math.Abs(want-values[i]) > Tolerance(want, values[i], t) {
			out = append(out, i)
		}
	}
	return out
}

// Tolerance is the larger of the float64 spacing at want and the spacing of
// got in its storage type.
func Tolerance(want, got float64, t dataset.Type) float64 {
	return math.Max(Spacing(want, dataset.Float64), Spacing(got, t))
}

// Spacing returns the distance from |x| to the next representable value of
// type t. Integer types have a spacing of one.
func Spacing(x float64, t dataset.Type) float64 {
	x = math.Abs(x)
	switch {
	case t == dataset.Float32:
		f := float32(x)
		return float64(math.Nextafter32(f, float32(math.Inf(1))) - f)
	case t.IsInteger():
		return 1
	}
	return math.Nextafter(x, math.Inf(1)) - x
}
