/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package filename

// gridSpacing maps area-resolution codes to grid spacing in degrees.
var gridSpacing = map[string]float64{
	"19": 0.25,
	"20": 1.0,
	"23": 0.05,
	"26": 0.1,
}

// Resolution returns the grid spacing for an area-resolution code. Unknown
// codes resolve to false, which is not an error: the grid may be declared by
// attributes instead.
func Resolution(code string) (float64, bool) {
	r, ok := gridSpacing[code]
	return r, ok
}
