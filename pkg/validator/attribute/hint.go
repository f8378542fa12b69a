/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package attribute

import (
	"fmt"

	"github.com/agnivade/levenshtein"

	"github.com/NVIDIA/gridcert/pkg/standard"
)

// maxHintDistance bounds the edit distance of "did you mean" suggestions.
const maxHintDistance = 3

// closest returns the candidate nearest to s within maxHintDistance.
func closest(s string, candidates []string) (string, bool) {
	best, bestDist := "", maxHintDistance+1
	for _, c := range candidates {
		if c == s {
			continue
		}
		if d := levenshtein.ComputeDistance(s, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, best != ""
}

// hint suggests the nearest content value of entry.
func hint(tok string, entry *standard.Entry) string {
	values := make([]string, len(entry.Content))
	for i, r := range entry.Content {
		values[i] = r.Value
	}
	if c, ok := closest(tok, values); ok {
		return fmt.Sprintf(", did you mean '%s'?", c)
	}
	return ""
}
