/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cftime

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// basicLayouts are the ISO 8601 basic forms dateparse does not recognize.
var basicLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102T1504Z",
	"20060102",
}

// ParseTimestamp parses a free-form timestamp attribute such as
// time_coverage_start and truncates it to whole seconds. Timestamps without
// a zone are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range basicLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t.UTC().Truncate(time.Second), nil
	}
	e, err := ParseEpoch(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	t := time.Date(e.Year, time.Month(e.Month), e.Day, e.Hour, e.Minute, int(e.Second), 0, time.UTC)
	return t.Add(-time.Duration(e.Offset) * time.Second), nil
}
