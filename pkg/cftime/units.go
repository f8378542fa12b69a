/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cftime

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	unitsPattern = regexp.MustCompile(`^\s*([A-Za-z]+)\s+since\s+(.+?)\s*$`)
	epochPattern = regexp.MustCompile(`^(-?\d{1,4})-(\d{1,2})-(\d{1,2})(?:[T ](\d{1,2}):(\d{1,2})(?::(\d{1,2}(?:\.\d*)?))?)?\s*(Z|UTC|GMT|[+-]\d{1,2}(?::?\d{2})?)?$`)
)

var unitSeconds = map[string]float64{
	"days": 86400, "day": 86400, "d": 86400,
	"hours": 3600, "hour": 3600, "hrs": 3600, "hr": 3600, "h": 3600,
	"minutes": 60, "minute": 60, "mins": 60, "min": 60,
	"seconds": 1, "second": 1, "secs": 1, "sec": 1, "s": 1,
	"milliseconds": 1e-3, "millisecond": 1e-3, "msecs": 1e-3, "msec": 1e-3, "ms": 1e-3,
	"microseconds": 1e-6, "microsecond": 1e-6, "usecs": 1e-6, "usec": 1e-6, "us": 1e-6,
}

// Epoch is the reference instant of a units string, in calendar fields so
// that years outside the Gregorian range survive parsing.
type Epoch struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second float64
	// Offset is the zone offset in seconds east of UTC.
	Offset int
}

// SecondOfDay is the UTC-adjusted time of day in seconds.
func (e Epoch) SecondOfDay() float64 {
	return float64(e.Hour*3600+e.Minute*60-e.Offset) + e.Second
}

// String renders the epoch as YYYY-MM-DD hh:mm:ss.
func (e Epoch) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", e.Year, e.Month, e.Day, e.Hour, e.Minute, int(e.Second))
}

// Units is a parsed "<unit> since <epoch>" string.
type Units struct {
	Raw string
	// Unit is the lower-cased unit name.
	Unit string
	// Factor converts one unit to seconds.
	Factor float64
	Epoch  Epoch
}

// ParseUnits parses a CF time units string.
func ParseUnits(s string) (Units, error) {
	m := unitsPattern.FindStringSubmatch(s)
	if m == nil {
		return Units{}, fmt.Errorf("time units %q are not of the form '<unit> since <epoch>'", s)
	}
	unit := strings.ToLower(m[1])
	factor, ok := unitSeconds[unit]
	if !ok {
		return Units{}, fmt.Errorf("unsupported time unit %q in %q", m[1], s)
	}
	epoch, err := ParseEpoch(m[2])
	if err != nil {
		return Units{}, fmt.Errorf("invalid epoch in time units %q: %w", s, err)
	}
	return Units{Raw: s, Unit: unit, Factor: factor, Epoch: epoch}, nil
}

// ParseEpoch parses the epoch part of a units string. The year may be
// negative.
func ParseEpoch(s string) (Epoch, error) {
	m := epochPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Epoch{}, fmt.Errorf("unrecognized timestamp %q", s)
	}
	var e Epoch
	e.Year, _ = strconv.Atoi(m[1])
	e.Month, _ = strconv.Atoi(m[2])
	e.Day, _ = strconv.Atoi(m[3])
	if m[4] != "" {
		e.Hour, _ = strconv.Atoi(m[4])
		e.Minute, _ = strconv.Atoi(m[5])
	}
	if m[6] != "" {
		sec, err := strconv.ParseFloat(strings.TrimSuffix(m[6], "."), 64)
		if err != nil {
			return Epoch{}, fmt.Errorf("invalid seconds in %q: %w", s, err)
		}
		e.Second = sec
	}
	if e.Month < 1 || e.Month > 12 || e.Day < 1 || e.Day > 31 || e.Hour > 23 || e.Minute > 59 || e.Second >= 61 {
		return Epoch{}, fmt.Errorf("timestamp %q out of range", s)
	}
	offset, err := parseZone(m[7])
	if err != nil {
		return Epoch{}, fmt.Errorf("invalid zone in %q: %w", s, err)
	}
	e.Offset = offset
	return e, nil
}

func parseZone(z string) (int, error) {
	switch z {
	case "", "Z", "UTC", "GMT":
		return 0, nil
	}
	sign := 1
	if z[0] == '-' {
		sign = -1
	}
	digits := strings.ReplaceAll(z[1:], ":", "")
	var hours, minutes int
	var err error
	switch {
	case len(digits) <= 2:
		hours, err = strconv.Atoi(digits)
	default:
		hours, err = strconv.Atoi(digits[:len(digits)-2])
		if err == nil {
			minutes, err = strconv.Atoi(digits[len(digits)-2:])
		}
	}
	if err != nil {
		return 0, err
	}
	return sign * (hours*3600 + minutes*60), nil
}

// Seconds converts a stored value to seconds since the epoch.
func (u Units) Seconds(v float64) float64 {
	return v * u.Factor
}

// Valid reports whether v can be decoded.
func Valid(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
