/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cftime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	designatorForm  = regexp.MustCompile(`^P(?:(?P<year>[0-9]+)Y)?(?:(?P<month>[0-9]+)M)?(?:(?P<week>[0-9]+)W)?(?:(?P<day>[0-9]+)D)?(?:T(?:(?P<hour>[0-9]+)?H)?(?:(?P<minute>[0-9]+)?M)?(?:(?P<second>[0-9]+)?S)?)?$`)
	alternativeForm = regexp.MustCompile(`^P(?P<year>[0-9]{4})-(?P<month>[0-9]{2})-(?P<day>[0-9]{2})T(?P<hour>[0-9]{2}):(?P<minute>[0-9]{2}):(?P<second>[0-9]+)$`)
)

// maxSteps bounds Duration.Steps walks.
const maxSteps = 1_000_000

// Duration is a decoded ISO 8601 duration.
type Duration struct {
	Years   int
	Months  int
	Weeks   int
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// ParseDuration decodes s in either ISO 8601 form.
func ParseDuration(s string) (Duration, error) {
	re := designatorForm
	m := re.FindStringSubmatch(s)
	if m == nil {
		re = alternativeForm
		m = re.FindStringSubmatch(s)
	}
	if m == nil || s == "P" || s == "PT" {
		return Duration{}, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	var d Duration
	fields := map[string]*int{
		"year":   &d.Years,
		"month":  &d.Months,
		"week":   &d.Weeks,
		"day":    &d.Days,
		"hour":   &d.Hours,
		"minute": &d.Minutes,
		"second": &d.Seconds,
	}
	for i, name := range re.SubexpNames() {
		dst, ok := fields[name]
		if !ok || m[i] == "" {
			continue
		}
		v, err := strconv.Atoi(m[i])
		if err != nil {
			return Duration{}, fmt.Errorf("invalid %s component in duration %q: %w", name, s, err)
		}
		*dst = v
	}
	return d, nil
}

// MustParseDuration is ParseDuration for package-level constants.
func MustParseDuration(s string) Duration {
	d, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether every component is zero.
func (d Duration) IsZero() bool {
	return d == Duration{}
}

// HasCalendarPart reports whether the duration has year or month components,
// whose length depends on the instant they are added to.
func (d Duration) HasCalendarPart() bool {
	return d.Years != 0 || d.Months != 0
}

// Fixed returns the week/day/hour/minute/second part.
func (d Duration) Fixed() time.Duration {
	return time.Duration(d.Weeks)*7*24*time.Hour +
		time.Duration(d.Days)*24*time.Hour +
		time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

// Add adds the years and months first, clamping the day to the length of the
// target month in t's calendar, then the fixed part.
func (d Duration) Add(t Time) Time {
	if d.HasCalendarPart() {
		t = t.AddMonths(d.Months + 12*d.Years)
	}
	return t.Add(d.Fixed())
}

// Next returns the instant following t at this cadence. A five-day step that
// lands on day-of-year 61 of a year with 29 February (1 March) is moved
// forward by one day so the pentad that contains the leap day spans six days.
func (d Duration) Next(t Time) Time {
	n := d.Add(t)
	if y, _, _ := n.Date(); d.Days == 5 && n.YearDay() == 61 && n.Calendar().HasLeapDay(y) {
		n = n.Add(day)
	}
	return n
}

// Steps counts the records at cadence d that fit in span starting at start:
// the number of instants start, d.Next(start), ... strictly before
// span.Add(start).
func (d Duration) Steps(start Time, span Duration) (int, error) {
	if d.IsZero() {
		return 0, fmt.Errorf("zero resolution")
	}
	end := span.Add(start)
	n := 0
	for t := start; t.Before(end); t = d.Next(t) {
		n++
		if n > maxSteps {
			return 0, fmt.Errorf("duration %s at resolution %s exceeds %d steps", span, d, maxSteps)
		}
	}
	return n, nil
}

// String renders the designator form.
func (d Duration) String() string {
	var sb strings.Builder
	sb.WriteString("P")
	writeComponent(&sb, d.Years, "Y")
	writeComponent(&sb, d.Months, "M")
	writeComponent(&sb, d.Weeks, "W")
	writeComponent(&sb, d.Days, "D")
	if d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 {
		sb.WriteString("T")
		writeComponent(&sb, d.Hours, "H")
		writeComponent(&sb, d.Minutes, "M")
		writeComponent(&sb, d.Seconds, "S")
	}
	if sb.Len() == 1 {
		return "PT0S"
	}
	return sb.String()
}

func writeComponent(sb *strings.Builder, v int, designator string) {
	if v != 0 {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteString(designator)
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
