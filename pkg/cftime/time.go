/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cftime

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Time is an instant in a CF calendar, held as the calendar's day number and
// the time of day. Arithmetic and formatting follow the calendar's own month
// lengths, so 2001-02-30 is a valid 360_day date and 2000-02-29 does not exist
// in noleap.
type Time struct {
	cal   Calendar
	day   int64
	clock time.Duration
}

// Date returns the instant at the given calendar fields. Days and clock fields
// outside their usual ranges carry into the neighbouring day or month.
func Date(c Calendar, year, month, dom, hour, minute, sec, nsec int) Time {
	months := month - 1
	year += floorDiv(months, 12)
	month = months - 12*floorDiv(months, 12) + 1
	c = c.canonical()
	t := Time{cal: c, day: c.dayNumber(year, month, 1) + int64(dom-1)}
	return t.Add(time.Duration(hour)*time.Hour +
		time.Duration(minute)*time.Minute +
		time.Duration(sec)*time.Second +
		time.Duration(nsec))
}

// FromTime maps the UTC fields of t onto calendar c.
func FromTime(c Calendar, t time.Time) Time {
	t = t.UTC()
	return Date(c, t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
}

func (c Calendar) canonical() Calendar {
	switch c {
	case "", Gregorian:
		return Standard
	case Day365:
		return NoLeap
	case Day366:
		return AllLeap
	}
	return c
}

// daysInMonth returns the length of month m of year y.
func (c Calendar) daysInMonth(y, m int) int {
	ny, nm := y, m+1
	if nm > 12 {
		ny, nm = y+1, 1
	}
	return int(c.dayNumber(ny, nm, 1) - c.dayNumber(y, m, 1))
}

// HasLeapDay reports whether year y of the calendar contains 29 February.
func (c Calendar) HasLeapDay(y int) bool {
	return c.daysInMonth(y, 2) == 29
}

// Calendar returns the calendar t is expressed in.
func (t Time) Calendar() Calendar {
	return t.cal.canonical()
}

// IsZero reports whether t is the zero value.
func (t Time) IsZero() bool {
	return t == Time{}
}

// Date returns the year, month and day of t.
func (t Time) Date() (year, month, dom int) {
	return t.cal.date(t.day)
}

// Clock returns the time elapsed since midnight.
func (t Time) Clock() time.Duration {
	return t.clock
}

// YearDay returns the day of the year, starting at 1.
func (t Time) YearDay() int {
	y, _, _ := t.Date()
	return int(t.day-t.cal.dayNumber(y, 1, 1)) + 1
}

// In re-expresses t in calendar c by its fields.
func (t Time) In(c Calendar) Time {
	if c.canonical() == t.Calendar() {
		return t
	}
	y, m, d := t.Date()
	return Date(c, y, m, d, 0, 0, 0, int(t.clock))
}

// Add returns t+d.
func (t Time) Add(d time.Duration) Time {
	t.cal = t.cal.canonical()
	t.clock += d
	if t.clock < 0 || t.clock >= day {
		carry := t.clock / day
		if t.clock%day < 0 {
			carry--
		}
		t.day += int64(carry)
		t.clock -= carry * day
	}
	return t
}

// AddMonths moves t by n calendar months, clamping the day to the length of
// the target month.
func (t Time) AddMonths(n int) Time {
	y, m, d := t.Date()
	months := m - 1 + n
	y += floorDiv(months, 12)
	m = months - 12*floorDiv(months, 12) + 1
	d = min(d, t.cal.daysInMonth(y, m))
	t.cal = t.cal.canonical()
	t.day = t.cal.dayNumber(y, m, d)
	return t
}

// Sub returns t-u. Both must be in the same calendar.
func (t Time) Sub(u Time) time.Duration {
	return time.Duration(t.day-u.day)*day + t.clock - u.clock
}

// Compare returns -1, 0 or +1 as t is before, equal to or after u.
func (t Time) Compare(u Time) int {
	switch {
	case t.day < u.day || (t.day == u.day && t.clock < u.clock):
		return -1
	case t.day == u.day && t.clock == u.clock:
		return 0
	}
	return 1
}

func (t Time) Equal(u Time) bool  { return t.Compare(u) == 0 }
func (t Time) Before(u Time) bool { return t.Compare(u) < 0 }
func (t Time) After(u Time) bool  { return t.Compare(u) > 0 }

// Round rounds the time of day to the nearest multiple of d.
func (t Time) Round(d time.Duration) Time {
	return t.Add(t.clock.Round(d) - t.clock)
}

// String renders t as an ISO 8601 UTC timestamp with up to millisecond
// precision.
func (t Time) String() string {
	y, m, d := t.Date()
	c := t.clock
	s := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", y, m, d,
		int(c/time.Hour), int(c%time.Hour/time.Minute), int(c%time.Minute/time.Second))
	if ms := int(c % time.Second / time.Millisecond); ms != 0 {
		s += strings.TrimRight(fmt.Sprintf(".%03d", ms), "0")
	}
	return s + "Z"
}

// MarshalText renders t for reports.
func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
