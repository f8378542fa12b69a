/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cftime

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Calendar names a CF calendar.
type Calendar string

const (
	Standard           Calendar = "standard"
	Gregorian          Calendar = "gregorian"
	ProlepticGregorian Calendar = "proleptic_gregorian"
	Julian             Calendar = "julian"
	NoLeap             Calendar = "noleap"
	Day365             Calendar = "365_day"
	AllLeap            Calendar = "all_leap"
	Day366             Calendar = "366_day"
	Day360             Calendar = "360_day"
)

const (
	// Resolution is the grid decoded instants are rounded to.
	Resolution = 10 * time.Millisecond

	// julianDayPrecision is the largest rounding residue of a Julian Day
	// decode that is not reported as inexact.
	julianDayPrecision = 100 * time.Microsecond

	// gregorianReform is the first Julian Day Number of the Gregorian
	// calendar in the mixed standard calendar (1582-10-15).
	gregorianReform = 2299161

	secondsPerDay = 86400
)

var (
	cumulativeNoLeap  = [13]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	cumulativeAllLeap = [13]int{0, 31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

// ParseCalendar returns the calendar for a calendar attribute value. An empty
// value selects the standard calendar.
func ParseCalendar(s string) (Calendar, error) {
	c := Calendar(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "":
		return Standard, nil
	case Standard, Gregorian, ProlepticGregorian, Julian, NoLeap, Day365, AllLeap, Day366, Day360:
		return c, nil
	}
	return "", fmt.Errorf("unsupported calendar %q", s)
}

// dayNumber returns a day count for the date in the calendar.
func (c Calendar) dayNumber(y, m, d int) int64 {
	switch c {
	case ProlepticGregorian:
		return gregorianJDN(y, m, d)
	case Julian:
		return julianJDN(y, m, d)
	case NoLeap, Day365:
		return int64(y)*365 + int64(cumulativeNoLeap[m-1]+d-1)
	case AllLeap, Day366:
		return int64(y)*366 + int64(cumulativeAllLeap[m-1]+d-1)
	case Day360:
		return int64(y)*360 + int64((m-1)*30+d-1)
	}
	if y < 1582 || (y == 1582 && (m < 10 || (m == 10 && d < 15))) {
		return julianJDN(y, m, d)
	}
	return gregorianJDN(y, m, d)
}

// date inverts dayNumber.
func (c Calendar) date(n int64) (y, m, d int) {
	switch c {
	case ProlepticGregorian:
		return gregorianDate(n)
	case Julian:
		return julianDate(n)
	case NoLeap, Day365:
		return fixedYearDate(n, 365, cumulativeNoLeap)
	case AllLeap, Day366:
		return fixedYearDate(n, 366, cumulativeAllLeap)
	case Day360:
		y = int(floorDiv64(n, 360))
		r := int(n - int64(y)*360)
		return y, r/30 + 1, r%30 + 1
	}
	if n < gregorianReform {
		return julianDate(n)
	}
	return gregorianDate(n)
}

func fixedYearDate(n int64, length int64, cumulative [13]int) (y, m, d int) {
	y = int(floorDiv64(n, length))
	r := int(n - int64(y)*length)
	m = 1
	for m < 12 && r >= cumulative[m] {
		m++
	}
	return y, m, r - cumulative[m-1] + 1
}

// Fliegel and Van Flandern day number conversions.

func gregorianJDN(y, m, d int) int64 {
	a := int64((14 - m) / 12)
	yy := int64(y) + 4800 - a
	mm := int64(m) + 12*a - 3
	return int64(d) + (153*mm+2)/5 + 365*yy + floorDiv64(yy, 4) - floorDiv64(yy, 100) + floorDiv64(yy, 400) - 32045
}

func julianJDN(y, m, d int) int64 {
	a := int64((14 - m) / 12)
	yy := int64(y) + 4800 - a
	mm := int64(m) + 12*a - 3
	return int64(d) + (153*mm+2)/5 + 365*yy + floorDiv64(yy, 4) - 32083
}

func gregorianDate(jdn int64) (y, m, d int) {
	a := jdn + 32044
	b := floorDiv64(4*a+3, 146097)
	c := a - floorDiv64(146097*b, 4)
	dd := floorDiv64(4*c+3, 1461)
	e := c - floorDiv64(1461*dd, 4)
	mm := (5*e + 2) / 153
	d = int(e - (153*mm+2)/5 + 1)
	m = int(mm + 3 - 12*(mm/10))
	y = int(100*b + dd - 4800 + mm/10)
	return y, m, d
}

func julianDate(jdn int64) (y, m, d int) {
	c := jdn + 32082
	dd := floorDiv64(4*c+3, 1461)
	e := c - floorDiv64(1461*dd, 4)
	mm := (5*e + 2) / 153
	d = int(e - (153*mm+2)/5 + 1)
	m = int(mm + 3 - 12*(mm/10))
	y = int(dd - 4800 + mm/10)
	return y, m, d
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Instant is a decoded time value.
type Instant struct {
	Time Time
	// Inexact is set when rounding to Resolution changed the value.
	Inexact bool
	// Residue is the sub-second part the value carried before rounding.
	Residue time.Duration
}

// Decoder converts stored time values to instants.
type Decoder struct {
	Units    Units
	Calendar Calendar
}

// NewDecoder parses units and calendar attributes.
func NewDecoder(units, calendar string) (*Decoder, error) {
	u, err := ParseUnits(units)
	if err != nil {
		return nil, err
	}
	c, err := ParseCalendar(calendar)
	if err != nil {
		return nil, err
	}
	return &Decoder{Units: u, Calendar: c}, nil
}

// JulianDay reports whether the epoch selects Julian Day decoding.
func (dec *Decoder) JulianDay() bool {
	return dec.Units.Epoch.Year < 1
}

// Decode converts one stored value.
func (dec *Decoder) Decode(v float64) (Instant, error) {
	if !Valid(v) {
		return Instant{}, fmt.Errorf("time value %v cannot be decoded", v)
	}
	if dec.JulianDay() {
		return FromJulianDay(dec.julianDay(v)), nil
	}

	e := dec.Units.Epoch
	total := e.SecondOfDay() + dec.Units.Seconds(v)
	days := math.Floor(total / secondsPerDay)
	if math.Abs(days) > 1e9 {
		return Instant{}, fmt.Errorf("time value %v %s out of range", v, dec.Units.Unit)
	}
	rem := total - days*secondsPerDay
	micros := time.Duration(math.Round(rem*1e6)) * time.Microsecond

	c := dec.Calendar.canonical()
	raw := Time{cal: c, day: c.dayNumber(e.Year, e.Month, e.Day) + int64(days)}.Add(micros)
	rounded := raw.Round(Resolution)
	return Instant{
		Time:    rounded,
		Inexact: !rounded.Equal(raw),
		Residue: raw.Clock() % time.Second,
	}, nil
}

// julianDay rescales v to days when the units are not days.
func (dec *Decoder) julianDay(v float64) float64 {
	return dec.Units.Seconds(v) / secondsPerDay
}

// FromJulianDay converts a Julian Day to the standard calendar. The
// conversion is exact to julianDayPrecision; a larger residue is reported as
// inexact.
func FromJulianDay(jd float64) Instant {
	// Julian Days start at noon; the day number of the standard calendar is
	// the Julian Day Number of the civil day.
	shifted := jd + 0.5
	whole := math.Floor(shifted)
	frac := time.Duration(math.Round((shifted-whole)*secondsPerDay*1e6)) * time.Microsecond
	raw := Time{cal: Standard, day: int64(whole)}.Add(frac)
	rounded := raw.Round(Resolution)
	diff := rounded.Sub(raw)
	if diff < 0 {
		diff = -diff
	}
	return Instant{
		Time:    rounded,
		Inexact: diff > julianDayPrecision,
		Residue: raw.Clock() % time.Second,
	}
}

// Encode converts t back to a stored value in the decoder's units. An instant
// from another calendar is re-expressed in the decoder's by its fields.
func (dec *Decoder) Encode(t Time) (float64, error) {
	if dec.JulianDay() {
		t = t.In(Standard)
		jd := float64(t.day) - 0.5 + t.clock.Seconds()/secondsPerDay
		return jd * secondsPerDay / dec.Units.Factor, nil
	}
	e := dec.Units.Epoch
	t = t.In(dec.Calendar)
	n := t.day - dec.Calendar.dayNumber(e.Year, e.Month, e.Day)
	return (float64(n)*secondsPerDay + t.clock.Seconds() - e.SecondOfDay()) / dec.Units.Factor, nil
}
