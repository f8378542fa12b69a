/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package filename

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var pattern = regexp.MustCompile(`^([A-Z]{3})([dhimpswa])([ncfhmds])((?:19|20)\d\d)(0[1-9]|1[012])(0[1-9]|[12]\d|3[01])([01]\d|2[0-3])([0-5]\d)(\d{3})(\d{2})([0-9A-Z]{5})([A-Z0-9]{2})([A-Z0-9]{2})((?:\.hdf|\.hdf\.gz|\.gz|\.nc|\.nc\.gz)?)$`)

// TemporalClass is the second grammar field.
type TemporalClass byte

const (
	TemporalDaily         TemporalClass = 'd'
	TemporalHourly        TemporalClass = 'h'
	TemporalInstantaneous TemporalClass = 'i'
	TemporalMonthly       TemporalClass = 'm'
	TemporalPentad        TemporalClass = 'p'
	TemporalSeasonal      TemporalClass = 's'
	TemporalWeekly        TemporalClass = 'w'
	TemporalAnnual        TemporalClass = 'a'
)

// String returns the single-letter code.
func (c TemporalClass) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c TemporalClass) MarshalText() ([]byte, error) {
	return []byte{byte(c)}, nil
}

// IntervalClass is the third grammar field.
type IntervalClass byte

const (
	IntervalNone         IntervalClass = 'n'
	IntervalCumulative   IntervalClass = 'c'
	IntervalFrequency    IntervalClass = 'f'
	IntervalHistogram    IntervalClass = 'h'
	IntervalMean         IntervalClass = 'm'
	IntervalDiurnalCycle IntervalClass = 'd'
	IntervalStdDev       IntervalClass = 's'
)

// String returns the single-letter code.
func (c IntervalClass) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c IntervalClass) MarshalText() ([]byte, error) {
	return []byte{byte(c)}, nil
}

// IsAggregate reports whether records of this class summarize a period.
func (c IntervalClass) IsAggregate() bool {
	return c != IntervalNone
}

// Name is a decoded file name.
type Name struct {
	Product        string        `json:"product" yaml:"product"`
	Temporal       TemporalClass `json:"temporalClass" yaml:"temporalClass"`
	Interval       IntervalClass `json:"intervalClass" yaml:"intervalClass"`
	Date           string        `json:"date" yaml:"date"`
	Clock          string        `json:"time" yaml:"time"`
	Sequence       string        `json:"sequence" yaml:"sequence"`
	AreaResolution string        `json:"areaResolution" yaml:"areaResolution"`
	Area           string        `json:"area" yaml:"area"`
	Version1       string        `json:"version1" yaml:"version1"`
	Version2       string        `json:"version2" yaml:"version2"`
	Suffix         string        `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// Decode decodes name against the grammar. Directory components are not
// stripped; callers pass a base name.
func Decode(name string) (Name, bool) {
	m := pattern.FindStringSubmatch(name)
	if m == nil {
		return Name{}, false
	}
	return Name{
		Product:        m[1],
		Temporal:       TemporalClass(m[2][0]),
		Interval:       IntervalClass(m[3][0]),
		Date:           m[4] + m[5] + m[6],
		Clock:          m[7] + m[8],
		Sequence:       m[9],
		AreaResolution: m[10],
		Area:           m[11],
		Version1:       m[12],
		Version2:       m[13],
		Suffix:         m[14],
	}, true
}

// String re-encodes the name.
func (n Name) String() string {
	var sb strings.Builder
	sb.Grow(32 + len(n.Suffix))
	sb.WriteString(n.Product)
	sb.WriteByte(byte(n.Temporal))
	sb.WriteByte(byte(n.Interval))
	sb.WriteString(n.Date)
	sb.WriteString(n.Clock)
	sb.WriteString(n.Sequence)
	sb.WriteString(n.AreaResolution)
	sb.WriteString(n.Area)
	sb.WriteString(n.Version1)
	sb.WriteString(n.Version2)
	sb.WriteString(n.Suffix)
	return sb.String()
}

// Time returns the nominal instant in UTC. The grammar only admits valid
// month and day ranges, so the error is limited to impossible dates such as
// February 30.
func (n Name) Time() (time.Time, error) {
	t, err := time.ParseInLocation("200601021504", n.Date+n.Clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid nominal time %s%s: %w", n.Date, n.Clock, err)
	}
	return t, nil
}

// Resolution returns the grid spacing in degrees for the area-resolution code.
func (n Name) Resolution() (float64, bool) {
	return Resolution(n.AreaResolution)
}

// IsDiurnalCycle reports whether records are hourly slots of a mean day.
func (n Name) IsDiurnalCycle() bool {
	return n.Interval == IntervalDiurnalCycle
}

// ExpectsClimatology reports whether the time axis should carry climatology
// bounds (monthly diurnal cycle products).
func (n Name) ExpectsClimatology() bool {
	return n.Temporal == TemporalMonthly && n.Interval == IntervalDiurnalCycle
}

// NominalTime decodes name and returns its nominal instant, reading the date
// and time fields positionally so that names which only follow the
// date layout still resolve.
func NominalTime(name string) (time.Time, bool) {
	if n, ok := Decode(name); ok {
		t, err := n.Time()
		return t, err == nil
	}
	if len(name) < 17 {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("200601021504", name[5:17], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
