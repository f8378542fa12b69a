/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package temporal

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/NVIDIA/gridcert/pkg/cftime"
	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/report"
)

// minEpochYear is the earliest accepted units epoch.
const minEpochYear = 1958

// Products with this product code and sequence carry their first record
// half an hour before the nominal file-name instant.
const (
	offsetProduct  = "UTH"
	offsetSequence = "002"
	offsetShift    = -30 * time.Minute
)

var pointMethod = regexp.MustCompile(`time: *point`)

// Record is one decoded time step, in the calendar of its axis.
type Record struct {
	// Index is the position on the time axis.
	Index int
	Time  cftime.Time
	Valid bool
	// Lower and Upper are set when Bounded.
	Lower   cftime.Time
	Upper   cftime.Time
	Bounded bool
	Status  string
}

// boundsState is the outcome of attaching bounds to the records.
type boundsState int

const (
	// boundsAbsent means the axis names no bounds variable.
	boundsAbsent boundsState = iota
	// boundsDangling means the named bounds variable does not exist; the
	// error is already reported.
	boundsDangling
	// boundsInvalid means the bounds variable exists but is unusable.
	boundsInvalid
	boundsAttached
)

// Check validates one time axis of root and returns its decoded records.
func Check(s *report.Section, root dataset.Dataset, axis dataset.Variable, exp Expectation, statuses StatusSet) []Record {
	name := axis.Path()
	swath := dataset.IsSwath(root)

	if a, ok := dataset.Text(axis, "axis"); !ok {
		s.Errorf(name, "missing mandatory attribute 'axis'")
	} else if a != "T" {
		s.Errorf(name, "invalid value attribute 'axis=%s'", a)
	}
	if exp.Climatology && !axis.Has("climatology") {
		s.Warnf(name, "Expecting attribute 'climatology' as attribute for time bounds")
	}

	dec := decoder(s, axis)
	if dec == nil {
		return nil
	}
	recs, size := decodeAxis(s, axis, dec, swath)
	if len(recs) == 0 {
		return recs
	}

	// Julian Day axes decode into the standard calendar.
	cal := dec.Calendar
	if dec.JulianDay() {
		cal = cftime.Standard
	}
	checkNominal(s, name, recs[0], exp, cal, swath)
	if want := exp.RecordsIn(cal); want > 0 && !swath && size != want {
		s.Errorf(name, "Expecting %d records but found %d.", want, size)
	}

	climatology := axis.Has("climatology")
	switch decodeBounds(s, axis, dec, recs, size, climatology) {
	case boundsAbsent, boundsInvalid:
		if boundsRequired(root, swath) {
			s.Tolerancef(name, "Missing time bounds")
		} else {
			s.Infof(name, "No time bounds required")
		}
	}

	st, hasStatus := statuses.For(axis)
	var prev *Record
	for i := range recs {
		r := &recs[i]
		result := "OK"
		if hasStatus {
			if meaning, v, ok := st.Flag(r.Index); ok {
				r.Status = meaning
			} else {
				s.Errorf(StatusVariable, "invalid record_status value [%v]", v)
			}
		}

		switch {
		case !r.Valid:
			result = "FAILED"
		case r.Bounded:
			if r.Lower.After(r.Time) || r.Upper.Before(r.Time) {
				s.Errorf(name, "record %d not in bounds", r.Index+1)
				result = "FAILED (record not in bounds)"
			}
			if exp.Resolution != nil && !swath && !climatology {
				delta := exp.Resolution.Next(r.Lower).Sub(r.Upper)
				switch {
				case delta > 0:
					s.Errorf(name, "gap in right bound of record %d (%v)", r.Index+1, delta)
					result = "FAILED (gap in right bound)"
				case delta < 0:
					s.Errorf(name, "overlap in right bound of record %d (%v)", r.Index+1, -delta)
					result = "FAILED (overlap in right bound)"
				}
			}
			if prev != nil && prev.Bounded && !climatology {
				delta := r.Lower.Sub(prev.Upper)
				switch {
				case delta > 0:
					s.Errorf(name, "gap in time coverage %g seconds", delta.Seconds())
					result = "FAILED"
				case delta < 0:
					s.Errorf(name, "overlap in time coverage %g seconds", delta.Seconds())
					result = "FAILED"
				}
			}
		case exp.Resolution != nil && !swath && prev != nil && prev.Valid:
			if want := exp.Resolution.Next(prev.Time); !want.Equal(r.Time) {
				s.Errorf(name, "time record %d mismatch, expecting %s", r.Index+1, format(want))
				result = "FAILED"
			}
		}
		printRecord(s, r, result)
		prev = r
	}

	checkCoverage(s, root, recs, cal, climatology)
	if first, last := recs[0], recs[len(recs)-1]; first.Valid && last.Valid {
		s.Printf("first time record: %s", format(first.Time))
		s.Printf("last  time record: %s", format(last.Time))
	}
	slog.Debug("time axis checked", "axis", name, "records", size, "errors", s.Counts().Errors)
	return recs
}

func decoder(s *report.Section, axis dataset.Variable) *cftime.Decoder {
	name := axis.Path()
	units, ok := dataset.Text(axis, "units")
	if !ok {
		s.Errorf(name, "missing mandatory attribute 'units' for time axis")
		return nil
	}
	calendar, _ := dataset.Text(axis, "calendar")
	dec, err := cftime.NewDecoder(units, calendar)
	if err != nil {
		s.Errorf(name, "invalid time axis: '%s' (%v)", units, err)
		return nil
	}
	if dec.Units.Epoch.Year < minEpochYear {
		s.Errorf(name, "invalid time axis: '%s', epoch before %d", units, minEpochYear)
	}
	return dec
}

// decodeAxis decodes the stored values. Swath axes decode only the first and
// last value. size is the length of the axis.
func decodeAxis(s *report.Section, axis dataset.Variable, dec *cftime.Decoder, swath bool) (recs []Record, size int) {
	name := axis.Path()
	data, err := axis.Data()
	if err != nil {
		s.Errorf(name, "invalid time axis: %v", err)
		return nil, 0
	}
	size = len(data.Values)
	if size == 0 {
		s.Errorf(name, "empty time axis")
		return nil, 0
	}

	indices := make([]int, 0, size)
	if swath {
		indices = append(indices, 0)
		if size > 1 {
			indices = append(indices, size-1)
		}
	} else {
		for i := range size {
			indices = append(indices, i)
		}
	}

	for _, i := range indices {
		r := Record{Index: i}
		if data.Masked(i) {
			s.Errorf(name, "invalid time record %d", i+1)
			recs = append(recs, r)
			continue
		}
		inst, err := dec.Decode(data.Values[i])
		if err != nil {
			s.Errorf(name, "invalid time record %d: %v", i+1, err)
			recs = append(recs, r)
			continue
		}
		if inst.Inexact {
			s.Warnf(name, "time record not exact (residue=%v)", inst.Residue)
		}
		r.Time, r.Valid = inst.Time, true
		recs = append(recs, r)
	}
	return recs, size
}

func checkNominal(s *report.Section, name string, first Record, exp Expectation, cal cftime.Calendar, swath bool) {
	if !exp.HasNominal {
		s.Infof(name, "Non standard file name")
		return
	}
	if !first.Valid {
		return
	}
	nominal := cftime.FromTime(cal, exp.Nominal)
	if exp.Decoded && !swath {
		if exp.Name.Product == offsetProduct && exp.Name.Sequence == offsetSequence {
			nominal = nominal.Add(offsetShift)
		}
		if !nominal.Equal(first.Time) {
			s.Errorf(name, "time record mismatch, expecting %s as first record", format(nominal))
		}
		return
	}
	if nominal.After(first.Time) {
		s.Errorf(name, "time record mismatch, expecting %s before first record", format(nominal))
	}
}

// decodeBounds attaches the bounds (or climatology bounds) to recs.
func decodeBounds(s *report.Section, axis dataset.Variable, dec *cftime.Decoder, recs []Record, size int, climatology bool) boundsState {
	name := axis.Path()
	key := "bounds"
	if climatology {
		key = "climatology"
	}
	ref, ok := dataset.Text(axis, key)
	if !ok {
		return boundsAbsent
	}
	bv, ok := dataset.Sibling(axis, ref)
	if !ok {
		s.Errorf(name, "Missing configured bounds variable '%s'.", ref)
		return boundsDangling
	}

	units, _ := dataset.Text(axis, "units")
	if bu, ok := dataset.Text(bv, "units"); ok && bu != units {
		s.Errorf(name, "time bounds must have same axis as time, but found: %s", bu)
	}
	shape := bv.Shape()
	if len(shape) != 2 || shape[0] != size || shape[1] != 2 {
		s.Errorf(name, "time bounds must have shape (%d,2), but found: %v", size, shape)
		return boundsInvalid
	}
	data, err := bv.Data()
	if err != nil || len(data.Values) != 2*size {
		s.Errorf(name, "cannot read time bounds '%s'", bv.Path())
		return boundsInvalid
	}

	for i := range recs {
		r := &recs[i]
		lo, hi := 2*r.Index, 2*r.Index+1
		if data.Masked(lo) || data.Masked(hi) {
			s.Errorf(name, "masked time bounds for record %d", r.Index+1)
			continue
		}
		lower, err := dec.Decode(data.Values[lo])
		if err != nil {
			s.Errorf(name, "invalid time bounds for record %d: %v", r.Index+1, err)
			continue
		}
		upper, err := dec.Decode(data.Values[hi])
		if err != nil {
			s.Errorf(name, "invalid time bounds for record %d: %v", r.Index+1, err)
			continue
		}
		r.Lower, r.Upper, r.Bounded = lower.Time, upper.Time, true
	}
	return boundsAttached
}

// boundsRequired reports whether the time axis must carry bounds: not for
// swath data, and not when every variable of the variable_id roster
// declares a point-in-time cell method.
func boundsRequired(root dataset.Dataset, swath bool) bool {
	if swath {
		return false
	}
	roster, ok := dataset.Text(root, "variable_id")
	if !ok {
		return true
	}
	for _, id := range strings.Split(roster, ",") {
		v, ok := dataset.Lookup(root, strings.TrimSpace(id))
		if !ok {
			return true
		}
		cm, ok := dataset.Text(v, "cell_methods")
		if !ok || !pointMethod.MatchString(cm) {
			return true
		}
	}
	return false
}

// checkCoverage compares time_coverage_start/end with the records and the
// outermost bounds. The end bound is not compared for climatology bounds.
func checkCoverage(s *report.Section, attrs dataset.Attributes, recs []Record, cal cftime.Calendar, climatology bool) {
	first, last := recs[0], recs[len(recs)-1]

	var start, end cftime.Time
	if text, ok := dataset.Text(attrs, "time_coverage_start"); ok {
		parsed, err := cftime.ParseTimestamp(text)
		if err != nil {
			s.Errorf("time_coverage_start", "Unexpected time format: '%s'", text)
		} else {
			t := cftime.FromTime(cal, parsed)
			start = t
			if first.Valid && t.After(first.Time) {
				s.Errorf("time_coverage_start", "first time record '%s' not within time_coverage_start attribute: '%s'", format(first.Time), format(t))
			}
			if first.Bounded && !t.Equal(first.Lower) {
				s.Errorf("time_coverage_start", "time bound [0,0] is not matching time_coverage_start attribute: '%s'", format(t))
			}
		}
	}
	if text, ok := dataset.Text(attrs, "time_coverage_end"); ok {
		parsed, err := cftime.ParseTimestamp(text)
		if err != nil {
			s.Errorf("time_coverage_end", "Unexpected time format: '%s'", text)
		} else {
			t := cftime.FromTime(cal, parsed)
			end = t
			if last.Valid && t.Before(last.Time) {
				s.Errorf("time_coverage_end", "last time record '%s' not within time_coverage_end attribute: '%s'", format(last.Time), format(t))
			}
			if last.Bounded && !climatology && !t.Equal(last.Upper) {
				s.Errorf("time_coverage_end", "time bound [-1,1] is not matching time_coverage_end attribute: '%s'", format(t))
			}
		}
	}
	if !start.IsZero() && !end.IsZero() {
		s.Printf("time coverage: [%s, %s]", format(start), format(end))
	}
}

func printRecord(s *report.Section, r *Record, result string) {
	if r.Status != "" {
		result += " [status=" + r.Status + "]"
	}
	switch {
	case !r.Valid:
		s.Printf("%3d invalid -> %s", r.Index+1, result)
	case r.Bounded:
		s.Printf("%3d %s [%s, %s] -> %s", r.Index+1, format(r.Time), format(r.Lower), format(r.Upper), result)
	default:
		s.Printf("%3d %s -> %s", r.Index+1, format(r.Time), result)
	}
}

func format(t cftime.Time) string {
	return t.String()
}
