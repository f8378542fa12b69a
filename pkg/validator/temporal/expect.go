/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package temporal

import (
	"slices"
	"time"

	"github.com/NVIDIA/gridcert/pkg/cftime"
	"github.com/NVIDIA/gridcert/pkg/dataset"
	"github.com/NVIDIA/gridcert/pkg/filename"
	"github.com/NVIDIA/gridcert/pkg/report"
)

const (
	durationAttribute   = "time_coverage_duration"
	resolutionAttribute = "time_coverage_resolution"
	diurnalRecords      = 24
)

var (
	hourly  = cftime.MustParseDuration("PT1H")
	daily   = cftime.MustParseDuration("P1D")
	monthly = cftime.MustParseDuration("P1M")
)

// classCadence is the record spacing implied by a temporal class.
var classCadence = map[filename.TemporalClass]cftime.Duration{
	filename.TemporalMonthly:  monthly,
	filename.TemporalDaily:    daily,
	filename.TemporalHourly:   hourly,
	filename.TemporalPentad:   cftime.MustParseDuration("P5D"),
	filename.TemporalWeekly:   cftime.MustParseDuration("P7D"),
	filename.TemporalSeasonal: cftime.MustParseDuration("P3M"),
	filename.TemporalAnnual:   cftime.MustParseDuration("P1Y"),
}

// Expectation is what the file name and the coverage attributes imply for
// the time axes of a file.
type Expectation struct {
	// Name is the decoded file name; Decoded is false for non-grammar names.
	Name    filename.Name
	Decoded bool
	// Nominal is the instant encoded in the file name.
	Nominal    time.Time
	HasNominal bool
	// Resolution is the cadence; nil when none applies.
	Resolution *cftime.Duration
	// Records is the expected record count in the standard calendar; zero
	// when unconstrained.
	Records int
	// span is the declared coverage duration when Records is derived by
	// walking it at Resolution.
	span *cftime.Duration
	// Climatology is set when the axis should carry climatology bounds.
	Climatology bool
	// Durations and Resolutions list the accepted attribute strings; nil
	// when any value is accepted.
	Durations   []string
	Resolutions []string
}

// Expect derives the expectation for file from its name and root
// attributes. Undecodable coverage attributes and a diurnal cycle declaring
// a resolution other than PT1H are reported to s.
func Expect(s *report.Section, file string, attrs dataset.Attributes) Expectation {
	var exp Expectation
	duration := declared(s, attrs, durationAttribute)
	resolution := declared(s, attrs, resolutionAttribute)

	exp.Nominal, exp.HasNominal = filename.NominalTime(file)
	exp.Name, exp.Decoded = filename.Decode(file)
	if !exp.Decoded {
		exp.Resolution = resolution
		return exp
	}
	n := exp.Name

	if resolution == nil {
		if n.IsDiurnalCycle() {
			resolution = ptr(hourly)
		} else if c, ok := classCadence[n.Temporal]; ok {
			resolution = ptr(c)
		}
	} else if n.IsDiurnalCycle() && *resolution != hourly {
		s.Errorf(resolutionAttribute, "expecting 'PT1H' as %s for diurnal cycle", resolutionAttribute)
		resolution = ptr(hourly)
	}
	exp.Resolution = resolution

	walk := n.Interval.IsAggregate() || n.Temporal == filename.TemporalInstantaneous || n.Temporal == filename.TemporalHourly
	switch {
	case n.IsDiurnalCycle():
		exp.Records = diurnalRecords
	case walk && duration != nil && resolution != nil && exp.HasNominal:
		steps, err := resolution.Steps(cftime.FromTime(cftime.Standard, exp.Nominal), *duration)
		if err != nil {
			s.Errorf(durationAttribute, "cannot derive record count: %v", err)
		} else {
			exp.Records, exp.span = steps, duration
		}
	case n.Temporal != filename.TemporalInstantaneous:
		exp.Records = 1
	}

	exp.Climatology = n.ExpectsClimatology()

	switch n.Temporal {
	case filename.TemporalMonthly:
		exp.Durations = []string{"P1M", "P0000-01-00T00:00:00"}
		exp.Resolutions = exp.Durations
	case filename.TemporalDaily:
		exp.Durations = []string{"P1D", "P0000-00-01T00:00:00"}
		exp.Resolutions = exp.Durations
	case filename.TemporalHourly:
		exp.Durations = []string{"P1D", "P0000-00-01T00:00:00", "PT1H", "P0000-00-00T01:00:00"}
	}
	if n.IsDiurnalCycle() || n.Temporal == filename.TemporalHourly {
		exp.Resolutions = []string{"PT1H", "P0000-00-00T01:00:00"}
	}
	return exp
}

// RecordsIn returns the expected record count for an axis in calendar c.
// Counts walked over the coverage duration follow the month and year lengths
// of c.
func (e Expectation) RecordsIn(c cftime.Calendar) int {
	if e.span == nil || e.Resolution == nil {
		return e.Records
	}
	steps, err := e.Resolution.Steps(cftime.FromTime(c, e.Nominal), *e.span)
	if err != nil {
		return e.Records
	}
	return steps
}

func ptr(d cftime.Duration) *cftime.Duration { return &d }

func declared(s *report.Section, attrs dataset.Attributes, name string) *cftime.Duration {
	text, ok := dataset.Text(attrs, name)
	if !ok {
		return nil
	}
	d, err := cftime.ParseDuration(text)
	if err != nil {
		s.Errorf(name, "%v", err)
		return nil
	}
	if d.IsZero() {
		return nil
	}
	return &d
}

// CheckCoverage compares the declared coverage attributes with the strings
// the file-name class allows.
func CheckCoverage(s *report.Section, attrs dataset.Attributes, exp Expectation) {
	check := func(name string, allowed []string) {
		text, ok := dataset.Text(attrs, name)
		if !ok || allowed == nil {
			return
		}
		if !slices.Contains(allowed, text) {
			s.Errorf(name, "Unexpected %s '%s'", name, text)
			return
		}
		s.Printf("%s: '%s'", name, text)
	}
	check(durationAttribute, exp.Durations)
	check(resolutionAttribute, exp.Resolutions)
}
