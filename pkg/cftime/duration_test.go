/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cftime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    Duration
		wantErr bool
	}{
		{in: "P1M", want: Duration{Months: 1}},
		{in: "P1D", want: Duration{Days: 1}},
		{in: "PT1H", want: Duration{Hours: 1}},
		{in: "PT15M", want: Duration{Minutes: 15}},
		{in: "P1Y2M10DT2H30M", want: Duration{Years: 1, Months: 2, Days: 10, Hours: 2, Minutes: 30}},
		{in: "P2W", want: Duration{Weeks: 2}},
		{in: "P0000-01-00T00:00:00", want: Duration{Months: 1}},
		{in: "P0001-00-05T06:30:15", want: Duration{Years: 1, Days: 5, Hours: 6, Minutes: 30, Seconds: 15}},
		{in: "P", wantErr: true},
		{in: "1D", wantErr: true},
		{in: "P1.5D", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDurationString(t *testing.T) {
	for _, s := range []string{"P1M", "P1Y2M10DT2H30M", "PT1H", "P5D", "PT0S"} {
		d, err := ParseDuration(s)
		require.NoError(t, err)
		if got := d.String(); got != s {
			t.Errorf("String() = %q, want %q", got, s)
		}
	}
}

func TestDurationAdd(t *testing.T) {
	tests := []struct {
		name string
		d    string
		from Time
		want Time
	}{
		{"month", "P1M", date(2020, 1, 15), date(2020, 2, 15)},
		{"month clamps day", "P1M", date(2021, 1, 31), date(2021, 2, 28)},
		{"leap february", "P1M", date(2020, 1, 31), date(2020, 2, 29)},
		{"year", "P1Y", date(2020, 2, 29), date(2021, 2, 28)},
		{"december rollover", "P1M", date(2020, 12, 1), date(2021, 1, 1)},
		{"hours", "PT1H", date(2020, 1, 1), date(2020, 1, 1).Add(time.Hour)},
		{"week", "P1W", date(2020, 1, 1), date(2020, 1, 8)},
		{"months then days", "P1M1D", date(2020, 1, 31), date(2020, 3, 1)},
		{"360_day month", "P1M", in(Day360, 2001, 1, 30), in(Day360, 2001, 2, 30)},
		{"360_day day into march", "P1D", in(Day360, 2001, 2, 30), in(Day360, 2001, 3, 1)},
		{"360_day year", "P1Y", in(Day360, 2001, 2, 30), in(Day360, 2002, 2, 30)},
		{"noleap month clamps", "P1M", in(NoLeap, 2000, 1, 31), in(NoLeap, 2000, 2, 28)},
		{"noleap skips leap day", "P1D", in(NoLeap, 2000, 2, 28), in(NoLeap, 2000, 3, 1)},
		{"365_day skips leap day", "P1D", in(Day365, 2004, 2, 28), in(NoLeap, 2004, 3, 1)},
		{"all_leap keeps leap day", "P1D", in(AllLeap, 2001, 2, 28), in(AllLeap, 2001, 2, 29)},
		{"all_leap month", "P1M", in(AllLeap, 2001, 1, 31), in(AllLeap, 2001, 2, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustParseDuration(tt.d).Add(tt.from)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.want.Calendar(), got.Calendar())
		})
	}
}

func TestDurationNextPentadLeapCorrection(t *testing.T) {
	pentad := MustParseDuration("P5D")

	tests := []struct {
		name string
		step Duration
		from Time
		want Time
	}{
		// 2020-02-25 + 5 days lands on 1 March (day 61 of a leap year).
		{"standard leap year", pentad, date(2020, 2, 25), date(2020, 3, 2)},
		{"standard common year", pentad, date(2021, 2, 25), date(2021, 3, 2)},
		{"daily step", MustParseDuration("P1D"), date(2020, 2, 29), date(2020, 3, 1)},
		{"all_leap every year", pentad, in(AllLeap, 2001, 2, 25), in(AllLeap, 2001, 3, 2)},
		{"noleap never", pentad, in(NoLeap, 2000, 2, 25), in(NoLeap, 2000, 3, 2)},
		{"360_day never", pentad, in(Day360, 2000, 2, 26), in(Day360, 2000, 3, 1)},
		{"julian century", pentad, in(Julian, 1900, 2, 25), in(Julian, 1900, 3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.step.Next(tt.from)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestDurationSteps(t *testing.T) {
	tests := []struct {
		name  string
		step  string
		span  string
		start Time
		want  int
	}{
		{"hourly over a day", "PT1H", "P1D", date(2020, 1, 1), 24},
		{"daily over a month", "P1D", "P1M", date(2020, 2, 1), 29},
		{"monthly over a year", "P1M", "P1Y", date(2020, 1, 1), 12},
		{"equal step", "P1M", "P1M", date(2020, 1, 1), 1},
		{"quarter hour over a day", "PT15M", "P1D", date(2020, 1, 1), 96},
		{"step longer than span", "P2M", "P1M", date(2020, 1, 1), 1},
		{"360_day daily over january", "P1D", "P1M", in(Day360, 2001, 1, 1), 30},
		{"360_day daily over february", "P1D", "P1M", in(Day360, 2001, 2, 1), 30},
		{"360_day daily over a year", "P1D", "P1Y", in(Day360, 2001, 1, 1), 360},
		{"noleap daily over leap february", "P1D", "P1M", in(NoLeap, 2000, 2, 1), 28},
		{"noleap daily over a leap year", "P1D", "P1Y", in(NoLeap, 2000, 1, 1), 365},
		{"all_leap daily over february", "P1D", "P1M", in(AllLeap, 2001, 2, 1), 29},
		{"all_leap daily over a year", "P1D", "P1Y", in(AllLeap, 2001, 1, 1), 366},
		{"all_leap pentads over a year", "P5D", "P1Y", in(AllLeap, 2001, 1, 1), 73},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := MustParseDuration(tt.step).Steps(tt.start, MustParseDuration(tt.span))
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	_, err := Duration{}.Steps(date(2020, 1, 1), MustParseDuration("P1D"))
	assert.Error(t, err)
}

func date(y, m, d int) Time {
	return Date(Standard, y, m, d, 0, 0, 0, 0)
}

func in(c Calendar, y, m, d int) Time {
	return Date(c, y, m, d, 0, 0, 0, 0)
}
