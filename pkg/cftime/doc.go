/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cftime decodes CF-convention time coordinates and ISO 8601
// durations.
//
// Time values are stored as offsets "<unit> since <epoch>" in one of the CF
// calendars (standard, proleptic_gregorian, julian, noleap, all_leap,
// 360_day). Epochs before year 1 select Julian Day decoding. Decoded values
// are rounded to Resolution; Instant.Inexact reports whether rounding changed
// the stored value.
//
// Decoded instants are Time values carried in their own calendar: month
// lengths, leap days and day-of-year follow the calendar, never the
// Gregorian rules of the time package. FromTime maps an instant parsed from
// text into a calendar by its fields.
//
// Durations follow both ISO 8601 forms used by time_coverage_duration and
// time_coverage_resolution attributes:
//
//	P1Y2M10DT2H30M   designator form
//	P0000-01-00T00:00:00   alternative form
//
// Duration.Next adds calendar components (years, months) first and then the
// fixed components, with the pentad leap-day correction.
package cftime
