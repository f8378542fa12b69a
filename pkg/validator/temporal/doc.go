/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package temporal validates the time axes of a dataset.
//
// Expect derives what a file should contain from its name and the
// time_coverage_duration/time_coverage_resolution attributes: the cadence,
// the record count and the allowed coverage strings. Check decodes one time
// axis, applying the calendar and units of the axis, and verifies the
// records against the nominal instant of the file name, the cadence, the
// bounds (or climatology bounds), the coverage attributes and the
// record_status flags loaded by LoadStatus.
package temporal
