/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package validator certifies netCDF files against a metadata standard or a
// reference file.
//
// # Overview
//
// A Validator runs a fixed sequence of checks on each file and writes the
// diagnostics to a report.Report:
//
//   - compression: netCDF-4 container, deflated variables of rank three or more
//   - variables: record_status, mandatory and recommended variable attributes
//   - metadata standard or reference attributes and variables
//   - coordinates (optional): record status, time, latitude and longitude axes
//
// A wrong container format is fatal for the file and skips the remaining
// checks. All other sections are independent of each other.
//
// # Usage
//
// Standard mode:
//
//	cat, err := standard.Load(path)
//	if err != nil {
//	    return err
//	}
//	v, err := validator.New(
//	    validator.WithCatalog(cat),
//	    validator.WithVocabularies(vocabulary.NewRegistry(vocabulary.WithSearchPath(dir))),
//	    validator.WithCoordinates(true),
//	)
//	if err != nil {
//	    return err
//	}
//	rep, err := v.ValidateFile(ctx, "CFCmm20200101000000219AVPOS01GL.nc")
//
// Reference mode replaces WithCatalog with WithReference; the two are
// mutually exclusive.
//
// # Error Handling
//
// Problems with a file are diagnostics, not Go errors: a file that cannot be
// opened yields a failed report. ValidateFile returns an error only when the
// context is done or the validator is misconfigured.
package validator
