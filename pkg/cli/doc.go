/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the command-line interface of gridcert.
//
// # Commands
//
// check - Certify netCDF files:
//
//	gridcert check --standard ./share FILE...
//	gridcert check --standard ./share --standard-version 3.0 -c FILE...
//	gridcert check --reference ref.nc --ignore 'history,cfc@comment' FILE...
//	gridcert check -d ./out -m filename 'CFCmm*.nc'
//
// In standard mode every file is evaluated against a metadata standard
// catalog; in reference mode its attributes, variables and groups are
// compared with a trusted file. A text report per file is written to
// stdout. --summary writes a machine-readable batch summary and
// --metrics-file a Prometheus textfile.
//
// decode - Decode file names against the product naming grammar:
//
//	gridcert decode CFCmm20200101000000219AVPOS01GL.nc
//
// standard - Print an overview of a metadata standard catalog:
//
//	gridcert standard --standard ./share --standard-version 3.0
//
// # Global Flags
//
//	--debug        Enable debug logging
//	--log-json     Output logs in JSON format
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Environment Variables
//
//	GRIDCERT_STANDARDS_PATH  Default metadata standards location
//	GRIDCERT_RELEASE_YEAR    Value of the ${year} placeholder
//	LOG_LEVEL                Set logging verbosity (debug, info, warn, error)
//
// # Exit Codes
//
//	0  All files passed
//	1  Invalid arguments, execution failure or at least one failed file
//	2  Context canceled
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/gridcert/pkg/cli.version=1.0.0'"
package cli
