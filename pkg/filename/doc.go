/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package filename decodes the fixed-width product file-naming convention.
//
// # Grammar
//
//	PPP T I YYYYMMDD hhmm SSS RR AAAAA V1 V2 [suffix]
//
//	PPP    product code, three upper-case letters
//	T      temporal class (d h i m p s w a)
//	I      interval class (n c f h m d s)
//	YYYYMMDD hhmm  nominal date and time (UTC)
//	SSS    three-digit sequence
//	RR     area-resolution code (see Resolution)
//	AAAAA  area code
//	V1 V2  two version codes
//	suffix optional .nc, .nc.gz, .hdf, .hdf.gz or .gz
//
// Decode is total and pure: a name either matches the whole grammar or yields
// false. Name.String re-encodes a decoded name to the exact original string.
package filename
