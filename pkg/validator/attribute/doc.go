/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package attribute judges dataset attributes against metadata-standard
// entries.
//
// Evaluate checks one attribute: presence policy, declared type, and for
// text values the content, regex and keyword rules of the entry, aggregated
// over the list tokens by the entry's join policy:
//
//   - or: the value passes when at least one rule received a hit
//   - and: the value passes when every content rule received a hit
//
// Misses of individual tokens in a multi-token value are warnings; the
// aggregate verdict carries the error.
//
// CheckGlobal runs Evaluate over the root attributes of a dataset against a
// catalog and writes the findings to a report section.
package attribute
