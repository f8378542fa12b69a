/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package dataset is the read-only data-file capability the validators work
// against.
//
// A Dataset is a root Group with a file name and a container Format. Groups
// and variables expose their attributes through the Attributes interface;
// attribute values are a closed tagged variant (Value) assigned once when the
// attribute is fetched.
//
// Two backends are provided:
//
//   - Open reads netCDF classic and netCDF-4/HDF5 files with
//     github.com/batchatco/go-native-netcdf.
//   - NewMemory builds datasets in memory, for tests and synthetic inputs.
//
// Coordinate discovery helpers (FindCoordinates, MatchTimeAxis, IsSwath) walk
// the group tree using Group.Parent with a bounded loop.
package dataset
