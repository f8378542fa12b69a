/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package vocabulary reads controlled keyword vocabularies.
//
// A vocabulary is a CSV table with a version row ("Keyword Version: 8.6"),
// a header row whose last column is UUID, and one row per keyword:
//
//	"Keyword Version: 8.6","Revision: 2018-01-01"
//	Category,Topic,Term,Variable_Level_1,Variable_Level_2,Variable_Level_3,Detailed_Variable,UUID
//	EARTH SCIENCE,ATMOSPHERE,CLOUDS,,,,,"162e4 ..."
//
// Registry loads vocabularies on first use and memoizes them per file name;
// concurrent requests for the same file share one load.
package vocabulary
