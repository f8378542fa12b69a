/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package batch validates a sorted sequence of files and detects gaps in the
// sequence.
//
// Files are validated one after the other; a file that fails or cannot be
// opened does not stop the run. Cancellation is honoured between files.
//
//	files, err := batch.Discover("/data", "CFCmm*.nc")
//	r := batch.New(v, batch.WithMissing(batch.MissingFromFilename), batch.WithWriter(os.Stdout))
//	sum, err := r.Run(ctx, files)
//	if sum.Failed > 0 {
//	    os.Exit(1)
//	}
package batch
