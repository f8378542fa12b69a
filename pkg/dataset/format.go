/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package dataset

import (
	"bytes"
	"io"
	"os"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

var (
	hdf5Magic    = []byte("\x89HDF\r\n\x1a\n")
	classicMagic = []byte("CDF")
)

// SniffFormat reads the file signature. HDF5 files are reported as NETCDF4.
func SniffFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "failed to open file", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	head := make([]byte, len(hdf5Magic))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidFormat, "failed to read file signature", err,
			map[string]any{"path": path})
	}
	return FormatOf(head[:n]), nil
}

// FormatOf classifies a file signature.
func FormatOf(head []byte) Format {
	switch {
	case bytes.HasPrefix(head, hdf5Magic):
		return FormatNetCDF4
	case len(head) >= 4 && bytes.HasPrefix(head, classicMagic):
		switch head[3] {
		case 1:
			return FormatClassic
		case 2:
			return Format64BitOffset
		case 5:
			return Format64BitData
		}
	}
	return FormatUnknown
}
