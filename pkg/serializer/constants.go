/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package serializer

// StdoutURI is the special destination indicating output should be written to stdout.
const StdoutURI = "-"
