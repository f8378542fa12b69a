/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// Discover returns the readable files below dir whose base name matches
// pattern, at any depth. Patterns containing a slash match the path relative
// to dir instead. The result is sorted by base name.
func Discover(dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, cnserrors.NewWithContext(cnserrors.ErrCodeInvalidRequest, "invalid file pattern",
			map[string]any{"pattern": pattern})
	}
	if !strings.Contains(pattern, "/") {
		pattern = "**/" + pattern
	}

	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeUnavailable, "failed to search directory", err,
			map[string]any{"dir": dir, "pattern": pattern})
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		if !readable(fsys, m) {
			slog.Warn("skipping unreadable file", "path", filepath.Join(dir, m))
			continue
		}
		files = append(files, filepath.Join(dir, filepath.FromSlash(m)))
	}
	Sort(files)
	return files, nil
}

// Sort orders paths by base name, then by full path.
func Sort(paths []string) {
	slices.SortStableFunc(paths, func(a, b string) int {
		if c := strings.Compare(filepath.Base(a), filepath.Base(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}

func readable(fsys fs.FS, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
