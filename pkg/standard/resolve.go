/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package standard

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// FilePrefix is the base name of catalogs in a standards directory.
const FilePrefix = "cmsaf_metadata_standard"

var versionedName = regexp.MustCompile(`^` + FilePrefix + `_v([0-9]+(?:-[0-9]+)*)\.(?:xml|ya?ml)$`)

// FileName returns the catalog file name for version. An empty version
// selects the unversioned catalog.
func FileName(version string) string {
	if version == "" {
		return FilePrefix + ".xml"
	}
	return FilePrefix + "_v" + strings.ReplaceAll(version, ".", "-") + ".xml"
}

// Resolve returns the catalog path for location. A file location is used
// as-is. In a directory, version selects cmsaf_metadata_standard_v<X-Y>.xml;
// without a version the unversioned catalog is used, falling back to the
// highest versioned one.
func Resolve(location, version string) (string, error) {
	info, err := os.Stat(location)
	if err != nil {
		return "", cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "metadata standard location not found", err,
			map[string]any{"location": location})
	}
	if !info.IsDir() {
		return location, nil
	}

	if version != "" {
		if _, err := semver.NewVersion(version); err != nil {
			return "", cnserrors.WrapWithContext(cnserrors.ErrCodeInvalidRequest, "invalid standard version", err,
				map[string]any{"version": version})
		}
		return filepath.Join(location, FileName(version)), nil
	}

	plain := filepath.Join(location, FileName(""))
	if _, err := os.Stat(plain); err == nil {
		return plain, nil
	}
	versions, err := Versions(location)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", cnserrors.NewWithContext(cnserrors.ErrCodeNotFound, "no metadata standard in directory",
			map[string]any{"location": location})
	}
	return versions[len(versions)-1].Path, nil
}

// Available is a versioned catalog found in a directory.
type Available struct {
	Version *semver.Version
	Path    string
}

// Versions lists the versioned catalogs of dir in ascending version order.
func Versions(dir string) ([]Available, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeNotFound, "failed to read standards directory", err,
			map[string]any{"location": dir})
	}
	var out []Available
	for _, e := range entries {
		m := versionedName.FindStringSubmatch(e.Name())
		if e.IsDir() || m == nil {
			continue
		}
		v, err := semver.NewVersion(strings.ReplaceAll(m[1], "-", "."))
		if err != nil {
			continue
		}
		out = append(out, Available{Version: v, Path: filepath.Join(dir, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version.LessThan(out[j].Version) })
	return out, nil
}
