/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/gridcert/pkg/defaults"
	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv(defaults.EnvStandardsPath, "/opt/share")
	t.Setenv(defaults.EnvReleaseYear, "2022")

	cfg := NewConfig()
	assert.Equal(t, "/opt/share", cfg.StandardsPath())
	assert.Equal(t, 2022, cfg.ReleaseYear())
	assert.Equal(t, defaults.SummaryFormat, cfg.SummaryFormat())
	assert.False(t, cfg.ReferenceMode())
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigWithOptions(t *testing.T) {
	cfg := NewConfig(
		WithStandardsPath("/std"),
		WithStandardVersion("2.3"),
		WithIgnore("history"),
		WithIgnore("@units"),
		WithCoordinates(true),
		WithLazy(true),
		WithMissing("d"),
		WithReleaseYear(2020),
		WithSummaryFormat("json"),
	)
	assert.Equal(t, "/std", cfg.StandardsPath())
	assert.Equal(t, "2.3", cfg.StandardVersion())
	assert.Equal(t, []string{"history", "@units"}, cfg.Ignore())
	assert.True(t, cfg.Coordinates())
	assert.True(t, cfg.Lazy())
	assert.Equal(t, "d", cfg.Missing())
	assert.Equal(t, 2020, cfg.ReleaseYear())
	assert.Equal(t, "json", cfg.SummaryFormat())

	// the returned list is a copy
	cfg.Ignore()[0] = "changed"
	assert.Equal(t, "history", cfg.Ignore()[0])
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"valid default config", NewConfig(WithStandardsPath("/std")), false},
		{"reference mode", NewConfig(WithReference("ref.nc")), false},
		{"reference and version", NewConfig(WithReference("ref.nc"), WithStandardVersion("2.3")), true},
		{"no standards", &Config{summaryFormat: "yaml"}, true},
		{"missing class", NewConfig(WithMissing("w")), true},
		{"missing from file name", NewConfig(WithMissing("filename")), false},
		{"summary format", NewConfig(WithSummaryFormat("xml")), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gridcert.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
standardsPath: /etc/gridcert
standardVersion: "2.3"
ignore: [history, "cfc@units"]
coordinates: true
missing: filename
releaseYear: 2019
`), 0o600))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/etc/gridcert", f.StandardsPath)

	// flags come after the file options and win
	cfg := NewConfig(append(f.Options(), WithStandardVersion("3.0"))...)
	assert.Equal(t, "/etc/gridcert", cfg.StandardsPath())
	assert.Equal(t, "3.0", cfg.StandardVersion())
	assert.Equal(t, []string{"history", "cfc@units"}, cfg.Ignore())
	assert.True(t, cfg.Coordinates())
	assert.Equal(t, "filename", cfg.Missing())
	assert.Equal(t, 2019, cfg.ReleaseYear())
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "absent.yaml"))
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeNotFound))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("unknownKey: 1\n"), 0o600))
	_, err = LoadFile(bad)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidFormat))

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	f, err := LoadFile(empty)
	require.NoError(t, err)
	assert.Equal(t, File{}, *f)
}
