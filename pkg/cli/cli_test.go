/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/gridcert/pkg/batch"
	"github.com/NVIDIA/gridcert/pkg/config"
	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/serializer"
)

const catalogYAML = `version: "3.1"
lastModified: "2024-06-01"
entries:
  - id: title
    required: "yes"
    regex:
      - value: "^CM SAF .*$"
  - id: project
    content:
      - value: CM SAF
`

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.Writer = &out
	root.ErrWriter = &errOut
	err := root.Run(context.Background(), append([]string{name}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    serializer.Format
		wantErr bool
	}{
		{name: "default", args: []string{"cmd"}, want: serializer.FormatYAML},
		{name: "json", args: []string{"cmd", "--format", "json"}, want: serializer.FormatJSON},
		{name: "table short", args: []string{"cmd", "-t", "table"}, want: serializer.FormatTable},
		{name: "unknown", args: []string{"cmd", "--format", "xml"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got serializer.Format
			var gotErr error
			cmd := &cli.Command{
				Name:  "cmd",
				Flags: []cli.Flag{formatFlag()},
				Action: func(_ context.Context, c *cli.Command) error {
					got, gotErr = parseOutputFormat(c)
					return nil
				},
			}
			require.NoError(t, cmd.Run(context.Background(), tt.args))
			if tt.wantErr {
				require.Error(t, gotErr)
				assert.Contains(t, gotErr.Error(), "valid formats are: yaml, json, table")
				return
			}
			require.NoError(t, gotErr)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	out, err := run(t, "decode", "--format", "json", "data/CFCmm20200101000000219AVPOS01GL.nc", "notes.txt")
	require.NoError(t, err)

	var got []decodedName
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "CFCmm20200101000000219AVPOS01GL.nc", got[0].File)
	assert.True(t, got[0].Valid)
	require.NotNil(t, got[0].Name)
	assert.Equal(t, "CFC", got[0].Name.Product)
	assert.Equal(t, "AVPOS", got[0].Name.Area)
	assert.InDelta(t, 0.25, got[0].Resolution, 1e-12)
	require.NotNil(t, got[0].Nominal)
	assert.Equal(t, 2020, got[0].Nominal.Year())

	assert.False(t, got[1].Valid)
	assert.Nil(t, got[1].Name)
}

func TestDecodeRequiresNames(t *testing.T) {
	_, err := run(t, "decode")
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
}

func TestStandard(t *testing.T) {
	path := writeFile(t, t.TempDir(), "standard.yaml", catalogYAML)

	out, err := run(t, "standard", "-s", path, "--format", "json")
	require.NoError(t, err)

	var got catalogOverview
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, StandardKind, got.Kind)
	assert.Equal(t, "3.1", got.Version)
	assert.Equal(t, path, got.Path)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "title", got.Entries[0].ID)
	assert.Equal(t, 1, got.Entries[0].Rules)
	assert.Empty(t, got.Available)
}

func TestStandardDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cmsaf_metadata_standard_v2-0.xml", `<standard><version_number>2.0</version_number></standard>`)
	writeFile(t, dir, "cmsaf_metadata_standard_v3-0.xml", `<standard><version_number>3.0</version_number></standard>`)

	out, err := run(t, "standard", "-s", dir)
	require.NoError(t, err)

	var got catalogOverview
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, filepath.Join(dir, "cmsaf_metadata_standard_v3-0.xml"), got.Path)
	assert.Equal(t, []string{"2.0.0", "3.0.0"}, got.Available)
}

func TestCheckReportsFailedFiles(t *testing.T) {
	dir := t.TempDir()
	cat := writeFile(t, dir, "standard.yaml", catalogYAML)
	notes := writeFile(t, dir, "notes.txt", "not a netCDF file")
	summary := filepath.Join(dir, "summary.yaml")
	metrics := filepath.Join(dir, "gridcert.prom")

	out, err := run(t, "check", "-s", cat, "--summary", summary, "--metrics-file", metrics, notes)
	require.Error(t, err)
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidFormat))
	assert.Contains(t, err.Error(), "1 of 1 files failed validation")

	assert.Contains(t, out, "Using Metadata Standard Version 3.1")
	assert.Contains(t, out, "Checking File 1/1")
	assert.Contains(t, out, "Out of 1, 1 FAILED")

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	var sum batch.Summary
	require.NoError(t, yaml.Unmarshal(data, &sum))
	assert.Equal(t, batch.Kind, sum.Kind)
	assert.Equal(t, 1, sum.Total)
	assert.Equal(t, 1, sum.Failed)
	require.Len(t, sum.Files, 1)
	assert.True(t, sum.Files[0].Fatal)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "gridcert_files_validated_total")
}

func TestCheckArgumentErrors(t *testing.T) {
	dir := t.TempDir()
	cat := writeFile(t, dir, "standard.yaml", catalogYAML)
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))

	tests := []struct {
		name string
		args []string
		code cnserrors.ErrorCode
	}{
		{name: "no files", args: []string{"check", "-s", cat}, code: cnserrors.ErrCodeInvalidRequest},
		{name: "reference with version", args: []string{"check", "-r", "ref.nc", "--standard-version", "3.0", "a.nc"}, code: cnserrors.ErrCodeInvalidRequest},
		{name: "invalid missing class", args: []string{"check", "-s", cat, "-m", "weekly", "a.nc"}, code: cnserrors.ErrCodeInvalidRequest},
		{name: "invalid summary format", args: []string{"check", "-s", cat, "--format", "xml", "a.nc"}, code: cnserrors.ErrCodeInvalidRequest},
		{name: "missing config", args: []string{"check", "--config", filepath.Join(dir, "none.yaml"), "a.nc"}, code: cnserrors.ErrCodeNotFound},
		{name: "no matches", args: []string{"check", "-s", cat, "-d", empty}, code: cnserrors.ErrCodeNotFound},
		{name: "invalid pattern", args: []string{"check", "-s", cat, "-d", empty, "[a"}, code: cnserrors.ErrCodeInvalidRequest},
		{name: "missing standard", args: []string{"check", "-s", filepath.Join(dir, "nowhere"), "a.nc"}, code: cnserrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.code, cnserrors.CodeOf(err), err.Error())
		})
	}
}

func TestCheckMissingReference(t *testing.T) {
	_, err := run(t, "check", "-r", filepath.Join(t.TempDir(), "ref.nc"), "a.nc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open reference file")
}

// configFrom runs the check flags over args and returns the merged config.
func configFrom(t *testing.T, args ...string) (*config.Config, []string) {
	t.Helper()
	var cfg *config.Config
	var paths []string
	cmd := checkCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		var err error
		if cfg, err = buildConfig(c); err != nil {
			return err
		}
		paths, err = collectPaths(c, cfg)
		return err
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"check"}, args...)))
	return cfg, paths
}

func TestBuildConfigMergesFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "gridcert.yaml", `standardsPath: /opt/share
lazy: true
missing: m
ignore: [history]
summaryFormat: json
`)

	cfg, paths := configFrom(t, "--config", cfgFile, "-i", "cfc@comment, title", "-m", "d", "-c", "b.nc", "a.nc")
	assert.Equal(t, "/opt/share", cfg.StandardsPath())
	assert.True(t, cfg.Lazy())
	assert.True(t, cfg.Coordinates())
	assert.Equal(t, "d", cfg.Missing())
	assert.Equal(t, "json", cfg.SummaryFormat())
	assert.Equal(t, []string{"history", "cfc@comment", "title"}, cfg.Ignore())
	assert.Equal(t, []string{"a.nc", "b.nc"}, paths, "missing-file detection sorts the batch")
}

func TestCollectPathsKeepsOrderWithoutDetection(t *testing.T) {
	_, paths := configFrom(t, "-s", "/opt/share", "b.nc", "a.nc")
	assert.Equal(t, []string{"b.nc", "a.nc"}, paths)
}

func TestCollectPathsDirectory(t *testing.T) {
	dir := t.TempDir()
	feb := writeFile(t, dir, "a/CFCmm20200201000000219AVPOS01GL.nc", "")
	jan := writeFile(t, dir, "b/CFCmm20200101000000219AVPOS01GL.nc", "")
	writeFile(t, dir, "b/readme.txt", "")

	_, paths := configFrom(t, "-s", "/opt/share", "-d", dir)
	assert.Equal(t, []string{jan, feb}, paths)

	_, paths = configFrom(t, "-s", "/opt/share", "-d", dir, "CFCmm202002*", "*.nc")
	assert.Equal(t, []string{jan, feb}, paths)
}
