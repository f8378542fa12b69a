/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
	"github.com/NVIDIA/gridcert/pkg/report"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{
		"b/CFCdm20200103000000219AVPOS01GL.nc",
		"CFCdm20200102000000219AVPOS01GL.nc",
		"a/c/CFCdm20200101000000219AVPOS01GL.nc",
		"a/notes.txt",
	} {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o600))
	}

	files, err := Discover(dir, "CFCdm*.nc")
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, []string{
		filepath.Join(dir, "a", "c", "CFCdm20200101000000219AVPOS01GL.nc"),
		filepath.Join(dir, "CFCdm20200102000000219AVPOS01GL.nc"),
		filepath.Join(dir, "b", "CFCdm20200103000000219AVPOS01GL.nc"),
	}, files)

	files, err = Discover(dir, "b/*.nc")
	require.NoError(t, err)
	assert.Len(t, files, 1)

	_, err = Discover(dir, "[")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))
}

func TestSort(t *testing.T) {
	paths := []string{"/z/b.nc", "/a/c.nc", "/y/a.nc", "/x/b.nc"}
	Sort(paths)
	assert.Equal(t, []string{"/y/a.nc", "/x/b.nc", "/z/b.nc", "/a/c.nc"}, paths)
}

func utc(y int, m time.Month, d, h, mi int) time.Time {
	return time.Date(y, m, d, h, mi, 0, 0, time.UTC)
}

func TestDetector(t *testing.T) {
	tests := []struct {
		name  string
		class string
		files []string
		want  []time.Time
	}{
		{"daily gap", MissingDaily, []string{
			"CFCdm20200101000000219AVPOS01GL.nc",
			"CFCdm20200104000000219AVPOS01GL.nc",
		}, []time.Time{utc(2020, 1, 2, 0, 0), utc(2020, 1, 3, 0, 0)}},
		{"monthly", MissingMonthly, []string{
			"CFCmm20200101000000219AVPOS01GL.nc",
			"CFCmm20200201000000219AVPOS01GL.nc",
			"CFCmm20200501000000219AVPOS01GL.nc",
		}, []time.Time{utc(2020, 3, 1, 0, 0), utc(2020, 4, 1, 0, 0)}},
		{"from file name", MissingFromFilename, []string{
			"CFChm20200101000000219AVPOS01GL.nc",
			"CFChm20200101020000219AVPOS01GL.nc",
		}, []time.Time{utc(2020, 1, 1, 1, 0)}},
		{"quarter hour", MissingQuarterHour, []string{
			"CFCin20200101000000219AVPOS01GL.nc",
			"CFCin20200101001500219AVPOS01GL.nc",
			"CFCin20200101010000219AVPOS01GL.nc",
		}, []time.Time{utc(2020, 1, 1, 0, 30), utc(2020, 1, 1, 0, 45)}},
		{"complete", MissingDaily, []string{
			"CFCdm20200101000000219AVPOS01GL.nc",
			"CFCdm20200102000000219AVPOS01GL.nc",
		}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok, err := NewDetector(tt.class, tt.files[0])
			require.NoError(t, err)
			require.True(t, ok)
			var got []time.Time
			for _, f := range tt.files {
				missing, ok := d.Next("/data/" + f)
				require.True(t, ok)
				got = append(got, missing...)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectorClasses(t *testing.T) {
	_, _, err := NewDetector(MissingFromFilename, "test.nc")
	assert.True(t, cnserrors.IsCode(err, cnserrors.ErrCodeInvalidRequest))

	// instantaneous files have no cadence of their own
	_, ok, err := NewDetector(MissingFromFilename, "CFCin20200101000000219AVPOS01GL.nc")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, c := range MissingClasses {
		assert.True(t, ValidClass(c), c)
	}
	assert.False(t, ValidClass("w"))

	d, ok, err := NewDetector(MissingDaily, "x")
	require.NoError(t, err)
	require.True(t, ok)
	_, ok = d.Next("short.nc")
	assert.False(t, ok)
}

// fakeValidator fails the files listed in failing.
type fakeValidator struct {
	failing map[string]bool
	seen    []string
	cancel  context.CancelFunc
}

func (f *fakeValidator) ValidateFile(_ context.Context, path string) (*report.Report, error) {
	f.seen = append(f.seen, path)
	r := report.New(filepath.Base(path))
	s := r.Begin("compression")
	if f.failing[path] {
		s.Errorf("cfc", "Variable cfc is not compressed.")
	}
	s.End()
	if f.cancel != nil {
		f.cancel()
	}
	return r, nil
}

func TestRun(t *testing.T) {
	files := []string{
		"CFCdm20200101000000219AVPOS01GL.nc",
		"CFCdm20200102000000219AVPOS01GL.nc",
		"CFCdm20200104000000219AVPOS01GL.nc",
	}
	v := &fakeValidator{failing: map[string]bool{files[1]: true}}
	var buf bytes.Buffer
	sum, err := New(v, WithMissing(MissingFromFilename), WithWriter(&buf), WithVersion("v0.1.0")).
		Run(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, files, v.seen)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Passed)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, []time.Time{utc(2020, 1, 3, 0, 0)}, sum.Missing)
	require.Len(t, sum.Files, 3)
	assert.Equal(t, []string{"cfc"}, sum.Files[1].ErrorNames)
	assert.Equal(t, Kind, sum.Kind)
	assert.Equal(t, "v0.1.0", sum.Metadata["version"])

	out := buf.String()
	assert.Contains(t, out, "Checking File 3/3")
	assert.Contains(t, out, "Missing File for 2020-01-03T00:00:00Z")
	assert.Contains(t, out, "Out of 3, 1 FAILED")
	assert.Contains(t, out, "1 files MISSING")
	assert.Equal(t, 1, strings.Count(out, report.MarkerFailed+" <<< result for"))
}

func TestRunWithoutDetection(t *testing.T) {
	var buf bytes.Buffer
	sum, err := New(&fakeValidator{}, WithWriter(&buf)).Run(context.Background(), []string{"a.nc", "b.nc"})
	require.NoError(t, err)
	assert.Nil(t, sum.Missing)
	assert.NotContains(t, buf.String(), "MISSING")
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	v := &fakeValidator{cancel: cancel}
	sum, err := New(v).Run(ctx, []string{"a.nc", "b.nc", "c.nc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []string{"a.nc"}, v.seen)
	assert.Len(t, sum.Files, 1)
}
