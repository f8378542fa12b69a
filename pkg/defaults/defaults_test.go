/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package defaults

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStandardsPath(t *testing.T) {
	t.Setenv(EnvStandardsPath, "/opt/standards")
	assert.Equal(t, "/opt/standards", StandardsPath())

	t.Setenv(EnvStandardsPath, "")
	assert.Equal(t, StandardsDir, filepath.Base(StandardsPath()))
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		env  string
		want int
	}{
		{"2021", 2021},
		{"", time.Now().Year()},
		{"next", time.Now().Year()},
		{"-5", time.Now().Year()},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvReleaseYear, tt.env)
			assert.Equal(t, tt.want, ReleaseYear())
		})
	}
}
