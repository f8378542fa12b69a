/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	h := New(WithKind("ValidationSummary"), WithAPIVersion("gridcert.nvidia.com/v1alpha1"), WithMetadata("run", "1"))
	assert.Equal(t, Kind("ValidationSummary"), h.Kind)
	assert.Equal(t, "gridcert.nvidia.com/v1alpha1", h.APIVersion)
	assert.Equal(t, "1", h.Metadata["run"])
}

func TestWithMetadataNilMap(t *testing.T) {
	h := &Header{}
	WithMetadata("k", "v")(h)
	assert.Equal(t, map[string]string{"k": "v"}, h.Metadata)
}

func TestInit(t *testing.T) {
	tests := []struct {
		name       string
		apiVersion string
		version    string
		wantAPI    string
	}{
		{"default api version", "", "v0.1.0", "gridcert.nvidia.com/v1alpha1"},
		{"explicit api version", "example.com/v2", "", "example.com/v2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(WithMetadata("stale", "x"))
			h.Init("Catalog", tt.apiVersion, tt.version)
			assert.Equal(t, Kind("Catalog"), h.Kind)
			assert.Equal(t, tt.wantAPI, h.APIVersion)
			assert.NotContains(t, h.Metadata, "stale")

			_, err := time.Parse(time.RFC3339, h.Metadata[TimestampKey])
			require.NoError(t, err)
			if tt.version == "" {
				assert.NotContains(t, h.Metadata, VersionKey)
			} else {
				assert.Equal(t, tt.version, h.Metadata[VersionKey])
			}
		})
	}
}
