/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package vocabulary

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFile = "gcmd_science_keywords_8.6.csv"

func loadTest(t *testing.T) *Vocabulary {
	t.Helper()
	v, err := Load(filepath.Join("testdata", testFile))
	require.NoError(t, err)
	return v
}

func TestParse(t *testing.T) {
	v := loadTest(t)
	assert.Equal(t, "8.6", v.Version)
	assert.Equal(t, []string{"Category", "Topic", "Term", "Variable_Level_1", "Variable_Level_2", "Variable_Level_3", "Detailed_Variable"}, v.Columns)
	assert.Len(t, v.Entries, 5, "broken and invalid rows are skipped")

	e, ok := v.ByUUID("162e4d9a-3d2a-4446-9e1a-4123a3b4e2a1")
	require.True(t, ok)
	assert.Equal(t, "EARTH SCIENCE > ATMOSPHERE > CLOUDS", v.Path(e))
}

func TestFind(t *testing.T) {
	v := loadTest(t)

	// Term matches only when Variable_Level_1 is empty.
	got := v.Find("clouds")
	require.Len(t, got, 1)
	assert.Equal(t, "162e4d9a-3d2a-4446-9e1a-4123a3b4e2a1", got[0].UUID)

	assert.Len(t, v.Find("CLOUD FRACTION"), 2)
	assert.Empty(t, v.Find("OCEANS"))
}

func TestResolve(t *testing.T) {
	v := loadTest(t)
	tests := []struct {
		name       string
		token      string
		candidates int
		hits       int
	}{
		{"single level", "CLOUDS", 1, 1},
		{"full path", "EARTH SCIENCE > ATMOSPHERE > CLOUDS", 1, 1},
		{"ambiguous leaf", "CLOUD FRACTION", 2, 2},
		{"disambiguated", "CLOUD PROPERTIES > CLOUD FRACTION", 2, 1},
		{"tight separators", "CLOUD PROPERTIES>CLOUD FRACTION", 2, 1},
		{"wrong parent", "OCEANS > CLOUD FRACTION", 2, 0},
		{"unknown", "SNOW", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := v.Resolve(tt.token)
			assert.Len(t, m.Candidates, tt.candidates)
			assert.Len(t, m.Hits, tt.hits)
		})
	}
}

func TestExpandName(t *testing.T) {
	attrs := map[string]string{
		"keywords_vocabulary": "NASA/GCMD Science Keywords, Version 8.6",
		"broken_vocabulary":   "GCMD without a version",
	}
	lookup := func(k string) (string, bool) {
		s, ok := attrs[k]
		return s, ok
	}

	assert.Equal(t, "gcmd_science_keywords_8.6.csv",
		ExpandName("gcmd_science_keywords_${keywords_vocabulary_version}.csv", lookup))
	assert.Equal(t, "x_${broken_vocabulary_version}.csv",
		ExpandName("x_${broken_vocabulary_version}.csv", lookup))
	assert.Equal(t, "x_${other_version}.csv", ExpandName("x_${other_version}.csv", lookup))
	assert.Equal(t, "plain.csv", ExpandName("plain.csv", lookup))
}

func TestRegistryMemoizes(t *testing.T) {
	var loads atomic.Int32
	r := NewRegistry(
		WithSearchPath("", "testdata"),
		WithLoader(func(path string) (*Vocabulary, error) {
			loads.Add(1)
			return Load(path)
		}),
	)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := r.Get(context.Background(), testFile)
			assert.NoError(t, err)
			assert.NotNil(t, v)
		}()
	}
	wg.Wait()

	_, err := r.Get(context.Background(), testFile)
	require.NoError(t, err)
	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, 1, r.Len())
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry(WithSearchPath("testdata"))
	_, err := r.Get(context.Background(), "missing.csv")
	assert.Error(t, err)
	assert.Equal(t, 0, r.Len())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Get(ctx, testFile)
	assert.True(t, errors.Is(err, context.Canceled))
}
