/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package vocabulary

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"

	cnserrors "github.com/NVIDIA/gridcert/pkg/errors"
)

// Registry memoizes vocabularies per file name.
type Registry struct {
	searchPath []string
	load       func(path string) (*Vocabulary, error)

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]*Vocabulary
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithSearchPath sets the directories relative file names are looked up in,
// in order.
func WithSearchPath(dirs ...string) RegistryOption {
	return func(r *Registry) {
		for _, d := range dirs {
			if d != "" {
				r.searchPath = append(r.searchPath, d)
			}
		}
	}
}

// WithLoader replaces the file loader.
func WithLoader(load func(path string) (*Vocabulary, error)) RegistryOption {
	return func(r *Registry) {
		if load != nil {
			r.load = load
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{load: Load, cache: make(map[string]*Vocabulary)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the vocabulary for a file name, loading it on first use.
func (r *Registry) Get(ctx context.Context, name string) (*Vocabulary, error) {
	r.mu.RLock()
	v, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		vocabularyLookups.WithLabelValues("hit").Inc()
		return v, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, cnserrors.Wrap(cnserrors.ErrCodeUnavailable, "vocabulary lookup canceled", err)
	}

	res, err, _ := r.group.Do(name, func() (any, error) {
		r.mu.RLock()
		cached, ok := r.cache[name]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}
		vocabularyLookups.WithLabelValues("load").Inc()
		v, err := r.load(r.locate(name))
		if err != nil {
			vocabularyLoadErrors.Inc()
			return nil, err
		}
		r.mu.Lock()
		r.cache[name] = v
		r.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return res.(*Vocabulary), nil
}

// locate returns the first existing candidate path for name.
func (r *Registry) locate(name string) string {
	if filepath.IsAbs(name) || len(r.searchPath) == 0 {
		return name
	}
	for _, dir := range r.searchPath {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return filepath.Join(r.searchPath[0], name)
}

// Len returns the number of cached vocabularies.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
