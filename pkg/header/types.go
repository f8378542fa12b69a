/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package header provides the Kubernetes-style resource header of gridcert
// documents.
package header

import (
	"fmt"
	"time"
)

const (
	// APIVersionDomain is the API group of gridcert documents.
	APIVersionDomain = "gridcert.nvidia.com"
	// APIVersionV1Alpha1 is the current schema version.
	APIVersionV1Alpha1 = "v1alpha1"

	// TimestampKey is the metadata key of the creation time.
	TimestampKey = "timestamp"
	// VersionKey is the metadata key of the producing tool version.
	VersionKey = "version"
)

// Kind is the type of a document.
type Kind string

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
// The Metadata map is initialized automatically.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header contains metadata and versioning information for gridcert documents.
type Header struct {
	// Kind is the type of the document.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	// APIVersion is the API version of the document.
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`

	// Metadata contains key-value pairs with metadata about the document.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Init sets kind and API version and records the tool version and the
// current time in the metadata. An empty apiVersion selects the current one.
func (h *Header) Init(kind Kind, apiVersion, version string) {
	if apiVersion == "" {
		apiVersion = fmt.Sprintf("%s/%s", APIVersionDomain, APIVersionV1Alpha1)
	}
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = map[string]string{
		TimestampKey: time.Now().UTC().Format(time.RFC3339),
	}
	if version != "" {
		h.Metadata[VersionKey] = version
	}
}
