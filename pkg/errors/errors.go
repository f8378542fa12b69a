/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured errors with stable codes.
//
// Loaders, backends and the CLI return *StructuredError values so callers can
// branch on the failure class with errors.As instead of matching message text:
//
//	cat, err := standard.Load(path)
//	var se *errors.StructuredError
//	if errors.As(err, &se) && se.Code == errors.ErrCodeNotFound {
//	    ...
//	}
package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"strings"
)

// ErrorCode classifies a StructuredError.
type ErrorCode string

const (
	// ErrCodeInvalidRequest marks invalid user input (flags, options, arguments).
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeNotFound marks a missing file, entry or entity.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInvalidFormat marks a document or data file that cannot be parsed.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeUnavailable marks a resource that exists but cannot be read.
	ErrCodeUnavailable ErrorCode = "UNAVAILABLE"
	// ErrCodeInternal marks a broken invariant.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError is an error with a code, a message, an optional cause and
// optional key/value context.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements error.
func (e *StructuredError) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(string(e.Code))
	sb.WriteString("] ")
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New returns a StructuredError without a cause.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf is New with fmt formatting.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return New(code, fmt.Sprintf(format, args...))
}

// NewWithContext is New with additional context values.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return WrapWithContext(code, message, nil, context)
}

// Wrap returns a StructuredError carrying cause.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Cause: cause}
}

// WrapWithContext is Wrap with additional context values.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	e := Wrap(code, message, cause)
	if len(context) > 0 {
		e.Context = maps.Clone(context)
	}
	return e
}

// CodeOf returns the code of the first StructuredError in err's chain, or
// ErrCodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err's chain holds a StructuredError with code.
func IsCode(err error, code ErrorCode) bool {
	var se *StructuredError
	return stderrors.As(err, &se) && se.Code == code
}
