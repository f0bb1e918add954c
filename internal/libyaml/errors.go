// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error types raised by the Parser, Composer and Serializer/Emitter. Only
// the three the pipeline actually constructs are kept; unmarshal-style
// decode errors, the legacy TypeError/LoadErrors aggregate, and the
// reader/writer byte-level error types belong to a general-purpose codec
// this engine doesn't expose.

package libyaml

import (
	"fmt"
	"strings"
)

// MarkedYAMLError represents a YAML error with position information. It is
// never used directly; ComposerError and ParserError are defined as it so
// they share its Error formatting.
type MarkedYAMLError struct {
	// optional context
	ContextMark    Mark
	ContextMessage string

	Mark    Mark
	Message string
}

// Error returns the error message with position information.
func (e MarkedYAMLError) Error() string {
	var builder strings.Builder
	builder.WriteString("yaml: ")
	if len(e.ContextMessage) > 0 {
		fmt.Fprintf(&builder, "%s at %s: ", e.ContextMessage, e.ContextMark)
	}
	if len(e.ContextMessage) == 0 || e.ContextMark != e.Mark {
		fmt.Fprintf(&builder, "%s: ", e.Mark)
	}
	builder.WriteString(e.Message)
	return builder.String()
}

// ComposerError represents an error that occurred while composing a Node
// tree from an Event stream (undefined alias, malformed event sequence).
type ComposerError MarkedYAMLError

// Error returns the error message.
func (e ComposerError) Error() string {
	return MarkedYAMLError(e).Error()
}

// ParserError represents an error that occurred while turning a token
// stream into Events (unexpected token).
type ParserError MarkedYAMLError

// Error returns the error message.
func (e ParserError) Error() string {
	return MarkedYAMLError(e).Error()
}

// EmitterError represents an error that occurred while serializing a Node
// tree into Events for emission (unexpected node shape).
type EmitterError struct {
	Message string
}

// Error returns the error message.
func (e EmitterError) Error() string {
	return fmt.Sprintf("yaml: %s", e.Message)
}
