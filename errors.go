// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Error kinds for the template engine (spec §7), carrying source marks the
// way internal/libyaml.MarkedYAMLError does.

package enyaml

import (
	"fmt"

	"github.com/dhain/enyaml/internal/libyaml"
)

// Mark is a source position, re-exported from the YAML substrate so
// callers don't need to import internal/libyaml.
type Mark = libyaml.Mark

// ParseError reports malformed YAML or an unknown tag shorthand. Fatal for
// the document being loaded.
type ParseError struct {
	Mark    Mark
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("enyaml: parse error at %s: %s", e.Mark, e.Message)
}

// TagError reports an unknown ENYAML basetag, or a basetag applied to the
// wrong structural kind (e.g. !if on a mapping). Fatal for the document.
type TagError struct {
	Mark    Mark
	Tag     string
	Message string
}

func (e *TagError) Error() string {
	return fmt.Sprintf("enyaml: tag error at %s (%s): %s", e.Mark, e.Tag, e.Message)
}

// ExprSyntaxError reports a malformed expression in $, $f, or a for-header.
// Fatal for the node. Column is 1-based.
type ExprSyntaxError struct {
	Column  int
	Text    string
	Message string
}

func (e *ExprSyntaxError) Error() string {
	return fmt.Sprintf("enyaml: expression syntax error at column %d (%q): %s", e.Column, e.Text, e.Message)
}

// RenderError reports a semantic violation discovered during rendering:
// a for-key with sibling mapping entries, an if with fewer than two
// branches, an invalid for-header, a destructuring mismatch, an unknown
// name in an expression, or an operator type error. Fatal for the document.
type RenderError struct {
	Mark    Mark
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("enyaml: render error at %s: %s", e.Mark, e.Message)
}

// ComposerError reports that Render (the single-document form) received a
// stream producing other than exactly one rendered output.
type ComposerError struct {
	Message string
}

func (e *ComposerError) Error() string {
	return fmt.Sprintf("enyaml: %s", e.Message)
}
