// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Errors raised while lexing or parsing an embedded expression, ported
// from enyaml.expr.errors.ExprSyntaxError.

package expr

import "fmt"

// SyntaxError reports a malformed expression. Offset is 0-based, matching
// the lexer/parser's internal position tracking; Error() reports it
// 1-based for humans.
type SyntaxError struct {
	Message string
	Offset  int
	Text    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expr: syntax error at column %d in %q: %s", e.Offset+1, e.Text, e.Message)
}
