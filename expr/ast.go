// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The expression AST (spec §9 "Operator AST nodes are a sum type"):
// every operator ported from enyaml.expr.expr is a case of Kind rather
// than its own type, so Evaluate dispatches with one switch.

package expr

import (
	"fmt"
	"strconv"
)

// Kind identifies which expression variant a Expr node is.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindIdent
	KindUnary
	KindBinary
	KindTernary
)

// Expr is one node of a parsed expression tree.
type Expr struct {
	Kind Kind

	// KindNumber
	NumInt   int64
	NumFloat float64
	IsFloat  bool

	// KindString / KindIdent
	Text string

	// KindUnary / KindBinary / KindTernary: Op is the operator spelling
	// ("+", "-", "not", ".", "^", "*", "/", "//", "%", "<", ">", "<=",
	// ">=", "==", "!=", "in", "not in", "and", "or", "if"/"=" ...).
	Op          string
	Lhs, Mid, Rhs *Expr
}

func newNumber(text string) (*Expr, error) {
	e := &Expr{Kind: KindNumber, Text: text}
	if containsDot(text) {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		e.IsFloat = true
		e.NumFloat = f
		return e, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, err
	}
	e.NumInt = n
	return e, nil
}

func containsDot(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return true
		}
	}
	return false
}

// unaryPrecedence maps a unary operator spelling to its binding power.
var unaryPrecedence = map[string]int{
	"+": 9, "-": 9, "not": 5,
}

// binaryPrecedence maps a binary operator spelling to its binding power.
// "in" and "not in" are wired at precedence 6 alongside the other
// comparisons, completing the table the reference implementation left
// incomplete.
var binaryPrecedence = map[string]int{
	".": 11, "^": 10,
	"*": 8, "/": 8, "//": 8, "%": 8,
	"+": 7, "-": 7,
	"<": 6, ">": 6, "<=": 6, ">=": 6, "==": 6, "!=": 6, "in": 6, "not in": 6,
	"and": 4,
	"or":  3,
	"=":   0,
}

// ternaryPrecedence maps a ternary operator spelling to its binding power.
var ternaryPrecedence = map[string]int{
	"if": 1,
}

// ternarySep gives the separator keyword expected between a ternary's
// middle and right-hand operands ("if ... else ...").
var ternarySep = map[string]string{
	"if": "else",
}

// lookupPrecedence returns the binding power of an operator token, or 0
// if tok is not an operator (the sentinel the parser's precedence-climb
// loop treats as "stop").
func lookupPrecedence(tok *Token) int {
	if tok == nil || tok.Kind != TokOp {
		return 0
	}
	if p, ok := ternaryPrecedence[tok.Value]; ok {
		return p
	}
	if p, ok := binaryPrecedence[tok.Value]; ok {
		return p
	}
	if tok.Value == "not" {
		// In operator position "not" can only start "not in".
		return binaryPrecedence["not in"]
	}
	return 0
}

// Evaluate computes the value of the expression tree against ctx.
func (e *Expr) Evaluate(ctx Context) (any, error) {
	switch e.Kind {
	case KindNumber:
		if e.IsFloat {
			return e.NumFloat, nil
		}
		return e.NumInt, nil
	case KindString:
		return e.Text, nil
	case KindIdent:
		v, ok := ctx.Get(e.Text)
		if !ok {
			return nil, fmt.Errorf("expr: undefined name %q", e.Text)
		}
		return v, nil
	case KindUnary:
		return e.evalUnary(ctx)
	case KindBinary:
		return e.evalBinary(ctx)
	case KindTernary:
		return e.evalTernary(ctx)
	}
	return nil, fmt.Errorf("expr: unhandled node kind %d", e.Kind)
}

func (e *Expr) evalUnary(ctx Context) (any, error) {
	rhs, err := e.Rhs.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "+":
		return applyUnaryPlus(rhs)
	case "-":
		return applyUnaryMinus(rhs)
	case "not":
		return !truthy(rhs), nil
	}
	return nil, fmt.Errorf("expr: unknown unary operator %q", e.Op)
}

func (e *Expr) evalBinary(ctx Context) (any, error) {
	if e.Op == "." {
		lhs, err := e.Lhs.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		return indexValue(lhs, e.Rhs.Text)
	}
	if e.Op == "=" {
		return nil, fmt.Errorf("expr: assignment cannot be evaluated")
	}
	// "and"/"or" short-circuit; everything else evaluates both sides.
	switch e.Op {
	case "and":
		lhs, err := e.Lhs.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		if !truthy(lhs) {
			return lhs, nil
		}
		return e.Rhs.Evaluate(ctx)
	case "or":
		lhs, err := e.Lhs.Evaluate(ctx)
		if err != nil {
			return nil, err
		}
		if truthy(lhs) {
			return lhs, nil
		}
		return e.Rhs.Evaluate(ctx)
	}
	lhs, err := e.Lhs.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	rhs, err := e.Rhs.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "^":
		return applyPow(lhs, rhs)
	case "*":
		return applyMul(lhs, rhs)
	case "/":
		return applyDiv(lhs, rhs)
	case "//":
		return applyFloorDiv(lhs, rhs)
	case "%":
		return applyMod(lhs, rhs)
	case "+":
		return applyAdd(lhs, rhs)
	case "-":
		return applySub(lhs, rhs)
	case "<":
		return compareLess(lhs, rhs)
	case ">":
		return compareGreater(lhs, rhs)
	case "<=":
		less, err := compareLess(rhs, lhs)
		if err != nil {
			return nil, err
		}
		return !less.(bool), nil
	case ">=":
		less, err := compareLess(lhs, rhs)
		if err != nil {
			return nil, err
		}
		return !less.(bool), nil
	case "==":
		return valuesEqual(lhs, rhs), nil
	case "!=":
		return !valuesEqual(lhs, rhs), nil
	case "in":
		return membership(lhs, rhs)
	case "not in":
		in, err := membership(lhs, rhs)
		if err != nil {
			return nil, err
		}
		return !in.(bool), nil
	}
	return nil, fmt.Errorf("expr: unknown binary operator %q", e.Op)
}

func (e *Expr) evalTernary(ctx Context) (any, error) {
	mid, err := e.Mid.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if truthy(mid) {
		return e.Lhs.Evaluate(ctx)
	}
	return e.Rhs.Evaluate(ctx)
}
