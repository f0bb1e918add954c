// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapContext map[string]any

func (m mapContext) Get(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

func eval(t *testing.T, src string, ctx Context) any {
	t.Helper()
	e, err := Parse(src)
	require.NoError(t, err)
	v, err := e.Evaluate(ctx)
	require.NoError(t, err)
	return v
}

func TestArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, int64(7), eval(t, "1 + 2 * 3", nil))
	assert.Equal(t, int64(9), eval(t, "(1 + 2) * 3", nil))
}

func TestIntegerPreservingDivision(t *testing.T) {
	assert.Equal(t, int64(2), eval(t, "7 // 3", nil))
	assert.Equal(t, int64(-3), eval(t, "-7 // 3", nil))
	assert.Equal(t, int64(1), eval(t, "7 % 3", nil))
	assert.Equal(t, int64(2), eval(t, "-7 % 3", nil))
}

func TestFloatDivision(t *testing.T) {
	assert.Equal(t, 3.5, eval(t, "7 / 2", nil))
}

func TestStringConcat(t *testing.T) {
	assert.Equal(t, "ab", eval(t, `"a" + "b"`, nil))
}

func TestComparisonAndBoolean(t *testing.T) {
	assert.Equal(t, true, eval(t, "1 < 2 and 2 < 3", nil))
	assert.Equal(t, false, eval(t, "1 > 2 or 3 < 2", nil))
	assert.Equal(t, true, eval(t, "not 1 > 2", nil))
}

func TestMembership(t *testing.T) {
	ctx := mapContext{"items": []any{int64(1), int64(2), int64(3)}}
	assert.Equal(t, true, eval(t, "2 in items", ctx))
	assert.Equal(t, false, eval(t, "2 not in items", ctx))
	assert.Equal(t, true, eval(t, `"ell" in "hello"`, nil))
}

func TestTernary(t *testing.T) {
	assert.Equal(t, int64(1), eval(t, "1 if true else 2", mapContext{"true": true}))
}

func TestDotIndexing(t *testing.T) {
	ctx := mapContext{"obj": map[string]any{"name": "alice"}}
	assert.Equal(t, "alice", eval(t, "obj.name", ctx))
}

func TestIdentifierLookup(t *testing.T) {
	ctx := mapContext{"x": int64(5)}
	assert.Equal(t, int64(10), eval(t, "x + x", ctx))
}

func TestUnaryOperators(t *testing.T) {
	assert.Equal(t, int64(-5), eval(t, "-5", nil))
	assert.Equal(t, int64(5), eval(t, "+5", nil))
}

func TestPower(t *testing.T) {
	assert.Equal(t, int64(8), eval(t, "2 ^ 3", nil))
}

func TestSyntaxErrorOnTrailingTokens(t *testing.T) {
	_, err := Parse("1 2")
	require.Error(t, err)
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
}

func TestSyntaxErrorOnUnmatchedParen(t *testing.T) {
	_, err := Parse("(1 + 2")
	require.Error(t, err)
}

func TestDoubleQuoteEscapes(t *testing.T) {
	assert.Equal(t, "a\nb\tc\\d\"e", eval(t, `"a\nb\tc\\d\"e"`, nil))
}

func TestSingleQuoteOnlyEscapesQuote(t *testing.T) {
	assert.Equal(t, `a\nb`, eval(t, `'a\nb'`, nil))
	assert.Equal(t, `it's`, eval(t, `'it\'s'`, nil))
}

func TestUnimplementedEscapeIsSyntaxError(t *testing.T) {
	_, err := Parse(`"\x41"`)
	require.Error(t, err)
}

func TestDivisionByZero(t *testing.T) {
	_, err := Parse("1 / 0")
	require.NoError(t, err)
	e, _ := Parse("1 / 0")
	_, err = e.Evaluate(nil)
	require.Error(t, err)
}
