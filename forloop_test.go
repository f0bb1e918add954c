// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package enyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForBindingsDoNotLeakOutsideLoop(t *testing.T) {
	n := classify(t, `!for [{!$ items: x, ret: !$f "{x}"}]`)
	l := NewLoader()
	ctx := NewContext()
	ctx.Set("items", []any{"a", "b"})
	_, err := l.RenderNode(n, ctx)
	require.NoError(t, err)
	assert.False(t, ctx.Has("x"))
}

func TestBindForNamesDestructuresMultipleNames(t *testing.T) {
	ctx := NewContext()
	err := bindForNames(ctx, []string{"a", "b"}, []any{1, 2})
	require.NoError(t, err)
	v, ok := ctx.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	v, ok = ctx.Get("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestBindForNamesMismatchedArityErrors(t *testing.T) {
	ctx := NewContext()
	err := bindForNames(ctx, []string{"a", "b"}, []any{1})
	require.Error(t, err)
	var rerr *RenderError
	require.ErrorAs(t, err, &rerr)
}

func TestIterableValuesOverString(t *testing.T) {
	items, err := iterableValues("ab")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, items)
}
