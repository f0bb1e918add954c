// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package enyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhain/enyaml/internal/libyaml"
)

func classify(t *testing.T, src string) *Node {
	t.Helper()
	p := libyaml.NewParser(src)
	c := libyaml.NewComposer(p)
	libNode, err := c.Compose()
	require.NoError(t, err)
	n, err := NewLoader().Classify(libNode)
	require.NoError(t, err)
	return n
}

func TestClassifyExprNode(t *testing.T) {
	n := classify(t, "!$ 1 + 1")
	assert.Equal(t, KindExpr, n.Kind)
	assert.Equal(t, "1 + 1", n.Value)
}

func TestClassifyFmtNode(t *testing.T) {
	n := classify(t, `!$f "hi {name}"`)
	assert.Equal(t, KindFmt, n.Kind)
	assert.Equal(t, "hi {name}", n.Value)
}

func TestClassifyIfNodeBranches(t *testing.T) {
	n := classify(t, "!if [false, foo, true, bar]")
	require.Equal(t, KindIf, n.Kind)
	require.Len(t, n.Items, 4)
}

func TestClassifySkipRenderPreservesTag(t *testing.T) {
	n := classify(t, "!<tag:enyaml.org,2022:$~> 1 + 1")
	assert.Equal(t, KindExpr, n.Kind)
	assert.True(t, n.SkipRender)
}

func TestRenderSkipRenderSuppressesEvaluation(t *testing.T) {
	n := classify(t, "!<tag:enyaml.org,2022:$~> 1 + 1")
	l := NewLoader()
	ctx := NewContext()
	out, err := l.RenderNode(n, ctx)
	require.NoError(t, err)
	assert.Equal(t, KindExpr, out.Kind)
	assert.Equal(t, "1 + 1", out.Value)
}

func TestRenderSetConsumedReturnsNil(t *testing.T) {
	n := classify(t, "!set\nname: Guido")
	require.Equal(t, KindSet, n.Kind)
	l := NewLoader()
	ctx := NewContext()
	out, err := l.RenderNode(n, ctx)
	require.NoError(t, err)
	assert.Nil(t, out)
	v, ok := ctx.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Guido", v)
}

func TestRenderPlainMappingPassesThrough(t *testing.T) {
	n := classify(t, "a: 1\nb: two")
	l := NewLoader()
	ctx := NewContext()
	out, err := l.RenderNode(n, ctx)
	require.NoError(t, err)
	v, err := l.Construct(out)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1, "b": "two"}, v)
}
