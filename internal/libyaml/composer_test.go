// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposerResolvesAnchorAndAlias(t *testing.T) {
	n := composeOne(t, "a: &anchor hi\nb: *anchor\n")
	require.Equal(t, MappingNode, n.Kind)
	require.Len(t, n.Content, 4)
	valueA := n.Content[1]
	valueB := n.Content[3]
	assert.Equal(t, "hi", valueA.Value)
	require.Equal(t, AliasNode, valueB.Kind)
	assert.Same(t, valueA, valueB.Alias)
}

func TestComposerEOFAtStreamEnd(t *testing.T) {
	p := NewParser("a: 1\n")
	c := NewComposer(p)
	_, err := c.Compose()
	require.NoError(t, err)
	_, err = c.Compose()
	assert.Equal(t, io.EOF, err)
}

func TestComposerMultipleDocuments(t *testing.T) {
	p := NewParser("---\na: 1\n---\nb: 2\n")
	c := NewComposer(p)
	first, err := c.Compose()
	require.NoError(t, err)
	second, err := c.Compose()
	require.NoError(t, err)
	assert.NotEqual(t, first.Content[0].Content[0].Value, second.Content[0].Content[0].Value)
	_, err = c.Compose()
	assert.Equal(t, io.EOF, err)
}
