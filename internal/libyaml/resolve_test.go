// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveImplicitInt(t *testing.T) {
	rtag, v, err := Resolve("", "42")
	require.NoError(t, err)
	assert.Equal(t, "!!int", rtag)
	assert.Equal(t, 42, v)
}

func TestResolveImplicitBool(t *testing.T) {
	_, v, err := Resolve("", "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestResolveImplicitNull(t *testing.T) {
	_, v, err := Resolve("", "~")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestResolveImplicitFloat(t *testing.T) {
	_, v, err := Resolve("", "3.5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestResolveExplicitIntTagForcesCoercion(t *testing.T) {
	_, v, err := Resolve("!!int", "7")
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestResolveExplicitIntTagRejectsNonInt(t *testing.T) {
	_, _, err := Resolve("!!int", "not-a-number")
	require.Error(t, err)
}

func TestShortAndLongTagRoundTrip(t *testing.T) {
	long := LongTag("!!str")
	assert.Equal(t, "tag:yaml.org,2002:str", long)
	assert.Equal(t, "!!str", ShortTag(long))
}
