// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package enyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTagBasic(t *testing.T) {
	base, sub, skip, ok := SplitTag("tag:enyaml.org,2022:$")
	require.True(t, ok)
	assert.Equal(t, "$", base)
	assert.Equal(t, "", sub)
	assert.False(t, skip)
}

func TestSplitTagWithSubtagAndSkip(t *testing.T) {
	base, sub, skip, ok := SplitTag("tag:enyaml.org,2022:$~:int")
	require.True(t, ok)
	assert.Equal(t, "$", base)
	assert.Equal(t, "int", sub)
	assert.True(t, skip)
}

func TestSplitTagNotEnyaml(t *testing.T) {
	_, _, _, ok := SplitTag("tag:yaml.org,2002:int")
	assert.False(t, ok)
}

func TestJoinTagRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		base, sub string
		skip      bool
	}{
		{"$", "", false},
		{"$", "int", false},
		{"for", "", true},
		{"set", "mytype", true},
	} {
		tag := JoinTag(tc.base, tc.sub, tc.skip)
		base, sub, skip, ok := SplitTag(tag)
		require.True(t, ok)
		assert.Equal(t, tc.base, base)
		assert.Equal(t, tc.sub, sub)
		assert.Equal(t, tc.skip, skip)
	}
}
