// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package enyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextSetGet(t *testing.T) {
	ctx := NewContext()
	ctx.Set("a", 1)
	v, ok := ctx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestContextPushShadowsOuter(t *testing.T) {
	ctx := NewContext()
	ctx.Set("a", "outer")
	pop := ctx.Push(map[string]any{"a": "inner"})
	v, ok := ctx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "inner", v)
	pop()
	v, ok = ctx.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "outer", v)
}

func TestContextPushDoesNotLeakNewNames(t *testing.T) {
	ctx := NewContext()
	pop := ctx.Push(map[string]any{"temp": 1})
	pop()
	_, ok := ctx.Get("temp")
	assert.False(t, ok)
}

func TestContextHas(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.Has("missing"))
	ctx.Set("present", true)
	assert.True(t, ctx.Has("present"))
}
