// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Context: an ordered stack of mappings behaving as a single logical
// mapping (spec §3, §9), ported from enyaml.util.Context (a ChainMap).

package enyaml

// Context is a stack of named-value scopes. Lookups search from the
// innermost scope (index 0) outward; writes always hit the innermost
// scope. It satisfies the host-exposed "ctx" name inside expressions.
type Context struct {
	scopes []map[string]any
}

// NewContext creates an empty Context with a single base scope.
func NewContext() *Context {
	return &Context{scopes: []map[string]any{{}}}
}

// Push inserts m as a new scope at pos (0 = innermost, the default search
// start). It returns a function that removes exactly that scope, so
// callers can defer release on every exit path including errors.
func (c *Context) Push(m map[string]any, pos ...int) func() {
	p := 0
	if len(pos) > 0 {
		p = pos[0]
	}
	if m == nil {
		m = map[string]any{}
	}
	c.scopes = append(c.scopes, nil)
	copy(c.scopes[p+1:], c.scopes[p:])
	c.scopes[p] = m
	return func() {
		c.scopes = append(c.scopes[:p], c.scopes[p+1:]...)
	}
}

// Get looks up name starting from the innermost scope outward.
func (c *Context) Get(name string) (any, bool) {
	for _, m := range c.scopes {
		if v, ok := m[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes name=value into the innermost scope.
func (c *Context) Set(name string, value any) {
	c.scopes[0][name] = value
}

// Has reports whether name is bound in any scope.
func (c *Context) Has(name string) bool {
	_, ok := c.Get(name)
	return ok
}
