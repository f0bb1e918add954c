// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The names the original exposes to every evaluated expression and
// format string via get_globals: "ctx" (the live scope chain itself,
// reachable through the "." operator since *Context satisfies
// expr.Context), "list", and "render". The expression grammar has no
// call syntax (spec §9 Open Question 1), so "$" expressions and Fmt
// fields can look "list"/"render" up by name but cannot call them; Go
// callers use the List and Render methods — a limitation recorded in
// DESIGN.md rather than worked around with an invented call syntax.

package enyaml

// Builtins exposes render-time helpers into a Context.
type Builtins struct {
	loader *Loader
}

// NewBuiltins creates the builtin set bound to loader.
func NewBuiltins(loader *Loader) *Builtins {
	return &Builtins{loader: loader}
}

// Install binds "ctx", "list" and "render" into ctx's base scope.
func (b *Builtins) Install(ctx *Context) {
	ctx.Set("ctx", ctx)
	ctx.Set("list", b.List)
	ctx.Set("render", func(tmpl *Node, local map[string]any) (any, error) {
		return b.Render(tmpl, ctx, local)
	})
}

// List coerces v into a []any the way the for-header and the "list"
// builtin both need.
func (b *Builtins) List(v any) ([]any, error) {
	return iterableValues(v)
}

// Render renders tmpl against ctx with local pushed as an extra
// innermost scope, then constructs the result to a Go value — the
// explicit equivalent of the original's render(tmpl, **local) builtin.
func (b *Builtins) Render(tmpl *Node, ctx *Context, local map[string]any) (any, error) {
	pop := ctx.Push(local)
	defer pop()
	rendered, err := b.loader.RenderNode(tmpl, ctx)
	if err != nil {
		return nil, err
	}
	return b.loader.Construct(rendered)
}
