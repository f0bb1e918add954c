// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The "for" construct (spec §4.6), ported from enyaml.nodes.ForNode. The
// original's render_items always iterates and always produces a
// sequence of rendered results; a ForMapping node additionally merges
// those results into one mapping, the generalization recorded in
// DESIGN.md for the worked examples that tag a mapping with "!for"
// directly.

package enyaml

import (
	"fmt"

	"github.com/dhain/enyaml/expr"
)

// renderFor evaluates a for-node's items expression and renders ForRet
// (guarded by ForIf, if present) once per item. ForSequence nodes
// return a *forResult for the caller to splice; ForMapping nodes merge
// every iteration's rendered mapping into a single *Node.
func (l *Loader) renderFor(n *Node, ctx *Context) (any, error) {
	e, err := expr.Parse(n.ForExpr)
	if err != nil {
		if se, ok := err.(*expr.SyntaxError); ok {
			return nil, &ExprSyntaxError{Column: se.Offset + 1, Text: se.Text, Message: se.Message}
		}
		return nil, &RenderError{Mark: n.Mark, Message: err.Error()}
	}
	itemsVal, err := e.Evaluate(ctx)
	if err != nil {
		return nil, &RenderError{Mark: n.Mark, Message: err.Error()}
	}
	items, err := iterableValues(itemsVal)
	if err != nil {
		return nil, &RenderError{Mark: n.Mark, Message: err.Error()}
	}

	var seqItems []*Node
	var mergedEntries []Entry
	for _, item := range items {
		pop := ctx.Push(nil)
		if err := bindForNames(ctx, n.ForNames, item); err != nil {
			pop()
			return nil, err
		}
		if n.ForIf != nil {
			ok, err := l.evalBoolNode(n.ForIf, ctx)
			if err != nil {
				pop()
				return nil, err
			}
			if !ok {
				pop()
				continue
			}
		}
		retVal, err := l.renderNode(n.ForRet, ctx)
		pop()
		if err != nil {
			return nil, err
		}
		retNode := l.collapseForResult(retVal)
		if retNode == nil {
			continue
		}
		if n.ForKind == ForMapping {
			if retNode.Kind != KindMapping {
				return nil, &RenderError{Mark: n.Mark, Message: "for ret must render to a mapping in mapping form"}
			}
			mergedEntries = append(mergedEntries, retNode.Entries...)
			continue
		}
		seqItems = append(seqItems, retNode)
	}
	if n.ForKind == ForMapping {
		return &Node{Kind: KindMapping, Mark: n.Mark, Entries: mergedEntries}, nil
	}
	return &forResult{items: seqItems}, nil
}

// bindForNames binds the for-header's name list against one iteration's
// element: a single name binds the whole element; multiple names require
// item to be a slice of matching length, bound positionally (spec §9:
// "no dynamic code execution", replacing the original's exec-based
// destructuring assignment).
func bindForNames(ctx *Context, names []string, item any) error {
	if len(names) == 1 {
		ctx.Set(names[0], item)
		return nil
	}
	seq, ok := item.([]any)
	if !ok || len(seq) != len(names) {
		return &RenderError{Message: fmt.Sprintf("cannot unpack %v into %d names", item, len(names))}
	}
	for i, name := range names {
		ctx.Set(name, seq[i])
	}
	return nil
}

// iterableValues coerces an expression's result into a slice for "for"
// to range over: sequences as-is, mapping keys, string as runes — the
// same shapes the "list" builtin accepts (spec §9 design note).
func iterableValues(v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case map[string]any:
		out := make([]any, 0, len(x))
		for k := range x {
			out = append(out, k)
		}
		return out, nil
	case map[any]any:
		out := make([]any, 0, len(x))
		for k := range x {
			out = append(out, k)
		}
		return out, nil
	case string:
		out := make([]any, 0, len(x))
		for _, r := range x {
			out = append(out, string(r))
		}
		return out, nil
	}
	return nil, fmt.Errorf("enyaml: cannot iterate over %T", v)
}
