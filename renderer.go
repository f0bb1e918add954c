// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The renderer: walks a classified Node tree, evaluating each template
// variant against a Context (spec §4.3). It produces another Node tree
// (not plain Go values) so that skip_render nodes and tags survive for
// Dump; Construct is the separate step that turns a rendered tree into
// Go values (spec §4.4, and see construct.go).

package enyaml

import (
	"fmt"
	"strings"

	"github.com/dhain/enyaml/expr"
)

// RenderNode renders n against ctx and returns the result as a Node tree.
// The result is either a *Node or nil (the node rendered to nothing and
// should be dropped from its parent). A top-level *forResult is
// collapsed into a plain sequence Node.
func (l *Loader) RenderNode(n *Node, ctx *Context) (*Node, error) {
	v, err := l.renderNode(n, ctx)
	if err != nil {
		return nil, err
	}
	return l.collapseForResult(v), nil
}

func (l *Loader) collapseForResult(v any) *Node {
	switch x := v.(type) {
	case nil:
		return nil
	case *Node:
		return x
	case *forResult:
		return &Node{Kind: KindSequence, Items: x.items}
	}
	return nil
}

// renderNode is the internal dispatch; its return is one of: nil
// (dropped), *Node, or *forResult (only meaningful to the immediate
// caller, which must splice or collapse it).
func (l *Loader) renderNode(n *Node, ctx *Context) (any, error) {
	if n == nil {
		return nil, nil
	}
	if n.SkipRender {
		return l.renderSkipped(n), nil
	}
	switch n.Kind {
	case KindScalar:
		return n, nil
	case KindSequence:
		return l.renderSequence(n, ctx)
	case KindMapping:
		return l.renderMapping(n, ctx)
	case KindExpr:
		return l.renderExpr(n, ctx)
	case KindFmt:
		return l.renderFmt(n, ctx)
	case KindSet:
		return l.renderSet(n, ctx)
	case KindIf:
		return l.renderIf(n, ctx)
	case KindFor:
		return l.renderFor(n, ctx)
	}
	return nil, fmt.Errorf("enyaml: internal error: unknown node kind %d", n.Kind)
}

// renderSkipped keeps a skip_render ("~") node's structure untouched: its
// tag and text survive for round-tripping, but its descendants are not
// evaluated (spec §8 round-trip laws).
func (l *Loader) renderSkipped(n *Node) *Node {
	cp := *n
	return &cp
}

func (l *Loader) renderSequence(n *Node, ctx *Context) (*Node, error) {
	out := make([]*Node, 0, len(n.Items))
	for _, item := range n.Items {
		v, err := l.renderNode(item, ctx)
		if err != nil {
			return nil, err
		}
		switch x := v.(type) {
		case nil:
			continue
		case *forResult:
			out = append(out, x.items...)
		case *Node:
			out = append(out, x)
		}
	}
	return &Node{Kind: KindSequence, Mark: n.Mark, Subtag: n.Subtag, RawTag: n.RawTag, Transparent: n.Transparent, Items: out, Flow: n.Flow}, nil
}

func (l *Loader) renderMapping(n *Node, ctx *Context) (any, error) {
	// Scalar-header shorthand (spec §4.6 "Header parsing"): a mapping
	// whose sole key is a For node replaces itself with that for's
	// result, matching the original's ForNode.render_items semantics of
	// always producing a sequence.
	if len(n.Entries) == 1 && n.Entries[0].Key != nil && n.Entries[0].Key.Kind == KindFor && n.Entries[0].Key.ForHeader != "" {
		forNode, err := buildHeaderForNode(n.Entries[0])
		if err != nil {
			return nil, err
		}
		return l.renderFor(forNode, ctx)
	}

	out := make([]Entry, 0, len(n.Entries))
	for _, e := range n.Entries {
		if e.Key != nil && e.Key.Kind == KindFor {
			return nil, &RenderError{Mark: n.Mark, Message: "for inside a mapping with any sibling entry is an error"}
		}
		kv, err := l.renderNode(e.Key, ctx)
		if err != nil {
			return nil, err
		}
		vv, err := l.renderNode(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		kn := l.collapseForResult(kv)
		vn := l.collapseForResult(vv)
		if kn == nil || vn == nil {
			continue
		}
		out = append(out, Entry{Key: kn, Value: vn})
	}
	return &Node{Kind: KindMapping, Mark: n.Mark, Subtag: n.Subtag, RawTag: n.RawTag, Transparent: n.Transparent, Entries: out, Flow: n.Flow}, nil
}

// buildHeaderForNode parses a scalar-header for key ("<names> in <expr>")
// paired with its sibling value (the ret template) into a ForNode.
func buildHeaderForNode(e Entry) (*Node, error) {
	names, exprSrc, err := parseForHeaderText(e.Key.ForHeader)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: KindFor, Mark: e.Key.Mark, ForKind: ForSequence, ForNames: names, ForExpr: exprSrc, ForRet: e.Value}, nil
}

// parseForHeaderText splits a "<names> in <expr>" header, equivalent to
// the original's FOR_RX match.
func parseForHeaderText(header string) (names []string, exprSrc string, err error) {
	idx := strings.Index(header, " in ")
	if idx < 0 {
		return nil, "", &RenderError{Message: fmt.Sprintf("malformed for header %q", header)}
	}
	names = splitForNames(header[:idx])
	exprSrc = strings.TrimSpace(header[idx+len(" in "):])
	if exprSrc == "" {
		return nil, "", &RenderError{Message: fmt.Sprintf("malformed for header %q", header)}
	}
	return names, exprSrc, nil
}

func (l *Loader) renderExpr(n *Node, ctx *Context) (any, error) {
	e, err := expr.Parse(n.Value)
	if err != nil {
		if se, ok := err.(*expr.SyntaxError); ok {
			return nil, &ExprSyntaxError{Column: se.Offset + 1, Text: se.Text, Message: se.Message}
		}
		return nil, &RenderError{Mark: n.Mark, Message: err.Error()}
	}
	result, err := e.Evaluate(ctx)
	if err != nil {
		return nil, &RenderError{Mark: n.Mark, Message: err.Error()}
	}
	if resultNode, ok := result.(*Node); ok {
		if n.SkipRender {
			return resultNode, nil
		}
		return l.renderNode(resultNode, ctx)
	}
	tag, v := resolveExprTag(n.Subtag, result)
	node, err := l.valueToNode(v)
	if err != nil {
		return nil, err
	}
	if tag != "" && node.Kind == KindScalar {
		node.Subtag = tag
	}
	return node, nil
}

func (l *Loader) renderFmt(n *Node, ctx *Context) (any, error) {
	text, err := formatString(n.Value, ctx)
	if err != nil {
		return nil, &RenderError{Mark: n.Mark, Message: err.Error()}
	}
	return &Node{Kind: KindScalar, Mark: n.Mark, Subtag: n.Subtag, Value: text, Style: n.Style}, nil
}

func (l *Loader) renderSet(n *Node, ctx *Context) (any, error) {
	for _, e := range n.Entries {
		kv, err := l.renderNode(e.Key, ctx)
		if err != nil {
			return nil, err
		}
		vv, err := l.renderNode(e.Value, ctx)
		if err != nil {
			return nil, err
		}
		kn := l.collapseForResult(kv)
		vn := l.collapseForResult(vv)
		if kn == nil || vn == nil {
			continue
		}
		kval, err := l.Construct(kn)
		if err != nil {
			return nil, err
		}
		vval, err := l.Construct(vn)
		if err != nil {
			return nil, err
		}
		ctx.Set(fmt.Sprint(kval), vval)
	}
	return nil, nil
}

func (l *Loader) renderIf(n *Node, ctx *Context) (any, error) {
	branches := n.Items
	if len(branches) < 2 {
		return nil, &RenderError{Mark: n.Mark, Message: "if requires at least a test and a result"}
	}
	i := 0
	for ; i+1 < len(branches); i += 2 {
		testVal, err := l.evalBoolNode(branches[i], ctx)
		if err != nil {
			return nil, err
		}
		if testVal {
			return l.renderNode(branches[i+1], ctx)
		}
	}
	if i < len(branches) {
		return l.renderNode(branches[i], ctx)
	}
	return nil, nil
}

func (l *Loader) evalBoolNode(n *Node, ctx *Context) (bool, error) {
	v, err := l.renderNode(n, ctx)
	if err != nil {
		return false, err
	}
	node := l.collapseForResult(v)
	val, err := l.Construct(node)
	if err != nil {
		return false, err
	}
	return truthyValue(val), nil
}

func truthyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case map[any]any:
		return len(x) > 0
	}
	return true
}

// valueToNode represents an arbitrary Go value (the result of an
// expression evaluation) back into the template Node tree, reusing the
// libyaml Representer and the loader's own plain-node classification.
func (l *Loader) valueToNode(v any) (*Node, error) {
	libNode, err := l.representer.Represent(v)
	if err != nil {
		return nil, err
	}
	return l.classifyPlain(libNode, Mark{})
}
