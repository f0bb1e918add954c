// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The loader adapter (spec §4.2): classifies each composed libyaml.Node
// by its tag and builds the corresponding template Node tree. The spec
// describes this as event-interception between parse and compose; here
// it runs as a single tree walk after Compose, since a Node's Tag field
// carries the event's (possibly ENYAML-prefixed) tag string unchanged
// either way — functionally equivalent, and simpler to follow.

package enyaml

import (
	"fmt"
	"strings"

	"github.com/dhain/enyaml/internal/libyaml"
)

var knownBasetags = map[string]bool{
	"tmpl": true, "$": true, "$f": true, "set": true, "if": true, "for": true,
}

// classifyTag decomposes a composed node's literal tag into the ENYAML
// parts, per the "!" shorthand rule (spec §4.2 step 3): a bare "!" or a
// recognized basetag spelling (optionally flagged/subtagged) is
// structured; any other "!foo" is a "tmpl" node with subtag "foo".
func classifyTag(tag string) (basetag, subtag string, skipRender, isTemplate bool) {
	if tag == "" {
		return "", "", false, false
	}
	if base, sub, skip, ok := SplitTag(tag); ok {
		return base, sub, skip, true
	}
	if tag == "!" {
		return "tmpl", "", false, true
	}
	if strings.HasPrefix(tag, "!") && !strings.HasPrefix(tag, "!!") {
		suffix := tag[1:]
		base, sub, skip := splitSuffix(suffix)
		if knownBasetags[base] {
			return base, sub, skip, true
		}
		return "tmpl", suffix, false, true
	}
	return "", "", false, false
}

func splitSuffix(suffix string) (base, subtag string, skipRender bool) {
	base = suffix
	if i := strings.IndexByte(suffix, ':'); i >= 0 {
		base, subtag = suffix[:i], suffix[i+1:]
	}
	for strings.HasSuffix(base, "~") {
		base = strings.TrimSuffix(base, "~")
		skipRender = true
	}
	return base, subtag, skipRender
}

// Loader turns a parsed libyaml.Node tree into the Node tree the
// Renderer consumes, and constructs rendered Node trees into plain Go
// values.
type Loader struct {
	constructor *libyaml.Constructor
	representer *libyaml.Representer
}

// NewLoader creates a Loader with no custom constructors or representers
// registered.
func NewLoader() *Loader {
	return &Loader{
		constructor: libyaml.NewConstructor(),
		representer: libyaml.NewRepresenter(),
	}
}

// AddConstructor registers fn for nodes whose resolved tag equals tag.
func (l *Loader) AddConstructor(tag string, fn libyaml.ScalarConstructFunc) {
	l.constructor.AddConstructor(tag, fn)
}

// AddMultiConstructor registers fn for nodes whose resolved tag has the
// given prefix.
func (l *Loader) AddMultiConstructor(prefix string, fn libyaml.ScalarConstructFunc) {
	l.constructor.AddMultiConstructor(prefix, fn)
}

// AddRepresenter registers fn as the handler for values whose type name
// equals typeName, used when an expression result is turned back into a
// Node (spec §9's "render" builtin and any $ result).
func (l *Loader) AddRepresenter(typeName string, fn libyaml.RepresentFunc) {
	l.representer.AddRepresenter(typeName, fn)
}

// Classify walks a composed libyaml.Node and builds the template tree.
func (l *Loader) Classify(n *libyaml.Node) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	if n.Kind == libyaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		return l.Classify(n.Content[0])
	}
	if n.Kind == libyaml.AliasNode {
		return l.Classify(n.Alias)
	}
	mark := Mark{Line: n.Line, Column: n.Column}
	basetag, subtag, skipRender, isTmpl := classifyTag(n.Tag)
	if !isTmpl {
		return l.classifyPlain(n, mark)
	}
	switch basetag {
	case "tmpl":
		return l.classifyTransparent(n, subtag, skipRender, mark)
	case "$":
		if n.Kind != libyaml.ScalarNode {
			return nil, &TagError{Mark: mark, Tag: n.Tag, Message: "$ requires a scalar"}
		}
		return &Node{Kind: KindExpr, Mark: mark, Subtag: subtag, SkipRender: skipRender, Value: n.Value, Style: n.Style}, nil
	case "$f":
		if n.Kind != libyaml.ScalarNode {
			return nil, &TagError{Mark: mark, Tag: n.Tag, Message: "$f requires a scalar"}
		}
		return &Node{Kind: KindFmt, Mark: mark, Subtag: subtag, SkipRender: skipRender, Value: n.Value, Style: n.Style}, nil
	case "set":
		if n.Kind != libyaml.MappingNode {
			return nil, &TagError{Mark: mark, Tag: n.Tag, Message: "set requires a mapping"}
		}
		entries, err := l.classifyEntries(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindSet, Mark: mark, Subtag: subtag, SkipRender: skipRender, Entries: entries, Flow: n.Style&libyaml.FlowStyle != 0}, nil
	case "if":
		if n.Kind != libyaml.SequenceNode {
			return nil, &TagError{Mark: mark, Tag: n.Tag, Message: "if requires a sequence"}
		}
		items, err := l.classifyItems(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindIf, Mark: mark, Subtag: subtag, SkipRender: skipRender, Items: items, Flow: n.Style&libyaml.FlowStyle != 0}, nil
	case "for":
		return l.classifyFor(n, subtag, skipRender, mark)
	}
	return nil, &TagError{Mark: mark, Tag: n.Tag, Message: fmt.Sprintf("unknown basetag %q", basetag)}
}

func (l *Loader) classifyPlain(n *libyaml.Node, mark Mark) (*Node, error) {
	switch n.Kind {
	case libyaml.ScalarNode:
		return &Node{Kind: KindScalar, Mark: mark, RawTag: n.Tag, Value: n.Value, Style: n.Style}, nil
	case libyaml.SequenceNode:
		items, err := l.classifyItems(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindSequence, Mark: mark, RawTag: n.Tag, Items: items, Flow: n.Style&libyaml.FlowStyle != 0}, nil
	case libyaml.MappingNode:
		entries, err := l.classifyEntries(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindMapping, Mark: mark, RawTag: n.Tag, Entries: entries, Flow: n.Style&libyaml.FlowStyle != 0}, nil
	}
	return nil, &ParseError{Mark: mark, Message: fmt.Sprintf("unexpected node kind %s", n.Kind)}
}

func (l *Loader) classifyTransparent(n *libyaml.Node, subtag string, skipRender bool, mark Mark) (*Node, error) {
	switch n.Kind {
	case libyaml.ScalarNode:
		return &Node{Kind: KindScalar, Mark: mark, Subtag: subtag, SkipRender: skipRender, Transparent: true, Value: n.Value, Style: n.Style}, nil
	case libyaml.SequenceNode:
		items, err := l.classifyItems(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindSequence, Mark: mark, Subtag: subtag, SkipRender: skipRender, Transparent: true, Items: items, Flow: n.Style&libyaml.FlowStyle != 0}, nil
	case libyaml.MappingNode:
		entries, err := l.classifyEntries(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindMapping, Mark: mark, Subtag: subtag, SkipRender: skipRender, Transparent: true, Entries: entries, Flow: n.Style&libyaml.FlowStyle != 0}, nil
	}
	return nil, &ParseError{Mark: mark, Message: fmt.Sprintf("unexpected node kind %s", n.Kind)}
}

func (l *Loader) classifyItems(n *libyaml.Node) ([]*Node, error) {
	items := make([]*Node, 0, len(n.Content))
	for _, c := range n.Content {
		item, err := l.Classify(c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (l *Loader) classifyEntries(n *libyaml.Node) ([]Entry, error) {
	entries := make([]Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, err := l.Classify(n.Content[i])
		if err != nil {
			return nil, err
		}
		v, err := l.Classify(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return entries, nil
}

// classifyFor handles the "for" basetag. The spec's worked examples tag
// the sequence-form's outer sequence and the mapping-form's mapping
// directly (§4.6); the scalar form is the alternate shorthand header
// (§4.6 "Header parsing"), valid only as a mapping key, resolved by
// classifyEntries/renderMapping when it's encountered there.
func (l *Loader) classifyFor(n *libyaml.Node, subtag string, skipRender bool, mark Mark) (*Node, error) {
	switch n.Kind {
	case libyaml.ScalarNode:
		return &Node{Kind: KindFor, Mark: mark, Subtag: subtag, SkipRender: skipRender, ForHeader: n.Value}, nil
	case libyaml.SequenceNode:
		if len(n.Content) != 1 || n.Content[0].Kind != libyaml.MappingNode {
			return nil, &TagError{Mark: mark, Tag: n.Tag, Message: "sequence-form for requires exactly one mapping"}
		}
		names, expr, ret, ifGuard, err := l.parseForHeaderMapping(n.Content[0])
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindFor, Mark: mark, Subtag: subtag, SkipRender: skipRender, ForKind: ForSequence, ForNames: names, ForExpr: expr, ForRet: ret, ForIf: ifGuard}, nil
	case libyaml.MappingNode:
		names, expr, ret, ifGuard, err := l.parseForHeaderMapping(n)
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindFor, Mark: mark, Subtag: subtag, SkipRender: skipRender, ForKind: ForMapping, ForNames: names, ForExpr: expr, ForRet: ret, ForIf: ifGuard}, nil
	}
	return nil, &TagError{Mark: mark, Tag: n.Tag, Message: "for requires a scalar, sequence, or mapping"}
}

// parseForHeaderMapping reads the "<items-expr>: <name-list>" entry plus
// optional "ret"/"if" entries out of a for-header mapping (spec §4.6).
func (l *Loader) parseForHeaderMapping(n *libyaml.Node) (names []string, expr string, ret, ifGuard *Node, err error) {
	var exprKey *Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode := n.Content[i]
		valNode := n.Content[i+1]
		if keyNode.Kind == libyaml.ScalarNode && keyNode.Tag == "" && keyNode.Value == "ret" {
			ret, err = l.Classify(valNode)
			if err != nil {
				return nil, "", nil, nil, err
			}
			continue
		}
		if keyNode.Kind == libyaml.ScalarNode && keyNode.Tag == "" && keyNode.Value == "if" {
			ifGuard, err = l.Classify(valNode)
			if err != nil {
				return nil, "", nil, nil, err
			}
			continue
		}
		if exprKey != nil {
			return nil, "", nil, nil, &RenderError{Message: "for header has more than one items-expr entry"}
		}
		exprKey, err = l.Classify(keyNode)
		if err != nil {
			return nil, "", nil, nil, err
		}
		if valNode.Kind != libyaml.ScalarNode {
			return nil, "", nil, nil, &RenderError{Message: "for name-list must be a scalar"}
		}
		names = splitForNames(valNode.Value)
	}
	if exprKey == nil {
		return nil, "", nil, nil, &RenderError{Message: "for header is missing its items-expr entry"}
	}
	exprSrc, ok := exprSource(exprKey)
	if !ok {
		return nil, "", nil, nil, &RenderError{Message: "for header's items-expr key must be an expression"}
	}
	return names, exprSrc, ret, ifGuard, nil
}

// exprSource extracts the expression text a for-header's items-expr key
// carries, whether written as `$` (evaluated) or a bare name.
func exprSource(n *Node) (string, bool) {
	switch n.Kind {
	case KindExpr:
		return n.Value, true
	case KindScalar:
		return n.Value, true
	}
	return "", false
}

func splitForNames(s string) []string {
	parts := strings.Split(s, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}
