// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The dumper adapter: turns a rendered template Node back into a
// libyaml.Node for serialization/emission, restoring ENYAML tags onto
// any node that still carries one (spec §4.4, §8 round-trip laws),
// ported from TemplateDumper.prepare_tag's counterpart.

package enyaml

import "github.com/dhain/enyaml/internal/libyaml"

// ToLibyaml converts a rendered (or skip_render, unrendered) template
// Node into a libyaml.Node ready for the Serializer/Emitter.
func (l *Loader) ToLibyaml(n *Node) *libyaml.Node {
	if n == nil {
		return &libyaml.Node{Kind: libyaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	tag := dumpTag(n)
	switch n.Kind {
	case KindScalar, KindExpr, KindFmt:
		return &libyaml.Node{Kind: libyaml.ScalarNode, Tag: tag, Value: n.Value, Style: n.Style}
	case KindSequence, KindIf, KindFor:
		style := libyaml.Style(0)
		if n.Flow {
			style = libyaml.FlowStyle
		}
		content := make([]*libyaml.Node, 0, len(n.Items))
		for _, item := range n.Items {
			content = append(content, l.ToLibyaml(item))
		}
		return &libyaml.Node{Kind: libyaml.SequenceNode, Tag: tag, Content: content, Style: style}
	case KindMapping, KindSet:
		style := libyaml.Style(0)
		if n.Flow {
			style = libyaml.FlowStyle
		}
		content := make([]*libyaml.Node, 0, len(n.Entries)*2)
		for _, e := range n.Entries {
			content = append(content, l.ToLibyaml(e.Key), l.ToLibyaml(e.Value))
		}
		return &libyaml.Node{Kind: libyaml.MappingNode, Tag: tag, Content: content, Style: style}
	}
	return &libyaml.Node{Kind: libyaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// dumpTag restores a node's ENYAML tag for round-tripping: skip_render
// nodes and still-unrendered template kinds keep their full ENYAML tag;
// a rendered node with an explicit subtag keeps that subtag verbatim; a
// plain node keeps whatever literal tag the composer originally saw.
func dumpTag(n *Node) string {
	if n.SkipRender {
		return JoinTag(basetagFor(n), n.Subtag, true)
	}
	switch n.Kind {
	case KindExpr:
		return JoinTag("$", n.Subtag, false)
	case KindFmt:
		return JoinTag("$f", n.Subtag, false)
	case KindIf:
		return JoinTag("if", n.Subtag, false)
	case KindFor:
		return JoinTag("for", n.Subtag, false)
	case KindSet:
		return JoinTag("set", n.Subtag, false)
	}
	if n.Transparent {
		if n.Subtag != "" {
			return n.Subtag
		}
		return ""
	}
	if n.Subtag != "" {
		return n.Subtag
	}
	return n.RawTag
}

func basetagFor(n *Node) string {
	switch n.Kind {
	case KindExpr:
		return "$"
	case KindFmt:
		return "$f"
	case KindSet:
		return "set"
	case KindIf:
		return "if"
	case KindFor:
		return "for"
	}
	return "tmpl"
}
