// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Node tree produced by the Composer and consumed by the Constructor,
// Representer and Serializer.

package libyaml

// Kind identifies the structural shape of a Node.
type Kind uint32

const (
	// DocumentNode wraps the single root node of one YAML document.
	DocumentNode Kind = 1 << iota
	SequenceNode
	MappingNode
	ScalarNode
	AliasNode
)

func (k Kind) String() string {
	switch k {
	case DocumentNode:
		return "document"
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	case ScalarNode:
		return "scalar"
	case AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// Style carries emission-style hints for a Node. Its bit values differ
// from ScalarStyle's: Parser events carry ScalarStyle bits, which the
// Composer converts (styleFromScalarEvent), while Serializer events carry
// Style bits unchanged.
type Style int8

const (
	TaggedStyle Style = 1 << iota
	DoubleQuotedStyle
	SingleQuotedStyle
	LiteralStyle
	FoldedStyle
	FlowStyle
)

// Node is a single element of a parsed or constructed YAML document tree.
// It mirrors the shape consumed by a host-language value via the
// Constructor, or produced from one via the Representer.
type Node struct {
	Kind    Kind
	Style   Style
	Tag     string
	Value   string
	Anchor  string
	Alias   *Node
	Content []*Node

	Line   int
	Column int
}

// IsZero reports whether the node holds no content at all.
func (n *Node) IsZero() bool {
	return n == nil || (n.Kind == 0 && n.Style == 0 && n.Tag == "" && n.Value == "" &&
		n.Anchor == "" && n.Alias == nil && n.Content == nil)
}

// ShortTag returns the tag without the "tag:yaml.org,2002:" prefix, the way
// the standard resolver tables key their entries.
func (n *Node) ShortTag() string {
	return ShortTag(n.Tag)
}

// ShortTag strips the "tag:yaml.org,2002:" prefix from tag, if present.
func ShortTag(tag string) string {
	const prefix = "tag:yaml.org,2002:"
	if len(tag) > len(prefix) && tag[:len(prefix)] == prefix {
		return "!!" + tag[len(prefix):]
	}
	return tag
}

// LongTag expands a "!!short" tag into its full "tag:yaml.org,2002:..." form.
// Any other tag (including the empty string) is returned unchanged.
func LongTag(tag string) string {
	if len(tag) > 2 && tag[:2] == "!!" {
		return "tag:yaml.org,2002:" + tag[2:]
	}
	return tag
}
