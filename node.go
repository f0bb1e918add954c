// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The template node variant tree (spec §3 "Node variants"): a flat sum
// type over node kinds, each carrying the common fields (mark, subtag,
// skip_render) plus its own payload, so the Renderer dispatches with a
// single switch instead of walking a class hierarchy (spec §9).

package enyaml

import "github.com/dhain/enyaml/internal/libyaml"

// Kind identifies which template variant a Node is.
type Kind int

const (
	// KindScalar, KindSequence, KindMapping are plain YAML shapes. When
	// Transparent is set they carry the "tmpl" basetag: rendering recurses
	// into them but performs no substitution of its own.
	KindScalar Kind = iota
	KindSequence
	KindMapping
	// KindExpr is a "$" node: evaluates Value as an expression.
	KindExpr
	// KindFmt is a "$f" node: evaluates Value as a brace format string.
	KindFmt
	// KindSet is a "set" node: renders like a mapping, but writes its
	// entries into the Context and produces no output node.
	KindSet
	// KindIf is an "if" node: Items holds [test, result, test, result, ..., default?].
	KindIf
	// KindFor is a "for" node (either syntactic form, see forloop.go).
	KindFor
)

// ForKind distinguishes the two surface forms of a "for" construct.
type ForKind int

const (
	ForSequence ForKind = iota
	ForMapping
)

// Entry is a single mapping key/value pair.
type Entry struct {
	Key   *Node
	Value *Node
}

// Node is one element of the template tree produced by the loader adapter
// and consumed by the renderer.
type Node struct {
	Kind        Kind
	Mark        Mark
	Subtag      string
	SkipRender  bool
	Transparent bool // basetag == "tmpl"

	// RawTag is the literal YAML tag text for a non-template node (Kind
	// scalar/sequence/mapping with Transparent == false): whatever the
	// composer attached, verbatim, to be classified by the implicit
	// resolver (or used as-is if explicit) at construct/dump time.
	RawTag string

	// KindScalar / KindExpr / KindFmt
	Value string
	Style libyaml.Style

	// KindSequence / KindIf (branches)
	Items []*Node
	Flow  bool

	// KindMapping/KindSet
	Entries []Entry

	// KindFor. ForKind selects whether a completed iteration's "ret"
	// splices into an enclosing sequence (ForSequence) or is merged as a
	// mapping (ForMapping, each ret must itself render to a mapping). A
	// header given via the scalar shorthand (§4.6 "Header parsing") is
	// recorded with ForHeader set and ForNames/ForExpr left empty until
	// the enclosing mapping resolves it at render time.
	ForKind   ForKind
	ForNames  []string // parsed "a, b, c" from the header
	ForExpr   string   // the "<expr>" half of the header
	ForRet    *Node    // the "ret:" template
	ForIf     *Node    // the optional "if:" guard template
	ForHeader string   // raw "<names> in <expr>" text, scalar-shorthand form only
}

// forResult is the sentinel produced by a sequence-form "for": its Items
// splice into the enclosing sequence rather than nesting.
type forResult struct {
	items []*Node
}
