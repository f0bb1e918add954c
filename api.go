// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The package-level API (spec §6). Render/RenderAll parse, classify,
// render and construct a template in one call; Load/LoadAll are
// identical since ENYAML's loader inherently performs template
// substitution at load time — there is no "load without rendering"
// concept here, the same way a PyYAML Loader subclass that overrides
// construct_document always runs its construction logic.

package enyaml

import (
	"io"
	"strings"

	"github.com/dhain/enyaml/internal/libyaml"
)

// Engine bundles a Loader with the libyaml Config used for emission, the
// long-lived object an application builds once and reuses across calls
// so that custom constructors/representers/path resolvers registered on
// it apply consistently.
type Engine struct {
	Loader *Loader
	Config libyaml.Config

	serializer *libyaml.Serializer
}

// New creates an Engine with default formatting options.
func New(opts ...libyaml.Option) *Engine {
	cfg := libyaml.Apply(opts...)
	return &Engine{
		Loader:     NewLoader(),
		Config:     cfg,
		serializer: libyaml.NewSerializer(cfg),
	}
}

// AddPathResolver registers fn to run against nodes found at the given
// structural path during Dump/DumpAll.
func (en *Engine) AddPathResolver(path string, fn libyaml.PathResolverFunc) {
	en.serializer.AddPathResolver(path, fn)
}

// Compose parses src and classifies it into a template Node tree,
// without rendering, for a single document. Returns io.EOF if src has
// no documents.
func (en *Engine) Compose(src string) (*Node, error) {
	p := libyaml.NewParser(src)
	c := libyaml.NewComposer(p)
	libNode, err := c.Compose()
	if err != nil {
		return nil, err
	}
	return en.Loader.Classify(libNode)
}

// ComposeAll parses and classifies every document in src.
func (en *Engine) ComposeAll(src string) ([]*Node, error) {
	p := libyaml.NewParser(src)
	c := libyaml.NewComposer(p)
	var out []*Node
	for {
		libNode, err := c.Compose()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		n, err := en.Loader.Classify(libNode)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// newRenderContext builds a fresh Context seeded with vars and the
// "ctx"/"list"/"render" builtin names (spec §9).
func (en *Engine) newRenderContext(vars map[string]any) *Context {
	ctx := NewContext()
	for k, v := range vars {
		ctx.Set(k, v)
	}
	NewBuiltins(en.Loader).Install(ctx)
	return ctx
}

// Render parses, classifies and renders the single document in src,
// returning its constructed Go value. It is a ComposerError unless src
// renders to exactly one output document; Set-only documents produce no
// output and are not counted (spec §7).
func (en *Engine) Render(src string, vars map[string]any) (any, error) {
	docs, err := en.RenderAll(src, vars)
	if err != nil {
		return nil, err
	}
	if len(docs) != 1 {
		return nil, &ComposerError{Message: "Render requires exactly one document"}
	}
	return docs[0], nil
}

// RenderAll parses, classifies and renders every document in src.
func (en *Engine) RenderAll(src string, vars map[string]any) ([]any, error) {
	nodes, err := en.ComposeAll(src)
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(nodes))
	ctx := en.newRenderContext(vars)
	for _, n := range nodes {
		rendered, err := en.Loader.RenderNode(n, ctx)
		if err != nil {
			return nil, err
		}
		if rendered == nil {
			// A Set-only (or otherwise no-output) document is consumed
			// silently rather than appearing as a document in its own right.
			continue
		}
		v, err := en.Loader.Construct(rendered)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Load is identical to Render.
func (en *Engine) Load(src string, vars map[string]any) (any, error) {
	return en.Render(src, vars)
}

// LoadAll is identical to RenderAll.
func (en *Engine) LoadAll(src string, vars map[string]any) ([]any, error) {
	return en.RenderAll(src, vars)
}

// Dump represents v and serializes/emits it as a single YAML document.
func (en *Engine) Dump(v any) (string, error) {
	return en.DumpAll([]any{v})
}

// DumpAll represents and emits values as a multi-document YAML stream.
func (en *Engine) DumpAll(values []any) (string, error) {
	var sb strings.Builder
	emitter := libyaml.NewEmitter(&sb, en.Config)
	var events []*Event
	push := func(ev *Event) error {
		events = append(events, ev)
		return nil
	}
	events = append(events, &Event{Type: libyaml.STREAM_START_EVENT})
	for _, v := range values {
		libNode, err := en.Loader.representer.Represent(v)
		if err != nil {
			return "", err
		}
		doc := &libyaml.Node{Kind: libyaml.DocumentNode, Content: []*libyaml.Node{libNode}}
		if err := en.serializer.Serialize(doc, push); err != nil {
			return "", err
		}
	}
	events = append(events, &Event{Type: libyaml.STREAM_END_EVENT})
	i := 0
	next := func() (*Event, error) {
		if i >= len(events) {
			return nil, io.EOF
		}
		e := events[i]
		i++
		return e, nil
	}
	if err := emitter.Emit(next); err != nil && err != io.EOF {
		return "", err
	}
	return sb.String(), nil
}

// DumpNode serializes/emits an already-rendered template Node (e.g. from
// RenderNode, preserving skip_render round-tripping) as YAML text.
func (en *Engine) DumpNode(n *Node) (string, error) {
	var sb strings.Builder
	emitter := libyaml.NewEmitter(&sb, en.Config)
	var events []*Event
	push := func(ev *Event) error {
		events = append(events, ev)
		return nil
	}
	events = append(events, &Event{Type: libyaml.STREAM_START_EVENT})
	doc := &libyaml.Node{Kind: libyaml.DocumentNode, Content: []*libyaml.Node{en.Loader.ToLibyaml(n)}}
	if err := en.serializer.Serialize(doc, push); err != nil {
		return "", err
	}
	events = append(events, &Event{Type: libyaml.STREAM_END_EVENT})
	i := 0
	next := func() (*Event, error) {
		if i >= len(events) {
			return nil, io.EOF
		}
		e := events[i]
		i++
		return e, nil
	}
	if err := emitter.Emit(next); err != nil && err != io.EOF {
		return "", err
	}
	return sb.String(), nil
}

// Event is re-exported so callers composing their own pipelines (the
// Parse/Scan/Serialize/Emit primitives below) don't need to import
// internal/libyaml directly.
type Event = libyaml.Event

// Scan tokenizes src, returning every token (mainly useful for tests and
// diagnostics).
func Scan(src string) ([]libyaml.Token, error) {
	s := libyaml.NewScanner(src)
	var out []libyaml.Token
	for {
		tok, err := s.Scan()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Type == libyaml.STREAM_END_TOKEN {
			return out, nil
		}
	}
}

// Parse runs the Scanner+Parser over src, returning every Event.
func Parse(src string) ([]*Event, error) {
	p := libyaml.NewParser(src)
	var out []*Event
	for {
		ev, err := p.ParseEvent()
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
		if ev.Type == libyaml.STREAM_END_EVENT {
			return out, nil
		}
	}
}
