// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Emitter consumes an Event stream and writes YAML text, mirroring the
// indentation/quoting decisions of libyaml's emitter at a scale that fits
// ENYAML's grammar subset.

package libyaml

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Emitter writes an Event stream as YAML text.
type Emitter struct {
	w       io.Writer
	cfg     Config
	indent  int
	err     error
	mapKeys []bool // whether the current mapping level is mid key/value
}

// NewEmitter creates an Emitter writing to w with cfg controlling
// indentation/width/style defaults.
func NewEmitter(w io.Writer, cfg Config) *Emitter {
	return &Emitter{w: w, cfg: cfg}
}

func (e *Emitter) write(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *Emitter) newlineIndent(depth int) {
	e.write("\n")
	if e.cfg.Indent <= 0 {
		e.cfg.Indent = 2
	}
	e.write(strings.Repeat(" ", depth*e.cfg.Indent))
}

// Emit consumes the full Event stream produced by next until it returns
// (nil, io.EOF), writing YAML text for each document encountered.
func (e *Emitter) Emit(next func() (*Event, error)) error {
	depth := 0
	first := true
	for {
		ev, err := next()
		if err == io.EOF {
			return e.err
		}
		if err != nil {
			return err
		}
		switch ev.Type {
		case STREAM_START_EVENT, STREAM_END_EVENT:
			continue
		case DOCUMENT_START_EVENT:
			if !first {
				e.write("---\n")
			} else if e.cfg.ExplicitStart {
				e.write("---\n")
			}
			first = false
			continue
		case DOCUMENT_END_EVENT:
			if e.cfg.ExplicitEnd {
				e.write("...\n")
			}
			continue
		}
		if err := e.emitNode(next, ev, depth, false); err != nil {
			return err
		}
		e.write("\n")
	}
}

// emitNode emits the subtree rooted at the already-read start event ev.
// inline is not consulted; nested collections inside a flow collection are
// forced to flow style by replayOne.
func (e *Emitter) emitNode(next func() (*Event, error), ev *Event, depth int, inline bool) error {
	switch ev.Type {
	case SCALAR_EVENT:
		e.emitAnchorTag(ev)
		e.emitScalar(ev)
		return nil
	case ALIAS_EVENT:
		e.write("*" + string(ev.Anchor))
		return nil
	case SEQUENCE_START_EVENT:
		return e.emitSequence(next, ev, depth)
	case MAPPING_START_EVENT:
		return e.emitMapping(next, ev, depth)
	}
	return fmt.Errorf("libyaml: emitter saw unexpected event %s", ev.Type)
}

func (e *Emitter) emitAnchorTag(ev *Event) {
	if len(ev.Anchor) > 0 {
		e.write("&" + string(ev.Anchor) + " ")
	}
	if len(ev.Tag) == 0 || ev.Implicit {
		return
	}
	tag := string(ev.Tag)
	if strings.HasPrefix(tag, "!") {
		e.write(tag + " ")
		return
	}
	e.write("!<" + tag + "> ")
}

func (e *Emitter) emitScalar(ev *Event) {
	v := string(ev.Value)
	switch {
	case ev.Style&SingleQuotedStyle != 0:
		e.write("'" + strings.ReplaceAll(v, "'", "''") + "'")
	case ev.Style&DoubleQuotedStyle != 0:
		e.write(strconv.Quote(v))
	case ev.Style&LiteralStyle != 0:
		e.write("|\n")
		for _, line := range strings.Split(strings.TrimSuffix(v, "\n"), "\n") {
			e.write("  " + line + "\n")
		}
	default:
		if v == "" || needsQuoting(v) {
			e.write(strconv.Quote(v))
			return
		}
		e.write(v)
	}
}

func needsQuoting(v string) bool {
	switch v {
	case "null", "~", "true", "false", "Null", "True", "False":
		return false
	}
	if v == "" {
		return true
	}
	c := v[0]
	if strings.ContainsAny(string(c), "!&*-?|>%@`\"'#,[]{}") {
		return true
	}
	if strings.ContainsAny(v, "\n\t") {
		return true
	}
	if strings.Contains(v, ": ") || strings.HasSuffix(v, ":") || strings.Contains(v, " #") {
		return true
	}
	return false
}

func (e *Emitter) emitSequence(next func() (*Event, error), ev *Event, depth int) error {
	e.emitAnchorTag(ev)
	flow := ev.Style == FlowStyle
	var items []*Event
	for {
		item, err := next()
		if err != nil {
			return err
		}
		if item.Type == SEQUENCE_END_EVENT {
			break
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		e.write("[]")
		return nil
	}
	if flow {
		e.write("[")
		for i, item := range items {
			if i > 0 {
				e.write(", ")
			}
			if err := e.replayOne(next, item, depth, true); err != nil {
				return err
			}
		}
		e.write("]")
		return nil
	}
	for _, item := range items {
		e.newlineIndent(depth)
		e.write("- ")
		if err := e.replayOne(next, item, depth+1, false); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emitMapping(next func() (*Event, error), ev *Event, depth int) error {
	e.emitAnchorTag(ev)
	flow := ev.Style == FlowStyle
	type pair struct{ k, v *Event }
	var pairs []pair
	for {
		k, err := next()
		if err != nil {
			return err
		}
		if k.Type == MAPPING_END_EVENT {
			break
		}
		v, err := next()
		if err != nil {
			return err
		}
		pairs = append(pairs, pair{k, v})
	}
	if len(pairs) == 0 {
		e.write("{}")
		return nil
	}
	if flow {
		e.write("{")
		for i, p := range pairs {
			if i > 0 {
				e.write(", ")
			}
			if err := e.replayOne(next, p.k, depth, true); err != nil {
				return err
			}
			e.write(": ")
			if err := e.replayOne(next, p.v, depth, true); err != nil {
				return err
			}
		}
		e.write("}")
		return nil
	}
	for _, p := range pairs {
		e.newlineIndent(depth)
		if err := e.replayOne(next, p.k, depth, false); err != nil {
			return err
		}
		e.write(":")
		if p.v.Type == SCALAR_EVENT || p.v.Type == ALIAS_EVENT {
			e.write(" ")
			if err := e.replayOne(next, p.v, depth+1, false); err != nil {
				return err
			}
		} else {
			if err := e.replayOne(next, p.v, depth+1, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// replayOne emits a sub-node whose start event has already been consumed
// from the stream, recursing into nested collections via next.
func (e *Emitter) replayOne(next func() (*Event, error), ev *Event, depth int, inFlow bool) error {
	switch ev.Type {
	case SEQUENCE_START_EVENT:
		if inFlow {
			ev = &Event{Type: ev.Type, Anchor: ev.Anchor, Tag: ev.Tag, Implicit: ev.Implicit, Style: FlowStyle}
		}
	case MAPPING_START_EVENT:
		if inFlow {
			ev = &Event{Type: ev.Type, Anchor: ev.Anchor, Tag: ev.Tag, Implicit: ev.Implicit, Style: FlowStyle}
		}
	}
	return e.emitNode(next, ev, depth, inFlow)
}
