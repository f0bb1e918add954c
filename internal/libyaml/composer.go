// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Composer consumes an Event stream (from a Parser, or any decorator
// implementing EventSource) and builds the Node tree for one document at a
// time.

package libyaml

import (
	"fmt"
	"io"
)

// Composer builds Node trees, one per document, from an EventSource.
type Composer struct {
	src     EventSource
	anchors map[string]*Node
	peeked  *Event
	began   bool
}

// NewComposer creates a Composer pulling events from src.
func NewComposer(src EventSource) *Composer {
	return &Composer{src: src, anchors: map[string]*Node{}}
}

func (c *Composer) next() (*Event, error) {
	if c.peeked != nil {
		e := c.peeked
		c.peeked = nil
		return e, nil
	}
	return c.src.ParseEvent()
}

func (c *Composer) peek() (*Event, error) {
	if c.peeked == nil {
		e, err := c.src.ParseEvent()
		if err != nil {
			return nil, err
		}
		c.peeked = e
	}
	return c.peeked, nil
}

// Compose builds the next document's Node tree (wrapped in a DocumentNode),
// or returns io.EOF once the stream is exhausted.
func (c *Composer) Compose() (*Node, error) {
	if !c.began {
		c.began = true
		ev, err := c.next()
		if err != nil {
			return nil, err
		}
		if ev.Type != STREAM_START_EVENT {
			c.peeked = ev
		}
	}

	ev, err := c.next()
	if err != nil {
		return nil, err
	}
	for ev.Type == DOCUMENT_END_EVENT {
		ev, err = c.next()
		if err != nil {
			return nil, err
		}
	}
	if ev.Type == STREAM_END_EVENT {
		return nil, io.EOF
	}
	if ev.Type == DOCUMENT_START_EVENT {
		ev, err = c.next()
		if err != nil {
			return nil, err
		}
	}

	c.anchors = map[string]*Node{}
	root, err := c.composeNode(ev)
	if err != nil {
		return nil, err
	}
	return &Node{Kind: DocumentNode, Content: []*Node{root}, Line: ev.StartMark.Line, Column: ev.StartMark.Column}, nil
}

func (c *Composer) composeNode(ev *Event) (*Node, error) {
	switch ev.Type {
	case SCALAR_EVENT:
		n := &Node{
			Kind:   ScalarNode,
			Tag:    string(ev.Tag),
			Value:  string(ev.Value),
			Anchor: string(ev.Anchor),
			Line:   ev.StartMark.Line,
			Column: ev.StartMark.Column,
		}
		n.Style = styleFromScalarEvent(ev)
		if n.Anchor != "" {
			c.anchors[n.Anchor] = n
		}
		return n, nil
	case ALIAS_EVENT:
		target, ok := c.anchors[string(ev.Anchor)]
		if !ok {
			return nil, &ComposerError{Mark: ev.StartMark, Message: fmt.Sprintf("found undefined alias *%s", ev.Anchor)}
		}
		return &Node{Kind: AliasNode, Alias: target, Value: target.Value, Line: ev.StartMark.Line, Column: ev.StartMark.Column}, nil
	case SEQUENCE_START_EVENT:
		n := &Node{Kind: SequenceNode, Tag: string(ev.Tag), Anchor: string(ev.Anchor), Line: ev.StartMark.Line, Column: ev.StartMark.Column}
		if ev.Style == FlowStyle {
			n.Style = FlowStyle
		}
		if n.Anchor != "" {
			c.anchors[n.Anchor] = n
		}
		for {
			item, err := c.next()
			if err != nil {
				return nil, err
			}
			if item.Type == SEQUENCE_END_EVENT || item.Type == MAPPING_END_EVENT {
				return n, nil
			}
			child, err := c.composeNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
	case MAPPING_START_EVENT:
		n := &Node{Kind: MappingNode, Tag: string(ev.Tag), Anchor: string(ev.Anchor), Line: ev.StartMark.Line, Column: ev.StartMark.Column}
		if ev.Style == FlowStyle {
			n.Style = FlowStyle
		}
		if n.Anchor != "" {
			c.anchors[n.Anchor] = n
		}
		for {
			key, err := c.next()
			if err != nil {
				return nil, err
			}
			if key.Type == SEQUENCE_END_EVENT || key.Type == MAPPING_END_EVENT {
				return n, nil
			}
			keyNode, err := c.composeNode(key)
			if err != nil {
				return nil, err
			}
			val, err := c.next()
			if err != nil {
				return nil, err
			}
			valNode, err := c.composeNode(val)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, keyNode, valNode)
		}
	}
	return nil, &ComposerError{Mark: ev.StartMark, Message: fmt.Sprintf("unexpected event %s while composing a node", ev.Type)}
}

func styleFromScalarEvent(ev *Event) Style {
	switch ScalarStyle(ev.Style) {
	case SINGLE_QUOTED_SCALAR_STYLE:
		return SingleQuotedStyle
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return DoubleQuotedStyle
	case LITERAL_SCALAR_STYLE:
		return LiteralStyle
	case FOLDED_SCALAR_STYLE:
		return FoldedStyle
	default:
		return 0
	}
}
