// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Parser consumes a Token stream and produces an Event stream: the
// classic libyaml two-stage design, trimmed to the grammar ENYAML
// templates need.

package libyaml

import (
	"fmt"
)

// EventSource is anything that can be pulled for a stream of Events. The
// raw Parser implements it directly; a decorator can wrap a Parser to
// intercept events before they reach a Composer.
type EventSource interface {
	ParseEvent() (*Event, error)
}

// Parser turns a Token stream into an Event stream, tracking pending
// anchors/tags the way libyaml's parser_parse_node does.
type Parser struct {
	scanner *Scanner
	peeked  *Token
	state   []parserState
	started bool
	done    bool
}

type parserState int

const (
	stateDocument parserState = iota
	stateSequenceEntry
	stateMappingKey
	stateMappingValue
)

// NewParser creates a Parser reading from src.
func NewParser(src string) *Parser {
	return &Parser{scanner: NewScanner(src)}
}

func (p *Parser) next() (Token, error) {
	if p.peeked != nil {
		t := *p.peeked
		p.peeked = nil
		return t, nil
	}
	return p.scanner.Scan()
}

func (p *Parser) peek() (Token, error) {
	if p.peeked == nil {
		t, err := p.scanner.Scan()
		if err != nil {
			return Token{}, err
		}
		p.peeked = &t
	}
	return *p.peeked, nil
}

// ParseEvent returns the next Event in the stream.
func (p *Parser) ParseEvent() (*Event, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case STREAM_START_TOKEN:
		return &Event{Type: STREAM_START_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark}, nil
	case STREAM_END_TOKEN:
		return &Event{Type: STREAM_END_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark}, nil
	case DOCUMENT_START_TOKEN:
		return &Event{Type: DOCUMENT_START_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark, Implicit: false}, nil
	case DOCUMENT_END_TOKEN:
		return &Event{Type: DOCUMENT_END_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark, Implicit: false}, nil
	case BLOCK_END_TOKEN:
		// Synthetic: a block end is always reported as MAPPING_END; the
		// Composer accepts either end event as closing the open collection.
		return &Event{Type: MAPPING_END_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark}, nil
	case BLOCK_SEQUENCE_START_TOKEN, FLOW_SEQUENCE_START_TOKEN:
		anchor, tag, err := p.collectProps()
		if err != nil {
			return nil, err
		}
		return &Event{Type: SEQUENCE_START_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark,
			Anchor: anchor, Tag: tag, Implicit: tag == nil,
			Style: styleFromSequence(tok.Type == FLOW_SEQUENCE_START_TOKEN)}, nil
	case BLOCK_MAPPING_START_TOKEN, FLOW_MAPPING_START_TOKEN:
		anchor, tag, err := p.collectProps()
		if err != nil {
			return nil, err
		}
		return &Event{Type: MAPPING_START_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark,
			Anchor: anchor, Tag: tag, Implicit: tag == nil,
			Style: styleFromMapping(tok.Type == FLOW_MAPPING_START_TOKEN)}, nil
	case FLOW_SEQUENCE_END_TOKEN:
		return &Event{Type: SEQUENCE_END_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark}, nil
	case FLOW_MAPPING_END_TOKEN:
		return &Event{Type: MAPPING_END_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark}, nil
	case BLOCK_ENTRY_TOKEN, FLOW_ENTRY_TOKEN, KEY_TOKEN, VALUE_TOKEN:
		// Structural separators carry no event of their own; skip to the
		// next meaningful token.
		return p.ParseEvent()
	case ANCHOR_TOKEN, TAG_TOKEN:
		p.peeked = &tok
		return p.parseScalarOrAlias()
	case ALIAS_TOKEN:
		return &Event{Type: ALIAS_EVENT, StartMark: tok.StartMark, EndMark: tok.EndMark, Anchor: tok.Value}, nil
	case SCALAR_TOKEN:
		p.peeked = &tok
		return p.parseScalarOrAlias()
	}
	return nil, &ParserError{Mark: tok.StartMark, Message: fmt.Sprintf("unexpected token %s", tok.Type)}
}

func styleFromSequence(flow bool) Style {
	if flow {
		return FlowStyle
	}
	return 0
}

func styleFromMapping(flow bool) Style {
	if flow {
		return FlowStyle
	}
	return 0
}

// collectProps consumes any ANCHOR_TOKEN/TAG_TOKEN immediately preceding a
// collection start and returns them.
func (p *Parser) collectProps() (anchor, tag []byte, err error) {
	for {
		t, err := p.peek()
		if err != nil {
			return nil, nil, err
		}
		switch t.Type {
		case ANCHOR_TOKEN:
			p.next()
			anchor = t.Value
		case TAG_TOKEN:
			p.next()
			tag = resolveTagHandle(t.Value)
		default:
			return anchor, tag, nil
		}
	}
}

func (p *Parser) parseScalarOrAlias() (*Event, error) {
	anchor, tag, err := p.collectProps()
	if err != nil {
		return nil, err
	}
	t, err := p.next()
	if err != nil {
		return nil, err
	}
	if t.Type == ALIAS_TOKEN {
		return &Event{Type: ALIAS_EVENT, StartMark: t.StartMark, EndMark: t.EndMark, Anchor: t.Value}, nil
	}
	switch t.Type {
	case BLOCK_SEQUENCE_START_TOKEN, FLOW_SEQUENCE_START_TOKEN:
		return &Event{Type: SEQUENCE_START_EVENT, StartMark: t.StartMark, EndMark: t.EndMark,
			Anchor: anchor, Tag: tag, Implicit: tag == nil,
			Style: styleFromSequence(t.Type == FLOW_SEQUENCE_START_TOKEN)}, nil
	case BLOCK_MAPPING_START_TOKEN, FLOW_MAPPING_START_TOKEN:
		return &Event{Type: MAPPING_START_EVENT, StartMark: t.StartMark, EndMark: t.EndMark,
			Anchor: anchor, Tag: tag, Implicit: tag == nil,
			Style: styleFromMapping(t.Type == FLOW_MAPPING_START_TOKEN)}, nil
	}
	if t.Type != SCALAR_TOKEN {
		// A bare tag/anchor with no scalar attached: empty scalar.
		p.peeked = &t
		return &Event{Type: SCALAR_EVENT, Anchor: anchor, Tag: tag, Implicit: tag == nil, Style: Style(ANY_SCALAR_STYLE)}, nil
	}
	implicit := tag == nil
	return &Event{Type: SCALAR_EVENT, StartMark: t.StartMark, EndMark: t.EndMark,
		Anchor: anchor, Tag: tag, Value: t.Value, Implicit: implicit, Style: Style(t.Style)}, nil
}

// resolveTagHandle expands a scanned tag token's raw text ("!", "!!foo",
// "!foo", or a verbatim "<uri>" already stripped of its angle brackets)
// into the tag string carried on the Event/Node.
func resolveTagHandle(raw []byte) []byte {
	s := string(raw)
	switch {
	case len(s) == 0:
		return []byte("!")
	case s[0] == '!' && len(s) > 1 && s[1] == '!':
		return []byte(LongTag("!!" + s[2:]))
	case s == "!":
		return []byte("!")
	case len(s) > 0 && s[0] == '!':
		return raw
	default:
		return raw
	}
}
