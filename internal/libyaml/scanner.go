// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The Scanner turns YAML source bytes into a Token stream. It tracks block
// indentation with a stack, the way libyaml's scanner does, but only
// supports the subset of YAML 1.1 grammar ENYAML templates exercise: block
// and flow mappings/sequences, plain/quoted/literal/folded scalars,
// anchors, aliases, tags, comments, and multi-document streams.
package libyaml

import (
	"strings"
)

type flowFrame struct {
	mapping bool
}

// Scanner produces a Token stream from YAML source text.
type Scanner struct {
	cur *scanner

	indents    []int
	flowLevel  int
	flowStack  []flowFrame
	started    bool
	done       bool
	queue      []Token
	atLineHead bool
}

// NewScanner creates a Scanner reading from src.
func NewScanner(src string) *Scanner {
	return &Scanner{cur: newScanner(src), indents: []int{-1}, atLineHead: true}
}

// Scan returns the next Token, or a STREAM_END token once exhausted.
func (s *Scanner) Scan() (Token, error) {
	if len(s.queue) == 0 {
		if err := s.fill(); err != nil {
			return Token{}, err
		}
	}
	tok := s.queue[0]
	s.queue = s.queue[1:]
	return tok, nil
}

func (s *Scanner) push(t Token) { s.queue = append(s.queue, t) }

// requeue puts back at the front of the queue the token a scan helper took
// off it through Scan, so every token fill pushed stays queued in order.
func (s *Scanner) requeue(tok Token, err error) error {
	if err != nil {
		return err
	}
	s.queue = append([]Token{tok}, s.queue...)
	return nil
}

func (s *Scanner) fill() error {
	if !s.started {
		s.started = true
		m := s.cur.mark()
		s.push(Token{Type: STREAM_START_TOKEN, StartMark: m, EndMark: m})
		return nil
	}
	if s.done {
		m := s.cur.mark()
		s.push(Token{Type: STREAM_END_TOKEN, StartMark: m, EndMark: m})
		return nil
	}

	for {
		col := s.cur.skipToContent()
		if col < 0 {
			for len(s.indents) > 1 {
				s.indents = s.indents[:len(s.indents)-1]
				m := s.cur.mark()
				s.push(Token{Type: BLOCK_END_TOKEN, StartMark: m, EndMark: m})
			}
			s.done = true
			m := s.cur.mark()
			s.push(Token{Type: STREAM_END_TOKEN, StartMark: m, EndMark: m})
			return nil
		}

		if s.flowLevel == 0 {
			if strings.HasPrefix(s.cur.src[s.cur.pos:], "---") && (col == 0) && isDocMarkerBoundary(s.cur, 3) {
				s.popIndentsTo(-1)
				start := s.cur.mark()
				s.cur.pos += 3
				s.cur.column += 3
				s.push(Token{Type: DOCUMENT_START_TOKEN, StartMark: start, EndMark: s.cur.mark()})
				return nil
			}
			if strings.HasPrefix(s.cur.src[s.cur.pos:], "...") && (col == 0) && isDocMarkerBoundary(s.cur, 3) {
				s.popIndentsTo(-1)
				start := s.cur.mark()
				s.cur.pos += 3
				s.cur.column += 3
				s.push(Token{Type: DOCUMENT_END_TOKEN, StartMark: start, EndMark: s.cur.mark()})
				return nil
			}
		}

		if s.flowLevel == 0 {
			s.popIndentsBelow(col)
		}

		c := s.cur.peek()
		switch {
		case c == '[' || c == '{':
			mapping := c == '{'
			start := s.cur.mark()
			s.cur.advance()
			s.flowLevel++
			s.flowStack = append(s.flowStack, flowFrame{mapping: mapping})
			typ := FLOW_SEQUENCE_START_TOKEN
			if mapping {
				typ = FLOW_MAPPING_START_TOKEN
			}
			s.push(Token{Type: typ, StartMark: start, EndMark: s.cur.mark()})
			return nil
		case c == ']' || c == '}':
			start := s.cur.mark()
			s.cur.advance()
			if s.flowLevel > 0 {
				s.flowLevel--
				s.flowStack = s.flowStack[:len(s.flowStack)-1]
			}
			typ := FLOW_SEQUENCE_END_TOKEN
			if c == '}' {
				typ = FLOW_MAPPING_END_TOKEN
			}
			s.push(Token{Type: typ, StartMark: start, EndMark: s.cur.mark()})
			return nil
		case c == ',':
			start := s.cur.mark()
			s.cur.advance()
			s.push(Token{Type: FLOW_ENTRY_TOKEN, StartMark: start, EndMark: s.cur.mark()})
			return nil
		case c == '-' && isBlockEntryIndicator(s.cur):
			if s.flowLevel == 0 {
				s.openIndent(col, false)
			}
			start := s.cur.mark()
			s.cur.advance()
			s.push(Token{Type: BLOCK_ENTRY_TOKEN, StartMark: start, EndMark: s.cur.mark()})
			return nil
		case c == '?' && isKeyIndicator(s.cur):
			start := s.cur.mark()
			s.cur.advance()
			s.push(Token{Type: KEY_TOKEN, StartMark: start, EndMark: s.cur.mark()})
			return nil
		case c == ':' && isValueIndicator(s.cur):
			start := s.cur.mark()
			s.cur.advance()
			s.push(Token{Type: VALUE_TOKEN, StartMark: start, EndMark: s.cur.mark()})
			return nil
		case c == '&' || c == '*':
			return s.requeue(s.scanAnchorOrAlias())
		case c == '!':
			return s.requeue(s.scanTag())
		case c == '\'':
			return s.requeue(s.scanQuotedScalar('\''))
		case c == '"':
			return s.requeue(s.scanQuotedScalar('"'))
		case c == '|' || c == '>':
			return s.requeue(s.scanBlockScalar())
		default:
			if s.flowLevel == 0 && s.looksLikeMappingKey() {
				s.openIndent(col, true)
			}
			return s.requeue(s.scanPlainScalar())
		}
	}
}

func isDocMarkerBoundary(c *scanner, n int) bool {
	b := c.peekAt(n)
	return b == 0 || b == ' ' || b == '\n' || b == '\r'
}

func isBlockEntryIndicator(c *scanner) bool {
	b := c.peekAt(1)
	return b == 0 || b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

func isKeyIndicator(c *scanner) bool {
	b := c.peekAt(1)
	return b == 0 || b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

func isValueIndicator(c *scanner) bool {
	b := c.peekAt(1)
	return b == 0 || b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

func (s *Scanner) openIndent(col int, mapping bool) {
	top := s.indents[len(s.indents)-1]
	if col > top {
		s.indents = append(s.indents, col)
		start := s.cur.mark()
		typ := BLOCK_SEQUENCE_START_TOKEN
		if mapping {
			typ = BLOCK_MAPPING_START_TOKEN
		}
		s.push(Token{Type: typ, StartMark: start, EndMark: start})
	}
}

func (s *Scanner) popIndentsBelow(col int) {
	for len(s.indents) > 1 && s.indents[len(s.indents)-1] > col {
		s.indents = s.indents[:len(s.indents)-1]
		m := s.cur.mark()
		s.push(Token{Type: BLOCK_END_TOKEN, StartMark: m, EndMark: m})
	}
}

func (s *Scanner) popIndentsTo(col int) {
	for len(s.indents) > 1 {
		s.indents = s.indents[:len(s.indents)-1]
		m := s.cur.mark()
		s.push(Token{Type: BLOCK_END_TOKEN, StartMark: m, EndMark: m})
	}
}

// looksLikeMappingKey scans ahead on the current line (respecting quotes
// and nested flow) to see whether it contains a top-level ": " or a
// trailing ':' before the newline, which marks this line as a block
// mapping key rather than a plain scalar/sequence entry.
func (s *Scanner) looksLikeMappingKey() bool {
	src := s.cur.src
	i := s.cur.pos
	depth := 0
	inSingle, inDouble := false, false
	for i < len(src) {
		c := src[i]
		switch {
		case inSingle:
			if c == '\'' {
				inSingle = false
			}
		case inDouble:
			if c == '\\' {
				i++
			} else if c == '"' {
				inDouble = false
			}
		case c == '\'':
			inSingle = true
		case c == '"':
			inDouble = true
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			depth--
		case c == '#' && (i == s.cur.pos || src[i-1] == ' '):
			return false
		case c == '\n':
			return false
		case c == ':' && depth == 0:
			if i+1 >= len(src) || src[i+1] == ' ' || src[i+1] == '\t' || src[i+1] == '\n' {
				return true
			}
		}
		i++
	}
	return false
}

func (s *Scanner) scanAnchorOrAlias() (Token, error) {
	start := s.cur.mark()
	kind := s.cur.advance()
	begin := s.cur.pos
	for !s.cur.eof() && isPlainSafe(s.cur.peek(), s.flowLevel > 0) {
		s.cur.advance()
	}
	val := s.cur.src[begin:s.cur.pos]
	typ := ANCHOR_TOKEN
	if kind == '*' {
		typ = ALIAS_TOKEN
	}
	tok := Token{Type: typ, StartMark: start, EndMark: s.cur.mark(), Value: []byte(val)}
	s.push(tok)
	return s.Scan()
}

func (s *Scanner) scanTag() (Token, error) {
	start := s.cur.mark()
	s.cur.advance() // '!'
	begin := s.cur.pos
	if !s.cur.eof() && s.cur.peek() == '<' {
		s.cur.advance()
		b2 := s.cur.pos
		for !s.cur.eof() && s.cur.peek() != '>' {
			s.cur.advance()
		}
		val := s.cur.src[b2:s.cur.pos]
		if !s.cur.eof() {
			s.cur.advance()
		}
		s.push(Token{Type: TAG_TOKEN, StartMark: start, EndMark: s.cur.mark(), Value: []byte(val)})
		return s.Scan()
	}
	handle := "!"
	if !s.cur.eof() && s.cur.peek() == '!' {
		s.cur.advance()
		handle = "!!"
	}
	for !s.cur.eof() && isPlainSafe(s.cur.peek(), s.flowLevel > 0) {
		s.cur.advance()
	}
	suffix := s.cur.src[begin+len(handle)-1 : s.cur.pos]
	tok := Token{Type: TAG_TOKEN, StartMark: start, EndMark: s.cur.mark(), Value: []byte(handle + suffix)}
	s.push(tok)
	return s.Scan()
}

func isPlainSafe(c byte, inFlow bool) bool {
	if c == 0 || c == ' ' || c == '\n' || c == '\r' || c == '\t' {
		return false
	}
	if inFlow && isFlowIndicator(c) {
		return false
	}
	switch c {
	case ':', '#', ',', '[', ']', '{', '}':
		return false
	}
	return true
}

func (s *Scanner) scanPlainScalar() (Token, error) {
	start := s.cur.mark()
	var b strings.Builder
	first := true
	for !s.cur.eof() {
		c := s.cur.peek()
		if c == '\n' {
			break
		}
		if c == '#' && (first || b.Len() == 0 || s.cur.peekAt(-1) == ' ') {
			break
		}
		if s.flowLevel > 0 && isFlowIndicator(c) {
			break
		}
		if c == ':' {
			nxt := s.cur.peekAt(1)
			if nxt == 0 || nxt == ' ' || nxt == '\n' || nxt == '\t' {
				break
			}
		}
		b.WriteByte(s.cur.advance())
		first = false
	}
	val := strings.TrimRight(b.String(), " \t")
	tok := Token{Type: SCALAR_TOKEN, Style: PLAIN_SCALAR_STYLE, StartMark: start, EndMark: s.cur.mark(), Value: []byte(val)}
	s.push(tok)
	return s.Scan()
}

func (s *Scanner) scanQuotedScalar(quote byte) (Token, error) {
	start := s.cur.mark()
	s.cur.advance()
	var b strings.Builder
	for !s.cur.eof() {
		c := s.cur.peek()
		if c == quote {
			s.cur.advance()
			if quote == '\'' && s.cur.peek() == '\'' {
				b.WriteByte('\'')
				s.cur.advance()
				continue
			}
			break
		}
		if quote == '"' && c == '\\' {
			s.cur.advance()
			e := s.cur.peek()
			switch e {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case '0':
				b.WriteByte(0)
			default:
				b.WriteByte('\\')
				b.WriteByte(e)
			}
			s.cur.advance()
			continue
		}
		b.WriteByte(s.cur.advance())
	}
	style := SINGLE_QUOTED_SCALAR_STYLE
	if quote == '"' {
		style = DOUBLE_QUOTED_SCALAR_STYLE
	}
	tok := Token{Type: SCALAR_TOKEN, Style: style, StartMark: start, EndMark: s.cur.mark(), Value: []byte(b.String())}
	s.push(tok)
	return s.Scan()
}

func (s *Scanner) scanBlockScalar() (Token, error) {
	start := s.cur.mark()
	folded := s.cur.peek() == '>'
	s.cur.advance()
	chomp := byte(0)
	if s.cur.peek() == '-' || s.cur.peek() == '+' {
		chomp = s.cur.advance()
	}
	// consume rest of header line
	for !s.cur.eof() && s.cur.peek() != '\n' {
		s.cur.advance()
	}
	if !s.cur.eof() {
		s.cur.advance()
	}
	baseIndent := -1
	var lines []string
	for !s.cur.eof() {
		lineStart := s.cur.pos
		col := 0
		for !s.cur.eof() && s.cur.peek() == ' ' {
			s.cur.advance()
			col++
		}
		if s.cur.eof() || s.cur.peek() == '\n' {
			lines = append(lines, "")
			if !s.cur.eof() {
				s.cur.advance()
			}
			continue
		}
		if baseIndent < 0 {
			baseIndent = col
		}
		if col < baseIndent {
			s.cur.pos = lineStart
			s.cur.column = 0
			break
		}
		rest := s.cur.restToEOL()
		lines = append(lines, rest)
		s.cur.pos += len(rest)
		s.cur.column += len(rest)
		if !s.cur.eof() {
			s.cur.advance()
		}
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		if chomp == '+' {
			break
		}
		lines = lines[:len(lines)-1]
	}
	var body string
	if folded {
		body = strings.Join(lines, " ")
	} else {
		body = strings.Join(lines, "\n")
	}
	if chomp != '-' && len(lines) > 0 {
		body += "\n"
	}
	style := LITERAL_SCALAR_STYLE
	if folded {
		style = FOLDED_SCALAR_STYLE
	}
	tok := Token{Type: SCALAR_TOKEN, Style: style, StartMark: start, EndMark: s.cur.mark(), Value: []byte(body)}
	s.push(tok)
	return s.Scan()
}
