// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// The precedence-climbing expression parser (spec §4.5, §9), ported from
// enyaml.expr.parser.Parser.

package expr

import "fmt"

// Parser turns a Lexer's token stream into an Expr tree.
type Parser struct {
	lexer  *Lexer
	src    string
	tok    *Token
	have   bool
	lexErr error
}

// NewParser creates a Parser reading tokens from src.
func NewParser(src string) *Parser {
	return &Parser{lexer: NewLexer(src), src: src}
}

// Parse parses src as a single expression, ported from Parser.get_expr:
// it requires the entire input be consumed by one expression.
func Parse(src string) (*Expr, error) {
	p := NewParser(src)
	e, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if p.checkToken() {
		return nil, p.syntaxError("expecting single expression")
	}
	return e, nil
}

func (p *Parser) syntaxError(msg string) error {
	offset := len(p.src)
	if p.tok != nil {
		offset = p.tok.StartPos
	}
	return &SyntaxError{Message: msg, Offset: offset, Text: p.src}
}

// checkToken ensures a token is buffered (fetching one if necessary) and
// reports whether one is available.
func (p *Parser) checkToken() bool {
	if !p.have {
		tok, err := p.lexer.Next()
		p.lexErr = err
		p.tok = tok
		p.have = true
	}
	return p.tok != nil
}

// peekToken returns the buffered token without consuming it.
func (p *Parser) peekToken() (*Token, error) {
	if p.checkToken() {
		return p.tok, p.lexErr
	}
	return nil, p.lexErr
}

// getToken consumes and returns the buffered token.
func (p *Parser) getToken() *Token {
	if p.checkToken() {
		t := p.tok
		p.tok = nil
		p.have = false
		return t
	}
	return nil
}

// ParseExpr parses a single expression at the top precedence level.
func (p *Parser) ParseExpr() (*Expr, error) {
	return p.getSubExpr(0)
}

func (p *Parser) getSubExpr(precedence int) (*Expr, error) {
	lhs, err := p.handleHead()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.peekToken()
		if err != nil {
			return nil, err
		}
		if lookupPrecedence(tok) <= precedence {
			break
		}
		lhs, err = p.handleTail(lhs)
		if err != nil {
			return nil, err
		}
	}
	if lhs == nil {
		return nil, p.syntaxError("expecting expression")
	}
	return lhs, nil
}

func (p *Parser) handleHead() (*Expr, error) {
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	switch tok.Kind {
	case TokIdent, TokNumber, TokString:
		return p.handleLiteral()
	case TokOp:
		return p.handleUnaryOp()
	case TokOpenParen:
		return p.handleParen()
	case TokCloseParen:
		return nil, p.syntaxError("closing parenthesis without opening")
	}
	return nil, nil
}

func (p *Parser) handleTail(lhs *Expr) (*Expr, error) {
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return lhs, nil
	}
	switch tok.Kind {
	case TokIdent, TokNumber, TokString:
		return p.handleLiteral()
	case TokOp:
		if _, isTernary := ternaryPrecedence[tok.Value]; isTernary {
			return p.handleTernaryOp(lhs)
		}
		return p.handleBinaryOp(lhs)
	case TokOpenParen:
		return p.handleParen()
	}
	return lhs, nil
}

func (p *Parser) handleParen() (*Expr, error) {
	p.getToken() // consume '('
	expr, err := p.getSubExpr(0)
	if err != nil {
		return nil, err
	}
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.Kind != TokCloseParen {
		return nil, p.syntaxError("expecting closing parenthesis")
	}
	p.getToken()
	return expr, nil
}

func (p *Parser) handleLiteral() (*Expr, error) {
	tok := p.getToken()
	switch tok.Kind {
	case TokNumber:
		return newNumber(tok.Value)
	case TokString:
		return &Expr{Kind: KindString, Text: tok.Value}, nil
	case TokIdent:
		return &Expr{Kind: KindIdent, Text: tok.Value}, nil
	}
	return nil, fmt.Errorf("expr: internal error: handleLiteral saw %v", tok.Kind)
}

func (p *Parser) handleUnaryOp() (*Expr, error) {
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	prec, ok := unaryPrecedence[tok.Value]
	if !ok {
		return nil, p.syntaxError("not a unary operator")
	}
	p.getToken()
	rhs, err := p.getSubExpr(prec)
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: KindUnary, Op: tok.Value, Rhs: rhs}, nil
}

func (p *Parser) handleBinaryOp(lhs *Expr) (*Expr, error) {
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	op := tok.Value
	if op == "not" {
		// "not in": the only binary use of a word that's otherwise a
		// unary-only operator.
		p.getToken()
		next, err := p.peekToken()
		if err != nil {
			return nil, err
		}
		if next == nil || next.Kind != TokOp || next.Value != "in" {
			return nil, p.syntaxError("expecting in")
		}
		p.getToken()
		op = "not in"
	} else {
		p.getToken()
	}
	prec, ok := binaryPrecedence[op]
	if !ok {
		return nil, p.syntaxError("not a binary operator")
	}
	if op == "." {
		next, err := p.peekToken()
		if err != nil {
			return nil, err
		}
		if next == nil || next.Kind != TokIdent {
			return nil, p.syntaxError("expecting identifier")
		}
	}
	rhs, err := p.getSubExpr(prec)
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: KindBinary, Op: op, Lhs: lhs, Rhs: rhs}, nil
}

func (p *Parser) handleTernaryOp(lhs *Expr) (*Expr, error) {
	tok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	op := tok.Value
	prec, ok := ternaryPrecedence[op]
	if !ok {
		return nil, p.syntaxError("not a ternary operator")
	}
	p.getToken()
	mid, err := p.getSubExpr(prec)
	if err != nil {
		return nil, err
	}
	sepTok, err := p.peekToken()
	if err != nil {
		return nil, err
	}
	sep := ternarySep[op]
	if sepTok == nil || sepTok.Kind != TokOp || sepTok.Value != sep {
		return nil, p.syntaxError(fmt.Sprintf("expecting %s", sep))
	}
	p.getToken()
	rhs, err := p.getSubExpr(prec)
	if err != nil {
		return nil, err
	}
	return &Expr{Kind: KindTernary, Op: op, Lhs: lhs, Mid: mid, Rhs: rhs}, nil
}
