// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

// Package goparse provides a bounded, backtrackable cursor over a token
// sequence. It carries no knowledge of the stealer log grammars; all parsing
// policy lives in the grammar engines built on top of it.
package goparse

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/forensicanalysis/stealerlogs/golex"
)

// ErrOutOfRange is returned by Current when the cursor sits past the last
// token and by SetPosition for positions outside [0, size].
var ErrOutOfRange = errors.New("token position out of range")

// Parser is a cursor over a materialized token sequence with match-and-consume
// semantics. Backtracking is an explicit saved position that is later
// restored, never an implicit rewind.
type Parser struct {
	pos    int
	tokens []golex.Token
}

// NewParser creates a cursor over tokens, positioned at the first one.
func NewParser(tokens []golex.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Position returns the index of the current token. It is in [0, Size()];
// Size() means the whole sequence was consumed.
func (p *Parser) Position() int {
	return p.pos
}

// SetPosition moves the cursor. Positions outside [0, Size()] are rejected.
func (p *Parser) SetPosition(pos int) error {
	if pos < 0 || pos > len(p.tokens) {
		return errors.Wrap(ErrOutOfRange, fmt.Sprintf("position %d, size %d", pos, len(p.tokens)))
	}
	p.pos = pos
	return nil
}

// Size returns the token count.
func (p *Parser) Size() int {
	return len(p.tokens)
}

// Tokens returns the underlying token sequence, for error reporting.
func (p *Parser) Tokens() []golex.Token {
	return p.tokens
}

// Current returns the token under the cursor without consuming it.
func (p *Parser) Current() (golex.Token, error) {
	if p.pos >= len(p.tokens) {
		return golex.Token{}, ErrOutOfRange
	}
	return p.tokens[p.pos], nil
}

// Advance moves the cursor one token forward. Past the end it does nothing.
func (p *Parser) Advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// Eat consumes and returns the current token if it has the expected type.
// Otherwise the cursor is left unchanged and the second result is false.
func (p *Parser) Eat(expected golex.TokenType) (golex.Token, bool) {
	if p.pos >= len(p.tokens) {
		return golex.Token{}, false
	}

	token := p.tokens[p.pos]
	if token.Type != expected {
		return golex.Token{}, false
	}

	p.pos++
	return token, true
}

// EatValue consumes the current token only on an exact type and value match.
func (p *Parser) EatValue(expected golex.TokenType, value string) (golex.Token, bool) {
	if p.pos >= len(p.tokens) {
		return golex.Token{}, false
	}

	token := p.tokens[p.pos]
	if token.Type != expected || token.Value != value {
		return golex.Token{}, false
	}

	p.pos++
	return token, true
}
