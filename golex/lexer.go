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

// Package golex tokenizes the plaintext files found in infostealer log
// archives. Stealer logs have no fixed schema, so the lexer classifies text
// with a prioritized list of case-insensitive rules: keyword prefixes such as
// "Host:" or "Password:" are tried before the catch-all WORD rule, and
// newlines and space runs are kept as explicit tokens because the grammars
// built on top are line structured.
package golex

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenType is the lexical category of a token.
type TokenType string

// Token types shared by both dialects.
const (
	Word    TokenType = "WORD"
	Newline TokenType = "NEWLINE"
	Space   TokenType = "SPACE"
)

// Token types of the passwords dialect.
const (
	SoftPrefix     TokenType = "SOFT_PREFIX"
	SoftNoPrefix   TokenType = "SOFT_NO_PREFIX"
	HostPrefix     TokenType = "HOST_PREFIX"
	UserPrefix     TokenType = "USER_PREFIX"
	PasswordPrefix TokenType = "PASSWORD_PREFIX"
	SellerPrefix   TokenType = "SELLER_PREFIX"
)

// Token types of the system information dialect. IPPrefix covers both "IP:"
// and "LANIP:"; the parser applies the precedence between them.
const (
	OtherPrefix        TokenType = "OTHER_PREFIX"
	UIDPrefix          TokenType = "UID_PREFIX"
	ComputerNamePrefix TokenType = "COMPUTER_NAME_PREFIX"
	HWIDPrefix         TokenType = "HWID_PREFIX"
	UsernamePrefix     TokenType = "USERNAME_PREFIX"
	IPPrefix           TokenType = "IP_PREFIX"
	CountryPrefix      TokenType = "COUNTRY_PREFIX"
	LogDatePrefix      TokenType = "LOG_DATE_PREFIX"
)

// Token is a single classified lexical unit. Pos is the byte offset of the
// token in the tokenized text.
type Token struct {
	Type  TokenType `json:"type"`
	Value string    `json:"value"`
	Pos   int       `json:"pos"`
}

// Rule binds a token type to its pattern. The pattern is anchored and matched
// against the remaining text, so rule order is the matching priority.
type Rule struct {
	Type    TokenType
	pattern *regexp.Regexp
}

func newRule(t TokenType, expr string) Rule {
	return Rule{Type: t, pattern: regexp.MustCompile(`^(?i)` + expr)}
}

// LexicalError reports a character no rule recognizes. It aborts the
// tokenization of the affected file only.
type LexicalError struct {
	Char rune
	Pos  int
	Line string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("illegal character %q at index %d: %q", e.Char, e.Pos, e.Line)
}

// Tokenize scans text with the given dialect rules and returns the fully
// materialized token sequence. The grammars backtrack, so tokens are produced
// in bulk rather than streamed. Tab and carriage return are ignored, which
// collapses CRLF line endings to LF.
func Tokenize(text string, rules []Rule) ([]Token, error) {
	var tokens []Token

	pos := 0
	for pos < len(text) {
		if text[pos] == '\t' || text[pos] == '\r' {
			pos++
			continue
		}

		matched := false
		for _, rule := range rules {
			loc := rule.pattern.FindStringIndex(text[pos:])
			if loc == nil {
				continue
			}

			tokens = append(tokens, Token{
				Type:  rule.Type,
				Value: text[pos : pos+loc[1]],
				Pos:   pos,
			})
			pos += loc[1]
			matched = true
			break
		}

		if !matched {
			return nil, &LexicalError{
				Char: rune(text[pos]),
				Pos:  pos,
				Line: offendingLine(text[pos:]),
			}
		}
	}

	return tokens, nil
}

// offendingLine returns the text from the illegal character up to the next
// line break, for error reporting.
func offendingLine(rest string) string {
	if i := strings.IndexByte(rest, '\n'); i > 0 {
		return rest[:i]
	}
	return rest
}
