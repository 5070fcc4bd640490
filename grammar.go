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

package stealerlogs

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/forensicanalysis/stealerlogs/golex"
	"github.com/forensicanalysis/stealerlogs/goparse"
)

// parseEntry concatenates words and spaces until the end of the line.
//
//	entry : WORD
//	      | entry SPACE WORD
//
// The terminating token is consumed as well. A valid entry can be absent, in
// which case ok is false.
func parseEntry(parser *goparse.Parser) (string, bool) {
	var entry strings.Builder

	for parser.Position() < parser.Size() {
		token, err := parser.Current()
		parser.Advance()

		if err != nil || (token.Type != golex.Word && token.Type != golex.Space) {
			break
		}

		entry.WriteString(token.Value)
	}

	return entry.String(), entry.Len() > 0
}

// parseMultilineEntry concatenates words across newlines. Such entries are
// often base64 encoded, so decoding is attempted; the decoded, newline
// stripped form is kept on success, the raw joined text otherwise.
//
//	multiline_entry : WORD
//	                | multiline_entry NEWLINE WORD
func parseMultilineEntry(parser *goparse.Parser) (string, bool) {
	var entry strings.Builder

	for parser.Position() < parser.Size() {
		token, ok := parser.Eat(golex.Word)
		if !ok {
			if _, ok = parser.Eat(golex.Newline); !ok {
				break
			}
			continue
		}

		entry.WriteString(token.Value)
	}

	if entry.Len() == 0 {
		return "", false
	}

	joined := entry.String()
	if decoded, err := base64.StdEncoding.DecodeString(joined); err == nil && utf8.Valid(decoded) {
		return strings.ReplaceAll(string(decoded), "\n", ""), true
	}

	return joined, true
}

// skipHeaderLine skips ASCII art banners and other irrelevant data such as
// separators. Header noise is a run of words and spaces ending at a newline
// with no recognized prefix in it.
//
//	header_line : WORD NEWLINE
//	            | SPACE NEWLINE
//	            | WORD header_line
func skipHeaderLine(parser *goparse.Parser) bool {
	if !eatWordOrSpace(parser) {
		return false
	}

	for eatWordOrSpace(parser) {
	}

	_, ok := parser.Eat(golex.Newline)
	return ok
}

// skipSellerBlock skips seller and advertisement information: a seller
// prefixed line, optionally followed by host lines.
//
//	seller_block : SELLER_PREFIX SPACE entry
//	             | host_line
//	             | seller_block NEWLINE
func skipSellerBlock(parser *goparse.Parser) bool {
	if _, ok := parser.Eat(golex.SellerPrefix); !ok {
		return false
	}

	for {
		if _, ok := parser.Eat(golex.Space); ok {
			parseEntry(parser)
		}
		parser.Eat(golex.Newline)

		if _, ok := parser.Eat(golex.SellerPrefix); ok {
			continue
		}
		if _, ok := parser.Eat(golex.HostPrefix); ok {
			continue
		}
		return true
	}
}

func eatWordOrSpace(parser *goparse.Parser) bool {
	if _, ok := parser.Eat(golex.Word); ok {
		return true
	}
	_, ok := parser.Eat(golex.Space)
	return ok
}
