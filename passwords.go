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
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/forensicanalysis/stealerlogs/golex"
	"github.com/forensicanalysis/stealerlogs/goparse"
)

// The password files implement the following grammar. The soft, host, user
// and password lines can appear in any relative order and any of them can be
// absent, so the engine keeps a shrinking set of active rules instead of a
// fixed production.
//
//	passwords        : NEWLINE
//	                 | user_block
//	                 | seller_block
//	                 | header_line
//	user_block       : soft_line host_line user_line password_line
//	soft_line        : SOFT_PREFIX SPACE entry NEWLINE
//	                 | soft_line profile_line NEWLINE
//	                 | SOFT_NO_PREFIX NEWLINE
//	host_line        : HOST_PREFIX SPACE entry NEWLINE
//	user_line        : USER_PREFIX SPACE entry NEWLINE
//	password_line    : PASSWORD_PREFIX SPACE entry NEWLINE
//	                 | PASSWORD_PREFIX SPACE multiline_entry NEWLINE

// passwordsBrowserPattern retrieves a browser name from a password file's
// name, e.g. "Passwords[Chrome]_default.txt". Only the bracketed form carries
// a name; the other alternatives just recognize well-known file names.
var passwordsBrowserPattern = regexp.MustCompile(
	`(?i)\bPasswords\[([A-Za-z0-9_ ]+)\]\S+\.txt\b` +
		`|(?i)\b(unique|recovered|browser|firefox|chrome|opera|edge|brave|all)(\s|-|_)passwords\.txt\b` +
		`|(?i)\baccounts\.txt\b` +
		`|(?i)passwords\.txt\b`)

// specialSoftPattern matches the unprefixed `["Browser" = "Profile"]` form.
var specialSoftPattern = regexp.MustCompile(`\["(\S+)" = "(\S+)"\]`)

// GrammarError reports tokens the password grammar could not account for.
// It is fatal to the affected file's parse; sibling files are unaffected.
type GrammarError struct {
	Token    golex.Token
	Position int
	Size     int
	Tokens   []golex.Token
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("unexpected token %q (%s) at position %d/%d",
		e.Token.Value, e.Token.Type, e.Position, e.Size)
}

// Dump renders the full token sequence for error logs.
func (e *GrammarError) Dump() string {
	dump, err := json.MarshalIndent(e.Tokens, "", "    ")
	if err != nil {
		return ""
	}
	return string(dump)
}

// credentialRule is one line rule of the user block: a label, a matcher and
// the mutation it applies to the credential under construction.
type credentialRule struct {
	name  string
	parse func(parser *goparse.Parser, credential *Credential) bool
}

func activeCredentialRules() []credentialRule {
	return []credentialRule{
		{name: "software", parse: parseSoftwareLine},
		{name: "host", parse: parseHostLine},
		{name: "user", parse: parseUserLine},
		{name: "password", parse: parsePasswordLine},
	}
}

// getBrowserName retrieves a browser name from the password file's name, used
// as fallback when no software line appeared in the text.
func getBrowserName(filename string) string {
	matched := passwordsBrowserPattern.FindStringSubmatch(filename)
	if matched == nil {
		return ""
	}
	return matched[1]
}

// skipProfileLine skips a web browser's profile sub-line following a software
// line.
//
//	profile_line : 'profile:' SPACE WORD
func skipProfileLine(parser *goparse.Parser) {
	if _, ok := parser.EatValue(golex.Word, "profile:"); !ok {
		return
	}
	for eatWordOrSpace(parser) {
	}
}

// parseSoftwareLine parses software data (web browser, email client).
func parseSoftwareLine(parser *goparse.Parser, credential *Credential) bool {
	if _, ok := parser.Eat(golex.SoftPrefix); ok {
		if _, ok := parser.Eat(golex.Space); ok {
			if entry, ok := parseEntry(parser); ok {
				credential.Software = &entry
			}
		}

		parser.Eat(golex.Newline)
		skipProfileLine(parser)
		return true
	}

	software, ok := parser.Eat(golex.SoftNoPrefix)
	if !ok {
		return false
	}

	if matched := specialSoftPattern.FindStringSubmatch(software.Value); matched != nil {
		name := matched[1] + " " + matched[2]
		credential.Software = &name
		parser.Eat(golex.Newline)
		return true
	}

	_ = parser.SetPosition(parser.Position() - 1)
	return false
}

// parseHostLine parses the website visited when the data was stolen and
// derives the domain name from it.
func parseHostLine(parser *goparse.Parser, credential *Credential) bool {
	if _, ok := parser.Eat(golex.HostPrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			credential.Host = &entry
		}
		extractCredentialDomain(credential)
	}

	parser.Eat(golex.Newline)
	return true
}

// parseUserLine parses the username or email address.
func parseUserLine(parser *goparse.Parser, credential *Credential) bool {
	if _, ok := parser.Eat(golex.UserPrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			credential.Username = &entry
		}
		splitCredentialEmail(credential)
	}

	parser.Eat(golex.Newline)
	return true
}

// parsePasswordLine parses the password. Android credentials are the special
// case: their passwords span several lines, so when the entry fails to stop
// at a newline and the host is an android:// pseudo URL, the cursor is
// restored to the saved checkpoint and the entry is re-parsed as a multiline,
// often base64 encoded value.
func parsePasswordLine(parser *goparse.Parser, credential *Credential) bool {
	if _, ok := parser.Eat(golex.PasswordPrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		checkpoint := parser.Position()
		password, found := parseEntry(parser)

		_, atNewline := parser.Eat(golex.Newline)
		if !atNewline {
			if _, nextWord := parser.Eat(golex.Word); nextWord &&
				credential.Host != nil && strings.HasPrefix(*credential.Host, "android://") {
				_ = parser.SetPosition(checkpoint)
				password, found = parseMultilineEntry(parser)
			}
		}

		if found {
			credential.Password = &password
		}
	}

	return true
}

// parseCredentialLine tries each remaining rule in order and applies the
// first that matches, removing it from the active set: each field is consumed
// at most once per block. Trailing blank and space tokens are skipped after a
// match.
func parseCredentialLine(rules *[]credentialRule, parser *goparse.Parser, credential *Credential) bool {
	for i, rule := range *rules {
		if !rule.parse(parser, credential) {
			continue
		}

		*rules = append((*rules)[:i], (*rules)[i+1:]...)
		for {
			if _, ok := parser.Eat(golex.Newline); ok {
				continue
			}
			if _, ok := parser.Eat(golex.Space); ok {
				continue
			}
			break
		}
		return true
	}

	return false
}

// parseUserBlock parses one user block into a credential, in any line order.
// A block that produced data is always accepted. An empty block is accepted
// if at least 3 of the 4 rules matched: such blocks are grammatically correct
// but carry no values ("Soft: \nHost: \nUser: \nPassword:\n"). Anything short
// of that is a grammar violation.
func parseUserBlock(parser *goparse.Parser, filename string, output *[]*Credential) bool {
	credential := &Credential{}
	rules := activeCredentialRules()

	for parseCredentialLine(&rules, parser, credential) {
	}

	if !isEmpty(credential) {
		// If the software was not found in the text, fall back to the
		// file name.
		if hasRule(rules, "software") {
			if name := getBrowserName(filename); name != "" {
				credential.Software = &name
			}
		}

		credential.Filepath = &filename
		normalizeCredentialText(credential)
		*output = append(*output, credential)
		return true
	}

	return len(rules) < 2
}

func hasRule(rules []credentialRule, name string) bool {
	for _, rule := range rules {
		if rule.name == name {
			return true
		}
	}
	return false
}

// ParsePasswords parses a stealer log password file into credentials. Banner
// noise, blank lines and seller blocks are skipped without error. Leftover
// tokens not accounted for by any production are a fatal grammar violation
// for this file.
func ParsePasswords(filename, text string) ([]*Credential, error) {
	tokens, err := golex.TokenizePasswords(text)
	if err != nil {
		return nil, err
	}

	parser := goparse.NewParser(tokens)
	var output []*Credential
	parsedSeller := false

	for parser.Position() < parser.Size() {
		if !parsedSeller {
			parsedSeller = skipSellerBlock(parser)
		}

		if _, ok := parser.Eat(golex.Newline); ok {
			continue
		}
		if skipHeaderLine(parser) {
			continue
		}
		if parseUserBlock(parser, filename, &output) {
			continue
		}
		break
	}

	if parser.Position() != parser.Size() {
		token, _ := parser.Current()
		return nil, &GrammarError{
			Token:    token,
			Position: parser.Position(),
			Size:     parser.Size(),
			Tokens:   parser.Tokens(),
		}
	}

	return output, nil
}
