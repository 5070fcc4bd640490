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

package golex

// passwordRules is the passwords dialect. Keyword prefixes include the leet
// spellings ("UR1:", "U53RN4M3:", "P455W0RD:") used by some stealers to dodge
// naive greps. "USER LOGIN:" falls through to UserPrefix and "USER PASSWORD:"
// to PasswordPrefix because the bare "user" alternative requires the colon to
// follow immediately.
var passwordRules = []Rule{
	newRule(SoftPrefix, `\b(soft|browser|application|storage)\b:`),
	newRule(SoftNoPrefix, `\["(\S+)" = "(\S+)"\]`),
	newRule(HostPrefix, `\b(host(name)?|url|ur1)\b:`),
	newRule(UserPrefix, `\b(user login|user(name)?|login|u53rn4m3)\b:`),
	newRule(PasswordPrefix, `\b(user password|pass(word)?|p455w0rd)\b:`),
	newRule(SellerPrefix, `\b(seller|log tools|free logs)\b:`),
	newRule(Word, `\S+`),
	newRule(Newline, `\n+`),
	newRule(Space, ` +`),
}

// systemRules is the system information dialect. OtherPrefix captures labels
// that would otherwise be misread as field prefixes ("Current User:" is not a
// username). IPPrefix keeps "IP:" and "LANIP:" in one token type; the value
// tells them apart.
var systemRules = []Rule{
	newRule(OtherPrefix, `\b(user agents|installed apps|current user|process list)\b:`),
	newRule(UIDPrefix, `\b(uid|machineid)\b:`),
	newRule(ComputerNamePrefix, `\b((computer( ?name)?)|pc name|hostname|machinename|pc|computernamednshostname)\b:`),
	newRule(HWIDPrefix, `\b(hwid)\b:`),
	newRule(UsernamePrefix, `\b((user( ?name)?)|username)\b:`),
	newRule(IPPrefix, `\b((ip( ?address)?)|lanip)\b:`),
	newRule(CountryPrefix, `\b((country( code)?)|location)\b:`),
	newRule(LogDatePrefix, `\b(log date|last seen|install date|(local( ?time)?))\b:`),
	newRule(Word, `\S+`),
	newRule(Newline, `\n+`),
	newRule(Space, ` +`),
}

// TokenizePasswords tokenizes a passwords file.
func TokenizePasswords(text string) ([]Token, error) {
	return Tokenize(text, passwordRules)
}

// TokenizeSystem tokenizes a system information file.
func TokenizeSystem(text string) ([]Token, error) {
	return Tokenize(text, systemRules)
}
