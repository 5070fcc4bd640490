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
	"regexp"
	"strings"

	"github.com/forensicanalysis/stealerlogs/golex"
	"github.com/forensicanalysis/stealerlogs/goparse"
)

// The system information files are parsed far more permissively than the
// password files: every field line appears at most once, the lines are order
// free and unrecognized lines are skipped on purpose instead of raising a
// grammar error.
//
//	information : uid_line | computer_line | hwid_line | user_line
//	            | ip_line | country_line | log_date_line

// ipOnlyPattern extracts a bare address from dedicated IP files.
var ipOnlyPattern = regexp.MustCompile(`(?i)\b(ip(address)?)\b: ?(\S+)`)

// RetrieveIPOnly extracts the machine's IP address from a dedicated IP file
// and merges it into the system data.
func RetrieveIPOnly(text string, systemData *SystemData) {
	matched := ipOnlyPattern.FindStringSubmatch(text)
	if matched == nil || matched[3] == "" {
		return
	}

	if systemData.System == nil {
		systemData.System = &System{}
	}
	systemData.System.IPAddress = &matched[3]
}

func parseUIDLine(parser *goparse.Parser, system *System) bool {
	if _, ok := parser.Eat(golex.UIDPrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			system.MachineID = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

func parseComputerLine(parser *goparse.Parser, system *System) bool {
	if _, ok := parser.Eat(golex.ComputerNamePrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			system.ComputerName = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

func parseHWIDLine(parser *goparse.Parser, system *System) bool {
	if _, ok := parser.Eat(golex.HWIDPrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			system.HardwareID = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

func parseMachineUserLine(parser *goparse.Parser, system *System) bool {
	if _, ok := parser.Eat(golex.UsernamePrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			system.MachineUser = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

// parseIPLine parses the machine's IP address. An explicit "IP:" always
// assigns; a "LANIP:" value is discarded once an address is already known,
// the cursor still advancing past it.
func parseIPLine(parser *goparse.Parser, system *System) bool {
	ipToken, ok := parser.Eat(golex.IPPrefix)
	if !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		prefix := strings.TrimSuffix(strings.ToLower(ipToken.Value), ":")
		if prefix == "lanip" && system.IPAddress != nil {
			parser.Advance() // Prefer IP over LANIP.
		} else if entry, ok := parseEntry(parser); ok {
			system.IPAddress = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

func parseCountryLine(parser *goparse.Parser, system *System) bool {
	if _, ok := parser.Eat(golex.CountryPrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			system.Country = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

func parseLogDateLine(parser *goparse.Parser, system *System) bool {
	if _, ok := parser.Eat(golex.LogDatePrefix); !ok {
		return false
	}

	if _, ok := parser.Eat(golex.Space); ok {
		if entry, ok := parseEntry(parser); ok {
			system.LogDate = &entry
		}
	}

	parser.Eat(golex.Newline)
	return true
}

// ParseSystem parses a system information file into one System record. The
// dispatch goes by the current token's type directly to the field rule;
// anything unrecognized advances one token. A record with every field unset
// is discarded and nil is returned.
func ParseSystem(filename, text string) (*System, error) {
	tokens, err := golex.TokenizeSystem(text)
	if err != nil {
		return nil, err
	}

	parser := goparse.NewParser(tokens)
	system := &System{}

	for parser.Position() < parser.Size() {
		token, err := parser.Current()
		if err != nil {
			break
		}

		switch token.Type {
		case golex.UIDPrefix:
			parseUIDLine(parser, system)
		case golex.ComputerNamePrefix:
			parseComputerLine(parser, system)
		case golex.HWIDPrefix:
			parseHWIDLine(parser, system)
		case golex.UsernamePrefix:
			parseMachineUserLine(parser, system)
		case golex.IPPrefix:
			parseIPLine(parser, system)
		case golex.CountryPrefix:
			parseCountryLine(parser, system)
		case golex.LogDatePrefix:
			parseLogDateLine(parser, system)
		default:
			parser.Advance()
		}
	}

	if isEmpty(system) {
		return nil, nil
	}

	return system, nil
}
