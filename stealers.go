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
)

// StealerName identifies the malware family that harvested a log. The empty
// string means the family is unknown.
type StealerName string

// The handled stealer families.
const (
	RedLine StealerName = "redline"
	StealC  StealerName = "stealc"
	LummaC2 StealerName = "lummac2"
	Meta    StealerName = "meta"
	Raccoon StealerName = "raccoon"
	DcRat   StealerName = "dcrat"
	Aurora  StealerName = "aurora"
	Rise    StealerName = "rise"
	Arkei   StealerName = "arkei"
)

// stealerNamePattern finds a literal family name bounded by non-alphabetic
// characters. RedLine is listed first because it occurs the most.
var stealerNamePattern = regexp.MustCompile(`(?i)\b(redline|stealc|raccoon|lummac2)([^a-zA-Z]|\b)`)

// ASCII art banners some stealers leave in their credits files. They are the
// fallback when no family name appears in prose.

const arkeiHeader = "|========== Arkei Stealer ========|"

const riseHeader = "RiseProSUPPORT"

const auroraHeader = "███████║██║░░░██║██████╔╝██║░░██║██████╔╝███████║"

const dcRatHeader = "  ___           _      ___             _        _   ___    _ _____ \n" +
	" |   \\ __ _ _ _| |__  / __|_ _ _  _ __| |_ __ _| | | _ \\  /_\\_   _|\n" +
	" | |) / _` | '_| / / | (__| '_| || (_-<  _/ _` | | |   / / _ \\| |  \n" +
	" |___/\\__,_|_| |_\\_\\  \\___|_|  \\_, /__/\\__\\__,_|_| |_|_\\/_/ \\_\\_|  \n" +
	"                               |__/                                \n"

const metaHeader = `*              / \ / \ / \ / \                *
*             ( M | E | T | A )               *
*              \_/ \_/ \_/ \_/                *
`

const raccoonHeader = `░░░░░░░░░░░░░░░▄▄▄▄▄▄▄▄░░░░░░░░░░░░░░
░▄█▀███▄▄████████████████████▄▄███▀█░
░█░░▀████████████████████████████░░█░
░░█▄░░▀███████████████████████░░░░▄▀░
░░░▀█▄▄████▀▀▀░░░░██░░░▀▀▀████▄▄▄█▀░░
░░░▄███▀▀░░░░░░░░░██░░░░░░░░░▀███▄░░░
░░▄██▀░░░░░▄▄▄██▄▄██░▄██▄▄▄░░░░░▀██▄░
▄██▀░░░▄▄▄███▄██████████▄███▄▄▄░░░▀█▄
▀██▄▄██████████▀░███▀▀▀█████████▄▄▄█▀
░░▀██████████▀░░░███░░░▀███████████▀░
░░░░▀▀▀██████░░░█████▄░░▀██████▀▀░░░░
░░░░░░░░░▀▀▀▀▄░░█████▀░▄█▀▀▀░░░░░░░░░
░░░░░░░░░░░░░░▀▀▄▄▄▄▄▀▀░░░░░░░░░░░░░░
`

const redLineHeader = `*   ____  _____ ____  _     ___ _   _ _____   *
*  |  _ \| ____|  _ \| |   |_ _| \ | | ____|  *
*  | |_) |  _| | | | | |    | ||  \| |  _|    *
*  |  _ <| |___| |_| | |___ | || |\  | |___   *
*  |_| \_|_____|____/|_____|___|_| \_|_____|  *
`

// Some log aggregators strip backslashes from the banners, so the mangled
// RedLine variant is matched as well.
const redLineHeaderMalformed = `*   ____  _____ ____  _     ___ _   _ _____   *
*  |  _ | ____|  _ | |   |_ _|  | | ____|     *
*  | |_) |  _| | | | | |    | ||  | |  _|     *
*  |  _ <| |___| |_| | |___ | || |  | |___    *
*  |_| _|_____|____/|_____|___|_| _|_____|    *
`

const stealCHeader = ` ______     ______   ______     ______     __         ______
/\  ___\   /\__  _\ /\  ___\   /\  __ \   /\ \       /\  ___\
\ \___  \  \/_/\ \/ \ \  __\   \ \  __ \  \ \ \____  \ \ \____
 \/\_____\    \ \_\  \ \_____\  \ \_\ \_\  \ \_____\  \ \_____\
  \/_____/     \/_/   \/_____/   \/_/\/_/   \/_____/   \/_____/
`

var bannerSignatures = []struct {
	name   StealerName
	banner string
}{
	{RedLine, redLineHeader},
	{RedLine, redLineHeaderMalformed},
	{StealC, stealCHeader},
	{Meta, metaHeader},
	{Raccoon, raccoonHeader},
	{DcRat, dcRatHeader},
	{Arkei, arkeiHeader},
	{Rise, riseHeader},
	{Aurora, auroraHeader},
}

// SearchStealerName classifies the malware family from raw file text. The
// family name is searched in prose first, then the known banners are matched
// as exact substrings. It returns the empty string when nothing matches.
func SearchStealerName(text string) StealerName {
	if matched := stealerNamePattern.FindStringSubmatch(text); matched != nil {
		return StealerName(strings.ToLower(matched[1]))
	}

	cleanText := strings.ReplaceAll(text, "\r\n", "\n")

	for _, signature := range bannerSignatures {
		if strings.Contains(cleanText, signature.banner) {
			return signature.name
		}
	}

	return ""
}
