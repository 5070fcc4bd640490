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

// Package stealerlogs extracts structured credential and machine identity
// records from the plaintext files bundled inside infostealer log archives.
//
// Stealer logs are attacker-produced text with no fixed schema: fields are
// reordered, missing, spread over several lines or base64 encoded, and the
// files are padded with ASCII art banners and seller advertisements. The
// package therefore parses with a tolerant, order-insensitive line grammar
// instead of a fixed format:
//   - golex tokenizes each file with a prioritized, case-insensitive rule set
//   - goparse provides the backtrackable cursor under the grammar engines
//   - the password and system grammar engines turn tokens into Credential
//     and System records
//   - the processing layer groups archive entries by compromised machine
//     directory and merges each group into one SystemData
//
// Processing one archive yields a Leak: the ordered list of compromised
// systems with their credentials, the harvesting stealer family attached
// where a signature was found.
package stealerlogs
