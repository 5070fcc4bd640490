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

// Package goarchive provides one common interface over the RAR, ZIP and 7-Zip
// containers stealer logs are traded in. The three formats differ in close
// and empty-file semantics, so every wrapper owns its own closed flag instead
// of inspecting library internals.
package goarchive

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Faults the processing core must tolerate without aborting the archive walk.
// ErrClosed only ends the walk early, keeping what was already collected.
var (
	ErrEntryNotFound     = errors.New("entry not found in archive")
	ErrClosed            = errors.New("archive is closed")
	ErrUnsupportedFormat = errors.New("unsupported archive format")
)

// Archive is the capability interface the processing core consumes: an
// ordered entry listing plus a read-as-text service.
type Archive interface {
	// Name returns the archive's file name.
	Name() string
	// ListEntries returns the path of every archive member. Directory
	// entries carry a trailing slash.
	ListEntries() ([]string, error)
	// ReadText returns an entry's content as text, see DecodeText.
	ReadText(path string) (string, error)
	// IsDir reports whether the path names a directory entry.
	IsDir(path string) bool
	// Close closes the underlying container. The wrapper flips its own
	// closed flag; further reads fail with ErrClosed.
	Close() error
	// IsClosed reports whether Close was called.
	IsClosed() bool
}

// Open opens an archive chosen by file extension: .zip, .rar or .7z. The
// password is applied to encrypted entries where the format supports it.
func Open(name, password string) (Archive, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip":
		return openZip(name, password)
	case ".rar":
		return openRar(name, password)
	case ".7z":
		return openSevenZip(name, password)
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// DecodeText turns raw entry bytes into text: lossless UTF-8 when the bytes
// are valid, the replacement decoding otherwise. Raw NUL bytes are rewritten
// as the two-character escape `\00` because they would corrupt the grammar
// and the downstream output.
func DecodeText(raw []byte) string {
	var text string

	if utf8.Valid(raw) {
		text = string(raw)
	} else {
		decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
		if err != nil {
			decoded = raw
		}
		text = strings.ToValidUTF8(string(decoded), string(utf8.RuneError))
	}

	return strings.ReplaceAll(text, "\x00", `\00`)
}
