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

package goarchive

import (
	"io/ioutil"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/pkg/errors"
)

// sevenZipArchive reads 7-Zip containers. Unlike ZIP and RAR, 7z member
// listings do not mark directories with a trailing slash, so the slash is
// added from the file info.
type sevenZipArchive struct {
	name   string
	reader *sevenzip.ReadCloser
	closed bool
}

func openSevenZip(name, password string) (Archive, error) {
	reader, err := sevenzip.OpenReaderWithPassword(name, password)
	if err != nil {
		return nil, errors.Wrap(err, "could not open 7z archive")
	}

	return &sevenZipArchive{name: name, reader: reader}, nil
}

func (a *sevenZipArchive) Name() string {
	return a.name
}

func (a *sevenZipArchive) ListEntries() ([]string, error) {
	if a.closed {
		return nil, ErrClosed
	}

	var entries []string
	for _, file := range a.reader.File {
		name := file.Name
		if file.FileInfo().IsDir() && !strings.HasSuffix(name, "/") {
			name += "/"
		}
		entries = append(entries, name)
	}
	return entries, nil
}

func (a *sevenZipArchive) IsDir(path string) bool {
	return strings.HasSuffix(path, "/")
}

func (a *sevenZipArchive) ReadText(path string) (string, error) {
	if a.closed {
		return "", ErrClosed
	}

	for _, file := range a.reader.File {
		if file.Name != path && file.Name+"/" != path {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", errors.Wrap(err, "could not decompress entry")
		}
		defer rc.Close()

		raw, err := ioutil.ReadAll(rc)
		if err != nil {
			return "", errors.Wrap(err, "could not read entry")
		}

		return DecodeText(raw), nil
	}

	return "", errors.Wrap(ErrEntryNotFound, path)
}

func (a *sevenZipArchive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	return a.reader.Close()
}

func (a *sevenZipArchive) IsClosed() bool {
	return a.closed
}
