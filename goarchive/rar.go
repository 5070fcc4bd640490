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
	"io"
	"io/ioutil"
	"strings"

	"github.com/nwaples/rardecode/v2"
	"github.com/pkg/errors"
)

// rarArchive reads RAR containers. The format only supports sequential
// access, so every operation opens a fresh reader and scans forward; the
// wrapper keeps nothing open between calls and the closed flag alone decides
// whether reads are still allowed.
type rarArchive struct {
	name     string
	password string
	closed   bool
}

func openRar(name, password string) (Archive, error) {
	// Probe the container once so a corrupt archive fails at open time.
	reader, err := rardecode.OpenReader(name, rardecode.Password(password))
	if err != nil {
		return nil, errors.Wrap(err, "could not open rar archive")
	}
	reader.Close()

	return &rarArchive{name: name, password: password}, nil
}

func (a *rarArchive) Name() string {
	return a.name
}

func (a *rarArchive) ListEntries() ([]string, error) {
	if a.closed {
		return nil, ErrClosed
	}

	reader, err := rardecode.OpenReader(a.name, rardecode.Password(a.password))
	if err != nil {
		return nil, errors.Wrap(err, "could not open rar archive")
	}
	defer reader.Close()

	var entries []string
	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "could not list rar entries")
		}

		name := header.Name
		if header.IsDir && !strings.HasSuffix(name, "/") {
			name += "/"
		}
		entries = append(entries, name)
	}
	return entries, nil
}

func (a *rarArchive) IsDir(path string) bool {
	return strings.HasSuffix(path, "/")
}

func (a *rarArchive) ReadText(path string) (string, error) {
	if a.closed {
		return "", ErrClosed
	}

	reader, err := rardecode.OpenReader(a.name, rardecode.Password(a.password))
	if err != nil {
		return "", errors.Wrap(err, "could not open rar archive")
	}
	defer reader.Close()

	for {
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", errors.Wrap(err, "could not read rar entries")
		}

		if strings.TrimSuffix(header.Name, "/") != strings.TrimSuffix(path, "/") {
			continue
		}

		raw, err := ioutil.ReadAll(reader)
		if err != nil {
			return "", errors.Wrap(err, "could not decompress entry")
		}

		return DecodeText(raw), nil
	}

	return "", errors.Wrap(ErrEntryNotFound, path)
}

func (a *rarArchive) Close() error {
	a.closed = true
	return nil
}

func (a *rarArchive) IsClosed() bool {
	return a.closed
}
