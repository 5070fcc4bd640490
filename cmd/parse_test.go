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

package cmd

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/yeka/zip"
)

func createTestArchive(t *testing.T, dir, name string) string {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	writer := zip.NewWriter(f)
	files := map[string]string{
		"user1/Passwords.txt": "Host: https://example.com/login\nUser: john@mail.com\nPassword: hunter2\n",
		"user1/System.txt":    "Computer Name: PC-1\nIP: 1.2.3.4\n",
		"user1/credits.txt":   "Built with RedLine stealer\n",
	}
	for name, content := range files {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return path
}

func TestParseCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "stealerlogs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := createTestArchive(t, dir, "leak.zip")

	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	command := Parse()
	command.SetArgs([]string{path, "--output", "leak.json"})
	require.NoError(t, command.Execute())

	encoded, err := afero.ReadFile(fs, "leak.json")
	require.NoError(t, err)

	parsed := gjson.ParseBytes(encoded)
	assert.True(t, parsed.Get("id").Exists())
	assert.Equal(t, path, parsed.Get("filename").Str)
	assert.Equal(t, int64(1), parsed.Get("systems_data.#").Int())
	assert.Equal(t, "PC-1", parsed.Get("systems_data.0.system.computer_name").Str)
	assert.Equal(t, "1.2.3.4", parsed.Get("systems_data.0.system.ip_address").Str)
	assert.Equal(t, "john@mail.com", parsed.Get("systems_data.0.credentials.0.username").Str)
	assert.Equal(t, "redline", parsed.Get("systems_data.0.credentials.0.stealer_name").Str)
}

func TestParseCommandDefaultOutput(t *testing.T) {
	dir, err := ioutil.TempDir("", "stealerlogs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	path := createTestArchive(t, dir, "leak.zip")

	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	command := Parse()
	command.SetArgs([]string{path})
	require.NoError(t, command.Execute())

	exists, err := afero.Exists(fs, "leak.json")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestParseCommandReused(t *testing.T) {
	dir, err := ioutil.TempDir("", "stealerlogs")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	first := createTestArchive(t, dir, "first.zip")
	second := createTestArchive(t, dir, "second.zip")

	fs = afero.NewMemMapFs()
	defer func() { fs = afero.NewOsFs() }()

	// The default output name is derived per run, not kept from the
	// previous one.
	command := Parse()
	command.SetArgs([]string{first})
	require.NoError(t, command.Execute())
	command.SetArgs([]string{second})
	require.NoError(t, command.Execute())

	for _, name := range []string{"first.json", "second.json"} {
		exists, err := afero.Exists(fs, name)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
}

func TestParseCommandMissingArchive(t *testing.T) {
	command := Parse()
	command.SetArgs([]string{"does-not-exist.zip"})
	command.SetOut(ioutil.Discard)
	command.SetErr(ioutil.Discard)
	assert.Error(t, command.Execute())
}
