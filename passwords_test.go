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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePasswordsCredential(t *testing.T) {
	credentials, err := ParsePasswords("leak.zip/user1/Passwords.txt",
		"Host: https://login.example.com/account\nUser: john@mail.com\nPassword: hunter2\n")
	require.NoError(t, err)
	require.Len(t, credentials, 1)

	credential := credentials[0]
	require.NotNil(t, credential.Host)
	assert.Equal(t, "https://login.example.com/account", *credential.Host)
	require.NotNil(t, credential.Domain)
	assert.Equal(t, "login.example.com", *credential.Domain)
	require.NotNil(t, credential.Username)
	assert.Equal(t, "john@mail.com", *credential.Username)
	require.NotNil(t, credential.LocalPart)
	assert.Equal(t, "john", *credential.LocalPart)
	require.NotNil(t, credential.EmailDomain)
	assert.Equal(t, "mail.com", *credential.EmailDomain)
	require.NotNil(t, credential.Password)
	assert.Equal(t, "hunter2", *credential.Password)
	require.NotNil(t, credential.Filepath)
	assert.Equal(t, "leak.zip/user1/Passwords.txt", *credential.Filepath)
	assert.Nil(t, credential.StealerName)
}

func TestParsePasswordsLineOrderFree(t *testing.T) {
	ordered, err := ParsePasswords("a.txt", "Soft: Chrome\nHost: example.com\nUser: john\nPassword: x\n")
	require.NoError(t, err)
	reordered, err := ParsePasswords("a.txt", "Password: x\nUser: john\nSoft: Chrome\nHost: example.com\n")
	require.NoError(t, err)

	require.Len(t, ordered, 1)
	require.Len(t, reordered, 1)
	assert.Equal(t, ordered[0], reordered[0])

	require.NotNil(t, ordered[0].Domain)
	assert.Equal(t, "example.com", *ordered[0].Domain)
}

func TestParsePasswordsMultipleBlocks(t *testing.T) {
	text := "Url: https://a.example\nLogin: alice\nPass: one\n\n" +
		"Url: https://b.example\nLogin: bob\nPass: two\n"

	credentials, err := ParsePasswords("a.txt", text)
	require.NoError(t, err)
	require.Len(t, credentials, 2)
	assert.Equal(t, "alice", *credentials[0].Username)
	assert.Equal(t, "bob", *credentials[1].Username)
}

func TestParsePasswordsBannerOnly(t *testing.T) {
	credentials, err := ParsePasswords("a.txt", "*** FREE LOGS CLOUD ***\n\n---- no data ----\n")
	require.NoError(t, err)
	assert.Empty(t, credentials)
}

func TestParsePasswordsSellerBlock(t *testing.T) {
	text := "Seller: @sellerman\n\n--------------------\n" +
		"Host: https://shop.example\nUser: carol\nPassword: pw\n"

	credentials, err := ParsePasswords("a.txt", text)
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	require.NotNil(t, credentials[0].Host)
	assert.Equal(t, "https://shop.example", *credentials[0].Host)
	assert.Equal(t, "carol", *credentials[0].Username)
}

func TestParsePasswordsBracketedSoftware(t *testing.T) {
	text := "[\"Chrome\" = \"Default\"]\nUrl: https://mail.example\nLogin: dave\nPassword: pw\n"

	credentials, err := ParsePasswords("a.txt", text)
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	require.NotNil(t, credentials[0].Software)
	assert.Equal(t, "chrome default", *credentials[0].Software)
}

func TestParsePasswordsProfileLine(t *testing.T) {
	text := "Browser: Opera GX\nprofile: Default User\nUrl: https://game.example\nLogin: eve\nPassword: pw\n"

	credentials, err := ParsePasswords("a.txt", text)
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	require.NotNil(t, credentials[0].Software)
	assert.Equal(t, "opera gx", *credentials[0].Software)
	assert.Equal(t, "https://game.example", *credentials[0].Host)
}

func TestParsePasswordsAndroidMultilinePassword(t *testing.T) {
	text := "Host: android://AbCdEf==@com.example.app/\nUser: frank\n" +
		"Password: QmFzZTY0\nU3RyaW5n\n"

	credentials, err := ParsePasswords("a.txt", text)
	require.NoError(t, err)
	require.Len(t, credentials, 1)

	credential := credentials[0]
	require.NotNil(t, credential.Password)
	assert.Equal(t, "Base64String", *credential.Password)
	require.NotNil(t, credential.Domain)
	assert.Equal(t, "com.example.app", *credential.Domain)
}

func TestParsePasswordsBrowserNameFromFilename(t *testing.T) {
	credentials, err := ParsePasswords("leak.zip/user1/Passwords[Opera GX]_default.txt",
		"Host: example.com\nUser: john\nPassword: pw\n")
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	require.NotNil(t, credentials[0].Software)
	assert.Equal(t, "opera gx", *credentials[0].Software)
}

func TestParsePasswordsSoftwareLineBeatsFilename(t *testing.T) {
	credentials, err := ParsePasswords("Passwords[Edge]_default.txt",
		"Soft: Firefox\nHost: example.com\nUser: john\nPassword: pw\n")
	require.NoError(t, err)
	require.Len(t, credentials, 1)
	require.NotNil(t, credentials[0].Software)
	assert.Equal(t, "firefox", *credentials[0].Software)
}

func TestParsePasswordsEmptyBlock(t *testing.T) {
	credentials, err := ParsePasswords("a.txt", "Host: \nUser: \nPassword:\n")
	require.NoError(t, err)
	assert.Empty(t, credentials)
}

func TestParsePasswordsGrammarViolation(t *testing.T) {
	credentials, err := ParsePasswords("a.txt", "Soft:\nSoft:\n")
	assert.Nil(t, credentials)

	require.Error(t, err)
	grammarErr, ok := err.(*GrammarError)
	require.True(t, ok)
	assert.Equal(t, "Soft:", grammarErr.Token.Value)
	assert.Equal(t, 2, grammarErr.Position)
	assert.Equal(t, 4, grammarErr.Size)
	assert.Contains(t, grammarErr.Error(), "position 2/4")
	assert.Contains(t, grammarErr.Dump(), "SOFT_PREFIX")
}

func TestParsePasswordsLexicalError(t *testing.T) {
	credentials, err := ParsePasswords("a.txt", "Host: example.com\x0c\n")
	assert.Nil(t, credentials)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal character")
}

func TestGetBrowserName(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"Passwords[Chrome]_default.txt", "Chrome"},
		{"logs/Passwords[Opera GX]_profile1.txt", "Opera GX"},
		{"All Passwords.txt", ""},
		{"accounts.txt", ""},
		{"notes.txt", ""},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, getBrowserName(test.filename), test.filename)
	}
}
