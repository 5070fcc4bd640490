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
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/forensicanalysis/stealerlogs/goarchive"
)

// LogFileType categorizes an archive entry by the kind of data it holds.
type LogFileType int

// The handled log file categories.
const (
	PasswordsFile LogFileType = iota + 1
	SystemFile
	IPFile
	CopyrightFile
)

// LogFile is one archive entry to be parsed, together with the directory key
// of the compromised system it belongs to.
type LogFile struct {
	Type      LogFileType
	Name      string
	SystemDir string
}

// logNamePattern matches entry names holding useful data. The mutually
// exclusive capture groups map to the log file categories:
//
//	group 2: password                      -> credentials
//	group 3: system|information|userinfo   -> machine information
//	group 4: \bip                          -> machine IP address
//	group 5: credits|copyright|read        -> stealer credits
var logNamePattern = regexp.MustCompile(`(?i)^.*((password)|(system|information|userinfo)|(\bip)|(credits|copyright|read)).*\.txt`)

// passwordCrackerPattern screens out tool names like "PasswordCracker.txt"
// before the composite pattern runs; RE2 has no lookahead.
var passwordCrackerPattern = regexp.MustCompile(`(?i)passwordcracker`)

// classifyEntry maps an archive entry name to its log file category. The
// second result is false for entries to be ignored.
func classifyEntry(name string) (LogFileType, bool) {
	screened := passwordCrackerPattern.ReplaceAllString(name, "pwcracker")

	matched := logNamePattern.FindStringSubmatch(screened)
	if matched == nil {
		return 0, false
	}

	switch {
	case matched[2] != "":
		return PasswordsFile, true
	case matched[3] != "" && !strings.Contains(name, "#"):
		return SystemFile, true
	case matched[4] != "":
		return IPFile, true
	case matched[5] != "":
		return CopyrightFile, true
	}
	return 0, false
}

// systemDir derives the directory key grouping the files of one compromised
// system: the first path segment, or the first two segments for deeper
// two-level archive layouts.
func systemDir(path string) string {
	segments := strings.Split(path, "/")

	switch {
	case len(segments) > 2:
		return segments[0] + "/" + segments[1]
	case len(segments) == 2:
		return segments[0]
	default:
		return path
	}
}

// GenerateFileList lists the interesting entries of an archive, sorted
// lexicographically so entries sharing a directory key are contiguous.
func GenerateFileList(archive goarchive.Archive) ([]LogFile, error) {
	entries, err := archive.ListEntries()
	if err != nil {
		return nil, err
	}
	sort.Strings(entries)

	var files []LogFile
	for _, entry := range entries {
		if fileType, ok := classifyEntry(entry); ok {
			files = append(files, LogFile{
				Type:      fileType,
				Name:      entry,
				SystemDir: systemDir(entry),
			})
		}
	}
	return files, nil
}

// parseLogFile dispatches one file's text to its parser and merges the
// result into the directory's system data. Lexical errors and grammar
// violations are logged and spoil only this file, never its siblings. The
// merge rule: a SYSTEM parse's IP address is overridden by an address already
// known from a dedicated IP file, since an explicit IP beats one embedded in
// general system information.
func parseLogFile(logger *logrus.Logger, filename string, systemData *SystemData, file LogFile, text string) {
	switch file.Type {
	case PasswordsFile:
		credentials, err := ParsePasswords(filename, text)
		if err != nil {
			logGrammarFailure(logger, filename, err)
			return
		}
		systemData.Credentials = append(systemData.Credentials, credentials...)

	case SystemFile:
		system, err := ParseSystem(filename, text)
		if err != nil {
			logGrammarFailure(logger, filename, err)
			return
		}
		if system != nil {
			if systemData.System != nil && systemData.System.IPAddress != nil {
				system.IPAddress = systemData.System.IPAddress
			}
			systemData.System = system
		}

	case IPFile:
		RetrieveIPOnly(text, systemData)
	}
}

func logGrammarFailure(logger *logrus.Logger, filename string, err error) {
	entry := logger.WithField("file", filename)

	var grammarErr *GrammarError
	if errors.As(err, &grammarErr) {
		entry = entry.WithField("tokens", grammarErr.Dump())
	}

	entry.Errorf("Failed parsing file: %v", err)
}

// ProcessSystemDir processes one contiguous run of files sharing a directory
// key into one SystemData. Per-file read and parse failures are logged and do
// not abort the run; the consumed file count is always returned so the walker
// can advance past the run. A closed archive ends the run immediately and is
// reported to the walker. The stealer family is searched in every file's
// text until found and stamped onto the collected credentials afterwards,
// because the credits file may come after the password files.
func ProcessSystemDir(logger *logrus.Logger, leak *Leak, archive goarchive.Archive, files []LogFile) (int, error) {
	var stealerName StealerName
	systemData := &SystemData{Credentials: []*Credential{}}
	currentDir := files[0].SystemDir
	count := 0

	for _, file := range files {
		if file.SystemDir != currentDir {
			break
		}

		filename := archive.Name() + "/" + file.Name

		text, err := archive.ReadText(file.Name)
		switch {
		case errors.Is(err, goarchive.ErrClosed):
			return count, err
		case err != nil:
			logger.WithField("file", filename).Errorf("Error reading file: %v", err)
		default:
			if stealerName == "" {
				stealerName = SearchStealerName(text)
			}
			parseLogFile(logger, filename, systemData, file, text)
		}

		count++
	}

	if len(systemData.Credentials) > 0 && stealerName != "" {
		systemData.AddStealerName(stealerName)
	}

	if (systemData.System != nil && !isEmpty(systemData.System)) || len(systemData.Credentials) > 0 {
		leak.SystemsData = append(leak.SystemsData, systemData)
	}

	return count, nil
}

// ProcessArchive walks a whole archive: entries are grouped by compromised
// system directory and every group is processed into the leak, in
// lexicographic order. A single group's failure is tolerated. A closed
// archive only ends the walk early: the systems collected so far are kept,
// so the partial leak can still be written.
func ProcessArchive(logger *logrus.Logger, leak *Leak, archive goarchive.Archive) error {
	logger.Infof("Processing: %s ...", archive.Name())

	files, err := GenerateFileList(archive)
	if err != nil {
		return errors.Wrap(err, "could not list archive entries")
	}

	index := 0
	for index < len(files) {
		count, err := ProcessSystemDir(logger, leak, archive, files[index:])
		if err != nil {
			logger.Errorf("Archive walk stopped: %v", err)
			break
		}
		index += count
	}

	logger.Debugf("Parsed %q (%d systems).", leak.Filename, len(leak.SystemsData))
	return nil
}
