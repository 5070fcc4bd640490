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
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/forensicanalysis/stealerlogs"
	"github.com/forensicanalysis/stealerlogs/goarchive"
)

// fs is the filesystem the leak is written to, replaceable in tests.
var fs afero.Fs = afero.NewOsFs()

// Parse is the stealerlogs parse commandline subcommand.
func Parse() *cobra.Command {
	var password string
	var outfile string
	var verbose bool

	parseCommand := &cobra.Command{
		Use:   "parse <archive>",
		Short: "Parse an infostealer logs archive (.rar, .zip, .7z) into a JSON leak file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			filename := args[0]
			outpath := outfile
			if outpath == "" {
				base := filepath.Base(filename)
				outpath = strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
			}

			archive, err := goarchive.Open(filename, password)
			if err != nil {
				return errors.Wrap(err, "could not open archive")
			}
			defer archive.Close()

			leak := stealerlogs.NewLeak(filename)
			if err := ProcessArchiveToFile(logger, leak, archive, outpath); err != nil {
				return err
			}

			logger.Infof("Successfully wrote %q (%d systems).", outpath, len(leak.SystemsData))
			return nil
		},
	}

	parseCommand.Flags().StringVarP(&password, "password", "p", "", "the archive's password if required")
	parseCommand.Flags().StringVarP(&outfile, "output", "o", "", "the output file name (expects a .json)")
	parseCommand.Flags().BoolVarP(&verbose, "verbose", "v", false, "increase logs output verbosity")
	return parseCommand
}

// ProcessArchiveToFile walks the archive and writes the resulting leak as an
// indented JSON document.
func ProcessArchiveToFile(logger *logrus.Logger, leak *stealerlogs.Leak, archive goarchive.Archive, outfile string) error {
	if err := stealerlogs.ProcessArchive(logger, leak, archive); err != nil {
		return errors.Wrap(err, "could not process archive")
	}

	encoded, err := json.MarshalIndent(leak, "", "    ")
	if err != nil {
		return errors.Wrap(err, "could not encode leak")
	}

	if err := afero.WriteFile(fs, outfile, encoded, 0644); err != nil {
		return errors.Wrap(err, "could not write leak file")
	}
	return nil
}
