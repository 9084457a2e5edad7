// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Options define the options for creating, opening and saving a workbook.
//
// Logger receives debug events about sheet mutations, skipped elements on
// load and part writes. When nil, events are discarded.
//
// Date1904 selects the 1904 date epoch for a new workbook. A loaded workbook
// takes the epoch from its document instead.
//
// StringsToNumbers stores numeric-looking text as numbers.
//
// DefaultDateFormat overrides the default "yyyy-mm-dd" date format; it must
// contain at least one date or time token.
type Options struct {
	Logger            logrus.FieldLogger `yaml:"-"`
	Date1904          bool               `yaml:"date1904"`
	StringsToNumbers  bool               `yaml:"strings_to_numbers"`
	DefaultDateFormat string             `yaml:"default_date_format,omitempty"`
}

// LoadOptions decodes options from a YAML document, for example:
//
//	date1904: true
//	strings_to_numbers: false
//	default_date_format: dd/mm/yyyy
func LoadOptions(r io.Reader) (Options, error) {
	var opts Options
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && err != io.EOF {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptionsFile decodes options from the YAML file at path.
func LoadOptionsFile(path string) (Options, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Options{}, err
	}
	defer file.Close()
	return LoadOptions(file)
}

// getOptions returns the last of the given options, with a discarding
// logger filled in when none was set.
func getOptions(opts ...Options) *Options {
	options := &Options{}
	for _, opt := range opts {
		options = &opt
	}
	if options.Logger == nil {
		options.Logger = discardLogger()
	}
	return options
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
