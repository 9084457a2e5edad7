// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// xlsxSST directly maps the sst element from the namespace
// http://schemas.openxmlformats.org/spreadsheetml/2006/main.
type xlsxSST struct {
	XMLName     xml.Name `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main sst"`
	Count       int      `xml:"count,attr"`
	UniqueCount int      `xml:"uniqueCount,attr"`
	SI          []xlsxSI `xml:"si"`
}

// xlsxSI directly maps the si element.
type xlsxSI struct {
	T *xlsxT `xml:"t"`
}

// xlsxT directly maps the t element in the run properties.
type xlsxT struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"http://www.w3.org/XML/1998/namespace space,attr,omitempty"`
	Val     string   `xml:",chardata"`
}

// SharedStrings is the workbook's de-duplicated string table. Each distinct
// string gets the next index on first use.
type SharedStrings struct {
	strings []string
	index   map[string]int
	count   int
}

// NewSharedStrings creates an empty table.
func NewSharedStrings() *SharedStrings {
	return &SharedStrings{index: make(map[string]int)}
}

// Add records one use of s and returns its index.
func (sst *SharedStrings) Add(s string) int {
	sst.count++
	if i, ok := sst.index[s]; ok {
		return i
	}
	i := len(sst.strings)
	sst.strings = append(sst.strings, s)
	sst.index[s] = i
	return i
}

// Index returns the index of s, or -1 when it is not in the table.
func (sst *SharedStrings) Index(s string) int {
	if i, ok := sst.index[s]; ok {
		return i
	}
	return -1
}

// Count returns the number of distinct strings.
func (sst *SharedStrings) Count() int {
	return len(sst.strings)
}

// IsEmpty reports whether the table holds no string.
func (sst *SharedStrings) IsEmpty() bool {
	return len(sst.strings) == 0
}

// WriteTo writes the table as a shared strings part.
func (sst *SharedStrings) WriteTo(w io.Writer) (int64, error) {
	content := xlsxSST{Count: sst.count, UniqueCount: len(sst.strings), SI: make([]xlsxSI, 0, len(sst.strings))}
	for _, s := range sst.strings {
		t := &xlsxT{Val: s}
		if strings.TrimSpace(s) != s {
			t.Space = "preserve"
		}
		content.SI = append(content.SI, xlsxSI{T: t})
	}
	output, err := xml.Marshal(content)
	if err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	buf.WriteString(XMLHeader)
	buf.Write(output)
	return buf.WriteTo(w)
}
