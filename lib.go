// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"math"
	"strconv"
	"sync"
)

const (
	// MaxColumns is the number of columns a worksheet can hold.
	MaxColumns = 16384
	// TotalRows is the number of rows a worksheet can hold.
	TotalRows = 1048576
)

var (
	columnNamesOnce  sync.Once
	columnNamesTable []string
)

// ColumnNumberToName provides a function to convert the 1-based column
// number to its spreadsheet letters. Column names form a bijective base-26
// numeral system, so there is no digit for zero and no leading-zero form.
//
// Example:
//
//	name, err := xlsxbook.ColumnNumberToName(37) // name = "AK"
func ColumnNumberToName(num int) (string, error) {
	if num < 1 {
		return "", newInvalidAddressError(strconv.Itoa(num))
	}
	var (
		buf [16]byte
		pos = len(buf)
	)
	for num > 0 {
		pos--
		buf[pos] = byte('A' + (num-1)%26)
		num = (num - 1) / 26
	}
	return string(buf[pos:]), nil
}

// ColumnNameToNumber provides a function to convert spreadsheet column
// letters to the 1-based column number. Letters are case-insensitive and
// must make up the entire string.
//
// Example:
//
//	col, err := xlsxbook.ColumnNameToNumber("AK") // col = 37
func ColumnNameToNumber(name string) (int, error) {
	if name == "" {
		return -1, newInvalidAddressError(name)
	}
	col := 0
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case 'A' <= c && c <= 'Z':
			c -= 'A' - 1
		case 'a' <= c && c <= 'z':
			c -= 'a' - 1
		default:
			return -1, newInvalidAddressError(name)
		}
		col = col*26 + int(c)
		if col > math.MaxInt32 {
			return -1, newInvalidAddressError(name)
		}
	}
	return col, nil
}

// ParseCellReference provides a function to split a reference such as
// "$B$12", "B12", "$B12" or "B$12" into its 0-based row and column and the
// absolute markers of each part.
//
// Example:
//
//	row, col, rowAbs, colAbs, err := xlsxbook.ParseCellReference("$B$12")
//	// row = 11, col = 1, rowAbs = true, colAbs = true
func ParseCellReference(ref string) (row, col int, rowAbs, colAbs bool, err error) {
	i, n := 0, len(ref)
	if i < n && ref[i] == '$' {
		colAbs = true
		i++
	}
	start := i
	for i < n && isASCIILetter(ref[i]) {
		i++
	}
	letters := ref[start:i]
	if i < n && ref[i] == '$' {
		rowAbs = true
		i++
	}
	digits := ref[i:]
	if letters == "" || digits == "" {
		return -1, -1, false, false, newInvalidAddressError(ref)
	}
	num := 0
	for j := 0; j < len(digits); j++ {
		d := digits[j]
		if d < '0' || d > '9' {
			return -1, -1, false, false, newInvalidAddressError(ref)
		}
		num = num*10 + int(d-'0')
		if num > math.MaxInt32 {
			return -1, -1, false, false, newInvalidAddressError(ref)
		}
	}
	if num < 1 {
		return -1, -1, false, false, newInvalidAddressError(ref)
	}
	c, err := ColumnNameToNumber(letters)
	if err != nil {
		return -1, -1, false, false, newInvalidAddressError(ref)
	}
	return num - 1, c - 1, rowAbs, colAbs, nil
}

// FormatCellReference provides a function to build the reference text of
// the 0-based row and column, inserting "$" before the column letters and
// the row digits as requested.
//
// Example:
//
//	ref, err := xlsxbook.FormatCellReference(11, 1, true, true) // ref = "$B$12"
func FormatCellReference(row, col int, rowAbs, colAbs bool) (string, error) {
	if row < 0 || col < 0 {
		return "", newInvalidAddressError(strconv.Itoa(row) + "," + strconv.Itoa(col))
	}
	name, err := ColumnNumberToName(col + 1)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, len(name)+12)
	if colAbs {
		buf = append(buf, '$')
	}
	buf = append(buf, name...)
	if rowAbs {
		buf = append(buf, '$')
	}
	buf = strconv.AppendInt(buf, int64(row+1), 10)
	return string(buf), nil
}

// FormatCellReferenceFast returns the relative reference text of the 0-based
// row and column. It produces the same text as FormatCellReference with both
// markers off, but skips validation and allocates only the result; negative
// input yields an empty string.
func FormatCellReferenceFast(row, col int) string {
	if row < 0 || col < 0 {
		return ""
	}
	var buf [24]byte
	b := append(buf[:0], columnName(col+1)...)
	b = strconv.AppendInt(b, int64(row+1), 10)
	return string(b)
}

// columnName returns the letters of a 1-based column, served from a table
// for columns inside the worksheet limits.
func columnName(num int) string {
	columnNamesOnce.Do(func() {
		columnNamesTable = make([]string, MaxColumns+1)
		for i := 1; i <= MaxColumns; i++ {
			columnNamesTable[i], _ = ColumnNumberToName(i)
		}
	})
	if num <= MaxColumns {
		return columnNamesTable[num]
	}
	name, _ := ColumnNumberToName(num)
	return name
}

func isASCIILetter(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z')
}
