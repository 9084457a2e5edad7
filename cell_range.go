// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import "strings"

// rangeCacheCapacity bounds the number of parsed range texts kept by
// ParseCellRange.
const rangeCacheCapacity = 4096

// rangeCache memoises ParseCellRange by the exact text it was given, so
// "a1:b2", "A1:B2" and "$A$1:$B$2" are separate entries that map to the same
// range. Only successful parses are stored.
var rangeCache = newLRUCache(rangeCacheCapacity)

// CellRange is an inclusive rectangular region of cells. All four bounds
// are 1-based. A range built from malformed text carries whatever bounds
// the parser produced and reports false from IsValid; every accessor still
// works on it.
type CellRange struct {
	top, left, bottom, right int
}

// NewCellRange creates a range from its 1-based bounds.
func NewCellRange(firstRow, firstColumn, lastRow, lastColumn int) CellRange {
	return CellRange{top: firstRow, left: firstColumn, bottom: lastRow, right: lastColumn}
}

// ParseCellRange provides a function to build a range from text such as
// "A1:B10", "$A$1:$B$10" or a single reference "C3", which yields a 1×1
// range. On malformed text it returns the zero range, which is invalid,
// together with an ErrInvalidAddress error.
//
// Example:
//
//	rng, err := xlsxbook.ParseCellRange("B2:D5")
//	if err != nil {
//	    fmt.Println(err)
//	    return
//	}
//	fmt.Println(rng.RowCount(), rng.ColumnCount()) // 4 3
func ParseCellRange(text string) (CellRange, error) {
	if rng, ok := rangeCache.Load(text); ok {
		return rng, nil
	}
	startCell, endCell := text, text
	if i := strings.IndexByte(text, ':'); i >= 0 {
		startCell, endCell = text[:i], text[i+1:]
	}
	if startCell == "" || endCell == "" {
		return CellRange{}, newInvalidAddressError(text)
	}
	startRow, startCol, _, _, err := ParseCellReference(startCell)
	if err != nil {
		return CellRange{}, newInvalidAddressError(text)
	}
	endRow, endCol, _, _, err := ParseCellReference(endCell)
	if err != nil {
		return CellRange{}, newInvalidAddressError(text)
	}
	rng := NewCellRange(startRow+1, startCol+1, endRow+1, endCol+1)
	rangeCache.Store(text, rng)
	return rng, nil
}

// String renders the range as "A1:B2" with relative references. An invalid
// range renders as an empty string.
func (r CellRange) String() string {
	if !r.IsValid() {
		return ""
	}
	return FormatCellReferenceFast(r.top-1, r.left-1) + ":" + FormatCellReferenceFast(r.bottom-1, r.right-1)
}

// IsValid reports whether the bounds describe a non-empty region with
// positive 1-based indices.
func (r CellRange) IsValid() bool {
	return r.top >= 1 && r.left >= 1 && r.top <= r.bottom && r.left <= r.right
}

// Equal reports whether both ranges have identical bounds.
func (r CellRange) Equal(other CellRange) bool {
	return r == other
}

// FirstRow returns the 1-based top row.
func (r CellRange) FirstRow() int { return r.top }

// LastRow returns the 1-based bottom row.
func (r CellRange) LastRow() int { return r.bottom }

// FirstColumn returns the 1-based left column.
func (r CellRange) FirstColumn() int { return r.left }

// LastColumn returns the 1-based right column.
func (r CellRange) LastColumn() int { return r.right }

// RowCount returns bottom-top+1, which is not positive for an invalid range.
func (r CellRange) RowCount() int { return r.bottom - r.top + 1 }

// ColumnCount returns right-left+1, which is not positive for an invalid range.
func (r CellRange) ColumnCount() int { return r.right - r.left + 1 }

// SetFirstRow sets the 1-based top row.
func (r *CellRange) SetFirstRow(row int) { r.top = row }

// SetLastRow sets the 1-based bottom row.
func (r *CellRange) SetLastRow(row int) { r.bottom = row }

// SetFirstColumn sets the 1-based left column.
func (r *CellRange) SetFirstColumn(col int) { r.left = col }

// SetLastColumn sets the 1-based right column.
func (r *CellRange) SetLastColumn(col int) { r.right = col }
