// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress defined the error message on receive a malformed
	// cell reference, column name or range.
	ErrInvalidAddress = errors.New("invalid cell address")
	// ErrDuplicateName defined the error message on insert, rename or copy a
	// worksheet with a name that is already in use.
	ErrDuplicateName = errors.New("the same name worksheet already exists")
	// ErrIndexOutOfRange defined the error message on receive a worksheet
	// index outside the current worksheet collection.
	ErrIndexOutOfRange = errors.New("worksheet index out of range")
	// ErrLastSheetProtected defined the error message on delete the only
	// remaining worksheet.
	ErrLastSheetProtected = errors.New("cannot delete the last remaining worksheet")
	// ErrInvalidDocument defined the error message on receive a malformed or
	// inconsistent workbook part.
	ErrInvalidDocument = errors.New("invalid workbook document")
	// ErrSameSheetIndex defined the error message on move a worksheet onto
	// its own position.
	ErrSameSheetIndex = errors.New("source and destination worksheet index are the same")
	// ErrDefinedNameEmpty defined the error message on create a defined name
	// without a name.
	ErrDefinedNameEmpty = errors.New("defined name must not be empty")
	// ErrDateFormat defined the error message on set a default date format
	// which contains no date or time token.
	ErrDateFormat = errors.New("date format contains no date or time token")
	// ErrImageFormat defined the error message on receive image data in an
	// unsupported or corrupted format.
	ErrImageFormat = errors.New("unsupported image format")
)

// ErrSheetNotExist defined an error of sheet that does not exist.
type ErrSheetNotExist struct {
	SheetName string
}

// Error returns the error message on receiving the non existing sheet name.
func (err ErrSheetNotExist) Error() string {
	return fmt.Sprintf("sheet %s does not exist", err.SheetName)
}

// newInvalidAddressError defined the error message on receiving the invalid
// cell reference, column name or range text.
func newInvalidAddressError(text string) error {
	return fmt.Errorf("%w %q", ErrInvalidAddress, text)
}

// newDuplicateNameError defined the error message on receiving a worksheet
// name which is already in use.
func newDuplicateNameError(name string) error {
	return fmt.Errorf("%w: %q", ErrDuplicateName, name)
}

// newIndexOutOfRangeError defined the error message on receiving an invalid
// worksheet index.
func newIndexOutOfRangeError(index, count int) error {
	return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, count)
}

// newInvalidDocumentError wraps a load failure so that callers can match it
// with errors.Is(err, ErrInvalidDocument).
func newInvalidDocumentError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}
