// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// Default workbook view geometry and date format of a new workbook.
const (
	defaultXWindow      = 240
	defaultYWindow      = 15
	defaultWindowWidth  = 16095
	defaultWindowHeight = 9660
	defaultDateFormat   = "yyyy-mm-dd"
)

// WorkbookView is the window geometry stored in the workbook part.
type WorkbookView struct {
	XWindow      int
	YWindow      int
	WindowWidth  int
	WindowHeight int
}

// Workbook is the aggregate root of a spreadsheet document: the ordered
// worksheets, the defined names and the document-level settings. A Workbook
// is not safe for concurrent use.
//
// Two counters only ever grow: lastSheetID, the last sheet ID handed out,
// and lastAutoNameIndex, the last N tried for an automatic "SheetN" name.
type Workbook struct {
	log logrus.FieldLogger

	sheets       []*Worksheet
	definedNames []DefinedName

	sharedStrings *SharedStrings
	images        []*Image
	drawings      []*Drawing

	date1904          bool
	stringsToNumbers  bool
	defaultDateFormat string
	view              WorkbookView
	firstSheet        int
	activeSheet       int

	lastSheetID       int
	lastAutoNameIndex int
}

// NewWorkbook provides a function to create an empty workbook without any
// worksheet.
func NewWorkbook(opts ...Options) *Workbook {
	options := getOptions(opts...)
	wb := &Workbook{
		log:               options.Logger,
		sharedStrings:     NewSharedStrings(),
		date1904:          options.Date1904,
		stringsToNumbers:  options.StringsToNumbers,
		defaultDateFormat: defaultDateFormat,
		view: WorkbookView{
			XWindow:      defaultXWindow,
			YWindow:      defaultYWindow,
			WindowWidth:  defaultWindowWidth,
			WindowHeight: defaultWindowHeight,
		},
	}
	if options.DefaultDateFormat != "" && isDateFormat(options.DefaultDateFormat) {
		wb.defaultDateFormat = options.DefaultDateFormat
	}
	return wb
}

// NewFile provides a function to create a workbook holding one worksheet
// named "Sheet1".
//
// Example:
//
//	wb := xlsxbook.NewFile()
//	ws := wb.Worksheet(0)
//	_ = ws.SetCellValue("A1", "Hello")
func NewFile(opts ...Options) *Workbook {
	wb := NewWorkbook(opts...)
	_, _ = wb.AddWorksheet("")
	return wb
}

// AddWorksheet appends a worksheet. An empty name requests an automatic
// "SheetN" name. See InsertWorksheet.
func (wb *Workbook) AddWorksheet(name string) (*Worksheet, error) {
	return wb.InsertWorksheet(len(wb.sheets), name)
}

// InsertWorksheet provides a function to create a worksheet at the given
// position, which is clamped into [0, WorksheetCount()], and make it the
// active sheet. A name already in use fails with ErrDuplicateName. An empty
// name requests "SheetN" where N is the next unused value of a counter that
// never goes back, so automatic names are unique but may skip numbers. The
// new sheet gets the next sheet ID.
//
// Example:
//
//	ws, err := wb.InsertWorksheet(0, "Data")
func (wb *Workbook) InsertWorksheet(index int, name string) (*Worksheet, error) {
	if name != "" {
		if wb.GetSheetIndex(name) != -1 {
			return nil, newDuplicateNameError(name)
		}
	} else {
		for {
			wb.lastAutoNameIndex++
			name = "Sheet" + strconv.Itoa(wb.lastAutoNameIndex)
			if wb.GetSheetIndex(name) == -1 {
				break
			}
		}
	}
	index = clampIndex(index, len(wb.sheets))
	wb.lastSheetID++
	ws := newWorksheet(wb, name, wb.lastSheetID)
	wb.sheets = append(wb.sheets, nil)
	copy(wb.sheets[index+1:], wb.sheets[index:])
	wb.sheets[index] = ws
	wb.activeSheet = index
	wb.log.WithFields(logrus.Fields{"sheet": name, "sheetId": ws.sheetID, "index": index}).Debug("worksheet inserted")
	return ws, nil
}

// registerLoadedWorksheet appends a worksheet whose sheet ID comes from a
// loaded document and raises lastSheetID so later sheets never collide.
func (wb *Workbook) registerLoadedWorksheet(name string, sheetID int) *Worksheet {
	if sheetID > wb.lastSheetID {
		wb.lastSheetID = sheetID
	}
	ws := newWorksheet(wb, name, sheetID)
	wb.sheets = append(wb.sheets, ws)
	return ws
}

// RenameWorksheet provides a function to rename the worksheet at index.
// It fails with ErrDuplicateName when another sheet already has the name.
func (wb *Workbook) RenameWorksheet(index int, name string) error {
	if err := wb.checkIndex(index); err != nil {
		return err
	}
	if i := wb.GetSheetIndex(name); i != -1 && i != index {
		return newDuplicateNameError(name)
	}
	old := wb.sheets[index].Name()
	wb.sheets[index].setName(name)
	wb.log.WithFields(logrus.Fields{"from": old, "to": name}).Debug("worksheet renamed")
	return nil
}

// DeleteWorksheet provides a function to remove the worksheet at index
// together with the defined names local to it. The only remaining worksheet
// cannot be deleted. The stored active sheet index is left as is and may
// point past the end afterwards.
func (wb *Workbook) DeleteWorksheet(index int) error {
	if len(wb.sheets) <= 1 {
		return ErrLastSheetProtected
	}
	if err := wb.checkIndex(index); err != nil {
		return err
	}
	ws := wb.sheets[index]
	wb.sheets = append(wb.sheets[:index], wb.sheets[index+1:]...)
	kept := wb.definedNames[:0]
	for _, dn := range wb.definedNames {
		if dn.ScopeSheetID != ws.SheetID() {
			kept = append(kept, dn)
		}
	}
	removed := len(wb.definedNames) - len(kept)
	wb.definedNames = kept
	wb.log.WithFields(logrus.Fields{"sheet": ws.Name(), "definedNames": removed}).Debug("worksheet deleted")
	return nil
}

// MoveWorksheet provides a function to move the worksheet at from so that
// it ends up at to. A destination outside the remaining sheets appends the
// sheet at the end. Moving a sheet onto itself fails with ErrSameSheetIndex.
func (wb *Workbook) MoveWorksheet(from, to int) error {
	if from == to {
		return ErrSameSheetIndex
	}
	if err := wb.checkIndex(from); err != nil {
		return err
	}
	ws := wb.sheets[from]
	wb.sheets = append(wb.sheets[:from], wb.sheets[from+1:]...)
	if to < 0 || to > len(wb.sheets) {
		to = len(wb.sheets)
	}
	wb.sheets = append(wb.sheets, nil)
	copy(wb.sheets[to+1:], wb.sheets[to:])
	wb.sheets[to] = ws
	wb.log.WithFields(logrus.Fields{"sheet": ws.Name(), "from": from, "to": to}).Debug("worksheet moved")
	return nil
}

// CopyWorksheet provides a function to append a deep copy of the worksheet
// at index. An empty name requests "<original>N" with the smallest N from 2
// that is not in use. The copy gets the next sheet ID.
//
// Example:
//
//	dup, err := wb.CopyWorksheet(0, "")
func (wb *Workbook) CopyWorksheet(index int, name string) (*Worksheet, error) {
	if err := wb.checkIndex(index); err != nil {
		return nil, err
	}
	src := wb.sheets[index]
	if name != "" {
		if wb.GetSheetIndex(name) != -1 {
			return nil, newDuplicateNameError(name)
		}
	} else {
		for n := 2; ; n++ {
			name = src.Name() + strconv.Itoa(n)
			if wb.GetSheetIndex(name) == -1 {
				break
			}
		}
	}
	dup, err := src.copy(name, wb.lastSheetID+1)
	if err != nil {
		return nil, err
	}
	wb.lastSheetID++
	wb.sheets = append(wb.sheets, dup)
	wb.log.WithFields(logrus.Fields{"from": src.Name(), "to": name, "sheetId": dup.sheetID}).Debug("worksheet copied")
	return dup, nil
}

// SetActiveWorksheet provides a function to select the active worksheet.
func (wb *Workbook) SetActiveWorksheet(index int) error {
	if err := wb.checkIndex(index); err != nil {
		return err
	}
	wb.activeSheet = index
	return nil
}

// ActiveSheetIndex returns the stored active sheet index.
func (wb *Workbook) ActiveSheetIndex() int {
	return wb.activeSheet
}

// ActiveWorksheet returns the active worksheet, or nil when the stored
// index no longer points to a sheet.
func (wb *Workbook) ActiveWorksheet() *Worksheet {
	return wb.Worksheet(wb.activeSheet)
}

// Worksheet returns the worksheet at index, or nil when index is out of
// range.
func (wb *Workbook) Worksheet(index int) *Worksheet {
	if index < 0 || index >= len(wb.sheets) {
		return nil
	}
	return wb.sheets[index]
}

// Worksheets returns the worksheets in tab order.
func (wb *Workbook) Worksheets() []*Worksheet {
	return append([]*Worksheet(nil), wb.sheets...)
}

// WorksheetCount returns the number of worksheets.
func (wb *Workbook) WorksheetCount() int {
	return len(wb.sheets)
}

// SheetNames returns the worksheet names in tab order.
func (wb *Workbook) SheetNames() []string {
	names := make([]string, len(wb.sheets))
	for i, ws := range wb.sheets {
		names[i] = ws.Name()
	}
	return names
}

// GetSheetIndex returns the position of the worksheet with exactly the
// given name, or -1.
func (wb *Workbook) GetSheetIndex(name string) int {
	for i, ws := range wb.sheets {
		if ws.Name() == name {
			return i
		}
	}
	return -1
}

// IsDate1904 reports whether dates use the 1904 epoch.
func (wb *Workbook) IsDate1904() bool {
	return wb.date1904
}

// SetDate1904 selects the 1904 (true) or 1900 (false) date epoch. Set it
// before writing any date, since stored serial numbers are not converted.
func (wb *Workbook) SetDate1904(date1904 bool) {
	wb.date1904 = date1904
}

// IsStringsToNumbersEnabled reports whether numeric text is stored as
// numbers.
func (wb *Workbook) IsStringsToNumbersEnabled() bool {
	return wb.stringsToNumbers
}

// SetStringsToNumbersEnabled makes SetCellValue store numeric text as
// numbers, avoiding the "Number Stored as Text" warning.
func (wb *Workbook) SetStringsToNumbersEnabled(enable bool) {
	wb.stringsToNumbers = enable
}

// DefaultDateFormat returns the number format used for dates.
func (wb *Workbook) DefaultDateFormat() string {
	return wb.defaultDateFormat
}

// SetDefaultDateFormat sets the number format used for dates. A format
// without any date or time token fails with ErrDateFormat.
func (wb *Workbook) SetDefaultDateFormat(format string) error {
	if !isDateFormat(format) {
		return ErrDateFormat
	}
	wb.defaultDateFormat = format
	return nil
}

// WorkbookView returns the window geometry.
func (wb *Workbook) WorkbookView() WorkbookView {
	return wb.view
}

// SetWorkbookView sets the window geometry.
func (wb *Workbook) SetWorkbookView(view WorkbookView) {
	wb.view = view
}

// FirstSheet returns the index of the first visible sheet tab.
func (wb *Workbook) FirstSheet() int {
	return wb.firstSheet
}

// SetFirstSheet sets the index of the first visible sheet tab, which is
// needed when the leading sheets are hidden.
func (wb *Workbook) SetFirstSheet(index int) error {
	if err := wb.checkIndex(index); err != nil {
		return err
	}
	wb.firstSheet = index
	return nil
}

// SharedStrings returns the workbook's shared string table.
func (wb *Workbook) SharedStrings() *SharedStrings {
	return wb.sharedStrings
}

// DateToSerial converts a time to a serial date number in the workbook's
// epoch.
func (wb *Workbook) DateToSerial(t time.Time) float64 {
	return timeToSerial(t, wb.date1904)
}

// SerialToDate converts a serial date number in the workbook's epoch to a
// UTC time.
func (wb *Workbook) SerialToDate(serial float64) time.Time {
	return serialToTime(serial, wb.date1904)
}

func (wb *Workbook) checkIndex(index int) error {
	if index < 0 || index >= len(wb.sheets) {
		return newIndexOutOfRangeError(index, len(wb.sheets))
	}
	return nil
}

func clampIndex(index, count int) int {
	if index < 0 {
		return 0
	}
	if index > count {
		return count
	}
	return index
}
