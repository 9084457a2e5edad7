// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tiendc/go-deepcopy"
)

// Cell value types as written to the t attribute of a cell.
const (
	CellTypeSharedString = "s"
	CellTypeNumber       = "n"
	CellTypeBool         = "b"
)

// Worksheet is a sheet owned by a Workbook. Worksheets are only created
// through Workbook operations; the workbook assigns their sheet ID.
type Worksheet struct {
	wb      *Workbook
	name    string
	sheetID int
	hidden  bool
	relID   string
	data    SheetData
	images  []*Image
	drawing *Drawing
}

// SheetData holds the cell values of a worksheet keyed by relative
// reference, e.g. "B2".
type SheetData struct {
	Cells map[string]Cell
}

// Cell is one stored value. Row and Col are 0-based. For shared strings
// Value is the text itself; the table index is looked up on write.
type Cell struct {
	Row   int
	Col   int
	Type  string
	Value string
}

// xlsxWorksheet directly maps the worksheet element in the namespace
// http://schemas.openxmlformats.org/spreadsheetml/2006/main, limited to the
// parts this package produces.
type xlsxWorksheet struct {
	XMLName   xml.Name       `xml:"http://schemas.openxmlformats.org/spreadsheetml/2006/main worksheet"`
	Dimension *xlsxDimension `xml:"dimension"`
	SheetData xlsxSheetData  `xml:"sheetData"`
}

// xlsxDimension directly maps the dimension element.
type xlsxDimension struct {
	Ref string `xml:"ref,attr"`
}

// xlsxSheetData directly maps the sheetData element.
type xlsxSheetData struct {
	Row []xlsxRow `xml:"row"`
}

// xlsxRow directly maps the row element.
type xlsxRow struct {
	R int     `xml:"r,attr"`
	C []xlsxC `xml:"c"`
}

// xlsxC directly maps the c element.
type xlsxC struct {
	R string `xml:"r,attr"`
	T string `xml:"t,attr,omitempty"`
	V string `xml:"v"`
}

func newWorksheet(wb *Workbook, name string, sheetID int) *Worksheet {
	return &Worksheet{
		wb:      wb,
		name:    name,
		sheetID: sheetID,
		data:    SheetData{Cells: make(map[string]Cell)},
	}
}

// Name returns the sheet name.
func (ws *Worksheet) Name() string {
	return ws.name
}

func (ws *Worksheet) setName(name string) {
	ws.name = name
}

// SheetID returns the permanent sheet ID. It never changes when the sheet
// is moved and is never reused after the sheet is deleted.
func (ws *Worksheet) SheetID() int {
	return ws.sheetID
}

// IsHidden reports whether the sheet tab is hidden.
func (ws *Worksheet) IsHidden() bool {
	return ws.hidden
}

// SetHidden sets the visibility of the sheet tab.
func (ws *Worksheet) SetHidden(hidden bool) {
	ws.hidden = hidden
}

// RelationshipID returns the r:id the sheet carried in a loaded workbook
// part, or an empty string for sheets created in memory.
func (ws *Worksheet) RelationshipID() string {
	return ws.relID
}

// SetCellValue provides a function to set the value of a cell. Supported
// value types are string, []byte, the integer and float types, bool,
// time.Time and nil, which clears the cell. Other types are stored as their
// fmt.Sprint text. Strings go to the workbook's shared string table unless
// strings-to-numbers is enabled and the text is a finite decimal number.
// NaN and infinite floats are stored as text. Times are stored as
// serial numbers in the workbook's date epoch.
//
// Example:
//
//	err := ws.SetCellValue("B2", 100)
func (ws *Worksheet) SetCellValue(cell string, value interface{}) error {
	row, col, _, _, err := ParseCellReference(cell)
	if err != nil {
		return err
	}
	ws.setCellValue(row, col, value)
	return nil
}

func (ws *Worksheet) setCellValue(row, col int, value interface{}) {
	ref := FormatCellReferenceFast(row, col)
	c := Cell{Row: row, Col: col, Type: CellTypeNumber}
	switch v := value.(type) {
	case nil:
		delete(ws.data.Cells, ref)
		return
	case string:
		ws.setString(&c, v)
	case []byte:
		ws.setString(&c, string(v))
	case int:
		c.Value = strconv.FormatInt(int64(v), 10)
	case int8:
		c.Value = strconv.FormatInt(int64(v), 10)
	case int16:
		c.Value = strconv.FormatInt(int64(v), 10)
	case int32:
		c.Value = strconv.FormatInt(int64(v), 10)
	case int64:
		c.Value = strconv.FormatInt(v, 10)
	case uint:
		c.Value = strconv.FormatUint(uint64(v), 10)
	case uint8:
		c.Value = strconv.FormatUint(uint64(v), 10)
	case uint16:
		c.Value = strconv.FormatUint(uint64(v), 10)
	case uint32:
		c.Value = strconv.FormatUint(uint64(v), 10)
	case uint64:
		c.Value = strconv.FormatUint(v, 10)
	case float32:
		ws.setFloat(&c, float64(v), 32)
	case float64:
		ws.setFloat(&c, v, 64)
	case bool:
		c.Type, c.Value = CellTypeBool, "0"
		if v {
			c.Value = "1"
		}
	case time.Time:
		c.Value = strconv.FormatFloat(timeToSerial(v, ws.wb.date1904), 'f', -1, 64)
	default:
		ws.setString(&c, fmt.Sprint(value))
	}
	ws.data.Cells[ref] = c
}

// setFloat stores NaN and the infinities as their text, since a number
// cell only holds finite values.
func (ws *Worksheet) setFloat(c *Cell, f float64, bitSize int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		ws.setString(c, strconv.FormatFloat(f, 'f', -1, bitSize))
		return
	}
	c.Value = strconv.FormatFloat(f, 'f', -1, bitSize)
}

func (ws *Worksheet) setString(c *Cell, s string) {
	if ws.wb.stringsToNumbers && isDecimalNumber(s) {
		c.Type, c.Value = CellTypeNumber, s
		return
	}
	ws.wb.sharedStrings.Add(s)
	c.Type, c.Value = CellTypeSharedString, s
}

// isDecimalNumber reports whether s is a finite number written in decimal
// digits with an optional sign, fraction and exponent.
func isDecimalNumber(s string) bool {
	if strings.IndexFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789+-.eE", r)
	}) != -1 {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0)
}

// GetCellValue returns the stored text of a cell. Empty cells return an
// empty string.
func (ws *Worksheet) GetCellValue(cell string) (string, error) {
	row, col, _, _, err := ParseCellReference(cell)
	if err != nil {
		return "", err
	}
	return ws.data.Cells[FormatCellReferenceFast(row, col)].Value, nil
}

// Cells returns the stored cells ordered by row, then column.
func (ws *Worksheet) Cells() []Cell {
	cells := make([]Cell, 0, len(ws.data.Cells))
	for _, c := range ws.data.Cells {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
	return cells
}

// Dimension returns the smallest range covering every stored cell. A sheet
// without cells returns the invalid zero range.
func (ws *Worksheet) Dimension() CellRange {
	var rng CellRange
	for _, c := range ws.data.Cells {
		if !rng.IsValid() {
			rng = NewCellRange(c.Row+1, c.Col+1, c.Row+1, c.Col+1)
			continue
		}
		if c.Row+1 < rng.FirstRow() {
			rng.SetFirstRow(c.Row + 1)
		}
		if c.Row+1 > rng.LastRow() {
			rng.SetLastRow(c.Row + 1)
		}
		if c.Col+1 < rng.FirstColumn() {
			rng.SetFirstColumn(c.Col + 1)
		}
		if c.Col+1 > rng.LastColumn() {
			rng.SetLastColumn(c.Col + 1)
		}
	}
	return rng
}

// AddImage appends a picture to the sheet.
func (ws *Worksheet) AddImage(img *Image) {
	ws.images = append(ws.images, img)
}

// Images returns the sheet's pictures in insertion order.
func (ws *Worksheet) Images() []*Image {
	return ws.images
}

// Drawing returns the drawing built by the last Workbook.PrepareDrawings,
// or nil.
func (ws *Worksheet) Drawing() *Drawing {
	return ws.drawing
}

func (ws *Worksheet) prepareImage(index, refID int) {
	ws.images[index].RefID = refID
	if ws.drawing == nil {
		ws.drawing = &Drawing{}
	}
	ws.drawing.Anchors = append(ws.drawing.Anchors, DrawingAnchor{ImageIndex: index, RefID: refID})
}

func (ws *Worksheet) clearExtraDrawingInfo() {
	ws.drawing = &Drawing{}
}

// copy returns a new sheet with the given identity holding deep copies of
// this sheet's cells and pictures.
func (ws *Worksheet) copy(name string, sheetID int) (*Worksheet, error) {
	dup := newWorksheet(ws.wb, name, sheetID)
	if err := deepcopy.Copy(&dup.data, ws.data); err != nil {
		return nil, err
	}
	if err := deepcopy.Copy(&dup.images, ws.images); err != nil {
		return nil, err
	}
	for _, c := range dup.data.Cells {
		if c.Type == CellTypeSharedString {
			ws.wb.sharedStrings.Add(c.Value)
		}
	}
	return dup, nil
}

// WriteTo writes the sheet as a worksheet part. Shared strings are written
// as their index in the owning workbook's table.
func (ws *Worksheet) WriteTo(w io.Writer) (int64, error) {
	content := xlsxWorksheet{}
	if dim := ws.Dimension(); dim.IsValid() {
		content.Dimension = &xlsxDimension{Ref: dim.String()}
	}
	for _, c := range ws.Cells() {
		rows := content.SheetData.Row
		if len(rows) == 0 || rows[len(rows)-1].R != c.Row+1 {
			content.SheetData.Row = append(rows, xlsxRow{R: c.Row + 1})
		}
		value := c.Value
		if c.Type == CellTypeSharedString {
			value = strconv.Itoa(ws.wb.sharedStrings.Index(c.Value))
		}
		row := &content.SheetData.Row[len(content.SheetData.Row)-1]
		row.C = append(row.C, xlsxC{R: FormatCellReferenceFast(c.Row, c.Col), T: c.Type, V: value})
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
