package xlsxbook

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCellValue(t *testing.T) {
	wb := NewFile()
	ws := wb.Worksheet(0)

	for _, c := range []struct {
		cell  string
		value interface{}
		typ   string
		text  string
	}{
		{"A1", "hello", CellTypeSharedString, "hello"},
		{"A2", []byte("bytes"), CellTypeSharedString, "bytes"},
		{"A3", 42, CellTypeNumber, "42"},
		{"A4", int8(-8), CellTypeNumber, "-8"},
		{"A5", uint64(18446744073709551615), CellTypeNumber, "18446744073709551615"},
		{"A6", float32(1.5), CellTypeNumber, "1.5"},
		{"A7", 0.1, CellTypeNumber, "0.1"},
		{"A8", true, CellTypeBool, "1"},
		{"A9", false, CellTypeBool, "0"},
		{"A10", time.Date(2017, 1, 1, 12, 0, 0, 0, time.UTC), CellTypeNumber, "42736.5"},
		{"A11", struct{ X int }{3}, CellTypeSharedString, "{3}"},
		{"$B$1", "absolute", CellTypeSharedString, "absolute"},
	} {
		require.NoError(t, ws.SetCellValue(c.cell, c.value), c.cell)
		value, err := ws.GetCellValue(c.cell)
		require.NoError(t, err)
		assert.Equal(t, c.text, value, c.cell)
	}

	cells := ws.Cells()
	require.Len(t, cells, 12)
	assert.Equal(t, Cell{Row: 0, Col: 0, Type: CellTypeSharedString, Value: "hello"}, cells[0])
	assert.Equal(t, Cell{Row: 0, Col: 1, Type: CellTypeSharedString, Value: "absolute"}, cells[1])
	assert.Equal(t, CellTypeBool, cells[8].Type)

	require.NoError(t, ws.SetCellValue("A1", nil))
	value, err := ws.GetCellValue("A1")
	require.NoError(t, err)
	assert.Empty(t, value)
	assert.Len(t, ws.Cells(), 11)

	assert.ErrorIs(t, ws.SetCellValue("1A", 1), ErrInvalidAddress)
	_, err = ws.GetCellValue("")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestSetCellValueStringsToNumbers(t *testing.T) {
	wb := NewFile(Options{StringsToNumbers: true})
	ws := wb.Worksheet(0)
	require.NoError(t, ws.SetCellValue("A1", "12.5"))
	require.NoError(t, ws.SetCellValue("A2", "12 apples"))

	cells := ws.Cells()
	assert.Equal(t, CellTypeNumber, cells[0].Type)
	assert.Equal(t, CellTypeSharedString, cells[1].Type)
	assert.Equal(t, -1, wb.SharedStrings().Index("12.5"))
	assert.Equal(t, 0, wb.SharedStrings().Index("12 apples"))
}

func TestSetCellValueNonDecimalNumbers(t *testing.T) {
	wb := NewFile(Options{StringsToNumbers: true})
	ws := wb.Worksheet(0)
	for _, value := range []string{"-1.5e3", "+2", ".5"} {
		assert.True(t, isDecimalNumber(value), value)
	}
	for i, value := range []interface{}{"NaN", "Inf", "-infinity", "0x1p-2", "1e400", "1_000", math.NaN(), math.Inf(1), float32(math.Inf(-1))} {
		require.NoError(t, ws.SetCellValue(FormatCellReferenceFast(i, 0), value))
	}
	for _, c := range ws.Cells() {
		assert.Equal(t, CellTypeSharedString, c.Type, c.Value)
	}

	var buf bytes.Buffer
	_, err := ws.WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<v>NaN</v>")
	assert.NotContains(t, buf.String(), "<v>+Inf</v>")
}

func TestSetCellValueDate1904(t *testing.T) {
	wb := NewFile(Options{Date1904: true})
	ws := wb.Worksheet(0)
	require.NoError(t, ws.SetCellValue("A1", time.Date(1904, 1, 3, 0, 0, 0, 0, time.UTC)))
	value, err := ws.GetCellValue("A1")
	require.NoError(t, err)
	assert.Equal(t, "2", value)
}

func TestWorksheetDimension(t *testing.T) {
	ws := NewFile().Worksheet(0)
	assert.False(t, ws.Dimension().IsValid())

	require.NoError(t, ws.SetCellValue("C3", 1))
	assert.Equal(t, "C3:C3", ws.Dimension().String())
	require.NoError(t, ws.SetCellValue("B5", 1))
	require.NoError(t, ws.SetCellValue("E2", 1))
	assert.Equal(t, "B2:E5", ws.Dimension().String())
}

func TestWorksheetWriteTo(t *testing.T) {
	wb := NewFile()
	ws := wb.Worksheet(0)
	require.NoError(t, ws.SetCellValue("B2", "second"))
	require.NoError(t, ws.SetCellValue("A1", "first"))
	require.NoError(t, ws.SetCellValue("B1", 3.25))
	require.NoError(t, ws.SetCellValue("A2", true))

	var buf bytes.Buffer
	n, err := ws.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, XMLHeader+
		`<worksheet xmlns="`+NameSpaceSpreadSheet+`"><dimension ref="A1:B2"></dimension><sheetData>`+
		`<row r="1"><c r="A1" t="s"><v>1</v></c><c r="B1" t="n"><v>3.25</v></c></row>`+
		`<row r="2"><c r="A2" t="b"><v>1</v></c><c r="B2" t="s"><v>0</v></c></row>`+
		`</sheetData></worksheet>`, buf.String())

	buf.Reset()
	_, err = NewFile().Worksheet(0).WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, XMLHeader+`<worksheet xmlns="`+NameSpaceSpreadSheet+`"><sheetData></sheetData></worksheet>`, buf.String())
}
