package xlsxbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchSetCellValue(t *testing.T) {
	wb := newTestWorkbook(t, "Sheet1", "Data")
	require.NoError(t, wb.BatchSetCellValue([]CellUpdate{
		{Sheet: "Sheet1", Cell: "A1", Value: 100},
		{Sheet: "Sheet1", Cell: "A2", Value: 200},
		{Sheet: "Data", Cell: "$B$1", Value: "total"},
		{Sheet: "Sheet1", Cell: "A1", Value: 150},
	}))

	value, err := wb.Worksheet(0).GetCellValue("A1")
	require.NoError(t, err)
	assert.Equal(t, "150", value)
	value, err = wb.Worksheet(0).GetCellValue("A2")
	require.NoError(t, err)
	assert.Equal(t, "200", value)
	value, err = wb.Worksheet(1).GetCellValue("B1")
	require.NoError(t, err)
	assert.Equal(t, "total", value)

	require.NoError(t, wb.BatchSetCellValue(nil))
}

func TestBatchSetCellValueAtomic(t *testing.T) {
	wb := newTestWorkbook(t, "Sheet1")

	err := wb.BatchSetCellValue([]CellUpdate{
		{Sheet: "Sheet1", Cell: "A1", Value: 1},
		{Sheet: "Missing", Cell: "A1", Value: 2},
	})
	assert.EqualError(t, err, "sheet Missing does not exist")
	assert.IsType(t, ErrSheetNotExist{}, err)

	err = wb.BatchSetCellValue([]CellUpdate{
		{Sheet: "Sheet1", Cell: "A1", Value: 1},
		{Sheet: "Sheet1", Cell: "A0", Value: 2},
	})
	assert.ErrorIs(t, err, ErrInvalidAddress)

	assert.Empty(t, wb.Worksheet(0).Cells())
	assert.True(t, wb.SharedStrings().IsEmpty())
}
