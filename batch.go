package xlsxbook

// CellUpdate is one cell assignment of a batch.
type CellUpdate struct {
	Sheet string      // worksheet name
	Cell  string      // cell reference, e.g. "A1"
	Value interface{} // cell value, see Worksheet.SetCellValue
}

// BatchSetCellValue sets several cells, possibly across worksheets, in one
// call. Every sheet name and cell reference is checked before the first
// value is written, so a failing batch changes nothing.
//
// Example:
//
//	updates := []xlsxbook.CellUpdate{
//	    {Sheet: "Sheet1", Cell: "A1", Value: 100},
//	    {Sheet: "Sheet1", Cell: "A2", Value: 200},
//	    {Sheet: "Data", Cell: "B1", Value: "total"},
//	}
//	err := wb.BatchSetCellValue(updates)
func (wb *Workbook) BatchSetCellValue(updates []CellUpdate) error {
	type target struct {
		ws       *Worksheet
		row, col int
	}
	targets := make([]target, len(updates))
	for i, update := range updates {
		idx := wb.GetSheetIndex(update.Sheet)
		if idx == -1 {
			return ErrSheetNotExist{SheetName: update.Sheet}
		}
		row, col, _, _, err := ParseCellReference(update.Cell)
		if err != nil {
			return err
		}
		targets[i] = target{ws: wb.sheets[idx], row: row, col: col}
	}
	for i, t := range targets {
		t.ws.setCellValue(t.row, t.col, updates[i].Value)
	}
	return nil
}
