// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"strings"

	"github.com/xuri/efp"
)

// GlobalScope is the ScopeSheetID of a workbook-wide defined name.
const GlobalScope = -1

// DefinedName is a named formula or reference. ScopeSheetID is the sheet ID
// of the sheet the name is local to, or GlobalScope. Formula never carries a
// leading "=".
type DefinedName struct {
	Name         string
	Formula      string
	Comment      string
	ScopeSheetID int
}

// IsGlobal reports whether the name is visible in every sheet.
func (dn DefinedName) IsGlobal() bool {
	return dn.ScopeSheetID == GlobalScope
}

// Reference is one range a defined name refers to. Sheet is empty for an
// unqualified reference.
type Reference struct {
	Sheet string
	Range CellRange
}

// References tokenizes the formula and returns the cell ranges it refers to,
// in formula order. Operands that are not cell ranges, such as whole columns
// or other defined names, are skipped.
//
// Example:
//
//	dn := xlsxbook.DefinedName{Formula: "'My Data'!$A$1:$B$4"}
//	refs := dn.References() // [{My Data A1:B4}]
func (dn DefinedName) References() []Reference {
	var refs []Reference
	ps := efp.ExcelParser()
	for _, token := range ps.Parse(dn.Formula) {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		var sheet string
		cellPart := token.TValue
		if i := strings.LastIndex(cellPart, "!"); i >= 0 {
			sheet = strings.ReplaceAll(strings.Trim(cellPart[:i], "'"), "''", "'")
			cellPart = cellPart[i+1:]
		}
		rng, err := ParseCellRange(cellPart)
		if err != nil {
			continue
		}
		refs = append(refs, Reference{Sheet: sheet, Range: rng})
	}
	return refs
}

// DefineName provides a function to add a defined name. A single leading
// "=" is removed from formula. scope names the sheet the name is local to;
// an empty scope, or one that matches no sheet, makes the name global.
// Names are not required to be unique and keep their insertion order.
//
// Example:
//
//	err := wb.DefineName("Rate", "=0.05", "", "")
//	err = wb.DefineName("Items", "=Data!$A$1:$A$10", "item list", "Data")
func (wb *Workbook) DefineName(name, formula, comment, scope string) error {
	if name == "" {
		return ErrDefinedNameEmpty
	}
	formula = strings.TrimPrefix(formula, "=")
	id := GlobalScope
	if scope != "" {
		if i := wb.GetSheetIndex(scope); i != -1 {
			id = wb.sheets[i].SheetID()
		}
	}
	wb.definedNames = append(wb.definedNames, DefinedName{
		Name: name, Formula: formula, Comment: comment, ScopeSheetID: id,
	})
	return nil
}

// DefinedNames returns the defined names in insertion order.
func (wb *Workbook) DefinedNames() []DefinedName {
	return append([]DefinedName(nil), wb.definedNames...)
}

// ScopeSheetName returns the name of the sheet a defined name is local to,
// or an empty string for a global name or one whose sheet was deleted.
func (wb *Workbook) ScopeSheetName(dn DefinedName) string {
	if i := wb.sheetIndexByID(dn.ScopeSheetID); i != -1 {
		return wb.sheets[i].Name()
	}
	return ""
}

// sheetIndexByID returns the current position of the sheet with the given
// sheet ID, or -1.
func (wb *Workbook) sheetIndexByID(sheetID int) int {
	if sheetID == GlobalScope {
		return -1
	}
	for i, ws := range wb.sheets {
		if ws.SheetID() == sheetID {
			return i
		}
	}
	return -1
}
