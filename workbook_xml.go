// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

// Static attribute values of the workbook part.
const (
	fileVersionAppName      = "xl"
	fileVersionLastEdited   = "4"
	fileVersionLowestEdited = "4"
	fileVersionRupBuild     = "4505"
	defaultThemeVersion     = "124226"
	calcID                  = "124519"

	sourceRelationshipStrict = "http://purl.oclc.org/ooxml/officeDocument/relationships"
)

// sheetItem is a sheet element buffered during load.
type sheetItem struct {
	name    string
	sheetID int
	relID   string
	state   string
}

// definedNameItem is a definedName element buffered during load. Its
// localSheetId may only point at a sheet element read before it.
type definedNameItem struct {
	name         string
	comment      string
	formula      string
	localSheetID int
	hasLocal     bool
	sheetsSeen   int
}

// worksheetPartName returns the path of the i-th (0-based) worksheet part
// relative to the workbook part.
func worksheetPartName(i int) string {
	return "worksheets/sheet" + strconv.Itoa(i+1) + ".xml"
}

// buildRelationships creates the workbook relationships from the current
// state: one per worksheet in tab order, then theme, styles and, when the
// table holds any string, shared strings.
func (wb *Workbook) buildRelationships() *Relationships {
	rels := NewRelationships()
	for i := range wb.sheets {
		rels.AddDocumentRelationship(relKindWorksheet, worksheetPartName(i))
	}
	rels.AddDocumentRelationship(relKindTheme, "theme/theme1.xml")
	rels.AddDocumentRelationship(relKindStyles, "styles.xml")
	if !wb.sharedStrings.IsEmpty() {
		rels.AddDocumentRelationship(relKindSharedStrings, "sharedStrings.xml")
	}
	return rels
}

// Relationships returns the workbook relationships a save would write now.
func (wb *Workbook) Relationships() *Relationships {
	return wb.buildRelationships()
}

// WriteTo provides a function to write the workbook part to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) {
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}

// WriteToBuffer provides a function to get a bytes.Buffer holding the
// workbook part.
func (wb *Workbook) WriteToBuffer() (*bytes.Buffer, error) {
	return wb.bufferWorkbookXML(wb.buildRelationships())
}

func (wb *Workbook) bufferWorkbookXML(rels *Relationships) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := wb.writeWorkbookXML(buf, rels); err != nil {
		return nil, err
	}
	return buf, nil
}

// writeWorkbookXML emits the workbook part. The element order is fixed:
// fileVersion, workbookPr, bookViews, sheets, definedNames, calcPr.
func (wb *Workbook) writeWorkbookXML(buf *bytes.Buffer, rels *Relationships) error {
	buf.WriteString(XMLHeader)
	enc := xml.NewEncoder(buf)
	all := rels.All()

	if err := startElement(enc, "workbook",
		attr("xmlns", NameSpaceSpreadSheet),
		attr("xmlns:r", SourceRelationship)); err != nil {
		return err
	}
	if err := emptyElement(enc, "fileVersion",
		attr("appName", fileVersionAppName),
		attr("lastEdited", fileVersionLastEdited),
		attr("lowestEdited", fileVersionLowestEdited),
		attr("rupBuild", fileVersionRupBuild)); err != nil {
		return err
	}

	var attrs []xml.Attr
	if wb.date1904 {
		attrs = append(attrs, attr("date1904", "1"))
	}
	attrs = append(attrs, attr("defaultThemeVersion", defaultThemeVersion))
	if err := emptyElement(enc, "workbookPr", attrs...); err != nil {
		return err
	}

	if err := startElement(enc, "bookViews"); err != nil {
		return err
	}
	attrs = []xml.Attr{
		attr("xWindow", strconv.Itoa(wb.view.XWindow)),
		attr("yWindow", strconv.Itoa(wb.view.YWindow)),
		attr("windowWidth", strconv.Itoa(wb.view.WindowWidth)),
		attr("windowHeight", strconv.Itoa(wb.view.WindowHeight)),
	}
	if wb.firstSheet > 0 {
		attrs = append(attrs, attr("firstSheet", strconv.Itoa(wb.firstSheet+1)))
	}
	if wb.activeSheet > 0 {
		attrs = append(attrs, attr("activeTab", strconv.Itoa(wb.activeSheet)))
	}
	if err := emptyElement(enc, "workbookView", attrs...); err != nil {
		return err
	}
	if err := endElement(enc, "bookViews"); err != nil {
		return err
	}

	if err := startElement(enc, "sheets"); err != nil {
		return err
	}
	for i, ws := range wb.sheets {
		attrs = []xml.Attr{attr("name", ws.Name()), attr("sheetId", strconv.Itoa(ws.SheetID()))}
		if ws.IsHidden() {
			attrs = append(attrs, attr("state", "hidden"))
		}
		attrs = append(attrs, attr("r:id", all[i].ID))
		if err := emptyElement(enc, "sheet", attrs...); err != nil {
			return err
		}
	}
	if err := endElement(enc, "sheets"); err != nil {
		return err
	}

	if len(wb.definedNames) > 0 {
		if err := startElement(enc, "definedNames"); err != nil {
			return err
		}
		for _, dn := range wb.definedNames {
			attrs = []xml.Attr{attr("name", dn.Name)}
			if dn.Comment != "" {
				attrs = append(attrs, attr("comment", dn.Comment))
			}
			if i := wb.sheetIndexByID(dn.ScopeSheetID); i != -1 {
				attrs = append(attrs, attr("localSheetId", strconv.Itoa(i)))
			}
			if err := startElement(enc, "definedName", attrs...); err != nil {
				return err
			}
			if err := enc.EncodeToken(xml.CharData(dn.Formula)); err != nil {
				return err
			}
			if err := endElement(enc, "definedName"); err != nil {
				return err
			}
		}
		if err := endElement(enc, "definedNames"); err != nil {
			return err
		}
	}

	if err := emptyElement(enc, "calcPr", attr("calcId", calcID)); err != nil {
		return err
	}
	if err := endElement(enc, "workbook"); err != nil {
		return err
	}
	return enc.Flush()
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

func startElement(enc *xml.Encoder, name string, attrs ...xml.Attr) error {
	return enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func endElement(enc *xml.Encoder, name string) error {
	return enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func emptyElement(enc *xml.Encoder, name string, attrs ...xml.Attr) error {
	if err := startElement(enc, name, attrs...); err != nil {
		return err
	}
	return endElement(enc, name)
}

// OpenWorkbook provides a function to read a workbook part. The stream is
// consumed once: sheet and definedName elements are buffered in document
// order and resolved after the last token, since a localSheetId is a
// position among the sheet elements. Unknown elements are skipped with
// their content. Any failure returns a nil workbook and an error matching
// ErrInvalidDocument. The epoch always comes from the document, whatever
// Options.Date1904 says.
//
// Example:
//
//	wb, err := xlsxbook.OpenWorkbook(bytes.NewReader(data))
//	if err != nil {
//	    fmt.Println(err)
//	    return
//	}
//	fmt.Println(wb.SheetNames())
func OpenWorkbook(r io.Reader, opts ...Options) (*Workbook, error) {
	wb := NewWorkbook(opts...)
	wb.date1904 = false
	sheets, names, err := wb.readWorkbookXML(r)
	if err != nil {
		return nil, err
	}
	if err = wb.resolveLoaded(sheets, names); err != nil {
		return nil, err
	}
	return wb, nil
}

// OpenWorkbookFile reads the workbook part stored at path.
func OpenWorkbookFile(path string, opts ...Options) (*Workbook, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return OpenWorkbook(file, opts...)
}

// readWorkbookXML is the single forward pass over the token stream. It
// only sets scalar fields of wb; sheets and defined names are returned for
// the resolution pass.
func (wb *Workbook) readWorkbookXML(r io.Reader) ([]sheetItem, []definedNameItem, error) {
	var (
		sheets  []sheetItem
		names   []definedNameItem
		sawRoot bool
	)
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, newInvalidDocumentError("%v", err)
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if se.Name.Local != "workbook" {
				return nil, nil, newInvalidDocumentError("unexpected root element %q", se.Name.Local)
			}
			sawRoot = true
			continue
		}
		switch se.Name.Local {
		case "sheet":
			item, err := parseSheetItem(se)
			if err != nil {
				return nil, nil, err
			}
			sheets = append(sheets, item)
		case "workbookPr":
			if v, ok := attrValue(se, "date1904"); ok {
				date1904, err := strconv.ParseBool(v)
				if err != nil {
					return nil, nil, newInvalidDocumentError("date1904 %q", v)
				}
				wb.date1904 = date1904
			}
		case "bookviews":
			if err := wb.readBookViews(decoder); err != nil {
				return nil, nil, err
			}
		case "definedName":
			item, err := parseDefinedNameItem(decoder, se)
			if err != nil {
				return nil, nil, err
			}
			item.sheetsSeen = len(sheets)
			names = append(names, item)
		case "sheets", "definedNames":
		default:
			wb.log.WithField("element", se.Name.Local).Debug("skipping workbook element")
			if err := decoder.Skip(); err != nil {
				return nil, nil, newInvalidDocumentError("%v", err)
			}
		}
	}
	if !sawRoot {
		return nil, nil, newInvalidDocumentError("missing workbook element")
	}
	return sheets, names, nil
}

// resolveLoaded creates the buffered sheets and binds every localSheetId to
// the sheet ID found at that position among the sheets read before the
// defined name.
func (wb *Workbook) resolveLoaded(sheets []sheetItem, names []definedNameItem) error {
	seenIDs := make(map[int]bool, len(sheets))
	seenNames := make(map[string]bool, len(sheets))
	for _, item := range sheets {
		if item.sheetID < 1 || seenIDs[item.sheetID] {
			return newInvalidDocumentError("sheet %q has invalid sheetId %d", item.name, item.sheetID)
		}
		if seenNames[item.name] {
			return newInvalidDocumentError("duplicate sheet name %q", item.name)
		}
		seenIDs[item.sheetID], seenNames[item.name] = true, true
	}
	for _, item := range names {
		if item.hasLocal && (item.localSheetID < 0 || item.localSheetID >= item.sheetsSeen) {
			return newInvalidDocumentError("defined name %q has localSheetId %d outside %d sheets read so far",
				item.name, item.localSheetID, item.sheetsSeen)
		}
	}

	for _, item := range sheets {
		ws := wb.registerLoadedWorksheet(item.name, item.sheetID)
		ws.relID = item.relID
		ws.hidden = item.state == "hidden" || item.state == "veryHidden"
	}
	for _, item := range names {
		id := GlobalScope
		if item.hasLocal {
			id = sheets[item.localSheetID].sheetID
		}
		wb.definedNames = append(wb.definedNames, DefinedName{
			Name: item.name, Formula: item.formula, Comment: item.comment, ScopeSheetID: id,
		})
	}
	wb.log.WithFields(logrus.Fields{"sheets": len(sheets), "definedNames": len(names)}).Debug("workbook loaded")
	return nil
}

func parseSheetItem(se xml.StartElement) (sheetItem, error) {
	item := sheetItem{}
	item.name, _ = attrValue(se, "name")
	item.state, _ = attrValue(se, "state")
	v, _ := attrValue(se, "sheetId")
	id, err := strconv.Atoi(v)
	if err != nil {
		return item, newInvalidDocumentError("sheet %q has sheetId %q", item.name, v)
	}
	item.sheetID = id
	for _, a := range se.Attr {
		if a.Name.Local == "id" && (a.Name.Space == SourceRelationship || a.Name.Space == sourceRelationshipStrict || a.Name.Space == "r") {
			item.relID = a.Value
		}
	}
	return item, nil
}

func parseDefinedNameItem(decoder *xml.Decoder, se xml.StartElement) (definedNameItem, error) {
	item := definedNameItem{}
	item.name, _ = attrValue(se, "name")
	item.comment, _ = attrValue(se, "comment")
	if v, ok := attrValue(se, "localSheetId"); ok {
		id, err := strconv.Atoi(v)
		if err != nil {
			return item, newInvalidDocumentError("defined name %q has localSheetId %q", item.name, v)
		}
		item.localSheetID, item.hasLocal = id, true
	}
	var content struct {
		Value string `xml:",chardata"`
	}
	if err := decoder.DecodeElement(&content, &se); err != nil {
		return item, newInvalidDocumentError("%v", err)
	}
	item.formula = content.Value
	return item, nil
}

// readBookViews reads the workbook view geometry. The container is matched
// as "bookviews"; a document spelling it "bookViews" keeps the defaults.
func (wb *Workbook) readBookViews(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if err != nil {
			return newInvalidDocumentError("%v", err)
		}
		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "workbookView" {
				if err := wb.readWorkbookView(t); err != nil {
					return err
				}
			}
		case xml.EndElement:
			if t.Name.Local == "bookviews" {
				return nil
			}
		}
	}
}

func (wb *Workbook) readWorkbookView(se xml.StartElement) error {
	fields := []struct {
		name string
		dst  *int
		diff int
	}{
		{"xWindow", &wb.view.XWindow, 0},
		{"yWindow", &wb.view.YWindow, 0},
		{"windowWidth", &wb.view.WindowWidth, 0},
		{"windowHeight", &wb.view.WindowHeight, 0},
		{"firstSheet", &wb.firstSheet, -1},
		{"activeTab", &wb.activeSheet, 0},
	}
	for _, field := range fields {
		v, ok := attrValue(se, field.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return newInvalidDocumentError("%s %q", field.name, v)
		}
		*field.dst = n + field.diff
	}
	return nil
}

// attrValue returns the value of the un-prefixed attribute local.
func attrValue(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}
