// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"

	"golang.org/x/net/html/charset"
)

// Source relationship and namespace list, associated prefixes and schema in
// which the relationship is defined.
const (
	NameSpaceSpreadSheet            = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	SourceRelationship              = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	SourceRelationshipPackage       = "http://schemas.openxmlformats.org/package/2006/relationships"
	SourceRelationshipWorkSheet     = SourceRelationship + relKindWorksheet
	SourceRelationshipTheme         = SourceRelationship + relKindTheme
	SourceRelationshipStyles        = SourceRelationship + relKindStyles
	SourceRelationshipSharedStrings = SourceRelationship + relKindSharedStrings

	relKindWorksheet     = "/worksheet"
	relKindTheme         = "/theme"
	relKindStyles        = "/styles"
	relKindSharedStrings = "/sharedStrings"

	// XMLHeader is the declaration written at the top of every part.
	XMLHeader = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n"
)

// xlsxRelationships directly maps the Relationships element of a .rels part.
type xlsxRelationships struct {
	XMLName       xml.Name           `xml:"http://schemas.openxmlformats.org/package/2006/relationships Relationships"`
	Relationships []xlsxRelationship `xml:"Relationship"`
}

// xlsxRelationship maps one package relationship.
type xlsxRelationship struct {
	ID         string `xml:"Id,attr"`
	Target     string `xml:",attr"`
	Type       string `xml:",attr"`
	TargetMode string `xml:",attr,omitempty"`
}

// Relationship is one entry of the relationship registry.
type Relationship struct {
	ID         string
	Type       string
	Target     string
	TargetMode string
}

// Relationships is an append-only registry which hands out sequential
// relationship identifiers rId1, rId2, ... in insertion order. The workbook
// builds a fresh registry on every save.
type Relationships struct {
	list []Relationship
}

// NewRelationships creates an empty registry.
func NewRelationships() *Relationships {
	return &Relationships{}
}

// AddDocumentRelationship appends a relationship of the given kind (for
// example "/worksheet") from the officeDocument relationship schema and
// returns its identifier.
func (rels *Relationships) AddDocumentRelationship(kind, target string) string {
	return rels.add(SourceRelationship+kind, target, "")
}

func (rels *Relationships) add(relType, target, targetMode string) string {
	id := "rId" + strconv.Itoa(len(rels.list)+1)
	rels.list = append(rels.list, Relationship{ID: id, Type: relType, Target: target, TargetMode: targetMode})
	return id
}

// Clear removes every entry so that numbering restarts at rId1.
func (rels *Relationships) Clear() {
	rels.list = rels.list[:0]
}

// Len returns the number of relationships.
func (rels *Relationships) Len() int {
	return len(rels.list)
}

// All returns a copy of the relationships in identifier order.
func (rels *Relationships) All() []Relationship {
	return append([]Relationship(nil), rels.list...)
}

// Find returns the relationship with the given identifier.
func (rels *Relationships) Find(id string) (Relationship, bool) {
	for _, rel := range rels.list {
		if rel.ID == id {
			return rel, true
		}
	}
	return Relationship{}, false
}

// WriteTo writes the registry as a relationships part.
func (rels *Relationships) WriteTo(w io.Writer) (int64, error) {
	content := xlsxRelationships{Relationships: make([]xlsxRelationship, 0, len(rels.list))}
	for _, rel := range rels.list {
		content.Relationships = append(content.Relationships, xlsxRelationship{
			ID: rel.ID, Target: rel.Target, Type: rel.Type, TargetMode: rel.TargetMode,
		})
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

// ReadRelationships parses a relationships part. Entries keep their
// identifiers from the document.
func ReadRelationships(r io.Reader) (*Relationships, error) {
	var content xlsxRelationships
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(&content); err != nil {
		return nil, newInvalidDocumentError("relationships: %v", err)
	}
	rels := NewRelationships()
	for _, rel := range content.Relationships {
		rels.list = append(rels.list, Relationship{
			ID: rel.ID, Type: rel.Type, Target: rel.Target, TargetMode: rel.TargetMode,
		})
	}
	return rels, nil
}
