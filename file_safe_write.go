// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// Part names written by SaveTo, relative to the package root.
const (
	defaultXMLPathWorkbook      = "xl/workbook.xml"
	defaultXMLPathWorkbookRels  = "xl/_rels/workbook.xml.rels"
	defaultXMLPathSharedStrings = "xl/sharedStrings.xml"
)

// PartWriter creates package parts. *zip.Writer satisfies it, so a package
// assembler can pass its archive writer directly.
type PartWriter interface {
	Create(name string) (io.Writer, error)
}

// SaveTo provides a function to write the workbook part, its relationships
// part, every worksheet part and, when it holds any string, the shared
// strings part. All parts come from one relationship build, so the r:id of
// each sheet element matches the relationships part.
//
// Example:
//
//	buf := new(bytes.Buffer)
//	zw := zip.NewWriter(buf)
//	if err := wb.SaveTo(zw); err != nil {
//	    fmt.Println(err)
//	}
//	_ = zw.Close()
func (wb *Workbook) SaveTo(pw PartWriter) error {
	rels := wb.buildRelationships()

	fi, err := pw.Create(defaultXMLPathWorkbook)
	if err != nil {
		return err
	}
	buf, err := wb.bufferWorkbookXML(rels)
	if err != nil {
		return err
	}
	if _, err = buf.WriteTo(fi); err != nil {
		return err
	}

	if fi, err = pw.Create(defaultXMLPathWorkbookRels); err != nil {
		return err
	}
	if _, err = rels.WriteTo(fi); err != nil {
		return err
	}

	for i, ws := range wb.sheets {
		name := path.Join("xl", worksheetPartName(i))
		if fi, err = pw.Create(name); err != nil {
			return err
		}
		if _, err = ws.WriteTo(fi); err != nil {
			return err
		}
		wb.log.WithField("part", name).Debug("worksheet part written")
	}

	if !wb.sharedStrings.IsEmpty() {
		if fi, err = pw.Create(defaultXMLPathSharedStrings); err != nil {
			return err
		}
		if _, err = wb.sharedStrings.WriteTo(fi); err != nil {
			return err
		}
	}
	return nil
}

// SaveToDir provides a function to write the parts of SaveTo into an
// unpacked package directory. Each part is written to a uniquely named
// temporary file next to its destination and renamed into place once
// complete, so an interrupted save never leaves a truncated part behind.
func (wb *Workbook) SaveToDir(dir string) error {
	dw := &dirPartWriter{root: filepath.Clean(dir)}
	err := wb.SaveTo(dw)
	if closeErr := dw.commit(); err == nil {
		err = closeErr
	}
	if err != nil {
		dw.abort()
	}
	return err
}

// dirPartWriter writes parts to temporary files under root. Only the part
// being written is open; it is renamed into place when the next part is
// created or on commit.
type dirPartWriter struct {
	root    string
	current *os.File
	target  string
	pending []string
}

func (dw *dirPartWriter) Create(name string) (io.Writer, error) {
	if err := dw.commit(); err != nil {
		return nil, err
	}
	target := filepath.Join(dw.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, err
	}
	tmp := filepath.Join(filepath.Dir(target), "."+uuid.New().String()+".tmp")
	file, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	dw.current, dw.target = file, target
	dw.pending = append(dw.pending, tmp)
	return file, nil
}

// commit closes the open temporary file and renames it to its part name.
func (dw *dirPartWriter) commit() error {
	if dw.current == nil {
		return nil
	}
	file, target := dw.current, dw.target
	dw.current = nil
	if err := file.Close(); err != nil {
		return err
	}
	if err := os.Rename(file.Name(), target); err != nil {
		return err
	}
	dw.pending = dw.pending[:len(dw.pending)-1]
	return nil
}

// abort removes temporary files that were never renamed.
func (dw *dirPartWriter) abort() {
	if dw.current != nil {
		_ = dw.current.Close()
		dw.current = nil
	}
	for _, tmp := range dw.pending {
		_ = os.Remove(tmp)
	}
	dw.pending = nil
}
