package xlsxbook

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveTo(t *testing.T) {
	wb := newTestWorkbook(t, "A", "B")
	require.NoError(t, wb.Worksheet(0).SetCellValue("A1", "hello"))
	require.NoError(t, wb.Worksheet(1).SetCellValue("C2", 3))

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	require.NoError(t, wb.SaveTo(zw))
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	parts := make(map[string][]byte)
	var names []string
	for _, file := range zr.File {
		rc, err := file.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		parts[file.Name] = data
		names = append(names, file.Name)
	}
	assert.Equal(t, []string{
		"xl/workbook.xml",
		"xl/_rels/workbook.xml.rels",
		"xl/worksheets/sheet1.xml",
		"xl/worksheets/sheet2.xml",
		"xl/sharedStrings.xml",
	}, names)

	loaded, err := OpenWorkbook(bytes.NewReader(parts["xl/workbook.xml"]))
	require.NoError(t, err)
	rels, err := ReadRelationships(bytes.NewReader(parts["xl/_rels/workbook.xml.rels"]))
	require.NoError(t, err)
	for i, ws := range loaded.Worksheets() {
		rel, ok := rels.Find(ws.RelationshipID())
		require.True(t, ok, ws.Name())
		assert.Equal(t, SourceRelationshipWorkSheet, rel.Type)
		assert.Equal(t, worksheetPartName(i), rel.Target)
	}

	assert.Contains(t, string(parts["xl/worksheets/sheet1.xml"]), `<c r="A1" t="s"><v>0</v></c>`)
	assert.Contains(t, string(parts["xl/sharedStrings.xml"]), `<t>hello</t>`)
}

func TestSaveToWithoutStrings(t *testing.T) {
	wb := NewFile()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	require.NoError(t, wb.SaveTo(zw))
	require.NoError(t, zw.Close())

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	assert.Len(t, zr.File, 3)
	for _, file := range zr.File {
		assert.NotEqual(t, defaultXMLPathSharedStrings, file.Name)
	}
}

type failingPartWriter struct {
	created []string
	failOn  string
}

func (fw *failingPartWriter) Create(name string) (io.Writer, error) {
	if name == fw.failOn {
		return nil, errors.New("disk full")
	}
	fw.created = append(fw.created, name)
	return io.Discard, nil
}

func TestSaveToPartError(t *testing.T) {
	wb := NewFile()
	fw := &failingPartWriter{failOn: defaultXMLPathWorkbookRels}
	assert.EqualError(t, wb.SaveTo(fw), "disk full")
	assert.Equal(t, []string{defaultXMLPathWorkbook}, fw.created)
}

func TestSaveToDir(t *testing.T) {
	dir := t.TempDir()
	wb := newTestWorkbook(t, "A")
	require.NoError(t, wb.Worksheet(0).SetCellValue("B2", "value"))
	require.NoError(t, wb.SaveToDir(dir))

	for _, part := range []string{
		defaultXMLPathWorkbook,
		defaultXMLPathWorkbookRels,
		"xl/worksheets/sheet1.xml",
		defaultXMLPathSharedStrings,
	} {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(part)))
		assert.NoError(t, err, part)
	}

	loaded, err := OpenWorkbookFile(filepath.Join(dir, "xl", "workbook.xml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, loaded.SheetNames())

	// No temporary files are left next to the parts.
	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		assert.NotEqual(t, ".tmp", filepath.Ext(path), path)
		return nil
	})
	require.NoError(t, err)

	// Saving again replaces the parts in place.
	require.NoError(t, wb.RenameWorksheet(0, "Renamed"))
	require.NoError(t, wb.SaveToDir(dir))
	loaded, err = OpenWorkbookFile(filepath.Join(dir, "xl", "workbook.xml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Renamed"}, loaded.SheetNames())
}

func TestSaveToDirError(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the xl directory should be.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "xl"), nil, 0o644))
	assert.Error(t, NewFile().SaveToDir(dir))
}
