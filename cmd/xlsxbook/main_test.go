package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/OmniMCP-AI/xlsxbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	wb := xlsxbook.NewWorkbook()
	for _, name := range []string{"Data", "Hidden"} {
		_, err := wb.AddWorksheet(name)
		require.NoError(t, err)
	}
	wb.Worksheet(1).SetHidden(true)
	wb.SetDate1904(true)
	require.NoError(t, wb.DefineName("Rate", "0.05", "", ""))
	require.NoError(t, wb.DefineName("Items", "Data!$A$1:$A$3", "items", "Data"))

	path := filepath.Join(t.TempDir(), "workbook.xml")
	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestInspect(t *testing.T) {
	out, errOut, err := runCLI("inspect", writeWorkbook(t))
	require.NoError(t, err, errOut)
	assert.Empty(t, errOut)

	var summary workbookSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
	assert.True(t, summary.Date1904)
	assert.Equal(t, []sheetSummary{
		{Index: 0, Name: "Data", SheetID: 1, RelID: "rId1"},
		{Index: 1, Name: "Hidden", SheetID: 2, Hidden: true, RelID: "rId2"},
	}, summary.Sheets)
	assert.Equal(t, []definedNameSummary{
		{Name: "Rate", Formula: "0.05"},
		{Name: "Items", Formula: "Data!$A$1:$A$3", Comment: "items", Scope: "Data"},
	}, summary.DefinedNames)
}

func TestInspectVerbose(t *testing.T) {
	_, errOut, err := runCLI("inspect", "-v", writeWorkbook(t))
	require.NoError(t, err)
	assert.Contains(t, errOut, "workbook loaded")
	assert.Contains(t, errOut, "skipping workbook element")
}

func TestInspectConfig(t *testing.T) {
	config := filepath.Join(t.TempDir(), "options.yaml")
	require.NoError(t, os.WriteFile(config, []byte("strings_to_numbers: true\n"), 0o644))
	_, _, err := runCLI("--config", config, "inspect", writeWorkbook(t))
	assert.NoError(t, err)

	_, _, err = runCLI("--config", filepath.Join(t.TempDir(), "missing.yaml"), "inspect", writeWorkbook(t))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestInspectErrors(t *testing.T) {
	_, _, err := runCLI("inspect", filepath.Join(t.TempDir(), "missing.xml"))
	assert.ErrorContains(t, err, "failed to open workbook")

	path := filepath.Join(t.TempDir(), "broken.xml")
	require.NoError(t, os.WriteFile(path, []byte("<workbook><sheets>"), 0o644))
	_, _, err = runCLI("inspect", path)
	assert.ErrorIs(t, err, xlsxbook.ErrInvalidDocument)

	_, _, err = runCLI("inspect")
	assert.Error(t, err)
}

func TestRef(t *testing.T) {
	out, _, err := runCLI("ref", "$B$12")
	require.NoError(t, err)
	var ref referenceSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &ref))
	assert.Equal(t, referenceSummary{Row: 12, Column: 2, ColumnName: "B", RowAbsolute: true, ColumnAbsolute: true}, ref)

	out, _, err = runCLI("ref", "b2:$D$5")
	require.NoError(t, err)
	var rng rangeSummary
	require.NoError(t, yaml.Unmarshal([]byte(out), &rng))
	assert.Equal(t, rangeSummary{Range: "B2:D5", Rows: 4, Columns: 3}, rng)

	_, _, err = runCLI("ref", "B0")
	assert.ErrorIs(t, err, xlsxbook.ErrInvalidAddress)
	_, _, err = runCLI("ref", "A1:")
	assert.ErrorIs(t, err, xlsxbook.ErrInvalidAddress)
}
