// Package main provides the xlsxbook command which inspects workbook parts
// and converts cell references.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/OmniMCP-AI/xlsxbook"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type sheetSummary struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name"`
	SheetID int    `yaml:"sheet_id"`
	Hidden  bool   `yaml:"hidden,omitempty"`
	RelID   string `yaml:"rel_id,omitempty"`
}

type definedNameSummary struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
	Comment string `yaml:"comment,omitempty"`
	Scope   string `yaml:"scope,omitempty"`
}

type workbookSummary struct {
	Date1904     bool                 `yaml:"date1904"`
	Sheets       []sheetSummary       `yaml:"sheets"`
	DefinedNames []definedNameSummary `yaml:"defined_names,omitempty"`
}

type referenceSummary struct {
	Row            int    `yaml:"row"`
	Column         int    `yaml:"column"`
	ColumnName     string `yaml:"column_name"`
	RowAbsolute    bool   `yaml:"row_absolute"`
	ColumnAbsolute bool   `yaml:"column_absolute"`
}

type rangeSummary struct {
	Range   string `yaml:"range"`
	Rows    int    `yaml:"rows"`
	Columns int    `yaml:"columns"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)
	rootCmd := &cobra.Command{
		Use:          "xlsxbook",
		Short:        "Inspect spreadsheet workbook parts and cell references",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML options file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug events to stderr")

	inspectCmd := &cobra.Command{
		Use:   "inspect [workbook.xml]",
		Short: "Print the sheets and defined names of a workbook part as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := xlsxbook.Options{}
			if configPath != "" {
				var err error
				if opts, err = xlsxbook.LoadOptionsFile(configPath); err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
			}
			if verbose {
				logger := logrus.New()
				logger.SetOutput(cmd.ErrOrStderr())
				logger.SetLevel(logrus.DebugLevel)
				opts.Logger = logger
			}
			wb, err := xlsxbook.OpenWorkbookFile(args[0], opts)
			if err != nil {
				return fmt.Errorf("failed to open workbook: %w", err)
			}
			return writeYAML(cmd, summarize(wb))
		},
	}

	refCmd := &cobra.Command{
		Use:   "ref [reference]",
		Short: "Parse a cell reference such as $B$12 or a range such as A1:C3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if strings.Contains(text, ":") {
				rng, err := xlsxbook.ParseCellRange(text)
				if err != nil {
					return err
				}
				return writeYAML(cmd, rangeSummary{Range: rng.String(), Rows: rng.RowCount(), Columns: rng.ColumnCount()})
			}
			row, col, rowAbs, colAbs, err := xlsxbook.ParseCellReference(text)
			if err != nil {
				return err
			}
			name, err := xlsxbook.ColumnNumberToName(col + 1)
			if err != nil {
				return err
			}
			return writeYAML(cmd, referenceSummary{
				Row: row + 1, Column: col + 1, ColumnName: name, RowAbsolute: rowAbs, ColumnAbsolute: colAbs,
			})
		},
	}

	rootCmd.AddCommand(inspectCmd, refCmd)
	return rootCmd
}

func summarize(wb *xlsxbook.Workbook) workbookSummary {
	summary := workbookSummary{Date1904: wb.IsDate1904()}
	for i, ws := range wb.Worksheets() {
		summary.Sheets = append(summary.Sheets, sheetSummary{
			Index: i, Name: ws.Name(), SheetID: ws.SheetID(), Hidden: ws.IsHidden(), RelID: ws.RelationshipID(),
		})
	}
	for _, dn := range wb.DefinedNames() {
		summary.DefinedNames = append(summary.DefinedNames, definedNameSummary{
			Name: dn.Name, Formula: dn.Formula, Comment: dn.Comment, Scope: wb.ScopeSheetName(dn),
		})
	}
	return summary
}

func writeYAML(cmd *cobra.Command, v interface{}) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
