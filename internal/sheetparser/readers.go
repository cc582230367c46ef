package sheetparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads one sheet of a workbook as a cell grid. An empty sheet name
// selects the first sheet. Raw cell values are read so that date cells arrive
// as serial numbers rather than display strings.
func ReadXLSX(path, sheet string) ([][]any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets found in %s", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return toGrid(rows), nil
}

// ReadCSV loads delimited text as a cell grid. Rows may differ in length.
func ReadCSV(r io.Reader, delimiter rune) ([][]any, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv grid: %w", err)
	}
	return toGrid(rows), nil
}

func toGrid(rows [][]string) [][]any {
	grid := make([][]any, 0, len(rows))
	for _, r := range rows {
		cells := make([]any, len(r))
		for i, v := range r {
			cells[i] = v
		}
		grid = append(grid, cells)
	}
	return grid
}

// IsSpreadsheetFile reports whether path names a workbook or a delimited
// text export.
func IsSpreadsheetFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".csv", ".tsv":
		return true
	}
	return false
}

// ReadFile reads path as a workbook or, for any other extension, as
// delimited text. A .tsv file is always tab-delimited.
func ReadFile(path, sheet string, delimiter rune) ([][]any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, sheet)
	case ".tsv":
		delimiter = '\t'
	}

	f, err := os.Open(path) // #nosec G304 -- user-supplied input file
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadCSV(f, delimiter)
}
