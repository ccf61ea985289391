// =============================================================================
// CSV to GeoJSON Converter - XLSX Parser
// =============================================================================
//
// This module reads point data kept in a spreadsheet instead of a CSV file.
// The worksheet layout mirrors the CSV input:
//
//   | Column A     | Column B  | Column C  | Column D ... |
//   |--------------|-----------|-----------|--------------|
//   | name         | point_lon | point_lat | from         |   <- header row
//   | Café Central | -9.1393   | 38.7223   | 2019         |
//
// Cell values are read raw, ignoring number formats, so a coordinate cell
// shown as "-9.14" still yields its stored value "-9.139312". Header and row
// rules are those of the CSV parser (types.CleanHeaders, types.NewRecord).
//
// =============================================================================

package xlsxparser

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/types"
)

var (
	// ErrEmptySheet is returned when the sheet has no header row.
	ErrEmptySheet = errors.New("worksheet is empty")

	// ErrSheetNotFound is returned when the configured sheet does not exist.
	ErrSheetNotFound = errors.New("worksheet not found")
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads one worksheet of an XLSX workbook into a table.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - settings: The sheet selection. An empty Sheet reads the first sheet.
//
// RETURNS:
//   - A pointer to the Table with headers from row 1.
//   - An error if the workbook cannot be opened or the sheet is unusable.
func Parse(filePath string, settings config.XLSXSettings) (*types.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheetName, err := resolveSheet(f, settings.Sheet)
	if err != nil {
		return nil, err
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return buildTable(rows, filePath, sheetName)
}

// resolveSheet returns the sheet to read.
func resolveSheet(f *excelize.File, requested string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", ErrEmptySheet
	}

	if requested == "" {
		return sheets[0], nil
	}

	if !slices.Contains(sheets, requested) {
		return "", fmt.Errorf("%w: %q (available: %s)", ErrSheetNotFound, requested, strings.Join(sheets, ", "))
	}

	return requested, nil
}

// buildTable turns raw sheet rows into a table.
// Row numbers are spreadsheet row numbers (header = 1).
func buildTable(rows [][]string, source, sheetName string) (*types.Table, error) {
	// Blank rows above the header are ignored.
	start := 0
	for start < len(rows) && types.BlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, fmt.Errorf("%s [%s]: %w", source, sheetName, ErrEmptySheet)
	}

	headers, err := types.CleanHeaders(rows[start])
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	table := &types.Table{
		Headers:    headers,
		Records:    []types.Record{},
		SourceFile: source,
	}

	for i := start + 1; i < len(rows); i++ {
		if types.BlankRow(rows[i]) {
			table.Skipped = append(table.Skipped, i+1)
			continue
		}

		record, err := types.NewRecord(rows[i], headers, i+1)
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}
