package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// ROW HELPERS
// =============================================================================
// Shared by csvparser and xlsxparser so that the same table yields the same
// headers and records whichever file format it arrives in.

// CleanHeaders names blank headers after their 1-based position
// ("Column_3") and rejects duplicates. Other header names are kept verbatim.
func CleanHeaders(raw []string) ([]string, error) {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))

	for i, header := range raw {
		if strings.TrimSpace(header) == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}

		if first, dup := seen[header]; dup {
			return nil, fmt.Errorf("duplicate column %q (columns %d and %d)", header, first+1, i+1)
		}
		seen[header] = i
		headers[i] = header
	}

	return headers, nil
}

// NewRecord keys row by headers. Short rows are padded with empty values.
// Cells beyond the header are tolerated only when they are empty (trailing
// delimiters); otherwise the row is an error. Values are kept verbatim.
func NewRecord(row, headers []string, rowNum int) (Record, error) {
	if len(row) > len(headers) {
		for _, extra := range row[len(headers):] {
			if extra != "" {
				return Record{}, fmt.Errorf("row %d has %d fields, header has %d", rowNum, len(row), len(headers))
			}
		}
	}

	fields := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			fields[header] = row[i]
		} else {
			fields[header] = ""
		}
	}

	return Record{Row: rowNum, Fields: fields}, nil
}

// BlankRow reports whether every cell of row is empty or whitespace.
func BlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
