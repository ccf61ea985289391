// =============================================================================
// CSV to GeoJSON Converter - Shared Types
// =============================================================================
//
// This package contains the tabular types shared by the input readers and the
// spatial model. Types defined here are used by:
//   - csvparser
//   - xlsxparser
//   - spatial
//   - geojsonwriter
//
// =============================================================================

package types

// =============================================================================
// TABULAR TYPES
// =============================================================================

// Record represents a single data row of the input file.
type Record struct {
	// Row is the 1-based line number in the source file.
	// The header is row 1, so the first data row is usually row 2.
	// Used for error reporting.
	Row int

	// Fields contains the cell values keyed by column header.
	// Values are kept verbatim, whitespace included.
	Fields map[string]string
}

// Value returns the value of a column and whether the column is present.
func (r Record) Value(column string) (string, bool) {
	v, ok := r.Fields[column]
	return v, ok
}

// Table is an ordered, in-memory view of a tabular input file.
type Table struct {
	// Headers contains the column headers in file order.
	Headers []string

	// Records contains the data rows in file order.
	Records []Record

	// SourceFile is the path of the file the table was read from.
	SourceFile string

	// Skipped lists the source row numbers of rows left out because every
	// cell was blank.
	Skipped []int
}

// HasColumn reports whether the table has a column with the given header.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.Records)
}
