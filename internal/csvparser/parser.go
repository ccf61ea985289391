// =============================================================================
// CSV to GeoJSON Converter - CSV Parser Module
// =============================================================================
//
// This module reads a delimited text file into an ordered types.Table. It
// handles:
//   - Different delimiters (comma, semicolon, pipe, tab)
//   - Non-UTF-8 encodings (any WHATWG label, via golang.org/x/text)
//   - A leading byte order mark
//   - Quoted fields, including embedded newlines
//
// RULES:
//   - The first record is the header row.
//   - Empty headers become "Column_N"; duplicate headers are an error.
//   - Cell values are kept exactly as read, whitespace included.
//   - Rows shorter than the header are padded with empty values.
//   - Rows longer than the header are an error unless the extra cells are
//     empty (trailing delimiters).
//   - Rows whose cells are all blank are left out and listed in
//     Table.Skipped.
//   - With the UTF-8 encoding, invalid byte sequences are an error.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/types"
)

// ErrEmptyFile is returned when the input has no header row.
var ErrEmptyFile = errors.New("CSV file is empty")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the parsed table.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the Table containing headers and records in file order.
//   - An error if the file cannot be read or parsed.
func Parse(filePath string, settings config.CSVSettings) (*types.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseReader(file, filePath, settings)
}

// ParseReader parses CSV data from r. source is recorded as the table's
// SourceFile and used in error messages.
func ParseReader(r io.Reader, source string, settings config.CSVSettings) (*types.Table, error) {
	decoded, err := decodeReader(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(bufio.NewReader(decoded))
	if err := configureReader(csvReader, settings); err != nil {
		return nil, err
	}

	// =========================================================================
	// HEADER ROW
	// =========================================================================

	headerRow, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headers, err := types.CleanHeaders(headerRow)
	if err != nil {
		return nil, fmt.Errorf("failed to extract headers: %w", err)
	}

	// =========================================================================
	// DATA ROWS
	// =========================================================================

	table := &types.Table{
		Headers:    headers,
		Records:    []types.Record{},
		SourceFile: source,
	}

	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		line, _ := csvReader.FieldPos(0)

		if types.BlankRow(row) {
			table.Skipped = append(table.Skipped, line)
			continue
		}

		record, err := types.NewRecord(row, headers, line)
		if err != nil {
			return nil, err
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// decodeReader wraps r so that it yields UTF-8 text without a BOM.
//
// The encoding name is a WHATWG label ("utf-8", "windows-1252", "latin1",
// ...). A BOM, when present, takes precedence over the configured encoding.
// UTF-8 input is validated, not repaired: a malformed byte sequence fails
// the read with encoding.ErrInvalidUTF8.
func decodeReader(r io.Reader, encodingName string) (io.Reader, error) {
	if strings.TrimSpace(encodingName) == "" {
		encodingName = "utf-8"
	}

	enc, err := htmlindex.Get(strings.TrimSpace(encodingName))
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", encodingName, err)
	}

	var fallback transform.Transformer = enc.NewDecoder()
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		fallback = encoding.UTF8Validator
	}

	return transform.NewReader(r, unicode.BOMOverride(fallback)), nil
}

// configureReader configures the CSV reader based on the settings.
func configureReader(reader *csv.Reader, settings config.CSVSettings) error {
	switch settings.Delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	case "", ",", "comma":
		reader.Comma = ','
	default:
		r, size := utf8.DecodeRuneInString(settings.Delimiter)
		if size != len(settings.Delimiter) {
			return fmt.Errorf("delimiter must be a single character, got %q", settings.Delimiter)
		}
		reader.Comma = r
	}

	if settings.Comment != "" {
		r, size := utf8.DecodeRuneInString(settings.Comment)
		if size != len(settings.Comment) {
			return fmt.Errorf("comment must be a single character, got %q", settings.Comment)
		}
		if r == reader.Comma {
			return fmt.Errorf("comment character %q equals the delimiter", settings.Comment)
		}
		reader.Comment = r
	}

	// Row lengths are checked against the header in types.NewRecord.
	reader.FieldsPerRecord = -1

	reader.LazyQuotes = true

	return nil
}
