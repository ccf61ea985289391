// =============================================================================
// CSV to GeoJSON Converter - Validation Engine
// =============================================================================
//
// This module checks the two things the conversion cannot do without:
//   - The coordinate columns exist in the input header.
//   - Every coordinate value is a finite decimal number in range.
//
// ERROR HANDLING:
//   Validation is fail-fast. The first problem stops the conversion and is
//   reported with the row number, column name, and offending value. Values are
//   never coerced to a default coordinate.
//
//   Both error types unwrap to a sentinel so callers can use errors.Is:
//     - ErrMissingColumns
//     - ErrInvalidCoordinate
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

var (
	// ErrMissingColumns reports that required columns are absent.
	ErrMissingColumns = errors.New("required column missing")

	// ErrInvalidCoordinate reports an unusable coordinate value.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
)

// MissingColumnsError lists every required column absent from a header.
type MissingColumnsError struct {
	// Columns are the missing column names, in the order they were required.
	Columns []string

	// Available are the headers that were present.
	Available []string
}

// Error implements the error interface.
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s (available columns: %s)",
		ErrMissingColumns, quoteAll(e.Columns), quoteAll(e.Available))
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}
	return strings.Join(quoted, ", ")
}

// Unwrap returns ErrMissingColumns.
func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// CoordinateError describes a coordinate value that cannot become a point.
type CoordinateError struct {
	// Row is the 1-based source row number (0 when unknown).
	Row int

	// Column is the column the value came from.
	Column string

	// Value is the raw value as read.
	Value string

	// Reason is a short description of the problem.
	Reason string
}

// Error implements the error interface.
func (e *CoordinateError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidCoordinate.Error())
	if e.Row > 0 {
		fmt.Fprintf(&sb, " at row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&sb, ", column %q", e.Column)
	}
	fmt.Fprintf(&sb, ": %s (value %q)", e.Reason, e.Value)
	return sb.String()
}

// Unwrap returns ErrInvalidCoordinate.
func (e *CoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// =============================================================================
// COLUMN CHECKS
// =============================================================================

// RequireColumns checks that every required column is present in headers.
//
// RETURNS:
//   - nil when all columns are present.
//   - A *MissingColumnsError listing every absent column otherwise.
func RequireColumns(headers []string, required ...string) error {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []string
	for _, col := range required {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &MissingColumnsError{
		Columns:   missing,
		Available: append([]string(nil), headers...),
	}
}

// =============================================================================
// COORDINATE CHECKS
// =============================================================================

// Axis identifies which coordinate a value is and carries its valid range.
type Axis struct {
	Name string
	Min  float64
	Max  float64
}

var (
	// Longitude is the x axis, degrees east.
	Longitude = Axis{Name: "longitude", Min: -180, Max: 180}

	// Latitude is the y axis, degrees north.
	Latitude = Axis{Name: "latitude", Min: -90, Max: 90}
)

// ParseCoordinate parses a decimal-degree value.
//
// PARAMETERS:
//   - value: The raw cell value. Surrounding whitespace is ignored.
//   - axis: Longitude or Latitude.
//   - checkRange: Reject values outside the axis range.
//
// RETURNS:
//   - The parsed value.
//   - A *CoordinateError (without row/column) when the value is empty,
//     not a number, not finite, or out of range.
//
// Decimal commas ("38,7223") are rejected rather than guessed at.
func ParseCoordinate(value string, axis Axis, checkRange bool) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, &CoordinateError{Value: value, Reason: "empty " + axis.Name}
	}

	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &CoordinateError{Value: value, Reason: axis.Name + " is not a number"}
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &CoordinateError{Value: value, Reason: axis.Name + " is not finite"}
	}

	if checkRange && (v < axis.Min || v > axis.Max) {
		return 0, &CoordinateError{
			Value:  value,
			Reason: fmt.Sprintf("%s out of range [%g, %g]", axis.Name, axis.Min, axis.Max),
		}
	}

	return v, nil
}

// Located returns err with row and column filled in when it is a
// *CoordinateError; other errors are returned unchanged.
func Located(err error, row int, column string) error {
	var ce *CoordinateError
	if errors.As(err, &ce) {
		located := *ce
		located.Row = row
		located.Column = column
		return &located
	}
	return err
}
