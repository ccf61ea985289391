package geojsonwriter

import (
	"fmt"

	"github.com/paulmach/orb/geojson"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/spatial"
)

// PropertyOptions controls which columns become feature properties and under
// which keys.
type PropertyOptions struct {
	// KeepCoordinateColumns keeps the lon/lat columns as properties.
	KeepCoordinateColumns bool

	// Exclude lists columns that are dropped.
	Exclude []string

	// Rename maps a column header to the property key written instead.
	Rename map[string]string

	// H3Property, if set, receives each feature's H3 cell.
	H3Property string
}

// PropertyMapper maps a feature's record to its properties.
type PropertyMapper struct {
	columns []string // source columns, in header order
	keys    []string // output key per column
	h3Key   string
}

// NewPropertyMapper resolves the output key for every header.
//
// RETURNS:
//   - An error if Exclude or Rename name an unknown column, or if two
//     columns (or the H3 property) would be written under the same key.
func NewPropertyMapper(headers []string, lonColumn, latColumn string, opts PropertyOptions) (*PropertyMapper, error) {
	known := make(map[string]bool, len(headers))
	for _, h := range headers {
		known[h] = true
	}

	excluded := make(map[string]bool, len(opts.Exclude)+2)
	for _, col := range opts.Exclude {
		if !known[col] {
			return nil, fmt.Errorf("excluded column %q is not in the input", col)
		}
		excluded[col] = true
	}
	if !opts.KeepCoordinateColumns {
		excluded[lonColumn] = true
		excluded[latColumn] = true
	}

	for col := range opts.Rename {
		if !known[col] {
			return nil, fmt.Errorf("renamed column %q is not in the input", col)
		}
	}

	m := &PropertyMapper{h3Key: opts.H3Property}
	used := make(map[string]string, len(headers))

	for _, h := range headers {
		if excluded[h] {
			continue
		}

		key := h
		if renamed, ok := opts.Rename[h]; ok && renamed != "" {
			key = renamed
		}

		if prev, clash := used[key]; clash {
			return nil, fmt.Errorf("columns %q and %q both map to property %q", prev, h, key)
		}
		used[key] = h

		m.columns = append(m.columns, h)
		m.keys = append(m.keys, key)
	}

	if m.h3Key != "" {
		if prev, clash := used[m.h3Key]; clash {
			return nil, fmt.Errorf("h3 property %q clashes with column %q", m.h3Key, prev)
		}
	}

	return m, nil
}

// Keys returns the output property keys in header order.
func (m *PropertyMapper) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Map returns the properties of one feature.
func (m *PropertyMapper) Map(f spatial.Feature) geojson.Properties {
	props := make(geojson.Properties, len(m.columns)+1)
	for i, col := range m.columns {
		props[m.keys[i]] = f.Record.Fields[col]
	}
	if m.h3Key != "" && f.Cell != "" {
		props[m.h3Key] = f.Cell
	}
	return props
}
