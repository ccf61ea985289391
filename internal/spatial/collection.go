// =============================================================================
// CSV to GeoJSON Converter - Spatial Collection
// =============================================================================
//
// This module turns a types.Table into a spatial Collection: every record
// gets an orb.Point built from its longitude and latitude columns, and the
// whole collection is tagged with a CRS.
//
// INVARIANTS:
//   - One feature per record, in record order.
//   - Point X is longitude, Point Y is latitude. Never swapped.
//   - A record without a usable coordinate aborts the build.
//
// =============================================================================

package spatial

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/validation"
)

// =============================================================================
// COLLECTION STRUCTURE
// =============================================================================

// Feature is one record together with its derived geometry.
type Feature struct {
	// Record is the source row, carried through unchanged.
	Record types.Record

	// Point is the geometry, (x=longitude, y=latitude).
	Point orb.Point

	// Cell is the H3 cell index of Point, set by AnnotateH3.
	Cell string
}

// Collection is the full set of features plus metadata.
type Collection struct {
	// Name is the layer name.
	Name string

	// CRS is the coordinate reference system of every Point.
	CRS CRS

	// Headers are the source column names in file order.
	Headers []string

	// LonColumn and LatColumn name the coordinate columns.
	LonColumn string
	LatColumn string

	// Features are in source order.
	Features []Feature
}

// Options configures Build.
type Options struct {
	// Name is the layer name.
	Name string

	// LonColumn and LatColumn name the coordinate columns.
	LonColumn string
	LatColumn string

	// CRS tags the collection. The zero value means WGS84.
	CRS CRS

	// CheckRanges rejects out-of-range coordinates.
	CheckRanges bool
}

// =============================================================================
// BUILD
// =============================================================================

// Build derives a point for every record of table.
//
// PARAMETERS:
//   - table: The parsed input.
//   - opts: Column names, CRS and validation options.
//
// RETURNS:
//   - The collection, one feature per record, in order.
//   - A *validation.MissingColumnsError if a coordinate column is absent.
//   - A *validation.CoordinateError for the first unusable value.
func Build(table *types.Table, opts Options) (*Collection, error) {
	if table == nil {
		return nil, fmt.Errorf("nil table")
	}

	if err := validation.RequireColumns(table.Headers, opts.LonColumn, opts.LatColumn); err != nil {
		return nil, err
	}

	crs := opts.CRS
	if crs.Code == 0 {
		crs = WGS84()
	}

	c := &Collection{
		Name:      opts.Name,
		CRS:       crs,
		Headers:   append([]string(nil), table.Headers...),
		LonColumn: opts.LonColumn,
		LatColumn: opts.LatColumn,
		Features:  make([]Feature, 0, len(table.Records)),
	}

	for _, record := range table.Records {
		point, err := pointFor(record, opts)
		if err != nil {
			return nil, err
		}
		c.Features = append(c.Features, Feature{Record: record, Point: point})
	}

	return c, nil
}

// pointFor parses the record's coordinates into a point.
func pointFor(record types.Record, opts Options) (orb.Point, error) {
	lonValue, _ := record.Value(opts.LonColumn)
	lon, err := validation.ParseCoordinate(lonValue, validation.Longitude, opts.CheckRanges)
	if err != nil {
		return orb.Point{}, validation.Located(err, record.Row, opts.LonColumn)
	}

	latValue, _ := record.Value(opts.LatColumn)
	lat, err := validation.ParseCoordinate(latValue, validation.Latitude, opts.CheckRanges)
	if err != nil {
		return orb.Point{}, validation.Located(err, record.Row, opts.LatColumn)
	}

	return orb.Point{lon, lat}, nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Len returns the number of features.
func (c *Collection) Len() int {
	return len(c.Features)
}

// Points returns the geometries in feature order.
func (c *Collection) Points() orb.MultiPoint {
	mp := make(orb.MultiPoint, len(c.Features))
	for i, f := range c.Features {
		mp[i] = f.Point
	}
	return mp
}

// Bound returns the bounding box of all points. The second result is false
// for an empty collection, whose bound is meaningless.
func (c *Collection) Bound() (orb.Bound, bool) {
	if len(c.Features) == 0 {
		return orb.Bound{}, false
	}
	return c.Points().Bound(), true
}
