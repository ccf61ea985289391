// =============================================================================
// CSV to GeoJSON Converter - GeoJSON Writer Module
// =============================================================================
//
// This module serializes a spatial.Collection as a GeoJSON FeatureCollection
// using github.com/paulmach/orb/geojson.
//
// DOCUMENT STRUCTURE:
//
//   {
//     "type": "FeatureCollection",
//     "name": "mapa-independente",                        <- WriteName
//     "crs": {"type": "name", "properties":               <- WriteCRS
//             {"name": "urn:ogc:def:crs:OGC:1.3:CRS84"}},
//     "bbox": [minLon, minLat, maxLon, maxLat],           <- WriteBBox
//     "features": [
//       {
//         "type": "Feature",
//         "id": 1,                                        <- FeatureIDs
//         "geometry": {"type": "Point", "coordinates": [lon, lat]},
//         "properties": {"name": "Café Central", ...}
//       }
//     ]
//   }
//
// "crs" is not part of RFC 7946; it is written for readers that still look
// for it and carries no reprojection meaning. Property values are the source
// strings, unchanged.
//
// =============================================================================

package geojsonwriter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/spatial"
)

// =============================================================================
// GENERATION OPTIONS
// =============================================================================

// Options contains options for GeoJSON generation.
type Options struct {
	// Pretty indents the document with two spaces.
	Pretty bool

	// WriteName writes the collection name as a top-level "name" member.
	WriteName bool

	// WriteCRS writes the legacy "crs" member.
	WriteCRS bool

	// WriteBBox writes the RFC 7946 "bbox" member for non-empty collections.
	WriteBBox bool

	// FeatureIDs selects the feature "id": config.FeatureIDNone,
	// config.FeatureIDIndex (1-based position) or config.FeatureIDUUID.
	FeatureIDs string

	// Properties controls the column to property mapping.
	Properties PropertyOptions

	// NewID generates IDs in uuid mode. Defaults to uuid.NewString.
	NewID func() string
}

// DefaultOptions returns the default generation options.
func DefaultOptions() Options {
	return Options{
		WriteName:  true,
		WriteCRS:   true,
		FeatureIDs: config.FeatureIDNone,
		Properties: PropertyOptions{KeepCoordinateColumns: true},
	}
}

// OptionsFromConfig maps the converter configuration onto writer options.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := Options{
		Pretty:     cfg.GeoJSON.Pretty,
		WriteName:  cfg.GeoJSON.NameMember(),
		WriteCRS:   cfg.GeoJSON.CRSMember(),
		WriteBBox:  cfg.GeoJSON.WriteBBox,
		FeatureIDs: cfg.GeoJSON.FeatureIDs,
		Properties: PropertyOptions{
			KeepCoordinateColumns: cfg.Properties.KeepCoordinates(),
			Exclude:               cfg.Properties.Exclude,
			Rename:                cfg.Properties.Rename,
		},
	}
	if cfg.H3.Enabled {
		opts.Properties.H3Property = cfg.H3.Property
	}
	return opts
}

// =============================================================================
// GENERATION FUNCTIONS
// =============================================================================

// BuildFeatureCollection converts a collection into an orb FeatureCollection.
//
// PARAMETERS:
//   - c: The spatial collection.
//   - opts: Generation options.
//
// RETURNS:
//   - The FeatureCollection, one Feature per collection feature, in order.
//   - An error if the property mapping is invalid.
func BuildFeatureCollection(c *spatial.Collection, opts Options) (*geojson.FeatureCollection, error) {
	mapper, err := NewPropertyMapper(c.Headers, c.LonColumn, c.LatColumn, opts.Properties)
	if err != nil {
		return nil, err
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	fc := geojson.NewFeatureCollection()

	for i, f := range c.Features {
		feature := geojson.NewFeature(f.Point)
		feature.Properties = mapper.Map(f)

		switch opts.FeatureIDs {
		case config.FeatureIDIndex:
			feature.ID = i + 1
		case config.FeatureIDUUID:
			feature.ID = newID()
		case config.FeatureIDNone, "":
		default:
			return nil, fmt.Errorf("unknown feature id mode %q", opts.FeatureIDs)
		}

		fc.Append(feature)
	}

	if opts.WriteBBox {
		if bound, ok := c.Bound(); ok {
			fc.BBox = geojson.NewBBox(bound)
		}
	}

	members := geojson.Properties{}
	if opts.WriteName && c.Name != "" {
		members["name"] = c.Name
	}
	if opts.WriteCRS {
		members["crs"] = map[string]any{
			"type":       "name",
			"properties": map[string]any{"name": c.CRS.URN()},
		}
	}
	if len(members) > 0 {
		fc.ExtraMembers = members
	}

	return fc, nil
}

// Generate serializes the collection to GeoJSON bytes.
// The document is UTF-8 and ends with a newline.
func Generate(c *spatial.Collection, opts Options) ([]byte, error) {
	fc, err := BuildFeatureCollection(c, opts)
	if err != nil {
		return nil, err
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}

	if opts.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to indent GeoJSON: %w", err)
		}
		data = buf.Bytes()
	}

	return append(data, '\n'), nil
}

// =============================================================================
// READING BACK
// =============================================================================

// ReadFeatureCollection reads a GeoJSON FeatureCollection from a file.
func ReadFeatureCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read GeoJSON: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	return fc, nil
}

// Points extracts the point of every feature, in order. Any non-point
// geometry is an error.
func Points(fc *geojson.FeatureCollection) ([]orb.Point, error) {
	points := make([]orb.Point, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("feature %d: geometry is %T, not a point", i, f.Geometry)
		}
		points[i] = p
	}
	return points, nil
}
