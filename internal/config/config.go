// =============================================================================
// CSV to GeoJSON Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading and validating the converter
// configuration. Every setting has a default, so the configuration file is
// optional: an empty Config after applyDefaults converts
// data/map-dev_db_espaços-independentes.csv using the point_lon and
// point_lat columns.
//
// PRECEDENCE (lowest to highest):
//   1. Built-in defaults
//   2. YAML configuration file (--config)
//   3. Environment variables (GEOCONV_*)
//   4. Command-line flags and arguments (applied by the cmd package)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInput     = "data/map-dev_db_espaços-independentes.csv"
	DefaultOutput    = "data/map-dev_db_espaços-independentes.geojson"
	DefaultLayer     = "mapa-independente"
	DefaultLonColumn = "point_lon"
	DefaultLatColumn = "point_lat"
	DefaultCRS       = "EPSG:4326"

	DefaultH3Resolution = 9
	DefaultH3Property   = "h3_cell"
)

// Feature ID modes.
const (
	FeatureIDNone  = "none"
	FeatureIDIndex = "index"
	FeatureIDUUID  = "uuid"
)

// Environment variables that override file values.
const (
	EnvInput     = "GEOCONV_INPUT"
	EnvOutput    = "GEOCONV_OUTPUT"
	EnvLonColumn = "GEOCONV_LON_COLUMN"
	EnvLatColumn = "GEOCONV_LAT_COLUMN"
	EnvLogLevel  = "GEOCONV_LOG_LEVEL"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the converter configuration.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// Input is the path to the CSV (or XLSX) file to convert.
	Input string `yaml:"input"`

	// Output is the path of the GeoJSON file to write.
	// An existing file at this path is replaced.
	Output string `yaml:"output"`

	// =========================================================================
	// GEOMETRY SETTINGS
	// =========================================================================

	// LonColumn is the header of the longitude (x) column.
	LonColumn string `yaml:"lon_column"`

	// LatColumn is the header of the latitude (y) column.
	LatColumn string `yaml:"lat_column"`

	// CRS identifies the coordinate reference system of the input
	// coordinates. It is informational only; nothing is reprojected, so the
	// only accepted value is EPSG:4326 (alias OGC:CRS84).
	CRS string `yaml:"crs"`

	// CheckRanges rejects longitudes outside [-180,180] and latitudes
	// outside [-90,90]. A pointer so that an explicit false in YAML survives
	// applyDefaults.
	CheckRanges *bool `yaml:"check_ranges"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// GeoJSON holds the document options.
	GeoJSON GeoJSONSettings `yaml:"geojson"`

	// Properties controls which columns become feature properties.
	Properties PropertySettings `yaml:"properties"`

	// H3 optionally tags each feature with its H3 cell.
	H3 H3Settings `yaml:"h3"`

	// =========================================================================
	// READER SETTINGS
	// =========================================================================

	// CSV contains settings for parsing CSV input.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for reading spreadsheet input.
	XLSX XLSXSettings `yaml:"xlsx"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects "console" (human readable) or "json" output.
	LogFormat string `yaml:"log_format"`
}

// GeoJSONSettings contains options for the generated document.
type GeoJSONSettings struct {
	// Layer is written as the top-level "name" member.
	Layer string `yaml:"layer"`

	// WriteName controls whether the "name" member is written.
	WriteName *bool `yaml:"write_name"`

	// WriteCRS controls whether the legacy "crs" member is written.
	WriteCRS *bool `yaml:"write_crs"`

	// WriteBBox adds an RFC 7946 "bbox" member to the collection.
	WriteBBox bool `yaml:"write_bbox"`

	// Pretty indents the output with two spaces.
	Pretty bool `yaml:"pretty"`

	// FeatureIDs selects the feature "id" member: "none", "index", "uuid".
	FeatureIDs string `yaml:"feature_ids"`
}

// PropertySettings controls the mapping of columns to feature properties.
type PropertySettings struct {
	// KeepCoordinateColumns keeps the lon/lat columns as properties.
	KeepCoordinateColumns *bool `yaml:"keep_coordinate_columns"`

	// Exclude lists columns that are not written as properties.
	Exclude []string `yaml:"exclude"`

	// Rename maps a column header to the property key written instead.
	Rename map[string]string `yaml:"rename"`
}

// H3Settings controls H3 cell tagging.
type H3Settings struct {
	Enabled    bool   `yaml:"enabled"`
	Resolution int    `yaml:"resolution"`
	Property   string `yaml:"property"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the field separator.
	// Common values: "," (comma), ";" (semicolon), "|" (pipe), "tab"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the file, as a WHATWG label.
	// Common values: "UTF-8", "windows-1252", "ISO-8859-1"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// Comment, if set, marks lines starting with this character as comments.
	Comment string `yaml:"comment"`
}

// XLSXSettings contains settings for reading spreadsheets.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Default: the first sheet.
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// ACCESSORS
// =============================================================================

// RangeChecks reports whether coordinate range checks are enabled.
func (c *Config) RangeChecks() bool { return boolOr(c.CheckRanges, true) }

// KeepCoordinates reports whether the lon/lat columns stay in properties.
func (p PropertySettings) KeepCoordinates() bool { return boolOr(p.KeepCoordinateColumns, true) }

// NameMember reports whether the "name" member is written.
func (g GeoJSONSettings) NameMember() bool { return boolOr(g.WriteName, true) }

// CRSMember reports whether the "crs" member is written.
func (g GeoJSONSettings) CRSMember() bool { return boolOr(g.WriteCRS, true) }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bool returns a pointer to b, for building configs in code.
func Bool(b bool) *bool { return &b }

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path skips
//     the file and uses defaults plus environment overrides.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read or parsed, or the result is invalid.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.Input == "" {
		cfg.Input = DefaultInput
	}
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}
	if cfg.LonColumn == "" {
		cfg.LonColumn = DefaultLonColumn
	}
	if cfg.LatColumn == "" {
		cfg.LatColumn = DefaultLatColumn
	}
	if cfg.CRS == "" {
		cfg.CRS = DefaultCRS
	}
	if cfg.GeoJSON.Layer == "" {
		cfg.GeoJSON.Layer = DefaultLayer
	}
	if cfg.GeoJSON.FeatureIDs == "" {
		cfg.GeoJSON.FeatureIDs = FeatureIDNone
	}
	if cfg.H3.Property == "" {
		cfg.H3.Property = DefaultH3Property
	}
	if cfg.H3.Enabled && cfg.H3.Resolution == 0 {
		// An enabled block without a resolution gets the default.
		cfg.H3.Resolution = DefaultH3Resolution
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = ","
	}
	if cfg.CSV.Encoding == "" {
		cfg.CSV.Encoding = "UTF-8"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
}

// applyEnv overrides values from GEOCONV_* environment variables.
func applyEnv(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvInput, &cfg.Input},
		{EnvOutput, &cfg.Output},
		{EnvLonColumn, &cfg.LonColumn},
		{EnvLatColumn, &cfg.LatColumn},
		{EnvLogLevel, &cfg.LogLevel},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && strings.TrimSpace(v) != "" {
			*o.dst = strings.TrimSpace(v)
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the converter cannot honour.
func (c *Config) Validate() error {
	var errs []error

	if c.Input == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if c.Output == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if c.LonColumn == "" || c.LatColumn == "" {
		errs = append(errs, errors.New("lon_column and lat_column are required"))
	}
	if c.LonColumn != "" && c.LonColumn == c.LatColumn {
		errs = append(errs, fmt.Errorf("lon_column and lat_column must differ (both %q)", c.LonColumn))
	}

	switch strings.ToUpper(strings.TrimSpace(c.CRS)) {
	case "EPSG:4326", "OGC:CRS84", "CRS84":
	default:
		errs = append(errs, fmt.Errorf("unsupported crs %q: only EPSG:4326 is supported, no reprojection is performed", c.CRS))
	}

	switch c.GeoJSON.FeatureIDs {
	case FeatureIDNone, FeatureIDIndex, FeatureIDUUID:
	default:
		errs = append(errs, fmt.Errorf("unknown feature_ids mode %q (want none, index or uuid)", c.GeoJSON.FeatureIDs))
	}

	if c.H3.Enabled && (c.H3.Resolution < 0 || c.H3.Resolution > 15) {
		errs = append(errs, fmt.Errorf("h3 resolution %d out of range 0..15", c.H3.Resolution))
	}

	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log_format %q (want console or json)", c.LogFormat))
	}

	return errors.Join(errs...)
}
