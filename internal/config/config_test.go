package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvInput, EnvOutput, EnvLonColumn, EnvLatColumn, EnvLogLevel} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geoconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, "point_lon", cfg.LonColumn)
	assert.Equal(t, "point_lat", cfg.LatColumn)
	assert.Equal(t, "EPSG:4326", cfg.CRS)
	assert.Equal(t, "mapa-independente", cfg.GeoJSON.Layer)
	assert.Equal(t, FeatureIDNone, cfg.GeoJSON.FeatureIDs)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "UTF-8", cfg.CSV.Encoding)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)

	assert.True(t, cfg.RangeChecks())
	assert.True(t, cfg.Properties.KeepCoordinates())
	assert.True(t, cfg.GeoJSON.NameMember())
	assert.True(t, cfg.GeoJSON.CRSMember())
	assert.False(t, cfg.H3.Enabled)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
input: in.csv
output: out/points.geojson
lon_column: x
lat_column: y
check_ranges: false
geojson:
  layer: sites
  write_crs: false
  write_bbox: true
  pretty: true
  feature_ids: uuid
properties:
  keep_coordinate_columns: false
  exclude: [notes]
  rename:
    nome: name
h3:
  enabled: true
csv:
  delimiter: ";"
  encoding: windows-1252
xlsx:
  sheet: Pontos
log_format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "in.csv", cfg.Input)
	assert.Equal(t, "out/points.geojson", cfg.Output)
	assert.Equal(t, "x", cfg.LonColumn)
	assert.Equal(t, "y", cfg.LatColumn)
	assert.False(t, cfg.RangeChecks())

	assert.Equal(t, "sites", cfg.GeoJSON.Layer)
	assert.True(t, cfg.GeoJSON.NameMember())
	assert.False(t, cfg.GeoJSON.CRSMember())
	assert.True(t, cfg.GeoJSON.WriteBBox)
	assert.True(t, cfg.GeoJSON.Pretty)
	assert.Equal(t, FeatureIDUUID, cfg.GeoJSON.FeatureIDs)

	assert.False(t, cfg.Properties.KeepCoordinates())
	assert.Equal(t, []string{"notes"}, cfg.Properties.Exclude)
	assert.Equal(t, map[string]string{"nome": "name"}, cfg.Properties.Rename)

	assert.True(t, cfg.H3.Enabled)
	assert.Equal(t, DefaultH3Resolution, cfg.H3.Resolution)
	assert.Equal(t, DefaultH3Property, cfg.H3.Property)

	assert.Equal(t, ";", cfg.CSV.Delimiter)
	assert.Equal(t, "windows-1252", cfg.CSV.Encoding)
	assert.Equal(t, "Pontos", cfg.XLSX.Sheet)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInput, "  from-env.csv ")
	t.Setenv(EnvLonColumn, "lng")
	t.Setenv(EnvLogLevel, "debug")

	path := writeConfig(t, "input: from-file.csv\nlon_column: x\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", cfg.Input)
	assert.Equal(t, "lng", cfg.LonColumn)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	_, err = Load(writeConfig(t, "input: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")

	_, err = Load(writeConfig(t, "crs: EPSG:3857\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported crs")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"same columns", func(c *Config) { c.LatColumn = c.LonColumn }, "must differ"},
		{"empty column", func(c *Config) { c.LonColumn = "" }, "lon_column and lat_column are required"},
		{"empty output", func(c *Config) { c.Output = "" }, "output path is required"},
		{"feature ids", func(c *Config) { c.GeoJSON.FeatureIDs = "serial" }, "feature_ids"},
		{"h3 resolution", func(c *Config) { c.H3 = H3Settings{Enabled: true, Resolution: 16} }, "out of range"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"crs", func(c *Config) { c.CRS = "EPSG:27700" }, "unsupported crs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.CRS = "OGC:CRS84"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Input = ""
	cfg.LogFormat = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input path is required")
	assert.Contains(t, err.Error(), "log_format")
}
