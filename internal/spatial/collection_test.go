package spatial

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/validation"
)

func table(rows ...map[string]string) *types.Table {
	t := &types.Table{Headers: []string{"name", "point_lon", "point_lat"}}
	for i, r := range rows {
		t.Records = append(t.Records, types.Record{Row: i + 2, Fields: r})
	}
	return t
}

func defaultOptions() Options {
	return Options{Name: "layer", LonColumn: "point_lon", LatColumn: "point_lat", CheckRanges: true}
}

func TestBuild_LonLatOrderAndRecordOrder(t *testing.T) {
	tb := table(
		map[string]string{"name": "Café Central", "point_lon": "-9.1393", "point_lat": "38.7223"},
		map[string]string{"name": "Porto", "point_lon": "-8.61", "point_lat": "41.15"},
	)

	c, err := Build(tb, defaultOptions())
	require.NoError(t, err)

	require.Equal(t, 2, c.Len())
	assert.Equal(t, orb.Point{-9.1393, 38.7223}, c.Features[0].Point)
	assert.Equal(t, -9.1393, c.Features[0].Point.Lon())
	assert.Equal(t, 38.7223, c.Features[0].Point.Lat())
	assert.Equal(t, "Café Central", c.Features[0].Record.Fields["name"])
	assert.Equal(t, "Porto", c.Features[1].Record.Fields["name"])

	assert.Equal(t, WGS84(), c.CRS)
	assert.Equal(t, "layer", c.Name)
	assert.Equal(t, tb.Headers, c.Headers)
}

func TestBuild_MissingColumns(t *testing.T) {
	tb := &types.Table{Headers: []string{"name", "lon", "lat"}}

	_, err := Build(tb, defaultOptions())
	require.Error(t, err)

	var mc *validation.MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, []string{"point_lon", "point_lat"}, mc.Columns)
}

func TestBuild_BadCoordinateIsLocated(t *testing.T) {
	tb := table(
		map[string]string{"name": "ok", "point_lon": "1", "point_lat": "2"},
		map[string]string{"name": "bad", "point_lon": "3", "point_lat": ""},
	)

	_, err := Build(tb, defaultOptions())
	require.Error(t, err)

	var ce *validation.CoordinateError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.Row)
	assert.Equal(t, "point_lat", ce.Column)
}

func TestBuild_SwappedColumnsCaughtByRangeCheck(t *testing.T) {
	// Latitude-looking value in the longitude column and vice versa is only
	// detectable when the latitude is out of range.
	tb := table(map[string]string{"name": "x", "point_lon": "38.7", "point_lat": "-120.5"})

	_, err := Build(tb, defaultOptions())
	assert.ErrorIs(t, err, validation.ErrInvalidCoordinate)

	opts := defaultOptions()
	opts.CheckRanges = false
	c, err := Build(tb, opts)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{38.7, -120.5}, c.Features[0].Point)
}

func TestBuild_Empty(t *testing.T) {
	c, err := Build(table(), defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	_, ok := c.Bound()
	assert.False(t, ok)

	_, err = Build(nil, defaultOptions())
	assert.Error(t, err)
}

func TestCollection_Bound(t *testing.T) {
	tb := table(
		map[string]string{"point_lon": "-9.1", "point_lat": "38.7"},
		map[string]string{"point_lon": "-7.9", "point_lat": "41.1"},
		map[string]string{"point_lon": "-8.6", "point_lat": "37.0"},
	)

	c, err := Build(tb, defaultOptions())
	require.NoError(t, err)

	b, ok := c.Bound()
	require.True(t, ok)
	assert.Equal(t, orb.Point{-9.1, 37.0}, b.Min)
	assert.Equal(t, orb.Point{-7.9, 41.1}, b.Max)
}

func TestCRS(t *testing.T) {
	crs, err := ParseCRS("epsg:4326")
	require.NoError(t, err)
	assert.Equal(t, 4326, crs.Code)
	assert.Equal(t, "EPSG:4326", crs.String())
	assert.Equal(t, "urn:ogc:def:crs:OGC:1.3:CRS84", crs.URN())

	_, err = ParseCRS("EPSG:3857")
	assert.Error(t, err)

	assert.Equal(t, "urn:ogc:def:crs:EPSG::3763", CRS{Code: 3763}.URN())
}

func TestAnnotateH3(t *testing.T) {
	tb := table(
		map[string]string{"point_lon": "-9.1393", "point_lat": "38.7223"},
		map[string]string{"point_lon": "-9.1393", "point_lat": "38.7223"},
		map[string]string{"point_lon": "-8.61", "point_lat": "41.15"},
	)

	c, err := Build(tb, defaultOptions())
	require.NoError(t, err)
	require.NoError(t, AnnotateH3(c, 9))

	assert.Len(t, c.Features[0].Cell, 15)
	assert.Equal(t, c.Features[0].Cell, c.Features[1].Cell)
	assert.NotEqual(t, c.Features[0].Cell, c.Features[2].Cell)

	assert.Error(t, AnnotateH3(c, 16))
	assert.Error(t, AnnotateH3(c, -1))
}
