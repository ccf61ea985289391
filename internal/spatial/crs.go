package spatial

import (
	"fmt"
	"strings"
)

// CRS identifies a coordinate reference system. It is metadata only: no
// coordinate is ever transformed.
type CRS struct {
	Code int    // EPSG code (4326 for WGS84)
	Name string // human readable name
}

// WGS84 returns the WGS84 geographic CRS (EPSG:4326).
func WGS84() CRS {
	return CRS{Code: 4326, Name: "WGS 84"}
}

// String returns the "EPSG:<code>" form.
func (c CRS) String() string {
	return fmt.Sprintf("EPSG:%d", c.Code)
}

// URN returns the identifier written in a GeoJSON "crs" member.
// EPSG:4326 is written as OGC CRS84, which fixes lon/lat axis order.
func (c CRS) URN() string {
	if c.Code == 4326 {
		return "urn:ogc:def:crs:OGC:1.3:CRS84"
	}
	return fmt.Sprintf("urn:ogc:def:crs:EPSG::%d", c.Code)
}

// ParseCRS accepts "EPSG:4326", "OGC:CRS84" or "CRS84". Other systems would
// need reprojection and are rejected.
func ParseCRS(s string) (CRS, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "EPSG:4326", "OGC:CRS84", "CRS84":
		return WGS84(), nil
	}
	return CRS{}, fmt.Errorf("unsupported crs %q: only EPSG:4326 is supported", s)
}
