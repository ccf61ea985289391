package spatial

import (
	"fmt"

	h3 "github.com/uber/h3-go/v4"
)

// AnnotateH3 sets Cell on every feature to the H3 index containing its
// point at the given resolution (0..15).
func AnnotateH3(c *Collection, resolution int) error {
	if resolution < 0 || resolution > 15 {
		return fmt.Errorf("h3 resolution %d out of range 0..15", resolution)
	}

	for i := range c.Features {
		f := &c.Features[i]
		cell, err := h3.LatLngToCell(h3.LatLng{Lat: f.Point.Lat(), Lng: f.Point.Lon()}, resolution)
		if err != nil {
			return fmt.Errorf("h3 index for row %d: %w", f.Record.Row, err)
		}
		f.Cell = cell.String()
	}

	return nil
}
