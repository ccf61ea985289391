// =============================================================================
// CSV to GeoJSON Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the geoconv CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   geoconv convert [input] [output]  - Convert a table of points to GeoJSON
//   geoconv validate [input]          - Check a file without writing output
//   geoconv version                   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Readers, validation, spatial model, GeoJSON writer
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/cmd"
)

func main() {
	cmd.Execute()
}
