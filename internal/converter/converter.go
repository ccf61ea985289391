// =============================================================================
// CSV to GeoJSON Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the entire
// conversion pipeline for a single file, from table parsing to GeoJSON output.
//
// CONVERSION PIPELINE:
//   1. Read the input table (CSV, or an XLSX sheet)
//   2. Check that the coordinate columns exist
//   3. Build a point for every record
//   4. Tag the collection with its CRS
//   5. Optionally tag each feature with its H3 cell
//   6. Generate the GeoJSON document
//   7. Write the output file atomically
//
// FAILURE MODEL:
//   The first error aborts the run. Nothing is written until the whole
//   document has been generated, and the write itself replaces the target
//   in a single rename, so a failed run leaves any existing output intact.
//
// =============================================================================

package converter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/geojsonwriter"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/spatial"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/xlsxparser"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the path to the input file that was processed.
	InputFile string

	// OutputFile is the path to the generated GeoJSON file.
	// This is empty if processing failed or was a dry run.
	OutputFile string

	// Success indicates whether the processing was successful.
	Success bool

	// Error contains the error if processing failed.
	// This is nil if processing was successful.
	Error error

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsRead is the number of data records read from the input.
	RowsRead int

	// RowsSkipped is the number of rows left out because every cell was blank.
	RowsSkipped int

	// FeaturesWritten is the number of features in the generated document.
	FeaturesWritten int

	// BytesWritten is the size of the output file.
	BytesWritten int

	// Bounds is the bounding box of all points. Zero for an empty input.
	Bounds orb.Bound

	// ProcessingTime is the time taken to process the file.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single input file to GeoJSON.
type Converter struct {
	cfg    *config.Config
	logger zerolog.Logger
	dryRun bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. The default is the global zerolog logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Converter) { c.logger = l }
}

// WithDryRun runs the whole pipeline but skips the final write.
func WithDryRun(dryRun bool) Option {
	return func(c *Converter) { c.dryRun = dryRun }
}

// =============================================================================
// CONSTRUCTORS
// =============================================================================

// New creates a new Converter instance.
//
// PARAMETERS:
//   - cfg: The converter configuration. Input and Output name the files.
//   - opts: Optional settings.
//
// RETURNS:
//   - A new Converter instance.
func New(cfg *config.Config, opts ...Option) *Converter {
	c := &Converter{
		cfg:    cfg,
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert reads the table at inputPath and writes a GeoJSON FeatureCollection
// to outputPath, using the point_lon and point_lat columns as WGS84
// coordinates. Any existing file at outputPath is replaced.
func Convert(inputPath, outputPath string) error {
	cfg := config.Default()
	cfg.Input = inputPath
	cfg.Output = outputPath

	return New(cfg, WithLogger(zerolog.Nop())).Run().Error
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the file.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run() Result {
	startTime := time.Now()
	result := Result{
		InputFile: c.cfg.Input,
		Success:   false,
	}

	logger := c.logger.With().Str("input", c.cfg.Input).Logger()

	// =========================================================================
	// STEP 1: READ INPUT TABLE
	// =========================================================================

	logger.Debug().Msg("reading input")

	table, err := readTable(c.cfg)
	if err != nil {
		result.Error = fmt.Errorf("failed to read input: %w", err)
		return result
	}

	result.Stats.RowsRead = table.Len()
	result.Stats.RowsSkipped = len(table.Skipped)
	logger.Debug().Int("rows", table.Len()).Strs("columns", table.Headers).Msg("parsed input")

	if len(table.Skipped) > 0 {
		logger.Warn().Ints("rows", table.Skipped).Msg("skipped blank rows")
	}

	// =========================================================================
	// STEPS 2-4: VALIDATE COLUMNS, BUILD POINTS, ATTACH CRS
	// =========================================================================
	// spatial.Build checks the coordinate columns before touching any record
	// and stops at the first unusable coordinate.

	crs, err := spatial.ParseCRS(c.cfg.CRS)
	if err != nil {
		result.Error = err
		return result
	}

	collection, err := spatial.Build(table, spatial.Options{
		Name:        c.cfg.GeoJSON.Layer,
		LonColumn:   c.cfg.LonColumn,
		LatColumn:   c.cfg.LatColumn,
		CRS:         crs,
		CheckRanges: c.cfg.RangeChecks(),
	})
	if err != nil {
		result.Error = err
		return result
	}

	if bound, ok := collection.Bound(); ok {
		result.Stats.Bounds = bound
	}
	logger.Debug().Int("features", collection.Len()).Str("crs", crs.String()).Msg("built points")

	// =========================================================================
	// STEP 5: H3 CELLS
	// =========================================================================

	if c.cfg.H3.Enabled {
		if err := spatial.AnnotateH3(collection, c.cfg.H3.Resolution); err != nil {
			result.Error = fmt.Errorf("failed to compute h3 cells: %w", err)
			return result
		}
		logger.Debug().Int("resolution", c.cfg.H3.Resolution).Msg("tagged h3 cells")
	}

	// =========================================================================
	// STEP 6: GENERATE GEOJSON DOCUMENT
	// =========================================================================

	doc, err := geojsonwriter.Generate(collection, geojsonwriter.OptionsFromConfig(c.cfg))
	if err != nil {
		result.Error = fmt.Errorf("failed to generate GeoJSON: %w", err)
		return result
	}

	result.Stats.FeaturesWritten = collection.Len()

	// =========================================================================
	// STEP 7: WRITE OUTPUT FILE
	// =========================================================================

	if c.dryRun {
		result.Success = true
		result.Stats.ProcessingTime = time.Since(startTime)
		logger.Info().
			Int("features", collection.Len()).
			Int("bytes", len(doc)).
			Dur("duration", result.Stats.ProcessingTime).
			Msg("dry run, nothing written")
		return result
	}

	if err := writeOutput(c.cfg.Output, doc); err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return result
	}

	result.OutputFile = c.cfg.Output
	result.Stats.BytesWritten = len(doc)

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	result.Stats.ProcessingTime = time.Since(startTime)

	logger.Info().
		Str("output", result.OutputFile).
		Int("features", result.Stats.FeaturesWritten).
		Dur("duration", result.Stats.ProcessingTime).
		Msg("conversion complete")

	return result
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// readTable selects the reader by file extension.
func readTable(cfg *config.Config) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(cfg.Input)) {
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(cfg.Input, cfg.XLSX)
	default:
		return csvparser.Parse(cfg.Input, cfg.CSV)
	}
}

// writeOutput creates the output directory and replaces the output file.
func writeOutput(path string, doc []byte) error {
	if err := utils.EnsureParentDir(path); err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, doc, 0o644)
}
