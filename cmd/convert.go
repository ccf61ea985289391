// =============================================================================
// CSV to GeoJSON Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which is the main command for
// converting a table of points to GeoJSON.
//
// COMMAND USAGE:
//   geoconv convert [input] [output] [flags]
//
// FLAGS:
//   --input, -i      : Input file (CSV, or .xlsx/.xlsm)
//   --output, -o     : Output GeoJSON file
//   --lon-column     : Longitude column header
//   --lat-column     : Latitude column header
//   --layer          : Layer name written as the collection "name"
//   --sheet          : Worksheet to read from an XLSX input
//   --pretty         : Indent the output
//   --bbox           : Write the collection bounding box
//   --ids            : Feature ids: none, index or uuid
//   --h3-resolution  : Tag each feature with its H3 cell at this resolution
//   --dry-run        : Run the whole pipeline without writing the output
//
// PRECEDENCE:
//   Positional arguments override --input/--output, which override the
//   environment, which overrides the configuration file.
//
// =============================================================================

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/converter"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// convertFlags holds the values of the convert command's local flags.
type convertFlags struct {
	input        string
	output       string
	lonColumn    string
	latColumn    string
	layer        string
	sheet        string
	pretty       bool
	bbox         bool
	ids          string
	h3Resolution int
	dryRun       bool
}

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

func newConvertCmd(opts *rootOptions) *cobra.Command {
	flags := &convertFlags{}

	convertCmd := &cobra.Command{
		Use:   "convert [input] [output]",
		Short: "Convert a CSV or XLSX table of points to GeoJSON",
		Long: `The convert command reads the input table, builds a Point for every row from
its longitude and latitude columns, and writes a GeoJSON FeatureCollection.

The first invalid coordinate aborts the conversion. The output file is
replaced only when the whole document has been generated; on error any
existing output is left as it was.`,
		Args: cobra.MaximumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := flags.apply(cmd, cfg, args); err != nil {
				return err
			}

			result := converter.New(cfg, converter.WithLogger(l), converter.WithDryRun(flags.dryRun)).Run()
			if result.Error != nil {
				return fmt.Errorf("%s: %w", result.InputFile, result.Error)
			}

			printResult(cmd, result)
			return nil
		},
	}

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	f := convertCmd.Flags()
	f.StringVarP(&flags.input, "input", "i", "", "Input file (default "+config.DefaultInput+")")
	f.StringVarP(&flags.output, "output", "o", "", "Output GeoJSON file (default "+config.DefaultOutput+")")
	f.StringVar(&flags.lonColumn, "lon-column", "", "Longitude column header (default "+config.DefaultLonColumn+")")
	f.StringVar(&flags.latColumn, "lat-column", "", "Latitude column header (default "+config.DefaultLatColumn+")")
	f.StringVar(&flags.layer, "layer", "", "Layer name (default "+config.DefaultLayer+")")
	f.StringVar(&flags.sheet, "sheet", "", "Worksheet to read from an XLSX input (default first sheet)")
	f.BoolVar(&flags.pretty, "pretty", false, "Indent the GeoJSON output")
	f.BoolVar(&flags.bbox, "bbox", false, "Write the collection bounding box")
	f.StringVar(&flags.ids, "ids", "", "Feature ids: none, index or uuid")
	f.IntVar(&flags.h3Resolution, "h3-resolution", config.DefaultH3Resolution, "Tag each feature with its H3 cell at this resolution (0-15)")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Run the whole conversion without writing the output file")

	return convertCmd
}

// apply copies every flag the user set, then the positional arguments, onto
// cfg and validates the result.
func (f *convertFlags) apply(cmd *cobra.Command, cfg *config.Config, args []string) error {
	set := cmd.Flags().Changed

	if set("input") {
		cfg.Input = f.input
	}
	if set("output") {
		cfg.Output = f.output
	}
	if set("lon-column") {
		cfg.LonColumn = f.lonColumn
	}
	if set("lat-column") {
		cfg.LatColumn = f.latColumn
	}
	if set("layer") {
		cfg.GeoJSON.Layer = f.layer
	}
	if set("sheet") {
		cfg.XLSX.Sheet = f.sheet
	}
	if set("pretty") {
		cfg.GeoJSON.Pretty = f.pretty
	}
	if set("bbox") {
		cfg.GeoJSON.WriteBBox = f.bbox
	}
	if set("ids") {
		cfg.GeoJSON.FeatureIDs = f.ids
	}
	if set("h3-resolution") {
		cfg.H3.Enabled = true
		cfg.H3.Resolution = f.h3Resolution
	}

	if len(args) > 0 {
		cfg.Input = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// printResult writes a short summary of a successful run.
func printResult(cmd *cobra.Command, result converter.Result) {
	out := cmd.OutOrStdout()
	if result.Stats.RowsSkipped > 0 {
		fmt.Fprintf(out, "! %s: %d blank row(s) skipped\n", result.InputFile, result.Stats.RowsSkipped)
	}
	if result.OutputFile == "" {
		fmt.Fprintf(out, "✓ %s: %d feature(s), nothing written (dry run)\n", result.InputFile, result.Stats.FeaturesWritten)
		return
	}
	fmt.Fprintf(out, "✓ %s -> %s (%d feature(s), %d bytes, %s)\n",
		result.InputFile, result.OutputFile,
		result.Stats.FeaturesWritten, result.Stats.BytesWritten,
		result.Stats.ProcessingTime.Round(time.Millisecond))
}
