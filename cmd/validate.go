// =============================================================================
// CSV to GeoJSON Converter - Validate Command
// =============================================================================
//
// This file defines the 'validate' command. It runs the full conversion
// pipeline (read, column check, coordinate parsing, GeoJSON generation)
// without writing anything, and reports the first problem found.
//
// COMMAND USAGE:
//   geoconv validate [input]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/converter"
)

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input]",
		Short: "Check that a file converts cleanly without writing output",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, l, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				cfg.Input = args[0]
			}

			result := converter.New(cfg, converter.WithLogger(l), converter.WithDryRun(true)).Run()
			if result.Error != nil {
				return fmt.Errorf("%s: %w", result.InputFile, result.Error)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d row(s), %d valid feature(s)\n",
				result.InputFile, result.Stats.RowsRead, result.Stats.FeaturesWritten)
			return nil
		},
	}
}
