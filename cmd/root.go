// =============================================================================
// CSV to GeoJSON Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands (like 'convert', 'validate') are
// attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (geoconv)
//   ├── convertCmd (geoconv convert [input] [output])
//   ├── validateCmd (geoconv validate [input])
//   └── versionCmd (geoconv version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --log-format)
//   2. Loading a .env file from the working directory, if present
//   3. Loading the configuration and setting up logging for subcommands
//
// =============================================================================

package cmd

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-GeoJSON-conversion/internal/logger"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// rootOptions holds the values of the persistent flags.
type rootOptions struct {
	// cfgFile is the path to an optional YAML configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool

	// logFormat overrides the configured log format ("console" or "json").
	logFormat string

	// envFile is the dotenv file loaded before the configuration.
	envFile string
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{envFile: ".env"}

	rootCmd := &cobra.Command{
		Use:   "geoconv",
		Short: "CSV to GeoJSON Converter - Turn point tables into GeoJSON FeatureCollections",
		Long: `geoconv reads a table of points (CSV, or a sheet of an XLSX workbook) with
longitude and latitude columns and writes a GeoJSON FeatureCollection with one
Point feature per row. Every other column becomes a feature property.

Coordinates are WGS84 (EPSG:4326). Nothing is reprojected.

Example Usage:
  geoconv convert                                  # Convert the default dataset
  geoconv convert points.csv points.geojson        # Convert a specific file
  geoconv convert -i sites.xlsx --sheet Lisboa     # Read a worksheet
  geoconv validate points.csv                      # Check a file without writing`,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv(opts.envFile)
		},

		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&opts.cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (optional)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&opts.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&opts.logFormat,
		"log-format",
		"",
		`Log output format: "console" or "json" (default from config)`,
	)

	rootCmd.AddCommand(
		newConvertCmd(opts),
		newValidateCmd(opts),
		newVersionCmd(),
	)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("geoconv failed")
		os.Exit(1)
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// loadDotEnv loads variables from path into the environment. A missing file
// is not an error. Variables already set are not overridden.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// loadConfig loads the configuration file and configures logging from it and
// the persistent flags.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	if o.verbose {
		cfg.LogLevel = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}

	l := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if o.cfgFile != "" {
		l.Debug().Str("config", o.cfgFile).Msg("loaded configuration")
	}

	return cfg, l, nil
}
