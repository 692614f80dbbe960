package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/spektr-org/moviescope/config"
	"github.com/spektr-org/moviescope/engine"
	"github.com/spektr-org/moviescope/helpers"
	"github.com/spektr-org/moviescope/schema"
)

// ============================================================================
// MOVIESCOPE CLI — Filter, rank, aggregate and lay out a movie dataset
// ============================================================================

// Version is set via ldflags at build time.
var Version = "0.3.0"

var (
	cfgFile     string
	verbose     bool
	datasetPath string
	format      string
	outFile     string
)

var rootCmd = &cobra.Command{
	Use:   "moviescope",
	Short: "Explore a movie dataset from the terminal",
	Long: `MovieScope loads a movie CSV once, then filters it by genre, year and
title search, ranks or samples a display list, aggregates counts and average
ratings by year, decade or genre, and lays movies out as non-overlapping
bubbles.

Formats:
  json      Full JSON output (default)
  pretty    Pretty-printed JSON
  text      Human-readable summary
  csv       Table or chart data as CSV (ready for Sheets/Excel)

Environment:
  MOVIESCOPE_*   Config overrides, e.g. MOVIESCOPE_RESULT_COUNT=50,
                 MOVIESCOPE_LAYOUT__MAX_TICKS=400`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "moviescope.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the movie CSV (overrides config)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "json", "output format: json, pretty, text, csv")
	rootCmd.PersistentFlags().StringVar(&outFile, "out", "", "write output to file instead of stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatalf("%v", err)
	}
}

// ============================================================================
// SESSION — config + logger + dataset, shared by every data command
// ============================================================================

type session struct {
	cfg    *config.Config
	logger hclog.Logger
	movies []engine.Movie
	domain engine.YearRange
	out    io.Writer
	closer func()
}

func newLogger() hclog.Logger {
	level := hclog.Info
	if verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "moviescope",
		Level:  level,
		Output: os.Stderr,
	})
}

// openSession loads config and the dataset and opens the output writer.
// A dataset that fails to load yields an empty session, not an error.
func openSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if datasetPath != "" {
		cfg.Dataset = datasetPath
	}

	logger := newLogger()
	movies := helpers.LoadMovies(cfg.Dataset, logger.Named("loader"))
	domain := schema.Describe(movies).DomainOr(cfg.YearDomain)

	out, closer, err := openOutput()
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		movies: movies,
		domain: domain,
		out:    out,
		closer: closer,
	}, nil
}

func (s *session) Close() { s.closer() }

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
