package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/moviescope/engine"
)

// filterFlags are the sidebar controls shared by list, trends, genres and layout.
type filterFlags struct {
	genres []string
	from   int
	to     int
	search string
	count  int
	mode   string
	seed   uint64
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.genres, "genre", "g", nil, "genre token to match (repeatable, ANY-match)")
	cmd.Flags().IntVar(&f.from, "from", 0, "first release year (default: dataset minimum)")
	cmd.Flags().IntVar(&f.to, "to", 0, "last release year (default: dataset maximum)")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "case-insensitive title substring")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of movies to display (default: config result_count)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(engine.ModeRandom), "display mode: random or top")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "shuffle seed for random mode (0 = fresh shuffle)")
}

func (f *filterFlags) validate() error {
	switch engine.DisplayMode(f.mode) {
	case engine.ModeRandom, engine.ModeTop:
	default:
		return fmt.Errorf("unknown mode %q (want random or top)", f.mode)
	}
	if f.count < 0 {
		return fmt.Errorf("--count must not be negative")
	}
	return nil
}

// explorer builds a session explorer with the flags applied.
func (f *filterFlags) explorer(s *session) (*engine.Explorer, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithYearDomain(s.domain),
		engine.WithCandidateCap(s.cfg.CandidateCap),
		engine.WithLogger(s.logger.Named("engine")),
	}
	if f.seed != 0 {
		opts = append(opts, engine.WithSeed(f.seed))
	}

	years := s.domain
	if f.from != 0 {
		years.Min = f.from
	}
	if f.to != 0 {
		years.Max = f.to
	}

	count := f.count
	if count == 0 {
		count = s.cfg.ResultCount
	}

	ex := engine.NewExplorer(s.movies, opts...)
	ex.SetFilters(engine.FilterSpec{
		SelectedGenres: f.genres,
		YearRange:      years,
		SearchText:     f.search,
		ResultCount:    count,
	})
	ex.SetMode(engine.ParseDisplayMode(f.mode))
	return ex, nil
}
