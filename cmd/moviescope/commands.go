package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spektr-org/moviescope/config"
	"github.com/spektr-org/moviescope/engine"
	"github.com/spektr-org/moviescope/schema"
	"github.com/spektr-org/moviescope/treemap"
)

// ============================================================================
// LIST — display list in random or top mode
// ============================================================================

var listFlags filterFlags

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the display list for the given filters",
	Example: `  moviescope list --genre drama --genre crime --mode top -n 10 --format text
  moviescope list --from 1990 --to 1999 --search godfather --format csv --out nineties.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ex, err := listFlags.explorer(s)
		if err != nil {
			return err
		}
		movies := ex.DisplayList()

		switch format {
		case "csv":
			writeCSV(s.out, nil, engine.BuildMovieTable("Movies", movies))
		case "text":
			writeMovieText(s.out, movies, len(ex.Filtered()))
		default:
			writeJSON(s.out, listOutput{
				Filters: ex.Filters(),
				Mode:    ex.Mode(),
				Matched: len(ex.Filtered()),
				Movies:  movies,
			}, format)
		}
		return nil
	},
}

type listOutput struct {
	Filters engine.FilterSpec  `json:"filters"`
	Mode    engine.DisplayMode `json:"mode"`
	Matched int                `json:"matched"`
	Movies  []engine.Movie     `json:"movies"`
}

func writeMovieText(w io.Writer, movies []engine.Movie, matched int) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No movies match the current filters.")
		return
	}
	fmt.Fprintf(w, "Showing %d of %s matching movies\n", len(movies), engine.FormatInt(matched))
	for i, m := range movies {
		year := "----"
		if m.HasYear() {
			year = fmt.Sprintf("%d", m.Year)
		}
		rating := "N/A"
		if m.HasRating() {
			rating = fmt.Sprintf("%.1f", m.Rating)
		}
		fmt.Fprintf(w, "%3d. %s (%s) ★ %s | %s\n", i+1, m.Title, year, rating, strings.Join(m.Genres, ", "))
	}
}

// ============================================================================
// TRENDS — count + average rating per year or decade
// ============================================================================

var (
	trendFlags filterFlags
	trendBy    string
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Aggregate filtered movies by year or decade",
	RunE: func(cmd *cobra.Command, args []string) error {
		g := engine.Granularity(trendBy)
		if g != engine.ByYear && g != engine.ByDecade {
			return fmt.Errorf("unknown granularity %q (want year or decade)", trendBy)
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ex, err := trendFlags.explorer(s)
		if err != nil {
			return err
		}
		buckets := ex.Trends(g)
		chart := engine.BuildTrendChart(buckets, g)

		switch format {
		case "csv":
			writeCSV(s.out, chart, engine.BuildBucketTable("Trends", buckets))
		case "text":
			writeBucketText(s.out, buckets)
			writeTrendText(s.out, engine.BuildTrendText(buckets))
		default:
			writeJSON(s.out, trendsOutput{
				Granularity: g,
				Buckets:     buckets,
				Chart:       chart,
				Summary:     engine.BuildTrendText(buckets),
			}, format)
		}
		return nil
	},
}

type trendsOutput struct {
	Granularity engine.Granularity  `json:"granularity"`
	Buckets     []engine.Bucket     `json:"buckets"`
	Chart       *engine.ChartConfig `json:"chart"`
	Summary     *engine.TrendText   `json:"summary"`
}

func writeTrendText(w io.Writer, t *engine.TrendText) {
	if t.Count == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s: %s movies, avg %s, rating %s\n", t.Period, engine.FormatInt(t.Count), engine.FormatRating(t.AvgRating), t.Value)
	if t.Peak != nil {
		fmt.Fprintf(w, "Best rated: %s (%s)\n", t.Peak.Label, engine.FormatRating(t.Peak.AvgRating))
	}
}

func writeBucketText(w io.Writer, buckets []engine.Bucket) {
	if len(buckets) == 0 {
		fmt.Fprintln(w, "No data.")
		return
	}
	for _, b := range buckets {
		fmt.Fprintf(w, "%-14s %7s movies  avg %s\n", b.Label, engine.FormatInt(b.Count), engine.FormatRating(b.AvgRating))
	}
	fmt.Fprintf(w, "%-14s %7s movies\n", "Total", engine.FormatInt(engine.TotalCount(buckets)))
}

// ============================================================================
// GENRES — genre breakdown + treemap tiles
// ============================================================================

var genreFlags genreOptions

type genreOptions struct {
	filterFlags
	top       int
	rangeFrom int
	rangeTo   int
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "Aggregate filtered movies by genre and pack them into a treemap",
	Example: `  moviescope genres --top 8 --format text
  moviescope genres --range-from 1990 --range-to 1999 --format pretty`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ex, err := genreFlags.explorer(s)
		if err != nil {
			return err
		}

		var selected *engine.YearRange
		if genreFlags.rangeFrom != 0 || genreFlags.rangeTo != 0 {
			r := engine.YearRange{Min: genreFlags.rangeFrom, Max: genreFlags.rangeTo}
			if r.Max == 0 {
				r.Max = r.Min
			}
			if r.Min == 0 {
				r.Min = r.Max
			}
			r = r.Clamp(s.domain)
			selected = &r
		}

		top := genreFlags.top
		if top <= 0 {
			top = s.cfg.GenreTopN
		}
		buckets := ex.GenreBreakdown(selected, top)
		tiles := treemap.Squarify(buckets, s.cfg.Treemap)

		switch format {
		case "csv":
			writeCSV(s.out, nil, engine.BuildBucketTable("Genres", buckets))
		case "text":
			writeBucketText(s.out, buckets)
		default:
			writeJSON(s.out, genresOutput{Range: selected, Buckets: buckets, Tiles: tiles}, format)
		}
		return nil
	},
}

type genresOutput struct {
	Range   *engine.YearRange `json:"range,omitempty"`
	Buckets []engine.Bucket   `json:"buckets"`
	Tiles   []treemap.Tile    `json:"tiles"`
}

// ============================================================================
// CATALOG — selectable genres with their colours
// ============================================================================

var catalogCmd = &cobra.Command{
	Use:   "catalog [query]",
	Short: "List catalog genres, optionally narrowed by a search query",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		colors := make(map[string]string)
		for _, sw := range engine.GenreCatalog() {
			colors[sw.Name] = sw.Color
		}
		names := engine.SearchGenres(query)
		swatches := make([]engine.GenreSwatch, 0, len(names))
		for _, n := range names {
			swatches = append(swatches, engine.GenreSwatch{Name: n, Color: colors[n]})
		}

		w, done, err := openOutput()
		if err != nil {
			return err
		}
		defer done()

		switch format {
		case "text", "csv":
			for _, sw := range swatches {
				fmt.Fprintf(w, "%s,%s\n", sw.Name, sw.Color)
			}
		default:
			writeJSON(w, swatches, format)
		}
		return nil
	},
}

// ============================================================================
// SUMMARY — dataset facts
// ============================================================================

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Describe the loaded dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		sum := schema.Describe(s.movies)
		if format == "text" {
			fmt.Fprintf(s.out, "Records:   %s\n", engine.FormatInt(sum.Records))
			fmt.Fprintf(s.out, "With year: %s\n", engine.FormatInt(sum.WithYear))
			fmt.Fprintf(s.out, "Rated:     %s\n", engine.FormatInt(sum.Rated))
			fmt.Fprintf(s.out, "Years:     %d-%d\n", sum.YearDomain.Min, sum.YearDomain.Max)
			fmt.Fprintf(s.out, "Genres:    %d distinct\n", len(sum.Genres))
			return nil
		}
		writeJSON(s.out, sum, format)
		return nil
	},
}

// ============================================================================
// INIT + VERSION
// ============================================================================

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.DefaultConfig().Save(cfgFile); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of moviescope",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("moviescope %s\n", Version)
	},
}

func init() {
	listFlags.register(listCmd)
	trendFlags.register(trendsCmd)
	trendsCmd.Flags().StringVar(&trendBy, "by", string(engine.ByYear), "granularity: year or decade")
	genreFlags.register(genresCmd)
	genresCmd.Flags().IntVar(&genreFlags.top, "top", 0, "genres kept before collapsing into Other (default: config genre_top_n)")
	genresCmd.Flags().IntVar(&genreFlags.rangeFrom, "range-from", 0, "narrow the breakdown to a selected time range")
	genresCmd.Flags().IntVar(&genreFlags.rangeTo, "range-to", 0, "end of the selected time range")

	rootCmd.AddCommand(listCmd, trendsCmd, genresCmd, catalogCmd, layoutCmd, summaryCmd, initCmd, versionCmd)
}
