package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/spektr-org/moviescope/engine"
	"github.com/spektr-org/moviescope/layout"
)

// ============================================================================
// LAYOUT — bubble positions for the display list
// ============================================================================
// The Runner ticks in the background at the configured fps; the progress bar
// follows the tick count. Ctrl-C stops the run and prints the last snapshot.
// ============================================================================

var layoutOpts struct {
	filterFlags
	width  float64
	height float64
	fps    float64
	quiet  bool
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Lay out the display list as non-overlapping bubbles",
	Example: `  moviescope layout --genre horror -n 40 --format pretty
  moviescope layout --fps 0 --format csv --out bubbles.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ex, err := layoutOpts.explorer(s)
		if err != nil {
			return err
		}
		movies := ex.DisplayList()

		lc := s.cfg.Layout
		bounds := lc.Bounds()
		if layoutOpts.width > 0 {
			bounds.Width = layoutOpts.width
		}
		if layoutOpts.height > 0 {
			bounds.Height = layoutOpts.height
		}
		fps := lc.FPS
		if cmd.Flags().Changed("fps") {
			fps = layoutOpts.fps
		}

		var bar *progressbar.ProgressBar
		if !layoutOpts.quiet && len(movies) > 1 {
			bar = progressbar.NewOptions(lc.MaxTicks,
				progressbar.OptionSetDescription("Settling bubbles"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		runner := layout.NewRunner(
			layout.WithFPS(fps),
			layout.WithLogger(s.logger.Named("layout")),
			layout.OnTick(func(snap layout.Snapshot) {
				if bar != nil {
					_ = bar.Set(snap.Tick)
				}
			}),
		)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		runner.Start(ctx, layout.EntitiesFromMovies(movies), bounds, layout.WithParams(lc.Params))
		if err := runner.Wait(ctx); err != nil {
			s.logger.Warn("⚠️ layout interrupted", "error", err)
		}
		runner.Stop()
		if bar != nil {
			_ = bar.Finish()
		}

		snap := runner.Snapshot()
		bubbles := bubblesOf(movies, snap)

		switch format {
		case "csv":
			writeCSV(s.out, nil, bubbleTable(bubbles))
		case "text":
			writeBubbleText(s.out, bubbles, snap)
		default:
			writeJSON(s.out, layoutOutput{
				Bounds:    bounds,
				Ticks:     snap.Tick,
				Alpha:     snap.Alpha,
				Converged: snap.Converged,
				Bubbles:   bubbles,
			}, format)
		}
		return nil
	},
}

type bubble struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

type layoutOutput struct {
	Bounds    layout.Bounds `json:"bounds"`
	Ticks     int           `json:"ticks"`
	Alpha     float64       `json:"alpha"`
	Converged bool          `json:"converged"`
	Bubbles   []bubble      `json:"bubbles"`
}

// bubblesOf joins the display list with the final node state, in list order.
func bubblesOf(movies []engine.Movie, snap layout.Snapshot) []bubble {
	nodes := make(map[string]layout.Node, len(snap.Nodes))
	for _, n := range snap.Nodes {
		nodes[n.ID] = n
	}

	out := make([]bubble, 0, len(movies))
	for _, m := range movies {
		n, ok := nodes[m.ID]
		if !ok {
			continue
		}
		out = append(out, bubble{
			ID:     m.ID,
			Title:  m.Title,
			Rating: m.Rating,
			X:      engine.RoundTo2(n.X),
			Y:      engine.RoundTo2(n.Y),
			Radius: engine.RoundTo2(n.Radius),
			Color:  engine.MovieColor(m),
		})
	}
	return out
}

func bubbleTable(bubbles []bubble) *engine.TableData {
	table := &engine.TableData{
		Title: "Bubbles",
		Columns: []engine.Column{
			{Key: "title", Label: "Title", Type: "text", Align: "left"},
			{Key: "x", Label: "X", Type: "number", Align: "right"},
			{Key: "y", Label: "Y", Type: "number", Align: "right"},
			{Key: "radius", Label: "Radius", Type: "number", Align: "right"},
			{Key: "color", Label: "Color", Type: "text", Align: "left"},
		},
	}
	for _, b := range bubbles {
		table.Rows = append(table.Rows, []string{b.Title, fmtNum(b.X), fmtNum(b.Y), fmtNum(b.Radius), b.Color})
	}
	return table
}

func writeBubbleText(w io.Writer, bubbles []bubble, snap layout.Snapshot) {
	if len(bubbles) == 0 {
		fmt.Fprintln(w, "No movies to lay out.")
		return
	}
	state := "stopped"
	if snap.Converged {
		state = "converged"
	}
	fmt.Fprintf(w, "%d bubbles, %s after %d ticks (alpha %.4f)\n", len(bubbles), state, snap.Tick, snap.Alpha)
	for _, b := range bubbles {
		fmt.Fprintf(w, "  (%7.1f, %7.1f) r=%5.1f  %s\n", b.X, b.Y, b.Radius, b.Title)
	}
}

func init() {
	layoutOpts.register(layoutCmd)
	layoutCmd.Flags().Float64Var(&layoutOpts.width, "width", 0, "viewport width (default: config layout.width)")
	layoutCmd.Flags().Float64Var(&layoutOpts.height, "height", 0, "viewport height (default: config layout.height)")
	layoutCmd.Flags().Float64Var(&layoutOpts.fps, "fps", 0, "ticks per second, 0 = as fast as possible (default: config layout.fps)")
	layoutCmd.Flags().BoolVarP(&layoutOpts.quiet, "quiet", "q", false, "hide the progress bar")
}
