package engine

import (
	"math/rand/v2"
	"slices"
)

// ============================================================================
// EXPLORER — Recompute entry point + session owner
// ============================================================================
// Recompute(movies, spec, mode) is the pure pipeline:
//   1. Filter by genre / year / search
//   2. Select Random or Top, capped at spec.Count()
//
// Explorer owns one session's state (movies, filters, mode, shuffle seed)
// and memoises the display list until an input changes. Reshuffling only
// happens on an explicit Refresh().
// ============================================================================

// Recompute runs Filter then Select and returns the display list.
// Pass WithSeed for a reproducible Random result.
func Recompute(movies []Movie, spec FilterSpec, mode DisplayMode, opts ...Option) []Movie {
	cfg := applyOptions(opts)
	if !cfg.YearDomain.IsZero() && !spec.YearRange.IsZero() {
		spec.YearRange = spec.YearRange.Clamp(cfg.YearDomain)
	}

	filtered := Filter(movies, spec)
	cfg.Logger.Debug("🔧 filtered", "from", len(movies), "to", len(filtered), "mode", string(mode))

	selectOpts := append(slices.Clone(opts), WithGenres(spec.SelectedGenres))
	return Select(filtered, mode, spec.Count(), selectOpts...)
}

// Explorer holds the state behind one dashboard session.
// Not safe for concurrent use; it has a single logical owner.
type Explorer struct {
	movies []Movie
	spec   FilterSpec
	mode   DisplayMode
	seed   uint64
	opts   []Option
	cfg    *config

	display []Movie
	valid   bool
}

// NewExplorer creates a session over movies with default filters
// (full year domain, no genres, no search, DefaultResultCount, Random).
func NewExplorer(movies []Movie, opts ...Option) *Explorer {
	cfg := applyOptions(opts)
	e := &Explorer{
		movies: movies,
		mode:   ModeRandom,
		opts:   opts,
		cfg:    cfg,
		spec: FilterSpec{
			YearRange:   cfg.YearDomain,
			ResultCount: DefaultResultCount,
		},
	}
	e.seed = e.nextSeed()
	cfg.Logger.Info("📊 explorer ready", "movies", len(movies), "domain_min", cfg.YearDomain.Min, "domain_max", cfg.YearDomain.Max)
	return e
}

// Movies returns the full collection.
func (e *Explorer) Movies() []Movie { return e.movies }

// Filters returns the current filter spec.
func (e *Explorer) Filters() FilterSpec { return e.spec }

// Mode returns the current display mode.
func (e *Explorer) Mode() DisplayMode { return e.mode }

// SetFilters replaces the filter spec. The year range is clamped to the
// configured domain; a zero range resets to the full domain.
func (e *Explorer) SetFilters(spec FilterSpec) {
	if spec.YearRange.IsZero() {
		spec.YearRange = e.cfg.YearDomain
	} else {
		spec.YearRange = spec.YearRange.Clamp(e.cfg.YearDomain)
	}
	spec.SelectedGenres = slices.Clone(spec.SelectedGenres)
	e.spec = spec
	e.valid = false
}

// ToggleGenre adds genre to the selection, or removes it if already selected.
func (e *Explorer) ToggleGenre(genre string) {
	spec := e.spec
	key := FoldKey(genre)
	idx := slices.IndexFunc(spec.SelectedGenres, func(g string) bool { return FoldKey(g) == key })
	if idx >= 0 {
		spec.SelectedGenres = slices.Delete(slices.Clone(spec.SelectedGenres), idx, idx+1)
	} else {
		spec.SelectedGenres = append(slices.Clone(spec.SelectedGenres), genre)
	}
	e.SetFilters(spec)
}

// SetMode switches between Random and Top.
func (e *Explorer) SetMode(mode DisplayMode) {
	if mode != e.mode {
		e.mode = mode
		e.valid = false
	}
}

// Refresh draws a new shuffle seed. This is the only way a Random list changes
// while filters and mode stay the same.
func (e *Explorer) Refresh() {
	e.seed = e.nextSeed()
	e.valid = false
	e.cfg.Logger.Debug("🔄 refresh", "mode", string(e.mode))
}

// DisplayList returns the current display list, recomputing only when an
// input changed since the last call.
func (e *Explorer) DisplayList() []Movie {
	if e.valid {
		return e.display
	}
	opts := append(slices.Clone(e.opts), WithSeed(e.seed))
	e.display = Recompute(e.movies, e.effective(), e.mode, opts...)
	e.valid = true
	return e.display
}

// Filtered returns every movie matching the current filters, before
// selection and capping.
func (e *Explorer) Filtered() []Movie {
	return Filter(e.movies, e.effective())
}

// Trends aggregates the filtered (not capped) movies over time.
func (e *Explorer) Trends(g Granularity) []Bucket {
	return AggregateByTime(e.Filtered(), g)
}

// GenreBreakdown aggregates filtered movies by genre, optionally narrowed to
// a selected time range (nil = whole filter result).
func (e *Explorer) GenreBreakdown(selected *YearRange, topN int) []Bucket {
	movies := e.Filtered()
	if selected != nil {
		movies = FilterYearRange(movies, *selected)
	}
	return AggregateByGenre(movies, topN)
}

// effective drops a year range spanning the whole domain, so movies without
// a year stay listed until the user narrows the range.
func (e *Explorer) effective() FilterSpec {
	spec := e.spec
	if !e.cfg.YearDomain.IsZero() && spec.YearRange == e.cfg.YearDomain {
		spec.YearRange = YearRange{}
	}
	return spec
}

func (e *Explorer) nextSeed() uint64 {
	if e.cfg.Rand != nil {
		return e.cfg.Rand.Uint64()
	}
	return rand.Uint64()
}
