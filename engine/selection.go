package engine

import (
	"math/rand/v2"
	"sort"
)

// ============================================================================
// SELECTION — Bounded, ordered display list from a filtered subset
// ============================================================================
// Random: uniform Fisher-Yates permutation, first `count`.
// Top:    (match score desc, rating desc), stable on input order.
// ============================================================================

// Select returns at most count movies from filtered, ordered per mode.
// count <= 0 falls back to DefaultResultCount. The input is never mutated.
func Select(filtered []Movie, mode DisplayMode, count int, opts ...Option) []Movie {
	cfg := applyOptions(opts)
	if count <= 0 {
		count = DefaultResultCount
	}

	if len(filtered) == 0 {
		return []Movie{}
	}

	var ordered []Movie
	switch mode {
	case ModeTop:
		// The cap bounds the ranking pool only; Random draws from the whole set.
		pool := filtered
		if cfg.CandidateCap > 0 && len(pool) > cfg.CandidateCap {
			pool = pool[:cfg.CandidateCap]
		}
		ordered = rankTop(pool, cfg.SelectedGenres)
	default:
		ordered = shuffle(filtered, cfg.Rand)
	}

	if len(ordered) > count {
		ordered = ordered[:count]
	}
	return ordered
}

// shuffle returns a uniformly permuted copy of movies.
func shuffle(movies []Movie, r *rand.Rand) []Movie {
	out := make([]Movie, len(movies))
	copy(out, movies)
	swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
	if r != nil {
		r.Shuffle(len(out), swap)
	} else {
		rand.Shuffle(len(out), swap)
	}
	return out
}

// rankTop sorts by match score (when genres are selected) then rating.
func rankTop(movies []Movie, selected []string) []Movie {
	set := foldSet(selected)

	type ranked struct {
		movie Movie
		score int
	}
	items := make([]ranked, len(movies))
	for i, m := range movies {
		items[i] = ranked{movie: m}
		if len(set) > 0 {
			items[i].score = matchScore(m, set)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].movie.Rating > items[j].movie.Rating
	})

	out := make([]Movie, len(items))
	for i, it := range items {
		out[i] = it.movie
	}
	return out
}
