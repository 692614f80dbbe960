package engine

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// ============================================================================
// FILTERS — Genre / Year / Search filtering
// ============================================================================
// Single pass: checks every active clause per movie in one loop.
// Clauses are AND-combined; selected genres are OR-combined (ANY-match).
// Order-preserving and pure. Malformed fields fail closed (non-matching).
// ============================================================================

// Filter returns the movies matching every active clause of spec.
// An empty spec returns the input slice unchanged.
func Filter(movies []Movie, spec FilterSpec) []Movie {
	genres := foldSet(spec.SelectedGenres)
	search := searchKey(spec.SearchText)
	years := spec.YearRange

	if len(genres) == 0 && search == "" && years.IsZero() {
		return movies
	}

	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if len(genres) > 0 && matchScore(m, genres) == 0 {
			continue
		}
		if !years.IsZero() && !(m.HasYear() && years.Contains(m.Year)) {
			continue
		}
		if search != "" && !strings.Contains(searchKey(m.Title), search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterYearRange keeps movies whose year lies inside r.
// Movies without a usable year are dropped. A zero range is a no-op.
func FilterYearRange(movies []Movie, r YearRange) []Movie {
	return Filter(movies, FilterSpec{YearRange: r})
}

// MatchScore counts how many of the movie's genre tokens are selected.
func MatchScore(m Movie, selected []string) int {
	return matchScore(m, foldSet(selected))
}

func matchScore(m Movie, set map[string]bool) int {
	score := 0
	for _, tok := range m.GenreTokens {
		if set[FoldKey(tok)] {
			score++
		}
	}
	return score
}

// FoldKey normalizes a label for case-insensitive comparison.
// NFC first so composed and decomposed forms ("Shōjo") compare equal.
func FoldKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

// searchKey folds like FoldKey but keeps surrounding whitespace, which is
// part of the substring being searched.
func searchKey(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(norm.NFC.String(s))
}

// foldSet converts a string slice to a folded lookup set.
func foldSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		if k := FoldKey(item); k != "" {
			set[k] = true
		}
	}
	return set
}
