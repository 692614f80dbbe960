package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// FIXTURES
// ============================================================================

// mv builds a movie whose tokens are the lower-cased genre labels.
func mv(title string, year int, rating float64, genres ...string) Movie {
	tokens := make([]string, len(genres))
	for i, g := range genres {
		tokens[i] = strings.ToLower(g)
	}
	return Movie{ID: title, Title: title, Year: year, Rating: rating, Genres: genres, GenreTokens: tokens}
}

// exampleMovies is the three-movie collection used in the documented examples.
func exampleMovies() []Movie {
	return []Movie{
		mv("movie1", 1994, 8.9, "Drama"),
		mv("movie2", 1994, 7.2, "Comedy"),
		mv("movie3", 2001, 6.0, "Drama"),
	}
}

func catalog() []Movie {
	return []Movie{
		mv("The Godfather", 1972, 9.2, "Crime", "Drama"),
		mv("Pulp Fiction", 1994, 8.9, "Crime", "Drama"),
		mv("The Lion King", 1994, 8.5, "Animation", "Adventure", "Drama"),
		mv("Toy Story", 1995, 8.3, "Animation", "Adventure", "Comedy"),
		mv("Alien", 1979, 8.5, "Horror", "Sci-Fi"),
		mv("Spirited Away", 2001, 8.6, "Animation", "Adventure", "Family"),
		mv("Airplane!", 1980, 7.7, "Comedy"),
		mv("Unrated Short", 2010, 0, "Drama"),
		mv("No Year", 0, 7.0, "Comedy"),
		{ID: "untagged", Title: "Untagged", Year: 2005, Rating: 6.5},
	}
}

func titles(movies []Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

// ============================================================================
// FILTER TESTS
// ============================================================================

func TestFilter(t *testing.T) {
	movies := catalog()

	tests := []struct {
		name string
		spec FilterSpec
		want []string
	}{
		{
			name: "empty spec keeps everything",
			spec: FilterSpec{},
			want: titles(movies),
		},
		{
			name: "single genre",
			spec: FilterSpec{SelectedGenres: []string{"horror"}},
			want: []string{"Alien"},
		},
		{
			name: "genres are ANY-match",
			spec: FilterSpec{SelectedGenres: []string{"horror", "family"}},
			want: []string{"Alien", "Spirited Away"},
		},
		{
			name: "genre match ignores case",
			spec: FilterSpec{SelectedGenres: []string{"CRIME"}},
			want: []string{"The Godfather", "Pulp Fiction"},
		},
		{
			name: "year range is inclusive",
			spec: FilterSpec{YearRange: YearRange{Min: 1994, Max: 1995}},
			want: []string{"Pulp Fiction", "The Lion King", "Toy Story"},
		},
		{
			name: "year range drops movies without a year",
			spec: FilterSpec{YearRange: YearRange{Min: 1, Max: 3000}},
			want: []string{"The Godfather", "Pulp Fiction", "The Lion King", "Toy Story", "Alien", "Spirited Away", "Airplane!", "Unrated Short", "Untagged"},
		},
		{
			name: "search is a case-insensitive title substring",
			spec: FilterSpec{SearchText: "THE "},
			want: []string{"The Godfather", "The Lion King"},
		},
		{
			name: "search keeps surrounding spaces",
			spec: FilterSpec{SearchText: " away"},
			want: []string{"Spirited Away"},
		},
		{
			name: "search spaces are not trimmed away",
			spec: FilterSpec{SearchText: " air"},
			want: []string{},
		},
		{
			name: "clauses are AND-combined",
			spec: FilterSpec{
				SelectedGenres: []string{"animation"},
				YearRange:      YearRange{Min: 1990, Max: 1999},
				SearchText:     "story",
			},
			want: []string{"Toy Story"},
		},
		{
			name: "no match yields empty",
			spec: FilterSpec{SearchText: "zzz"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(movies, tt.spec)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilter_EmptyTokensFailClosed(t *testing.T) {
	m := Movie{Title: "Labels Only", Genres: []string{"Drama"}}
	got := Filter([]Movie{m}, FilterSpec{SelectedGenres: []string{"drama"}})
	assert.Empty(t, got)
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, FilterSpec{SearchText: "x"}))
	assert.Empty(t, Filter([]Movie{}, FilterSpec{}))
}

func TestFilter_Idempotent(t *testing.T) {
	movies := catalog()
	specs := []FilterSpec{
		{},
		{SelectedGenres: []string{"drama", "comedy"}},
		{YearRange: YearRange{Min: 1980, Max: 2000}, SearchText: "o"},
	}
	for _, spec := range specs {
		once := Filter(movies, spec)
		assert.Equal(t, titles(once), titles(Filter(once, spec)))
	}
}

func TestFilter_Monotone(t *testing.T) {
	movies := catalog()

	t.Run("adding a genre never shrinks the result", func(t *testing.T) {
		selected := []string{}
		prev := -1
		for _, g := range []string{"crime", "horror", "comedy", "family"} {
			selected = append(selected, g)
			n := len(Filter(movies, FilterSpec{SelectedGenres: selected}))
			assert.GreaterOrEqual(t, n, prev, "after adding %s", g)
			prev = n
		}
	})

	t.Run("narrowing the year range never grows the result", func(t *testing.T) {
		ranges := []YearRange{{1960, 2025}, {1970, 2005}, {1980, 2000}, {1994, 1995}, {1994, 1994}}
		prev := len(movies)
		for _, r := range ranges {
			n := len(Filter(movies, FilterSpec{YearRange: r}))
			assert.LessOrEqual(t, n, prev, "range %v", r)
			prev = n
		}
	})
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	movies := catalog()
	before := titles(movies)
	Filter(movies, FilterSpec{SelectedGenres: []string{"drama"}})
	assert.Equal(t, before, titles(movies))
}

func TestMatchScore(t *testing.T) {
	m := mv("x", 2000, 7, "Animation", "Adventure", "Drama")
	assert.Equal(t, 0, MatchScore(m, nil))
	assert.Equal(t, 1, MatchScore(m, []string{"drama"}))
	assert.Equal(t, 2, MatchScore(m, []string{"Drama", "ADVENTURE", "horror"}))
}

func TestFoldKey(t *testing.T) {
	// Composed "ō" vs "o" + combining macron.
	assert.Equal(t, FoldKey("Sh\u014djo"), FoldKey("Sho\u0304jo"))
	assert.Equal(t, "sci-fi", FoldKey("  Sci-Fi "))
	assert.Equal(t, "", FoldKey("   "))
}

func TestFilter_SearchWhitespaceIsSignificant(t *testing.T) {
	movies := []Movie{mv("The Offer", 2022, 8.1, "Drama"), mv("Tale of Two", 1980, 7.0, "Drama")}

	assert.Equal(t, []string{"Tale of Two"}, titles(Filter(movies, FilterSpec{SearchText: " of"})))
	assert.Equal(t, []string{"The Offer", "Tale of Two"}, titles(Filter(movies, FilterSpec{SearchText: "of"})))
	assert.Equal(t, []string{"The Offer", "Tale of Two"}, titles(Filter(movies, FilterSpec{SearchText: " "})))
}

func TestFilterYearRange(t *testing.T) {
	movies := catalog()
	assert.Len(t, FilterYearRange(movies, YearRange{}), len(movies))
	assert.Equal(t, []string{"Alien", "Airplane!"}, titles(FilterYearRange(movies, YearRange{Min: 1979, Max: 1980})))
}

func TestYearRangeClamp(t *testing.T) {
	domain := YearRange{Min: 1960, Max: 2025}
	assert.Equal(t, YearRange{Min: 1960, Max: 2025}, YearRange{Min: 1900, Max: 2100}.Clamp(domain))
	assert.Equal(t, YearRange{Min: 1990, Max: 2000}, YearRange{Min: 2000, Max: 1990}.Clamp(domain))
	assert.Equal(t, YearRange{Min: 1800, Max: 1900}, YearRange{Min: 1800, Max: 1900}.Clamp(YearRange{}))
}
