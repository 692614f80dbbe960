package engine

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// SELECTION TESTS
// ============================================================================

func TestSelect_TopWithGenre(t *testing.T) {
	got := Select(exampleMovies(), ModeTop, 2, WithGenres([]string{"Drama"}))
	assert.Equal(t, []string{"movie1", "movie3"}, titles(got))
}

func TestSelect_TopWithoutGenresSortsByRating(t *testing.T) {
	got := Select(catalog(), ModeTop, 100)
	require.Len(t, got, len(catalog()))
	for i := 0; i+1 < len(got); i++ {
		assert.GreaterOrEqual(t, got[i].Rating, got[i+1].Rating, "position %d", i)
	}
}

func TestSelect_TopStableOnTies(t *testing.T) {
	movies := []Movie{
		mv("a", 2000, 8.0, "Drama"),
		mv("b", 2000, 9.0, "Drama"),
		mv("c", 2000, 8.0, "Drama"),
		mv("d", 2000, 8.0, "Drama"),
	}
	got := Select(movies, ModeTop, 10)
	assert.Equal(t, []string{"b", "a", "c", "d"}, titles(got))
}

func TestSelect_TopGenreDominatesRating(t *testing.T) {
	movies := catalog()
	got := Select(movies, ModeTop, len(movies), WithGenres([]string{"comedy"}))

	seenOutsider := false
	for _, m := range got {
		has := MatchScore(m, []string{"comedy"}) > 0
		if !has {
			seenOutsider = true
			continue
		}
		assert.False(t, seenOutsider, "%s ranked below a non-comedy", m.Title)
	}
}

func TestSelect_TopMoreMatchesFirst(t *testing.T) {
	movies := []Movie{
		mv("one", 2000, 9.5, "Drama"),
		mv("two", 2000, 5.0, "Drama", "Crime"),
	}
	got := Select(movies, ModeTop, 2, WithGenres([]string{"drama", "crime"}))
	assert.Equal(t, []string{"two", "one"}, titles(got))
}

func TestSelect_TopIdempotent(t *testing.T) {
	movies := catalog()
	a := Select(movies, ModeTop, 5, WithGenres([]string{"drama"}))
	b := Select(movies, ModeTop, 5, WithGenres([]string{"drama"}))
	assert.Equal(t, titles(a), titles(b))
}

func TestSelect_Count(t *testing.T) {
	many := make([]Movie, 40)
	for i := range many {
		many[i] = mv(fmt.Sprintf("m%02d", i), 2000, float64(i%10), "Drama")
	}

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"explicit count", 7, 7},
		{"count above size", 100, 40},
		{"zero falls back to default", 0, DefaultResultCount},
		{"negative falls back to default", -3, DefaultResultCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Select(many, ModeTop, tt.count), tt.want)
			assert.Len(t, Select(many, ModeRandom, tt.count, WithSeed(1)), tt.want)
		})
	}
}

func TestSelect_EmptyInput(t *testing.T) {
	for _, mode := range []DisplayMode{ModeRandom, ModeTop} {
		got := Select(nil, mode, 5)
		require.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestSelect_CandidateCap(t *testing.T) {
	movies := catalog()
	got := Select(movies, ModeTop, 10, WithCandidateCap(3))
	assert.Equal(t, []string{"The Godfather", "Pulp Fiction", "The Lion King"}, titles(got))

	got = Select(movies, ModeRandom, len(movies), WithCandidateCap(3), WithSeed(9))
	assert.ElementsMatch(t, titles(movies), titles(got), "random mode ignores the cap")
}

func TestSelect_RandomIsPermutation(t *testing.T) {
	movies := catalog()
	before := titles(movies)

	got := Select(movies, ModeRandom, len(movies), WithSeed(42))
	assert.ElementsMatch(t, before, titles(got))
	assert.Equal(t, before, titles(movies), "input must not be mutated")
}

func TestSelect_RandomDeterministicForSeed(t *testing.T) {
	movies := catalog()
	a := Select(movies, ModeRandom, 5, WithSeed(7))
	b := Select(movies, ModeRandom, 5, WithSeed(7))
	assert.Equal(t, titles(a), titles(b))
}

func TestSelect_RandomIsUniform(t *testing.T) {
	const (
		n      = 10
		count  = 3
		trials = 20000
	)
	movies := make([]Movie, n)
	for i := range movies {
		movies[i] = mv(fmt.Sprintf("m%d", i), 2000, 5, "Drama")
	}

	r := rand.New(rand.NewPCG(1, 2))
	appearances := make(map[string]int)
	firsts := make(map[string]int)
	for i := 0; i < trials; i++ {
		got := Select(movies, ModeRandom, count, WithRand(r))
		require.Len(t, got, count)
		firsts[got[0].Title]++
		for _, m := range got {
			appearances[m.Title]++
		}
	}

	wantAppear := float64(trials*count) / n
	wantFirst := float64(trials) / n
	for _, m := range movies {
		assert.InEpsilon(t, wantAppear, float64(appearances[m.Title]), 0.06, "appearances of %s", m.Title)
		assert.InEpsilon(t, wantFirst, float64(firsts[m.Title]), 0.12, "first place of %s", m.Title)
	}
}

func TestSelect_RandomWithCapReachesWholeSet(t *testing.T) {
	const (
		n      = 100
		capN   = 30
		count  = 10
		trials = 300
	)
	movies := make([]Movie, n)
	for i := range movies {
		movies[i] = mv(fmt.Sprintf("m%03d", i), 2000, 5, "Drama")
	}

	r := rand.New(rand.NewPCG(3, 4))
	seen := make(map[string]bool)
	beyondCap := 0
	for i := 0; i < trials; i++ {
		for _, m := range Select(movies, ModeRandom, count, WithRand(r), WithCandidateCap(capN)) {
			seen[m.Title] = true
			if m.Title >= fmt.Sprintf("m%03d", capN) {
				beyondCap++
			}
		}
	}

	assert.Len(t, seen, n, "every movie can be drawn")
	// 70% of the set lies past the cap; expect roughly that share of draws.
	assert.InEpsilon(t, 0.7*trials*count, float64(beyondCap), 0.1)
}

func TestParseDisplayMode(t *testing.T) {
	assert.Equal(t, ModeTop, ParseDisplayMode("top"))
	assert.Equal(t, ModeRandom, ParseDisplayMode("random"))
	assert.Equal(t, ModeRandom, ParseDisplayMode("bogus"))
}
