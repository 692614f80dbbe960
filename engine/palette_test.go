package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenreColor(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Drama", "#2a9d8f"},
		{"drama", "#2a9d8f"},
		{"Docudrama", "#4361ee"},
		{"Dark Comedy", "#ffb703"},
		{"Psychological Horror", "#1d1e33"},
		{"Sci", "#4cc9f0"},
		{"Zzz", DefaultGenreColor},
		{"", DefaultGenreColor},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, GenreColor(tt.label))
		})
	}
}

func TestMovieColor(t *testing.T) {
	// Palette order decides between several matching labels.
	assert.Equal(t, "#e63946", MovieColor(mv("x", 2000, 7, "Drama", "Action")))
	assert.Equal(t, "#1d1e33", MovieColor(Movie{GenreTokens: []string{"horror"}}))
	assert.Equal(t, DefaultGenreColor, MovieColor(Movie{}))
}

func TestColorMatchingIsNotFiltering(t *testing.T) {
	m := mv("x", 2000, 7, "Dark Comedy")
	assert.Equal(t, GenreColor("Comedy"), MovieColor(m))
	assert.Empty(t, Filter([]Movie{m}, FilterSpec{SelectedGenres: []string{"comedy"}}))
}

func TestRatingColor(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	assert.Equal(t, NoRatingColor, RatingColor(nil))
	assert.Equal(t, NoRatingColor, RatingColor(f(0)))
	assert.Equal(t, "#2b2b2b", RatingColor(f(3.0)))
	assert.Equal(t, "#2b2b2b", RatingColor(f(5.0)))
	assert.Equal(t, "#33415c", RatingColor(f(6.0)))
	assert.Equal(t, "#335c67", RatingColor(f(7.0)))
	assert.Equal(t, "#008b8b", RatingColor(f(7.5)))
	assert.Equal(t, "#f4d35e", RatingColor(f(8.5)))
	assert.Equal(t, "#f4d35e", RatingColor(f(9.8)))
}

func TestSearchGenres(t *testing.T) {
	assert.Len(t, SearchGenres(""), len(GenreCatalog()))
	assert.Equal(t, []string{"Comedy"}, SearchGenres("comed"))
	assert.Equal(t, []string{"B-Horror", "Horror"}, SearchGenres("HORROR"))
	assert.Empty(t, SearchGenres("zzz"))
}

func TestGenreCatalogIsCopy(t *testing.T) {
	c := GenreCatalog()
	c[0].Color = "#000000"
	assert.NotEqual(t, "#000000", GenreCatalog()[0].Color)
}
