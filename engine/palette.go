package engine

import "strings"

// ============================================================================
// PALETTE — Display colours for genres and ratings
// ============================================================================
// Colour matching is looser than filter matching: a label
// matches a palette key when either contains the other. Filter() never
// uses this rule; it matches genre tokens exactly (after case folding).
// ============================================================================

// DefaultGenreColor is used when no palette key matches.
const DefaultGenreColor = "#8ecae6"

// NoRatingColor fills buckets with no average rating.
const NoRatingColor = "#333333"

// GenreSwatch pairs a catalog genre with its colour.
type GenreSwatch struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// genrePalette is ordered; the first matching entry wins.
var genrePalette = []GenreSwatch{
	{"Action", "#e63946"}, {"Adventure", "#48cae4"}, {"Animation", "#ffafcc"},
	{"Anime", "#ffc8dd"}, {"B-Action", "#9d4edd"}, {"B-Horror", "#720026"},
	{"Baseball", "#5c677d"}, {"Basketball", "#6b705c"}, {"Biography", "#3a5a40"},
	{"Boxing", "#bc4749"}, {"Caper", "#f77f00"}, {"Comedy", "#ffb703"},
	{"Coming-of-Age", "#02c39a"}, {"Concert", "#7f5539"}, {"Crime", "#6d6875"},
	{"Cyberpunk", "#7209b7"}, {"Disaster", "#0077b6"}, {"Docudrama", "#4361ee"},
	{"Documentary", "#4cc9f0"}, {"Drama", "#2a9d8f"}, {"Epic", "#2f3e46"},
	{"Family", "#ffddd2"}, {"Fantasy", "#bde0fe"}, {"Farce", "#ffb4a2"},
	{"Football", "#1d3557"}, {"Gangster", "#5c3d2e"}, {"Giallo", "#fcbf49"},
	{"Heist", "#9d0208"}, {"History", "#8d99ae"}, {"Holiday", "#0081a7"},
	{"Horror", "#1d1e33"}, {"Isekai", "#cdb4db"}, {"Iyashikei", "#a2d2ff"},
	{"Josei", "#ffcfd2"}, {"Kaiju", "#6a040f"}, {"Mecha", "#4d194d"},
	{"Mockumentary", "#a78bfa"}, {"Motorsport", "#ef233c"}, {"Music", "#90e0ef"},
	{"Musical", "#219ebc"}, {"Mystery", "#023047"}, {"News", "#adb5bd"},
	{"Parody", "#f7b801"}, {"Quest", "#8ac926"}, {"Romance", "#ff6b6b"},
	{"Samurai", "#5e548e"}, {"Satire", "#e5989b"}, {"Sci-Fi", "#4cc9f0"},
	{"Seinen", "#9e2a2b"}, {"Shōjo", "#ffb3c1"}, {"Shōnen", "#80ffdb"},
	{"Slapstick", "#ffd166"}, {"Soccer", "#007f5f"}, {"Sport", "#40916c"},
	{"Spy", "#6a4c93"}, {"Stand-Up", "#ff4d6d"}, {"Steampunk", "#6d597a"},
	{"Superhero", "#e71d36"}, {"Survival", "#335c67"}, {"Swashbuckler", "#b08968"},
	{"Thriller", "#8d0801"}, {"Tragedy", "#6c757d"}, {"War", "#495057"},
	{"Western", "#cc8b3c"}, {"Whodunnit", "#4b3f72"}, {"Wuxia", "#b5179e"},
}

// ratingColors quantize the [5,9] rating domain into equal steps.
var ratingColors = []string{"#2b2b2b", "#33415c", "#335c67", "#008b8b", "#f4d35e"}

const (
	ratingColorMin = 5.0
	ratingColorMax = 9.0
)

// GenreCatalog returns the selectable genres in catalog order.
func GenreCatalog() []GenreSwatch {
	out := make([]GenreSwatch, len(genrePalette))
	copy(out, genrePalette)
	return out
}

// SearchGenres returns catalog genres whose name contains query (case-insensitive).
// An empty query returns the whole catalog.
func SearchGenres(query string) []string {
	q := FoldKey(query)
	out := make([]string, 0, len(genrePalette))
	for _, s := range genrePalette {
		if q == "" || strings.Contains(FoldKey(s.Name), q) {
			out = append(out, s.Name)
		}
	}
	return out
}

// GenreColor returns the colour of the palette key equal to label, else the
// first key that contains, or is contained in, label.
func GenreColor(label string) string {
	if s, ok := paletteMatch([]string{label}); ok {
		return s.Color
	}
	return DefaultGenreColor
}

// MovieColor returns the colour of the first palette key matching any of the
// movie's genre labels (tokens when it has no labels).
func MovieColor(m Movie) string {
	if s, ok := paletteMatch(genreLabels(m)); ok {
		return s.Color
	}
	return DefaultGenreColor
}

func paletteMatch(labels []string) (GenreSwatch, bool) {
	folded := make([]string, 0, len(labels))
	for _, l := range labels {
		if k := FoldKey(l); k != "" {
			folded = append(folded, k)
		}
	}
	if len(folded) == 0 {
		return GenreSwatch{}, false
	}
	// Exact names first, so "Drama" is not claimed by "Docudrama".
	for _, s := range genrePalette {
		key := FoldKey(s.Name)
		for _, l := range folded {
			if l == key {
				return s, true
			}
		}
	}
	for _, s := range genrePalette {
		key := FoldKey(s.Name)
		for _, l := range folded {
			if strings.Contains(l, key) || strings.Contains(key, l) {
				return s, true
			}
		}
	}
	return GenreSwatch{}, false
}

// RatingColor maps an average rating onto the quantized rating palette.
// Absent or non-positive averages get NoRatingColor.
func RatingColor(avg *float64) string {
	if avg == nil || *avg <= 0 {
		return NoRatingColor
	}
	n := len(ratingColors)
	t := (*avg - ratingColorMin) / (ratingColorMax - ratingColorMin)
	i := int(t * float64(n))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return ratingColors[i]
}
