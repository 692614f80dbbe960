package schema

// ============================================================================
// SCHEMA — Column contract of the movie dataset
// ============================================================================
// The loader matches header names (snake_cased) against these keys.
// Required columns must be present for a load to succeed; optional ones
// simply leave the corresponding Movie field empty.
// ============================================================================

// Column keys as they appear in the CSV header.
const (
	ColTitle       = "title"
	ColDuration    = "duration"
	ColRating      = "rating"
	ColDescription = "description"
	ColMovieLink   = "movie_link"
	ColWriters     = "writers"
	ColDirectors   = "directors"
	ColStars       = "stars"
	ColCountries   = "countries_origin"
	ColCompanies   = "production_companies"
	ColGenres      = "genres"
	ColGenreToken  = "genre_token"
	ColReleaseDate = "release_date"
	ColYear        = "year"
	ColMonth       = "month"
	ColDay         = "day"
)

// ColumnMeta describes one dataset column.
type ColumnMeta struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Kind        string `json:"kind"` // "text", "number", "list"
	Required    bool   `json:"required"`
}

// Columns lists every column of the dataset in file order.
var Columns = []ColumnMeta{
	{Key: ColTitle, DisplayName: "Title", Kind: "text", Required: true},
	{Key: ColDuration, DisplayName: "Duration", Kind: "text"},
	{Key: ColRating, DisplayName: "Rating", Kind: "number", Required: true},
	{Key: ColDescription, DisplayName: "Description", Kind: "text"},
	{Key: ColMovieLink, DisplayName: "Link", Kind: "text"},
	{Key: ColWriters, DisplayName: "Writers", Kind: "list"},
	{Key: ColDirectors, DisplayName: "Directors", Kind: "list"},
	{Key: ColStars, DisplayName: "Stars", Kind: "list"},
	{Key: ColCountries, DisplayName: "Countries of Origin", Kind: "list"},
	{Key: ColCompanies, DisplayName: "Production Companies", Kind: "list"},
	{Key: ColGenres, DisplayName: "Genres", Kind: "list", Required: true},
	{Key: ColGenreToken, DisplayName: "Genre Tokens", Kind: "list", Required: true},
	{Key: ColReleaseDate, DisplayName: "Release Date", Kind: "text"},
	{Key: ColYear, DisplayName: "Year", Kind: "number", Required: true},
	{Key: ColMonth, DisplayName: "Month", Kind: "number"},
	{Key: ColDay, DisplayName: "Day", Kind: "number"},
}

// RequiredColumns returns the keys that must be present in a header.
func RequiredColumns() []string {
	keys := make([]string, 0, len(Columns))
	for _, c := range Columns {
		if c.Required {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// MissingColumns returns the required keys absent from header, in column order.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}
	var missing []string
	for _, key := range RequiredColumns() {
		if !present[key] {
			missing = append(missing, key)
		}
	}
	return missing
}
