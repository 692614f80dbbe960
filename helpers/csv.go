package helpers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/spektr-org/moviescope/engine"
	"github.com/spektr-org/moviescope/schema"
)

// ============================================================================
// CSV HELPER — Parses the movie table into []engine.Movie
// ============================================================================
// Multi-valued cells arrive as serialized lists ("['Drama', 'Action']") and
// are split once here. Malformed numeric cells degrade to 0 instead of
// failing the record. Only a missing/unusable header fails the whole load.
// ============================================================================

// ErrMissingColumns is returned when the header lacks required columns.
var ErrMissingColumns = errors.New("missing required columns")

// movieNamespace scopes the name-based UUIDs handed out to movies.
var movieNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/spektr-org/moviescope/movie"))

// LoadMovies reads and parses the dataset at path. It never fails: a read or
// header error is logged and an empty collection is returned.
func LoadMovies(path string, logger hclog.Logger) []engine.Movie {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("⚠️ dataset load failed", "path", path, "error", err)
		return []engine.Movie{}
	}

	movies, err := ParseCSV(data)
	if err != nil {
		logger.Error("⚠️ dataset parse failed", "path", path, "error", err)
		return []engine.Movie{}
	}

	logger.Info("📊 movies loaded", "path", path, "count", len(movies))
	return movies
}

// ParseCSV parses CSV bytes into Movies.
// Columns are matched by snake_cased header name; unknown columns are ignored.
func ParseCSV(data []byte) ([]engine.Movie, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = toSnakeCase(strings.TrimPrefix(strings.TrimSpace(h), "\ufeff"))
	}
	if missing := schema.MissingColumns(keys); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	movies := make([]engine.Movie, 0)
	seen := make(map[string]bool)
	rowNum := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			continue // skip malformed rows
		}

		cells := make(map[string]string, len(keys))
		for i, val := range row {
			if i >= len(keys) {
				break
			}
			cells[keys[i]] = strings.TrimSpace(val)
		}

		m := movieFromCells(cells)
		m.ID = movieID(m, rowNum, seen)
		movies = append(movies, m)
	}

	return movies, nil
}

func movieFromCells(c map[string]string) engine.Movie {
	return engine.Movie{
		Title:       c[schema.ColTitle],
		Duration:    c[schema.ColDuration],
		Rating:      parseRating(c[schema.ColRating]),
		Description: c[schema.ColDescription],
		Link:        c[schema.ColMovieLink],
		Writers:     ParseList(c[schema.ColWriters]),
		Directors:   ParseList(c[schema.ColDirectors]),
		Stars:       ParseList(c[schema.ColStars]),
		Countries:   ParseList(c[schema.ColCountries]),
		Companies:   ParseList(c[schema.ColCompanies]),
		Genres:      ParseList(c[schema.ColGenres]),
		GenreTokens: ParseList(c[schema.ColGenreToken]),
		ReleaseDate: c[schema.ColReleaseDate],
		Year:        parseSmallInt(c[schema.ColYear]),
		Month:       parseSmallInt(c[schema.ColMonth]),
		Day:         parseSmallInt(c[schema.ColDay]),
	}
}

// ParseList splits a serialized list cell ("['Drama', 'Action']") into its
// trimmed, non-empty items, preserving order.
func ParseList(raw string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', '\'', '"':
			return -1
		}
		return r
	}, raw)

	parts := strings.Split(cleaned, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
}

// parseRating returns the rating, or 0 when absent, unparsable or off-scale.
func parseRating(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > engine.MaxRating {
		return 0
	}
	return f
}

// parseSmallInt accepts "1994" and "1994.0"; anything else yields 0.
func parseSmallInt(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f == math.Trunc(f) && f < math.MaxInt32 {
		return int(f)
	}
	return 0
}

// movieID derives a stable identity from title, year and link.
// Exact duplicates are disambiguated by row number.
func movieID(m engine.Movie, row int, seen map[string]bool) string {
	name := fmt.Sprintf("%s|%d|%s", m.Title, m.Year, m.Link)
	id := uuid.NewSHA1(movieNamespace, []byte(name)).String()
	if seen[id] {
		id = uuid.NewSHA1(movieNamespace, []byte(fmt.Sprintf("%s#%d", name, row))).String()
	}
	seen[id] = true
	return id
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
