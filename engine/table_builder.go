package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// TABLE BUILDERS — Display list and bucket tables
// ============================================================================

var movieColumns = []Column{
	{Key: "title", Label: "Title", Type: "text", Align: "left"},
	{Key: "year", Label: "Year", Type: "number", Align: "right"},
	{Key: "rating", Label: "Rating", Type: "number", Align: "right"},
	{Key: "genres", Label: "Genres", Type: "text", Align: "left"},
	{Key: "duration", Label: "Duration", Type: "text", Align: "left"},
}

// BuildMovieTable produces a row-per-movie TableData.
func BuildMovieTable(title string, movies []Movie) *TableData {
	rows := make([][]string, 0, len(movies))
	var ratingSum float64
	rated := 0

	for _, m := range movies {
		year := ""
		if m.HasYear() {
			year = strconv.Itoa(m.Year)
		}
		rating := ""
		if m.HasRating() {
			rating = fmt.Sprintf("%.1f", m.Rating)
			ratingSum += m.Rating
			rated++
		}
		rows = append(rows, []string{m.Title, year, rating, strings.Join(m.Genres, ", "), m.Duration})
	}

	table := &TableData{
		Title:   title,
		Columns: movieColumns,
		Rows:    rows,
	}

	if len(movies) > 0 {
		avg := "N/A"
		if rated > 0 {
			avg = fmt.Sprintf("%.2f", ratingSum/float64(rated))
		}
		table.Summary = &Summary{
			Label: "Total",
			Values: map[string]string{
				"title":  fmt.Sprintf("%s movies", FormatInt(len(movies))),
				"rating": avg,
			},
		}
	}
	return table
}

// BuildBucketTable produces a row-per-bucket TableData.
func BuildBucketTable(title string, buckets []Bucket) *TableData {
	columns := []Column{
		{Key: "label", Label: "Group", Type: "text", Align: "left"},
		{Key: "count", Label: "Movies", Type: "number", Align: "right"},
		{Key: "avgRating", Label: "Avg rating", Type: "number", Align: "right"},
	}

	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{b.Label, strconv.Itoa(b.Count), FormatRating(b.AvgRating)})
	}

	table := &TableData{Title: title, Columns: columns, Rows: rows}
	if len(buckets) > 0 {
		table.Summary = &Summary{
			Label:  "Total",
			Values: map[string]string{"count": FormatInt(TotalCount(buckets))},
		}
	}
	return table
}
