package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================================
// AGGREGATORS — Count + average rating per year, decade, or genre
// ============================================================================
// Pipeline: group → aggregate → sort → (genre only) top-N + "Other".
// Ratings <= 0 are counted but excluded from averages.
// ============================================================================

// DefaultGenreTopN is the number of genres kept before collapsing into "Other".
const DefaultGenreTopN = 12

// AggregateByTime groups movies by release year or decade, ascending by key.
// Movies without a usable year are skipped.
func AggregateByTime(movies []Movie, g Granularity) []Bucket {
	grouped := make(map[int]*Bucket)
	keys := make([]int, 0)

	for _, m := range movies {
		if !m.HasYear() {
			continue
		}
		key := timeKey(m.Year, g)
		b, ok := grouped[key]
		if !ok {
			b = newTimeBucket(key, g)
			grouped[key] = b
			keys = append(keys, key)
		}
		b.add(m)
	}

	sort.Ints(keys)
	buckets := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		b := grouped[key]
		b.finish()
		buckets = append(buckets, *b)
	}
	return buckets
}

// AggregateByGenre fans each movie out to every one of its genre labels,
// sorts genres by count descending and collapses everything past topN into
// a single "Other" bucket. topN <= 0 uses DefaultGenreTopN.
//
// Display labels are used; movies without labels fall back to their tokens.
// Labels group on FoldKey and the bucket shows the first-seen spelling.
// Movies with neither are skipped.
func AggregateByGenre(movies []Movie, topN int) []Bucket {
	if topN <= 0 {
		topN = DefaultGenreTopN
	}

	grouped := make(map[string]*Bucket)
	order := make([]string, 0)

	for _, m := range movies {
		for _, label := range genreLabels(m) {
			key := FoldKey(label)
			b, ok := grouped[key]
			if !ok {
				b = &Bucket{Key: key, Label: label}
				grouped[key] = b
				order = append(order, key)
			}
			b.add(m)
		}
	}

	if len(order) == 0 {
		return []Bucket{}
	}

	// Stable: equal counts keep first-seen order.
	buckets := make([]Bucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, *grouped[key])
	}
	sort.SliceStable(buckets, func(i, j int) bool { return buckets[i].Count > buckets[j].Count })

	if len(buckets) > topN {
		other := Bucket{Key: strings.ToLower(OtherBucket), Label: OtherBucket}
		for _, b := range buckets[topN:] {
			other.Count += b.Count
			other.ratingSum += b.ratingSum
			other.RatedCount += b.RatedCount
		}
		buckets = append(buckets[:topN], other)
	}

	for i := range buckets {
		buckets[i].finish()
	}
	return buckets
}

// ============================================================================
// GROUP KEYS
// ============================================================================

func timeKey(year int, g Granularity) int {
	if g == ByDecade {
		return (year / 10) * 10
	}
	return year
}

func newTimeBucket(key int, g Granularity) *Bucket {
	b := &Bucket{Key: strconv.Itoa(key)}
	if g == ByDecade {
		b.Label = fmt.Sprintf("%ds", key)
		b.Range = &YearRange{Min: key, Max: key + 9}
	} else {
		b.Label = strconv.Itoa(key)
		b.Range = &YearRange{Min: key, Max: key}
	}
	return b
}

// genreLabels returns the movie's display labels, or its tokens when it has none.
func genreLabels(m Movie) []string {
	src := m.Genres
	if len(src) == 0 {
		src = m.GenreTokens
	}
	labels := make([]string, 0, len(src))
	for _, g := range src {
		if g = strings.TrimSpace(g); g != "" {
			labels = append(labels, g)
		}
	}
	return labels
}

// ============================================================================
// RANGE SELECTION
// ============================================================================

// ToggleRange returns nil when clicked equals current (deselect),
// otherwise the clicked range.
func ToggleRange(current *YearRange, clicked YearRange) *YearRange {
	if current != nil && *current == clicked {
		return nil
	}
	return &clicked
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// TotalCount sums bucket counts.
func TotalCount(buckets []Bucket) int {
	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	return total
}

// FormatRating renders an average rating with two decimals, or "N/A".
func FormatRating(avg *float64) string {
	if avg == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *avg)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
