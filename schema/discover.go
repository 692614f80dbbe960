package schema

import (
	"sort"
	"time"

	"github.com/spektr-org/moviescope/engine"
)

// ============================================================================
// DISCOVERY — Dataset summary inspected from loaded movies
// ============================================================================
// The presentation layer needs a few facts before the first render:
//   1. Year domain   → clamps the year slider / FilterSpec.YearRange
//   2. Genre labels  → legend + treemap naming
//   3. Genre tokens  → which filter keys actually occur
//   4. Rating coverage
// ============================================================================

// ValueCount is a distinct value with its number of occurrences.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Summary describes a loaded dataset.
type Summary struct {
	Records      int              `json:"records"`
	WithYear     int              `json:"withYear"`
	Rated        int              `json:"rated"`
	YearDomain   engine.YearRange `json:"yearDomain"`
	Genres       []ValueCount     `json:"genres"`
	GenreTokens  []ValueCount     `json:"genreTokens"`
	DiscoveredAt string           `json:"discoveredAt"`
}

// Describe inspects movies and returns a Summary.
// Value lists are sorted by count descending, then alphabetically.
func Describe(movies []engine.Movie) *Summary {
	s := &Summary{
		Records:      len(movies),
		DiscoveredAt: time.Now().Format(time.RFC3339),
	}

	labels := make(map[string]int)
	tokens := make(map[string]int)

	for _, m := range movies {
		if m.HasYear() {
			s.WithYear++
			if s.YearDomain.IsZero() || m.Year < s.YearDomain.Min {
				s.YearDomain.Min = m.Year
			}
			if m.Year > s.YearDomain.Max {
				s.YearDomain.Max = m.Year
			}
		}
		if m.HasRating() {
			s.Rated++
		}
		for _, g := range m.Genres {
			labels[g]++
		}
		for _, t := range m.GenreTokens {
			tokens[t]++
		}
	}

	s.Genres = sortedCounts(labels)
	s.GenreTokens = sortedCounts(tokens)
	return s
}

// DomainOr returns the observed year domain, or fallback when no movie has a year.
func (s *Summary) DomainOr(fallback engine.YearRange) engine.YearRange {
	if s == nil || s.YearDomain.IsZero() {
		return fallback
	}
	return s.YearDomain
}

func sortedCounts(counts map[string]int) []ValueCount {
	out := make([]ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}
