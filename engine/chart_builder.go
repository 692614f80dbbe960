package engine

import "math"

// ============================================================================
// CHART BUILDER — Produces the trend ChartConfig from time buckets
// ============================================================================
// Bars carry the movie count, the line carries the average rating.
// Buckets without a rated movie are left out of the line (gaps, not zeros).
// ============================================================================

// Default colours for the trend series.
var defaultColors = []string{"#4F46E5", "#f4d35e"}

// maxYearLabels caps the number of X axis labels in year mode.
const maxYearLabels = 10

// BuildTrendChart produces a ChartConfig from time buckets.
// Returns nil when there are no buckets so callers render an empty state.
func BuildTrendChart(buckets []Bucket, g Granularity) *ChartConfig {
	if len(buckets) == 0 {
		return nil
	}

	counts := make([]ChartPoint, 0, len(buckets))
	ratings := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		counts = append(counts, ChartPoint{Label: b.Label, Value: float64(b.Count)})
		if b.HasRating() {
			ratings = append(ratings, ChartPoint{Label: b.Label, Value: RoundTo2(b.Average())})
		}
	}

	xAxis := "Year"
	if g == ByDecade {
		xAxis = "Decade"
	}

	return &ChartConfig{
		ChartType: "bar_line",
		Title:     "Long-Term Movie Trends",
		XAxis:     xAxis,
		YAxis:     "Movies / Avg rating",
		Series: []ChartSeries{
			{Name: "count", Kind: "bar", Data: counts, Color: defaultColors[0]},
			{Name: "avgRating", Kind: "line", Data: ratings, Color: defaultColors[1]},
		},
		TickLabels: TickLabels(buckets, g),
		Colors:     defaultColors,
		ShowLegend: true,
		ShowGrid:   true,
	}
}

// LabelStep returns the stride between X axis labels: every bucket in decade
// mode, about maxYearLabels labels in year mode.
func LabelStep(n int, g Granularity) int {
	if n <= 0 || g == ByDecade {
		return 1
	}
	step := int(math.Ceil(float64(n) / maxYearLabels))
	if step < 1 {
		step = 1
	}
	return step
}

// TickLabels returns the bucket labels shown on the X axis.
func TickLabels(buckets []Bucket, g Granularity) []string {
	step := LabelStep(len(buckets), g)
	labels := make([]string, 0, len(buckets)/step+1)
	for i := 0; i < len(buckets); i += step {
		labels = append(labels, buckets[i].Label)
	}
	return labels
}
