package engine

import (
	"fmt"
	"math"
)

// ============================================================================
// TEXT BUILDER — Headline summary of a trend series
// ============================================================================

// TrendText is a one-glance summary of time buckets: how many movies, their
// rated mean, the best bucket and how the rating moved across the series.
type TrendText struct {
	Value     string      `json:"value"`    // "↑ 4.2%", "→ No change"
	Period    string      `json:"period"`   // "1990s – 2010s"
	Count     int         `json:"count"`    // movies across all buckets
	AvgRating *float64    `json:"avgRating"`
	Peak      *Bucket     `json:"peak,omitempty"`
	Growth    *GrowthData `json:"growth,omitempty"`
}

// GrowthData compares the first and last rated buckets.
type GrowthData struct {
	EarliestValue  float64 `json:"earliestValue"`
	LatestValue    float64 `json:"latestValue"`
	EarliestPeriod string  `json:"earliestPeriod"`
	LatestPeriod   string  `json:"latestPeriod"`
	ChangeAmount   float64 `json:"changeAmount"`
	ChangePercent  float64 `json:"changePercent"`
	Direction      string  `json:"direction"` // "increased", "decreased", "unchanged", "insufficient data"
}

// BuildTrendText summarises buckets produced by AggregateByTime.
func BuildTrendText(buckets []Bucket) *TrendText {
	if len(buckets) == 0 {
		return &TrendText{Value: "No data", Period: "No data"}
	}

	out := &TrendText{
		Period: DerivePeriod(buckets),
		Count:  TotalCount(buckets),
	}

	var sum float64
	var rated int
	var first, last *Bucket
	for i := range buckets {
		b := &buckets[i]
		if !b.HasRating() {
			continue
		}
		sum += *b.AvgRating * float64(b.RatedCount)
		rated += b.RatedCount
		if first == nil {
			first = b
		}
		last = b
		if out.Peak == nil || *b.AvgRating > *out.Peak.AvgRating {
			out.Peak = b
		}
	}
	if rated > 0 {
		avg := RoundTo2(sum / float64(rated))
		out.AvgRating = &avg
	}
	if out.Peak != nil {
		peak := *out.Peak
		out.Peak = &peak
	}

	if first == nil || first == last {
		out.Value = "→ No change"
		if first != nil {
			v := *first.AvgRating
			out.Growth = &GrowthData{
				EarliestValue:  v,
				LatestValue:    v,
				EarliestPeriod: first.Label,
				LatestPeriod:   first.Label,
				Direction:      "insufficient data",
			}
		}
		return out
	}

	change := *last.AvgRating - *first.AvgRating
	percent := change / *first.AvgRating * 100

	direction := "unchanged"
	if percent > 0.5 {
		direction = "increased"
	} else if percent < -0.5 {
		direction = "decreased"
	}

	switch direction {
	case "increased":
		out.Value = fmt.Sprintf("↑ %.1f%%", math.Abs(percent))
	case "decreased":
		out.Value = fmt.Sprintf("↓ %.1f%%", math.Abs(percent))
	default:
		out.Value = "→ No change"
	}

	out.Growth = &GrowthData{
		EarliestValue:  *first.AvgRating,
		LatestValue:    *last.AvgRating,
		EarliestPeriod: first.Label,
		LatestPeriod:   last.Label,
		ChangeAmount:   RoundTo2(change),
		ChangePercent:  RoundTo2(percent),
		Direction:      direction,
	}
	return out
}

// ============================================================================
// PERIOD HELPER
// ============================================================================

// DerivePeriod builds a human-readable span from ordered buckets.
func DerivePeriod(buckets []Bucket) string {
	switch len(buckets) {
	case 0:
		return "No data"
	case 1:
		return buckets[0].Label
	}
	return fmt.Sprintf("%s – %s", buckets[0].Label, buckets[len(buckets)-1].Label)
}
