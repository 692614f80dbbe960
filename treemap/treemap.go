// Package treemap packs genre buckets into a rectangle with the squarified
// algorithm (Bruls, Huizing, van Wijk). Tile area is proportional to bucket
// count. Output depends only on the bucket order, so callers pass buckets
// sorted by count descending, as engine.AggregateByGenre returns them.
package treemap

import (
	"math"

	"github.com/spektr-org/moviescope/engine"
)

// Tile is one placed bucket.
type Tile struct {
	Bucket    engine.Bucket `json:"bucket"`
	X0        float64       `json:"x0"`
	Y0        float64       `json:"y0"`
	X1        float64       `json:"x1"`
	Y1        float64       `json:"y1"`
	Color     string        `json:"color"`
	Label     string        `json:"label"`
	ShowLabel bool          `json:"showLabel"`
}

// Width returns the tile width.
func (t Tile) Width() float64 { return t.X1 - t.X0 }

// Height returns the tile height.
func (t Tile) Height() float64 { return t.Y1 - t.Y0 }

// Area returns the tile area.
func (t Tile) Area() float64 { return t.Width() * t.Height() }

// Options controls the layout.
type Options struct {
	Width        float64 `json:"width" yaml:"width" koanf:"width"`
	Height       float64 `json:"height" yaml:"height" koanf:"height"`
	PaddingInner float64 `json:"paddingInner" yaml:"padding" koanf:"padding"`
	Round        bool    `json:"round" yaml:"round" koanf:"round"`
}

// DefaultOptions matches the dashboard's 520×320 panel.
func DefaultOptions() Options {
	return Options{Width: 520, Height: 320, PaddingInner: 3, Round: true}
}

// maxLabelRunes truncates long genre names on tiles.
const maxLabelRunes = 12

// Squarify lays out buckets inside opts.Width × opts.Height.
// Buckets with a non-positive count are skipped.
func Squarify(buckets []engine.Bucket, opts Options) []Tile {
	items := make([]engine.Bucket, 0, len(buckets))
	total := 0.0
	for _, b := range buckets {
		if b.Count > 0 {
			items = append(items, b)
			total += float64(b.Count)
		}
	}
	if len(items) == 0 || opts.Width <= 0 || opts.Height <= 0 {
		return []Tile{}
	}

	scale := opts.Width * opts.Height / total
	tiles := make([]Tile, 0, len(items))
	x0, y0, x1, y1 := 0.0, 0.0, opts.Width, opts.Height

	for i := 0; i < len(items); {
		dx, dy := x1-x0, y1-y0
		side := math.Min(dx, dy)

		// Grow the row while the worst aspect ratio keeps improving.
		j := i
		rowSum := 0.0
		minV, maxV := math.Inf(1), 0.0
		worst := math.Inf(1)
		for ; j < len(items); j++ {
			v := float64(items[j].Count) * scale
			nextSum := rowSum + v
			nextMin, nextMax := math.Min(minV, v), math.Max(maxV, v)
			ratio := math.Max(side*side*nextMax/(nextSum*nextSum), nextSum*nextSum/(side*side*nextMin))
			if j > i && ratio > worst {
				break
			}
			worst, rowSum, minV, maxV = ratio, nextSum, nextMin, nextMax
		}

		// Lay the row along the shorter side.
		if dx < dy {
			h := rowSum / dx
			x := x0
			for k := i; k < j; k++ {
				w := float64(items[k].Count) * scale / h
				tiles = append(tiles, Tile{Bucket: items[k], X0: x, Y0: y0, X1: x + w, Y1: y0 + h})
				x += w
			}
			if j == len(items) {
				tiles[len(tiles)-1].X1 = x1
			}
			y0 += h
		} else {
			w := rowSum / dy
			y := y0
			for k := i; k < j; k++ {
				h := float64(items[k].Count) * scale / w
				tiles = append(tiles, Tile{Bucket: items[k], X0: x0, Y0: y, X1: x0 + w, Y1: y + h})
				y += h
			}
			if j == len(items) {
				tiles[len(tiles)-1].Y1 = y1
			}
			x0 += w
		}
		i = j
	}

	for k := range tiles {
		decorate(&tiles[k], opts)
	}
	return tiles
}

func decorate(t *Tile, opts Options) {
	if p := opts.PaddingInner / 2; p > 0 {
		if t.X0 > 0 {
			t.X0 += p
		}
		if t.Y0 > 0 {
			t.Y0 += p
		}
		if t.X1 < opts.Width {
			t.X1 -= p
		}
		if t.Y1 < opts.Height {
			t.Y1 -= p
		}
		if t.X1 < t.X0 {
			t.X0, t.X1 = (t.X0+t.X1)/2, (t.X0+t.X1)/2
		}
		if t.Y1 < t.Y0 {
			t.Y0, t.Y1 = (t.Y0+t.Y1)/2, (t.Y0+t.Y1)/2
		}
	}
	if opts.Round {
		t.X0, t.Y0 = math.Round(t.X0), math.Round(t.Y0)
		t.X1, t.Y1 = math.Round(t.X1), math.Round(t.Y1)
	}

	t.Color = engine.RatingColor(t.Bucket.AvgRating)
	t.Label = truncate(t.Bucket.Label, maxLabelRunes)
	t.ShowLabel = t.Width() > 60 && t.Height() > 30
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
