package treemap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/moviescope/engine"
)

func buckets(counts ...int) []engine.Bucket {
	out := make([]engine.Bucket, len(counts))
	for i, c := range counts {
		avg := 5.0 + float64(i)
		out[i] = engine.Bucket{Key: fmt.Sprintf("g%d", i), Label: fmt.Sprintf("Genre %d", i), Count: c, AvgRating: &avg}
	}
	return out
}

func rawOptions() Options {
	return Options{Width: 520, Height: 320}
}

func TestSquarify_AreaProportionalToCount(t *testing.T) {
	in := buckets(40, 25, 15, 10, 6, 3, 1)
	tiles := Squarify(in, rawOptions())
	require.Len(t, tiles, len(in))

	total := 0
	for _, b := range in {
		total += b.Count
	}
	full := 520.0 * 320.0

	area := 0.0
	for i, tile := range tiles {
		assert.Equal(t, in[i].Key, tile.Bucket.Key, "tiles keep bucket order")
		want := full * float64(in[i].Count) / float64(total)
		assert.InEpsilon(t, want, tile.Area(), 1e-6, tile.Label)
		area += tile.Area()
	}
	assert.InDelta(t, full, area, 1e-6)
}

func TestSquarify_TilesStayInsideAndDoNotOverlap(t *testing.T) {
	tiles := Squarify(buckets(12, 9, 9, 7, 5, 5, 4, 2, 2, 1), DefaultOptions())

	for i, a := range tiles {
		assert.GreaterOrEqual(t, a.X0, 0.0)
		assert.GreaterOrEqual(t, a.Y0, 0.0)
		assert.LessOrEqual(t, a.X1, 520.0)
		assert.LessOrEqual(t, a.Y1, 320.0)
		assert.LessOrEqual(t, a.X0, a.X1)
		assert.LessOrEqual(t, a.Y0, a.Y1)

		for _, b := range tiles[i+1:] {
			overlapX := min(a.X1, b.X1) - max(a.X0, b.X0)
			overlapY := min(a.Y1, b.Y1) - max(a.Y0, b.Y0)
			assert.False(t, overlapX > 0 && overlapY > 0, "%s overlaps %s", a.Label, b.Label)
		}
	}
}

func TestSquarify_Deterministic(t *testing.T) {
	in := buckets(30, 20, 20, 8, 2)
	assert.Equal(t, Squarify(in, DefaultOptions()), Squarify(in, DefaultOptions()))
}

func TestSquarify_AspectRatios(t *testing.T) {
	tiles := Squarify(buckets(10, 10, 10, 10, 10, 10), rawOptions())
	for _, tile := range tiles {
		ratio := max(tile.Width()/tile.Height(), tile.Height()/tile.Width())
		assert.Less(t, ratio, 3.0, "squarified tiles stay close to square")
	}
}

func TestSquarify_Empty(t *testing.T) {
	assert.Empty(t, Squarify(nil, DefaultOptions()))
	assert.Empty(t, Squarify(buckets(0, 0), DefaultOptions()))
	assert.Empty(t, Squarify(buckets(3), Options{}))
}

func TestSquarify_SingleBucketFillsTheArea(t *testing.T) {
	tiles := Squarify(buckets(7), rawOptions())
	require.Len(t, tiles, 1)
	assert.Equal(t, Tile{
		Bucket:    tiles[0].Bucket,
		X0:        0,
		Y0:        0,
		X1:        520,
		Y1:        320,
		Color:     engine.RatingColor(tiles[0].Bucket.AvgRating),
		Label:     "Genre 0",
		ShowLabel: true,
	}, tiles[0])
}

func TestDecorate(t *testing.T) {
	other := engine.Bucket{Label: engine.OtherBucket, Count: 5}
	long := engine.Bucket{Label: "Psychological Thriller", Count: 1}
	tiles := Squarify([]engine.Bucket{other, long}, DefaultOptions())
	require.Len(t, tiles, 2)

	assert.Equal(t, engine.NoRatingColor, tiles[0].Color)
	assert.Equal(t, "Psychologica…", tiles[1].Label)
	for _, tile := range tiles {
		assert.Equal(t, tile.X0, float64(int(tile.X0)), "rounded")
		assert.Equal(t, tile.ShowLabel, tile.Width() > 60 && tile.Height() > 30)
	}
}
