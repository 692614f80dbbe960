package engine

// ============================================================================
// MOVIESCOPE ENGINE TYPES — Closed, typed records for the movie pipeline
// ============================================================================
// Loader → Filter → Select → (Aggregate | Layout) → presentation.
// Records are normalized once at the load boundary (helpers.ParseCSV) so
// nothing downstream ever re-parses a cell.
// ============================================================================

// ============================================================================
// MOVIE — One dataset record
// ============================================================================

// Movie is a single dataset row. Immutable after load.
//
// Rating is 0 when the cell was absent, unparsable or outside [0,10].
// Year, Month and Day are 0 when the cell did not parse as an integer;
// a movie with Year == 0 is excluded from every year-based operation.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Duration    string   `json:"duration"` // "2h 22m", display only
	Rating      float64  `json:"rating"`
	Description string   `json:"description"`
	Link        string   `json:"link,omitempty"`
	Writers     []string `json:"writers"`
	Directors   []string `json:"directors"`
	Stars       []string `json:"stars"`
	Countries   []string `json:"countriesOfOrigin"`
	Companies   []string `json:"productionCompanies"`
	Genres      []string `json:"genres"`      // display labels
	GenreTokens []string `json:"genreTokens"` // filter keys
	ReleaseDate string   `json:"releaseDate"`
	Year        int      `json:"year,omitempty"`
	Month       int      `json:"month,omitempty"`
	Day         int      `json:"day,omitempty"`
}

// HasYear reports whether the record carries a usable release year.
func (m Movie) HasYear() bool { return m.Year > 0 }

// HasRating reports whether the rating counts towards averages.
func (m Movie) HasRating() bool { return m.Rating > 0 && m.Rating <= MaxRating }

// MaxRating is the top of the rating scale.
const MaxRating = 10.0

// ============================================================================
// FILTER SPEC — User-chosen constraints
// ============================================================================

// DefaultResultCount is the display cap used when none is given.
const DefaultResultCount = 25

// YearRange is an inclusive [Min, Max] span of release years.
// The zero value means "no year constraint".
type YearRange struct {
	Min int `json:"min" yaml:"min" koanf:"min"`
	Max int `json:"max" yaml:"max" koanf:"max"`
}

// IsZero returns true if no year constraint is set.
func (r YearRange) IsZero() bool { return r.Min == 0 && r.Max == 0 }

// Contains reports whether year lies inside the range, inclusive.
func (r YearRange) Contains(year int) bool { return year >= r.Min && year <= r.Max }

// Clamp orders the bounds and clips them to domain.
// A zero domain leaves the (ordered) range untouched.
func (r YearRange) Clamp(domain YearRange) YearRange {
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	if domain.IsZero() {
		return r
	}
	r.Min = clampInt(r.Min, domain.Min, domain.Max)
	r.Max = clampInt(r.Max, domain.Min, domain.Max)
	return r
}

// FilterSpec holds the user's filter choices.
// OR within SelectedGenres, AND across the three clauses. Empty = all.
type FilterSpec struct {
	SelectedGenres []string  `json:"selectedGenres"`
	YearRange      YearRange `json:"yearRange"`
	SearchText     string    `json:"searchText"`
	ResultCount    int       `json:"resultCount"`
}

// HasGenres returns true if a genre constraint is set.
func (s FilterSpec) HasGenres() bool { return len(s.SelectedGenres) > 0 }

// Count returns ResultCount, falling back to DefaultResultCount.
func (s FilterSpec) Count() int {
	if s.ResultCount > 0 {
		return s.ResultCount
	}
	return DefaultResultCount
}

// ============================================================================
// DISPLAY MODE
// ============================================================================

// DisplayMode governs how the Selection Strategy orders the display list.
type DisplayMode string

const (
	ModeRandom DisplayMode = "random"
	ModeTop    DisplayMode = "top"
)

// ParseDisplayMode maps user input onto a DisplayMode. Unknown → random.
func ParseDisplayMode(s string) DisplayMode {
	if DisplayMode(s) == ModeTop {
		return ModeTop
	}
	return ModeRandom
}

// ============================================================================
// BUCKET — Aggregation output
// ============================================================================

// Granularity selects the time grouping key.
type Granularity string

const (
	ByYear   Granularity = "year"
	ByDecade Granularity = "decade"
)

// OtherBucket is the label of the synthetic collapsed genre bucket.
const OtherBucket = "Other"

// Bucket is one aggregation group with derived count and average rating.
// AvgRating is nil when no movie in the group had a valid rating.
type Bucket struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Count      int        `json:"count"`
	AvgRating  *float64   `json:"avgRating"`
	RatedCount int        `json:"ratedCount"`
	Range      *YearRange `json:"range,omitempty"` // time buckets only

	ratingSum float64
}

// HasRating reports whether AvgRating is present.
func (b Bucket) HasRating() bool { return b.AvgRating != nil }

// Average returns the average rating, or 0 when absent.
func (b Bucket) Average() float64 {
	if b.AvgRating == nil {
		return 0
	}
	return *b.AvgRating
}

func (b *Bucket) add(m Movie) {
	b.Count++
	if m.HasRating() {
		b.ratingSum += m.Rating
		b.RatedCount++
	}
}

func (b *Bucket) finish() {
	if b.RatedCount > 0 {
		avg := b.ratingSum / float64(b.RatedCount)
		b.AvgRating = &avg
	}
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render the trend chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	TickLabels []string      `json:"tickLabels"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Kind  string       `json:"kind"` // "bar", "line"
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
