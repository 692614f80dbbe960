package engine

import (
	"math/rand/v2"

	"github.com/hashicorp/go-hclog"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Select() / Recompute() / Explorer
// ============================================================================

// Option configures selection and session behavior via functional options.
type Option func(*config)

type config struct {
	Rand           *rand.Rand // nil → package-level source (non-deterministic)
	SelectedGenres []string   // match-score input for ModeTop
	CandidateCap   int        // 0 = whole filtered set
	YearDomain     YearRange  // zero = no clamping
	Logger         hclog.Logger
}

// WithSeed makes Random selection deterministic for a given seed.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.Rand = newRand(seed)
	}
}

// WithRand supplies the random source used by Random selection.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		c.Rand = r
	}
}

// WithGenres sets the selected genres used to compute match scores in Top mode.
func WithGenres(genres []string) Option {
	return func(c *config) {
		c.SelectedGenres = genres
	}
}

// WithCandidateCap limits the Top ranking pool to the first n filtered movies.
// Random mode always shuffles the whole filtered set. n <= 0 disables the cap.
func WithCandidateCap(n int) Option {
	return func(c *config) {
		c.CandidateCap = n
	}
}

// WithYearDomain sets the span year ranges are clamped to.
func WithYearDomain(domain YearRange) Option {
	return func(c *config) {
		c.YearDomain = domain
	}
}

// WithLogger routes engine logs to logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *config) {
		c.Logger = logger
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return cfg
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
