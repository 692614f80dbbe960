// Package config loads MovieScope settings: defaults, then an optional YAML
// file, then MOVIESCOPE_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/spektr-org/moviescope/engine"
	"github.com/spektr-org/moviescope/layout"
	"github.com/spektr-org/moviescope/treemap"
)

// EnvPrefix is the prefix for environment overrides.
// Nested keys use a double underscore: MOVIESCOPE_LAYOUT__MAX_TICKS=400.
const EnvPrefix = "MOVIESCOPE_"

// Config holds every tunable of the pipeline and the CLI.
type Config struct {
	Dataset      string           `yaml:"dataset" koanf:"dataset"`
	ResultCount  int              `yaml:"result_count" koanf:"result_count"`
	GenreTopN    int              `yaml:"genre_top_n" koanf:"genre_top_n"`
	CandidateCap int              `yaml:"candidate_cap" koanf:"candidate_cap"`
	YearDomain   engine.YearRange `yaml:"year_domain" koanf:"year_domain"`
	Layout       LayoutConfig     `yaml:"layout" koanf:"layout"`
	Treemap      treemap.Options  `yaml:"treemap" koanf:"treemap"`
}

// LayoutConfig sizes the bubble viewport and tunes the simulation.
type LayoutConfig struct {
	Width         float64 `yaml:"width" koanf:"width"`
	Height        float64 `yaml:"height" koanf:"height"`
	FPS           float64 `yaml:"fps" koanf:"fps"`
	layout.Params `yaml:",inline" koanf:",squash"`
}

// Bounds returns the configured viewport.
func (l LayoutConfig) Bounds() layout.Bounds {
	return layout.Bounds{Width: l.Width, Height: l.Height}
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset:      "data/cleaned_movies.csv",
		ResultCount:  engine.DefaultResultCount,
		GenreTopN:    engine.DefaultGenreTopN,
		CandidateCap: 0,
		YearDomain:   engine.YearRange{Min: 1960, Max: 2025},
		Layout: LayoutConfig{
			Width:  1200,
			Height: 800,
			FPS:    60,
			Params: layout.DefaultParams(),
		},
		Treemap: treemap.DefaultOptions(),
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var errs []error

	if c.ResultCount <= 0 {
		errs = append(errs, fmt.Errorf("result_count must be positive"))
	}
	if c.GenreTopN <= 0 {
		errs = append(errs, fmt.Errorf("genre_top_n must be positive"))
	}
	if c.CandidateCap < 0 {
		errs = append(errs, fmt.Errorf("candidate_cap must be non-negative"))
	}
	if c.YearDomain.Min > c.YearDomain.Max {
		errs = append(errs, fmt.Errorf("year_domain min %d exceeds max %d", c.YearDomain.Min, c.YearDomain.Max))
	}

	l := c.Layout
	if l.Width <= 0 || l.Height <= 0 {
		errs = append(errs, fmt.Errorf("layout width and height must be positive"))
	}
	if l.RadiusMinFrac <= 0 || l.RadiusMinFrac > l.RadiusMaxFrac {
		errs = append(errs, fmt.Errorf("layout radius_min_frac must be in (0, radius_max_frac]"))
	}
	if l.RadiusMaxFrac > layout.MaxRadiusFrac {
		errs = append(errs, fmt.Errorf("layout radius_max_frac must not exceed %.2f", layout.MaxRadiusFrac))
	}
	if l.VelocityDecay <= 0 || l.VelocityDecay >= 1 {
		errs = append(errs, fmt.Errorf("layout velocity_decay must be in (0, 1)"))
	}
	if l.AlphaMin <= 0 || l.AlphaMin >= 1 {
		errs = append(errs, fmt.Errorf("layout alpha_min must be in (0, 1)"))
	}
	if l.MaxTicks <= 0 {
		errs = append(errs, fmt.Errorf("layout max_ticks must be positive"))
	}
	if l.Padding < 0 {
		errs = append(errs, fmt.Errorf("layout padding must be non-negative"))
	}

	if c.Treemap.Width <= 0 || c.Treemap.Height <= 0 {
		errs = append(errs, fmt.Errorf("treemap width and height must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
