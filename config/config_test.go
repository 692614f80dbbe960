package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/moviescope/engine"
	"github.com/spektr-org/moviescope/layout"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 25, cfg.ResultCount)
	assert.Equal(t, 12, cfg.GenreTopN)
	assert.Equal(t, 0, cfg.CandidateCap)
	assert.Equal(t, engine.YearRange{Min: 1960, Max: 2025}, cfg.YearDomain)
	assert.Equal(t, layout.DefaultParams(), cfg.Layout.Params)
	assert.Equal(t, layout.Bounds{Width: 1200, Height: 800}, cfg.Layout.Bounds())
	assert.Equal(t, 520.0, cfg.Treemap.Width)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moviescope.yml")
	yml := `dataset: /data/movies.csv
result_count: 40
year_domain:
  min: 1980
  max: 2020
layout:
  width: 900
  max_ticks: 200
  center_strength: 0.08
treemap:
  padding: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/movies.csv", cfg.Dataset)
	assert.Equal(t, 40, cfg.ResultCount)
	assert.Equal(t, engine.YearRange{Min: 1980, Max: 2020}, cfg.YearDomain)
	assert.Equal(t, 900.0, cfg.Layout.Width)
	assert.Equal(t, 800.0, cfg.Layout.Height, "unset keys keep their default")
	assert.Equal(t, 200, cfg.Layout.MaxTicks)
	assert.Equal(t, 0.08, cfg.Layout.CenterStrength)
	assert.Equal(t, 0.3, cfg.Layout.VelocityDecay)
	assert.Equal(t, 1.0, cfg.Treemap.PaddingInner)
	assert.True(t, cfg.Treemap.Round)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moviescope.yml")
	require.NoError(t, os.WriteFile(path, []byte("result_count: 40\n"), 0644))

	t.Setenv("MOVIESCOPE_RESULT_COUNT", "10")
	t.Setenv("MOVIESCOPE_LAYOUT__MAX_TICKS", "120")
	t.Setenv("MOVIESCOPE_CANDIDATE_CAP", "300")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.ResultCount)
	assert.Equal(t, 120, cfg.Layout.MaxTicks)
	assert.Equal(t, 300, cfg.CandidateCap)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  radius_max_frac: 0.2\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radius_max_frac")
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(path, []byte("result_count: [unclosed\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"zero result count", func(c *Config) { c.ResultCount = 0 }, "result_count"},
		{"zero genre top n", func(c *Config) { c.GenreTopN = 0 }, "genre_top_n"},
		{"negative cap", func(c *Config) { c.CandidateCap = -1 }, "candidate_cap"},
		{"inverted domain", func(c *Config) { c.YearDomain = engine.YearRange{Min: 2020, Max: 1990} }, "year_domain"},
		{"min radius above max", func(c *Config) { c.Layout.RadiusMinFrac = 0.08 }, "radius_min_frac"},
		{"velocity decay out of range", func(c *Config) { c.Layout.VelocityDecay = 1 }, "velocity_decay"},
		{"alpha min out of range", func(c *Config) { c.Layout.AlphaMin = 0 }, "alpha_min"},
		{"no ticks", func(c *Config) { c.Layout.MaxTicks = 0 }, "max_ticks"},
		{"negative padding", func(c *Config) { c.Layout.Padding = -1 }, "padding"},
		{"empty viewport", func(c *Config) { c.Layout.Height = 0 }, "layout width and height"},
		{"empty treemap", func(c *Config) { c.Treemap.Width = 0 }, "treemap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yml")
	cfg := DefaultConfig()
	cfg.Dataset = "movies.csv"
	cfg.GenreTopN = 8
	cfg.Layout.FPS = 30
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
