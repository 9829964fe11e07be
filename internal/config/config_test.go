package config

import (
	"testing"

	"scorecard/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bad", cfg.Data.Target)
	assert.Equal(t, 10, cfg.Scoring.Bins)
	assert.InDelta(t, 0.5, cfg.Scoring.Smoothing, 1e-9)
	assert.InDelta(t, 0.02, cfg.Scoring.IVThreshold, 1e-9)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SCORECARD_TARGET", "default_flag")
	t.Setenv("SCORECARD_BINS", "5")
	t.Setenv("SCORECARD_Q_LOW", "0.05")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "default_flag", cfg.Data.Target)
	assert.Equal(t, 5, cfg.Scoring.Bins)
	assert.InDelta(t, 0.05, cfg.Treatment.QLow, 1e-9)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		check  func(error) bool
	}{
		{"empty target", func(c *Config) { c.Data.Target = "" }, core.IsInputShapeError},
		{"inverted quantiles", func(c *Config) { c.Treatment.QLow = 0.9; c.Treatment.QHigh = 0.1 }, core.IsInputShapeError},
		{"too few bins", func(c *Config) { c.Scoring.Bins = 1 }, core.IsDegenerateInputError},
		{"zero smoothing", func(c *Config) { c.Scoring.Smoothing = 0 }, core.IsNumericDomainError},
		{"no rank buckets", func(c *Config) { c.Scoring.RankBuckets = 0 }, core.IsDegenerateInputError},
		{"bad driver", func(c *Config) { c.Store.Driver = "oracle" }, core.IsInputShapeError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}
