// Package config loads run configuration from the environment, with an
// optional .env file for local use.
package config

import (
	"fmt"
	"os"
	"strconv"

	"scorecard/domain/core"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	Data      DataConfig
	Treatment TreatmentConfig
	Scoring   ScoringConfig
	Store     StoreConfig
	Report    ReportConfig
}

// DataConfig holds dataset input settings
type DataConfig struct {
	InputFile string // CSV or XLSX path
	Target    string // name of the binary target field
}

// TreatmentConfig holds cap/floor/impute defaults applied to continuous fields
type TreatmentConfig struct {
	QLow  float64
	QHigh float64
}

// ScoringConfig holds binning and WOE/IV settings
type ScoringConfig struct {
	Bins        int
	Smoothing   float64
	IVThreshold float64
	RankBuckets int
}

// StoreConfig holds result persistence settings
type StoreConfig struct {
	Driver string // "sqlite" or "postgres"
	DSN    string
}

// ReportConfig holds report output settings
type ReportConfig struct {
	OutputDir string
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	cfg := &Config{
		Data: DataConfig{
			InputFile: getEnvOrDefault("SCORECARD_INPUT", ""),
			Target:    getEnvOrDefault("SCORECARD_TARGET", "bad"),
		},
		Treatment: TreatmentConfig{
			QLow:  getEnvFloatOrDefault("SCORECARD_Q_LOW", 0.01),
			QHigh: getEnvFloatOrDefault("SCORECARD_Q_HIGH", 0.99),
		},
		Scoring: ScoringConfig{
			Bins:        getEnvIntOrDefault("SCORECARD_BINS", 10),
			Smoothing:   getEnvFloatOrDefault("SCORECARD_SMOOTHING", 0.5),
			IVThreshold: getEnvFloatOrDefault("SCORECARD_IV_THRESHOLD", 0.02),
			RankBuckets: getEnvIntOrDefault("SCORECARD_RANK_BUCKETS", 10),
		},
		Store: StoreConfig{
			Driver: getEnvOrDefault("SCORECARD_STORE_DRIVER", "sqlite"),
			DSN:    getEnvOrDefault("SCORECARD_STORE_DSN", "scorecard.db"),
		},
		Report: ReportConfig{
			OutputDir: getEnvOrDefault("SCORECARD_REPORT_DIR", "reports"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Data.Target == "" {
		return fmt.Errorf("%w: target field name is required", core.ErrInputShape)
	}
	if c.Treatment.QLow < 0 || c.Treatment.QHigh > 1 || c.Treatment.QLow >= c.Treatment.QHigh {
		return core.NewInvalidQuantileError(c.Treatment.QLow)
	}
	if c.Scoring.Bins < 2 {
		return core.ErrTooFewBins
	}
	if c.Scoring.Smoothing <= 0 {
		return core.NewNumericDomainError("smoothing must be positive")
	}
	if c.Scoring.RankBuckets < 1 {
		return fmt.Errorf("%w: rank buckets must be at least 1", core.ErrDegenerateInput)
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("%w: unsupported store driver %q", core.ErrInputShape, c.Store.Driver)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
