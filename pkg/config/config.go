// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Destination database kinds supported by the pipeline.
const (
	DestinationSQLite   = "sqlite"
	DestinationPostgres = "postgres"
)

// Config represents the application configuration, constructed once at
// startup and threaded through the pipeline stages explicitly.
type Config struct {
	// Dataset acquisition
	Kaggle *KaggleConfig

	// Destination database
	Destination string
	SQLite      *SQLiteConfig
	Postgres    *PostgresConfig

	// Transform thresholds
	PopularityThreshold int
	RadioMixMaxSec      float64

	// Reporting
	TopLabelCount  int
	TopTrackCount  int
	TopTracksSince time.Time
	TopTracksUntil time.Time
	ChartDir       string

	// Load settings
	InsertChunkSize int

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Destination: getEnv("DESTINATION", DestinationSQLite),

		PopularityThreshold: getEnvAsInt("POPULARITY_THRESHOLD", 50),
		RadioMixMaxSec:      getEnvAsFloat("RADIO_MIX_MAX_SEC", 180),

		TopLabelCount: getEnvAsInt("TOP_LABEL_COUNT", 20),
		TopTrackCount: getEnvAsInt("TOP_TRACK_COUNT", 25),
		ChartDir:      getEnv("CHART_DIR", "charts"),

		InsertChunkSize: getEnvAsInt("INSERT_CHUNK_SIZE", 1000),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	since, err := getEnvAsDate("TOP_TRACKS_SINCE", "2020-01-01")
	if err != nil {
		return nil, err
	}
	cfg.TopTracksSince = since

	until, err := getEnvAsDate("TOP_TRACKS_UNTIL", "2023-12-31")
	if err != nil {
		return nil, err
	}
	cfg.TopTracksUntil = until

	kaggleConfig, err := LoadKaggleConfig()
	if err != nil {
		return nil, errors.New("failed to load Kaggle configuration: " + err.Error())
	}
	cfg.Kaggle = kaggleConfig

	switch cfg.Destination {
	case DestinationSQLite:
		cfg.SQLite = LoadSQLiteConfig()
	case DestinationPostgres:
		pgConfig, err := LoadPostgresConfig()
		if err != nil {
			return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
		}
		cfg.Postgres = pgConfig
	default:
		return nil, fmt.Errorf("unknown destination %q", cfg.Destination)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Kaggle == nil {
		return errors.New("kaggle configuration is required")
	}

	if c.SQLite == nil && c.Postgres == nil {
		return errors.New("a destination database configuration is required")
	}

	if c.RadioMixMaxSec <= 0 {
		return errors.New("radio mix duration cutoff must be positive")
	}

	if c.TopLabelCount <= 0 || c.TopTrackCount <= 0 {
		return errors.New("top-N counts must be positive")
	}

	if c.TopTracksUntil.Before(c.TopTracksSince) {
		return errors.New("top tracks window end precedes its start")
	}

	if c.InsertChunkSize <= 0 {
		return errors.New("insert chunk size must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDate(key, defaultValue string) (time.Time, error) {
	valueStr := getEnv(key, defaultValue)
	value, err := time.Parse("2006-01-02", valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a YYYY-MM-DD date: %w", key, err)
	}
	return value, nil
}
