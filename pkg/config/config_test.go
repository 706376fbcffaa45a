package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("KAGGLE_USERNAME", "tester")
	t.Setenv("KAGGLE_KEY", "secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DestinationSQLite, cfg.Destination)
	require.NotNil(t, cfg.SQLite)
	assert.Equal(t, "spotify.db", cfg.SQLite.Path)
	assert.Nil(t, cfg.Postgres)

	assert.Equal(t, 50, cfg.PopularityThreshold)
	assert.Equal(t, 180.0, cfg.RadioMixMaxSec)
	assert.Equal(t, 20, cfg.TopLabelCount)
	assert.Equal(t, 25, cfg.TopTrackCount)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), cfg.TopTracksSince)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), cfg.TopTracksUntil)

	require.NotNil(t, cfg.Kaggle)
	assert.Equal(t, "tonygordonjr/spotify-dataset-2023", cfg.Kaggle.Dataset)
	assert.Equal(t, "tester", cfg.Kaggle.Username)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POPULARITY_THRESHOLD", "70")
	t.Setenv("RADIO_MIX_MAX_SEC", "200.5")
	t.Setenv("TOP_LABEL_COUNT", "5")
	t.Setenv("SQLITE_PATH", "out/test.db")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 70, cfg.PopularityThreshold)
	assert.Equal(t, 200.5, cfg.RadioMixMaxSec)
	assert.Equal(t, 5, cfg.TopLabelCount)
	assert.Equal(t, "out/test.db", cfg.SQLite.Path)
}

func TestLoadConfigRequiresKaggleCredentials(t *testing.T) {
	t.Setenv("KAGGLE_USERNAME", "")
	t.Setenv("KAGGLE_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAGGLE_USERNAME")
}

func TestLoadConfigPostgresDestination(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DESTINATION", DestinationPostgres)
	t.Setenv("POSTGRES_USER", "ingress")
	t.Setenv("POSTGRES_PASSWORD", "pw")
	t.Setenv("POSTGRES_DB", "spotify")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.NotNil(t, cfg.Postgres)
	assert.Nil(t, cfg.SQLite)
	assert.Contains(t, cfg.Postgres.ConnectionString(), "dbname=spotify")
}

func TestLoadConfigRejectsUnknownDestination(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DESTINATION", "oracle")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRejectsInvertedWindow(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TOP_TRACKS_SINCE", "2023-01-01")
	t.Setenv("TOP_TRACKS_UNTIL", "2020-01-01")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RADIO_MIX_MAX_SEC", "-1")

	_, err := LoadConfig()
	require.Error(t, err)
}
