// pkg/config/kaggle.go
package config

import (
	"errors"
	"time"
)

// KaggleConfig holds Kaggle API credentials and dataset parameters.
type KaggleConfig struct {
	Username string
	Key      string

	// Dataset slug in owner/name form.
	Dataset string

	// Directory the dataset archive is downloaded and extracted into.
	DataDir string

	// CSV file names inside the extracted archive.
	AlbumsFile string
	TracksFile string

	// HTTP timeout for the download request.
	RequestTimeout time.Duration
}

// LoadKaggleConfig loads Kaggle configuration from environment variables.
func LoadKaggleConfig() (*KaggleConfig, error) {
	username := getEnv("KAGGLE_USERNAME", "")
	if username == "" {
		return nil, errors.New("KAGGLE_USERNAME environment variable is required")
	}

	key := getEnv("KAGGLE_KEY", "")
	if key == "" {
		return nil, errors.New("KAGGLE_KEY environment variable is required")
	}

	cfg := &KaggleConfig{
		Username: username,
		Key:      key,

		Dataset: getEnv("KAGGLE_DATASET", "tonygordonjr/spotify-dataset-2023"),
		DataDir: getEnv("DATA_DIR", "data"),

		AlbumsFile: getEnv("ALBUMS_FILE", "spotify-albums_data_2023.csv"),
		TracksFile: getEnv("TRACKS_FILE", "spotify_tracks_data_2023.csv"),

		RequestTimeout: time.Duration(getEnvAsInt("KAGGLE_TIMEOUT_SECONDS", 300)) * time.Second,
	}

	return cfg, nil
}
