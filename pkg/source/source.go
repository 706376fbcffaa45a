// pkg/source/source.go
package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
	"github.com/soundline/spotify-ingress/pkg/model"
)

// DatasetSource supplies the raw albums and tracks datasets, fetching
// the archive from Kaggle when the CSV files are not already present in
// the data directory.
type DatasetSource struct {
	cfg    *config.KaggleConfig
	kaggle *KaggleClient
	logger *zap.Logger
}

// NewDatasetSource creates a new DatasetSource instance.
func NewDatasetSource(cfg *config.KaggleConfig, logger *zap.Logger) (*DatasetSource, error) {
	if cfg == nil {
		return nil, errors.New("kaggle configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	kaggle, err := NewKaggleClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	return &DatasetSource{
		cfg:    cfg,
		kaggle: kaggle,
		logger: logger.Named("source"),
	}, nil
}

// Fetch returns the raw albums and tracks datasets, downloading and
// extracting the dataset archive first when needed.
func (s *DatasetSource) Fetch(ctx context.Context) (model.Dataset, model.Dataset, error) {
	albumsPath := filepath.Join(s.cfg.DataDir, s.cfg.AlbumsFile)
	tracksPath := filepath.Join(s.cfg.DataDir, s.cfg.TracksFile)

	if !fileExists(albumsPath) || !fileExists(tracksPath) {
		archivePath, err := s.kaggle.DownloadDataset(ctx)
		if err != nil {
			return model.Dataset{}, model.Dataset{}, err
		}
		if err := ExtractArchive(archivePath, s.cfg.DataDir, s.logger); err != nil {
			return model.Dataset{}, model.Dataset{}, err
		}
	} else {
		s.logger.Info("Dataset files already present, skipping download",
			zap.String("dir", s.cfg.DataDir))
	}

	albums, err := ReadCSVFile(albumsPath)
	if err != nil {
		return model.Dataset{}, model.Dataset{}, fmt.Errorf("failed to load albums: %w", err)
	}
	tracks, err := ReadCSVFile(tracksPath)
	if err != nil {
		return model.Dataset{}, model.Dataset{}, fmt.Errorf("failed to load tracks: %w", err)
	}

	s.logger.Info("Loaded raw datasets",
		zap.Int("album_rows", albums.Len()),
		zap.Int("track_rows", tracks.Len()))

	return albums, tracks, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
