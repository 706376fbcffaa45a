// pkg/source/kaggle.go
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
)

const kaggleBaseURL = "https://www.kaggle.com/api/v1"

// KaggleClient downloads dataset archives from the Kaggle API.
type KaggleClient struct {
	client *resty.Client
	cfg    *config.KaggleConfig
	logger *zap.Logger
}

// NewKaggleClient creates a new KaggleClient instance.
func NewKaggleClient(cfg *config.KaggleConfig, logger *zap.Logger) (*KaggleClient, error) {
	if cfg == nil {
		return nil, errors.New("kaggle configuration cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	client := resty.New().
		SetBaseURL(kaggleBaseURL).
		SetBasicAuth(cfg.Username, cfg.Key).
		SetTimeout(cfg.RequestTimeout)

	return &KaggleClient{
		client: client,
		cfg:    cfg,
		logger: logger.Named("kaggle"),
	}, nil
}

// DownloadDataset fetches the configured dataset archive into the data
// directory and returns the archive path. Kaggle serves dataset
// downloads as a single zip file.
func (c *KaggleClient) DownloadDataset(ctx context.Context) (string, error) {
	archiveName := strings.ReplaceAll(c.cfg.Dataset, "/", "-") + ".zip"
	archivePath := filepath.Join(c.cfg.DataDir, archiveName)

	c.logger.Info("Downloading dataset",
		zap.String("dataset", c.cfg.Dataset),
		zap.String("archive", archivePath))

	resp, err := c.client.R().
		SetContext(ctx).
		SetOutput(archivePath).
		Get("/datasets/download/" + c.cfg.Dataset)
	if err != nil {
		return "", fmt.Errorf("failed to download dataset %s: %w", c.cfg.Dataset, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("dataset download failed with status %s", resp.Status())
	}

	c.logger.Info("Dataset downloaded",
		zap.String("archive", archivePath),
		zap.Int64("bytes", resp.Size()))

	return archivePath, nil
}
