package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
	"github.com/soundline/spotify-ingress/pkg/pipeline"
	"github.com/soundline/spotify-ingress/pkg/report"
	"github.com/soundline/spotify-ingress/pkg/sink"
	"github.com/soundline/spotify-ingress/pkg/source"
	"github.com/soundline/spotify-ingress/pkg/transform"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "spotify-ingress:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := config.BuildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	src, err := source.NewDatasetSource(cfg.Kaggle, logger)
	if err != nil {
		return err
	}

	dest, err := sink.NewFactory(cfg, logger).CreateDestination(ctx)
	if err != nil {
		return err
	}
	defer dest.Close()

	if err := dest.Validate(); err != nil {
		return err
	}

	transformer, err := transform.NewTransformerWithConfig(logger, transform.Config{
		PopularityThreshold: cfg.PopularityThreshold,
		RadioMixMaxSec:      cfg.RadioMixMaxSec,
	})
	if err != nil {
		return err
	}

	renderer, err := report.NewRenderer(cfg.ChartDir, logger)
	if err != nil {
		return err
	}

	p, err := pipeline.New(cfg, src, transformer, dest, renderer, logger)
	if err != nil {
		return err
	}

	if err := p.Run(ctx); err != nil {
		logger.Error("Pipeline run failed", zap.Error(err))
		return err
	}

	return nil
}
