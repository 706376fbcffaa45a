// pkg/sink/factory.go
package sink

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
)

// Factory creates destination connectors from configuration.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new destination factory.
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDestination creates the configured destination connector.
func (f *Factory) CreateDestination(ctx context.Context) (Destination, error) {
	switch f.cfg.Destination {
	case config.DestinationSQLite:
		f.logger.Info("Creating SQLite destination")
		dest, err := NewSQLiteDestination(ctx, f.cfg.SQLite, f.cfg.InsertChunkSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite destination: %w", err)
		}
		return dest, nil
	case config.DestinationPostgres:
		f.logger.Info("Creating PostgreSQL destination")
		dest, err := NewPostgresDestination(ctx, f.cfg.Postgres, f.cfg.InsertChunkSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL destination: %w", err)
		}
		return dest, nil
	default:
		return nil, fmt.Errorf("unknown destination %q", f.cfg.Destination)
	}
}
