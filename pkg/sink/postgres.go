// pkg/sink/postgres.go
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
	"github.com/soundline/spotify-ingress/pkg/model"
)

// postgresSchema mirrors the fixed destination schema.
const postgresSchema = `
	CREATE TABLE ` + TracksTable + ` (
		track_id TEXT NOT NULL,
		track_name TEXT NOT NULL,
		artists TEXT,
		release_date TIMESTAMP WITH TIME ZONE,
		label TEXT NOT NULL,
		track_popularity INTEGER NOT NULL,
		explicit BOOLEAN NOT NULL,
		duration_sec DOUBLE PRECISION NOT NULL,
		radio_mix BOOLEAN NOT NULL
	)
`

// PostgresDestination implements the Destination interface for PostgreSQL.
type PostgresDestination struct {
	db        *sqlx.DB
	logger    *zap.Logger
	cfg       *config.PostgresConfig
	chunkSize int
}

// NewPostgresDestination creates and initializes a new PostgreSQL destination.
func NewPostgresDestination(ctx context.Context, cfg *config.PostgresConfig, chunkSize int) (*PostgresDestination, error) {
	logger := zap.L().Named("postgres-destination")

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if cfg.StatementTimeout > 0 {
		_, err = db.ExecContext(
			ctx,
			fmt.Sprintf("SET statement_timeout = %d", cfg.StatementTimeout.Milliseconds()),
		)
		if err != nil {
			logger.Warn("Failed to set statement timeout", zap.Error(err))
		}
	}

	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &PostgresDestination{
		db:        db,
		logger:    logger,
		cfg:       cfg,
		chunkSize: chunkSize,
	}, nil
}

// DB returns the underlying database handle.
func (d *PostgresDestination) DB() *sqlx.DB {
	return d.db
}

// Validate verifies the PostgreSQL connection.
func (d *PostgresDestination) Validate() error {
	var version string
	if err := d.db.QueryRow("SELECT version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to query PostgreSQL version: %w", err)
	}

	d.logger.Info("Connected to PostgreSQL",
		zap.String("version", version),
		zap.String("database", d.cfg.Database))
	return nil
}

// Close closes the database connection.
func (d *PostgresDestination) Close() error {
	d.logger.Info("Closing PostgreSQL connection")
	return d.db.Close()
}

// EnsureSchema drops and recreates the tracks table.
func (d *PostgresDestination) EnsureSchema(ctx context.Context) error {
	execCtx, cancel := context.WithTimeout(ctx, d.cfg.StatementTimeout)
	defer cancel()

	if _, err := d.db.ExecContext(execCtx, "DROP TABLE IF EXISTS "+TracksTable); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", TracksTable, err)
	}
	if _, err := d.db.ExecContext(execCtx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create table %s: %w", TracksTable, err)
	}

	d.logger.Info("Ensured destination schema", zap.String("table", TracksTable))
	return nil
}

// InsertTracks writes the transformed records.
func (d *PostgresDestination) InsertTracks(ctx context.Context, tracks []model.Track) (int64, error) {
	return insertTracksChunked(ctx, d.db, d.logger, tracks, d.chunkSize, d.cfg.StatementTimeout)
}

// CountTracks returns the number of rows in the tracks table.
func (d *PostgresDestination) CountTracks(ctx context.Context) (int64, error) {
	return countTracks(ctx, d.db, d.cfg.StatementTimeout)
}
