// pkg/sink/sqlite.go
package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
	"github.com/soundline/spotify-ingress/pkg/model"
)

// sqliteSchema mirrors the fixed destination schema.
const sqliteSchema = `
	CREATE TABLE ` + TracksTable + ` (
		track_id TEXT NOT NULL,
		track_name TEXT NOT NULL,
		artists TEXT,
		release_date TIMESTAMP,
		label TEXT NOT NULL,
		track_popularity INTEGER NOT NULL,
		explicit BOOLEAN NOT NULL,
		duration_sec REAL NOT NULL,
		radio_mix BOOLEAN NOT NULL
	)
`

// SQLiteDestination implements the Destination interface for SQLite.
type SQLiteDestination struct {
	db        *sqlx.DB
	logger    *zap.Logger
	cfg       *config.SQLiteConfig
	chunkSize int
}

// NewSQLiteDestination creates and initializes a new SQLite destination.
func NewSQLiteDestination(ctx context.Context, cfg *config.SQLiteConfig, chunkSize int) (*SQLiteDestination, error) {
	logger := zap.L().Named("sqlite-destination")

	logger.Info("Opening SQLite database", zap.String("path", cfg.Path))

	db, err := sqlx.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite connection: %w", err)
	}

	// A single writer keeps the file driver out of lock contention.
	db.SetMaxOpenConns(1)

	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	return &SQLiteDestination{
		db:        db,
		logger:    logger,
		cfg:       cfg,
		chunkSize: chunkSize,
	}, nil
}

// DB returns the underlying database handle.
func (d *SQLiteDestination) DB() *sqlx.DB {
	return d.db
}

// Validate verifies the SQLite connection.
func (d *SQLiteDestination) Validate() error {
	var version string
	if err := d.db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to query SQLite version: %w", err)
	}

	d.logger.Info("Connected to SQLite",
		zap.String("version", version),
		zap.String("path", d.cfg.Path))
	return nil
}

// Close closes the database connection.
func (d *SQLiteDestination) Close() error {
	d.logger.Info("Closing SQLite database")
	return d.db.Close()
}

// EnsureSchema drops and recreates the tracks table.
func (d *SQLiteDestination) EnsureSchema(ctx context.Context) error {
	execCtx, cancel := context.WithTimeout(ctx, d.cfg.StatementTimeout)
	defer cancel()

	if _, err := d.db.ExecContext(execCtx, "DROP TABLE IF EXISTS "+TracksTable); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", TracksTable, err)
	}
	if _, err := d.db.ExecContext(execCtx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create table %s: %w", TracksTable, err)
	}

	d.logger.Info("Ensured destination schema", zap.String("table", TracksTable))
	return nil
}

// InsertTracks writes the transformed records.
func (d *SQLiteDestination) InsertTracks(ctx context.Context, tracks []model.Track) (int64, error) {
	return insertTracksChunked(ctx, d.db, d.logger, tracks, d.chunkSize, d.cfg.StatementTimeout)
}

// CountTracks returns the number of rows in the tracks table.
func (d *SQLiteDestination) CountTracks(ctx context.Context) (int64, error) {
	return countTracks(ctx, d.db, d.cfg.StatementTimeout)
}
