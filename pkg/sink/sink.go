// pkg/sink/sink.go
package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// TracksTable is the destination table for transformed track records.
const TracksTable = "spotify_tracks"

// insertColumns is the column order of the destination table.
var insertColumns = []string{
	model.ColTrackID,
	model.ColTrackName,
	model.ColArtists,
	model.ColReleaseDate,
	model.ColLabel,
	model.ColPopularity,
	model.ColExplicit,
	model.ColDurationSec,
	model.ColRadioMix,
}

// Destination defines the interface for destination databases.
type Destination interface {
	// DB returns the underlying database handle.
	DB() *sqlx.DB

	// Validate verifies the connection and permissions.
	Validate() error

	// Close closes the connection and releases resources.
	Close() error

	// EnsureSchema drops and recreates the tracks table. Each run
	// replaces the previous load.
	EnsureSchema(ctx context.Context) error

	// InsertTracks writes the transformed records and returns the
	// number of rows inserted.
	InsertTracks(ctx context.Context, tracks []model.Track) (int64, error)

	// CountTracks returns the number of rows in the tracks table.
	CountTracks(ctx context.Context) (int64, error)
}

// PingWithTimeout attempts to ping a database with a timeout.
func PingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping failed after %v: %w", timeout, err)
	}
	return nil
}

// insertStatement is shared by both destinations; sqlx rewrites the
// named parameters for whichever driver is in use.
func insertStatement() string {
	placeholders := make([]string, len(insertColumns))
	for i, col := range insertColumns {
		placeholders[i] = ":" + col
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		TracksTable,
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "))
}

// insertTracksChunked performs a chunked batch insert inside a single
// transaction so a failed run never leaves a partial load behind.
func insertTracksChunked(
	ctx context.Context,
	db *sqlx.DB,
	logger *zap.Logger,
	tracks []model.Track,
	chunkSize int,
	timeout time.Duration,
) (int64, error) {
	if len(tracks) == 0 {
		return 0, nil
	}
	if chunkSize <= 0 {
		chunkSize = 1000
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tx, err := db.BeginTxx(execCtx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	stmt := insertStatement()
	var total int64
	for i := 0; i < len(tracks); i += chunkSize {
		end := i + chunkSize
		if end > len(tracks) {
			end = len(tracks)
		}

		result, err := tx.NamedExecContext(execCtx, stmt, tracks[i:end])
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("Failed to rollback transaction", zap.Error(rbErr))
			}
			return 0, fmt.Errorf("batch insert failed: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			logger.Warn("Couldn't get rows affected", zap.Error(err))
			rows = int64(end - i)
		}
		total += rows
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Inserted track records",
		zap.Int64("rows", total),
		zap.Int("chunk_size", chunkSize))

	return total, nil
}

// countTracks returns the row count of the tracks table.
func countTracks(ctx context.Context, db *sqlx.DB, timeout time.Duration) (int64, error) {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var count int64
	err := db.GetContext(queryCtx, &count, "SELECT COUNT(*) FROM "+TracksTable)
	if err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", TracksTable, err)
	}
	return count, nil
}
