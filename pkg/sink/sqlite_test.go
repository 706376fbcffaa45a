package sink

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
	"github.com/soundline/spotify-ingress/pkg/model"
)

func newTestDestination(t *testing.T) *SQLiteDestination {
	t.Helper()

	zap.ReplaceGlobals(zap.NewNop())
	dest, err := NewSQLiteDestination(context.Background(), &config.SQLiteConfig{
		Path:             ":memory:",
		StatementTimeout: 10 * time.Second,
	}, 2)
	require.NoError(t, err)
	t.Cleanup(func() { dest.Close() })

	require.NoError(t, dest.Validate())
	require.NoError(t, dest.EnsureSchema(context.Background()))

	return dest
}

func sampleTracks() []model.Track {
	released := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	return []model.Track{
		{
			TrackID:     "t1",
			TrackName:   "Song One",
			Artists:     "Artist A",
			ReleaseDate: &released,
			Label:       "Label1",
			Popularity:  55,
			Explicit:    false,
			DurationSec: 170,
			RadioMix:    true,
		},
		{
			TrackID:     "t2",
			TrackName:   "Song Two",
			Label:       "Label2",
			Popularity:  80,
			Explicit:    false,
			DurationSec: 250,
			RadioMix:    false,
		},
		{
			TrackID:     "t3",
			TrackName:   "Song Three",
			Label:       "Label1",
			Popularity:  61,
			Explicit:    false,
			DurationSec: 150,
			RadioMix:    true,
		},
	}
}

func TestInsertAndCountTracks(t *testing.T) {
	dest := newTestDestination(t)
	ctx := context.Background()

	// Chunk size 2 forces multiple insert batches.
	inserted, err := dest.InsertTracks(ctx, sampleTracks())
	require.NoError(t, err)
	assert.Equal(t, int64(3), inserted)

	count, err := dest.CountTracks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestInsertTracksRoundTrip(t *testing.T) {
	dest := newTestDestination(t)
	ctx := context.Background()

	_, err := dest.InsertTracks(ctx, sampleTracks())
	require.NoError(t, err)

	var rows []model.Track
	err = dest.DB().SelectContext(ctx, &rows,
		"SELECT track_id, track_name, artists, label, track_popularity, explicit, duration_sec, radio_mix FROM "+TracksTable+" ORDER BY track_id")
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "Song One", rows[0].TrackName)
	assert.True(t, rows[0].RadioMix)
	assert.Equal(t, 80, rows[1].Popularity)
	assert.False(t, rows[1].RadioMix)
}

func TestEnsureSchemaReplacesPreviousLoad(t *testing.T) {
	dest := newTestDestination(t)
	ctx := context.Background()

	_, err := dest.InsertTracks(ctx, sampleTracks())
	require.NoError(t, err)

	// A new run replaces the table contents.
	require.NoError(t, dest.EnsureSchema(ctx))

	count, err := dest.CountTracks(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInsertTracksEmptyInput(t *testing.T) {
	dest := newTestDestination(t)

	inserted, err := dest.InsertTracks(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}
