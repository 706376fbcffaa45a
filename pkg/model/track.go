// pkg/model/track.go
package model

import "time"

// Canonical column names of the merged dataset after normalization.
const (
	ColTrackID     = "track_id"
	ColTrackName   = "track_name"
	ColArtists     = "artists"
	ColReleaseDate = "release_date"
	ColLabel       = "label"
	ColPopularity  = "track_popularity"
	ColExplicit    = "explicit"
	ColDurationSec = "duration_sec"
	ColRadioMix    = "radio_mix"
)

// Track is one row of the merged Spotify dataset after cleaning.
// RadioMix is only meaningful on records that went through classification.
type Track struct {
	TrackID     string     `db:"track_id"`
	TrackName   string     `db:"track_name"`
	Artists     string     `db:"artists"`
	ReleaseDate *time.Time `db:"release_date"`
	Label       string     `db:"label"`
	Popularity  int        `db:"track_popularity"`
	Explicit    bool       `db:"explicit"`
	DurationSec float64    `db:"duration_sec"`
	RadioMix    bool       `db:"radio_mix"`
}

// ReleasedBetween reports whether the track has a release date inside
// the inclusive [since, until] window. Tracks without a release date
// are never inside any window.
func (t *Track) ReleasedBetween(since, until time.Time) bool {
	if t.ReleaseDate == nil {
		return false
	}
	d := *t.ReleaseDate
	return !d.Before(since) && !d.After(until)
}
