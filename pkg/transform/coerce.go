// pkg/transform/coerce.go
package transform

import (
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// titleCaser normalizes display text the way the source dataset is
// published: title-cased words, everything else lowered. Single-pass
// batch execution, so sharing one caser is fine.
var titleCaser = cases.Title(language.English)

// releaseDateFormats are tried in order when parsing release dates.
var releaseDateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// coerceRecord converts one raw record into a typed Track. It returns
// false when a required value is missing or cannot be coerced, which
// marks the record for dropping. Optional fields (artists, release
// date) degrade to their zero values instead.
func coerceRecord(rec model.Record) (model.Track, bool) {
	trackID := strings.TrimSpace(rec[model.ColTrackID])
	if trackID == "" {
		return model.Track{}, false
	}

	name := normalizeText(rec[model.ColTrackName])
	if name == "" {
		return model.Track{}, false
	}

	label := normalizeText(rec[model.ColLabel])
	if label == "" {
		return model.Track{}, false
	}

	popularity, err := cast.ToIntE(strings.TrimSpace(rec[model.ColPopularity]))
	if err != nil {
		return model.Track{}, false
	}

	explicit, err := cast.ToBoolE(strings.TrimSpace(rec[model.ColExplicit]))
	if err != nil {
		return model.Track{}, false
	}

	duration, err := cast.ToFloat64E(strings.TrimSpace(rec[model.ColDurationSec]))
	if err != nil {
		return model.Track{}, false
	}

	return model.Track{
		TrackID:     trackID,
		TrackName:   name,
		Artists:     strings.TrimSpace(rec[model.ColArtists]),
		ReleaseDate: parseReleaseDate(rec[model.ColReleaseDate]),
		Label:       label,
		Popularity:  popularity,
		Explicit:    explicit,
		DurationSec: duration,
	}, true
}

// normalizeText trims and title-cases a display string.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return titleCaser.String(s)
}

// parseReleaseDate parses a release date, returning nil when the value
// is empty or unparseable. Bad dates are coerced to null rather than
// dropping the record.
func parseReleaseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, format := range releaseDateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	return nil
}
