// pkg/transform/merge.go
package transform

import (
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// albumColumns is the projection of the albums table carried into the
// merge; every other album column is discarded before joining.
var albumColumns = []string{
	model.ColTrackID,
	model.ColTrackName,
	model.ColReleaseDate,
	model.ColLabel,
	model.ColDurationSec,
}

// Merge left-joins the tracks table onto the projected albums table by
// track_id. Album row order is preserved; albums without a matching
// track keep empty values for track-side columns. Album values win when
// both tables carry the same column.
func (t *Transformer) Merge(albums, tracks model.Dataset) (model.Dataset, error) {
	albums = normalizeDataset(albums)
	tracks = normalizeDataset(tracks)

	// The projection must fail loudly: advertising an absent column in
	// the merged header would let the schema check downstream pass while
	// every record silently loses its value.
	for _, col := range albumColumns {
		if !albums.HasColumn(col) {
			return model.Dataset{}, &SchemaError{Column: col}
		}
	}
	if !tracks.HasColumn(model.ColTrackID) {
		return model.Dataset{}, &SchemaError{Column: model.ColTrackID}
	}

	// Index track records by join key; first occurrence wins.
	trackByID := make(map[string]model.Record, len(tracks.Records))
	for _, rec := range tracks.Records {
		id := rec[model.ColTrackID]
		if id == "" {
			continue
		}
		if _, seen := trackByID[id]; !seen {
			trackByID[id] = rec
		}
	}

	merged := model.Dataset{
		Columns: make([]string, 0, len(albumColumns)+len(tracks.Columns)),
		Records: make([]model.Record, 0, len(albums.Records)),
	}
	merged.Columns = append(merged.Columns, albumColumns...)
	for _, col := range tracks.Columns {
		if !merged.HasColumn(col) {
			merged.Columns = append(merged.Columns, col)
		}
	}

	matched := 0
	for _, album := range albums.Records {
		rec := make(model.Record, len(merged.Columns))
		if track, ok := trackByID[album[model.ColTrackID]]; ok {
			matched++
			for key, value := range track {
				rec[key] = value
			}
		}
		for _, col := range albumColumns {
			rec[col] = album[col]
		}
		merged.Records = append(merged.Records, rec)
	}

	t.logger.Info("Merged albums and tracks",
		zap.Int("albums", len(albums.Records)),
		zap.Int("tracks", len(tracks.Records)),
		zap.Int("matched", matched))

	return merged, nil
}
