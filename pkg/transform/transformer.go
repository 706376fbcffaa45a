// pkg/transform/transformer.go
package transform

import (
	"errors"

	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// Transformer applies the cleaning, filtering and classification rules
// of the batch transform. All operations are pure: inputs are never
// mutated and results are freshly allocated.
type Transformer struct {
	logger *zap.Logger
	cfg    Config
}

// Config provides the fixed thresholds for filtering and classification.
type Config struct {
	// Tracks must exceed this popularity to survive the filter.
	PopularityThreshold int
	// Tracks strictly shorter than this many seconds are radio mixes.
	RadioMixMaxSec float64
	// Columns that must be present in the dataset header; records
	// missing a value for any of them are dropped during cleaning.
	RequiredColumns []string
}

// DefaultConfig returns the default thresholds: tracks must exceed
// popularity 50, and radio mixes run strictly under three minutes.
func DefaultConfig() Config {
	return Config{
		PopularityThreshold: 50,
		RadioMixMaxSec:      180,
		RequiredColumns: []string{
			model.ColTrackID,
			model.ColTrackName,
			model.ColLabel,
			model.ColDurationSec,
			model.ColPopularity,
			model.ColExplicit,
		},
	}
}

// NewTransformer creates a Transformer with the default thresholds.
func NewTransformer(logger *zap.Logger) (*Transformer, error) {
	return NewTransformerWithConfig(logger, DefaultConfig())
}

// NewTransformerWithConfig creates a Transformer with custom thresholds.
func NewTransformerWithConfig(logger *zap.Logger, cfg Config) (*Transformer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.RadioMixMaxSec <= 0 {
		return nil, &InvalidArgumentError{
			Name:   "RadioMixMaxSec",
			Value:  cfg.RadioMixMaxSec,
			Reason: "must be positive",
		}
	}
	if len(cfg.RequiredColumns) == 0 {
		cfg.RequiredColumns = DefaultConfig().RequiredColumns
	}
	return &Transformer{
		logger: logger.Named("transform"),
		cfg:    cfg,
	}, nil
}

// Clean converts a raw dataset into typed track records. Column names
// are normalized and renamed per the fixed map, the header is checked
// against the required columns, and each record is coerced to the typed
// schema. Records missing a value for a required column are dropped,
// preserving the order of the survivors.
func (t *Transformer) Clean(ds model.Dataset) ([]model.Track, error) {
	ds = normalizeDataset(ds)

	for _, col := range t.cfg.RequiredColumns {
		if !ds.HasColumn(col) {
			return nil, &SchemaError{Column: col}
		}
	}

	tracks := make([]model.Track, 0, len(ds.Records))
	dropped := 0
	for _, rec := range ds.Records {
		track, ok := coerceRecord(rec)
		if !ok {
			dropped++
			continue
		}
		tracks = append(tracks, track)
	}

	if dropped > 0 {
		t.logger.Debug("Dropped records with missing required values",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(tracks)))
	}

	return tracks, nil
}

// FilterAndClassify keeps non-explicit tracks whose popularity exceeds
// the configured threshold and annotates each survivor with the
// radio_mix flag. The output is a stable (order-preserving) subsequence
// of the input; the input records are untouched.
func (t *Transformer) FilterAndClassify(tracks []model.Track) []model.Track {
	out := make([]model.Track, 0, len(tracks))
	for _, track := range tracks {
		if track.Explicit || track.Popularity <= t.cfg.PopularityThreshold {
			continue
		}
		track.RadioMix = track.DurationSec < t.cfg.RadioMixMaxSec
		out = append(out, track)
	}

	t.logger.Info("Filtered and classified tracks",
		zap.Int("input", len(tracks)),
		zap.Int("kept", len(out)),
		zap.Int("popularity_threshold", t.cfg.PopularityThreshold),
		zap.Float64("radio_mix_max_sec", t.cfg.RadioMixMaxSec))

	return out
}
