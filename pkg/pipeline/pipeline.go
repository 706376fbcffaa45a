// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/config"
	"github.com/soundline/spotify-ingress/pkg/model"
	"github.com/soundline/spotify-ingress/pkg/report"
	"github.com/soundline/spotify-ingress/pkg/sink"
	"github.com/soundline/spotify-ingress/pkg/transform"
)

// Stage names used for metrics and logging.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
	StageVerify    = "verify"
	StageReport    = "report"
)

// Source supplies the raw albums and tracks datasets.
type Source interface {
	Fetch(ctx context.Context) (albums model.Dataset, tracks model.Dataset, err error)
}

// Pipeline runs the whole ingress sequence: extract, transform, load,
// verify, report. One dataset per run, fully synchronous.
type Pipeline struct {
	cfg         *config.Config
	source      Source
	transformer *transform.Transformer
	dest        sink.Destination
	renderer    *report.Renderer
	logger      *zap.Logger
	metrics     *RunMetrics
}

// New creates a Pipeline from its collaborators.
func New(
	cfg *config.Config,
	src Source,
	transformer *transform.Transformer,
	dest sink.Destination,
	renderer *report.Renderer,
	logger *zap.Logger,
) (*Pipeline, error) {
	if cfg == nil {
		return nil, errors.New("configuration cannot be nil")
	}
	if src == nil {
		return nil, errors.New("source cannot be nil")
	}
	if transformer == nil {
		return nil, errors.New("transformer cannot be nil")
	}
	if dest == nil {
		return nil, errors.New("destination cannot be nil")
	}
	if renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Pipeline{
		cfg:         cfg,
		source:      src,
		transformer: transformer,
		dest:        dest,
		renderer:    renderer,
		logger:      logger.Named("pipeline"),
		metrics:     NewRunMetrics(),
	}, nil
}

// Metrics returns the run metrics tracker.
func (p *Pipeline) Metrics() *RunMetrics {
	return p.metrics
}

// Run executes the pipeline once. Errors propagate immediately; there
// are no retries and no partial recovery.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("Starting pipeline run", zap.String("run_id", p.metrics.RunID))

	transformed, err := p.extractAndTransform(ctx)
	if err != nil {
		return err
	}

	if err := p.load(ctx, transformed); err != nil {
		return err
	}

	if err := p.verify(ctx, len(transformed)); err != nil {
		return err
	}

	if err := p.reportCharts(transformed); err != nil {
		return err
	}

	p.metrics.Finish()
	p.metrics.LogSummary(p.logger)
	return nil
}

func (p *Pipeline) extractAndTransform(ctx context.Context) ([]model.Track, error) {
	p.metrics.StartStage(StageExtract)
	albums, tracks, err := p.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract failed: %w", err)
	}
	p.metrics.EndStage(StageExtract)
	p.metrics.AlbumRowsRead = albums.Len()
	p.metrics.TrackRowsRead = tracks.Len()

	p.metrics.StartStage(StageTransform)
	merged, err := p.transformer.Merge(albums, tracks)
	if err != nil {
		return nil, fmt.Errorf("merge failed: %w", err)
	}
	p.metrics.RowsMerged = merged.Len()

	cleaned, err := p.transformer.Clean(merged)
	if err != nil {
		return nil, fmt.Errorf("clean failed: %w", err)
	}
	p.metrics.RowsCleaned = len(cleaned)
	p.metrics.RowsDropped = merged.Len() - len(cleaned)

	transformed := p.transformer.FilterAndClassify(cleaned)
	p.metrics.RowsTransformed = len(transformed)
	p.metrics.EndStage(StageTransform)

	return transformed, nil
}

func (p *Pipeline) load(ctx context.Context, transformed []model.Track) error {
	p.metrics.StartStage(StageLoad)
	if err := p.dest.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	loaded, err := p.dest.InsertTracks(ctx, transformed)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	p.metrics.RowsLoaded = loaded
	p.metrics.EndStage(StageLoad)
	return nil
}

// verify compares the destination row count against the number of
// transformed records after the load.
func (p *Pipeline) verify(ctx context.Context, expected int) error {
	p.metrics.StartStage(StageVerify)
	count, err := p.dest.CountTracks(ctx)
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}
	if count != int64(expected) {
		return fmt.Errorf("verify failed: destination has %d rows, expected %d", count, expected)
	}
	p.metrics.EndStage(StageVerify)

	p.logger.Info("Verified destination row count", zap.Int64("rows", count))
	return nil
}

func (p *Pipeline) reportCharts(transformed []model.Track) error {
	p.metrics.StartStage(StageReport)
	defer p.metrics.EndStage(StageReport)

	// An empty transformed dataset is valid input; there is just
	// nothing to chart.
	if len(transformed) == 0 {
		p.logger.Warn("No transformed records, skipping charts")
		return nil
	}

	topLabels, err := p.transformer.SummarizeTopLabels(transformed, p.cfg.TopLabelCount)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	labelsPath, err := p.renderer.RenderTopLabels(topLabels)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	p.metrics.ChartsWritten = append(p.metrics.ChartsWritten, labelsPath)

	windowed := filterByWindow(transformed, p.cfg.TopTracksSince, p.cfg.TopTracksUntil)
	if len(windowed) == 0 {
		p.logger.Warn("No tracks released inside the report window, skipping track chart",
			zap.Time("since", p.cfg.TopTracksSince),
			zap.Time("until", p.cfg.TopTracksUntil))
		return nil
	}
	topTracks, err := p.transformer.SummarizeTopTracks(windowed, p.cfg.TopTrackCount)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	tracksPath, err := p.renderer.RenderTopTracks(topTracks)
	if err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	p.metrics.ChartsWritten = append(p.metrics.ChartsWritten, tracksPath)

	return nil
}

// filterByWindow keeps tracks released inside the inclusive window,
// preserving order. Tracks without a release date are excluded.
func filterByWindow(tracks []model.Track, since, until time.Time) []model.Track {
	windowed := make([]model.Track, 0, len(tracks))
	for _, track := range tracks {
		if track.ReleasedBetween(since, until) {
			windowed = append(windowed, track)
		}
	}
	return windowed
}
