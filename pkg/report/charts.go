// pkg/report/charts.go
package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"

	"github.com/soundline/spotify-ingress/pkg/model"
)

// Chart file names, one per summary.
const (
	TopLabelsChart = "top_labels_by_track_count.png"
	TopTracksChart = "top_tracks_by_popularity.png"
)

const maxLabelLen = 24

// Renderer writes the summary charts as PNG files.
type Renderer struct {
	outDir string
	logger *zap.Logger
}

// NewRenderer creates a Renderer writing into outDir, creating the
// directory when needed.
func NewRenderer(outDir string, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory %s: %w", outDir, err)
	}
	return &Renderer{
		outDir: outDir,
		logger: logger.Named("report"),
	}, nil
}

// RenderTopLabels renders the label/track-count summary as a bar chart
// and returns the written file path.
func (r *Renderer) RenderTopLabels(labels []model.LabelCount) (string, error) {
	if len(labels) == 0 {
		return "", errors.New("no label summary to render")
	}

	bars := make([]chart.Value, 0, len(labels))
	for _, lc := range labels {
		bars = append(bars, chart.Value{
			Label: truncateLabel(lc.Label),
			Value: float64(lc.Count),
		})
	}

	path := filepath.Join(r.outDir, TopLabelsChart)
	title := fmt.Sprintf("Top %d Labels by Track Count", len(labels))
	if err := r.renderBarChart(title, bars, path); err != nil {
		return "", err
	}

	r.logger.Info("Rendered label chart",
		zap.String("path", path),
		zap.Int("bars", len(bars)))
	return path, nil
}

// RenderTopTracks renders the popularity summary as a bar chart and
// returns the written file path.
func (r *Renderer) RenderTopTracks(tracks []model.Track) (string, error) {
	if len(tracks) == 0 {
		return "", errors.New("no track summary to render")
	}

	bars := make([]chart.Value, 0, len(tracks))
	for _, track := range tracks {
		bars = append(bars, chart.Value{
			Label: truncateLabel(track.TrackName),
			Value: float64(track.Popularity),
		})
	}

	path := filepath.Join(r.outDir, TopTracksChart)
	title := fmt.Sprintf("Top %d Tracks by Popularity", len(tracks))
	if err := r.renderBarChart(title, bars, path); err != nil {
		return "", err
	}

	r.logger.Info("Rendered track chart",
		zap.String("path", path),
		zap.Int("bars", len(bars)))
	return path, nil
}

func (r *Renderer) renderBarChart(title string, bars []chart.Value, path string) error {
	maxValue := 0.0
	for _, bar := range bars {
		if bar.Value > maxValue {
			maxValue = bar.Value
		}
	}
	if maxValue == 0 {
		maxValue = 1
	}

	barChart := chart.BarChart{
		Title:  title,
		Width:  1280,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 48},
		},
		BarWidth: 30,
		XAxis: chart.Style{
			TextRotationDegrees: 45,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxValue * 1.1},
		},
		Bars: bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := barChart.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", path, err)
	}
	return nil
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= maxLabelLen {
		return s
	}
	return string(runes[:maxLabelLen-1]) + "…"
}
