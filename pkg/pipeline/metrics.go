// pkg/pipeline/metrics.go
package pipeline

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RunMetrics tracks row counts and stage durations for one pipeline run.
type RunMetrics struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time

	AlbumRowsRead   int
	TrackRowsRead   int
	RowsMerged      int
	RowsCleaned     int
	RowsDropped     int
	RowsTransformed int
	RowsLoaded      int64
	ChartsWritten   []string

	stageOrder     []string
	stageDurations map[string]time.Duration
	stageStart     map[string]time.Time
}

// NewRunMetrics creates a metrics tracker with a fresh run ID.
func NewRunMetrics() *RunMetrics {
	return &RunMetrics{
		RunID:          uuid.New().String(),
		StartTime:      time.Now(),
		stageDurations: make(map[string]time.Duration),
		stageStart:     make(map[string]time.Time),
	}
}

// StartStage begins timing a named stage.
func (m *RunMetrics) StartStage(name string) {
	m.stageStart[name] = time.Now()
}

// EndStage records the duration of a named stage.
func (m *RunMetrics) EndStage(name string) {
	start, ok := m.stageStart[name]
	if !ok {
		return
	}
	if _, seen := m.stageDurations[name]; !seen {
		m.stageOrder = append(m.stageOrder, name)
	}
	m.stageDurations[name] = time.Since(start)
}

// StageDuration returns the recorded duration of a stage.
func (m *RunMetrics) StageDuration(name string) time.Duration {
	return m.stageDurations[name]
}

// Finish marks the run as complete.
func (m *RunMetrics) Finish() {
	m.EndTime = time.Now()
}

// Duration returns the total run duration.
func (m *RunMetrics) Duration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// LogSummary emits the run summary as a structured log entry.
func (m *RunMetrics) LogSummary(logger *zap.Logger) {
	fields := []zap.Field{
		zap.String("run_id", m.RunID),
		zap.Duration("duration", m.Duration()),
		zap.Int("album_rows_read", m.AlbumRowsRead),
		zap.Int("track_rows_read", m.TrackRowsRead),
		zap.Int("rows_merged", m.RowsMerged),
		zap.Int("rows_cleaned", m.RowsCleaned),
		zap.Int("rows_dropped", m.RowsDropped),
		zap.Int("rows_transformed", m.RowsTransformed),
		zap.Int64("rows_loaded", m.RowsLoaded),
		zap.Strings("charts", m.ChartsWritten),
	}
	for _, stage := range m.stageOrder {
		fields = append(fields, zap.Duration("stage_"+stage, m.stageDurations[stage]))
	}
	logger.Info("Pipeline run complete", fields...)
}
