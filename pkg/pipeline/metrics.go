package pipeline

import (
	"time"

	"go.uber.org/zap"
)

// StageMetrics tracks row counts for a single stage
type StageMetrics struct {
	Stage    string
	RowsIn   int
	RowsOut  int
	Duration time.Duration
}

// Dropped returns the number of rows the stage removed
func (sm StageMetrics) Dropped() int {
	return sm.RowsIn - sm.RowsOut
}

// RunMetrics tracks metrics for one dataset's pipeline run
type RunMetrics struct {
	RunID       string
	Dataset     string
	StartTime   time.Time
	EndTime     time.Time
	RowsLoaded  int
	Stages      []StageMetrics
	ErrorCounts map[ErrorCategory]int
}

// NewRunMetrics creates a new RunMetrics instance
func NewRunMetrics(runID, dataset string, rowsLoaded int) *RunMetrics {
	return &RunMetrics{
		RunID:       runID,
		Dataset:     dataset,
		StartTime:   time.Now(),
		RowsLoaded:  rowsLoaded,
		ErrorCounts: make(map[ErrorCategory]int),
	}
}

// RecordStage appends the metrics of a completed stage
func (rm *RunMetrics) RecordStage(stage string, rowsIn, rowsOut int, started time.Time) {
	rm.Stages = append(rm.Stages, StageMetrics{
		Stage:    stage,
		RowsIn:   rowsIn,
		RowsOut:  rowsOut,
		Duration: time.Since(started),
	})
}

// RecordError increments the count for a specific error category
func (rm *RunMetrics) RecordError(category ErrorCategory) {
	rm.ErrorCounts[category]++
}

// Finish marks the run as complete
func (rm *RunMetrics) Finish() {
	rm.EndTime = time.Now()
}

// Duration returns the total duration of the run
func (rm *RunMetrics) Duration() time.Duration {
	if rm.EndTime.IsZero() {
		return time.Since(rm.StartTime)
	}
	return rm.EndTime.Sub(rm.StartTime)
}

// RowsRemaining returns the row count after the last recorded stage
func (rm *RunMetrics) RowsRemaining() int {
	if len(rm.Stages) == 0 {
		return rm.RowsLoaded
	}
	return rm.Stages[len(rm.Stages)-1].RowsOut
}

// Stage returns the metrics for a stage by name
func (rm *RunMetrics) Stage(name string) (StageMetrics, bool) {
	for _, sm := range rm.Stages {
		if sm.Stage == name {
			return sm, true
		}
	}
	return StageMetrics{}, false
}

// LogSummary logs a summary of the run
func (rm *RunMetrics) LogSummary(logger *zap.Logger) {
	fields := []zap.Field{
		zap.String("run_id", rm.RunID),
		zap.String("dataset", rm.Dataset),
		zap.Duration("duration", rm.Duration()),
		zap.Int("rows_loaded", rm.RowsLoaded),
		zap.Int("rows_remaining", rm.RowsRemaining()),
	}
	for _, sm := range rm.Stages {
		fields = append(fields, zap.Int("dropped_"+sm.Stage, sm.Dropped()))
	}
	for category, count := range rm.ErrorCounts {
		fields = append(fields, zap.Int("errors_"+category.String(), count))
	}

	logger.Info("Pipeline run summary", fields...)
}
