// Package pipeline runs one dataset through the cleaning stages and the
// aggregations, tracking what each stage removed.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/aggregate"
	"github.com/David-Botos/app-profiles/pkg/cleaner"
	"github.com/David-Botos/app-profiles/pkg/converter"
	"github.com/David-Botos/app-profiles/pkg/model"
)

// StageAggregate names the aggregation step in stage errors
const StageAggregate = "aggregate"

// Result is the outcome of running one dataset through the pipeline
type Result struct {
	RunID      string
	Input      *model.Dataset // Rows as loaded
	Cleaned    *model.Dataset // Rows surviving every cleaning stage
	Schema     model.Schema
	Census     cleaner.Census // Name duplication before deduplication
	Operations []model.CleaningOperation
	Metrics    *RunMetrics

	Frequencies aggregate.FrequencyTable // Category share of the cleaned rows
	Averages    aggregate.GroupedAverage // Mean popularity per category
}

// Runner orchestrates the cleaning and aggregation stages
type Runner struct {
	logger *zap.Logger
}

// NewRunner creates a new pipeline runner
func NewRunner(logger *zap.Logger) (*Runner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Runner{logger: logger}, nil
}

// Clean runs the validity, deduplication, locale and price stages in order
func (r *Runner) Clean(ctx context.Context, ds *model.Dataset, schema model.Schema) (*Result, error) {
	runID := uuid.New().String()
	logger := r.logger.With(zap.String("run_id", runID), zap.String("dataset", ds.Name))

	dataCleaner, err := cleaner.NewDataCleaner(r.logger, runID)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:   runID,
		Input:   ds,
		Schema:  schema,
		Metrics: NewRunMetrics(runID, ds.Name, ds.Len()),
	}

	logger.Info("Starting pipeline run", zap.Int("rows", ds.Len()))

	current := ds
	apply := func(stage cleaner.StageResult, started time.Time) {
		result.Metrics.RecordStage(stage.Stage, current.Len(), len(stage.Rows), started)
		result.Operations = append(result.Operations, stage.Operations...)
		current = current.WithRows(stage.Rows)
	}

	started := time.Now()
	apply(dataCleaner.RemoveMalformed(current, schema), started)

	if schema.Deduplicate {
		if err := ctx.Err(); err != nil {
			return nil, r.fail(result, cleaner.StageDeduplicate, err)
		}

		result.Census = cleaner.FindDuplicates(current.Rows, schema.Name)
		logger.Info("Duplicate census",
			zap.Int("duplicates", len(result.Census.Duplicates)),
			zap.Int("expected_length", result.Census.ExpectedLength))

		started = time.Now()
		stage, err := dataCleaner.RemoveDuplicates(current, schema)
		if err != nil {
			return nil, r.fail(result, cleaner.StageDeduplicate, err)
		}
		apply(stage, started)
	}

	if err := ctx.Err(); err != nil {
		return nil, r.fail(result, cleaner.StageLocale, err)
	}
	started = time.Now()
	apply(dataCleaner.RemoveNonEnglish(current, schema), started)

	if err := ctx.Err(); err != nil {
		return nil, r.fail(result, cleaner.StagePrice, err)
	}
	started = time.Now()
	apply(dataCleaner.KeepFree(current, schema), started)

	result.Cleaned = current
	result.Metrics.Finish()
	return result, nil
}

// Run cleans the dataset then computes the category frequency table and the
// mean popularity per category
func (r *Runner) Run(ctx context.Context, ds *model.Dataset, schema model.Schema) (*Result, error) {
	result, err := r.Clean(ctx, ds, schema)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, r.fail(result, StageAggregate, err)
	}

	parse, err := converter.ParserFor(schema.PopularityKind)
	if err != nil {
		return nil, r.fail(result, StageAggregate, err)
	}

	rows := result.Cleaned.Rows
	result.Frequencies = aggregate.Frequency(rows, schema.Category)

	result.Averages, err = aggregate.Average(rows, schema.Category, schema.Popularity, parse)
	if err != nil {
		return nil, r.fail(result, StageAggregate, err)
	}

	result.Metrics.Finish()
	result.Metrics.LogSummary(r.logger)
	return result, nil
}

func (r *Runner) fail(result *Result, stage string, err error) error {
	stageErr := newStageError(result.Input.Name, stage, err)
	result.Metrics.RecordError(stageErr.Category)
	result.Metrics.Finish()

	r.logger.Error("Pipeline run failed",
		zap.String("run_id", result.RunID),
		zap.String("dataset", result.Input.Name),
		zap.String("stage", stage),
		zap.String("category", stageErr.Category.String()),
		zap.Error(err))

	return stageErr
}
