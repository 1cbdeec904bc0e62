// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/model"
)

// Stage names recorded on cleaning operations and metrics
const (
	StageValidity    = "validity"
	StageDeduplicate = "deduplicate"
	StageLocale      = "locale"
	StagePrice       = "price"
)

// DataCleaner runs the row-dropping stages over a dataset and records
// a cleaning operation for every row it removes
type DataCleaner struct {
	logger *zap.Logger
	runID  string
}

// NewDataCleaner creates a new DataCleaner instance
func NewDataCleaner(logger *zap.Logger, runID string) (*DataCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &DataCleaner{
		logger: logger,
		runID:  runID,
	}, nil
}

// StageResult holds the rows surviving a stage and what was dropped
type StageResult struct {
	Stage      string
	Rows       []model.Record
	Operations []model.CleaningOperation
}

// RemoveMalformed drops rows whose field count does not match the schema
func (c *DataCleaner) RemoveMalformed(ds *model.Dataset, schema model.Schema) StageResult {
	expected := schema.ExpectedFields(ds.Header)
	kept, dropped := filterMalformed(ds.Rows, expected)

	for _, i := range dropped {
		c.logger.Warn("Dropping malformed row",
			zap.String("dataset", ds.Name),
			zap.Int("row", i),
			zap.Int("fields", len(ds.Rows[i])),
			zap.Int("expected", expected))
	}

	return c.result(ds, schema, StageValidity, kept, dropped, model.ReasonWrongFieldCount)
}

// RemoveDuplicates keeps one row per name, preferring the highest review count
func (c *DataCleaner) RemoveDuplicates(ds *model.Dataset, schema model.Schema) (StageResult, error) {
	kept, dropped, err := deduplicate(ds.Rows, schema.Name, schema.Reviews)
	if err != nil {
		return StageResult{}, fmt.Errorf("failed to deduplicate %s: %w", ds.Name, err)
	}

	return c.result(ds, schema, StageDeduplicate, kept, dropped, model.ReasonDuplicateName), nil
}

// RemoveNonEnglish drops rows whose name looks non-English
func (c *DataCleaner) RemoveNonEnglish(ds *model.Dataset, schema model.Schema) StageResult {
	kept, dropped := filterEnglish(ds.Rows, schema.Name)
	return c.result(ds, schema, StageLocale, kept, dropped, model.ReasonNonEnglishName)
}

// KeepFree drops rows that are not free, by exact token unless the schema
// asks for numeric matching
func (c *DataCleaner) KeepFree(ds *model.Dataset, schema model.Schema) StageResult {
	var kept []model.Record
	var dropped []int
	if schema.NumericPrice {
		kept, dropped = filterFreeNumeric(ds.Rows, schema.Price)
	} else {
		kept, dropped = filterFree(ds.Rows, schema.Price, schema.FreeToken)
	}

	return c.result(ds, schema, StagePrice, kept, dropped, model.ReasonNotFree)
}

func (c *DataCleaner) result(
	ds *model.Dataset,
	schema model.Schema,
	stage string,
	kept []model.Record,
	dropped []int,
	reason string,
) StageResult {
	operations := make([]model.CleaningOperation, 0, len(dropped))
	for _, i := range dropped {
		operations = append(operations, model.CleaningOperation{
			RunID:         c.runID,
			Dataset:       ds.Name,
			Stage:         stage,
			RowIndex:      i,
			RowIdentifier: ds.Rows[i].Field(schema.Name),
			Operation:     model.OperationRowDropped,
			Reason:        reason,
		})
	}

	if c.logger.Core().Enabled(zap.DebugLevel) {
		for _, op := range operations {
			c.logger.Debug("Dropped row",
				zap.String("dataset", op.Dataset),
				zap.String("stage", op.Stage),
				zap.String("name", op.RowIdentifier),
				zap.String("reason", op.Reason))
		}
	}

	c.logger.Info("Stage complete",
		zap.String("run_id", c.runID),
		zap.String("dataset", ds.Name),
		zap.String("stage", stage),
		zap.Int("rows_in", len(ds.Rows)),
		zap.Int("rows_out", len(kept)))

	return StageResult{
		Stage:      stage,
		Rows:       kept,
		Operations: operations,
	}
}
