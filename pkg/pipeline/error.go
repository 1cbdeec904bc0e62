package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/David-Botos/app-profiles/pkg/aggregate"
	"github.com/David-Botos/app-profiles/pkg/converter"
	"github.com/David-Botos/app-profiles/pkg/loader"
)

// ErrorCategory defines categories of errors during a pipeline run
type ErrorCategory int

const (
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryLoad
	ErrorCategoryValidation
	ErrorCategoryDataConversion
	ErrorCategoryAggregation
	ErrorCategoryCanceled
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryLoad:
		return "Load"
	case ErrorCategoryValidation:
		return "Validation"
	case ErrorCategoryDataConversion:
		return "DataConversion"
	case ErrorCategoryAggregation:
		return "Aggregation"
	case ErrorCategoryCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// CategorizeError determines the category of an error
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryNone
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) && stageErr.Category != ErrorCategoryNone {
		return stageErr.Category
	}

	var parseErr *converter.ParseError
	var csvErr *csv.ParseError

	switch {
	case errors.As(err, &parseErr):
		return ErrorCategoryDataConversion
	case errors.Is(err, aggregate.ErrEmptyGroup):
		return ErrorCategoryAggregation
	case errors.Is(err, loader.ErrNoHeader),
		errors.Is(err, os.ErrNotExist),
		errors.As(err, &csvErr):
		return ErrorCategoryLoad
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ErrorCategoryCanceled
	default:
		return ErrorCategoryValidation
	}
}

// StageError ties a failure to the dataset and stage that produced it
type StageError struct {
	Dataset  string
	Stage    string
	Category ErrorCategory
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("[%s] %s/%s: %v", e.Category, e.Dataset, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func newStageError(dataset, stage string, err error) *StageError {
	return &StageError{
		Dataset:  dataset,
		Stage:    stage,
		Category: CategorizeError(err),
		Err:      err,
	}
}
