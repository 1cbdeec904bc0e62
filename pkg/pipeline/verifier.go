package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/cleaner"
	"github.com/David-Botos/app-profiles/pkg/converter"
	"github.com/David-Botos/app-profiles/pkg/model"
)

// Integrity issue types
const (
	IssueDuplicateName   = "duplicate_name"
	IssueNotMaxReviews   = "not_max_reviews"
	IssueNonEnglishName  = "non_english_name"
	IssueNotFree         = "not_free"
	IssueWrongFieldCount = "wrong_field_count"
	IssueUnparsedReviews = "unparsed_reviews"
	IssueFrequencyNot100 = "frequency_not_100"
)

const frequencySumTolerance = 1e-6

// IntegrityIssue represents a cleaned row that breaks a cleaning guarantee
type IntegrityIssue struct {
	IssueType   string
	Description string
	RowIndex    int
}

// VerificationReport contains the results of verifying a pipeline result
type VerificationReport struct {
	Dataset         string
	RowsChecked     int
	Verified        bool
	IntegrityIssues []IntegrityIssue
}

// Verifier re-checks the guarantees of the cleaning stages on a result
type Verifier struct {
	logger *zap.Logger
}

// NewVerifier creates a new verifier
func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{logger: logger}
}

// Verify checks that every cleaned row is well formed, English and free, that
// names are unique and that each kept row carries the highest review count
// its name had among the well-formed input rows
func (v *Verifier) Verify(result *Result) VerificationReport {
	schema := result.Schema
	rows := result.Cleaned.Rows
	report := VerificationReport{
		Dataset:     result.Cleaned.Name,
		RowsChecked: len(rows),
	}

	issue := func(issueType string, row int, format string, args ...interface{}) {
		report.IntegrityIssues = append(report.IntegrityIssues, IntegrityIssue{
			IssueType:   issueType,
			Description: fmt.Sprintf(format, args...),
			RowIndex:    row,
		})
	}

	expected := schema.ExpectedFields(result.Input.Header)
	var reviewsMax map[string]float64
	if schema.Deduplicate {
		reviewsMax = maxReviews(result.Input.Rows, schema, expected)
	}

	seen := make(map[string]int)
	for i, row := range rows {
		name := row.Field(schema.Name)

		if len(row) != expected {
			issue(IssueWrongFieldCount, i, "%q has %d fields, expected %d", name, len(row), expected)
		}
		if !cleaner.IsEnglish(name) {
			issue(IssueNonEnglishName, i, "%q is not English", name)
		}
		if !isFree(row, schema) {
			issue(IssueNotFree, i, "%q has price %q", name, row.Field(schema.Price))
		}

		if !schema.Deduplicate {
			continue
		}
		if first, ok := seen[name]; ok {
			issue(IssueDuplicateName, i, "%q already kept at row %d", name, first)
		} else {
			seen[name] = i
		}

		n, err := converter.ParseFloat(row.Field(schema.Reviews))
		if err != nil {
			issue(IssueUnparsedReviews, i, "%q: %v", name, err)
			continue
		}
		if n != reviewsMax[name] {
			issue(IssueNotMaxReviews, i, "%q kept %v reviews, max is %v", name, n, reviewsMax[name])
		}
	}

	if len(rows) > 0 && result.Frequencies != nil {
		sum := 0.0
		for _, pct := range result.Frequencies {
			sum += pct
		}
		if sum < 100-frequencySumTolerance || sum > 100+frequencySumTolerance {
			issue(IssueFrequencyNot100, -1, "category percentages sum to %v", sum)
		}
	}

	report.Verified = len(report.IntegrityIssues) == 0

	if v.logger != nil {
		v.logger.Info("Verified pipeline result",
			zap.String("dataset", report.Dataset),
			zap.Int("rows", report.RowsChecked),
			zap.Bool("verified", report.Verified),
			zap.Int("issues", len(report.IntegrityIssues)))
	}

	return report
}

func maxReviews(rows []model.Record, schema model.Schema, expected int) map[string]float64 {
	reviewsMax := make(map[string]float64)
	for _, row := range rows {
		if len(row) != expected {
			continue
		}
		n, err := converter.ParseFloat(row.Field(schema.Reviews))
		if err != nil {
			continue
		}
		name := row.Field(schema.Name)
		if current, ok := reviewsMax[name]; !ok || current < n {
			reviewsMax[name] = n
		}
	}
	return reviewsMax
}

func isFree(row model.Record, schema model.Schema) bool {
	if schema.NumericPrice {
		return converter.IsZeroPrice(row.Field(schema.Price))
	}
	return row.Field(schema.Price) == schema.FreeToken
}
