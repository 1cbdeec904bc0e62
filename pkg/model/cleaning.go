// pkg/model/cleaning.go
package model

// Cleaning operation and reason identifiers
const (
	OperationRowDropped = "row_dropped"

	ReasonWrongFieldCount = "wrong_field_count"
	ReasonDuplicateName   = "duplicate_name"
	ReasonNonEnglishName  = "non_english_name"
	ReasonNotFree         = "not_free"
)

// CleaningOperation represents a single data cleaning operation
type CleaningOperation struct {
	RunID         string // Pipeline run that performed the operation
	Dataset       string // Dataset name
	Stage         string // Stage that dropped the row (e.g., "deduplicate")
	RowIndex      int    // Index of the row in the stage's input
	RowIdentifier string // Name field of the row, when present
	Operation     string // Type of cleaning performed (e.g., "row_dropped")
	Reason        string // Reason for cleaning (e.g., "duplicate_name")
}
