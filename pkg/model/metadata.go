// pkg/model/metadata.go
package model

import "strings"

// PopularityKind describes how the popularity column is encoded
type PopularityKind string

const (
	// PopularityPlain is a plain numeric column (e.g. rating_count_tot)
	PopularityPlain PopularityKind = "plain"
	// PopularityInstalls is an open-ended install bucket such as "100,000+"
	PopularityInstalls PopularityKind = "installs"
)

// Schema maps the positional fields of a dataset to their meaning
type Schema struct {
	Name       int // App name, used as the entity identifier
	Category   int // Categorical column used for grouping (genre/category)
	Reviews    int // Numeric recency proxy used for deduplication
	Popularity int // Numeric popularity column averaged per category
	Price      int // Price column

	PopularityKind PopularityKind
	FreeToken      string // Exact price string meaning "free" for this dataset
	NumericPrice   bool   // Match free rows numerically instead of by FreeToken
	Deduplicate    bool   // Whether to collapse rows sharing a name
	FieldCount     int    // Expected number of fields; 0 means use header length
}

// Indices returns all column indices the schema refers to
func (s Schema) Indices() []int {
	return []int{s.Name, s.Category, s.Reviews, s.Popularity, s.Price}
}

// ExpectedFields returns the field count a well-formed record must have
func (s Schema) ExpectedFields(header []string) int {
	if s.FieldCount > 0 {
		return s.FieldCount
	}
	return len(header)
}

// ColumnIndex returns the index of a header column (case-insensitive)
// Returns -1 if the column is not found
func (d *Dataset) ColumnIndex(name string) int {
	normalizedName := normalizeColumnName(name)
	for i, col := range d.Header {
		if normalizeColumnName(col) == normalizedName {
			return i
		}
	}
	return -1
}

func normalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
