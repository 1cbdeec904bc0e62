// pkg/cleaner/operations.go
package cleaner

import (
	"github.com/David-Botos/app-profiles/pkg/converter"
	"github.com/David-Botos/app-profiles/pkg/model"
)

// maxNonASCII is the number of characters above 127 a name may contain
// before it is classified as non-English
const maxNonASCII = 3

// FilterMalformed keeps only records with exactly fieldCount fields
func FilterMalformed(rows []model.Record, fieldCount int) []model.Record {
	kept, _ := filterMalformed(rows, fieldCount)
	return kept
}

func filterMalformed(rows []model.Record, fieldCount int) ([]model.Record, []int) {
	return partition(rows, func(_ int, r model.Record) bool {
		return len(r) == fieldCount
	})
}

// Deduplicate collapses records sharing a name into the one with the highest
// value in the reviews column. On equal maxima the first record wins.
// Output keeps input order and holds one record per distinct name.
func Deduplicate(rows []model.Record, nameIdx, reviewsIdx int) ([]model.Record, error) {
	kept, _, err := deduplicate(rows, nameIdx, reviewsIdx)
	return kept, err
}

func deduplicate(rows []model.Record, nameIdx, reviewsIdx int) ([]model.Record, []int, error) {
	reviewsMax := make(map[string]float64)
	reviews := make([]float64, len(rows))

	for i, row := range rows {
		n, err := converter.ParseField(converter.ParseFloat, i, reviewsIdx, row.Field(reviewsIdx))
		if err != nil {
			return nil, nil, err
		}
		reviews[i] = n

		name := row.Field(nameIdx)
		if current, ok := reviewsMax[name]; !ok || current < n {
			reviewsMax[name] = n
		}
	}

	alreadyAdded := make(map[string]bool, len(reviewsMax))
	kept, dropped := partition(rows, func(i int, row model.Record) bool {
		name := row.Field(nameIdx)
		if reviews[i] == reviewsMax[name] && !alreadyAdded[name] {
			alreadyAdded[name] = true
			return true
		}
		return false
	})

	return kept, dropped, nil
}

// IsEnglish reports whether name has at most three characters outside ASCII.
// Names with a trademark sign or an emoji or two still count as English.
func IsEnglish(name string) bool {
	nonEnglish := 0
	for _, r := range name {
		if r > 127 {
			nonEnglish++
		}
	}
	return nonEnglish <= maxNonASCII
}

// FilterEnglish keeps records whose name field passes IsEnglish
func FilterEnglish(rows []model.Record, nameIdx int) []model.Record {
	kept, _ := filterEnglish(rows, nameIdx)
	return kept
}

func filterEnglish(rows []model.Record, nameIdx int) ([]model.Record, []int) {
	return partition(rows, func(_ int, r model.Record) bool {
		return IsEnglish(r.Field(nameIdx))
	})
}

// FilterFree keeps records whose price field equals freeToken exactly.
// "0" and "0.0" are different tokens; use FilterFreeNumeric to accept both.
func FilterFree(rows []model.Record, priceIdx int, freeToken string) []model.Record {
	kept, _ := filterFree(rows, priceIdx, freeToken)
	return kept
}

func filterFree(rows []model.Record, priceIdx int, freeToken string) ([]model.Record, []int) {
	return partition(rows, func(_ int, r model.Record) bool {
		return r.Field(priceIdx) == freeToken
	})
}

// FilterFreeNumeric keeps records whose price field parses to zero
func FilterFreeNumeric(rows []model.Record, priceIdx int) []model.Record {
	kept, _ := filterFreeNumeric(rows, priceIdx)
	return kept
}

func filterFreeNumeric(rows []model.Record, priceIdx int) ([]model.Record, []int) {
	return partition(rows, func(_ int, r model.Record) bool {
		return converter.IsZeroPrice(r.Field(priceIdx))
	})
}

// Census summarizes name duplication in a record set
type Census struct {
	Duplicates     []string // Every repeat occurrence of a name, in input order
	Unique         []string // Distinct names in order of first appearance
	ExpectedLength int      // Row count once duplicates are removed
}

// FindDuplicates counts repeated names without removing anything
func FindDuplicates(rows []model.Record, nameIdx int) Census {
	seen := make(map[string]bool)
	census := Census{}

	for _, row := range rows {
		name := row.Field(nameIdx)
		if seen[name] {
			census.Duplicates = append(census.Duplicates, name)
			continue
		}
		seen[name] = true
		census.Unique = append(census.Unique, name)
	}

	census.ExpectedLength = len(rows) - len(census.Duplicates)
	return census
}

// partition splits rows into those keep accepts and the indices of the rest.
// keep is called once per row, in order.
func partition(rows []model.Record, keep func(i int, r model.Record) bool) ([]model.Record, []int) {
	kept := make([]model.Record, 0, len(rows))
	var dropped []int

	for i, row := range rows {
		if keep(i, row) {
			kept = append(kept, row)
		} else {
			dropped = append(dropped, i)
		}
	}

	return kept, dropped
}
