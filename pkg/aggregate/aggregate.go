// Package aggregate builds frequency tables and per-category averages over
// cleaned record sets.
package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/David-Botos/app-profiles/pkg/converter"
	"github.com/David-Botos/app-profiles/pkg/model"
)

// ErrEmptyGroup is returned when a mean is requested over zero records
var ErrEmptyGroup = errors.New("empty group")

// FrequencyTable maps a field value to its percentage share of a record set
type FrequencyTable map[string]float64

// GroupedAverage maps a category to the mean of a numeric field
type GroupedAverage map[string]float64

// Entry is one key of a table paired with its value, for ordered display
type Entry struct {
	Key   string
	Value float64
}

// Frequencies returns value -> count for field index over rows
func Frequencies(rows []model.Record, index int) map[string]int {
	counts := make(map[string]int)
	for _, row := range rows {
		counts[row.Field(index)]++
	}
	return counts
}

// Frequency returns value -> percentage for field index over rows.
// An empty record set yields an empty table.
func Frequency(rows []model.Record, index int) FrequencyTable {
	table := make(FrequencyTable)
	total := len(rows)
	if total == 0 {
		return table
	}

	for key, count := range Frequencies(rows, index) {
		table[key] = float64(count) / float64(total) * 100
	}
	return table
}

// Average computes the mean of numericIdx per distinct value of categoryIdx.
// Any unparseable numeric field fails the whole computation.
func Average(
	rows []model.Record,
	categoryIdx, numericIdx int,
	parse converter.Parser,
) (GroupedAverage, error) {
	totals := make(map[string]float64)
	counts := make(map[string]int)

	for i, row := range rows {
		n, err := converter.ParseField(parse, i, numericIdx, row.Field(numericIdx))
		if err != nil {
			return nil, err
		}

		category := row.Field(categoryIdx)
		totals[category] += n
		counts[category]++
	}

	averages := make(GroupedAverage, len(totals))
	for category, total := range totals {
		avg, err := mean(total, counts[category])
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		averages[category] = avg
	}

	return averages, nil
}

// MeanWhere computes the mean of numericIdx over the rows keep accepts.
// keep receives the parsed value alongside the row.
func MeanWhere(
	rows []model.Record,
	numericIdx int,
	parse converter.Parser,
	keep func(row model.Record, value float64) bool,
) (float64, error) {
	total := 0.0
	count := 0

	for i, row := range rows {
		n, err := converter.ParseField(parse, i, numericIdx, row.Field(numericIdx))
		if err != nil {
			return 0, err
		}
		if keep(row, n) {
			total += n
			count++
		}
	}

	return mean(total, count)
}

// Select returns the rows pred accepts, in order
func Select(rows []model.Record, pred func(model.Record) bool) []model.Record {
	var selected []model.Record
	for _, row := range rows {
		if pred(row) {
			selected = append(selected, row)
		}
	}
	return selected
}

// FieldIn returns a predicate matching rows whose field index is one of values
func FieldIn(index int, values ...string) func(model.Record) bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return func(r model.Record) bool {
		return set[r.Field(index)]
	}
}

// Sorted orders table entries by value descending, breaking ties by key
// descending
func Sorted(table map[string]float64) []Entry {
	entries := make([]Entry, 0, len(table))
	for k, v := range table {
		entries = append(entries, Entry{Key: k, Value: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key > entries[j].Key
	})

	return entries
}

func mean(total float64, count int) (float64, error) {
	if count == 0 {
		return 0, ErrEmptyGroup
	}
	return total / float64(count), nil
}
