package model

// Record is one row of tabular input, an ordered sequence of string fields
type Record []string

// Field returns the field at index i, or "" when the record is too short
func (r Record) Field(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Dataset is a loaded table: a header row plus the data rows in file order
type Dataset struct {
	Name   string
	Header []string
	Rows   []Record
}

// Len returns the number of data rows
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Columns returns the number of columns of the first row, or of the header
// when the dataset is empty
func (d *Dataset) Columns() int {
	if len(d.Rows) > 0 {
		return len(d.Rows[0])
	}
	return len(d.Header)
}

// Slice returns rows[start:end] with both bounds clamped to the dataset
func (d *Dataset) Slice(start, end int) []Record {
	if start < 0 {
		start = 0
	}
	if end > len(d.Rows) {
		end = len(d.Rows)
	}
	if start >= end {
		return nil
	}
	return d.Rows[start:end]
}

// WithRows returns a copy of the dataset sharing the header but holding rows
func (d *Dataset) WithRows(rows []Record) *Dataset {
	return &Dataset{
		Name:   d.Name,
		Header: d.Header,
		Rows:   rows,
	}
}
