// Package report renders datasets and aggregates as console text.
package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/David-Botos/app-profiles/pkg/aggregate"
	"github.com/David-Botos/app-profiles/pkg/cleaner"
	"github.com/David-Botos/app-profiles/pkg/model"
	"github.com/David-Botos/app-profiles/pkg/pipeline"
)

// Printer writes report sections to an output stream
type Printer struct {
	w io.Writer
	p *message.Printer
}

// NewPrinter creates a Printer using English digit grouping
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w: w,
		p: message.NewPrinter(language.English),
	}
}

// Explore prints rows[start:end], each followed by a blank line, and
// optionally the row and column counts of the whole dataset
func (pr *Printer) Explore(ds *model.Dataset, start, end int, withCounts bool) {
	for _, row := range ds.Slice(start, end) {
		fmt.Fprintln(pr.w, formatRow(row))
		fmt.Fprintln(pr.w)
	}

	if withCounts {
		pr.p.Fprintf(pr.w, "Number of rows: %d\n", ds.Len())
		pr.p.Fprintf(pr.w, "Number of columns: %d\n", ds.Columns())
	}
}

// Header prints the column names of a dataset
func (pr *Printer) Header(ds *model.Dataset) {
	fmt.Fprintln(pr.w, formatRow(ds.Header))
	fmt.Fprintln(pr.w)
}

// Table prints a frequency table as "value : percentage", largest share first
func (pr *Printer) Table(table aggregate.FrequencyTable) {
	for _, e := range aggregate.Sorted(table) {
		pr.p.Fprintf(pr.w, "%s : %.2f\n", e.Key, e.Value)
	}
}

// Averages prints a grouped average as "category : mean", largest mean first
func (pr *Printer) Averages(avg aggregate.GroupedAverage) {
	for _, e := range aggregate.Sorted(avg) {
		pr.p.Fprintf(pr.w, "%s : %.0f\n", e.Key, e.Value)
	}
}

// Listing prints "name : value" for each row
func (pr *Printer) Listing(rows []model.Record, nameIdx, valueIdx int) {
	for _, row := range rows {
		fmt.Fprintf(pr.w, "%s : %s\n", row.Field(nameIdx), row.Field(valueIdx))
	}
}

// Duplicates prints a duplicate census with up to examples names
func (pr *Printer) Duplicates(census cleaner.Census, examples int) {
	pr.p.Fprintf(pr.w, "Number of duplicate apps: %d\n", len(census.Duplicates))
	if examples < 0 {
		examples = 0
	}
	if examples > len(census.Duplicates) {
		examples = len(census.Duplicates)
	}
	fmt.Fprintf(pr.w, "Examples of duplicate apps: %s\n", strings.Join(census.Duplicates[:examples], ", "))
	pr.p.Fprintf(pr.w, "Expected length: %d\n", census.ExpectedLength)
}

// Summary prints the row counts of every stage of a run
func (pr *Printer) Summary(result *pipeline.Result) {
	m := result.Metrics
	pr.p.Fprintf(pr.w, "Dataset %s (run %s)\n", m.Dataset, m.RunID)
	pr.p.Fprintf(pr.w, "  loaded: %d rows\n", m.RowsLoaded)
	for _, sm := range m.Stages {
		pr.p.Fprintf(pr.w, "  %-12s %d -> %d (dropped %d)\n", sm.Stage+":", sm.RowsIn, sm.RowsOut, sm.Dropped())
	}
}

// Verification prints the outcome of a verification and any issues found
func (pr *Printer) Verification(report pipeline.VerificationReport) {
	if report.Verified {
		pr.p.Fprintf(pr.w, "Verified %d rows of %s\n", report.RowsChecked, report.Dataset)
		return
	}

	pr.p.Fprintf(pr.w, "Verification of %s found %d issues\n", report.Dataset, len(report.IntegrityIssues))
	for _, issue := range report.IntegrityIssues {
		fmt.Fprintf(pr.w, "  [%s] %s\n", issue.IssueType, issue.Description)
	}
}

// Section prints a titled separator
func (pr *Printer) Section(title string) {
	fmt.Fprintf(pr.w, "\n== %s ==\n", title)
}

func formatRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = fmt.Sprintf("%q", f)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
