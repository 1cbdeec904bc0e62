package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/David-Botos/app-profiles/pkg/aggregate"
	"github.com/David-Botos/app-profiles/pkg/cleaner"
	"github.com/David-Botos/app-profiles/pkg/model"
	"github.com/David-Botos/app-profiles/pkg/pipeline"
)

func TestPrinter_Table(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Table(aggregate.FrequencyTable{
		"Games":         58.16,
		"Entertainment": 7.88,
		"Book":          0.5,
		"Weather":       0.5,
	})

	assert.Equal(t, "Games : 58.16\nEntertainment : 7.88\nWeather : 0.50\nBook : 0.50\n", buf.String())
}

func TestPrinter_Averages(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Averages(aggregate.GroupedAverage{
		"Weather":    52279.89,
		"Navigation": 86090.33,
	})

	assert.Equal(t, "Navigation : 86,090\nWeather : 52,280\n", buf.String())
}

func TestPrinter_Explore(t *testing.T) {
	ds := &model.Dataset{
		Header: []string{"App", "Price"},
		Rows: []model.Record{
			{"Instagram", "0"},
			{"Minecraft", "$6.99"},
		},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).Explore(ds, 0, 1, true)

	assert.Equal(t, "[\"Instagram\", \"0\"]\n\nNumber of rows: 2\nNumber of columns: 2\n", buf.String())
}

func TestPrinter_ExploreOutOfRange(t *testing.T) {
	ds := &model.Dataset{Rows: []model.Record{{"a"}}}

	var buf bytes.Buffer
	NewPrinter(&buf).Explore(ds, 5, 10, false)
	assert.Empty(t, buf.String())
}

func TestPrinter_Listing(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Listing([]model.Record{
		{"WhatsApp Messenger", "COMMUNICATION", "1,000,000,000+"},
	}, 0, 2)

	assert.Equal(t, "WhatsApp Messenger : 1,000,000,000+\n", buf.String())
}

func TestPrinter_Duplicates(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Duplicates(cleaner.Census{
		Duplicates:     []string{"Quick PDF Scanner", "Box", "Google My Business"},
		ExpectedLength: 9659,
	}, 2)

	assert.Equal(t,
		"Number of duplicate apps: 3\nExamples of duplicate apps: Quick PDF Scanner, Box\nExpected length: 9,659\n",
		buf.String())
}

func TestPrinter_Verification(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Verification(pipeline.VerificationReport{
		Dataset: "ios",
		IntegrityIssues: []pipeline.IntegrityIssue{
			{IssueType: pipeline.IssueNotFree, Description: `"Minecraft" has price "$6.99"`},
		},
	})

	assert.Equal(t, "Verification of ios found 1 issues\n  [not_free] \"Minecraft\" has price \"$6.99\"\n", buf.String())
}

func TestPrinter_DuplicatesNegativeExamples(t *testing.T) {
	var buf bytes.Buffer
	assert.NotPanics(t, func() {
		NewPrinter(&buf).Duplicates(cleaner.Census{Duplicates: []string{"Box"}, ExpectedLength: 1}, -1)
	})

	assert.Equal(t, "Number of duplicate apps: 1\nExamples of duplicate apps: \nExpected length: 1\n", buf.String())
}
