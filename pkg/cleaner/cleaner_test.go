package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-Botos/app-profiles/pkg/model"
)

func testSchema() model.Schema {
	return model.Schema{
		Name:       nameIdx,
		Category:   categoryIdx,
		Reviews:    reviewsIdx,
		Popularity: reviewsIdx,
		Price:      priceIdx,
		FreeToken:  "0",
	}
}

func TestNewDataCleaner_NilLogger(t *testing.T) {
	_, err := NewDataCleaner(nil, "run")
	assert.Error(t, err)
}

func TestDataCleaner_RecordsOperations(t *testing.T) {
	c, err := NewDataCleaner(zap.NewNop(), "run-1")
	require.NoError(t, err)

	ds := &model.Dataset{
		Name:   "android",
		Header: []string{"App", "Category", "Reviews", "Price"},
		Rows: []model.Record{
			rec("Instagram", "SOCIAL", "10", "0"),
			rec("Instagram", "SOCIAL", "20", "0"),
			rec("Paid", "TOOLS", "5", "$2.99"),
		},
	}

	dedup, err := c.RemoveDuplicates(ds, testSchema())
	require.NoError(t, err)
	assert.Equal(t, StageDeduplicate, dedup.Stage)
	require.Len(t, dedup.Rows, 2)
	require.Len(t, dedup.Operations, 1)

	op := dedup.Operations[0]
	assert.Equal(t, "run-1", op.RunID)
	assert.Equal(t, "android", op.Dataset)
	assert.Equal(t, 0, op.RowIndex)
	assert.Equal(t, "Instagram", op.RowIdentifier)
	assert.Equal(t, model.OperationRowDropped, op.Operation)
	assert.Equal(t, model.ReasonDuplicateName, op.Reason)

	free := c.KeepFree(ds.WithRows(dedup.Rows), testSchema())
	require.Len(t, free.Rows, 1)
	require.Len(t, free.Operations, 1)
	assert.Equal(t, "Paid", free.Operations[0].RowIdentifier)
	assert.Equal(t, model.ReasonNotFree, free.Operations[0].Reason)
}

func TestDataCleaner_RemoveMalformedUsesHeaderLength(t *testing.T) {
	c, err := NewDataCleaner(zap.NewNop(), "run")
	require.NoError(t, err)

	ds := &model.Dataset{
		Name:   "android",
		Header: []string{"App", "Category", "Reviews", "Price"},
		Rows: []model.Record{
			rec("ok", "X", "1", "0"),
			{"broken", "1.9", "19"},
		},
	}

	res := c.RemoveMalformed(ds, testSchema())
	require.Len(t, res.Rows, 1)
	require.Len(t, res.Operations, 1)
	assert.Equal(t, 1, res.Operations[0].RowIndex)
	assert.Equal(t, model.ReasonWrongFieldCount, res.Operations[0].Reason)
}

func TestDataCleaner_KeepFreeNumeric(t *testing.T) {
	c, err := NewDataCleaner(zap.NewNop(), "run")
	require.NoError(t, err)

	schema := testSchema()
	schema.FreeToken = "0.0"
	schema.NumericPrice = true

	ds := &model.Dataset{
		Name: "ios",
		Rows: []model.Record{
			rec("a", "X", "1", "0"),
			rec("b", "X", "1", "0.0"),
		},
	}

	res := c.KeepFree(ds, schema)
	assert.Len(t, res.Rows, 2)
	assert.Empty(t, res.Operations)
}

func TestDataCleaner_RemoveDuplicatesWrapsParseError(t *testing.T) {
	c, err := NewDataCleaner(zap.NewNop(), "run")
	require.NoError(t, err)

	ds := &model.Dataset{
		Name: "android",
		Rows: []model.Record{rec("x", "X", "lots", "0")},
	}

	_, err = c.RemoveDuplicates(ds, testSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to deduplicate android")
}
