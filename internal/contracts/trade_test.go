package contracts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse(DateLayout, s)
	return d
}

func TestSentimentIndex_FirstRecordWins(t *testing.T) {
	idx := NewSentimentIndex([]SentimentRecord{
		{Date: day("2024-01-01"), Classification: Fear, Value: 30},
		{Date: day("2024-01-02"), Classification: Greed, Value: 60},
		{Date: day("2024-01-01"), Classification: ExtremeGreed, Value: 90},
	})

	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, 1, idx.Duplicates)

	r, ok := idx.Lookup(day("2024-01-01"))
	require.True(t, ok)
	assert.Equal(t, Fear, r.Classification)
	assert.Equal(t, 30, r.Value)

	records := idx.Records()
	require.Len(t, records, 2)
	assert.Equal(t, Greed, records[1].Classification)
}

func TestSentimentIndex_LookupIgnoresTimeOfDay(t *testing.T) {
	idx := NewSentimentIndex([]SentimentRecord{
		{Date: day("2024-03-05"), Classification: Neutral, Value: 50},
	})

	r, ok := idx.Lookup(time.Date(2024, 3, 5, 23, 59, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Neutral, r.Classification)

	_, ok = idx.Lookup(day("2024-03-06"))
	assert.False(t, ok)
}

func TestSentimentIndex_ZeroValueUsable(t *testing.T) {
	var idx SentimentIndex
	assert.True(t, idx.Add(SentimentRecord{Date: day("2024-01-01"), Classification: Fear}))
	assert.Equal(t, 1, idx.Len())
}

func TestTable_Cell(t *testing.T) {
	tbl := &Table{
		Header: []string{"a", "b", "c"},
		Rows:   [][]string{{"1", "2", "3"}, {"4"}},
	}

	assert.Equal(t, 3, tbl.NumCols())
	assert.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, 1, ColumnIndex(tbl.Header, "b"))
	assert.Equal(t, -1, ColumnIndex(tbl.Header, "z"))
	assert.Equal(t, "3", tbl.Cell(0, 2))
	assert.Equal(t, "", tbl.Cell(1, 2))
	assert.Equal(t, "", tbl.Cell(1, -1))
}

func TestSchemaError(t *testing.T) {
	err := SchemaError{Field: ColumnHash, Message: "column not found"}
	assert.Equal(t, "schema Transaction Hash: column not found", err.Error())

	s := &TradeSchema{DirectionIndex: -1}
	assert.False(t, s.HasDirection())
	s.DirectionIndex = 4
	assert.True(t, s.HasDirection())
}
