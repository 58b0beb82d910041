package s0_load

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/sentilens/internal/contracts"
)

// ParseSentimentIndex turns the raw sentiment table into a date-keyed index.
// Rows with a bad date, an unknown label or a value outside 0..100 are
// dropped and counted; for repeated dates the first row wins.
func ParseSentimentIndex(table *contracts.Table) (*contracts.SentimentIndex, error) {
	schema, err := ResolveSentimentSchema(table.Header)
	if err != nil {
		return nil, err
	}

	index := contracts.NewSentimentIndex(nil)
	for i := range table.Rows {
		record, ok := parseSentimentRow(table, i, schema)
		if !ok {
			index.Dropped++
			continue
		}
		index.Add(record)
	}
	return index, nil
}

func parseSentimentRow(table *contracts.Table, row int, schema *contracts.SentimentSchema) (contracts.SentimentRecord, bool) {
	date, ok := ParseDate(table.Cell(row, schema.DateIndex))
	if !ok {
		return contracts.SentimentRecord{}, false
	}

	classification, ok := contracts.ParseSentiment(table.Cell(row, schema.ClassificationIndex))
	if !ok {
		return contracts.SentimentRecord{}, false
	}

	value, ok := parseIndexValue(table.Cell(row, schema.ValueIndex))
	if !ok {
		return contracts.SentimentRecord{}, false
	}

	return contracts.SentimentRecord{
		Date:           date,
		Classification: classification,
		Value:          value,
	}, true
}

// ParseDate parses a YYYY-MM-DD calendar day; a trailing time part is ignored
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(contracts.DateLayout) {
		raw = raw[:len(contracts.DateLayout)]
	}
	d, err := time.Parse(contracts.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// parseIndexValue accepts "45" and "45.0", nothing fractional or out of range
func parseIndexValue(raw string) (int, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v != math.Trunc(v) || v < 0 || v > 100 {
		return 0, false
	}
	return int(v), true
}
