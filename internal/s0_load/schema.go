package s0_load

import (
	"strings"

	"github.com/wonny/sentilens/internal/contracts"
)

// ResolveTradeSchema maps the trade header onto the columns the pipeline needs.
//
// Resolution rules:
//   - Transaction Hash: required
//   - Timestamp: falls back to the last column
//   - Closed PnL: falls back to the first header containing "pnl" (any case), else required
//   - Direction: optional
func ResolveTradeSchema(header []string) (*contracts.TradeSchema, error) {
	if len(header) == 0 {
		return nil, contracts.SchemaError{Field: "header", Message: "no columns"}
	}

	schema := &contracts.TradeSchema{DirectionIndex: -1}

	schema.HashIndex = contracts.ColumnIndex(header, contracts.ColumnHash)
	if schema.HashIndex < 0 {
		return nil, contracts.SchemaError{Field: contracts.ColumnHash, Message: "column not found"}
	}
	schema.HashColumn = contracts.ColumnHash

	schema.TimestampIndex = contracts.ColumnIndex(header, contracts.ColumnTimestamp)
	if schema.TimestampIndex < 0 {
		schema.TimestampIndex = len(header) - 1
		schema.TimestampFallback = true
	}
	schema.TimestampColumn = header[schema.TimestampIndex]

	schema.PnLIndex = contracts.ColumnIndex(header, contracts.ColumnPnL)
	if schema.PnLIndex < 0 {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), "pnl") {
				schema.PnLIndex = i
				schema.PnLRemapped = true
				break
			}
		}
	}
	if schema.PnLIndex < 0 {
		return nil, contracts.SchemaError{Field: contracts.ColumnPnL, Message: "no pnl column found"}
	}
	schema.PnLColumn = header[schema.PnLIndex]

	if i := contracts.ColumnIndex(header, contracts.ColumnDirection); i >= 0 {
		schema.DirectionIndex = i
		schema.DirectionColumn = contracts.ColumnDirection
	}

	return schema, nil
}

// ResolveSentimentSchema locates date, classification and value (all required)
func ResolveSentimentSchema(header []string) (*contracts.SentimentSchema, error) {
	schema := &contracts.SentimentSchema{
		DateIndex:           contracts.ColumnIndex(header, contracts.ColumnSentimentDate),
		ClassificationIndex: contracts.ColumnIndex(header, contracts.ColumnClassification),
		ValueIndex:          contracts.ColumnIndex(header, contracts.ColumnValue),
	}

	switch {
	case schema.DateIndex < 0:
		return nil, contracts.SchemaError{Field: contracts.ColumnSentimentDate, Message: "column not found"}
	case schema.ClassificationIndex < 0:
		return nil, contracts.SchemaError{Field: contracts.ColumnClassification, Message: "column not found"}
	case schema.ValueIndex < 0:
		return nil, contracts.SchemaError{Field: contracts.ColumnValue, Message: "column not found"}
	}
	return schema, nil
}
