package contracts

import "fmt"

// Canonical column names of the two inputs
const (
	ColumnHash      = "Transaction Hash"
	ColumnTimestamp = "Timestamp"
	ColumnPnL       = "Closed PnL"
	ColumnDirection = "Direction"

	ColumnSentimentDate  = "date"
	ColumnClassification = "classification"
	ColumnValue          = "value"
)

// BuyDirection is the Direction cell value that marks a buy
const BuyDirection = "Buy"

// SchemaError is a required column that could not be resolved (fatal)
type SchemaError struct {
	Field   string
	Message string
}

func (e SchemaError) Error() string {
	return fmt.Sprintf("schema %s: %s", e.Field, e.Message)
}

// TradeSchema is the validated column layout of the trade table.
// Every index refers to a position in the raw header.
type TradeSchema struct {
	HashColumn string
	HashIndex  int

	TimestampColumn   string
	TimestampIndex    int
	TimestampFallback bool // last column used because Timestamp was absent

	PnLColumn   string
	PnLIndex    int
	PnLRemapped bool // matched by substring instead of the canonical name

	DirectionColumn string
	DirectionIndex  int // -1 when the table has no direction column
}

// HasDirection reports whether buy/sell information is available
func (s *TradeSchema) HasDirection() bool {
	return s.DirectionIndex >= 0
}

// SentimentSchema is the validated column layout of the sentiment table
type SentimentSchema struct {
	DateIndex           int
	ClassificationIndex int
	ValueIndex          int
}
