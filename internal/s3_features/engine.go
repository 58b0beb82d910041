package s3_features

import (
	"context"
	"math"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/pkg/logger"
)

// Engine derives per-trade features. It never filters rows.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new feature engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Build enriches every merged trade.
// hasDirection is false when the trade table had no Direction column;
// every IsBuy is then unknown.
func (e *Engine) Build(ctx context.Context, trades []contracts.MergedTrade, hasDirection bool) ([]contracts.EnrichedTrade, error) {
	if !hasDirection {
		e.logger.Warnf("%q column not found, buy/sell features unavailable", contracts.ColumnDirection)
	}

	out := make([]contracts.EnrichedTrade, len(trades))
	for i, t := range trades {
		out[i] = Enrich(t, hasDirection)
	}

	e.logger.WithField("rows", len(out)).Info("Engineered features")
	return out, nil
}

// Enrich computes the derived columns of one trade
func Enrich(t contracts.MergedTrade, hasDirection bool) contracts.EnrichedTrade {
	rank, _ := t.Classification.Rank()

	enriched := contracts.EnrichedTrade{
		MergedTrade:      t,
		Profitable:       t.PnL > 0,
		PnLAbs:           math.Abs(t.PnL),
		SentimentNumeric: rank,
		IsBuy:            Side(t.Direction, hasDirection),
		Hour:             t.Timestamp.Hour(),
		DayOfWeek:        t.Timestamp.Weekday().String(),
		Month:            int(t.Timestamp.Month()),
	}
	return enriched
}

// Side maps a Direction cell onto the tri-state flag.
// Anything other than "Buy" is a sell when the column exists.
func Side(direction string, hasDirection bool) contracts.Side {
	switch {
	case !hasDirection:
		return contracts.SideUnknown
	case direction == contracts.BuyDirection:
		return contracts.SideBuy
	default:
		return contracts.SideSell
	}
}
