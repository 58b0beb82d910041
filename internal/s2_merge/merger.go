package s2_merge

import (
	"context"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/pkg/logger"
)

// Merger joins trades to the sentiment of their calendar day
type Merger struct {
	logger *logger.Logger
}

// MergeResult holds the matched trades and the join counts
type MergeResult struct {
	Trades    []contracts.MergedTrade
	Before    int
	After     int
	Unmatched int
}

// NewMerger creates a new merger
func NewMerger(log *logger.Logger) *Merger {
	return &Merger{logger: log}
}

// Merge left-joins trades to the index by date, then drops rows without a match.
// Trades without a timestamp have no date and never match.
func (m *Merger) Merge(ctx context.Context, trades []contracts.TradeRecord, index *contracts.SentimentIndex) (*MergeResult, error) {
	result := &MergeResult{
		Trades: make([]contracts.MergedTrade, 0, len(trades)),
		Before: len(trades),
	}

	for _, t := range trades {
		if !t.HasTimestamp {
			result.Unmatched++
			continue
		}
		record, ok := index.Lookup(t.Date)
		if !ok {
			result.Unmatched++
			continue
		}
		result.Trades = append(result.Trades, contracts.MergedTrade{
			TradeRecord:    t,
			Classification: record.Classification,
			Value:          record.Value,
		})
	}
	result.After = len(result.Trades)

	m.logger.WithFields(map[string]interface{}{
		"before":    result.Before,
		"after":     result.After,
		"unmatched": result.Unmatched,
	}).Info("Merged trades with sentiment")
	if result.After == 0 && result.Before > 0 {
		m.logger.Warn("No trade matched a sentiment date")
	}

	return result, nil
}
