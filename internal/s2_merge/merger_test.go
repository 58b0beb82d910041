package s2_merge

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/pkg/logger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trade(hash string, ts time.Time) contracts.TradeRecord {
	return contracts.TradeRecord{
		Hash:         hash,
		Timestamp:    ts,
		HasTimestamp: true,
		Date:         day(ts.Year(), ts.Month(), ts.Day()),
		HasPnL:       true,
	}
}

func TestMerger_Merge(t *testing.T) {
	index := contracts.NewSentimentIndex([]contracts.SentimentRecord{
		{Date: day(2024, 1, 1), Classification: contracts.Fear, Value: 30},
		{Date: day(2024, 1, 2), Classification: contracts.ExtremeGreed, Value: 80},
	})

	trades := []contracts.TradeRecord{
		trade("a", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
		trade("b", time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)), // no sentiment that day
		{Hash: "c"}, // missing timestamp
		trade("d", time.Date(2024, 1, 2, 23, 59, 59, 0, time.UTC)),
	}

	result, err := NewMerger(logger.Nop()).Merge(context.Background(), trades, index)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Before)
	assert.Equal(t, 2, result.After)
	assert.Equal(t, 2, result.Unmatched)
	require.Len(t, result.Trades, 2)

	assert.Equal(t, "a", result.Trades[0].Hash)
	assert.Equal(t, contracts.Fear, result.Trades[0].Classification)
	assert.Equal(t, 30, result.Trades[0].Value)
	assert.Equal(t, "d", result.Trades[1].Hash)
	assert.Equal(t, contracts.ExtremeGreed, result.Trades[1].Classification)

	// 모든 결합 결과는 유효한 심리 분류를 가짐
	for _, m := range result.Trades {
		assert.True(t, m.Classification.Valid())
	}
}

func TestMerger_Merge_Empty(t *testing.T) {
	result, err := NewMerger(logger.Nop()).Merge(context.Background(), nil, contracts.NewSentimentIndex(nil))
	require.NoError(t, err)
	assert.Empty(t, result.Trades)
	assert.Zero(t, result.Before)
}
