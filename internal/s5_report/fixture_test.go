package s5_report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s0_load"
	"github.com/wonny/sentilens/internal/s1_clean"
	"github.com/wonny/sentilens/internal/s2_merge"
	"github.com/wonny/sentilens/internal/s3_features"
	"github.com/wonny/sentilens/internal/s4_analysis"
	"github.com/wonny/sentilens/pkg/logger"
)

var rawHeader = []string{"Account", "Direction", "Closed PnL", "Transaction Hash", "Timestamp"}

type fixtureTrade struct {
	date      string
	s         contracts.Sentiment
	value     int
	pnl       float64
	direction string
}

// buildInput runs the real S3/S4 code over hand-made merged trades
func buildInput(t *testing.T, hasDirection bool, trades ...fixtureTrade) *Input {
	t.Helper()

	merged := make([]contracts.MergedTrade, 0, len(trades))
	for i, ft := range trades {
		d, err := time.Parse(contracts.DateLayout, ft.date)
		require.NoError(t, err)
		ts := d.Add(time.Duration(9+i%10) * time.Hour)
		hash := string(rune('A' + i))
		merged = append(merged, contracts.MergedTrade{
			TradeRecord: contracts.TradeRecord{
				Hash:         hash,
				Timestamp:    ts,
				HasTimestamp: true,
				Date:         d,
				PnL:          ft.pnl,
				HasPnL:       true,
				Direction:    ft.direction,
				Fields:       []string{"0xacc", ft.direction, "pnl", hash, "ts"},
			},
			Classification: ft.s,
			Value:          ft.value,
		})
	}

	enriched, err := s3_features.NewEngine(logger.Nop()).Build(context.Background(), merged, hasDirection)
	require.NoError(t, err)
	report, err := s4_analysis.NewAnalyzer(logger.Nop()).Analyze(context.Background(), enriched)
	require.NoError(t, err)

	return &Input{
		RunID:     "test-run",
		StartedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Load: &s0_load.LoadResult{
			SentimentTable: &contracts.Table{Source: "data/fear_greed_index.csv", SHA256: "aa"},
			TradeTable:     &contracts.Table{Source: "data/historical_data.csv", SHA256: "bb", Header: rawHeader},
			TradeSchema: &contracts.TradeSchema{
				HashColumn: "Transaction Hash", HashIndex: 3,
				TimestampColumn: "Timestamp", TimestampIndex: 4,
				PnLColumn: "Closed PnL", PnLIndex: 2,
				DirectionColumn: "Direction", DirectionIndex: 1,
			},
		},
		Clean:  &s1_clean.CleanResult{Stats: s1_clean.CleanStats{InputRows: len(trades), OutputRows: len(trades)}},
		Merge:  &s2_merge.MergeResult{Before: len(trades), After: len(trades)},
		Trades: enriched,
		Report: report,
		Stages: []contracts.PipelineResult{{Stage: contracts.StageLoad, Success: true, OutputCount: len(trades)}},
	}
}

func fearScenario(t *testing.T) *Input {
	return buildInput(t, true,
		fixtureTrade{"2021-01-01", contracts.Fear, 30, 50, "Buy"},
		fixtureTrade{"2021-01-01", contracts.Fear, 30, -20, "Sell"},
	)
}

func richScenario(t *testing.T) *Input {
	return buildInput(t, true,
		fixtureTrade{"2024-01-01", contracts.ExtremeFear, 10, -12.5, "Buy"},
		fixtureTrade{"2024-01-01", contracts.ExtremeFear, 10, 4, "Sell"},
		fixtureTrade{"2024-01-02", contracts.Fear, 30, 7, "Buy"},
		fixtureTrade{"2024-01-03", contracts.Neutral, 50, 0, "Sell"},
		fixtureTrade{"2024-01-03", contracts.Neutral, 50, 2.5, "Buy"},
		fixtureTrade{"2024-01-04", contracts.Greed, 65, 1200, "Buy"},
		fixtureTrade{"2024-01-05", contracts.ExtremeGreed, 85, 33, "Sell"},
		fixtureTrade{"2024-01-05", contracts.ExtremeGreed, 85, -8, "Buy"},
		fixtureTrade{"2024-01-05", contracts.ExtremeGreed, 85, 15, "Buy"},
	)
}
