package s4_analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/sentilens/internal/contracts"
)

func TestDailyStats_SortedAndRounded(t *testing.T) {
	trades := []contracts.EnrichedTrade{
		enriched("2024-01-02", contracts.Greed, 60, 1.111, contracts.SideBuy),
		enriched("2024-01-01", contracts.Fear, 30, 2.004, contracts.SideBuy),
		enriched("2024-01-02", contracts.Greed, 60, -0.5, contracts.SideSell),
		enriched("2024-01-02", contracts.Greed, 60, 3.333, contracts.SideSell),
	}

	daily := DailyStats(trades)
	require.Len(t, daily, 2)

	assert.Equal(t, "2024-01-01", daily[0].Date.Format(contracts.DateLayout))
	assert.Equal(t, 2.0, daily[0].DailyTotalPnL)

	second := daily[1]
	assert.Equal(t, contracts.Greed, second.Classification)
	assert.Equal(t, 3, second.TradeCount)
	assert.Equal(t, 2, second.ProfitableCount)
	assert.Equal(t, 3.94, second.DailyTotalPnL)
	assert.Equal(t, 1.31, second.DailyAvgPnL)
	assert.Equal(t, 66.67, second.WinRate)
}

func TestCumulativePnL(t *testing.T) {
	trades := []contracts.EnrichedTrade{
		enriched("2024-01-03", contracts.Greed, 70, 5, contracts.SideBuy),
		enriched("2024-01-01", contracts.Fear, 30, 10, contracts.SideBuy),
		enriched("2024-01-01", contracts.Fear, 30, -4, contracts.SideBuy),
		enriched("2024-01-02", contracts.Neutral, 50, -1, contracts.SideBuy),
	}

	series := CumulativePnL(trades)
	require.Len(t, series, 3)
	assert.Equal(t, []float64{6, 5, 10}, []float64{series[0].Value, series[1].Value, series[2].Value})
	assert.True(t, series[0].Date.Before(series[1].Date))

	values := DailySentimentValue(trades)
	require.Len(t, values, 3)
	assert.Equal(t, 30.0, values[0].Value)
	assert.Equal(t, 70.0, values[2].Value)
}

func TestCorrelation(t *testing.T) {
	trades := []contracts.EnrichedTrade{
		enriched("2024-01-01", contracts.ExtremeFear, 10, -5, contracts.SideBuy),
		enriched("2024-01-02", contracts.Fear, 30, -1, contracts.SideBuy),
		enriched("2024-01-03", contracts.Greed, 70, 3, contracts.SideBuy),
		enriched("2024-01-04", contracts.ExtremeGreed, 90, 8, contracts.SideBuy),
	}

	m := Correlation(trades)
	assert.Equal(t, CorrelationLabels, m.Labels)
	for i := 0; i < 3; i++ {
		assert.True(t, m.Defined[i][i])
		assert.Equal(t, 1.0, m.Values[i][i])
	}
	assert.Greater(t, m.Values[0][1], 0.9)
	assert.InDelta(t, m.Values[0][2], m.Values[2][0], 1e-15)
}
