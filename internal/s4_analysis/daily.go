package s4_analysis

import (
	"sort"
	"time"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/stats"
)

type dailyKey struct {
	date           time.Time
	classification contracts.Sentiment
}

// DailyStats groups trades by (date, classification), sorted by date then label.
// PnL sum and mean are rounded to 2 decimals.
func DailyStats(trades []contracts.EnrichedTrade) []contracts.DailySentimentStat {
	groups := make(map[dailyKey][]contracts.EnrichedTrade)
	var keys []dailyKey
	for _, t := range trades {
		k := dailyKey{date: t.Date, classification: t.Classification}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], t)
	}

	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].date.Equal(keys[j].date) {
			return keys[i].date.Before(keys[j].date)
		}
		return keys[i].classification < keys[j].classification
	})

	out := make([]contracts.DailySentimentStat, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		pnl := pnlOf(g)
		profitable := countProfitable(g)
		out = append(out, contracts.DailySentimentStat{
			Date:            k.date,
			Classification:  k.classification,
			DailyTotalPnL:   stats.Round(stats.Sum(pnl), 2),
			DailyAvgPnL:     stats.Round(stats.Mean(pnl), 2),
			TradeCount:      len(g),
			ProfitableCount: profitable,
			WinRate:         WinRate(profitable, len(g)),
		})
	}
	return out
}

// byDate groups trades by calendar day in ascending order
func byDate(trades []contracts.EnrichedTrade) ([]time.Time, map[time.Time][]contracts.EnrichedTrade) {
	groups := make(map[time.Time][]contracts.EnrichedTrade)
	var dates []time.Time
	for _, t := range trades {
		if _, ok := groups[t.Date]; !ok {
			dates = append(dates, t.Date)
		}
		groups[t.Date] = append(groups[t.Date], t)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, groups
}

// CumulativePnL running total of daily PnL sums
func CumulativePnL(trades []contracts.EnrichedTrade) []SeriesPoint {
	dates, groups := byDate(trades)
	out := make([]SeriesPoint, 0, len(dates))
	var running float64
	for _, d := range dates {
		running += stats.Sum(pnlOf(groups[d]))
		out = append(out, SeriesPoint{Date: d, Value: running})
	}
	return out
}

// DailySentimentValue mean index value of the trades on each day
func DailySentimentValue(trades []contracts.EnrichedTrade) []SeriesPoint {
	dates, groups := byDate(trades)
	out := make([]SeriesPoint, 0, len(dates))
	for _, d := range dates {
		g := groups[d]
		values := make([]float64, len(g))
		for i, t := range g {
			values[i] = float64(t.Value)
		}
		out = append(out, SeriesPoint{Date: d, Value: stats.Mean(values)})
	}
	return out
}

// Correlation labels of the matrix columns
var CorrelationLabels = []string{"pnl", "sentiment_numeric", "profitable"}

// Correlation Pearson matrix over PnL, sentiment rank and profitability
func Correlation(trades []contracts.EnrichedTrade) stats.CorrelationMatrix {
	pnl := make([]float64, len(trades))
	rank := make([]float64, len(trades))
	profitable := make([]float64, len(trades))
	for i, t := range trades {
		pnl[i] = t.PnL
		rank[i] = float64(t.SentimentNumeric)
		if t.Profitable {
			profitable[i] = 1
		}
	}
	return stats.NewCorrelationMatrix(CorrelationLabels, [][]float64{pnl, rank, profitable})
}
