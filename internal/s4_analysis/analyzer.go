package s4_analysis

import (
	"context"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/stats"
	"github.com/wonny/sentilens/pkg/logger"
)

// Analyzer implements S4: statistics relating sentiment to trade outcomes
// ⭐ SSOT: S4 분석 로직은 여기서만
type Analyzer struct {
	logger *logger.Logger
}

// NewAnalyzer creates a new analyzer
func NewAnalyzer(log *logger.Logger) *Analyzer {
	return &Analyzer{logger: log}
}

// Analyze builds the full report from the enriched trades
func (a *Analyzer) Analyze(ctx context.Context, trades []contracts.EnrichedTrade) (*Report, error) {
	if len(trades) == 0 {
		a.logger.Warn("No trades to analyze")
	}

	groups := groupBySentiment(trades)

	report := &Report{
		Overall:       overallStats(trades),
		Distributions: make(map[contracts.Sentiment][]float64, len(groups)),
	}

	// 심리 구간별 성과
	for _, s := range contracts.AllSentiments() {
		g := groups[s]
		report.Distributions[s] = pnlOf(g)
		if len(g) == 0 {
			continue
		}
		report.BySentiment = append(report.BySentiment, groupStats(s, g))
	}

	// 극단 구간 비교
	for _, s := range []contracts.Sentiment{contracts.ExtremeFear, contracts.ExtremeGreed, contracts.Neutral} {
		report.Extremes = append(report.Extremes, groupStats(s, groups[s]))
	}

	// 유의성 검정
	report.TTest = extremeTTest(groups[contracts.ExtremeFear], groups[contracts.ExtremeGreed])
	report.ANOVA = sentimentANOVA(groups)
	for _, test := range []SignificanceTest{report.TTest, report.ANOVA} {
		if test.Skipped {
			a.logger.WithField("test", test.Name).Warnf("Significance test skipped: %s", test.Reason)
		}
	}

	report.BuySell = buySell(groups)
	if !report.BuySell.Available {
		a.logger.Warn("Buy/Sell data not available")
	}

	report.Daily = DailyStats(trades)
	report.CumulativePnL = CumulativePnL(trades)
	report.SentimentValue = DailySentimentValue(trades)
	report.Correlation = Correlation(trades)

	a.logger.WithFields(map[string]interface{}{
		"trades":     report.Overall.TotalTrades,
		"win_rate":   report.Overall.WinRate,
		"total_pnl":  report.Overall.TotalPnL,
		"sentiments": len(report.BySentiment),
		"daily_rows": len(report.Daily),
		"ttest_p":    report.TTest.PValue,
		"anova_p":    report.ANOVA.PValue,
	}).Info("Analysis completed")

	return report, nil
}

func groupBySentiment(trades []contracts.EnrichedTrade) map[contracts.Sentiment][]contracts.EnrichedTrade {
	groups := make(map[contracts.Sentiment][]contracts.EnrichedTrade)
	for _, t := range trades {
		groups[t.Classification] = append(groups[t.Classification], t)
	}
	return groups
}

func pnlOf(trades []contracts.EnrichedTrade) []float64 {
	out := make([]float64, len(trades))
	for i, t := range trades {
		out[i] = t.PnL
	}
	return out
}

func countProfitable(trades []contracts.EnrichedTrade) int {
	n := 0
	for _, t := range trades {
		if t.Profitable {
			n++
		}
	}
	return n
}

// WinRate profitable / total * 100, rounded to 2 decimals (0 for no trades)
func WinRate(profitable, total int) float64 {
	if total == 0 {
		return 0
	}
	return stats.Round(float64(profitable)/float64(total)*100, 2)
}

func overallStats(trades []contracts.EnrichedTrade) OverallStats {
	o := OverallStats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return o
	}

	pnl := pnlOf(trades)
	o.ProfitableTrades = countProfitable(trades)
	o.LosingTrades = o.TotalTrades - o.ProfitableTrades
	o.WinRate = WinRate(o.ProfitableTrades, o.TotalTrades)
	o.MeanPnL = stats.Mean(pnl)
	o.MedianPnL = stats.Median(pnl)
	o.TotalPnL = stats.Sum(pnl)
	o.StdPnL = stats.StdDev(pnl)
	o.StdDefined = len(pnl) >= 2
	o.MaxPnL = stats.Max(pnl)
	o.MinPnL = stats.Min(pnl)

	o.StartDate, o.EndDate = trades[0].Date, trades[0].Date
	for _, t := range trades[1:] {
		if t.Date.Before(o.StartDate) {
			o.StartDate = t.Date
		}
		if t.Date.After(o.EndDate) {
			o.EndDate = t.Date
		}
	}
	return o
}

func groupStats(s contracts.Sentiment, trades []contracts.EnrichedTrade) GroupStats {
	pnl := pnlOf(trades)
	g := GroupStats{
		Sentiment:        s,
		Trades:           len(trades),
		ProfitableTrades: countProfitable(trades),
		AvgPnL:           stats.Mean(pnl),
		TotalPnL:         stats.Sum(pnl),
		StdPnL:           stats.StdDev(pnl),
		StdDefined:       len(pnl) >= 2,
	}
	g.WinRate = WinRate(g.ProfitableTrades, g.Trades)
	return g
}
