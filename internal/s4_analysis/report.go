package s4_analysis

import (
	"time"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/stats"
)

// SignificanceLevel threshold for both tests
const SignificanceLevel = 0.05

// Report is everything S4 computed; S5 only renders it
type Report struct {
	Overall        OverallStats
	BySentiment    []GroupStats // labels with at least one trade, Extreme Fear first
	Extremes       []GroupStats // Extreme Fear, Extreme Greed, Neutral (always present)
	TTest          SignificanceTest
	ANOVA          SignificanceTest
	BuySell        BuySellAnalysis
	Daily          []contracts.DailySentimentStat
	CumulativePnL  []SeriesPoint
	SentimentValue []SeriesPoint
	Correlation    stats.CorrelationMatrix
	Distributions  map[contracts.Sentiment][]float64 // PnL per label, for box plots
}

// OverallStats covers the whole merged population
type OverallStats struct {
	TotalTrades      int       `yaml:"total_trades"`
	StartDate        time.Time `yaml:"start_date"`
	EndDate          time.Time `yaml:"end_date"`
	WinRate          float64   `yaml:"win_rate"`
	MeanPnL          float64   `yaml:"mean_pnl"`
	MedianPnL        float64   `yaml:"median_pnl"`
	TotalPnL         float64   `yaml:"total_pnl"`
	StdPnL           float64   `yaml:"std_pnl"`
	StdDefined       bool      `yaml:"std_defined"`
	MaxPnL           float64   `yaml:"max_pnl"`
	MinPnL           float64   `yaml:"min_pnl"`
	ProfitableTrades int       `yaml:"profitable_trades"`
	LosingTrades     int       `yaml:"losing_trades"`
}

// GroupStats is one sentiment label's slice of the population.
// Averages and win rate are meaningless when Trades is 0.
type GroupStats struct {
	Sentiment        contracts.Sentiment
	Trades           int
	WinRate          float64 // percent, 2 decimals
	AvgPnL           float64
	TotalPnL         float64
	ProfitableTrades int
	StdPnL           float64
	StdDefined       bool // false below two trades
}

// SignificanceTest is a t-test or ANOVA outcome, or the reason it was skipped
type SignificanceTest struct {
	Name        string
	Statistic   float64
	PValue      float64
	DF1         float64
	DF2         float64
	Groups      int
	Significant bool
	Skipped     bool
	Reason      string
}

// BuySellRow compares the two sides within one label; empty sides are zeros
type BuySellRow struct {
	Sentiment   contracts.Sentiment
	BuyTrades   int
	BuyWinRate  float64
	BuyAvgPnL   float64
	SellTrades  int
	SellWinRate float64
	SellAvgPnL  float64
}

// BuySellAnalysis is unavailable when no trade has a known side
type BuySellAnalysis struct {
	Available bool
	Rows      []BuySellRow
}

// SeriesPoint is one calendar day of a time series
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// Group returns the per-sentiment stats for s, if the label had trades
func (r *Report) Group(s contracts.Sentiment) (GroupStats, bool) {
	for _, g := range r.BySentiment {
		if g.Sentiment == s {
			return g, true
		}
	}
	return GroupStats{}, false
}
