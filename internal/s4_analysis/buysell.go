package s4_analysis

import (
	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/stats"
)

// buySell splits every label by side; rows exist for all five labels
func buySell(groups map[contracts.Sentiment][]contracts.EnrichedTrade) BuySellAnalysis {
	var analysis BuySellAnalysis
	for _, g := range groups {
		for _, t := range g {
			if t.IsBuy.Known() {
				analysis.Available = true
				break
			}
		}
	}
	if !analysis.Available {
		return analysis
	}

	for _, s := range contracts.AllSentiments() {
		var buys, sells []contracts.EnrichedTrade
		for _, t := range groups[s] {
			switch t.IsBuy {
			case contracts.SideBuy:
				buys = append(buys, t)
			case contracts.SideSell:
				sells = append(sells, t)
			}
		}

		analysis.Rows = append(analysis.Rows, BuySellRow{
			Sentiment:   s,
			BuyTrades:   len(buys),
			BuyWinRate:  WinRate(countProfitable(buys), len(buys)),
			BuyAvgPnL:   stats.Mean(pnlOf(buys)),
			SellTrades:  len(sells),
			SellWinRate: WinRate(countProfitable(sells), len(sells)),
			SellAvgPnL:  stats.Mean(pnlOf(sells)),
		})
	}
	return analysis
}
