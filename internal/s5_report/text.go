package s5_report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s4_analysis"
	"github.com/wonny/sentilens/internal/stats"
)

const keyWidth = 28

// dailyPreviewRows is how many daily rows the text summary shows
const dailyPreviewRows = 10

// WriteText renders the run summary in analysis order
func WriteText(w io.Writer, in *Input, outputs []string) {
	p := NewPrinter(w)
	r := in.Report

	p.Banner("TRADER BEHAVIOUR vs MARKET SENTIMENT")

	if in.Clean != nil || in.Merge != nil {
		p.Printf("[DATA]\n\n")
		if in.Clean != nil {
			s := in.Clean.Stats
			p.KeyValue("Trades loaded", humanize.Comma(int64(s.InputRows)), keyWidth)
			p.KeyValue("Duplicates removed", humanize.Comma(int64(s.Duplicates)), keyWidth)
			p.KeyValue("Missing PnL removed", humanize.Comma(int64(s.MissingPnL)), keyWidth)
			p.KeyValue("Outliers removed", fmt.Sprintf("%s (outside %s .. %s)",
				humanize.Comma(int64(s.Outliers)), money(s.LowerBound), money(s.UpperBound)), keyWidth)
		}
		if in.Merge != nil {
			p.KeyValue("Matched to sentiment", fmt.Sprintf("%s of %s",
				humanize.Comma(int64(in.Merge.After)), humanize.Comma(int64(in.Merge.Before))), keyWidth)
		}
	}

	writeOverall(p, r.Overall)
	writeBySentiment(p, r.BySentiment)
	writeExtremes(p, r.Extremes)
	writeSignificance(p, r.TTest, r.ANOVA)
	writeBuySell(p, r.BuySell)
	writeDaily(p, r.Daily)

	if len(outputs) > 0 {
		p.Section("[OUTPUTS]")
		p.List(outputs)
	}
	p.Println()
	p.DoubleSeparator()
}

func writeOverall(p *Printer, o s4_analysis.OverallStats) {
	p.Section("[ANALYSIS 1] OVERALL STATISTICS")

	p.KeyValue("Total Trades Analyzed", humanize.Comma(int64(o.TotalTrades)), keyWidth)
	if o.TotalTrades == 0 {
		p.Warning("No trades matched a sentiment date")
		return
	}
	p.KeyValue("Date Range", fmt.Sprintf("%s to %s",
		o.StartDate.Format(contracts.DateLayout), o.EndDate.Format(contracts.DateLayout)), keyWidth)
	p.KeyValue("Overall Win Rate", percent(o.WinRate), keyWidth)
	p.KeyValue("Average PnL per Trade", money(o.MeanPnL), keyWidth)
	p.KeyValue("Median PnL per Trade", money(o.MedianPnL), keyWidth)
	p.KeyValue("Total PnL (All Trades)", money(o.TotalPnL), keyWidth)
	p.KeyValue("Std Dev of PnL", stdText(o.StdPnL, o.StdDefined), keyWidth)
	p.KeyValue("Max Single Trade PnL", money(o.MaxPnL), keyWidth)
	p.KeyValue("Min Single Trade PnL", money(o.MinPnL), keyWidth)
	p.KeyValue("Profitable Trades", humanize.Comma(int64(o.ProfitableTrades)), keyWidth)
	p.KeyValue("Losing Trades", humanize.Comma(int64(o.LosingTrades)), keyWidth)
}

func writeBySentiment(p *Printer, groups []s4_analysis.GroupStats) {
	p.Section("[ANALYSIS 2] PERFORMANCE BY SENTIMENT")

	widths := []int{15, -10, -12, -14, -16, -12}
	p.TableHeader([]string{"Sentiment", "Trades", "Win Rate", "Avg PnL", "Total PnL", "Profitable"}, widths)
	for _, g := range groups {
		p.TableRow([]string{
			g.Sentiment.String(),
			humanize.Comma(int64(g.Trades)),
			percent(g.WinRate),
			money(g.AvgPnL),
			money(g.TotalPnL),
			humanize.Comma(int64(g.ProfitableTrades)),
		}, widths)
	}
}

func writeExtremes(p *Printer, groups []s4_analysis.GroupStats) {
	p.Section("[ANALYSIS 3] EXTREME SENTIMENT COMPARISON")

	for i, g := range groups {
		if i > 0 {
			p.Println()
		}
		p.Printf("%s:\n", g.Sentiment.String())
		p.KeyValue("Number of trades", humanize.Comma(int64(g.Trades)), keyWidth)
		if g.Trades == 0 {
			p.KeyValue("Win rate", "n/a", keyWidth)
			continue
		}
		p.KeyValue("Win rate", percent(g.WinRate), keyWidth)
		p.KeyValue("Average PnL", money(g.AvgPnL), keyWidth)
		p.KeyValue("Total PnL", money(g.TotalPnL), keyWidth)
		p.KeyValue("PnL std dev", stdText(g.StdPnL, g.StdDefined), keyWidth)
	}
}

func writeSignificance(p *Printer, tests ...s4_analysis.SignificanceTest) {
	p.Section("[ANALYSIS 4] STATISTICAL SIGNIFICANCE TESTS")

	for i, t := range tests {
		if i > 0 {
			p.Println()
		}
		p.Printf("%s\n", t.Name)
		if t.Skipped {
			p.Warning(t.Reason)
			continue
		}
		label := "t-statistic"
		if t.DF2 > 0 {
			label = "f-statistic"
		}
		p.KeyValue(label, fmt.Sprintf("%.6f", t.Statistic), keyWidth)
		p.KeyValue("p-value", fmt.Sprintf("%.10f", t.PValue), keyWidth)
		p.KeyValue("Significant (p<0.05)", yesNo(t.Significant), keyWidth)
	}
}

func writeBuySell(p *Printer, bs s4_analysis.BuySellAnalysis) {
	p.Section("[ANALYSIS 5] BUY vs SELL PERFORMANCE BY SENTIMENT")

	if !bs.Available {
		p.Warning("Buy/Sell data not available")
		return
	}

	widths := []int{15, -12, -10, -14, -12, -10, -14}
	p.TableHeader([]string{"Sentiment", "Buy Trades", "Buy Win%", "Buy Avg", "Sell Trades", "Sell Win%", "Sell Avg"}, widths)
	for _, row := range bs.Rows {
		p.TableRow([]string{
			row.Sentiment.String(),
			humanize.Comma(int64(row.BuyTrades)),
			percent(row.BuyWinRate),
			money(row.BuyAvgPnL),
			humanize.Comma(int64(row.SellTrades)),
			percent(row.SellWinRate),
			money(row.SellAvgPnL),
		}, widths)
	}
}

func writeDaily(p *Printer, daily []contracts.DailySentimentStat) {
	p.Section("[ANALYSIS 6] DAILY STATISTICS BY SENTIMENT")

	n := len(daily)
	if n > dailyPreviewRows {
		n = dailyPreviewRows
	}
	p.Printf("Sample daily statistics (first %d of %s days):\n\n", n, humanize.Comma(int64(len(daily))))

	widths := []int{12, 15, -14, -12, -8, -11, -9}
	p.TableHeader([]string{"Date", "Sentiment", "Total PnL", "Avg PnL", "Trades", "Profitable", "Win Rate"}, widths)
	for _, d := range daily[:n] {
		p.TableRow([]string{
			d.Date.Format(contracts.DateLayout),
			d.Classification.String(),
			money(d.DailyTotalPnL),
			money(d.DailyAvgPnL),
			humanize.Comma(int64(d.TradeCount)),
			humanize.Comma(int64(d.ProfitableCount)),
			percent(d.WinRate),
		}, widths)
	}
}

// money rounds to cents first so sub-cent losses print as $0.00, not $-0.00
func money(v float64) string {
	v = stats.Round(v, 2)
	if v == 0 {
		v = 0
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func stdText(v float64, defined bool) string {
	if !defined {
		return "n/a"
	}
	return money(v)
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
