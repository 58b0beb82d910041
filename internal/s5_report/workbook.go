package s5_report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/s4_analysis"
)

// Workbook sheet names
const (
	SheetSummary     = "Summary"
	SheetBySentiment = "BySentiment"
	SheetBuySell     = "BuySell"
	SheetDaily       = "Daily"
)

// WriteWorkbook exports the report tables to a single .xlsx file
func WriteWorkbook(path string, r *s4_analysis.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetBySentiment, SheetBuySell, SheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	writers := []struct {
		sheet string
		rows  [][]interface{}
	}{
		{SheetSummary, summaryRows(r)},
		{SheetBySentiment, bySentimentRows(r)},
		{SheetBuySell, buySellRows(r)},
		{SheetDaily, dailyRows(r)},
	}
	for _, w := range writers {
		if err := writeSheet(f, w.sheet, w.rows, header); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// writeSheet writes rows starting at A1; the first row is styled as a header
func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	return f.SetColWidth(sheet, "A", "A", 24)
}

func summaryRows(r *s4_analysis.Report) [][]interface{} {
	o := r.Overall
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Trades", o.TotalTrades},
	}
	if o.TotalTrades > 0 {
		rows = append(rows,
			[]interface{}{"Start Date", o.StartDate.Format(contracts.DateLayout)},
			[]interface{}{"End Date", o.EndDate.Format(contracts.DateLayout)},
			[]interface{}{"Win Rate (%)", o.WinRate},
			[]interface{}{"Average PnL", o.MeanPnL},
			[]interface{}{"Median PnL", o.MedianPnL},
			[]interface{}{"Total PnL", o.TotalPnL},
			[]interface{}{"Max PnL", o.MaxPnL},
			[]interface{}{"Min PnL", o.MinPnL},
			[]interface{}{"Profitable Trades", o.ProfitableTrades},
			[]interface{}{"Losing Trades", o.LosingTrades},
		)
		if o.StdDefined {
			rows = append(rows, []interface{}{"Std Dev PnL", o.StdPnL})
		}
	}

	for _, t := range []s4_analysis.SignificanceTest{r.TTest, r.ANOVA} {
		if t.Skipped {
			rows = append(rows, []interface{}{t.Name, "skipped: " + t.Reason})
			continue
		}
		rows = append(rows,
			[]interface{}{t.Name + " statistic", t.Statistic},
			[]interface{}{t.Name + " p-value", t.PValue},
			[]interface{}{t.Name + " significant", yesNo(t.Significant)},
		)
	}
	return rows
}

func bySentimentRows(r *s4_analysis.Report) [][]interface{} {
	rows := [][]interface{}{{"Sentiment", "Trades", "Win Rate (%)", "Avg PnL", "Total PnL", "Profitable"}}
	for _, g := range r.BySentiment {
		rows = append(rows, []interface{}{
			g.Sentiment.String(), g.Trades, g.WinRate, g.AvgPnL, g.TotalPnL, g.ProfitableTrades,
		})
	}
	return rows
}

func buySellRows(r *s4_analysis.Report) [][]interface{} {
	rows := [][]interface{}{{"Sentiment", "Buy Trades", "Buy Win (%)", "Buy Avg PnL", "Sell Trades", "Sell Win (%)", "Sell Avg PnL"}}
	for _, row := range r.BuySell.Rows {
		rows = append(rows, []interface{}{
			row.Sentiment.String(),
			row.BuyTrades, row.BuyWinRate, row.BuyAvgPnL,
			row.SellTrades, row.SellWinRate, row.SellAvgPnL,
		})
	}
	return rows
}

func dailyRows(r *s4_analysis.Report) [][]interface{} {
	rows := make([][]interface{}, 0, len(r.Daily)+1)
	header := make([]interface{}, len(dailyColumns))
	for i, c := range dailyColumns {
		header[i] = c
	}
	rows = append(rows, header)
	for _, d := range r.Daily {
		rows = append(rows, []interface{}{
			d.Date.Format(contracts.DateLayout),
			d.Classification.String(),
			d.DailyTotalPnL,
			d.DailyAvgPnL,
			d.TradeCount,
			d.ProfitableCount,
			d.WinRate,
		})
	}
	return rows
}
