package s5_report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/wonny/sentilens/internal/contracts"
)

// Columns appended after the raw trade columns in merged_data.csv
var derivedColumns = []string{
	"datetime", "date", "classification", "value", "profitable", "pnl_abs",
	"sentiment_numeric", "is_buy", "hour", "day_of_week", "month",
}

// Columns of daily_statistics.csv
var dailyColumns = []string{
	"date", "classification", "daily_total_pnl", "daily_avg_pnl",
	"trade_count", "profitable_count", "win_rate",
}

const datetimeLayout = "2006-01-02 15:04:05.999999"

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes headers and records to path, creating the directory
func WriteCSV(path string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return file.Close()
}

// WriteDailyStats writes one row per (date, classification)
func WriteDailyStats(path string, daily []contracts.DailySentimentStat) error {
	records := make([][]string, 0, len(daily))
	for _, d := range daily {
		records = append(records, []string{
			d.Date.Format(contracts.DateLayout),
			d.Classification.String(),
			formatFloat(d.DailyTotalPnL),
			formatFloat(d.DailyAvgPnL),
			strconv.Itoa(d.TradeCount),
			strconv.Itoa(d.ProfitableCount),
			formatFloat(d.WinRate),
		})
	}
	return WriteCSV(path, WriteOptions{Headers: dailyColumns, Records: records})
}

// WriteMergedData writes every raw trade column followed by the derived ones
func WriteMergedData(path string, rawHeader []string, trades []contracts.EnrichedTrade) error {
	headers := make([]string, 0, len(rawHeader)+len(derivedColumns))
	headers = append(headers, rawHeader...)
	headers = append(headers, derivedColumns...)

	records := make([][]string, 0, len(trades))
	for _, t := range trades {
		record := make([]string, 0, len(headers))
		for i := range rawHeader {
			if i < len(t.Fields) {
				record = append(record, t.Fields[i])
			} else {
				record = append(record, "")
			}
		}
		record = append(record,
			t.Timestamp.Format(datetimeLayout),
			t.Date.Format(contracts.DateLayout),
			t.Classification.String(),
			strconv.Itoa(t.Value),
			boolCell(t.Profitable),
			formatFloat(t.PnLAbs),
			strconv.Itoa(t.SentimentNumeric),
			sideCell(t.IsBuy),
			strconv.Itoa(t.Hour),
			t.DayOfWeek,
			strconv.Itoa(t.Month),
		)
		records = append(records, record)
	}
	return WriteCSV(path, WriteOptions{Headers: headers, Records: records})
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func boolCell(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// sideCell renders is_buy as 1/0, empty when unknown
func sideCell(s contracts.Side) string {
	switch s {
	case contracts.SideBuy:
		return "1"
	case contracts.SideSell:
		return "0"
	default:
		return ""
	}
}
