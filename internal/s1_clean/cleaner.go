package s1_clean

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/sentilens/internal/contracts"
	"github.com/wonny/sentilens/internal/stats"
	"github.com/wonny/sentilens/pkg/logger"
)

// Outlier band applied to PnL, as quantiles
const (
	LowerQuantile = 0.01
	UpperQuantile = 0.99
)

// Cleaner normalizes, deduplicates and trims the trade table
// ⭐ SSOT: 거래 데이터 정제 규칙은 여기서만
type Cleaner struct {
	logger *logger.Logger
}

// CleanStats counts what every cleaning step removed
type CleanStats struct {
	InputRows         int     `yaml:"input_rows"`
	MissingTimestamps int     `yaml:"missing_timestamps"`
	Duplicates        int     `yaml:"duplicates"`
	MissingPnL        int     `yaml:"missing_pnl"`
	Outliers          int     `yaml:"outliers"`
	LowerBound        float64 `yaml:"lower_bound"`
	UpperBound        float64 `yaml:"upper_bound"`
	OutputRows        int     `yaml:"output_rows"`
}

// CleanResult is the cleaned trade population
type CleanResult struct {
	Trades []contracts.TradeRecord
	Stats  CleanStats
}

// NewCleaner creates a new cleaner
func NewCleaner(log *logger.Logger) *Cleaner {
	return &Cleaner{logger: log}
}

// Clean runs, in order: timestamp normalization, hash dedup,
// missing-PnL removal and percentile trimming.
func (c *Cleaner) Clean(ctx context.Context, table *contracts.Table, schema *contracts.TradeSchema) (*CleanResult, error) {
	result := &CleanResult{}
	result.Stats.InputRows = table.NumRows()

	trades := make([]contracts.TradeRecord, 0, table.NumRows())
	for i := range table.Rows {
		trades = append(trades, toRecord(table, i, schema))
	}

	// 1. Timestamp
	for _, t := range trades {
		if !t.HasTimestamp {
			result.Stats.MissingTimestamps++
		}
	}
	c.logger.WithFields(map[string]interface{}{
		"rows":    len(trades),
		"missing": result.Stats.MissingTimestamps,
		"column":  schema.TimestampColumn,
	}).Info("Normalized timestamps")

	// 2. Dedup
	before := len(trades)
	trades = Deduplicate(trades)
	result.Stats.Duplicates = before - len(trades)
	c.logger.WithFields(map[string]interface{}{
		"before":  before,
		"after":   len(trades),
		"removed": result.Stats.Duplicates,
	}).Info("Removed duplicate transactions")

	// 3. Missing PnL
	before = len(trades)
	trades = dropMissingPnL(trades)
	result.Stats.MissingPnL = before - len(trades)
	c.logger.WithFields(map[string]interface{}{
		"before":  before,
		"after":   len(trades),
		"removed": result.Stats.MissingPnL,
		"column":  schema.PnLColumn,
	}).Info("Removed rows with missing PnL")

	// 4. Outliers
	before = len(trades)
	var lower, upper float64
	trades, lower, upper = TrimOutliers(trades, LowerQuantile, UpperQuantile)
	result.Stats.Outliers = before - len(trades)
	result.Stats.LowerBound = lower
	result.Stats.UpperBound = upper
	c.logger.WithFields(map[string]interface{}{
		"before":      before,
		"after":       len(trades),
		"removed":     result.Stats.Outliers,
		"lower_bound": lower,
		"upper_bound": upper,
	}).Info("Removed PnL outliers")

	result.Trades = trades
	result.Stats.OutputRows = len(trades)
	return result, nil
}

func toRecord(table *contracts.Table, row int, schema *contracts.TradeSchema) contracts.TradeRecord {
	record := contracts.TradeRecord{
		Hash:   table.Cell(row, schema.HashIndex),
		Fields: table.Rows[row],
	}
	if ts, ok := ParseMillis(table.Cell(row, schema.TimestampIndex)); ok {
		record.Timestamp = ts
		record.HasTimestamp = true
		record.Date = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	if pnl, ok := parsePnL(table.Cell(row, schema.PnLIndex)); ok {
		record.PnL = pnl
		record.HasPnL = true
	}
	if schema.HasDirection() {
		record.Direction = table.Cell(row, schema.DirectionIndex)
	}
	return record
}

// ParseMillis reads an epoch-milliseconds cell written as an integer or a float
// ("1730000000000", "1.73e+12"). The instant is returned in UTC.
func ParseMillis(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if ms > maxMillis || ms < -maxMillis {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > float64(maxMillis) {
		return time.Time{}, false
	}
	return time.Unix(0, int64(math.Round(v*1e6))).UTC(), true
}

// maxMillis keeps nanosecond conversion inside int64
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

func parsePnL(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Deduplicate keeps the first trade for every hash, preserving order
func Deduplicate(trades []contracts.TradeRecord) []contracts.TradeRecord {
	seen := make(map[string]struct{}, len(trades))
	out := make([]contracts.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if _, ok := seen[t.Hash]; ok {
			continue
		}
		seen[t.Hash] = struct{}{}
		out = append(out, t)
	}
	return out
}

func dropMissingPnL(trades []contracts.TradeRecord) []contracts.TradeRecord {
	out := make([]contracts.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if t.HasPnL {
			out = append(out, t)
		}
	}
	return out
}

// TrimOutliers keeps trades with lo-quantile <= PnL <= hi-quantile.
// Rows outside the band are removed, never clipped.
func TrimOutliers(trades []contracts.TradeRecord, lo, hi float64) ([]contracts.TradeRecord, float64, float64) {
	if len(trades) == 0 {
		return trades, 0, 0
	}

	pnl := make([]float64, len(trades))
	for i, t := range trades {
		pnl[i] = t.PnL
	}
	sorted := stats.Sorted(pnl)
	lower := stats.Percentile(sorted, lo*100)
	upper := stats.Percentile(sorted, hi*100)

	out := make([]contracts.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if t.PnL >= lower && t.PnL <= upper {
			out = append(out, t)
		}
	}
	return out, lower, upper
}
