package s0_load

import (
	"context"
	"time"

	"github.com/wonny/sentilens/internal/contracts"
)

// previewRows is how many leading rows Inspect returns per table
const previewRows = 5

// TableSummary describes one input file
type TableSummary struct {
	Path    string
	SHA256  string
	Rows    int
	Columns []string
	Preview [][]string
}

// SentimentCoverage is the calendar span of the parsed sentiment index
type SentimentCoverage struct {
	Days       int
	First      time.Time
	Last       time.Time
	Dropped    int
	Duplicates int
}

// InspectReport is the shape of both inputs plus the resolved trade schema.
// SchemaErr and CoverageErr are set instead of failing so the header can still be shown.
type InspectReport struct {
	Sentiment   TableSummary
	Trades      TableSummary
	TradeSchema *contracts.TradeSchema
	SchemaErr   error
	Coverage    *SentimentCoverage
	CoverageErr error
}

// Inspect reads both inputs without running the pipeline.
// Unreadable files are still fatal.
func (l *Loader) Inspect(ctx context.Context) (*InspectReport, error) {
	sentimentTable, err := ReadTable(l.sentimentPath)
	if err != nil {
		return nil, err
	}
	tradeTable, err := ReadTable(l.tradesPath)
	if err != nil {
		return nil, err
	}

	report := &InspectReport{
		Sentiment: summarize(sentimentTable),
		Trades:    summarize(tradeTable),
	}
	report.TradeSchema, report.SchemaErr = ResolveTradeSchema(tradeTable.Header)
	if report.SchemaErr != nil {
		l.logger.WithError(report.SchemaErr).Warn("Trade schema could not be resolved")
	}

	index, err := ParseSentimentIndex(sentimentTable)
	if err != nil {
		report.CoverageErr = err
		l.logger.WithError(err).Warn("Sentiment index could not be parsed")
	} else {
		report.Coverage = coverage(index)
	}
	return report, nil
}

func coverage(index *contracts.SentimentIndex) *SentimentCoverage {
	c := &SentimentCoverage{
		Days:       index.Len(),
		Dropped:    index.Dropped,
		Duplicates: index.Duplicates,
	}
	for i, r := range index.Records() {
		if i == 0 || r.Date.Before(c.First) {
			c.First = r.Date
		}
		if i == 0 || r.Date.After(c.Last) {
			c.Last = r.Date
		}
	}
	return c
}

func summarize(t *contracts.Table) TableSummary {
	n := previewRows
	if t.NumRows() < n {
		n = t.NumRows()
	}
	return TableSummary{
		Path:    t.Source,
		SHA256:  t.SHA256,
		Rows:    t.NumRows(),
		Columns: t.Header,
		Preview: t.Rows[:n],
	}
}
