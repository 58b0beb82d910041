package contracts

import "time"

// DateLayout is the calendar-day format used for joins and outputs
const DateLayout = "2006-01-02"

// SentimentRecord is one day of the Fear & Greed index
type SentimentRecord struct {
	Date           time.Time
	Classification Sentiment
	Value          int
}

// SentimentIndex is the sentiment table keyed by calendar day
type SentimentIndex struct {
	byDate map[string]SentimentRecord
	order  []string

	Dropped    int // rows with a bad date, label or value
	Duplicates int // later rows for an already seen date
}

// NewSentimentIndex builds an index; the first record for a date wins
func NewSentimentIndex(records []SentimentRecord) *SentimentIndex {
	idx := &SentimentIndex{byDate: make(map[string]SentimentRecord, len(records))}
	for _, r := range records {
		idx.Add(r)
	}
	return idx
}

// Add inserts a record unless its date is already present.
// Returns false for duplicates.
func (i *SentimentIndex) Add(r SentimentRecord) bool {
	if i.byDate == nil {
		i.byDate = make(map[string]SentimentRecord)
	}
	key := r.Date.Format(DateLayout)
	if _, ok := i.byDate[key]; ok {
		i.Duplicates++
		return false
	}
	i.byDate[key] = r
	i.order = append(i.order, key)
	return true
}

// Lookup finds the record for a calendar day
func (i *SentimentIndex) Lookup(date time.Time) (SentimentRecord, bool) {
	r, ok := i.byDate[date.Format(DateLayout)]
	return r, ok
}

// Len returns the number of distinct days
func (i *SentimentIndex) Len() int {
	return len(i.byDate)
}

// Records returns records in insertion order
func (i *SentimentIndex) Records() []SentimentRecord {
	out := make([]SentimentRecord, 0, len(i.order))
	for _, k := range i.order {
		out = append(out, i.byDate[k])
	}
	return out
}

// TradeRecord is one executed trade after timestamp normalization.
// Fields keeps the raw row for pass-through output.
type TradeRecord struct {
	Hash         string
	Timestamp    time.Time
	HasTimestamp bool
	Date         time.Time // calendar day of Timestamp, zero when HasTimestamp is false
	PnL          float64
	HasPnL       bool
	Direction    string
	Fields       []string
}

// MergedTrade is a trade joined to the sentiment of its day
type MergedTrade struct {
	TradeRecord
	Classification Sentiment
	Value          int
}

// Side is the tri-state buy/sell flag
type Side int8

const (
	SideUnknown Side = iota
	SideBuy
	SideSell
)

// Known reports whether direction information was available
func (s Side) Known() bool {
	return s != SideUnknown
}

// EnrichedTrade is a merged trade plus every derived feature
type EnrichedTrade struct {
	MergedTrade

	Profitable       bool
	PnLAbs           float64
	SentimentNumeric int
	IsBuy            Side
	Hour             int
	DayOfWeek        string
	Month            int
}

// DailySentimentStat aggregates one (date, classification) group
type DailySentimentStat struct {
	Date            time.Time `yaml:"date"`
	Classification  Sentiment `yaml:"classification"`
	DailyTotalPnL   float64   `yaml:"daily_total_pnl"`
	DailyAvgPnL     float64   `yaml:"daily_avg_pnl"`
	TradeCount      int       `yaml:"trade_count"`
	ProfitableCount int       `yaml:"profitable_count"`
	WinRate         float64   `yaml:"win_rate"`
}
