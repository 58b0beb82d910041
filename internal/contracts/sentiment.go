package contracts

import (
	"fmt"
	"strings"
)

// Sentiment is the closed set of Fear & Greed classifications, ordered from
// most fearful to most greedy. The zero value is not a valid label.
type Sentiment int

const (
	SentimentUnknown Sentiment = iota
	ExtremeFear
	Fear
	Neutral
	Greed
	ExtremeGreed
)

var sentimentLabels = map[Sentiment]string{
	ExtremeFear:  "Extreme Fear",
	Fear:         "Fear",
	Neutral:      "Neutral",
	Greed:        "Greed",
	ExtremeGreed: "Extreme Greed",
}

// AllSentiments returns the five labels in Extreme Fear → Extreme Greed order
func AllSentiments() []Sentiment {
	return []Sentiment{ExtremeFear, Fear, Neutral, Greed, ExtremeGreed}
}

// ParseSentiment maps a raw classification label onto the enum.
// Surrounding whitespace is ignored, case is not.
func ParseSentiment(label string) (Sentiment, bool) {
	label = strings.TrimSpace(label)
	for s, l := range sentimentLabels {
		if l == label {
			return s, true
		}
	}
	return SentimentUnknown, false
}

// Valid reports whether s is one of the five labels
func (s Sentiment) Valid() bool {
	return s >= ExtremeFear && s <= ExtremeGreed
}

// String returns the canonical label
func (s Sentiment) String() string {
	if l, ok := sentimentLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// Rank returns the 1..5 numeric encoding (Extreme Fear = 1, Extreme Greed = 5)
func (s Sentiment) Rank() (int, bool) {
	if !s.Valid() {
		return 0, false
	}
	return int(s), true
}

// SentimentZone is the index value band a classification covers on the 0–100 scale
type SentimentZone struct {
	Sentiment Sentiment
	Low       float64
	High      float64
}

// SentimentZones returns the shaded chart bands, lowest first
func SentimentZones() []SentimentZone {
	return []SentimentZone{
		{Sentiment: ExtremeFear, Low: 0, High: 25},
		{Sentiment: Fear, Low: 25, High: 45},
		{Sentiment: Neutral, Low: 45, High: 55},
		{Sentiment: Greed, Low: 55, High: 75},
		{Sentiment: ExtremeGreed, Low: 75, High: 100},
	}
}

// MarshalText renders the label, so manifests and JSON carry "Extreme Fear" rather than 1
func (s Sentiment) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a canonical label
func (s *Sentiment) UnmarshalText(text []byte) error {
	parsed, ok := ParseSentiment(string(text))
	if !ok {
		return fmt.Errorf("unknown sentiment %q", string(text))
	}
	*s = parsed
	return nil
}
