package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSentiment(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Sentiment
		ok    bool
	}{
		{"extreme fear", "Extreme Fear", ExtremeFear, true},
		{"fear", "Fear", Fear, true},
		{"neutral", "Neutral", Neutral, true},
		{"greed", "Greed", Greed, true},
		{"extreme greed", "Extreme Greed", ExtremeGreed, true},
		{"surrounding whitespace", "  Greed ", Greed, true},
		{"wrong case", "extreme greed", SentimentUnknown, false},
		{"empty", "", SentimentUnknown, false},
		{"unknown label", "Panic", SentimentUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSentiment(tt.label)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSentiment_Rank(t *testing.T) {
	want := map[Sentiment]int{
		ExtremeFear:  1,
		Fear:         2,
		Neutral:      3,
		Greed:        4,
		ExtremeGreed: 5,
	}
	for s, rank := range want {
		got, ok := s.Rank()
		assert.True(t, ok, s.String())
		assert.Equal(t, rank, got, s.String())
	}

	_, ok := SentimentUnknown.Rank()
	assert.False(t, ok)
	_, ok = Sentiment(9).Rank()
	assert.False(t, ok)
}

func TestSentiment_StringRoundTrip(t *testing.T) {
	for _, s := range AllSentiments() {
		parsed, ok := ParseSentiment(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	assert.Equal(t, "Unknown", SentimentUnknown.String())

	text, err := ExtremeGreed.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "Extreme Greed", string(text))
}

func TestSentimentZones(t *testing.T) {
	zones := SentimentZones()
	assert.Len(t, zones, 5)
	assert.Equal(t, 0.0, zones[0].Low)
	assert.Equal(t, 100.0, zones[len(zones)-1].High)

	// 구간은 빈틈 없이 이어져야 함
	for i := 1; i < len(zones); i++ {
		assert.Equal(t, zones[i-1].High, zones[i].Low)
		assert.Equal(t, AllSentiments()[i], zones[i].Sentiment)
	}
}

func TestSentiment_TextRoundTrip(t *testing.T) {
	text, err := ExtremeGreed.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "Extreme Greed", string(text))

	var s Sentiment
	assert.NoError(t, s.UnmarshalText(text))
	assert.Equal(t, ExtremeGreed, s)

	assert.Error(t, s.UnmarshalText([]byte("Panic")))
}
